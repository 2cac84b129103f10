package fault

import "errors"

// Kind classifies a caller-visible rejection. Every operation of the engine
// either succeeds or fails with one of these; nothing is retried internally.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation: caller input violates a precondition
	// (missing field, non-positive amount, insufficient balance).
	KindValidation
	// KindNotFound: referenced entity absent or retired.
	KindNotFound
	// KindConflict: a singleton-per-application record already exists.
	KindConflict
	// KindUnprocessable: structurally valid but illegal in the current
	// lifecycle state (e.g. repayment before contract activation).
	KindUnprocessable
)

type Error struct {
	kind Kind
	msg  string
}

func (e *Error) Error() string { return e.msg }

func Validation(msg string) *Error    { return &Error{kind: KindValidation, msg: msg} }
func NotFound(msg string) *Error      { return &Error{kind: KindNotFound, msg: msg} }
func Conflict(msg string) *Error      { return &Error{kind: KindConflict, msg: msg} }
func Unprocessable(msg string) *Error { return &Error{kind: KindUnprocessable, msg: msg} }

// KindOf unwraps err and reports its Kind, or KindUnknown for errors that did
// not originate here (storage failures, context cancellation, ...).
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.kind
	}
	return KindUnknown
}

func IsKind(err error, k Kind) bool { return KindOf(err) == k }
