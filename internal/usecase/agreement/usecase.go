package agreement

import (
	"context"
	"errors"
	"time"

	agreementDomain "loanledger/internal/domain/agreement"
	"loanledger/internal/domain/fault"
	"loanledger/internal/domain/sequence"
	"loanledger/internal/domain/uow"

	"gorm.io/gorm"
)

type Usecase struct {
	terms       agreementDomain.TermsRepository
	acceptances agreementDomain.AcceptanceRepository
	uow         uow.UnitOfWork
}

func NewUsecase(terms agreementDomain.TermsRepository, acceptances agreementDomain.AcceptanceRepository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{terms: terms, acceptances: acceptances, uow: tx}
}

type CreateTermsInput struct {
	Version  int
	Title    string
	Body     string
	Required bool
}

type AcceptanceDTO struct {
	ID         uint64    `json:"id"`
	UserID     uint64    `json:"user_id"`
	TermsID    uint64    `json:"terms_id"`
	AcceptedAt time.Time `json:"accepted_at"`
}

type RequiredCheckDTO struct {
	Complete bool                    `json:"complete"`
	Missing  []agreementDomain.Terms `json:"missing"`
}

func (u *Usecase) CreateTerms(ctx context.Context, in CreateTermsInput) (*agreementDomain.Terms, error) {
	if in.Title == "" {
		return nil, fault.Validation("title is required")
	}
	if in.Version <= 0 {
		return nil, fault.Validation("version must be positive")
	}
	var out *agreementDomain.Terms
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		id, err := r.Sequences.Next(ctx, sequence.ClassTerms)
		if err != nil {
			return err
		}
		t := &agreementDomain.Terms{ID: id, Version: in.Version, Title: in.Title, Body: in.Body, Required: in.Required}
		if err := r.Terms.Create(ctx, t); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *Usecase) ListTerms(ctx context.Context) ([]agreementDomain.Terms, error) {
	return u.terms.List(ctx)
}

// Record replaces the user's whole agreement set: the prior acceptances are
// retired and one acceptance per terms ID is written, all in one transaction,
// so a failure mid-sequence can never leave the user with no live set.
func (u *Usecase) Record(ctx context.Context, userID uint64, termsIDs []uint64) ([]AcceptanceDTO, error) {
	if userID == 0 {
		return nil, fault.Validation("user id is required")
	}
	if len(termsIDs) == 0 {
		return nil, fault.Validation("at least one terms id is required")
	}

	var dtos []AcceptanceDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		// Validate every terms ID before touching the existing set.
		for _, tid := range termsIDs {
			if _, err := r.Terms.GetByID(ctx, tid); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return agreementDomain.ErrTermsNotFound
				}
				return err
			}
		}
		if err := r.Acceptances.DeleteByUserID(ctx, userID); err != nil {
			return err
		}
		now := time.Now().UTC()
		dtos = make([]AcceptanceDTO, 0, len(termsIDs))
		for _, tid := range termsIDs {
			id, err := r.Sequences.Next(ctx, sequence.ClassAcceptances)
			if err != nil {
				return err
			}
			a := &agreementDomain.Acceptance{ID: id, UserID: userID, TermsID: tid, AcceptedAt: now}
			if err := r.Acceptances.Create(ctx, a); err != nil {
				return err
			}
			dtos = append(dtos, AcceptanceDTO{ID: a.ID, UserID: a.UserID, TermsID: a.TermsID, AcceptedAt: a.AcceptedAt})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dtos, nil
}

func (u *Usecase) ListAccepted(ctx context.Context, userID uint64) ([]AcceptanceDTO, error) {
	if userID == 0 {
		return nil, fault.Validation("user id is required")
	}
	accepted, err := u.acceptances.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dtos := make([]AcceptanceDTO, 0, len(accepted))
	for _, a := range accepted {
		dtos = append(dtos, AcceptanceDTO{ID: a.ID, UserID: a.UserID, TermsID: a.TermsID, AcceptedAt: a.AcceptedAt})
	}
	return dtos, nil
}

// CheckRequired reports whether the user's live acceptance set covers every
// required terms document, and which ones are missing.
func (u *Usecase) CheckRequired(ctx context.Context, userID uint64) (*RequiredCheckDTO, error) {
	if userID == 0 {
		return nil, fault.Validation("user id is required")
	}
	required, err := u.terms.ListRequired(ctx)
	if err != nil {
		return nil, err
	}
	accepted, err := u.acceptances.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	have := make(map[uint64]bool, len(accepted))
	for _, a := range accepted {
		have[a.TermsID] = true
	}
	missing := make([]agreementDomain.Terms, 0)
	for _, t := range required {
		if !have[t.ID] {
			missing = append(missing, t)
		}
	}
	return &RequiredCheckDTO{Complete: len(missing) == 0, Missing: missing}, nil
}
