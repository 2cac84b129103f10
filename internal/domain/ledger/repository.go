package ledger

import "context"

type BalanceRepository interface {
	Create(ctx context.Context, b *Balance) error
	GetByApplicationID(ctx context.Context, applicationID uint64) (*Balance, error)
	Save(ctx context.Context, b *Balance) error
	// Delete retires the balance (soft delete); audit rows stay untouched.
	Delete(ctx context.Context, b *Balance) error
}

type EntryRepository interface {
	Create(ctx context.Context, e *Entry) error
	ListByApplicationID(ctx context.Context, applicationID uint64) ([]Entry, error)
}

type RepaymentRepository interface {
	Create(ctx context.Context, r *Repayment) error
	ListByApplicationID(ctx context.Context, applicationID uint64) ([]Repayment, error)
}
