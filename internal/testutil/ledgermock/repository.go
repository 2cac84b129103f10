package ledgermock

import (
	"context"

	domain "loanledger/internal/domain/ledger"
)

var (
	_ domain.BalanceRepository   = (*BalanceRepo)(nil)
	_ domain.EntryRepository     = (*EntryRepo)(nil)
	_ domain.RepaymentRepository = (*RepaymentRepo)(nil)
)

type BalanceRepo struct {
	CreateFn             func(ctx context.Context, b *domain.Balance) error
	GetByApplicationIDFn func(ctx context.Context, applicationID uint64) (*domain.Balance, error)
	SaveFn               func(ctx context.Context, b *domain.Balance) error
	DeleteFn             func(ctx context.Context, b *domain.Balance) error
}

func (m *BalanceRepo) Create(ctx context.Context, b *domain.Balance) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, b)
	}
	return nil
}

func (m *BalanceRepo) GetByApplicationID(ctx context.Context, applicationID uint64) (*domain.Balance, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *BalanceRepo) Save(ctx context.Context, b *domain.Balance) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, b)
	}
	return nil
}

func (m *BalanceRepo) Delete(ctx context.Context, b *domain.Balance) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, b)
	}
	return nil
}

type EntryRepo struct {
	CreateFn              func(ctx context.Context, e *domain.Entry) error
	ListByApplicationIDFn func(ctx context.Context, applicationID uint64) ([]domain.Entry, error)
}

func (m *EntryRepo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *EntryRepo) ListByApplicationID(ctx context.Context, applicationID uint64) ([]domain.Entry, error) {
	if m.ListByApplicationIDFn != nil {
		return m.ListByApplicationIDFn(ctx, applicationID)
	}
	return nil, nil
}

type RepaymentRepo struct {
	CreateFn              func(ctx context.Context, r *domain.Repayment) error
	ListByApplicationIDFn func(ctx context.Context, applicationID uint64) ([]domain.Repayment, error)
}

func (m *RepaymentRepo) Create(ctx context.Context, r *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RepaymentRepo) ListByApplicationID(ctx context.Context, applicationID uint64) ([]domain.Repayment, error) {
	if m.ListByApplicationIDFn != nil {
		return m.ListByApplicationIDFn(ctx, applicationID)
	}
	return nil, nil
}
