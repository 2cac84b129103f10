package agreementmock

import (
	"context"

	domain "loanledger/internal/domain/agreement"
)

var (
	_ domain.TermsRepository      = (*TermsRepo)(nil)
	_ domain.AcceptanceRepository = (*AcceptanceRepo)(nil)
)

type TermsRepo struct {
	CreateFn       func(ctx context.Context, t *domain.Terms) error
	GetByIDFn      func(ctx context.Context, id uint64) (*domain.Terms, error)
	ListFn         func(ctx context.Context) ([]domain.Terms, error)
	ListRequiredFn func(ctx context.Context) ([]domain.Terms, error)
}

func (m *TermsRepo) Create(ctx context.Context, t *domain.Terms) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, t)
	}
	return nil
}

func (m *TermsRepo) GetByID(ctx context.Context, id uint64) (*domain.Terms, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *TermsRepo) List(ctx context.Context) ([]domain.Terms, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, nil
}

func (m *TermsRepo) ListRequired(ctx context.Context) ([]domain.Terms, error) {
	if m.ListRequiredFn != nil {
		return m.ListRequiredFn(ctx)
	}
	return nil, nil
}

type AcceptanceRepo struct {
	CreateFn         func(ctx context.Context, a *domain.Acceptance) error
	ListByUserIDFn   func(ctx context.Context, userID uint64) ([]domain.Acceptance, error)
	DeleteByUserIDFn func(ctx context.Context, userID uint64) error
}

func (m *AcceptanceRepo) Create(ctx context.Context, a *domain.Acceptance) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *AcceptanceRepo) ListByUserID(ctx context.Context, userID uint64) ([]domain.Acceptance, error) {
	if m.ListByUserIDFn != nil {
		return m.ListByUserIDFn(ctx, userID)
	}
	return nil, nil
}

func (m *AcceptanceRepo) DeleteByUserID(ctx context.Context, userID uint64) error {
	if m.DeleteByUserIDFn != nil {
		return m.DeleteByUserIDFn(ctx, userID)
	}
	return nil
}
