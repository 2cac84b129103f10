package judgmentmock

import (
	"context"

	domain "loanledger/internal/domain/judgment"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn             func(ctx context.Context, j *domain.Judgment) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Judgment, error)
	GetByApplicationIDFn func(ctx context.Context, applicationID uint64) (*domain.Judgment, error)
}

func (m *Repo) Create(ctx context.Context, j *domain.Judgment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, j)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Judgment, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID uint64) (*domain.Judgment, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}
