package contractmock

import (
	"context"

	domain "loanledger/internal/domain/contract"
)

var _ domain.Repository = (*Repo)(nil)

type Repo struct {
	CreateFn             func(ctx context.Context, c *domain.Contract) error
	GetByIDFn            func(ctx context.Context, id uint64) (*domain.Contract, error)
	GetByIDForUpdateFn   func(ctx context.Context, id uint64) (*domain.Contract, error)
	GetByApplicationIDFn func(ctx context.Context, applicationID uint64) (*domain.Contract, error)
	SaveFn               func(ctx context.Context, c *domain.Contract) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Contract) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Contract, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Contract, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID uint64) (*domain.Contract, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, c *domain.Contract) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}
