package contract

import "context"

type Repository interface {
	Create(ctx context.Context, c *Contract) error
	GetByID(ctx context.Context, id uint64) (*Contract, error)
	// GetByIDForUpdate locks the contract row so concurrent status updates
	// serialize instead of both observing the pre-transition state.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Contract, error)
	GetByApplicationID(ctx context.Context, applicationID uint64) (*Contract, error)
	Save(ctx context.Context, c *Contract) error
}
