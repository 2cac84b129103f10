package application

import "context"

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id uint64) (*Application, error)
	// GetByIDForUpdate locks the application row for the remainder of the
	// surrounding transaction; all balance mutations serialize on it.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Application, error)
	Save(ctx context.Context, a *Application) error
}
