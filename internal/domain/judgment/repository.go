package judgment

import "context"

type Repository interface {
	Create(ctx context.Context, j *Judgment) error
	GetByID(ctx context.Context, id uint64) (*Judgment, error)
	// GetByApplicationID returns the live judgment for the application;
	// retired judgments are excluded, so at most one row can match.
	GetByApplicationID(ctx context.Context, applicationID uint64) (*Judgment, error)
}
