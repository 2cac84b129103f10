package agreement

import "context"

type TermsRepository interface {
	Create(ctx context.Context, t *Terms) error
	GetByID(ctx context.Context, id uint64) (*Terms, error)
	List(ctx context.Context) ([]Terms, error)
	ListRequired(ctx context.Context) ([]Terms, error)
}

type AcceptanceRepository interface {
	Create(ctx context.Context, a *Acceptance) error
	ListByUserID(ctx context.Context, userID uint64) ([]Acceptance, error)
	// DeleteByUserID retires the user's whole live acceptance set; callers
	// run it in the same transaction that writes the replacement set.
	DeleteByUserID(ctx context.Context, userID uint64) error
}
