package mysql

import (
	"context"

	agreementDomain "loanledger/internal/domain/agreement"

	"gorm.io/gorm"
)

type TermsRepository struct{ db *gorm.DB }

func NewTermsRepository(db *gorm.DB) *TermsRepository { return &TermsRepository{db: db} }

func (r *TermsRepository) Create(ctx context.Context, t *agreementDomain.Terms) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TermsRepository) GetByID(ctx context.Context, id uint64) (*agreementDomain.Terms, error) {
	var out agreementDomain.Terms
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *TermsRepository) List(ctx context.Context) ([]agreementDomain.Terms, error) {
	var out []agreementDomain.Terms
	res := r.db.WithContext(ctx).Order("id ASC").Find(&out)
	return out, res.Error
}

func (r *TermsRepository) ListRequired(ctx context.Context) ([]agreementDomain.Terms, error) {
	var out []agreementDomain.Terms
	res := r.db.WithContext(ctx).Where("required = ?", true).Order("id ASC").Find(&out)
	return out, res.Error
}

type AcceptanceRepository struct{ db *gorm.DB }

func NewAcceptanceRepository(db *gorm.DB) *AcceptanceRepository {
	return &AcceptanceRepository{db: db}
}

func (r *AcceptanceRepository) Create(ctx context.Context, a *agreementDomain.Acceptance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *AcceptanceRepository) ListByUserID(ctx context.Context, userID uint64) ([]agreementDomain.Acceptance, error) {
	var out []agreementDomain.Acceptance
	res := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

func (r *AcceptanceRepository) DeleteByUserID(ctx context.Context, userID uint64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&agreementDomain.Acceptance{}).Error
}
