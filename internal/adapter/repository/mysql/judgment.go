package mysql

import (
	"context"

	judgmentDomain "loanledger/internal/domain/judgment"

	"gorm.io/gorm"
)

type JudgmentRepository struct{ db *gorm.DB }

func NewJudgmentRepository(db *gorm.DB) *JudgmentRepository {
	return &JudgmentRepository{db: db}
}

func (r *JudgmentRepository) Create(ctx context.Context, j *judgmentDomain.Judgment) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *JudgmentRepository) GetByID(ctx context.Context, id uint64) (*judgmentDomain.Judgment, error) {
	var out judgmentDomain.Judgment
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *JudgmentRepository) GetByApplicationID(ctx context.Context, applicationID uint64) (*judgmentDomain.Judgment, error) {
	var out judgmentDomain.Judgment
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}
