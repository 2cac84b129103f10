package mysql

import (
	"context"

	contractDomain "loanledger/internal/domain/contract"

	"gorm.io/gorm"
)

type ContractRepository struct{ db *gorm.DB }

func NewContractRepository(db *gorm.DB) *ContractRepository {
	return &ContractRepository{db: db}
}

func (r *ContractRepository) Create(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContractRepository) Save(ctx context.Context, c *contractDomain.Contract) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContractRepository) GetByID(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := forUpdate(r.db.WithContext(ctx)).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ContractRepository) GetByApplicationID(ctx context.Context, applicationID uint64) (*contractDomain.Contract, error) {
	var out contractDomain.Contract
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}
