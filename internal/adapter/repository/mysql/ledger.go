package mysql

import (
	"context"

	ledgerDomain "loanledger/internal/domain/ledger"

	"gorm.io/gorm"
)

type BalanceRepository struct{ db *gorm.DB }

func NewBalanceRepository(db *gorm.DB) *BalanceRepository { return &BalanceRepository{db: db} }

func (r *BalanceRepository) Create(ctx context.Context, b *ledgerDomain.Balance) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BalanceRepository) Save(ctx context.Context, b *ledgerDomain.Balance) error {
	return r.db.WithContext(ctx).Save(b).Error
}

func (r *BalanceRepository) Delete(ctx context.Context, b *ledgerDomain.Balance) error {
	// gorm.DeletedAt makes this a soft delete; the row stays for audit.
	return r.db.WithContext(ctx).Delete(b).Error
}

func (r *BalanceRepository) GetByApplicationID(ctx context.Context, applicationID uint64) (*ledgerDomain.Balance, error) {
	var out ledgerDomain.Balance
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("id DESC").
		First(&out)
	return &out, res.Error
}

type EntryRepository struct{ db *gorm.DB }

func NewEntryRepository(db *gorm.DB) *EntryRepository { return &EntryRepository{db: db} }

func (r *EntryRepository) Create(ctx context.Context, e *ledgerDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EntryRepository) ListByApplicationID(ctx context.Context, applicationID uint64) ([]ledgerDomain.Entry, error) {
	var out []ledgerDomain.Entry
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}

type RepaymentRepository struct{ db *gorm.DB }

func NewRepaymentRepository(db *gorm.DB) *RepaymentRepository { return &RepaymentRepository{db: db} }

func (r *RepaymentRepository) Create(ctx context.Context, rp *ledgerDomain.Repayment) error {
	return r.db.WithContext(ctx).Create(rp).Error
}

func (r *RepaymentRepository) ListByApplicationID(ctx context.Context, applicationID uint64) ([]ledgerDomain.Repayment, error) {
	var out []ledgerDomain.Repayment
	res := r.db.WithContext(ctx).
		Where("application_id = ?", applicationID).
		Order("id ASC").
		Find(&out)
	return out, res.Error
}
