package mysql

import (
	"context"

	appDomain "loanledger/internal/domain/application"
	"loanledger/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func repos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Applications: &ApplicationRepository{db: tx},
		Judgments:    &JudgmentRepository{db: tx},
		Contracts:    &ContractRepository{db: tx},
		Balances:     &BalanceRepository{db: tx},
		Entries:      &EntryRepository{db: tx},
		Repayments:   &RepaymentRepository{db: tx},
		Terms:        &TermsRepository{db: tx},
		Acceptances:  &AcceptanceRepository{db: tx},
		Sequences:    &SequenceAllocator{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(repos(tx))
	})
}

func (u *GormUoW) WithinApplicationTx(ctx context.Context, applicationID uint64, fn func(r uow.Repos, a *appDomain.Application) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := repos(tx)
		// lock the application row up-front: one writer per application
		a, err := r.Applications.GetByIDForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		return fn(r, a)
	})
}
