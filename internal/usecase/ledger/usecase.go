package ledger

import (
	"context"
	"errors"
	"time"

	appDomain "loanledger/internal/domain/application"
	ledgerDomain "loanledger/internal/domain/ledger"
	"loanledger/internal/domain/sequence"
	"loanledger/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	apps     appDomain.Repository
	balances ledgerDomain.BalanceRepository
	uow      uow.UnitOfWork
}

func NewUsecase(apps appDomain.Repository, balances ledgerDomain.BalanceRepository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{apps: apps, balances: balances, uow: tx}
}

type BalanceDTO struct {
	ID            uint64          `json:"id"`
	ApplicationID uint64          `json:"application_id"`
	Amount        decimal.Decimal `json:"amount"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

type EntryDTO struct {
	ID            uint64          `json:"id"`
	ApplicationID uint64          `json:"application_id"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

type RepaymentDTO struct {
	ID            uint64          `json:"id"`
	ApplicationID uint64          `json:"application_id"`
	Amount        decimal.Decimal `json:"amount"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     time.Time       `json:"created_at"`
}

func balanceDTO(b *ledgerDomain.Balance) *BalanceDTO {
	return &BalanceDTO{ID: b.ID, ApplicationID: b.ApplicationID, Amount: b.Amount, UpdatedAt: b.UpdatedAt}
}

// EnsureBalance returns the application's live balance, creating one seeded
// with seed when none exists. This is the single authorized creation point:
// contract activation and the first entry both funnel through it, so the two
// paths cannot diverge on initial-amount semantics. Must run inside a
// transaction that holds the application row lock.
func EnsureBalance(ctx context.Context, r uow.Repos, applicationID uint64, seed decimal.Decimal) (*ledgerDomain.Balance, bool, error) {
	b, err := r.Balances.GetByApplicationID(ctx, applicationID)
	switch {
	case err == nil:
		return b, false, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		id, err := r.Sequences.Next(ctx, sequence.ClassBalances)
		if err != nil {
			return nil, false, err
		}
		nb := &ledgerDomain.Balance{ID: id, ApplicationID: applicationID, Amount: seed}
		if err := r.Balances.Create(ctx, nb); err != nil {
			return nil, false, err
		}
		return nb, true, nil
	default:
		return nil, false, err
	}
}

// asApplicationNotFound translates the uow's row-lock lookup failure into the
// caller-facing fault; every other error passes through unchanged.
func asApplicationNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return appDomain.ErrNotFound
	}
	return err
}

func (u *Usecase) CreateBalance(ctx context.Context, applicationID uint64, amount decimal.Decimal) (*BalanceDTO, error) {
	if amount.IsNegative() {
		return nil, ledgerDomain.ErrNegativeAmount
	}
	var dto *BalanceDTO
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		if _, err := r.Balances.GetByApplicationID(ctx, a.ID); err == nil {
			return ledgerDomain.ErrBalanceExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		b, _, err := EnsureBalance(ctx, r, a.ID, amount)
		if err != nil {
			return err
		}
		dto = balanceDTO(b)
		return nil
	})
	if err != nil {
		return nil, asApplicationNotFound(err)
	}
	return dto, nil
}

func (u *Usecase) CreateEntry(ctx context.Context, applicationID uint64, amount decimal.Decimal) (*EntryDTO, error) {
	if !amount.IsPositive() {
		return nil, ledgerDomain.ErrNonPositiveAmount
	}
	var dto *EntryDTO
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		if !a.Contracted() {
			return ledgerDomain.ErrNotContracted
		}
		id, err := r.Sequences.Next(ctx, sequence.ClassEntries)
		if err != nil {
			return err
		}
		e := &ledgerDomain.Entry{ID: id, ApplicationID: a.ID, Amount: amount}
		if err := r.Entries.Create(ctx, e); err != nil {
			return err
		}
		b, created, err := EnsureBalance(ctx, r, a.ID, amount)
		if err != nil {
			return err
		}
		if !created {
			b.Amount = b.Amount.Add(amount)
			if err := r.Balances.Save(ctx, b); err != nil {
				return err
			}
		}
		dto = &EntryDTO{ID: e.ID, ApplicationID: a.ID, Amount: e.Amount, Balance: b.Amount, CreatedAt: e.CreatedAt}
		return nil
	})
	if err != nil {
		return nil, asApplicationNotFound(err)
	}
	return dto, nil
}

func (u *Usecase) CreateRepayment(ctx context.Context, applicationID uint64, amount decimal.Decimal) (*RepaymentDTO, error) {
	if !amount.IsPositive() {
		return nil, ledgerDomain.ErrNonPositiveAmount
	}
	var dto *RepaymentDTO
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		if !a.Contracted() {
			return ledgerDomain.ErrNotContracted
		}
		b, err := r.Balances.GetByApplicationID(ctx, a.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledgerDomain.ErrNoBalance
			}
			return err
		}
		// balance >= 0 is the central invariant; reject the overdraft
		// before anything is written.
		if amount.GreaterThan(b.Amount) {
			return ledgerDomain.ErrInsufficientBalance
		}
		id, err := r.Sequences.Next(ctx, sequence.ClassRepayments)
		if err != nil {
			return err
		}
		rp := &ledgerDomain.Repayment{ID: id, ApplicationID: a.ID, Amount: amount}
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}
		b.Amount = b.Amount.Sub(amount)
		if err := r.Balances.Save(ctx, b); err != nil {
			return err
		}
		dto = &RepaymentDTO{ID: rp.ID, ApplicationID: a.ID, Amount: rp.Amount, Balance: b.Amount, CreatedAt: rp.CreatedAt}
		return nil
	})
	if err != nil {
		return nil, asApplicationNotFound(err)
	}
	return dto, nil
}

// GetBalance returns the balance, or nil when the application exists but has
// no balance yet (pre-activation).
func (u *Usecase) GetBalance(ctx context.Context, applicationID uint64) (*BalanceDTO, error) {
	if _, err := u.apps.GetByID(ctx, applicationID); err != nil {
		return nil, asApplicationNotFound(err)
	}
	b, err := u.balances.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return balanceDTO(b), nil
}

// UpdateBalance is an administrative override; it rewrites the amount without
// a compensating entry or repayment.
func (u *Usecase) UpdateBalance(ctx context.Context, applicationID uint64, amount decimal.Decimal) (*BalanceDTO, error) {
	if amount.IsNegative() {
		return nil, ledgerDomain.ErrNegativeAmount
	}
	var dto *BalanceDTO
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		b, err := r.Balances.GetByApplicationID(ctx, a.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledgerDomain.ErrBalanceNotFound
			}
			return err
		}
		b.Amount = amount
		if err := r.Balances.Save(ctx, b); err != nil {
			return err
		}
		dto = balanceDTO(b)
		return nil
	})
	if err != nil {
		return nil, asApplicationNotFound(err)
	}
	return dto, nil
}

// DeleteBalance retires the balance without touching entries or repayments.
func (u *Usecase) DeleteBalance(ctx context.Context, applicationID uint64) error {
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		b, err := r.Balances.GetByApplicationID(ctx, a.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ledgerDomain.ErrBalanceNotFound
			}
			return err
		}
		return r.Balances.Delete(ctx, b)
	})
	return asApplicationNotFound(err)
}

// StatementDTO is the audit view: every live entry and repayment plus the
// running balance they should reconcile to.
type StatementDTO struct {
	ApplicationID uint64                   `json:"application_id"`
	Balance       *BalanceDTO              `json:"balance,omitempty"`
	Entries       []ledgerDomain.Entry     `json:"entries"`
	Repayments    []ledgerDomain.Repayment `json:"repayments"`
}

func (u *Usecase) Statement(ctx context.Context, applicationID uint64) (*StatementDTO, error) {
	var dto *StatementDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Applications.GetByID(ctx, applicationID); err != nil {
			return err
		}
		entries, err := r.Entries.ListByApplicationID(ctx, applicationID)
		if err != nil {
			return err
		}
		repayments, err := r.Repayments.ListByApplicationID(ctx, applicationID)
		if err != nil {
			return err
		}
		dto = &StatementDTO{ApplicationID: applicationID, Entries: entries, Repayments: repayments}
		if b, err := r.Balances.GetByApplicationID(ctx, applicationID); err == nil {
			dto.Balance = balanceDTO(b)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, asApplicationNotFound(err)
	}
	return dto, nil
}
