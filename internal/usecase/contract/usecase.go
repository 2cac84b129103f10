package contract

import (
	"context"
	"errors"
	"time"

	appDomain "loanledger/internal/domain/application"
	contractDomain "loanledger/internal/domain/contract"
	"loanledger/internal/domain/fault"
	judgmentDomain "loanledger/internal/domain/judgment"
	"loanledger/internal/domain/sequence"
	"loanledger/internal/domain/uow"
	ledgeruc "loanledger/internal/usecase/ledger"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	repo contractDomain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(repo contractDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

type CreateContractInput struct {
	ApplicationID uint64
	JudgmentID    uint64
	Amount        decimal.Decimal
	Rate          float64
	TermMonths    int
}

type UpdateStatusInput struct {
	ContractID  uint64
	Status      contractDomain.Status
	SignedAt    *time.Time
	ActivatedAt *time.Time
}

type ContractDTO struct {
	ID            uint64                `json:"id"`
	ApplicationID uint64                `json:"application_id"`
	JudgmentID    uint64                `json:"judgment_id"`
	Amount        decimal.Decimal       `json:"amount"`
	Rate          float64               `json:"rate"`
	TermMonths    int                   `json:"term_months"`
	Status        contractDomain.Status `json:"status"`
	SignedAt      *time.Time            `json:"signed_at,omitempty"`
	ActivatedAt   *time.Time            `json:"activated_at,omitempty"`
	CreatedAt     time.Time             `json:"created_at"`
}

func toDTO(c *contractDomain.Contract) *ContractDTO {
	return &ContractDTO{
		ID:            c.ID,
		ApplicationID: c.ApplicationID,
		JudgmentID:    c.JudgmentID,
		Amount:        c.Amount,
		Rate:          c.Rate,
		TermMonths:    c.TermMonths,
		Status:        c.Status,
		SignedAt:      c.SignedAt,
		ActivatedAt:   c.ActivatedAt,
		CreatedAt:     c.CreatedAt,
	}
}

// ContractApplication marks the application as contracted: it copies the
// approved judgment's amount onto the application and stamps ContractedAt.
func (u *Usecase) ContractApplication(ctx context.Context, applicationID uint64) (*ContractedApplicationDTO, error) {
	var dto *ContractedApplicationDTO
	err := u.uow.WithinApplicationTx(ctx, applicationID, func(r uow.Repos, a *appDomain.Application) error {
		if a.Contracted() {
			return fault.Conflict("application is already contracted")
		}
		j, err := r.Judgments.GetByApplicationID(ctx, a.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fault.Unprocessable("application has no judgment")
			}
			return err
		}
		if !j.Approved() {
			return fault.Unprocessable("judgment is not approved")
		}
		if err := stampContracted(ctx, r, a, j); err != nil {
			return err
		}
		dto = &ContractedApplicationDTO{
			ApplicationID:  a.ID,
			ApprovalAmount: a.ApprovalAmount.Decimal,
			ContractedAt:   *a.ContractedAt,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

type ContractedApplicationDTO struct {
	ApplicationID  uint64          `json:"application_id"`
	ApprovalAmount decimal.Decimal `json:"approval_amount"`
	ContractedAt   time.Time       `json:"contracted_at"`
}

func stampContracted(ctx context.Context, r uow.Repos, a *appDomain.Application, j *judgmentDomain.Judgment) error {
	now := time.Now().UTC()
	a.ApprovalAmount = decimal.NullDecimal{Decimal: j.ApprovalAmount, Valid: true}
	a.ContractedAt = &now
	return r.Applications.Save(ctx, a)
}

func (u *Usecase) Create(ctx context.Context, in CreateContractInput) (*ContractDTO, error) {
	if !in.Amount.IsPositive() {
		return nil, fault.Validation("contract amount must be positive")
	}
	if in.TermMonths <= 0 {
		return nil, fault.Validation("term must be positive")
	}

	var dto *ContractDTO
	err := u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *appDomain.Application) error {
		j, err := r.Judgments.GetByID(ctx, in.JudgmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return judgmentDomain.ErrNotFound
			}
			return err
		}
		if j.ApplicationID != a.ID {
			return judgmentDomain.ErrNotFound
		}

		// At most one live contract per application.
		if _, err := r.Contracts.GetByApplicationID(ctx, a.ID); err == nil {
			return contractDomain.ErrAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		id, err := r.Sequences.Next(ctx, sequence.ClassContracts)
		if err != nil {
			return err
		}
		c := &contractDomain.Contract{
			ID:            id,
			ApplicationID: a.ID,
			JudgmentID:    j.ID,
			Amount:        in.Amount,
			Rate:          in.Rate,
			TermMonths:    in.TermMonths,
			Status:        contractDomain.StatusPending,
		}
		if err := r.Contracts.Create(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// UpdateStatus drives the contract state machine. The first transition to
// active stamps ActivatedAt, marks the application contracted (when the
// direct contracting step was skipped) and seeds the balance with the
// contract amount, exactly once: repeating the transition is a no-op and can
// never double-fund the borrower.
func (u *Usecase) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*ContractDTO, error) {
	if !contractDomain.ValidStatus(in.Status) {
		return nil, fault.Validation("unknown contract status")
	}

	var dto *ContractDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contracts.GetByIDForUpdate(ctx, in.ContractID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return contractDomain.ErrNotFound
			}
			return err
		}

		if c.Status == in.Status {
			// idempotent: re-applying the current status changes nothing
			dto = toDTO(c)
			return nil
		}
		if !contractDomain.CanTransition(c.Status, in.Status) {
			return contractDomain.ErrInvalidTransition
		}

		now := time.Now().UTC()
		switch in.Status {
		case contractDomain.StatusSigned:
			at := now
			if in.SignedAt != nil {
				at = in.SignedAt.UTC()
			}
			c.SignedAt = &at
		case contractDomain.StatusActive:
			at := now
			if in.ActivatedAt != nil {
				at = in.ActivatedAt.UTC()
			}
			c.ActivatedAt = &at
			if err := u.activate(ctx, r, c); err != nil {
				return err
			}
		}
		c.Status = in.Status
		if err := r.Contracts.Save(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// activate runs under the application row lock so that activation and ledger
// traffic for the same application serialize.
func (u *Usecase) activate(ctx context.Context, r uow.Repos, c *contractDomain.Contract) error {
	a, err := r.Applications.GetByIDForUpdate(ctx, c.ApplicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appDomain.ErrNotFound
		}
		return err
	}
	if !a.Contracted() {
		j, err := r.Judgments.GetByID(ctx, c.JudgmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return judgmentDomain.ErrNotFound
			}
			return err
		}
		if err := stampContracted(ctx, r, a, j); err != nil {
			return err
		}
	}
	// EnsureBalance is a no-op when the balance already exists, which makes
	// re-activation safe.
	_, _, err = ledgeruc.EnsureBalance(ctx, r, a.ID, c.Amount)
	return err
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*ContractDTO, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, contractDomain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(c), nil
}
