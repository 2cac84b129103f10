package application

import (
	"context"
	"errors"
	"time"

	appDomain "loanledger/internal/domain/application"
	"loanledger/internal/domain/fault"
	"loanledger/internal/domain/sequence"
	"loanledger/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	repo appDomain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(repo appDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

type CreateApplicationInput struct {
	Name            string
	Phone           string
	Email           string
	RequestedAmount decimal.Decimal
	InterestRate    *float64
	Fee             *float64
	MaturityMonths  *int
}

type ApplicationDTO struct {
	ID              uint64          `json:"id"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	Email           string          `json:"email"`
	RequestedAmount decimal.Decimal `json:"requested_amount"`
	InterestRate    *float64        `json:"interest_rate,omitempty"`
	Fee             *float64        `json:"fee,omitempty"`
	MaturityMonths  *int            `json:"maturity_months,omitempty"`
	AppliedAt       time.Time       `json:"applied_at"`
	ApprovalAmount  *decimal.Decimal `json:"approval_amount,omitempty"`
	ContractedAt    *time.Time      `json:"contracted_at,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toDTO(a *appDomain.Application) *ApplicationDTO {
	dto := &ApplicationDTO{
		ID:              a.ID,
		Name:            a.Name,
		Phone:           a.Phone,
		Email:           a.Email,
		RequestedAmount: a.RequestedAmount,
		InterestRate:    a.InterestRate,
		Fee:             a.Fee,
		MaturityMonths:  a.MaturityMonths,
		AppliedAt:       a.AppliedAt,
		ContractedAt:    a.ContractedAt,
		CreatedAt:       a.CreatedAt,
	}
	if a.ApprovalAmount.Valid {
		amt := a.ApprovalAmount.Decimal
		dto.ApprovalAmount = &amt
	}
	return dto
}

func (u *Usecase) Create(ctx context.Context, in CreateApplicationInput) (*ApplicationDTO, error) {
	if in.Name == "" || in.Phone == "" || in.Email == "" {
		return nil, fault.Validation("name, phone and email are required")
	}
	if !in.RequestedAmount.IsPositive() {
		return nil, fault.Validation("requested amount must be positive")
	}

	var dto *ApplicationDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		id, err := r.Sequences.Next(ctx, sequence.ClassApplications)
		if err != nil {
			return err
		}
		a := &appDomain.Application{
			ID:              id,
			Name:            in.Name,
			Phone:           in.Phone,
			Email:           in.Email,
			RequestedAmount: in.RequestedAmount,
			InterestRate:    in.InterestRate,
			Fee:             in.Fee,
			MaturityMonths:  in.MaturityMonths,
			AppliedAt:       time.Now().UTC(),
		}
		if err := r.Applications.Create(ctx, a); err != nil {
			return err
		}
		dto = toDTO(a)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*ApplicationDTO, error) {
	a, err := u.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appDomain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(a), nil
}
