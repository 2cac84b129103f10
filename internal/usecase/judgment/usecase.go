package judgment

import (
	"context"
	"errors"
	"time"

	appDomain "loanledger/internal/domain/application"
	"loanledger/internal/domain/fault"
	judgmentDomain "loanledger/internal/domain/judgment"
	"loanledger/internal/domain/sequence"
	"loanledger/internal/domain/uow"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	repo judgmentDomain.Repository
	uow  uow.UnitOfWork
}

func NewUsecase(repo judgmentDomain.Repository, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: repo, uow: tx}
}

type CreateJudgmentInput struct {
	ApplicationID  uint64
	Name           string
	ApprovalAmount decimal.Decimal
	ApprovalRate   float64
	Reason         string
}

type JudgmentDTO struct {
	ID             uint64                `json:"id"`
	ApplicationID  uint64                `json:"application_id"`
	Name           string                `json:"name"`
	ApprovalAmount decimal.Decimal       `json:"approval_amount"`
	ApprovalRate   float64               `json:"approval_rate"`
	Reason         string                `json:"reason,omitempty"`
	Status         judgmentDomain.Status `json:"status"`
	CreatedAt      time.Time             `json:"created_at"`
}

func toDTO(j *judgmentDomain.Judgment) *JudgmentDTO {
	return &JudgmentDTO{
		ID:             j.ID,
		ApplicationID:  j.ApplicationID,
		Name:           j.Name,
		ApprovalAmount: j.ApprovalAmount,
		ApprovalRate:   j.ApprovalRate,
		Reason:         j.Reason,
		Status:         j.Status,
		CreatedAt:      j.CreatedAt,
	}
}

// deriveStatus keeps the decision explicit: a positive approval amount is an
// approval, a zero amount with a reason is a rejection, anything else is
// still pending.
func deriveStatus(amount decimal.Decimal, reason string) judgmentDomain.Status {
	switch {
	case amount.IsPositive():
		return judgmentDomain.StatusApproved
	case reason != "":
		return judgmentDomain.StatusRejected
	default:
		return judgmentDomain.StatusPending
	}
}

func (u *Usecase) Create(ctx context.Context, in CreateJudgmentInput) (*JudgmentDTO, error) {
	if in.Name == "" {
		return nil, fault.Validation("name is required")
	}
	if in.ApprovalAmount.IsNegative() {
		return nil, fault.Validation("approval amount must not be negative")
	}

	var dto *JudgmentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Applications.GetByID(ctx, in.ApplicationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appDomain.ErrNotFound
			}
			return err
		}

		// At most one live judgment per application.
		if _, err := r.Judgments.GetByApplicationID(ctx, in.ApplicationID); err == nil {
			return judgmentDomain.ErrAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		id, err := r.Sequences.Next(ctx, sequence.ClassJudgments)
		if err != nil {
			return err
		}
		j := &judgmentDomain.Judgment{
			ID:             id,
			ApplicationID:  in.ApplicationID,
			Name:           in.Name,
			ApprovalAmount: in.ApprovalAmount,
			ApprovalRate:   in.ApprovalRate,
			Reason:         in.Reason,
			Status:         deriveStatus(in.ApprovalAmount, in.Reason),
		}
		if err := r.Judgments.Create(ctx, j); err != nil {
			return err
		}
		dto = toDTO(j)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) GetByApplication(ctx context.Context, applicationID uint64) (*JudgmentDTO, error) {
	j, err := u.repo.GetByApplicationID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, judgmentDomain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(j), nil
}
