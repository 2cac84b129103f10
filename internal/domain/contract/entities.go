package contract

import (
	"time"

	"loanledger/internal/domain/fault"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound          = fault.NotFound("contract not found")
	ErrAlreadyExists     = fault.Conflict("contract already exists for application")
	ErrInvalidTransition = fault.Unprocessable("illegal contract status transition")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusSigned    Status = "signed"
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// transitions: pending → signed → active → completed; cancelled is reachable
// from every non-terminal state. Same-status updates are idempotent no-ops.
var transitions = map[Status][]Status{
	StatusPending: {StatusSigned, StatusCancelled},
	StatusSigned:  {StatusActive, StatusCancelled},
	StatusActive:  {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether from → to is a legal step.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s Status) Terminal() bool { return s == StatusCompleted || s == StatusCancelled }

func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusSigned, StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Contract binds an approved judgment to its application. Activation is the
// single event that funds the borrower's balance.
type Contract struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ApplicationID uint64          `gorm:"not null;index:idx_contracts_application" json:"application_id"`
	JudgmentID    uint64          `gorm:"not null" json:"judgment_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	Rate          float64         `gorm:"type:decimal(6,4)" json:"rate"`
	TermMonths    int             `gorm:"not null" json:"term_months"`
	Status        Status          `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	SignedAt      *time.Time      `json:"signed_at,omitempty"`
	ActivatedAt   *time.Time      `json:"activated_at,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Contract) TableName() string { return "contracts" }
