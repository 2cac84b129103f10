package application

import (
	"time"

	"loanledger/internal/domain/fault"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound = fault.NotFound("application not found")
)

// Application is the lifecycle anchor: created by intake, enriched by the
// judgment and contract flows. ApprovalAmount and ContractedAt stay empty
// until contracting copies the judgment's decision over.
type Application struct {
	// Allocated by the sequence allocator, not by the database.
	ID              uint64          `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Name            string          `gorm:"size:128;not null" json:"name"`
	Phone           string          `gorm:"size:32;not null" json:"phone"`
	Email           string          `gorm:"size:128;not null" json:"email"`
	RequestedAmount decimal.Decimal `gorm:"type:decimal(18,2)" json:"requested_amount"`
	// Pre-approval terms; optional at intake.
	InterestRate   *float64            `gorm:"type:decimal(6,4)" json:"interest_rate,omitempty"`
	Fee            *float64            `gorm:"type:decimal(18,2)" json:"fee,omitempty"`
	MaturityMonths *int                `json:"maturity_months,omitempty"`
	AppliedAt      time.Time           `json:"applied_at"`
	ApprovalAmount decimal.NullDecimal `gorm:"type:decimal(18,2)" json:"approval_amount,omitempty"`
	ContractedAt   *time.Time          `json:"contracted_at,omitempty"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt      `gorm:"index" json:"-"`
}

func (Application) TableName() string { return "applications" }

// Contracted reports whether the application has passed the contracting step.
// Entries and repayments are illegal before that.
func (a *Application) Contracted() bool { return a.ContractedAt != nil }
