package ledger

import (
	"time"

	"loanledger/internal/domain/fault"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrBalanceNotFound     = fault.NotFound("balance not found")
	ErrBalanceExists       = fault.Conflict("balance already exists for application")
	ErrNoBalance           = fault.Unprocessable("application has no balance")
	ErrNotContracted       = fault.Unprocessable("application is not contracted")
	ErrInsufficientBalance = fault.Validation("insufficient balance")
	ErrNonPositiveAmount   = fault.Validation("amount must be positive")
	ErrNegativeAmount      = fault.Validation("amount must not be negative")
)

// Balance is the single outstanding-principal counter per application.
// It is never written directly by callers: entries credit it, repayments
// debit it, both inside the same transaction that records the event.
// Invariant: Amount >= 0 at all times.
type Balance struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ApplicationID uint64          `gorm:"not null;index:idx_balances_application" json:"application_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Balance) TableName() string { return "balances" }

// Entry is an append-only credit event: funds disbursed to the borrower.
type Entry struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ApplicationID uint64          `gorm:"not null;index:idx_entries_application" json:"application_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Entry) TableName() string { return "entries" }

// Repayment is an append-only debit event: funds returned by the borrower.
type Repayment struct {
	ID            uint64          `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ApplicationID uint64          `gorm:"not null;index:idx_repayments_application" json:"application_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2)" json:"amount"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Repayment) TableName() string { return "repayments" }
