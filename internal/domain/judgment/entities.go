package judgment

import (
	"time"

	"loanledger/internal/domain/fault"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotFound      = fault.NotFound("judgment not found")
	ErrAlreadyExists = fault.Conflict("judgment already exists for application")
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Judgment is the underwriting decision for one application. Status is an
// explicit enum; the approval amount alone never encodes pending vs rejected.
type Judgment struct {
	ID             uint64          `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	ApplicationID  uint64          `gorm:"not null;index:idx_judgments_application" json:"application_id"`
	Name           string          `gorm:"size:128;not null" json:"name"`
	ApprovalAmount decimal.Decimal `gorm:"type:decimal(18,2)" json:"approval_amount"`
	ApprovalRate   float64         `gorm:"type:decimal(6,4)" json:"approval_rate"`
	Reason         string          `gorm:"type:text" json:"reason,omitempty"`
	Status         Status          `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Judgment) TableName() string { return "judgments" }

func (j *Judgment) Approved() bool { return j.Status == StatusApproved }
