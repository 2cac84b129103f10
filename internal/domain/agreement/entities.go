package agreement

import (
	"time"

	"loanledger/internal/domain/fault"

	"gorm.io/gorm"
)

var (
	ErrTermsNotFound = fault.NotFound("terms not found")
)

// Terms is a versioned agreement document. Required terms gate lifecycle
// operations on the caller side; this engine only tracks acceptance.
type Terms struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	Version   int            `gorm:"not null" json:"version"`
	Title     string         `gorm:"size:255;not null" json:"title"`
	Body      string         `gorm:"type:text" json:"body"`
	Required  bool           `gorm:"not null;default:false" json:"required"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Terms) TableName() string { return "terms" }

// Acceptance records that a user accepted one Terms document. Re-recording a
// user's agreement set retires the previous acceptances rather than merging.
type Acceptance struct {
	ID         uint64         `gorm:"primaryKey;autoIncrement:false;column:id" json:"id"`
	UserID     uint64         `gorm:"not null;index:idx_acceptances_user" json:"user_id"`
	TermsID    uint64         `gorm:"not null" json:"terms_id"`
	AcceptedAt time.Time      `json:"accepted_at"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Acceptance) TableName() string { return "acceptances" }
