package mysql

import (
	"testing"
	"time"

	agreementDomain "loanledger/internal/domain/agreement"
	appDomain "loanledger/internal/domain/application"
	contractDomain "loanledger/internal/domain/contract"
	judgmentDomain "loanledger/internal/domain/judgment"
	ledgerDomain "loanledger/internal/domain/ledger"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB migrates the full schema into an in-memory sqlite database.
// The domain models are sqlite-safe (no enum columns), so the production
// models migrate directly.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// each pooled connection gets its own :memory: database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(
		&appDomain.Application{},
		&judgmentDomain.Judgment{},
		&contractDomain.Contract{},
		&ledgerDomain.Balance{},
		&ledgerDomain.Entry{},
		&ledgerDomain.Repayment{},
		&agreementDomain.Terms{},
		&agreementDomain.Acceptance{},
	); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate sequences: %v", err)
	}
	return db
}

func makeApplication(id uint64) *appDomain.Application {
	return &appDomain.Application{
		ID:              id,
		Name:            "Borrower",
		Phone:           "+81-90-0000-0000",
		Email:           "borrower@example.com",
		RequestedAmount: decimal.NewFromInt(10_000),
		AppliedAt:       time.Now().UTC(),
	}
}

func contractedApplication(id uint64, amount int64) *appDomain.Application {
	a := makeApplication(id)
	now := time.Now().UTC()
	a.ContractedAt = &now
	a.ApprovalAmount = decimal.NullDecimal{Decimal: decimal.NewFromInt(amount), Valid: true}
	return a
}
