package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func TestApplicationRepository_CreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	a := makeApplication(1)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Email != a.Email || !got.RequestedAmount.Equal(a.RequestedAmount) {
		t.Errorf("unexpected application: %+v", got)
	}
}

func TestApplicationRepository_SaveUpdates(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	a := makeApplication(2)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}

	now := time.Now().UTC()
	a.ContractedAt = &now
	a.ApprovalAmount = decimal.NullDecimal{Decimal: decimal.NewFromInt(8000), Valid: true}
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByID(ctx, 2)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.ContractedAt == nil {
		t.Fatal("ContractedAt not persisted")
	}
	if !got.ApprovalAmount.Valid || !got.ApprovalAmount.Decimal.Equal(decimal.NewFromInt(8000)) {
		t.Errorf("ApprovalAmount = %+v", got.ApprovalAmount)
	}
}

func TestApplicationRepository_NotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestApplicationRepository_RetiredExcludedFromReads(t *testing.T) {
	db := openTestDB(t)
	repo := NewApplicationRepository(db)
	ctx := context.Background()

	a := makeApplication(3)
	if err := repo.Create(ctx, a); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.Delete(a).Error; err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, 3); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("retired application still readable, err=%v", err)
	}

	// the row physically remains for audit
	var n int64
	if err := db.Table("applications").Where("id = ?", 3).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("row count = %d, want 1 (soft delete must not remove the row)", n)
	}
}
