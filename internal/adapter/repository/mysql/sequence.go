package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// sequenceRow is one per-class counter. value is the last ID handed out.
type sequenceRow struct {
	Class string `gorm:"primaryKey;size:64;column:class"`
	Value uint64 `gorm:"not null;column:value"`
}

func (sequenceRow) TableName() string { return "sequences" }

// Migrate creates the counter table; entity tables are migrated from their
// domain models by the caller.
func Migrate(db *gorm.DB) error { return db.AutoMigrate(&sequenceRow{}) }

// SequenceAllocator implements sequence.Allocator on a counter table.
// The row is locked for the duration of the surrounding transaction, so two
// concurrent allocations for the same class cannot read the same value.
type SequenceAllocator struct{ db *gorm.DB }

func NewSequenceAllocator(db *gorm.DB) *SequenceAllocator { return &SequenceAllocator{db: db} }

func (s *SequenceAllocator) Next(ctx context.Context, class string) (uint64, error) {
	var row sequenceRow
	err := forUpdate(s.db.WithContext(ctx)).
		Where("class = ?", class).
		First(&row).Error
	switch {
	case err == nil:
		row.Value++
		if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
			return 0, err
		}
		return row.Value, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		// First allocation for this class: seed from the highest ID already
		// present in the collection. Retired rows still occupy ID space, so
		// the scan deliberately ignores the soft-delete filter.
		next, err := s.seed(ctx, class)
		if err != nil {
			return 0, err
		}
		return next, nil
	default:
		return 0, err
	}
}

func (s *SequenceAllocator) seed(ctx context.Context, class string) (uint64, error) {
	var max uint64
	if err := s.db.WithContext(ctx).
		Table(class).
		Select("COALESCE(MAX(id), 0)").
		Scan(&max).Error; err != nil {
		return 0, err
	}
	row := sequenceRow{Class: class, Value: max + 1}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return 0, err
	}
	return row.Value, nil
}

// forUpdate adds a row lock on dialects that support it. SQLite (tests) has
// no FOR UPDATE; its single-writer semantics cover the same ground.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
