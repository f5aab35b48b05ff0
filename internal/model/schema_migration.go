package model

import "time"

// SchemaMigration is one row of the append-only migration ledger. Rows are
// written once, inside the same transaction as the unit they record, and
// never updated or deleted.
type SchemaMigration struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"uniqueIndex;not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string { return "_migrations" }
