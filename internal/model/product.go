package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit is the measurement unit a product is sold in.
type Unit string

const (
	UnitPCS   Unit = "PCS"
	UnitKG    Unit = "KG"
	UnitLiter Unit = "LITER"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitPCS, UnitKG, UnitLiter:
		return true
	}
	return false
}

// Status marks whether a product is visible to the POS screens.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Product is the catalog row. Schema is owned by the SQL migrations in
// internal/infra; the GORM tags here only document the mapping.
//
// SKU and Barcode are nullable: an absent SKU never participates in the
// uniqueness constraint (partial unique index, see migration 000002).
// Quantity is mutated only by AdjustQuantity — never by create/update.
type Product struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	Name      string          `gorm:"index;not null"`
	SKU       *string         `gorm:"column:sku"`
	Barcode   *string         `gorm:"column:barcode"`
	Unit      Unit            `gorm:"not null;default:'PCS'"`
	CostPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	SalePrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity  int             `gorm:"not null;default:0"`
	MinStock  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Status    Status          `gorm:"index;not null;default:'ACTIVE'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Product) TableName() string { return "products" }
