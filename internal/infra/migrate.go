package infra

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ibrahimafzalmalik/pos-system-nhs/internal/model"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// migrationUnit is a named block of schema statements applied at most once.
// Units are compiled in rather than discovered on disk so the apply order
// never depends on the filesystem.
type migrationUnit struct {
	Name       string
	Statements []string
}

var migrationUnits = []migrationUnit{
	{
		Name: "000001_create_products",
		Statements: []string{
			`CREATE TABLE IF NOT EXISTS products (
				id         INTEGER PRIMARY KEY AUTOINCREMENT,
				name       TEXT     NOT NULL,
				sku        TEXT,
				barcode    TEXT,
				unit       TEXT     NOT NULL DEFAULT 'PCS',
				cost_price NUMERIC  NOT NULL DEFAULT 0,
				sale_price NUMERIC  NOT NULL DEFAULT 0,
				quantity   INTEGER  NOT NULL DEFAULT 0,
				min_stock  NUMERIC  NOT NULL DEFAULT 0,
				status     TEXT     NOT NULL DEFAULT 'ACTIVE',
				created_at DATETIME NOT NULL,
				updated_at DATETIME NOT NULL
			)`,
		},
	},
	{
		Name: "000002_products_indexes",
		Statements: []string{
			// Partial unique index: NULL and empty skus never collide.
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_products_sku
				ON products (sku) WHERE sku IS NOT NULL AND sku <> ''`,
			`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name)`,
			`CREATE INDEX IF NOT EXISTS idx_products_status ON products (status)`,
		},
	},
}

const ledgerDDL = `CREATE TABLE IF NOT EXISTS _migrations (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT     NOT NULL UNIQUE,
	applied_at DATETIME NOT NULL
)`

// ApplyPending brings the schema up to date. Idempotent, safe on every
// startup; a failed unit rolls back entirely (DDL and ledger row together)
// and the error is fatal upstream — the app never runs on a partial schema.
func ApplyPending(db *gorm.DB) error {
	return applyUnits(db, migrationUnits)
}

func applyUnits(db *gorm.DB, units []migrationUnit) error {
	if err := db.Exec(ledgerDDL).Error; err != nil {
		return fmt.Errorf("create migration ledger: %w", err)
	}

	var names []string
	if err := db.Model(&model.SchemaMigration{}).Pluck("name", &names).Error; err != nil {
		return fmt.Errorf("read migration ledger: %w", err)
	}
	applied := make(map[string]bool, len(names))
	for _, n := range names {
		applied[n] = true
	}

	sorted := make([]migrationUnit, len(units))
	copy(sorted, units)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	for _, unit := range sorted {
		if applied[unit.Name] {
			continue
		}
		// Empty units are skipped and never recorded; re-scanning them on the
		// next startup is harmless.
		if empty(unit) {
			log.Debug().Str("migration", unit.Name).Msg("empty migration unit, skipped")
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			for _, stmt := range unit.Statements {
				if strings.TrimSpace(stmt) == "" {
					continue
				}
				if err := tx.Exec(stmt).Error; err != nil {
					return err
				}
			}
			return tx.Create(&model.SchemaMigration{
				Name:      unit.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", unit.Name, err)
		}
		log.Info().Str("migration", unit.Name).Msg("applied migration")
	}
	return nil
}

func empty(u migrationUnit) bool {
	for _, stmt := range u.Statements {
		if strings.TrimSpace(stmt) != "" {
			return false
		}
	}
	return true
}
