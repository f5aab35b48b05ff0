package infra

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the single-file SQLite store behind GORM.
//
// Pragmas: WAL for crash safety, foreign_keys on, and a busy timeout so a
// write that hits a momentarily-held lock waits instead of failing. The
// connection pool is capped at one open connection — the store has exactly
// one logical writer, and a single connection makes every transaction the
// unit of isolation without lock contention between pool members.
func NewDatabase(path string, busyTimeoutMS int) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)",
		path, busyTimeoutMS,
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %s: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	return db, nil
}
