package database

import (
	"fmt"
	"sync/atomic"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fwtracker/backend/internal/domain"
)

var testDBSeq atomic.Int64

// NewTest opens a fresh in-memory SQLite database with the full schema
// migrated. Each call gets its own database; the shared cache keeps it
// alive across pooled connections, and a single open connection avoids
// writer contention in tests.
func NewTest() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(domain.AllModels()...); err != nil {
		return nil, err
	}
	return db, nil
}
