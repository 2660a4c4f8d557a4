package testutil

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/omnarayansharma777/chronodim/internal/db"
	"github.com/omnarayansharma777/chronodim/internal/platform/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg = logger.Nop()
	})
	return logg
}

var dbSeq atomic.Int64

// DB opens a fresh in-memory sqlite store with the full schema. Each caller
// gets its own named shared-cache database, so every pooled connection sees
// the same tables while tests stay independent of each other.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:repotest%d?mode=memory&cache=shared", dbSeq.Add(1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	tb.Cleanup(func() {
		_ = db.Close(gdb)
	})
	return gdb
}

// Tx wraps a test in a transaction rolled back at cleanup.
func Tx(tb testing.TB, gdb *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := gdb.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func PtrInt(v int) *int { return &v }
