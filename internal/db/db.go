package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/omnarayansharma777/chronodim/domain"
	"github.com/omnarayansharma777/chronodim/internal/platform/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Open connects to the configured store and migrates the tables this module
// owns. Postgres is the production target; sqlite covers tests and local
// runs.
func Open(driver, dsn string, log *logger.Logger) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch driver {
	case DriverPostgres:
		dial = postgres.Open(dsn)
	case DriverSQLite:
		dial = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unknown db driver %q", driver)
	}

	log.Info("connecting to store", "driver", driver)
	gdb, err := gorm.Open(dial, &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to store: %w", err)
	}

	if err := AutoMigrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

// AutoMigrate creates or updates every table the reconciler reads or owns.
func AutoMigrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&domain.ActorFilm{},
		&domain.Actor{},
		&domain.ActorSCD{},
		&domain.ReconcileRun{},

		&domain.Game{},
		&domain.GameDetail{},
		&domain.Team{},
		&domain.Vertex{},
		&domain.Edge{},
	); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
