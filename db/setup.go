package db

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/stitchbook-dev/stitchbook/internal/config"
	"github.com/stitchbook-dev/stitchbook/internal/logging"
	"github.com/stitchbook-dev/stitchbook/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured database. The caller owns the handle and
// must Close it at shutdown.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger:         logging.GORM(log, cfg.SlowThreshold),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)

	switch cfg.Driver {
	case config.DriverPostgres:
		db, err = gorm.Open(postgres.Open(cfg.URL), gormConfig)
	case config.DriverSQLite:
		db, err = gorm.Open(sqlite.Open(sqliteDSN(cfg.URL)), gormConfig)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	if err != nil {
		return nil, err
	}

	if cfg.Driver == config.DriverSQLite {
		if err := configureSQLite(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func sqliteDSN(url string) string {
	if url == ":memory:" {
		return "file::memory:?_foreign_keys=on"
	}
	if strings.Contains(url, "?") {
		return url + "&_foreign_keys=on"
	}
	return url + "?_foreign_keys=on"
}

// SQLite enforces cascades per connection, so the pool is pinned to one
// connection with foreign keys switched on.
func configureSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(1)

	return db.Exec("PRAGMA foreign_keys = ON").Error
}

func MigrateDatabase(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...)
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
