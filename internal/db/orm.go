package db

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	models "ecofly/radar/internal/models/gorm"
)

// DefaultDSN is a shared in-memory sqlite database.
const DefaultDSN = "file::memory:?cache=shared"

// IsPostgres reports whether dsn addresses a postgres server.
func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// Open connects to the catalog database and migrates its schema. Postgres
// DSNs select the postgres driver; anything else is handed to sqlite.
func Open(dsn string, log *zap.SugaredLogger) (*gorm.DB, error) {
	if dsn == "" {
		dsn = DefaultDSN
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	dialector, driver := sqlite.Open(dsn), "sqlite"
	if IsPostgres(dsn) {
		dialector, driver = postgres.Open(dsn), "postgres"
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	if err := db.AutoMigrate(&models.Airport{}); err != nil {
		return nil, fmt.Errorf("failed to migrate catalog schema: %w", err)
	}

	log.Infow("connected to catalog store via GORM", "driver", driver)
	return db, nil
}
