package database

import (
	"fmt"

	"hospital-gin/internal/config"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Record Store selected by cfg.StoreDriver.
func InitDB(cfg *config.Config, logger *zap.Logger) (Store, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.StoreJSON:
		logger.Info("Using JSON file store", zap.String("data_dir", cfg.DataDir))
		return NewJSONStore(cfg.DataDir, logger)
	case config.StorePostgres:
		dialector = postgres.Open(cfg.PostgresURI)
	case config.StoreMySQL:
		dialector = mysql.Open(cfg.MySQLDSN)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.StoreDriver, err)
	}
	store := NewGormStore(db)
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	logger.Info("Using SQL store", zap.String("driver", cfg.StoreDriver))
	return store, nil
}
