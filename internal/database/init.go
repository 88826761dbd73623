package database

import (
	"fmt"
	"time"

	"github.com/voxatu/scribe/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func InitDB(cfg *config.Settings) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	if cfg.DB.PoolSize > 0 {
		sqlDB.SetMaxOpenConns(cfg.DB.PoolSize)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
