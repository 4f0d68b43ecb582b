package database

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"caption-studio-server/config"
	"caption-studio-server/models"
	pkgLogger "caption-studio-server/pkg/logger"
)

// DB holds export job records. Editing sessions never touch it.
var DB *gorm.DB

func InitDatabase(cfg *config.Config) error {
	db, err := gorm.Open(mysql.Open(cfg.GetDSN()), &gorm.Config{
		Logger: newGormLogger(cfg.Server.Mode),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Traffic is one insert per export plus encoder status updates.
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpen)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdle)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	DB = db
	if err := AutoMigrate(); err != nil {
		return fmt.Errorf("failed to migrate export jobs: %w", err)
	}

	pkgLogger.WithFields(logrus.Fields{
		"host":     cfg.Database.Host,
		"database": cfg.Database.DBName,
	}).Info("Database connected")
	return nil
}

func newGormLogger(mode string) logger.Interface {
	level := logger.Warn
	if mode == "debug" {
		level = logger.Info
	}
	return logger.New(pkgLogger.Logger, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}

func AutoMigrate() error {
	return DB.AutoMigrate(&models.ExportJob{})
}

func GetDB() *gorm.DB {
	return DB
}

func Close() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
