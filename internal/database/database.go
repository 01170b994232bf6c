package database

import (
	"fmt"
	"time"

	"collabhub_backend/internal/config"
	"collabhub_backend/internal/logger"
	"collabhub_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect открывает соединение с PostgreSQL и настраивает пул
func Connect(cfg config.DatabaseConfig, env string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), GormConfig(env))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// GormConfig - общие настройки gorm. TranslateError нужен, чтобы
// нарушение уникального индекса приходило как gorm.ErrDuplicatedKey.
func GormConfig(env string) *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		Logger:         logger.NewGormLogger(env),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Models - все модели, которыми управляет AutoMigrate
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&models.BrandProfile{},
		&models.InfluencerProfile{},
		&models.Event{},
		&models.EventInterest{},
		&models.Message{},
	}
}

// AutoMigrate выполняет миграцию всех моделей
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// IsPostgres - часть запросов (блокировки, jsonb-операторы) зависит от диалекта
func IsPostgres(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}
