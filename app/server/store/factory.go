package store

import (
	"fmt"

	"insight-dashboard/app/server/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// New 在进程启动时探测一次数据库可用性并决定后端。探测失败只降级不报错，
// 之后整个进程生命周期都停留在回退存储上，不会再尝试数据库
func New(dsn string, fallbackPath string, ownerOpenID string, l *zap.Logger) Store {
	if dsn == "" {
		l.Info("no database configured, using local file store", zap.String("path", fallbackPath))
		return newFileStore(fallbackPath, ownerOpenID, l)
	}

	db, err := openAndProbe(dsn)
	if err != nil {
		l.Warn("database unavailable, falling back to local file store",
			zap.String("path", fallbackPath),
			zap.Error(err),
		)
		return newFileStore(fallbackPath, ownerOpenID, l)
	}

	l.Info("database connected")
	return &gormStore{db: db, ownerOpenID: ownerOpenID}
}

func openAndProbe(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// 迁移
	if err := db.AutoMigrate(
		&models.User{},
		&models.WeatherRecord{},
		&models.EnergyRecord{},
		&models.LogisticsRecord{},
		&models.ApiCall{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// 廉价的存在性查询确认表可用
	var counter int64
	if err := db.Model(&models.User{}).Limit(1).Count(&counter).Error; err != nil {
		return nil, fmt.Errorf("failed to probe users table: %w", err)
	}

	return db, nil
}
