package store

import (
	"context"
	"errors"
	"time"

	"insight-dashboard/app/server/models"
)

var ErrUserNotFound = errors.New("user not found")

// 部分更新：只合并调用方提供的字段。 Role 只在创建时生效，之后不再变更
type UserUpsert struct {
	OpenID       string
	Name         *string
	Email        *string
	LoginMethod  *string
	Role         *string
	LastSignedIn *time.Time
}

// Store 的后端在进程启动时由 New 决定一次，之后不再切换
type Store interface {
	UpsertUser(ctx context.Context, user UserUpsert) (*models.User, error)
	GetUserByOpenID(ctx context.Context, openID string) (*models.User, error)

	SaveWeatherRecord(ctx context.Context, record *models.WeatherRecord) error
	LatestWeatherRecords(ctx context.Context, userID uint, limit int) ([]models.WeatherRecord, error)

	SaveEnergyRecord(ctx context.Context, record *models.EnergyRecord) error
	LatestEnergyRecords(ctx context.Context, userID uint, limit int) ([]models.EnergyRecord, error)

	SaveLogisticsRecord(ctx context.Context, record *models.LogisticsRecord) error
	LatestLogisticsRecords(ctx context.Context, userID uint, limit int) ([]models.LogisticsRecord, error)

	LogApiCall(ctx context.Context, call *models.ApiCall) error
}
