package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"insight-dashboard/app/server/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormStore struct {
	db          *gorm.DB
	ownerOpenID string
}

func (s *gormStore) UpsertUser(ctx context.Context, u UserUpsert) (*models.User, error) {
	// 插入值：按所有者规则决定角色，时间戳落在当前时刻
	user := models.User{
		OpenID:       u.OpenID,
		Role:         defaultRole(u.OpenID, u.Role, s.ownerOpenID),
		LastSignedIn: time.Now(),
	}

	// 冲突时只覆盖提供的字段，角色不在此处变更
	assigns := []string{"updated_at"}
	if u.Name != nil {
		user.Name = *u.Name
		assigns = append(assigns, "name")
	}
	if u.Email != nil {
		user.Email = *u.Email
		assigns = append(assigns, "email")
	}
	if u.LoginMethod != nil {
		user.LoginMethod = *u.LoginMethod
		assigns = append(assigns, "login_method")
	}
	if u.LastSignedIn != nil {
		user.LastSignedIn = *u.LastSignedIn
		assigns = append(assigns, "last_signed_in")
	}

	// 行级 upsert ：并发首次登录也只会落下一行，不依赖先查后插
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "open_id"}},
		DoUpdates: clause.AssignmentColumns(assigns),
	}).Create(&user).Error
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	// 冲突分支里本地对象不含库里的主键与既有字段，重新读取完整行
	return s.GetUserByOpenID(ctx, u.OpenID)
}

func (s *gormStore) GetUserByOpenID(ctx context.Context, openID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "open_id = ?", openID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &user, nil
}

func (s *gormStore) SaveWeatherRecord(ctx context.Context, record *models.WeatherRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *gormStore) LatestWeatherRecords(ctx context.Context, userID uint, limit int) ([]models.WeatherRecord, error) {
	records := []models.WeatherRecord{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (s *gormStore) SaveEnergyRecord(ctx context.Context, record *models.EnergyRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *gormStore) LatestEnergyRecords(ctx context.Context, userID uint, limit int) ([]models.EnergyRecord, error) {
	records := []models.EnergyRecord{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (s *gormStore) SaveLogisticsRecord(ctx context.Context, record *models.LogisticsRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *gormStore) LatestLogisticsRecords(ctx context.Context, userID uint, limit int) ([]models.LogisticsRecord, error) {
	records := []models.LogisticsRecord{}
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&records).Error
	return records, err
}

func (s *gormStore) LogApiCall(ctx context.Context, call *models.ApiCall) error {
	return s.db.WithContext(ctx).Create(call).Error
}

// 角色只在创建时决定：显式指定优先，否则按所有者规则
func defaultRole(openID string, role *string, ownerOpenID string) string {
	if role != nil {
		return *role
	}
	if ownerOpenID != "" && openID == ownerOpenID {
		return models.RoleAdmin
	}
	return models.RoleUser
}
