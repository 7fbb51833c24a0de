package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"insight-dashboard/app/server/models"

	"go.uber.org/zap"
)

// 回退存储：整个集合保存在一个 JSON 文件里，每次操作都是完整的读改写。
// 互斥锁只保护进程内的并发，跨进程写入没有保护，只适合单实例运行
type fileStore struct {
	path        string
	ownerOpenID string
	mu          sync.Mutex
	l           *zap.Logger
}

type localDocument struct {
	Users            []models.User            `json:"users"`
	WeatherRecords   []models.WeatherRecord   `json:"weatherRecords"`
	EnergyRecords    []models.EnergyRecord    `json:"energyRecords"`
	LogisticsRecords []models.LogisticsRecord `json:"logisticsRecords"`
	ApiCalls         []models.ApiCall         `json:"apiCalls"`
}

func newFileStore(path string, ownerOpenID string, l *zap.Logger) *fileStore {
	return &fileStore{path: path, ownerOpenID: ownerOpenID, l: l}
}

func (s *fileStore) read() *localDocument {
	doc := &localDocument{}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.l.Warn("failed to read local db file", zap.String("path", s.path), zap.Error(err))
		}
		return doc
	}

	if err := json.Unmarshal(raw, doc); err != nil {
		// 损坏的文件按空文档处理
		s.l.Warn("failed to parse local db file", zap.String("path", s.path), zap.Error(err))
		return &localDocument{}
	}

	return doc
}

func (s *fileStore) write(doc *localDocument) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal local db: %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("write local db file: %w", err)
	}

	return nil
}

func (s *fileStore) UpsertUser(_ context.Context, u UserUpsert) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	now := time.Now()

	for i := range doc.Users {
		if doc.Users[i].OpenID != u.OpenID {
			continue
		}

		// 已存在：只合并提供的字段
		user := &doc.Users[i]
		if u.Name != nil {
			user.Name = *u.Name
		}
		if u.Email != nil {
			user.Email = *u.Email
		}
		if u.LoginMethod != nil {
			user.LoginMethod = *u.LoginMethod
		}
		if u.LastSignedIn != nil {
			user.LastSignedIn = *u.LastSignedIn
		}
		user.UpdatedAt = now

		if err := s.write(doc); err != nil {
			return nil, err
		}

		found := *user
		return &found, nil
	}

	// 首次创建
	user := models.User{
		ID:           uint(len(doc.Users) + 1),
		OpenID:       u.OpenID,
		Role:         defaultRole(u.OpenID, u.Role, s.ownerOpenID),
		CreatedAt:    now,
		UpdatedAt:    now,
		LastSignedIn: now,
	}
	if u.Name != nil {
		user.Name = *u.Name
	}
	if u.Email != nil {
		user.Email = *u.Email
	}
	if u.LoginMethod != nil {
		user.LoginMethod = *u.LoginMethod
	}
	if u.LastSignedIn != nil {
		user.LastSignedIn = *u.LastSignedIn
	}

	doc.Users = append(doc.Users, user)
	if err := s.write(doc); err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *fileStore) GetUserByOpenID(_ context.Context, openID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	for i := range doc.Users {
		if doc.Users[i].OpenID == openID {
			user := doc.Users[i]
			return &user, nil
		}
	}

	return nil, ErrUserNotFound
}

func (s *fileStore) SaveWeatherRecord(_ context.Context, record *models.WeatherRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	record.ID = uint(len(doc.WeatherRecords) + 1)
	stampRecord(&record.CreatedAt, &record.UpdatedAt)
	doc.WeatherRecords = append(doc.WeatherRecords, *record)

	return s.write(doc)
}

func (s *fileStore) LatestWeatherRecords(_ context.Context, userID uint, limit int) ([]models.WeatherRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	records := []models.WeatherRecord{}
	// 追加写入保证了时间顺序，倒序遍历即可拿到最新记录
	for i := len(doc.WeatherRecords) - 1; i >= 0 && len(records) < limit; i-- {
		if doc.WeatherRecords[i].UserID == userID {
			records = append(records, doc.WeatherRecords[i])
		}
	}

	return records, nil
}

func (s *fileStore) SaveEnergyRecord(_ context.Context, record *models.EnergyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	record.ID = uint(len(doc.EnergyRecords) + 1)
	stampRecord(&record.CreatedAt, &record.UpdatedAt)
	doc.EnergyRecords = append(doc.EnergyRecords, *record)

	return s.write(doc)
}

func (s *fileStore) LatestEnergyRecords(_ context.Context, userID uint, limit int) ([]models.EnergyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	records := []models.EnergyRecord{}
	for i := len(doc.EnergyRecords) - 1; i >= 0 && len(records) < limit; i-- {
		if doc.EnergyRecords[i].UserID == userID {
			records = append(records, doc.EnergyRecords[i])
		}
	}

	return records, nil
}

func (s *fileStore) SaveLogisticsRecord(_ context.Context, record *models.LogisticsRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	record.ID = uint(len(doc.LogisticsRecords) + 1)
	stampRecord(&record.CreatedAt, &record.UpdatedAt)
	doc.LogisticsRecords = append(doc.LogisticsRecords, *record)

	return s.write(doc)
}

func (s *fileStore) LatestLogisticsRecords(_ context.Context, userID uint, limit int) ([]models.LogisticsRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	records := []models.LogisticsRecord{}
	for i := len(doc.LogisticsRecords) - 1; i >= 0 && len(records) < limit; i-- {
		if doc.LogisticsRecords[i].UserID == userID {
			records = append(records, doc.LogisticsRecords[i])
		}
	}

	return records, nil
}

func (s *fileStore) LogApiCall(_ context.Context, call *models.ApiCall) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := s.read()
	call.ID = uint(len(doc.ApiCalls) + 1)
	if call.CreatedAt.IsZero() {
		call.CreatedAt = time.Now()
	}
	doc.ApiCalls = append(doc.ApiCalls, *call)

	return s.write(doc)
}

func stampRecord(createdAt *time.Time, updatedAt *time.Time) {
	now := time.Now()
	if createdAt.IsZero() {
		*createdAt = now
	}
	*updatedAt = now
}
