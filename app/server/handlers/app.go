package handlers

import (
	"insight-dashboard/app/server/config"
	"insight-dashboard/app/server/jwt"
	"insight-dashboard/app/server/oauth"
	"insight-dashboard/app/server/store"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type App struct {
	l     *zap.Logger   // 日志
	store store.Store   // 用户与记录的持久化，后端在启动时已决定
	rdb   *redis.Client // Redis ，可能为 nil （未配置缓存）
	jwt   *jwt.JWT      // 会话令牌，用于无状态验证
	oauth *oauth.Client // OAuth 交换客户端
	cfg   *config.Config
}

func NewApp(l *zap.Logger, st store.Store, rdb *redis.Client, j *jwt.JWT, oc *oauth.Client, cfg *config.Config) *App {
	return &App{
		l:     l,
		store: st,
		rdb:   rdb,
		jwt:   j,
		oauth: oc,
		cfg:   cfg,
	}
}
