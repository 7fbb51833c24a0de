package main

import (
	"errors"
	"fmt"
	"log"

	"insight-dashboard/app/server/handlers"
	"insight-dashboard/app/server/inits"
	"insight-dashboard/app/server/jwt"
	"insight-dashboard/app/server/oauth"
	"insight-dashboard/app/server/store"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

func main() {
	// 初始化配置
	cfg, err := inits.Config()
	if err != nil {
		log.Fatal(fmt.Errorf("error loading config: %w", err))
	}

	// 初始化日志
	l, err := inits.Logger(!cfg.System.IsProd)
	if err != nil {
		log.Fatal(fmt.Errorf("error initializing logger: %w", err))
	}

	// 切换日志系统
	l.Debug("logger initialized")

	// 初始化存储：数据库不可用时在这里一次性降级到本地文件
	st := store.New(cfg.System.DBConnectionString, cfg.System.FallbackDBFile, cfg.Security.OwnerOpenID, l)

	// 初始化 redis 连接，缓存挂了不影响启动
	rdb, err := inits.Redis(cfg.System.RedisConnectionString)
	if err != nil {
		l.Warn("cache unavailable, continuing without it", zap.Error(err))
		rdb = nil
	}

	// 初始化会话令牌
	j, err := jwt.New(cfg.Security.SignatureSecretKey, cfg.OAuth.AppID)
	if err != nil {
		l.Fatal("error initializing JWT", zap.Error(err))
	}

	// 初始化 OAuth 客户端，流程在这里确定一次。未配置只关闭回调入口，
	// 手动登录等其他入口不受影响
	oc, err := oauth.New(cfg, l)
	if err != nil {
		if !errors.Is(err, oauth.ErrNotConfigured) {
			l.Fatal("error initializing OAuth client", zap.Error(err))
		}
		l.Warn("oauth is not configured, callback disabled")
		oc = nil
	}

	// 准备 handler app
	handlerApp := handlers.NewApp(l, st, rdb, j, oc, cfg)

	// 准备 echo 服务
	e := echo.New()
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			l.Info("request",
				zap.String("URI", v.URI),
				zap.Int("status", v.Status),
			)

			return nil
		},
	}))
	e.Use(middleware.Recover())

	// 绑定路由
	e.GET("/api/health", handlerApp.HealthCheck)
	e.GET("/api/oauth/callback", handlerApp.OAuthCallback)
	e.POST("/api/auth/login", handlerApp.AuthLogin)
	e.POST("/api/auth/logout", handlerApp.AuthLogout)
	e.GET("/api/auth/me", handlerApp.AuthMe)

	e.GET("/api/weather", handlerApp.WeatherLatest)
	e.POST("/api/weather", handlerApp.WeatherSave)
	e.GET("/api/energy", handlerApp.EnergyLatest)
	e.POST("/api/energy", handlerApp.EnergySave)
	e.GET("/api/logistics", handlerApp.LogisticsLatest)
	e.POST("/api/logistics", handlerApp.LogisticsSave)

	// 启动 echo 服务
	if err := e.Start(cfg.System.Listen); err != nil {
		l.Fatal("shutting down the server", zap.Error(err))
	}
}
