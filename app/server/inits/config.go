package inits

import (
	"fmt"
	"os"
	"strings"

	"insight-dashboard/app/server/config"
	"insight-dashboard/app/server/constants"

	"github.com/joho/godotenv"
)

func Config() (cfg *config.Config, err error) {
	// 本地开发时从 .env 读取，文件不存在也没关系
	_ = godotenv.Load()

	cfg = &config.Config{}

	// 手动配置映射，如果这里有什么自动映射工具就好了， viper 好像处理这种基于环境变量的配置也不是很方便
	{
		mode, exist := os.LookupEnv("MODE")
		cfg.System.IsProd = exist && strings.HasPrefix(strings.ToLower(mode), "p")
	}

	if listen, exist := os.LookupEnv("LISTEN"); !exist {
		cfg.System.Listen = ":1323" // 默认监听地址
	} else {
		cfg.System.Listen = listen
	}

	// 数据库和缓存都是可选的：数据库不可用（或未配置）时降级到本地 JSON 文件
	cfg.System.DBConnectionString = os.Getenv("DB_CONN")
	cfg.System.RedisConnectionString = os.Getenv("REDIS_CONN")

	if fallback, exist := os.LookupEnv("FALLBACK_DB_FILE"); !exist {
		cfg.System.FallbackDBFile = constants.DefaultFallbackDBFile
	} else {
		cfg.System.FallbackDBFile = fallback
	}

	cfg.OAuth.AppID = strings.TrimSpace(os.Getenv("OAUTH_APP_ID"))
	cfg.OAuth.ClientSecret = strings.TrimSpace(os.Getenv("OAUTH_CLIENT_SECRET"))
	cfg.OAuth.PortalURL = strings.TrimSpace(os.Getenv("OAUTH_PORTAL_URL"))

	if sigsk, exist := os.LookupEnv("SIGNATURE_SECRET_KEY"); !exist {
		return nil, fmt.Errorf("SIGNATURE_SECRET_KEY environment variable not set")
	} else {
		cfg.Security.SignatureSecretKey = sigsk
	}

	cfg.Security.OwnerOpenID = strings.TrimSpace(os.Getenv("OWNER_OPEN_ID"))

	if cookieName, exist := os.LookupEnv("SESSION_COOKIE_NAME"); !exist {
		cfg.Security.SessionCookieName = constants.DefaultSessionCookieName
	} else {
		cfg.Security.SessionCookieName = cookieName
	}

	cfg.Security.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")

	return cfg, nil
}
