package config

type Config struct {
	System struct {
		IsProd                bool   // 是否为生产环境
		Listen                string // 监听地址
		DBConnectionString    string // Postgres 数据库的连接字符串，为空时直接使用本地 JSON 回退存储
		RedisConnectionString string // Redis 数据库的连接字符串，为空时不启用缓存
		FallbackDBFile        string // 回退存储使用的 JSON 文件路径
	}
	OAuth struct {
		AppID        string // OAuth 客户端 ID ，同时写入会话的 appId
		ClientSecret string // 直连流程使用的客户端密钥
		PortalURL    string // OAuth 门户服务地址，设置后走门户流程
	}
	Security struct {
		SignatureSecretKey string // 签名密钥，用于签发会话令牌，更新会导致旧有会话失效
		OwnerOpenID        string // 所有者的 openId ，首次创建用户时赋予 admin 角色
		SessionCookieName  string // 会话 cookie 名称
		AdminPasswordHash  string // 手动登录密码的 argon2id hash ，为空时禁用手动登录
	}
}
