package constants

import "time"

// 会话
const (
	SessionDuration          = 365 * 24 * time.Hour // 会话有效期，约一年
	DefaultSessionCookieName = "dashboard_session"
)

// 手动登录使用的固定管理员身份
const (
	ManualAdminUsername = "admin"
	ManualAdminOpenID   = "admin-id"
	ManualAdminName     = "Administrator"
	ManualAdminEmail    = "admin@local"
)
