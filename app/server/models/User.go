package models

import "time"

// 角色只有两种：admin 仅在首次创建时按所有者规则赋予，之后不再变更
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID uint `gorm:"primarykey" json:"id"`

	// 基础信息
	OpenID      string `gorm:"column:open_id;uniqueIndex" json:"openId"` // 身份提供方签发的稳定标识，全局唯一
	Name        string `gorm:"column:name" json:"name"`                  // 显示名称
	Email       string `gorm:"column:email" json:"email"`
	LoginMethod string `gorm:"column:login_method" json:"loginMethod"` // 登录方式（google 、 email 、 manual 等）
	Role        string `gorm:"column:role;default:user" json:"role"`

	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	LastSignedIn time.Time `gorm:"column:last_signed_in" json:"lastSignedIn"` // 最后一次成功认证的时间
}
