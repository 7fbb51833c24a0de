package models

import "time"

// 外部 API 调用记录，跟踪响应时间与错误
type ApiCall struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"column:user_id;index" json:"userId"`

	ApiName      string `gorm:"column:api_name" json:"apiName"` // weather 、 logistics 、 energy
	Endpoint     string `gorm:"column:endpoint" json:"endpoint"`
	Method       string `gorm:"column:method" json:"method"`
	StatusCode   int    `gorm:"column:status_code" json:"statusCode"`
	ResponseTime int    `gorm:"column:response_time" json:"responseTime"` // 响应时间 (ms)
	Success      bool   `gorm:"column:success" json:"success"`
	ErrorMessage string `gorm:"column:error_message" json:"errorMessage,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}
