package models

import "time"

type LogisticsRecord struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"column:user_id;index" json:"userId"`

	TrackingNumber string `gorm:"column:tracking_number" json:"trackingNumber"`
	Status         string `gorm:"column:status" json:"status"`           // 配送状态
	Origin         string `gorm:"column:origin" json:"origin"`           // 出发地
	Destination    string `gorm:"column:destination" json:"destination"` // 目的地
	Carrier        string `gorm:"column:carrier" json:"carrier,omitempty"`

	EstimatedDelivery *time.Time `gorm:"column:estimated_delivery" json:"estimatedDelivery,omitempty"`
	ActualDelivery    *time.Time `gorm:"column:actual_delivery" json:"actualDelivery,omitempty"`

	Weight   int    `gorm:"column:weight" json:"weight,omitempty"`     // 重量 (g)
	Distance int    `gorm:"column:distance" json:"distance,omitempty"` // 距离 (km)
	Cost     int    `gorm:"column:cost" json:"cost,omitempty"`         // 运费
	Notes    string `gorm:"column:notes" json:"notes,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
