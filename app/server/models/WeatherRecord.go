package models

import "time"

type WeatherRecord struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"column:user_id;index" json:"userId"`

	Location    string `gorm:"column:location" json:"location"`
	Temperature int    `gorm:"column:temperature" json:"temperature"` // 摄氏温度
	Humidity    int    `gorm:"column:humidity" json:"humidity"`       // 湿度 (%)
	WindSpeed   int    `gorm:"column:wind_speed" json:"windSpeed"`    // 风速 (km/h)
	Condition   string `gorm:"column:condition" json:"condition"`     // 天气状态

	Description   string `gorm:"column:description" json:"description,omitempty"`
	FeelsLike     int    `gorm:"column:feels_like" json:"feelsLike,omitempty"`        // 体感温度
	UVIndex       int    `gorm:"column:uv_index" json:"uvIndex,omitempty"`            // 紫外线指数
	Visibility    int    `gorm:"column:visibility" json:"visibility,omitempty"`       // 能见度 (m)
	Pressure      int    `gorm:"column:pressure" json:"pressure,omitempty"`           // 气压 (hPa)
	Precipitation int    `gorm:"column:precipitation" json:"precipitation,omitempty"` // 降水量 (mm)

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
