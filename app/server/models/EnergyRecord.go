package models

import "time"

type EnergyRecord struct {
	ID     uint `gorm:"primarykey" json:"id"`
	UserID uint `gorm:"column:user_id;index" json:"userId"`

	Facility    string `gorm:"column:facility" json:"facility"`       // 设施名称
	EnergyType  string `gorm:"column:energy_type" json:"energyType"`  // 能源类型（电、燃气、水等）
	Consumption int    `gorm:"column:consumption" json:"consumption"` // 使用量
	Cost        int    `gorm:"column:cost" json:"cost"`               // 费用

	Efficiency     int    `gorm:"column:efficiency" json:"efficiency,omitempty"`          // 效率指标 (%)
	CarbonEmission int    `gorm:"column:carbon_emission" json:"carbonEmission,omitempty"` // 碳排放量 (kg CO2)
	PeakUsage      int    `gorm:"column:peak_usage" json:"peakUsage,omitempty"`
	AverageUsage   int    `gorm:"column:average_usage" json:"averageUsage,omitempty"`
	Trend          string `gorm:"column:trend" json:"trend,omitempty"` // 趋势（上升、下降、持平）
	Notes          string `gorm:"column:notes" json:"notes,omitempty"`

	RecordDate time.Time `gorm:"column:record_date" json:"recordDate"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
