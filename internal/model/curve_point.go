package model

import "time"

// CurvePoint is one tenor of a published benchmark curve together with
// the rates derived from it.
// Unique index are Date and TenorYears together.
type CurvePoint struct {
	Date        time.Time `gorm:"column:date;uniqueIndex:date_tenor"`
	TenorYears  float64   `gorm:"column:tenor_years;uniqueIndex:date_tenor"`
	ParYield    float64   `gorm:"column:par_yield"`
	SpotRate    float64   `gorm:"column:spot_rate"`
	ForwardRate *float64  `gorm:"column:forward_rate"` // nil on the shortest tenor, which has no preceding period
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (*CurvePoint) TableName() string {
	return "curve_points"
}
