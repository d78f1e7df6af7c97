package model

import "time"

// Report is a write-once archive of a generated completion report.
// ExpiresAt marks the end of the 3-year retention window; expired rows
// are kept and only flagged as past expiry for display.
// swagger:model Report
type Report struct {
	BaseModel
	UserID      uint      `gorm:"not null;index" json:"userId"`
	ReportData  string    `gorm:"type:text;not null" json:"-"`
	ReportType  string    `gorm:"size:30;not null;default:'completion'" json:"reportType"`
	GeneratedAt time.Time `json:"generatedAt"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (Report) TableName() string {
	return "reports"
}
