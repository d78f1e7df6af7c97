package model

import "time"

// SlideProgress is the per-(user, slide) accumulator. TimeSpent only
// grows and Completed never reverts once set; both are enforced in the
// progress service merge path, not by the schema.
// swagger:model SlideProgress
type SlideProgress struct {
	BaseModel
	UserID      uint       `gorm:"not null;uniqueIndex:idx_user_slide" json:"userId"`
	SlideID     uint       `gorm:"not null;uniqueIndex:idx_user_slide" json:"slideId"`
	TimeSpent   int        `gorm:"not null;default:0" json:"timeSpent"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (SlideProgress) TableName() string {
	return "slide_progress"
}
