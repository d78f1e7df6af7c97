package model

import "time"

// UserProgress is the per-(user, course) rollup. It is a derived cache
// of SlideProgress and is fully recomputable at any time; a from-scratch
// recomputation always wins over whatever is stored here.
// swagger:model UserProgress
type UserProgress struct {
	BaseModel
	UserID          uint      `gorm:"not null;uniqueIndex:idx_user_course" json:"userId"`
	CourseID        uint      `gorm:"not null;uniqueIndex:idx_user_course" json:"courseId"`
	TotalSlides     int       `gorm:"not null;default:0" json:"totalSlides"`
	CompletedSlides int       `gorm:"not null;default:0" json:"completedSlides"`
	TotalTimeSpent  int       `gorm:"not null;default:0" json:"totalTimeSpent"`
	LastAccessed    time.Time `json:"lastAccessed"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}
