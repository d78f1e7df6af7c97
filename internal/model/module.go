package model

// Module is an ordered chapter of a course. OrderIndex is unique within
// a course so traversal is deterministic.
// swagger:model Module
type Module struct {
	BaseModel
	CourseID   uint   `gorm:"not null;index;uniqueIndex:idx_course_order" json:"courseId"`
	Title      string `gorm:"size:255;not null" json:"title"`
	OrderIndex int    `gorm:"not null;uniqueIndex:idx_course_order" json:"orderIndex"`
}

func (Module) TableName() string {
	return "modules"
}
