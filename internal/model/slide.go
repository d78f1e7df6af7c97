package model

type SlideType string

const (
	SlideText  SlideType = "text"
	SlideImage SlideType = "image"
	SlideVideo SlideType = "video"
)

// swagger:model Slide
type Slide struct {
	BaseModel
	ModuleID  uint      `gorm:"not null;index;uniqueIndex:idx_module_order" json:"moduleId"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	SlideType SlideType `gorm:"size:20;not null;default:'text'" json:"slideType"`
	MediaURL  string    `gorm:"size:512" json:"mediaUrl"`
	// Minimum dwell time in seconds before the slide may be marked completed.
	MinReadingTime int `gorm:"not null;default:30" json:"minReadingTime"`
	OrderIndex     int `gorm:"not null;uniqueIndex:idx_module_order" json:"orderIndex"`
}

func (Slide) TableName() string {
	return "slides"
}
