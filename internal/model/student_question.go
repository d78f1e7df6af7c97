package model

import "time"

type QuestionStatus string

const (
	QuestionPending  QuestionStatus = "pending"
	QuestionAnswered QuestionStatus = "answered"
)

// StudentQuestion is a free-text question a student poses to the
// instructors. Answering sets answer, answered_by, answered_at and the
// status together in a single update.
// swagger:model StudentQuestion
type StudentQuestion struct {
	BaseModel
	UserID     uint           `gorm:"not null;index" json:"userId"`
	SlideID    *uint          `gorm:"index" json:"slideId"`
	Question   string         `gorm:"type:text;not null" json:"question"`
	Status     QuestionStatus `gorm:"size:20;not null;default:'pending'" json:"status"`
	Answer     *string        `gorm:"type:text" json:"answer"`
	AnsweredBy *uint          `json:"answeredBy"`
	AnsweredAt *time.Time     `json:"answeredAt"`
}

func (StudentQuestion) TableName() string {
	return "student_questions"
}
