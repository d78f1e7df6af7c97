package model

import "time"

// UserAnswer is an append-only attempt log; a user may answer the same
// question any number of times and earlier attempts are kept.
// swagger:model UserAnswer
type UserAnswer struct {
	BaseModel
	UserID     uint      `gorm:"not null;index" json:"userId"`
	QuestionID uint      `gorm:"not null;index" json:"questionId"`
	Answer     string    `gorm:"size:10;not null" json:"answer"`
	IsCorrect  bool      `gorm:"not null;default:false" json:"isCorrect"`
	AnsweredAt time.Time `json:"answeredAt"`
}

func (UserAnswer) TableName() string {
	return "user_answers"
}
