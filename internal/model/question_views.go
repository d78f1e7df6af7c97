package model

import "time"

// StudentQuestionView is a student question joined with the slide and
// module it was asked on, for the asker's own list.
type StudentQuestionView struct {
	ID          uint           `json:"id"`
	UserID      uint           `json:"userId"`
	SlideID     *uint          `json:"slideId"`
	Question    string         `json:"question"`
	Status      QuestionStatus `json:"status"`
	Answer      *string        `json:"answer"`
	AnsweredBy  *uint          `json:"answeredBy"`
	AnsweredAt  *time.Time     `json:"answeredAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	SlideTitle  *string        `json:"slideTitle"`
	ModuleTitle *string        `json:"moduleTitle"`
}

// InstructorQuestionView adds the asking student's identity for the
// instructor inbox.
type InstructorQuestionView struct {
	ID          uint           `json:"id"`
	UserID      uint           `json:"userId"`
	SlideID     *uint          `json:"slideId"`
	Question    string         `json:"question"`
	Status      QuestionStatus `json:"status"`
	Answer      *string        `json:"answer"`
	AnsweredBy  *uint          `json:"answeredBy"`
	AnsweredAt  *time.Time     `json:"answeredAt"`
	CreatedAt   time.Time      `json:"createdAt"`
	SlideTitle  *string        `json:"slideTitle"`
	ModuleTitle *string        `json:"moduleTitle"`
	StudentName string         `json:"studentName"`
	Username    string         `json:"username"`
}
