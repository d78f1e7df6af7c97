package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// OptionMap holds choice-key -> text for a multiple-choice question,
// stored as a JSON column.
type OptionMap map[string]string

func (m OptionMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

func (m *OptionMap) Scan(value interface{}) error {
	if value == nil {
		*m = OptionMap{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return errors.New("unsupported type for OptionMap")
	}
}

// PracticeQuestion is a self-check item tied to a slide or a module.
// At least one of SlideID/ModuleID is set. Immutable after creation.
// swagger:model PracticeQuestion
type PracticeQuestion struct {
	BaseModel
	SlideID       *uint     `gorm:"index" json:"slideId"`
	ModuleID      *uint     `gorm:"index" json:"moduleId"`
	Question      string    `gorm:"type:text;not null" json:"question"`
	QuestionType  string    `gorm:"size:30;not null;default:'multiple_choice'" json:"questionType"`
	Options       OptionMap `gorm:"type:text;not null" json:"options"`
	CorrectAnswer string    `gorm:"size:10;not null" json:"-"`
	Explanation   string    `gorm:"type:text" json:"-"`
}

func (PracticeQuestion) TableName() string {
	return "practice_questions"
}
