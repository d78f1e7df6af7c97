package model

import "time"

// Read-model rows produced by the aggregate progress queries. None of
// these are tables; they are scanned straight out of joins.

// ProgressSummary is a user's rollup plus the derived percentage.
type ProgressSummary struct {
	UserID               uint       `json:"userId"`
	CourseID             uint       `json:"courseId"`
	CourseTitle          string     `json:"courseTitle"`
	TotalSlides          int        `json:"totalSlides"`
	CompletedSlides      int        `json:"completedSlides"`
	TotalTimeSpent       int        `json:"totalTimeSpent"`
	LastAccessed         *time.Time `json:"lastAccessed"`
	CompletionPercentage float64    `json:"completionPercentage"`
}

// ModuleProgress is the per-module breakdown of one user's completion.
type ModuleProgress struct {
	ModuleID        uint   `json:"moduleId"`
	ModuleTitle     string `json:"moduleTitle"`
	TotalSlides     int    `json:"totalSlides"`
	CompletedSlides int    `json:"completedSlides"`
	TimeSpent       int    `json:"timeSpent"`
}

// StudentProgress is one row of the instructor's all-students view.
// Rollup fields are nullable: a student who never opened a slide has
// no user_progress row yet.
type StudentProgress struct {
	ID                   uint       `json:"id"`
	Username             string     `json:"username"`
	FullName             string     `json:"fullName"`
	TotalSlides          *int       `json:"totalSlides"`
	CompletedSlides      *int       `json:"completedSlides"`
	TotalTimeSpent       *int       `json:"totalTimeSpent"`
	LastAccessed         *time.Time `json:"lastAccessed"`
	CompletionPercentage *float64   `json:"completionPercentage"`
}

// StudentSlideRow is one slide of the instructor's drill-down into a
// single student, progress columns null when untouched.
type StudentSlideRow struct {
	SlideID     uint       `json:"slideId"`
	SlideTitle  string     `json:"slideTitle"`
	ModuleTitle string     `json:"moduleTitle"`
	TimeSpent   *int       `json:"timeSpent"`
	Completed   *bool      `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}
