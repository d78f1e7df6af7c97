package service

import (
	"math"
	"time"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"
	"github.com/linoyezra1/learning-system/internal/util"
	"github.com/linoyezra1/learning-system/pkg/monitoring"

	"gorm.io/gorm"
)

// ProgressService implements the slide-progress recorder and the rollup
// recompute. The rollup is a derived cache: every successful write
// recomputes it from the slide_progress rows, so repeated recomputation
// over the same data always converges to the same values.
type ProgressService struct {
	SlideRepo    *repository.SlideRepository
	ProgressRepo *repository.ProgressRepository
	CourseRepo   *repository.CourseRepository
	CourseID     uint
}

func NewProgressService(
	slideRepo *repository.SlideRepository,
	progressRepo *repository.ProgressRepository,
	courseRepo *repository.CourseRepository,
	courseID uint,
) *ProgressService {
	return &ProgressService{
		SlideRepo:    slideRepo,
		ProgressRepo: progressRepo,
		CourseRepo:   courseRepo,
		CourseID:     courseID,
	}
}

// RecordSlideProgress merges one reported interval into the user's
// per-slide accumulator and recomputes the rollup.
//
// Merge rules: time only accumulates, never overwrites; completed is
// monotonic (a later completed=false cannot revert it); completed_at is
// set on the false->true transition and kept afterwards. Marking a
// slide completed requires the accumulated time, including the reported
// interval, to reach the slide's minimum reading time.
func (s *ProgressService) RecordSlideProgress(userID, slideID uint, timeSpent int, completed bool) (*model.SlideProgress, error) {
	slide, err := s.SlideRepo.FindByID(slideID)
	if err == gorm.ErrRecordNotFound {
		return nil, util.ErrSlideNotFound
	}
	if err != nil {
		return nil, err
	}

	if timeSpent < 0 {
		timeSpent = 0
	}

	progress, err := s.ProgressRepo.GetSlideProgress(userID, slideID)
	if err == gorm.ErrRecordNotFound {
		progress = &model.SlideProgress{UserID: userID, SlideID: slideID}
	} else if err != nil {
		return nil, err
	}

	effectiveTime := progress.TimeSpent + timeSpent
	if completed && !progress.Completed && effectiveTime < slide.MinReadingTime {
		return nil, &util.MinReadingTimeError{
			Required: slide.MinReadingTime,
			Current:  effectiveTime,
		}
	}

	progress.TimeSpent = effectiveTime
	if completed && !progress.Completed {
		now := time.Now()
		progress.Completed = true
		progress.CompletedAt = &now
	}

	if err := s.ProgressRepo.Save(progress); err != nil {
		return nil, err
	}
	monitoring.ProgressWrites.Inc()

	// The rollup must see the post-update state, so this stays
	// synchronous and ordered after the save.
	if err := s.RecomputeRollup(userID); err != nil {
		return nil, err
	}

	return progress, nil
}

// GetSlideProgress returns a zero-value record when the user has not
// touched the slide yet; absence is not an error.
func (s *ProgressService) GetSlideProgress(userID, slideID uint) (*model.SlideProgress, error) {
	progress, err := s.ProgressRepo.GetSlideProgress(userID, slideID)
	if err == gorm.ErrRecordNotFound {
		return &model.SlideProgress{UserID: userID, SlideID: slideID}, nil
	}
	return progress, err
}

// RecomputeRollup rebuilds the user's UserProgress row for the course
// from scratch and upserts it. Idempotent.
func (s *ProgressService) RecomputeRollup(userID uint) error {
	totalSlides, err := s.ProgressRepo.CountCourseSlides(s.CourseID)
	if err != nil {
		return err
	}

	completedSlides, totalTime, err := s.ProgressRepo.CompletedAggregate(userID, s.CourseID)
	if err != nil {
		return err
	}

	return s.ProgressRepo.UpsertUserProgress(userID, s.CourseID, totalSlides, completedSlides, totalTime)
}

// MyProgress returns the user's rollup with the derived completion
// percentage, or an all-zero summary before the first progress write.
func (s *ProgressService) MyProgress(userID uint) (*model.ProgressSummary, error) {
	summary := &model.ProgressSummary{UserID: userID, CourseID: s.CourseID}

	if course, err := s.CourseRepo.FindByID(s.CourseID); err == nil {
		summary.CourseTitle = course.Title
	}

	up, err := s.ProgressRepo.GetUserProgress(userID, s.CourseID)
	if err == gorm.ErrRecordNotFound {
		return summary, nil
	}
	if err != nil {
		return nil, err
	}

	summary.TotalSlides = up.TotalSlides
	summary.CompletedSlides = up.CompletedSlides
	summary.TotalTimeSpent = up.TotalTimeSpent
	summary.LastAccessed = &up.LastAccessed
	summary.CompletionPercentage = CompletionPercentage(up.CompletedSlides, up.TotalSlides)
	return summary, nil
}

// DetailedProgress is the per-module breakdown counting every touched
// row, completed or not.
func (s *ProgressService) DetailedProgress(userID uint) ([]model.ModuleProgress, error) {
	return s.ProgressRepo.ModuleBreakdown(userID, s.CourseID, false)
}

func (s *ProgressService) AllStudents() ([]model.StudentProgress, error) {
	return s.ProgressRepo.AllStudents(s.CourseID)
}

func (s *ProgressService) StudentSlides(userID uint) ([]model.StudentSlideRow, error) {
	return s.ProgressRepo.StudentSlides(userID, s.CourseID)
}

// CompletionPercentage is zero-safe: no slides means 0%, never a
// division error.
func CompletionPercentage(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*100) / 100
}
