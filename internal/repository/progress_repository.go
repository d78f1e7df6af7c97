package repository

import (
	"time"

	"github.com/linoyezra1/learning-system/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) GetSlideProgress(userID, slideID uint) (*model.SlideProgress, error) {
	var sp model.SlideProgress
	err := r.DB.Where("user_id = ? AND slide_id = ?", userID, slideID).First(&sp).Error
	return &sp, err
}

func (r *ProgressRepository) Save(sp *model.SlideProgress) error {
	return r.DB.Save(sp).Error
}

// CountCourseSlides counts every slide of the course, independent of
// any user.
func (r *ProgressRepository) CountCourseSlides(courseID uint) (int, error) {
	var count int64
	err := r.DB.Model(&model.Slide{}).
		Joins("JOIN modules ON modules.id = slides.module_id").
		Where("modules.course_id = ? AND modules.deleted_at IS NULL", courseID).
		Count(&count).Error
	return int(count), err
}

// CompletedAggregate returns the distinct completed-slide count and the
// time summed over the user's completed rows within the course.
func (r *ProgressRepository) CompletedAggregate(userID, courseID uint) (completed, totalTime int, err error) {
	var row struct {
		CompletedSlides int
		TotalTime       int
	}
	err = r.DB.Raw(`
		SELECT COUNT(DISTINCT sp.slide_id)      AS completed_slides,
		       COALESCE(SUM(sp.time_spent), 0)  AS total_time
		FROM slide_progress sp
		JOIN slides s  ON s.id = sp.slide_id  AND s.deleted_at IS NULL
		JOIN modules m ON m.id = s.module_id  AND m.deleted_at IS NULL
		WHERE sp.user_id = ? AND sp.completed = ? AND m.course_id = ?
		  AND sp.deleted_at IS NULL`,
		userID, true, courseID,
	).Scan(&row).Error
	return row.CompletedSlides, row.TotalTime, err
}

func (r *ProgressRepository) GetUserProgress(userID, courseID uint) (*model.UserProgress, error) {
	var up model.UserProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&up).Error
	return &up, err
}

// UpsertUserProgress updates the rollup in place, bumping
// last_accessed, or inserts it on first write.
func (r *ProgressRepository) UpsertUserProgress(userID, courseID uint, totalSlides, completedSlides, totalTime int) error {
	existing, err := r.GetUserProgress(userID, courseID)
	if err == gorm.ErrRecordNotFound {
		return r.DB.Create(&model.UserProgress{
			UserID:          userID,
			CourseID:        courseID,
			TotalSlides:     totalSlides,
			CompletedSlides: completedSlides,
			TotalTimeSpent:  totalTime,
			LastAccessed:    time.Now(),
		}).Error
	}
	if err != nil {
		return err
	}

	existing.TotalSlides = totalSlides
	existing.CompletedSlides = completedSlides
	existing.TotalTimeSpent = totalTime
	existing.LastAccessed = time.Now()
	return r.DB.Save(existing).Error
}

// ModuleBreakdown aggregates one user's progress per module of the
// course, ordered by the module order. With completedOnly, time is
// summed over completed rows only (the report variant); otherwise over
// every row the user touched.
func (r *ProgressRepository) ModuleBreakdown(userID, courseID uint, completedOnly bool) ([]model.ModuleProgress, error) {
	spJoin := "LEFT JOIN slide_progress sp ON sp.slide_id = s.id AND sp.user_id = ? AND sp.deleted_at IS NULL"
	if completedOnly {
		spJoin += " AND sp.completed = true"
	}

	var rows []model.ModuleProgress
	err := r.DB.Raw(`
		SELECT m.id                            AS module_id,
		       m.title                         AS module_title,
		       COUNT(DISTINCT s.id)            AS total_slides,
		       COUNT(DISTINCT CASE WHEN sp.completed = true THEN sp.slide_id END) AS completed_slides,
		       COALESCE(SUM(sp.time_spent), 0) AS time_spent
		FROM modules m
		LEFT JOIN slides s ON s.module_id = m.id AND s.deleted_at IS NULL
		`+spJoin+`
		WHERE m.course_id = ? AND m.deleted_at IS NULL
		GROUP BY m.id, m.title, m.order_index
		ORDER BY m.order_index`,
		userID, courseID,
	).Scan(&rows).Error
	return rows, err
}

// AllStudents lists every student account with its rollup for the
// course, rollup columns null for students without one.
func (r *ProgressRepository) AllStudents(courseID uint) ([]model.StudentProgress, error) {
	var rows []model.StudentProgress
	err := r.DB.Raw(`
		SELECT u.id,
		       u.username,
		       u.full_name,
		       up.total_slides,
		       up.completed_slides,
		       up.total_time_spent,
		       up.last_accessed,
		       ROUND((CAST(up.completed_slides AS FLOAT) / NULLIF(up.total_slides, 0)) * 100, 2) AS completion_percentage
		FROM users u
		LEFT JOIN user_progress up ON up.user_id = u.id AND up.course_id = ? AND up.deleted_at IS NULL
		WHERE u.role = ? AND u.deleted_at IS NULL
		ORDER BY u.full_name`,
		courseID, model.Student,
	).Scan(&rows).Error
	return rows, err
}

// StudentSlides is the per-slide drill-down for one student across the
// whole course, in traversal order.
func (r *ProgressRepository) StudentSlides(userID, courseID uint) ([]model.StudentSlideRow, error) {
	var rows []model.StudentSlideRow
	err := r.DB.Raw(`
		SELECT s.id       AS slide_id,
		       s.title    AS slide_title,
		       m.title    AS module_title,
		       sp.time_spent,
		       sp.completed,
		       sp.completed_at
		FROM slides s
		JOIN modules m ON m.id = s.module_id AND m.deleted_at IS NULL
		LEFT JOIN slide_progress sp ON sp.slide_id = s.id AND sp.user_id = ? AND sp.deleted_at IS NULL
		WHERE m.course_id = ? AND s.deleted_at IS NULL
		ORDER BY m.order_index, s.order_index`,
		userID, courseID,
	).Scan(&rows).Error
	return rows, err
}
