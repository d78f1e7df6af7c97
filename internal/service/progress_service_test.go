package service

import (
	"errors"
	"testing"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSlideProgressRejectsEarlyCompletion(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)
	slide := createSlide(t, db, module.ID, "Intro", 1, 30)
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newProgressService(db, course.ID)

	_, err := svc.RecordSlideProgress(user.ID, slide.ID, 10, true)
	var minErr *util.MinReadingTimeError
	require.ErrorAs(t, err, &minErr)
	assert.Equal(t, 30, minErr.Required)
	assert.Equal(t, 10, minErr.Current)

	// A rejected completion must not persist anything.
	var count int64
	require.NoError(t, db.Model(&model.SlideProgress{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRecordSlideProgressAccumulatesAcrossVisits(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)
	slide := createSlide(t, db, module.ID, "Intro", 1, 30)
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newProgressService(db, course.ID)

	first, err := svc.RecordSlideProgress(user.ID, slide.ID, 20, false)
	require.NoError(t, err)
	assert.Equal(t, 20, first.TimeSpent)
	assert.False(t, first.Completed)

	// 20 accumulated + 15 reported crosses the 30s threshold.
	second, err := svc.RecordSlideProgress(user.ID, slide.ID, 15, true)
	require.NoError(t, err)
	assert.Equal(t, 35, second.TimeSpent)
	assert.True(t, second.Completed)
	require.NotNil(t, second.CompletedAt)

	// Still a single row per (user, slide).
	var count int64
	require.NoError(t, db.Model(&model.SlideProgress{}).
		Where("user_id = ? AND slide_id = ?", user.ID, slide.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestRecordSlideProgressCompletedIsMonotonic(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)
	slide := createSlide(t, db, module.ID, "Intro", 1, 30)
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newProgressService(db, course.ID)

	done, err := svc.RecordSlideProgress(user.ID, slide.ID, 40, true)
	require.NoError(t, err)
	require.True(t, done.Completed)
	completedAt := *done.CompletedAt

	// A later completed=false report accumulates time but cannot revert
	// the completion or move its timestamp.
	after, err := svc.RecordSlideProgress(user.ID, slide.ID, 5, false)
	require.NoError(t, err)
	assert.True(t, after.Completed)
	assert.Equal(t, 45, after.TimeSpent)
	require.NotNil(t, after.CompletedAt)
	assert.Equal(t, completedAt.Unix(), after.CompletedAt.Unix())
}

func TestRecordSlideProgressClampsNegativeTime(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)
	slide := createSlide(t, db, module.ID, "Intro", 1, 0)
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newProgressService(db, course.ID)

	progress, err := svc.RecordSlideProgress(user.ID, slide.ID, -10, false)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.TimeSpent)
}

func TestRecordSlideProgressUnknownSlide(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newProgressService(db, course.ID)

	_, err := svc.RecordSlideProgress(user.ID, 999, 10, false)
	assert.True(t, errors.Is(err, util.ErrSlideNotFound))
}

func TestGetSlideProgressDefaultsToZero(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)
	slide := createSlide(t, db, module.ID, "Intro", 1, 30)
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newProgressService(db, course.ID)

	progress, err := svc.GetSlideProgress(user.ID, slide.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, progress.TimeSpent)
	assert.False(t, progress.Completed)
	assert.Nil(t, progress.CompletedAt)
}

func TestRollupTracksCompletions(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	m1 := createModule(t, db, course.ID, "Basics", 1)
	m2 := createModule(t, db, course.ID, "CPR", 2)
	s1 := createSlide(t, db, m1.ID, "Intro", 1, 0)
	s2 := createSlide(t, db, m1.ID, "Safety", 2, 0)
	createSlide(t, db, m2.ID, "Compressions", 1, 0)
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newProgressService(db, course.ID)

	_, err := svc.RecordSlideProgress(user.ID, s1.ID, 30, true)
	require.NoError(t, err)
	_, err = svc.RecordSlideProgress(user.ID, s2.ID, 50, true)
	require.NoError(t, err)

	summary, err := svc.MyProgress(user.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalSlides)
	assert.Equal(t, 2, summary.CompletedSlides)
	assert.Equal(t, 80, summary.TotalTimeSpent)
	assert.InDelta(t, 66.67, summary.CompletionPercentage, 0.001)
	assert.Equal(t, course.Title, summary.CourseTitle)
	require.NotNil(t, summary.LastAccessed)
}

func TestRecomputeRollupIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)
	slide := createSlide(t, db, module.ID, "Intro", 1, 0)
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newProgressService(db, course.ID)

	_, err := svc.RecordSlideProgress(user.ID, slide.ID, 30, true)
	require.NoError(t, err)

	require.NoError(t, svc.RecomputeRollup(user.ID))
	require.NoError(t, svc.RecomputeRollup(user.ID))

	var rollups []model.UserProgress
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&rollups).Error)
	require.Len(t, rollups, 1)
	assert.Equal(t, 1, rollups[0].CompletedSlides)
	assert.Equal(t, 30, rollups[0].TotalTimeSpent)
}

func TestMyProgressBeforeFirstWrite(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newProgressService(db, course.ID)

	summary, err := svc.MyProgress(user.ID)
	require.NoError(t, err)
	assert.Zero(t, summary.TotalSlides)
	assert.Zero(t, summary.CompletedSlides)
	assert.Zero(t, summary.CompletionPercentage)
	assert.Nil(t, summary.LastAccessed)
}

func TestDetailedProgressBreaksDownByModule(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	m1 := createModule(t, db, course.ID, "Basics", 1)
	m2 := createModule(t, db, course.ID, "CPR", 2)
	s1 := createSlide(t, db, m1.ID, "Intro", 1, 0)
	createSlide(t, db, m1.ID, "Safety", 2, 0)
	s3 := createSlide(t, db, m2.ID, "Compressions", 1, 0)
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newProgressService(db, course.ID)

	_, err := svc.RecordSlideProgress(user.ID, s1.ID, 30, true)
	require.NoError(t, err)
	_, err = svc.RecordSlideProgress(user.ID, s3.ID, 10, false)
	require.NoError(t, err)

	breakdown, err := svc.DetailedProgress(user.ID)
	require.NoError(t, err)
	require.Len(t, breakdown, 2)

	assert.Equal(t, "Basics", breakdown[0].ModuleTitle)
	assert.Equal(t, 2, breakdown[0].TotalSlides)
	assert.Equal(t, 1, breakdown[0].CompletedSlides)
	assert.Equal(t, 30, breakdown[0].TimeSpent)

	assert.Equal(t, "CPR", breakdown[1].ModuleTitle)
	assert.Equal(t, 0, breakdown[1].CompletedSlides)
	assert.Equal(t, 10, breakdown[1].TimeSpent)
}

func TestAllStudentsIncludesUntouchedAccounts(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)
	slide := createSlide(t, db, module.ID, "Intro", 1, 0)
	active := createUser(t, db, "dana", "pw", "Dana", model.Student)
	createUser(t, db, "noa", "pw", "Noa", model.Student)
	createUser(t, db, "teach", "pw", "Teacher", model.Instructor)

	svc := newProgressService(db, course.ID)

	_, err := svc.RecordSlideProgress(active.ID, slide.ID, 30, true)
	require.NoError(t, err)

	students, err := svc.AllStudents()
	require.NoError(t, err)
	require.Len(t, students, 2)

	byName := map[string]model.StudentProgress{}
	for _, s := range students {
		byName[s.Username] = s
	}

	require.NotNil(t, byName["dana"].CompletedSlides)
	assert.Equal(t, 1, *byName["dana"].CompletedSlides)
	require.NotNil(t, byName["dana"].CompletionPercentage)
	assert.InDelta(t, 100, *byName["dana"].CompletionPercentage, 0.001)

	assert.Nil(t, byName["noa"].CompletedSlides)
	assert.Nil(t, byName["noa"].CompletionPercentage)
}

func TestStudentSlidesDrilldown(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)
	s1 := createSlide(t, db, module.ID, "Intro", 1, 0)
	createSlide(t, db, module.ID, "Safety", 2, 0)
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newProgressService(db, course.ID)

	_, err := svc.RecordSlideProgress(user.ID, s1.ID, 25, true)
	require.NoError(t, err)

	rows, err := svc.StudentSlides(user.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Intro", rows[0].SlideTitle)
	require.NotNil(t, rows[0].Completed)
	assert.True(t, *rows[0].Completed)
	require.NotNil(t, rows[0].TimeSpent)
	assert.Equal(t, 25, *rows[0].TimeSpent)

	assert.Equal(t, "Safety", rows[1].SlideTitle)
	assert.Nil(t, rows[1].Completed)
	assert.Nil(t, rows[1].TimeSpent)
}

func TestCompletionPercentage(t *testing.T) {
	assert.Equal(t, 60.0, CompletionPercentage(3, 5))
	assert.Equal(t, 0.0, CompletionPercentage(0, 0))
	assert.Equal(t, 0.0, CompletionPercentage(5, 0))
	assert.Equal(t, 100.0, CompletionPercentage(4, 4))
	assert.InDelta(t, 33.33, CompletionPercentage(1, 3), 0.001)
}
