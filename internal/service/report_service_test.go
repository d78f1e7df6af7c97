package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"
	"github.com/linoyezra1/learning-system/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newReportService(db *gorm.DB, courseID uint) *ReportService {
	return NewReportService(
		repository.NewUserRepository(db),
		repository.NewProgressRepository(db),
		repository.NewCourseRepository(db),
		repository.NewReportRepository(db),
		courseID,
	)
}

func TestBuildSnapshotPercentages(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)
	var slides []*model.Slide
	for i := 1; i <= 5; i++ {
		slides = append(slides, createSlide(t, db, module.ID, "Slide", i, 0))
	}
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	progress := newProgressService(db, course.ID)
	for _, s := range slides[:3] {
		_, err := progress.RecordSlideProgress(user.ID, s.ID, 60, true)
		require.NoError(t, err)
	}

	svc := newReportService(db, course.ID)
	snapshot, err := svc.BuildSnapshot(user.ID)
	require.NoError(t, err)

	assert.Equal(t, "dana", snapshot.User.Username)
	assert.Equal(t, course.Title, snapshot.CourseTitle)
	assert.Equal(t, 5, snapshot.TotalSlides)
	assert.Equal(t, 3, snapshot.CompletedSlides)
	assert.Equal(t, 60.0, snapshot.CompletionPercentage)
	assert.Equal(t, 180, snapshot.TotalTimeSpent)

	require.Len(t, snapshot.Modules, 1)
	assert.Equal(t, "Basics", snapshot.Modules[0].Title)
	assert.Equal(t, 3, snapshot.Modules[0].CompletedSlides)
	assert.Equal(t, 60.0, snapshot.Modules[0].CompletionPercentage)
}

func TestBuildSnapshotZeroSlides(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	svc := newReportService(db, course.ID)
	snapshot, err := svc.BuildSnapshot(user.ID)
	require.NoError(t, err)

	assert.Zero(t, snapshot.TotalSlides)
	assert.Equal(t, 0.0, snapshot.CompletionPercentage)
}

func TestBuildSnapshotUnknownUser(t *testing.T) {
	db := newTestDB(t)
	createCourse(t, db, "First Aid")

	svc := newReportService(db, 1)
	_, err := svc.BuildSnapshot(404)
	assert.True(t, errors.Is(err, util.ErrUserNotFound))
}

func TestGeneratePersistsReportWithRetention(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)
	slide := createSlide(t, db, module.ID, "Intro", 1, 0)
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	progress := newProgressService(db, course.ID)
	_, err := progress.RecordSlideProgress(user.ID, slide.ID, 30, true)
	require.NoError(t, err)

	svc := newReportService(db, course.ID)
	report, pdfBytes, err := svc.Generate(user.ID)
	require.NoError(t, err)

	assert.Equal(t, "%PDF", string(pdfBytes[:4]))
	assert.Equal(t, "completion", report.ReportType)
	assert.Equal(t, report.GeneratedAt.AddDate(3, 0, 0), report.ExpiresAt)

	// The archived snapshot must round-trip.
	var snapshot ReportSnapshot
	require.NoError(t, json.Unmarshal([]byte(report.ReportData), &snapshot))
	assert.Equal(t, "dana", snapshot.User.Username)
	assert.Equal(t, 1, snapshot.CompletedSlides)

	var stored model.Report
	require.NoError(t, db.First(&stored, report.ID).Error)
	assert.Equal(t, user.ID, stored.UserID)
}

func TestRenderPDFIsDeterministic(t *testing.T) {
	svc := newReportService(newTestDB(t), 1)

	snapshot := &ReportSnapshot{
		CourseTitle:          "First Aid",
		TotalSlides:          10,
		CompletedSlides:      10,
		CompletionPercentage: 100,
		TotalTimeSpent:       3600,
		GeneratedAt:          time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
		Modules: []ModuleReport{
			{Title: "Basics", TotalSlides: 10, CompletedSlides: 10, CompletionPercentage: 100, TimeSpent: 3600},
		},
	}
	snapshot.User.Username = "dana"
	snapshot.User.FullName = "Dana"

	first, err := svc.RenderPDF(snapshot)
	require.NoError(t, err)
	second, err := svc.RenderPDF(snapshot)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestListForUserFlagsExpired(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "dana", "pw", "Dana", model.Student)

	old := &model.Report{
		UserID:      user.ID,
		ReportData:  "{}",
		ReportType:  "completion",
		GeneratedAt: time.Now().AddDate(-4, 0, 0),
		ExpiresAt:   time.Now().AddDate(-1, 0, 0),
	}
	fresh := &model.Report{
		UserID:      user.ID,
		ReportData:  "{}",
		ReportType:  "completion",
		GeneratedAt: time.Now(),
		ExpiresAt:   time.Now().AddDate(3, 0, 0),
	}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, db.Create(fresh).Error)

	svc := newReportService(db, 1)
	metas, err := svc.ListForUser(user.ID)
	require.NoError(t, err)
	require.Len(t, metas, 2)

	byID := map[uint]ReportMeta{}
	for _, m := range metas {
		byID[m.ID] = m
	}
	assert.True(t, byID[old.ID].Expired)
	assert.False(t, byID[fresh.ID].Expired)
}

func TestGetUnknownReport(t *testing.T) {
	svc := newReportService(newTestDB(t), 1)
	_, err := svc.Get(404)
	assert.True(t, errors.Is(err, util.ErrReportNotFound))
}
