package service

import (
	"context"
	"errors"
	"testing"

	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"
	"github.com/linoyezra1/learning-system/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContentService(db *gorm.DB) *ContentService {
	return NewContentService(
		repository.NewCourseRepository(db),
		repository.NewSlideRepository(db),
		nil,
		nil,
		testConfig(),
	)
}

func TestGetCourseWithModulesOrdersByIndex(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	createModule(t, db, course.ID, "Trauma", 3)
	createModule(t, db, course.ID, "Basics", 1)
	createModule(t, db, course.ID, "CPR", 2)

	svc := newContentService(db)

	payload, err := svc.GetCourseWithModules(context.Background(), course.ID)
	require.NoError(t, err)
	assert.Equal(t, "First Aid", payload.Title)
	require.Len(t, payload.Modules, 3)
	assert.Equal(t, "Basics", payload.Modules[0].Title)
	assert.Equal(t, "CPR", payload.Modules[1].Title)
	assert.Equal(t, "Trauma", payload.Modules[2].Title)
}

func TestGetCourseWithModulesUnknownCourse(t *testing.T) {
	svc := newContentService(newTestDB(t))

	_, err := svc.GetCourseWithModules(context.Background(), 404)
	assert.True(t, errors.Is(err, util.ErrCourseNotFound))
}

func TestCreateModuleRequiresCourse(t *testing.T) {
	svc := newContentService(newTestDB(t))

	_, err := svc.CreateModule(context.Background(), 404, "Orphan", 1)
	assert.True(t, errors.Is(err, util.ErrCourseNotFound))
}

func TestListSlidesOrdersByIndex(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)
	createSlide(t, db, module.ID, "Second", 2, 30)
	createSlide(t, db, module.ID, "First", 1, 30)

	svc := newContentService(db)

	slides, err := svc.ListSlides(module.ID)
	require.NoError(t, err)
	require.Len(t, slides, 2)
	assert.Equal(t, "First", slides[0].Title)
	assert.Equal(t, "Second", slides[1].Title)
}

func TestCreateSlideDefaultsAndValidation(t *testing.T) {
	db := newTestDB(t)
	course := createCourse(t, db, "First Aid")
	module := createModule(t, db, course.ID, "Basics", 1)

	svc := newContentService(db)

	slide := &model.Slide{
		ModuleID:       module.ID,
		Title:          "Intro",
		Content:        "welcome",
		OrderIndex:     1,
		MinReadingTime: 45,
	}
	require.NoError(t, svc.CreateSlide(slide))
	assert.Equal(t, model.SlideText, slide.SlideType)

	bad := &model.Slide{ModuleID: module.ID, Title: "Bad", OrderIndex: 2, MinReadingTime: -5}
	assert.Error(t, svc.CreateSlide(bad))

	orphan := &model.Slide{ModuleID: 404, Title: "Orphan", OrderIndex: 1}
	assert.True(t, errors.Is(svc.CreateSlide(orphan), util.ErrModuleNotFound))
}

func TestGetSlideUnknown(t *testing.T) {
	svc := newContentService(newTestDB(t))

	_, err := svc.GetSlide(404)
	assert.True(t, errors.Is(err, util.ErrSlideNotFound))
}
