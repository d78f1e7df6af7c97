package service

import (
	"os"
	"testing"
	"time"

	"github.com/linoyezra1/learning-system/internal/config"
	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/internal/repository"
	"github.com/linoyezra1/learning-system/pkg/database"
	"github.com/linoyezra1/learning-system/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// newTestDB opens a private in-memory database. The pool is pinned to a
// single connection; otherwise every new connection would see an empty
// in-memory database of its own.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-test-secret-test-secret!"
	cfg.JWT.ExpireTime = time.Hour
	cfg.Course.ID = 1
	return cfg
}

func createUser(t *testing.T, db *gorm.DB, username, password, fullName string, role model.UserRole) *model.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Username: username,
		Password: string(hashed),
		FullName: fullName,
		Role:     role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, title string) *model.Course {
	t.Helper()
	course := &model.Course{Title: title, Description: title}
	require.NoError(t, db.Create(course).Error)
	return course
}

func createModule(t *testing.T, db *gorm.DB, courseID uint, title string, order int) *model.Module {
	t.Helper()
	module := &model.Module{CourseID: courseID, Title: title, OrderIndex: order}
	require.NoError(t, db.Create(module).Error)
	return module
}

func createSlide(t *testing.T, db *gorm.DB, moduleID uint, title string, order, minReadingTime int) *model.Slide {
	t.Helper()
	slide := &model.Slide{
		ModuleID:       moduleID,
		Title:          title,
		Content:        "content of " + title,
		SlideType:      model.SlideText,
		OrderIndex:     order,
		MinReadingTime: minReadingTime,
	}
	require.NoError(t, db.Create(slide).Error)
	return slide
}

func newProgressService(db *gorm.DB, courseID uint) *ProgressService {
	return NewProgressService(
		repository.NewSlideRepository(db),
		repository.NewProgressRepository(db),
		repository.NewCourseRepository(db),
		courseID,
	)
}
