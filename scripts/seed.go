// Seeds the database with the default course, its modules, and the
// built-in admin and sample student accounts. Safe to run repeatedly;
// existing rows are left untouched.
//
// Usage: go run scripts/seed.go

package main

import (
	"log"

	"github.com/linoyezra1/learning-system/internal/config"
	"github.com/linoyezra1/learning-system/internal/model"
	"github.com/linoyezra1/learning-system/pkg/database"
	"github.com/linoyezra1/learning-system/pkg/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	seedUser(db, "admin", "admin123", "מנהל המערכת", model.Admin)
	seedUser(db, "student1", "student123", "סטודנט לדוגמה", model.Student)

	course := seedCourse(db, cfg.Course.ID)

	moduleTitles := []string{
		"יסודות עזרה ראשונה",
		"הערכת מצב",
		"החייאה",
		"מצבי חירום נשימתיים",
		"מצבי חירום רפואיים",
		"מצבי סביבה",
		"טראומה",
	}
	for i, title := range moduleTitles {
		seedModule(db, course.ID, title, i+1)
	}

	log.Println("seed completed")
	log.Println("default credentials: admin/admin123, student1/student123")
}

func seedUser(db *gorm.DB, username, password, fullName string, role model.UserRole) {
	var existing model.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("failed to look up user %s: %v", username, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	user := model.User{
		Username: username,
		Password: string(hashed),
		FullName: fullName,
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("failed to create user %s: %v", username, err)
	}
	log.Printf("created user %s", username)
}

func seedCourse(db *gorm.DB, id uint) *model.Course {
	var course model.Course
	err := db.First(&course, id).Error
	if err == nil {
		return &course
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("failed to look up course: %v", err)
	}

	course = model.Course{
		Title:       "קורס עזרה ראשונה - חוברת 44",
		Description: "קורס מקיף בעזרה ראשונה לפי חוברת 44",
	}
	course.ID = id
	if err := db.Create(&course).Error; err != nil {
		log.Fatalf("failed to create course: %v", err)
	}
	log.Printf("created course %q", course.Title)
	return &course
}

func seedModule(db *gorm.DB, courseID uint, title string, orderIndex int) {
	var existing model.Module
	err := db.Where("course_id = ? AND order_index = ?", courseID, orderIndex).First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("failed to look up module %q: %v", title, err)
	}

	module := model.Module{CourseID: courseID, Title: title, OrderIndex: orderIndex}
	if err := db.Create(&module).Error; err != nil {
		log.Fatalf("failed to create module %q: %v", title, err)
	}
	log.Printf("created module %q", title)
}
