package service

import (
	"bytes"
	"io"
	"mime/multipart"
	"testing"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// One connection keeps the in-memory database alive and shared.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestStorage(t *testing.T) *StorageService {
	t.Helper()
	cfg := &config.Config{}
	cfg.Storage.Type = "local"
	cfg.Storage.LocalPath = t.TempDir()
	return NewStorageService(cfg)
}

func createUser(t *testing.T, db *gorm.DB, name string, role model.UserRole) *model.User {
	t.Helper()
	user := &model.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "x",
		Role:     role,
		Active:   true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createCourse(t *testing.T, db *gorm.DB, instructorID uint, title string) *model.Course {
	t.Helper()
	course := &model.Course{Title: title, InstructorID: instructorID}
	if err := db.Create(course).Error; err != nil {
		t.Fatalf("create course: %v", err)
	}
	return course
}

func createModule(t *testing.T, db *gorm.DB, courseID uint, title string, order int) *model.Module {
	t.Helper()
	module := &model.Module{Title: title, CourseID: courseID, Order: order}
	if err := db.Create(module).Error; err != nil {
		t.Fatalf("create module: %v", err)
	}
	return module
}

// multipartForm builds a parsed multipart form from field/filename/content
// triples, the same shape gin hands the services.
func multipartForm(t *testing.T, files map[string][2]string) map[string][]*multipart.FileHeader {
	t.Helper()
	if len(files) == 0 {
		return nil
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, nameAndBody := range files {
		part, err := w.CreateFormFile(field, nameAndBody[0])
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := io.WriteString(part, nameAndBody[1]); err != nil {
			t.Fatalf("write form file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("read form: %v", err)
	}
	t.Cleanup(func() { form.RemoveAll() })
	return form.File
}
