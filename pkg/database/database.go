package database

import (
	"fmt"
	"log"

	"lms_backend/internal/config"
	"lms_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedHelpTopics(db)

	return db, nil
}

// Migrate creates or updates the schema for every model. Shared with the
// sqlite-backed test harness.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Module{},
		&model.Chapter{},
		&model.ChapterContent{},
		&model.Assignment{},
		&model.AssignmentSubmission{},
		&model.Enrollment{},
		&model.ModuleProgress{},
		&model.Wishlist{},
		&model.Notification{},
		&model.HelpTopic{},
	)
}

func seedHelpTopics(db *gorm.DB) {
	var count int64
	db.Model(&model.HelpTopic{}).Count(&count)
	if count == 0 {
		defaults := []model.HelpTopic{
			{Title: "Getting started", Content: "Browse the course catalog and enroll to begin tracking your progress."},
			{Title: "Tracking progress", Content: "Update module progress from the course page; a course completes once every module reaches 100%."},
			{Title: "Submitting assignments", Content: "Open an assignment under its module and attach a file or write your answer inline."},
		}
		for _, t := range defaults {
			db.Create(&t)
		}
	}
}
