package model

import (
	"time"
)

type EnrollmentStatus string

const (
	EnrollmentInProgress EnrollmentStatus = "in-progress"
	EnrollmentCompleted  EnrollmentStatus = "completed"
)

// Enrollment is get-or-create per (user, course); the composite unique index
// backs the atomic upsert so concurrent callers cannot create duplicates.
// Completion is one-way: there is no transition back to in-progress.
type Enrollment struct {
	ID         uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint             `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"userId"`
	CourseID   uint             `gorm:"uniqueIndex:idx_enrollment_user_course;not null" json:"courseId"`
	Status     EnrollmentStatus `gorm:"size:20;default:'in-progress'" json:"status"`
	EnrolledAt time.Time        `gorm:"autoCreateTime" json:"enrolledAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// ModuleProgress keeps exactly one row per (user, module), created lazily on
// the first write through an ON CONFLICT upsert.
type ModuleProgress struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint      `gorm:"uniqueIndex:idx_progress_user_module;not null" json:"userId"`
	ModuleID    uint      `gorm:"uniqueIndex:idx_progress_user_module;not null" json:"moduleId"`
	Progress    int       `gorm:"default:0" json:"progress"`
	LastUpdated time.Time `gorm:"autoUpdateTime" json:"lastUpdated"`
}

func (ModuleProgress) TableName() string {
	return "module_progress"
}
