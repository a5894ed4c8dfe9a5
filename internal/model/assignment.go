package model

import (
	"time"
)

type Assignment struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ModuleID    uint       `gorm:"index;not null" json:"moduleId"`
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	File        string     `gorm:"size:512" json:"file,omitempty"`
	MaxScore    int        `gorm:"default:100" json:"maxScore"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (Assignment) TableName() string {
	return "assignments"
}

// AssignmentSubmission has no uniqueness constraint: a student may submit
// any number of times, each submission independent.
type AssignmentSubmission struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AssignmentID uint      `gorm:"index;not null" json:"assignmentId"`
	StudentID    uint      `gorm:"index;not null" json:"studentId"`
	File         string    `gorm:"size:512" json:"file,omitempty"`
	Text         string    `gorm:"type:text" json:"text,omitempty"`
	SubmittedAt  time.Time `gorm:"autoCreateTime" json:"submittedAt"`
	Grade        *int      `json:"grade,omitempty"`
}

func (AssignmentSubmission) TableName() string {
	return "assignment_submissions"
}
