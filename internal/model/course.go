package model

import (
	"time"
)

// Course is the root of the content tree: Course -> Module -> Chapter -> ChapterContent.
// Deleting a course cascades down the whole tree (see CourseService.DeleteCourse).
type Course struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	CoverImage   string    `gorm:"size:512" json:"coverImage,omitempty"`
	InstructorID uint      `gorm:"index;not null" json:"instructorId"`
	Modules      []Module  `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Derived per request for the authenticated caller, never stored.
	IsEnrolled bool `gorm:"-" json:"isEnrolled"`
}

func (Course) TableName() string {
	return "courses"
}

// Module order is zero-based and always assigned from payload position,
// never from client input.
type Module struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	CourseID    uint      `gorm:"index;not null" json:"courseId"`
	Order       int       `gorm:"column:sort_order;default:0" json:"order"`
	Chapters    []Chapter `gorm:"foreignKey:ModuleID" json:"chapters,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (Module) TableName() string {
	return "modules"
}

type Chapter struct {
	ID        uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	Title     string           `gorm:"size:255;not null" json:"title"`
	ModuleID  uint             `gorm:"index;not null" json:"moduleId"`
	Order     int              `gorm:"column:sort_order;default:0" json:"order"`
	Contents  []ChapterContent `gorm:"foreignKey:ChapterID" json:"contents,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

func (Chapter) TableName() string {
	return "chapters"
}

type ContentType string

const (
	ContentVideo        ContentType = "video"
	ContentText         ContentType = "text"
	ContentDocument     ContentType = "document"
	ContentImage        ContentType = "image"
	ContentPresentation ContentType = "presentation"
)

// ValidContentType reports whether t is one of the supported content types.
func ValidContentType(t ContentType) bool {
	switch t {
	case ContentVideo, ContentText, ContentDocument, ContentImage, ContentPresentation:
		return true
	}
	return false
}

// ChapterContent holds exactly one active payload per content type:
// text => Text, video => File or VideoURL, document/image/presentation => File.
type ChapterContent struct {
	ID          uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	ChapterID   uint        `gorm:"index;not null" json:"chapterId"`
	ContentType ContentType `gorm:"size:50;not null" json:"contentType"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Text        string      `gorm:"type:text" json:"text,omitempty"`
	File        string      `gorm:"size:512" json:"file,omitempty"`
	VideoURL    string      `gorm:"size:512" json:"videoUrl,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

func (ChapterContent) TableName() string {
	return "chapter_contents"
}
