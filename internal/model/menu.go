package model

import (
	"time"
)

// Wishlist entries are unique per (user, course), same upsert discipline as
// enrollments.
type Wishlist struct {
	ID       uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   uint      `gorm:"uniqueIndex:idx_wishlist_user_course;not null" json:"userId"`
	CourseID uint      `gorm:"uniqueIndex:idx_wishlist_user_course;not null" json:"courseId"`
	Course   *Course   `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"addedAt"`
}

func (Wishlist) TableName() string {
	return "wishlists"
}

type Notification struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Message   string    `gorm:"size:255;not null" json:"message"`
	IsRead    bool      `gorm:"default:false" json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

func (Notification) TableName() string {
	return "notifications"
}

type HelpTopic struct {
	ID      uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Title   string `gorm:"size:255;not null" json:"title"`
	Content string `gorm:"type:text" json:"content"`
}

func (HelpTopic) TableName() string {
	return "help_topics"
}
