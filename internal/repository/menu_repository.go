package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WishlistRepository struct {
	DB *gorm.DB
}

func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{DB: db}
}

// GetOrCreate mirrors the enrollment upsert: unique (user_id, course_id),
// insert-or-fetch.
func (r *WishlistRepository) GetOrCreate(userID, courseID uint) (*model.Wishlist, error) {
	item := model.Wishlist{UserID: userID, CourseID: courseID}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&item).Error
	if err != nil {
		return nil, err
	}

	var out model.Wishlist
	err = r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&out).Error
	return &out, err
}

func (r *WishlistRepository) ListByUser(userID uint) ([]model.Wishlist, error) {
	var items []model.Wishlist
	err := r.DB.Preload("Course").Where("user_id = ?", userID).Order("added_at DESC").Find(&items).Error
	return items, err
}

func (r *WishlistRepository) Delete(userID, courseID uint) error {
	return r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&model.Wishlist{}).Error
}

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(n *model.Notification) error {
	return r.DB.Create(n).Error
}

func (r *NotificationRepository) ListByUser(userID uint) ([]model.Notification, error) {
	var notifications []model.Notification
	err := r.DB.Where("user_id = ?", userID).Order("created_at DESC").Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepository) MarkRead(id, userID uint) error {
	res := r.DB.Model(&model.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

type HelpTopicRepository struct {
	DB *gorm.DB
}

func NewHelpTopicRepository(db *gorm.DB) *HelpTopicRepository {
	return &HelpTopicRepository{DB: db}
}

func (r *HelpTopicRepository) List() ([]model.HelpTopic, error) {
	var topics []model.HelpTopic
	err := r.DB.Order("id ASC").Find(&topics).Error
	return topics, err
}
