package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type MenuService struct {
	WishlistRepo     *repository.WishlistRepository
	NotificationRepo *repository.NotificationRepository
	HelpTopicRepo    *repository.HelpTopicRepository
	CourseRepo       *repository.CourseRepository
}

func NewMenuService(wishlistRepo *repository.WishlistRepository, notificationRepo *repository.NotificationRepository, helpTopicRepo *repository.HelpTopicRepository, courseRepo *repository.CourseRepository) *MenuService {
	return &MenuService{
		WishlistRepo:     wishlistRepo,
		NotificationRepo: notificationRepo,
		HelpTopicRepo:    helpTopicRepo,
		CourseRepo:       courseRepo,
	}
}

// AddToWishlist is idempotent: repeating the call returns the existing row.
func (s *MenuService) AddToWishlist(userID, courseID uint) (*model.Wishlist, error) {
	exists, err := s.CourseRepo.Exists(courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrNotFound
	}
	return s.WishlistRepo.GetOrCreate(userID, courseID)
}

func (s *MenuService) Wishlist(userID uint) ([]model.Wishlist, error) {
	return s.WishlistRepo.ListByUser(userID)
}

func (s *MenuService) RemoveFromWishlist(userID, courseID uint) error {
	return s.WishlistRepo.Delete(userID, courseID)
}

func (s *MenuService) Notifications(userID uint) ([]model.Notification, error) {
	return s.NotificationRepo.ListByUser(userID)
}

func (s *MenuService) MarkNotificationRead(id, userID uint) error {
	err := s.NotificationRepo.MarkRead(id, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.ErrNotFound
	}
	return err
}

func (s *MenuService) HelpTopics() ([]model.HelpTopic, error) {
	return s.HelpTopicRepo.List()
}
