package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo   *repository.EnrollmentRepository
	CourseRepo       *repository.CourseRepository
	NotificationRepo *repository.NotificationRepository
}

func NewEnrollmentService(enrollmentRepo *repository.EnrollmentRepository, courseRepo *repository.CourseRepository, notificationRepo *repository.NotificationRepository) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo:   enrollmentRepo,
		CourseRepo:       courseRepo,
		NotificationRepo: notificationRepo,
	}
}

// GetOrCreate is the single enrollment entry point, shared by the explicit
// endpoint and the auto-enroll-on-browse path. Idempotent under concurrency
// (unique-index-backed upsert in the repository).
func (s *EnrollmentService) GetOrCreate(userID, courseID uint) (*model.Enrollment, error) {
	exists, err := s.CourseRepo.Exists(courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrNotFound
	}

	return s.EnrollmentRepo.GetOrCreate(userID, courseID)
}

// MarkCompletedByID is the explicit student-facing completion; the enrollment
// must belong to the caller.
func (s *EnrollmentService) MarkCompletedByID(userID, enrollmentID uint) (*model.Enrollment, error) {
	enrollment, err := s.EnrollmentRepo.FindByIDAndUser(enrollmentID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	if enrollment.Status != model.EnrollmentCompleted {
		if err := s.EnrollmentRepo.MarkCompletedByID(enrollment.ID); err != nil {
			return nil, err
		}
		enrollment.Status = model.EnrollmentCompleted
		s.notifyCompletion(userID, enrollment.CourseID)
	}

	return enrollment, nil
}

// MarkCompleted transitions the (user, course) enrollment to completed if one
// exists; repeated application is a no-op. Used by the progress completion
// cascade.
func (s *EnrollmentService) MarkCompleted(userID, courseID uint) error {
	transitioned, err := s.EnrollmentRepo.MarkCompleted(userID, courseID)
	if err != nil {
		return err
	}
	if transitioned > 0 {
		monitoring.CourseCompletions.Inc()
		s.notifyCompletion(userID, courseID)
		logger.Log.Info("enrollment completed",
			zap.Uint("userId", userID),
			zap.Uint("courseId", courseID))
	}
	return nil
}

func (s *EnrollmentService) ListByUser(userID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByUser(userID)
}

func (s *EnrollmentService) notifyCompletion(userID, courseID uint) {
	if s.NotificationRepo == nil {
		return
	}
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return
	}
	n := &model.Notification{
		UserID:  userID,
		Message: "You completed the course \"" + course.Title + "\".",
	}
	if err := s.NotificationRepo.Create(n); err != nil {
		logger.Log.Warn("completion notification failed", zap.Error(err))
	}
}
