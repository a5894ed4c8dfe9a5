package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo      *repository.ProgressRepository
	ModuleRepo        *repository.ModuleRepository
	EnrollmentService *EnrollmentService
}

func NewProgressService(progressRepo *repository.ProgressRepository, moduleRepo *repository.ModuleRepository, enrollmentService *EnrollmentService) *ProgressService {
	return &ProgressService{
		ProgressRepo:      progressRepo,
		ModuleRepo:        moduleRepo,
		EnrollmentService: enrollmentService,
	}
}

// UpsertProgress validates the value, confirms the module sits under the
// course from the request path, writes the single (user, module) progress row
// atomically, then runs the completion cascade.
func (s *ProgressService) UpsertProgress(userID, courseID, moduleID uint, value int) (*model.ModuleProgress, error) {
	if value < 0 || value > 100 {
		return nil, util.NewValidationError("progress", "must be between 0 and 100")
	}

	module, err := s.ModuleRepo.FindInCourse(moduleID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	row, err := s.ProgressRepo.Upsert(userID, module.ID, value)
	if err != nil {
		return nil, err
	}

	if err := s.runCompletionCascade(userID, module.CourseID); err != nil {
		return nil, err
	}

	return row, nil
}

// runCompletionCascade recounts course completion from scratch on every
// progress write. A recomputation rather than an increment: it tolerates
// repeated and out-of-order updates, and two requests finishing the last two
// modules concurrently converge on the same completed state.
func (s *ProgressService) runCompletionCascade(userID, courseID uint) error {
	total, err := s.ModuleRepo.CountByCourse(courseID)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	completed, err := s.ProgressRepo.CountCompletedInCourse(userID, courseID)
	if err != nil {
		return err
	}

	if completed == total {
		logger.Log.Debug("completion cascade fired",
			zap.Uint("userId", userID),
			zap.Uint("courseId", courseID),
			zap.Int64("modules", total))
		return s.EnrollmentService.MarkCompleted(userID, courseID)
	}
	return nil
}

// ListProgress: admins see every row, everyone else only their own.
func (s *ProgressService) ListProgress(userID uint, role model.UserRole) ([]model.ModuleProgress, error) {
	if role.Can(model.ResourceProgress, model.CapWriteAny) {
		return s.ProgressRepo.ListAll()
	}
	return s.ProgressRepo.ListByUser(userID)
}
