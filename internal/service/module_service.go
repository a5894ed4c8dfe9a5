package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type ModuleService struct {
	ModuleRepo        *repository.ModuleRepository
	CourseRepo        *repository.CourseRepository
	EnrollmentService *EnrollmentService
}

func NewModuleService(moduleRepo *repository.ModuleRepository, courseRepo *repository.CourseRepository, enrollmentService *EnrollmentService) *ModuleService {
	return &ModuleService{
		ModuleRepo:        moduleRepo,
		CourseRepo:        courseRepo,
		EnrollmentService: enrollmentService,
	}
}

// ListModules returns the course's modules in order. Browsing by a student
// auto-enrolls them through the same idempotent get-or-create used by the
// explicit enrollment endpoint.
func (s *ModuleService) ListModules(courseID, userID uint, role model.UserRole) ([]model.Module, error) {
	exists, err := s.CourseRepo.Exists(courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.ErrNotFound
	}

	if role == model.Student {
		if _, err := s.EnrollmentService.GetOrCreate(userID, courseID); err != nil {
			return nil, err
		}
	}

	return s.ModuleRepo.ListByCourse(courseID)
}

// GetModule loads one module with chapters and contents, 404 when the module
// is not under the course in the path.
func (s *ModuleService) GetModule(courseID, moduleID uint) (*model.Module, error) {
	module, err := s.ModuleRepo.FindInCourseDetailed(moduleID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return module, nil
}
