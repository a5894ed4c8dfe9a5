package service

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type AssignmentService struct {
	AssignmentRepo *repository.AssignmentRepository
	SubmissionRepo *repository.SubmissionRepository
	ModuleRepo     *repository.ModuleRepository
	CourseRepo     *repository.CourseRepository
	StorageService *StorageService
}

func NewAssignmentService(assignmentRepo *repository.AssignmentRepository, submissionRepo *repository.SubmissionRepository, moduleRepo *repository.ModuleRepository, courseRepo *repository.CourseRepository, storageService *StorageService) *AssignmentService {
	return &AssignmentService{
		AssignmentRepo: assignmentRepo,
		SubmissionRepo: submissionRepo,
		ModuleRepo:     moduleRepo,
		CourseRepo:     courseRepo,
		StorageService: storageService,
	}
}

type AssignmentCreateRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	DueDate     string `form:"due_date"`
	MaxScore    int    `form:"max_score"`
}

func (s *AssignmentService) CreateAssignment(ctx context.Context, courseID, moduleID uint, req AssignmentCreateRequest, files map[string][]*multipart.FileHeader) (*model.Assignment, error) {
	module, err := s.ModuleRepo.FindInCourse(moduleID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	assignment := &model.Assignment{
		ModuleID:    module.ID,
		Title:       req.Title,
		Description: req.Description,
		MaxScore:    req.MaxScore,
	}
	if assignment.MaxScore <= 0 {
		assignment.MaxScore = 100
	}

	if strings.TrimSpace(req.DueDate) != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, util.NewValidationError("due_date", "expected YYYY-MM-DD")
		}
		assignment.DueDate = &due
	}

	if fh := firstFile(files, "file"); fh != nil {
		url, err := s.StorageService.UploadMultipart(ctx, fh, "assignments")
		if err != nil {
			return nil, err
		}
		assignment.File = url
	}

	if err := s.AssignmentRepo.Create(assignment); err != nil {
		return nil, err
	}
	return assignment, nil
}

func (s *AssignmentService) ListAssignments(courseID, moduleID uint) ([]model.Assignment, error) {
	module, err := s.ModuleRepo.FindInCourse(moduleID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return s.AssignmentRepo.ListByModule(module.ID)
}

type SubmissionCreateRequest struct {
	Text string `form:"text"`
}

// CreateSubmission attaches the submission to the calling student. No
// uniqueness: each submission stands on its own.
func (s *AssignmentService) CreateSubmission(ctx context.Context, assignmentID, studentID uint, req SubmissionCreateRequest, files map[string][]*multipart.FileHeader) (*model.AssignmentSubmission, error) {
	if _, err := s.AssignmentRepo.FindByID(assignmentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	submission := &model.AssignmentSubmission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Text:         req.Text,
	}

	if fh := firstFile(files, "file"); fh != nil {
		url, err := s.StorageService.UploadMultipart(ctx, fh, "submissions")
		if err != nil {
			return nil, err
		}
		submission.File = url
	}

	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *AssignmentService) MySubmissions(studentID uint) ([]model.AssignmentSubmission, error) {
	return s.SubmissionRepo.ListByStudent(studentID)
}

func (s *AssignmentService) ListSubmissions(assignmentID uint) ([]model.AssignmentSubmission, error) {
	return s.SubmissionRepo.ListByAssignment(assignmentID)
}

// GradeSubmission is restricted to the instructor owning the course the
// assignment sits under (admin write-any overrides).
func (s *AssignmentService) GradeSubmission(callerID uint, callerRole model.UserRole, submissionID uint, grade int) (*model.AssignmentSubmission, error) {
	submission, err := s.SubmissionRepo.FindByID(submissionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	assignment, err := s.AssignmentRepo.FindByID(submission.AssignmentID)
	if err != nil {
		return nil, err
	}
	if grade < 0 || grade > assignment.MaxScore {
		return nil, util.NewValidationError("grade", "must be between 0 and %d", assignment.MaxScore)
	}

	var module model.Module
	if err := s.ModuleRepo.DB.First(&module, assignment.ModuleID).Error; err != nil {
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(module.CourseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != callerID && !callerRole.Can(model.ResourceSubmissions, model.CapWriteAny) {
		return nil, util.ErrPermissionDenied
	}

	if err := s.SubmissionRepo.UpdateGrade(submission.ID, grade); err != nil {
		return nil, err
	}
	submission.Grade = &grade
	return submission, nil
}
