package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AssignmentRepository struct {
	DB *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{DB: db}
}

func (r *AssignmentRepository) Create(assignment *model.Assignment) error {
	return r.DB.Create(assignment).Error
}

func (r *AssignmentRepository) FindByID(id uint) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.DB.First(&assignment, id).Error
	return &assignment, err
}

func (r *AssignmentRepository) ListByModule(moduleID uint) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Where("module_id = ?", moduleID).Order("created_at ASC").Find(&assignments).Error
	return assignments, err
}

func (r *AssignmentRepository) List() ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.DB.Order("created_at DESC").Find(&assignments).Error
	return assignments, err
}

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.AssignmentSubmission) error {
	return r.DB.Create(submission).Error
}

func (r *SubmissionRepository) FindByID(id uint) (*model.AssignmentSubmission, error) {
	var submission model.AssignmentSubmission
	err := r.DB.First(&submission, id).Error
	return &submission, err
}

func (r *SubmissionRepository) ListByStudent(studentID uint) ([]model.AssignmentSubmission, error) {
	var submissions []model.AssignmentSubmission
	err := r.DB.Where("student_id = ?", studentID).Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) ListByAssignment(assignmentID uint) ([]model.AssignmentSubmission, error) {
	var submissions []model.AssignmentSubmission
	err := r.DB.Where("assignment_id = ?", assignmentID).Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) UpdateGrade(id uint, grade int) error {
	return r.DB.Model(&model.AssignmentSubmission{}).
		Where("id = ?", id).
		Update("grade", grade).
		Error
}
