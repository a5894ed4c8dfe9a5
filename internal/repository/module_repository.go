package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) ListByCourse(courseID uint) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.
		Where("course_id = ?", courseID).
		Order("sort_order ASC").
		Find(&modules).Error
	return modules, err
}

// FindInCourse returns the module only when it belongs to the given course;
// a mismatch surfaces as gorm.ErrRecordNotFound.
func (r *ModuleRepository) FindInCourse(moduleID, courseID uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.
		Where("id = ? AND course_id = ?", moduleID, courseID).
		First(&module).Error
	return &module, err
}

func (r *ModuleRepository) FindInCourseDetailed(moduleID, courseID uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.
		Preload("Chapters", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC")
		}).
		Preload("Chapters.Contents").
		Where("id = ? AND course_id = ?", moduleID, courseID).
		First(&module).Error
	return &module, err
}

func (r *ModuleRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Module{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
