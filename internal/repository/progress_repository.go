package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

// Upsert inserts or updates the single (user_id, module_id) row atomically
// via ON CONFLICT DO UPDATE; a check-then-create would race.
func (r *ProgressRepository) Upsert(userID, moduleID uint, value int) (*model.ModuleProgress, error) {
	row := model.ModuleProgress{
		UserID:   userID,
		ModuleID: moduleID,
		Progress: value,
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"progress":     value,
			"last_updated": time.Now(),
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	var out model.ModuleProgress
	err = r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&out).Error
	return &out, err
}

func (r *ProgressRepository) Find(userID, moduleID uint) (*model.ModuleProgress, error) {
	var row model.ModuleProgress
	err := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&row).Error
	return &row, err
}

func (r *ProgressRepository) ListAll() ([]model.ModuleProgress, error) {
	var rows []model.ModuleProgress
	err := r.DB.Order("last_updated DESC").Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) ListByUser(userID uint) ([]model.ModuleProgress, error) {
	var rows []model.ModuleProgress
	err := r.DB.Where("user_id = ?", userID).Order("last_updated DESC").Find(&rows).Error
	return rows, err
}

// CountCompletedInCourse counts distinct modules of the course for which the
// user has a progress row at exactly 100.
func (r *ProgressRepository) CountCompletedInCourse(userID, courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ModuleProgress{}).
		Joins("JOIN modules ON modules.id = module_progress.module_id").
		Where("module_progress.user_id = ? AND modules.course_id = ? AND module_progress.progress = ?", userID, courseID, 100).
		Distinct("module_progress.module_id").
		Count(&count).Error
	return count, err
}
