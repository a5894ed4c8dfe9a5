package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ChapterRepository struct {
	DB *gorm.DB
}

func NewChapterRepository(db *gorm.DB) *ChapterRepository {
	return &ChapterRepository{DB: db}
}

func (r *ChapterRepository) Create(chapter *model.Chapter) error {
	return r.DB.Create(chapter).Error
}

func (r *ChapterRepository) ListByModule(moduleID uint) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := r.DB.
		Preload("Contents").
		Where("module_id = ?", moduleID).
		Order("sort_order ASC").
		Find(&chapters).Error
	return chapters, err
}

func (r *ChapterRepository) CountByModule(moduleID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Chapter{}).Where("module_id = ?", moduleID).Count(&count).Error
	return count, err
}
