package service

import (
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"strings"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type ChapterService struct {
	ChapterRepo    *repository.ChapterRepository
	ModuleRepo     *repository.ModuleRepository
	StorageService *StorageService
	DB             *gorm.DB
}

func NewChapterService(chapterRepo *repository.ChapterRepository, moduleRepo *repository.ModuleRepository, storageService *StorageService, db *gorm.DB) *ChapterService {
	return &ChapterService{
		ChapterRepo:    chapterRepo,
		ModuleRepo:     moduleRepo,
		StorageService: storageService,
		DB:             db,
	}
}

type ChapterCreateRequest struct {
	Title string `form:"title" binding:"required"`
	// Contents carries an optional JSON content-item list; file parts are
	// referenced by fileFieldKey, same convention as course creation.
	Contents string `form:"contents"`
}

// CreateChapter appends a chapter to the module. Order is the current
// sibling count, never client input, so siblings stay gap-free.
func (s *ChapterService) CreateChapter(ctx context.Context, courseID, moduleID uint, req ChapterCreateRequest, files map[string][]*multipart.FileHeader) (*model.Chapter, error) {
	module, err := s.ModuleRepo.FindInCourse(moduleID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	var contents []ContentItemInput
	if strings.TrimSpace(req.Contents) != "" {
		if err := json.Unmarshal([]byte(req.Contents), &contents); err != nil {
			return nil, util.NewValidationError("contents", "invalid structured payload")
		}
	}

	wrapper := []ModuleInput{{Chapters: []ChapterInput{{Title: req.Title, Contents: contents}}}}
	if err := validateModules(wrapper, files); err != nil {
		return nil, err
	}

	for i := range contents {
		fh := firstFile(files, contents[i].FileFieldKey)
		if fh == nil {
			continue
		}
		url, err := s.StorageService.UploadMultipart(ctx, fh, "chapter_contents")
		if err != nil {
			return nil, err
		}
		contents[i].fileURL = url
	}

	var chapterID uint
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var siblings int64
		if err := tx.Model(&model.Chapter{}).Where("module_id = ?", module.ID).Count(&siblings).Error; err != nil {
			return err
		}

		chapter := &model.Chapter{
			Title:    req.Title,
			ModuleID: module.ID,
			Order:    int(siblings),
		}
		if err := tx.Create(chapter).Error; err != nil {
			return err
		}
		chapterID = chapter.ID

		for _, item := range contents {
			content := &model.ChapterContent{
				ChapterID:   chapter.ID,
				ContentType: item.ContentType,
				Title:       item.ContentTitle,
				Text:        item.Text,
				File:        item.fileURL,
				VideoURL:    canonicalVideoURL(item),
			}
			if err := tx.Create(content).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var out model.Chapter
	if err := s.DB.Preload("Contents").First(&out, chapterID).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *ChapterService) ListChapters(courseID, moduleID uint) ([]model.Chapter, error) {
	module, err := s.ModuleRepo.FindInCourse(moduleID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return s.ChapterRepo.ListByModule(module.ID)
}
