package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const catalogCacheKey = "courses:catalog"
const catalogCacheTTL = time.Minute

type CourseService struct {
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
	StorageService *StorageService
	DB             *gorm.DB
	Redis          *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository, storageService *StorageService, db *gorm.DB, rdb *redis.Client) *CourseService {
	return &CourseService{
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
		StorageService: storageService,
		DB:             db,
		Redis:          rdb,
	}
}

type CourseCreateRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description"`
	// Modules carries the JSON-serialized nested module list; file parts are
	// referenced from content items by fileFieldKey.
	Modules string `form:"modules"`
}

type ContentItemInput struct {
	ContentType  model.ContentType `json:"content_type"`
	ContentTitle string            `json:"content_title"`
	Text         string            `json:"text"`
	VideoURL     string            `json:"video_url"`
	Link         string            `json:"link"`
	FileFieldKey string            `json:"fileFieldKey"`

	// Resolved before the transaction runs.
	fileURL string
}

type ChapterInput struct {
	Title    string             `json:"title"`
	Contents []ContentItemInput `json:"contents"`
}

type ModuleInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Chapters    []ChapterInput `json:"chapters"`
}

// CreateCourse materializes the whole course tree in one transaction. Module
// and chapter order come from payload position only; any client-supplied
// order is ignored. Validation runs over the full payload before any row is
// written so a failure leaves nothing behind.
func (s *CourseService) CreateCourse(ctx context.Context, instructorID uint, req CourseCreateRequest, files map[string][]*multipart.FileHeader) (*model.Course, error) {
	modules, err := parseModulesPayload(req.Modules)
	if err != nil {
		return nil, err
	}

	if err := validateModules(modules, files); err != nil {
		return nil, err
	}

	coverURL := ""
	if fh := firstFile(files, "cover_image"); fh != nil {
		coverURL, err = s.StorageService.UploadMultipart(ctx, fh, "course_covers")
		if err != nil {
			return nil, err
		}
	}

	// Upload referenced blobs after validation so a rejected payload never
	// touches the file store.
	for mi := range modules {
		for ci := range modules[mi].Chapters {
			for ki := range modules[mi].Chapters[ci].Contents {
				item := &modules[mi].Chapters[ci].Contents[ki]
				fh := firstFile(files, item.FileFieldKey)
				if fh == nil {
					continue
				}
				url, err := s.StorageService.UploadMultipart(ctx, fh, "chapter_contents")
				if err != nil {
					return nil, err
				}
				item.fileURL = url
			}
		}
	}

	var courseID uint
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		course := &model.Course{
			Title:        req.Title,
			Description:  req.Description,
			CoverImage:   coverURL,
			InstructorID: instructorID,
		}
		if err := tx.Create(course).Error; err != nil {
			return err
		}
		courseID = course.ID

		for mi, modInput := range modules {
			module := &model.Module{
				Title:       modInput.Title,
				Description: modInput.Description,
				CourseID:    course.ID,
				Order:       mi,
			}
			if err := tx.Create(module).Error; err != nil {
				return err
			}

			for ci, chInput := range modInput.Chapters {
				chapter := &model.Chapter{
					Title:    chInput.Title,
					ModuleID: module.ID,
					Order:    ci,
				}
				if err := tx.Create(chapter).Error; err != nil {
					return err
				}

				for _, item := range chInput.Contents {
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
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	logger.Log.Info("course created",
		zap.Uint("courseId", courseID),
		zap.Uint("instructorId", instructorID),
		zap.Int("modules", len(modules)))

	return s.CourseRepo.FindByID(courseID)
}

func parseModulesPayload(raw string) ([]ModuleInput, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var modules []ModuleInput
	if err := json.Unmarshal([]byte(raw), &modules); err != nil {
		return nil, util.NewValidationError("modules", "invalid structured payload")
	}
	return modules, nil
}

// validateModules applies the per-type field rules to every content item
// before anything is persisted. A fileFieldKey with no matching part just
// means "no file"; whether that is acceptable depends on the content type.
func validateModules(modules []ModuleInput, files map[string][]*multipart.FileHeader) error {
	for mi, mod := range modules {
		for ci, ch := range mod.Chapters {
			for ki, item := range ch.Contents {
				field := contentField(mi, ci, ki)
				hasFile := firstFile(files, item.FileFieldKey) != nil

				if !model.ValidContentType(item.ContentType) {
					return util.NewValidationError(field, "unknown content_type %q", item.ContentType)
				}
				switch item.ContentType {
				case model.ContentText:
					if strings.TrimSpace(item.Text) == "" {
						return util.NewValidationError(field, "text content requires 'text'")
					}
				case model.ContentVideo:
					if !hasFile && item.VideoURL == "" && item.Link == "" {
						return util.NewValidationError(field, "video content requires either 'video_url' or a file")
					}
				default:
					if !hasFile {
						return util.NewValidationError(field, "%s content requires a file", item.ContentType)
					}
				}
			}
		}
	}
	return nil
}

func contentField(mi, ci, ki int) string {
	return fmt.Sprintf("modules[%d].chapters[%d].contents[%d]", mi, ci, ki)
}

// canonicalVideoURL prefers the explicit video_url, falling back to the
// generic link alias.
func canonicalVideoURL(item ContentItemInput) string {
	if item.VideoURL != "" {
		return item.VideoURL
	}
	return item.Link
}

func firstFile(files map[string][]*multipart.FileHeader, key string) *multipart.FileHeader {
	if key == "" || files == nil {
		return nil
	}
	if headers, ok := files[key]; ok && len(headers) > 0 {
		return headers[0]
	}
	return nil
}

// ListCourses serves the public catalog, cached in Redis; enrollment flags
// are annotated per caller after the cache hit.
func (s *CourseService) ListCourses(ctx context.Context, userID uint) ([]model.Course, error) {
	courses, err := s.cachedCatalog(ctx)
	if err != nil {
		return nil, err
	}
	if userID != 0 {
		if err := s.annotateEnrollment(userID, courses); err != nil {
			return nil, err
		}
	}
	return courses, nil
}

func (s *CourseService) cachedCatalog(ctx context.Context) ([]model.Course, error) {
	if s.Redis != nil {
		if raw, err := s.Redis.Get(ctx, catalogCacheKey).Result(); err == nil {
			var cached []model.Course
			if json.Unmarshal([]byte(raw), &cached) == nil {
				return cached, nil
			}
		}
	}

	courses, err := s.CourseRepo.List()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if raw, err := json.Marshal(courses); err == nil {
			s.Redis.Set(ctx, catalogCacheKey, raw, catalogCacheTTL)
		}
	}
	return courses, nil
}

func (s *CourseService) invalidateCatalog(ctx context.Context) {
	if s.Redis != nil {
		s.Redis.Del(ctx, catalogCacheKey)
	}
}

func (s *CourseService) annotateEnrollment(userID uint, courses []model.Course) error {
	enrollments, err := s.EnrollmentRepo.ListByUser(userID)
	if err != nil {
		return err
	}
	enrolled := make(map[uint]bool, len(enrollments))
	for _, e := range enrollments {
		enrolled[e.CourseID] = true
	}
	for i := range courses {
		courses[i].IsEnrolled = enrolled[courses[i].ID]
	}
	return nil
}

func (s *CourseService) GetCourse(id, userID uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if userID != 0 {
		course.IsEnrolled, err = s.EnrollmentRepo.ExistsByUserAndCourse(userID, id)
		if err != nil {
			return nil, err
		}
	}
	return course, nil
}

func (s *CourseService) MyCourses(instructorID uint) ([]model.Course, error) {
	return s.CourseRepo.ListByInstructor(instructorID)
}

// CoursesByEnrollmentStatus lists a student's courses currently in the given
// enrollment status.
func (s *CourseService) CoursesByEnrollmentStatus(userID uint, status model.EnrollmentStatus) ([]model.Course, error) {
	ids, err := s.EnrollmentRepo.CourseIDsByUserAndStatus(userID, status)
	if err != nil {
		return nil, err
	}
	return s.CourseRepo.ListByIDs(ids)
}

type CourseUpdateRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

// UpdateCourse is a flat field update; it never re-runs tree construction.
func (s *CourseService) UpdateCourse(ctx context.Context, callerID uint, callerRole model.UserRole, courseID uint, req CourseUpdateRequest, files map[string][]*multipart.FileHeader) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return nil, err
	}
	if course.InstructorID != callerID && !callerRole.Can(model.ResourceCourses, model.CapWriteAny) {
		return nil, util.ErrPermissionDenied
	}

	if req.Title != "" {
		course.Title = req.Title
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if fh := firstFile(files, "cover_image"); fh != nil {
		url, err := s.StorageService.UploadMultipart(ctx, fh, "course_covers")
		if err != nil {
			return nil, err
		}
		course.CoverImage = url
	}

	course.Modules = nil
	if err := s.CourseRepo.Update(course); err != nil {
		return nil, err
	}

	s.invalidateCatalog(ctx)
	return s.CourseRepo.FindByID(courseID)
}

// DeleteCourse removes the course and everything hanging off it: modules,
// chapters, contents, assignments, submissions, enrollments, progress and
// wishlist entries, all in one transaction.
func (s *CourseService) DeleteCourse(ctx context.Context, callerID uint, callerRole model.UserRole, courseID uint) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		return err
	}
	if course.InstructorID != callerID && !callerRole.Can(model.ResourceCourses, model.CapWriteAny) {
		return util.ErrPermissionDenied
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var moduleIDs []uint
		if err := tx.Model(&model.Module{}).Where("course_id = ?", courseID).Pluck("id", &moduleIDs).Error; err != nil {
			return err
		}

		if len(moduleIDs) > 0 {
			var chapterIDs []uint
			if err := tx.Model(&model.Chapter{}).Where("module_id IN ?", moduleIDs).Pluck("id", &chapterIDs).Error; err != nil {
				return err
			}
			if len(chapterIDs) > 0 {
				if err := tx.Where("chapter_id IN ?", chapterIDs).Delete(&model.ChapterContent{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", chapterIDs).Delete(&model.Chapter{}).Error; err != nil {
					return err
				}
			}

			var assignmentIDs []uint
			if err := tx.Model(&model.Assignment{}).Where("module_id IN ?", moduleIDs).Pluck("id", &assignmentIDs).Error; err != nil {
				return err
			}
			if len(assignmentIDs) > 0 {
				if err := tx.Where("assignment_id IN ?", assignmentIDs).Delete(&model.AssignmentSubmission{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", assignmentIDs).Delete(&model.Assignment{}).Error; err != nil {
					return err
				}
			}

			if err := tx.Where("module_id IN ?", moduleIDs).Delete(&model.ModuleProgress{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", moduleIDs).Delete(&model.Module{}).Error; err != nil {
				return err
			}
		}

		if err := tx.Where("course_id = ?", courseID).Delete(&model.Enrollment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("course_id = ?", courseID).Delete(&model.Wishlist{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.Course{}, courseID).Error
	})
	if err != nil {
		return err
	}

	s.invalidateCatalog(ctx)
	logger.Log.Info("course deleted", zap.Uint("courseId", courseID), zap.Uint("callerId", callerID))
	return nil
}
