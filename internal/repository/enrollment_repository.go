package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

// GetOrCreate inserts with ON CONFLICT DO NOTHING on the (user_id, course_id)
// unique index, then fetches the surviving row. Concurrent callers both reach
// the insert; exactly one row ever exists.
func (r *EnrollmentRepository) GetOrCreate(userID, courseID uint) (*model.Enrollment, error) {
	enrollment := model.Enrollment{
		UserID:   userID,
		CourseID: courseID,
		Status:   model.EnrollmentInProgress,
	}
	err := r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(&enrollment).Error
	if err != nil {
		return nil, err
	}

	var out model.Enrollment
	err = r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&out).Error
	return &out, err
}

func (r *EnrollmentRepository) FindByIDAndUser(id, userID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&enrollment).Error
	return &enrollment, err
}

func (r *EnrollmentRepository) FindByUserAndCourse(userID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	return &enrollment, err
}

// MarkCompleted is an idempotent one-way transition; updating an already
// completed enrollment (or none at all) is a no-op. Returns the number of
// rows actually transitioned.
func (r *EnrollmentRepository) MarkCompleted(userID, courseID uint) (int64, error) {
	res := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ? AND status <> ?", userID, courseID, model.EnrollmentCompleted).
		Update("status", model.EnrollmentCompleted)
	return res.RowsAffected, res.Error
}

func (r *EnrollmentRepository) MarkCompletedByID(id uint) error {
	return r.DB.Model(&model.Enrollment{}).
		Where("id = ?", id).
		Update("status", model.EnrollmentCompleted).
		Error
}

func (r *EnrollmentRepository) ListByUser(userID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("user_id = ?", userID).Order("enrolled_at DESC").Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) CourseIDsByUserAndStatus(userID uint, status model.EnrollmentStatus) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND status = ?", userID, status).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (r *EnrollmentRepository) ExistsByUserAndCourse(userID, courseID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

// CountDistinctStudents counts distinct enrolled users across the given courses.
func (r *EnrollmentRepository) CountDistinctStudents(courseIDs []uint) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id IN ?", courseIDs).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}
