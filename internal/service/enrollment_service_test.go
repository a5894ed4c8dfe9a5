package service

import (
	"errors"
	"sync"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

func newEnrollmentService(t *testing.T, db *gorm.DB) *EnrollmentService {
	t.Helper()
	return NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewNotificationRepository(db),
	)
}

func TestGetOrCreate_IsIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(t, db)
	student := createUser(t, db, "stud", model.Student)
	inst := createUser(t, db, "inst", model.Instructor)
	course := createCourse(t, db, inst.ID, "C")

	first, err := svc.GetOrCreate(student.ID, course.ID)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	second, err := svc.GetOrCreate(student.ID, course.ID)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected the same enrollment row, got %d and %d", first.ID, second.ID)
	}

	var count int64
	db.Model(&model.Enrollment{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one enrollment row, found %d", count)
	}
}

func TestGetOrCreate_ConcurrentCallsProduceOneRow(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(t, db)
	student := createUser(t, db, "stud", model.Student)
	inst := createUser(t, db, "inst", model.Instructor)
	course := createCourse(t, db, inst.ID, "C")

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.GetOrCreate(student.ID, course.ID); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent enroll: %v", err)
	}

	var count int64
	db.Model(&model.Enrollment{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected one enrollment row, found %d", count)
	}
}

func TestGetOrCreate_UnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(t, db)
	student := createUser(t, db, "stud", model.Student)

	_, err := svc.GetOrCreate(student.ID, 9999)
	if !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMarkCompletedByID_OwnershipAndOneWay(t *testing.T) {
	db := newTestDB(t)
	svc := newEnrollmentService(t, db)
	student := createUser(t, db, "stud", model.Student)
	other := createUser(t, db, "other", model.Student)
	inst := createUser(t, db, "inst", model.Instructor)
	course := createCourse(t, db, inst.ID, "C")

	enrollment, err := svc.GetOrCreate(student.ID, course.ID)
	if err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if _, err := svc.MarkCompletedByID(other.ID, enrollment.ID); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("foreign enrollment should read as not found, got %v", err)
	}

	done, err := svc.MarkCompletedByID(student.ID, enrollment.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != model.EnrollmentCompleted {
		t.Fatalf("expected completed, got %s", done.Status)
	}

	again, err := svc.MarkCompletedByID(student.ID, enrollment.ID)
	if err != nil {
		t.Fatalf("repeat complete: %v", err)
	}
	if again.Status != model.EnrollmentCompleted {
		t.Fatalf("completion is one-way, got %s", again.Status)
	}

	var notifications int64
	db.Model(&model.Notification{}).Where("user_id = ?", student.ID).Count(&notifications)
	if notifications != 1 {
		t.Fatalf("expected one notification, got %d", notifications)
	}
}

func TestAutoEnrollOnModuleBrowse(t *testing.T) {
	db := newTestDB(t)
	enrollment := newEnrollmentService(t, db)
	moduleSvc := NewModuleService(
		repository.NewModuleRepository(db),
		repository.NewCourseRepository(db),
		enrollment,
	)
	student := createUser(t, db, "stud", model.Student)
	inst := createUser(t, db, "inst", model.Instructor)
	course := createCourse(t, db, inst.ID, "C")
	createModule(t, db, course.ID, "M1", 0)

	if _, err := moduleSvc.ListModules(course.ID, student.ID, student.Role); err != nil {
		t.Fatalf("student browse: %v", err)
	}
	var count int64
	db.Model(&model.Enrollment{}).Where("user_id = ?", student.ID).Count(&count)
	if count != 1 {
		t.Fatalf("browsing as a student should enroll, found %d rows", count)
	}

	if _, err := moduleSvc.ListModules(course.ID, inst.ID, inst.Role); err != nil {
		t.Fatalf("instructor browse: %v", err)
	}
	db.Model(&model.Enrollment{}).Where("user_id = ?", inst.ID).Count(&count)
	if count != 0 {
		t.Fatalf("instructors must not be auto-enrolled, found %d rows", count)
	}
}
