package service

import (
	"errors"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

func newProgressService(t *testing.T, db *gorm.DB) *ProgressService {
	t.Helper()
	enrollment := NewEnrollmentService(
		repository.NewEnrollmentRepository(db),
		repository.NewCourseRepository(db),
		repository.NewNotificationRepository(db),
	)
	return NewProgressService(
		repository.NewProgressRepository(db),
		repository.NewModuleRepository(db),
		enrollment,
	)
}

func TestUpsertProgress_RejectsOutOfRange(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	student := createUser(t, db, "stud", model.Student)
	inst := createUser(t, db, "inst", model.Instructor)
	course := createCourse(t, db, inst.ID, "C")
	module := createModule(t, db, course.ID, "M", 0)

	for _, bad := range []int{-1, 101, 500} {
		_, err := svc.UpsertProgress(student.ID, course.ID, module.ID, bad)
		if _, ok := util.AsValidation(err); !ok {
			t.Fatalf("value %d: expected validation error, got %v", bad, err)
		}
	}

	var count int64
	db.Model(&model.ModuleProgress{}).Count(&count)
	if count != 0 {
		t.Fatalf("rejected update must not write rows, found %d", count)
	}
}

func TestUpsertProgress_ModuleMustBelongToCourse(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	student := createUser(t, db, "stud", model.Student)
	inst := createUser(t, db, "inst", model.Instructor)
	courseA := createCourse(t, db, inst.ID, "A")
	courseB := createCourse(t, db, inst.ID, "B")
	moduleB := createModule(t, db, courseB.ID, "MB", 0)

	_, err := svc.UpsertProgress(student.ID, courseA.ID, moduleB.ID, 50)
	if !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("expected not found for cross-course module, got %v", err)
	}
}

func TestUpsertProgress_SingleRowPerUserModule(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	student := createUser(t, db, "stud", model.Student)
	inst := createUser(t, db, "inst", model.Instructor)
	course := createCourse(t, db, inst.ID, "C")
	module := createModule(t, db, course.ID, "M", 0)
	createModule(t, db, course.ID, "M2", 1)

	if _, err := svc.UpsertProgress(student.ID, course.ID, module.ID, 40); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	row, err := svc.UpsertProgress(student.ID, course.ID, module.ID, 80)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if row.Progress != 80 {
		t.Fatalf("expected progress 80, got %d", row.Progress)
	}

	var count int64
	db.Model(&model.ModuleProgress{}).
		Where("user_id = ? AND module_id = ?", student.ID, module.ID).
		Count(&count)
	if count != 1 {
		t.Fatalf("expected a single progress row, found %d", count)
	}
}

func TestCompletionCascade_FiresOnlyWhenAllModulesDone(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	student := createUser(t, db, "stud", model.Student)
	inst := createUser(t, db, "inst", model.Instructor)
	course := createCourse(t, db, inst.ID, "C")
	m1 := createModule(t, db, course.ID, "M1", 0)
	m2 := createModule(t, db, course.ID, "M2", 1)

	enrRepo := repository.NewEnrollmentRepository(db)
	if _, err := enrRepo.GetOrCreate(student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	status := func() model.EnrollmentStatus {
		e, err := enrRepo.FindByUserAndCourse(student.ID, course.ID)
		if err != nil {
			t.Fatalf("find enrollment: %v", err)
		}
		return e.Status
	}

	if _, err := svc.UpsertProgress(student.ID, course.ID, m1.ID, 100); err != nil {
		t.Fatalf("m1=100: %v", err)
	}
	if status() != model.EnrollmentInProgress {
		t.Fatalf("one module done must not complete the course")
	}

	if _, err := svc.UpsertProgress(student.ID, course.ID, m2.ID, 60); err != nil {
		t.Fatalf("m2=60: %v", err)
	}
	if status() != model.EnrollmentInProgress {
		t.Fatalf("partial progress must not complete the course")
	}

	if _, err := svc.UpsertProgress(student.ID, course.ID, m2.ID, 100); err != nil {
		t.Fatalf("m2=100: %v", err)
	}
	if status() != model.EnrollmentCompleted {
		t.Fatalf("all modules at 100 should complete the enrollment")
	}

	var notifications int64
	db.Model(&model.Notification{}).Where("user_id = ?", student.ID).Count(&notifications)
	if notifications != 1 {
		t.Fatalf("expected one completion notification, got %d", notifications)
	}

	// Re-sending 100 keeps the state and does not notify again.
	if _, err := svc.UpsertProgress(student.ID, course.ID, m2.ID, 100); err != nil {
		t.Fatalf("repeat m2=100: %v", err)
	}
	if status() != model.EnrollmentCompleted {
		t.Fatalf("completion is one-way")
	}
	db.Model(&model.Notification{}).Where("user_id = ?", student.ID).Count(&notifications)
	if notifications != 1 {
		t.Fatalf("repeated completion must not notify again, got %d", notifications)
	}
}

func TestCompletionCascade_LoweringProgressNeverReopens(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	student := createUser(t, db, "stud", model.Student)
	inst := createUser(t, db, "inst", model.Instructor)
	course := createCourse(t, db, inst.ID, "C")
	m1 := createModule(t, db, course.ID, "M1", 0)

	enrRepo := repository.NewEnrollmentRepository(db)
	if _, err := enrRepo.GetOrCreate(student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if _, err := svc.UpsertProgress(student.ID, course.ID, m1.ID, 100); err != nil {
		t.Fatalf("m1=100: %v", err)
	}
	if _, err := svc.UpsertProgress(student.ID, course.ID, m1.ID, 10); err != nil {
		t.Fatalf("m1=10: %v", err)
	}

	e, err := enrRepo.FindByUserAndCourse(student.ID, course.ID)
	if err != nil {
		t.Fatalf("find enrollment: %v", err)
	}
	if e.Status != model.EnrollmentCompleted {
		t.Fatalf("lowering progress must not undo completion, got %s", e.Status)
	}
}

func TestListProgress_AdminSeesAllRows(t *testing.T) {
	db := newTestDB(t)
	svc := newProgressService(t, db)
	s1 := createUser(t, db, "s1", model.Student)
	s2 := createUser(t, db, "s2", model.Student)
	admin := createUser(t, db, "admin", model.Admin)
	inst := createUser(t, db, "inst", model.Instructor)
	course := createCourse(t, db, inst.ID, "C")
	module := createModule(t, db, course.ID, "M", 0)

	if _, err := svc.UpsertProgress(s1.ID, course.ID, module.ID, 10); err != nil {
		t.Fatalf("s1: %v", err)
	}
	if _, err := svc.UpsertProgress(s2.ID, course.ID, module.ID, 20); err != nil {
		t.Fatalf("s2: %v", err)
	}

	own, err := svc.ListProgress(s1.ID, s1.Role)
	if err != nil {
		t.Fatalf("student list: %v", err)
	}
	if len(own) != 1 || own[0].UserID != s1.ID {
		t.Fatalf("student should only see own rows: %+v", own)
	}

	all, err := svc.ListProgress(admin.ID, admin.Role)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("admin should see every row, got %d", len(all))
	}
}
