package service

import (
	"context"
	"errors"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

func newAssignmentService(t *testing.T, db *gorm.DB) *AssignmentService {
	t.Helper()
	return NewAssignmentService(
		repository.NewAssignmentRepository(db),
		repository.NewSubmissionRepository(db),
		repository.NewModuleRepository(db),
		repository.NewCourseRepository(db),
		newTestStorage(t),
	)
}

func TestCreateAssignment_DefaultsAndDueDate(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(t, db)
	inst := createUser(t, db, "inst", model.Instructor)
	course := createCourse(t, db, inst.ID, "C")
	module := createModule(t, db, course.ID, "M", 0)

	assignment, err := svc.CreateAssignment(context.Background(), course.ID, module.ID, AssignmentCreateRequest{
		Title:   "Essay",
		DueDate: "2026-10-01",
	}, nil)
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}
	if assignment.MaxScore != 100 {
		t.Fatalf("expected default max score 100, got %d", assignment.MaxScore)
	}
	if assignment.DueDate == nil || assignment.DueDate.Format("2006-01-02") != "2026-10-01" {
		t.Fatalf("due date not parsed: %v", assignment.DueDate)
	}

	_, err = svc.CreateAssignment(context.Background(), course.ID, module.ID, AssignmentCreateRequest{
		Title:   "Bad date",
		DueDate: "01/10/2026",
	}, nil)
	if _, ok := util.AsValidation(err); !ok {
		t.Fatalf("expected validation error for bad due date, got %v", err)
	}
}

func TestGradeSubmission_BoundsAndOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(t, db)
	owner := createUser(t, db, "owner", model.Instructor)
	other := createUser(t, db, "other", model.Instructor)
	admin := createUser(t, db, "admin", model.Admin)
	student := createUser(t, db, "stud", model.Student)
	course := createCourse(t, db, owner.ID, "C")
	module := createModule(t, db, course.ID, "M", 0)

	assignment, err := svc.CreateAssignment(context.Background(), course.ID, module.ID, AssignmentCreateRequest{
		Title:    "Quiz",
		MaxScore: 50,
	}, nil)
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}

	submission, err := svc.CreateSubmission(context.Background(), assignment.ID, student.ID, SubmissionCreateRequest{Text: "answer"}, nil)
	if err != nil {
		t.Fatalf("CreateSubmission: %v", err)
	}

	if _, err := svc.GradeSubmission(owner.ID, owner.Role, submission.ID, 51); err == nil {
		t.Fatalf("grade above max score must fail")
	}
	if _, err := svc.GradeSubmission(owner.ID, owner.Role, submission.ID, -1); err == nil {
		t.Fatalf("negative grade must fail")
	}

	if _, err := svc.GradeSubmission(other.ID, other.Role, submission.ID, 40); !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("non-owner instructor must not grade, got %v", err)
	}

	graded, err := svc.GradeSubmission(owner.ID, owner.Role, submission.ID, 40)
	if err != nil {
		t.Fatalf("owner grade: %v", err)
	}
	if graded.Grade == nil || *graded.Grade != 40 {
		t.Fatalf("grade not stored: %v", graded.Grade)
	}

	if _, err := svc.GradeSubmission(admin.ID, admin.Role, submission.ID, 45); err != nil {
		t.Fatalf("admin grade: %v", err)
	}
}

func TestCreateSubmission_UnknownAssignment(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(t, db)
	student := createUser(t, db, "stud", model.Student)

	_, err := svc.CreateSubmission(context.Background(), 42, student.ID, SubmissionCreateRequest{Text: "x"}, nil)
	if !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestMySubmissions_ScopedToStudent(t *testing.T) {
	db := newTestDB(t)
	svc := newAssignmentService(t, db)
	inst := createUser(t, db, "inst", model.Instructor)
	s1 := createUser(t, db, "s1", model.Student)
	s2 := createUser(t, db, "s2", model.Student)
	course := createCourse(t, db, inst.ID, "C")
	module := createModule(t, db, course.ID, "M", 0)

	assignment, err := svc.CreateAssignment(context.Background(), course.ID, module.ID, AssignmentCreateRequest{Title: "A"}, nil)
	if err != nil {
		t.Fatalf("CreateAssignment: %v", err)
	}
	if _, err := svc.CreateSubmission(context.Background(), assignment.ID, s1.ID, SubmissionCreateRequest{Text: "one"}, nil); err != nil {
		t.Fatalf("s1 submit: %v", err)
	}
	if _, err := svc.CreateSubmission(context.Background(), assignment.ID, s2.ID, SubmissionCreateRequest{Text: "two"}, nil); err != nil {
		t.Fatalf("s2 submit: %v", err)
	}

	mine, err := svc.MySubmissions(s1.ID)
	if err != nil {
		t.Fatalf("MySubmissions: %v", err)
	}
	if len(mine) != 1 || mine[0].StudentID != s1.ID {
		t.Fatalf("expected only s1 submissions: %+v", mine)
	}
}
