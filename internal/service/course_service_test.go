package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

func newCourseService(t *testing.T, db *gorm.DB) *CourseService {
	t.Helper()
	return NewCourseService(
		repository.NewCourseRepository(db),
		repository.NewEnrollmentRepository(db),
		newTestStorage(t),
		db,
		nil,
	)
}

func TestCreateCourse_OrderComesFromPayloadPosition(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	instructor := createUser(t, db, "inst", model.Instructor)

	payload := `[
		{"title": "Basics", "chapters": [
			{"title": "Intro", "contents": [{"content_type": "text", "content_title": "Welcome", "text": "hello"}]},
			{"title": "Setup", "contents": []}
		]},
		{"title": "Advanced", "chapters": []}
	]`

	course, err := svc.CreateCourse(context.Background(), instructor.ID, CourseCreateRequest{
		Title:   "Go 101",
		Modules: payload,
	}, nil)
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	if len(course.Modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(course.Modules))
	}
	if course.Modules[0].Title != "Basics" || course.Modules[0].Order != 0 {
		t.Fatalf("module 0 misordered: %+v", course.Modules[0])
	}
	if course.Modules[1].Title != "Advanced" || course.Modules[1].Order != 1 {
		t.Fatalf("module 1 misordered: %+v", course.Modules[1])
	}

	chapters := course.Modules[0].Chapters
	if len(chapters) != 2 {
		t.Fatalf("expected 2 chapters, got %d", len(chapters))
	}
	if chapters[0].Title != "Intro" || chapters[0].Order != 0 {
		t.Fatalf("chapter 0 misordered: %+v", chapters[0])
	}
	if chapters[1].Title != "Setup" || chapters[1].Order != 1 {
		t.Fatalf("chapter 1 misordered: %+v", chapters[1])
	}
	if len(chapters[0].Contents) != 1 || chapters[0].Contents[0].Text != "hello" {
		t.Fatalf("contents not persisted: %+v", chapters[0].Contents)
	}
}

func TestCreateCourse_TextWithoutTextLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	instructor := createUser(t, db, "inst", model.Instructor)

	payload := `[
		{"title": "M1", "chapters": [
			{"title": "C1", "contents": [
				{"content_type": "text", "content_title": "ok", "text": "fine"},
				{"content_type": "text", "content_title": "broken", "text": "  "}
			]}
		]}
	]`

	_, err := svc.CreateCourse(context.Background(), instructor.ID, CourseCreateRequest{
		Title:   "Doomed",
		Modules: payload,
	}, nil)

	ve, ok := util.AsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(ve.Field, "contents[1]") {
		t.Fatalf("error should name the offending item, got %q", ve.Field)
	}

	var count int64
	db.Model(&model.Course{}).Count(&count)
	if count != 0 {
		t.Fatalf("no course should exist after rejection, found %d", count)
	}
	db.Model(&model.ChapterContent{}).Count(&count)
	if count != 0 {
		t.Fatalf("no contents should exist after rejection, found %d", count)
	}
}

func TestCreateCourse_LinkAliasStoredAsVideoURL(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	instructor := createUser(t, db, "inst", model.Instructor)

	payload := `[
		{"title": "M1", "chapters": [
			{"title": "C1", "contents": [
				{"content_type": "video", "content_title": "lecture", "link": "https://videos.example.com/1"}
			]}
		]}
	]`

	course, err := svc.CreateCourse(context.Background(), instructor.ID, CourseCreateRequest{
		Title:   "Video course",
		Modules: payload,
	}, nil)
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	content := course.Modules[0].Chapters[0].Contents[0]
	if content.VideoURL != "https://videos.example.com/1" {
		t.Fatalf("link alias not canonicalized, got %q", content.VideoURL)
	}
}

func TestCreateCourse_FileAttachedByFieldKey(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	instructor := createUser(t, db, "inst", model.Instructor)

	files := multipartForm(t, map[string][2]string{
		"doc_1": {"notes.pdf", "%PDF-1.4 fake"},
	})

	payload := `[
		{"title": "M1", "chapters": [
			{"title": "C1", "contents": [
				{"content_type": "document", "content_title": "notes", "fileFieldKey": "doc_1"}
			]}
		]}
	]`

	course, err := svc.CreateCourse(context.Background(), instructor.ID, CourseCreateRequest{
		Title:   "Docs",
		Modules: payload,
	}, files)
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	content := course.Modules[0].Chapters[0].Contents[0]
	if content.File == "" {
		t.Fatalf("document content should carry a stored file URL")
	}
	if !strings.HasSuffix(content.File, ".pdf") {
		t.Fatalf("stored file should keep the extension, got %q", content.File)
	}
}

func TestCreateCourse_MissingFileKeyMeansNoFile(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	instructor := createUser(t, db, "inst", model.Instructor)

	// The referenced part is absent, so the document item has no file and
	// fails type validation.
	payload := `[
		{"title": "M1", "chapters": [
			{"title": "C1", "contents": [
				{"content_type": "document", "content_title": "notes", "fileFieldKey": "missing"}
			]}
		]}
	]`

	_, err := svc.CreateCourse(context.Background(), instructor.ID, CourseCreateRequest{
		Title:   "Docs",
		Modules: payload,
	}, nil)
	if _, ok := util.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateCourse_MalformedModulesJSON(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	instructor := createUser(t, db, "inst", model.Instructor)

	_, err := svc.CreateCourse(context.Background(), instructor.ID, CourseCreateRequest{
		Title:   "Broken",
		Modules: `{"not": "a list"`,
	}, nil)
	if _, ok := util.AsValidation(err); !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateCourse_OwnershipEnforced(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	owner := createUser(t, db, "owner", model.Instructor)
	other := createUser(t, db, "other", model.Instructor)
	admin := createUser(t, db, "admin", model.Admin)
	course := createCourse(t, db, owner.ID, "Mine")

	_, err := svc.UpdateCourse(context.Background(), other.ID, other.Role, course.ID, CourseUpdateRequest{Title: "Stolen"}, nil)
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}

	updated, err := svc.UpdateCourse(context.Background(), admin.ID, admin.Role, course.ID, CourseUpdateRequest{Title: "Renamed"}, nil)
	if err != nil {
		t.Fatalf("admin update: %v", err)
	}
	if updated.Title != "Renamed" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
}

func TestDeleteCourse_RemovesWholeTree(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	instructor := createUser(t, db, "inst", model.Instructor)
	student := createUser(t, db, "stud", model.Student)

	payload := `[
		{"title": "M1", "chapters": [
			{"title": "C1", "contents": [{"content_type": "text", "content_title": "t", "text": "body"}]}
		]}
	]`
	course, err := svc.CreateCourse(context.Background(), instructor.ID, CourseCreateRequest{
		Title:   "Short lived",
		Modules: payload,
	}, nil)
	if err != nil {
		t.Fatalf("CreateCourse: %v", err)
	}

	enrRepo := repository.NewEnrollmentRepository(db)
	if _, err := enrRepo.GetOrCreate(student.ID, course.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	if err := svc.DeleteCourse(context.Background(), instructor.ID, instructor.Role, course.ID); err != nil {
		t.Fatalf("DeleteCourse: %v", err)
	}

	for name, m := range map[string]interface{}{
		"courses":     &model.Course{},
		"modules":     &model.Module{},
		"chapters":    &model.Chapter{},
		"contents":    &model.ChapterContent{},
		"enrollments": &model.Enrollment{},
	} {
		var count int64
		db.Model(m).Count(&count)
		if count != 0 {
			t.Fatalf("%s left behind: %d rows", name, count)
		}
	}
}

func TestListCourses_AnnotatesEnrollment(t *testing.T) {
	db := newTestDB(t)
	svc := newCourseService(t, db)
	instructor := createUser(t, db, "inst", model.Instructor)
	student := createUser(t, db, "stud", model.Student)
	enrolled := createCourse(t, db, instructor.ID, "Enrolled")
	createCourse(t, db, instructor.ID, "Other")

	enrRepo := repository.NewEnrollmentRepository(db)
	if _, err := enrRepo.GetOrCreate(student.ID, enrolled.ID); err != nil {
		t.Fatalf("enroll: %v", err)
	}

	courses, err := svc.ListCourses(context.Background(), student.ID)
	if err != nil {
		t.Fatalf("ListCourses: %v", err)
	}
	flags := map[string]bool{}
	for _, c := range courses {
		flags[c.Title] = c.IsEnrolled
	}
	if !flags["Enrolled"] || flags["Other"] {
		t.Fatalf("enrollment flags wrong: %v", flags)
	}
}
