package service

import (
	"lms_backend/internal/repository"
)

type DashboardService struct {
	UserRepo       *repository.UserRepository
	CourseRepo     *repository.CourseRepository
	EnrollmentRepo *repository.EnrollmentRepository
}

func NewDashboardService(userRepo *repository.UserRepository, courseRepo *repository.CourseRepository, enrollmentRepo *repository.EnrollmentRepository) *DashboardService {
	return &DashboardService{
		UserRepo:       userRepo,
		CourseRepo:     courseRepo,
		EnrollmentRepo: enrollmentRepo,
	}
}

type AdminDashboard struct {
	TotalUsers  int64 `json:"total_users"`
	ActiveUsers int64 `json:"active_users"`
}

func (s *DashboardService) AdminDashboard() (*AdminDashboard, error) {
	total, err := s.UserRepo.CountAll()
	if err != nil {
		return nil, err
	}
	active, err := s.UserRepo.CountActive()
	if err != nil {
		return nil, err
	}
	return &AdminDashboard{TotalUsers: total, ActiveUsers: active}, nil
}

type InstructorAnalytics struct {
	CourseCount  int64 `json:"course_count"`
	StudentCount int64 `json:"student_count"`
}

// InstructorAnalytics counts the instructor's courses and the distinct
// students enrolled across them.
func (s *DashboardService) InstructorAnalytics(instructorID uint) (*InstructorAnalytics, error) {
	courseCount, err := s.CourseRepo.CountByInstructor(instructorID)
	if err != nil {
		return nil, err
	}

	courses, err := s.CourseRepo.ListByInstructor(instructorID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	var studentCount int64
	if len(ids) > 0 {
		studentCount, err = s.EnrollmentRepo.CountDistinctStudents(ids)
		if err != nil {
			return nil, err
		}
	}

	return &InstructorAnalytics{CourseCount: courseCount, StudentCount: studentCount}, nil
}
