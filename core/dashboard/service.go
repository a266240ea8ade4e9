package dashboard

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/unicrm/unicli/core"
	"github.com/unicrm/unicli/core/assignment"
	"github.com/unicrm/unicli/core/course"
	"github.com/unicrm/unicli/core/user"
)

type (
	// AdminStats is the backend's aggregate view for administrators.
	AdminStats struct {
		TotalCourses       int     `json:"totalCourses"`
		TotalStudents      int     `json:"totalStudents"`
		PendingEnrollments int     `json:"pendingEnrollments"`
		AverageGrade       float64 `json:"averageGrade"`
	}

	// StudentDashboard is a student's landing view.
	StudentDashboard struct {
		Courses     []course.Course
		Assignments []assignment.Assignment
		Pending     int      // submissions not yet graded
		Average     *float64 // nil when there are no assignments
	}

	// LecturerDashboard is a lecturer's landing view.
	LecturerDashboard struct {
		Courses []course.Course
		ToGrade []assignment.Assignment
	}

	// AdminDashboard is an administrator's landing view.
	AdminDashboard struct {
		Courses []course.Course
		Stats   AdminStats
	}
)

// Service assembles role-specific dashboards. The independent fetches for
// a dashboard are issued together and joined before returning; either
// failing fails the load, and the caller re-issues it.
type Service struct {
	api         core.APIClient
	courses     *course.Service
	assignments *assignment.Service
	logger      core.Logger
}

func NewService(api core.APIClient, courses *course.Service, assignments *assignment.Service, logger core.Logger) *Service {
	return &Service{api: api, courses: courses, assignments: assignments, logger: logger}
}

func (svc *Service) Student(ctx context.Context) (StudentDashboard, error) {
	var dash StudentDashboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dash.Courses, err = svc.courses.Enrolled(ctx)
		return
	})
	g.Go(func() (err error) {
		dash.Assignments, err = svc.assignments.My(ctx)
		return
	})
	if err := g.Wait(); err != nil {
		return StudentDashboard{}, err
	}

	var sum float64
	for _, a := range dash.Assignments {
		if !a.Graded() {
			dash.Pending++
			continue
		}
		sum += *a.Grade
	}
	if n := len(dash.Assignments); n > 0 {
		avg := sum / float64(n)
		dash.Average = &avg
	}
	return dash, nil
}

func (svc *Service) Lecturer(ctx context.Context) (LecturerDashboard, error) {
	var dash LecturerDashboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		dash.Courses, err = svc.courses.Mine(ctx)
		return
	})
	g.Go(func() (err error) {
		dash.ToGrade, err = svc.assignments.ToGrade(ctx)
		return
	})
	if err := g.Wait(); err != nil {
		return LecturerDashboard{}, err
	}
	return dash, nil
}

func (svc *Service) Admin(ctx context.Context) (AdminDashboard, error) {
	var dash AdminDashboard

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := svc.courses.List(ctx, 0, 0, "")
		dash.Courses = page.Items
		return err
	})
	g.Go(func() error {
		return svc.api.Get(ctx, "/admin/stats", nil, &dash.Stats)
	})
	if err := g.Wait(); err != nil {
		return AdminDashboard{}, err
	}
	return dash, nil
}

// For returns the dashboard matching the user's role, as an interface the
// CLI switches on for rendering.
func (svc *Service) For(ctx context.Context, usr user.User) (interface{}, error) {
	switch {
	case usr.IsLecturer():
		return svc.Lecturer(ctx)
	case usr.IsAdmin():
		return svc.Admin(ctx)
	default:
		return svc.Student(ctx)
	}
}
