package dashboard

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/pkg/errors"

	"github.com/unicrm/unicli/core"
	"github.com/unicrm/unicli/core/assignment"
	"github.com/unicrm/unicli/core/course"
	"github.com/unicrm/unicli/core/user"
)

type fakeAPI struct {
	mu    sync.Mutex
	calls []string
	getFn func(path string, out interface{}) error
}

func (f *fakeAPI) Get(_ context.Context, path string, _ url.Values, out interface{}) error {
	f.mu.Lock()
	f.calls = append(f.calls, path)
	f.mu.Unlock()
	if f.getFn != nil {
		return f.getFn(path, out)
	}
	return nil
}

func (f *fakeAPI) Post(context.Context, string, interface{}, interface{}) error  { return nil }
func (f *fakeAPI) Put(context.Context, string, interface{}, interface{}) error   { return nil }
func (f *fakeAPI) Patch(context.Context, string, interface{}, interface{}) error { return nil }
func (f *fakeAPI) Delete(context.Context, string, interface{}) error             { return nil }
func (f *fakeAPI) UploadFile(context.Context, string, core.Upload, map[string]string, interface{}, core.ProgressFunc) error {
	return nil
}
func (f *fakeAPI) DownloadFile(context.Context, string, string) error { return nil }

func (f *fakeAPI) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

func newService(api *fakeAPI) *Service {
	courses := course.NewService(api, nopLogger{})
	assignments := assignment.NewService(api, nopLogger{})
	return NewService(api, courses, assignments, nopLogger{})
}

func gradePtr(g float64) *float64 { return &g }

func TestService_Student(t *testing.T) {
	api := &fakeAPI{getFn: func(path string, out interface{}) error {
		switch path {
		case "/courses/enrolled":
			*out.(*[]course.Course) = []course.Course{{ID: "c1"}, {ID: "c2"}}
		case "/assignments/my-assignments":
			*out.(*[]assignment.Assignment) = []assignment.Assignment{
				{ID: "a1", Grade: gradePtr(90)},
				{ID: "a2", Grade: gradePtr(70)},
				{ID: "a3"}, // not graded yet
			}
		}
		return nil
	}}
	svc := newService(api)

	dash, err := svc.Student(context.Background())
	if err != nil {
		t.Fatalf("Student() failed: %v", err)
	}
	if len(dash.Courses) != 2 {
		t.Errorf("courses = %d, want 2", len(dash.Courses))
	}
	if dash.Pending != 1 {
		t.Errorf("pending = %d, want 1", dash.Pending)
	}
	if dash.Average == nil {
		t.Fatal("average = nil")
	}
	// average runs over all assignments, ungraded counting as zero
	if want := (90.0 + 70.0) / 3; *dash.Average != want {
		t.Errorf("average = %v, want %v", *dash.Average, want)
	}

	calls := api.called()
	if len(calls) != 2 {
		t.Errorf("calls = %v, want both fetches", calls)
	}
}

func TestService_Student_noAssignments(t *testing.T) {
	api := &fakeAPI{}
	svc := newService(api)

	dash, err := svc.Student(context.Background())
	if err != nil {
		t.Fatalf("Student() failed: %v", err)
	}
	if dash.Average != nil {
		t.Errorf("average = %v, want nil", *dash.Average)
	}
	if dash.Pending != 0 {
		t.Errorf("pending = %d, want 0", dash.Pending)
	}
}

func TestService_Student_fetchFailureFailsTheLoad(t *testing.T) {
	boom := errors.New("boom")
	api := &fakeAPI{getFn: func(path string, out interface{}) error {
		if path == "/assignments/my-assignments" {
			return boom
		}
		return nil
	}}
	svc := newService(api)

	if _, err := svc.Student(context.Background()); errors.Cause(err) != boom {
		t.Errorf("Student() error = %v, want %v", err, boom)
	}
}

func TestService_Lecturer(t *testing.T) {
	api := &fakeAPI{getFn: func(path string, out interface{}) error {
		switch path {
		case "/courses/my-courses":
			*out.(*[]course.Course) = []course.Course{{ID: "c1"}}
		case "/assignments/to-grade":
			*out.(*[]assignment.Assignment) = []assignment.Assignment{{ID: "a1"}, {ID: "a2"}}
		}
		return nil
	}}
	svc := newService(api)

	dash, err := svc.Lecturer(context.Background())
	if err != nil {
		t.Fatalf("Lecturer() failed: %v", err)
	}
	if len(dash.Courses) != 1 || len(dash.ToGrade) != 2 {
		t.Errorf("dash = %+v", dash)
	}
}

func TestService_Admin(t *testing.T) {
	api := &fakeAPI{getFn: func(path string, out interface{}) error {
		switch path {
		case "/courses":
			*out.(*course.Page) = course.Page{Items: []course.Course{{ID: "c1"}}, Total: 1}
		case "/admin/stats":
			*out.(*AdminStats) = AdminStats{
				TotalCourses:       12,
				TotalStudents:      340,
				PendingEnrollments: 5,
				AverageGrade:       81.4,
			}
		}
		return nil
	}}
	svc := newService(api)

	dash, err := svc.Admin(context.Background())
	if err != nil {
		t.Fatalf("Admin() failed: %v", err)
	}
	if len(dash.Courses) != 1 {
		t.Errorf("courses = %d, want 1", len(dash.Courses))
	}
	if dash.Stats.TotalStudents != 340 || dash.Stats.PendingEnrollments != 5 {
		t.Errorf("stats = %+v", dash.Stats)
	}
}

func TestService_For(t *testing.T) {
	api := &fakeAPI{}
	svc := newService(api)

	tests := []struct {
		role string
		want interface{}
	}{
		{role: user.RoleStudent, want: StudentDashboard{}},
		{role: user.RoleLecturer, want: LecturerDashboard{}},
		{role: user.RoleAdmin, want: AdminDashboard{}},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			got, err := svc.For(context.Background(), user.User{ID: "u1", Role: tt.role})
			if err != nil {
				t.Fatalf("For() failed: %v", err)
			}
			switch tt.role {
			case user.RoleLecturer:
				if _, ok := got.(LecturerDashboard); !ok {
					t.Errorf("For() type = %T", got)
				}
			case user.RoleAdmin:
				if _, ok := got.(AdminDashboard); !ok {
					t.Errorf("For() type = %T", got)
				}
			default:
				if _, ok := got.(StudentDashboard); !ok {
					t.Errorf("For() type = %T", got)
				}
			}
		})
	}
}
