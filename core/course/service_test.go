package course

import (
	"context"
	"net/url"
	"testing"

	"github.com/unicrm/unicli/core"
	"github.com/unicrm/unicli/core/user"
)

type fakeAPI struct {
	calls  []string
	params url.Values
	postFn func(path string, body, out interface{}) error
}

func (f *fakeAPI) Get(_ context.Context, path string, params url.Values, _ interface{}) error {
	f.calls = append(f.calls, path)
	f.params = params
	return nil
}

func (f *fakeAPI) Post(_ context.Context, path string, body, out interface{}) error {
	f.calls = append(f.calls, path)
	if f.postFn != nil {
		return f.postFn(path, body, out)
	}
	return nil
}

func (f *fakeAPI) Put(_ context.Context, path string, _, _ interface{}) error {
	f.calls = append(f.calls, path)
	return nil
}

func (f *fakeAPI) Patch(_ context.Context, path string, _, _ interface{}) error {
	f.calls = append(f.calls, path)
	return nil
}

func (f *fakeAPI) Delete(_ context.Context, path string, _ interface{}) error {
	f.calls = append(f.calls, path)
	return nil
}

func (f *fakeAPI) UploadFile(_ context.Context, path string, _ core.Upload, _ map[string]string, _ interface{}, _ core.ProgressFunc) error {
	f.calls = append(f.calls, path)
	return nil
}

func (f *fakeAPI) DownloadFile(context.Context, string, string) error { return nil }

type nopLogger struct{}

func (nopLogger) Enable(bool)                        {}
func (nopLogger) Debug(string, ...interface{})       {}
func (nopLogger) Info(string, ...interface{})        {}
func (nopLogger) Warn(string, ...interface{})        {}
func (nopLogger) Error(string, ...interface{})       {}
func (nopLogger) Fatal(msg string, _ ...interface{}) { panic(msg) }

var (
	student  = user.User{ID: "u1", Role: user.RoleStudent}
	lecturer = user.User{ID: "u2", Role: user.RoleLecturer}
)

func TestService_List(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, nopLogger{})

	if _, err := svc.List(context.Background(), 2, 10, "golang"); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if api.calls[0] != "/courses" {
		t.Errorf("path = %q", api.calls[0])
	}
	if got := api.params.Get("page"); got != "2" {
		t.Errorf("page = %q, want 2", got)
	}
	if got := api.params.Get("limit"); got != "10" {
		t.Errorf("limit = %q, want 10", got)
	}
	if got := api.params.Get("search"); got != "golang" {
		t.Errorf("search = %q, want golang", got)
	}

	// defaults are left to the backend
	if _, err := svc.List(context.Background(), 0, 0, ""); err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(api.params) != 0 {
		t.Errorf("params = %v, want empty", api.params)
	}
}

func TestService_Enroll(t *testing.T) {
	t.Run("student enrolls", func(t *testing.T) {
		api := &fakeAPI{}
		svc := NewService(api, nopLogger{})

		if _, err := svc.Enroll(context.Background(), student, "c1"); err != nil {
			t.Fatalf("Enroll() failed: %v", err)
		}
		if len(api.calls) != 1 || api.calls[0] != "/courses/enroll" {
			t.Errorf("api calls = %v", api.calls)
		}
	})

	t.Run("lecturers cannot enroll", func(t *testing.T) {
		api := &fakeAPI{}
		svc := NewService(api, nopLogger{})

		_, err := svc.Enroll(context.Background(), lecturer, "c1")
		if !core.IsPermissionError(err) {
			t.Fatalf("Enroll() error = %v, want permission error", err)
		}
		if len(api.calls) != 0 {
			t.Errorf("api calls = %v, want none", api.calls)
		}
	})

	t.Run("missing course id", func(t *testing.T) {
		api := &fakeAPI{}
		svc := NewService(api, nopLogger{})

		_, err := svc.Enroll(context.Background(), student, "")
		if !core.IsValidationError(err) {
			t.Fatalf("Enroll() error = %v, want validation error", err)
		}
	})
}

func TestService_Drop(t *testing.T) {
	api := &fakeAPI{}
	svc := NewService(api, nopLogger{})

	if err := svc.Drop(context.Background(), student, "e1"); err != nil {
		t.Fatalf("Drop() failed: %v", err)
	}
	if len(api.calls) != 1 || api.calls[0] != "/enrollments/e1" {
		t.Errorf("api calls = %v", api.calls)
	}

	if err := svc.Drop(context.Background(), lecturer, "e1"); !core.IsPermissionError(err) {
		t.Errorf("Drop() error = %v, want permission error", err)
	}
}

func TestService_Create(t *testing.T) {
	nc := NewCourse{Title: "Distributed Systems", Credits: 3, Semester: "Fall", Year: 2026}

	t.Run("lecturer creates", func(t *testing.T) {
		api := &fakeAPI{}
		svc := NewService(api, nopLogger{})

		if _, err := svc.Create(context.Background(), lecturer, nc); err != nil {
			t.Fatalf("Create() failed: %v", err)
		}
		if len(api.calls) != 1 || api.calls[0] != "/courses" {
			t.Errorf("api calls = %v", api.calls)
		}
	})

	t.Run("students cannot create", func(t *testing.T) {
		api := &fakeAPI{}
		svc := NewService(api, nopLogger{})

		if _, err := svc.Create(context.Background(), student, nc); !core.IsPermissionError(err) {
			t.Errorf("Create() error = %v, want permission error", err)
		}
	})

	t.Run("invalid course never reaches the network", func(t *testing.T) {
		api := &fakeAPI{}
		svc := NewService(api, nopLogger{})

		bad := nc
		bad.Credits = 9
		if _, err := svc.Create(context.Background(), lecturer, bad); !core.IsValidationError(err) {
			t.Fatalf("Create() error = %v, want validation error", err)
		}
		if len(api.calls) != 0 {
			t.Errorf("api calls = %v, want none", api.calls)
		}
	})
}
