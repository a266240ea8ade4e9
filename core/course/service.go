package course

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/unicrm/unicli/core"
	"github.com/unicrm/unicli/core/user"
)

// Service issues catalog and enrollment requests. Role checks are local
// pre-flight gates only; the backend owns the actual authorization and all
// enrollment approval rules.
type Service struct {
	api    core.APIClient
	logger core.Logger
}

func NewService(api core.APIClient, logger core.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// List fetches a catalog page; page/limit of 0 use the backend defaults.
func (svc *Service) List(ctx context.Context, page, limit int, search string) (Page, error) {
	params := url.Values{}
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	if search != "" {
		params.Set("search", search)
	}

	var res Page
	if err := svc.api.Get(ctx, "/courses", params, &res); err != nil {
		return Page{}, err
	}
	return res, nil
}

// Enrolled lists the courses the current student is enrolled in.
func (svc *Service) Enrolled(ctx context.Context) ([]Course, error) {
	var res []Course
	if err := svc.api.Get(ctx, "/courses/enrolled", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Mine lists the courses the current lecturer owns.
func (svc *Service) Mine(ctx context.Context) ([]Course, error) {
	var res []Course
	if err := svc.api.Get(ctx, "/courses/my-courses", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Create creates a course; lecturers only.
func (svc *Service) Create(ctx context.Context, actor user.User, nc NewCourse) (Course, error) {
	if !actor.IsLecturer() {
		return Course{}, core.NewPermissionError("only lecturers can create courses")
	}
	if err := nc.Validate(); err != nil {
		return Course{}, err
	}

	var res Course
	if err := svc.api.Post(ctx, "/courses", nc, &res); err != nil {
		return Course{}, err
	}
	return res, nil
}

// Update edits a course; lecturers only.
func (svc *Service) Update(ctx context.Context, actor user.User, courseID string, uc UpdateCourse) (Course, error) {
	if !actor.IsLecturer() {
		return Course{}, core.NewPermissionError("only lecturers can edit courses")
	}
	if err := uc.Validate(); err != nil {
		return Course{}, err
	}

	var res Course
	if err := svc.api.Put(ctx, "/courses/"+courseID, uc, &res); err != nil {
		return Course{}, err
	}
	return res, nil
}

// Enroll requests enrollment into a course; students only. The resulting
// enrollment starts PENDING; approval is the backend's call.
func (svc *Service) Enroll(ctx context.Context, actor user.User, courseID string) (Enrollment, error) {
	if !actor.IsStudent() {
		return Enrollment{}, core.NewPermissionError("only students can enroll in courses")
	}
	if courseID == "" {
		return Enrollment{}, core.NewValidationError(errors.New("course id required"),
			core.FieldError{Field: "courseId", Error: "this field is required"})
	}

	body := map[string]string{"courseId": courseID}
	var res Enrollment
	if err := svc.api.Post(ctx, "/courses/enroll", body, &res); err != nil {
		return Enrollment{}, err
	}
	return res, nil
}

// Drop abandons an enrollment; students only.
func (svc *Service) Drop(ctx context.Context, actor user.User, enrollmentID string) error {
	if !actor.IsStudent() {
		return core.NewPermissionError("only students can drop courses")
	}
	return svc.api.Delete(ctx, "/enrollments/"+enrollmentID, nil)
}

// MyEnrollments lists the current student's enrollments with statuses.
func (svc *Service) MyEnrollments(ctx context.Context) ([]Enrollment, error) {
	var res []Enrollment
	if err := svc.api.Get(ctx, "/enrollments/my", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// syllabusResponse is the upload result: the stored file's URL.
type syllabusResponse struct {
	URL string `json:"url"`
}

// UploadSyllabus attaches a syllabus file to a course; lecturers only.
// Progress is reported as a fraction of the bytes sent.
func (svc *Service) UploadSyllabus(ctx context.Context, actor user.User, courseID, path string, onProgress core.ProgressFunc) (string, error) {
	if !actor.IsLecturer() {
		return "", core.NewPermissionError("only lecturers can upload a syllabus")
	}

	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "course: open syllabus")
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return "", errors.Wrap(err, "course: stat syllabus")
	}

	up := core.Upload{
		Filename: filepath.Base(path),
		Size:     fi.Size(),
		Body:     f,
	}
	var res syllabusResponse
	if err = svc.api.UploadFile(ctx, "/courses/"+courseID+"/syllabus", up, nil, &res, onProgress); err != nil {
		return "", err
	}
	return res.URL, nil
}
