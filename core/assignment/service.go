package assignment

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/unicrm/unicli/core"
	"github.com/unicrm/unicli/core/user"
)

// Service issues submission and grading requests. Validation failures are
// rejected locally and never reach the network; the backend remains the
// authority on what is actually accepted.
type Service struct {
	api    core.APIClient
	logger core.Logger
}

func NewService(api core.APIClient, logger core.Logger) *Service {
	return &Service{api: api, logger: logger}
}

// My lists the current student's assignments.
func (svc *Service) My(ctx context.Context) ([]Assignment, error) {
	var res []Assignment
	if err := svc.api.Get(ctx, "/assignments/my-assignments", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// ToGrade lists ungraded submissions across the current lecturer's courses.
func (svc *Service) ToGrade(ctx context.Context) ([]Assignment, error) {
	var res []Assignment
	if err := svc.api.Get(ctx, "/assignments/to-grade", nil, &res); err != nil {
		return nil, err
	}
	return res, nil
}

// Submit sends a submission; students only. Text submissions post JSON,
// file submissions go up as multipart with the metadata as form fields.
func (svc *Service) Submit(ctx context.Context, actor user.User, sub Submission, onProgress core.ProgressFunc) (Assignment, error) {
	if !actor.IsStudent() {
		return Assignment{}, core.NewPermissionError("only students can submit assignments")
	}

	var fileSize int64
	if sub.FilePath != "" {
		fi, err := os.Stat(sub.FilePath)
		if err != nil {
			return Assignment{}, errors.Wrap(err, "assignment: stat file")
		}
		fileSize = fi.Size()
	}
	if err := sub.Validate(fileSize); err != nil {
		return Assignment{}, err
	}

	if sub.FilePath == "" {
		var res Assignment
		if err := svc.api.Post(ctx, "/assignments/submit", sub, &res); err != nil {
			return Assignment{}, err
		}
		return res, nil
	}
	return svc.submitFile(ctx, sub, onProgress)
}

func (svc *Service) submitFile(ctx context.Context, sub Submission, onProgress core.ProgressFunc) (Assignment, error) {
	f, err := os.Open(sub.FilePath)
	if err != nil {
		return Assignment{}, errors.Wrap(err, "assignment: open file")
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return Assignment{}, errors.Wrap(err, "assignment: stat file")
	}

	up := core.Upload{
		Filename: filepath.Base(sub.FilePath),
		Size:     fi.Size(),
		Body:     f,
	}
	extra := map[string]string{
		"courseId":    sub.CourseID,
		"title":       sub.Title,
		"description": sub.Description,
	}
	var res Assignment
	if err = svc.api.UploadFile(ctx, "/assignments/submit", up, extra, &res, onProgress); err != nil {
		return Assignment{}, err
	}
	return res, nil
}

// Grade records a grade and feedback for a submission; lecturers only.
// An out-of-range grade is rejected before any network call is made.
func (svc *Service) Grade(ctx context.Context, actor user.User, in GradeInput) (Assignment, error) {
	if !actor.IsLecturer() {
		return Assignment{}, core.NewPermissionError("only lecturers can grade assignments")
	}
	if err := in.Validate(); err != nil {
		return Assignment{}, err
	}

	var res Assignment
	if err := svc.api.Post(ctx, "/assignments/grade", in, &res); err != nil {
		return Assignment{}, err
	}
	return res, nil
}
