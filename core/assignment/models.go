package assignment

import (
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/unicrm/unicli/core"
	"github.com/unicrm/unicli/core/course"
	"github.com/unicrm/unicli/core/user"
)

// Submission file limits, enforced locally before any request is sent.
const (
	MaxFileSize = 50 << 20 // 50MB

	GradeMin = 0
	GradeMax = 100
)

var allowedExtensions = []string{".pdf", ".doc", ".docx", ".txt", ".zip"}

// Assignment mirrors the backend's assignment record.
type Assignment struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CourseID    string         `json:"courseId"`
	StudentID   string         `json:"studentId"`
	Content     string         `json:"content,omitempty"`
	File        string         `json:"file,omitempty"`
	Grade       *float64       `json:"grade,omitempty"`
	Feedback    string         `json:"feedback,omitempty"`
	SubmittedAt *time.Time     `json:"submittedAt,omitempty"`
	GradedAt    *time.Time     `json:"gradedAt,omitempty"`
	Course      *course.Course `json:"course,omitempty"`
	Student     *user.User     `json:"student,omitempty"`
}

// Graded reports whether a grade has been recorded.
func (a Assignment) Graded() bool {
	return a.Grade != nil
}

// Submission is a student's assignment submission: text content or a file,
// never both.
type Submission struct {
	CourseID    string `json:"courseId" validate:"required"`
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	Content     string `json:"content,omitempty"`
	FilePath    string `json:"-"`
}

func (s *Submission) Validate(fileSize int64) error {
	s.Title = core.CleanString(s.Title)
	s.Description = core.CleanString(s.Description)
	s.Content = core.CleanString(s.Content)

	if err := core.CheckStruct(s); err != nil {
		return err
	}

	if s.FilePath != "" {
		if fileSize > MaxFileSize {
			return core.NewValidationError(errors.New("File size must be less than 50MB"),
				core.FieldError{Field: "file", Error: "File size must be less than 50MB"})
		}
		ext := strings.ToLower(filepath.Ext(s.FilePath))
		for _, allowed := range allowedExtensions {
			if ext == allowed {
				return nil
			}
		}
		return core.NewValidationError(errors.New("Please upload a supported file type (PDF, DOC, DOCX, TXT, ZIP)"),
			core.FieldError{Field: "file", Error: "Please upload a supported file type (PDF, DOC, DOCX, TXT, ZIP)"})
	}

	if len(s.Content) < 10 {
		return core.NewValidationError(errors.New("Content must be at least 10 characters"),
			core.FieldError{Field: "content", Error: "Content must be at least 10 characters"})
	}
	return nil
}

// GradeInput is a lecturer's grading decision for a submission.
type GradeInput struct {
	AssignmentID string  `json:"assignmentId" validate:"required"`
	Grade        float64 `json:"grade"`
	Feedback     string  `json:"feedback"`
}

func (g *GradeInput) Validate() error {
	g.Feedback = core.CleanString(g.Feedback)

	if err := core.CheckStruct(g); err != nil {
		return err
	}
	if g.Grade < GradeMin || g.Grade > GradeMax {
		return core.NewValidationError(errors.New("Grade must be between 0 and 100"),
			core.FieldError{Field: "grade", Error: "Grade must be between 0 and 100"})
	}
	return nil
}

// Letter maps a numeric grade to its letter band.
func Letter(grade float64) string {
	switch {
	case grade >= 90:
		return "A"
	case grade >= 80:
		return "B"
	case grade >= 70:
		return "C"
	case grade >= 60:
		return "D"
	default:
		return "F"
	}
}

// Average returns the mean of grades rounded to 2 decimal places;
// 0 when there are none.
func Average(grades []float64) float64 {
	if len(grades) == 0 {
		return 0
	}
	var sum float64
	for _, g := range grades {
		sum += g
	}
	return math.Round(sum/float64(len(grades))*100) / 100
}
