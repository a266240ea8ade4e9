package course

import (
	"time"

	"github.com/unicrm/unicli/core"
	"github.com/unicrm/unicli/core/user"
)

// Course statuses.
const (
	StatusDraft    = "DRAFT"
	StatusActive   = "ACTIVE"
	StatusArchived = "ARCHIVED"
)

// Enrollment statuses; transitions are decided server-side, the client
// only requests create/drop.
const (
	EnrollmentPending  = "PENDING"
	EnrollmentApproved = "APPROVED"
	EnrollmentRejected = "REJECTED"
	EnrollmentDropped  = "DROPPED"
)

type (
	// Course mirrors the backend's course record.
	Course struct {
		ID              string     `json:"id"`
		Title           string     `json:"title"`
		Description     string     `json:"description"`
		Credits         int        `json:"credits"`
		LecturerID      string     `json:"lecturerId"`
		Lecturer        *user.User `json:"lecturer,omitempty"`
		Syllabus        string     `json:"syllabus,omitempty"`
		Status          string     `json:"status"`
		EnrollmentCount int        `json:"enrollmentCount"`
		CreatedAt       time.Time  `json:"createdAt"`
		UpdatedAt       time.Time  `json:"updatedAt"`
	}

	// Enrollment mirrors the backend's enrollment record.
	Enrollment struct {
		ID         string     `json:"id"`
		CourseID   string     `json:"courseId"`
		StudentID  string     `json:"studentId"`
		Status     string     `json:"status"`
		EnrolledAt time.Time  `json:"enrolledAt"`
		Course     *Course    `json:"course,omitempty"`
		Student    *user.User `json:"student,omitempty"`
	}

	// Page is one page of the course catalog.
	Page struct {
		Items      []Course `json:"items"`
		Total      int      `json:"total"`
		Page       int      `json:"page"`
		Limit      int      `json:"limit"`
		TotalPages int      `json:"totalPages"`
	}
)

// NewCourse contains information needed to create a course.
type NewCourse struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description"`
	Credits     int    `json:"credits" validate:"required,min=1,max=6"`
	Semester    string `json:"semester" validate:"required"`
	Year        int    `json:"year" validate:"required,min=2020"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.Semester = core.CleanString(nc.Semester)
	return core.CheckStruct(nc)
}

// UpdateCourse defines what may be modified on an existing course.
type UpdateCourse struct {
	Title       string `json:"title" validate:"omitempty,min=3"`
	Description string `json:"description"`
	Credits     int    `json:"credits" validate:"omitempty,min=1,max=6"`
	Status      string `json:"status" validate:"omitempty,oneof=DRAFT ACTIVE ARCHIVED"`
}

func (uc *UpdateCourse) Validate() error {
	uc.Title = core.CleanString(uc.Title)
	uc.Description = core.CleanString(uc.Description)
	return core.CheckStruct(uc)
}

// Badge is the fixed label/icon/color rendering for an enrollment status.
type Badge struct {
	Label string
	Icon  string
	Color string
}

// StatusBadge maps an enrollment status to its display badge; a pure
// function of the status string.
func StatusBadge(status string) Badge {
	switch status {
	case EnrollmentApproved:
		return Badge{Label: "Enrolled", Icon: "check", Color: "green"}
	case EnrollmentPending:
		return Badge{Label: "Pending", Icon: "clock", Color: "yellow"}
	case EnrollmentRejected:
		return Badge{Label: "Rejected", Icon: "cross", Color: "red"}
	case EnrollmentDropped:
		return Badge{Label: "Dropped", Icon: "alert", Color: "gray"}
	default:
		return Badge{Label: "Unknown", Icon: "alert", Color: "gray"}
	}
}
