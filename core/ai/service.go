package ai

import (
	"context"

	"github.com/pkg/errors"

	"github.com/unicrm/unicli/core"
	"github.com/unicrm/unicli/core/course"
)

// Syllabus levels and durations accepted by the AI service.
const (
	LevelUndergraduate = "undergraduate"
	LevelGraduate      = "graduate"
	LevelPhD           = "phd"

	DurationSemester = "semester"
	DurationQuarter  = "quarter"
	DurationSummer   = "summer"
)

type (
	// Recommendation is one AI-suggested course with its rationale.
	Recommendation struct {
		CourseID string        `json:"courseId"`
		Course   course.Course `json:"course"`
		Score    float64       `json:"score"`
		Reason   string        `json:"reason"`
	}

	// Syllabus is the structured payload the AI service returns; the
	// client renders it verbatim, with no local inference or caching.
	Syllabus struct {
		Syllabus           string   `json:"syllabus"`
		Topics             []string `json:"topics"`
		LearningObjectives []string `json:"learningObjectives"`
		AssessmentPlan     []string `json:"assessmentPlan"`
	}

	// SyllabusRequest describes the course to generate a syllabus for.
	SyllabusRequest struct {
		Topic    string `json:"topic" validate:"required"`
		Level    string `json:"level" validate:"required,oneof=undergraduate graduate phd"`
		Duration string `json:"duration" validate:"required,oneof=semester quarter summer"`
		CourseID string `json:"courseId,omitempty"`
	}
)

func (r *SyllabusRequest) Validate() error {
	r.Topic = core.CleanString(r.Topic)
	return core.CheckStruct(r)
}

// Service calls the AI endpoints. Failures here are feature-level business
// errors surfaced inline by the caller, not global notices.
type Service struct {
	api    core.APIClient
	logger core.Logger
}

func NewService(api core.APIClient, logger core.Logger) *Service {
	return &Service{api: api, logger: logger}
}

type recommendResponse struct {
	Recommendations []Recommendation `json:"recommendations"`
}

// Recommend asks for courses matching free-text interests or career goals.
func (svc *Service) Recommend(ctx context.Context, interests string) ([]Recommendation, error) {
	interests = core.CleanString(interests)
	if interests == "" {
		return nil, core.NewValidationError(errors.New("Please enter your interests"),
			core.FieldError{Field: "interests", Error: "this field is required"})
	}

	body := map[string]string{"interests": interests}
	var res recommendResponse
	if err := svc.api.Post(ctx, "/ai/recommend", body, &res); err != nil {
		return nil, err
	}
	return res.Recommendations, nil
}

// GenerateSyllabus asks the AI service to draft a syllabus.
func (svc *Service) GenerateSyllabus(ctx context.Context, req SyllabusRequest) (Syllabus, error) {
	if err := req.Validate(); err != nil {
		return Syllabus{}, err
	}

	var res Syllabus
	if err := svc.api.Post(ctx, "/ai/syllabus", req, &res); err != nil {
		return Syllabus{}, err
	}
	return res, nil
}
