package assignment

import (
	"testing"

	"github.com/unicrm/unicli/core"
)

func fieldError(t *testing.T, err error, field string) string {
	t.Helper()
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *core.ValidationError", err)
	}
	for _, fld := range vErr.Fields {
		if fld.Field == field {
			return fld.Error
		}
	}
	t.Fatalf("no error for field %q in %+v", field, vErr.Fields)
	return ""
}

func TestSubmission_Validate(t *testing.T) {
	base := Submission{
		CourseID: "c1",
		Title:    "Final Essay",
		Content:  "a long enough submission body",
	}

	tests := []struct {
		name      string
		mutate    func(*Submission)
		fileSize  int64
		wantField string
		wantMsg   string
	}{
		{name: "valid text submission"},
		{
			name:      "missing course",
			mutate:    func(s *Submission) { s.CourseID = "" },
			wantField: "courseId",
		},
		{
			name:      "short title",
			mutate:    func(s *Submission) { s.Title = "ab" },
			wantField: "title",
		},
		{
			name:      "short content",
			mutate:    func(s *Submission) { s.Content = "too short" },
			wantField: "content",
			wantMsg:   "Content must be at least 10 characters",
		},
		{
			name:     "valid file submission",
			mutate:   func(s *Submission) { s.Content = ""; s.FilePath = "/tmp/essay.pdf" },
			fileSize: 1 << 20,
		},
		{
			name:      "file too large",
			mutate:    func(s *Submission) { s.Content = ""; s.FilePath = "/tmp/essay.pdf" },
			fileSize:  MaxFileSize + 1,
			wantField: "file",
			wantMsg:   "File size must be less than 50MB",
		},
		{
			name:     "file at the limit",
			mutate:   func(s *Submission) { s.Content = ""; s.FilePath = "/tmp/essay.zip" },
			fileSize: MaxFileSize,
		},
		{
			name:      "unsupported extension",
			mutate:    func(s *Submission) { s.Content = ""; s.FilePath = "/tmp/virus.exe" },
			fileSize:  1024,
			wantField: "file",
			wantMsg:   "Please upload a supported file type (PDF, DOC, DOCX, TXT, ZIP)",
		},
		{
			name:     "extension check is case-insensitive",
			mutate:   func(s *Submission) { s.Content = ""; s.FilePath = "/tmp/ESSAY.PDF" },
			fileSize: 1024,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := base
			if tt.mutate != nil {
				tt.mutate(&sub)
			}
			err := sub.Validate(tt.fileSize)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() failed: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() error = nil")
			}
			msg := fieldError(t, err, tt.wantField)
			if tt.wantMsg != "" && msg != tt.wantMsg {
				t.Errorf("field error = %q, want %q", msg, tt.wantMsg)
			}
		})
	}
}

func TestGradeInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      GradeInput
		wantErr bool
		wantMsg string
	}{
		{name: "valid", in: GradeInput{AssignmentID: "a1", Grade: 85}},
		{name: "zero grade is valid", in: GradeInput{AssignmentID: "a1", Grade: 0}},
		{name: "full marks", in: GradeInput{AssignmentID: "a1", Grade: 100}},
		{name: "missing assignment", in: GradeInput{Grade: 50}, wantErr: true},
		{
			name:    "negative",
			in:      GradeInput{AssignmentID: "a1", Grade: -1},
			wantErr: true,
			wantMsg: "Grade must be between 0 and 100",
		},
		{
			name:    "over 100",
			in:      GradeInput{AssignmentID: "a1", Grade: 100.5},
			wantErr: true,
			wantMsg: "Grade must be between 0 and 100",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantMsg != "" && err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLetter(t *testing.T) {
	tests := []struct {
		grade float64
		want  string
	}{
		{grade: 100, want: "A"},
		{grade: 90, want: "A"},
		{grade: 89.9, want: "B"},
		{grade: 80, want: "B"},
		{grade: 75, want: "C"},
		{grade: 65, want: "D"},
		{grade: 59.9, want: "F"},
		{grade: 0, want: "F"},
	}
	for _, tt := range tests {
		if got := Letter(tt.grade); got != tt.want {
			t.Errorf("Letter(%v) = %q, want %q", tt.grade, got, tt.want)
		}
	}
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name   string
		grades []float64
		want   float64
	}{
		{name: "empty", grades: nil, want: 0},
		{name: "single", grades: []float64{80}, want: 80},
		{name: "rounded", grades: []float64{70, 80, 95}, want: 81.67},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Average(tt.grades); got != tt.want {
				t.Errorf("Average() = %v, want %v", got, tt.want)
			}
		})
	}
}
