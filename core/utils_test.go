package core

import "testing"

func TestCleanString(t *testing.T) {
	tests := []struct {
		name  string
		s     string
		lower bool
		want  string
	}{
		{name: "empty", s: "", want: ""},
		{name: "trims", s: "  Hey There \n", want: "Hey There"},
		{name: "lowers", s: " AweSome@Test.CD ", lower: true, want: "awesome@test.cd"},
		{name: "no lower by default", s: "MiXeD", want: "MiXeD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanString(tt.s, tt.lower); got != tt.want {
				t.Errorf("CleanString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name  string
		bytes int64
		want  string
	}{
		{name: "zero", bytes: 0, want: "0 Bytes"},
		{name: "bytes", bytes: 512, want: "512 Bytes"},
		{name: "exact KB", bytes: 1024, want: "1 KB"},
		{name: "fractional KB", bytes: 1536, want: "1.5 KB"},
		{name: "MB", bytes: 5 << 20, want: "5 MB"},
		{name: "fractional MB", bytes: 52428800, want: "50 MB"},
		{name: "GB", bytes: 3 << 30, want: "3 GB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatFileSize(tt.bytes); got != tt.want {
				t.Errorf("FormatFileSize() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlugifyFilename(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want string
	}{
		{name: "plain", s: "golang", want: "golang"},
		{name: "spaces and case", s: "Machine Learning 101", want: "Machine_Learning_101"},
		{name: "punctuation", s: "C++ & Go!", want: "C_____Go_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SlugifyFilename(tt.s); got != tt.want {
				t.Errorf("SlugifyFilename() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want string
	}{
		{name: "short enough", text: "hey", max: 5, want: "hey"},
		{name: "exact", text: "hello", max: 5, want: "hello"},
		{name: "truncated", text: "hello there", max: 5, want: "hello..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateText(tt.text, tt.max); got != tt.want {
				t.Errorf("TruncateText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		full string
		want string
	}{
		{name: "empty", full: "", want: ""},
		{name: "single", full: "awe", want: "A"},
		{name: "two", full: "Hakim Ziyech", want: "HZ"},
		{name: "more than two", full: "a b c d", want: "AB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Initials(tt.full); got != tt.want {
				t.Errorf("Initials() = %q, want %q", got, tt.want)
			}
		})
	}
}
