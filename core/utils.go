package core

import (
	"fmt"
	"regexp"
	"strings"
)

var nonAlnumRegex = regexp.MustCompile(`[^a-zA-Z0-9]`)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// FormatFileSize renders a byte count in human units (1024 base, 2 decimals).
func FormatFileSize(bytes int64) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	sizes := []string{"Bytes", "KB", "MB", "GB"}
	size := float64(bytes)
	var i int
	for size >= 1024 && i < len(sizes)-1 {
		size /= 1024
		i++
	}
	s := fmt.Sprintf("%.2f", size)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	return s + " " + sizes[i]
}

// SlugifyFilename replaces every non-alphanumeric rune with an underscore.
func SlugifyFilename(s string) string {
	return nonAlnumRegex.ReplaceAllString(s, "_")
}

// TruncateText shortens text to maxLength runes, appending "..." when cut.
func TruncateText(text string, maxLength int) string {
	runes := []rune(text)
	if len(runes) <= maxLength {
		return text
	}
	return string(runes[:maxLength]) + "..."
}

// CapitalizeFirst upper-cases the first rune and lower-cases the rest.
func CapitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// Initials returns up to two upper-cased initials from a full name.
func Initials(name string) string {
	var b strings.Builder
	for _, part := range strings.Fields(name) {
		b.WriteString(strings.ToUpper(part[:1]))
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}
