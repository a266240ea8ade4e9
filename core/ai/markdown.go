package ai

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/unicrm/unicli/core"
)

// ExportMarkdown assembles a generated syllabus into a Markdown document.
// This happens entirely client-side; there is no server round-trip.
func ExportMarkdown(topic string, s Syllabus) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Course Syllabus: %s\n\n", topic)

	b.WriteString("## Learning Objectives\n")
	for _, obj := range s.LearningObjectives {
		fmt.Fprintf(&b, "- %s\n", obj)
	}

	b.WriteString("\n## Course Topics\n")
	for i, t := range s.Topics {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t)
	}

	b.WriteString("\n## Assessment Plan\n")
	for _, a := range s.AssessmentPlan {
		fmt.Fprintf(&b, "- %s\n", a)
	}

	b.WriteString("\n## Detailed Syllabus\n")
	b.WriteString(s.Syllabus)
	b.WriteString("\n")

	return b.String()
}

// MarkdownFilename derives the export filename from the topic, with every
// non-alphanumeric rune replaced by an underscore.
func MarkdownFilename(topic string) string {
	return core.SlugifyFilename(topic) + "_syllabus.md"
}

// SaveMarkdown writes the assembled document into dir and returns its path.
func SaveMarkdown(dir, topic string, s Syllabus) (string, error) {
	path := filepath.Join(dir, MarkdownFilename(topic))
	if err := os.WriteFile(path, []byte(ExportMarkdown(topic, s)), 0o644); err != nil {
		return "", errors.Wrap(err, "ai: save syllabus")
	}
	return path, nil
}
