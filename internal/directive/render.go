// Package directive builds the structured instruction sent to the
// completion oracle. Domain logic works on the typed Spec; text rendering
// happens only here, at the oracle-adapter boundary.
package directive

import (
	"bytes"
	"fmt"
	"strings"
)

// Field describes one required or optional output field in the response
// contract.
type Field struct {
	Name        string
	Type        string
	Required    bool
	Description string
}

// Section is one titled block of the rendered instruction.
type Section struct {
	Title string
	Body  string
}

// Spec is a fully assembled instruction: purpose, ordered sections, the
// output contract, and closing constraints.
type Spec struct {
	Purpose      string
	Sections     []Section
	OutputFields []Field
	Constraints  []string
	OutputFormat string
}

// Render turns a spec into the prompt text. Empty sections are skipped.
func Render(spec Spec) (string, error) {
	if strings.TrimSpace(spec.Purpose) == "" {
		return "", fmt.Errorf("directive: purpose is empty")
	}
	if len(spec.OutputFields) == 0 {
		return "", fmt.Errorf("directive: output fields are empty")
	}
	var buf bytes.Buffer
	writeSection(&buf, "PURPOSE", spec.Purpose)
	for _, s := range spec.Sections {
		writeSection(&buf, s.Title, s.Body)
	}
	writeSection(&buf, "OUTPUT", formatFields(spec.OutputFields))
	writeSection(&buf, "CONSTRAINTS", formatList(spec.Constraints))
	writeSection(&buf, "OUTPUT_FORMAT", spec.OutputFormat)
	return strings.TrimSpace(buf.String()) + "\n", nil
}

// StrictJSONConstraints is prepended to every oracle instruction.
func StrictJSONConstraints() []string {
	return []string{
		"Return strict JSON only.",
		"Match the schema exactly; no extra fields.",
		"No markdown, code fences, comments, or trailing commas.",
	}
}

func formatFields(fields []Field) string {
	var buf strings.Builder
	for _, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			continue
		}
		req := "optional"
		if f.Required {
			req = "required"
		}
		if f.Description != "" {
			fmt.Fprintf(&buf, "- %s (%s, %s): %s\n", name, f.Type, req, f.Description)
		} else {
			fmt.Fprintf(&buf, "- %s (%s, %s)\n", name, f.Type, req)
		}
	}
	return strings.TrimRight(buf.String(), "\n")
}

func formatList(items []string) string {
	var buf strings.Builder
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		fmt.Fprintf(&buf, "- %s\n", item)
	}
	return strings.TrimRight(buf.String(), "\n")
}

func writeSection(buf *bytes.Buffer, title, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	buf.WriteString("[")
	buf.WriteString(title)
	buf.WriteString("]\n")
	buf.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		buf.WriteString("\n")
	}
	buf.WriteString("\n")
}
