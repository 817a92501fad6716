package service

import (
	"strings"

	"fixbridge/internal/domain/entity"
)

const (
	maxDescribedText = 100
	maxPreviewText   = 50
)

// Describe renders an element as a compact HTML-like tag. The output format is
// consumed verbatim by prompt templates and must stay stable.
func Describe(el entity.ElementDescriptor) string {
	tag := strings.ToLower(el.TagName)

	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(tag)

	if len(el.ClassList) > 0 {
		sb.WriteString(` class="`)
		sb.WriteString(strings.Join(el.ClassList, " "))
		sb.WriteString(`"`)
	}

	if el.ID != "" {
		sb.WriteString(` id="`)
		sb.WriteString(el.ID)
		sb.WriteString(`"`)
	}

	sb.WriteString(">")

	if el.TextContent != "" {
		sb.WriteString("\n  ")
		sb.WriteString(truncate(el.TextContent, maxDescribedText))
		sb.WriteString("\n")
	}

	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteString(">")

	return sb.String()
}

// Preview renders the multi-line summary shown before a fix is sent.
func Preview(el entity.ElementDescriptor) string {
	tag := strings.ToLower(el.TagName)
	if tag == "" {
		tag = "unknown"
	}

	var sb strings.Builder
	sb.WriteString("<" + tag)
	if len(el.ClassList) > 0 {
		sb.WriteString("\n  class=\"" + strings.Join(el.ClassList, " ") + "\"")
	}
	if el.ID != "" {
		sb.WriteString("\n  id=\"" + el.ID + "\"")
	}
	sb.WriteString(">")

	if el.TextContent != "" {
		sb.WriteString("\n\nContent: \"" + truncate(el.TextContent, maxPreviewText) + "\"")
	}

	return sb.String()
}

// truncate cuts s to limit characters and marks the cut with "...".
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
