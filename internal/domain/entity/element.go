package entity

import (
	"strings"
	"time"
)

// ElementDescriptor is a detached snapshot of an element's identifying attributes.
type ElementDescriptor struct {
	TagName     string   `json:"tagName"`
	ID          string   `json:"id,omitempty"`
	ClassList   []string `json:"classList"`
	TextContent string   `json:"textContent,omitempty"`
}

// Clone returns a copy that shares no backing storage with d.
func (d ElementDescriptor) Clone() ElementDescriptor {
	out := d
	if d.ClassList != nil {
		out.ClassList = append([]string(nil), d.ClassList...)
	}
	return out
}

func (d ElementDescriptor) HasTag() bool {
	return strings.TrimSpace(d.TagName) != ""
}

type FixRequest struct {
	Element *ElementDescriptor `json:"element"`
	Fix     string             `json:"fix"`
}

type FixResult struct {
	Message         string `json:"message"`
	FormattedPrompt string `json:"formattedPrompt"`
}

// CapturedElement is the last element resolved under a recorded right-click.
type CapturedElement struct {
	Element    ElementDescriptor `json:"element"`
	Position   Position          `json:"position"`
	CapturedAt time.Time         `json:"capturedAt"`
}
