package prompts

import (
	"bytes"
	"fmt"
	"text/template"
)

type FixPromptData struct {
	Element string
	Fix     string
}

var fixTemplate = template.Must(template.New("fix").Parse(FixPrompt))

// FormatFixPrompt embeds an element description and a fix request into the
// assistant prompt. The description is inserted as-is: a "```" sequence
// inside it ends the fence early.
func FormatFixPrompt(description, fix string) (string, error) {
	return GenerateFixPrompt(fixTemplate, FixPromptData{Element: description, Fix: fix})
}

func GenerateFixPrompt(tmpl *template.Template, data FixPromptData) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s prompt: %w", tmpl.Name(), err)
	}
	return buf.String(), nil
}

// ParseFixTemplate allows replacing the built-in template.
func ParseFixTemplate(text string) (*template.Template, error) {
	return template.New("custom").Option("missingkey=error").Parse(text)
}
