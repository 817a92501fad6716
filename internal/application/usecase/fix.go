package usecase

import (
	"context"
	"fmt"
	"text/template"

	"fixbridge/internal/application/port/input"
	"fixbridge/internal/application/port/output"
	"fixbridge/internal/application/service"
	"fixbridge/internal/domain/entity"
	"fixbridge/internal/infrastructure/prompts"
)

const fixAcknowledgement = "Fix received!"

var _ input.FixExecutor = (*FixUseCase)(nil)

type FixUseCase struct {
	logger   output.LoggerPort
	template *template.Template
}

type FixConfig struct {
	// Template overrides the built-in prompt template.
	Template *template.Template
}

func DefaultFixConfig() FixConfig {
	return FixConfig{}
}

func NewFixUseCase(logger output.LoggerPort, cfg FixConfig) *FixUseCase {
	return &FixUseCase{
		logger:   logger.WithField("component", "fix"),
		template: cfg.Template,
	}
}

func (uc *FixUseCase) Execute(ctx context.Context, req entity.FixRequest) (*entity.FixResult, error) {
	if req.Element == nil {
		return nil, entity.NewInvalidRequest("fix", "element is required")
	}
	if !req.Element.HasTag() {
		return nil, entity.NewInvalidRequest("fix", "element.tagName is required")
	}

	el := req.Element.Clone()
	uc.logger.Info("Fix received", "tag", el.TagName, "classes", el.ClassList, "fix", req.Fix)

	description := service.Describe(el)

	prompt, err := uc.format(description, req.Fix)
	if err != nil {
		return nil, fmt.Errorf("format prompt: %w", err)
	}

	uc.logger.Info("Formatted prompt", "prompt", prompt)

	return &entity.FixResult{
		Message:         fixAcknowledgement,
		FormattedPrompt: prompt,
	}, nil
}

func (uc *FixUseCase) format(description, fix string) (string, error) {
	if uc.template == nil {
		return prompts.FormatFixPrompt(description, fix)
	}
	return prompts.GenerateFixPrompt(uc.template, prompts.FixPromptData{Element: description, Fix: fix})
}
