package planner

import (
	"context"

	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/project"
)

type PlannerContainer struct {
	Handler *Handler
}

// NewPlannerContainer wires the Gemini provider when an API key is configured.
// Without one the endpoint answers 503.
func NewPlannerContainer(ctx context.Context, cfg config.GeminiConfig, projects project.ProjectService) *PlannerContainer {
	var provider Provider
	if cfg.APIKey != "" {
		p, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			config.WithContext(ctx).WithError(err).Warn("Gemini provider unavailable, suggestions disabled")
		} else {
			provider = p
		}
	}

	service := NewService(provider, projects)
	return &PlannerContainer{Handler: NewHandler(service)}
}
