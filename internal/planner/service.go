package planner

import (
	"context"
	"errors"

	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/project"
	"github.com/sirupsen/logrus"
)

var (
	ErrNoProvider   = errors.New("suggestion provider not configured")
	ErrGoalNotFound = errors.New("goal not found")
)

type Service interface {
	Suggest(ctx context.Context, projectID string, req SuggestionRequest) (*SuggestionResponse, error)
}

type service struct {
	provider Provider
	projects project.ProjectService
}

func NewService(provider Provider, projects project.ProjectService) Service {
	return &service{provider: provider, projects: projects}
}

func (s *service) Suggest(ctx context.Context, projectID string, req SuggestionRequest) (*SuggestionResponse, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{
		"project_id": projectID,
		"goal_id":    req.GoalID,
	})
	if s.provider == nil {
		return nil, ErrNoProvider
	}

	p, err := s.projects.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	path := project.NodePath{ObjectiveID: req.ObjectiveID, GoalID: req.GoalID}
	goal, ok := project.FindGoal(*p, path)
	if !ok {
		log.Warn("Suggestions requested for an unknown goal")
		return nil, ErrGoalNotFound
	}
	objectiveTitle, _ := project.NodeTitle(*p, project.KindObjective, path)

	count := clampCount(req.Count)
	suggestions, err := s.provider.SendPrompt(ctx, systemPrompt, BuildUserPrompt(*p, objectiveTitle, goal, count))
	if err != nil {
		log.WithError(err).Error("Failed to generate checkpoint suggestions")
		return nil, err
	}
	if len(suggestions) > count {
		suggestions = suggestions[:count]
	}

	resp := &SuggestionResponse{Suggestions: suggestions}
	if !req.Apply {
		return resp, nil
	}

	added := 0
	for _, sg := range suggestions {
		updated, nodeID, err := s.projects.AddNode(ctx, projectID, project.AddNodeDTO{
			Kind:  project.KindCheckpoint,
			Path:  path,
			Title: sg.Title,
		})
		if err != nil {
			log.WithError(err).Error("Failed to apply checkpoint suggestion")
			return nil, err
		}
		p = updated
		if nodeID != "" {
			added++
		}
	}

	resp.Applied = added > 0
	resp.Project = project.ToResponse(*p)
	if !resp.Applied {
		log.Warn("Goal disappeared before suggestions could be applied")
		return resp, nil
	}
	log.WithField("count", added).Info("Checkpoint suggestions applied")
	return resp, nil
}
