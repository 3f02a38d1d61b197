package project

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/feed"
	"github.com/saulo-duarte/organon/internal/metrics"
	util "github.com/saulo-duarte/organon/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDescription     = "Add a short description."
	DefaultFullDescription = "Add a full description."
)

var (
	ErrProjectNotFound = errors.New("project not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidID       = errors.New("invalid id format")
	ErrInvalidNodeKind = errors.New("invalid node kind")
	ErrEmptyTitle      = errors.New("title is required")
)

type ProjectService interface {
	CreateProject(ctx context.Context, dto CreateProjectDTO) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)
	GetProjectByID(ctx context.Context, id string) (*Project, error)
	UpdateProject(ctx context.Context, id string, dto UpdateProjectDTO) (*Project, error)
	SaveProject(ctx context.Context, p Project) (*Project, error)
	AddNode(ctx context.Context, id string, dto AddNodeDTO) (*Project, string, error)
	RenameNode(ctx context.Context, id string, dto RenameNodeDTO) (*Project, error)
	ToggleNode(ctx context.Context, id string, dto ToggleNodeDTO) (*Project, error)
	RequestDeletion(ctx context.Context, id string, dto DeleteNodeDTO) (*PendingDeletion, error)
	ConfirmDeletion(ctx context.Context, token string) (*DeletionResult, error)
	CancelDeletion(ctx context.Context, token string) error
	History(ctx context.Context) ([]HistoryEntry, error)
	EndSession(sessionID string)
}

type projectService struct {
	repo      ProjectRepository
	notifier  feed.Notifier
	history   *History
	deletions *deletionQueue
	locks     util.KeyLock
}

func NewService(repo ProjectRepository, notifier feed.Notifier, history *History, confirmTTL time.Duration) ProjectService {
	return &projectService{
		repo:      repo,
		notifier:  notifier,
		history:   history,
		deletions: newDeletionQueue(confirmTTL),
	}
}

func getClaims(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, *auth.Claims, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s with a malformed user id", action)
		return uuid.Nil, nil, ErrUnauthorized
	}
	return userID, claims, nil
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	userID, _, err := getClaims(ctx, log, action)
	return userID, err
}

func parseUUID(log logrus.FieldLogger, id string, entityName string) (uuid.UUID, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warnf("Invalid %s ID", entityName)
		return uuid.Nil, ErrInvalidID
	}
	return parsedID, nil
}

// lock serialises read-modify-write cycles on one project inside this process.
func (s *projectService) lock(id uuid.UUID) func() {
	return s.locks.Lock(id)
}

func (s *projectService) notify(ctx context.Context, log logrus.FieldLogger, userID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, feed.Projects); err != nil {
		log.WithError(err).Warn("Failed to publish projects change")
	}
}

func (s *projectService) load(log logrus.FieldLogger, id string, userID uuid.UUID) (*Project, error) {
	projectID, err := parseUUID(log, id, "project")
	if err != nil {
		return nil, err
	}

	p, err := s.repo.FindByIDAndUser(projectID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithFields(logrus.Fields{
				"project_id": id,
				"user_id":    userID,
			}).Warn("Project not found or does not belong to user")
			return nil, ErrProjectNotFound
		}
		log.WithError(err).Error("Error finding project by ID")
		return nil, err
	}
	return p, nil
}

func (s *projectService) CreateProject(ctx context.Context, dto CreateProjectDTO) (*Project, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create project")
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, ErrEmptyTitle
	}

	p := Project{
		ID:              uuid.New(),
		Name:            name,
		Description:     DefaultDescription,
		FullDescription: DefaultFullDescription,
		CreatedAt:       time.Now().UTC().Truncate(time.Millisecond),
		Objectives:      []Objective{},
	}
	if dto.Description != "" {
		p.Description = dto.Description
	}
	if dto.FullDescription != "" {
		p.FullDescription = dto.FullDescription
	}

	if err := s.repo.Create(&p, userID); err != nil {
		log.WithError(err).Error("Failed to create project")
		return nil, fmt.Errorf("create project: %w", err)
	}

	s.notify(ctx, log, userID)
	log.WithField("project_id", p.ID).Info("Project created successfully")
	return &p, nil
}

func (s *projectService) ListProjects(ctx context.Context) ([]Project, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list projects")
	if err != nil {
		return nil, err
	}

	projects, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list projects by user")
		return nil, err
	}
	return projects, nil
}

func (s *projectService) GetProjectByID(ctx context.Context, id string) (*Project, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "find project")
	if err != nil {
		return nil, err
	}
	return s.load(log, id, userID)
}

func (s *projectService) UpdateProject(ctx context.Context, id string, dto UpdateProjectDTO) (*Project, error) {
	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		return nil, ErrEmptyTitle
	}
	p, _, err := s.mutate(ctx, id, "update", KindProject, func(p Project) (Project, bool) {
		if dto.Name != nil {
			p.Name = strings.TrimSpace(*dto.Name)
		}
		if dto.Description != nil {
			p.Description = *dto.Description
		}
		if dto.FullDescription != nil {
			p.FullDescription = *dto.FullDescription
		}
		return p, true
	})
	return p, err
}

// SaveProject rewrites the stored document of an existing project with p.
// The creation timestamp is kept from the stored copy.
func (s *projectService) SaveProject(ctx context.Context, p Project) (*Project, error) {
	out, _, err := s.mutate(ctx, p.ID.String(), "save", KindProject, func(stored Project) (Project, bool) {
		p.CreatedAt = stored.CreatedAt
		return p.Normalize(), true
	})
	return out, err
}

func (s *projectService) AddNode(ctx context.Context, id string, dto AddNodeDTO) (*Project, string, error) {
	if dto.Kind == KindProject || !dto.Kind.IsValid() {
		return nil, "", ErrInvalidNodeKind
	}
	if !dto.Path.ParentOf(dto.Kind) {
		return nil, "", ErrInvalidPath
	}
	title := strings.TrimSpace(dto.Title)
	if title == "" {
		return nil, "", ErrEmptyTitle
	}

	var nodeID string
	p, _, err := s.mutate(ctx, id, "add", dto.Kind, func(p Project) (Project, bool) {
		out, newID, ok := AddNode(p, dto.Kind, dto.Path, title)
		nodeID = newID
		return out, ok
	})
	if err != nil {
		return nil, "", err
	}
	return p, nodeID, nil
}

func (s *projectService) RenameNode(ctx context.Context, id string, dto RenameNodeDTO) (*Project, error) {
	if !dto.Kind.IsValid() {
		return nil, ErrInvalidNodeKind
	}
	if !dto.Path.Addresses(dto.Kind) {
		return nil, ErrInvalidPath
	}
	title := strings.TrimSpace(dto.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	p, _, err := s.mutate(ctx, id, "rename", dto.Kind, func(p Project) (Project, bool) {
		return RenameNode(p, dto.Kind, dto.Path, title)
	})
	return p, err
}

func (s *projectService) ToggleNode(ctx context.Context, id string, dto ToggleNodeDTO) (*Project, error) {
	if !dto.Kind.Toggleable() {
		return nil, ErrInvalidNodeKind
	}
	if !dto.Path.Addresses(dto.Kind) {
		return nil, ErrInvalidPath
	}

	p, _, err := s.mutate(ctx, id, "toggle", dto.Kind, func(p Project) (Project, bool) {
		return ToggleNode(p, dto.Kind, dto.Path, dto.Done)
	})
	return p, err
}

// mutate loads the project, applies fn and rewrites the document when fn
// reports a change. A path that no longer resolves leaves the stored project
// untouched and is not an error.
func (s *projectService) mutate(ctx context.Context, id, op string, kind NodeKind, fn func(Project) (Project, bool)) (*Project, bool, error) {
	log := config.WithContext(ctx).WithFields(logrus.Fields{"operation": op, "kind": kind})
	userID, err := getUserIDFromContext(ctx, log, op+" project")
	if err != nil {
		return nil, false, err
	}

	projectID, err := parseUUID(log, id, "project")
	if err != nil {
		return nil, false, err
	}
	unlock := s.lock(projectID)
	defer unlock()

	current, err := s.load(log, id, userID)
	if err != nil {
		return nil, false, err
	}

	updated, applied := fn(*current)
	metrics.TreeMutations.WithLabelValues(op, string(kind), strconv.FormatBool(applied)).Inc()
	if !applied {
		log.WithField("project_id", id).Warn("Node path did not resolve, nothing changed")
		return current, false, nil
	}

	updated.ID = current.ID
	if err := s.repo.Save(&updated, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, false, ErrProjectNotFound
		}
		log.WithError(err).Error("Failed to save project")
		return nil, false, fmt.Errorf("save project: %w", err)
	}

	s.notify(ctx, log, userID)
	log.WithField("project_id", id).Info("Project updated successfully")
	updated = updated.Normalize()
	return &updated, true, nil
}

func (s *projectService) RequestDeletion(ctx context.Context, id string, dto DeleteNodeDTO) (*PendingDeletion, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "request deletion")
	if err != nil {
		return nil, err
	}
	if !dto.Kind.IsValid() {
		return nil, ErrInvalidNodeKind
	}
	if !dto.Path.Addresses(dto.Kind) {
		return nil, ErrInvalidPath
	}

	p, err := s.load(log, id, userID)
	if err != nil {
		return nil, err
	}

	pending := s.deletions.add(PendingDeletion{
		ProjectID:   p.ID,
		Kind:        dto.Kind,
		Path:        dto.Path,
		Description: describeDeletion(*p, dto.Kind, dto.Path),
		userID:      userID,
	})

	log.WithFields(logrus.Fields{
		"project_id": p.ID,
		"kind":       dto.Kind,
		"expires_at": pending.ExpiresAt,
	}).Info("Deletion requested, awaiting confirmation")
	return &pending, nil
}

func (s *projectService) ConfirmDeletion(ctx context.Context, token string) (*DeletionResult, error) {
	log := config.WithContext(ctx)
	userID, claims, err := getClaims(ctx, log, "confirm deletion")
	if err != nil {
		return nil, err
	}

	pending, err := s.deletions.take(token, userID)
	if err != nil {
		log.WithError(err).Warn("Deletion confirmation rejected")
		return nil, err
	}

	if pending.Kind == KindProject {
		unlock := s.lock(pending.ProjectID)
		defer unlock()

		if err := s.repo.Delete(pending.ProjectID, userID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrProjectNotFound
			}
			log.WithError(err).Error("Failed to delete project")
			return nil, fmt.Errorf("delete project: %w", err)
		}
		entry := s.history.Record(claims.SessionID(), DeletionMessage(KindProject))
		metrics.TreeMutations.WithLabelValues("delete", string(KindProject), "true").Inc()
		s.notify(ctx, log, userID)
		log.WithField("project_id", pending.ProjectID).Info("Project deleted successfully")
		return &DeletionResult{Kind: KindProject, Entry: &entry}, nil
	}

	p, applied, err := s.mutate(ctx, pending.ProjectID.String(), "delete", pending.Kind, func(p Project) (Project, bool) {
		return DeleteNode(p, pending.Kind, pending.Path)
	})
	if err != nil {
		return nil, err
	}

	result := &DeletionResult{Kind: pending.Kind, Project: ToResponse(*p)}
	if applied {
		entry := s.history.Record(claims.SessionID(), DeletionMessage(pending.Kind))
		result.Entry = &entry
	}
	return result, nil
}

func (s *projectService) CancelDeletion(ctx context.Context, token string) error {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "cancel deletion")
	if err != nil {
		return err
	}

	if _, err := s.deletions.take(token, userID); err != nil {
		return err
	}
	log.Info("Deletion cancelled")
	return nil
}

func (s *projectService) History(ctx context.Context) ([]HistoryEntry, error) {
	log := config.WithContext(ctx)
	_, claims, err := getClaims(ctx, log, "read history")
	if err != nil {
		return nil, err
	}
	return s.history.Entries(claims.SessionID()), nil
}

func (s *projectService) EndSession(sessionID string) {
	s.history.Forget(sessionID)
}
