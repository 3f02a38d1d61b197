package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/area"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/feed"
	util "github.com/saulo-duarte/organon/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var (
	ErrTaskNotFound   = errors.New("task not found")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrAreaNotFound   = area.ErrAreaNotFound
	ErrInvalidID      = errors.New("invalid id format")
	ErrInvalidName    = errors.New("task name is required")
	ErrInvalidView    = errors.New("invalid board view")
	ErrTimeWithoutDay = errors.New("time requires a date")
)

type TaskService interface {
	CreateTask(ctx context.Context, dto CreateTaskDTO) (*Task, error)
	FindAllByUser(ctx context.Context) ([]*Task, error)
	FindByID(ctx context.Context, id string) (*Task, error)
	UpdateTask(ctx context.Context, id string, dto UpdateTaskDTO) (*Task, error)
	DeleteByID(ctx context.Context, id string) error
	MoveToArea(ctx context.Context, id string, areaID *uuid.UUID) (*Task, error)
	SetPriority(ctx context.Context, id string, priority string) (*Task, error)
	Board(ctx context.Context, view BoardView) (*Board, error)
	CompletedOn(ctx context.Context, day util.Date) ([]*Task, error)
}

type taskService struct {
	repo     TaskRepository
	areaRepo area.Repository
	notifier feed.Notifier
}

func NewService(repo TaskRepository, areaRepo area.Repository, notifier feed.Notifier) TaskService {
	return &taskService{
		repo:     repo,
		areaRepo: areaRepo,
		notifier: notifier,
	}
}

func getUserIDFromContext(ctx context.Context, log logrus.FieldLogger, action string) (uuid.UUID, error) {
	claims, err := auth.GetUserClaimsFromContext(ctx)
	if err != nil {
		log.WithError(err).Warnf("Attempt to %s without authentication", action)
		return uuid.Nil, ErrUnauthorized
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return uuid.Nil, ErrUnauthorized
	}
	return userID, nil
}

func parseUUID(log logrus.FieldLogger, id string, entityName string) (uuid.UUID, error) {
	parsedID, err := uuid.Parse(id)
	if err != nil {
		log.WithError(err).Warnf("Invalid %s ID", entityName)
		return uuid.Nil, ErrInvalidID
	}
	return parsedID, nil
}

func (s *taskService) notify(ctx context.Context, log logrus.FieldLogger, userID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, feed.Tasks); err != nil {
		log.WithError(err).Warn("Failed to publish tasks change")
	}
}

// areaColor resolves the color a task filed under areaID must carry.
func (s *taskService) areaColor(log logrus.FieldLogger, areaID *uuid.UUID, userID uuid.UUID) (string, error) {
	if areaID == nil {
		return area.DefaultColor, nil
	}
	a, err := s.areaRepo.FindByID(*areaID, userID)
	if err != nil {
		if errors.Is(err, area.ErrNotFound) {
			log.WithFields(logrus.Fields{
				"area_id": *areaID,
				"user_id": userID,
			}).Warn("Area not found or does not belong to the user")
			return "", ErrAreaNotFound
		}
		return "", err
	}
	return a.Color, nil
}

func (s *taskService) CreateTask(ctx context.Context, dto CreateTaskDTO) (*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "create task")
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, ErrInvalidName
	}
	priority, err := ParsePriority(dto.Priority)
	if err != nil {
		return nil, err
	}
	if err := util.ValidateClock(dto.Time); err != nil {
		return nil, err
	}
	if dto.Time != "" && (dto.Date == nil || dto.Date.IsZero()) {
		return nil, ErrTimeWithoutDay
	}
	color, err := s.areaColor(log, dto.AreaID, userID)
	if err != nil {
		return nil, err
	}

	date := dto.Date
	if date != nil && date.IsZero() {
		date = nil
	}

	t := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: dto.Description,
		Date:        date,
		Time:        dto.Time,
		Priority:    priority,
		Completed:   false,
		Subtasks:    datatypes.NewJSONType(normalizeSubtasks(dto.Subtasks)),
		AreaID:      dto.AreaID,
		Color:       color,
		Attachments: datatypes.NewJSONType(util.NormalizeAttachments(dto.Attachments)),
	}

	if err := s.repo.Create(t); err != nil {
		log.WithError(err).Error("Failed to create task")
		return nil, err
	}

	s.notify(ctx, log, userID)
	log.WithField("task_id", t.ID).Info("Task created successfully")
	return t, nil
}

func (s *taskService) FindAllByUser(ctx context.Context) ([]*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list tasks")
	if err != nil {
		return nil, err
	}

	tasks, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list tasks by user")
		return nil, err
	}
	return tasks, nil
}

func (s *taskService) find(log logrus.FieldLogger, id string, userID uuid.UUID) (*Task, error) {
	taskID, err := parseUUID(log, id, "task")
	if err != nil {
		return nil, err
	}

	t, err := s.repo.FindByIdAndUserId(taskID, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.WithFields(logrus.Fields{
				"task_id": id,
				"user_id": userID,
			}).Warn("Task not found or does not belong to user")
			return nil, ErrTaskNotFound
		}
		log.WithError(err).Error("Error finding task by ID")
		return nil, err
	}
	return t, nil
}

func (s *taskService) FindByID(ctx context.Context, id string) (*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "find task")
	if err != nil {
		return nil, err
	}
	return s.find(log, id, userID)
}

func (s *taskService) UpdateTask(ctx context.Context, id string, dto UpdateTaskDTO) (*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "update task")
	if err != nil {
		return nil, err
	}

	existing, err := s.find(log, id, userID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		existing.Name = name
	}
	if dto.Description != nil {
		existing.Description = *dto.Description
	}
	if dto.ClearDate {
		existing.Date = nil
		existing.Time = ""
	} else if dto.Date != nil && !dto.Date.IsZero() {
		existing.Date = dto.Date
	}
	if dto.Time != nil {
		if err := util.ValidateClock(*dto.Time); err != nil {
			return nil, err
		}
		if *dto.Time != "" && existing.Date == nil {
			return nil, ErrTimeWithoutDay
		}
		existing.Time = *dto.Time
	}
	if dto.Priority != nil {
		p, err := ParsePriority(*dto.Priority)
		if err != nil {
			return nil, err
		}
		existing.Priority = p
	}
	if dto.Completed != nil && *dto.Completed != existing.Completed {
		existing.setCompleted(*dto.Completed, time.Now())
	}
	if dto.Subtasks != nil {
		existing.Subtasks = datatypes.NewJSONType(normalizeSubtasks(*dto.Subtasks))
	}
	if dto.Attachments != nil {
		existing.Attachments = datatypes.NewJSONType(util.NormalizeAttachments(*dto.Attachments))
	}

	if err := s.repo.Update(existing); err != nil {
		log.WithError(err).Error("Failed to update task")
		return nil, err
	}

	s.notify(ctx, log, userID)
	log.WithField("task_id", existing.ID).Info("Task updated successfully")
	return existing, nil
}

func (s *taskService) DeleteByID(ctx context.Context, id string) error {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "delete task")
	if err != nil {
		return err
	}

	taskID, err := parseUUID(log, id, "task")
	if err != nil {
		return err
	}

	if err := s.repo.Delete(taskID, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrTaskNotFound
		}
		log.WithError(err).Error("Failed to delete task")
		return err
	}

	s.notify(ctx, log, userID)
	log.WithField("task_id", id).Info("Task deleted successfully")
	return nil
}

// MoveToArea files the task under areaID, or under no area when nil, and
// repaints it with the area color.
func (s *taskService) MoveToArea(ctx context.Context, id string, areaID *uuid.UUID) (*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "move task")
	if err != nil {
		return nil, err
	}

	t, err := s.find(log, id, userID)
	if err != nil {
		return nil, err
	}
	color, err := s.areaColor(log, areaID, userID)
	if err != nil {
		return nil, err
	}

	t.AreaID = areaID
	t.Color = color
	if err := s.repo.Update(t); err != nil {
		log.WithError(err).Error("Failed to move task")
		return nil, err
	}

	s.notify(ctx, log, userID)
	return t, nil
}

func (s *taskService) SetPriority(ctx context.Context, id string, priority string) (*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "set task priority")
	if err != nil {
		return nil, err
	}

	p := Priority(strings.ToUpper(strings.TrimSpace(priority)))
	if !p.IsValid() {
		return nil, ErrInvalidPriority
	}

	t, err := s.find(log, id, userID)
	if err != nil {
		return nil, err
	}

	t.Priority = p
	if err := s.repo.Update(t); err != nil {
		log.WithError(err).Error("Failed to set task priority")
		return nil, err
	}

	s.notify(ctx, log, userID)
	return t, nil
}

func (s *taskService) Board(ctx context.Context, view BoardView) (*Board, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "build task board")
	if err != nil {
		return nil, err
	}
	if !view.IsValid() {
		return nil, ErrInvalidView
	}

	tasks, err := s.repo.ListByUser(userID)
	if err != nil {
		log.WithError(err).Error("Failed to list tasks for board")
		return nil, err
	}

	var board Board
	switch view {
	case ViewKanban:
		areas, err := s.areaRepo.FindAllByUserID(userID)
		if err != nil {
			log.WithError(err).Error("Failed to list areas for board")
			return nil, err
		}
		board = BuildKanban(areas, tasks)
	case ViewMatrix:
		board = BuildMatrix(tasks)
	case ViewList:
		board = BuildList(tasks)
	}
	return &board, nil
}

func (s *taskService) CompletedOn(ctx context.Context, day util.Date) ([]*Task, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list completed tasks")
	if err != nil {
		return nil, err
	}
	return s.repo.ListCompletedOn(userID, day)
}
