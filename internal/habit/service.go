package habit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/feed"
	util "github.com/saulo-duarte/organon/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

var (
	ErrHabitNotFound   = errors.New("habit not found")
	ErrInvalidName     = errors.New("habit name is required")
	ErrInvalidGoal     = errors.New("goal must be at least 1")
	ErrInvalidDuration = errors.New("duration must be at least 1 day")
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateHabitDTO) (*HabitResponse, error)
	List(ctx context.Context, userID uuid.UUID) ([]HabitResponse, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*HabitResponse, error)
	Update(ctx context.Context, id, userID uuid.UUID, dto UpdateHabitDTO) (*HabitResponse, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	SetProgress(ctx context.Context, id, userID uuid.UUID, day util.Date, value int) (*HabitResponse, error)
	AdjustProgress(ctx context.Context, id, userID uuid.UUID, delta int) (*HabitResponse, error)
	MetOn(ctx context.Context, userID uuid.UUID, day util.Date) ([]HabitResponse, error)
}

type service struct {
	repo     Repository
	notifier feed.Notifier
	loc      *time.Location
	locks    util.KeyLock
}

func NewService(repo Repository, notifier feed.Notifier, loc *time.Location) Service {
	if loc == nil {
		loc = time.UTC
	}
	return &service{repo: repo, notifier: notifier, loc: loc}
}

func (s *service) today() util.Date {
	return util.Today(s.loc)
}

func (s *service) lock(id uuid.UUID) func() {
	return s.locks.Lock(id)
}

func (s *service) notify(ctx context.Context, userID uuid.UUID) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, userID, feed.Habits); err != nil {
		config.WithContext(ctx).WithError(err).Warn("Failed to publish habits change")
	}
}

// normalizeGoal forces binary habits to a goal of 1.
func normalizeGoal(t HabitType, goal int) (int, error) {
	if t == HabitTypeBinary {
		return 1, nil
	}
	if goal < 1 {
		return 0, ErrInvalidGoal
	}
	return goal, nil
}

func validateDuration(d *int) error {
	if d != nil && *d < 1 {
		return ErrInvalidDuration
	}
	return nil
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateHabitDTO) (*HabitResponse, error) {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, ErrInvalidName
	}
	habitType, err := ParseHabitType(dto.Type)
	if err != nil {
		return nil, err
	}
	goal, err := normalizeGoal(habitType, dto.Goal)
	if err != nil {
		return nil, err
	}
	if err := validateDuration(dto.Duration); err != nil {
		return nil, err
	}
	color := strings.TrimSpace(dto.Color)
	if color == "" {
		color = DefaultColor
	}

	h := Habit{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          name,
		Type:          habitType,
		Goal:          goal,
		Color:         color,
		DailyProgress: datatypes.NewJSONType(Progress{}),
		Duration:      dto.Duration,
	}
	if err := s.repo.Create(&h); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to create habit")
		return nil, err
	}

	s.notify(ctx, userID)
	return ToResponse(&h, s.today()), nil
}

func (s *service) List(_ context.Context, userID uuid.UUID) ([]HabitResponse, error) {
	habits, err := s.repo.FindAllByUserID(userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	responses := make([]HabitResponse, 0, len(habits))
	for i := range habits {
		responses = append(responses, *ToResponse(&habits[i], today))
	}
	return responses, nil
}

func (s *service) find(id, userID uuid.UUID) (*Habit, error) {
	h, err := s.repo.FindByID(id, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrHabitNotFound
	}
	return h, err
}

func (s *service) Get(_ context.Context, id, userID uuid.UUID) (*HabitResponse, error) {
	h, err := s.find(id, userID)
	if err != nil {
		return nil, err
	}
	return ToResponse(h, s.today()), nil
}

func (s *service) Update(ctx context.Context, id, userID uuid.UUID, dto UpdateHabitDTO) (*HabitResponse, error) {
	defer s.lock(id)()

	h, err := s.find(id, userID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		h.Name = name
	}
	if dto.Type != nil {
		t, err := ParseHabitType(*dto.Type)
		if err != nil {
			return nil, err
		}
		h.Type = t
	}
	goal := h.Goal
	if dto.Goal != nil {
		goal = *dto.Goal
	}
	if h.Goal, err = normalizeGoal(h.Type, goal); err != nil {
		return nil, err
	}
	if dto.Color != nil && strings.TrimSpace(*dto.Color) != "" {
		h.Color = strings.TrimSpace(*dto.Color)
	}
	if dto.ClearDuration {
		h.Duration = nil
	} else if dto.Duration != nil {
		if err := validateDuration(dto.Duration); err != nil {
			return nil, err
		}
		h.Duration = dto.Duration
	}

	if err := s.repo.Update(h); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to update habit")
		return nil, err
	}

	s.notify(ctx, userID)
	return ToResponse(h, s.today()), nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if err := s.repo.Delete(id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrHabitNotFound
		}
		config.WithContext(ctx).WithError(err).Error("Failed to delete habit")
		return err
	}
	s.notify(ctx, userID)
	return nil
}

func (s *service) updateProgress(ctx context.Context, id, userID uuid.UUID, day util.Date, next func(current int) int) (*HabitResponse, error) {
	defer s.lock(id)()

	h, err := s.find(id, userID)
	if err != nil {
		return nil, err
	}

	value := h.setProgress(day, next(h.ProgressOn(day)))
	if err := s.repo.Update(h); err != nil {
		config.WithContext(ctx).WithError(err).Error("Failed to save habit progress")
		return nil, err
	}

	config.WithContext(ctx).WithFields(logrus.Fields{
		"habit_id": id,
		"day":      day.String(),
		"value":    value,
	}).Debug("Habit progress updated")
	s.notify(ctx, userID)
	return ToResponse(h, s.today()), nil
}

// SetProgress records value for day; a zero day means today.
func (s *service) SetProgress(ctx context.Context, id, userID uuid.UUID, day util.Date, value int) (*HabitResponse, error) {
	if day.IsZero() {
		day = s.today()
	}
	return s.updateProgress(ctx, id, userID, day, func(int) int { return value })
}

func (s *service) AdjustProgress(ctx context.Context, id, userID uuid.UUID, delta int) (*HabitResponse, error) {
	return s.updateProgress(ctx, id, userID, s.today(), func(current int) int { return current + delta })
}

// MetOn lists the habits whose goal was reached on day.
func (s *service) MetOn(_ context.Context, userID uuid.UUID, day util.Date) ([]HabitResponse, error) {
	habits, err := s.repo.FindAllByUserID(userID)
	if err != nil {
		return nil, err
	}

	today := s.today()
	met := make([]HabitResponse, 0)
	for i := range habits {
		if habits[i].MetGoalOn(day) {
			met = append(met, *ToResponse(&habits[i], today))
		}
	}
	return met, nil
}
