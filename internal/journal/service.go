package journal

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/event"
	"github.com/saulo-duarte/organon/internal/feed"
	"github.com/saulo-duarte/organon/internal/habit"
	"github.com/saulo-duarte/organon/internal/task"
	util "github.com/saulo-duarte/organon/internal/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"golang.org/x/sync/errgroup"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidDate  = errors.New("invalid journal date")
)

type TaskSource interface {
	CompletedOn(ctx context.Context, day util.Date) ([]*task.Task, error)
}

type EventSource interface {
	EventsOn(ctx context.Context, day util.Date) ([]*event.Event, error)
}

type HabitSource interface {
	MetOn(ctx context.Context, userID uuid.UUID, day util.Date) ([]habit.HabitResponse, error)
}

type Service interface {
	Get(ctx context.Context, day util.Date) (*Entry, error)
	Save(ctx context.Context, day util.Date, dto SaveEntryDTO) (*Entry, error)
	List(ctx context.Context) ([]Entry, error)
	Summary(ctx context.Context, day util.Date) (*DaySummary, error)
}

type service struct {
	repo     Repository
	tasks    TaskSource
	events   EventSource
	habits   HabitSource
	notifier feed.Notifier
}

func NewService(repo Repository, tasks TaskSource, events EventSource, habits HabitSource, notifier feed.Notifier) Service {
	return &service{
		repo:     repo,
		tasks:    tasks,
		events:   events,
		habits:   habits,
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

func (s *service) load(userID uuid.UUID, day util.Date) (*Entry, error) {
	e, err := s.repo.Find(userID, day)
	if errors.Is(err, ErrNotFound) {
		return emptyEntry(userID, day), nil
	}
	return e, err
}

// Get returns the stored entry or an empty one for days never written.
func (s *service) Get(ctx context.Context, day util.Date) (*Entry, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "read journal")
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		return nil, ErrInvalidDate
	}

	e, err := s.load(userID, day)
	if err != nil {
		log.WithError(err).Error("Failed to load journal entry")
		return nil, err
	}
	return e, nil
}

func (s *service) Save(ctx context.Context, day util.Date, dto SaveEntryDTO) (*Entry, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "write journal")
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		return nil, ErrInvalidDate
	}

	e, err := s.load(userID, day)
	if err != nil {
		log.WithError(err).Error("Failed to load journal entry")
		return nil, err
	}

	if dto.Gratitude != nil {
		e.Gratitude = *dto.Gratitude
	}
	if dto.Memory != nil {
		e.Memory = *dto.Memory
	}
	if dto.Attachments != nil {
		e.Attachments = datatypes.NewJSONType(util.NormalizeAttachments(*dto.Attachments))
	}

	if err := s.repo.Upsert(e); err != nil {
		log.WithError(err).Error("Failed to save journal entry")
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.Notify(ctx, userID, feed.Journal); err != nil {
			log.WithError(err).Warn("Failed to publish journal change")
		}
	}
	log.WithField("date", day.String()).Info("Journal entry saved")
	return e, nil
}

func (s *service) List(ctx context.Context) ([]Entry, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "list journal")
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUser(userID)
}

// Summary gathers what happened on day: the entry, completed tasks, events
// occurring that day and habits whose goal was met.
func (s *service) Summary(ctx context.Context, day util.Date) (*DaySummary, error) {
	log := config.WithContext(ctx)
	userID, err := getUserIDFromContext(ctx, log, "read journal summary")
	if err != nil {
		return nil, err
	}
	if day.IsZero() {
		return nil, ErrInvalidDate
	}

	summary := &DaySummary{
		Date:   day,
		Tasks:  []*task.Task{},
		Events: []*event.Event{},
		Habits: []habit.HabitResponse{},
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		e, err := s.load(userID, day)
		summary.Entry = e
		return err
	})
	if s.tasks != nil {
		g.Go(func() error {
			tasks, err := s.tasks.CompletedOn(gctx, day)
			if tasks != nil {
				summary.Tasks = tasks
			}
			return err
		})
	}
	if s.events != nil {
		g.Go(func() error {
			events, err := s.events.EventsOn(gctx, day)
			if events != nil {
				summary.Events = events
			}
			return err
		})
	}
	if s.habits != nil {
		g.Go(func() error {
			habits, err := s.habits.MetOn(gctx, userID, day)
			if habits != nil {
				summary.Habits = habits
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.WithError(err).Error("Failed to build journal summary")
		return nil, err
	}

	return summary, nil
}
