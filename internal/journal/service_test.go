package journal_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/area"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/event"
	"github.com/saulo-duarte/organon/internal/feed"
	"github.com/saulo-duarte/organon/internal/habit"
	"github.com/saulo-duarte/organon/internal/journal"
	"github.com/saulo-duarte/organon/internal/task"
	util "github.com/saulo-duarte/organon/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	ctx     context.Context
	userID  uuid.UUID
	journal journal.Service
	tasks   task.TaskService
	events  event.EventService
	habits  habit.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db, err := config.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&area.Area{}, &task.Task{}, &event.Event{}, &habit.Habit{}, &journal.Entry{}))

	broker := feed.NewMemoryBroker()
	userID := uuid.New()
	tasks := task.NewService(task.NewRepository(db), area.NewRepository(db), broker)
	events := event.NewService(event.NewRepository(db), nil, broker, time.UTC)
	habits := habit.NewService(habit.NewRepository(db), broker, time.UTC)

	return fixture{
		ctx: auth.ContextWithClaims(context.Background(), &auth.Claims{
			UserID:           userID.String(),
			RegisteredClaims: jwt.RegisteredClaims{ID: "s1"},
		}),
		userID:  userID,
		journal: journal.NewService(journal.NewRepository(db), tasks, events, habits, broker),
		tasks:   tasks,
		events:  events,
		habits:  habits,
	}
}

func strPtr(s string) *string { return &s }

func TestGetReturnsEmptyEntry(t *testing.T) {
	f := newFixture(t)
	day := util.NewDate(2024, 2, 14)

	entry, err := f.journal.Get(f.ctx, day)
	require.NoError(t, err)
	assert.Equal(t, day.String(), entry.Date.String())
	assert.Empty(t, entry.Gratitude)
	assert.Empty(t, entry.Attachments.Data())

	_, err = f.journal.Get(context.Background(), day)
	assert.ErrorIs(t, err, journal.ErrUnauthorized)
}

func TestSaveMerges(t *testing.T) {
	f := newFixture(t)
	day := util.NewDate(2024, 2, 14)

	_, err := f.journal.Save(f.ctx, day, journal.SaveEntryDTO{Gratitude: strPtr("coffee")})
	require.NoError(t, err)

	saved, err := f.journal.Save(f.ctx, day, journal.SaveEntryDTO{
		Memory:      strPtr("long walk"),
		Attachments: &[]util.Attachment{{URL: "https://example.com/walk.jpg"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "coffee", saved.Gratitude)
	assert.Equal(t, "long walk", saved.Memory)

	stored, err := f.journal.Get(f.ctx, day)
	require.NoError(t, err)
	assert.Equal(t, "coffee", stored.Gratitude)
	assert.Equal(t, "long walk", stored.Memory)
	require.Len(t, stored.Attachments.Data(), 1)
	assert.Equal(t, "https://example.com/walk.jpg", stored.Attachments.Data()[0].Name)

	entries, err := f.journal.List(f.ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSummary(t *testing.T) {
	f := newFixture(t)
	today := util.Today(time.UTC)

	done := true
	finished, err := f.tasks.CreateTask(f.ctx, task.CreateTaskDTO{Name: "Ship release", Date: &today})
	require.NoError(t, err)
	_, err = f.tasks.UpdateTask(f.ctx, finished.ID.String(), task.UpdateTaskDTO{Completed: &done})
	require.NoError(t, err)
	_, err = f.tasks.CreateTask(f.ctx, task.CreateTaskDTO{Name: "Still open", Date: &today})
	require.NoError(t, err)

	_, err = f.events.CreateEvent(f.ctx, event.CreateEventDTO{Name: "Gym", Date: today.AddDays(-7), Recurrence: "WEEKLY"})
	require.NoError(t, err)
	_, err = f.events.CreateEvent(f.ctx, event.CreateEventDTO{Name: "Tomorrow", Date: today.AddDays(1)})
	require.NoError(t, err)

	met, err := f.habits.Create(f.ctx, f.userID, habit.CreateHabitDTO{Name: "Stretch"})
	require.NoError(t, err)
	_, err = f.habits.AdjustProgress(f.ctx, met.ID, f.userID, 1)
	require.NoError(t, err)
	_, err = f.habits.Create(f.ctx, f.userID, habit.CreateHabitDTO{Name: "Skipped"})
	require.NoError(t, err)

	summary, err := f.journal.Summary(f.ctx, today)
	require.NoError(t, err)
	require.NotNil(t, summary.Entry)

	require.Len(t, summary.Tasks, 1)
	assert.Equal(t, "Ship release", summary.Tasks[0].Name)
	require.Len(t, summary.Events, 1)
	assert.Equal(t, "Gym", summary.Events[0].Name)
	require.Len(t, summary.Habits, 1)
	assert.Equal(t, "Stretch", summary.Habits[0].Name)
}
