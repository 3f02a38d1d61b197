package habit_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/feed"
	"github.com/saulo-duarte/organon/internal/habit"
	util "github.com/saulo-duarte/organon/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) habit.Service {
	t.Helper()
	db, err := config.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&habit.Habit{}))
	return habit.NewService(habit.NewRepository(db), feed.NewMemoryBroker(), time.UTC)
}

func intPtr(v int) *int { return &v }

func TestCreateHabit(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	binary, err := svc.Create(ctx, userID, habit.CreateHabitDTO{Name: "Meditate", Goal: 5})
	require.NoError(t, err)
	assert.Equal(t, habit.HabitTypeBinary, binary.Type)
	assert.Equal(t, 1, binary.Goal)
	assert.Equal(t, habit.DefaultColor, binary.Color)
	assert.NotNil(t, binary.DailyProgress)

	water, err := svc.Create(ctx, userID, habit.CreateHabitDTO{Name: "Water", Type: "quantitative", Goal: 8})
	require.NoError(t, err)
	assert.Equal(t, 8, water.Goal)

	_, err = svc.Create(ctx, userID, habit.CreateHabitDTO{Name: "Steps", Type: "QUANTITATIVE"})
	assert.ErrorIs(t, err, habit.ErrInvalidGoal)
	_, err = svc.Create(ctx, userID, habit.CreateHabitDTO{Name: "Run", Duration: intPtr(0)})
	assert.ErrorIs(t, err, habit.ErrInvalidDuration)
	_, err = svc.Create(ctx, userID, habit.CreateHabitDTO{Name: "Run", Type: "weekly"})
	assert.ErrorIs(t, err, habit.ErrInvalidType)
	_, err = svc.Create(ctx, userID, habit.CreateHabitDTO{Name: " "})
	assert.ErrorIs(t, err, habit.ErrInvalidName)

	list, err := svc.List(ctx, userID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProgress(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := uuid.New()
	today := util.Today(time.UTC)

	water, err := svc.Create(ctx, userID, habit.CreateHabitDTO{Name: "Water", Type: "QUANTITATIVE", Goal: 3})
	require.NoError(t, err)

	got, err := svc.AdjustProgress(ctx, water.ID, userID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TodayProgress)
	assert.Equal(t, 0, got.Streak)

	got, err = svc.AdjustProgress(ctx, water.ID, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, got.TodayProgress)
	assert.Equal(t, 1, got.Streak)

	got, err = svc.AdjustProgress(ctx, water.ID, userID, -10)
	require.NoError(t, err)
	assert.Equal(t, 0, got.TodayProgress)
	assert.NotContains(t, got.DailyProgress, today.String())

	yesterday := today.AddDays(-1)
	got, err = svc.SetProgress(ctx, water.ID, userID, yesterday, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, got.DailyProgress[yesterday.String()])
	assert.Equal(t, 1, got.Streak, "an unmet today does not break the streak")

	_, err = svc.SetProgress(ctx, uuid.New(), userID, today, 1)
	assert.ErrorIs(t, err, habit.ErrHabitNotFound)
	_, err = svc.AdjustProgress(ctx, water.ID, uuid.New(), 1)
	assert.ErrorIs(t, err, habit.ErrHabitNotFound)
}

func TestBinaryProgressIsCapped(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	read, err := svc.Create(ctx, userID, habit.CreateHabitDTO{Name: "Read", Duration: intPtr(1)})
	require.NoError(t, err)
	assert.True(t, read.Active)

	got, err := svc.SetProgress(ctx, read.ID, userID, util.Date{}, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, got.TodayProgress)
	assert.False(t, got.Active, "duration reached")

	met, err := svc.MetOn(ctx, userID, util.Today(time.UTC))
	require.NoError(t, err)
	require.Len(t, met, 1)
	assert.Equal(t, "Read", met[0].Name)

	met, err = svc.MetOn(ctx, userID, util.Today(time.UTC).AddDays(-1))
	require.NoError(t, err)
	assert.Empty(t, met)
}

func TestUpdateAndDeleteHabit(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	h, err := svc.Create(ctx, userID, habit.CreateHabitDTO{Name: "Pushups", Type: "QUANTITATIVE", Goal: 20, Duration: intPtr(30)})
	require.NoError(t, err)

	binary := "BINARY"
	got, err := svc.Update(ctx, h.ID, userID, habit.UpdateHabitDTO{Type: &binary, ClearDuration: true})
	require.NoError(t, err)
	assert.Equal(t, 1, got.Goal)
	assert.Nil(t, got.Duration)

	require.NoError(t, svc.Delete(ctx, h.ID, userID))
	assert.ErrorIs(t, svc.Delete(ctx, h.ID, userID), habit.ErrHabitNotFound)
}
