package area_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/area"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/feed"
	"github.com/saulo-duarte/organon/internal/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (area.Service, *feed.MemoryBroker) {
	t.Helper()
	db, err := config.Open(config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&area.Area{}, &task.Task{}))

	broker := feed.NewMemoryBroker()
	t.Cleanup(func() { _ = broker.Close() })
	return area.NewService(area.NewRepository(db), broker), broker
}

func TestCreateArea(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	_, err := svc.Create(ctx, userID, area.CreateAreaDTO{Name: "   "})
	assert.ErrorIs(t, err, area.ErrInvalidName)

	first, err := svc.Create(ctx, userID, area.CreateAreaDTO{Name: "Work"})
	require.NoError(t, err)
	assert.Equal(t, area.DefaultColor, first.Color)
	assert.Equal(t, 0, first.Position)

	second, err := svc.Create(ctx, userID, area.CreateAreaDTO{Name: "Health", Color: "bg-red-500"})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Position)

	_, err = svc.Create(ctx, uuid.New(), area.CreateAreaDTO{Name: "Elsewhere"})
	require.NoError(t, err)

	areas, err := svc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, areas, 2)
	assert.Equal(t, "Work", areas[0].Name)
	assert.Equal(t, "Health", areas[1].Name)
}

func TestUpdateArea(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	a, err := svc.Create(ctx, userID, area.CreateAreaDTO{Name: "Work"})
	require.NoError(t, err)

	blank := ""
	_, err = svc.Update(ctx, a.ID, userID, area.UpdateAreaDTO{Name: &blank})
	assert.ErrorIs(t, err, area.ErrInvalidName)

	name, pos := "Career", 3
	updated, err := svc.Update(ctx, a.ID, userID, area.UpdateAreaDTO{Name: &name, Position: &pos})
	require.NoError(t, err)
	assert.Equal(t, "Career", updated.Name)
	assert.Equal(t, 3, updated.Position)

	_, err = svc.Update(ctx, a.ID, uuid.New(), area.UpdateAreaDTO{Name: &name})
	assert.ErrorIs(t, err, area.ErrAreaNotFound)
}

func TestDeleteAreaNotifiesTasks(t *testing.T) {
	svc, broker := newService(t)
	ctx := context.Background()
	userID := uuid.New()

	a, err := svc.Create(ctx, userID, area.CreateAreaDTO{Name: "Work"})
	require.NoError(t, err)

	listener, err := broker.Listen(ctx, userID, feed.Tasks)
	require.NoError(t, err)
	defer listener.Close()

	require.NoError(t, svc.Delete(ctx, a.ID, userID))
	select {
	case <-listener.C():
	default:
		t.Fatal("expected a tasks change after deleting an area")
	}

	assert.ErrorIs(t, svc.Delete(ctx, a.ID, userID), area.ErrAreaNotFound)
}
