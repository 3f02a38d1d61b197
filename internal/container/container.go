package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/saulo-duarte/organon/internal/area"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/event"
	"github.com/saulo-duarte/organon/internal/feed"
	googlecalendar "github.com/saulo-duarte/organon/internal/google_calendar"
	"github.com/saulo-duarte/organon/internal/habit"
	"github.com/saulo-duarte/organon/internal/journal"
	"github.com/saulo-duarte/organon/internal/planner"
	"github.com/saulo-duarte/organon/internal/project"
	"github.com/saulo-duarte/organon/internal/router"
	"github.com/saulo-duarte/organon/internal/task"
	"github.com/saulo-duarte/organon/internal/user"
)

type Container struct {
	Config                  *config.Config
	Broker                  feed.Broker
	Sessions                *auth.Handler
	UserContainer           *user.UserContainer
	ProjectContainer        *project.ProjectContainer
	PlannerContainer        *planner.PlannerContainer
	AreaContainer           *area.Container
	TaskContainer           *task.TaskContainer
	GoogleCalendarContainer *googlecalendar.GoogleCalendarContainer
	EventContainer          *event.EventContainer
	HabitContainer          *habit.Container
	JournalContainer        *journal.Container
	FeedHandler             *feed.Handler
}

// Models lists every persisted type, in dependency order.
func Models() []any {
	return []any{
		&user.User{},
		&project.ProjectRecord{},
		&area.Area{},
		&task.Task{},
		&event.Event{},
		&habit.Habit{},
		&journal.Entry{},
	}
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

// Bootstrap initialises logging, secrets and the database connection.
func Bootstrap(ctx context.Context, cfg *config.Config) error {
	config.InitLogger(cfg.Log)
	auth.Init()
	config.InitCrypto()

	if err := config.Connect(ctx, cfg.Database); err != nil {
		return fmt.Errorf("failed to connect to DB: %w", err)
	}
	if cfg.Database.AutoMigrate {
		return Migrate(config.DB)
	}
	return nil
}

func newBroker(ctx context.Context, cfg config.NATSConfig) (feed.Broker, error) {
	if cfg.URL == "" {
		return feed.NewMemoryBroker(), nil
	}
	b, err := feed.NewNATSBroker(cfg.URL, cfg.SubjectPrefix)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	config.WithContext(ctx).WithField("url", cfg.URL).Info("Change feed uses NATS")
	return b, nil
}

// forUser adapts a userID-scoped list to a feed loader reading the caller
// from ctx.
func forUser[T any](list func(ctx context.Context, userID uuid.UUID) ([]T, error)) feed.Loader[T] {
	return func(ctx context.Context) ([]T, error) {
		claims, err := auth.GetUserClaimsFromContext(ctx)
		if err != nil {
			return nil, err
		}
		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			return nil, err
		}
		return list(ctx, userID)
	}
}

// New wires every feature on top of config.DB. Bootstrap must have run.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	broker, err := newBroker(ctx, cfg.NATS)
	if err != nil {
		return nil, err
	}

	loc := cfg.Location()

	projectContainer := project.NewProjectContainer(config.DB, broker, loc, cfg.Delete.ConfirmTTL)
	sessions := auth.NewHandler(cfg.Server.CookieDomain, projectContainer.Service.EndSession)
	userContainer := user.NewUserContainer(config.DB, sessions, cfg.Auth.TokenTTL)
	plannerContainer := planner.NewPlannerContainer(ctx, cfg.Gemini, projectContainer.Service)
	areaContainer := area.NewContainer(config.DB, broker)
	taskContainer := task.NewTaskContainer(config.DB, areaContainer.Repository, broker)

	var calendar googlecalendar.CalendarManager
	calendarContainer := googlecalendar.NewGoogleCalendarContainer(cfg.Google, userContainer.Repository)
	if calendarContainer != nil {
		calendar = calendarContainer.CalendarManager
	}
	eventContainer := event.NewEventContainer(config.DB, calendar, broker, loc)
	habitContainer := habit.NewContainer(config.DB, broker, loc)
	journalContainer := journal.NewContainer(
		config.DB,
		taskContainer.Service,
		eventContainer.Service,
		habitContainer.Service,
		broker,
	)

	feedHandler := feed.NewHandler(broker, map[feed.Collection]feed.Loader[any]{
		feed.Projects: feed.Erase[project.Project](projectContainer.Service.ListProjects),
		feed.Tasks:    feed.Erase[*task.Task](taskContainer.Service.FindAllByUser),
		feed.Events:   feed.Erase[*event.Event](eventContainer.Service.ListEvents),
		feed.Habits:   feed.Erase(forUser(habitContainer.Service.List)),
		feed.Areas:    feed.Erase(forUser(areaContainer.Service.List)),
		feed.Journal:  feed.Erase[journal.Entry](journalContainer.Service.List),
	})

	return &Container{
		Config:                  cfg,
		Broker:                  broker,
		Sessions:                sessions,
		UserContainer:           userContainer,
		ProjectContainer:        projectContainer,
		PlannerContainer:        plannerContainer,
		AreaContainer:           areaContainer,
		TaskContainer:           taskContainer,
		GoogleCalendarContainer: calendarContainer,
		EventContainer:          eventContainer,
		HabitContainer:          habitContainer,
		JournalContainer:        journalContainer,
		FeedHandler:             feedHandler,
	}, nil
}

// Handler builds the HTTP surface.
func (c *Container) Handler() http.Handler {
	return router.New(router.RouterConfig{
		AllowedOrigins: c.Config.Server.AllowedOrigins,
		SessionHandler: c.Sessions,
		UserHandler:    c.UserContainer.Handler,
		ProjectHandler: c.ProjectContainer.Handler,
		PlannerHandler: c.PlannerContainer.Handler,
		AreaHandler:    c.AreaContainer.Handler,
		TaskHandler:    c.TaskContainer.Handler,
		EventHandler:   c.EventContainer.Handler,
		HabitHandler:   c.HabitContainer.Handler,
		JournalHandler: c.JournalContainer.Handler,
		FeedHandler:    c.FeedHandler,
	})
}

func (c *Container) Close() error {
	return c.Broker.Close()
}
