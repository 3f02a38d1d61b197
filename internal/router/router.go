package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/saulo-duarte/organon/internal/area"
	"github.com/saulo-duarte/organon/internal/auth"
	"github.com/saulo-duarte/organon/internal/event"
	"github.com/saulo-duarte/organon/internal/feed"
	"github.com/saulo-duarte/organon/internal/habit"
	"github.com/saulo-duarte/organon/internal/journal"
	"github.com/saulo-duarte/organon/internal/metrics"
	"github.com/saulo-duarte/organon/internal/middlewares"
	"github.com/saulo-duarte/organon/internal/planner"
	"github.com/saulo-duarte/organon/internal/project"
	"github.com/saulo-duarte/organon/internal/task"
	"github.com/saulo-duarte/organon/internal/user"
)

type RouterConfig struct {
	AllowedOrigins  []string
	SessionHandler  *auth.Handler
	UserHandler     *user.Handler
	ProjectHandler  *project.Handler
	PlannerHandler  *planner.Handler
	AreaHandler     *area.Handler
	TaskHandler     *task.Handler
	EventHandler    *event.Handler
	HabitHandler    *habit.Handler
	JournalHandler  *journal.Handler
	FeedHandler     *feed.Handler
	MetricsDisabled bool
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))
	if !cfg.MetricsDisabled {
		r.Use(middlewares.Metrics)
		r.Handle("/metrics", metrics.Handler())
	}

	r.Get("/swagger/*", httpSwagger.WrapHandler)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	r.Mount("/auth", user.AuthRoutes(cfg.UserHandler, cfg.SessionHandler))

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		r.Mount("/users", user.Routes(cfg.UserHandler))
		r.Mount("/projects", project.Routes(cfg.ProjectHandler, cfg.PlannerHandler.Register))
		r.Mount("/deletions", project.DeletionRoutes(cfg.ProjectHandler))
		r.Get("/history", cfg.ProjectHandler.History)
		r.Mount("/areas", area.Routes(cfg.AreaHandler))
		r.Mount("/tasks", task.Routes(cfg.TaskHandler))
		r.Mount("/events", event.Routes(cfg.EventHandler))
		r.Mount("/habits", habit.Routes(cfg.HabitHandler))
		r.Mount("/journal", journal.Routes(cfg.JournalHandler))
		r.Get("/feed/{collection}", cfg.FeedHandler.Stream)
	})
	return r
}
