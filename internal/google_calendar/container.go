package googlecalendar

import (
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/user"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
)

type GoogleCalendarContainer struct {
	CalendarService CalendarService
	CalendarManager CalendarManager
}

// NewGoogleCalendarContainer returns nil when no OAuth client is configured.
func NewGoogleCalendarContainer(cfg config.GoogleConfig, userRepo user.UserRepository) *GoogleCalendarContainer {
	if cfg.ClientID == "" {
		return nil
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Scopes:       []string{gcal.CalendarEventsScope},
		Endpoint:     google.Endpoint,
	}

	calendarService := NewCalendarService(userRepo, oauthConfig)

	return &GoogleCalendarContainer{
		CalendarService: calendarService,
		CalendarManager: NewCalendarManager(calendarService),
	}
}
