package googlecalendar

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/user"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const calendarID = "primary"

var (
	ErrUserNotFound          = errors.New("user not found for calendar integration")
	ErrDecryptionFailed      = errors.New("failed to decrypt user's google token")
	ErrMissingCalendarTokens = errors.New("user has no google access token")
	ErrMissingEventID        = errors.New("cannot update event: missing Google Calendar event ID")
)

type CalendarService interface {
	AddEventToCalendar(ctx context.Context, userID uuid.UUID, event *CalendarEvent) (string, error)
	UpdateEventInCalendar(ctx context.Context, userID uuid.UUID, event *CalendarEvent) error
	DeleteEventFromCalendar(ctx context.Context, userID uuid.UUID, googleEventID string) error
}

type calendarService struct {
	userRepo    user.UserRepository
	oauthConfig *oauth2.Config
}

func NewCalendarService(userRepo user.UserRepository, oauthConfig *oauth2.Config) CalendarService {
	return &calendarService{
		userRepo:    userRepo,
		oauthConfig: oauthConfig,
	}
}

func (s *calendarService) getCalendarClient(ctx context.Context, userID uuid.UUID) (*gcal.Service, error) {
	log := config.WithContext(ctx)

	u, err := s.userRepo.GetByID(userID.String())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		log.WithError(err).Error("Failed to retrieve user for calendar client")
		return nil, err
	}
	if !u.HasGoogleTokens() {
		return nil, ErrMissingCalendarTokens
	}

	accessToken, err := config.Decrypt(u.EncryptedGoogleAccessToken)
	if err != nil {
		log.WithError(err).Error("Failed to decrypt access token")
		return nil, ErrDecryptionFailed
	}
	var refreshToken string
	if u.EncryptedGoogleRefreshToken != "" {
		if refreshToken, err = config.Decrypt(u.EncryptedGoogleRefreshToken); err != nil {
			log.WithError(err).Error("Failed to decrypt refresh token")
			return nil, ErrDecryptionFailed
		}
	}

	token := &oauth2.Token{
		AccessToken:  accessToken,
		TokenType:    "Bearer",
		RefreshToken: refreshToken,
	}
	// Stored tokens carry no expiry; force a refresh when we can.
	if refreshToken != "" {
		token.Expiry = time.Now().Add(-time.Hour)
	}

	tokenSource := s.oauthConfig.TokenSource(ctx, token)
	newToken, err := tokenSource.Token()
	if err != nil {
		log.WithError(err).Error("Failed to refresh Google token")
		return nil, err
	}

	if newToken.AccessToken != accessToken {
		s.persistToken(ctx, u, newToken)
	}

	client := oauth2.NewClient(ctx, tokenSource)
	srv, err := gcal.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		log.WithError(err).Error("Failed to create Calendar service client")
		return nil, err
	}

	return srv, nil
}

func (s *calendarService) persistToken(ctx context.Context, u *user.User, token *oauth2.Token) {
	log := config.WithContext(ctx)

	access, err := config.Encrypt(token.AccessToken)
	if err != nil {
		log.WithError(err).Warn("Failed to encrypt refreshed Google token")
		return
	}
	u.EncryptedGoogleAccessToken = access
	if token.RefreshToken != "" {
		if refresh, err := config.Encrypt(token.RefreshToken); err == nil {
			u.EncryptedGoogleRefreshToken = refresh
		}
	}
	if err := s.userRepo.Update(u); err != nil {
		log.WithError(err).Warn("Failed to persist refreshed Google token")
		return
	}
	log.Info("Google token refreshed")
}

func buildCalendarEvent(event *CalendarEvent) *gcal.Event {
	out := &gcal.Event{
		Summary:    event.Name,
		Location:   event.Location,
		Recurrence: event.Recurrence,
		Reminders: &gcal.EventReminders{
			UseDefault:      false,
			ForceSendFields: []string{"UseDefault"},
		},
	}

	switch {
	case event.Start != nil:
		end := event.Start.Add(time.Hour)
		if event.End != nil && event.End.After(*event.Start) {
			end = *event.End
		}
		tz := event.Start.Location().String()
		out.Start = &gcal.EventDateTime{DateTime: event.Start.Format(time.RFC3339), TimeZone: tz}
		out.End = &gcal.EventDateTime{DateTime: end.Format(time.RFC3339), TimeZone: tz}
	case event.Day != nil && !event.Day.IsZero():
		out.Start = &gcal.EventDateTime{Date: event.Day.String()}
		out.End = &gcal.EventDateTime{Date: event.Day.AddDays(1).String()}
	default:
		return nil
	}

	return out
}

func (s *calendarService) AddEventToCalendar(ctx context.Context, userID uuid.UUID, event *CalendarEvent) (string, error) {
	log := config.WithContext(ctx)

	payload := buildCalendarEvent(event)
	if payload == nil {
		log.Warnf("Event %s has no valid dates to create a calendar event", event.ID)
		return "", nil
	}

	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		return "", err
	}

	calEvent, err := srv.Events.Insert(calendarID, payload).Context(ctx).Do()
	if err != nil {
		log.WithError(err).Error("Failed to insert calendar event")
		return "", err
	}

	return calEvent.Id, nil
}

func (s *calendarService) UpdateEventInCalendar(ctx context.Context, userID uuid.UUID, event *CalendarEvent) error {
	log := config.WithContext(ctx)
	if !event.hasEventID() {
		return ErrMissingEventID
	}

	payload := buildCalendarEvent(event)
	if payload == nil {
		log.Warnf("Event %s no longer has valid dates, deleting calendar event", event.ID)
		return s.DeleteEventFromCalendar(ctx, userID, *event.GoogleCalendarEventID)
	}

	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		return err
	}

	_, err = srv.Events.Update(calendarID, *event.GoogleCalendarEventID, payload).Context(ctx).Do()
	if err != nil {
		log.WithError(err).Error("Failed to update calendar event")
		return err
	}

	return nil
}

func (s *calendarService) DeleteEventFromCalendar(ctx context.Context, userID uuid.UUID, googleEventID string) error {
	log := config.WithContext(ctx)
	srv, err := s.getCalendarClient(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrMissingCalendarTokens) || errors.Is(err, ErrDecryptionFailed) {
			log.Warnf("Skipping Google Calendar deletion for event %s due to missing/invalid token", googleEventID)
			return nil
		}
		return err
	}

	err = srv.Events.Delete(calendarID, googleEventID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusNotFound || apiErr.Code == http.StatusGone) {
			log.Warnf("Calendar event %s not found on Google, considering deleted.", googleEventID)
			return nil
		}
		log.WithError(err).Error("Failed to delete calendar event")
		return err
	}

	return nil
}
