package area

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/saulo-duarte/organon/internal/config"
	"github.com/saulo-duarte/organon/internal/feed"
)

var (
	ErrAreaNotFound = errors.New("area not found")
	ErrInvalidName  = errors.New("area name is required")
)

type Service interface {
	Create(ctx context.Context, userID uuid.UUID, dto CreateAreaDTO) (*Area, error)
	List(ctx context.Context, userID uuid.UUID) ([]Area, error)
	Get(ctx context.Context, id, userID uuid.UUID) (*Area, error)
	Update(ctx context.Context, id, userID uuid.UUID, dto UpdateAreaDTO) (*Area, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}

type service struct {
	repo     Repository
	notifier feed.Notifier
}

func NewService(repo Repository, notifier feed.Notifier) Service {
	return &service{repo: repo, notifier: notifier}
}

func (s *service) notify(ctx context.Context, userID uuid.UUID, collections ...feed.Collection) {
	if s.notifier == nil {
		return
	}
	for _, c := range collections {
		if err := s.notifier.Notify(ctx, userID, c); err != nil {
			config.WithContext(ctx).WithError(err).Warnf("Failed to publish %s change", c)
		}
	}
}

func (s *service) Create(ctx context.Context, userID uuid.UUID, dto CreateAreaDTO) (*Area, error) {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, ErrInvalidName
	}
	color := strings.TrimSpace(dto.Color)
	if color == "" {
		color = DefaultColor
	}

	position, err := s.repo.NextPosition(userID)
	if err != nil {
		return nil, err
	}

	a := Area{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     name,
		Color:    color,
		Position: position,
	}
	if err := s.repo.Create(&a); err != nil {
		return nil, err
	}

	s.notify(ctx, userID, feed.Areas)
	return &a, nil
}

func (s *service) List(_ context.Context, userID uuid.UUID) ([]Area, error) {
	return s.repo.FindAllByUserID(userID)
}

func (s *service) Get(_ context.Context, id, userID uuid.UUID) (*Area, error) {
	a, err := s.repo.FindByID(id, userID)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrAreaNotFound
	}
	return a, err
}

func (s *service) Update(ctx context.Context, id, userID uuid.UUID, dto UpdateAreaDTO) (*Area, error) {
	a, err := s.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if dto.Name != nil {
		name := strings.TrimSpace(*dto.Name)
		if name == "" {
			return nil, ErrInvalidName
		}
		a.Name = name
	}
	recolor := false
	if dto.Color != nil && strings.TrimSpace(*dto.Color) != "" && *dto.Color != a.Color {
		a.Color = strings.TrimSpace(*dto.Color)
		recolor = true
	}
	if dto.Position != nil {
		a.Position = *dto.Position
	}

	if err := s.repo.Update(a, recolor); err != nil {
		return nil, err
	}

	s.notify(ctx, userID, feed.Areas)
	if recolor {
		s.notify(ctx, userID, feed.Tasks)
	}
	return a, nil
}

func (s *service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	log := config.WithContext(ctx)

	detached, err := s.repo.Delete(id, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrAreaNotFound
		}
		log.WithError(err).Error("Failed to delete area")
		return err
	}

	log.WithField("detached_tasks", detached).Info("Area deleted")
	s.notify(ctx, userID, feed.Areas, feed.Tasks)
	return nil
}
