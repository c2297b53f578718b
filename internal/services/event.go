package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"devevent/internal/domain"
	"devevent/internal/validation"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"golang.org/x/sync/errgroup"
)

// Similar event limits.
const (
	DefaultSimilarLimit = 3
	MaxSimilarLimit     = 12
)

const (
	fallbackSlugPrefix   = "event-"
	fallbackSlugAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	fallbackSlugLength   = 8
)

type eventService struct {
	eventRepo      domain.EventRepository
	contextTimeout time.Duration
}

// NewEventService returns a domain.EventService backed by eventRepo. Each
// call is bounded by timeout.
func NewEventService(eventRepo domain.EventRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, input *domain.EventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := NormalizeEvent(input)
	if err != nil {
		return nil, err
	}
	if event.Slug == "" {
		suffix, err := gonanoid.Generate(fallbackSlugAlphabet, fallbackSlugLength)
		if err != nil {
			return nil, fmt.Errorf("generate slug: %w", err)
		}
		event.Slug = fallbackSlugPrefix + suffix
	}

	now := time.Now().UTC().Truncate(time.Millisecond)
	event.ID = uuid.NewString()
	event.CreatedAt = now
	event.UpdatedAt = now

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug = validation.NormalizeSlug(slug)
	if slug == "" {
		return nil, domain.NewValidationError("slug", "Slug cannot be empty")
	}
	return s.eventRepo.GetBySlug(ctx, slug)
}

func (s *eventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("id", "Event ID is required")
	}
	return s.eventRepo.GetByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context, params domain.PaginationParams) (*domain.EventPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	params = params.Clamp()
	page := &domain.EventPage{Pagination: params}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		events, err := s.eventRepo.List(gctx, params)
		if err != nil {
			return fmt.Errorf("list events: %w", err)
		}
		page.Events = events
		return nil
	})
	g.Go(func() error {
		total, err := s.eventRepo.Count(gctx)
		if err != nil {
			return fmt.Errorf("count events: %w", err)
		}
		page.Total = total
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return page, nil
}

func (s *eventService) ListSimilarEvents(ctx context.Context, slug string, limit int) ([]*domain.Event, error) {
	event, err := s.GetEventBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	limit = min(limit, MaxSimilarLimit)
	if len(event.Tags) == 0 {
		return []*domain.Event{}, nil
	}
	events, err := s.eventRepo.ListSimilar(ctx, event.Slug, event.Tags, limit)
	if err != nil {
		return nil, fmt.Errorf("list similar events: %w", err)
	}
	return events, nil
}
