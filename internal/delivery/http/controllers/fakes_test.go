package controllers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"devevent/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var errBoom = errors.New("boom")

// fakeEventService implements domain.EventService over a slug-keyed map.
type fakeEventService struct {
	events        map[string]*domain.Event // slug -> event
	createErr     error
	getErr        error
	listErr       error
	similarErr    error
	lastInput     *domain.EventInput
	lastParams    domain.PaginationParams
	lastLimit     int
	similarResult []*domain.Event
	total         int
}

func newFakeEventService(events ...*domain.Event) *fakeEventService {
	f := &fakeEventService{events: make(map[string]*domain.Event)}
	for _, e := range events {
		f.events[e.Slug] = e
	}
	return f
}

func (f *fakeEventService) CreateEvent(ctx context.Context, input *domain.EventInput) (*domain.Event, error) {
	f.lastInput = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	e := &domain.Event{ID: "evt-1", Title: input.Title, Slug: "created", Image: input.Image, Tags: input.Tags, Agenda: input.Agenda}
	f.events[e.Slug] = e
	return e, nil
}

func (f *fakeEventService) GetEventBySlug(ctx context.Context, slug string) (*domain.Event, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return nil, domain.NewValidationError("slug", "Slug cannot be empty")
	}
	if e, ok := f.events[slug]; ok {
		return e, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) GetEventByID(ctx context.Context, id string) (*domain.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeEventService) ListEvents(ctx context.Context, params domain.PaginationParams) (*domain.EventPage, error) {
	f.lastParams = params
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []*domain.Event
	for _, e := range f.events {
		out = append(out, e)
	}
	return &domain.EventPage{Events: out, Total: f.total, Pagination: params}, nil
}

func (f *fakeEventService) ListSimilarEvents(ctx context.Context, slug string, limit int) ([]*domain.Event, error) {
	f.lastLimit = limit
	if f.similarErr != nil {
		return nil, f.similarErr
	}
	if _, err := f.GetEventBySlug(ctx, slug); err != nil {
		return nil, err
	}
	return f.similarResult, nil
}

// fakeBookingService implements domain.BookingService.
type fakeBookingService struct {
	err       error
	countErr  error
	count     int
	lastEvent string
	lastSlug  string
	lastEmail string
}

func (f *fakeBookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	f.lastEvent, f.lastEmail = eventID, email
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Booking{ID: "bkg-1", EventID: eventID, Email: email}, nil
}

func (f *fakeBookingService) CreateBookingBySlug(ctx context.Context, slug, email string) (*domain.Booking, error) {
	f.lastSlug, f.lastEmail = slug, email
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Booking{ID: "bkg-2", EventID: "evt-1", Email: email}, nil
}

func (f *fakeBookingService) CountBookings(ctx context.Context, eventID string) (int, error) {
	f.lastEvent = eventID
	return f.count, f.countErr
}

// fakeImageStore implements domain.ImageStore.
type fakeImageStore struct {
	err      error
	calls    int
	lastName string
	lastData []byte
}

func (f *fakeImageStore) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	f.calls++
	f.lastName, f.lastData = filename, data
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.test/events/" + filename, nil
}

// fakeCalendar implements domain.CalendarRenderer.
type fakeCalendar struct {
	err error
}

func (f fakeCalendar) RenderEvent(event *domain.Event) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("BEGIN:VCALENDAR\r\nSUMMARY:" + event.Title + "\r\nEND:VCALENDAR\r\n"), nil
}
