package domain

import (
	"context"
	"time"
)

// EventMode is the attendance format of an event.
type EventMode string

const (
	ModeOnline  EventMode = "online"
	ModeOffline EventMode = "offline"
	ModeHybrid  EventMode = "hybrid"
)

// Valid reports whether m is one of the supported modes.
func (m EventMode) Valid() bool {
	switch m {
	case ModeOnline, ModeOffline, ModeHybrid:
		return true
	}
	return false
}

// Event represents a listed developer event.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Overview    string    `json:"overview"`
	Image       string    `json:"image"`
	Venue       string    `json:"venue"`
	Location    string    `json:"location"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Mode        EventMode `json:"mode"`
	Audience    string    `json:"audience"`
	Organizer   string    `json:"organizer"`
	Agenda      []string  `json:"agenda"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// EventInput carries the raw, caller-supplied fields of a new event before
// normalization. Image is the already uploaded image URL.
type EventInput struct {
	Title       string
	Description string
	Overview    string
	Image       string
	Venue       string
	Location    string
	Date        string
	Time        string
	Mode        string
	Audience    string
	Organizer   string
	Agenda      []string
	Tags        []string
}

// EventPage is one page of events plus the total number of events.
type EventPage struct {
	Events     []*Event
	Total      int
	Pagination PaginationParams
}

// EventRepository defines the interface for event storage.
// Create returns ErrDuplicateSlug when the slug is taken; lookups return
// ErrNotFound on a miss.
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetBySlug(ctx context.Context, slug string) (*Event, error)
	List(ctx context.Context, params PaginationParams) ([]*Event, error)
	Count(ctx context.Context) (int, error)
	ListSimilar(ctx context.Context, excludeSlug string, tags []string, limit int) ([]*Event, error)
}

// EventService defines the business operations on events.
type EventService interface {
	CreateEvent(ctx context.Context, input *EventInput) (*Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*Event, error)
	GetEventByID(ctx context.Context, id string) (*Event, error)
	ListEvents(ctx context.Context, params PaginationParams) (*EventPage, error)
	ListSimilarEvents(ctx context.Context, slug string, limit int) ([]*Event, error)
}

// CalendarRenderer renders an event as an iCalendar document.
type CalendarRenderer interface {
	RenderEvent(event *Event) ([]byte, error)
}
