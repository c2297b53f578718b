package domain

import (
	"context"
	"time"
)

// Booking represents a seat reservation made by email for an event.
// swagger:model Booking
type Booking struct {
	ID        string    `json:"id"`
	EventID   string    `json:"eventId"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBooking creates a new Booking. ID is set by the service before persisting.
func NewBooking(eventID, email string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		EventID:   eventID,
		Email:     email,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingRepository defines storage operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	CountByEventID(ctx context.Context, eventID string) (int, error)
}

// BookingService defines the business operations on bookings.
type BookingService interface {
	CreateBooking(ctx context.Context, eventID, email string) (*Booking, error)
	CreateBookingBySlug(ctx context.Context, slug, email string) (*Booking, error)
	CountBookings(ctx context.Context, eventID string) (int, error)
}
