package mongodb

import (
	"context"
	"fmt"
	"time"

	"devevent/internal/domain"

	"go.mongodb.org/mongo-driver/bson"
)

type bookingDocument struct {
	ID        string    `bson:"_id"`
	EventID   string    `bson:"eventId"`
	Email     string    `bson:"email"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

type bookingRepository struct {
	src DatabaseSource
}

// NewBookingRepository returns a domain.BookingRepository backed by the bookings collection.
func NewBookingRepository(src DatabaseSource) domain.BookingRepository {
	return &bookingRepository{src: src}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	col, err := collection(ctx, r.src, bookingsCollection)
	if err != nil {
		return err
	}
	doc := bookingDocument{
		ID:        b.ID,
		EventID:   b.EventID,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
	if _, err := col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert booking: %w", mapError(err))
	}
	return nil
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	col, err := collection(ctx, r.src, bookingsCollection)
	if err != nil {
		return 0, err
	}
	n, err := col.CountDocuments(ctx, bson.D{{Key: "eventId", Value: eventID}})
	if err != nil {
		return 0, mapError(err)
	}
	return int(n), nil
}
