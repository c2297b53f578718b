package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"devevent/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

// NewBookingRepository returns a domain.BookingRepository implemented with Postgres.
func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{
		DB: db,
	}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, event_id, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, b.ID, b.EventID, b.Email, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return domain.ErrEventNotExist
		}
		return fmt.Errorf("insert booking: %w", mapError(err))
	}
	return nil
}

func (r *bookingRepository) CountByEventID(ctx context.Context, eventID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		return 0, mapError(err)
	}
	return n, nil
}
