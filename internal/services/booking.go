package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"devevent/internal/domain"
	"devevent/internal/validation"

	"github.com/google/uuid"
)

type bookingService struct {
	eventRepo      domain.EventRepository
	bookingRepo    domain.BookingRepository
	emailService   domain.EmailService
	logger         *slog.Logger
	contextTimeout time.Duration
}

// NewBookingService creates a BookingService. emailService may be nil, in
// which case no confirmation is sent.
func NewBookingService(
	eventRepo domain.EventRepository,
	bookingRepo domain.BookingRepository,
	emailService domain.EmailService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookingService {
	return &bookingService{
		eventRepo:      eventRepo,
		bookingRepo:    bookingRepo,
		emailService:   emailService,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, eventID, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	eventID = strings.TrimSpace(eventID)
	verr := &domain.ValidationError{}
	if eventID == "" {
		verr.Add("eventId", "Event ID is required")
	}
	email = checkEmail(verr, email)
	if err := verr.Err(); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: event with ID %s does not exist", domain.ErrEventNotExist, eventID)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.book(ctx, event, email)
}

func (s *bookingService) CreateBookingBySlug(ctx context.Context, slug, email string) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slug = validation.NormalizeSlug(slug)
	verr := &domain.ValidationError{}
	if slug == "" {
		verr.Add("slug", "Slug cannot be empty")
	}
	email = checkEmail(verr, email)
	if err := verr.Err(); err != nil {
		return nil, err
	}

	event, err := s.eventRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: event with slug %s does not exist", domain.ErrEventNotExist, slug)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.book(ctx, event, email)
}

func (s *bookingService) CountBookings(ctx context.Context, eventID string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	n, err := s.bookingRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("count bookings: %w", err)
	}
	return n, nil
}

func checkEmail(verr *domain.ValidationError, email string) string {
	email = validation.NormalizeEmail(email)
	switch {
	case email == "":
		verr.Add("email", "Email is required")
	case !validation.IsValidEmail(email):
		verr.Add("email", "Please provide a valid email address")
	}
	return email
}

func (s *bookingService) book(ctx context.Context, event *domain.Event, email string) (*domain.Booking, error) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	booking := domain.NewBooking(event.ID, email, now, now)
	booking.ID = uuid.NewString()
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	s.sendConfirmation(ctx, event, booking)
	return booking, nil
}

func (s *bookingService) sendConfirmation(ctx context.Context, event *domain.Event, booking *domain.Booking) {
	if s.emailService == nil {
		return
	}
	err := s.emailService.SendBookingConfirmation(ctx, &domain.BookingConfirmationEmailData{
		Email:      booking.Email,
		EventTitle: event.Title,
		EventSlug:  event.Slug,
		Date:       event.Date,
		Time:       event.Time,
		Venue:      event.Venue,
		Location:   event.Location,
		Mode:       string(event.Mode),
	})
	if err != nil {
		s.logger.WarnContext(ctx, "booking confirmation not sent", "booking_id", booking.ID, "event_id", event.ID, "err", err)
	}
}
