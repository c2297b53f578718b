package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
)

// CreateBookingRequest is the body of POST /bookings.
type CreateBookingRequest struct {
	EventID string `json:"eventId" validate:"required"`
	Email   string `json:"email" validate:"required"`
}

// Validate implements helpers.Validator.
func (req CreateBookingRequest) Validate() []domain.FieldError {
	return helpers.ValidateStruct(req)
}

// BookEventRequest is the body of POST /events/{slug}/bookings.
type BookEventRequest struct {
	Email string `json:"email" validate:"required"`
}

// Validate implements helpers.Validator.
func (req BookEventRequest) Validate() []domain.FieldError {
	return helpers.ValidateStruct(req)
}

// BookingResponse is the 201 body of both booking endpoints.
type BookingResponse struct {
	Message string          `json:"message"`
	Booking *domain.Booking `json:"booking"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
	Dev     bool
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService, dev bool) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
		Dev:     dev,
	}
}

// CreateBooking godoc
// @Summary Book an event by id
// @Description The email is trimmed and lowercased. A confirmation email is sent when mail is configured; failing to send it does not fail the booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Event id and attendee email"
// @Success 201 {object} controllers.BookingResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /bookings [post]
func (c *BookingController) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBooking(r.Context(), req.EventID, req.Email)
	c.respond(w, r, booking, err)
}

// CreateBookingForEvent godoc
// @Summary Book an event by slug
// @Tags bookings
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param booking body BookEventRequest true "Attendee email"
// @Success 201 {object} controllers.BookingResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events/{slug}/bookings [post]
func (c *BookingController) CreateBookingForEvent(w http.ResponseWriter, r *http.Request) {
	var req BookEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	booking, err := c.Service.CreateBookingBySlug(r.Context(), r.PathValue("slug"), req.Email)
	c.respond(w, r, booking, err)
}

func (c *BookingController) respond(w http.ResponseWriter, r *http.Request, booking *domain.Booking, err error) {
	var verr *domain.ValidationError
	switch {
	case err == nil:
		helpers.WriteJSONSuccess(w, http.StatusCreated, BookingResponse{
			Message: "Booking created successfully",
			Booking: booking,
		})
	case errors.As(err, &verr):
		helpers.WriteValidationError(w, verr.Fields)
	case errors.Is(err, domain.ErrEventNotExist):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "Event does not exist")
	default:
		writeInternalError(c.Logger, c.Dev, w, r, "Booking failed", err)
	}
}
