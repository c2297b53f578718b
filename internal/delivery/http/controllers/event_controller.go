package controllers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"devevent/internal/delivery/http/helpers"
	"devevent/internal/domain"
	"devevent/internal/services"
)

// multipartMemory is the part of a multipart body kept in memory; the rest
// spills to temporary files.
const multipartMemory = 8 << 20

// CreateEventForm holds the scalar fields of the POST /events multipart form.
// Agenda and Tags are collected from repeated fields, a JSON array, or a
// delimited string.
type CreateEventForm struct {
	Title       string   `form:"title" validate:"required,min=3"`
	Description string   `form:"description" validate:"required,min=10"`
	Overview    string   `form:"overview" validate:"required"`
	Venue       string   `form:"venue" validate:"required"`
	Location    string   `form:"location" validate:"required"`
	Date        string   `form:"date" validate:"required"`
	Time        string   `form:"time" validate:"required"`
	Mode        string   `form:"mode" validate:"required"`
	Audience    string   `form:"audience" validate:"required"`
	Organizer   string   `form:"organizer" validate:"required"`
	Agenda      []string `form:"agenda" validate:"min=1"`
	Tags        []string `form:"tags" validate:"min=1"`
}

func newCreateEventForm(r *http.Request) CreateEventForm {
	f := r.MultipartForm.Value
	get := func(key string) string {
		if v := f[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	return CreateEventForm{
		Title:       get("title"),
		Description: get("description"),
		Overview:    get("overview"),
		Venue:       get("venue"),
		Location:    get("location"),
		Date:        get("date"),
		Time:        get("time"),
		Mode:        get("mode"),
		Audience:    get("audience"),
		Organizer:   get("organizer"),
		Agenda:      helpers.ParseListField(f["agenda"], "\n"),
		Tags:        helpers.ParseListField(f["tags"], ","),
	}
}

func (f CreateEventForm) input(image string) *domain.EventInput {
	return &domain.EventInput{
		Title:       f.Title,
		Description: f.Description,
		Overview:    f.Overview,
		Image:       image,
		Venue:       f.Venue,
		Location:    f.Location,
		Date:        f.Date,
		Time:        f.Time,
		Mode:        f.Mode,
		Audience:    f.Audience,
		Organizer:   f.Organizer,
		Agenda:      f.Agenda,
		Tags:        f.Tags,
	}
}

// CreateEventResponse is the 201 body of POST /events.
type CreateEventResponse struct {
	Message string        `json:"message"`
	Event   *domain.Event `json:"event"`
}

// EventDetailResponse is the 200 body of GET /events/{slug}.
type EventDetailResponse struct {
	Message  string        `json:"message"`
	Event    *domain.Event `json:"event"`
	Bookings int           `json:"bookings"`
}

// EventListData is the data member of EventListResponse.
type EventListData struct {
	Events     []*domain.Event        `json:"events"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// EventListResponse is the 200 body of GET /events.
type EventListResponse struct {
	Message string        `json:"message"`
	Data    EventListData `json:"data"`
}

// SimilarEventsResponse is the 200 body of GET /events/{slug}/similar.
type SimilarEventsResponse struct {
	Message string          `json:"message"`
	Events  []*domain.Event `json:"events"`
}

// EventController serves the event read and write endpoints.
type EventController struct {
	Logger         *slog.Logger
	Service        domain.EventService
	Bookings       domain.BookingService
	Images         domain.ImageStore
	Calendar       domain.CalendarRenderer
	Dev            bool
	MaxUploadBytes int64
}

// NewEventController wires an EventController. dev enables error detail in
// 500 responses; maxUploadBytes caps the POST /events body.
func NewEventController(logger *slog.Logger, svc domain.EventService, bookings domain.BookingService, images domain.ImageStore, calendar domain.CalendarRenderer, dev bool, maxUploadBytes int64) *EventController {
	return &EventController{
		Logger:         logger,
		Service:        svc,
		Bookings:       bookings,
		Images:         images,
		Calendar:       calendar,
		Dev:            dev,
		MaxUploadBytes: maxUploadBytes,
	}
}

// CreateEvent godoc
// @Summary Create an event
// @Description Multipart form with the event fields and an image file. The image is stored first and its URL saved on the event. agenda and tags accept repeated fields, a JSON array, or a newline (agenda) or comma (tags) separated string.
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title (min 3 characters)"
// @Param description formData string true "Description (min 10 characters)"
// @Param overview formData string true "Overview"
// @Param venue formData string true "Venue"
// @Param location formData string true "Location"
// @Param date formData string true "Date, e.g. 2025-06-15"
// @Param time formData string true "Time, HH:MM"
// @Param mode formData string true "online, offline or hybrid"
// @Param audience formData string true "Audience"
// @Param organizer formData string true "Organizer"
// @Param agenda formData []string true "Agenda items"
// @Param tags formData []string true "Tags"
// @Param image formData file true "Cover image (jpeg, png, gif or webp)"
// @Success 201 {object} controllers.CreateEventResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 409 {object} helpers.ErrorResponse "code: conflict"
// @Failure 429 {object} helpers.ErrorResponse "code: too_many_requests"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	if c.MaxUploadBytes > 0 {
		if r.ContentLength > c.MaxUploadBytes {
			c.writeTooLarge(w)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.writeTooLarge(w)
			return
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Invalid form data")
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile("image")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	form := newCreateEventForm(r)
	if fields := helpers.ValidateStruct(form); len(fields) > 0 {
		helpers.WriteValidationError(w, fields)
		return
	}
	// Reject bad fields before the image is stored. The image URL is not
	// known yet, so any non-blank value stands in for it.
	if _, err := services.NormalizeEvent(form.input("pending")); err != nil {
		c.writeCreateError(w, r, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.writeCreateError(w, r, fmt.Errorf("read image: %w", err))
		return
	}
	imageURL, err := c.Images.UploadImage(r.Context(), header.Filename, data)
	if err != nil {
		if errors.Is(err, domain.ErrUnsupportedImage) {
			helpers.WriteValidationError(w, []domain.FieldError{{
				Field:   "image",
				Message: "Image must be a JPEG, PNG, GIF or WebP file",
			}})
			return
		}
		c.writeCreateError(w, r, fmt.Errorf("upload image: %w", err))
		return
	}

	event, err := c.Service.CreateEvent(r.Context(), form.input(imageURL))
	if err != nil {
		c.writeCreateError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, CreateEventResponse{
		Message: "Event created successfully",
		Event:   event,
	})
}

func (c *EventController) writeTooLarge(w http.ResponseWriter) {
	helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodeBadRequest,
		fmt.Sprintf("Request body exceeds %d bytes", c.MaxUploadBytes))
}

func (c *EventController) writeCreateError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		helpers.WriteValidationError(w, verr.Fields)
	case errors.Is(err, domain.ErrDuplicateSlug):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, "An event with this title already exists")
	default:
		c.internalError(w, r, "Event creation failed", err)
	}
}

// GetEventBySlug godoc
// @Summary Get an event by slug
// @Description Slug matching is case-insensitive. bookings is the number of bookings made for the event.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Success 200 {object} controllers.EventDetailResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events/{slug} [get]
func (c *EventController) GetEventBySlug(w http.ResponseWriter, r *http.Request) {
	event, ok := c.lookup(w, r)
	if !ok {
		return
	}
	count, err := c.Bookings.CountBookings(r.Context(), event.ID)
	if err != nil {
		c.Logger.WarnContext(r.Context(), "count bookings failed", "event_id", event.ID, "err", err)
		count = 0
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventDetailResponse{
		Message:  "Event fetched successfully",
		Event:    event,
		Bookings: count,
	})
}

// MissingSlug answers GET /events/ with no slug.
func (c *EventController) MissingSlug(w http.ResponseWriter, r *http.Request) {
	helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Invalid or missing slug parameter")
}

// ListEvents godoc
// @Summary List events
// @Description Newest first. page is clamped to 1..1000 and limit to 1..100; missing or non-numeric values use the defaults (1 and 10).
// @Tags events
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} controllers.EventListResponse
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	params := helpers.ParsePagination(r)
	page, err := c.Service.ListEvents(r.Context(), params)
	if err != nil {
		c.internalError(w, r, "Event fetching failed", err)
		return
	}
	events := page.Events
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, EventListResponse{
		Message: "Events fetched successfully",
		Data: EventListData{
			Events:     events,
			Pagination: helpers.NewPaginationMeta(page.Pagination.Page, page.Pagination.Limit, page.Total),
		},
	})
}

// ListSimilarEvents godoc
// @Summary List similar events
// @Description Events sharing at least one tag with the given event, newest first.
// @Tags events
// @Produce json
// @Param slug path string true "Event slug"
// @Param limit query int false "Maximum number of events (1..12)" default(3)
// @Success 200 {object} controllers.SimilarEventsResponse
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events/{slug}/similar [get]
func (c *EventController) ListSimilarEvents(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Slug cannot be empty")
		return
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil {
		limit = 0
	}
	events, err := c.Service.ListSimilarEvents(r.Context(), slug, limit)
	if err != nil {
		c.writeLookupError(w, r, slug, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SimilarEventsResponse{
		Message: "Similar events fetched successfully",
		Events:  events,
	})
}

// ExportCalendar godoc
// @Summary Download an event as iCalendar
// @Tags events
// @Produce text/calendar
// @Param slug path string true "Event slug"
// @Success 200 {string} string "VCALENDAR document"
// @Failure 400 {object} helpers.ErrorResponse "code: bad_request"
// @Failure 404 {object} helpers.ErrorResponse "code: not_found"
// @Failure 500 {object} helpers.ErrorResponse "code: internal_error"
// @Router /events/{slug}/calendar.ics [get]
func (c *EventController) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	event, ok := c.lookup(w, r)
	if !ok {
		return
	}
	body, err := c.Calendar.RenderEvent(event)
	if err != nil {
		c.internalError(w, r, "Calendar export failed", err)
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.ics"`, event.Slug))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// lookup resolves the {slug} path value, writing the error response and
// returning false when it cannot.
func (c *EventController) lookup(w http.ResponseWriter, r *http.Request) (*domain.Event, bool) {
	slug := strings.TrimSpace(r.PathValue("slug"))
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "Slug cannot be empty")
		return nil, false
	}
	event, err := c.Service.GetEventBySlug(r.Context(), slug)
	if err != nil {
		c.writeLookupError(w, r, slug, err)
		return nil, false
	}
	return event, true
}

func (c *EventController) writeLookupError(w http.ResponseWriter, r *http.Request, slug string, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		helpers.WriteValidationError(w, verr.Fields)
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound,
			fmt.Sprintf("Event with slug %q not found", slug))
	case errors.Is(err, domain.ErrConnectivity):
		c.internalError(w, r, "Database connection failed", err)
	default:
		c.internalError(w, r, "Failed to fetch event", err)
	}
}

// internalError logs err and writes a 500 with message. The error text is
// only exposed in development.
func (c *EventController) internalError(w http.ResponseWriter, r *http.Request, message string, err error) {
	writeInternalError(c.Logger, c.Dev, w, r, message, err)
}

func writeInternalError(logger *slog.Logger, dev bool, w http.ResponseWriter, r *http.Request, message string, err error) {
	logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	if dev {
		helpers.WriteJSONErrorDetail(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, message, err.Error())
		return
	}
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, message)
}
