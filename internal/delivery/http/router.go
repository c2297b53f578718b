package http

import (
	"net/http"

	"devevent/internal/delivery/http/controllers"
	"devevent/internal/delivery/http/helpers"
	"devevent/internal/delivery/http/middleware"

	httpSwagger "github.com/swaggo/http-swagger"
)

// NewRouter initializes the HTTP router with all application routes.
// limiter guards the write endpoints; uploads serves locally stored images
// and may be nil.
func NewRouter(
	eventController *controllers.EventController,
	bookingController *controllers.BookingController,
	limiter *middleware.RateLimiter,
	uploads http.Handler,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("POST /events", limiter.Limit(eventController.CreateEvent))
	mux.HandleFunc("GET /events/{$}", eventController.MissingSlug)
	mux.HandleFunc("GET /events/{slug}", eventController.GetEventBySlug)
	mux.HandleFunc("GET /events/{slug}/similar", eventController.ListSimilarEvents)
	mux.HandleFunc("GET /events/{slug}/calendar.ics", eventController.ExportCalendar)

	// Bookings
	mux.HandleFunc("POST /events/{slug}/bookings", limiter.Limit(bookingController.CreateBookingForEvent))
	mux.HandleFunc("POST /bookings", limiter.Limit(bookingController.CreateBooking))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if uploads != nil {
		mux.Handle("GET /uploads/", uploads)
	}

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
