package http

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"rentalmarket-backend/internal/logger"
	"rentalmarket-backend/internal/service"
)

const defaultPageSize int32 = 20

// NewRouter wires every API route onto a fresh mux router
func NewRouter(bookingSvc service.BookingService, itemSvc service.ItemService) *mux.Router {
	router := mux.NewRouter()
	router.Use(loggingMiddleware)
	router.HandleFunc("/healthz", health).Methods("GET")

	RegisterBookingRoutes(router, bookingSvc)
	RegisterItemRoutes(router, itemSvc)
	return router
}

func RegisterBookingRoutes(router *mux.Router, bookingSvc service.BookingService) {
	h := NewBookingHandler(bookingSvc)
	router.HandleFunc("/api/v1/quotes", h.Quote).Methods("POST")
	router.HandleFunc("/api/v1/bookings", h.CreateBooking).Methods("POST")
	router.HandleFunc("/api/v1/bookings", h.ListBookings).Methods("GET")
	router.HandleFunc("/api/v1/bookings", h.DeleteBookings).Methods("DELETE")
	router.HandleFunc("/api/v1/bookings/{id}", h.GetBooking).Methods("GET")
	router.HandleFunc("/api/v1/bookings/{id}/status", h.UpdateStatus).Methods("PUT")
	router.HandleFunc("/api/v1/bookings/{id}/cancellation-fee", h.CancellationFee).Methods("GET")
}

func RegisterItemRoutes(router *mux.Router, itemSvc service.ItemService) {
	h := NewItemHandler(itemSvc)
	router.HandleFunc("/api/v1/items", h.CreateItem).Methods("POST")
	router.HandleFunc("/api/v1/items", h.ListItems).Methods("GET")
	router.HandleFunc("/api/v1/items/{id}", h.GetItem).Methods("GET")
	router.HandleFunc("/api/v1/items/{id}", h.UpdateItem).Methods("PUT")
	router.HandleFunc("/api/v1/items/{id}", h.DeleteItem).Methods("DELETE")
	router.HandleFunc("/api/v1/items/{id}/options", h.DescribeOptions).Methods("GET")
	router.HandleFunc("/api/v1/items/{id}/referenced", h.IsReferenced).Methods("GET")
}

func health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler) http.Handler {
	log := logger.WithComponent("http")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.DebugContext(r.Context(), "HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"role", r.Header.Get(HeaderActorRole),
			"duration", time.Since(start))
	})
}
