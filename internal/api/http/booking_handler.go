package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"rentalmarket-backend/internal/domain"
	"rentalmarket-backend/internal/service"
)

type BookingHandler struct {
	bookingSvc service.BookingService
}

func NewBookingHandler(bookingSvc service.BookingService) *BookingHandler {
	return &BookingHandler{bookingSvc: bookingSvc}
}

type updateStatusRequest struct {
	Status    string `json:"status"`
	Recompute bool   `json:"recompute"`
}

type deleteBookingsRequest struct {
	IDs []string `json:"ids"`
}

type listBookingsResponse struct {
	Bookings   []domain.Booking `json:"bookings"`
	TotalCount int32            `json:"total_count"`
}

type cancellationFeeResponse struct {
	BookingID string          `json:"booking_id"`
	Fee       decimal.Decimal `json:"fee"`
}

// Quote prices a prospective booking. Anyone may ask for a quote.
func (h *BookingHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req service.QuoteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	quote, err := h.bookingSvc.Quote(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req service.CreateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if actor.Role != domain.RoleCustomer && req.DriverID == "" {
		writeError(w, fmt.Errorf("%w: driver_id is required", errBadRequest))
		return
	}

	booking, err := h.bookingSvc.CreateBooking(r.Context(), actor, req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	booking, err := h.bookingSvc.GetBooking(r.Context(), actor, mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	filter, err := parseBookingFilter(r)
	if err != nil {
		writeError(w, err)
		return
	}
	bookings, count, err := h.bookingSvc.ListBookings(r.Context(), actor, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	if bookings == nil {
		bookings = []domain.Booking{}
	}
	writeJSON(w, http.StatusOK, listBookingsResponse{Bookings: bookings, TotalCount: count})
}

func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	status, err := domain.ParseBookingStatus(req.Status)
	if err != nil {
		writeError(w, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	booking, err := h.bookingSvc.UpdateStatus(r.Context(), actor, mux.Vars(r)["id"], status, req.Recompute)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func (h *BookingHandler) CancellationFee(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	id := mux.Vars(r)["id"]
	fee, err := h.bookingSvc.CancellationFee(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cancellationFeeResponse{BookingID: id, Fee: fee})
}

func (h *BookingHandler) DeleteBookings(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}
	var req deleteBookingsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}
	deleted, err := h.bookingSvc.DeleteBookings(r.Context(), actor, req.IDs)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func parseBookingFilter(r *http.Request) (domain.BookingFilter, error) {
	q := r.URL.Query()
	filter := domain.BookingFilter{
		SupplierID: q.Get("supplier_id"),
		DriverID:   q.Get("driver_id"),
		ItemID:     q.Get("item_id"),
	}
	if raw := q.Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			status, err := domain.ParseBookingStatus(strings.TrimSpace(s))
			if err != nil {
				return filter, fmt.Errorf("%w: %v", errBadRequest, err)
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}

	var err error
	if filter.Page, err = queryInt32(q.Get("page")); err != nil {
		return filter, err
	}
	if filter.PageSize, err = queryInt32(q.Get("page_size")); err != nil {
		return filter, err
	}
	return filter, nil
}

func queryInt32(raw string) (int32, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid number %q", errBadRequest, raw)
	}
	return int32(v), nil
}
