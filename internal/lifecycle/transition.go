// Package lifecycle holds the booking status rules: which statuses exist, which
// actor may move a booking between them, and the item reference gate used before
// destructive item edits.
package lifecycle

import (
	"errors"
	"fmt"

	"rentalmarket-backend/internal/domain"
)

var ErrInvalidTransition = errors.New("invalid booking status transition")

// InvalidTransitionError carries the rejected request for diagnostics
type InvalidTransitionError struct {
	Current   domain.BookingStatus
	Requested domain.BookingStatus
	Actor     domain.Role
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking status transition from %q to %q by %q", e.Current, e.Requested, e.Actor)
}

func (e *InvalidTransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// Statuses lists every booking status
var Statuses = []domain.BookingStatus{
	domain.BookingStatusVoid,
	domain.BookingStatusPending,
	domain.BookingStatusDeposit,
	domain.BookingStatusPaid,
	domain.BookingStatusPaidInFull,
	domain.BookingStatusReserved,
	domain.BookingStatusCancelled,
}

// customerCancellable are the statuses a customer may cancel from
var customerCancellable = map[domain.BookingStatus]bool{
	domain.BookingStatusPending: true,
	domain.BookingStatusDeposit: true,
}

// Transition validates moving a booking from current to requested on behalf of
// actor and returns the new status.
//
// Admins and suppliers may set any status, in any order, as long as the booking
// is not in a terminal status. Customers may only cancel pending or deposit
// bookings. Ownership of the booking is checked by the caller.
func Transition(current, requested domain.BookingStatus, actor domain.Role) (domain.BookingStatus, error) {
	if !current.IsValid() || !requested.IsValid() || current.IsTerminal() {
		return "", invalid(current, requested, actor)
	}

	switch actor {
	case domain.RoleAdmin, domain.RoleSupplier:
		return requested, nil
	case domain.RoleCustomer:
		if requested == domain.BookingStatusCancelled && customerCancellable[current] {
			return requested, nil
		}
	}
	return "", invalid(current, requested, actor)
}

// CanTransition reports whether Transition would accept the request
func CanTransition(current, requested domain.BookingStatus, actor domain.Role) bool {
	_, err := Transition(current, requested, actor)
	return err == nil
}

// AllowedTargets lists the statuses actor may move a booking in current to
func AllowedTargets(current domain.BookingStatus, actor domain.Role) []domain.BookingStatus {
	var targets []domain.BookingStatus
	for _, s := range Statuses {
		if CanTransition(current, s, actor) {
			targets = append(targets, s)
		}
	}
	return targets
}

// IsReferenced reports whether any booking, in any status, references itemID.
func IsReferenced(itemID string, bookings []domain.Booking) bool {
	for i := range bookings {
		if bookings[i].ItemID == itemID {
			return true
		}
	}
	return false
}

func invalid(current, requested domain.BookingStatus, actor domain.Role) error {
	return &InvalidTransitionError{Current: current, Requested: requested, Actor: actor}
}
