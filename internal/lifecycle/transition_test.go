package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentalmarket-backend/internal/domain"
)

var nonTerminal = []domain.BookingStatus{
	domain.BookingStatusPending,
	domain.BookingStatusDeposit,
	domain.BookingStatusPaid,
	domain.BookingStatusPaidInFull,
	domain.BookingStatusReserved,
}

var roles = []domain.Role{domain.RoleAdmin, domain.RoleSupplier, domain.RoleCustomer}

func TestTransition_FromTerminal(t *testing.T) {
	for _, from := range []domain.BookingStatus{domain.BookingStatusCancelled, domain.BookingStatusVoid} {
		for _, to := range Statuses {
			for _, actor := range roles {
				_, err := Transition(from, to, actor)
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s by %s", from, to, actor)
			}
		}
	}
}

func TestTransition_AdminAndSupplier(t *testing.T) {
	for _, actor := range []domain.Role{domain.RoleAdmin, domain.RoleSupplier} {
		for _, from := range nonTerminal {
			for _, to := range Statuses {
				got, err := Transition(from, to, actor)
				require.NoError(t, err, "%s -> %s by %s", from, to, actor)
				assert.Equal(t, to, got)
			}
		}
	}
}

func TestTransition_Customer(t *testing.T) {
	t.Run("Cancel pending", func(t *testing.T) {
		got, err := Transition(domain.BookingStatusPending, domain.BookingStatusCancelled, domain.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingStatusCancelled, got)
	})

	t.Run("Cancel deposit", func(t *testing.T) {
		_, err := Transition(domain.BookingStatusDeposit, domain.BookingStatusCancelled, domain.RoleCustomer)
		assert.NoError(t, err)
	})

	t.Run("Cancel paid is rejected", func(t *testing.T) {
		_, err := Transition(domain.BookingStatusPaid, domain.BookingStatusCancelled, domain.RoleCustomer)
		assert.ErrorIs(t, err, ErrInvalidTransition)

		var invalidErr *InvalidTransitionError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, domain.BookingStatusPaid, invalidErr.Current)
		assert.Equal(t, domain.BookingStatusCancelled, invalidErr.Requested)
		assert.Equal(t, domain.RoleCustomer, invalidErr.Actor)
	})

	t.Run("Admin cancels paid", func(t *testing.T) {
		_, err := Transition(domain.BookingStatusPaid, domain.BookingStatusCancelled, domain.RoleAdmin)
		assert.NoError(t, err)
	})

	t.Run("Any other change is rejected", func(t *testing.T) {
		for _, from := range nonTerminal {
			for _, to := range Statuses {
				if to == domain.BookingStatusCancelled {
					continue
				}
				_, err := Transition(from, to, domain.RoleCustomer)
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		}
	})
}

func TestTransition_SameStatus(t *testing.T) {
	got, err := Transition(domain.BookingStatusPaid, domain.BookingStatusPaid, domain.RoleSupplier)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusPaid, got)

	_, err = Transition(domain.BookingStatusCancelled, domain.BookingStatusCancelled, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransition_UnknownInputs(t *testing.T) {
	_, err := Transition("archived", domain.BookingStatusPaid, domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Transition(domain.BookingStatusPending, "archived", domain.RoleAdmin)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = Transition(domain.BookingStatusPending, domain.BookingStatusPaid, "guest")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestAllowedTargets(t *testing.T) {
	assert.Equal(t, []domain.BookingStatus{domain.BookingStatusCancelled},
		AllowedTargets(domain.BookingStatusDeposit, domain.RoleCustomer))
	assert.Empty(t, AllowedTargets(domain.BookingStatusReserved, domain.RoleCustomer))
	assert.Len(t, AllowedTargets(domain.BookingStatusReserved, domain.RoleAdmin), len(Statuses))
	assert.Empty(t, AllowedTargets(domain.BookingStatusVoid, domain.RoleAdmin))
}

func TestIsReferenced(t *testing.T) {
	bookings := []domain.Booking{
		{ID: "b1", ItemID: "car-1", Status: domain.BookingStatusPaid},
		{ID: "b2", ItemID: "car-2", Status: domain.BookingStatusCancelled},
	}

	assert.True(t, IsReferenced("car-1", bookings))
	assert.True(t, IsReferenced("car-2", bookings), "cancelled bookings still reference the item")
	assert.False(t, IsReferenced("car-3", bookings))
	assert.False(t, IsReferenced("car-1", nil))
}
