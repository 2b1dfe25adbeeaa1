package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusVoid       BookingStatus = "void"
	BookingStatusPending    BookingStatus = "pending"
	BookingStatusDeposit    BookingStatus = "deposit"
	BookingStatusPaid       BookingStatus = "paid"
	BookingStatusPaidInFull BookingStatus = "paid_in_full"
	BookingStatusReserved   BookingStatus = "reserved"
	BookingStatusCancelled  BookingStatus = "cancelled"
)

var bookingStatuses = map[BookingStatus]bool{
	BookingStatusVoid:       true,
	BookingStatusPending:    false,
	BookingStatusDeposit:    false,
	BookingStatusPaid:       false,
	BookingStatusPaidInFull: false,
	BookingStatusReserved:   false,
	BookingStatusCancelled:  true,
}

// IsValid reports whether s is a known booking status.
func (s BookingStatus) IsValid() bool {
	_, ok := bookingStatuses[s]
	return ok
}

// IsTerminal reports whether no transition may leave s.
func (s BookingStatus) IsTerminal() bool {
	return bookingStatuses[s]
}

func (s BookingStatus) String() string {
	return string(s)
}

func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSupplier Role = "supplier"
	RoleCustomer Role = "customer"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSupplier, RoleCustomer:
		return true
	}
	return false
}

func ParseRole(s string) (Role, error) {
	role := Role(s)
	if !role.IsValid() {
		return "", fmt.Errorf("invalid role: %s", s)
	}
	return role, nil
}

// Actor is the authenticated caller. ID is the supplier ID for suppliers and the
// driver ID for customers.
type Actor struct {
	Role Role   `json:"role"`
	ID   string `json:"id"`
}

type OptionSet struct {
	Cancellation          bool `json:"cancellation" db:"cancellation"`
	Amendments            bool `json:"amendments" db:"amendments"`
	TheftProtection       bool `json:"theft_protection" db:"theft_protection"`
	CollisionDamageWaiver bool `json:"collision_damage_waiver" db:"collision_damage_waiver"`
	FullInsurance         bool `json:"full_insurance" db:"full_insurance"`
	AdditionalDriver      bool `json:"additional_driver" db:"additional_driver"`
}

type AdditionalDriver struct {
	ID        string    `json:"id" db:"id"`
	BookingID string    `json:"booking_id" db:"booking_id"`
	FullName  string    `json:"full_name" db:"full_name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"phone" db:"phone"`
	BirthDate time.Time `json:"birth_date" db:"birth_date"`
}

type Booking struct {
	ID                string        `json:"id" db:"id"`
	ItemID            string        `json:"item_id" db:"item_id"`
	SupplierID        string        `json:"supplier_id" db:"supplier_id"`
	DriverID          string        `json:"driver_id" db:"driver_id"`
	PickupLocationID  string        `json:"pickup_location_id" db:"pickup_location_id"`
	DropOffLocationID string        `json:"drop_off_location_id" db:"drop_off_location_id"`
	From              time.Time     `json:"from" db:"from_date"`
	To                time.Time     `json:"to" db:"to_date"`
	Status            BookingStatus `json:"status" db:"status"`
	OptionSet         `json:"options"`
	// Total in minor currency units: base rate plus purchased options.
	Price            decimal.Decimal   `json:"price" db:"price"`
	AdditionalDriver *AdditionalDriver `json:"additional_driver,omitempty" db:"-"`
	CreatedAt        time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at" db:"updated_at"`
}

type BookingFilter struct {
	SupplierID string
	DriverID   string
	ItemID     string
	Statuses   []BookingStatus
	Page       int32
	PageSize   int32
}
