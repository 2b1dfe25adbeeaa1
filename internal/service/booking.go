package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"rentalmarket-backend/internal/domain"
	"rentalmarket-backend/internal/lifecycle"
	"rentalmarket-backend/internal/logger"
	"rentalmarket-backend/internal/pricing"
	"rentalmarket-backend/internal/repository"
)

type bookingService struct {
	bookingRepo     repository.BookingRepository
	itemRepo        repository.ItemRepository
	supplierRepo    repository.SupplierRepository
	converter       pricing.Converter
	defaultPageSize int32
}

func NewBookingService(
	bookingRepo repository.BookingRepository,
	itemRepo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
	converter pricing.Converter,
	defaultPageSize int32,
) BookingService {
	return &bookingService{
		bookingRepo:     bookingRepo,
		itemRepo:        itemRepo,
		supplierRepo:    supplierRepo,
		converter:       converter,
		defaultPageSize: defaultPageSize,
	}
}

func (s *bookingService) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	logger.EnterMethod("bookingService.Quote", "itemID", req.ItemID)

	item, err := s.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		exitWithError("bookingService.Quote", err, "itemID", req.ItemID)
		return nil, fmt.Errorf("get item %s: %w", req.ItemID, err)
	}

	quote, err := s.price(item, req)
	if err != nil {
		logger.ExitMethodRejected("bookingService.Quote", err, "itemID", req.ItemID)
		return nil, err
	}

	logger.ExitMethod("bookingService.Quote", "itemID", req.ItemID, "days", quote.Days, "total", quote.Total.String())
	return quote, nil
}

// price runs the rate calculator and the option surcharge against item.
func (s *bookingService) price(item *domain.Item, req QuoteRequest) (*Quote, error) {
	breakdown, err := pricing.ComputeBaseRateWithBreakdown(item, req.From, req.To)
	if err != nil {
		return nil, err
	}
	charges, err := pricing.OptionCharges(item, breakdown.Days, req.Options, item.PriceChangeRate)
	if err != nil {
		return nil, err
	}

	options := decimal.Zero
	for _, c := range charges {
		options = options.Add(c.Total)
	}
	total := breakdown.Total.Add(options)

	return &Quote{
		ItemID:       item.ID,
		Days:         breakdown.Days,
		Base:         breakdown.Total,
		Options:      options,
		Total:        total,
		DisplayTotal: s.converter.Convert(total),
		Breakdown:    breakdown,
		Charges:      charges,
	}, nil
}

// CreateBooking books an item on behalf of actor. Customers always book for
// themselves and suppliers only their own items. Only admins and suppliers can
// record a booking as paid up front; a customer paying now starts pending until
// the payment is confirmed.
func (s *bookingService) CreateBooking(ctx context.Context, actor domain.Actor, req CreateBookingRequest) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.CreateBooking", "role", actor.Role, "itemID", req.ItemID, "driverID", req.DriverID, "payNow", req.PayNow)

	switch actor.Role {
	case domain.RoleAdmin, domain.RoleSupplier:
	case domain.RoleCustomer:
		req.DriverID = actor.ID
	default:
		logger.ExitMethodRejected("bookingService.CreateBooking", ErrUnauthorized, "role", actor.Role)
		return nil, ErrUnauthorized
	}

	if req.Options.AdditionalDriver != (req.AdditionalDriver != nil) {
		logger.ExitMethodRejected("bookingService.CreateBooking", ErrAdditionalDriver, "itemID", req.ItemID)
		return nil, ErrAdditionalDriver
	}

	item, err := s.itemRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		exitWithError("bookingService.CreateBooking", err, "itemID", req.ItemID)
		return nil, fmt.Errorf("get item %s: %w", req.ItemID, err)
	}
	if actor.Role == domain.RoleSupplier && item.SupplierID != actor.ID {
		logger.ExitMethodRejected("bookingService.CreateBooking", ErrUnauthorized, "itemID", req.ItemID, "supplierID", actor.ID)
		return nil, ErrUnauthorized
	}
	if !item.Available {
		logger.ExitMethodRejected("bookingService.CreateBooking", ErrItemUnavailable, "itemID", req.ItemID)
		return nil, ErrItemUnavailable
	}

	quote, err := s.price(item, req.QuoteRequest)
	if err != nil {
		logger.ExitMethodRejected("bookingService.CreateBooking", err, "itemID", req.ItemID)
		return nil, err
	}

	status := domain.BookingStatusPending
	if req.PayNow && actor.Role != domain.RoleCustomer {
		status = domain.BookingStatusPaid
	}
	if !req.PayNow {
		supplier, err := s.supplierRepo.GetByID(ctx, item.SupplierID)
		if err != nil {
			exitWithError("bookingService.CreateBooking", err, "supplierID", item.SupplierID)
			return nil, fmt.Errorf("get supplier %s: %w", item.SupplierID, err)
		}
		if !supplier.PayLater {
			logger.ExitMethodRejected("bookingService.CreateBooking", ErrPayLaterNotAllowed, "supplierID", supplier.ID)
			return nil, ErrPayLaterNotAllowed
		}
	}

	booking := &domain.Booking{
		ItemID:            item.ID,
		SupplierID:        item.SupplierID,
		DriverID:          req.DriverID,
		PickupLocationID:  req.PickupLocationID,
		DropOffLocationID: req.DropOffLocationID,
		From:              req.From,
		To:                req.To,
		Status:            status,
		OptionSet:         req.Options,
		Price:             quote.Total,
		AdditionalDriver:  req.AdditionalDriver,
	}
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		exitWithError("bookingService.CreateBooking", err, "itemID", req.ItemID)
		return nil, err
	}

	logger.ExitMethod("bookingService.CreateBooking", "bookingID", booking.ID, "status", booking.Status, "price", booking.Price.String())
	return booking, nil
}

func (s *bookingService) GetBooking(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.GetBooking", "bookingID", id, "role", actor.Role)

	booking, err := s.load(ctx, actor, id)
	if err != nil {
		exitWithError("bookingService.GetBooking", err, "bookingID", id)
		return nil, err
	}

	logger.ExitMethod("bookingService.GetBooking", "bookingID", id)
	return booking, nil
}

func (s *bookingService) UpdateStatus(ctx context.Context, actor domain.Actor, id string, status domain.BookingStatus, recompute bool) (*domain.Booking, error) {
	logger.EnterMethod("bookingService.UpdateStatus", "bookingID", id, "role", actor.Role, "status", status, "recompute", recompute)

	booking, err := s.load(ctx, actor, id)
	if err != nil {
		exitWithError("bookingService.UpdateStatus", err, "bookingID", id)
		return nil, err
	}

	next, err := lifecycle.Transition(booking.Status, status, actor.Role)
	if err != nil {
		logger.ExitMethodRejected("bookingService.UpdateStatus", err, "bookingID", id)
		return nil, err
	}

	if recompute {
		if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleSupplier {
			logger.ExitMethodRejected("bookingService.UpdateStatus", ErrUnauthorized, "bookingID", id)
			return nil, ErrUnauthorized
		}
		if next.IsTerminal() {
			logger.ExitMethodRejected("bookingService.UpdateStatus", ErrInvalidRecompute, "bookingID", id)
			return nil, ErrInvalidRecompute
		}

		item, err := s.itemRepo.GetByID(ctx, booking.ItemID)
		if err != nil {
			exitWithError("bookingService.UpdateStatus", err, "itemID", booking.ItemID)
			return nil, fmt.Errorf("get item %s: %w", booking.ItemID, err)
		}
		quote, err := s.price(item, QuoteRequest{ItemID: item.ID, From: booking.From, To: booking.To, Options: booking.OptionSet})
		if err != nil {
			logger.ExitMethodRejected("bookingService.UpdateStatus", err, "bookingID", id)
			return nil, err
		}
		logger.InfoContext(ctx, "Booking price recomputed", "bookingID", id, "old", booking.Price.String(), "new", quote.Total.String())
		booking.Price = quote.Total
	}

	previous := booking.Status
	booking.Status = next
	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		exitWithError("bookingService.UpdateStatus", err, "bookingID", id)
		return nil, err
	}

	logger.ExitMethod("bookingService.UpdateStatus", "bookingID", id, "from", previous, "to", next)
	return booking, nil
}

func (s *bookingService) CancellationFee(ctx context.Context, actor domain.Actor, id string) (decimal.Decimal, error) {
	logger.EnterMethod("bookingService.CancellationFee", "bookingID", id, "role", actor.Role)

	booking, err := s.load(ctx, actor, id)
	if err != nil {
		exitWithError("bookingService.CancellationFee", err, "bookingID", id)
		return decimal.Zero, err
	}
	item, err := s.itemRepo.GetByID(ctx, booking.ItemID)
	if err != nil {
		exitWithError("bookingService.CancellationFee", err, "itemID", booking.ItemID)
		return decimal.Zero, fmt.Errorf("get item %s: %w", booking.ItemID, err)
	}

	fee, err := pricing.CancellationFee(item, item.PriceChangeRate)
	if err != nil {
		logger.ExitMethodRejected("bookingService.CancellationFee", err, "bookingID", id)
		return decimal.Zero, err
	}

	logger.ExitMethod("bookingService.CancellationFee", "bookingID", id, "fee", fee.String())
	return fee, nil
}

func (s *bookingService) DeleteBookings(ctx context.Context, actor domain.Actor, ids []string) (int64, error) {
	logger.EnterMethod("bookingService.DeleteBookings", "role", actor.Role, "count", len(ids))

	if actor.Role != domain.RoleAdmin {
		logger.ExitMethodRejected("bookingService.DeleteBookings", ErrUnauthorized, "role", actor.Role)
		return 0, ErrUnauthorized
	}
	if len(ids) == 0 {
		logger.ExitMethod("bookingService.DeleteBookings", "deleted", 0)
		return 0, nil
	}

	deleted, err := s.bookingRepo.DeleteMany(ctx, ids)
	if err != nil {
		exitWithError("bookingService.DeleteBookings", err)
		return 0, err
	}

	logger.ExitMethod("bookingService.DeleteBookings", "deleted", deleted)
	return deleted, nil
}

func (s *bookingService) ListBookings(ctx context.Context, actor domain.Actor, filter domain.BookingFilter) ([]domain.Booking, int32, error) {
	logger.EnterMethod("bookingService.ListBookings", "role", actor.Role, "page", filter.Page)

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleSupplier:
		filter.SupplierID = actor.ID
	case domain.RoleCustomer:
		filter.DriverID = actor.ID
	default:
		logger.ExitMethodRejected("bookingService.ListBookings", ErrUnauthorized, "role", actor.Role)
		return nil, 0, ErrUnauthorized
	}
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = s.defaultPageSize
	}

	bookings, count, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		exitWithError("bookingService.ListBookings", err)
		return nil, 0, err
	}

	logger.ExitMethod("bookingService.ListBookings", "count", count)
	return bookings, count, nil
}

// load fetches a booking and checks that actor may see it. Suppliers see the
// bookings of their items, customers the bookings they drive.
func (s *bookingService) load(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking %s: %w", id, err)
	}

	switch actor.Role {
	case domain.RoleAdmin:
		return booking, nil
	case domain.RoleSupplier:
		if booking.SupplierID == actor.ID {
			return booking, nil
		}
	case domain.RoleCustomer:
		if booking.DriverID == actor.ID {
			return booking, nil
		}
	}
	return nil, ErrUnauthorized
}
