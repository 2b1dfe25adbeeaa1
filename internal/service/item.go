package service

import (
	"context"
	"fmt"

	"rentalmarket-backend/internal/domain"
	"rentalmarket-backend/internal/logger"
	"rentalmarket-backend/internal/pricing"
	"rentalmarket-backend/internal/repository"
)

type itemService struct {
	itemRepo    repository.ItemRepository
	bookingRepo repository.BookingRepository
}

func NewItemService(itemRepo repository.ItemRepository, bookingRepo repository.BookingRepository) ItemService {
	return &itemService{
		itemRepo:    itemRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *itemService) CreateItem(ctx context.Context, actor domain.Actor, item *domain.Item) error {
	logger.EnterMethod("itemService.CreateItem", "role", actor.Role, "name", item.Name)

	switch actor.Role {
	case domain.RoleAdmin:
	case domain.RoleSupplier:
		item.SupplierID = actor.ID
	default:
		logger.ExitMethodRejected("itemService.CreateItem", ErrUnauthorized, "role", actor.Role)
		return ErrUnauthorized
	}
	if err := validateItem(item); err != nil {
		logger.ExitMethodRejected("itemService.CreateItem", err, "name", item.Name)
		return err
	}

	if err := s.itemRepo.Create(ctx, item); err != nil {
		exitWithError("itemService.CreateItem", err, "name", item.Name)
		return err
	}

	logger.ExitMethod("itemService.CreateItem", "itemID", item.ID)
	return nil
}

func (s *itemService) UpdateItem(ctx context.Context, actor domain.Actor, item *domain.Item) error {
	logger.EnterMethod("itemService.UpdateItem", "role", actor.Role, "itemID", item.ID)

	existing, err := s.owned(ctx, actor, item.ID)
	if err != nil {
		exitWithError("itemService.UpdateItem", err, "itemID", item.ID)
		return err
	}
	item.SupplierID = existing.SupplierID
	item.CreatedAt = existing.CreatedAt
	if err := validateItem(item); err != nil {
		logger.ExitMethodRejected("itemService.UpdateItem", err, "itemID", item.ID)
		return err
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		exitWithError("itemService.UpdateItem", err, "itemID", item.ID)
		return err
	}

	logger.ExitMethod("itemService.UpdateItem", "itemID", item.ID)
	return nil
}

func (s *itemService) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	return item, nil
}

func (s *itemService) ListItems(ctx context.Context, supplierID string, page, pageSize int32) ([]domain.Item, int32, error) {
	return s.itemRepo.ListBySupplier(ctx, supplierID, page, pageSize)
}

// IsReferenced reports whether any booking, in any status, points at the item
func (s *itemService) IsReferenced(ctx context.Context, id string) (bool, error) {
	return s.bookingRepo.ExistsByItem(ctx, id)
}

func (s *itemService) DeleteItem(ctx context.Context, actor domain.Actor, id string) error {
	logger.EnterMethod("itemService.DeleteItem", "role", actor.Role, "itemID", id)

	if _, err := s.owned(ctx, actor, id); err != nil {
		exitWithError("itemService.DeleteItem", err, "itemID", id)
		return err
	}

	referenced, err := s.bookingRepo.ExistsByItem(ctx, id)
	if err != nil {
		exitWithError("itemService.DeleteItem", err, "itemID", id)
		return err
	}
	if referenced {
		logger.ExitMethodRejected("itemService.DeleteItem", ErrItemReferenced, "itemID", id)
		return ErrItemReferenced
	}

	if err := s.itemRepo.Delete(ctx, id); err != nil {
		exitWithError("itemService.DeleteItem", err, "itemID", id)
		return err
	}

	logger.ExitMethod("itemService.DeleteItem", "itemID", id)
	return nil
}

func (s *itemService) DescribeOptions(ctx context.Context, id string) ([]pricing.OptionTag, error) {
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	return pricing.DescribeOptions(item, item.PriceChangeRate), nil
}

// owned loads an item that actor is allowed to modify
func (s *itemService) owned(ctx context.Context, actor domain.Actor, id string) (*domain.Item, error) {
	if actor.Role != domain.RoleAdmin && actor.Role != domain.RoleSupplier {
		return nil, ErrUnauthorized
	}
	item, err := s.itemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get item %s: %w", id, err)
	}
	if actor.Role == domain.RoleSupplier && item.SupplierID != actor.ID {
		return nil, ErrUnauthorized
	}
	return item, nil
}

func validateItem(item *domain.Item) error {
	if item.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidItem)
	}
	if item.SupplierID == "" {
		return fmt.Errorf("%w: supplier is required", ErrInvalidItem)
	}
	switch item.Kind {
	case domain.ItemKindCar, domain.ItemKindDress:
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidItem, item.Kind)
	}
	if item.DailyPrice == nil && item.DiscountedDailyPrice == nil {
		return fmt.Errorf("%w: daily price is required", ErrInvalidItem)
	}

	prices := map[string]*int64{
		"daily_price":                item.DailyPrice,
		"discounted_daily_price":     item.DiscountedDailyPrice,
		"weekly_price":               item.WeeklyPrice,
		"discounted_weekly_price":    item.DiscountedWeeklyPrice,
		"bi_weekly_price":            item.BiWeeklyPrice,
		"discounted_bi_weekly_price": item.DiscountedBiWeeklyPrice,
		"monthly_price":              item.MonthlyPrice,
		"discounted_monthly_price":   item.DiscountedMonthlyPrice,
	}
	for name, p := range prices {
		if p != nil && *p <= 0 {
			return fmt.Errorf("%w: %s must be positive", ErrInvalidItem, name)
		}
	}

	for _, v := range item.OptionValues() {
		if v < domain.OptionNotOffered {
			return fmt.Errorf("%w: option value %d below %d", ErrInvalidItem, v, domain.OptionNotOffered)
		}
	}
	return nil
}
