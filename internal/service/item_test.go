package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"rentalmarket-backend/internal/domain"
	"rentalmarket-backend/internal/pricing"
	"rentalmarket-backend/internal/repository"
	"rentalmarket-backend/internal/service"
)

func TestItemService_CreateItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Supplier owns created item", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		svc := service.NewItemService(itemRepo, new(MockBookingRepo))
		itemRepo.On("Create", ctx, mock.AnythingOfType("*domain.Item")).Return(nil)

		item := testCar()
		item.SupplierID = "forged"
		require.NoError(t, svc.CreateItem(ctx, supplier, item))
		assert.Equal(t, "sup-1", item.SupplierID)
		itemRepo.AssertExpectations(t)
	})

	t.Run("Customer is refused", func(t *testing.T) {
		svc := service.NewItemService(new(MockItemRepo), new(MockBookingRepo))
		assert.ErrorIs(t, svc.CreateItem(ctx, customer, testCar()), service.ErrUnauthorized)
	})

	invalid := map[string]func(*domain.Item){
		"missing daily price": func(i *domain.Item) { i.DailyPrice = nil },
		"option below -1":     func(i *domain.Item) { i.FullInsurance = -2 },
		"negative tier":       func(i *domain.Item) { i.MonthlyPrice = int64Ptr(-100) },
		"unknown kind":        func(i *domain.Item) { i.Kind = "boat" },
		"missing name":        func(i *domain.Item) { i.Name = "" },
	}
	for name, mutate := range invalid {
		t.Run(name, func(t *testing.T) {
			svc := service.NewItemService(new(MockItemRepo), new(MockBookingRepo))
			item := testCar()
			mutate(item)
			assert.ErrorIs(t, svc.CreateItem(ctx, admin, item), service.ErrInvalidItem)
		})
	}

	t.Run("Discounted daily price alone is enough", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		svc := service.NewItemService(itemRepo, new(MockBookingRepo))
		itemRepo.On("Create", ctx, mock.AnythingOfType("*domain.Item")).Return(nil)

		item := testCar()
		item.DailyPrice = nil
		item.DiscountedDailyPrice = int64Ptr(45)
		assert.NoError(t, svc.CreateItem(ctx, admin, item))
	})
}

func TestItemService_UpdateItem(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepo)
	svc := service.NewItemService(itemRepo, new(MockBookingRepo))
	itemRepo.On("GetByID", ctx, "car-1").Return(testCar(), nil)
	itemRepo.On("Update", ctx, mock.AnythingOfType("*domain.Item")).Return(nil)

	update := testCar()
	update.SupplierID = ""
	update.Name = "Compact Plus"
	require.NoError(t, svc.UpdateItem(ctx, supplier, update))
	assert.Equal(t, "sup-1", update.SupplierID)

	err := svc.UpdateItem(ctx, domain.Actor{Role: domain.RoleSupplier, ID: "sup-2"}, testCar())
	assert.ErrorIs(t, err, service.ErrUnauthorized)
	itemRepo.AssertNumberOfCalls(t, "Update", 1)
}

func TestItemService_DeleteItem(t *testing.T) {
	ctx := context.Background()

	t.Run("Referenced item is kept", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewItemService(itemRepo, bookingRepo)
		itemRepo.On("GetByID", ctx, "car-1").Return(testCar(), nil)
		bookingRepo.On("ExistsByItem", ctx, "car-1").Return(true, nil)

		err := svc.DeleteItem(ctx, admin, "car-1")
		assert.ErrorIs(t, err, service.ErrItemReferenced)
		itemRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Unreferenced item is deleted", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		bookingRepo := new(MockBookingRepo)
		svc := service.NewItemService(itemRepo, bookingRepo)
		itemRepo.On("GetByID", ctx, "car-1").Return(testCar(), nil)
		bookingRepo.On("ExistsByItem", ctx, "car-1").Return(false, nil)
		itemRepo.On("Delete", ctx, "car-1").Return(nil)

		require.NoError(t, svc.DeleteItem(ctx, supplier, "car-1"))
		itemRepo.AssertExpectations(t)
	})

	t.Run("Missing item", func(t *testing.T) {
		itemRepo := new(MockItemRepo)
		svc := service.NewItemService(itemRepo, new(MockBookingRepo))
		itemRepo.On("GetByID", ctx, "ghost").Return(nil, repository.ErrNotFound)

		assert.ErrorIs(t, svc.DeleteItem(ctx, admin, "ghost"), service.ErrNotFound)
	})
}

func TestItemService_IsReferenced(t *testing.T) {
	ctx := context.Background()
	bookingRepo := new(MockBookingRepo)
	svc := service.NewItemService(new(MockItemRepo), bookingRepo)
	bookingRepo.On("ExistsByItem", ctx, "car-1").Return(true, nil)

	referenced, err := svc.IsReferenced(ctx, "car-1")
	require.NoError(t, err)
	assert.True(t, referenced)
}

func TestItemService_DescribeOptions(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepo)
	svc := service.NewItemService(itemRepo, new(MockBookingRepo))
	itemRepo.On("GetByID", ctx, "car-1").Return(testCar(), nil)

	tags, err := svc.DescribeOptions(ctx, "car-1")
	require.NoError(t, err)
	require.Len(t, tags, 6)
	assert.Equal(t, pricing.OptionCancellation, tags[0].Option)
	assert.Equal(t, pricing.Priced, tags[0].Kind)
	assert.Equal(t, "22", tags[0].Amount.String())
	assert.Equal(t, pricing.Unavailable, tags[1].Kind)
	assert.Equal(t, pricing.Included, tags[3].Kind)
}

func TestItemService_ListItems(t *testing.T) {
	ctx := context.Background()
	itemRepo := new(MockItemRepo)
	svc := service.NewItemService(itemRepo, new(MockBookingRepo))
	itemRepo.On("ListBySupplier", ctx, "sup-1", int32(1), int32(10)).Return([]domain.Item{*testCar()}, int32(1), nil)

	items, count, err := svc.ListItems(ctx, "sup-1", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int32(1), count)
	assert.Len(t, items, 1)
}
