package commands_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWorkingSet struct{ mock.Mock }

func (m *MockWorkingSet) Upsert(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockWorkingSet) Remove(ctx context.Context, id kernel.OrderID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWorkingSet) Get(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockWorkingSet) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockWorkingSet) ReplaceAll(ctx context.Context, aggregates []*order.Order) error {
	args := m.Called(ctx, aggregates)
	return args.Error(0)
}

type MockOrderStore struct{ mock.Mock }

func (m *MockOrderStore) GetOrders(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderStore) GetOrder(ctx context.Context, id kernel.OrderID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderStore) SubmitStatusChange(
	ctx context.Context,
	id kernel.OrderID,
	change ports.StatusChange,
) (*order.Order, error) {
	args := m.Called(ctx, id, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func mustOrderID(t *testing.T, s string) kernel.OrderID {
	t.Helper()
	id, err := kernel.NewOrderID(s)
	require.NoError(t, err)
	return id
}

func mustStaffID(t *testing.T, s string) kernel.StaffID {
	t.Helper()
	id, err := kernel.NewStaffID(s)
	require.NoError(t, err)
	return id
}

func restoreOrder(t *testing.T, id string, mutate func(*order.RestoreOrderParams)) *order.Order {
	t.Helper()
	params := order.RestoreOrderParams{
		ID:              mustOrderID(t, id),
		OrderNumber:     "1042",
		CustomerName:    "Dana Reyes",
		CreatedAt:       time.Date(2026, time.March, 10, 8, 30, 0, 0, time.UTC),
		Status:          order.KitchenQueue,
		DeliveryMethod:  order.Pickup,
		RequiresKitchen: true,
	}
	if mutate != nil {
		mutate(&params)
	}
	o, err := order.RestoreOrder(params)
	require.NoError(t, err)
	return o
}
