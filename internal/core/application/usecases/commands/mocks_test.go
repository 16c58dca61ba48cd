package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/thanosshawn/shopAdmin/internal/core/application/usecases/commands"
	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) Patch(ctx context.Context, id string, p order.Patch) error {
	args := m.Called(ctx, id, p)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, hints ports.ListHints) ([]*order.Order, error) {
	args := m.Called(ctx, hints)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWorkingCopy struct{ mock.Mock }

func (m *MockWorkingCopy) All() []*order.Order {
	args := m.Called()
	orders, _ := args.Get(0).([]*order.Order)
	return orders
}

func (m *MockWorkingCopy) Apply(id string, p order.Patch) {
	m.Called(id, p)
}

func (m *MockWorkingCopy) Replace(orders []*order.Order) {
	m.Called(orders)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, level ports.Level, message string) {
	m.Called(ctx, level, message)
}

var placedAt = time.Date(2026, 4, 2, 9, 30, 0, 0, time.UTC)

func orderWithStatus(t *testing.T, id string, s order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:            id,
		OrderID:       "ORD-" + id,
		Status:        s,
		StatusHistory: []order.HistoryEntry{{Status: order.Placed, Timestamp: placedAt, Note: "Order placed"}},
		CreatedAt:     placedAt,
	})
	require.NoError(t, err)
	return o
}

func statusPatch(s order.Status, historyLen int) any {
	return mock.MatchedBy(func(p order.Patch) bool {
		return p.Status != nil && *p.Status == s &&
			len(p.StatusHistory) == historyLen &&
			p.StatusHistory[historyLen-1].Status == s
	})
}
