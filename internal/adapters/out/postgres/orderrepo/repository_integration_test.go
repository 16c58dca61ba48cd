package orderrepo_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/thanosshawn/shopAdmin/internal/adapters/out/postgres/orderrepo"
	"github.com/thanosshawn/shopAdmin/internal/adapters/out/postgres/pgtest"
	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/kernel"
	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/core/ports"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies persistence behavior against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	logs       *bytes.Buffer
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.container = container
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.logs = new(bytes.Buffer)
	logger := slog.New(slog.NewTextHandler(suite.logs, nil))
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker, logger)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_And_Get_RoundTrip() {
	ctx := context.Background()
	createdAt := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	grand := kernel.NewMoney(415.5)
	total := kernel.NewMoney(410)
	discount := kernel.NewMoney(5)

	stored, err := order.RestoreOrder(order.Snapshot{
		ID:       "doc-rt",
		OrderID:  "ORD-2001",
		Status:   order.Packed,
		Priority: order.High,
		Items: []order.Item{
			{Name: "Brass Lamp", Price: kernel.NewMoney(200), Quantity: 2, Image: "lamp.jpg"},
		},
		Financials: order.Financials{
			Subtotal: kernel.NewMoney(400), Tax: kernel.NewMoney(10.5), Shipping: kernel.NewMoney(5),
			Discount: &discount, Total: &total,
		},
		Totals:   order.TotalCandidates{GrandTotal: &grand},
		Customer: order.Customer{Name: "Kavya", Email: "kavya@example.com", Phone: "+91 90000 00000"},
		ShippingAddress: &order.Address{
			Line1: "12 MG Road", City: "Bengaluru", State: "KA", PostalCode: "560001", Country: "IN",
		},
		StatusHistory: []order.HistoryEntry{
			{Status: order.Placed, Timestamp: createdAt, Note: "Order placed"},
			{Status: order.Approved, Timestamp: createdAt.Add(time.Hour), UpdatedBy: "ops"},
			{Status: order.Packed, Timestamp: createdAt.Add(2 * time.Hour), Metadata: map[string]string{"bulk_run_id": "r1"}},
		},
		AdminNotes: "fragile",
		CreatedAt:  createdAt,
	})
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", "doc-rt", stored).Once()

	suite.Require().NoError(suite.repository.Add(ctx, stored))
	got, err := suite.repository.Get(ctx, "doc-rt")
	suite.Require().NoError(err)

	suite.Equal("ORD-2001", got.OrderID())
	suite.Equal(order.Packed, got.Status())
	suite.Equal(order.High, got.Priority())
	suite.Equal(stored.Customer(), got.Customer())
	suite.Equal(stored.ShippingAddress(), got.ShippingAddress())
	suite.Nil(got.Tracking())
	suite.Equal("fragile", got.AdminNotes())
	suite.Require().Len(got.Items(), 1)
	suite.True(got.Items()[0].Price.Equal(kernel.NewMoney(200)))
	suite.True(got.EffectiveTotal().Equal(kernel.NewMoney(415.5)), got.EffectiveTotal().String())
	suite.Require().NotNil(got.Financials().Total)
	suite.True(got.Financials().Total.Equal(total))

	history := got.StatusHistory()
	suite.Require().Len(history, 3)
	suite.Equal(order.Approved, history[1].Status)
	suite.Equal("ops", history[1].UpdatedBy)
	suite.Equal("r1", history[2].Metadata["bulk_run_id"])
	suite.True(history[0].Timestamp.Equal(createdAt))

	at, ok := got.CreatedAt()
	suite.True(ok)
	suite.True(at.Equal(createdAt))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), "missing")

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestPatch_WritesOnlyPatchedColumns() {
	ctx := context.Background()
	stored := suite.addOrder("doc-p", order.Placed, time.Now())

	// another admin edits the notes between our read and our write
	suite.Require().NoError(suite.db.Exec("UPDATE orders SET admin_notes = 'call first' WHERE id = ?", "doc-p").Error)

	patch, err := stored.PlanTransition(order.Approved, order.TransitionInfo{UpdatedBy: "ops"}, time.Now())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", "doc-p", patch).Once()

	suite.Require().NoError(suite.repository.Patch(ctx, "doc-p", patch))

	got, err := suite.repository.Get(ctx, "doc-p")
	suite.Require().NoError(err)
	suite.Equal(order.Approved, got.Status())
	suite.Len(got.StatusHistory(), 2)
	suite.Equal("call first", got.AdminNotes())
	suite.Equal(order.Normal, got.Priority())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestPatch_Tracking() {
	ctx := context.Background()
	stored := suite.addOrder("doc-t", order.Packed, time.Now())

	patch, err := stored.PlanTracking(order.TrackingInfo{Code: "IP123", Carrier: "IndiaPost"}, time.Now())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", "doc-t", patch).Once()

	suite.Require().NoError(suite.repository.Patch(ctx, "doc-t", patch))

	got, err := suite.repository.Get(ctx, "doc-t")
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, got.Status())
	suite.Require().NotNil(got.Tracking())
	suite.Equal(order.Tracking{Code: "IP123", Carrier: "IndiaPost"}, *got.Tracking())
	suite.Equal("IP123", got.StatusHistory()[1].Metadata["tracking_code"])
}

func (suite *OrderRepositoryIntegrationTestSuite) TestPatch_Priority() {
	ctx := context.Background()
	stored := suite.addOrder("doc-u", order.Shipped, time.Now())

	patch, err := stored.PlanPriority(order.Urgent)
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", "doc-u", patch).Once()

	suite.Require().NoError(suite.repository.Patch(ctx, "doc-u", patch))

	got, err := suite.repository.Get(ctx, "doc-u")
	suite.Require().NoError(err)
	suite.Equal(order.Urgent, got.Priority())
	suite.Equal(order.Shipped, got.Status())
	suite.Len(got.StatusHistory(), 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestPatch_NotFound() {
	status := order.Approved

	err := suite.repository.Patch(context.Background(), "missing", order.Patch{Status: &status})

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestPatch_EmptyPatchWritesNothing() {
	err := suite.repository.Patch(context.Background(), "missing", order.Patch{})

	suite.Require().NoError(err)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestList_OrderAndHints() {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.addOrder("old", order.Placed, base)
	suite.addOrder("new", order.Placed, base.Add(48*time.Hour))
	suite.addOrder("mid", order.Approved, base.Add(24*time.Hour))
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET created_at = NULL, order_date = ? WHERE id = 'mid'", base.Add(36*time.Hour)).Error)
	suite.Require().NoError(suite.db.Exec(`
		INSERT INTO orders (id, order_id, status, priority, items, financials, totals, shipping_address, status_history)
		VALUES ('legacy', 'ORD-L', 'Placed', '', '[]', '{}', '{"grandTotal":"321.5"}', 'null', '[]')
	`).Error)

	all, err := suite.repository.List(ctx, ports.ListHints{})
	suite.Require().NoError(err)
	suite.Equal([]string{"new", "mid", "old", "legacy"}, ids(all))

	legacy := all[3]
	suite.Equal(order.Normal, legacy.Priority())
	suite.True(legacy.EffectiveTotal().Equal(kernel.NewMoney(321.5)), legacy.EffectiveTotal().String())
	_, ok := legacy.CreatedAt()
	suite.False(ok)

	placed, err := suite.repository.List(ctx, ports.ListHints{Status: order.Placed, Limit: 2})
	suite.Require().NoError(err)
	suite.Equal([]string{"new", "old"}, ids(placed))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestList_SkipsUnreadableRows() {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.addOrder("a", order.Placed, base)
	suite.addOrder("b", order.Shipped, base.Add(time.Hour))
	suite.Require().NoError(suite.db.Exec(`
		INSERT INTO orders (id, order_id, status, priority, items, financials, totals, shipping_address, status_history)
		VALUES ('odd', 'ORD-X', 'Processing', 'Normal', '[]', '{}', '{}', 'null', '[]')
	`).Error)

	all, err := suite.repository.List(ctx, ports.ListHints{})

	suite.Require().NoError(err)
	suite.Equal([]string{"b", "a"}, ids(all))
	suite.Contains(suite.logs.String(), "skipping unreadable order")
	suite.Contains(suite.logs.String(), "id=odd")
	suite.Contains(suite.logs.String(), "status=Processing")
}

func (suite *OrderRepositoryIntegrationTestSuite) TestPatch_KeepsUnrecognizedHistoryStatus() {
	ctx := context.Background()
	suite.Require().NoError(suite.db.Exec(`
		INSERT INTO orders (id, order_id, status, priority, items, financials, totals, shipping_address, status_history)
		VALUES ('old-flow', 'ORD-O', 'Placed', 'Normal', '[]', '{}', '{}', 'null',
			'[{"status":"Placed","timestamp":"2025-01-02T09:00:00Z"},{"status":"Processing","timestamp":"2025-01-02T10:00:00Z"}]')
	`).Error)

	stored, err := suite.repository.Get(ctx, "old-flow")
	suite.Require().NoError(err)
	patch, err := stored.PlanTransition(order.Approved, order.TransitionInfo{UpdatedBy: "ops"}, time.Now())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", "old-flow", patch).Once()

	suite.Require().NoError(suite.repository.Patch(ctx, "old-flow", patch))

	var row orderrepo.OrderDTO
	suite.Require().NoError(suite.db.First(&row, "id = ?", "old-flow").Error)
	statuses := make([]string, 0, len(row.StatusHistory))
	for _, e := range row.StatusHistory {
		statuses = append(statuses, e.Status)
	}
	suite.Equal([]string{"Placed", "Processing", "Approved"}, statuses)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestOrderRepository_ConcurrentReads() {
	ctx := context.Background()
	suite.addOrder("doc-c", order.Placed, time.Now())

	results := make(chan *order.Order, 3)
	errors := make(chan error, 3)

	for range 3 {
		go func() {
			o, readErr := suite.repository.Get(ctx, "doc-c")
			if readErr != nil {
				errors <- readErr
			} else {
				results <- o
			}
		}()
	}

	for range 3 {
		select {
		case result := <-results:
			suite.Equal("doc-c", result.ID())
		case readErr := <-errors:
			suite.Failf("Unexpected error in concurrent read", "%v", readErr)
		}
	}
}

// addOrder stores an order with the given status and a single Placed history entry.
func (suite *OrderRepositoryIntegrationTestSuite) addOrder(id string, status order.Status, at time.Time) *order.Order {
	o, err := order.RestoreOrder(order.Snapshot{
		ID:            id,
		OrderID:       "ORD-" + id,
		Status:        status,
		Items:         []order.Item{{Name: "Mug", Price: kernel.NewMoney(250), Quantity: 1}},
		StatusHistory: []order.HistoryEntry{{Status: order.Placed, Timestamp: at, Note: "Order placed"}},
		CreatedAt:     at,
	})
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", id, o).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func ids(orders []*order.Order) []string {
	out := make([]string, 0, len(orders))
	for _, o := range orders {
		out = append(out, o.ID())
	}
	return out
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping PostgreSQL integration suite in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
