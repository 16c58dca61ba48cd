package cmd

import (
	"log/slog"

	httpin "github.com/thanosshawn/shopAdmin/internal/adapters/in/http"
	"github.com/thanosshawn/shopAdmin/internal/adapters/out/memory"
	"github.com/thanosshawn/shopAdmin/internal/adapters/out/notifier"
	"github.com/thanosshawn/shopAdmin/internal/adapters/out/postgres"
	"github.com/thanosshawn/shopAdmin/internal/core/application/usecases/commands"
	"github.com/thanosshawn/shopAdmin/internal/core/application/usecases/queries"
	"github.com/thanosshawn/shopAdmin/internal/core/ports"
	"github.com/thanosshawn/shopAdmin/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config      Config
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	workingCopy *memory.OrderWorkingCopy
	notifier    ports.Notifier
	logger      *slog.Logger
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:      config,
		gormDB:      gormDB,
		uowFactory:  *postgres.NewGormUnitOfWorkFactory(gormDB, logger),
		workingCopy: memory.NewOrderWorkingCopy(),
		notifier:    notifier.NewSlogNotifier(logger),
		logger:      logger,
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.workingCopy, c.notifier)
}

func (c *CompositionRoot) CreateAttachTrackingCommandHandler() commands.AttachTrackingCommandHandler {
	return commands.NewAttachTrackingCommandHandler(c.orderUoWFactory(), c.workingCopy, c.notifier)
}

func (c *CompositionRoot) CreateRefreshOrdersCommandHandler() commands.RefreshOrdersCommandHandler {
	return commands.NewRefreshOrdersCommandHandler(c.orderUoWFactory(), c.workingCopy)
}

func (c *CompositionRoot) CreateBulkApplyCommandHandler() commands.BulkApplyCommandHandler {
	return commands.NewBulkApplyCommandHandler(
		c.orderUoWFactory(),
		c.CreateRefreshOrdersCommandHandler(),
		c.notifier,
		c.config.BulkParallelism,
	)
}

func (c *CompositionRoot) CreateFilterOrdersQueryHandler() queries.FilterOrdersQueryHandler {
	return queries.NewFilterOrdersQueryHandler(c.workingCopy, c.logger)
}

// CreateGetOrderQueryHandler reads outside of any transaction.
func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.uowFactory.Create().OrderRepository())
}

func (c *CompositionRoot) CreateListCarriersQueryHandler() queries.ListCarriersQueryHandler {
	return queries.NewListCarriersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		TransitionOrder: c.CreateTransitionOrderCommandHandler(),
		AttachTracking:  c.CreateAttachTrackingCommandHandler(),
		BulkApply:       c.CreateBulkApplyCommandHandler(),
		RefreshOrders:   c.CreateRefreshOrdersCommandHandler(),
		FilterOrders:    c.CreateFilterOrdersQueryHandler(),
		GetOrder:        c.CreateGetOrderQueryHandler(),
		ListCarriers:    c.CreateListCarriersQueryHandler(),
	}, c.logger)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRefreshOrdersCommandHandler(), c.config.SnapshotRefreshSpec, c.logger)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}
