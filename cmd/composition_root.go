package cmd

import (
	"log/slog"

	"fulfillment/internal/adapters/in/amqp"
	stationhttp "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/memstore"
	"fulfillment/internal/adapters/out/orderstore"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"
)

type CompositionRoot struct {
	workingSet *memstore.WorkingSet
	orderStore *orderstore.Client
	visibility services.VisibilityPolicy
	station    order.Station
	viewer     *kernel.StaffID
	logger     *slog.Logger
	config     Config
}

func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	station, err := order.StationFromString(config.Station)
	if err != nil {
		return nil, err
	}

	var viewer *kernel.StaffID
	if config.StaffID != "" {
		staffID, err := kernel.NewStaffID(config.StaffID)
		if err != nil {
			return nil, err
		}
		viewer = &staffID
	}

	orderStore, err := orderstore.NewClient(config.OrderStoreURL, nil)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		workingSet: memstore.NewWorkingSet(),
		orderStore: orderStore,
		visibility: services.NewVisibilityPolicy(),
		station:    station,
		viewer:     viewer,
		logger:     logger,
		config:     config,
	}, nil
}

func (c *CompositionRoot) CreateApplyTransitionCommandHandler() commands.ApplyTransitionCommandHandler {
	return commands.NewApplyTransitionCommandHandler(c.workingSet, c.orderStore, c.visibility)
}

func (c *CompositionRoot) CreateIngestNewOrderCommandHandler() commands.IngestNewOrderCommandHandler {
	return commands.NewIngestNewOrderCommandHandler(c.workingSet, c.visibility, c.station, c.viewer)
}

func (c *CompositionRoot) CreateIngestOrderUpdateCommandHandler() commands.IngestOrderUpdateCommandHandler {
	return commands.NewIngestOrderUpdateCommandHandler(c.workingSet, c.orderStore, c.visibility, c.station, c.viewer)
}

func (c *CompositionRoot) CreateRefreshSnapshotCommandHandler() commands.RefreshSnapshotCommandHandler {
	return commands.NewRefreshSnapshotCommandHandler(c.workingSet, c.orderStore, c.visibility, c.station, c.viewer, c.logger)
}

func (c *CompositionRoot) CreateGetOrdersByStageQueryHandler() queries.GetOrdersByStageQueryHandler {
	return queries.NewGetOrdersByStageQueryHandler(c.workingSet, c.visibility)
}

func (c *CompositionRoot) CreateHTTPServer() *stationhttp.Server {
	return stationhttp.NewServer(
		c.CreateApplyTransitionCommandHandler(),
		c.CreateGetOrdersByStageQueryHandler(),
	)
}

func (c *CompositionRoot) CreateEventConsumer() *amqp.Consumer {
	return amqp.NewConsumer(
		c.config.AmqpURL,
		c.CreateIngestNewOrderCommandHandler(),
		c.CreateIngestOrderUpdateCommandHandler(),
		c.logger,
	)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateRefreshSnapshotCommandHandler(), c.logger)
}
