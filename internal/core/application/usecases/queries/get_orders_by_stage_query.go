// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries derive display-ready projections from the station's working set.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrGetOrdersByStageQueryIsNotConstructed = errors.New(
	"GetOrdersByStageQuery must be created via NewGetOrdersByStageQuery constructor",
)

// GetOrdersByStageQuery retrieves the queue for one station as one viewer
// sees it: visibility-filtered and sorted by committed fulfillment deadline.
//
// Example:
//
//	query, err := NewGetOrdersByStageQuery(order.StationKitchen, &viewer)
//	if err != nil {
//	    return fmt.Errorf("invalid queue request: %w", err)
//	}
//
//	handler := NewGetOrdersByStageQueryHandler(workingSet, policy)
//	queue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to project queue: %w", err)
//	}
//
//	for _, item := range queue {
//	    fmt.Printf("%s due %s\n", item.OrderNumber, item.DueAt)
//	}
type GetOrdersByStageQuery struct { //nolint:recvcheck //using for validation
	station order.Station
	viewer  *kernel.StaffID

	guard guard.ConstructorGuard
}

// NewGetOrdersByStageQuery creates a query for one station's queue.
// A nil viewer means auth has not resolved; visibility then fails open.
func NewGetOrdersByStageQuery(station order.Station, viewer *kernel.StaffID) (GetOrdersByStageQuery, error) {
	if err := station.Validate(); err != nil {
		return GetOrdersByStageQuery{}, err
	}
	if viewer != nil {
		if err := viewer.Validate(); err != nil {
			return GetOrdersByStageQuery{}, err
		}
		id := *viewer
		viewer = &id
	}

	return GetOrdersByStageQuery{
		station: station,
		viewer:  viewer,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetOrdersByStageQueryIsNotConstructed if validation fails.
func (q GetOrdersByStageQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersByStageQueryIsNotConstructed)
}

// Station returns the station whose queue is projected.
func (q GetOrdersByStageQuery) Station() order.Station {
	return q.station
}

// Viewer returns the viewing staff member, or nil when unresolved.
func (q GetOrdersByStageQuery) Viewer() *kernel.StaffID {
	return q.viewer
}

// GetOrdersByStageQueryResponse represents one queue entry in the read model.
// Status is the station-effective status: for an order with both legs in
// flight the kitchen and design stations see their own leg.
type GetOrdersByStageQueryResponse struct {
	ID           kernel.OrderID
	OrderNumber  string
	CustomerName string
	Status       order.Status
	DueAt        time.Time
	ClaimedBy    *kernel.StaffID

	IsSentBack   bool
	ReturnReason string

	Items []order.LineItem

	KitchenNotes    string
	DesignNotes     string
	FinalCheckNotes string
}
