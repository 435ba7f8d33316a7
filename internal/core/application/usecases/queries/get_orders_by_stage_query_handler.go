package queries

import (
	"context"
	"sort"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// GetOrdersByStageQueryHandler projects the station queue from the working
// set: visibility filter, then a stable sort ascending by committed deadline.
// Orders with equal deadlines keep their working-set insertion order.
//
// Example:
//
//	handler := NewGetOrdersByStageQueryHandler(workingSet, policy)
//	query, _ := NewGetOrdersByStageQuery(order.StationKitchen, &viewer)
//
//	queue, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to project queue: %v", err)
//	    return err
//	}
//
//	fmt.Printf("Queue holds %d orders\n", len(queue))
type GetOrdersByStageQueryHandler struct {
	workingSet ports.WorkingSet
	visibility services.VisibilityPolicy
}

// NewGetOrdersByStageQueryHandler creates a handler for queue projections.
func NewGetOrdersByStageQueryHandler(
	workingSet ports.WorkingSet,
	visibility services.VisibilityPolicy,
) GetOrdersByStageQueryHandler {
	return GetOrdersByStageQueryHandler{
		workingSet: workingSet,
		visibility: visibility,
	}
}

// Handle executes the queue projection.
// Returns the queue entries sorted ascending by DueAt.
func (h GetOrdersByStageQueryHandler) Handle(
	ctx context.Context,
	query GetOrdersByStageQuery,
) ([]GetOrdersByStageQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	held, err := h.workingSet.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]*order.Order, 0, len(held))
	for _, o := range held {
		if h.visibility.ShouldShow(o, query.Station(), query.Viewer()) {
			visible = append(visible, o)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].DueAt().Before(visible[j].DueAt())
	})

	queue := make([]GetOrdersByStageQueryResponse, 0, len(visible))
	for _, o := range visible {
		queue = append(queue, GetOrdersByStageQueryResponse{
			ID:              o.ID(),
			OrderNumber:     o.OrderNumber(),
			CustomerName:    o.CustomerName(),
			Status:          o.StationStatus(query.Station()),
			DueAt:           o.DueAt(),
			ClaimedBy:       o.OwnerFor(query.Station()),
			IsSentBack:      o.IsSentBack(),
			ReturnReason:    returnReason(o),
			Items:           o.Items(),
			KitchenNotes:    o.KitchenNotes(),
			DesignNotes:     o.DesignNotes(),
			FinalCheckNotes: o.FinalCheckNotes(),
		})
	}
	return queue, nil
}

func returnReason(o *order.Order) string {
	if o.ReturnInfo() == nil {
		return ""
	}
	return o.ReturnInfo().Reason()
}
