// Package http provides the presentation API consumed by the station
// displays: the sorted queue view and the transition endpoint.
package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between the HTTP endpoints and the application use
// cases. Errors map onto status codes the displays can act on: 400 for
// malformed requests, 404 for unknown orders, 409 for transition conflicts
// (illegal action, claimed order, store rejection), 502 when the order store
// cannot be reached.
type Server struct {
	applyTransitionHandler  commands.ApplyTransitionCommandHandler
	getOrdersByStageHandler queries.GetOrdersByStageQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	applyTransitionHandler commands.ApplyTransitionCommandHandler,
	getOrdersByStageHandler queries.GetOrdersByStageQueryHandler,
) *Server {
	return &Server{
		applyTransitionHandler:  applyTransitionHandler,
		getOrdersByStageHandler: getOrdersByStageHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")
	api.GET("/stations/:station/orders", s.GetStationOrders)
	api.POST("/orders/:id/transitions", s.ApplyTransition)
}

// GetStationOrders handles GET /api/v1/stations/:station/orders - the queue
// view for one station, sorted by committed fulfillment deadline. The
// optional staffId query parameter identifies the viewer; without it the
// visibility rules fail open.
func (s *Server) GetStationOrders(ctx echo.Context) error {
	station, err := order.StationFromString(ctx.Param("station"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Unknown station: " + ctx.Param("station"),
		})
	}

	var viewer *kernel.StaffID
	if raw := ctx.QueryParam("staffId"); raw != "" {
		staffID, staffErr := kernel.NewStaffID(raw)
		if staffErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid staffId",
			})
		}
		viewer = &staffID
	}

	query, err := queries.NewGetOrdersByStageQuery(station, viewer)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid queue request: " + err.Error(),
		})
	}

	queue, err := s.getOrdersByStageHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to project station queue",
		})
	}

	response := make([]QueueEntry, 0, len(queue))
	for _, row := range queue {
		response = append(response, newQueueEntry(row))
	}
	return ctx.JSON(http.StatusOK, response)
}

// ApplyTransition handles POST /api/v1/orders/:id/transitions - one staff
// action on one order.
func (s *Server) ApplyTransition(ctx echo.Context) error {
	var request TransitionRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := s.buildCommand(ctx.Param("id"), request)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid transition request: " + err.Error(),
		})
	}

	if err = s.applyTransitionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.transitionError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// buildCommand parses and validates the wire request into a command.
func (s *Server) buildCommand(rawID string, request TransitionRequest) (commands.ApplyTransitionCommand, error) {
	orderID, err := kernel.NewOrderID(rawID)
	if err != nil {
		return commands.ApplyTransitionCommand{}, err
	}
	action, err := commands.ActionFromString(request.Action)
	if err != nil {
		return commands.ApplyTransitionCommand{}, err
	}
	station, err := order.StationFromString(request.Station)
	if err != nil {
		return commands.ApplyTransitionCommand{}, err
	}
	staffID, err := kernel.NewStaffID(request.StaffID)
	if err != nil {
		return commands.ApplyTransitionCommand{}, err
	}

	var destination *order.Leg
	if request.ReturnDestination != "" {
		leg, legErr := order.LegFromString(request.ReturnDestination)
		if legErr != nil {
			return commands.ApplyTransitionCommand{}, legErr
		}
		destination = &leg
	}

	return commands.NewApplyTransitionCommand(
		orderID, action, station, staffID,
		request.Notes, destination, request.ReturnReason,
	)
}

// transitionError maps a failed transition onto the response contract.
func (s *Server) transitionError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrNotOrderOwner),
		errors.Is(err, ports.ErrStoreRejected):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusBadGateway, Error{
			Code:    http.StatusBadGateway,
			Message: "Order store unavailable",
		})
	}
}
