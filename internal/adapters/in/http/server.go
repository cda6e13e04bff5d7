// Package http is the inbound HTTP adapter. It binds requests, resolves
// the acting user, delegates to command and query handlers, and maps core
// errors to status codes. No business rule lives here.
package http

import (
	"errors"
	"net/http"
	"strconv"

	"cafeteria/internal/core/application/usecases/commands"
	"cafeteria/internal/core/application/usecases/queries"
	"cafeteria/internal/core/domain/model/kernel"
	"cafeteria/internal/core/domain/model/order"
	"cafeteria/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	placeOrderHandler        commands.PlaceOrderCommandHandler
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler

	// Query handlers
	listOrdersHandler queries.ListOrdersQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	placeOrderHandler commands.PlaceOrderCommandHandler,
	changeOrderStatusHandler commands.ChangeOrderStatusCommandHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
) *Server {
	return &Server{
		placeOrderHandler:        placeOrderHandler,
		changeOrderStatusHandler: changeOrderStatusHandler,
		listOrdersHandler:        listOrdersHandler,
	}
}

// RegisterRoutes mounts the API under /api/v1 behind the auth middleware.
// The health endpoint stays outside the group and needs no token.
func (s *Server) RegisterRoutes(e *echo.Echo, auth echo.MiddlewareFunc) {
	e.GET("/health", s.GetHealth)

	api := e.Group("/api/v1", auth)
	api.GET("/orders", s.GetOrders)
	api.POST("/orders", s.CreateOrder)
	api.PATCH("/orders/:id", s.UpdateOrder)
}

// GetHealth handles GET /health - liveness probe.
func (s *Server) GetHealth(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "OK"})
}

// GetOrders handles GET /api/v1/orders - lists the acting user's orders,
// newest first, one cursor page at a time.
func (s *Server) GetOrders(ctx echo.Context) error {
	user := actingUser(ctx)
	if user == nil {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing access token",
		})
	}

	params := queries.ListOrdersParams{
		Status:    ctx.QueryParam("status"),
		StartDate: ctx.QueryParam("start_date"),
		EndDate:   ctx.QueryParam("end_date"),
		Cursor:    ctx.QueryParam("cursor"),
	}

	if rawLimit := ctx.QueryParam("limit"); rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid limit: " + rawLimit,
			})
		}
		params.Limit = limit
	}

	query, err := queries.NewListOrdersQuery(user.ID(), params)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid filter: " + err.Error(),
		})
	}

	page, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve orders",
		})
	}

	return ctx.JSON(http.StatusOK, toListOrdersResponse(page))
}

// CreateOrder handles POST /api/v1/orders - places a new order for the
// acting user. The order starts in pending status.
func (s *Server) CreateOrder(ctx echo.Context) error {
	user := actingUser(ctx)
	if user == nil {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing access token",
		})
	}

	var body CreateOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	dishID, err := kernel.UUIDFromString(body.DishID)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, ValidationErrors{
			Errors: []string{"dish must exist"},
		})
	}

	cmd, err := commands.NewPlaceOrderCommand(kernel.NewUUID(), user.ID(), dishID, body.Quantity)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, ValidationErrors{
			Errors: []string{"quantity must be greater than 0"},
		})
	}

	created, err := s.placeOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return ctx.JSON(http.StatusUnprocessableEntity, ValidationErrors{
				Errors: []string{"dish must exist"},
			})
		}
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to create order",
		})
	}

	return ctx.JSON(http.StatusCreated, toOrderResponse(created))
}

// UpdateOrder handles PATCH /api/v1/orders/:id - applies a status
// transition to one of the acting user's orders.
func (s *Server) UpdateOrder(ctx echo.Context) error {
	user := actingUser(ctx)
	if user == nil {
		return ctx.JSON(http.StatusUnauthorized, Error{
			Code:    http.StatusUnauthorized,
			Message: "Missing access token",
		})
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: "Order not found",
		})
	}

	var body UpdateOrderRequest
	if err = ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, err := order.StatusFromString(body.Status)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, ValidationErrors{
			Errors: []string{"status is not a valid status"},
		})
	}

	cmd, err := commands.NewChangeOrderStatusCommand(orderID, user.ID(), status)
	if err != nil {
		return ctx.JSON(http.StatusUnprocessableEntity, ValidationErrors{
			Errors: []string{"status is not a valid status"},
		})
	}

	updated, err := s.changeOrderStatusHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrObjectNotFound):
			return ctx.JSON(http.StatusNotFound, Error{
				Code:    http.StatusNotFound,
				Message: "Order not found",
			})
		case errors.Is(err, order.ErrInvalidStatusTransition):
			return ctx.JSON(http.StatusUnprocessableEntity, ValidationErrors{
				Errors: []string{err.Error()},
			})
		case errors.Is(err, errs.ErrConflict):
			return ctx.JSON(http.StatusConflict, Error{
				Code:    http.StatusConflict,
				Message: "Order was modified concurrently, retry with its current status",
			})
		default:
			return ctx.JSON(http.StatusInternalServerError, Error{
				Code:    http.StatusInternalServerError,
				Message: "Failed to update order",
			})
		}
	}

	return ctx.JSON(http.StatusOK, toOrderResponse(updated))
}
