package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/thanosshawn/shopAdmin/internal/core/application/usecases/commands"
	"github.com/thanosshawn/shopAdmin/internal/core/application/usecases/queries"
	"github.com/thanosshawn/shopAdmin/internal/core/domain/model/order"
	"github.com/thanosshawn/shopAdmin/internal/core/ports"
	"github.com/thanosshawn/shopAdmin/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type TransitionOrderHandler interface {
	Handle(ctx context.Context, cmd commands.TransitionOrderCommand, confirmer ports.Confirmer) error
}

type AttachTrackingHandler interface {
	Handle(ctx context.Context, cmd commands.AttachTrackingCommand) error
}

type BulkApplyHandler interface {
	Handle(ctx context.Context, cmd commands.BulkApplyCommand, confirmer ports.Confirmer) (commands.BulkResult, error)
}

type RefreshOrdersHandler interface {
	Handle(ctx context.Context, cmd commands.RefreshOrdersCommand) (int, error)
}

type FilterOrdersHandler interface {
	Handle(ctx context.Context, query queries.FilterOrdersQuery) (queries.FilterOrdersQueryResponse, error)
}

type GetOrderHandler interface {
	Handle(ctx context.Context, query queries.GetOrderQuery) (*order.Order, error)
}

type ListCarriersHandler interface {
	Handle(ctx context.Context, query queries.ListCarriersQuery) ([]string, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	// Command handlers
	TransitionOrder TransitionOrderHandler
	AttachTracking  AttachTrackingHandler
	BulkApply       BulkApplyHandler
	RefreshOrders   RefreshOrdersHandler

	// Query handlers
	FilterOrders FilterOrdersHandler
	GetOrder     GetOrderHandler
	ListCarriers ListCarriersHandler
}

// Server translates HTTP requests into commands and queries.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	logger   *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers Handlers, logger *slog.Logger) *Server {
	return &Server{
		handlers: handlers,
		logger:   logger.With("component", "http"),
	}
}

// RegisterRoutes mounts the API on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.GET("/orders", s.ListOrders)
	api.POST("/orders/bulk", s.BulkApply)
	api.POST("/orders/refresh", s.RefreshOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/transitions", s.TransitionOrder)
	api.POST("/orders/:id/tracking", s.AttachTracking)
	api.GET("/carriers", s.ListCarriers)
}

func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ListOrders handles GET /api/v1/orders - filters the working copy.
func (s *Server) ListOrders(c echo.Context) error {
	var params ListOrdersParams
	if err := s.bindAndValidate(c, &params); err != nil {
		return err
	}

	resp, err := s.handlers.FilterOrders.Handle(c.Request().Context(), queries.NewFilterOrdersQuery(params.FilterState()))
	if err != nil {
		return s.fail(c, err)
	}

	out := OrderListResponse{
		Orders: make([]OrderResponse, 0, len(resp.Orders)),
		Total:  resp.Report.Input,
	}
	for _, o := range resp.Orders {
		out.Orders = append(out.Orders, toOrderResponse(o))
	}

	return c.JSON(http.StatusOK, out)
}

// GetOrder handles GET /api/v1/orders/:id - reads one order from the store.
func (s *Server) GetOrder(c echo.Context) error {
	query, err := queries.NewGetOrderQuery(c.Param("id"))
	if err != nil {
		return s.fail(c, err)
	}

	o, err := s.handlers.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions.
// Declined and Cancelled need "confirm": true.
func (s *Server) TransitionOrder(c echo.Context) error {
	var req TransitionRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.fail(c, err)
	}

	cmd, err := commands.NewTransitionOrderCommand(c.Param("id"), status, req.Note, req.UpdatedBy)
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.handlers.TransitionOrder.Handle(c.Request().Context(), cmd, confirmerFor(req.Confirm)); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AttachTracking handles POST /api/v1/orders/:id/tracking - ships a Packed order.
func (s *Server) AttachTracking(c echo.Context) error {
	var req TrackingRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewAttachTrackingCommand(c.Param("id"), order.TrackingInfo{
		Code:      req.Code,
		Carrier:   req.Carrier,
		Service:   req.Service,
		Weight:    req.Weight,
		Notes:     req.Notes,
		UpdatedBy: req.UpdatedBy,
	})
	if err != nil {
		return s.fail(c, err)
	}

	if err = s.handlers.AttachTracking.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// BulkApply handles POST /api/v1/orders/bulk. Per-order failures are part of
// the 200 response body.
func (s *Server) BulkApply(c echo.Context) error {
	var req BulkRequest
	if err := s.bindAndValidate(c, &req); err != nil {
		return err
	}

	cmd, err := commands.NewBulkApplyCommand(req.Operation, req.OrderIDs, commands.BulkData{
		Status:    req.Status,
		Priority:  req.Priority,
		UpdatedBy: req.UpdatedBy,
	})
	if err != nil {
		return s.fail(c, err)
	}

	result, err := s.handlers.BulkApply.Handle(c.Request().Context(), cmd, confirmerFor(req.Confirm))
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, toBulkResponse(result))
}

// RefreshOrders handles POST /api/v1/orders/refresh - reloads the working copy.
func (s *Server) RefreshOrders(c echo.Context) error {
	n, err := s.handlers.RefreshOrders.Handle(c.Request().Context(), commands.NewRefreshOrdersCommand())
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, RefreshResponse{Loaded: n})
}

// ListCarriers handles GET /api/v1/carriers.
func (s *Server) ListCarriers(c echo.Context) error {
	carriers, err := s.handlers.ListCarriers.Handle(c.Request().Context(), queries.NewListCarriersQuery())
	if err != nil {
		return s.fail(c, err)
	}

	return c.JSON(http.StatusOK, CarriersResponse{Carriers: carriers})
}

// bindAndValidate returns an *echo.HTTPError carrying an ErrorResponse when the
// request cannot be decoded or fails validation.
func (s *Server) bindAndValidate(c echo.Context, out any) error {
	if err := c.Bind(out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body: " + err.Error(),
		})
	}

	if err := c.Validate(out); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Validation failed",
			Fields:  validationErrorsToMap(err),
		}).SetInternal(err)
	}

	return nil
}

// fail writes the error response matching err.
func (s *Server) fail(c echo.Context, err error) error {
	code := statusCode(err)
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(c.Request().Context(), "request failed",
			slog.String("path", c.Path()),
			slog.Int("status", code),
			slog.Any("error", err),
		)
	}

	return c.JSON(code, ErrorResponse{Code: code, Message: err.Error()})
}

// statusCode maps domain errors to HTTP statuses.
func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrOperationNotConfirmed):
		return http.StatusPreconditionFailed
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrPersistence):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func confirmerFor(confirm bool) ports.Confirmer {
	if confirm {
		return ports.AlwaysConfirm
	}
	return ports.NeverConfirm
}
