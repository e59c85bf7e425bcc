// Package http is the inbound HTTP adapter: an echo server exposing the
// order lifecycle under /api/v1/orders. Authentication is a bearer JWT; the
// draft endpoints are client-only and status advancement is merchant-only,
// mirroring who does what in the shop.
package http

import (
	"fmt"
	"net/http"
	"strconv"

	"printshop/internal/core/application/usecases/commands"
	"printshop/internal/core/application/usecases/queries"
	"printshop/internal/core/domain/model/kernel"
	"printshop/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

const (
	historyDefaultLimit = 20
)

// Server wires HTTP requests to the application's command and query
// handlers.
type Server struct {
	createDraftHandler commands.CreateDraftCommandHandler
	stageFileHandler   commands.StageFileCommandHandler
	removeFileHandler  commands.RemoveDraftFileCommandHandler
	buildOrderHandler  commands.BuildOrderCommandHandler
	advanceHandler     commands.AdvanceOrderCommandHandler
	terminateHandler   commands.TerminateOrderCommandHandler

	getOrderHandler queries.GetOrderQueryHandler
	glanceHandler   queries.OrdersGlanceQueryHandler
	historyHandler  queries.OrderHistoryQueryHandler

	// uploadBaseURL is where clients PUT their files; staging an upload
	// answers with an URL under it.
	uploadBaseURL string
}

// NewServer creates an HTTP server over the given command and query
// handlers.
func NewServer(
	createDraftHandler commands.CreateDraftCommandHandler,
	stageFileHandler commands.StageFileCommandHandler,
	removeFileHandler commands.RemoveDraftFileCommandHandler,
	buildOrderHandler commands.BuildOrderCommandHandler,
	advanceHandler commands.AdvanceOrderCommandHandler,
	terminateHandler commands.TerminateOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	glanceHandler queries.OrdersGlanceQueryHandler,
	historyHandler queries.OrderHistoryQueryHandler,
	uploadBaseURL string,
) *Server {
	return &Server{
		createDraftHandler: createDraftHandler,
		stageFileHandler:   stageFileHandler,
		removeFileHandler:  removeFileHandler,
		buildOrderHandler:  buildOrderHandler,
		advanceHandler:     advanceHandler,
		terminateHandler:   terminateHandler,
		getOrderHandler:    getOrderHandler,
		glanceHandler:      glanceHandler,
		historyHandler:     historyHandler,
		uploadBaseURL:      uploadBaseURL,
	}
}

// RegisterRoutes mounts the API under /api/v1 with JWT authentication, plus
// an unauthenticated health check.
func (s *Server) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	e.GET("/health", s.Health)

	api := e.Group("/api/v1/orders", SessionMiddleware(jwtSecret))

	api.POST("", s.CreateDraft, ClientOnly)
	api.GET("/glance", s.OrdersGlance, ClientOnly)
	api.GET("/history", s.OrdersHistory, ClientOnly)
	api.GET("/:id", s.GetOrder)
	api.POST("/:id/files", s.StageFile, ClientOnly)
	api.DELETE("/:id/files/:fileId", s.RemoveFile, ClientOnly)
	api.POST("/:id/build", s.BuildOrder, ClientOnly)
	api.POST("/:id/status", s.AdvanceOrder, MerchantOnly)
	api.DELETE("/:id", s.TerminateOrder)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "healthy"})
}

// CreateDraft handles POST /api/v1/orders - opens a draft for the caller.
// Repeated calls return the caller's existing draft.
func (s *Server) CreateDraft(ctx echo.Context) error {
	session, err := sessionFromContext(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	cmd, err := commands.NewCreateDraftCommand(session)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	orderID, err := s.createDraftHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	return respondData(ctx, http.StatusCreated, map[string]string{"id": orderID.String()})
}

// StageFile handles POST /api/v1/orders/:id/files - reserves an upload slot
// on the caller's draft and answers with the URL to PUT the file to.
func (s *Server) StageFile(ctx echo.Context) error {
	session, err := sessionFromContext(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "bad_request", "invalid order id")
	}

	var body FileUploadCreate
	if err := ctx.Bind(&body); err != nil {
		return respondError(ctx, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	filetype, err := order.FileTypeFromString(body.Filetype)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	cmd, err := commands.NewStageFileCommand(session, orderID, filetype, body.Filesize)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	staged, err := s.stageFileHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	return respondData(ctx, http.StatusAccepted, FileUploadResponse{
		ID:        staged.ID().String(),
		ObjectKey: staged.ObjectKey(),
		UploadURL: fmt.Sprintf("%s/%s.%s", s.uploadBaseURL, staged.ObjectKey(), staged.Filetype()),
	})
}

// RemoveFile handles DELETE /api/v1/orders/:id/files/:fileId - unstages a
// file from the caller's draft and deletes its upload.
func (s *Server) RemoveFile(ctx echo.Context) error {
	session, err := sessionFromContext(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "bad_request", "invalid order id")
	}

	fileID, err := kernel.UUIDFromString(ctx.Param("fileId"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "bad_request", "invalid file id")
	}

	cmd, err := commands.NewRemoveDraftFileCommand(session, orderID, fileID)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	if err := s.removeFileHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// BuildOrder handles POST /api/v1/orders/:id/build - promotes the caller's
// draft into a confirmed order.
func (s *Server) BuildOrder(ctx echo.Context) error {
	session, err := sessionFromContext(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "bad_request", "invalid order id")
	}

	var body BuildOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return respondError(ctx, http.StatusBadRequest, "bad_request", "invalid request body")
	}

	request, err := body.toBuildRequest()
	if err != nil {
		return respondDomainError(ctx, err)
	}

	cmd, err := commands.NewBuildOrderCommand(session, orderID, request)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	built, err := s.buildOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	return respondData(ctx, http.StatusCreated, orderToResponse(built))
}

// GetOrder handles GET /api/v1/orders/:id - returns an order with its files,
// services and status history. Clients see their own orders, merchants any.
func (s *Server) GetOrder(ctx echo.Context) error {
	session, err := sessionFromContext(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "bad_request", "invalid order id")
	}

	query, err := queries.NewGetOrderQuery(session, orderID)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	found, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	return respondData(ctx, http.StatusOK, orderToResponse(found))
}

// AdvanceOrder handles POST /api/v1/orders/:id/status - moves the order one
// step along the processing pipeline.
func (s *Server) AdvanceOrder(ctx echo.Context) error {
	session, err := sessionFromContext(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "bad_request", "invalid order id")
	}

	cmd, err := commands.NewAdvanceOrderCommand(session, orderID)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	update, err := s.advanceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	return respondData(ctx, http.StatusOK, StatusUpdateResponse{
		Status:    update.Status().String(),
		Timestamp: update.Timestamp(),
	})
}

// TerminateOrder handles DELETE /api/v1/orders/:id - cancels (client) or
// rejects (merchant) an order that has not reached a final status yet.
func (s *Server) TerminateOrder(ctx echo.Context) error {
	session, err := sessionFromContext(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return respondError(ctx, http.StatusBadRequest, "bad_request", "invalid order id")
	}

	cmd, err := commands.NewTerminateOrderCommand(session, orderID)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	if _, err := s.terminateHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondDomainError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// OrdersGlance handles GET /api/v1/orders/glance - the client dashboard.
func (s *Server) OrdersGlance(ctx echo.Context) error {
	session, err := sessionFromContext(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	query, err := queries.NewOrdersGlanceQuery(session)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	glance, err := s.glanceHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	return respondData(ctx, http.StatusOK, GlanceResponse{
		Ongoing:  compactOrdersToResponse(glance.Ongoing),
		Finished: compactOrdersToResponse(glance.Finished),
	})
}

// OrdersHistory handles GET /api/v1/orders/history - finished orders,
// newest first, with page/limit query parameters.
func (s *Server) OrdersHistory(ctx echo.Context) error {
	session, err := sessionFromContext(ctx)
	if err != nil {
		return respondError(ctx, http.StatusUnauthorized, "unauthorized", "missing session")
	}

	page := queryInt(ctx, "page", 1)
	limit := queryInt(ctx, "limit", historyDefaultLimit)

	query, err := queries.NewOrderHistoryQuery(session, page, limit)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	history, err := s.historyHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondDomainError(ctx, err)
	}

	last := int((history.Total + int64(limit) - 1) / int64(limit))
	if last < 1 {
		last = 1
	}

	return respondPaginated(ctx, compactOrdersToResponse(history.Orders), Pagination{
		Current: page,
		Last:    last,
		Size:    limit,
		Count:   history.Total,
	})
}

func queryInt(ctx echo.Context, name string, fallback int) int {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
