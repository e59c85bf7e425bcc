package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"printshop/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ResponseBody is the envelope every JSON endpoint answers with. Data and
// pagination are set on success, error on failure; message may accompany
// either.
type ResponseBody struct {
	Success    bool        `json:"success"`
	Timestamp  time.Time   `json:"timestamp"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Current int   `json:"current"`
	Last    int   `json:"last"`
	Size    int   `json:"size"`
	Count   int64 `json:"count"`
}

func respondData(ctx echo.Context, status int, data any) error {
	return ctx.JSON(status, ResponseBody{
		Success:   true,
		Timestamp: time.Now().UTC(),
		Data:      data,
	})
}

func respondPaginated(ctx echo.Context, data any, pagination Pagination) error {
	return ctx.JSON(http.StatusOK, ResponseBody{
		Success:    true,
		Timestamp:  time.Now().UTC(),
		Data:       data,
		Pagination: &pagination,
	})
}

func respondError(ctx echo.Context, status int, code, message string) error {
	return ctx.JSON(status, ResponseBody{
		Success:   false,
		Timestamp: time.Now().UTC(),
		Message:   message,
		Error:     code,
	})
}

// respondDomainError translates application and domain errors into the
// envelope. Not-found and permission failures keep their shape so clients
// can distinguish a stale draft from a forbidden order.
func respondDomainError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return respondError(ctx, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, errs.ErrPermissionDenied):
		return respondError(ctx, http.StatusForbidden, "forbidden", err.Error())
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return respondError(ctx, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		// a saturated connection pool surfaces as a deadline on acquire
		return respondError(ctx, http.StatusServiceUnavailable, "timeout", "service is overloaded, try again later")
	default:
		return respondError(ctx, http.StatusInternalServerError, "internal", "internal server error")
	}
}
