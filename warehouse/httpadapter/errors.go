package httpadapter

import (
	"errors"
	"net/http"

	"github.com/AntonStoeckl/book-warehouse-go/warehouse/core"
)

const (
	logMsgRequestFailed = "http request failed"

	logAttrMethod = "method"
	logAttrPath   = "path"
	logAttrStatus = "status"
	logAttrError  = "error"
)

type errorResponse struct {
	Error string `json:"error"`
}

type insufficientStockResponse struct {
	Error     string `json:"error"`
	Available int    `json:"available"`
	Requested int    `json:"requested"`
}

// statusFor maps the warehouse errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, core.ErrInvalidArgument), errors.Is(err, core.ErrAlreadyFulfilled):
		return http.StatusBadRequest
	case errors.Is(err, core.ErrNotFound), errors.Is(err, core.ErrBookNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrInsufficientStock):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)

	if status == http.StatusInternalServerError {
		h.logRequestError(r, status, err)
		_ = writeJSON(w, status, errorResponse{Error: http.StatusText(status)})

		return
	}

	var insufficient core.InsufficientStockError
	if errors.As(err, &insufficient) {
		_ = writeJSON(w, status, insufficientStockResponse{
			Error:     err.Error(),
			Available: insufficient.Available,
			Requested: insufficient.Requested,
		})

		return
	}

	_ = writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (h *Handler) logRequestError(r *http.Request, status int, err error) {
	args := []any{
		logAttrMethod, r.Method,
		logAttrPath, r.URL.Path,
		logAttrStatus, status,
		logAttrError, err.Error(),
	}

	if h.contextualLogger != nil {
		h.contextualLogger.ErrorContext(r.Context(), logMsgRequestFailed, args...)
	} else if h.logger != nil {
		h.logger.Error(logMsgRequestFailed, args...)
	}
}
