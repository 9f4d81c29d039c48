package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/internal/deskapi/service"
	"orderdesk/pkg/logging"
)

func closeBody(ctx context.Context, body io.ReadCloser, logger *logging.ZapLogger) {
	if err := body.Close(); err != nil {
		logger.ErrorCtx(ctx, "failed to close body", zap.Error(err))
	}
}

func decodeJSON[T any](r io.Reader) (T, error) {
	var out T
	err := json.NewDecoder(r).Decode(&out)
	return out, err
}

func idParam(r *http.Request, name string) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any, logger *logging.ZapLogger) {
	res, err := json.Marshal(body)
	if err != nil {
		logger.ErrorCtx(ctx, "error marshalling response", zap.Error(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(res); err != nil {
		logger.ErrorCtx(ctx, "error writing response", zap.Error(err))
	}
}

func writeError(ctx context.Context, w http.ResponseWriter, status int, message string, logger *logging.ZapLogger) {
	writeJSON(ctx, w, status, apiprotocol.APIError{Error: message}, logger)
}

// handleServiceError maps service failures to the response contract:
// validation failures are 400 with the reason, missing records are 404,
// uniqueness conflicts are 409, everything else is 500.
func handleServiceError(ctx context.Context, w http.ResponseWriter, err error, logger *logging.ZapLogger) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		logger.DebugCtx(ctx, "request rejected", zap.String("reason", validationErr.Reason))
		writeError(ctx, w, http.StatusBadRequest, validationErr.Reason, logger)
	case errors.Is(err, service.ErrNotFound):
		writeError(ctx, w, http.StatusNotFound, "Not found", logger)
	case errors.Is(err, service.ErrEmailTaken):
		writeError(ctx, w, http.StatusConflict, "Email already exists", logger)
	case errors.Is(err, service.ErrOrderNumberTaken):
		writeError(ctx, w, http.StatusConflict, "Order number already exists", logger)
	default:
		logger.ErrorCtx(ctx, "request failed", zap.Error(err))
		writeError(ctx, w, http.StatusInternalServerError, "Internal server error", logger)
	}
}
