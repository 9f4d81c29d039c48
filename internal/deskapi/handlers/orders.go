package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/internal/deskapi/data"
	"orderdesk/pkg/logging"
)

type OrdersService interface {
	List(ctx context.Context) ([]data.Order, error)
	Get(ctx context.Context, id int) (data.Order, error)
	Create(ctx context.Context, draft data.Order) (data.Order, error)
	Update(ctx context.Context, order data.Order) (data.Order, error)
	Delete(ctx context.Context, id int) error
}

type OrdersHandler struct {
	service OrdersService
	logger  *logging.ZapLogger
}

func NewOrdersHandler(service OrdersService, logger *logging.ZapLogger) *OrdersHandler {
	return &OrdersHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrdersHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	out := make([]apiprotocol.Order, 0, len(orders))
	for _, order := range orders {
		out = append(out, orderToWire(order))
	}
	writeJSON(r.Context(), w, http.StatusOK, out, h.logger)
}

func (h *OrdersHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid id", h.logger)
		return
	}
	order, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, orderToWire(order), h.logger)
}

func (h *OrdersHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	input, err := decodeJSON[apiprotocol.Order](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid body", h.logger)
		return
	}
	created, err := h.service.Create(r.Context(), orderFromWire(input))
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, orderToWire(created), h.logger)
}

func (h *OrdersHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	id, err := idParam(r, "id")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid id", h.logger)
		return
	}
	input, err := decodeJSON[apiprotocol.Order](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid body", h.logger)
		return
	}
	draft := orderFromWire(input)
	draft.ID = id
	updated, err := h.service.Update(r.Context(), draft)
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, orderToWire(updated), h.logger)
}

func (h *OrdersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid id", h.logger)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
