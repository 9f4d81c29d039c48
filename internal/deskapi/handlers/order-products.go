package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/internal/deskapi/data"
	"orderdesk/pkg/logging"
)

type OrderItemsService interface {
	List(ctx context.Context, orderID int) ([]data.OrderProduct, error)
	Add(ctx context.Context, orderID int, draft data.OrderProduct) (data.OrderProduct, error)
	Update(ctx context.Context, orderID, itemID int, draft data.OrderProduct) (data.OrderProduct, error)
	Delete(ctx context.Context, orderID, itemID int) error
}

type OrderProductsHandler struct {
	service OrderItemsService
	logger  *logging.ZapLogger
}

func NewOrderProductsHandler(service OrderItemsService, logger *logging.ZapLogger) *OrderProductsHandler {
	return &OrderProductsHandler{
		service: service,
		logger:  logger,
	}
}

func (h *OrderProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	orderID, err := idParam(r, "id")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid order id", h.logger)
		return
	}
	items, err := h.service.List(r.Context(), orderID)
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	out := make([]apiprotocol.OrderProduct, 0, len(items))
	for _, item := range items {
		out = append(out, orderProductToWire(item))
	}
	writeJSON(r.Context(), w, http.StatusOK, out, h.logger)
}

func (h *OrderProductsHandler) Add(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	orderID, err := idParam(r, "id")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid order id", h.logger)
		return
	}
	input, err := decodeJSON[apiprotocol.OrderProduct](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid body", h.logger)
		return
	}
	created, err := h.service.Add(r.Context(), orderID, orderProductFromWire(input))
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, orderProductToWire(created), h.logger)
}

func (h *OrderProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	orderID, err := idParam(r, "id")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid order id", h.logger)
		return
	}
	itemID, err := idParam(r, "itemID")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid id", h.logger)
		return
	}
	input, err := decodeJSON[apiprotocol.OrderProduct](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid body", h.logger)
		return
	}
	updated, err := h.service.Update(r.Context(), orderID, itemID, orderProductFromWire(input))
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, orderProductToWire(updated), h.logger)
}

func (h *OrderProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	orderID, err := idParam(r, "id")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid order id", h.logger)
		return
	}
	itemID, err := idParam(r, "itemID")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid id", h.logger)
		return
	}
	if err := h.service.Delete(r.Context(), orderID, itemID); err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
