package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/internal/deskapi/data"
	"orderdesk/pkg/logging"
)

type ProductsService interface {
	List(ctx context.Context) ([]data.Product, error)
	Get(ctx context.Context, id int) (data.Product, error)
	Create(ctx context.Context, draft data.Product) (data.Product, error)
	Update(ctx context.Context, product data.Product) (data.Product, error)
	Delete(ctx context.Context, id int) error
}

type ProductsHandler struct {
	service ProductsService
	logger  *logging.ZapLogger
}

func NewProductsHandler(service ProductsService, logger *logging.ZapLogger) *ProductsHandler {
	return &ProductsHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	out := make([]apiprotocol.Product, 0, len(products))
	for _, product := range products {
		out = append(out, productToWire(product))
	}
	writeJSON(r.Context(), w, http.StatusOK, out, h.logger)
}

func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid id", h.logger)
		return
	}
	product, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, productToWire(product), h.logger)
}

func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	input, err := decodeJSON[apiprotocol.Product](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid body", h.logger)
		return
	}
	created, err := h.service.Create(r.Context(), productFromWire(input))
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, productToWire(created), h.logger)
}

func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	id, err := idParam(r, "id")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid id", h.logger)
		return
	}
	input, err := decodeJSON[apiprotocol.Product](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid body", h.logger)
		return
	}
	draft := productFromWire(input)
	draft.ID = id
	updated, err := h.service.Update(r.Context(), draft)
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, productToWire(updated), h.logger)
}

func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
