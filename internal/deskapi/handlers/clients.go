package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/internal/deskapi/data"
	"orderdesk/pkg/logging"
)

type ClientsService interface {
	List(ctx context.Context) ([]data.Client, error)
	Get(ctx context.Context, id int) (data.Client, error)
	Create(ctx context.Context, draft data.Client) (data.Client, error)
	Update(ctx context.Context, client data.Client) (data.Client, error)
	Delete(ctx context.Context, id int) error
}

type ClientsHandler struct {
	service ClientsService
	logger  *logging.ZapLogger
}

func NewClientsHandler(service ClientsService, logger *logging.ZapLogger) *ClientsHandler {
	return &ClientsHandler{
		service: service,
		logger:  logger,
	}
}

func (h *ClientsHandler) List(w http.ResponseWriter, r *http.Request) {
	clients, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	out := make([]apiprotocol.Client, 0, len(clients))
	for _, client := range clients {
		out = append(out, clientToWire(client))
	}
	writeJSON(r.Context(), w, http.StatusOK, out, h.logger)
}

func (h *ClientsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid id", h.logger)
		return
	}
	client, err := h.service.Get(r.Context(), id)
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, clientToWire(client), h.logger)
}

func (h *ClientsHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	input, err := decodeJSON[apiprotocol.Client](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid body", h.logger)
		return
	}
	created, err := h.service.Create(r.Context(), clientFromWire(input))
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, clientToWire(created), h.logger)
}

func (h *ClientsHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer closeBody(r.Context(), r.Body, h.logger)

	id, err := idParam(r, "id")
	if err != nil {
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid id", h.logger)
		return
	}
	input, err := decodeJSON[apiprotocol.Client](r.Body)
	if err != nil {
		h.logger.DebugCtx(r.Context(), "error decoding input", zap.Error(err))
		writeError(r.Context(), w, http.StatusBadRequest, "Invalid body", h.logger)
		return
	}
	draft := clientFromWire(input)
	draft.ID = id
	updated, err := h.service.Update(r.Context(), draft)
	if err != nil {
		handleServiceError(r.Context(), w, err, h.logger)
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, clientToWire(updated), h.logger)
}

func (h *ClientsHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
