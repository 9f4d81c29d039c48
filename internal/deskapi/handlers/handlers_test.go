package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/internal/deskapi"
	"orderdesk/internal/deskapi/data/memrepository"
	"orderdesk/internal/deskapi/service"
	"orderdesk/pkg/logging"
)

func newMux(t *testing.T) http.Handler {
	t.Helper()
	repo := memrepository.New()
	tm := memrepository.NewTransactionsManager()
	return deskapi.CreateMux(
		service.NewClients(repo),
		service.NewProducts(repo),
		service.NewOrders(repo, tm),
		service.NewOrderItems(repo, tm),
		logging.NewNop(),
	)
}

func doRequest(t *testing.T, mux http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestResponseContract(t *testing.T) {
	mux := newMux(t)

	rec := doRequest(t, mux, http.MethodPost, "/clients", `{"name":"Ann","email":"ann@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created apiprotocol.Client
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 1, created.ID)
	assert.NotNil(t, created.CreatedAt)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
		errMsg string
	}{
		{
			name:   "validation failure",
			method: http.MethodPost,
			path:   "/clients",
			body:   `{"name":"","email":"x@y.com"}`,
			code:   http.StatusBadRequest,
			errMsg: "Invalid name",
		},
		{
			name:   "malformed body",
			method: http.MethodPost,
			path:   "/clients",
			body:   `{"name": nope}`,
			code:   http.StatusBadRequest,
			errMsg: "Invalid body",
		},
		{
			name:   "duplicate email",
			method: http.MethodPost,
			path:   "/clients",
			body:   `{"name":"Bob","email":"ann@x.com"}`,
			code:   http.StatusConflict,
			errMsg: "Email already exists",
		},
		{
			name:   "missing record",
			method: http.MethodGet,
			path:   "/clients/99",
			code:   http.StatusNotFound,
			errMsg: "Not found",
		},
		{
			name:   "non-numeric id",
			method: http.MethodGet,
			path:   "/clients/abc",
			code:   http.StatusBadRequest,
			errMsg: "Invalid id",
		},
		{
			name:   "order for unknown client",
			method: http.MethodPost,
			path:   "/orders",
			body:   `{"client_id":42}`,
			code:   http.StatusBadRequest,
			errMsg: "Invalid client_id",
		},
		{
			name:   "items of unknown order",
			method: http.MethodGet,
			path:   "/orders/42/products",
			code:   http.StatusNotFound,
			errMsg: "Not found",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, mux, tc.method, tc.path, tc.body)
			require.Equal(t, tc.code, rec.Code)
			var apiErr apiprotocol.APIError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
			assert.Equal(t, tc.errMsg, apiErr.Error)
		})
	}
}

func TestHealth(t *testing.T) {
	mux := newMux(t)

	rec := doRequest(t, mux, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestOrderUpdateIgnoresNumberAndClientChanges(t *testing.T) {
	mux := newMux(t)

	rec := doRequest(t, mux, http.MethodPost, "/clients", `{"name":"Ann","email":"ann@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = doRequest(t, mux, http.MethodPost, "/clients", `{"name":"Bob","email":"bob@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, mux, http.MethodPost, "/orders", `{"client_id":1,"order_number":"ORD-KEEP"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created apiprotocol.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.Equal(t, 3, created.ID)

	rec = doRequest(t, mux, http.MethodPut, "/orders/3",
		`{"client_id":2,"order_number":"ORD-HIJACKED","order_status":"paid"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, mux, http.MethodGet, "/orders/3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var fetched apiprotocol.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched))
	assert.Equal(t, "ORD-KEEP", fetched.OrderNumber)
	assert.Equal(t, 1, fetched.ClientID)
	assert.Equal(t, "paid", fetched.OrderStatus)
}

func TestDeleteReturnsNoContent(t *testing.T) {
	mux := newMux(t)

	rec := doRequest(t, mux, http.MethodPost, "/clients", `{"name":"Ann","email":"ann@x.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doRequest(t, mux, http.MethodDelete, "/clients/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = doRequest(t, mux, http.MethodDelete, "/clients/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
