package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"orderdesk/internal/common/apiprotocol"
)

// OrderProductsGateway accesses the line items nested under one order.
// The order id is supplied per call; the gateway holds no order context.
type OrderProductsGateway struct {
	api *APIClient
}

func NewOrderProductsGateway(api *APIClient) *OrderProductsGateway {
	return &OrderProductsGateway{
		api: api,
	}
}

func (g *OrderProductsGateway) List(ctx context.Context, orderID int) ([]*apiprotocol.OrderProduct, error) {
	resp, err := g.api.http.R().
		SetContext(ctx).
		SetPathParam("orderID", strconv.Itoa(orderID)).
		Get("/orders/{orderID}/products")
	if err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	var out []*apiprotocol.OrderProduct
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("error unmarshalling list response: %w", err)
	}
	return out, nil
}

func (g *OrderProductsGateway) Add(ctx context.Context, orderID int, draft *apiprotocol.OrderProduct) (*apiprotocol.OrderProduct, error) {
	resp, err := g.api.http.R().
		SetContext(ctx).
		SetPathParam("orderID", strconv.Itoa(orderID)).
		SetBody(draft).
		Post("/orders/{orderID}/products")
	if err != nil {
		return nil, fmt.Errorf("add request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return nil, &TransportError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return unmarshalEntity[apiprotocol.OrderProduct](resp.Body())
}

func (g *OrderProductsGateway) Update(ctx context.Context, orderID, itemID int, draft *apiprotocol.OrderProduct) (*apiprotocol.OrderProduct, error) {
	resp, err := g.api.http.R().
		SetContext(ctx).
		SetPathParam("orderID", strconv.Itoa(orderID)).
		SetPathParam("itemID", strconv.Itoa(itemID)).
		SetBody(draft).
		Put("/orders/{orderID}/products/{itemID}")
	if err != nil {
		return nil, fmt.Errorf("update request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return unmarshalEntity[apiprotocol.OrderProduct](resp.Body())
}

func (g *OrderProductsGateway) Delete(ctx context.Context, orderID, itemID int) error {
	resp, err := g.api.http.R().
		SetContext(ctx).
		SetPathParam("orderID", strconv.Itoa(orderID)).
		SetPathParam("itemID", strconv.Itoa(itemID)).
		Delete("/orders/{orderID}/products/{itemID}")
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		return &TransportError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return nil
}
