package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"orderdesk/internal/common/apiprotocol"
)

// EntityGateway performs the REST verbs for one entity collection.
// Expected statuses: 200 for list/get/update, 200 or 201 for create,
// 200 or 204 for delete; anything else becomes a TransportError.
type EntityGateway[E any] struct {
	api  *APIClient
	path string
}

func NewEntityGateway[E any](api *APIClient, path string) *EntityGateway[E] {
	return &EntityGateway[E]{
		api:  api,
		path: path,
	}
}

func NewClientsGateway(api *APIClient) *EntityGateway[apiprotocol.Client] {
	return NewEntityGateway[apiprotocol.Client](api, "/clients")
}

func NewProductsGateway(api *APIClient) *EntityGateway[apiprotocol.Product] {
	return NewEntityGateway[apiprotocol.Product](api, "/products")
}

func NewOrdersGateway(api *APIClient) *EntityGateway[apiprotocol.Order] {
	return NewEntityGateway[apiprotocol.Order](api, "/orders")
}

func (g *EntityGateway[E]) List(ctx context.Context) ([]*E, error) {
	resp, err := g.api.http.R().
		SetContext(ctx).
		Get(g.path)
	if err != nil {
		return nil, fmt.Errorf("list request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	var out []*E
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("error unmarshalling list response: %w", err)
	}
	return out, nil
}

func (g *EntityGateway[E]) Get(ctx context.Context, id int) (*E, error) {
	resp, err := g.api.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id)).
		Get(g.path + "/{id}")
	if err != nil {
		return nil, fmt.Errorf("get request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return unmarshalEntity[E](resp.Body())
}

// Create sends draft with id 0 and server-owned fields zeroed.
func (g *EntityGateway[E]) Create(ctx context.Context, draft *E) (*E, error) {
	resp, err := g.api.http.R().
		SetContext(ctx).
		SetBody(draft).
		Post(g.path)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusCreated {
		return nil, &TransportError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return unmarshalEntity[E](resp.Body())
}

func (g *EntityGateway[E]) Update(ctx context.Context, id int, draft *E) (*E, error) {
	resp, err := g.api.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id)).
		SetBody(draft).
		Put(g.path + "/{id}")
	if err != nil {
		return nil, fmt.Errorf("update request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &TransportError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return unmarshalEntity[E](resp.Body())
}

func (g *EntityGateway[E]) Delete(ctx context.Context, id int) error {
	resp, err := g.api.http.R().
		SetContext(ctx).
		SetPathParam("id", strconv.Itoa(id)).
		Delete(g.path + "/{id}")
	if err != nil {
		return fmt.Errorf("delete request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK && resp.StatusCode() != http.StatusNoContent {
		return &TransportError{StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}
	return nil
}

func unmarshalEntity[E any](body []byte) (*E, error) {
	out := new(E)
	if err := json.Unmarshal(body, out); err != nil {
		return nil, fmt.Errorf("error unmarshalling entity response: %w", err)
	}
	return out, nil
}
