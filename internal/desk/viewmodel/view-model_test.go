package viewmodel

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/pkg/logging"
)

type fakeGateway[E any] struct {
	mux      sync.Mutex
	calls    []string
	listFn   func() ([]*E, error)
	createFn func(draft *E) (*E, error)
	updateFn func(id int, draft *E) (*E, error)
	deleteFn func(id int) error
}

func (g *fakeGateway[E]) record(call string) {
	g.mux.Lock()
	defer g.mux.Unlock()
	g.calls = append(g.calls, call)
}

func (g *fakeGateway[E]) Calls() []string {
	g.mux.Lock()
	defer g.mux.Unlock()
	calls := make([]string, len(g.calls))
	copy(calls, g.calls)
	return calls
}

func (g *fakeGateway[E]) List(_ context.Context) ([]*E, error) {
	g.record("list")
	return g.listFn()
}

func (g *fakeGateway[E]) Create(_ context.Context, draft *E) (*E, error) {
	g.record("create")
	return g.createFn(draft)
}

func (g *fakeGateway[E]) Update(_ context.Context, id int, draft *E) (*E, error) {
	g.record("update")
	return g.updateFn(id, draft)
}

func (g *fakeGateway[E]) Delete(_ context.Context, id int) error {
	g.record("delete")
	return g.deleteFn(id)
}

func awaitStatus(t *testing.T, status func() string, want string) {
	t.Helper()
	require.Eventually(t, func() bool { return status() == want }, 2*time.Second, 5*time.Millisecond,
		"expected status %q, last seen %q", want, status())
}

func strPtr(s string) *string { return &s }

func sampleClient(id int, name, email string) *apiprotocol.Client {
	return &apiprotocol.Client{
		ID:        id,
		Name:      name,
		Email:     email,
		Phone:     strPtr("555-0100"),
		CreatedAt: strPtr("2025-01-02T03:04:05Z"),
	}
}

func TestSelectThenDeselectRestoresFormDefaults(t *testing.T) {
	vm := NewClientsViewModel(&fakeGateway[apiprotocol.Client]{}, logging.NewNop())

	vm.Select(sampleClient(3, "Ann", "ann@x.com"))
	assert.True(t, vm.HasSelection())
	assert.Equal(t, "Ann", vm.Field("name"))
	assert.Equal(t, "ann@x.com", vm.Field("email"))
	assert.Equal(t, "555-0100", vm.Field("phone"))
	assert.Equal(t, "", vm.Field("address"))
	assert.Equal(t, "2025-01-02T03:04:05Z", vm.Field("created_at"))

	vm.Select(nil)
	assert.False(t, vm.HasSelection())
	for _, name := range vm.FieldNames() {
		assert.Equal(t, "", vm.Field(name), "field %s", name)
	}
}

func TestSelectionOverwritesUnsavedEdits(t *testing.T) {
	vm := NewClientsViewModel(&fakeGateway[apiprotocol.Client]{}, logging.NewNop())

	vm.SetField("name", "half-typed draft")
	vm.Select(sampleClient(1, "Bob", "bob@x.com"))
	assert.Equal(t, "Bob", vm.Field("name"))
}

func TestFieldValidationIsAdvisory(t *testing.T) {
	vm := NewClientsViewModel(&fakeGateway[apiprotocol.Client]{}, logging.NewNop())

	vm.SetField("email", "not-an-email")
	assert.Equal(t, "Invalid email format", vm.Status())

	// invalid value stays editable
	assert.Equal(t, "not-an-email", vm.Field("email"))

	vm.SetField("email", "")
	assert.Equal(t, "Email is required", vm.Status())

	vm.SetField("email", "ann@x.com")
	assert.Equal(t, "", vm.Status())
}

func TestLoadReplacesItemsWholesale(t *testing.T) {
	responses := [][]*apiprotocol.Client{
		{sampleClient(1, "Ann", "ann@x.com"), sampleClient(2, "Bob", "bob@x.com")},
		{sampleClient(3, "Cid", "cid@x.com")},
	}
	gw := &fakeGateway[apiprotocol.Client]{}
	gw.listFn = func() ([]*apiprotocol.Client, error) {
		next := responses[0]
		if len(responses) > 1 {
			responses = responses[1:]
		}
		return next, nil
	}
	vm := NewClientsViewModel(gw, logging.NewNop())

	vm.Load()
	awaitStatus(t, vm.Status, "Loaded 2 clients")

	vm.Load()
	awaitStatus(t, vm.Status, "Loaded 1 clients")

	items := vm.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].ID)
}

func TestLoadFailureLeavesItemsUntouched(t *testing.T) {
	gw := &fakeGateway[apiprotocol.Client]{}
	gw.listFn = func() ([]*apiprotocol.Client, error) {
		return []*apiprotocol.Client{sampleClient(1, "Ann", "ann@x.com")}, nil
	}
	vm := NewClientsViewModel(gw, logging.NewNop())

	vm.Load()
	awaitStatus(t, vm.Status, "Loaded 1 clients")

	gw.listFn = func() ([]*apiprotocol.Client, error) {
		return nil, errors.New("connection refused")
	}
	vm.Load()
	awaitStatus(t, vm.Status, "Load failed: connection refused")

	items := vm.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].ID)
}

func TestCreateClientSuccess(t *testing.T) {
	gw := &fakeGateway[apiprotocol.Client]{}
	gw.createFn = func(draft *apiprotocol.Client) (*apiprotocol.Client, error) {
		require.Equal(t, 0, draft.ID)
		require.Equal(t, "Ann", draft.Name)
		require.Equal(t, "ann@x.com", draft.Email)
		require.Nil(t, draft.Phone)
		created := *draft
		created.ID = 7
		created.CreatedAt = strPtr("2025-06-01T00:00:00Z")
		return &created, nil
	}
	vm := NewClientsViewModel(gw, logging.NewNop())

	vm.SetField("name", "Ann")
	vm.SetField("email", "ann@x.com")
	vm.Create()

	awaitStatus(t, vm.Status, "Created client ID 7")
	items := vm.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].ID)
	require.NotNil(t, vm.Selected())
	assert.Equal(t, 7, vm.Selected().ID)
	// selection transition pulled the server record into the form
	assert.Equal(t, "2025-06-01T00:00:00Z", vm.Field("created_at"))
}

func TestCreateWithBlankNameMakesNoNetworkCall(t *testing.T) {
	gw := &fakeGateway[apiprotocol.Product]{}
	vm := NewProductsViewModel(gw, logging.NewNop())

	vm.SetField("price", "5")
	vm.SetField("stock", "1")
	vm.Create()

	assert.Equal(t, "Name is required", vm.Status())
	assert.Empty(t, gw.Calls())
	assert.Empty(t, vm.Items())
}

func TestCreateFailureLeavesItemsUntouched(t *testing.T) {
	gw := &fakeGateway[apiprotocol.Client]{}
	gw.createFn = func(*apiprotocol.Client) (*apiprotocol.Client, error) {
		return nil, errors.New("HTTP 500: {\"error\":\"Internal server error\"}")
	}
	vm := NewClientsViewModel(gw, logging.NewNop())

	vm.SetField("name", "Ann")
	vm.SetField("email", "ann@x.com")
	vm.Create()

	awaitStatus(t, vm.Status, "Create failed: HTTP 500: {\"error\":\"Internal server error\"}")
	assert.Empty(t, vm.Items())
	assert.False(t, vm.HasSelection())
}

func TestUpdateReplacesAtSameIndexByIdentity(t *testing.T) {
	ann := sampleClient(1, "Ann", "ann@x.com")
	bob := sampleClient(2, "Bob", "bob@x.com")
	cid := sampleClient(3, "Cid", "cid@x.com")

	gw := &fakeGateway[apiprotocol.Client]{}
	gw.listFn = func() ([]*apiprotocol.Client, error) {
		return []*apiprotocol.Client{ann, bob, cid}, nil
	}
	gw.updateFn = func(id int, draft *apiprotocol.Client) (*apiprotocol.Client, error) {
		require.Equal(t, 2, id)
		updated := *draft
		updated.ID = id
		updated.UpdatedAt = strPtr("2025-06-02T00:00:00Z")
		return &updated, nil
	}
	vm := NewClientsViewModel(gw, logging.NewNop())

	vm.Load()
	awaitStatus(t, vm.Status, "Loaded 3 clients")

	vm.Select(bob)
	vm.SetField("name", "Robert")
	vm.Update()

	awaitStatus(t, vm.Status, "Updated client ID 2")
	items := vm.Items()
	require.Len(t, items, 3)
	assert.Same(t, ann, items[0])
	assert.Same(t, cid, items[2])
	assert.NotSame(t, bob, items[1])
	assert.Equal(t, "Robert", items[1].Name)
	assert.Same(t, items[1], vm.Selected())
}

func TestUpdateWithoutSelection(t *testing.T) {
	gw := &fakeGateway[apiprotocol.Client]{}
	vm := NewClientsViewModel(gw, logging.NewNop())

	vm.Update()
	assert.Equal(t, "No client selected", vm.Status())
	assert.Empty(t, gw.Calls())
}

func TestUpdateFailureLeavesStateUntouched(t *testing.T) {
	ann := sampleClient(1, "Ann", "ann@x.com")
	gw := &fakeGateway[apiprotocol.Client]{}
	gw.listFn = func() ([]*apiprotocol.Client, error) {
		return []*apiprotocol.Client{ann}, nil
	}
	gw.updateFn = func(int, *apiprotocol.Client) (*apiprotocol.Client, error) {
		return nil, errors.New("HTTP 404: {\"error\":\"Not found\"}")
	}
	vm := NewClientsViewModel(gw, logging.NewNop())

	vm.Load()
	awaitStatus(t, vm.Status, "Loaded 1 clients")
	vm.Select(ann)
	vm.Update()

	awaitStatus(t, vm.Status, "Update failed: HTTP 404: {\"error\":\"Not found\"}")
	items := vm.Items()
	require.Len(t, items, 1)
	assert.Same(t, ann, items[0])
	assert.Same(t, ann, vm.Selected())
}

func TestDeleteRemovesExactlyOneAndClearsSelection(t *testing.T) {
	ann := sampleClient(1, "Ann", "ann@x.com")
	bob := sampleClient(2, "Bob", "bob@x.com")

	gw := &fakeGateway[apiprotocol.Client]{}
	gw.listFn = func() ([]*apiprotocol.Client, error) {
		return []*apiprotocol.Client{ann, bob}, nil
	}
	gw.deleteFn = func(id int) error {
		require.Equal(t, 2, id)
		return nil
	}
	vm := NewClientsViewModel(gw, logging.NewNop())

	vm.Load()
	awaitStatus(t, vm.Status, "Loaded 2 clients")
	vm.Select(bob)
	vm.Delete()

	awaitStatus(t, vm.Status, "Deleted client ID 2")
	items := vm.Items()
	require.Len(t, items, 1)
	assert.Same(t, ann, items[0])
	assert.False(t, vm.HasSelection())
	assert.Equal(t, "", vm.Field("name"))
}

func TestDeleteFailureKeepsEntity(t *testing.T) {
	ann := sampleClient(1, "Ann", "ann@x.com")
	gw := &fakeGateway[apiprotocol.Client]{}
	gw.listFn = func() ([]*apiprotocol.Client, error) {
		return []*apiprotocol.Client{ann}, nil
	}
	gw.deleteFn = func(int) error {
		return errors.New("connection reset")
	}
	vm := NewClientsViewModel(gw, logging.NewNop())

	vm.Load()
	awaitStatus(t, vm.Status, "Loaded 1 clients")
	vm.Select(ann)
	vm.Delete()

	awaitStatus(t, vm.Status, "Delete failed: connection reset")
	assert.Len(t, vm.Items(), 1)
	assert.Same(t, ann, vm.Selected())
}

func TestCreateOrderValidation(t *testing.T) {
	gw := &fakeGateway[apiprotocol.Order]{}
	vm := NewOrdersViewModel(gw, logging.NewNop())

	vm.Create()
	assert.Equal(t, "Order number is required", vm.Status())

	vm.SetField("order_number", "ORD-1")
	vm.Create()
	assert.Equal(t, "Valid client ID is required", vm.Status())
	assert.Empty(t, gw.Calls())
}

func TestCreateOrderSendsZeroAmounts(t *testing.T) {
	gw := &fakeGateway[apiprotocol.Order]{}
	gw.createFn = func(draft *apiprotocol.Order) (*apiprotocol.Order, error) {
		require.True(t, draft.SubtotalAmount.IsZero())
		require.True(t, draft.TotalAmount.IsZero())
		require.Equal(t, apiprotocol.OrderStatusPending, draft.OrderStatus)
		require.Equal(t, "EUR", draft.CurrencyCode)
		created := *draft
		created.ID = 11
		created.TotalAmount = decimal.RequireFromString("19.90")
		return &created, nil
	}
	vm := NewOrdersViewModel(gw, logging.NewNop())

	vm.SetField("order_number", "ORD-1")
	vm.SetField("client_id", "4")
	vm.Create()

	awaitStatus(t, vm.Status, "Created order ID 11")
	// server-computed money lands back in the form untouched
	assert.Equal(t, "19.9", vm.Field("total_amount"))
}
