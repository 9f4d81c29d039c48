package frontend

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/internal/desk/viewmodel"
	"orderdesk/pkg/logging"
)

type stubGateway[E any] struct {
	list []*E
}

func (g *stubGateway[E]) List(context.Context) ([]*E, error) { return g.list, nil }

func (g *stubGateway[E]) Create(_ context.Context, draft *E) (*E, error) { return draft, nil }

func (g *stubGateway[E]) Update(_ context.Context, _ int, draft *E) (*E, error) {
	return draft, nil
}

func (g *stubGateway[E]) Delete(context.Context, int) error { return nil }

type stubItemsGateway struct {
	list []*apiprotocol.OrderProduct
}

func (g *stubItemsGateway) List(_ context.Context, _ int) ([]*apiprotocol.OrderProduct, error) {
	return g.list, nil
}

func (g *stubItemsGateway) Add(_ context.Context, _ int, draft *apiprotocol.OrderProduct) (*apiprotocol.OrderProduct, error) {
	return draft, nil
}

func (g *stubItemsGateway) Update(_ context.Context, _, _ int, draft *apiprotocol.OrderProduct) (*apiprotocol.OrderProduct, error) {
	return draft, nil
}

func (g *stubItemsGateway) Delete(_ context.Context, _, _ int) error { return nil }

func newTestConsole(t *testing.T, script string) (*Console, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	console := NewConsole(
		strings.NewReader(script),
		out,
		viewmodel.NewClientsViewModel(&stubGateway[apiprotocol.Client]{}, logging.NewNop()),
		viewmodel.NewProductsViewModel(&stubGateway[apiprotocol.Product]{}, logging.NewNop()),
		viewmodel.NewOrdersViewModel(&stubGateway[apiprotocol.Order]{}, logging.NewNop()),
		viewmodel.NewOrderProductsViewModel(&stubItemsGateway{}, logging.NewNop()),
		logging.NewNop(),
	)
	return console, out
}

func TestConsoleSwitchesScreens(t *testing.T) {
	console, out := newTestConsole(t, "products\norders\nitems 3\nbogus\nquit\n")

	require.NoError(t, console.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "screen: clients")
	assert.Contains(t, text, "screen: products")
	assert.Contains(t, text, "screen: orders")
	assert.Contains(t, text, "screen: items of order 3")
	assert.Contains(t, text, `unknown command "bogus"`)
}

func TestConsoleSetEditsAndShowRendersForm(t *testing.T) {
	console, out := newTestConsole(t, "set name Ann Smith\nset email ann@x.com\nshow\nquit\n")

	require.NoError(t, console.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Ann Smith")
	assert.Contains(t, text, "ann@x.com")
	assert.Contains(t, text, "selection: false")
}

func TestConsoleSelectOutOfRange(t *testing.T) {
	console, out := newTestConsole(t, "select 4\nquit\n")

	require.NoError(t, console.Run(context.Background()))
	assert.Contains(t, out.String(), "no row 4")
}

func TestScreenRendersLoadedRows(t *testing.T) {
	gw := &stubGateway[apiprotocol.Client]{list: []*apiprotocol.Client{
		{ID: 1, Name: "Acme", Email: "acme@example.com"},
	}}
	vm := viewmodel.NewClientsViewModel(gw, logging.NewNop())
	screen := NewClientsScreen(vm)

	vm.Load()
	require.Eventually(t, func() bool {
		return len(vm.Items()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	rows := screen.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"1", "Acme", "acme@example.com", ""}, rows[0])

	require.True(t, screen.SelectRow(0))
	assert.True(t, screen.HasSelection())
	assert.Equal(t, "Acme", screen.Field("name"))

	screen.Deselect()
	assert.False(t, screen.HasSelection())
}

func TestItemsScreenScopesOperationsToItsOrder(t *testing.T) {
	price := decimal.RequireFromString("4.50")
	gw := &stubItemsGateway{list: []*apiprotocol.OrderProduct{
		{ID: 21, OrderID: 3, ProductID: 9, Quantity: 2, UnitPrice: price, LineTotal: price.Mul(decimal.NewFromInt(2))},
	}}
	vm := viewmodel.NewOrderProductsViewModel(gw, logging.NewNop())
	screen := NewItemsScreen(vm, 3)

	screen.Load()
	require.Eventually(t, func() bool {
		return len(vm.Items()) == 1
	}, 2*time.Second, 5*time.Millisecond)

	rows := screen.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "21", rows[0][0])
	assert.Equal(t, "9", rows[0][1])
}
