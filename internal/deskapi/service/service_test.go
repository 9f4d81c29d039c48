package service_test

import (
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderdesk/internal/deskapi/data"
	"orderdesk/internal/deskapi/data/memrepository"
	"orderdesk/internal/deskapi/service"
)

func newServices(t *testing.T) (*service.Clients, *service.Products, *service.Orders, *service.OrderItems) {
	t.Helper()
	repo := memrepository.New()
	tm := memrepository.NewTransactionsManager()
	return service.NewClients(repo),
		service.NewProducts(repo),
		service.NewOrders(repo, tm),
		service.NewOrderItems(repo, tm)
}

func ptr[T any](v T) *T {
	return &v
}

func mustCreateClient(t *testing.T, clients *service.Clients, name, email string) data.Client {
	t.Helper()
	created, err := clients.Create(context.Background(), data.Client{Name: name, Email: email})
	require.NoError(t, err)
	return created
}

func mustCreateOrder(t *testing.T, orders *service.Orders, clientID int) data.Order {
	t.Helper()
	created, err := orders.Create(context.Background(), data.Order{ClientID: clientID})
	require.NoError(t, err)
	return created
}

func TestClientValidation(t *testing.T) {
	clients, _, _, _ := newServices(t)

	tests := []struct {
		name   string
		draft  data.Client
		reason string
	}{
		{name: "blank name", draft: data.Client{Email: "a@b.com"}, reason: "Invalid name"},
		{name: "blank email", draft: data.Client{Name: "Ann"}, reason: "Invalid email"},
		{name: "email without at sign", draft: data.Client{Name: "Ann", Email: "ann"}, reason: "Invalid email"},
		{name: "name too long", draft: data.Client{Name: strings.Repeat("x", 101), Email: "a@b.com"}, reason: "Invalid name"},
		{name: "email too long", draft: data.Client{Name: "Ann", Email: strings.Repeat("x", 145) + "@y.com"}, reason: "Invalid email"},
		{name: "phone too long", draft: data.Client{Name: "Ann", Email: "a@b.com", Phone: ptr(strings.Repeat("9", 31))}, reason: "Invalid phone"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := clients.Create(context.Background(), tc.draft)
			var validationErr *service.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.reason, validationErr.Reason)
		})
	}

	_, err := clients.Create(context.Background(), data.Client{
		Name:  strings.Repeat("x", 100),
		Email: strings.Repeat("x", 144) + "@y.com",
		Phone: ptr(strings.Repeat("9", 30)),
	})
	assert.NoError(t, err)
}

func TestClientDuplicateEmail(t *testing.T) {
	clients, _, _, _ := newServices(t)
	mustCreateClient(t, clients, "Ann", "ann@x.com")

	_, err := clients.Create(context.Background(), data.Client{Name: "Other", Email: "ann@x.com"})
	assert.ErrorIs(t, err, service.ErrEmailTaken)
}

func TestClientGetAndDeleteNotFound(t *testing.T) {
	clients, _, _, _ := newServices(t)

	_, err := clients.Get(context.Background(), 99)
	assert.ErrorIs(t, err, service.ErrNotFound)
	assert.ErrorIs(t, clients.Delete(context.Background(), 99), service.ErrNotFound)
}

func TestProductValidation(t *testing.T) {
	_, products, _, _ := newServices(t)

	tests := []struct {
		name   string
		draft  data.Product
		reason string
	}{
		{name: "negative price", draft: data.Product{Name: "Widget", Price: decimal.NewFromInt(-1)}, reason: "Invalid price"},
		{name: "price above cap", draft: data.Product{Name: "Widget", Price: decimal.RequireFromString("1000000.00")}, reason: "Invalid price"},
		{name: "negative stock", draft: data.Product{Name: "Widget", Stock: -2}, reason: "Invalid stock"},
		{name: "name too long", draft: data.Product{Name: strings.Repeat("x", 101)}, reason: "Invalid name"},
		{name: "zero provider", draft: data.Product{Name: "Widget", ProviderID: ptr(0)}, reason: "Invalid provider_id"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := products.Create(context.Background(), tc.draft)
			var validationErr *service.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.reason, validationErr.Reason)
		})
	}

	_, err := products.Create(context.Background(), data.Product{
		Name:  strings.Repeat("x", 100),
		Price: decimal.RequireFromString("999999.99"),
	})
	assert.NoError(t, err)
}

func TestOrderCreateGeneratesNumber(t *testing.T) {
	clients, _, orders, _ := newServices(t)
	client := mustCreateClient(t, clients, "Ann", "ann@x.com")

	created, err := orders.Create(context.Background(), data.Order{ClientID: client.ID})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(created.OrderNumber, "ORD-"))
	assert.Equal(t, data.PendingStatus, created.OrderStatus)
	assert.Equal(t, data.CreditCardMethod, created.PaymentMethod)
	assert.Equal(t, "EUR", created.CurrencyCode)
	assert.True(t, created.TotalAmount.IsZero())
}

func TestOrderCreateKeepsProvidedNumber(t *testing.T) {
	clients, _, orders, _ := newServices(t)
	client := mustCreateClient(t, clients, "Ann", "ann@x.com")

	created, err := orders.Create(context.Background(), data.Order{
		ClientID:    client.ID,
		OrderNumber: "SO-1001",
	})
	require.NoError(t, err)
	assert.Equal(t, "SO-1001", created.OrderNumber)

	_, err = orders.Create(context.Background(), data.Order{ClientID: client.ID, OrderNumber: "SO-1001"})
	assert.ErrorIs(t, err, service.ErrOrderNumberTaken)
}

func TestOrderCreateUnknownClient(t *testing.T) {
	_, _, orders, _ := newServices(t)

	_, err := orders.Create(context.Background(), data.Order{ClientID: 42})
	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid client_id", validationErr.Reason)
}

func TestOrderCreateRejectsBadEnums(t *testing.T) {
	_, _, orders, _ := newServices(t)

	tests := []struct {
		name   string
		draft  data.Order
		reason string
	}{
		{
			name:   "bad status",
			draft:  data.Order{ClientID: 1, OrderStatus: "unknown"},
			reason: "Invalid order_status",
		},
		{
			name:   "bad payment method",
			draft:  data.Order{ClientID: 1, PaymentMethod: "barter"},
			reason: "Invalid payment_method",
		},
		{
			name:   "bad currency",
			draft:  data.Order{ClientID: 1, CurrencyCode: "EURO"},
			reason: "Invalid currency_code",
		},
		{
			name:   "negative discount",
			draft:  data.Order{ClientID: 1, DiscountAmount: decimal.NewFromInt(-1)},
			reason: "Invalid discount_amount",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := orders.Create(context.Background(), tc.draft)
			var validationErr *service.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tc.reason, validationErr.Reason)
		})
	}
}

func TestOrderUpdateKeepsNumberAndClient(t *testing.T) {
	clients, products, orders, items := newServices(t)
	client := mustCreateClient(t, clients, "Ann", "ann@x.com")

	order, err := orders.Create(context.Background(), data.Order{
		ClientID:    client.ID,
		OrderNumber: "ORD-KEEP",
	})
	require.NoError(t, err)

	product, err := products.Create(context.Background(), data.Product{
		Name:  "Widget",
		Price: decimal.RequireFromString("4.50"),
		Stock: 10,
	})
	require.NoError(t, err)

	_, err = items.Add(context.Background(), order.ID, data.OrderProduct{
		ProductID: product.ID,
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("4.50"),
	})
	require.NoError(t, err)

	updated, err := orders.Update(context.Background(), data.Order{
		ID:             order.ID,
		OrderNumber:    "ORD-HIJACKED",
		ClientID:       999,
		OrderStatus:    data.PaidStatus,
		DiscountAmount: decimal.RequireFromString("2.00"),
	})
	require.NoError(t, err)

	assert.Equal(t, "ORD-KEEP", updated.OrderNumber)
	assert.Equal(t, client.ID, updated.ClientID)
	assert.Equal(t, data.PaidStatus, updated.OrderStatus)
	assert.True(t, updated.SubtotalAmount.Equal(decimal.RequireFromString("9.00")))
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("7.00")))
}

func TestOrderItemsMaintainAmounts(t *testing.T) {
	clients, products, orders, items := newServices(t)
	client := mustCreateClient(t, clients, "Ann", "ann@x.com")
	order := mustCreateOrder(t, orders, client.ID)

	product, err := products.Create(context.Background(), data.Product{
		Name:  "Widget",
		Price: decimal.RequireFromString("4.50"),
		Stock: 10,
	})
	require.NoError(t, err)

	added, err := items.Add(context.Background(), order.ID, data.OrderProduct{
		ProductID: product.ID,
		Quantity:  2,
		UnitPrice: decimal.RequireFromString("4.50"),
	})
	require.NoError(t, err)
	assert.True(t, added.LineTotal.Equal(decimal.RequireFromString("9.00")))

	refreshed, err := orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.SubtotalAmount.Equal(decimal.RequireFromString("9.00")))
	assert.True(t, refreshed.TotalAmount.Equal(decimal.RequireFromString("9.00")))

	updated, err := items.Update(context.Background(), order.ID, added.ID, data.OrderProduct{
		ProductID: product.ID,
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("4.50"),
	})
	require.NoError(t, err)
	assert.True(t, updated.LineTotal.Equal(decimal.RequireFromString("13.50")))

	refreshed, err = orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.SubtotalAmount.Equal(decimal.RequireFromString("13.50")))

	require.NoError(t, items.Delete(context.Background(), order.ID, added.ID))

	refreshed, err = orders.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, refreshed.SubtotalAmount.IsZero())
	assert.True(t, refreshed.TotalAmount.IsZero())
}

func TestOrderItemValidation(t *testing.T) {
	clients, _, orders, items := newServices(t)
	client := mustCreateClient(t, clients, "Ann", "ann@x.com")
	order := mustCreateOrder(t, orders, client.ID)

	_, err := items.Add(context.Background(), order.ID, data.OrderProduct{ProductID: 1, Quantity: 0})
	var validationErr *service.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid quantity", validationErr.Reason)

	_, err = items.Add(context.Background(), order.ID, data.OrderProduct{ProductID: 99, Quantity: 1})
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Invalid product_id", validationErr.Reason)
}

func TestOrderItemsListUnknownOrder(t *testing.T) {
	_, _, _, items := newServices(t)

	_, err := items.List(context.Background(), 7)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
