// Package memrepository is an in-memory Repository used by the development
// server mode without a database and by the tests. It mirrors the SQL
// repository behavior: newest-first listings, generated timestamps, unique
// and foreign key violations surfaced as the data package sentinels.
package memrepository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"orderdesk/internal/deskapi/data"
)

type MemRepository struct {
	mux sync.Mutex

	clients       map[int]data.Client
	products      map[int]data.Product
	orders        map[int]data.Order
	orderProducts map[int]data.OrderProduct
	nextID        int
}

func New() *MemRepository {
	return &MemRepository{
		clients:       make(map[int]data.Client),
		products:      make(map[int]data.Product),
		orders:        make(map[int]data.Order),
		orderProducts: make(map[int]data.OrderProduct),
		nextID:        1,
	}
}

// TransactionManager satisfies the service transaction contract. The store
// is a single mutex-guarded map set, so there is nothing to roll back.
type TransactionManager struct{}

func NewTransactionsManager() *TransactionManager {
	return &TransactionManager{}
}

func (tm *TransactionManager) DoWithTransaction(ctx context.Context, f func(ctx context.Context) error) error {
	return f(ctx)
}

func (m *MemRepository) allocateID() int {
	id := m.nextID
	m.nextID++
	return id
}

func (m *MemRepository) ListClients(_ context.Context) ([]data.Client, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	result := make([]data.Client, 0, len(m.clients))
	for _, client := range m.clients {
		result = append(result, client)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MemRepository) GetClient(_ context.Context, id int) (data.Client, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	client, ok := m.clients[id]
	if !ok {
		return data.Client{}, data.ErrNotFound
	}
	return client, nil
}

func (m *MemRepository) InsertClient(_ context.Context, draft data.Client) (data.Client, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	for _, existing := range m.clients {
		if existing.Email == draft.Email {
			return data.Client{}, data.ErrUniqueConstraintViolation
		}
	}
	now := time.Now()
	draft.ID = m.allocateID()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	m.clients[draft.ID] = draft
	return draft, nil
}

func (m *MemRepository) UpdateClient(_ context.Context, client data.Client) (data.Client, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	existing, ok := m.clients[client.ID]
	if !ok {
		return data.Client{}, data.ErrNotFound
	}
	for _, other := range m.clients {
		if other.ID != client.ID && other.Email == client.Email {
			return data.Client{}, data.ErrUniqueConstraintViolation
		}
	}
	client.CreatedAt = existing.CreatedAt
	client.UpdatedAt = time.Now()
	m.clients[client.ID] = client
	return client, nil
}

func (m *MemRepository) DeleteClient(_ context.Context, id int) error {
	m.mux.Lock()
	defer m.mux.Unlock()

	if _, ok := m.clients[id]; !ok {
		return data.ErrNotFound
	}
	delete(m.clients, id)
	return nil
}

func (m *MemRepository) ListProducts(_ context.Context) ([]data.Product, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	result := make([]data.Product, 0, len(m.products))
	for _, product := range m.products {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MemRepository) GetProduct(_ context.Context, id int) (data.Product, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	product, ok := m.products[id]
	if !ok {
		return data.Product{}, data.ErrNotFound
	}
	return product, nil
}

func (m *MemRepository) InsertProduct(_ context.Context, draft data.Product) (data.Product, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	now := time.Now()
	draft.ID = m.allocateID()
	draft.CreatedAt = now
	draft.UpdatedAt = now
	m.products[draft.ID] = draft
	return draft, nil
}

func (m *MemRepository) UpdateProduct(_ context.Context, product data.Product) (data.Product, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	existing, ok := m.products[product.ID]
	if !ok {
		return data.Product{}, data.ErrNotFound
	}
	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now()
	m.products[product.ID] = product
	return product, nil
}

func (m *MemRepository) DeleteProduct(_ context.Context, id int) error {
	m.mux.Lock()
	defer m.mux.Unlock()

	if _, ok := m.products[id]; !ok {
		return data.ErrNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *MemRepository) ListOrders(_ context.Context) ([]data.Order, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	result := make([]data.Order, 0, len(m.orders))
	for _, order := range m.orders {
		result = append(result, order)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (m *MemRepository) GetOrder(_ context.Context, id int) (data.Order, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return data.Order{}, data.ErrNotFound
	}
	return order, nil
}

func (m *MemRepository) InsertOrder(_ context.Context, draft data.Order) (data.Order, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	if _, ok := m.clients[draft.ClientID]; !ok {
		return data.Order{}, data.ErrForeignKeyViolation
	}
	for _, existing := range m.orders {
		if existing.OrderNumber == draft.OrderNumber {
			return data.Order{}, data.ErrUniqueConstraintViolation
		}
	}
	now := time.Now()
	draft.ID = m.allocateID()
	draft.SubtotalAmount = decimal.Zero
	draft.TotalAmount = decimal.Zero
	draft.CreatedAt = now
	draft.UpdatedAt = now
	m.orders[draft.ID] = draft
	return draft, nil
}

func (m *MemRepository) UpdateOrder(_ context.Context, order data.Order) (data.Order, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	existing, ok := m.orders[order.ID]
	if !ok {
		return data.Order{}, data.ErrNotFound
	}
	existing.OrderStatus = order.OrderStatus
	existing.PaymentMethod = order.PaymentMethod
	existing.CurrencyCode = order.CurrencyCode
	existing.DiscountAmount = order.DiscountAmount
	existing.ShippingAddress = order.ShippingAddress
	existing.BillingAddress = order.BillingAddress
	existing.Notes = order.Notes
	existing.UpdatedAt = time.Now()
	m.orders[order.ID] = existing
	return existing, nil
}

func (m *MemRepository) DeleteOrder(_ context.Context, id int) error {
	m.mux.Lock()
	defer m.mux.Unlock()

	if _, ok := m.orders[id]; !ok {
		return data.ErrNotFound
	}
	delete(m.orders, id)
	for itemID, item := range m.orderProducts {
		if item.OrderID == id {
			delete(m.orderProducts, itemID)
		}
	}
	return nil
}

func (m *MemRepository) ListOrderProducts(_ context.Context, orderID int) ([]data.OrderProduct, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	result := make([]data.OrderProduct, 0)
	for _, item := range m.orderProducts {
		if item.OrderID == orderID {
			result = append(result, item)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *MemRepository) GetOrderProduct(_ context.Context, orderID, itemID int) (data.OrderProduct, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	item, ok := m.orderProducts[itemID]
	if !ok || item.OrderID != orderID {
		return data.OrderProduct{}, data.ErrNotFound
	}
	return item, nil
}

func (m *MemRepository) InsertOrderProduct(_ context.Context, draft data.OrderProduct) (data.OrderProduct, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	if _, ok := m.orders[draft.OrderID]; !ok {
		return data.OrderProduct{}, data.ErrForeignKeyViolation
	}
	if _, ok := m.products[draft.ProductID]; !ok {
		return data.OrderProduct{}, data.ErrForeignKeyViolation
	}
	draft.ID = m.allocateID()
	m.orderProducts[draft.ID] = draft
	return draft, nil
}

func (m *MemRepository) UpdateOrderProduct(_ context.Context, item data.OrderProduct) (data.OrderProduct, error) {
	m.mux.Lock()
	defer m.mux.Unlock()

	existing, ok := m.orderProducts[item.ID]
	if !ok || existing.OrderID != item.OrderID {
		return data.OrderProduct{}, data.ErrNotFound
	}
	if _, ok := m.products[item.ProductID]; !ok {
		return data.OrderProduct{}, data.ErrForeignKeyViolation
	}
	m.orderProducts[item.ID] = item
	return item, nil
}

func (m *MemRepository) DeleteOrderProduct(_ context.Context, orderID, itemID int) error {
	m.mux.Lock()
	defer m.mux.Unlock()

	item, ok := m.orderProducts[itemID]
	if !ok || item.OrderID != orderID {
		return data.ErrNotFound
	}
	delete(m.orderProducts, itemID)
	return nil
}

func (m *MemRepository) RecalculateOrderAmounts(_ context.Context, orderID int) error {
	m.mux.Lock()
	defer m.mux.Unlock()

	order, ok := m.orders[orderID]
	if !ok {
		return data.ErrNotFound
	}
	subtotal := decimal.Zero
	for _, item := range m.orderProducts {
		if item.OrderID == orderID {
			subtotal = subtotal.Add(item.LineTotal)
		}
	}
	order.SubtotalAmount = subtotal
	order.TotalAmount = subtotal.Sub(order.DiscountAmount).Add(order.TaxAmount)
	order.UpdatedAt = time.Now()
	m.orders[orderID] = order
	return nil
}
