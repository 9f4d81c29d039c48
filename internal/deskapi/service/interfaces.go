package service

import (
	"context"

	"orderdesk/internal/deskapi/data"
)

type Repository interface {
	ListClients(ctx context.Context) ([]data.Client, error)
	GetClient(ctx context.Context, id int) (data.Client, error)
	InsertClient(ctx context.Context, draft data.Client) (data.Client, error)
	UpdateClient(ctx context.Context, client data.Client) (data.Client, error)
	DeleteClient(ctx context.Context, id int) error

	ListProducts(ctx context.Context) ([]data.Product, error)
	GetProduct(ctx context.Context, id int) (data.Product, error)
	InsertProduct(ctx context.Context, draft data.Product) (data.Product, error)
	UpdateProduct(ctx context.Context, product data.Product) (data.Product, error)
	DeleteProduct(ctx context.Context, id int) error

	ListOrders(ctx context.Context) ([]data.Order, error)
	GetOrder(ctx context.Context, id int) (data.Order, error)
	InsertOrder(ctx context.Context, draft data.Order) (data.Order, error)
	UpdateOrder(ctx context.Context, order data.Order) (data.Order, error)
	DeleteOrder(ctx context.Context, id int) error

	ListOrderProducts(ctx context.Context, orderID int) ([]data.OrderProduct, error)
	GetOrderProduct(ctx context.Context, orderID, itemID int) (data.OrderProduct, error)
	InsertOrderProduct(ctx context.Context, draft data.OrderProduct) (data.OrderProduct, error)
	UpdateOrderProduct(ctx context.Context, item data.OrderProduct) (data.OrderProduct, error)
	DeleteOrderProduct(ctx context.Context, orderID, itemID int) error
	RecalculateOrderAmounts(ctx context.Context, orderID int) error
}

type TransactionManager interface {
	DoWithTransaction(ctx context.Context, f func(ctx context.Context) error) error
}
