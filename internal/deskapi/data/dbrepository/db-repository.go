package dbrepository

import (
	"context"
	_ "embed"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"orderdesk/internal/deskapi/data"
	"orderdesk/pkg/logging"
)

type DBStorage interface {
	Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, query string, args ...any) (pgx.Row, error)
	Query(ctx context.Context, query string, args ...any) (pgx.Rows, error)
	QueryValue(ctx context.Context, query string, args []any, dest []any) error
}

type DBRepository struct {
	storage DBStorage
	logger  *logging.ZapLogger
}

func New(storage DBStorage, logger *logging.ZapLogger) *DBRepository {
	return &DBRepository{
		storage: storage,
		logger:  logger,
	}
}

//go:embed sql/select_clients.sql
var selectClientsQuery string

func (db *DBRepository) ListClients(ctx context.Context) ([]data.Client, error) {
	rows, err := db.storage.Query(ctx, selectClientsQuery)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.Client, 0)
	for rows.Next() {
		var client data.Client
		if err := scanClient(rows, &client); err != nil {
			return nil, handleSQLError(err)
		}
		result = append(result, client)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

//go:embed sql/select_client.sql
var selectClientQuery string

func (db *DBRepository) GetClient(ctx context.Context, id int) (data.Client, error) {
	row, err := db.storage.QueryRow(ctx, selectClientQuery, id)
	if err != nil {
		return data.Client{}, handleSQLError(err)
	}
	var client data.Client
	if err := scanClient(row, &client); err != nil {
		return data.Client{}, handleSQLError(err)
	}
	return client, nil
}

//go:embed sql/insert_client.sql
var insertClientQuery string

func (db *DBRepository) InsertClient(ctx context.Context, draft data.Client) (data.Client, error) {
	row, err := db.storage.QueryRow(ctx, insertClientQuery, draft.Name, draft.Email, draft.Phone, draft.Address)
	if err != nil {
		return data.Client{}, handleSQLError(err)
	}
	var client data.Client
	if err := scanClient(row, &client); err != nil {
		return data.Client{}, handleSQLError(err)
	}
	return client, nil
}

//go:embed sql/update_client.sql
var updateClientQuery string

func (db *DBRepository) UpdateClient(ctx context.Context, client data.Client) (data.Client, error) {
	row, err := db.storage.QueryRow(
		ctx,
		updateClientQuery,
		client.ID,
		client.Name,
		client.Email,
		client.Phone,
		client.Address,
	)
	if err != nil {
		return data.Client{}, handleSQLError(err)
	}
	var updated data.Client
	if err := scanClient(row, &updated); err != nil {
		return data.Client{}, handleSQLError(err)
	}
	return updated, nil
}

//go:embed sql/delete_client.sql
var deleteClientQuery string

func (db *DBRepository) DeleteClient(ctx context.Context, id int) error {
	tag, err := db.storage.Exec(ctx, deleteClientQuery, id)
	if err != nil {
		return handleSQLError(err)
	}
	if tag.RowsAffected() == 0 {
		return data.ErrNotFound
	}
	return nil
}

//go:embed sql/select_products.sql
var selectProductsQuery string

func (db *DBRepository) ListProducts(ctx context.Context) ([]data.Product, error) {
	rows, err := db.storage.Query(ctx, selectProductsQuery)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.Product, 0)
	for rows.Next() {
		var product data.Product
		if err := scanProduct(rows, &product); err != nil {
			return nil, handleSQLError(err)
		}
		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

//go:embed sql/select_product.sql
var selectProductQuery string

func (db *DBRepository) GetProduct(ctx context.Context, id int) (data.Product, error) {
	row, err := db.storage.QueryRow(ctx, selectProductQuery, id)
	if err != nil {
		return data.Product{}, handleSQLError(err)
	}
	var product data.Product
	if err := scanProduct(row, &product); err != nil {
		return data.Product{}, handleSQLError(err)
	}
	return product, nil
}

//go:embed sql/insert_product.sql
var insertProductQuery string

func (db *DBRepository) InsertProduct(ctx context.Context, draft data.Product) (data.Product, error) {
	row, err := db.storage.QueryRow(
		ctx,
		insertProductQuery,
		draft.Name,
		draft.Description,
		draft.Price,
		draft.Stock,
		draft.ProviderID,
	)
	if err != nil {
		return data.Product{}, handleSQLError(err)
	}
	var product data.Product
	if err := scanProduct(row, &product); err != nil {
		return data.Product{}, handleSQLError(err)
	}
	return product, nil
}

//go:embed sql/update_product.sql
var updateProductQuery string

func (db *DBRepository) UpdateProduct(ctx context.Context, product data.Product) (data.Product, error) {
	row, err := db.storage.QueryRow(
		ctx,
		updateProductQuery,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.Stock,
		product.ProviderID,
	)
	if err != nil {
		return data.Product{}, handleSQLError(err)
	}
	var updated data.Product
	if err := scanProduct(row, &updated); err != nil {
		return data.Product{}, handleSQLError(err)
	}
	return updated, nil
}

//go:embed sql/delete_product.sql
var deleteProductQuery string

func (db *DBRepository) DeleteProduct(ctx context.Context, id int) error {
	tag, err := db.storage.Exec(ctx, deleteProductQuery, id)
	if err != nil {
		return handleSQLError(err)
	}
	if tag.RowsAffected() == 0 {
		return data.ErrNotFound
	}
	return nil
}

//go:embed sql/select_orders.sql
var selectOrdersQuery string

func (db *DBRepository) ListOrders(ctx context.Context) ([]data.Order, error) {
	rows, err := db.storage.Query(ctx, selectOrdersQuery)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.Order, 0)
	for rows.Next() {
		var order data.Order
		if err := scanOrder(rows, &order); err != nil {
			return nil, handleSQLError(err)
		}
		result = append(result, order)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

//go:embed sql/select_order.sql
var selectOrderQuery string

func (db *DBRepository) GetOrder(ctx context.Context, id int) (data.Order, error) {
	row, err := db.storage.QueryRow(ctx, selectOrderQuery, id)
	if err != nil {
		return data.Order{}, handleSQLError(err)
	}
	var order data.Order
	if err := scanOrder(row, &order); err != nil {
		return data.Order{}, handleSQLError(err)
	}
	return order, nil
}

//go:embed sql/insert_order.sql
var insertOrderQuery string

func (db *DBRepository) InsertOrder(ctx context.Context, draft data.Order) (data.Order, error) {
	row, err := db.storage.QueryRow(
		ctx,
		insertOrderQuery,
		draft.OrderNumber,
		draft.ClientID,
		draft.OrderDate,
		string(draft.OrderStatus),
		string(draft.PaymentMethod),
		draft.CurrencyCode,
		draft.DiscountAmount,
		draft.TaxAmount,
		draft.ShippingAddress,
		draft.BillingAddress,
		draft.Notes,
	)
	if err != nil {
		return data.Order{}, handleSQLError(err)
	}
	var order data.Order
	if err := scanOrder(row, &order); err != nil {
		return data.Order{}, handleSQLError(err)
	}
	return order, nil
}

//go:embed sql/update_order.sql
var updateOrderQuery string

// UpdateOrder writes only the mutable order fields. Order number, client,
// order date and the computed amounts keep their stored values; discount is
// the one amount callers may change.
func (db *DBRepository) UpdateOrder(ctx context.Context, order data.Order) (data.Order, error) {
	row, err := db.storage.QueryRow(
		ctx,
		updateOrderQuery,
		order.ID,
		string(order.OrderStatus),
		string(order.PaymentMethod),
		order.CurrencyCode,
		order.DiscountAmount,
		order.ShippingAddress,
		order.BillingAddress,
		order.Notes,
	)
	if err != nil {
		return data.Order{}, handleSQLError(err)
	}
	var updated data.Order
	if err := scanOrder(row, &updated); err != nil {
		return data.Order{}, handleSQLError(err)
	}
	return updated, nil
}

//go:embed sql/delete_order.sql
var deleteOrderQuery string

func (db *DBRepository) DeleteOrder(ctx context.Context, id int) error {
	tag, err := db.storage.Exec(ctx, deleteOrderQuery, id)
	if err != nil {
		return handleSQLError(err)
	}
	if tag.RowsAffected() == 0 {
		return data.ErrNotFound
	}
	return nil
}

//go:embed sql/select_order_products.sql
var selectOrderProductsQuery string

func (db *DBRepository) ListOrderProducts(ctx context.Context, orderID int) ([]data.OrderProduct, error) {
	rows, err := db.storage.Query(ctx, selectOrderProductsQuery, orderID)
	if err != nil {
		return nil, handleSQLError(err)
	}
	defer rows.Close()

	result := make([]data.OrderProduct, 0)
	for rows.Next() {
		var item data.OrderProduct
		if err := scanOrderProduct(rows, &item); err != nil {
			return nil, handleSQLError(err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, handleSQLError(err)
	}
	return result, nil
}

//go:embed sql/select_order_product.sql
var selectOrderProductQuery string

func (db *DBRepository) GetOrderProduct(ctx context.Context, orderID, itemID int) (data.OrderProduct, error) {
	row, err := db.storage.QueryRow(ctx, selectOrderProductQuery, itemID, orderID)
	if err != nil {
		return data.OrderProduct{}, handleSQLError(err)
	}
	var item data.OrderProduct
	if err := scanOrderProduct(row, &item); err != nil {
		return data.OrderProduct{}, handleSQLError(err)
	}
	return item, nil
}

//go:embed sql/insert_order_product.sql
var insertOrderProductQuery string

func (db *DBRepository) InsertOrderProduct(ctx context.Context, draft data.OrderProduct) (data.OrderProduct, error) {
	row, err := db.storage.QueryRow(
		ctx,
		insertOrderProductQuery,
		draft.OrderID,
		draft.ProductID,
		draft.Quantity,
		draft.UnitPrice,
		draft.LineTotal,
	)
	if err != nil {
		return data.OrderProduct{}, handleSQLError(err)
	}
	var item data.OrderProduct
	if err := scanOrderProduct(row, &item); err != nil {
		return data.OrderProduct{}, handleSQLError(err)
	}
	return item, nil
}

//go:embed sql/update_order_product.sql
var updateOrderProductQuery string

func (db *DBRepository) UpdateOrderProduct(ctx context.Context, item data.OrderProduct) (data.OrderProduct, error) {
	row, err := db.storage.QueryRow(
		ctx,
		updateOrderProductQuery,
		item.ID,
		item.OrderID,
		item.ProductID,
		item.Quantity,
		item.UnitPrice,
		item.LineTotal,
	)
	if err != nil {
		return data.OrderProduct{}, handleSQLError(err)
	}
	var updated data.OrderProduct
	if err := scanOrderProduct(row, &updated); err != nil {
		return data.OrderProduct{}, handleSQLError(err)
	}
	return updated, nil
}

//go:embed sql/delete_order_product.sql
var deleteOrderProductQuery string

func (db *DBRepository) DeleteOrderProduct(ctx context.Context, orderID, itemID int) error {
	tag, err := db.storage.Exec(ctx, deleteOrderProductQuery, itemID, orderID)
	if err != nil {
		return handleSQLError(err)
	}
	if tag.RowsAffected() == 0 {
		return data.ErrNotFound
	}
	return nil
}

//go:embed sql/select_order_items_sum.sql
var selectOrderItemsSumQuery string

//go:embed sql/update_order_amounts.sql
var updateOrderAmountsQuery string

// RecalculateOrderAmounts refreshes the order subtotal and total from the
// stored line items. Callers run it inside the transaction of the line-item
// change it follows.
func (db *DBRepository) RecalculateOrderAmounts(ctx context.Context, orderID int) error {
	var subtotal decimal.Decimal
	err := db.storage.QueryValue(ctx, selectOrderItemsSumQuery, []any{orderID}, []any{&subtotal})
	if err != nil {
		return handleSQLError(err)
	}
	if _, err := db.storage.Exec(ctx, updateOrderAmountsQuery, orderID, subtotal); err != nil {
		return handleSQLError(err)
	}
	return nil
}

func scanClient(row pgx.Row, client *data.Client) error {
	return row.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
}

func scanProduct(row pgx.Row, product *data.Product) error {
	return row.Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.Stock,
		&product.ProviderID,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
}

func scanOrder(row pgx.Row, order *data.Order) error {
	return row.Scan(
		&order.ID,
		&order.OrderNumber,
		&order.ClientID,
		&order.OrderDate,
		&order.OrderStatus,
		&order.PaymentMethod,
		&order.CurrencyCode,
		&order.SubtotalAmount,
		&order.DiscountAmount,
		&order.TaxAmount,
		&order.TotalAmount,
		&order.ShippingAddress,
		&order.BillingAddress,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
}

func scanOrderProduct(row pgx.Row, item *data.OrderProduct) error {
	return row.Scan(
		&item.ID,
		&item.OrderID,
		&item.ProductID,
		&item.Quantity,
		&item.UnitPrice,
		&item.LineTotal,
	)
}

func handleSQLError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return data.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return data.ErrUniqueConstraintViolation
		case "23503":
			return data.ErrForeignKeyViolation
		}
	}
	return err
}
