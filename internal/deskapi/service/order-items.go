package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"orderdesk/internal/deskapi/data"
)

// OrderItems manages the line items of an order. Every mutation runs in one
// transaction together with the order amounts recalculation, so subtotal and
// total never drift from the stored line items.
type OrderItems struct {
	repository         Repository
	transactionManager TransactionManager
}

func NewOrderItems(repository Repository, transactionManager TransactionManager) *OrderItems {
	return &OrderItems{
		repository:         repository,
		transactionManager: transactionManager,
	}
}

func (s *OrderItems) List(ctx context.Context, orderID int) ([]data.OrderProduct, error) {
	if _, err := s.repository.GetOrder(ctx, orderID); err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return nil, ErrNotFound
		default:
			return nil, fmt.Errorf("error getting order: %w", err)
		}
	}
	items, err := s.repository.ListOrderProducts(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("error listing order items: %w", err)
	}
	return items, nil
}

func (s *OrderItems) Add(ctx context.Context, orderID int, draft data.OrderProduct) (data.OrderProduct, error) {
	if err := validateOrderItem(&draft); err != nil {
		return data.OrderProduct{}, err
	}
	draft.OrderID = orderID
	draft.LineTotal = draft.UnitPrice.Mul(decimal.NewFromInt(int64(draft.Quantity)))

	var created data.OrderProduct
	err := s.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.repository.GetOrder(ctx, orderID); err != nil {
			return err
		}
		var err error
		created, err = s.repository.InsertOrderProduct(ctx, draft)
		if err != nil {
			return err
		}
		return s.repository.RecalculateOrderAmounts(ctx, orderID)
	})
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return data.OrderProduct{}, ErrNotFound
		case errors.Is(err, data.ErrForeignKeyViolation):
			return data.OrderProduct{}, invalidField("product_id")
		default:
			return data.OrderProduct{}, fmt.Errorf("error adding order item: %w", err)
		}
	}
	return created, nil
}

func (s *OrderItems) Update(ctx context.Context, orderID, itemID int, draft data.OrderProduct) (data.OrderProduct, error) {
	if err := validateOrderItem(&draft); err != nil {
		return data.OrderProduct{}, err
	}
	draft.ID = itemID
	draft.OrderID = orderID
	draft.LineTotal = draft.UnitPrice.Mul(decimal.NewFromInt(int64(draft.Quantity)))

	var updated data.OrderProduct
	err := s.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.repository.UpdateOrderProduct(ctx, draft)
		if err != nil {
			return err
		}
		return s.repository.RecalculateOrderAmounts(ctx, orderID)
	})
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return data.OrderProduct{}, ErrNotFound
		case errors.Is(err, data.ErrForeignKeyViolation):
			return data.OrderProduct{}, invalidField("product_id")
		default:
			return data.OrderProduct{}, fmt.Errorf("error updating order item: %w", err)
		}
	}
	return updated, nil
}

func (s *OrderItems) Delete(ctx context.Context, orderID, itemID int) error {
	err := s.transactionManager.DoWithTransaction(ctx, func(ctx context.Context) error {
		if err := s.repository.DeleteOrderProduct(ctx, orderID, itemID); err != nil {
			return err
		}
		return s.repository.RecalculateOrderAmounts(ctx, orderID)
	})
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return ErrNotFound
		default:
			return fmt.Errorf("error deleting order item: %w", err)
		}
	}
	return nil
}

func validateOrderItem(item *data.OrderProduct) error {
	if item.ProductID <= 0 {
		return invalidField("product_id")
	}
	if item.Quantity <= 0 {
		return invalidField("quantity")
	}
	if item.UnitPrice.IsNegative() {
		return invalidField("unit_price")
	}
	return nil
}
