package handlers

import (
	"time"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/internal/deskapi/data"
)

func formatTime(t time.Time) *string {
	s := t.Format(time.RFC3339)
	return &s
}

func formatOptTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

func parseOptTime(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		return nil
	}
	return &t
}

func clientToWire(client data.Client) apiprotocol.Client {
	return apiprotocol.Client{
		ID:        client.ID,
		Name:      client.Name,
		Email:     client.Email,
		Phone:     client.Phone,
		Address:   client.Address,
		CreatedAt: formatTime(client.CreatedAt),
		UpdatedAt: formatTime(client.UpdatedAt),
	}
}

func clientFromWire(client apiprotocol.Client) data.Client {
	return data.Client{
		ID:      client.ID,
		Name:    client.Name,
		Email:   client.Email,
		Phone:   client.Phone,
		Address: client.Address,
	}
}

func productToWire(product data.Product) apiprotocol.Product {
	return apiprotocol.Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		ProviderID:  product.ProviderID,
		CreatedAt:   formatTime(product.CreatedAt),
		UpdatedAt:   formatTime(product.UpdatedAt),
	}
}

func productFromWire(product apiprotocol.Product) data.Product {
	return data.Product{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Stock:       product.Stock,
		ProviderID:  product.ProviderID,
	}
}

func orderToWire(order data.Order) apiprotocol.Order {
	return apiprotocol.Order{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		ClientID:        order.ClientID,
		OrderDate:       formatOptTime(order.OrderDate),
		OrderStatus:     string(order.OrderStatus),
		PaymentMethod:   string(order.PaymentMethod),
		CurrencyCode:    order.CurrencyCode,
		SubtotalAmount:  order.SubtotalAmount,
		DiscountAmount:  order.DiscountAmount,
		TaxAmount:       order.TaxAmount,
		TotalAmount:     order.TotalAmount,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
		Notes:           order.Notes,
		CreatedAt:       formatTime(order.CreatedAt),
		UpdatedAt:       formatTime(order.UpdatedAt),
	}
}

func orderFromWire(order apiprotocol.Order) data.Order {
	return data.Order{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		ClientID:        order.ClientID,
		OrderDate:       parseOptTime(order.OrderDate),
		OrderStatus:     data.OrderStatus(order.OrderStatus),
		PaymentMethod:   data.PaymentMethod(order.PaymentMethod),
		CurrencyCode:    order.CurrencyCode,
		DiscountAmount:  order.DiscountAmount,
		TaxAmount:       order.TaxAmount,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
		Notes:           order.Notes,
	}
}

func orderProductToWire(item data.OrderProduct) apiprotocol.OrderProduct {
	return apiprotocol.OrderProduct{
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
		LineTotal: item.LineTotal,
	}
}

func orderProductFromWire(item apiprotocol.OrderProduct) data.OrderProduct {
	return data.OrderProduct{
		ID:        item.ID,
		OrderID:   item.OrderID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
}
