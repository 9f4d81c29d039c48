package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"orderdesk/internal/deskapi/data"
)

var maxProductPrice = decimal.RequireFromString("999999.99")

type Products struct {
	repository Repository
}

func NewProducts(repository Repository) *Products {
	return &Products{
		repository: repository,
	}
}

func (s *Products) List(ctx context.Context) ([]data.Product, error) {
	products, err := s.repository.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing products: %w", err)
	}
	return products, nil
}

func (s *Products) Get(ctx context.Context, id int) (data.Product, error) {
	product, err := s.repository.GetProduct(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return data.Product{}, ErrNotFound
		default:
			return data.Product{}, fmt.Errorf("error getting product: %w", err)
		}
	}
	return product, nil
}

func (s *Products) Create(ctx context.Context, draft data.Product) (data.Product, error) {
	if err := validateProduct(&draft); err != nil {
		return data.Product{}, err
	}
	created, err := s.repository.InsertProduct(ctx, draft)
	if err != nil {
		return data.Product{}, fmt.Errorf("error inserting product: %w", err)
	}
	return created, nil
}

func (s *Products) Update(ctx context.Context, product data.Product) (data.Product, error) {
	if err := validateProduct(&product); err != nil {
		return data.Product{}, err
	}
	updated, err := s.repository.UpdateProduct(ctx, product)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return data.Product{}, ErrNotFound
		default:
			return data.Product{}, fmt.Errorf("error updating product: %w", err)
		}
	}
	return updated, nil
}

func (s *Products) Delete(ctx context.Context, id int) error {
	if err := s.repository.DeleteProduct(ctx, id); err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return ErrNotFound
		default:
			return fmt.Errorf("error deleting product: %w", err)
		}
	}
	return nil
}

func validateProduct(product *data.Product) error {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" || len(product.Name) > maxNameLength {
		return invalidField("name")
	}
	if product.Price.IsNegative() || product.Price.GreaterThan(maxProductPrice) {
		return invalidField("price")
	}
	if product.Stock < 0 {
		return invalidField("stock")
	}
	if product.ProviderID != nil && *product.ProviderID <= 0 {
		return invalidField("provider_id")
	}
	return nil
}
