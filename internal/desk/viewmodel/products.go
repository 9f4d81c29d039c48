package viewmodel

import (
	"strings"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/pkg/logging"
)

func NewProductsViewModel(gw Gateway[apiprotocol.Product], logger *logging.ZapLogger) *ViewModel[apiprotocol.Product] {
	return New(productsSchema(), gw, logger)
}

func productsSchema() Schema[apiprotocol.Product] {
	return Schema[apiprotocol.Product]{
		Noun:   "product",
		Plural: "products",
		ID:     func(p *apiprotocol.Product) int { return p.ID },
		Fields: []FieldSpec[apiprotocol.Product]{
			{
				Name:    "name",
				Present: func(p *apiprotocol.Product) string { return p.Name },
			},
			{
				Name:    "description",
				Present: func(p *apiprotocol.Product) string { return presentOptString(p.Description) },
			},
			{
				Name:     "price",
				Present:  func(p *apiprotocol.Product) string { return p.Price.String() },
				Validate: validateAmount("Price"),
			},
			{
				Name:     "stock",
				Present:  func(p *apiprotocol.Product) string { return presentInt(p.Stock) },
				Validate: validateCount("Stock"),
			},
			{
				Name:     "provider_id",
				Present:  func(p *apiprotocol.Product) string { return presentOptInt(p.ProviderID) },
				Validate: validateOptionalID("Provider ID"),
			},
			{
				Name:    "created_at",
				Present: func(p *apiprotocol.Product) string { return presentOptString(p.CreatedAt) },
			},
			{
				Name:    "updated_at",
				Present: func(p *apiprotocol.Product) string { return presentOptString(p.UpdatedAt) },
			},
		},
		Collect: collectProduct,
	}
}

func collectProduct(get func(name string) string) (*apiprotocol.Product, string) {
	name := strings.TrimSpace(get("name"))
	if name == "" {
		return nil, "Name is required"
	}
	price, reason := parseAmount(get("price"), "Price")
	if reason != "" {
		return nil, reason
	}
	stock, reason := parseCount(get("stock"), "Stock")
	if reason != "" {
		return nil, reason
	}
	providerID, reason := parseOptionalID(get("provider_id"), "Provider ID")
	if reason != "" {
		return nil, reason
	}
	return &apiprotocol.Product{
		Name:        name,
		Description: optString(strings.TrimSpace(get("description"))),
		Price:       price,
		Stock:       stock,
		ProviderID:  providerID,
	}, ""
}
