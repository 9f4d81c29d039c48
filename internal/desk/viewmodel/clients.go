package viewmodel

import (
	"strings"

	"orderdesk/internal/common/apiprotocol"
	"orderdesk/pkg/logging"
)

func NewClientsViewModel(gw Gateway[apiprotocol.Client], logger *logging.ZapLogger) *ViewModel[apiprotocol.Client] {
	return New(clientsSchema(), gw, logger)
}

func clientsSchema() Schema[apiprotocol.Client] {
	return Schema[apiprotocol.Client]{
		Noun:   "client",
		Plural: "clients",
		ID:     func(c *apiprotocol.Client) int { return c.ID },
		Fields: []FieldSpec[apiprotocol.Client]{
			{
				Name:    "name",
				Present: func(c *apiprotocol.Client) string { return c.Name },
			},
			{
				Name:     "email",
				Present:  func(c *apiprotocol.Client) string { return c.Email },
				Validate: validateEmail,
			},
			{
				Name:    "phone",
				Present: func(c *apiprotocol.Client) string { return presentOptString(c.Phone) },
			},
			{
				Name:    "address",
				Present: func(c *apiprotocol.Client) string { return presentOptString(c.Address) },
			},
			{
				Name:    "created_at",
				Present: func(c *apiprotocol.Client) string { return presentOptString(c.CreatedAt) },
			},
			{
				Name:    "updated_at",
				Present: func(c *apiprotocol.Client) string { return presentOptString(c.UpdatedAt) },
			},
		},
		Collect: collectClient,
	}
}

func collectClient(get func(name string) string) (*apiprotocol.Client, string) {
	name := strings.TrimSpace(get("name"))
	if name == "" {
		return nil, "Name is required"
	}
	email := strings.TrimSpace(get("email"))
	if email == "" {
		return nil, "Email is required"
	}
	if !strings.Contains(email, "@") {
		return nil, "Invalid email format"
	}
	return &apiprotocol.Client{
		Name:    name,
		Email:   email,
		Phone:   optString(strings.TrimSpace(get("phone"))),
		Address: optString(strings.TrimSpace(get("address"))),
	}, ""
}
