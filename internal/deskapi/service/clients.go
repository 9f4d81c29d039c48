package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"orderdesk/internal/deskapi/data"
)

const (
	maxNameLength      = 100
	maxEmailLength     = 150
	maxPhoneLength     = 30
	maxTextFieldLength = 255
)

type Clients struct {
	repository Repository
}

func NewClients(repository Repository) *Clients {
	return &Clients{
		repository: repository,
	}
}

func (s *Clients) List(ctx context.Context) ([]data.Client, error) {
	clients, err := s.repository.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}
	return clients, nil
}

func (s *Clients) Get(ctx context.Context, id int) (data.Client, error) {
	client, err := s.repository.GetClient(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return data.Client{}, ErrNotFound
		default:
			return data.Client{}, fmt.Errorf("error getting client: %w", err)
		}
	}
	return client, nil
}

func (s *Clients) Create(ctx context.Context, draft data.Client) (data.Client, error) {
	if err := validateClient(&draft); err != nil {
		return data.Client{}, err
	}
	created, err := s.repository.InsertClient(ctx, draft)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrUniqueConstraintViolation):
			return data.Client{}, ErrEmailTaken
		default:
			return data.Client{}, fmt.Errorf("error inserting client: %w", err)
		}
	}
	return created, nil
}

func (s *Clients) Update(ctx context.Context, client data.Client) (data.Client, error) {
	if err := validateClient(&client); err != nil {
		return data.Client{}, err
	}
	updated, err := s.repository.UpdateClient(ctx, client)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return data.Client{}, ErrNotFound
		case errors.Is(err, data.ErrUniqueConstraintViolation):
			return data.Client{}, ErrEmailTaken
		default:
			return data.Client{}, fmt.Errorf("error updating client: %w", err)
		}
	}
	return updated, nil
}

func (s *Clients) Delete(ctx context.Context, id int) error {
	if err := s.repository.DeleteClient(ctx, id); err != nil {
		switch {
		case errors.Is(err, data.ErrNotFound):
			return ErrNotFound
		default:
			return fmt.Errorf("error deleting client: %w", err)
		}
	}
	return nil
}

func validateClient(client *data.Client) error {
	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" || len(client.Name) > maxNameLength {
		return invalidField("name")
	}
	client.Email = strings.TrimSpace(client.Email)
	if client.Email == "" || len(client.Email) > maxEmailLength || !strings.Contains(client.Email, "@") {
		return invalidField("email")
	}
	if client.Phone != nil && len(*client.Phone) > maxPhoneLength {
		return invalidField("phone")
	}
	if client.Address != nil && len(*client.Address) > maxTextFieldLength {
		return invalidField("address")
	}
	return nil
}
