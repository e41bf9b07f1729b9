package api

import (
	"context"

	"github.com/fadna/oms/internal/models"
)

func (c *Client) Customers(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	if err := c.get(ctx, "/customers", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// LookupCustomer resolves a customer by primary phone. Returns ErrNotFound
// when no customer has that number.
func (c *Client) LookupCustomer(ctx context.Context, phone string) (*models.Customer, error) {
	var out models.Customer
	if err := c.get(ctx, "/customers/lookup/"+phone, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type CustomerPayload struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"` // set on create only; immutable after
	Phone2  string `json:"phone2"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
	Email   string `json:"email"`
}

func (c *Client) CreateCustomer(ctx context.Context, payload CustomerPayload) (*models.Customer, error) {
	var out models.Customer
	if err := c.post(ctx, "/customers", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateCustomer(ctx context.Context, id string, payload CustomerPayload) error {
	payload.Phone = "" // the lookup key never travels on update
	return c.put(ctx, "/customers/"+id, payload, nil)
}

// DeleteCustomer forwards the operator's account password for server-side
// re-authorization; the client never checks it.
func (c *Client) DeleteCustomer(ctx context.Context, id, password string) error {
	return c.delete(ctx, "/customers/"+id, map[string]string{"password": password}, nil)
}

type BulkDeleteResult struct {
	Message string `json:"message"`
}

func (c *Client) BulkDeleteCustomers(ctx context.Context, password string) (*BulkDeleteResult, error) {
	var out BulkDeleteResult
	if err := c.delete(ctx, "/customers/bulk-delete", map[string]string{"password": password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
