package api

import (
	"context"

	"github.com/fadna/oms/internal/models"
)

func (c *Client) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if err := c.get(ctx, "/products", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type ProductPayload struct {
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Weight      float64 `json:"weight"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	Active      bool    `json:"active"`
}

func (c *Client) CreateProduct(ctx context.Context, payload ProductPayload) error {
	return c.post(ctx, "/products", payload, nil)
}

func (c *Client) UpdateProduct(ctx context.Context, id string, payload ProductPayload) error {
	return c.put(ctx, "/products/"+id, payload, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.delete(ctx, "/products/"+id, nil, nil)
}
