package api

import (
	"context"

	"github.com/fadna/oms/internal/models"
)

type LoginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Login exchanges credentials for a session token. Email doubles as a
// username field; the backend accepts either.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	payload := map[string]string{
		"email":    email,
		"password": password,
	}
	var out LoginResponse
	if err := c.post(ctx, "/auth/login", payload, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Agents lists all agent and admin accounts.
func (c *Client) Agents(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := c.get(ctx, "/auth/agents", &out); err != nil {
		return nil, err
	}
	return out, nil
}

type UserPayload struct {
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"` // blank on update keeps current
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Role     string `json:"role"`
}

func (c *Client) RegisterUser(ctx context.Context, payload UserPayload) error {
	return c.post(ctx, "/auth/register", payload, nil)
}

func (c *Client) UpdateUser(ctx context.Context, id string, payload UserPayload) error {
	return c.put(ctx, "/auth/"+id, payload, nil)
}

func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/auth/"+id, nil, nil)
}
