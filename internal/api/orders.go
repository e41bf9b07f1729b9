package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/fadna/oms/internal/models"
)

func (c *Client) Orders(ctx context.Context) ([]models.Order, error) {
	var out []models.Order
	if err := c.get(ctx, "/orders", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Order(ctx context.Context, id string) (*models.Order, error) {
	var out models.Order
	if err := c.get(ctx, "/orders/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// OrderPayload is the create/update body assembled by the order composer.
type OrderPayload struct {
	CustomerID       string             `json:"customerId"`
	Items            []models.OrderItem `json:"items"`
	TotalAmount      float64            `json:"totalAmount"` // subtotal
	DiscountAmount   float64            `json:"discountAmount"`
	DeliveryCharge   float64            `json:"deliveryCharge"`
	FinalAmount      float64            `json:"finalAmount"`
	PaymentStatus    string             `json:"paymentStatus"`
	Remark           string             `json:"remark"`
	AdditionalRemark string             `json:"additionalRemark"`
}

func (c *Client) CreateOrder(ctx context.Context, payload OrderPayload) error {
	return c.post(ctx, "/orders", payload, nil)
}

func (c *Client) UpdateOrder(ctx context.Context, id string, payload OrderPayload) error {
	return c.put(ctx, "/orders/"+id, payload, nil)
}

// UpdateOrderStatus transitions only the dispatch status (admin action).
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) error {
	return c.put(ctx, "/orders/"+id, map[string]string{"status": status}, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, id, password string) error {
	return c.delete(ctx, "/orders/"+id, map[string]string{"password": password}, nil)
}

func (c *Client) BulkDeleteOrders(ctx context.Context, password string) (*BulkDeleteResult, error) {
	var out BulkDeleteResult
	if err := c.delete(ctx, "/orders/bulk-delete", map[string]string{"password": password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type ImportResult struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors"`
}

// ImportOrders posts a CSV file for bulk import. The file is not parsed or
// validated client-side; the backend reports per-row results.
func (c *Client) ImportOrders(ctx context.Context, filename string, file io.Reader) (*ImportResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders/bulk-import", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.decodeError(resp)
	}

	var out ImportResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}

// RequestEdit attaches a one-shot edit-request message for the order's
// owning agent.
func (c *Client) RequestEdit(ctx context.Context, id, message string) error {
	return c.post(ctx, "/orders/"+id+"/request-edit", map[string]string{"message": message}, nil)
}

// PendingEditsCount returns how many of the session user's orders carry a
// pending edit request.
func (c *Client) PendingEditsCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.get(ctx, "/orders/pending-edits-count", &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) Stats(ctx context.Context) (*models.Stats, error) {
	var out models.Stats
	if err := c.get(ctx, "/orders/stats", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Matrix(ctx context.Context) (*models.Matrix, error) {
	var out models.Matrix
	if err := c.get(ctx, "/orders/matrix", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
