package api

import (
	"context"
	"net/url"
	"time"

	"github.com/fadna/oms/internal/models"
)

// ExportRequest filters the orders included in a report. AgentID is "All"
// or an agent id; PaymentStatus is "All" or one of the payment constants.
type ExportRequest struct {
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	PaymentStatus string    `json:"paymentStatus"`
	AgentID       string    `json:"agentId"`
}

// ExportOrders is the admin path: a side-effecting read that marks the
// returned orders dispatched/downloaded server-side.
func (c *Client) ExportOrders(ctx context.Context, req ExportRequest) ([]models.Order, error) {
	var out []models.Order
	if err := c.put(ctx, "/orders/export", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyReport is the agent path: read-only, scoped to the session user's own
// orders, no status mutation.
func (c *Client) MyReport(ctx context.Context, start, end time.Time, paymentStatus string) ([]models.Order, error) {
	q := url.Values{}
	q.Set("startDate", start.UTC().Format(time.RFC3339))
	q.Set("endDate", end.UTC().Format(time.RFC3339))
	q.Set("paymentStatus", paymentStatus)

	var out []models.Order
	if err := c.get(ctx, "/orders/my-report?"+q.Encode(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ExportHistory(ctx context.Context) ([]models.ExportLog, error) {
	var out []models.ExportLog
	if err := c.get(ctx, "/orders/export-history", &out); err != nil {
		return nil, err
	}
	return out, nil
}
