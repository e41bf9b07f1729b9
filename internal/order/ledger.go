package order

import (
	"strings"

	"github.com/fadna/oms/internal/models"
)

// ValidStatus reports whether s is a dispatch status an admin may select.
func ValidStatus(s string) bool {
	switch s {
	case models.StatusPending, models.StatusDispatched, models.StatusReturned:
		return true
	}
	return false
}

// MatchesSearch is the ledger's client-side substring filter: customer
// name and phone, order id (full or #-prefixed short form), remark and
// payment classification.
func MatchesSearch(o *models.Order, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(strings.TrimPrefix(term, "#"))

	if o.Customer != nil {
		if strings.Contains(strings.ToLower(o.Customer.Name), needle) {
			return true
		}
		if strings.Contains(o.Customer.Phone, term) || strings.Contains(o.Customer.Phone2, term) {
			return true
		}
	}
	if strings.Contains(strings.ToLower(o.ID), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(o.ShortID()), "#"+needle) {
		return true
	}
	if strings.Contains(strings.ToLower(o.Remark), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(o.PaymentStatus), needle)
}

// Filter returns the orders matching term, preserving backend order.
func Filter(orders []models.Order, term string) []models.Order {
	if term == "" {
		return orders
	}
	out := make([]models.Order, 0, len(orders))
	for i := range orders {
		if MatchesSearch(&orders[i], term) {
			out = append(out, orders[i])
		}
	}
	return out
}
