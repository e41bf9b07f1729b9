package order

import (
	"testing"

	"github.com/fadna/oms/internal/models"
)

func TestValidStatus(t *testing.T) {
	for _, s := range []string{models.StatusPending, models.StatusDispatched, models.StatusReturned} {
		if !ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = false", s)
		}
	}
	for _, s := range []string{"", "pending", "Shipped"} {
		if ValidStatus(s) {
			t.Errorf("ValidStatus(%q) = true", s)
		}
	}
}

func ledgerFixture() []models.Order {
	return []models.Order{
		{
			ID:            "64f0c2aab1cd23e4f5a6b7c8",
			Customer:      &models.Customer{Name: "Nadeesha Perera", Phone: "0771234567"},
			Remark:        "call before delivery",
			PaymentStatus: models.PaymentCOD,
		},
		{
			ID:            "64f0c2aab1cd23e4f5ffffff",
			Customer:      &models.Customer{Name: "Ruwan Silva", Phone: "0719876543", Phone2: "0112345678"},
			PaymentStatus: models.PaymentPaid,
		},
	}
}

func TestMatchesSearch(t *testing.T) {
	orders := ledgerFixture()

	tests := []struct {
		term string
		want []int // indexes expected to match
	}{
		{"", []int{0, 1}},
		{"nadeesha", []int{0}},
		{"PERERA", []int{0}},
		{"0771234567", []int{0}},
		{"0112345678", []int{1}},            // secondary phone
		{"#A6B7C8", []int{0}},               // short id, case-insensitive
		{"ffffff", []int{1}},                // raw id fragment
		{"call before", []int{0}},           // remark
		{"paid", []int{1}}, // payment classification
		{"cod", []int{0}},
		{"nonexistent", []int{}},
	}

	for _, tt := range tests {
		got := Filter(orders, tt.term)
		if len(got) != len(tt.want) {
			t.Errorf("Filter(%q) returned %d orders, want %d", tt.term, len(got), len(tt.want))
			continue
		}
		for i, idx := range tt.want {
			if got[i].ID != orders[idx].ID {
				t.Errorf("Filter(%q)[%d] = %s, want %s", tt.term, i, got[i].ID, orders[idx].ID)
			}
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	orders := ledgerFixture()
	got := Filter(orders, "64f0c2aab1cd23e4f5")
	if len(got) != 2 || got[0].ID != orders[0].ID || got[1].ID != orders[1].ID {
		t.Errorf("Filter must keep backend ordering, got %v", got)
	}
}
