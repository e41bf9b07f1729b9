// Package dashboard adds the client-computed totals over the backend's
// pre-aggregated payloads.
package dashboard

import "github.com/fadna/oms/internal/models"

// Totals are the grand-total row and column over the agent x product pivot.
type Totals struct {
	ByAgent   map[string]int
	ByProduct map[string]int
	Grand     int
}

// TotalsFor sums the matrix both ways. Missing cells count as zero.
func TotalsFor(m *models.Matrix) Totals {
	t := Totals{
		ByAgent:   make(map[string]int, len(m.Agents)),
		ByProduct: make(map[string]int, len(m.Products)),
	}
	for _, agent := range m.Agents {
		row := m.Data[agent]
		for _, product := range m.Products {
			count := row[product]
			t.ByAgent[agent] += count
			t.ByProduct[product] += count
			t.Grand += count
		}
	}
	return t
}
