package report

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/fadna/oms/internal/models"
)

func reportFixture() []models.Order {
	created := time.Date(2025, 8, 14, 9, 30, 15, 0, time.Local)
	return []models.Order{
		{
			ID: "64f0c2aab1cd23e4f5a6b7c8",
			Customer: &models.Customer{
				Name: `"Kamal" Perera`, Phone: "0771234567", Phone2: "0112233445",
				Address: "12, Galle Rd", City: "Colombo",
			},
			Agent: &models.User{Name: "Sithara"},
			Items: []models.OrderItem{
				{ProductName: "Shampoo", Quantity: 2, Price: 1000},
				{ProductName: "Conditioner", Quantity: 1, Price: 2000},
			},
			TotalAmount:      4000,
			DiscountAmount:   400,
			DeliveryCharge:   0,
			FinalAmount:      3600,
			PaymentStatus:    models.PaymentCOD,
			Remark:           "call, then deliver",
			AdditionalRemark: "gate code 44",
			CreatedAt:        created,
		},
	}
}

func TestHeaders(t *testing.T) {
	agent := Headers(false)
	admin := Headers(true)

	if agent[0] != "Date" {
		t.Errorf("agent headers start with %q", agent[0])
	}
	if admin[0] != "Order ID" {
		t.Errorf("admin headers start with %q, want Order ID", admin[0])
	}
	if len(admin) != len(agent)+1 {
		t.Errorf("admin has %d columns, agent %d, want exactly one extra", len(admin), len(agent))
	}
}

func TestOrdersCSVRoundTrips(t *testing.T) {
	data, err := OrdersCSV(reportFixture(), true)
	if err != nil {
		t.Fatalf("OrdersCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}

	header, row := records[0], records[1]
	if len(row) != len(header) {
		t.Fatalf("row has %d fields, header %d", len(row), len(header))
	}

	get := func(col string) string {
		t.Helper()
		for i, h := range header {
			if h == col {
				return row[i]
			}
		}
		t.Fatalf("no column %q", col)
		return ""
	}

	if got := get("Order ID"); got != "#A6B7C8" {
		t.Errorf("order id = %q", got)
	}
	if got := get("Date"); got != "14/08/2025" {
		t.Errorf("date = %q", got)
	}
	if got := get("Time"); got != "09:30:15" {
		t.Errorf("time = %q", got)
	}
	if got := get("Product"); got != "Shampoo, Conditioner" {
		t.Errorf("product = %q", got)
	}
	if got := get("Items Detail"); got != "Shampoo 2; Conditioner 1" {
		t.Errorf("details = %q", got)
	}
	if got := get("Qty"); got != "3" {
		t.Errorf("qty = %q", got)
	}
	if got := get("Subtotal (Rs.)"); got != "4000" {
		t.Errorf("subtotal = %q, want no trailing zeros", got)
	}
	// The quoted name and the comma-bearing remark must survive parsing.
	if got := get("Customer Name"); got != `"Kamal" Perera` {
		t.Errorf("customer = %q", got)
	}
	if got := get("Remark"); got != "call, then deliver" {
		t.Errorf("remark = %q", got)
	}
	if got := get("Agent"); got != "Sithara" {
		t.Errorf("agent = %q", got)
	}
}

func TestRowDefaults(t *testing.T) {
	o := models.Order{CreatedAt: time.Now()}
	row := Row(&o, false)

	if row[8] != "N/A" { // Customer Name
		t.Errorf("customer = %q, want N/A", row[8])
	}
	if row[len(row)-1] != "Unknown" { // Agent
		t.Errorf("agent = %q, want Unknown", row[len(row)-1])
	}
}

func TestFilename(t *testing.T) {
	start := time.Date(2025, 8, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 8, 31, 23, 59, 0, 0, time.Local)

	got := Filename("Sithara Fernando", start, end)
	want := "orders_report_Sithara_Fernando_2025-08-01-00-00_to_2025-08-31-23-59.csv"
	if got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}

	if got := Filename("All", start, end); got != "orders_report_All_Agents_2025-08-01-00-00_to_2025-08-31-23-59.csv" {
		t.Errorf("Filename(All) = %q", got)
	}
	if got := Filename("", start, end); got != Filename("All", start, end) {
		t.Errorf("empty agent should behave like All, got %q", got)
	}
}

func TestCustomersCSV(t *testing.T) {
	customers := []models.Customer{
		{
			Name: "Nadeesha", Phone: "0771234567",
			Address: "12, Galle Rd", City: "Colombo", Country: "Sri Lanka",
			CreatedAt: time.Date(2025, 3, 2, 10, 0, 0, 0, time.Local),
		},
	}
	data, err := CustomersCSV(customers)
	if err != nil {
		t.Fatalf("CustomersCSV() error = %v", err)
	}
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("generated CSV does not parse: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records", len(records))
	}
	if records[1][0] != "Nadeesha" || records[1][3] != "12, Galle Rd" {
		t.Errorf("row = %v", records[1])
	}
	if records[1][7] != "02/03/2025" {
		t.Errorf("joined = %q", records[1][7])
	}
}

func TestMonthRange(t *testing.T) {
	now := time.Date(2025, 8, 14, 9, 30, 0, 0, time.Local)
	start, end := MonthRange(now)

	if !start.Equal(time.Date(2025, 8, 1, 0, 0, 0, 0, time.Local)) {
		t.Errorf("start = %v", start)
	}
	if !end.Equal(time.Date(2025, 8, 31, 23, 59, 59, 0, time.Local)) {
		t.Errorf("end = %v", end)
	}
}
