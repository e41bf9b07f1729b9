// Package report turns backend report payloads into CSV files. Only
// generation happens client-side; imports travel to the backend unparsed.
package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fadna/oms/internal/models"
)

var orderHeaders = []string{
	"Date", "Time", "Product", "Remark", "Subtotal (Rs.)", "Discount (Rs.)",
	"Delivery (Rs.)", "Total (Rs.)", "Customer Name", "Address", "City",
	"Contact 1", "Contact 2", "Qty", "Payment Status",
	"Items Detail", "Additional Remark", "Agent",
}

// Headers returns the report columns; admins get a leading Order ID column.
func Headers(admin bool) []string {
	if !admin {
		return orderHeaders
	}
	return append([]string{"Order ID"}, orderHeaders...)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Row flattens one order into report columns.
func Row(o *models.Order, admin bool) []string {
	names := make([]string, 0, len(o.Items))
	details := make([]string, 0, len(o.Items))
	totalQty := 0
	for _, it := range o.Items {
		names = append(names, it.ProductName)
		details = append(details, fmt.Sprintf("%s %d", it.ProductName, it.Quantity))
		totalQty += it.Quantity
	}

	customerName, address, city, phone, phone2 := "N/A", "", "", "", ""
	if o.Customer != nil {
		customerName = o.Customer.Name
		address = o.Customer.Address
		city = o.Customer.City
		phone = o.Customer.Phone
		phone2 = o.Customer.Phone2
	}
	agentName := "Unknown"
	if o.Agent != nil && o.Agent.Name != "" {
		agentName = o.Agent.Name
	}

	created := o.CreatedAt.Local()
	row := []string{
		created.Format("02/01/2006"),
		created.Format("15:04:05"),
		strings.Join(names, ", "),
		o.Remark,
		num(o.TotalAmount),
		num(o.DiscountAmount),
		num(o.DeliveryCharge),
		num(o.FinalAmount),
		customerName,
		address,
		city,
		phone,
		phone2,
		strconv.Itoa(totalQty),
		o.PaymentStatus,
		strings.Join(details, "; "),
		o.AdditionalRemark,
		agentName,
	}
	if admin {
		row = append([]string{o.ShortID()}, row...)
	}
	return row
}

// OrdersCSV serializes a report to CSV bytes. Fields containing quotes or
// separators are quoted with embedded quotes doubled, so any standard CSV
// parser round-trips the values.
func OrdersCSV(orders []models.Order, admin bool) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Headers(admin)); err != nil {
		return nil, err
	}
	for i := range orders {
		if err := w.Write(Row(&orders[i], admin)); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Filename embeds the agent filter and date range:
// orders_report_<agent>_<start>_to_<end>.csv, spaces in the agent name
// replaced with underscores and dates at minute precision.
func Filename(agentName string, start, end time.Time) string {
	if agentName == "" || agentName == "All" {
		agentName = "All_Agents"
	}
	agentName = strings.ReplaceAll(agentName, " ", "_")
	const stamp = "2006-01-02-15-04"
	return fmt.Sprintf("orders_report_%s_%s_to_%s.csv",
		agentName, start.Format(stamp), end.Format(stamp))
}

// CustomersCSV is the directory export available to super admins.
func CustomersCSV(customers []models.Customer) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	headers := []string{"Name", "Contact 1", "Contact 2", "Address", "City", "Country", "Email", "Joined"}
	if err := w.Write(headers); err != nil {
		return nil, err
	}
	for i := range customers {
		c := &customers[i]
		row := []string{
			c.Name, c.Phone, c.Phone2, c.Address, c.City, c.Country, c.Email,
			c.CreatedAt.Local().Format("02/01/2006"),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MonthRange returns the default reporting window: first moment of the
// current month through its final second.
func MonthRange(now time.Time) (time.Time, time.Time) {
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return start, end
}
