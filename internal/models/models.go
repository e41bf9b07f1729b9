package models

import "time"

// Roles as the backend reports them.
const (
	RoleAgent      = "Agent"
	RoleAdmin      = "Admin"
	RoleSuperAdmin = "Super Admin"
)

// Dispatch statuses an order moves through.
const (
	StatusPending    = "Pending"
	StatusDispatched = "Dispatched"
	StatusReturned   = "Returned"
)

// Payment classifications.
const (
	PaymentCOD    = "COD"
	PaymentPaid   = "Paid"
	PaymentExport = "Export"
)

type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type Customer struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"` // immutable lookup key once set
	Phone2    string    `json:"phone2"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Product struct {
	ID          string  `json:"_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Weight      float64 `json:"weight"`
	Unit        string  `json:"unit"`
	Description string  `json:"description"`
	Active      bool    `json:"active"`
}

type OrderItem struct {
	Product     string  `json:"product"` // product id; empty when unresolved
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// EditRequest is a one-shot annotation asking the order's owner to revise it.
// The backend clears Pending once the order is edited.
type EditRequest struct {
	From    *User  `json:"from"`
	Message string `json:"message"`
	Pending bool   `json:"pending"`
}

// EditAudit is one entry of an order's edit trail.
type EditAudit struct {
	Agent *User     `json:"agent"`
	At    time.Time `json:"at"`
}

type Order struct {
	ID               string       `json:"_id"`
	Customer         *Customer    `json:"customer"`
	Agent            *User        `json:"agent"`
	Items            []OrderItem  `json:"items"`
	TotalAmount      float64      `json:"totalAmount"` // subtotal before delivery/discount
	DiscountAmount   float64      `json:"discountAmount"`
	DeliveryCharge   float64      `json:"deliveryCharge"`
	FinalAmount      float64      `json:"finalAmount"`
	PaymentStatus    string       `json:"paymentStatus"`
	Status           string       `json:"status"`
	Remark           string       `json:"remark"`
	AdditionalRemark string       `json:"additionalRemark"`
	IsDownloaded     bool         `json:"isDownloaded"`
	EditedBy         []EditAudit  `json:"editedBy"`
	EditRequest      *EditRequest `json:"editRequest"`
	CreatedAt        time.Time    `json:"createdAt"`
}

// ShortID is the human-facing order reference: last six id characters,
// uppercased, with a # prefix.
func (o *Order) ShortID() string {
	id := o.ID
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	upper := []rune(id)
	for i, r := range upper {
		if r >= 'a' && r <= 'z' {
			upper[i] = r - ('a' - 'A')
		}
	}
	return "#" + string(upper)
}

// Subtotal is the item-level sum, independent of delivery and discount.
func (o *Order) Subtotal() float64 {
	var sum float64
	for _, it := range o.Items {
		sum += it.Price * float64(it.Quantity)
	}
	return sum
}

// ExportLog records a report generation, server-owned and read-only here.
type ExportLog struct {
	ID            string    `json:"_id"`
	GeneratedBy   *User     `json:"generatedBy"`
	GeneratedAt   time.Time `json:"generatedAt"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	PaymentStatus string    `json:"paymentStatus"`
	OrderCount    int       `json:"orderCount"`
}

// Stats is the dashboard summary payload, pre-computed by the backend.
type Stats struct {
	TotalOrders    int     `json:"totalOrders"`
	TotalRevenue   float64 `json:"totalRevenue"`
	TodaysRevenue  float64 `json:"todaysRevenue"`
	TotalCustomers int     `json:"totalCustomers"`
}

// Matrix is the agent x product same-day order-count pivot.
type Matrix struct {
	Agents   []string                  `json:"agents"`
	Products []string                  `json:"products"`
	Data     map[string]map[string]int `json:"data"`
}
