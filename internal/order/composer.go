package order

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/fadna/oms/internal/api"
	"github.com/fadna/oms/internal/config"
	"github.com/fadna/oms/internal/models"
)

// Backend is the slice of the API the composer drives. *api.Client
// satisfies it; tests plug in fakes.
type Backend interface {
	LookupCustomer(ctx context.Context, phone string) (*models.Customer, error)
	CreateCustomer(ctx context.Context, payload api.CustomerPayload) (*models.Customer, error)
	UpdateCustomer(ctx context.Context, id string, payload api.CustomerPayload) error
	Order(ctx context.Context, id string) (*models.Order, error)
	CreateOrder(ctx context.Context, payload api.OrderPayload) error
	UpdateOrder(ctx context.Context, id string, payload api.OrderPayload) error
}

var (
	ErrNoItems    = errors.New("order has no items")
	ErrNoPhone    = errors.New("customer phone is required")
	ErrNoCustomer = errors.New("order has no customer record")
	ErrNotFound   = api.ErrNotFound
)

// CustomerForm is the editable customer section. The primary phone lives
// outside the form because it is the immutable lookup key.
type CustomerForm struct {
	Name    string
	Phone2  string
	Address string
	City    string
	Country string
	Email   string
}

func blankCustomerForm() CustomerForm {
	return CustomerForm{Country: "Sri Lanka"}
}

// Line is one draft line item. ProductID is set only while the typed name
// resolves against the catalog.
type Line struct {
	ProductID string
	Name      string
	Quantity  int
	Price     float64
}

// Composer assembles a single order: customer identity resolution,
// line-item pricing, delivery and discount derivation, and the final
// create-or-update submission.
type Composer struct {
	backend Backend
	pricing config.DeliveryConfig
	catalog []models.Product

	phone       string
	customer    *models.Customer // loaded record; nil means create on submit
	newCustomer bool             // lookup came back 404
	Form        CustomerForm

	lines          []Line
	payment        string
	discountAmount float64
	discountPct    float64
	delivery       float64
	manualDelivery bool

	editID           string // non-empty in edit mode
	Remark           string
	AdditionalRemark string
}

func NewComposer(backend Backend, pricing config.DeliveryConfig, catalog []models.Product) *Composer {
	return &Composer{
		backend: backend,
		pricing: pricing,
		catalog: catalog,
		payment: models.PaymentCOD,
		Form:    blankCustomerForm(),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Lookup resolves the primary phone. A match pre-fills the editable form;
// a 404 switches to new-customer mode with blank fields.
func (c *Composer) Lookup(ctx context.Context, phone string) error {
	c.phone = phone
	c.customer = nil
	c.newCustomer = false

	cust, err := c.backend.LookupCustomer(ctx, phone)
	if errors.Is(err, api.ErrNotFound) {
		c.newCustomer = true
		c.Form = blankCustomerForm()
		return nil
	}
	if err != nil {
		return err
	}

	c.customer = cust
	c.Form = CustomerForm{
		Name:    cust.Name,
		Phone2:  cust.Phone2,
		Address: cust.Address,
		City:    cust.City,
		Country: orDefault(cust.Country, "Sri Lanka"),
		Email:   cust.Email,
	}
	return nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func (c *Composer) Phone() string              { return c.phone }
func (c *Composer) Customer() *models.Customer { return c.customer }
func (c *Composer) IsNewCustomer() bool        { return c.newCustomer }
func (c *Composer) EditingID() string          { return c.editID }
func (c *Composer) Lines() []Line              { return c.lines }

func (c *Composer) SetPayment(p string) { c.payment = p }
func (c *Composer) Payment() string     { return c.payment }

// AddLine appends an empty line item (quantity 1, unresolved).
func (c *Composer) AddLine() {
	c.lines = append(c.lines, Line{Quantity: 1})
	c.autoDelivery()
}

func (c *Composer) RemoveLine(i int) {
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	c.autoDelivery()
}

// SetLineName resolves a free-typed product name against the catalog,
// first match wins. A match sets the price and product reference; no match
// clears the reference but keeps the typed name.
func (c *Composer) SetLineName(i int, name string) {
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines[i].Name = name
	c.lines[i].ProductID = ""
	for _, p := range c.catalog {
		if p.Name == name {
			c.lines[i].ProductID = p.ID
			c.lines[i].Price = p.Price
			break
		}
	}
	c.autoDelivery()
}

func (c *Composer) SetLineQuantity(i, qty int) {
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines[i].Quantity = qty
	c.autoDelivery()
}

func (c *Composer) Subtotal() float64 {
	var sum float64
	for _, l := range c.lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

// autoDelivery recomputes the charge as a step function of the subtotal.
// Suppressed under manual override and in edit mode, where a previously
// saved charge must never be overwritten.
func (c *Composer) autoDelivery() {
	if c.manualDelivery || c.editID != "" {
		return
	}
	subtotal := c.Subtotal()
	if len(c.lines) == 1 && c.lines[0].Name == c.pricing.FreeProduct {
		c.delivery = 0
		return
	}
	if subtotal > 0 && subtotal < c.pricing.FreeThreshold {
		c.delivery = c.pricing.Surcharge
	} else {
		c.delivery = 0
	}
}

// SetDeliveryCharge is the operator override; auto-calculation stays off
// for the rest of the draft.
func (c *Composer) SetDeliveryCharge(v float64) {
	c.delivery = v
	c.manualDelivery = true
}

func (c *Composer) DeliveryCharge() float64 { return c.delivery }
func (c *Composer) ManualDelivery() bool    { return c.manualDelivery }

// SetDiscountPercent clamps to [0,100] and derives the fixed amount from
// the current subtotal.
func (c *Composer) SetDiscountPercent(pct float64) {
	pct = math.Min(100, math.Max(0, pct))
	c.discountPct = pct
	c.discountAmount = round2(c.Subtotal() * pct / 100)
}

// SetDiscountAmount clamps to >= 0 and derives the percentage from the
// current subtotal; a zero subtotal resets the percentage.
func (c *Composer) SetDiscountAmount(amt float64) {
	amt = math.Max(0, amt)
	c.discountAmount = amt
	subtotal := c.Subtotal()
	if subtotal > 0 {
		c.discountPct = round2(amt / subtotal * 100)
	} else {
		c.discountPct = 0
	}
}

func (c *Composer) DiscountPercent() float64 { return c.discountPct }
func (c *Composer) DiscountAmount() float64  { return c.discountAmount }

// Total is clamped so a discount can never push it negative.
func (c *Composer) Total() float64 {
	return math.Max(0, c.Subtotal()+c.delivery-c.discountAmount)
}

// Hydrate loads an existing order into the draft for editing. Delivery is
// forced manual and the discount percentage is reverse-derived from the
// stored amount against the stored line subtotal.
func (c *Composer) Hydrate(ctx context.Context, id string) error {
	ord, err := c.backend.Order(ctx, id)
	if err != nil {
		return err
	}
	// An order can lose its customer to a directory purge; editing it
	// would only fail later with a confusing phone error.
	if ord.Customer == nil {
		return fmt.Errorf("%w: %s", ErrNoCustomer, id)
	}

	c.editID = id
	c.customer = ord.Customer
	c.phone = ord.Customer.Phone
	c.Form = CustomerForm{
		Name:    ord.Customer.Name,
		Phone2:  ord.Customer.Phone2,
		Address: ord.Customer.Address,
		City:    ord.Customer.City,
		Country: orDefault(ord.Customer.Country, "Sri Lanka"),
		Email:   ord.Customer.Email,
	}

	c.lines = c.lines[:0]
	for _, it := range ord.Items {
		c.lines = append(c.lines, Line{
			ProductID: it.Product,
			Name:      it.ProductName,
			Quantity:  it.Quantity,
			Price:     it.Price,
		})
	}

	c.payment = orDefault(ord.PaymentStatus, models.PaymentCOD)
	c.delivery = ord.DeliveryCharge
	c.manualDelivery = true

	c.discountAmount = ord.DiscountAmount
	if ord.DiscountAmount > 0 {
		if subtotal := ord.Subtotal(); subtotal > 0 {
			// whole-percent back-fill, matching what was presented when
			// the order was first composed
			c.discountPct = math.Round(ord.DiscountAmount / subtotal * 100)
		}
	} else {
		c.discountPct = 0
	}

	c.Remark = ord.Remark
	c.AdditionalRemark = ord.AdditionalRemark
	return nil
}

// Submit resolves the customer and creates or updates the order in one
// sequence. There is no idempotency key: a failure surfaces one error and
// the operator resubmits manually.
func (c *Composer) Submit(ctx context.Context) error {
	if len(c.lines) == 0 {
		return ErrNoItems
	}
	if c.phone == "" {
		return ErrNoPhone
	}

	customerID, err := c.resolveCustomer(ctx)
	if err != nil {
		return err
	}

	payload := api.OrderPayload{
		CustomerID:       customerID,
		Items:            c.payloadItems(),
		TotalAmount:      c.Subtotal(),
		DiscountAmount:   c.discountAmount,
		DeliveryCharge:   c.delivery,
		FinalAmount:      c.Total(),
		PaymentStatus:    c.payment,
		Remark:           c.Remark,
		AdditionalRemark: c.AdditionalRemark,
	}

	if c.editID != "" {
		return c.backend.UpdateOrder(ctx, c.editID, payload)
	}
	return c.backend.CreateOrder(ctx, payload)
}

// resolveCustomer creates the customer when none was loaded; a duplicate-
// phone rejection is reinterpreted as "already exists" and falls back to
// lookup-then-update. A loaded customer is updated in place.
func (c *Composer) resolveCustomer(ctx context.Context) (string, error) {
	form := api.CustomerPayload{
		Name:    c.Form.Name,
		Phone2:  c.Form.Phone2,
		Address: c.Form.Address,
		City:    c.Form.City,
		Country: c.Form.Country,
		Email:   c.Form.Email,
	}

	if c.customer == nil {
		create := form
		create.Phone = c.phone
		cust, err := c.backend.CreateCustomer(ctx, create)
		if err == nil {
			return cust.ID, nil
		}

		var apiErr *api.Error
		if !errors.As(err, &apiErr) || apiErr.Status != http.StatusBadRequest {
			return "", err
		}
		existing, lookupErr := c.backend.LookupCustomer(ctx, c.phone)
		if lookupErr != nil {
			return "", fmt.Errorf("customer exists but lookup failed: %w", lookupErr)
		}
		if err := c.backend.UpdateCustomer(ctx, existing.ID, form); err != nil {
			return "", err
		}
		return existing.ID, nil
	}

	if err := c.backend.UpdateCustomer(ctx, c.customer.ID, form); err != nil {
		return "", err
	}
	return c.customer.ID, nil
}

// payloadItems snapshots each line with the catalog name for its resolved
// product; an unresolved reference submits as "Unknown".
func (c *Composer) payloadItems() []models.OrderItem {
	items := make([]models.OrderItem, 0, len(c.lines))
	for _, l := range c.lines {
		name := "Unknown"
		for _, p := range c.catalog {
			if p.ID == l.ProductID && l.ProductID != "" {
				name = p.Name
				break
			}
		}
		items = append(items, models.OrderItem{
			Product:     l.ProductID,
			ProductName: name,
			Quantity:    l.Quantity,
			Price:       l.Price,
		})
	}
	return items
}
