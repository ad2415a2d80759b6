// Package receipt renders sales documents for either thermal (fixed-width)
// or standard (A4) output. There is a single renderer parameterized by
// Layout; the two variants share one composition path so they cannot drift
// apart.
package receipt

import (
	"fmt"
	"time"
)

// Layout selects the document variant.
type Layout int

const (
	// LayoutStandard is the A4/page layout with locale currency formatting.
	LayoutStandard Layout = iota
	// LayoutThermal is the fixed-width layout for 58mm/80mm printers.
	LayoutThermal
)

func (l Layout) String() string {
	if l == LayoutThermal {
		return "thermal"
	}
	return "standard"
}

// ThermalWidth is the character width of a thermal line. 58mm paper carries
// 32 columns; 80mm carries 48.
const (
	ThermalWidth58 = 32
	ThermalWidth80 = 48
)

// CustomerColumnWidth bounds the customer name on thermal layouts.
const CustomerColumnWidth = 12

// FormatError reports invalid input that would corrupt the rendered
// document. It is distinct from transport errors: a document that fails to
// format is not produced at all.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return "receipt: " + e.Reason
}

func formatErrorf(format string, args ...interface{}) *FormatError {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

// Store is the identity block printed at the top of every document.
type Store struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// Order is the read-only projection the renderer consumes. It is composed
// from order data at render time; it is not a database entity.
type Order struct {
	ID             uint        `json:"id"`
	Number         string      `json:"number,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	CustomerName   string      `json:"customer_name,omitempty"`
	CashierName    string      `json:"cashier_name,omitempty"`
	PaymentMethod  string      `json:"payment_method"`
	SubTotal       float64     `json:"sub_total"`
	TaxAmount      float64     `json:"tax_amount"`
	DiscountAmount float64     `json:"discount_amount"`
	TotalAmount    float64     `json:"total_amount"`
	Items          []OrderItem `json:"items"`
}

// OrderItem is one sold line. UnitPrice may be zero when the upstream
// projection only carries the line total; the renderer derives it.
type OrderItem struct {
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// Item is a display-ready line item inside a Document.
type Item struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	LineTotal float64 `json:"line_total"`
}

// Totals is the totals block. Tax and discount carry show flags so zero
// values are omitted entirely rather than printed as zero.
type Totals struct {
	SubTotal     float64 `json:"sub_total"`
	Tax          float64 `json:"tax"`
	ShowTax      bool    `json:"show_tax"`
	Discount     float64 `json:"discount"`
	ShowDiscount bool    `json:"show_discount"`
	GrandTotal   float64 `json:"grand_total"`
}

// Document is the structured description of a rendered sales document,
// ready for screen preview, plain-text output or ESC/POS encoding.
type Document struct {
	Layout   Layout `json:"layout"`
	Store    Store  `json:"store"`
	OrderNo  string `json:"order_no"`
	Customer string `json:"customer"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Payment  string `json:"payment"`
	Cashier  string `json:"cashier,omitempty"`
	Items    []Item `json:"items"`
	Totals   Totals `json:"totals"`
	Footer   string `json:"footer"`
}

// MarshalLayout is used in JSON responses so clients see the variant name.
func (l Layout) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts "thermal" or "standard" (the default).
func (l *Layout) UnmarshalText(b []byte) error {
	if string(b) == "thermal" {
		*l = LayoutThermal
	} else {
		*l = LayoutStandard
	}
	return nil
}
