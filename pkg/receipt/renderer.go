package receipt

import (
	"fmt"
	"math"

	"github.com/ndthang/storepos-api/pkg/format"
)

// Render composes a Document from an order and a resolved layout. The layout
// decision is made once by the caller (from the print configuration) and
// threaded through here; nothing downstream re-derives it.
//
// Returns a *FormatError when the order cannot be rendered without
// corrupting the output (a zero-quantity line would divide by zero).
func Render(o Order, store Store, layout Layout) (*Document, error) {
	items := make([]Item, 0, len(o.Items))
	for _, it := range o.Items {
		if it.Quantity <= 0 {
			return nil, formatErrorf("line item %q has non-positive quantity %d", it.ProductName, it.Quantity)
		}

		unit := it.UnitPrice
		if unit == 0 && it.LineTotal != 0 {
			// Derive from the line total. Rounding to the minor unit keeps
			// unit*qty within one đồng of the supplied total.
			unit = math.Round(it.LineTotal / float64(it.Quantity))
		}

		name := it.ProductName
		if layout == LayoutThermal {
			name = format.Truncate(format.Transliterate(name), ThermalWidth58)
		}

		items = append(items, Item{
			Name:      name,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			LineTotal: it.LineTotal,
		})
	}

	customer := o.CustomerName
	if customer == "" {
		customer = format.WalkInCustomer
	}
	payment := format.PaymentMethodLabel(o.PaymentMethod)
	cashier := o.CashierName
	storeBlock := store
	footer := "Cảm ơn quý khách. Hẹn gặp lại!"

	if layout == LayoutThermal {
		customer = format.Truncate(format.Transliterate(customer), CustomerColumnWidth)
		payment = format.Transliterate(payment)
		cashier = format.Transliterate(cashier)
		storeBlock.Name = format.Transliterate(store.Name)
		storeBlock.Address = format.Transliterate(store.Address)
		footer = format.Transliterate(footer)
	}

	return &Document{
		Layout:   layout,
		Store:    storeBlock,
		OrderNo:  orderNumber(o),
		Customer: customer,
		Date:     format.Date(o.CreatedAt),
		Time:     format.Time(o.CreatedAt),
		Payment:  payment,
		Cashier:  cashier,
		Items:    items,
		Totals: Totals{
			SubTotal:     o.SubTotal,
			Tax:          o.TaxAmount,
			ShowTax:      o.TaxAmount > 0,
			Discount:     o.DiscountAmount,
			ShowDiscount: o.DiscountAmount > 0,
			GrandTotal:   o.TotalAmount,
		},
		Footer: footer,
	}, nil
}

// orderNumber prefers the human order number and falls back to the numeric
// id zero-padded to at least three digits.
func orderNumber(o Order) string {
	if o.Number != "" {
		return o.Number
	}
	return fmt.Sprintf("%03d", o.ID)
}
