package receipt

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/ndthang/storepos-api/pkg/format"
)

// Text renders the document as plain text: a fixed-width 32-column body for
// thermal documents, a tabular page layout otherwise. The thermal form is
// also what gets encoded to ESC/POS for the physical printer.
func (d *Document) Text() string {
	if d.Layout == LayoutThermal {
		return d.thermalText()
	}
	return d.standardText()
}

func (d *Document) thermalText() string {
	var b strings.Builder
	sep := strings.Repeat("-", ThermalWidth58)
	rule := strings.Repeat("=", ThermalWidth58)

	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
	}

	line(d.Store.Name)
	if d.Store.Address != "" {
		line(d.Store.Address)
	}
	if d.Store.Phone != "" {
		line(d.Store.Phone)
	}
	line(sep)
	line("#" + d.OrderNo)
	line(sep)
	line("KHACH HANG: " + d.Customer)
	line("NGAY: " + d.Date)
	line("GIO: " + d.Time)
	line("THANH TOAN: " + d.Payment)
	if d.Cashier != "" {
		line("THU NGAN: " + d.Cashier)
	}
	line(sep)
	for _, it := range d.Items {
		line(it.Name)
		line(fmt.Sprintf("%dx%s = %s",
			it.Quantity, format.Amount(it.UnitPrice), format.Amount(it.LineTotal)))
	}
	line(sep)
	line("SUBTOTAL: " + format.Amount(d.Totals.SubTotal))
	if d.Totals.ShowTax {
		line("VAT: " + format.Amount(d.Totals.Tax))
	}
	if d.Totals.ShowDiscount {
		line("DISCOUNT: -" + format.Amount(d.Totals.Discount))
	}
	line(rule)
	line("TOTAL: " + format.Amount(d.Totals.GrandTotal))
	if d.Footer != "" {
		line(sep)
		line(d.Footer)
	}
	return b.String()
}

func (d *Document) standardText() string {
	var b bytes.Buffer

	fmt.Fprintln(&b, d.Store.Name)
	if d.Store.Address != "" {
		fmt.Fprintln(&b, d.Store.Address)
	}
	if d.Store.Phone != "" {
		fmt.Fprintln(&b, d.Store.Phone)
	}
	fmt.Fprintf(&b, "Hóa đơn #%s\n\n", d.OrderNo)

	fmt.Fprintln(&b, "Khách hàng: "+d.Customer)
	fmt.Fprintln(&b, "Ngày: "+d.Date)
	fmt.Fprintln(&b, "Giờ: "+d.Time)
	fmt.Fprintln(&b, "Thanh toán: "+d.Payment)
	if d.Cashier != "" {
		fmt.Fprintln(&b, "Thu ngân: "+d.Cashier)
	}
	fmt.Fprintln(&b)

	table := tablewriter.NewTable(&b)
	table.Header([]string{"Sản phẩm", "SL", "Đơn giá", "Thành tiền"})
	for _, it := range d.Items {
		table.Append([]string{
			it.Name,
			strconv.Itoa(it.Quantity),
			format.Currency(it.UnitPrice),
			format.Currency(it.LineTotal),
		})
	}
	table.Render()

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "Tạm tính: "+format.Currency(d.Totals.SubTotal))
	if d.Totals.ShowTax {
		fmt.Fprintln(&b, "VAT: "+format.Currency(d.Totals.Tax))
	}
	if d.Totals.ShowDiscount {
		fmt.Fprintln(&b, "Giảm giá: "+format.Currency(-d.Totals.Discount))
	}
	fmt.Fprintln(&b, "TỔNG CỘNG: "+format.Currency(d.Totals.GrandTotal))
	if d.Footer != "" {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, d.Footer)
	}
	return b.String()
}
