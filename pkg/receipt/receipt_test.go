package receipt

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fixtureStore() Store {
	return Store{
		Name:    "Cửa hàng ABC",
		Address: "123 Lê Lợi",
		Phone:   "0901234567",
	}
}

func fixtureOrder() Order {
	return Order{
		ID:             7,
		CreatedAt:      time.Date(2024, 1, 15, 14, 30, 5, 0, time.Local),
		CustomerName:   "Nguyễn Văn A",
		PaymentMethod:  "cash",
		SubTotal:       100000,
		TaxAmount:      10000,
		DiscountAmount: 5000,
		TotalAmount:    105000,
		Items: []OrderItem{
			{ProductName: "Cà phê sữa", Quantity: 2, UnitPrice: 20000, LineTotal: 40000},
			{ProductName: "Trà đào", Quantity: 3, UnitPrice: 20000, LineTotal: 60000},
		},
	}
}

func TestThermalTextExactOutput(t *testing.T) {
	doc, err := Render(fixtureOrder(), fixtureStore(), LayoutThermal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := strings.Join([]string{
		"CUA HANG ABC",
		"123 LE LOI",
		"0901234567",
		"--------------------------------",
		"#007",
		"--------------------------------",
		"KHACH HANG: NGUYEN VAN A",
		"NGAY: 15/01/2024",
		"GIO: 14:30:05",
		"THANH TOAN: TIEN MAT",
		"--------------------------------",
		"CA PHE SUA",
		"2x20000 = 40000",
		"TRA DAO",
		"3x20000 = 60000",
		"--------------------------------",
		"SUBTOTAL: 100000",
		"VAT: 10000",
		"DISCOUNT: -5000",
		"================================",
		"TOTAL: 105000",
		"--------------------------------",
		"CAM ON QUY KHACH. HEN GAP LAI!",
		"",
	}, "\n")

	if got := doc.Text(); got != want {
		t.Errorf("thermal text mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestThermalOmitsZeroTaxAndDiscount(t *testing.T) {
	o := fixtureOrder()
	o.TaxAmount = 0
	o.DiscountAmount = 0
	o.TotalAmount = 100000

	doc, err := Render(o, fixtureStore(), LayoutThermal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	text := doc.Text()
	if strings.Contains(text, "VAT:") {
		t.Error("zero tax must be omitted, not printed as zero")
	}
	if strings.Contains(text, "DISCOUNT:") {
		t.Error("zero discount must be omitted, not printed as zero")
	}
	if !strings.Contains(text, "TOTAL: 100000") {
		t.Errorf("missing total line:\n%s", text)
	}
}

func TestStandardTextUsesLocaleCurrency(t *testing.T) {
	doc, err := Render(fixtureOrder(), fixtureStore(), LayoutStandard)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	text := doc.Text()
	for _, want := range []string{
		"Cửa hàng ABC",
		"Hóa đơn #007",
		"Khách hàng: Nguyễn Văn A",
		"Tạm tính: 100.000 ₫",
		"VAT: 10.000 ₫",
		"Giảm giá: -5.000 ₫",
		"TỔNG CỘNG: 105.000 ₫",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("standard text missing %q:\n%s", want, text)
		}
	}
}

func TestLayoutsDivergeFromSameOrder(t *testing.T) {
	o := fixtureOrder()
	store := fixtureStore()

	thermal, err := Render(o, store, LayoutThermal)
	if err != nil {
		t.Fatalf("render thermal: %v", err)
	}
	standard, err := Render(o, store, LayoutStandard)
	if err != nil {
		t.Fatalf("render standard: %v", err)
	}

	if thermal.Text() == standard.Text() {
		t.Fatal("thermal and standard variants must differ")
	}
	// Same underlying data on both variants.
	if thermal.OrderNo != standard.OrderNo {
		t.Errorf("order number diverged: %q vs %q", thermal.OrderNo, standard.OrderNo)
	}
	if thermal.Totals.GrandTotal != standard.Totals.GrandTotal {
		t.Error("grand total diverged between layouts")
	}
	// Thermal output carries no currency glyph or diacritics.
	if strings.Contains(thermal.Text(), "₫") {
		t.Error("thermal text must not contain the currency glyph")
	}
}

func TestZeroQuantityIsFormatError(t *testing.T) {
	o := fixtureOrder()
	o.Items[0].Quantity = 0

	_, err := Render(o, fixtureStore(), LayoutThermal)
	if err == nil {
		t.Fatal("expected error for zero quantity")
	}
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FormatError, got %T", err)
	}
}

func TestUnitPriceDerivedFromLineTotal(t *testing.T) {
	o := fixtureOrder()
	o.Items = []OrderItem{
		{ProductName: "Bánh mì", Quantity: 3, UnitPrice: 0, LineTotal: 20000},
	}

	doc, err := Render(o, fixtureStore(), LayoutThermal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	unit := doc.Items[0].UnitPrice
	if diff := unit*3 - 20000; diff < -3 || diff > 3 {
		t.Errorf("derived unit %v reconstructs %v, too far from 20000", unit, unit*3)
	}
	if !strings.Contains(doc.Text(), "3x6667 = 20000") {
		t.Errorf("item line mismatch:\n%s", doc.Text())
	}
}

func TestSuppliedUnitPriceIsKept(t *testing.T) {
	o := fixtureOrder()
	doc, err := Render(o, fixtureStore(), LayoutThermal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if doc.Items[0].UnitPrice != 20000 {
		t.Errorf("unit price overwritten: %v", doc.Items[0].UnitPrice)
	}
}

func TestWalkInCustomerFallback(t *testing.T) {
	o := fixtureOrder()
	o.CustomerName = ""

	thermal, err := Render(o, fixtureStore(), LayoutThermal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if thermal.Customer != "KHACH LE" {
		t.Errorf("thermal walk-in customer = %q", thermal.Customer)
	}

	standard, err := Render(o, fixtureStore(), LayoutStandard)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if standard.Customer != "Khách lẻ" {
		t.Errorf("standard walk-in customer = %q", standard.Customer)
	}
}

func TestThermalCustomerTruncated(t *testing.T) {
	o := fixtureOrder()
	o.CustomerName = "Nguyễn Thị Hồng Nhung Phương"

	doc, err := Render(o, fixtureStore(), LayoutThermal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := len([]rune(doc.Customer)); got > CustomerColumnWidth {
		t.Errorf("customer %q is %d runes, max %d", doc.Customer, got, CustomerColumnWidth)
	}
}

func TestOrderNumberFallback(t *testing.T) {
	cases := []struct {
		id     uint
		number string
		want   string
	}{
		{7, "", "007"},
		{42, "", "042"},
		{1234, "", "1234"},
		{7, "DH20240115143005", "DH20240115143005"},
	}
	for _, c := range cases {
		o := fixtureOrder()
		o.ID = c.id
		o.Number = c.number
		doc, err := Render(o, fixtureStore(), LayoutThermal)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if doc.OrderNo != c.want {
			t.Errorf("order number for (%d, %q) = %q, want %q", c.id, c.number, doc.OrderNo, c.want)
		}
	}
}

func TestEmptyItemsStillRenders(t *testing.T) {
	o := fixtureOrder()
	o.Items = nil
	o.SubTotal = 0
	o.TaxAmount = 0
	o.DiscountAmount = 0
	o.TotalAmount = 0

	doc, err := Render(o, fixtureStore(), LayoutThermal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	text := doc.Text()
	if !strings.Contains(text, "SUBTOTAL: 0") || !strings.Contains(text, "TOTAL: 0") {
		t.Errorf("totals block missing on empty order:\n%s", text)
	}
}

func TestZeroDateRendersPlaceholder(t *testing.T) {
	o := fixtureOrder()
	o.CreatedAt = time.Time{}

	doc, err := Render(o, fixtureStore(), LayoutThermal)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(doc.Text(), "NGAY: --") {
		t.Errorf("zero date must render the placeholder:\n%s", doc.Text())
	}
}

func TestLayoutTextRoundTrip(t *testing.T) {
	var l Layout
	if err := l.UnmarshalText([]byte("thermal")); err != nil || l != LayoutThermal {
		t.Errorf("UnmarshalText(thermal) = %v, %v", l, err)
	}
	if err := l.UnmarshalText([]byte("standard")); err != nil || l != LayoutStandard {
		t.Errorf("UnmarshalText(standard) = %v, %v", l, err)
	}
	// Unknown variants fall back to standard.
	if err := l.UnmarshalText([]byte("a4")); err != nil || l != LayoutStandard {
		t.Errorf("UnmarshalText(a4) = %v, %v", l, err)
	}
}
