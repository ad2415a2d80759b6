// Package format holds the pure display-formatting helpers shared by the
// receipt renderer and the HTTP layer. All functions are total: they never
// return errors and never panic on odd input.
package format

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DatePlaceholder is rendered for zero/invalid timestamps.
const DatePlaceholder = "--"

// WalkInCustomer is the fallback shown when an order has no customer name.
const WalkInCustomer = "Khách lẻ"

var viPrinter = message.NewPrinter(language.Vietnamese)

// Currency renders an amount in đồng with Vietnamese thousands grouping and
// the currency glyph, e.g. 105000 -> "105.000 ₫". The amount is rounded to
// the minor unit (whole đồng) before display.
func Currency(amount float64) string {
	return viPrinter.Sprintf("%d", int64(math.Round(amount))) + " ₫"
}

// Amount renders an amount rounded to whole đồng with no grouping and no
// glyph. Thermal layouts use this form.
func Amount(amount float64) string {
	return strconv.FormatInt(int64(math.Round(amount)), 10)
}

var paymentLabels = map[string]string{
	"cash":         "Tiền mặt",
	"card":         "Thẻ ngân hàng",
	"bankcard":     "Thẻ ngân hàng",
	"qr":           "QR Code",
	"qrcode":       "QR Code",
	"ewallet":      "Ví điện tử",
	"banktransfer": "Chuyển khoản",
}

// PaymentMethodLabel maps a payment-method code to its display label.
// Unknown or empty codes fall back to the cash label; orders predating the
// payment-method field are cash sales.
func PaymentMethodLabel(code string) string {
	if label, ok := paymentLabels[strings.ToLower(strings.TrimSpace(code))]; ok {
		return label
	}
	return paymentLabels["cash"]
}

// DateTime renders a timestamp as DD/MM/YYYY HH:MM:SS, or DatePlaceholder
// for the zero time.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return DatePlaceholder
	}
	return t.Format("02/01/2006 15:04:05")
}

// Date renders a timestamp as DD/MM/YYYY, or DatePlaceholder for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return DatePlaceholder
	}
	return t.Format("02/01/2006")
}

// Time renders the time-of-day portion of a timestamp.
func Time(t time.Time) string {
	if t.IsZero() {
		return DatePlaceholder
	}
	return t.Format("15:04:05")
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Transliterate strips Vietnamese diacritics, maps đ/Đ to their ASCII base
// letter and uppercases the result. Thermal printers in the field only carry
// the base ASCII code page. Idempotent: ASCII input passes through untouched
// besides case folding, and the output never grows longer than the input.
func Transliterate(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	out = strings.Map(func(r rune) rune {
		switch r {
		case 'đ':
			return 'd'
		case 'Đ':
			return 'D'
		}
		return r
	}, out)
	return strings.ToUpper(out)
}

// Truncate hard-truncates s to max runes for fixed-pitch layouts. Strings at
// or under the limit are returned unchanged.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
