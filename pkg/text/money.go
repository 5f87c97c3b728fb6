package text

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)
	ngn     = currency.MustParseISO("NGN")
)

// Naira formats d as "₦1,234.50" with the currency's standard scale. The
// digits come from the decimal itself, never from a float.
func Naira(d decimal.Decimal) string {
	scale, _ := currency.Standard.Rounding(ngn)
	fixed := d.StringFixed(int32(scale))

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	whole, frac, hasFrac := strings.Cut(fixed, ".")
	out := sign + "₦" + groupThousands(whole)
	if hasFrac {
		out += "." + frac
	}
	return out
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// Number groups thousands: 12345 becomes "12,345".
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}
