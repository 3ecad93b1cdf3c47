package metrics

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ROUNDING - Fixed-precision helpers shared by every ratio function
// =============================================================================

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 { return math.Round(v*10) / 10 }

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 { return math.Round(v*100) / 100 }

// RoundInt rounds half away from zero to the nearest integer.
func RoundInt(v float64) int { return int(math.Round(v)) }

// =============================================================================
// DISPLAY FORMATTING - Thousands-grouped numbers for alert messages and DTOs
// =============================================================================

// FormatNumber renders v with thousands separators and a fixed number of
// decimals: FormatNumber(1234567.5, 1) == "1,234,567.5".
func FormatNumber(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	s := strconv.FormatFloat(v, 'f', decimals, 64)
	return groupThousands(s)
}

// FormatCurrency renders a monetary amount with a currency sign and two
// decimals: "$1,234.56".
func FormatCurrency(d decimal.Decimal) string {
	s := d.StringFixed(2)
	return "$" + groupThousands(s)
}

// FormatPercent renders v followed by a percent sign: "95.4%".
func FormatPercent(v float64, decimals int) string {
	if decimals < 0 {
		decimals = 0
	}
	return strconv.FormatFloat(v, 'f', decimals, 64) + "%"
}

func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}
	if len(intPart) > 3 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}
	out := intPart + fracPart
	if neg {
		out = "-" + out
	}
	return out
}
