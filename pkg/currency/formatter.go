package currency

import (
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

var symbols = map[string]string{
	"GBP": "£",
	"USD": "$",
	"EUR": "€",
	"JPY": "¥",
	"INR": "₹",
}

// Format renders amount with thousands grouping and two decimals, prefixed
// with the currency symbol when one is known and the ISO code otherwise.
// An empty code falls back to GBP.
func Format(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		code = "GBP"
	}

	negative := amount < 0
	formatted := humanize.FormatFloat("#,###.##", math.Abs(amount))

	var result string
	if sym, ok := symbols[code]; ok {
		result = sym + formatted
	} else {
		result = code + " " + formatted
	}

	if negative {
		result = "-" + result
	}
	return result
}
