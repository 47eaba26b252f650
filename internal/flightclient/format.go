package flightclient

import (
	"fmt"
	"strings"

	"github.com/dharmasatrya/faregate/internal/timeutil"
	"github.com/dharmasatrya/faregate/pkg/currency"
)

var cabinNames = map[string]string{
	"Y": "Economy",
	"W": "Premium Economy",
	"C": "Business",
	"J": "Business",
	"F": "First",
}

// FormatDuration turns an upstream duration ("PT2H30M", "02:30:00" or
// "2h 30m") into "2h 30m". Unrecognised input comes back unchanged.
func FormatDuration(s string) string {
	d, ok := timeutil.ParseDuration(s)
	if !ok {
		return s
	}
	return timeutil.FormatDuration(d)
}

func FormatPrice(amount float64, code string) string {
	return currency.Format(amount, code)
}

// CabinName maps a cabin code to its display name. Codes outside the table
// are returned as given.
func CabinName(code string) string {
	if name, ok := cabinNames[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return name
	}
	return code
}

func StopsLabel(stops int) string {
	switch {
	case stops <= 0:
		return "Direct"
	case stops == 1:
		return "1 stop"
	default:
		return fmt.Sprintf("%d stops", stops)
	}
}

// FormatDate renders a timestamp or calendar date as "Sun, 1 Jun 2025".
func FormatDate(s string) string {
	t, err := timeutil.Parse(s)
	if err != nil {
		return s
	}
	return t.Format("Mon, 2 Jan 2006")
}

// FormatTime renders the wall clock time of a timestamp as "15:04".
func FormatTime(s string) string {
	t, err := timeutil.Parse(s)
	if err != nil {
		return s
	}
	return t.Format("15:04")
}
