package filter

import (
	"strings"

	"github.com/dharmasatrya/faregate/internal/models"
)

// Apply keeps the flights matching filters without reordering them, so a
// cheapest-first input stays cheapest-first. A nil filter returns flights
// as given.
func Apply(flights []models.Flight, filters *models.SearchFilters) []models.Flight {
	if filters == nil {
		return flights
	}

	result := make([]models.Flight, 0, len(flights))
	for _, f := range flights {
		if matchesFilters(f, filters) {
			result = append(result, f)
		}
	}
	return result
}

func matchesFilters(f models.Flight, filters *models.SearchFilters) bool {
	if filters.MaxPrice != nil && f.Price > *filters.MaxPrice {
		return false
	}

	if filters.MaxStops != nil {
		if f.Stops > *filters.MaxStops {
			return false
		}
		if f.IsRoundTrip && f.ReturnStops > *filters.MaxStops {
			return false
		}
	}

	if filters.RefundableOnly && !f.Refundable {
		return false
	}

	if len(filters.Airlines) > 0 && !matchesAirline(f, filters.Airlines) {
		return false
	}

	return true
}

func matchesAirline(f models.Flight, airlines []string) bool {
	for _, airline := range airlines {
		for _, code := range []string{f.MarketingAirlineID, f.ValidatingAirlineID, f.ReturnMarketingAirlineID} {
			if code != "" && strings.EqualFold(code, airline) {
				return true
			}
		}
	}
	return false
}
