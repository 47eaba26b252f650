package models

import "strings"

type SearchFilters struct {
	MaxStops       *int     `json:"maxStops,omitempty"`
	Airlines       []string `json:"airlines,omitempty"`
	MaxPrice       *float64 `json:"maxPrice,omitempty"`
	RefundableOnly bool     `json:"refundableOnly,omitempty"`
}

// SearchIntent is the simplified search a caller asks for. Dates are ISO
// calendar dates (2006-01-02) and airports are IATA codes.
type SearchIntent struct {
	Origin        string         `json:"origin"`
	Destination   string         `json:"destination"`
	DepartureDate string         `json:"departureDate"`
	ReturnDate    *string        `json:"returnDate,omitempty"`
	Adults        int            `json:"adults"`
	Children      int            `json:"children,omitempty"`
	CabinClass    string         `json:"cabinClass,omitempty"`
	Filters       *SearchFilters `json:"filters,omitempty"`
}

func (r SearchIntent) IsRoundTrip() bool {
	return r.ReturnDate != nil && strings.TrimSpace(*r.ReturnDate) != ""
}

// Validate reports every missing required field at once and normalises
// airport codes to upper case.
func (r *SearchIntent) Validate() error {
	var missing []string
	if strings.TrimSpace(r.Origin) == "" {
		missing = append(missing, "origin")
	}
	if strings.TrimSpace(r.Destination) == "" {
		missing = append(missing, "destination")
	}
	if strings.TrimSpace(r.DepartureDate) == "" {
		missing = append(missing, "departureDate")
	}
	if r.Adults < 1 {
		missing = append(missing, "adults")
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}

	r.Origin = strings.ToUpper(strings.TrimSpace(r.Origin))
	r.Destination = strings.ToUpper(strings.TrimSpace(r.Destination))
	r.DepartureDate = strings.TrimSpace(r.DepartureDate)
	if r.Children < 0 {
		r.Children = 0
	}
	return nil
}
