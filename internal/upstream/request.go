package upstream

import (
	"strings"

	"github.com/dharmasatrya/faregate/internal/models"
)

const (
	RequestTypeOneway = "Oneway"
	RequestTypeReturn = "Return"

	PassengerAdult = "ADT"
	PassengerChild = "CHD"
)

var directFlightTypes = []string{"NoStopDirect", "StopDirect"}

type SearchRequest struct {
	FlightRequestType       string              `json:"FlightRequestType"`
	RequestedFlights        []RequestedFlight   `json:"RequestedFlights"`
	PassengerTypeQuantities PassengerQuantities `json:"PassengerTypeQuantities"`
	RequestOptions          RequestOptions      `json:"RequestOptions"`
}

type RequestedFlight struct {
	DepartureLocation string   `json:"DepartureLocation"`
	ArrivalLocation   string   `json:"ArrivalLocation"`
	DepartureDate     string   `json:"DepartureDate"`
	FlightTypes       []string `json:"FlightTypes"`
	CabinClass        string   `json:"CabinClass,omitempty"`
}

// PassengerQuantities omits the child key entirely when there are no
// children; the fare API reads a zero count differently from absence.
type PassengerQuantities struct {
	Adults   int `json:"ADT"`
	Children int `json:"CHD,omitempty"`
}

type RequestOptions struct {
	IncludeTaxes     bool `json:"IncludeTaxes"`
	IncludeFees      bool `json:"IncludeFees"`
	AlternateRoutes  bool `json:"AlternateRoutes"`
	CorporateFares   bool `json:"CorporateFares"`
	InstantTicketing bool `json:"InstantTicketing"`
	SemiDeferred     bool `json:"SemiDeferred"`
}

var cabinCodes = map[string]string{
	"economy":         "Y",
	"premium_economy": "W",
	"premium":         "W",
	"business":        "C",
	"first":           "F",
}

// CabinCode maps a caller cabin name to the fare API's booking class code.
// Unknown values pass through unchanged.
func CabinCode(cabin string) string {
	key := strings.ToLower(strings.TrimSpace(cabin))
	key = strings.ReplaceAll(key, " ", "_")
	if code, ok := cabinCodes[key]; ok {
		return code
	}
	return strings.TrimSpace(cabin)
}

// BuildRequest has no failure modes; input is validated by the caller.
func BuildRequest(intent models.SearchIntent) SearchRequest {
	cabin := CabinCode(intent.CabinClass)

	req := SearchRequest{
		FlightRequestType: RequestTypeOneway,
		RequestedFlights: []RequestedFlight{
			newLeg(intent.Origin, intent.Destination, intent.DepartureDate, cabin),
		},
		PassengerTypeQuantities: PassengerQuantities{Adults: intent.Adults},
		RequestOptions: RequestOptions{
			IncludeTaxes:    true,
			IncludeFees:     true,
			AlternateRoutes: true,
		},
	}

	if intent.Children > 0 {
		req.PassengerTypeQuantities.Children = intent.Children
	}

	if intent.IsRoundTrip() {
		req.FlightRequestType = RequestTypeReturn
		req.RequestedFlights = append(req.RequestedFlights,
			newLeg(intent.Destination, intent.Origin, strings.TrimSpace(*intent.ReturnDate), cabin))
	}

	return req
}

func newLeg(from, to, date, cabin string) RequestedFlight {
	types := make([]string, len(directFlightTypes))
	copy(types, directFlightTypes)
	return RequestedFlight{
		DepartureLocation: from,
		ArrivalLocation:   to,
		DepartureDate:     date,
		FlightTypes:       types,
		CabinClass:        cabin,
	}
}
