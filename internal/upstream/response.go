package upstream

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Flexible scalars. The fare API is inconsistent about quoting ids and
// amounts, so both accept JSON strings, numbers and null.

type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	if data[0] == '{' || data[0] == '[' {
		*s = ""
		return nil
	}
	*s = FlexString(strings.Trim(string(data), `"`))
	return nil
}

func (s FlexString) String() string { return string(s) }

type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	raw := string(data)
	if data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexFloat(v)
	return nil
}

type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	var f FlexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		return err
	}
	*n = FlexInt(f)
	return nil
}

type Reference struct {
	ID   FlexString `json:"Id"`
	Name FlexString `json:"Name"`
	Code FlexString `json:"Code,omitempty"`
}

type SearchResponse struct {
	Airlines            []Reference      `json:"Airlines"`
	Locations           []Reference      `json:"Locations"`
	Cabins              []Reference      `json:"Cabins"`
	FareTypes           []Reference      `json:"FareTypes"`
	FareSubTypes        []Reference      `json:"FareSubTypes"`
	RevenueStreams      []Reference      `json:"RevenueStreams"`
	PassengerTypes      []Reference      `json:"PassengerTypes"`
	RouteGroups         []RouteGroup     `json:"RouteGroups"`
	Flights             []Flight         `json:"Flights"`
	FareRecommendations []Recommendation `json:"FareRecommendations"`

	// Malformed counts recommendations that could not be decoded and were
	// left out of FareRecommendations.
	Malformed int `json:"-"`
}

// UnmarshalJSON decodes each fare recommendation on its own so one bad
// entry does not cost the rest of the batch.
func (r *SearchResponse) UnmarshalJSON(data []byte) error {
	type plain SearchResponse
	var raw struct {
		plain
		FareRecommendations []json.RawMessage `json:"FareRecommendations"`
	}
	err := json.Unmarshal(data, &raw)

	*r = SearchResponse(raw.plain)
	r.FareRecommendations = make([]Recommendation, 0, len(raw.FareRecommendations))
	for _, msg := range raw.FareRecommendations {
		var rec Recommendation
		if json.Unmarshal(msg, &rec) != nil {
			r.Malformed++
			continue
		}
		r.FareRecommendations = append(r.FareRecommendations, rec)
	}
	return err
}

type RouteGroup struct {
	Routes []Route `json:"Routes"`
}

type Route struct {
	ID        FlexString   `json:"Id"`
	FlightIDs []FlexString `json:"FlightIds"`
	Duration  FlexString   `json:"Duration"`
}

type Flight struct {
	ID                   FlexString    `json:"Id"`
	FlightNumber         FlexString    `json:"FlightNumber"`
	MarketingAirlineID   FlexString    `json:"MarketingAirlineId"`
	OperatingAirlineID   FlexString    `json:"OperatingAirlineId"`
	DepartureAirport     FlexString    `json:"DepartureAirport"`
	ArrivalAirport       FlexString    `json:"ArrivalAirport"`
	DepartureTerminal    FlexString    `json:"DepartureTerminal"`
	ArrivalTerminal      FlexString    `json:"ArrivalTerminal"`
	DepartureDateTime    FlexString    `json:"DepartureDateTime"`
	DepartureDateTimeUTC FlexString    `json:"DepartureDateTimeUtc"`
	ArrivalDateTime      FlexString    `json:"ArrivalDateTime"`
	ArrivalDateTimeUTC   FlexString    `json:"ArrivalDateTimeUtc"`
	Duration             FlexString    `json:"Duration"`
	Cabins               []FlightCabin `json:"Cabins"`
}

type FlightCabin struct {
	CabinID FlexString `json:"CabinId"`
}

type Recommendation struct {
	ID                  FlexString         `json:"Id"`
	ValidatingAirlineID FlexString         `json:"ValidatingAirlineId"`
	RouteCombinations   []RouteCombination `json:"RouteCombinations"`
	Passengers          []PassengerFare    `json:"Passengers"`
}

type RouteCombination struct {
	RouteIDs []FlexString `json:"RouteIds"`
}

type PassengerFare struct {
	PassengerTypeID FlexString `json:"PassengerTypeId"`
	Quantity        FlexInt    `json:"Quantity"`
	Total           FlexFloat  `json:"Total"`
	Fares           []Fare     `json:"Fares"`
}

type Fare struct {
	BaseFare        FlexFloat  `json:"BaseFare"`
	Taxes           FlexFloat  `json:"Taxes"`
	Fees            FlexFloat  `json:"Fees"`
	Total           FlexFloat  `json:"Total"`
	Currency        FlexString `json:"Currency"`
	FareTypeID      FlexString `json:"FareTypeId"`
	FareSubTypeID   FlexString `json:"FareSubTypeId"`
	RevenueStreamID FlexString `json:"RevenueStreamId"`
	FareBasisCode   FlexString `json:"FareBasisCode"`
}
