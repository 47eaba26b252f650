package upstream

import (
	"sort"
	"strings"

	"github.com/dharmasatrya/faregate/internal/models"
	"github.com/dharmasatrya/faregate/internal/timeutil"
)

const refundableMarker = "REF"

// FormatResults decodes a raw FindLowFares body and flattens it. A body
// that is not the expected top-level shape yields an empty slice.
func FormatResults(body []byte) []models.Flight {
	flights, _ := Normalize(Decode(body))
	return flights
}

// Normalize flattens every fare recommendation it can resolve, cheapest
// first. Recommendations that cannot be resolved are skipped and counted
// in dropped, together with any that failed to decode.
func Normalize(resp *SearchResponse) (flights []models.Flight, dropped int) {
	flights = make([]models.Flight, 0)
	if resp == nil {
		return flights, 0
	}
	dropped = resp.Malformed
	if len(resp.FareRecommendations) == 0 {
		return flights, dropped
	}

	ix := NewIndex(resp)
	for _, rec := range resp.FareRecommendations {
		f, ok := ix.flatten(rec)
		if !ok {
			dropped++
			continue
		}
		flights = append(flights, f)
	}

	sort.SliceStable(flights, func(i, j int) bool {
		return flights[i].Price < flights[j].Price
	})

	return flights, dropped
}

func (ix *Index) flatten(rec Recommendation) (models.Flight, bool) {
	if len(rec.RouteCombinations) == 0 || len(rec.Passengers) == 0 {
		return models.Flight{}, false
	}

	routes := ix.Routes(rec.RouteCombinations[0].RouteIDs)
	if len(routes) == 0 {
		return models.Flight{}, false
	}

	outbound := ix.Segments(routes[0])
	if len(outbound) == 0 {
		return models.Flight{}, false
	}

	var inbound []Flight
	var inboundRoute Route
	if len(routes) > 1 {
		inboundRoute = routes[1]
		inbound = ix.Segments(inboundRoute)
	}

	pax := rec.Passengers[0]
	var fare Fare
	if len(pax.Fares) > 0 {
		fare = pax.Fares[0]
	}

	first, last := outbound[0], outbound[len(outbound)-1]
	validating, _ := ix.Airline(rec.ValidatingAirlineID)

	f := models.Flight{
		ID: string(rec.ID),

		Origin:          string(first.DepartureAirport),
		OriginName:      ix.AirportName(first.DepartureAirport),
		Destination:     string(last.ArrivalAirport),
		DestinationName: ix.AirportName(last.ArrivalAirport),

		DepartureTime: departureTime(first),
		ArrivalTime:   arrivalTime(last),
		Duration:      legDuration(routes[0], outbound),

		ValidatingAirlineID:   string(rec.ValidatingAirlineID),
		ValidatingAirlineName: string(validating.Name),

		FlightNumber:         string(first.FlightNumber),
		MarketingAirlineID:   string(first.MarketingAirlineID),
		MarketingAirlineName: ix.AirlineName(first.MarketingAirlineID),
		OperatingAirlineID:   string(first.OperatingAirlineID),
		OperatingAirlineName: ix.AirlineName(first.OperatingAirlineID),

		Price:         basketTotal(rec.Passengers),
		BaseFare:      float64(fare.BaseFare),
		Taxes:         float64(fare.Taxes),
		Fees:          float64(fare.Fees),
		Currency:      string(fare.Currency),
		FareType:      ix.FareTypeName(fare.FareTypeID),
		FareSubType:   ix.FareSubTypeName(fare.FareSubTypeID),
		RevenueStream: ix.RevenueStreamName(fare.RevenueStreamID),
		PassengerType: ix.PassengerTypeName(pax.PassengerTypeID),
		FareBasisCode: string(fare.FareBasisCode),
		Refundable:    strings.Contains(strings.ToUpper(string(fare.FareBasisCode)), refundableMarker),

		CabinID:   string(cabinOf(first)),
		CabinName: ix.CabinName(cabinOf(first)),

		Stops:               len(outbound) - 1,
		OutboundLayoverInfo: BuildLayovers(outbound, ix.AirportName),
		InboundLayoverInfo:  BuildLayovers(inbound, ix.AirportName),
		OutboundSegments:    ix.toSegments(outbound),
	}

	if len(inbound) > 0 {
		rFirst, rLast := inbound[0], inbound[len(inbound)-1]
		f.IsRoundTrip = true
		f.ReturnDepartureTime = departureTime(rFirst)
		f.ReturnArrivalTime = arrivalTime(rLast)
		f.ReturnDuration = legDuration(inboundRoute, inbound)
		f.ReturnFlightNumber = string(rFirst.FlightNumber)
		f.ReturnMarketingAirlineID = string(rFirst.MarketingAirlineID)
		f.ReturnMarketingAirlineName = ix.AirlineName(rFirst.MarketingAirlineID)
		f.ReturnOperatingAirlineID = string(rFirst.OperatingAirlineID)
		f.ReturnOperatingAirlineName = ix.AirlineName(rFirst.OperatingAirlineID)
		f.ReturnCabinID = string(cabinOf(rFirst))
		f.ReturnCabinName = ix.CabinName(cabinOf(rFirst))
		f.ReturnStops = len(inbound) - 1
		f.InboundSegments = ix.toSegments(inbound)
	}

	return f, true
}

// basketTotal sums every passenger entry. It is the price of the whole
// booking, not a per-passenger fare.
func basketTotal(passengers []PassengerFare) float64 {
	var total float64
	for _, p := range passengers {
		if p.Total != 0 {
			total += float64(p.Total)
			continue
		}
		for _, fare := range p.Fares {
			total += float64(fare.Total)
		}
	}
	return total
}

func cabinOf(f Flight) FlexString {
	if len(f.Cabins) == 0 {
		return ""
	}
	return f.Cabins[0].CabinID
}

func departureTime(f Flight) string {
	if f.DepartureDateTime != "" {
		return string(f.DepartureDateTime)
	}
	return string(f.DepartureDateTimeUTC)
}

func arrivalTime(f Flight) string {
	if f.ArrivalDateTime != "" {
		return string(f.ArrivalDateTime)
	}
	return string(f.ArrivalDateTimeUTC)
}

// legDuration prefers the route's own duration and falls back to the span
// between the first departure and the last arrival.
func legDuration(r Route, segments []Flight) string {
	if r.Duration != "" {
		if d, ok := timeutil.ParseDuration(string(r.Duration)); ok {
			return timeutil.FormatDuration(d)
		}
		return string(r.Duration)
	}
	if len(segments) == 0 {
		return ""
	}

	first, last := segments[0], segments[len(segments)-1]
	pairs := [][2]FlexString{
		{first.DepartureDateTimeUTC, last.ArrivalDateTimeUTC},
		{first.DepartureDateTime, last.ArrivalDateTime},
	}
	for _, p := range pairs {
		if p[0] == "" || p[1] == "" {
			continue
		}
		dep, err := timeutil.Parse(string(p[0]))
		if err != nil {
			continue
		}
		arr, err := timeutil.Parse(string(p[1]))
		if err != nil {
			continue
		}
		return timeutil.FormatDuration(arr.Sub(dep))
	}
	return ""
}

func (ix *Index) toSegments(flights []Flight) []models.Segment {
	segments := make([]models.Segment, 0, len(flights))
	for _, f := range flights {
		segments = append(segments, models.Segment{
			FlightNumber:         string(f.FlightNumber),
			MarketingAirlineID:   string(f.MarketingAirlineID),
			MarketingAirlineName: ix.AirlineName(f.MarketingAirlineID),
			OperatingAirlineID:   string(f.OperatingAirlineID),
			OperatingAirlineName: ix.AirlineName(f.OperatingAirlineID),
			DepartureAirport:     string(f.DepartureAirport),
			DepartureAirportName: ix.AirportName(f.DepartureAirport),
			DepartureTerminal:    string(f.DepartureTerminal),
			DepartureTime:        departureTime(f),
			ArrivalAirport:       string(f.ArrivalAirport),
			ArrivalAirportName:   ix.AirportName(f.ArrivalAirport),
			ArrivalTerminal:      string(f.ArrivalTerminal),
			ArrivalTime:          arrivalTime(f),
			CabinID:              string(cabinOf(f)),
		})
	}
	return segments
}
