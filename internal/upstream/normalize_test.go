package upstream_test

import (
	"os"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dharmasatrya/faregate/internal/models"
	"github.com/dharmasatrya/faregate/internal/upstream"
)

func loadFixture(t *testing.T) []byte {
	t.Helper()
	body, err := os.ReadFile("testdata/find_low_fares.json")
	require.NoError(t, err)
	return body
}

func TestFormatResults_Fixture(t *testing.T) {
	flights := upstream.FormatResults(loadFixture(t))
	require.Len(t, flights, 2, "unresolvable recommendation is dropped")

	t.Run("cheapest first", func(t *testing.T) {
		assert.Equal(t, "REC-VIA-MAD", flights[0].ID)
		assert.Equal(t, "REC-DIRECT", flights[1].ID)
	})

	t.Run("connecting itinerary", func(t *testing.T) {
		f := flights[0]
		assert.Equal(t, "LHR", f.Origin)
		assert.Equal(t, "London Heathrow", f.OriginName)
		assert.Equal(t, "JFK", f.Destination)
		assert.Equal(t, "New York John F. Kennedy", f.DestinationName)
		assert.Equal(t, "2025-06-01T06:00:00", f.DepartureTime)
		assert.Equal(t, "2025-06-01T16:15:00", f.ArrivalTime)
		assert.Equal(t, "10h 15m", f.Duration)
		assert.Equal(t, "IB3163", f.FlightNumber)
		assert.Equal(t, "Iberia", f.MarketingAirlineName)
		assert.Equal(t, "Iberia", f.ValidatingAirlineName)
		assert.Equal(t, 650.0, f.Price)
		assert.False(t, f.Refundable)
		assert.Equal(t, "Published", f.FareType)
		assert.Empty(t, f.FareSubType)
		assert.False(t, f.IsRoundTrip)

		assert.Equal(t, 2, f.Stops)
		require.Len(t, f.OutboundLayoverInfo, 2)
		assert.Equal(t, models.Layover{
			Airport: "MAD", AirportName: "Madrid Barajas", Duration: "2h 0m", DurationMinutes: 120, Terminal: "4S",
		}, f.OutboundLayoverInfo[0])
		assert.Equal(t, models.Layover{
			Airport: "BOS", AirportName: "Boston Logan", Duration: "2h 0m", DurationMinutes: 120, Terminal: "B",
		}, f.OutboundLayoverInfo[1])
		assert.Empty(t, f.InboundLayoverInfo)
		assert.NotNil(t, f.InboundLayoverInfo)
		assert.Len(t, f.OutboundSegments, 3)
		assert.Equal(t, "American Airlines", f.OutboundSegments[1].OperatingAirlineName)
	})

	t.Run("round trip", func(t *testing.T) {
		f := flights[1]
		assert.True(t, f.IsRoundTrip)
		assert.Equal(t, 1600.5, f.Price, "basket total across all passenger entries")
		assert.Equal(t, 800.0, f.BaseFare)
		assert.Equal(t, 300.5, f.Taxes)
		assert.Equal(t, 100.0, f.Fees)
		assert.Equal(t, "GBP", f.Currency)
		assert.Equal(t, "Saver", f.FareSubType)
		assert.Equal(t, "Scheduled", f.RevenueStream)
		assert.Equal(t, "Adult", f.PassengerType)
		assert.True(t, f.Refundable)

		assert.Equal(t, "8h 0m", f.Duration)
		assert.Equal(t, "Y", f.CabinID)
		assert.Equal(t, "Economy", f.CabinName)
		assert.Equal(t, 0, f.Stops)
		assert.Empty(t, f.OutboundLayoverInfo)

		assert.Equal(t, "2025-06-10T22:00:00Z", f.ReturnDepartureTime, "falls back to UTC")
		assert.Equal(t, "2025-06-11T05:10:00Z", f.ReturnArrivalTime)
		assert.Equal(t, "7h 10m", f.ReturnDuration)
		assert.Equal(t, "BA112", f.ReturnFlightNumber)
		assert.Equal(t, "British Airways", f.ReturnMarketingAirlineName)
		assert.Equal(t, "Business", f.ReturnCabinName)
		assert.Equal(t, 0, f.ReturnStops)
		assert.Len(t, f.InboundSegments, 1)
	})
}

func TestFormatResults_BadShapes(t *testing.T) {
	for name, body := range map[string]string{
		"no recommendations":   `{"Airlines":[{"Id":"BA","Name":"British Airways"}]}`,
		"null recommendations": `{"FareRecommendations":null}`,
		"empty object":         `{}`,
		"array":                `[1,2,3]`,
		"string":               `"nope"`,
		"not json":             `<html>gateway timeout</html>`,
		"empty":                ``,
	} {
		t.Run(name, func(t *testing.T) {
			flights := upstream.FormatResults([]byte(body))
			assert.NotNil(t, flights)
			assert.Empty(t, flights)
		})
	}
}

func TestFormatResults_MalformedRecommendationIsSkipped(t *testing.T) {
	body := []byte(`{
		"RouteGroups": [{"Routes": [{"Id": "R1", "FlightIds": ["F1"]}]}],
		"Flights": [{"Id": "F1", "DepartureAirport": "LHR", "ArrivalAirport": "JFK"}],
		"FareRecommendations": [
			{"Id": "good", "RouteCombinations": [{"RouteIds": ["R1"]}],
			 "Passengers": [{"Total": 120, "Fares": [{"Total": 120, "Currency": "GBP"}]}]},
			{"Id": "bad", "RouteCombinations": [{"RouteIds": ["R1"]}],
			 "Passengers": [{"Total": 80, "Fares": {"oops": 1}}]}
		]
	}`)

	resp := upstream.Decode(body)
	require.NotNil(t, resp)
	assert.Equal(t, 1, resp.Malformed)

	flights, dropped := upstream.Normalize(resp)
	require.Len(t, flights, 1)
	assert.Equal(t, "good", flights[0].ID)
	assert.Equal(t, 1, dropped)

	assert.Len(t, upstream.FormatResults(body), 1)
}

func TestDecode_MistypedReferenceKeepsRest(t *testing.T) {
	body := []byte(`{
		"Airlines": {"Id": "BA"},
		"RouteGroups": [{"Routes": [{"Id": "R1", "FlightIds": ["F1"]}]}],
		"Flights": [{"Id": "F1", "DepartureAirport": "LHR", "ArrivalAirport": "JFK"}],
		"FareRecommendations": [
			{"Id": "only", "RouteCombinations": [{"RouteIds": ["R1"]}], "Passengers": [{"Total": 50}]}
		]
	}`)

	flights := upstream.FormatResults(body)
	require.Len(t, flights, 1)
	assert.Equal(t, "only", flights[0].ID)
	assert.Empty(t, flights[0].MarketingAirlineName)
}

func TestNormalize_MissingReferencesDegrade(t *testing.T) {
	resp := &upstream.SearchResponse{
		RouteGroups: []upstream.RouteGroup{{Routes: []upstream.Route{{ID: "R1", FlightIDs: []upstream.FlexString{"F1", "GHOST"}}}}},
		Flights: []upstream.Flight{{
			ID: "F1", FlightNumber: "XX1", MarketingAirlineID: "XX",
			DepartureAirport: "AAA", ArrivalAirport: "BBB",
			DepartureDateTime: "2025-06-01T10:00:00", ArrivalDateTime: "2025-06-01T11:30:00",
		}},
		FareRecommendations: []upstream.Recommendation{{
			ID:                "1",
			RouteCombinations: []upstream.RouteCombination{{RouteIDs: []upstream.FlexString{"R1"}}},
			Passengers: []upstream.PassengerFare{{
				Fares: []upstream.Fare{{Total: 99, FareTypeID: "nope", Currency: "EUR"}},
			}},
		}},
	}

	flights, dropped := upstream.Normalize(resp)
	require.Len(t, flights, 1)
	assert.Equal(t, 0, dropped)

	f := flights[0]
	assert.Empty(t, f.MarketingAirlineName)
	assert.Empty(t, f.OriginName)
	assert.Empty(t, f.FareType)
	assert.Empty(t, f.CabinID)
	assert.Equal(t, 99.0, f.Price, "passenger without Total falls back to its fares")
	assert.Equal(t, "1h 30m", f.Duration)
	assert.Equal(t, 0, f.Stops, "unknown flight ids are skipped")
	assert.Empty(t, f.OutboundLayoverInfo)
}

func TestNormalize_DropsUnresolvable(t *testing.T) {
	good := upstream.Recommendation{
		ID:                "ok",
		RouteCombinations: []upstream.RouteCombination{{RouteIDs: []upstream.FlexString{"R1"}}},
		Passengers:        []upstream.PassengerFare{{Total: 10}},
	}
	resp := &upstream.SearchResponse{
		RouteGroups: []upstream.RouteGroup{
			{Routes: []upstream.Route{{ID: "R1", FlightIDs: []upstream.FlexString{"F1"}}}},
			{Routes: []upstream.Route{{ID: "R-EMPTY", FlightIDs: []upstream.FlexString{"MISSING"}}}},
		},
		Flights: []upstream.Flight{{ID: "F1", DepartureAirport: "AAA", ArrivalAirport: "BBB"}},
		FareRecommendations: []upstream.Recommendation{
			good,
			{ID: "no-combination", Passengers: good.Passengers},
			{ID: "no-passengers", RouteCombinations: good.RouteCombinations},
			{ID: "no-flights", RouteCombinations: []upstream.RouteCombination{{RouteIDs: []upstream.FlexString{"R-EMPTY"}}}, Passengers: good.Passengers},
		},
	}

	flights, dropped := upstream.Normalize(resp)
	require.Len(t, flights, 1)
	assert.Equal(t, "ok", flights[0].ID)
	assert.Equal(t, 3, dropped)
}

func TestNormalize_SortedByPrice(t *testing.T) {
	prices := []float64{420, 99.99, 1500, 250, 99.98, 730}

	resp := &upstream.SearchResponse{
		RouteGroups: []upstream.RouteGroup{{Routes: []upstream.Route{{ID: "R1", FlightIDs: []upstream.FlexString{"F1"}}}}},
		Flights:     []upstream.Flight{{ID: "F1"}},
	}
	for i, p := range prices {
		resp.FareRecommendations = append(resp.FareRecommendations, upstream.Recommendation{
			ID:                upstream.FlexString(strconv.Itoa(i)),
			RouteCombinations: []upstream.RouteCombination{{RouteIDs: []upstream.FlexString{"R1"}}},
			Passengers:        []upstream.PassengerFare{{Total: upstream.FlexFloat(p)}},
		})
	}

	flights, _ := upstream.Normalize(resp)
	require.Len(t, flights, len(prices))
	assert.True(t, sort.SliceIsSorted(flights, func(i, j int) bool {
		return flights[i].Price < flights[j].Price
	}))
	assert.Equal(t, 99.98, flights[0].Price)
	assert.Equal(t, 1500.0, flights[len(flights)-1].Price)
}

func TestNormalize_StopsMatchLayovers(t *testing.T) {
	flights := upstream.FormatResults(loadFixture(t))
	for _, f := range flights {
		assert.Equal(t, f.Stops, len(f.OutboundLayoverInfo), f.ID)
		assert.Equal(t, f.ReturnStops, len(f.InboundLayoverInfo), f.ID)
	}
}
