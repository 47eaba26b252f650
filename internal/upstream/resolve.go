package upstream

// Index resolves the cross-referenced collections of a search response.
// Every lookup degrades to a zero value when the id is unknown; the first
// entry wins when an id is repeated.
type Index struct {
	airlines       map[string]Reference
	locations      map[string]Reference
	cabins         map[string]Reference
	fareTypes      map[string]Reference
	fareSubTypes   map[string]Reference
	revenueStreams map[string]Reference
	passengerTypes map[string]Reference
	routes         map[string]Route
	flights        map[string]Flight
}

func NewIndex(resp *SearchResponse) *Index {
	ix := &Index{
		airlines:       indexReferences(resp.Airlines),
		locations:      indexReferences(resp.Locations),
		cabins:         indexReferences(resp.Cabins),
		fareTypes:      indexReferences(resp.FareTypes),
		fareSubTypes:   indexReferences(resp.FareSubTypes),
		revenueStreams: indexReferences(resp.RevenueStreams),
		passengerTypes: indexReferences(resp.PassengerTypes),
		routes:         make(map[string]Route),
		flights:        make(map[string]Flight, len(resp.Flights)),
	}

	// Routes only exist nested inside their groups.
	for _, group := range resp.RouteGroups {
		for _, r := range group.Routes {
			if _, seen := ix.routes[string(r.ID)]; !seen {
				ix.routes[string(r.ID)] = r
			}
		}
	}

	for _, f := range resp.Flights {
		if _, seen := ix.flights[string(f.ID)]; !seen {
			ix.flights[string(f.ID)] = f
		}
	}

	return ix
}

func indexReferences(refs []Reference) map[string]Reference {
	m := make(map[string]Reference, len(refs))
	for _, r := range refs {
		if _, seen := m[string(r.ID)]; !seen {
			m[string(r.ID)] = r
		}
	}
	return m
}

func lookupName(m map[string]Reference, id FlexString) string {
	if id == "" {
		return ""
	}
	return string(m[string(id)].Name)
}

func (ix *Index) Airline(id FlexString) (Reference, bool) {
	r, ok := ix.airlines[string(id)]
	return r, ok
}

func (ix *Index) AirlineName(id FlexString) string       { return lookupName(ix.airlines, id) }
func (ix *Index) AirportName(id FlexString) string       { return lookupName(ix.locations, id) }
func (ix *Index) CabinName(id FlexString) string         { return lookupName(ix.cabins, id) }
func (ix *Index) FareTypeName(id FlexString) string      { return lookupName(ix.fareTypes, id) }
func (ix *Index) FareSubTypeName(id FlexString) string   { return lookupName(ix.fareSubTypes, id) }
func (ix *Index) RevenueStreamName(id FlexString) string { return lookupName(ix.revenueStreams, id) }
func (ix *Index) PassengerTypeName(id FlexString) string { return lookupName(ix.passengerTypes, id) }

func (ix *Index) Route(id FlexString) (Route, bool) {
	r, ok := ix.routes[string(id)]
	return r, ok
}

// Routes resolves ids in order, dropping the ones that are unknown.
func (ix *Index) Routes(ids []FlexString) []Route {
	routes := make([]Route, 0, len(ids))
	for _, id := range ids {
		if r, ok := ix.Route(id); ok {
			routes = append(routes, r)
		}
	}
	return routes
}

func (ix *Index) Flight(id FlexString) (Flight, bool) {
	f, ok := ix.flights[string(id)]
	return f, ok
}

// Segments resolves the ordered flight ids of a route, dropping unknown ids.
func (ix *Index) Segments(r Route) []Flight {
	segments := make([]Flight, 0, len(r.FlightIDs))
	for _, id := range r.FlightIDs {
		if f, ok := ix.Flight(id); ok {
			segments = append(segments, f)
		}
	}
	return segments
}
