package models

type Layover struct {
	Airport         string `json:"airport"`
	AirportName     string `json:"airportName,omitempty"`
	Duration        string `json:"duration"`
	DurationMinutes int    `json:"durationMinutes"`
	Terminal        string `json:"terminal,omitempty"`
}

type Segment struct {
	FlightNumber         string `json:"flightNumber"`
	MarketingAirlineID   string `json:"marketingAirlineId,omitempty"`
	MarketingAirlineName string `json:"marketingAirlineName,omitempty"`
	OperatingAirlineID   string `json:"operatingAirlineId,omitempty"`
	OperatingAirlineName string `json:"operatingAirlineName,omitempty"`
	DepartureAirport     string `json:"departureAirport"`
	DepartureAirportName string `json:"departureAirportName,omitempty"`
	DepartureTerminal    string `json:"departureTerminal,omitempty"`
	DepartureTime        string `json:"departureTime"`
	ArrivalAirport       string `json:"arrivalAirport"`
	ArrivalAirportName   string `json:"arrivalAirportName,omitempty"`
	ArrivalTerminal      string `json:"arrivalTerminal,omitempty"`
	ArrivalTime          string `json:"arrivalTime"`
	CabinID              string `json:"cabinId,omitempty"`
}

// Flight is one fare recommendation flattened with every reference
// collection already resolved. Price is the total for all passengers.
type Flight struct {
	ID string `json:"id"`

	Origin          string `json:"origin"`
	OriginName      string `json:"originName,omitempty"`
	Destination     string `json:"destination"`
	DestinationName string `json:"destinationName,omitempty"`

	DepartureTime       string `json:"departureTime"`
	ArrivalTime         string `json:"arrivalTime"`
	Duration            string `json:"duration"`
	ReturnDepartureTime string `json:"returnDepartureTime,omitempty"`
	ReturnArrivalTime   string `json:"returnArrivalTime,omitempty"`
	ReturnDuration      string `json:"returnDuration,omitempty"`

	ValidatingAirlineID   string `json:"validatingAirlineId,omitempty"`
	ValidatingAirlineName string `json:"validatingAirlineName,omitempty"`

	FlightNumber         string `json:"flightNumber"`
	MarketingAirlineID   string `json:"marketingAirlineId"`
	MarketingAirlineName string `json:"marketingAirlineName,omitempty"`
	OperatingAirlineID   string `json:"operatingAirlineId,omitempty"`
	OperatingAirlineName string `json:"operatingAirlineName,omitempty"`

	ReturnFlightNumber         string `json:"returnFlightNumber,omitempty"`
	ReturnMarketingAirlineID   string `json:"returnMarketingAirlineId,omitempty"`
	ReturnMarketingAirlineName string `json:"returnMarketingAirlineName,omitempty"`
	ReturnOperatingAirlineID   string `json:"returnOperatingAirlineId,omitempty"`
	ReturnOperatingAirlineName string `json:"returnOperatingAirlineName,omitempty"`

	Price         float64 `json:"price"`
	BaseFare      float64 `json:"baseFare"`
	Taxes         float64 `json:"taxes"`
	Fees          float64 `json:"fees"`
	Currency      string  `json:"currency"`
	FareType      string  `json:"fareType,omitempty"`
	FareSubType   string  `json:"fareSubType,omitempty"`
	RevenueStream string  `json:"revenueStream,omitempty"`
	PassengerType string  `json:"passengerType,omitempty"`
	FareBasisCode string  `json:"fareBasisCode,omitempty"`
	// Refundable is inferred from the fare basis code and is not an
	// upstream guarantee.
	Refundable bool `json:"refundable"`

	CabinID         string `json:"cabinClass,omitempty"`
	CabinName       string `json:"cabinName,omitempty"`
	ReturnCabinID   string `json:"returnCabinClass,omitempty"`
	ReturnCabinName string `json:"returnCabinName,omitempty"`

	Stops               int       `json:"stops"`
	ReturnStops         int       `json:"returnStops"`
	OutboundLayoverInfo []Layover `json:"outboundLayoverInfo"`
	InboundLayoverInfo  []Layover `json:"inboundLayoverInfo"`

	OutboundSegments []Segment `json:"outboundSegments"`
	InboundSegments  []Segment `json:"inboundSegments,omitempty"`

	IsRoundTrip bool `json:"isRoundTrip"`
}
