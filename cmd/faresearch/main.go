package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/dharmasatrya/faregate/internal/flightclient"
	"github.com/dharmasatrya/faregate/internal/logging"
	"github.com/dharmasatrya/faregate/internal/models"
)

func main() {
	var (
		endpoint   = flag.String("endpoint", "http://localhost:8080/api/v1/flights/search", "fare search endpoint")
		origin     = flag.String("from", "", "origin airport (IATA)")
		dest       = flag.String("to", "", "destination airport (IATA)")
		departure  = flag.String("date", "", "departure date, YYYY-MM-DD")
		returnDate = flag.String("return", "", "return date, YYYY-MM-DD")
		adults     = flag.Int("adults", 1, "number of adults")
		children   = flag.Int("children", 0, "number of children")
		cabin      = flag.String("cabin", "", "cabin class: economy, premium_economy, business, first")
		maxStops   = flag.Int("max-stops", -1, "maximum stops per leg, -1 for any")
		retries    = flag.Int("retries", 3, "attempts before giving up")
		verbose    = flag.Bool("v", false, "log retries")
	)
	flag.Parse()

	level := "error"
	if *verbose {
		level = "debug"
	}
	log := logging.New(os.Stderr, level, "console")

	intent := models.SearchIntent{
		Origin:        *origin,
		Destination:   *dest,
		DepartureDate: *departure,
		Adults:        *adults,
		Children:      *children,
		CabinClass:    *cabin,
	}
	if *returnDate != "" {
		intent.ReturnDate = returnDate
	}
	if *maxStops >= 0 {
		intent.Filters = &models.SearchFilters{MaxStops: maxStops}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := flightclient.New(*endpoint, flightclient.WithLogger(log))
	flights, err := client.SearchFlightsWithRetry(ctx, intent, *retries)
	if err != nil {
		fmt.Fprintln(os.Stderr, "search failed:", err)
		os.Exit(1)
	}

	if len(flights) == 0 {
		fmt.Println("no flights found")
		return
	}

	printFlights(flights)
}

func printFlights(flights []models.Flight) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRICE\tAIRLINE\tFLIGHT\tDATE\tDEPART\tARRIVE\tDURATION\tSTOPS\tCABIN\tREFUNDABLE")
	for _, f := range flights {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%t\n",
			flightclient.FormatPrice(f.Price, f.Currency),
			f.MarketingAirlineName,
			f.FlightNumber,
			flightclient.FormatDate(f.DepartureTime),
			flightclient.FormatTime(f.DepartureTime),
			flightclient.FormatTime(f.ArrivalTime),
			flightclient.FormatDuration(f.Duration),
			flightclient.StopsLabel(f.Stops),
			flightclient.CabinName(f.CabinID),
			f.Refundable,
		)
		if f.IsRoundTrip {
			fmt.Fprintf(w, "\treturn\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
				f.ReturnFlightNumber,
				flightclient.FormatDate(f.ReturnDepartureTime),
				flightclient.FormatTime(f.ReturnDepartureTime),
				flightclient.FormatTime(f.ReturnArrivalTime),
				flightclient.FormatDuration(f.ReturnDuration),
				flightclient.StopsLabel(f.ReturnStops),
				flightclient.CabinName(f.ReturnCabinID),
			)
		}
	}
	_ = w.Flush()
}
