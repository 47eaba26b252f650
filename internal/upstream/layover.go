package upstream

import (
	"time"

	"github.com/dharmasatrya/faregate/internal/models"
	"github.com/dharmasatrya/faregate/internal/timeutil"
)

// BuildLayovers derives one layover per junction of an ordered segment
// list. Legs with fewer than two segments have none.
func BuildLayovers(segments []Flight, airportName func(FlexString) string) []models.Layover {
	layovers := make([]models.Layover, 0)
	for i := 0; i+1 < len(segments); i++ {
		prev, next := segments[i], segments[i+1]

		airport := prev.ArrivalAirport
		if airport == "" {
			airport = next.DepartureAirport
		}

		terminal := prev.ArrivalTerminal
		if terminal == "" {
			terminal = next.DepartureTerminal
		}

		l := models.Layover{
			Airport:  string(airport),
			Terminal: string(terminal),
		}
		if airportName != nil {
			l.AirportName = airportName(airport)
		}
		if gap, ok := connectionTime(prev, next); ok {
			if gap < 0 {
				gap = 0
			}
			l.Duration = timeutil.FormatDuration(gap)
			l.DurationMinutes = int(gap / time.Minute)
		}
		layovers = append(layovers, l)
	}
	return layovers
}

// connectionTime compares like with like: both local wall clocks (same
// airport, so same zone) or both UTC stamps.
func connectionTime(prev, next Flight) (time.Duration, bool) {
	pairs := [][2]FlexString{
		{prev.ArrivalDateTime, next.DepartureDateTime},
		{prev.ArrivalDateTimeUTC, next.DepartureDateTimeUTC},
	}
	for _, p := range pairs {
		if p[0] == "" || p[1] == "" {
			continue
		}
		arr, err := timeutil.Parse(string(p[0]))
		if err != nil {
			continue
		}
		dep, err := timeutil.Parse(string(p[1]))
		if err != nil {
			continue
		}
		return dep.Sub(arr), true
	}
	return 0, false
}
