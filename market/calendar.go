package market

import "time"

// Calendar answers trading-day questions for an exchange. It is consulted by
// DAY time-in-force to decide when an order crosses a session boundary.
type Calendar interface {
	SameTradingDay(a, b time.Time) bool
}

// UTCCalendar treats every UTC calendar day as one trading session.
var UTCCalendar Calendar = utcCalendar{}

type utcCalendar struct{}

func (utcCalendar) SameTradingDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

// CalendarFor returns the calendar of the given exchange. Unknown exchanges
// fall back to UTC days.
func CalendarFor(exchange string) Calendar {
	if c, ok := calendars[exchange]; ok {
		return c
	}
	return UTCCalendar
}

var calendars = map[string]Calendar{}
