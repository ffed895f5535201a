package order

import (
	"fmt"
	"time"

	"github.com/rustyeddy/simbroker/market"
)

// TIF (time-in-force) decides how long an order stays eligible to fill.
// Expired is evaluated by the order handler after each fill attempt and
// before any completion check.
type TIF interface {
	// Expired reports whether an order on the given asset, opened at
	// openedAt, is no longer valid at now. remaining and size let
	// fill-or-kill style policies inspect progress.
	Expired(asset market.Asset, openedAt, now time.Time, remaining, size float64) bool
	String() string
}

// GTC keeps an order working until it trades or MaxDays have passed.
type GTC struct {
	MaxDays int
}

// DefaultGTCDays bounds how long a good-till-cancelled order can stay open.
const DefaultGTCDays = 90

func NewGTC() GTC { return GTC{MaxDays: DefaultGTCDays} }

func (g GTC) Expired(_ market.Asset, openedAt, now time.Time, _, _ float64) bool {
	days := g.MaxDays
	if days <= 0 {
		days = DefaultGTCDays
	}
	return now.After(openedAt.Add(time.Duration(days) * 24 * time.Hour))
}

func (g GTC) String() string { return fmt.Sprintf("GTC(%d)", g.MaxDays) }

// Day keeps an order working for the trading day it was opened in, using the
// calendar of the asset's exchange.
type Day struct{}

func (Day) Expired(asset market.Asset, openedAt, now time.Time, _, _ float64) bool {
	return !market.CalendarFor(asset.Exchange).SameTradingDay(openedAt, now)
}

func (Day) String() string { return "DAY" }

// FOK expires an order that did not fully fill in the tick it was accepted.
type FOK struct{}

func (FOK) Expired(_ market.Asset, _, _ time.Time, remaining, _ float64) bool {
	return !market.IsZero(remaining)
}

func (FOK) String() string { return "FOK" }
