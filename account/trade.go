package account

import (
	"time"

	"github.com/rustyeddy/simbroker/market"
)

// Trade is the immutable record of one fill applied to the account. The
// trade history is append-only.
type Trade struct {
	Time     time.Time
	Asset    market.Asset
	Quantity float64
	Price    float64
	Fee      float64 // asset currency
	PNL      float64 // realized, net of fee, asset currency
	OrderID  string
}

// TotalCost is the cash impact of the trade: signed notional plus fee.
// Buying costs cash (positive), selling returns it (negative).
func (t Trade) TotalCost() market.Amount {
	return market.Amount{
		Currency: t.Asset.Currency,
		Value:    t.Quantity*t.Price*t.Asset.Multiplier + t.Fee,
	}
}
