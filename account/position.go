package account

import (
	"time"

	"github.com/rustyeddy/simbroker/market"
)

// Position is the holding in a single asset. Size is signed: positive long,
// negative short.
type Position struct {
	Asset      market.Asset
	Size       float64
	AvgPrice   float64
	MktPrice   float64
	LastUpdate time.Time
}

func (p Position) Open() bool  { return !market.IsZero(p.Size) }
func (p Position) Long() bool  { return p.Size > 0 }
func (p Position) Short() bool { return p.Size < 0 }

// MarketValue is the signed value of the position at the last known price.
func (p Position) MarketValue() market.Amount {
	return p.Asset.Value(p.Size, p.MktPrice)
}

// Exposure is the absolute market value.
func (p Position) Exposure() market.Amount {
	v := p.MarketValue()
	if v.Value < 0 {
		v.Value = -v.Value
	}
	return v
}

// Unrealized is the profit or loss that closing at the last known price
// would realize, in the asset currency.
func (p Position) Unrealized() market.Amount {
	return p.Asset.Value(p.Size, p.MktPrice-p.AvgPrice)
}

// update applies a signed fill and returns the realized P&L in the asset
// currency. Adds in the same direction use weighted-average cost; reducing
// fills realize P&L proportionally; a reversing fill closes the old position
// completely and reopens the remainder at the fill price.
func (p *Position) update(qty, price float64, t time.Time) float64 {
	p.LastUpdate = t
	p.MktPrice = price

	switch {
	case market.IsZero(p.Size):
		p.Size = qty
		p.AvgPrice = price
		return 0

	case sameSign(p.Size, qty):
		total := p.Size + qty
		p.AvgPrice = (p.AvgPrice*p.Size + price*qty) / total
		p.Size = total
		return 0

	case abs(qty) <= abs(p.Size)+market.Epsilon:
		realized := -qty * (price - p.AvgPrice) * p.Asset.Multiplier
		p.Size += qty
		if market.IsZero(p.Size) {
			p.Size = 0
		}
		return realized

	default:
		// reversal: close everything, flip the remainder
		realized := p.Size * (price - p.AvgPrice) * p.Asset.Multiplier
		p.Size += qty
		p.AvgPrice = price
		return realized
	}
}

func sameSign(a, b float64) bool {
	return (a > 0) == (b > 0)
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
