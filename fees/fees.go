// Package fees models the cost of executing an order: a price correction and
// an optional commission.
package fees

import (
	"fmt"
	"math"

	"github.com/rustyeddy/simbroker/market"
)

// Model computes the realized execution price and the commission charged for
// a fill. Quantity is signed. Both returned values are denominated in the
// asset currency and the fee is never negative.
type Model interface {
	Calculate(asset market.Asset, quantity, price float64) (execPrice, fee float64)
}

// NoFee passes the raw price through and charges nothing.
type NoFee struct{}

func (NoFee) Calculate(_ market.Asset, _, price float64) (float64, float64) {
	return price, 0
}

// Flat worsens the price by a fixed number of basis points, charging no
// separate commission: buys pay more, sells receive less.
type Flat struct {
	Bips float64
}

func NewFlat(bips float64) Flat {
	if bips < 0 {
		panic(fmt.Sprintf("fees: negative bips %v", bips))
	}
	return Flat{Bips: bips}
}

func (f Flat) Calculate(_ market.Asset, quantity, price float64) (float64, float64) {
	pct := f.Bips / 10_000.0
	if quantity > 0 {
		return price * (1.0 + pct), 0
	}
	return price * (1.0 - pct), 0
}

// Commission charges a fee of Bips of the absolute notional, clamped to
// [Min, Max]. Max of zero means unbounded.
type Commission struct {
	Bips float64
	Min  float64
	Max  float64
}

func NewCommission(bips, min, max float64) Commission {
	if bips < 0 || min < 0 {
		panic(fmt.Sprintf("fees: negative commission parameters (bips=%v min=%v)", bips, min))
	}
	if max > 0 && max < min {
		panic(fmt.Sprintf("fees: maximum %v below minimum %v", max, min))
	}
	return Commission{Bips: bips, Min: min, Max: max}
}

func (c Commission) Calculate(asset market.Asset, quantity, price float64) (float64, float64) {
	notional := math.Abs(asset.Value(quantity, price).Value)
	fee := notional * c.Bips / 10_000.0
	if fee < c.Min {
		fee = c.Min
	}
	if c.Max > 0 && fee > c.Max {
		fee = c.Max
	}
	return price, fee
}
