// Package pricing decides what prices trigger and fill orders at. A pricing
// engine turns one raw price observation into a Pricing, which order
// handlers query by signed trade volume (positive buys, negative sells) so
// slippage models can be direction-aware without the handlers knowing.
package pricing

import (
	"time"

	"github.com/rustyeddy/simbroker/market"
)

// Pricing exposes the prices for one asset at one moment. LowPrice and
// HighPrice bound the prices reachable this tick and default to the market
// price.
type Pricing interface {
	MarketPrice(volume float64) float64
	LowPrice(volume float64) float64
	HighPrice(volume float64) float64
}

// Engine converts a price observation into a Pricing. Implementations are
// stateless per tick.
type Engine interface {
	Pricing(item market.PriceItem, t time.Time) Pricing
}

// NoCostEngine returns the raw observed price for market, low and high
// alike. Useful for tests and idealized runs.
type NoCostEngine struct {
	PriceType market.PriceType
}

func (e NoCostEngine) Pricing(item market.PriceItem, _ time.Time) Pricing {
	return fixedPricing(item.Price(e.PriceType))
}

type fixedPricing float64

func (p fixedPricing) MarketPrice(float64) float64 { return float64(p) }
func (p fixedPricing) LowPrice(float64) float64    { return float64(p) }
func (p fixedPricing) HighPrice(float64) float64   { return float64(p) }

// RangeEngine fills market orders at the close but lets resting orders
// trigger anywhere inside the observed bar range: LowPrice and HighPrice
// report the bar's extremes instead of the close.
type RangeEngine struct{}

func (RangeEngine) Pricing(item market.PriceItem, _ time.Time) Pricing {
	return rangePricing{item: item}
}

type rangePricing struct {
	item market.PriceItem
}

func (p rangePricing) MarketPrice(float64) float64 { return p.item.Price(market.ClosePrice) }
func (p rangePricing) LowPrice(float64) float64    { return p.item.Price(market.LowPrice) }
func (p rangePricing) HighPrice(float64) float64   { return p.item.Price(market.HighPrice) }

// SpreadEngine applies a fixed spread around the observed price: buys pay
// half the spread above it, sells receive half the spread below it. This is
// always worse for the trader.
type SpreadEngine struct {
	Bips      float64
	PriceType market.PriceType
}

// NewSpreadEngine returns a spread engine with the given total spread in
// basis points. Ten bips is a reasonable default for liquid assets.
func NewSpreadEngine(bips float64) SpreadEngine {
	return SpreadEngine{Bips: bips}
}

func (e SpreadEngine) Pricing(item market.PriceItem, _ time.Time) Pricing {
	return spreadPricing{
		price: item.Price(e.PriceType),
		pct:   e.Bips / 2.0 / 10_000.0,
	}
}

type spreadPricing struct {
	price float64
	pct   float64
}

func (p spreadPricing) MarketPrice(volume float64) float64 {
	correction := 1.0 - p.pct
	if volume > 0 {
		correction = 1.0 + p.pct
	}
	return p.price * correction
}

func (p spreadPricing) LowPrice(volume float64) float64  { return p.MarketPrice(volume) }
func (p spreadPricing) HighPrice(volume float64) float64 { return p.MarketPrice(volume) }
