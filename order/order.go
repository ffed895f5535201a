// Package order defines the order requests the simulated broker accepts and
// the lifecycle state it reports back for them.
package order

import (
	"fmt"
	"math"

	"github.com/rustyeddy/simbroker/internal/id"
	"github.com/rustyeddy/simbroker/market"
)

// Order is implemented by every order request. The concrete kind is
// discovered with a type switch; there is no open-ended hierarchy.
type Order interface {
	ID() string
}

// SingleOrder is an order for a single asset that can fill on its own:
// Market, Limit, Stop, StopLimit, Trail and TrailLimit.
type SingleOrder interface {
	Order
	Asset() market.Asset
	Size() float64
	TIF() TIF
}

// single carries the fields every non-composite order shares. Constructors
// validate the size once; the sign never flips afterwards.
type single struct {
	id    string
	asset market.Asset
	size  float64
	tif   TIF
}

func newSingle(asset market.Asset, size float64) single {
	if size == 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		panic(fmt.Sprintf("order: invalid size %v for %s", size, asset.Symbol))
	}
	return single{id: id.New(), asset: asset, size: size, tif: NewGTC()}
}

func (s *single) ID() string          { return s.id }
func (s *single) setID(id string)     { s.id = id }
func (s *single) Asset() market.Asset { return s.asset }
func (s *single) Size() float64       { return s.size }
func (s *single) TIF() TIF            { return s.tif }

// SetTIF overrides the default GTC time-in-force. Call before submitting the
// order; a live order is never mutated.
func (s *single) SetTIF(t TIF) { s.tif = t }

// AdoptID transfers an existing order id onto o. The broker uses it when an
// update replaces a live order's parameters, so the replacement keeps
// reporting under the id the caller already knows.
func AdoptID(o SingleOrder, id string) {
	if s, ok := o.(interface{ setID(string) }); ok {
		s.setID(id)
	}
}

// Market fills fully at the current market price.
type Market struct{ single }

func NewMarket(asset market.Asset, size float64) *Market {
	return &Market{newSingle(asset, size)}
}

// Limit fills at its limit price once the market trades through it.
type Limit struct {
	single
	limit float64
}

func NewLimit(asset market.Asset, size, limit float64) *Limit {
	validPrice("limit", limit)
	return &Limit{newSingle(asset, size), limit}
}

func (o *Limit) Limit() float64 { return o.limit }

// Stop converts into a market fill once its stop price triggers.
type Stop struct {
	single
	stop float64
}

func NewStop(asset market.Asset, size, stop float64) *Stop {
	validPrice("stop", stop)
	return &Stop{newSingle(asset, size), stop}
}

func (o *Stop) Stop() float64 { return o.stop }

// StopLimit arms at the stop price and then fills like a limit order. The
// stop trigger is sticky: once fired it never resets.
type StopLimit struct {
	single
	stop  float64
	limit float64
}

func NewStopLimit(asset market.Asset, size, stop, limit float64) *StopLimit {
	validPrice("stop", stop)
	validPrice("limit", limit)
	return &StopLimit{newSingle(asset, size), stop, limit}
}

func (o *StopLimit) Stop() float64  { return o.stop }
func (o *StopLimit) Limit() float64 { return o.limit }

// Trail follows the market with a stop a fixed percentage away from the best
// price seen so far.
type Trail struct {
	single
	trailPct float64
}

func NewTrail(asset market.Asset, size, trailPct float64) *Trail {
	if trailPct <= 0 || trailPct >= 1 {
		panic(fmt.Sprintf("order: trail percentage %v outside (0,1)", trailPct))
	}
	return &Trail{newSingle(asset, size), trailPct}
}

func (o *Trail) TrailPct() float64 { return o.trailPct }

// TrailLimit is a Trail whose fill is a limit at a fixed offset from the
// trailing stop instead of a market fill.
type TrailLimit struct {
	single
	trailPct    float64
	limitOffset float64
}

func NewTrailLimit(asset market.Asset, size, trailPct, limitOffset float64) *TrailLimit {
	if trailPct <= 0 || trailPct >= 1 {
		panic(fmt.Sprintf("order: trail percentage %v outside (0,1)", trailPct))
	}
	return &TrailLimit{newSingle(asset, size), trailPct, limitOffset}
}

func (o *TrailLimit) TrailPct() float64    { return o.trailPct }
func (o *TrailLimit) LimitOffset() float64 { return o.limitOffset }

func validPrice(name string, p float64) {
	if p <= 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		panic(fmt.Sprintf("order: invalid %s price %v", name, p))
	}
}
