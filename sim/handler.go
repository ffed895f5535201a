// Package sim is the simulated brokerage: it reproduces the full order
// lifecycle against a stream of price events, without a live exchange.
package sim

import (
	"math"
	"time"

	"github.com/rustyeddy/simbroker/market"
	"github.com/rustyeddy/simbroker/order"
	"github.com/rustyeddy/simbroker/pricing"
)

// Execution is a fill produced by an order handler during one event.
// Quantity is signed and never zero.
type Execution struct {
	Order    order.SingleOrder
	Quantity float64
	Price    float64
}

// TradeHandler simulates one order (single or composite) through its
// lifecycle. Handlers are driven by the execution engine and hold no
// reference back into it.
type TradeHandler interface {
	// Execute gives the handler one chance to fill at the given pricing.
	Execute(p pricing.Pricing, t time.Time) []Execution

	// ID is the identifier of the order this handler tracks.
	ID() string

	// State is a snapshot of the order lifecycle.
	State() order.State

	// Asset is the asset whose price observation the handler needs.
	Asset() market.Asset

	// Close forces the handler into a terminal status. It reports false if
	// the handler was already closed.
	Close(status order.Status, t time.Time) bool
}

// triggerState makes the stop trigger of StopLimit and TrailLimit orders
// explicit: once fired it never rearms.
type triggerState int

const (
	triggerArmed triggerState = iota
	triggerFired
)

// SingleHandler drives a Market, Limit, Stop, StopLimit, Trail or TrailLimit
// order through accept, trigger, fill and expiry.
type SingleHandler struct {
	ord     order.SingleOrder
	state   order.State
	fill    float64
	trail   float64 // trailing stop level, NaN until the first tick
	trigger triggerState
}

func newSingleHandler(o order.SingleOrder) *SingleHandler {
	return &SingleHandler{
		ord:   o,
		state: order.NewState(o),
		trail: math.NaN(),
	}
}

func (h *SingleHandler) ID() string          { return h.ord.ID() }
func (h *SingleHandler) State() order.State  { return h.state }
func (h *SingleHandler) Asset() market.Asset { return h.ord.Asset() }

func (h *SingleHandler) remaining() float64 { return h.ord.Size() - h.fill }

func (h *SingleHandler) Close(status order.Status, t time.Time) bool {
	if h.state.Status.Closed() {
		return false
	}
	h.state = h.state.Update(t, status)
	return true
}

// replace swaps the order parameters while keeping the fill so far. The
// replacement adopts the original id, so the handler keeps reporting under
// the id the caller placed. Changing the asset is not allowed.
func (h *SingleHandler) replace(o order.SingleOrder) bool {
	if h.state.Status.Closed() {
		return false
	}
	if o.Asset() != h.ord.Asset() {
		return false
	}
	order.AdoptID(o, h.ord.ID())
	h.ord = o
	h.state.Order = o
	return true
}

// Execute runs one tick of the order state machine: accept, attempt a fill,
// then check expiry before completion. An order that expires this tick
// discards the execution it would have produced.
func (h *SingleHandler) Execute(p pricing.Pricing, t time.Time) []Execution {
	if h.state.Status.Closed() {
		return nil
	}
	if h.state.Status == order.Initial {
		h.state = h.state.Update(t, order.Accepted)
	}

	exec, filled := h.fillOrder(p)
	if filled {
		h.fill += exec.Quantity
	}

	if h.expired(t) {
		h.state = h.state.Update(t, order.Expired)
		return nil
	}
	if market.IsZero(h.remaining()) {
		h.state = h.state.Update(t, order.Completed)
	}
	if !filled {
		return nil
	}
	return []Execution{exec}
}

func (h *SingleHandler) expired(t time.Time) bool {
	return h.ord.TIF().Expired(h.ord.Asset(), h.state.OpenedAt, t, h.remaining(), h.ord.Size())
}

// fillOrder asks the kind-specific trigger logic for at most one execution
// this tick.
func (h *SingleHandler) fillOrder(p pricing.Pricing) (Execution, bool) {
	vol := h.remaining()
	if market.IsZero(vol) {
		return Execution{}, false
	}

	switch o := h.ord.(type) {
	case *order.Market:
		return h.exec(p.MarketPrice(vol), vol), true

	case *order.Limit:
		if limitTrigger(o.Limit(), vol, p) {
			return h.exec(o.Limit(), vol), true
		}

	case *order.Stop:
		if stopTrigger(o.Stop(), vol, p) {
			return h.exec(p.MarketPrice(vol), vol), true
		}

	case *order.StopLimit:
		if h.trigger == triggerArmed && stopTrigger(o.Stop(), vol, p) {
			h.trigger = triggerFired
		}
		if h.trigger == triggerFired && limitTrigger(o.Limit(), vol, p) {
			return h.exec(o.Limit(), vol), true
		}

	case *order.Trail:
		h.updateTrail(o.TrailPct(), vol, p)
		if stopTrigger(h.trail, vol, p) {
			return h.exec(p.MarketPrice(vol), vol), true
		}

	case *order.TrailLimit:
		h.updateTrail(o.TrailPct(), vol, p)
		limit := h.trail + o.LimitOffset()
		if h.trigger == triggerArmed && stopTrigger(h.trail, vol, p) {
			h.trigger = triggerFired
		}
		if h.trigger == triggerFired && limitTrigger(limit, vol, p) {
			return h.exec(limit, vol), true
		}
	}
	return Execution{}, false
}

func (h *SingleHandler) exec(price, qty float64) Execution {
	return Execution{Order: h.ord, Quantity: qty, Price: price}
}

// updateTrail moves the trailing stop with the market: a sell trails the
// running maximum of high*(1-pct), a buy the running minimum of
// low*(1+pct).
func (h *SingleHandler) updateTrail(pct, vol float64, p pricing.Pricing) {
	if vol < 0 {
		level := p.HighPrice(vol) * (1.0 - pct)
		if math.IsNaN(h.trail) || level > h.trail {
			h.trail = level
		}
	} else {
		level := p.LowPrice(vol) * (1.0 + pct)
		if math.IsNaN(h.trail) || level < h.trail {
			h.trail = level
		}
	}
}

// limitTrigger holds when the market trades through the limit: a buy needs
// the low at or under the limit, a sell the high at or over it.
func limitTrigger(limit, volume float64, p pricing.Pricing) bool {
	if volume > 0 {
		return p.LowPrice(volume) <= limit
	}
	return p.HighPrice(volume) >= limit
}

// stopTrigger holds when the market crosses the stop level, evaluated with
// reversed high/low from limitTrigger: a sell stop fires when the low drops
// to the stop, a buy stop when the high rises to it.
func stopTrigger(stop, volume float64, p pricing.Pricing) bool {
	if volume < 0 {
		return p.LowPrice(volume) <= stop
	}
	return p.HighPrice(volume) >= stop
}
