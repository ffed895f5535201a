package sim

import (
	"errors"
	"fmt"

	"github.com/rustyeddy/simbroker/market"
	"github.com/rustyeddy/simbroker/order"
	"github.com/rustyeddy/simbroker/pricing"
)

// ErrUnsupportedOrder is returned when an order kind has no handler. This is
// a registration-time failure, never deferred.
var ErrUnsupportedOrder = errors.New("unsupported order type")

// HandlerFactory maps an order to the handler that simulates it, reporting
// false for kinds it does not support. The mapping is fixed at engine build
// time.
type HandlerFactory func(o order.Order) (TradeHandler, bool)

// DefaultFactory supports every built-in order kind except Update and
// Cancel, which the engine treats as modify operations itself.
func DefaultFactory(o order.Order) (TradeHandler, bool) {
	switch t := o.(type) {
	case *order.Market, *order.Limit, *order.Stop, *order.StopLimit, *order.Trail, *order.TrailLimit:
		return newSingleHandler(o.(order.SingleOrder)), true
	case *order.Bracket:
		return newBracketHandler(t), true
	case *order.OCO:
		return newOCOHandler(t), true
	case *order.OTO:
		return newOTOHandler(t), true
	default:
		return nil, false
	}
}

// ExecutionEngine owns the live order handlers and routes each event's
// prices to them. Handlers run in registration order; that order is the
// tie-break for same-tick competing fills and must stay stable.
type ExecutionEngine struct {
	pricing pricing.Engine
	factory HandlerFactory

	trade  []TradeHandler
	modify []ModifyHandler
	closed []order.State
}

// NewExecutionEngine builds an engine around a pricing engine and a handler
// factory. A nil factory selects DefaultFactory.
func NewExecutionEngine(pe pricing.Engine, factory HandlerFactory) *ExecutionEngine {
	if factory == nil {
		factory = DefaultFactory
	}
	return &ExecutionEngine{pricing: pe, factory: factory}
}

// Add registers a new order with the engine.
func (e *ExecutionEngine) Add(o order.Order) error {
	switch t := o.(type) {
	case *order.Update:
		e.modify = append(e.modify, newUpdateHandler(t))
	case *order.Cancel:
		e.modify = append(e.modify, newCancelHandler(t))
	default:
		h, ok := e.factory(o)
		if !ok {
			return fmt.Errorf("%w: %T", ErrUnsupportedOrder, o)
		}
		e.trade = append(e.trade, h)
	}
	return nil
}

// Execute processes one event. Modify handlers run first and
// unconditionally; trade handlers only run when the event carries a price
// for their asset — a missing price leaves the order untouched. Closed
// handlers are evicted after the full pass, never mid-iteration.
func (e *ExecutionEngine) Execute(ev *market.Event) []Execution {
	for _, m := range e.modify {
		m.Execute(e.trade, ev.Time)
		e.closed = append(e.closed, m.State())
	}
	e.modify = e.modify[:0]

	var execs []Execution
	for _, h := range e.trade {
		if h.State().Status.Closed() {
			continue
		}
		item, ok := ev.Prices[h.Asset()]
		if !ok {
			continue
		}
		p := e.pricing.Pricing(item, ev.Time)
		execs = append(execs, h.Execute(p, ev.Time)...)
	}

	live := e.trade[:0]
	for _, h := range e.trade {
		if h.State().Status.Closed() {
			e.closed = append(e.closed, h.State())
		} else {
			live = append(live, h)
		}
	}
	e.trade = live

	return execs
}

// OpenStates snapshots the states of all live handlers in registration
// order.
func (e *ExecutionEngine) OpenStates() []order.State {
	out := make([]order.State, 0, len(e.trade))
	for _, h := range e.trade {
		out = append(out, h.State())
	}
	return out
}

// DrainClosed returns and forgets the states of handlers that closed since
// the previous drain.
func (e *ExecutionEngine) DrainClosed() []order.State {
	out := e.closed
	e.closed = nil
	return out
}

// Clear drops every handler. Used by the broker on reset.
func (e *ExecutionEngine) Clear() {
	e.trade = nil
	e.modify = nil
	e.closed = nil
}
