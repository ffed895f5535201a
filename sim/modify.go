package sim

import (
	"time"

	"github.com/rustyeddy/simbroker/order"
)

// ModifyHandler mutates other live handlers. Modify handlers run before the
// trade handlers each event and always execute, price available or not; they
// finish in exactly one pass as COMPLETED or REJECTED.
type ModifyHandler interface {
	Execute(open []TradeHandler, t time.Time)
	State() order.State
}

// UpdateHandler replaces the parameters of a live single order.
type UpdateHandler struct {
	ord   *order.Update
	state order.State
}

func newUpdateHandler(o *order.Update) *UpdateHandler {
	return &UpdateHandler{ord: o, state: order.NewState(o)}
}

func (h *UpdateHandler) State() order.State { return h.state }

func (h *UpdateHandler) Execute(open []TradeHandler, t time.Time) {
	h.state = h.state.Update(t, order.Accepted)

	target := findHandler(open, h.ord.Target())
	if single, ok := target.(*SingleHandler); ok && single.replace(h.ord.Update()) {
		h.state = h.state.Update(t, order.Completed)
		return
	}
	h.state = h.state.Update(t, order.Rejected)
}

// CancelHandler closes a live order with EXPIRED status.
type CancelHandler struct {
	ord   *order.Cancel
	state order.State
}

func newCancelHandler(o *order.Cancel) *CancelHandler {
	return &CancelHandler{ord: o, state: order.NewState(o)}
}

func (h *CancelHandler) State() order.State { return h.state }

func (h *CancelHandler) Execute(open []TradeHandler, t time.Time) {
	h.state = h.state.Update(t, order.Accepted)

	target := findHandler(open, h.ord.Target())
	if target != nil && target.Close(order.Expired, t) {
		h.state = h.state.Update(t, order.Completed)
		return
	}
	h.state = h.state.Update(t, order.Rejected)
}

func findHandler(open []TradeHandler, id string) TradeHandler {
	for _, h := range open {
		if h.ID() == id {
			return h
		}
	}
	return nil
}
