package sim

import (
	"time"

	"github.com/rustyeddy/simbroker/market"
	"github.com/rustyeddy/simbroker/order"
	"github.com/rustyeddy/simbroker/pricing"
)

// BracketHandler owns its three child handlers directly. While the entry is
// open only the entry executes; afterwards the exit legs compete under a
// first-to-fill-wins rule: a leg is only attempted while the other leg's
// cumulative fill is still zero.
type BracketHandler struct {
	bracket    *order.Bracket
	state      order.State
	entry      *SingleHandler
	takeProfit *SingleHandler
	stopLoss   *SingleHandler
}

func newBracketHandler(o *order.Bracket) *BracketHandler {
	return &BracketHandler{
		bracket:    o,
		state:      order.NewState(o),
		entry:      newSingleHandler(o.Entry()),
		takeProfit: newSingleHandler(o.TakeProfit()),
		stopLoss:   newSingleHandler(o.StopLoss()),
	}
}

func (h *BracketHandler) ID() string          { return h.bracket.ID() }
func (h *BracketHandler) State() order.State  { return h.state }
func (h *BracketHandler) Asset() market.Asset { return h.bracket.Entry().Asset() }

func (h *BracketHandler) Close(status order.Status, t time.Time) bool {
	if h.state.Status.Closed() {
		return false
	}
	h.entry.Close(status, t)
	h.takeProfit.Close(status, t)
	h.stopLoss.Close(status, t)
	h.state = h.state.Update(t, status)
	return true
}

func (h *BracketHandler) Execute(p pricing.Pricing, t time.Time) []Execution {
	if h.state.Status.Closed() {
		return nil
	}
	if h.state.Status == order.Initial {
		h.state = h.state.Update(t, order.Accepted)
	}

	if h.entry.State().Status.Open() {
		execs := h.entry.Execute(p, t)
		if st := h.entry.State().Status; st.Closed() && st != order.Completed {
			// entry never traded; the legs never activate
			h.takeProfit.Close(st, t)
			h.stopLoss.Close(st, t)
			h.state = h.state.Update(t, st)
		}
		return execs
	}

	var execs []Execution
	if market.IsZero(h.stopLoss.fill) {
		execs = append(execs, h.takeProfit.Execute(p, t)...)
	}
	if market.IsZero(h.takeProfit.fill) {
		execs = append(execs, h.stopLoss.Execute(p, t)...)
	}

	remaining := h.bracket.Entry().Size() + h.takeProfit.fill + h.stopLoss.fill
	if market.IsZero(remaining) {
		h.state = h.state.Update(t, order.Completed)
	}
	return execs
}

// OCOHandler attempts both children each tick until one produces a fill;
// that child becomes the winner, the other is cancelled and the parent
// adopts the winner's status.
type OCOHandler struct {
	oco    *order.OCO
	state  order.State
	first  *SingleHandler
	second *SingleHandler
	winner *SingleHandler
}

func newOCOHandler(o *order.OCO) *OCOHandler {
	return &OCOHandler{
		oco:    o,
		state:  order.NewState(o),
		first:  newSingleHandler(o.First()),
		second: newSingleHandler(o.Second()),
	}
}

func (h *OCOHandler) ID() string          { return h.oco.ID() }
func (h *OCOHandler) State() order.State  { return h.state }
func (h *OCOHandler) Asset() market.Asset { return h.oco.First().Asset() }

func (h *OCOHandler) Close(status order.Status, t time.Time) bool {
	if h.state.Status.Closed() {
		return false
	}
	h.first.Close(status, t)
	h.second.Close(status, t)
	h.state = h.state.Update(t, status)
	return true
}

func (h *OCOHandler) Execute(p pricing.Pricing, t time.Time) []Execution {
	if h.state.Status.Closed() {
		return nil
	}
	if h.state.Status == order.Initial {
		h.state = h.state.Update(t, order.Accepted)
	}

	var execs []Execution
	switch {
	case h.winner != nil:
		execs = h.winner.Execute(p, t)

	default:
		execs = h.first.Execute(p, t)
		if len(execs) > 0 {
			h.winner = h.first
			h.second.Close(order.Cancelled, t)
		} else {
			execs = h.second.Execute(p, t)
			if len(execs) > 0 {
				h.winner = h.second
				h.first.Close(order.Cancelled, t)
			}
		}
	}

	if h.winner != nil {
		if st := h.winner.State().Status; st.Closed() {
			h.state = h.state.Update(t, st)
		}
		return execs
	}

	// neither ever filled and both are gone (e.g. expired)
	if h.first.State().Status.Closed() && h.second.State().Status.Closed() {
		h.state = h.state.Update(t, h.first.State().Status)
	}
	return execs
}

// OTOHandler never attempts its secondary child until the primary has
// completed. If the primary aborts, the parent adopts that status and the
// secondary never activates.
type OTOHandler struct {
	oto       *order.OTO
	state     order.State
	primary   *SingleHandler
	secondary *SingleHandler
}

func newOTOHandler(o *order.OTO) *OTOHandler {
	return &OTOHandler{
		oto:       o,
		state:     order.NewState(o),
		primary:   newSingleHandler(o.Primary()),
		secondary: newSingleHandler(o.Secondary()),
	}
}

func (h *OTOHandler) ID() string          { return h.oto.ID() }
func (h *OTOHandler) State() order.State  { return h.state }
func (h *OTOHandler) Asset() market.Asset { return h.oto.Primary().Asset() }

func (h *OTOHandler) Close(status order.Status, t time.Time) bool {
	if h.state.Status.Closed() {
		return false
	}
	h.primary.Close(status, t)
	h.secondary.Close(status, t)
	h.state = h.state.Update(t, status)
	return true
}

func (h *OTOHandler) Execute(p pricing.Pricing, t time.Time) []Execution {
	if h.state.Status.Closed() {
		return nil
	}
	if h.state.Status == order.Initial {
		h.state = h.state.Update(t, order.Accepted)
	}

	var execs []Execution
	if h.primary.State().Status.Open() {
		execs = append(execs, h.primary.Execute(p, t)...)
	}

	switch st := h.primary.State().Status; {
	case st.Closed() && st != order.Completed:
		h.secondary.Close(st, t)
		h.state = h.state.Update(t, st)

	case st == order.Completed:
		execs = append(execs, h.secondary.Execute(p, t)...)
		if st2 := h.secondary.State().Status; st2.Closed() {
			h.state = h.state.Update(t, st2)
		}
	}
	return execs
}
