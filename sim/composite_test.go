package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/simbroker/market"
	"github.com/rustyeddy/simbroker/order"
)

func newTestBracket(t *testing.T, asset market.Asset) *order.Bracket {
	t.Helper()
	return order.NewBracket(
		order.NewMarket(asset, 100),
		order.NewLimit(asset, -100, 110),
		order.NewStop(asset, -100, 90),
	)
}

func TestBracketEntryThenTakeProfit(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	h := newBracketHandler(newTestBracket(t, asset))

	// tick 0: only the entry fills
	execs := h.Execute(flatPricing(100), tick(0))
	require.Len(t, execs, 1)
	assert.InDelta(t, 100.0, execs[0].Quantity, 1e-9)
	assert.Equal(t, order.Accepted, h.State().Status)

	// tick 1: nothing in range
	assert.Empty(t, h.Execute(barPricing{mkt: 105, low: 101, high: 106}, tick(1)))

	// tick 2: the high trades through the take profit
	execs = h.Execute(barPricing{mkt: 108, low: 104, high: 111}, tick(2))
	require.Len(t, execs, 1)
	assert.InDelta(t, -100.0, execs[0].Quantity, 1e-9)
	assert.InDelta(t, 110.0, execs[0].Price, 1e-9)
	assert.Equal(t, order.Completed, h.State().Status)
}

func TestBracketStopLoss(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	h := newBracketHandler(newTestBracket(t, asset))

	h.Execute(flatPricing(100), tick(0))

	execs := h.Execute(barPricing{mkt: 91, low: 89, high: 101}, tick(1))
	require.Len(t, execs, 1)
	assert.InDelta(t, -100.0, execs[0].Quantity, 1e-9)
	assert.InDelta(t, 91.0, execs[0].Price, 1e-9, "stop loss fills at market")
	assert.Equal(t, order.Completed, h.State().Status)
}

func TestBracketLegsAreExclusive(t *testing.T) {
	t.Parallel()

	// a wide bar that would trigger both legs: the take profit is
	// attempted first and wins, the stop loss never fills
	asset := market.NewAsset("AAPL")
	h := newBracketHandler(newTestBracket(t, asset))
	h.Execute(flatPricing(100), tick(0))

	execs := h.Execute(barPricing{mkt: 100, low: 88, high: 112}, tick(1))
	require.Len(t, execs, 1)
	assert.InDelta(t, 110.0, execs[0].Price, 1e-9)
	assert.Equal(t, order.Completed, h.State().Status)

	// further ticks produce nothing
	assert.Empty(t, h.Execute(barPricing{mkt: 85, low: 80, high: 90}, tick(2)))
}

func TestBracketEntryAbortPropagates(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	entry := order.NewLimit(asset, 100, 50)
	entry.SetTIF(order.FOK{})
	b := order.NewBracket(
		entry,
		order.NewLimit(asset, -100, 60),
		order.NewStop(asset, -100, 40),
	)
	h := newBracketHandler(b)

	// entry cannot fill and FOK kills it; the whole bracket dies with it
	execs := h.Execute(flatPricing(55), tick(0))
	assert.Empty(t, execs)
	assert.Equal(t, order.Expired, h.State().Status)
	assert.Empty(t, h.Execute(barPricing{mkt: 45, low: 40, high: 50}, tick(1)))
}

func TestBracketClose(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	h := newBracketHandler(newTestBracket(t, asset))

	assert.True(t, h.Close(order.Expired, tick(0)))
	assert.Equal(t, order.Expired, h.State().Status)
	assert.False(t, h.Close(order.Cancelled, tick(1)))
}

func TestOCOFirstWins(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	oco := order.NewOCO(
		order.NewLimit(asset, 100, 95),  // buy the dip
		order.NewStop(asset, 100, 105), // or chase the breakout
	)
	h := newOCOHandler(oco)

	// dip first
	execs := h.Execute(barPricing{mkt: 96, low: 94, high: 98}, tick(0))
	require.Len(t, execs, 1)
	assert.InDelta(t, 95.0, execs[0].Price, 1e-9)
	assert.Equal(t, order.Completed, h.State().Status)

	// nothing more, even through the other trigger
	assert.Empty(t, h.Execute(barPricing{mkt: 106, low: 104, high: 107}, tick(1)))
}

func TestOCOSecondWins(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	oco := order.NewOCO(
		order.NewLimit(asset, 100, 95),
		order.NewStop(asset, 100, 105),
	)
	h := newOCOHandler(oco)

	execs := h.Execute(barPricing{mkt: 106, low: 100, high: 107}, tick(0))
	require.Len(t, execs, 1)
	assert.InDelta(t, 106.0, execs[0].Price, 1e-9)
	assert.Equal(t, order.Completed, h.State().Status)
}

func TestOCOBothPossibleFirstWins(t *testing.T) {
	t.Parallel()

	// both children could fill this bar; registration order breaks the tie
	asset := market.NewAsset("AAPL")
	oco := order.NewOCO(
		order.NewLimit(asset, 100, 95),
		order.NewStop(asset, 100, 105),
	)
	h := newOCOHandler(oco)

	execs := h.Execute(barPricing{mkt: 100, low: 94, high: 106}, tick(0))
	require.Len(t, execs, 1)
	assert.InDelta(t, 95.0, execs[0].Price, 1e-9, "the first child is attempted first")
}

func TestOCOBothExpire(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	first := order.NewLimit(asset, 100, 95)
	first.SetTIF(order.FOK{})
	second := order.NewStop(asset, 100, 105)
	second.SetTIF(order.FOK{})
	h := newOCOHandler(order.NewOCO(first, second))

	execs := h.Execute(flatPricing(100), tick(0))
	assert.Empty(t, execs)
	assert.Equal(t, order.Expired, h.State().Status)
}

func TestOTOGatesSecondary(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	oto := order.NewOTO(
		order.NewLimit(asset, 100, 95),
		order.NewStop(asset, -100, 90),
	)
	h := newOTOHandler(oto)

	// the secondary stop would trigger here, but the primary is still open
	execs := h.Execute(barPricing{mkt: 97, low: 96, high: 99}, tick(0))
	assert.Empty(t, execs)
	assert.Equal(t, order.Accepted, h.State().Status)

	// primary fills; the secondary activates the same tick and its stop
	// condition holds too
	execs = h.Execute(barPricing{mkt: 92, low: 89, high: 97}, tick(1))
	require.Len(t, execs, 2)
	assert.InDelta(t, 95.0, execs[0].Price, 1e-9)
	assert.InDelta(t, -100.0, execs[1].Quantity, 1e-9)
	assert.Equal(t, order.Completed, h.State().Status)
}

func TestOTOPrimaryAbortKillsSecondary(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	primary := order.NewLimit(asset, 100, 95)
	primary.SetTIF(order.FOK{})
	h := newOTOHandler(order.NewOTO(primary, order.NewMarket(asset, -100)))

	execs := h.Execute(flatPricing(100), tick(0))
	assert.Empty(t, execs)
	assert.Equal(t, order.Expired, h.State().Status)
}
