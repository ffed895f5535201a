package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/simbroker/market"
)

func TestConstructorsAssignUniqueIDs(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	a := NewMarket(asset, 100)
	b := NewMarket(asset, 100)

	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestInvalidSizePanics(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	assert.Panics(t, func() { NewMarket(asset, 0) })
	assert.NotPanics(t, func() { NewMarket(asset, -100) })
}

func TestInvalidPricesPanic(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")

	tests := []struct {
		name string
		fn   func()
	}{
		{"limit zero", func() { NewLimit(asset, 10, 0) }},
		{"limit negative", func() { NewLimit(asset, 10, -5) }},
		{"stop zero", func() { NewStop(asset, 10, 0) }},
		{"stoplimit bad stop", func() { NewStopLimit(asset, 10, -1, 100) }},
		{"trail pct zero", func() { NewTrail(asset, 10, 0) }},
		{"trail pct one", func() { NewTrail(asset, 10, 1) }},
		{"traillimit pct", func() { NewTrailLimit(asset, 10, 1.5, 0) }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, tt.fn)
		})
	}
}

func TestDefaultTIFIsGTC(t *testing.T) {
	t.Parallel()

	o := NewLimit(market.NewAsset("AAPL"), 10, 100)
	gtc, ok := o.TIF().(GTC)
	require.True(t, ok)
	assert.Equal(t, DefaultGTCDays, gtc.MaxDays)

	o.SetTIF(FOK{})
	_, ok = o.TIF().(FOK)
	assert.True(t, ok)
}

func TestAdoptID(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	orig := NewLimit(asset, 10, 100)
	repl := NewLimit(asset, 10, 95)

	AdoptID(repl, orig.ID())
	assert.Equal(t, orig.ID(), repl.ID())
}

func TestBracketValidation(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	other := market.NewAsset("TSLA")

	assert.NotPanics(t, func() {
		NewBracket(
			NewMarket(asset, 100),
			NewLimit(asset, -100, 110),
			NewStop(asset, -100, 90),
		)
	})

	assert.Panics(t, func() {
		// legs do not negate the entry
		NewBracket(
			NewMarket(asset, 100),
			NewLimit(asset, -50, 110),
			NewStop(asset, -100, 90),
		)
	})

	assert.Panics(t, func() {
		// mixed assets
		NewBracket(
			NewMarket(asset, 100),
			NewLimit(other, -100, 110),
			NewStop(asset, -100, 90),
		)
	})
}

func TestOCOAndOTOSameAsset(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	other := market.NewAsset("TSLA")

	assert.Panics(t, func() { NewOCO(NewLimit(asset, 10, 100), NewLimit(other, 10, 100)) })
	assert.Panics(t, func() { NewOTO(NewMarket(asset, 10), NewMarket(other, -10)) })
	assert.NotPanics(t, func() { NewOCO(NewLimit(asset, 10, 90), NewStop(asset, 10, 110)) })
}

func TestUpdateCancelValidation(t *testing.T) {
	t.Parallel()

	asset := market.NewAsset("AAPL")
	assert.Panics(t, func() { NewUpdate("", NewLimit(asset, 10, 100)) })
	assert.Panics(t, func() { NewCancel("") })

	u := NewUpdate("target-1", NewLimit(asset, 10, 100))
	assert.Equal(t, "target-1", u.Target())
	assert.NotEqual(t, u.ID(), u.Target())
}
