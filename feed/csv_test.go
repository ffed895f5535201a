package feed

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/simbroker/market"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestCSVFeedReadsBars(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, `time,symbol,open,high,low,close,volume
2024-01-02T09:30:00Z,AAPL,100,102,99,101,5000
2024-01-02T09:31:00Z,AAPL,101,103,100,102,4000
`)
	f, err := NewCSVFeed(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	ev, ok, err := f.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC), ev.Time)

	apple := market.NewAsset("AAPL")
	item, ok := ev.Prices[apple]
	require.True(t, ok)
	assert.InDelta(t, 102.0, item.Price(market.HighPrice), 1e-9)
	assert.InDelta(t, 101.0, item.Price(market.ClosePrice), 1e-9)
	assert.InDelta(t, 5000.0, item.Volume(), 1e-9)

	ev, ok, err = f.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 2, 9, 31, 0, 0, time.UTC), ev.Time)

	_, ok, err = f.Next()
	require.NoError(t, err)
	assert.False(t, ok, "clean EOF")
}

func TestCSVFeedGroupsSameTimestamp(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, `2024-01-02T09:30:00Z,AAPL,100,102,99,101,5000
2024-01-02T09:30:00Z,TSLA,200,205,198,203,3000
2024-01-02T09:31:00Z,AAPL,101,103,100,102,4000
`)
	f, err := NewCSVFeed(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	ev, ok, err := f.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, ev.Prices, 2, "same-timestamp rows share one event")

	ev, ok, err = f.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, ev.Prices, 1)
}

func TestCSVFeedNoHeader(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "2024-01-02T09:30:00Z,AAPL,100,102,99,101,5000\n")
	f, err := NewCSVFeed(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	ev, ok, err := f.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, ev.Prices, 1)
}

func TestCSVFeedAssetDetails(t *testing.T) {
	t.Parallel()

	path := writeCSV(t, "2024-01-02T09:30:00Z,DAX,100,102,99,101,5000\n")
	f, err := NewCSVFeed(path, WithAssetDetails(market.Currency("EUR"), 5, "XETRA"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	ev, ok, err := f.Next()
	require.NoError(t, err)
	require.True(t, ok)

	want := market.Asset{Symbol: "DAX", Currency: market.Currency("EUR"), Multiplier: 5, Exchange: "XETRA"}
	_, ok = ev.Prices[want]
	assert.True(t, ok)
}

func TestCSVFeedBadRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"bad time", "not-a-time,AAPL,100,102,99,101,5000\n"},
		{"bad price", "2024-01-02T09:30:00Z,AAPL,abc,102,99,101,5000\n"},
		{"short row", "2024-01-02T09:30:00Z,AAPL,100\n"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f, err := NewCSVFeed(writeCSV(t, tt.content))
			require.NoError(t, err)
			t.Cleanup(func() { _ = f.Close() })

			_, _, err = f.Next()
			assert.Error(t, err)
		})
	}
}

func TestCSVFeedMissingFile(t *testing.T) {
	t.Parallel()

	_, err := NewCSVFeed(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestSliceFeed(t *testing.T) {
	t.Parallel()

	a := market.NewEvent(time.Now())
	b := market.NewEvent(time.Now().Add(time.Minute))
	f := NewSliceFeed(a, b)

	ev, ok, err := f.Next()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Same(t, a, ev)

	_, ok, _ = f.Next()
	assert.True(t, ok)

	_, ok, err = f.Next()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, f.Close())
}
