package feed

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/simbroker/market"
)

// CSVFeed reads OHLCV rows from a file and groups consecutive rows with the
// same timestamp into one event.
//
// Expected columns: time,symbol,open,high,low,close,volume
// A header row is allowed; times are RFC3339.
type CSVFeed struct {
	f *os.File
	r *csv.Reader

	currency   market.Currency
	multiplier float64
	exchange   string

	sawFirst bool
	pending  *row // read-ahead for event grouping
}

type row struct {
	t      time.Time
	symbol string
	bar    market.Bar
}

type CSVOption func(*CSVFeed)

// WithAssetDetails overrides the currency, contract multiplier and exchange
// applied to every symbol in the file.
func WithAssetDetails(currency market.Currency, multiplier float64, exchange string) CSVOption {
	return func(f *CSVFeed) {
		f.currency = currency
		f.multiplier = multiplier
		f.exchange = exchange
	}
}

func NewCSVFeed(path string, opts ...CSVOption) (*CSVFeed, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	f := &CSVFeed{f: file, r: r, currency: market.USD, multiplier: 1.0}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

func (f *CSVFeed) Close() error {
	if f.f != nil {
		return f.f.Close()
	}
	return nil
}

func (f *CSVFeed) Next() (*market.Event, bool, error) {
	first := f.pending
	f.pending = nil

	if first == nil {
		var err error
		first, err = f.readRow()
		if err != nil {
			return nil, false, err
		}
		if first == nil {
			return nil, false, nil
		}
	}

	ev := market.NewEvent(first.t)
	ev.SetPrice(f.asset(first.symbol), first.bar)

	for {
		next, err := f.readRow()
		if err != nil {
			return nil, false, err
		}
		if next == nil {
			return ev, true, nil
		}
		if !next.t.Equal(first.t) {
			f.pending = next
			return ev, true, nil
		}
		ev.SetPrice(f.asset(next.symbol), next.bar)
	}
}

func (f *CSVFeed) asset(symbol string) market.Asset {
	return market.Asset{
		Symbol:     symbol,
		Currency:   f.currency,
		Multiplier: f.multiplier,
		Exchange:   f.exchange,
	}
}

func (f *CSVFeed) readRow() (*row, error) {
	for {
		rec, err := f.r.Read()
		if err == io.EOF {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		if len(rec) == 0 {
			continue
		}

		if !f.sawFirst {
			f.sawFirst = true
			if strings.EqualFold(strings.TrimSpace(rec[0]), "time") {
				continue
			}
		}

		if len(rec) < 6 {
			return nil, fmt.Errorf("csv feed: short row %v", rec)
		}

		t, err := time.Parse(time.RFC3339, strings.TrimSpace(rec[0]))
		if err != nil {
			return nil, fmt.Errorf("csv feed: bad time %q: %w", rec[0], err)
		}

		var prices [4]float64
		for i := 0; i < 4; i++ {
			prices[i], err = strconv.ParseFloat(strings.TrimSpace(rec[2+i]), 64)
			if err != nil {
				return nil, fmt.Errorf("csv feed: bad price %q: %w", rec[2+i], err)
			}
		}

		vol := 0.0
		if len(rec) > 6 && strings.TrimSpace(rec[6]) != "" {
			vol, err = strconv.ParseFloat(strings.TrimSpace(rec[6]), 64)
			if err != nil {
				return nil, fmt.Errorf("csv feed: bad volume %q: %w", rec[6], err)
			}
		}

		return &row{
			t:      t,
			symbol: strings.TrimSpace(rec[1]),
			bar: market.Bar{
				Open:  prices[0],
				High:  prices[1],
				Low:   prices[2],
				Close: prices[3],
				Vol:   vol,
			},
		}, nil
	}
}
