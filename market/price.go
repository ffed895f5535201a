package market

// PriceType selects which observed price to read from a PriceItem.
type PriceType int

const (
	ClosePrice PriceType = iota
	OpenPrice
	HighPrice
	LowPrice
)

// PriceItem is a single observation of an asset's price.
type PriceItem interface {
	// Price returns the observed price of the given type.
	Price(t PriceType) float64

	// Volume is the traded (or quoted) volume of the observation.
	Volume() float64
}

// Bar is an OHLCV price observation.
type Bar struct {
	Open  float64
	High  float64
	Low   float64
	Close float64
	Vol   float64
}

// NewBar returns a bar with all four prices set to the same value, which is
// how synthetic events (liquidation, tests) are built.
func NewBar(price float64) Bar {
	return Bar{Open: price, High: price, Low: price, Close: price}
}

func (b Bar) Price(t PriceType) float64 {
	switch t {
	case OpenPrice:
		return b.Open
	case HighPrice:
		return b.High
	case LowPrice:
		return b.Low
	default:
		return b.Close
	}
}

func (b Bar) Volume() float64 { return b.Vol }

// Quote is a bid/ask price observation. LowPrice maps to the bid, HighPrice
// to the ask, everything else to the midpoint.
type Quote struct {
	BidPrice float64
	BidSize  float64
	AskPrice float64
	AskSize  float64
}

func (q Quote) Price(t PriceType) float64 {
	switch t {
	case LowPrice:
		return q.BidPrice
	case HighPrice:
		return q.AskPrice
	default:
		return (q.BidPrice + q.AskPrice) / 2.0
	}
}

func (q Quote) Volume() float64 {
	if q.BidSize < q.AskSize {
		return q.BidSize
	}
	return q.AskSize
}
