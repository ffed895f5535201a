package market

import "time"

// Event is one step of market data: a timestamp plus the price observations
// that arrived with it. Not every asset has a price in every event.
type Event struct {
	Time   time.Time
	Prices map[Asset]PriceItem
}

func NewEvent(t time.Time) *Event {
	return &Event{Time: t, Prices: make(map[Asset]PriceItem)}
}

func (e *Event) SetPrice(a Asset, item PriceItem) {
	e.Prices[a] = item
}

// Price is a convenience accessor for the closing price of an asset, with ok
// reporting whether the event carries that asset at all.
func (e *Event) Price(a Asset) (float64, bool) {
	item, ok := e.Prices[a]
	if !ok {
		return 0, false
	}
	return item.Price(ClosePrice), true
}
