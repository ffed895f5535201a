// Package journal records what the simulated broker did: one row per trade
// and one equity snapshot per processed event.
package journal

import "time"

// TradeRecord mirrors one account trade.
type TradeRecord struct {
	OrderID    string
	Symbol     string
	Quantity   float64
	Price      float64
	Fee        float64
	RealizedPL float64
	Time       time.Time
}

// EquitySnapshot captures the account after one step.
type EquitySnapshot struct {
	Time        time.Time
	Currency    string
	Cash        float64
	Equity      float64
	BuyingPower float64
}

type Journal interface {
	RecordTrade(TradeRecord) error
	RecordEquity(EquitySnapshot) error
	Close() error
}

// Discard is a Journal that drops everything.
var Discard Journal = discard{}

type discard struct{}

func (discard) RecordTrade(TradeRecord) error     { return nil }
func (discard) RecordEquity(EquitySnapshot) error { return nil }
func (discard) Close() error                      { return nil }
