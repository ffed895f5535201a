// Package market holds the value types the simulated broker consumes:
// assets, currencies, price observations and the events that carry them.
package market

// Asset identifies a tradeable contract. Asset is a small comparable value
// and is used directly as a map key.
type Asset struct {
	Symbol     string
	Currency   Currency
	Multiplier float64
	Exchange   string
}

// NewAsset returns a USD stock-like asset with a contract multiplier of one.
func NewAsset(symbol string) Asset {
	return Asset{Symbol: symbol, Currency: USD, Multiplier: 1.0}
}

// Value is the monetary value of holding size units at the given price,
// denominated in the asset currency.
func (a Asset) Value(size, price float64) Amount {
	return Amount{Currency: a.Currency, Value: size * price * a.Multiplier}
}

func (a Asset) String() string {
	return a.Symbol
}
