package market

import (
	"fmt"
	"sort"
)

// Currency is an ISO-4217 style currency code.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	GBP Currency = "GBP"
	JPY Currency = "JPY"
)

// Amount returns an Amount of this currency.
func (c Currency) Amount(value float64) Amount {
	return Amount{Currency: c, Value: value}
}

// Amount is a monetary value in a single currency.
type Amount struct {
	Currency Currency
	Value    float64
}

func (a Amount) String() string {
	return fmt.Sprintf("%s %.2f", a.Currency, a.Value)
}

// Wallet holds cash balances, possibly in multiple currencies.
type Wallet map[Currency]float64

func NewWallet(amounts ...Amount) Wallet {
	w := make(Wallet)
	for _, a := range amounts {
		w.Deposit(a)
	}
	return w
}

func (w Wallet) Deposit(a Amount) {
	w[a.Currency] += a.Value
	if IsZero(w[a.Currency]) {
		delete(w, a.Currency)
	}
}

func (w Wallet) Withdraw(a Amount) {
	w.Deposit(Amount{Currency: a.Currency, Value: -a.Value})
}

// Amounts returns the balances sorted by currency code so callers iterate
// deterministically.
func (w Wallet) Amounts() []Amount {
	out := make([]Amount, 0, len(w))
	for c, v := range w {
		out = append(out, Amount{Currency: c, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out
}

// Convert collapses the wallet into a single amount of the given currency.
func (w Wallet) Convert(to Currency, rates ExchangeRates) Amount {
	total := 0.0
	for c, v := range w {
		total += rates.Convert(Amount{Currency: c, Value: v}, to).Value
	}
	return Amount{Currency: to, Value: total}
}

func (w Wallet) Clone() Wallet {
	out := make(Wallet, len(w))
	for c, v := range w {
		out[c] = v
	}
	return out
}

// ExchangeRates is a fixed conversion table. Each entry is the value of one
// unit of the currency expressed in a common reference currency; the table is
// closed under cross rates via that reference.
type ExchangeRates map[Currency]float64

// Convert translates an amount into the target currency. Converting between
// identical currencies never consults the table. A missing rate is a
// configuration error and panics.
func (r ExchangeRates) Convert(a Amount, to Currency) Amount {
	if a.Currency == to {
		return a
	}
	from, ok := r[a.Currency]
	if !ok {
		panic(fmt.Sprintf("market: no exchange rate for %s", a.Currency))
	}
	target, ok := r[to]
	if !ok {
		panic(fmt.Sprintf("market: no exchange rate for %s", to))
	}
	return Amount{Currency: to, Value: a.Value * from / target}
}
