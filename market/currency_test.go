package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletDepositWithdraw(t *testing.T) {
	t.Parallel()

	w := NewWallet()
	w.Deposit(USD.Amount(100))
	w.Deposit(USD.Amount(50))
	assert.InDelta(t, 150.0, w[USD], 1e-9)

	w.Withdraw(USD.Amount(30))
	assert.InDelta(t, 120.0, w[USD], 1e-9)

	// draining a balance removes the currency entirely
	w.Withdraw(USD.Amount(120))
	_, ok := w[USD]
	assert.False(t, ok)
}

func TestWalletAmountsSorted(t *testing.T) {
	t.Parallel()

	w := NewWallet(
		Currency("JPY").Amount(1000),
		Currency("EUR").Amount(50),
		USD.Amount(100),
	)

	amounts := w.Amounts()
	require.Len(t, amounts, 3)
	assert.Equal(t, Currency("EUR"), amounts[0].Currency)
	assert.Equal(t, Currency("JPY"), amounts[1].Currency)
	assert.Equal(t, USD, amounts[2].Currency)
}

func TestExchangeRatesConvert(t *testing.T) {
	t.Parallel()

	rates := ExchangeRates{
		USD:             1.0,
		Currency("EUR"): 1.10,
		Currency("JPY"): 0.0070,
	}

	tests := []struct {
		name string
		in   Amount
		to   Currency
		want float64
	}{
		{"identity", USD.Amount(100), USD, 100},
		{"eur to usd", Currency("EUR").Amount(100), USD, 110},
		{"usd to eur", USD.Amount(110), Currency("EUR"), 100},
		{"cross eur to jpy", Currency("EUR").Amount(7), Currency("JPY"), 1100},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := rates.Convert(tt.in, tt.to)
			assert.Equal(t, tt.to, got.Currency)
			assert.InDelta(t, tt.want, got.Value, 1e-9)
		})
	}
}

func TestExchangeRatesMissingPanics(t *testing.T) {
	t.Parallel()

	rates := ExchangeRates{USD: 1.0}
	assert.Panics(t, func() {
		rates.Convert(Currency("GBP").Amount(1), USD)
	})
	assert.NotPanics(t, func() {
		// same currency never consults the table
		ExchangeRates{}.Convert(USD.Amount(1), USD)
	})
}

func TestWalletConvert(t *testing.T) {
	t.Parallel()

	rates := ExchangeRates{USD: 1.0, Currency("EUR"): 1.25}
	w := NewWallet(USD.Amount(100), Currency("EUR").Amount(80))

	total := w.Convert(USD, rates)
	assert.InDelta(t, 200.0, total.Value, 1e-9)
}
