package sim

import (
	"fmt"
	"log"
	"math"

	"github.com/rustyeddy/simbroker/account"
	"github.com/rustyeddy/simbroker/market"
	"github.com/rustyeddy/simbroker/order"
)

// AccountModel computes the buying power available for new orders. Models
// are pure: they read the account and return an amount in the base currency.
type AccountModel interface {
	Calculate(acct *account.Account) market.Amount
}

// CashAccount permits trading against settled cash only: buying power is
// cash minus the exposure of open orders and an optional minimum reserve.
type CashAccount struct {
	Minimum float64
}

func (m CashAccount) Calculate(a *account.Account) market.Amount {
	for _, p := range a.Positions() {
		if p.Short() {
			// not fatal, but cash accounts should not end up short
			log.Printf("sim: short position of %s in a cash account", p.Asset.Symbol)
		}
	}
	bp := a.CashAmount().Value - openOrderExposure(a) - m.Minimum
	return a.BaseCurrency.Amount(bp)
}

// MarginAccount lends against open positions: buying power is cash plus the
// loan value of positions at (1-margin), less margin held against open
// orders, levered by 1/margin.
type MarginAccount struct {
	Margin  float64
	Minimum float64
}

func NewMarginAccount(margin float64) MarginAccount {
	if margin <= 0 || margin > 1 {
		panic(fmt.Sprintf("sim: margin %v outside (0,1]", margin))
	}
	return MarginAccount{Margin: margin}
}

func (m MarginAccount) Calculate(a *account.Account) market.Amount {
	loan := 0.0
	for _, p := range a.Positions() {
		loan += a.Convert(p.Exposure()).Value * (1.0 - m.Margin)
	}
	cash := a.CashAmount().Value
	bp := (cash + loan - m.Margin*openOrderExposure(a) - m.Minimum) / m.Margin
	return a.BaseCurrency.Amount(bp)
}

// RegTAccount applies Regulation-T style margining: an initial margin on
// open orders and separate maintenance margins on long and short exposure,
// both subtracted from equity, levered by 1/initial. Buying power never goes
// negative.
type RegTAccount struct {
	Initial          float64
	MaintenanceLong  float64
	MaintenanceShort float64
}

func NewRegTAccount() RegTAccount {
	return RegTAccount{Initial: 0.5, MaintenanceLong: 0.25, MaintenanceShort: 0.30}
}

func (m RegTAccount) Validate() error {
	if m.Initial <= 0 || m.Initial > 1 {
		return fmt.Errorf("sim: initial margin %v outside (0,1]", m.Initial)
	}
	if m.MaintenanceLong < 0 || m.MaintenanceShort < 0 {
		return fmt.Errorf("sim: negative maintenance margin")
	}
	return nil
}

func (m RegTAccount) Calculate(a *account.Account) market.Amount {
	if err := m.Validate(); err != nil {
		panic(err.Error())
	}

	longExp, shortExp := 0.0, 0.0
	for _, p := range a.Positions() {
		exp := a.Convert(p.Exposure()).Value
		if p.Long() {
			longExp += exp
		} else {
			shortExp += exp
		}
	}

	equity := a.Equity().Value
	initial := m.Initial * openOrderExposure(a)
	maintenance := m.MaintenanceLong*longExp + m.MaintenanceShort*shortExp

	bp := (equity - initial - maintenance) / m.Initial
	bp = math.Max(bp, 0)
	return a.BaseCurrency.Amount(bp)
}

// openOrderExposure estimates the notional tied up by open orders in the
// base currency. Limit-style orders use their limit price; the rest fall
// back on the last-known position price, contributing nothing when the asset
// has never been priced.
func openOrderExposure(a *account.Account) float64 {
	total := 0.0
	for _, st := range a.OpenOrders() {
		so := referenceOrder(st.Order)
		if so == nil {
			continue
		}
		price := referencePrice(a, so)
		if price == 0 {
			continue
		}
		total += math.Abs(a.Convert(so.Asset().Value(so.Size(), price)).Value)
	}
	return total
}

// referenceOrder picks the order leg that creates the initial exposure.
func referenceOrder(o order.Order) order.SingleOrder {
	switch t := o.(type) {
	case order.SingleOrder:
		return t
	case *order.Bracket:
		return t.Entry()
	case *order.OCO:
		return t.First()
	case *order.OTO:
		return t.Primary()
	default:
		return nil
	}
}

func referencePrice(a *account.Account, so order.SingleOrder) float64 {
	switch t := so.(type) {
	case *order.Limit:
		return t.Limit()
	case *order.StopLimit:
		return t.Limit()
	case *order.Stop:
		return t.Stop()
	}
	if p, ok := a.Position(so.Asset()); ok {
		return p.MktPrice
	}
	return 0
}
