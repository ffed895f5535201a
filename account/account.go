// Package account keeps the ledger of a simulated brokerage account: cash,
// positions, order states and trade history. It is exclusively owned by the
// broker that created it; all mutation happens inside one Place call.
package account

import (
	"time"

	"github.com/rustyeddy/simbroker/fees"
	"github.com/rustyeddy/simbroker/market"
	"github.com/rustyeddy/simbroker/order"
)

// Account is the ledger root.
type Account struct {
	BaseCurrency market.Currency
	Rates        market.ExchangeRates
	Cash         market.Wallet
	BuyingPower  market.Amount
	LastUpdate   time.Time

	positions map[market.Asset]*Position
	assets    []market.Asset // insertion order of positions

	open    map[string]order.State
	openIDs []string // insertion order of open orders
	closed  []order.State

	trades []Trade
}

func New(base market.Currency) *Account {
	a := &Account{
		BaseCurrency: base,
		Rates:        market.ExchangeRates{},
	}
	a.Clear()
	return a
}

// Clear resets the ledger to an empty, zero-cash state.
func (a *Account) Clear() {
	a.Cash = market.NewWallet()
	a.BuyingPower = a.BaseCurrency.Amount(0)
	a.LastUpdate = time.Time{}
	a.positions = make(map[market.Asset]*Position)
	a.assets = nil
	a.open = make(map[string]order.State)
	a.openIDs = nil
	a.closed = nil
	a.trades = nil
}

// Deposit adds cash without touching the trade history.
func (a *Account) Deposit(amt market.Amount) {
	a.Cash.Deposit(amt)
}

// Convert translates an amount into the account base currency.
func (a *Account) Convert(amt market.Amount) market.Amount {
	return a.Rates.Convert(amt, a.BaseCurrency)
}

// CashAmount collapses all cash balances into the base currency.
func (a *Account) CashAmount() market.Amount {
	return a.Cash.Convert(a.BaseCurrency, a.Rates)
}

// Equity is cash plus the market value of all open positions, in the base
// currency.
func (a *Account) Equity() market.Amount {
	total := a.CashAmount().Value
	for _, asset := range a.assets {
		total += a.Convert(a.positions[asset].MarketValue()).Value
	}
	return a.BaseCurrency.Amount(total)
}

// UnrealizedPNL sums the unrealized P&L of all open positions in the base
// currency.
func (a *Account) UnrealizedPNL() market.Amount {
	total := 0.0
	for _, asset := range a.assets {
		total += a.Convert(a.positions[asset].Unrealized()).Value
	}
	return a.BaseCurrency.Amount(total)
}

// Position returns the position for an asset, if one is open.
func (a *Account) Position(asset market.Asset) (Position, bool) {
	p, ok := a.positions[asset]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// Positions returns all open positions in the order they were first opened.
func (a *Account) Positions() []Position {
	out := make([]Position, 0, len(a.assets))
	for _, asset := range a.assets {
		out = append(out, *a.positions[asset])
	}
	return out
}

// OpenOrders returns the states of all open orders in registration order.
func (a *Account) OpenOrders() []order.State {
	out := make([]order.State, 0, len(a.openIDs))
	for _, id := range a.openIDs {
		out = append(out, a.open[id])
	}
	return out
}

// ClosedOrders returns the states of all orders that reached a terminal
// status, in the order they closed.
func (a *Account) ClosedOrders() []order.State {
	return a.closed
}

// Trades returns the append-only trade history.
func (a *Account) Trades() []Trade {
	return a.trades
}

// SetOrder records an order state, moving it between the open and closed
// collections as its status dictates.
func (a *Account) SetOrder(s order.State) {
	id := s.Order.ID()
	if s.Status.Closed() {
		if _, ok := a.open[id]; ok {
			delete(a.open, id)
			a.openIDs = removeID(a.openIDs, id)
		}
		a.closed = append(a.closed, s)
		return
	}
	if _, ok := a.open[id]; !ok {
		a.openIDs = append(a.openIDs, id)
	}
	a.open[id] = s
}

// ApplyFill applies one execution to the ledger: the fee model yields the
// realized price and commission, the position is updated (created or removed
// as needed), a Trade is appended and its total cost withdrawn from cash.
// Must be called exactly once per execution, in production order.
func (a *Account) ApplyFill(t time.Time, asset market.Asset, qty, price float64, orderID string, fm fees.Model) Trade {
	execPrice, fee := fm.Calculate(asset, qty, price)

	pos, ok := a.positions[asset]
	if !ok {
		pos = &Position{Asset: asset}
		a.positions[asset] = pos
		a.assets = append(a.assets, asset)
	}
	realized := pos.update(qty, execPrice, t)
	if !pos.Open() {
		delete(a.positions, asset)
		a.assets = removeAsset(a.assets, asset)
	}

	trade := Trade{
		Time:     t,
		Asset:    asset,
		Quantity: qty,
		Price:    execPrice,
		Fee:      fee,
		PNL:      realized - fee,
		OrderID:  orderID,
	}
	a.trades = append(a.trades, trade)
	a.Cash.Withdraw(trade.TotalCost())
	a.LastUpdate = t
	return trade
}

// MarkToMarket refreshes the last-known price of every position present in
// the event.
func (a *Account) MarkToMarket(ev *market.Event) {
	for _, asset := range a.assets {
		if price, ok := ev.Price(asset); ok {
			p := a.positions[asset]
			p.MktPrice = price
			p.LastUpdate = ev.Time
		}
	}
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

func removeAsset(assets []market.Asset, a market.Asset) []market.Asset {
	for i, v := range assets {
		if v == a {
			return append(assets[:i], assets[i+1:]...)
		}
	}
	return assets
}
