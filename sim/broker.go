package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/simbroker/account"
	"github.com/rustyeddy/simbroker/fees"
	"github.com/rustyeddy/simbroker/journal"
	"github.com/rustyeddy/simbroker/market"
	"github.com/rustyeddy/simbroker/metrics"
	"github.com/rustyeddy/simbroker/order"
	"github.com/rustyeddy/simbroker/pricing"
)

// Broker simulates a brokerage account against a stream of price events.
// A Broker is single-threaded: callers must serialize access to one
// instance, but independent instances share no state and can run in
// parallel.
type Broker struct {
	acct     *account.Account
	engine   *ExecutionEngine
	feeModel fees.Model
	model    AccountModel
	pe       pricing.Engine
	factory  HandlerFactory
	deposit  []market.Amount
	validate bool
	journal  journal.Journal
	metrics  *metrics.Collector
}

type Option func(*Broker)

// WithDeposit sets the initial cash deposited on every Reset. The first
// amount's currency becomes the account base currency.
func WithDeposit(amounts ...market.Amount) Option {
	return func(b *Broker) { b.deposit = amounts }
}

func WithFeeModel(m fees.Model) Option {
	return func(b *Broker) { b.feeModel = m }
}

func WithAccountModel(m AccountModel) Option {
	return func(b *Broker) { b.model = m }
}

func WithPricingEngine(pe pricing.Engine) Option {
	return func(b *Broker) { b.pe = pe }
}

func WithHandlerFactory(f HandlerFactory) Option {
	return func(b *Broker) { b.factory = f }
}

// WithValidation enables the buying-power check: new orders whose estimated
// cost exceeds the available buying power are rejected instead of executed.
func WithValidation() Option {
	return func(b *Broker) { b.validate = true }
}

func WithExchangeRates(r market.ExchangeRates) Option {
	return func(b *Broker) { b.acct.Rates = r }
}

func WithJournal(j journal.Journal) Option {
	return func(b *Broker) { b.journal = j }
}

func WithMetrics(c *metrics.Collector) Option {
	return func(b *Broker) { b.metrics = c }
}

// New builds a simulated broker. Defaults: 1,000,000 USD deposit, spread
// pricing at 10 bips, no fees, cash account model, no journal.
func New(opts ...Option) *Broker {
	b := &Broker{
		acct:     account.New(market.USD),
		feeModel: fees.NoFee{},
		model:    CashAccount{},
		pe:       pricing.NewSpreadEngine(10),
		deposit:  []market.Amount{market.USD.Amount(1_000_000)},
		journal:  journal.Discard,
	}
	for _, opt := range opts {
		opt(b)
	}
	b.acct.BaseCurrency = b.deposit[0].Currency
	b.engine = NewExecutionEngine(b.pe, b.factory)
	b.Reset()
	return b
}

// Account exposes the ledger. It is owned by the broker; read it between
// calls, never mutate it.
func (b *Broker) Account() *account.Account {
	return b.acct
}

// Reset clears all orders, positions and history, then deposits the initial
// balance again.
func (b *Broker) Reset() {
	b.engine.Clear()
	b.acct.Clear()
	for _, amt := range b.deposit {
		b.acct.Deposit(amt)
	}
	b.acct.BuyingPower = b.model.Calculate(b.acct)
}

// Place is the single atomic simulation step: register the new orders,
// process one price event, apply the resulting executions to the ledger,
// mark positions to market and recompute buying power. It returns the
// updated account. The only error is an unsupported order kind or a failing
// journal; domain-level rejection and expiry are reported as order state.
func (b *Broker) Place(orders []order.Order, ev *market.Event) (*account.Account, error) {
	available := b.acct.BuyingPower.Value

	for _, o := range orders {
		if b.validate {
			cost, ok := b.estimateCost(o, ev)
			if ok && cost > available {
				st := order.NewState(o).Update(ev.Time, order.Rejected)
				b.acct.SetOrder(st)
				if b.metrics != nil {
					b.metrics.Rejected("buying_power")
				}
				continue
			}
			if ok {
				available -= cost
			}
		}
		if err := b.engine.Add(o); err != nil {
			return nil, err
		}
		b.acct.SetOrder(order.NewState(o))
		if b.metrics != nil {
			b.metrics.OrderPlaced(orderKind(o))
		}
	}

	execs := b.engine.Execute(ev)
	for _, ex := range execs {
		trade := b.acct.ApplyFill(ev.Time, ex.Order.Asset(), ex.Quantity, ex.Price, ex.Order.ID(), b.feeModel)
		if b.metrics != nil {
			b.metrics.Fill()
		}
		err := b.journal.RecordTrade(journal.TradeRecord{
			OrderID:    trade.OrderID,
			Symbol:     trade.Asset.Symbol,
			Quantity:   trade.Quantity,
			Price:      trade.Price,
			Fee:        trade.Fee,
			RealizedPL: trade.PNL,
			Time:       trade.Time,
		})
		if err != nil {
			return nil, fmt.Errorf("record trade: %w", err)
		}
	}

	for _, st := range b.engine.OpenStates() {
		b.acct.SetOrder(st)
	}
	for _, st := range b.engine.DrainClosed() {
		b.acct.SetOrder(st)
	}

	b.acct.MarkToMarket(ev)
	b.acct.LastUpdate = ev.Time
	b.acct.BuyingPower = b.model.Calculate(b.acct)

	equity := b.acct.Equity()
	if b.metrics != nil {
		b.metrics.SetEquity(equity.Value)
	}
	err := b.journal.RecordEquity(journal.EquitySnapshot{
		Time:        ev.Time,
		Currency:    string(b.acct.BaseCurrency),
		Cash:        b.acct.CashAmount().Value,
		Equity:      equity.Value,
		BuyingPower: b.acct.BuyingPower.Value,
	})
	if err != nil {
		return nil, fmt.Errorf("record equity: %w", err)
	}

	return b.acct, nil
}

// LiquidatePortfolio cancels every open order and closes every open position
// with market orders at the last-known prices, all in one synthetic step.
func (b *Broker) LiquidatePortfolio(t time.Time) (*account.Account, error) {
	var orders []order.Order
	for _, st := range b.acct.OpenOrders() {
		orders = append(orders, order.NewCancel(st.Order.ID()))
	}

	ev := market.NewEvent(t)
	for _, pos := range b.acct.Positions() {
		orders = append(orders, order.NewMarket(pos.Asset, -pos.Size))
		ev.SetPrice(pos.Asset, market.NewBar(pos.MktPrice))
	}

	return b.Place(orders, ev)
}

func orderKind(o order.Order) string {
	switch o.(type) {
	case *order.Market:
		return "market"
	case *order.Limit:
		return "limit"
	case *order.Stop:
		return "stop"
	case *order.StopLimit:
		return "stop_limit"
	case *order.Trail:
		return "trail"
	case *order.TrailLimit:
		return "trail_limit"
	case *order.Bracket:
		return "bracket"
	case *order.OCO:
		return "oco"
	case *order.OTO:
		return "oto"
	case *order.Update:
		return "update"
	case *order.Cancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// estimateCost prices an order for the buying-power check using the event's
// price for its asset. Without a price the order cannot be validated and is
// allowed through.
func (b *Broker) estimateCost(o order.Order, ev *market.Event) (float64, bool) {
	so := referenceOrder(o)
	if so == nil {
		return 0, false
	}
	price, ok := ev.Price(so.Asset())
	if !ok {
		return 0, false
	}
	cost := b.acct.Convert(so.Asset().Value(so.Size(), price))
	return math.Abs(cost.Value), true
}
