package feed

import (
	"context"
	"fmt"
	"time"

	"github.com/rustyeddy/simbroker/account"
	"github.com/rustyeddy/simbroker/market"
	"github.com/rustyeddy/simbroker/order"
	"github.com/rustyeddy/simbroker/sim"
)

// Strategy receives every processed event and may emit orders. Orders are
// placed with the next event, never the one that produced them.
type Strategy interface {
	OnEvent(acct *account.Account, ev *market.Event) []order.Order
}

// RunnerOptions controls how a replay run behaves.
type RunnerOptions struct {
	// CloseEnd liquidates the portfolio after the last event.
	CloseEnd bool
}

// Result summarizes a replay run.
type Result struct {
	Events      int
	Trades      int
	Wins        int
	Losses      int
	FinalEquity market.Amount
	Start, End  time.Time
}

// Runner replays a feed through a simulated broker, optionally consulting a
// strategy after each step.
type Runner struct {
	Broker   *sim.Broker
	Feed     Feed
	Strategy Strategy
	Options  RunnerOptions
}

func (r *Runner) Run(ctx context.Context) (Result, error) {
	if r.Broker == nil {
		return Result{}, fmt.Errorf("feed: Broker is required")
	}
	if r.Feed == nil {
		return Result{}, fmt.Errorf("feed: Feed is required")
	}
	defer r.Feed.Close()

	var res Result
	var pending []order.Order

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		ev, ok, err := r.Feed.Next()
		if err != nil {
			return res, err
		}
		if !ok {
			break
		}

		if res.Start.IsZero() || ev.Time.Before(res.Start) {
			res.Start = ev.Time
		}
		if res.End.IsZero() || ev.Time.After(res.End) {
			res.End = ev.Time
		}
		res.Events++

		acct, err := r.Broker.Place(pending, ev)
		if err != nil {
			return res, err
		}
		pending = nil

		if r.Strategy != nil {
			pending = r.Strategy.OnEvent(acct, ev)
		}
	}

	if r.Options.CloseEnd {
		end := res.End
		if end.IsZero() {
			end = time.Now()
		}
		if _, err := r.Broker.LiquidatePortfolio(end); err != nil {
			return res, err
		}
	}

	acct := r.Broker.Account()
	res.FinalEquity = acct.Equity()
	for _, t := range acct.Trades() {
		res.Trades++
		switch {
		case t.PNL > 0:
			res.Wins++
		case t.PNL < 0:
			res.Losses++
		}
	}
	return res, nil
}
