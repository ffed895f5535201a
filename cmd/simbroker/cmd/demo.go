package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/simbroker/market"
	"github.com/rustyeddy/simbroker/order"
	"github.com/rustyeddy/simbroker/sim"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted bracket-order demo",
	Long: `Run a small scripted simulation to see how the broker works.

Shows the basic workflow of:
  1. Setting up the simulated broker
  2. Placing a bracket order (market entry, take-profit and stop-loss)
  3. Feeding price bars until one of the exit legs fires
  4. Inspecting the resulting positions and equity`,
	RunE: runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	broker := sim.New(sim.WithDeposit(market.USD.Amount(100_000)))

	asset := market.NewAsset("DEMO")
	bracket := order.NewBracket(
		order.NewMarket(asset, 100),
		order.NewLimit(asset, -100, 105.0),
		order.NewStop(asset, -100, 95.0),
	)

	fmt.Println("Placing bracket order: buy 100 DEMO, take profit 105.00, stop loss 95.00")
	fmt.Println()

	now := time.Now()
	prices := []float64{100.0, 101.5, 103.0, 105.5}

	for i, p := range prices {
		ev := market.NewEvent(now.Add(time.Duration(i) * time.Minute))
		ev.SetPrice(asset, market.NewBar(p))

		var orders []order.Order
		if i == 0 {
			orders = []order.Order{bracket}
		}

		acct, err := broker.Place(orders, ev)
		if err != nil {
			return fmt.Errorf("place: %w", err)
		}

		fmt.Printf("t+%dm price %.2f  cash %s  equity %s\n",
			i, p, acct.CashAmount(), acct.Equity())
	}

	acct := broker.Account()
	fmt.Println("\nTrades:")
	for _, t := range acct.Trades() {
		fmt.Printf("  %s %+.0f @ %.2f  fee %.2f  pnl %.2f\n",
			t.Asset.Symbol, t.Quantity, t.Price, t.Fee, t.PNL)
	}

	fmt.Printf("\nFinal equity: %s\n", acct.Equity())
	return nil
}
