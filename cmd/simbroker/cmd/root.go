package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "simbroker",
	Short: "A deterministic simulated brokerage for backtesting",
	Long: `Simbroker is a simulated brokerage engine written in Go.

It provides tools for:
  - Replaying historical CSV price data through a simulated broker
  - Deterministic order execution with partial fills and slippage
  - Limit, stop, trailing and bracket/OCO/OTO order types
  - Cash, margin and Reg-T buying-power models
  - Trade and equity journaling to CSV or SQLite

Complete documentation is available at https://github.com/rustyeddy/simbroker`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}
