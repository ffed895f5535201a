package cmd

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/simbroker/config"
	"github.com/rustyeddy/simbroker/fees"
	"github.com/rustyeddy/simbroker/feed"
	"github.com/rustyeddy/simbroker/journal"
	"github.com/rustyeddy/simbroker/market"
	"github.com/rustyeddy/simbroker/metrics"
	"github.com/rustyeddy/simbroker/pricing"
	"github.com/rustyeddy/simbroker/sim"
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay CSV price data through the simulated broker",
	Long: `Replay historical price bars from a CSV file through the broker.

The CSV file has columns: time,symbol,open,high,low,close,volume with
RFC3339 timestamps. Rows sharing a timestamp become one event.

Example:
  simbroker replay --config simulation.yaml --data prices.csv`,
	RunE: runReplay,
}

var (
	replayConfigPath string
	replayDataPath   string
	replayCloseEnd   bool
	replayMetricsAdr string
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().StringVarP(&replayConfigPath, "config", "f", "", "path to config file (YAML or JSON)")
	replayCmd.Flags().StringVarP(&replayDataPath, "data", "d", "", "path to CSV price data (overrides config)")
	replayCmd.Flags().BoolVar(&replayCloseEnd, "close-end", true, "liquidate the portfolio after the last event")
	replayCmd.Flags().StringVar(&replayMetricsAdr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if replayConfigPath != "" {
		var err error
		cfg, err = config.LoadFromFile(replayConfigPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}

	dataPath := cfg.Feed.CSVPath
	if replayDataPath != "" {
		dataPath = replayDataPath
	}
	if dataPath == "" {
		return fmt.Errorf("no data file: set --data or feed.csv_path in the config")
	}

	opts, j, err := brokerOptions(cfg)
	if err != nil {
		return err
	}
	if j != nil {
		defer j.Close()
	}

	if replayMetricsAdr != "" {
		reg := prometheus.NewRegistry()
		opts = append(opts, sim.WithMetrics(metrics.NewCollector(reg)))
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			http.ListenAndServe(replayMetricsAdr, mux)
		}()
		fmt.Printf("Serving metrics on %s/metrics\n", replayMetricsAdr)
	}

	broker := sim.New(opts...)

	csvOpts := []feed.CSVOption{}
	if cfg.Feed.Currency != "" {
		mult := cfg.Feed.Multiplier
		if mult == 0 {
			mult = 1.0
		}
		csvOpts = append(csvOpts, feed.WithAssetDetails(market.Currency(cfg.Feed.Currency), mult, cfg.Feed.Exchange))
	}
	f, err := feed.NewCSVFeed(dataPath, csvOpts...)
	if err != nil {
		return fmt.Errorf("open data file: %w", err)
	}

	runner := &feed.Runner{
		Broker:  broker,
		Feed:    f,
		Options: feed.RunnerOptions{CloseEnd: replayCloseEnd},
	}

	fmt.Printf("Replaying %s\n", dataPath)
	fmt.Printf("  Deposit: %.2f %s\n\n", cfg.Account.Deposit, cfg.Account.Currency)

	res, err := runner.Run(context.Background())
	if err != nil {
		return fmt.Errorf("replay: %w", err)
	}

	fmt.Printf("Replay complete:\n")
	fmt.Printf("  Events: %d (%s to %s)\n", res.Events, res.Start.Format("2006-01-02"), res.End.Format("2006-01-02"))
	fmt.Printf("  Trades: %d (wins: %d, losses: %d)\n", res.Trades, res.Wins, res.Losses)
	fmt.Printf("  Final Equity: %s\n", res.FinalEquity)
	return nil
}

// brokerOptions translates a config into broker options, creating the
// journal as a side effect so the caller can close it.
func brokerOptions(cfg *config.Config) ([]sim.Option, journal.Journal, error) {
	currency := market.Currency(cfg.Account.Currency)
	opts := []sim.Option{
		sim.WithDeposit(currency.Amount(cfg.Account.Deposit)),
		sim.WithPricingEngine(pricing.NewSpreadEngine(cfg.Pricing.SpreadBips)),
	}

	switch cfg.Fees.Model {
	case "flat":
		opts = append(opts, sim.WithFeeModel(fees.NewFlat(cfg.Fees.Bips)))
	case "commission":
		opts = append(opts, sim.WithFeeModel(fees.NewCommission(cfg.Fees.Bips, cfg.Fees.Min, cfg.Fees.Max)))
	}

	switch cfg.Model.Type {
	case "margin":
		m := sim.NewMarginAccount(cfg.Model.Margin)
		m.Minimum = cfg.Model.Minimum
		opts = append(opts, sim.WithAccountModel(m))
	case "regt":
		m := sim.NewRegTAccount()
		if cfg.Model.InitialMargin > 0 {
			m.Initial = cfg.Model.InitialMargin
		}
		if cfg.Model.MaintenanceLong > 0 {
			m.MaintenanceLong = cfg.Model.MaintenanceLong
		}
		if cfg.Model.MaintenanceShort > 0 {
			m.MaintenanceShort = cfg.Model.MaintenanceShort
		}
		if err := m.Validate(); err != nil {
			return nil, nil, err
		}
		opts = append(opts, sim.WithAccountModel(m))
	default:
		opts = append(opts, sim.WithAccountModel(sim.CashAccount{Minimum: cfg.Model.Minimum}))
	}

	if cfg.Account.Validate {
		opts = append(opts, sim.WithValidation())
	}

	var j journal.Journal
	var err error
	switch cfg.Journal.Type {
	case "csv":
		j, err = journal.NewCSV(cfg.Journal.TradesFile, cfg.Journal.EquityFile)
	case "sqlite":
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("create journal: %w", err)
	}
	if j != nil {
		opts = append(opts, sim.WithJournal(j))
	}

	return opts, j, nil
}
