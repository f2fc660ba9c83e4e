package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/contactkeval/option-greeks/internal/board"
	"github.com/contactkeval/option-greeks/internal/logger"
	"github.com/contactkeval/option-greeks/internal/pricing"
	"github.com/contactkeval/option-greeks/internal/report"
	"github.com/contactkeval/option-greeks/internal/server"
)

var (
	rate      float64
	spot      float64
	strike    float64
	days      int
	vol       float64
	optType   string
	outDir    string
	verbosity int
	addr      string
)

var rootCmd = &cobra.Command{
	Use:   "option-greeks",
	Short: "Black-Scholes option price and Greeks board",
	Long: `Computes the Black-Scholes price and the five standard Greeks for a
European call or put, prints the metric row, and optionally writes the
full board (metrics plus chart series across a swept spot range) to disk.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger.SetVerbosity(verbosity)

		typ, err := pricing.ParseOptionType(optType)
		if err != nil {
			log.Fatalf("error parsing option type: %v", err)
		}

		snap, err := board.Build(board.Inputs{
			Rate:   rate,
			Spot:   spot,
			Strike: strike,
			Days:   days,
			Vol:    vol,
			Type:   typ,
		})
		if err != nil {
			log.Fatalf("error building board: %v", err)
		}

		printMetrics(snap)

		if outDir != "" {
			if err := os.MkdirAll(outDir, 0755); err != nil {
				log.Fatalf("error creating output dir %s: %v", outDir, err)
			}
			if err := report.WriteJSON(snap, outDir); err != nil {
				log.Fatalf("error writing board.json: %v", err)
			}
			if err := report.WriteCSV(snap.Series, outDir); err != nil {
				log.Fatalf("error writing series.csv: %v", err)
			}
			logger.Infof("wrote board.json and series.csv to %s", outDir)
		}
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the board over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		logger.SetVerbosity(verbosity)

		// .env is optional; flags always win over the environment.
		_ = godotenv.Load()
		listen := addr
		if listen == "" {
			listen = os.Getenv("OPTION_GREEKS_ADDR")
		}
		if listen == "" {
			listen = ":8080"
		}

		if err := server.Serve(listen); err != nil {
			log.Fatalf("server stopped: %v", err)
		}
	},
}

func printMetrics(snap *board.Snapshot) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Metric", "Value"})
	for _, m := range snap.Metrics {
		table.Append([]string{m.Name, m.Display()})
	}
	table.Render()
}

func main() {
	pf := rootCmd.PersistentFlags()
	pf.Float64Var(&rate, "rate", 0.03, "annual risk-free rate, within [0, 1]")
	pf.Float64Var(&spot, "spot", 30, "underlying asset price")
	pf.Float64Var(&strike, "strike", 50, "strike price")
	pf.IntVar(&days, "days", 250, "days until expiry")
	pf.Float64Var(&vol, "vol", 0.30, "annualized volatility, within [0, 1]")
	pf.StringVar(&optType, "type", "call", "option type: call or put")
	pf.IntVarP(&verbosity, "verbosity", "v", 1, "0=errors, 1=info, 2=debug, 3=trace")

	rootCmd.Flags().StringVar(&outDir, "out", "", "directory to write board.json and series.csv")
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (default $OPTION_GREEKS_ADDR or :8080)")
	rootCmd.AddCommand(serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
