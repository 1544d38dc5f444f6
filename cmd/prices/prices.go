// Package prices implements the price history command.
package prices

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jwyoo/krx-report/cmd/common"
	"jwyoo/krx-report/cmd/root"
	"jwyoo/krx-report/internal/export"
)

// flagDateLayout is the format for --from/--to values.
const flagDateLayout = "2006-01-02"

var (
	ticker string
	from   string
	to     string
	toCSV  bool
)

// Cmd represents the prices command.
var Cmd = &cobra.Command{
	Use:   "prices",
	Short: "Fetch daily price history for a ticker",
	Long: `Fetch daily OHLCV history and per-share fundamentals for one ticker and
print it, or write it to prices.csv with --csv.`,
	Run: pricesFunc,
}

func init() {
	Cmd.Flags().StringVarP(&ticker, "ticker", "t", "", "Ticker code, e.g. 005930 (required)")
	Cmd.Flags().StringVar(&from, "from", "", "Start date (YYYY-MM-DD, default: configured lookback)")
	Cmd.Flags().StringVar(&to, "to", "", "End date (YYYY-MM-DD, default: today)")
	Cmd.Flags().BoolVar(&toCSV, "csv", false, "Write prices.csv to the output directory")
	_ = Cmd.MarkFlagRequired("ticker")
}

func pricesFunc(cmd *cobra.Command, args []string) {
	clients, err := common.Setup()
	if err != nil {
		root.Log.Fatalf("Error during setup: %v", err)
	}

	now := time.Now()
	fromDate, toDate := clients.PriceWindow(now)
	if from != "" {
		if fromDate, err = time.Parse(flagDateLayout, from); err != nil {
			root.Log.Fatalf("Invalid --from date: %v", err)
		}
	}
	if to != "" {
		if toDate, err = time.Parse(flagDateLayout, to); err != nil {
			root.Log.Fatalf("Invalid --to date: %v", err)
		}
	}

	days, err := clients.KRX.FetchDaily(cmd.Context(), ticker, fromDate, toDate)
	if err != nil {
		root.Log.Fatalf("Error fetching price history: %v", err)
	}
	root.Log.Infof("Fetched %d trading days for %s", len(days), ticker)

	if toCSV {
		csvPath := filepath.Join(clients.OutputDir(), "prices.csv")
		if err := export.WritePricesToCSV(days, csvPath); err != nil {
			root.Log.Fatalf("Error writing prices CSV: %v", err)
		}
		root.Log.Infof("Prices written to %s", csvPath)
		return
	}

	for _, day := range days {
		fmt.Printf("%s\topen=%s high=%s low=%s close=%s vol=%d\n",
			day.Date.Format(flagDateLayout), day.Open, day.High, day.Low, day.Close, day.Volume)
	}
}
