// Package statements implements the statement resolution command.
package statements

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jwyoo/krx-report/cmd/common"
	"jwyoo/krx-report/cmd/root"
	"jwyoo/krx-report/internal/export"
)

var (
	overrideYear int
	overrideCode string
	toCSV        bool
)

// Cmd represents the statements command.
var Cmd = &cobra.Command{
	Use:   "statements",
	Short: "Resolve and print financial statements for a company",
	Long: `Resolve the best available financial statement for each fiscal year,
trying scope and report-type combinations in priority order, and print which
combination was adopted per year.`,
	Run: statementsFunc,
}

func init() {
	Cmd.Flags().IntVarP(&overrideYear, "year", "y", 0, "Pin the report type for this fiscal year")
	Cmd.Flags().StringVarP(&overrideCode, "report-type", "r", "", "Report code to pin: 11011, 11012, 11013 or 11014")
	Cmd.Flags().BoolVar(&toCSV, "csv", false, "Write statements.csv to the output directory")
}

func statementsFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Company == "" {
		root.Log.Fatal("Company name is required (--company)")
	}

	clients, err := common.Setup()
	if err != nil {
		root.Log.Fatalf("Error during setup: %v", err)
	}
	ctx := cmd.Context()

	listing, corpCode, err := clients.ResolveCompany(ctx, root.SharedFlags.Company)
	if err != nil {
		root.Log.Fatalf("Error resolving company %q: %v", root.SharedFlags.Company, err)
	}
	root.Log.Infof("Selected company: %s (%s)", listing.Name, listing.Ticker)

	minYear, maxYear := clients.YearRange(time.Now())
	req := common.BuildRequest(corpCode, minYear, maxYear, root.SharedFlags.ScopeMode, overrideYear, overrideCode)
	results := clients.Resolver().Resolve(ctx, req)

	for _, res := range results {
		if !res.Resolved {
			fmt.Printf("%d\tno data\n", res.Year)
			continue
		}
		fmt.Printf("%d\t%s\t%s\t%d rows\n", res.Year, res.Scope, res.ReportType.Label(), len(res.Rows))
	}

	if toCSV {
		csvPath := filepath.Join(clients.OutputDir(), "statements.csv")
		if err := export.WriteStatementsToCSV(results, csvPath); err != nil {
			root.Log.Fatalf("Error writing statements CSV: %v", err)
		}
		root.Log.Infof("Statements written to %s", csvPath)
	}
}
