// Package report implements the full report-generation command.
package report

import (
	"bytes"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"jwyoo/krx-report/cmd/common"
	"jwyoo/krx-report/cmd/root"
	"jwyoo/krx-report/internal/excel"
	"jwyoo/krx-report/internal/export"
	"jwyoo/krx-report/internal/fileutils"
	"jwyoo/krx-report/internal/insights"
	"jwyoo/krx-report/internal/models"
	rpt "jwyoo/krx-report/internal/report"
	"jwyoo/krx-report/internal/store"
)

// defaultPriceMetrics are pre-selected in a fresh report's price chart.
var defaultPriceMetrics = []string{"Close", "PriceEarningsRatio", "PriceBookRatio"}

var (
	overrideYear int
	overrideCode string
	withCSV      bool
)

// Cmd represents the report command.
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the full HTML and Excel report for a company",
	Long: `Fetch KRX price history and OpenDART financial statements for a company
and write index.html plus stock_data.xlsx to the output directory.`,
	Run: reportFunc,
}

func init() {
	Cmd.Flags().IntVarP(&overrideYear, "year", "y", 0, "Pin the report type for this fiscal year")
	Cmd.Flags().StringVarP(&overrideCode, "report-type", "r", "", "Report code to pin: 11011, 11012, 11013 or 11014")
	Cmd.Flags().BoolVar(&withCSV, "csv", false, "Additionally write prices.csv and statements.csv")
}

func reportFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Company == "" {
		root.Log.Fatal("Company name is required (--company)")
	}

	clients, err := common.Setup()
	if err != nil {
		root.Log.Fatalf("Error during setup: %v", err)
	}
	ctx := cmd.Context()
	now := time.Now()

	listing, corpCode, err := clients.ResolveCompany(ctx, root.SharedFlags.Company)
	if err != nil {
		root.Log.Fatalf("Error resolving company %q: %v", root.SharedFlags.Company, err)
	}
	root.Log.Infof("Selected company: %s (%s)", listing.Name, listing.Ticker)

	minYear, maxYear := clients.YearRange(now)
	req := common.BuildRequest(corpCode, minYear, maxYear, root.SharedFlags.ScopeMode, overrideYear, overrideCode)
	results := clients.Resolver().Resolve(ctx, req)

	from, to := clients.PriceWindow(now)
	days, err := clients.KRX.FetchDaily(ctx, listing.Ticker, from, to)
	if err != nil {
		root.Log.WithError(err).Warn("Could not fetch price history; continuing without it")
		days = nil
	}

	outDir := clients.OutputDir()
	if err := fileutils.EnsureDirectoryExists(outDir); err != nil {
		root.Log.Fatalf("Error creating output directory: %v", err)
	}

	excelFile := "stock_data.xlsx"
	if err := excel.WriteWorkbook(filepath.Join(outDir, excelFile), days, results); err != nil {
		root.Log.Fatalf("Error writing Excel workbook: %v", err)
	}

	priceSeries := rpt.BuildPriceSeries(days)
	statementSeries := rpt.BuildStatementSeries(results)

	preferred, err := store.NewMetricsStore("").LoadPreferredMetrics()
	if err != nil {
		root.Log.WithError(err).Warn("Could not load preferred metrics; using defaults")
		preferred = store.DefaultPreferredMetrics
	}

	data := rpt.Data{
		CompanyName:             listing.Name,
		GeneratedAt:             now,
		PriceSeries:             priceSeries,
		StatementSeries:         statementSeries,
		DefaultPriceMetrics:     priceSeries.SelectDefaults(defaultPriceMetrics, 3),
		DefaultStatementMetrics: statementSeries.SelectDefaults(preferred, 6),
		ExcelFile:               excelFile,
		Insight:                 generateInsight(cmd, clients, listing.Name, results),
	}

	var buf bytes.Buffer
	if err := rpt.NewRenderer().Render(&buf, data); err != nil {
		root.Log.Fatalf("Error rendering HTML report: %v", err)
	}
	htmlPath := filepath.Join(outDir, "index.html")
	if err := fileutils.WriteFile(htmlPath, buf.Bytes(), 0644); err != nil {
		root.Log.Fatalf("Error writing HTML report: %v", err)
	}

	if withCSV {
		if err := export.WritePricesToCSV(days, filepath.Join(outDir, "prices.csv")); err != nil {
			root.Log.Fatalf("Error writing prices CSV: %v", err)
		}
		if err := export.WriteStatementsToCSV(results, filepath.Join(outDir, "statements.csv")); err != nil {
			root.Log.Fatalf("Error writing statements CSV: %v", err)
		}
	}

	root.Log.Infof("Report written to %s", htmlPath)
}

// generateInsight returns the optional AI commentary, or "" when disabled or
// failing. A commentary failure never blocks the report.
func generateInsight(cmd *cobra.Command, clients *common.Clients, companyName string, results []models.YearResult) string {
	if !clients.Cfg.AI.Enabled {
		return ""
	}

	gen := insights.NewGenerator(clients.Cfg.AI.APIKey, clients.Cfg.AI.Model)
	defer func() {
		if err := gen.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close insight generator")
		}
	}()

	text, err := gen.Summarize(cmd.Context(), companyName, results)
	if err != nil {
		root.Log.WithError(err).Warn("Could not generate commentary; report continues without it")
		return ""
	}
	return text
}
