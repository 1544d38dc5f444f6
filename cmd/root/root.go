// Package root contains the root command for the application.
package root

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"jwyoo/krx-report/internal/config"
	"jwyoo/krx-report/internal/dart"
	"jwyoo/krx-report/internal/excel"
	"jwyoo/krx-report/internal/export"
	"jwyoo/krx-report/internal/fileutils"
	"jwyoo/krx-report/internal/insights"
	"jwyoo/krx-report/internal/krx"
	"jwyoo/krx-report/internal/report"
	"jwyoo/krx-report/internal/resolver"
	"jwyoo/krx-report/internal/store"
)

// CommonFlags represents the flags that are common to multiple commands.
type CommonFlags struct {
	Company   string
	Output    string
	ScopeMode string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// SharedFlags are accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "krx-report",
		Short: "Generate stock price and financial statement reports for Korean listed companies.",
		Long: `krx-report fetches KRX price history and OpenDART financial statements
for a listed company and renders them as an interactive HTML report and an
Excel workbook.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to krx-report!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()
			Log = config.ConfigureLogging()

			dart.SetLogger(Log)
			krx.SetLogger(Log)
			resolver.SetLogger(Log)
			report.SetLogger(Log)
			excel.SetLogger(Log)
			export.SetLogger(Log)
			store.SetLogger(Log)
			insights.SetLogger(Log)
			fileutils.SetLogger(Log)
		},
	}
)

// Init initializes the root command and all persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Company, "company", "c", "", "Company name as listed on KRX")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output directory (default from config)")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.ScopeMode, "scope-mode", "s", "auto-cfs",
		"Statement scope order: auto-cfs, auto-ofs, cfs, ofs")
}
