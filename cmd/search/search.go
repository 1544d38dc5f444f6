// Package search implements the listing search command.
package search

import (
	"fmt"

	"github.com/spf13/cobra"

	"jwyoo/krx-report/cmd/common"
	"jwyoo/krx-report/cmd/root"
)

var name string

// Cmd represents the search command.
var Cmd = &cobra.Command{
	Use:   "search",
	Short: "Search the KRX listing by company name",
	Long:  `List all KRX-listed companies whose name contains the given text.`,
	Run:   searchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&name, "name", "n", "", "Company name to search for (required)")
	_ = Cmd.MarkFlagRequired("name")
}

func searchFunc(cmd *cobra.Command, args []string) {
	clients, err := common.Setup()
	if err != nil {
		root.Log.Fatalf("Error during setup: %v", err)
	}

	matches, err := clients.KRX.Search(cmd.Context(), name)
	if err != nil {
		root.Log.Fatalf("Error searching listings: %v", err)
	}
	if len(matches) == 0 {
		root.Log.Infof("No listing matches %q", name)
		return
	}

	for _, m := range matches {
		fmt.Printf("%s\t%s\n", m.Ticker, m.Name)
	}
	root.Log.Infof("%d listings match %q", len(matches), name)
}
