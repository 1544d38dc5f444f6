// Package ping implements the DART key validation command.
package ping

import (
	"github.com/spf13/cobra"

	"jwyoo/krx-report/cmd/common"
	"jwyoo/krx-report/cmd/root"
)

// Cmd represents the ping command.
var Cmd = &cobra.Command{
	Use:   "ping",
	Short: "Validate the OpenDART API key",
	Long: `Download the corp code registry and verify it is a real ZIP archive.
DART answers key errors with an XML document, so the payload itself is
checked rather than the Content-Type header.`,
	Run: pingFunc,
}

func pingFunc(cmd *cobra.Command, args []string) {
	clients, err := common.Setup()
	if err != nil {
		root.Log.Fatalf("Error during setup: %v", err)
	}

	if err := clients.Dart.Ping(cmd.Context()); err != nil {
		root.Log.Fatalf("DART key check failed: %v", err)
	}
	root.Log.Info("DART key check passed")
}
