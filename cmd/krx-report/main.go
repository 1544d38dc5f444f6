// Package main provides the entry point for the krx-report CLI application.
package main

import (
	"jwyoo/krx-report/cmd/ping"
	"jwyoo/krx-report/cmd/prices"
	"jwyoo/krx-report/cmd/report"
	"jwyoo/krx-report/cmd/root"
	"jwyoo/krx-report/cmd/search"
	"jwyoo/krx-report/cmd/statements"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(statements.Cmd)
	root.Cmd.AddCommand(prices.Cmd)
	root.Cmd.AddCommand(search.Cmd)
	root.Cmd.AddCommand(ping.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		root.Log.Fatal(err)
	}
}
