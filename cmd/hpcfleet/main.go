// Package main is the entry point for the hpcfleet CLI.
//
// hpcfleet inspects HPC cluster configurations: it validates them against
// static rules and live provider checks, and grades how disruptive a
// configuration change would be to a running cluster.
//
// Commands: validate, diff, version.
//
// For detailed usage information, run:
//
//	hpcfleet --help
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/hpcfleet/hpcfleet/cmd/hpcfleet/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	color.NoColor = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())

	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
