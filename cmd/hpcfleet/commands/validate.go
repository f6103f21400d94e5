package commands

import (
	"github.com/spf13/cobra"

	"github.com/hpcfleet/hpcfleet/cmd/hpcfleet/handlers"
)

// Validate returns the command for validating a cluster configuration.
//
// Static rules always run; live provider checks (instance type existence,
// dry-run launches, subnet placement) run unless suppressed. Live checks
// use the default AWS credential chain.
//
// Optional flags:
//
//	--config, -c:            Path to cluster configuration YAML file (required)
//	--region:                AWS region for live checks (default: us-east-1)
//	--suppress-live-checks:  Skip checks that call the provider
//	--failure-threshold:     Lowest level that fails the command (info|warning|error)
//	--concurrency:           How many validators run at once
//	--verbose, -v:           Log validator execution
func Validate() *cobra.Command {
	opts := handlers.ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a cluster configuration",
		Long: `Validate a cluster configuration.

Static rules check names, sizes and variant shape. Live checks ask the
provider whether the configuration is actually launchable: instance type
availability, dry-run launches for custom images, and subnet placement.

Examples:
  # Full validation, including live provider checks
  hpcfleet validate -c cluster.yaml

  # Static rules only
  hpcfleet validate -c cluster.yaml --suppress-live-checks

  # Treat warnings as failures
  hpcfleet validate -c cluster.yaml --failure-threshold warning`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Validate(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().StringVar(&opts.Region, "region", "us-east-1", "AWS region for live checks")
	cmd.Flags().BoolVar(&opts.SuppressLiveChecks, "suppress-live-checks", false, "Skip checks that call the provider")
	cmd.Flags().StringVar(&opts.FailureThreshold, "failure-threshold", "error", "Lowest level that fails the command (info|warning|error)")
	cmd.Flags().IntVar(&opts.Concurrency, "concurrency", 1, "How many validators run at once")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Log validator execution")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}
