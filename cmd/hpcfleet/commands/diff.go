package commands

import (
	"github.com/spf13/cobra"

	"github.com/hpcfleet/hpcfleet/cmd/hpcfleet/handlers"
)

// Diff returns the command for grading a configuration change.
//
// Required flags:
//
//	--base, -b:   Path to the currently applied configuration
//	--target, -t: Path to the proposed configuration
func Diff() *cobra.Command {
	opts := handlers.DiffOptions{}

	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Grade how disruptive a configuration change is",
		Long: `Compare two cluster configurations and grade every difference.

Each change is graded from ALLOWED (applies in place) up to UNSUPPORTED
(cannot be applied to a running cluster); the overall grade is the most
disruptive one. The command fails when the change set is UNSUPPORTED.

Examples:
  hpcfleet diff -b applied.yaml -t proposed.yaml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Diff(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.BasePath, "base", "b", "", "Path to the currently applied configuration")
	cmd.Flags().StringVarP(&opts.TargetPath, "target", "t", "", "Path to the proposed configuration")
	_ = cmd.MarkFlagRequired("base")
	_ = cmd.MarkFlagRequired("target")

	return cmd
}
