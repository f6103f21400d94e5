// Package handlers implements the business logic for CLI commands.
//
// Handler functions are called by command definitions in the commands
// package. They are framework-agnostic and tested independently of the CLI
// framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/hpcfleet/hpcfleet/internal/awsapi"
	"github.com/hpcfleet/hpcfleet/internal/configfile"
	"github.com/hpcfleet/hpcfleet/internal/validate"
)

// ValidateOptions configure the validate handler.
type ValidateOptions struct {
	ConfigPath         string
	Region             string
	SuppressLiveChecks bool
	FailureThreshold   string
	Concurrency        int
	Verbose            bool

	// Out receives the rendered report; defaults to stdout.
	Out io.Writer
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads a configuration from a file.
	loadConfigFile = configfile.LoadFile

	// newEC2Client creates the provider client used by live checks.
	newEC2Client = func(ctx context.Context, region string, log logr.Logger) (awsapi.EC2, error) {
		return awsapi.NewClient(ctx, region, log)
	}
)

var levelColors = map[validate.FailureLevel]*color.Color{
	validate.LevelInfo:    color.New(color.FgCyan),
	validate.LevelWarning: color.New(color.FgYellow),
	validate.LevelError:   color.New(color.FgRed, color.Bold),
}

// Validate loads a configuration, runs every applicable check and renders
// the diagnostics. It returns an error when the run could not complete or
// when any diagnostic meets the failure threshold.
func Validate(ctx context.Context, opts ValidateOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}

	threshold, err := validate.ParseFailureLevel(strings.ToUpper(opts.FailureThreshold))
	if err != nil {
		return err
	}

	spec, err := loadConfigFile(opts.ConfigPath)
	if err != nil {
		return err
	}
	cfg := spec.Graph()

	log := logr.Discard()
	if opts.Verbose {
		log = funcr.New(func(prefix, args string) {
			fmt.Fprintln(os.Stderr, prefix, args)
		}, funcr.Options{Verbosity: 1})
	}

	var client awsapi.EC2
	if !opts.SuppressLiveChecks {
		client, err = newEC2Client(ctx, opts.Region, log)
		if err != nil {
			return fmt.Errorf("failed to initialize provider client: %w", err)
		}
	}

	results, err := validate.Run(ctx, cfg, validate.NewRunContext(client, log),
		validate.WithConcurrency(opts.Concurrency))
	if err != nil {
		return fmt.Errorf("validation did not complete: %w", err)
	}

	renderResults(out, results)

	if validate.HasLevelAtOrAbove(results, threshold) {
		return fmt.Errorf("validation failed: at least one diagnostic at or above %s", threshold)
	}
	return nil
}

func renderResults(out io.Writer, results []validate.Result) {
	if len(results) == 0 {
		fmt.Fprintln(out, color.GreenString("Configuration is valid."))
		return
	}
	for _, r := range results {
		level := r.Level.String()
		if c, ok := levelColors[r.Level]; ok {
			level = c.Sprint(level)
		}
		fmt.Fprintf(out, "%s  %s (%s)\n", level, r.Message, r.ValidatorType)
	}
}
