package handlers

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/hpcfleet/hpcfleet/internal/update"
)

// DiffOptions configure the diff handler.
type DiffOptions struct {
	BasePath   string
	TargetPath string

	// Out receives the rendered report; defaults to stdout.
	Out io.Writer
}

// Diff loads two configurations, grades their differences and renders the
// change set. It returns an error when the change set cannot be applied to a
// running cluster.
func Diff(opts DiffOptions) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	baseSpec, err := loadConfigFile(opts.BasePath)
	if err != nil {
		return err
	}
	targetSpec, err := loadConfigFile(opts.TargetPath)
	if err != nil {
		return err
	}

	changes, overall := update.Diff(baseSpec.Graph(), targetSpec.Graph())
	renderChanges(out, changes, overall)

	if overall == update.Unsupported {
		return fmt.Errorf("the proposed change cannot be applied to a running cluster")
	}
	return nil
}

func renderChanges(out io.Writer, changes []update.Change, overall update.Updatability) {
	if len(changes) == 0 {
		fmt.Fprintln(out, color.GreenString("No changes."))
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Target", "Change", "Old", "New", "Updatability"})
	for _, c := range changes {
		t.AppendRow(table.Row{c.Target(), c.Kind, renderValue(c.Old), renderValue(c.New), c.Updatability})
	}
	t.Render()

	grade := overall.String()
	switch overall {
	case update.Unsupported:
		grade = color.New(color.FgRed, color.Bold).Sprint(grade)
	case update.Allowed, update.NoChange:
		grade = color.GreenString(grade)
	default:
		grade = color.YellowString(grade)
	}
	fmt.Fprintf(out, "Overall: %s\n", grade)
}

func renderValue(v any) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%v", v)
}
