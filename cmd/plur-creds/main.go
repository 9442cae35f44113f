package main

import (
	"os"

	"github.com/plurcast/plurcast/internal/app"
	"github.com/plurcast/plurcast/internal/errors"
	"github.com/plurcast/plurcast/internal/output"
)

func main() {
	exit := run()
	os.Exit(exit)
}

// run is the main entry point
func run() int {
	// Initialize application
	a := app.New(version, commit, date)
	w := output.New(os.Stdout, os.Stderr)

	// Create root command
	root := NewRootCommand()

	// Add subcommands
	root.AddCommand(NewSpecCommand(&a, &w))
	root.AddCommand(NewVersionCommand(&a, &w))
	root.AddCommand(NewSetCommand(&w))
	root.AddCommand(NewListCommand(&w))
	root.AddCommand(NewUseCommand(&w))
	root.AddCommand(NewDeleteCommand(&w))
	root.AddCommand(NewTestCommand(&w))

	// Execute and handle errors
	if err := root.Execute(); err != nil {
		pe := normalizeErr(err)
		format := resolveFormatForError(GlobalConfig.FormatStr)
		_ = w.WriteError(format, pe)
		return int(errors.ExitCodeFor(pe.Code))
	}

	return int(errors.ExitOK)
}
