package main

import (
	"github.com/spf13/cobra"

	"github.com/plurcast/plurcast/internal/errors"
	"github.com/plurcast/plurcast/internal/output"
	"github.com/plurcast/plurcast/internal/platform"
)

// NewTestCommand creates the test command
func NewTestCommand(w *output.Writer) *cobra.Command {
	var accountFlag string

	cmd := &cobra.Command{
		Use:   "test PLATFORM",
		Short: "Check that a credential exists without revealing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(args[0], accountFlag, w)
		},
	}

	cmd.Flags().StringVar(&accountFlag, "account", "", "Account name (default: active account for the platform)")

	return cmd
}

func runTest(platformArg, accountFlag string, w *output.Writer) error {
	format, err := parseOutputFormat(GlobalConfig.FormatStr)
	if err != nil {
		return err
	}

	p, pe := platform.Parse(platformArg)
	if pe != nil {
		return pe
	}

	reg, pe := openRegistry()
	if pe != nil {
		return pe
	}
	acct, pe := resolveAccount(reg, string(p), accountFlag)
	if pe != nil {
		return pe
	}

	store, pe := openStore()
	if pe != nil {
		return pe
	}
	exists, pe := store.Exists(p.Service(), p.KeyName(), acct)
	if pe != nil {
		return pe
	}
	if !exists {
		return errors.New(errors.CodeNotFound, "no credentials found", map[string]any{
			"platform": string(p), "account": acct, "key": p.KeyName(),
		})
	}

	return w.WriteOK(format, map[string]any{
		"platform": string(p),
		"account":  acct,
		"key":      p.KeyName(),
		"exists":   true,
		"backend":  string(store.PrimaryBackend()),
	})
}
