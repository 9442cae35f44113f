package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/plurcast/plurcast/internal/credential"
	"github.com/plurcast/plurcast/internal/log"
	"github.com/plurcast/plurcast/internal/output"
	"github.com/plurcast/plurcast/internal/platform"
)

// SetFlags holds the flags for the set command
type SetFlags struct {
	Account string
	Stdin   bool
}

// NewSetCommand creates the set command
func NewSetCommand(w *output.Writer) *cobra.Command {
	flags := &SetFlags{}

	cmd := &cobra.Command{
		Use:   "set PLATFORM",
		Short: "Store a credential for a platform account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args[0], flags, w)
		},
	}

	cmd.Flags().StringVar(&flags.Account, "account", "", "Account name (default: active account for the platform)")
	cmd.Flags().BoolVar(&flags.Stdin, "stdin", false, "Read the secret from stdin instead of prompting")

	return cmd
}

func runSet(platformArg string, flags *SetFlags, w *output.Writer) error {
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
	acct, pe := resolveAccount(reg, string(p), flags.Account)
	if pe != nil {
		return pe
	}

	secret, pe := readSecret(flags.Stdin)
	if pe != nil {
		return pe
	}

	store, pe := openStore()
	if pe != nil {
		return pe
	}
	if pe := store.Store(p.Service(), p.KeyName(), acct, secret); pe != nil {
		return pe
	}

	// Register after the write so a failed store never leaves a dangling account.
	if pe := reg.Register(string(p), acct); pe != nil {
		return pe
	}

	insecure := store.IsInsecure()
	if insecure {
		logger := log.New(os.Stderr)
		logger.Warn("credential stored in plain text",
			"platform", string(p), "account", acct, "backend", string(credential.BackendPlainFile))
	}

	return w.WriteOK(format, map[string]any{
		"platform": string(p),
		"account":  acct,
		"key":      p.KeyName(),
		"backend":  string(store.PrimaryBackend()),
		"insecure": insecure,
	})
}
