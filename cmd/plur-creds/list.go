package main

import (
	"github.com/spf13/cobra"

	"github.com/plurcast/plurcast/internal/account"
	"github.com/plurcast/plurcast/internal/output"
	"github.com/plurcast/plurcast/internal/platform"
)

// NewListCommand creates the list command
func NewListCommand(w *output.Writer) *cobra.Command {
	var platformFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered accounts and mark the active one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(platformFlag, w)
		},
	}

	cmd.Flags().StringVar(&platformFlag, "platform", "", "Restrict to one platform")

	return cmd
}

type accountInfo struct {
	Name   string `json:"name" yaml:"name"`
	Active bool   `json:"active" yaml:"active"`
}

type platformAccounts struct {
	Platform string        `json:"platform" yaml:"platform"`
	Active   string        `json:"active" yaml:"active"`
	Accounts []accountInfo `json:"accounts" yaml:"accounts"`
}

func runList(platformFlag string, w *output.Writer) error {
	format, err := parseOutputFormat(GlobalConfig.FormatStr)
	if err != nil {
		return err
	}

	reg, pe := openRegistry()
	if pe != nil {
		return pe
	}

	var names []string
	if platformFlag != "" {
		p, pe := platform.Parse(platformFlag)
		if pe != nil {
			return pe
		}
		names = []string{string(p)}
	} else {
		names = reg.Platforms()
	}

	platforms := make([]platformAccounts, 0, len(names))
	for _, name := range names {
		platforms = append(platforms, buildPlatformAccounts(reg, name))
	}

	return w.WriteOK(format, map[string]any{"platforms": platforms})
}

func buildPlatformAccounts(reg *account.Registry, name string) platformAccounts {
	active := reg.Active(name)
	entry := platformAccounts{Platform: name, Active: active, Accounts: []accountInfo{}}
	for _, acct := range reg.Accounts(name) {
		entry.Accounts = append(entry.Accounts, accountInfo{Name: acct, Active: acct == active})
	}
	return entry
}
