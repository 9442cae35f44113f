package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/plurcast/plurcast/internal/errors"
	"github.com/plurcast/plurcast/internal/output"
	"github.com/plurcast/plurcast/internal/platform"
)

// DeleteFlags holds the flags for the delete command
type DeleteFlags struct {
	Account string
	Force   bool
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand(w *output.Writer) *cobra.Command {
	flags := &DeleteFlags{}

	cmd := &cobra.Command{
		Use:   "delete PLATFORM",
		Short: "Delete a credential and deregister its account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(args[0], flags, w)
		},
	}

	cmd.Flags().StringVar(&flags.Account, "account", "", "Account name (default: active account for the platform)")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Skip the confirmation prompt")

	return cmd
}

func runDelete(platformArg string, flags *DeleteFlags, w *output.Writer) error {
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

	if !flags.Force {
		ok, pe := confirm(fmt.Sprintf("Delete credential for %s account %q?", p, acct))
		if pe != nil {
			return pe
		}
		if !ok {
			return errors.New(errors.CodeInputInvalid, "aborted by user", map[string]any{
				"platform": string(p), "account": acct,
			})
		}
	}

	store, pe := openStore()
	if pe != nil {
		return pe
	}

	// secret 与注册表的删除显式组合；任一侧本就缺失可以容忍，
	// 两侧都缺失才算错误
	secretDeleted := true
	if pe := store.Delete(p.Service(), p.KeyName(), acct); pe != nil {
		if pe.Code != errors.CodeNotFound {
			return pe
		}
		secretDeleted = false
	}

	accountRemoved := true
	if pe := reg.Remove(string(p), acct); pe != nil {
		if pe.Code != errors.CodeAccountNotFound {
			return pe
		}
		accountRemoved = false
	}

	if !secretDeleted && !accountRemoved {
		return errors.New(errors.CodeNotFound, "no credentials found", map[string]any{
			"platform": string(p), "account": acct,
		})
	}

	return w.WriteOK(format, map[string]any{
		"platform":        string(p),
		"account":         acct,
		"secret_deleted":  secretDeleted,
		"account_removed": accountRemoved,
		"active":          reg.Active(string(p)),
	})
}
