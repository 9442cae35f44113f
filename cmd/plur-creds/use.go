package main

import (
	"github.com/spf13/cobra"

	"github.com/plurcast/plurcast/internal/output"
	"github.com/plurcast/plurcast/internal/platform"
)

// NewUseCommand creates the use command
func NewUseCommand(w *output.Writer) *cobra.Command {
	var accountFlag string

	cmd := &cobra.Command{
		Use:   "use PLATFORM",
		Short: "Set the active account for a platform",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUse(args[0], accountFlag, w)
		},
	}

	cmd.Flags().StringVar(&accountFlag, "account", "", "Account name to activate")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func runUse(platformArg, accountFlag string, w *output.Writer) error {
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
	// 未注册的账号报 PLUR_ACCOUNT_NOT_FOUND（exit 3）
	if pe := reg.SetActive(string(p), accountFlag); pe != nil {
		return pe
	}

	return w.WriteOK(format, map[string]any{
		"platform": string(p),
		"active":   accountFlag,
	})
}
