package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/plurcast/plurcast/internal/config"
)

// Build-time variables (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Config holds the resolved configuration
type Config struct {
	FormatStr string
	ConfigStr string
	Resolved  config.Resolved
}

// GlobalConfig holds the global configuration state
var GlobalConfig = &Config{}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "plur-creds",
		Short:         "Manage plurcast platform credentials and accounts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// CLI > ENV > Config
			envPassword, envPasswordSet := os.LookupEnv("PLURCAST_MASTER_PASSWORD")
			r, pe := config.Resolve(config.Options{
				ConfigPath:         GlobalConfig.ConfigStr,
				EnvConfigPath:      os.Getenv("PLURCAST_CONFIG"),
				EnvMasterPassword:  envPassword,
				EnvMasterPasswdSet: envPasswordSet,
			})
			if pe != nil {
				return pe
			}
			GlobalConfig.Resolved = r
			if !cmd.Flags().Changed("format") {
				if envFormat := os.Getenv("PLURCAST_FORMAT"); envFormat != "" {
					GlobalConfig.FormatStr = envFormat
				}
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&GlobalConfig.ConfigStr, "config", "", "Config file path (YAML); default: ./plurcast.yaml or $HOME/.config/plurcast/plurcast.yaml")
	root.PersistentFlags().StringVarP(&GlobalConfig.FormatStr, "format", "f", "auto", "Output format: json|yaml|table|csv|auto")

	return root
}
