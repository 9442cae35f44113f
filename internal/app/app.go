package app

import (
	"github.com/plurcast/plurcast/internal/errors"
	"github.com/plurcast/plurcast/internal/output"
	"github.com/plurcast/plurcast/internal/spec"
)

type App struct {
	Version string
	Commit  string
	Date    string
}

func New(version, commit, date string) App {
	return App{Version: version, Commit: commit, Date: date}
}

func (a App) BuildSpec() spec.Spec {
	globalFlags := []spec.FlagSpec{
		{Name: "config", Env: "PLURCAST_CONFIG", Default: "", Description: "Config file path (YAML); default: ./plurcast.yaml or $HOME/.config/plurcast/plurcast.yaml"},
		{Name: "format", Shorthand: "f", Env: "PLURCAST_FORMAT", Default: "auto", Description: "Output format: json|yaml|table|csv|auto"},
	}
	accountFlag := spec.FlagSpec{Name: "account", Default: "", Description: "Account name (default: active account for the platform)"}
	return spec.Spec{
		SchemaVersion: output.SchemaVersion,
		Commands: []spec.CommandSpec{
			{
				Name:        "spec",
				Description: "Export tool spec for AI/agents",
				Flags:       globalFlags,
			},
			{
				Name:        "version",
				Description: "Print version information",
				Flags:       globalFlags,
			},
			{
				Name:        "set",
				Description: "Store a credential for a platform account",
				Flags: append(append([]spec.FlagSpec{}, globalFlags...),
					accountFlag,
					spec.FlagSpec{Name: "stdin", Default: "false", Description: "Read the secret from stdin instead of prompting"},
				),
			},
			{
				Name:        "list",
				Description: "List registered accounts and mark the active one",
				Flags: append(append([]spec.FlagSpec{}, globalFlags...),
					spec.FlagSpec{Name: "platform", Default: "", Description: "Restrict to one platform"},
				),
			},
			{
				Name:        "use",
				Description: "Set the active account for a platform",
				Flags:       append(append([]spec.FlagSpec{}, globalFlags...), accountFlag),
			},
			{
				Name:        "delete",
				Description: "Delete a credential and deregister its account",
				Flags: append(append([]spec.FlagSpec{}, globalFlags...),
					accountFlag,
					spec.FlagSpec{Name: "force", Default: "false", Description: "Skip the confirmation prompt"},
				),
			},
			{
				Name:        "test",
				Description: "Check that a credential exists without revealing it",
				Flags:       append(append([]spec.FlagSpec{}, globalFlags...), accountFlag),
			},
		},
		ErrorCodes: errors.AllCodes(),
	}
}

type VersionInfo struct {
	Version string `json:"version" yaml:"version"`
	Commit  string `json:"commit" yaml:"commit"`
	Date    string `json:"date" yaml:"date"`
}

func (a App) VersionInfo() VersionInfo {
	return VersionInfo{Version: a.Version, Commit: a.Commit, Date: a.Date}
}
