// plur-migrate 是一次性迁移工具：把遗留单账号 keyring 条目
// 改写为命名空间化多账号布局。幂等、非破坏，可对同一机器重复运行。
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/plurcast/plurcast/internal/errors"
	"github.com/plurcast/plurcast/internal/log"
	"github.com/plurcast/plurcast/internal/migrate"
	"github.com/plurcast/plurcast/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	w := output.New(os.Stdout, os.Stderr)

	var (
		formatStr string
		dryRun    bool
		failed    int
	)

	root := &cobra.Command{
		Use:           "plur-migrate",
		Short:         "Migrate legacy single-account keyring entries to the namespaced layout",
		Version:       version + " (commit: " + commit + ", built: " + date + ")",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(formatStr)
			if err != nil {
				return err
			}

			logger := log.New(os.Stderr)
			if dryRun {
				logger.Info("dry run: no entries will be written")
			}

			sum := migrate.New(nil, dryRun).Run()
			logger.Info("migration finished",
				"migrated", sum.Migrated, "skipped", sum.Skipped, "failed", sum.Failed)

			failed = sum.Failed
			return w.WriteOK(format, sum)
		},
	}

	root.Flags().StringVarP(&formatStr, "format", "f", "auto", "Output format: json|yaml|table|csv|auto")
	root.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be migrated without writing")

	if err := root.Execute(); err != nil {
		pe := errors.AsOrWrap(err)
		_ = w.WriteError(formatForError(formatStr), pe)
		return int(errors.ExitCodeFor(pe.Code))
	}
	// 单条失败不中止迁移，但要以非零退出暴露出来；"无事可迁"不是错误
	if failed > 0 {
		return int(errors.ExitFailure)
	}
	return int(errors.ExitOK)
}

func parseFormat(s string) (output.Format, error) {
	f := output.Format(s)
	if !output.IsValid(f) {
		return "", errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": s})
	}
	return resolveAuto(f), nil
}

func formatForError(s string) output.Format {
	f := output.Format(s)
	if !output.IsValid(f) {
		f = output.FormatAuto
	}
	return resolveAuto(f)
}

func resolveAuto(f output.Format) output.Format {
	if f != output.FormatAuto {
		return f
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return output.FormatTable
	}
	return output.FormatJSON
}
