package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/plurcast/plurcast/internal/errors"
)

func defaultConfigPaths(workDir, homeDir string) []string {
	paths := make([]string, 0, 2)
	if workDir != "" {
		paths = append(paths, filepath.Join(workDir, "plurcast.yaml"))
	}
	if homeDir != "" {
		paths = append(paths, filepath.Join(homeDir, ".config", "plurcast", "plurcast.yaml"))
	}
	return paths
}

func readFile(path string) (File, *errors.PlurError) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return File{}, errors.New(errors.CodeCfgNotFound, "config file not found", map[string]any{"path": path})
		}
		return File{}, errors.Wrap(errors.CodeCfgInvalid, "failed to read config file", map[string]any{"path": path}, err)
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return File{}, errors.Wrap(errors.CodeCfgInvalid, "invalid config file", map[string]any{"path": path}, err)
	}
	return f, nil
}

// LoadConfig 加载配置文件，返回完整配置和配置文件路径。
// 路径优先级：--config > PLURCAST_CONFIG > ./plurcast.yaml > ~/.config/plurcast/plurcast.yaml。
// 全部缺失时返回零值配置（由 Resolve 填默认值），不报错。
func LoadConfig(opts Options) (File, string, *errors.PlurError) {
	workDir := opts.WorkDir
	if workDir == "" {
		wd, _ := os.Getwd()
		workDir = wd
	}
	if opts.HomeDir == "" {
		if hd, err := os.UserHomeDir(); err == nil {
			opts.HomeDir = hd
		}
	}

	explicit := opts.ConfigPath
	if explicit == "" {
		explicit = opts.EnvConfigPath
	}
	if explicit != "" {
		abs := explicit
		if !filepath.IsAbs(abs) {
			abs = filepath.Join(workDir, abs)
		}
		f, pe := readFile(abs)
		if pe != nil {
			return File{}, "", pe
		}
		return f, abs, nil
	}

	for _, p := range defaultConfigPaths(workDir, opts.HomeDir) {
		f, pe := readFile(p)
		if pe != nil {
			if pe.Code == errors.CodeCfgNotFound {
				continue
			}
			return File{}, "", pe
		}
		return f, p, nil
	}

	return File{}, "", nil
}
