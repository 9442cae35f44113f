// Package account 维护平台 → {已注册账号, 活跃账号} 的注册表。
// 注册表与 secret 存储完全独立：丢失它只影响默认查哪个账号，绝不毁坏 secret。
package account

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/plurcast/plurcast/internal/credential"
	"github.com/plurcast/plurcast/internal/errors"
)

// 账号名：非空，字母数字加 - / _，不含空白。违规直接报错，不做静默修正。
var accountNameRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidateName 校验账号名。
func ValidateName(name string) *errors.PlurError {
	if !accountNameRe.MatchString(name) {
		return errors.New(errors.CodeAccountInvalid, "invalid account name (allowed: letters, digits, '-', '_')", map[string]any{
			"account": name,
		})
	}
	return nil
}

// platformEntry 是注册表文件里单个平台的记录。
type platformEntry struct {
	Accounts []string `yaml:"accounts"`
	Active   string   `yaml:"active,omitempty"`
}

type registryFile struct {
	Platforms map[string]*platformEntry `yaml:"platforms"`
}

// Registry 是持久化的账号注册表。
// 每条命令 read-modify-write 整个文件；保存用 write-temp-then-rename，
// 进程中途被杀最多留下旧指针，绝不产生残缺文件。
// 跨进程并发为 last-write-wins，不提供锁。
type Registry struct {
	path string
	data registryFile
}

// Load 从 path 读取注册表；文件不存在返回空注册表（首次运行）。
func Load(path string) (*Registry, *errors.PlurError) {
	r := &Registry{path: path, data: registryFile{Platforms: map[string]*platformEntry{}}}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return r, nil
		}
		return nil, errors.Wrap(errors.CodeIOFailed, "failed to read account registry", map[string]any{"path": path}, err)
	}
	if err := yaml.Unmarshal(b, &r.data); err != nil {
		return nil, errors.Wrap(errors.CodeIOFailed, "corrupt account registry", map[string]any{"path": path}, err)
	}
	if r.data.Platforms == nil {
		r.data.Platforms = map[string]*platformEntry{}
	}
	return r, nil
}

func (r *Registry) save() *errors.PlurError {
	b, err := yaml.Marshal(&r.data)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, "failed to encode account registry", nil, err)
	}
	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return errors.Wrap(errors.CodeIOFailed, "failed to create registry directory", map[string]any{"path": dir}, err)
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o600); err != nil {
		return errors.Wrap(errors.CodeIOFailed, "failed to write account registry", map[string]any{"path": tmp}, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return errors.Wrap(errors.CodeIOFailed, "failed to replace account registry", map[string]any{"path": r.path}, err)
	}
	return nil
}

// Register 注册账号；重复注册幂等。
func (r *Registry) Register(platform, name string) *errors.PlurError {
	if pe := ValidateName(name); pe != nil {
		return pe
	}
	entry := r.data.Platforms[platform]
	if entry == nil {
		entry = &platformEntry{}
		r.data.Platforms[platform] = entry
	}
	for _, a := range entry.Accounts {
		if a == name {
			return nil
		}
	}
	entry.Accounts = append(entry.Accounts, name)
	sort.Strings(entry.Accounts)
	return r.save()
}

// IsRegistered 查询账号是否已注册。
func (r *Registry) IsRegistered(platform, name string) bool {
	entry := r.data.Platforms[platform]
	if entry == nil {
		return false
	}
	for _, a := range entry.Accounts {
		if a == name {
			return true
		}
	}
	return false
}

// Accounts 返回平台的已注册账号（排序稳定）。
func (r *Registry) Accounts(platform string) []string {
	entry := r.data.Platforms[platform]
	if entry == nil {
		return nil
	}
	out := make([]string, len(entry.Accounts))
	copy(out, entry.Accounts)
	return out
}

// Platforms 返回有记录的平台名（排序稳定）。
func (r *Registry) Platforms() []string {
	out := make([]string, 0, len(r.data.Platforms))
	for p := range r.data.Platforms {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// SetActive 设置活跃账号；未注册的账号报 PLUR_ACCOUNT_NOT_FOUND。
func (r *Registry) SetActive(platform, name string) *errors.PlurError {
	if pe := ValidateName(name); pe != nil {
		return pe
	}
	if !r.IsRegistered(platform, name) {
		return errors.New(errors.CodeAccountNotFound, "account not registered", map[string]any{
			"platform": platform, "account": name,
		})
	}
	r.data.Platforms[platform].Active = name
	return r.save()
}

// Active 返回活跃账号；未设置时为 DefaultAccount。
func (r *Registry) Active(platform string) string {
	entry := r.data.Platforms[platform]
	if entry == nil || entry.Active == "" {
		return credential.DefaultAccount
	}
	return entry.Active
}

// Remove 注销账号。被删的是活跃账号时指针复位到 DefaultAccount
// （绝不悬空）；删除非活跃账号不动指针。不触碰关联 secret
// （由 CLI 层显式组合删除）。
func (r *Registry) Remove(platform, name string) *errors.PlurError {
	entry := r.data.Platforms[platform]
	if entry == nil {
		return errors.New(errors.CodeAccountNotFound, "account not registered", map[string]any{
			"platform": platform, "account": name,
		})
	}
	idx := -1
	for i, a := range entry.Accounts {
		if a == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.New(errors.CodeAccountNotFound, "account not registered", map[string]any{
			"platform": platform, "account": name,
		})
	}
	entry.Accounts = append(entry.Accounts[:idx], entry.Accounts[idx+1:]...)
	if entry.Active == name {
		entry.Active = ""
	}
	if len(entry.Accounts) == 0 && entry.Active == "" {
		delete(r.data.Platforms, platform)
	}
	return r.save()
}
