// Package migrate 把遗留单账号 keyring 条目改写为命名空间化多账号布局：
// service "plurcast.<platform>" → "plurcast.<platform>.default"。
// 一次性、幂等、非破坏：旧条目保留不动，重复运行第二遍零迁移。
// 直接操作原始 keyring API，不经过 CredentialStore 的链式解析。
package migrate

import (
	stderrors "errors"

	"github.com/zalando/go-keyring"

	"github.com/plurcast/plurcast/internal/credential"
	"github.com/plurcast/plurcast/internal/platform"
)

// Status 是单条目的迁移结果。
type Status string

const (
	StatusMigrated      Status = "migrated"
	StatusSkippedAbsent Status = "skipped_absent" // 旧条目不存在
	StatusSkippedExists Status = "skipped_exists" // 新条目已存在
	StatusFailed        Status = "failed"
)

// Item 是逐条目的结构化报告；Error 只含标识符与原因，绝不含 secret 值。
type Item struct {
	Platform string `json:"platform" yaml:"platform"`
	Key      string `json:"key" yaml:"key"`
	Status   Status `json:"status" yaml:"status"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Summary 是一次迁移的聚合结果。
type Summary struct {
	Migrated int    `json:"migrated" yaml:"migrated"`
	Skipped  int    `json:"skipped" yaml:"skipped"`
	Failed   int    `json:"failed" yaml:"failed"`
	Items    []Item `json:"items" yaml:"items"`
}

// Migrator 在原始 keyring 上执行迁移。
type Migrator struct {
	kr     credential.KeyringAPI
	dryRun bool
}

func New(kr credential.KeyringAPI, dryRun bool) *Migrator {
	if kr == nil {
		kr = credential.DefaultKeyring()
	}
	return &Migrator{kr: kr, dryRun: dryRun}
}

// Run 遍历全部平台，逐条迁移并继续执行（单条失败不中止整体，
// 迁移必须可续跑）。返回的 Summary.Failed > 0 时调用方应以非零退出。
func (m *Migrator) Run() Summary {
	var sum Summary
	for _, p := range platform.All() {
		item := m.migrateOne(p)
		sum.Items = append(sum.Items, item)
		switch item.Status {
		case StatusMigrated:
			sum.Migrated++
		case StatusFailed:
			sum.Failed++
		default:
			sum.Skipped++
		}
	}
	return sum
}

func (m *Migrator) migrateOne(p platform.Platform) Item {
	item := Item{Platform: string(p), Key: p.KeyName()}
	oldService := p.Service()
	newService := credential.Namespace(p.Service(), credential.DefaultAccount)

	value, err := m.kr.Get(oldService, p.KeyName())
	if err != nil {
		if stderrors.Is(err, keyring.ErrNotFound) {
			item.Status = StatusSkippedAbsent
			return item
		}
		item.Status = StatusFailed
		item.Error = "failed to read legacy entry: " + err.Error()
		return item
	}

	if _, err := m.kr.Get(newService, p.KeyName()); err == nil {
		item.Status = StatusSkippedExists
		return item
	} else if !stderrors.Is(err, keyring.ErrNotFound) {
		item.Status = StatusFailed
		item.Error = "failed to check namespaced entry: " + err.Error()
		return item
	}

	if m.dryRun {
		item.Status = StatusMigrated
		return item
	}

	if err := m.kr.Set(newService, p.KeyName(), value); err != nil {
		item.Status = StatusFailed
		item.Error = "failed to write namespaced entry: " + err.Error()
		return item
	}

	// 回读校验逐字节一致后才算成功；旧条目保留（非破坏）
	got, err := m.kr.Get(newService, p.KeyName())
	if err != nil {
		item.Status = StatusFailed
		item.Error = "failed to verify namespaced entry: " + err.Error()
		return item
	}
	if got != value {
		item.Status = StatusFailed
		item.Error = "verification mismatch after write"
		return item
	}

	item.Status = StatusMigrated
	return item
}
