// Package credential 实现多后端凭据存储：
// plain_file / encrypted_file / os_keyring 三种驱动 + 按配置解析的 fallback 链。
package credential

import (
	"strings"

	"github.com/plurcast/plurcast/internal/errors"
)

// BackendName 是驱动的稳定名称，仅用于 introspection / 日志，不落盘。
type BackendName string

const (
	BackendPlainFile     BackendName = "plain_file"
	BackendEncryptedFile BackendName = "encrypted_file"
	BackendOSKeyring     BackendName = "os_keyring"
	BackendMemory        BackendName = "memory"
)

// DefaultAccount 是未指定账号时的默认账号名。
const DefaultAccount = "default"

// Backend 是单个存储驱动的统一契约。
// 实现必须在自己的边界把本地错误归类为稳定错误码：
// PLUR_NOT_FOUND / PLUR_BACKEND_UNAVAILABLE / PLUR_IO_FAILED / PLUR_ENCRYPTION_FAILED。
// 上层 fallback 逻辑只看 code，绝不匹配 OS 错误字符串。
type Backend interface {
	Name() BackendName
	Get(namespace, key string) (string, *errors.PlurError)
	Set(namespace, key, value string) *errors.PlurError
	Delete(namespace, key string) *errors.PlurError
	Exists(namespace, key string) (bool, *errors.PlurError)
}

// Namespace 组合 secret 家族标识：service + "." + account。
// service 形如 "plurcast.nostr"，account 为空时取 DefaultAccount。
func Namespace(service, account string) string {
	if account == "" {
		account = DefaultAccount
	}
	return service + "." + account
}

// validComponent 校验 namespace/key 可以安全作为文件路径分量。
func validComponent(s string) *errors.PlurError {
	if s == "" {
		return errors.New(errors.CodeCfgInvalid, "empty identifier", nil)
	}
	if strings.ContainsAny(s, "/\\") || s == "." || s == ".." || strings.Contains(s, "..") {
		return errors.New(errors.CodeCfgInvalid, "identifier contains path separators", map[string]any{"identifier": s})
	}
	return nil
}
