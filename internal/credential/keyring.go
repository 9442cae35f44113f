package credential

import (
	stderrors "errors"
	"sync"

	"github.com/zalando/go-keyring"

	"github.com/plurcast/plurcast/internal/errors"
)

// KeyringAPI 是对 OS keyring 的最小抽象，便于测试与跨平台。
// service 对应 keyring 的 service name，account 对应 user/account。
type KeyringAPI interface {
	Get(service, account string) (string, error)
	Set(service, account, value string) error
	Delete(service, account string) error
}

// 默认 keyring 实现（使用 zalando/go-keyring）。
// 本文件仅定义接口与 backend；Get/Set/Delete 见 keyring_*.go（按平台编译）。
func DefaultKeyring() KeyringAPI {
	return &osKeyring{}
}

type osKeyring struct{}

// 可用性探测用的哨兵条目；只读不写，ErrNotFound 即视为可用。
const (
	probeService = "plurcast.probe"
	probeAccount = "availability"
)

// KeyringBackend 委托给平台原生 secret store。
// keyring daemon 缺失（headless/sandbox）在首次操作时做一次有界探测，
// 归类为 PLUR_BACKEND_UNAVAILABLE —— 这正是链式 fallback 的触发条件。
// 构造永不探测，headless 环境下构造 store 不会失败。
type KeyringBackend struct {
	api KeyringAPI

	probeOnce sync.Once
	probeErr  *errors.PlurError
}

// NewKeyringBackend 包装任意 KeyringAPI；api 为 nil 时用系统默认实现。
func NewKeyringBackend(api KeyringAPI) *KeyringBackend {
	if api == nil {
		api = DefaultKeyring()
	}
	return &KeyringBackend{api: api}
}

func (b *KeyringBackend) Name() BackendName { return BackendOSKeyring }

func (b *KeyringBackend) available() *errors.PlurError {
	b.probeOnce.Do(func() {
		_, err := b.api.Get(probeService, probeAccount)
		if err == nil || stderrors.Is(err, keyring.ErrNotFound) {
			return
		}
		b.probeErr = errors.Wrap(errors.CodeBackendUnavailable, "os keyring unavailable", map[string]any{
			"backend": string(BackendOSKeyring),
		}, err)
	})
	return b.probeErr
}

// classify 把 keyring 错误归类；探测已通过后的未知错误按 IO 处理。
func classifyKeyringErr(err error, namespace, key string) *errors.PlurError {
	switch {
	case stderrors.Is(err, keyring.ErrNotFound):
		return errors.New(errors.CodeNotFound, "no credentials found", map[string]any{
			"namespace": namespace, "key": key, "backend": string(BackendOSKeyring),
		})
	case stderrors.Is(err, keyring.ErrUnsupportedPlatform):
		return errors.Wrap(errors.CodeBackendUnavailable, "os keyring unavailable", map[string]any{
			"backend": string(BackendOSKeyring),
		}, err)
	default:
		return errors.Wrap(errors.CodeIOFailed, "keyring operation failed", map[string]any{
			"namespace": namespace, "key": key,
		}, err)
	}
}

func (b *KeyringBackend) Get(namespace, key string) (string, *errors.PlurError) {
	if pe := b.available(); pe != nil {
		return "", pe
	}
	val, err := b.api.Get(namespace, key)
	if err != nil {
		return "", classifyKeyringErr(err, namespace, key)
	}
	return val, nil
}

func (b *KeyringBackend) Set(namespace, key, value string) *errors.PlurError {
	if pe := b.available(); pe != nil {
		return pe
	}
	if err := b.api.Set(namespace, key, value); err != nil {
		return classifyKeyringErr(err, namespace, key)
	}
	return nil
}

func (b *KeyringBackend) Delete(namespace, key string) *errors.PlurError {
	if pe := b.available(); pe != nil {
		return pe
	}
	if err := b.api.Delete(namespace, key); err != nil {
		return classifyKeyringErr(err, namespace, key)
	}
	return nil
}

func (b *KeyringBackend) Exists(namespace, key string) (bool, *errors.PlurError) {
	if pe := b.available(); pe != nil {
		return false, pe
	}
	_, err := b.api.Get(namespace, key)
	if err != nil {
		if stderrors.Is(err, keyring.ErrNotFound) {
			return false, nil
		}
		return false, classifyKeyringErr(err, namespace, key)
	}
	return true, nil
}
