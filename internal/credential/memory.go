package credential

import (
	"sync"

	"github.com/plurcast/plurcast/internal/errors"
)

// MemoryBackend 是进程内驱动，用于测试替身。
// unavailable 置位后所有操作返回 PLUR_BACKEND_UNAVAILABLE，
// 便于在不依赖真实 keyring 的情况下验证链式 fallback。
type MemoryBackend struct {
	mu          sync.RWMutex
	secrets     map[string]string
	name        BackendName
	unavailable bool
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{secrets: make(map[string]string), name: BackendMemory}
}

// NewMemoryBackendNamed 以指定名称冒充其它驱动（如模拟 os_keyring）。
func NewMemoryBackendNamed(name BackendName) *MemoryBackend {
	return &MemoryBackend{secrets: make(map[string]string), name: name}
}

func (b *MemoryBackend) Name() BackendName { return b.name }

// SetUnavailable 切换不可用状态。
func (b *MemoryBackend) SetUnavailable(v bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.unavailable = v
}

func (b *MemoryBackend) check() *errors.PlurError {
	if b.unavailable {
		return errors.New(errors.CodeBackendUnavailable, "backend unavailable", map[string]any{
			"backend": string(b.name),
		})
	}
	return nil
}

func compose(namespace, key string) string { return namespace + "\x00" + key }

func (b *MemoryBackend) Get(namespace, key string) (string, *errors.PlurError) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if pe := b.check(); pe != nil {
		return "", pe
	}
	val, ok := b.secrets[compose(namespace, key)]
	if !ok {
		return "", errors.New(errors.CodeNotFound, "no credentials found", map[string]any{
			"namespace": namespace, "key": key, "backend": string(b.name),
		})
	}
	return val, nil
}

func (b *MemoryBackend) Set(namespace, key, value string) *errors.PlurError {
	b.mu.Lock()
	defer b.mu.Unlock()
	if pe := b.check(); pe != nil {
		return pe
	}
	b.secrets[compose(namespace, key)] = value
	return nil
}

func (b *MemoryBackend) Delete(namespace, key string) *errors.PlurError {
	b.mu.Lock()
	defer b.mu.Unlock()
	if pe := b.check(); pe != nil {
		return pe
	}
	k := compose(namespace, key)
	if _, ok := b.secrets[k]; !ok {
		return errors.New(errors.CodeNotFound, "no credentials found", map[string]any{
			"namespace": namespace, "key": key, "backend": string(b.name),
		})
	}
	delete(b.secrets, k)
	return nil
}

func (b *MemoryBackend) Exists(namespace, key string) (bool, *errors.PlurError) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if pe := b.check(); pe != nil {
		return false, pe
	}
	_, ok := b.secrets[compose(namespace, key)]
	return ok, nil
}
