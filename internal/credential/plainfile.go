package credential

import (
	"os"
	"path/filepath"

	"github.com/plurcast/plurcast/internal/errors"
)

// PlainFileBackend 把 secret 明文写到 root/<namespace>/<key>。
// 永远可用（只要文件系统可写）、永远 insecure；
// 作为 keyring 不可用时的兜底（headless CI 等环境）。
type PlainFileBackend struct {
	root string
}

func NewPlainFileBackend(root string) *PlainFileBackend {
	return &PlainFileBackend{root: root}
}

func (b *PlainFileBackend) Name() BackendName { return BackendPlainFile }

func (b *PlainFileBackend) path(namespace, key string) (string, *errors.PlurError) {
	if pe := validComponent(namespace); pe != nil {
		return "", pe
	}
	if pe := validComponent(key); pe != nil {
		return "", pe
	}
	return filepath.Join(b.root, namespace, key), nil
}

func (b *PlainFileBackend) Get(namespace, key string) (string, *errors.PlurError) {
	p, pe := b.path(namespace, key)
	if pe != nil {
		return "", pe
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.CodeNotFound, "no credentials found", map[string]any{
				"namespace": namespace, "key": key, "backend": string(BackendPlainFile),
			})
		}
		return "", errors.Wrap(errors.CodeIOFailed, "failed to read credential file", map[string]any{
			"namespace": namespace, "key": key,
		}, err)
	}
	return string(data), nil
}

func (b *PlainFileBackend) Set(namespace, key, value string) *errors.PlurError {
	p, pe := b.path(namespace, key)
	if pe != nil {
		return pe
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return errors.Wrap(errors.CodeIOFailed, "failed to create credential directory", map[string]any{
			"namespace": namespace,
		}, err)
	}
	if err := os.WriteFile(p, []byte(value), 0o600); err != nil {
		return errors.Wrap(errors.CodeIOFailed, "failed to write credential file", map[string]any{
			"namespace": namespace, "key": key,
		}, err)
	}
	return nil
}

func (b *PlainFileBackend) Delete(namespace, key string) *errors.PlurError {
	p, pe := b.path(namespace, key)
	if pe != nil {
		return pe
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.CodeNotFound, "no credentials found", map[string]any{
				"namespace": namespace, "key": key, "backend": string(BackendPlainFile),
			})
		}
		return errors.Wrap(errors.CodeIOFailed, "failed to delete credential file", map[string]any{
			"namespace": namespace, "key": key,
		}, err)
	}
	return nil
}

func (b *PlainFileBackend) Exists(namespace, key string) (bool, *errors.PlurError) {
	p, pe := b.path(namespace, key)
	if pe != nil {
		return false, pe
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, errors.Wrap(errors.CodeIOFailed, "failed to stat credential file", map[string]any{
			"namespace": namespace, "key": key,
		}, err)
	}
	return true, nil
}
