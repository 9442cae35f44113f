package credential

import (
	"sync"

	"github.com/plurcast/plurcast/internal/errors"
)

// Storage 是用户的后端偏好；实际服务请求的驱动由链式解析决定。
type Storage string

const (
	StoragePlain     Storage = "plain"
	StorageEncrypted Storage = "encrypted"
	StorageKeyring   Storage = "keyring"
)

// ParseStorage 解析配置里的 storage 值。
func ParseStorage(s string) (Storage, *errors.PlurError) {
	st := Storage(s)
	switch st {
	case StoragePlain, StorageEncrypted, StorageKeyring:
		return st, nil
	}
	return "", errors.New(errors.CodeCfgInvalid, "invalid credentials.storage", map[string]any{
		"storage": s,
		"allowed": []string{string(StoragePlain), string(StorageEncrypted), string(StorageKeyring)},
	})
}

// Config 构造 Store 所需的全部输入。
type Config struct {
	Storage        Storage
	Path           string // plain/encrypted 的文件根目录
	MasterPassword string // 仅 encrypted

	// Keyring 可注入替身（nil 用系统默认）；测试 seam。
	Keyring KeyringAPI
}

// Store 把配置偏好解析成有序驱动链并对链执行操作。
// 链：keyring → [os_keyring, plain_file]（keyring 缺失时降级到明文文件）；
// encrypted → [encrypted_file]（显式高安全选择绝不静默降级）；
// plain → [plain_file]。
type Store struct {
	chain []Backend

	mu      sync.Mutex
	primary BackendName // 最近一次成功操作的驱动
}

// New 按配置构造 Store。encrypted 且无 master password 是构造期错误；
// 构造从不探测 OS keyring（探测懒化到首次操作）。
func New(cfg Config) (*Store, *errors.PlurError) {
	switch cfg.Storage {
	case StorageKeyring:
		return NewWithChain(NewKeyringBackend(cfg.Keyring), NewPlainFileBackend(cfg.Path)), nil
	case StorageEncrypted:
		if cfg.MasterPassword == "" {
			return nil, errors.New(errors.CodeCfgInvalid, "encrypted storage requires a master password", map[string]any{
				"hint": "set credentials.master_password or PLURCAST_MASTER_PASSWORD",
			})
		}
		return NewWithChain(NewEncryptedFileBackend(cfg.Path, cfg.MasterPassword)), nil
	case StoragePlain:
		return NewWithChain(NewPlainFileBackend(cfg.Path)), nil
	}
	return nil, errors.New(errors.CodeCfgInvalid, "invalid credentials.storage", map[string]any{
		"storage": string(cfg.Storage),
	})
}

// NewWithChain 直接用给定驱动链构造；测试用。
func NewWithChain(chain ...Backend) *Store {
	return &Store{chain: chain}
}

func (s *Store) setPrimary(name BackendName) {
	s.mu.Lock()
	s.primary = name
	s.mu.Unlock()
}

// PrimaryBackend 返回最近一次成功操作的驱动名；尚无成功操作时为空。
func (s *Store) PrimaryBackend() BackendName {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.primary
}

// IsInsecure 当且仅当最近一次操作落在 plain_file 上。
func (s *Store) IsInsecure() bool {
	return s.PrimaryBackend() == BackendPlainFile
}

// Backends 返回编译进链的驱动名（静态，不代表可用性）。
func (s *Store) Backends() []BackendName {
	names := make([]BackendName, 0, len(s.chain))
	for _, b := range s.chain {
		names = append(names, b.Name())
	}
	return names
}

// exec 依序尝试链上驱动：PLUR_BACKEND_UNAVAILABLE 前进到下一个，
// 其余错误（包括 PLUR_NOT_FOUND）立即返回 —— NotFound 绝不触发 fallback，
// 否则会把"A 后端里没有"误判成"去 B 后端找"。
func (s *Store) exec(op func(Backend) *errors.PlurError) *errors.PlurError {
	var last *errors.PlurError
	for _, b := range s.chain {
		pe := op(b)
		if pe == nil {
			s.setPrimary(b.Name())
			return nil
		}
		if pe.Code != errors.CodeBackendUnavailable {
			return pe
		}
		last = pe
	}
	return last
}

// Store 写入 secret；account 为空取 DefaultAccount。链上 last-write-wins，
// 跨进程并发写不提供锁。
func (s *Store) Store(service, key, account, value string) *errors.PlurError {
	ns := Namespace(service, account)
	return s.exec(func(b Backend) *errors.PlurError {
		return b.Set(ns, key, value)
	})
}

// Retrieve 读取解码后的 secret 明文。
func (s *Store) Retrieve(service, key, account string) (string, *errors.PlurError) {
	ns := Namespace(service, account)
	var val string
	pe := s.exec(func(b Backend) *errors.PlurError {
		v, pe := b.Get(ns, key)
		if pe != nil {
			return pe
		}
		val = v
		return nil
	})
	if pe != nil {
		return "", pe
	}
	return val, nil
}

// Delete 删除 secret。
func (s *Store) Delete(service, key, account string) *errors.PlurError {
	ns := Namespace(service, account)
	return s.exec(func(b Backend) *errors.PlurError {
		return b.Delete(ns, key)
	})
}

// Exists 检查 secret 是否存在，不返回值本身。
func (s *Store) Exists(service, key, account string) (bool, *errors.PlurError) {
	ns := Namespace(service, account)
	var found bool
	pe := s.exec(func(b Backend) *errors.PlurError {
		ok, pe := b.Exists(ns, key)
		if pe != nil {
			return pe
		}
		found = ok
		return nil
	})
	if pe != nil {
		return false, pe
	}
	return found, nil
}
