package config

import (
	"os"
	"path/filepath"

	"github.com/plurcast/plurcast/internal/errors"
)

const (
	StoragePlain     = "plain"
	StorageEncrypted = "encrypted"
	StorageKeyring   = "keyring"
)

// Resolve 加载配置并合并默认值：storage 默认 keyring，
// master password 合并顺序 ENV > config。
// 注意：encrypted-without-password 的校验留给 credential.New（构造期错误），
// 这里只做字段级合法性检查。
func Resolve(opts Options) (Resolved, *errors.PlurError) {
	f, cfgPath, pe := LoadConfig(opts)
	if pe != nil {
		return Resolved{}, pe
	}

	homeDir := opts.HomeDir
	if homeDir == "" {
		if hd, err := os.UserHomeDir(); err == nil {
			homeDir = hd
		}
	}

	creds := f.Credentials
	if creds.Storage == "" {
		creds.Storage = StorageKeyring
	}
	switch creds.Storage {
	case StoragePlain, StorageEncrypted, StorageKeyring:
	default:
		return Resolved{}, errors.New(errors.CodeCfgInvalid, "invalid credentials.storage", map[string]any{
			"storage": creds.Storage,
			"allowed": []string{StoragePlain, StorageEncrypted, StorageKeyring},
		})
	}

	if creds.Path == "" && homeDir != "" {
		creds.Path = filepath.Join(homeDir, ".local", "share", "plurcast", "credentials")
	}

	if opts.EnvMasterPasswdSet {
		creds.MasterPassword = opts.EnvMasterPassword
	}

	accountsPath := f.AccountsPath
	if accountsPath == "" && homeDir != "" {
		accountsPath = filepath.Join(homeDir, ".config", "plurcast", "accounts.yaml")
	}

	return Resolved{ConfigPath: cfgPath, Credentials: creds, AccountsPath: accountsPath}, nil
}
