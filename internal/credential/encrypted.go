package credential

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"
	"gopkg.in/yaml.v3"

	"github.com/plurcast/plurcast/internal/errors"
)

// argon2id 参数与密钥长度（AES-256）。改参数必须升 envelope version。
const (
	kdfTime    = 1
	kdfMemory  = 64 * 1024
	kdfThreads = 4
	kdfKeyLen  = 32

	saltLen = 16

	envelopeVersion = 1
)

// envelope 是 encrypted_file 的落盘格式（yaml，字段 base64）。
// salt 每文件独立，wrong-password 由 AES-GCM 认证失败暴露。
type envelope struct {
	Version    int    `yaml:"version"`
	KDF        string `yaml:"kdf"`
	Salt       string `yaml:"salt"`
	Nonce      string `yaml:"nonce"`
	Ciphertext string `yaml:"ciphertext"`
}

// EncryptedFileBackend 把 secret 以 AES-256-GCM 加密后写到 root/<namespace>/<key>。
// 密钥从 master password + 每文件 salt 经 argon2id 派生。
type EncryptedFileBackend struct {
	root           string
	masterPassword []byte
}

func NewEncryptedFileBackend(root, masterPassword string) *EncryptedFileBackend {
	return &EncryptedFileBackend{root: root, masterPassword: []byte(masterPassword)}
}

func (b *EncryptedFileBackend) Name() BackendName { return BackendEncryptedFile }

func (b *EncryptedFileBackend) path(namespace, key string) (string, *errors.PlurError) {
	if pe := validComponent(namespace); pe != nil {
		return "", pe
	}
	if pe := validComponent(key); pe != nil {
		return "", pe
	}
	return filepath.Join(b.root, namespace, key), nil
}

func deriveKey(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, kdfTime, kdfMemory, kdfThreads, kdfKeyLen)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (b *EncryptedFileBackend) seal(value string) (*envelope, *errors.PlurError) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, errors.Wrap(errors.CodeEncryptionFailed, "failed to generate salt", nil, err)
	}
	aead, err := newGCM(deriveKey(b.masterPassword, salt))
	if err != nil {
		return nil, errors.Wrap(errors.CodeEncryptionFailed, "failed to initialize cipher", nil, err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, errors.Wrap(errors.CodeEncryptionFailed, "failed to generate nonce", nil, err)
	}
	ct := aead.Seal(nil, nonce, []byte(value), nil)
	return &envelope{
		Version:    envelopeVersion,
		KDF:        "argon2id",
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ct),
	}, nil
}

func (b *EncryptedFileBackend) open(env *envelope, namespace, key string) (string, *errors.PlurError) {
	fail := func(cause error) *errors.PlurError {
		return errors.Wrap(errors.CodeEncryptionFailed, "failed to decrypt credential (wrong master password or corrupt file)", map[string]any{
			"namespace": namespace, "key": key,
		}, cause)
	}
	salt, err := base64.StdEncoding.DecodeString(env.Salt)
	if err != nil {
		return "", fail(err)
	}
	nonce, err := base64.StdEncoding.DecodeString(env.Nonce)
	if err != nil {
		return "", fail(err)
	}
	ct, err := base64.StdEncoding.DecodeString(env.Ciphertext)
	if err != nil {
		return "", fail(err)
	}
	aead, err := newGCM(deriveKey(b.masterPassword, salt))
	if err != nil {
		return "", fail(err)
	}
	if len(nonce) != aead.NonceSize() {
		return "", fail(nil)
	}
	pt, err := aead.Open(nil, nonce, ct, nil)
	if err != nil {
		// GCM 认证失败：错误密码与密文损坏都走这里，绝不返回垃圾明文
		return "", fail(err)
	}
	return string(pt), nil
}

func (b *EncryptedFileBackend) Get(namespace, key string) (string, *errors.PlurError) {
	p, pe := b.path(namespace, key)
	if pe != nil {
		return "", pe
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New(errors.CodeNotFound, "no credentials found", map[string]any{
				"namespace": namespace, "key": key, "backend": string(BackendEncryptedFile),
			})
		}
		return "", errors.Wrap(errors.CodeIOFailed, "failed to read credential file", map[string]any{
			"namespace": namespace, "key": key,
		}, err)
	}
	var env envelope
	if err := yaml.Unmarshal(data, &env); err != nil {
		return "", errors.Wrap(errors.CodeEncryptionFailed, "corrupt credential envelope", map[string]any{
			"namespace": namespace, "key": key,
		}, err)
	}
	if env.Version != envelopeVersion || env.KDF != "argon2id" {
		return "", errors.New(errors.CodeEncryptionFailed, "unsupported credential envelope", map[string]any{
			"namespace": namespace, "key": key, "version": env.Version, "kdf": env.KDF,
		})
	}
	return b.open(&env, namespace, key)
}

func (b *EncryptedFileBackend) Set(namespace, key, value string) *errors.PlurError {
	p, pe := b.path(namespace, key)
	if pe != nil {
		return pe
	}
	env, pe := b.seal(value)
	if pe != nil {
		return pe
	}
	data, err := yaml.Marshal(env)
	if err != nil {
		return errors.Wrap(errors.CodeEncryptionFailed, "failed to encode credential envelope", nil, err)
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return errors.Wrap(errors.CodeIOFailed, "failed to create credential directory", map[string]any{
			"namespace": namespace,
		}, err)
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return errors.Wrap(errors.CodeIOFailed, "failed to write credential file", map[string]any{
			"namespace": namespace, "key": key,
		}, err)
	}
	return nil
}

func (b *EncryptedFileBackend) Delete(namespace, key string) *errors.PlurError {
	p, pe := b.path(namespace, key)
	if pe != nil {
		return pe
	}
	if err := os.Remove(p); err != nil {
		if os.IsNotExist(err) {
			return errors.New(errors.CodeNotFound, "no credentials found", map[string]any{
				"namespace": namespace, "key": key, "backend": string(BackendEncryptedFile),
			})
		}
		return errors.Wrap(errors.CodeIOFailed, "failed to delete credential file", map[string]any{
			"namespace": namespace, "key": key,
		}, err)
	}
	return nil
}

func (b *EncryptedFileBackend) Exists(namespace, key string) (bool, *errors.PlurError) {
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
