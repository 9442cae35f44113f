package config

// File 表示 plurcast.yaml 的配置结构。
// 约束：配置优先级为 CLI > ENV > Config。
type File struct {
	Credentials Credentials `yaml:"credentials"`

	// AccountsPath 账号注册表文件路径（独立于 secret 存储，可安全备份）。
	AccountsPath string `yaml:"accounts_path"`
}

// Credentials 对应配置文件的 credentials 段。
type Credentials struct {
	// Storage: plain | encrypted | keyring（默认 keyring）
	Storage string `yaml:"storage"`

	// Path 是 plain/encrypted 后端的文件根目录。
	Path string `yaml:"path"`

	// MasterPassword 仅 encrypted 后端使用；
	// 可被 PLURCAST_MASTER_PASSWORD 环境变量覆盖。
	MasterPassword string `yaml:"master_password"`
}

type Resolved struct {
	ConfigPath   string
	Credentials  Credentials
	AccountsPath string
}

type Options struct {
	// ConfigPath: 若非空，则只读取该文件（不存在报错）。
	ConfigPath string

	// ENV（由调用方注入，便于测试）
	EnvConfigPath      string // PLURCAST_CONFIG
	EnvMasterPassword  string // PLURCAST_MASTER_PASSWORD
	EnvMasterPasswdSet bool

	// HomeDir 用于默认路径计算（为空则自动探测）。
	HomeDir string

	// WorkDir 用于默认路径（为空则使用进程当前工作目录）。
	WorkDir string
}
