package errors

// ExitCode 是所有 plurcast 二进制共享的进程退出码（稳定契约）。
type ExitCode int

const (
	ExitOK ExitCode = 0

	// 1: 通用失败（IO/配置/后端全部不可用/未找到）
	ExitFailure ExitCode = 1

	// 2: 认证失败（错误的 master password、密文损坏）
	ExitAuth ExitCode = 2

	// 3: 非法输入（账号名、未知平台、参数错误）
	ExitInvalidInput ExitCode = 3
)

func ExitCodeFor(code Code) ExitCode {
	switch code {
	case CodeEncryptionFailed:
		return ExitAuth
	case CodeAccountInvalid, CodeAccountNotFound, CodePlatformUnknown, CodeInputInvalid:
		return ExitInvalidInput
	case CodeCfgNotFound, CodeCfgInvalid, CodeNotFound,
		CodeBackendUnavailable, CodeIOFailed, CodeInternal:
		fallthrough
	default:
		return ExitFailure
	}
}
