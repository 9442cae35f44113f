package errors

// Code 是稳定错误码（字符串），供脚本与程序判断。
// 只增不改、不复用旧含义。
type Code string

const (
	// Config
	CodeCfgNotFound Code = "PLUR_CFG_NOT_FOUND"
	CodeCfgInvalid  Code = "PLUR_CFG_INVALID"

	// Credential store
	CodeNotFound           Code = "PLUR_NOT_FOUND"
	CodeBackendUnavailable Code = "PLUR_BACKEND_UNAVAILABLE"
	CodeEncryptionFailed   Code = "PLUR_ENCRYPTION_FAILED"
	CodeIOFailed           Code = "PLUR_IO_FAILED"

	// Accounts / input
	CodeAccountInvalid  Code = "PLUR_ACCOUNT_INVALID"
	CodeAccountNotFound Code = "PLUR_ACCOUNT_NOT_FOUND"
	CodePlatformUnknown Code = "PLUR_PLATFORM_UNKNOWN"
	CodeInputInvalid    Code = "PLUR_INPUT_INVALID"

	// Internal
	CodeInternal Code = "PLUR_INTERNAL"
)

func AllCodes() []Code {
	return []Code{
		CodeCfgNotFound,
		CodeCfgInvalid,
		CodeNotFound,
		CodeBackendUnavailable,
		CodeEncryptionFailed,
		CodeIOFailed,
		CodeAccountInvalid,
		CodeAccountNotFound,
		CodePlatformUnknown,
		CodeInputInvalid,
		CodeInternal,
	}
}
