package errors

import (
	stderrors "errors"
	"fmt"
)

// PlurError 是结构化错误：稳定 code + 人类可读 message + 结构化 details。
// Details 只放标识符（platform/account/key/backend/path），绝不放 secret 值。
type PlurError struct {
	Code    Code           `json:"code" yaml:"code"`
	Message string         `json:"message" yaml:"message"`
	Details map[string]any `json:"details,omitempty" yaml:"details,omitempty"`
	cause   error
}

func (e *PlurError) Error() string {
	if e == nil {
		return ""
	}
	if e.cause == nil {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
}

func (e *PlurError) Unwrap() error { return e.cause }

func New(code Code, message string, details map[string]any) *PlurError {
	return &PlurError{Code: code, Message: message, Details: details}
}

func Wrap(code Code, message string, details map[string]any, cause error) *PlurError {
	return &PlurError{Code: code, Message: message, Details: details, cause: cause}
}

func As(err error) (*PlurError, bool) {
	var pe *PlurError
	if stderrors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

func AsOrWrap(err error) *PlurError {
	if pe, ok := As(err); ok {
		return pe
	}
	return Wrap(CodeInternal, err.Error(), nil, err)
}

// CodeOf 返回错误的稳定 code；非 PlurError 归为 internal。
func CodeOf(err error) Code {
	if pe, ok := As(err); ok {
		return pe.Code
	}
	return CodeInternal
}
