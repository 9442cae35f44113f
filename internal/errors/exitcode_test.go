package errors

import "testing"

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		code Code
		want ExitCode
	}{
		{CodeCfgNotFound, ExitFailure},
		{CodeCfgInvalid, ExitFailure},
		{CodeNotFound, ExitFailure},
		{CodeBackendUnavailable, ExitFailure},
		{CodeIOFailed, ExitFailure},
		{CodeInternal, ExitFailure},
		{CodeEncryptionFailed, ExitAuth},
		{CodeAccountInvalid, ExitInvalidInput},
		{CodeAccountNotFound, ExitInvalidInput},
		{CodePlatformUnknown, ExitInvalidInput},
		{CodeInputInvalid, ExitInvalidInput},
		{Code("PLUR_UNKNOWN_FUTURE"), ExitFailure},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := ExitCodeFor(tt.code); got != tt.want {
				t.Errorf("ExitCodeFor(%s) = %d, want %d", tt.code, got, tt.want)
			}
		})
	}
}

// TestAllCodes_HaveExitCode 确保每个错误码都有确定的退出码映射
func TestAllCodes_HaveExitCode(t *testing.T) {
	for _, code := range AllCodes() {
		ec := ExitCodeFor(code)
		if ec != ExitFailure && ec != ExitAuth && ec != ExitInvalidInput {
			t.Errorf("code %s maps to unexpected exit code %d", code, ec)
		}
	}
}

func TestPlurError_ErrorString(t *testing.T) {
	pe := New(CodeNotFound, "no credentials found", map[string]any{"platform": "nostr"})
	want := "PLUR_NOT_FOUND: no credentials found"
	if pe.Error() != want {
		t.Errorf("Error() = %q, want %q", pe.Error(), want)
	}

	wrapped := Wrap(CodeIOFailed, "write failed", nil, pe)
	if wrapped.Unwrap() != pe {
		t.Error("Unwrap should return the cause")
	}
}

func TestAsOrWrap(t *testing.T) {
	pe := New(CodeCfgInvalid, "bad config", nil)
	if got := AsOrWrap(pe); got != pe {
		t.Fatalf("expected same error, got %v", got)
	}

	plain := AsOrWrap(errText("boom"))
	if plain.Code != CodeInternal {
		t.Fatalf("expected CodeInternal, got %s", plain.Code)
	}
}

type errText string

func (e errText) Error() string { return string(e) }
