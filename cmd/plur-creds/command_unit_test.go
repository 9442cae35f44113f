package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/plurcast/plurcast/internal/account"
	"github.com/plurcast/plurcast/internal/app"
	"github.com/plurcast/plurcast/internal/config"
	"github.com/plurcast/plurcast/internal/errors"
	"github.com/plurcast/plurcast/internal/output"
)

func TestParseOutputFormat(t *testing.T) {
	format, err := parseOutputFormat("auto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if format != output.FormatJSON && format != output.FormatTable {
		t.Fatalf("unexpected format: %s", format)
	}

	if _, err := parseOutputFormat("invalid"); err == nil {
		t.Fatal("expected error for invalid format")
	}
}

func TestResolveFormatForError(t *testing.T) {
	format := resolveFormatForError("invalid")
	if format != output.FormatJSON && format != output.FormatTable {
		t.Fatalf("unexpected format: %s", format)
	}
}

func TestNormalizeErr(t *testing.T) {
	pe := errors.New(errors.CodeCfgInvalid, "bad config", nil)
	if got := normalizeErr(pe); got != pe {
		t.Fatalf("expected same error, got %v", got)
	}

	err := normalizeErr(os.ErrInvalid)
	if err.Code != errors.CodeInternal {
		t.Fatalf("expected CodeInternal, got %s", err.Code)
	}
}

// setupGlobalConfig points the global state at temp storage and restores it after the test.
func setupGlobalConfig(t *testing.T) {
	t.Helper()
	prev := GlobalConfig
	tmp := t.TempDir()
	GlobalConfig = &Config{
		FormatStr: "json",
		Resolved: config.Resolved{
			Credentials: config.Credentials{
				Storage: "plain",
				Path:    filepath.Join(tmp, "credentials"),
			},
			AccountsPath: filepath.Join(tmp, "accounts.yaml"),
		},
	}
	t.Cleanup(func() { GlobalConfig = prev })
}

func TestRun_SpecCommandSuccess(t *testing.T) {
	prev := GlobalConfig
	GlobalConfig = &Config{}
	t.Cleanup(func() { GlobalConfig = prev })
	t.Setenv("PLURCAST_CONFIG", "")
	t.Setenv("PLURCAST_FORMAT", "")

	prevArgs := os.Args
	os.Args = []string{"plur-creds", "spec", "--format", "json"}
	t.Cleanup(func() { os.Args = prevArgs })

	exitCode := run()
	if exitCode != int(errors.ExitOK) {
		t.Fatalf("expected exit 0, got %d", exitCode)
	}
}

func TestRun_InvalidFormatExitCode(t *testing.T) {
	prev := GlobalConfig
	GlobalConfig = &Config{}
	t.Cleanup(func() { GlobalConfig = prev })
	t.Setenv("PLURCAST_CONFIG", "")
	t.Setenv("PLURCAST_FORMAT", "")

	prevArgs := os.Args
	os.Args = []string{"plur-creds", "spec", "--format", "invalid"}
	t.Cleanup(func() { os.Args = prevArgs })

	exitCode := run()
	if exitCode != int(errors.ExitFailure) {
		t.Fatalf("expected exit 1, got %d", exitCode)
	}
}

func TestRun_UnknownPlatformExitCode(t *testing.T) {
	prev := GlobalConfig
	GlobalConfig = &Config{}
	t.Cleanup(func() { GlobalConfig = prev })
	t.Setenv("PLURCAST_CONFIG", "")
	t.Setenv("PLURCAST_FORMAT", "")

	prevArgs := os.Args
	os.Args = []string{"plur-creds", "use", "slack", "--account", "main", "--format", "json"}
	t.Cleanup(func() { os.Args = prevArgs })

	exitCode := run()
	if exitCode != int(errors.ExitInvalidInput) {
		t.Fatalf("expected exit 3, got %d", exitCode)
	}
}

func TestRunUse_UnregisteredAccount(t *testing.T) {
	setupGlobalConfig(t)

	var out bytes.Buffer
	w := output.New(&out, &bytes.Buffer{})
	err := runUse("nostr", "ghost", &w)
	if err == nil {
		t.Fatal("expected error for unregistered account")
	}
	if pe, ok := errors.As(err); !ok || pe.Code != errors.CodeAccountNotFound {
		t.Fatalf("expected CodeAccountNotFound, got %v", err)
	}
}

func TestRunUse_RegisteredAccount(t *testing.T) {
	setupGlobalConfig(t)

	reg, pe := account.Load(GlobalConfig.Resolved.AccountsPath)
	if pe != nil {
		t.Fatalf("load registry: %v", pe)
	}
	if pe := reg.Register("nostr", "work"); pe != nil {
		t.Fatalf("register: %v", pe)
	}

	var out bytes.Buffer
	w := output.New(&out, &bytes.Buffer{})
	if err := runUse("nostr", "work", &w); err != nil {
		t.Fatalf("use failed: %v", err)
	}
	if !json.Valid(out.Bytes()) {
		t.Fatalf("expected json output, got %s", out.String())
	}
}

func TestRunList_MarksActive(t *testing.T) {
	setupGlobalConfig(t)

	reg, pe := account.Load(GlobalConfig.Resolved.AccountsPath)
	if pe != nil {
		t.Fatalf("load registry: %v", pe)
	}
	for _, name := range []string{"test", "prod"} {
		if pe := reg.Register("nostr", name); pe != nil {
			t.Fatalf("register %s: %v", name, pe)
		}
	}
	if pe := reg.SetActive("nostr", "test"); pe != nil {
		t.Fatalf("set active: %v", pe)
	}

	var out bytes.Buffer
	w := output.New(&out, &bytes.Buffer{})
	if err := runList("nostr", &w); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var env struct {
		Data struct {
			Platforms []platformAccounts `json:"platforms"`
		} `json:"data"`
	}
	if err := json.Unmarshal(out.Bytes(), &env); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out.String())
	}
	if len(env.Data.Platforms) != 1 {
		t.Fatalf("expected 1 platform, got %d", len(env.Data.Platforms))
	}
	got := env.Data.Platforms[0]
	if got.Active != "test" {
		t.Fatalf("expected active test, got %s", got.Active)
	}
	activeCount := 0
	for _, a := range got.Accounts {
		if a.Active {
			activeCount++
			if a.Name != "test" {
				t.Fatalf("wrong account marked active: %s", a.Name)
			}
		}
	}
	if activeCount != 1 {
		t.Fatalf("expected exactly one active account, got %d", activeCount)
	}
}

func TestRunList_UnknownPlatformFilter(t *testing.T) {
	setupGlobalConfig(t)

	var out bytes.Buffer
	w := output.New(&out, &bytes.Buffer{})
	err := runList("slack", &w)
	if err == nil {
		t.Fatal("expected error for unknown platform")
	}
	if pe, ok := errors.As(err); !ok || pe.Code != errors.CodePlatformUnknown {
		t.Fatalf("expected CodePlatformUnknown, got %v", err)
	}
}

func TestRunTest_MissingCredential(t *testing.T) {
	setupGlobalConfig(t)

	var out bytes.Buffer
	w := output.New(&out, &bytes.Buffer{})
	err := runTest("nostr", "", &w)
	if err == nil {
		t.Fatal("expected error for missing credential")
	}
	if pe, ok := errors.As(err); !ok || pe.Code != errors.CodeNotFound {
		t.Fatalf("expected CodeNotFound, got %v", err)
	}
}

// withStdin 把 os.Stdin 换成包含给定内容的管道
func withStdin(t *testing.T, content string) {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	if _, err := w.WriteString(content); err != nil {
		t.Fatalf("write pipe: %v", err)
	}
	w.Close()
	prev := os.Stdin
	os.Stdin = r
	t.Cleanup(func() {
		os.Stdin = prev
		r.Close()
	})
}

func TestSetTestDeleteLifecycle(t *testing.T) {
	setupGlobalConfig(t)

	var out bytes.Buffer
	w := output.New(&out, &bytes.Buffer{})

	withStdin(t, "nsec1examplekey\n")
	if err := runSet("nostr", &SetFlags{Account: "work", Stdin: true}, &w); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !json.Valid(out.Bytes()) {
		t.Fatalf("expected json output, got %s", out.String())
	}

	out.Reset()
	if err := runTest("nostr", "work", &w); err != nil {
		t.Fatalf("test failed after set: %v", err)
	}

	out.Reset()
	if err := runDelete("nostr", &DeleteFlags{Account: "work", Force: true}, &w); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	out.Reset()
	if err := runTest("nostr", "work", &w); err == nil {
		t.Fatal("expected missing credential after delete")
	}
}

func TestRunSet_EmptySecret(t *testing.T) {
	setupGlobalConfig(t)

	var out bytes.Buffer
	w := output.New(&out, &bytes.Buffer{})

	withStdin(t, "")
	err := runSet("nostr", &SetFlags{Stdin: true}, &w)
	if err == nil {
		t.Fatal("expected error for empty secret")
	}
	if pe, ok := errors.As(err); !ok || pe.Code != errors.CodeInputInvalid {
		t.Fatalf("expected CodeInputInvalid, got %v", err)
	}
}

func TestRunDelete_NothingToDelete(t *testing.T) {
	setupGlobalConfig(t)

	var out bytes.Buffer
	w := output.New(&out, &bytes.Buffer{})
	err := runDelete("mastodon", &DeleteFlags{Account: "ghost", Force: true}, &w)
	if err == nil {
		t.Fatal("expected error when neither secret nor account exists")
	}
	if pe, ok := errors.As(err); !ok || pe.Code != errors.CodeNotFound {
		t.Fatalf("expected CodeNotFound, got %v", err)
	}
}

func TestResolveAccount(t *testing.T) {
	setupGlobalConfig(t)

	reg, pe := account.Load(GlobalConfig.Resolved.AccountsPath)
	if pe != nil {
		t.Fatalf("load registry: %v", pe)
	}

	// Default falls back to the platform's active account.
	acct, pe := resolveAccount(reg, "nostr", "")
	if pe != nil {
		t.Fatalf("unexpected error: %v", pe)
	}
	if acct != "default" {
		t.Fatalf("expected default, got %s", acct)
	}

	// Explicit override wins.
	acct, pe = resolveAccount(reg, "nostr", "work")
	if pe != nil {
		t.Fatalf("unexpected error: %v", pe)
	}
	if acct != "work" {
		t.Fatalf("expected work, got %s", acct)
	}

	// Invalid override name is rejected.
	if _, pe := resolveAccount(reg, "nostr", "bad name"); pe == nil {
		t.Fatal("expected error for invalid account name")
	}
}

func TestVersionCommand_Output(t *testing.T) {
	setupGlobalConfig(t)

	a := app.New("1.0.0", "abc", "2024-01-01")
	var out bytes.Buffer
	w := output.New(&out, &bytes.Buffer{})

	cmd := NewVersionCommand(&a, &w)
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !json.Valid(out.Bytes()) {
		t.Fatalf("expected json output, got %s", out.String())
	}
}
