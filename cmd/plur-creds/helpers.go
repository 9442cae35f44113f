package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/plurcast/plurcast/internal/account"
	"github.com/plurcast/plurcast/internal/credential"
	"github.com/plurcast/plurcast/internal/errors"
	"github.com/plurcast/plurcast/internal/output"
)

// parseOutputFormat parses and validates the output format string
func parseOutputFormat(s string) (output.Format, error) {
	f := output.Format(s)
	if !output.IsValid(f) {
		return "", errors.New(errors.CodeCfgInvalid, "invalid output format", map[string]any{"format": s})
	}
	return resolveAuto(f), nil
}

// resolveFormatForError resolves the format for error output
func resolveFormatForError(s string) output.Format {
	f := output.Format(s)
	if !output.IsValid(f) {
		f = output.FormatAuto
	}
	return resolveAuto(f)
}

// resolveAuto resolves "auto" format to appropriate format based on TTY
func resolveAuto(f output.Format) output.Format {
	if f != output.FormatAuto {
		return f
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return output.FormatTable
	}
	return output.FormatJSON
}

// normalizeErr normalizes any error to PlurError
func normalizeErr(err error) *errors.PlurError {
	if pe, ok := errors.As(err); ok {
		return pe
	}
	// Preserve original error message
	return errors.Wrap(errors.CodeInternal, err.Error(), nil, err)
}

// openStore builds the credential store from the resolved config.
// With encrypted storage, a missing master password is prompted for on a TTY;
// otherwise construction fails fast (PLURCAST_MASTER_PASSWORD covers CI).
func openStore() (*credential.Store, *errors.PlurError) {
	creds := GlobalConfig.Resolved.Credentials
	storage, pe := credential.ParseStorage(creds.Storage)
	if pe != nil {
		return nil, pe
	}
	password := creds.MasterPassword
	if storage == credential.StorageEncrypted && password == "" && term.IsTerminal(int(os.Stdin.Fd())) {
		p, pe := promptHidden("Master password: ")
		if pe != nil {
			return nil, pe
		}
		password = p
	}
	return credential.New(credential.Config{
		Storage:        storage,
		Path:           creds.Path,
		MasterPassword: password,
	})
}

// openRegistry loads the account registry from the resolved path.
func openRegistry() (*account.Registry, *errors.PlurError) {
	return account.Load(GlobalConfig.Resolved.AccountsPath)
}

// resolveAccount returns the explicit override when given, otherwise the
// platform's active account from the registry.
func resolveAccount(reg *account.Registry, platform, override string) (string, *errors.PlurError) {
	if override != "" {
		if pe := account.ValidateName(override); pe != nil {
			return "", pe
		}
		return override, nil
	}
	return reg.Active(platform), nil
}

// promptHidden reads a line without echo. The prompt goes to stderr so
// stdout stays machine-readable.
func promptHidden(prompt string) (string, *errors.PlurError) {
	fmt.Fprint(os.Stderr, prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.Wrap(errors.CodeIOFailed, "failed to read input", nil, err)
	}
	return string(b), nil
}

// readSecret obtains the secret value: from stdin when --stdin is set or
// stdin is not a terminal, from a hidden prompt otherwise.
func readSecret(fromStdin bool) (string, *errors.PlurError) {
	if fromStdin || !term.IsTerminal(int(os.Stdin.Fd())) {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(errors.CodeIOFailed, "failed to read secret from stdin", nil, err)
		}
		val := strings.TrimRight(string(b), "\r\n")
		if val == "" {
			return "", errors.New(errors.CodeInputInvalid, "empty secret", nil)
		}
		return val, nil
	}
	val, pe := promptHidden("Secret value: ")
	if pe != nil {
		return "", pe
	}
	if val == "" {
		return "", errors.New(errors.CodeInputInvalid, "empty secret", nil)
	}
	return val, nil
}

// confirm asks a yes/no question on stderr and reads the answer from stdin.
func confirm(question string) (bool, *errors.PlurError) {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", question)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.Wrap(errors.CodeIOFailed, "failed to read confirmation", nil, err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}
