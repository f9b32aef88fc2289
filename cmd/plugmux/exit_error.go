// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"

	"github.com/plugmux/plugmux/internal/plugin"
	"github.com/plugmux/plugmux/internal/registry"
	"github.com/plugmux/plugmux/pkg/types"
)

// ExitError signals a non-zero exit code without forcing os.Exit in RunE handlers.
type ExitError struct {
	Code types.ExitCode
	Err  error
}

// Error returns the error message for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// Unwrap returns the underlying error, if any.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// exitCodeFor maps an error returned by a plugin to the process exit code.
func exitCodeFor(err error) types.ExitCode {
	if err == nil || errors.Is(err, plugin.ErrVersionPrinted) {
		return types.ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	var scriptErr *registry.ScriptExitError
	if errors.As(err, &scriptErr) {
		return scriptErr.Code
	}
	if errors.Is(err, plugin.ErrUsage) {
		return types.ExitUsage
	}
	return types.ExitFailure
}

// exitCodeForValue maps a handler or router result value. Values that
// carry no exit code are a success.
func exitCodeForValue(v any) types.ExitCode {
	code, _ := types.ExitCodeOf(v)
	return code
}
