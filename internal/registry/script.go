// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"

	"github.com/plugmux/plugmux/internal/issue"
	"github.com/plugmux/plugmux/pkg/types"
)

const (
	// ScriptExt is the extension of script command handlers.
	ScriptExt = ".sh"
	// RouterFileName is the router script looked up one directory above
	// the commands directory.
	RouterFileName = "_router" + ScriptExt

	envCommand  = "PLUGMUX_COMMAND"
	envResolved = "PLUGMUX_RESOLVED"
	envThrough  = "PLUGMUX_THROUGH"
	envDynamic  = "PLUGMUX_DYNAMIC"
)

// ErrScriptExit is the sentinel error wrapped by ScriptExitError.
var ErrScriptExit = errors.New("script exited with non-zero status")

type (
	// IO holds the standard streams scripts run with.
	IO struct {
		Stdin  io.Reader
		Stdout io.Writer
		Stderr io.Writer
	}

	// ScriptHandler runs a shell script command handler on the embedded
	// interpreter. The invocation args become $1, $2, ...; the command name
	// is exported as PLUGMUX_COMMAND.
	ScriptHandler struct {
		path string
		prog *syntax.File
		io   IO
	}

	// ScriptExitError reports a script that finished with a non-zero status.
	ScriptExitError struct {
		Path string
		Code types.ExitCode
	}
)

// Error implements the error interface.
func (e *ScriptExitError) Error() string {
	return fmt.Sprintf("%s: exit status %d", e.Path, e.Code)
}

// Unwrap returns ErrScriptExit for errors.Is() compatibility.
func (e *ScriptExitError) Unwrap() error { return ErrScriptExit }

// NewScriptHandler parses the script at path. Parsing happens once; every
// Invoke reuses the parsed program.
func NewScriptHandler(path string, stdio IO) (*ScriptHandler, error) {
	prog, err := parseScript(path)
	if err != nil {
		return nil, err
	}
	return &ScriptHandler{path: path, prog: prog, io: stdio}, nil
}

// Path returns the script location.
func (h *ScriptHandler) Path() string { return h.path }

// Invoke runs the script. The value is the script's types.ExitCode; a
// non-zero status is also reported as a *ScriptExitError.
func (h *ScriptHandler) Invoke(ctx context.Context, command string, args []string) (any, error) {
	code, err := runScript(ctx, h.path, h.prog, h.io, args, map[string]string{
		envCommand: command,
	})
	return code, err
}

func parseScript(path string) (*syntax.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open script: %w", err)
	}
	defer func() { _ = f.Close() }() // Read-only file; close error non-critical

	prog, err := syntax.NewParser().Parse(f, path)
	if err != nil {
		return nil, fmt.Errorf("script syntax error: %w", err)
	}
	return prog, nil
}

func runScript(ctx context.Context, path string, prog *syntax.File, stdio IO, params []string, env map[string]string) (types.ExitCode, error) {
	environ := os.Environ()
	for k, v := range env {
		environ = append(environ, k+"="+v)
	}

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(environ...)),
		interp.StdIO(stdio.Stdin, stdio.Stdout, stdio.Stderr),
	}
	// Prepend "--" so args like "-v" are not read as shell options.
	if len(params) > 0 {
		opts = append(opts, interp.Params(append([]string{"--"}, params...)...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return types.ExitFailure, fmt.Errorf("failed to create interpreter: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	if err := runner.Run(ctx, prog); err != nil {
		var exitStatus interp.ExitStatus
		if errors.As(err, &exitStatus) {
			code := types.ExitCode(exitStatus)
			return code, &ScriptExitError{Path: path, Code: code}
		}
		return types.ExitFailure, issue.NewErrorContext().
			WithOperation("run command script").
			WithResource(path).
			WithIssue(issue.ScriptExecutionFailedId).
			Wrap(fmt.Errorf("script execution failed: %w", err)).
			BuildError()
	}
	return types.ExitSuccess, nil
}

func boolEnv(b bool) string { return strconv.FormatBool(b) }
