// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

type (
	// LocalOptions travel with an invocation into routers.
	LocalOptions struct {
		// Through mirrors the plugin's pass-through setting unless the
		// caller overrides it.
		Through bool
		// Dynamic is an optional free-form segment that sat between the
		// plugin name and the command ("tool <dynamic> install").
		Dynamic string
	}

	// RouteRequest is the whole invocation handed to a Router.
	RouteRequest struct {
		// Token is the command as typed, before alias substitution.
		Token string
		// Args are the command arguments.
		Args []string
		// Command is the canonical command after alias substitution.
		Command string
		// Options are the caller's local options.
		Options LocalOptions
	}

	// Router takes over dispatch for a plugin. Its return value is passed
	// back to the caller without interpretation.
	Router interface {
		Route(ctx context.Context, req RouteRequest) (any, error)
	}

	// RouterFunc adapts a function to the Router interface.
	RouterFunc func(ctx context.Context, req RouteRequest) (any, error)

	// ScriptRouter runs a router script. $1 is the typed token, the
	// remaining params are the args; the canonical command and the local
	// options are exported as PLUGMUX_RESOLVED, PLUGMUX_THROUGH and
	// PLUGMUX_DYNAMIC.
	ScriptRouter struct {
		path string
		io   IO
	}
)

// Route calls f.
func (f RouterFunc) Route(ctx context.Context, req RouteRequest) (any, error) {
	return f(ctx, req)
}

// FindRouter looks for RouterFileName in dir. A missing file yields
// (nil, nil).
func FindRouter(dir string, stdio IO) (*ScriptRouter, error) {
	path := filepath.Join(dir, RouterFileName)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to check router %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, nil
	}
	return &ScriptRouter{path: path, io: stdio}, nil
}

// Path returns the router script location.
func (r *ScriptRouter) Path() string { return r.path }

// Route parses and runs the router script. The value is the script's
// types.ExitCode.
func (r *ScriptRouter) Route(ctx context.Context, req RouteRequest) (any, error) {
	prog, err := parseScript(r.path)
	if err != nil {
		return nil, err
	}
	params := append([]string{req.Token}, req.Args...)
	code, err := runScript(ctx, r.path, prog, r.io, params, map[string]string{
		envResolved: req.Command,
		envThrough:  boolEnv(req.Options.Through),
		envDynamic:  req.Options.Dynamic,
	})
	return code, err
}
