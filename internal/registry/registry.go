// SPDX-License-Identifier: MPL-2.0

package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// ErrDuplicateHandler is returned when a command name is registered twice.
var ErrDuplicateHandler = errors.New("duplicate command handler")

type (
	// Handler runs one command. The returned value is passed back to the
	// caller of the dispatcher without interpretation.
	Handler interface {
		Invoke(ctx context.Context, command string, args []string) (any, error)
	}

	// HandlerFunc adapts a function to the Handler interface.
	HandlerFunc func(ctx context.Context, command string, args []string) (any, error)

	// DuplicateHandlerError is returned by Register for a name already taken.
	DuplicateHandlerError struct {
		Name string
	}

	// Registry holds the handlers of one plugin. It is safe for concurrent use.
	Registry struct {
		mu       sync.RWMutex
		handlers map[string]Handler
	}
)

// Invoke calls f.
func (f HandlerFunc) Invoke(ctx context.Context, command string, args []string) (any, error) {
	return f(ctx, command, args)
}

// Error implements the error interface.
func (e *DuplicateHandlerError) Error() string {
	return fmt.Sprintf("command %q already has a handler", e.Name)
}

// Unwrap returns ErrDuplicateHandler for errors.Is() compatibility.
func (e *DuplicateHandlerError) Unwrap() error { return ErrDuplicateHandler }

// New creates an empty Registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler under name.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return errors.New("cannot register a handler with an empty command name")
	}
	if h == nil {
		return fmt.Errorf("cannot register a nil handler for %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return &DuplicateHandlerError{Name: name}
	}
	r.handlers[name] = h
	return nil
}

// Lookup retrieves the handler for name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered command names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Scan registers a ScriptHandler for every "<name>.sh" file in dir. Names
// that already have a handler keep it. Scripts that fail to parse are
// skipped and reported in the returned error; the valid ones are still
// registered. A missing dir is not an error.
func (r *Registry) Scan(dir string, stdio IO) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read commands directory %s: %w", dir, err)
	}

	var (
		added []string
		errs  []error
	)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ScriptExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ScriptExt)
		if _, exists := r.Lookup(name); exists {
			continue
		}

		h, err := NewScriptHandler(filepath.Join(dir, entry.Name()), stdio)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if err := r.Register(name, h); err != nil {
			errs = append(errs, err)
			continue
		}
		added = append(added, name)
	}
	return added, errors.Join(errs...)
}
