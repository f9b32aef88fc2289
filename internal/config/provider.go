// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/plugmux/plugmux/pkg/types"
)

// ErrInvalidLoadOptions is returned by Load for blank option paths.
var ErrInvalidLoadOptions = errors.New("invalid load options")

type (
	// Provider loads the host configuration. The CLI depends on this
	// interface so tests can hand it a fixed Config.
	Provider interface {
		Load(ctx context.Context, opts LoadOptions) (*Config, error)
	}

	// LoadOptions selects where configuration comes from. The zero value
	// searches the config directory and then the working directory.
	LoadOptions struct {
		// ConfigFilePath is the --config flag. When set it is the only
		// file read and it must exist.
		ConfigFilePath types.FilesystemPath
		// ConfigDirPath replaces ConfigDir() in the search.
		ConfigDirPath types.FilesystemPath
	}

	fileProvider struct{}
)

// NewProvider returns the Provider that reads config.cue files.
func NewProvider() Provider { return fileProvider{} }

// Validate accepts unset paths and rejects whitespace-only ones.
func (o LoadOptions) Validate() error {
	errs := []error{ErrInvalidLoadOptions}
	for name, p := range map[string]types.FilesystemPath{
		"config file": o.ConfigFilePath,
		"config dir":  o.ConfigDirPath,
	} {
		if p == "" {
			continue
		}
		if ok, pathErrs := p.IsValid(); !ok {
			errs = append(errs, fmt.Errorf("%s: %w", name, errors.Join(pathErrs...)))
		}
	}
	if len(errs) == 1 {
		return nil
	}
	return errors.Join(errs...)
}

func (fileProvider) Load(ctx context.Context, opts LoadOptions) (*Config, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return loadWithOptions(ctx, opts)
}
