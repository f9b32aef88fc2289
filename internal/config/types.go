// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"

	"github.com/plugmux/plugmux/pkg/types"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
	// ColorSchemeASCII disables colors and styling.
	ColorSchemeASCII ColorScheme = "ascii"

	// DefaultCommandsPath is the commands folder below a plugin root.
	DefaultCommandsPath = "src/cli/commands"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidPluginEntry is the sentinel error wrapped by InvalidPluginEntryError.
	ErrInvalidPluginEntry = errors.New("invalid plugin entry")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme specifies the terminal color scheme preference.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	// It wraps ErrInvalidColorScheme for errors.Is() compatibility.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidPluginEntryError is returned when a PluginEntry has invalid fields.
	InvalidPluginEntryError struct {
		Index       int
		FieldErrors []error
	}

	// InvalidConfigError is returned when a Config has invalid fields.
	// It wraps ErrInvalidConfig for errors.Is() compatibility and collects
	// field-level validation errors from all sub-components.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// PluginEntry declares one plugin for the default walk. Exactly one of
	// Path and Plugin is set.
	PluginEntry struct {
		// Path is the plugin root, relative to the working directory.
		Path types.FilesystemPath `json:"path,omitempty" mapstructure:"path"`
		// Plugin is a plugin identifier looked up in the search dirs.
		Plugin string `json:"plugin,omitempty" mapstructure:"plugin"`
		// Aliases activate the plugin when the trigger value equals the
		// plugin name or one of them.
		Aliases []string `json:"aliases,omitempty" mapstructure:"aliases"`
		// Trigger gates activation; "/expr/" is a regular expression.
		Trigger string `json:"trigger,omitempty" mapstructure:"trigger"`
		// Through lets unmatched input fall through to the next plugin.
		Through bool `json:"through,omitempty" mapstructure:"through"`
		// Ommit lists extra glob patterns excluded from help.
		Ommit []types.GlobPattern `json:"ommit,omitempty" mapstructure:"ommit"`
		// CommandsPath overrides DefaultCommandsPath for this plugin.
		CommandsPath types.FilesystemPath `json:"commands_path,omitempty" mapstructure:"commands_path"`
	}

	// Config holds the application configuration.
	Config struct {
		// PluginDirs are searched, in order, for plugins declared by name.
		PluginDirs []types.FilesystemPath `json:"plugin_dirs" mapstructure:"plugin_dirs"`
		// DefaultCommandsPath is the commands folder below each plugin root.
		DefaultCommandsPath types.FilesystemPath `json:"default_commands_path" mapstructure:"default_commands_path"`
		// Plugins are walked in order when no subcommand is given.
		Plugins []PluginEntry `json:"plugins" mapstructure:"plugins"`
		// UI configures the user interface
		UI UIConfig `json:"ui" mapstructure:"ui"`

		// Source is the file the configuration was read from ("" for defaults).
		Source string `json:"-" mapstructure:"-"`
	}

	// UIConfig configures the user interface.
	UIConfig struct {
		// ColorScheme sets the markdown and help color scheme
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		// Verbose enables debug logging
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Banner prints the program banner before the first help listing
		Banner bool `json:"banner" mapstructure:"banner"`
	}
)

// Name returns the identifier the entry is known by: the plugin
// identifier, or the path when declared by directory.
func (e PluginEntry) Name() string {
	if e.Plugin != "" {
		return e.Plugin
	}
	return e.Path.String()
}

// IsValid returns whether exactly one of Path and Plugin is set and the
// remaining fields are well formed.
func (e PluginEntry) IsValid() (bool, []error) {
	var errs []error
	switch {
	case e.Path == "" && e.Plugin == "":
		errs = append(errs, errors.New("one of path or plugin is required"))
	case e.Path != "" && e.Plugin != "":
		errs = append(errs, fmt.Errorf("path %q and plugin %q are mutually exclusive", e.Path, e.Plugin))
	case e.Path != "":
		if ok, fieldErrs := e.Path.IsValid(); !ok {
			errs = append(errs, fieldErrs...)
		}
	}
	if e.CommandsPath != "" {
		if ok, fieldErrs := e.CommandsPath.IsValid(); !ok {
			errs = append(errs, fieldErrs...)
		}
	}
	for _, g := range e.Ommit {
		if err := g.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return len(errs) == 0, errs
}

// Error implements the error interface for InvalidPluginEntryError.
func (e *InvalidPluginEntryError) Error() string {
	return fmt.Sprintf("plugins[%d]: %v", e.Index, errors.Join(e.FieldErrors...))
}

// Unwrap returns ErrInvalidPluginEntry for errors.Is() compatibility.
func (e *InvalidPluginEntryError) Unwrap() error { return ErrInvalidPluginEntry }

// IsValid returns whether the UIConfig has valid fields.
func (c UIConfig) IsValid() (bool, []error) {
	return c.ColorScheme.IsValid()
}

// IsValid returns whether the Config has valid fields.
// It delegates to each plugin entry, the commands path and UI.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	for _, dir := range c.PluginDirs {
		if ok, fieldErrs := dir.IsValid(); !ok {
			errs = append(errs, fieldErrs...)
		}
	}
	if c.DefaultCommandsPath != "" {
		if ok, fieldErrs := c.DefaultCommandsPath.IsValid(); !ok {
			errs = append(errs, fieldErrs...)
		}
	}
	for i, entry := range c.Plugins {
		if ok, fieldErrs := entry.IsValid(); !ok {
			errs = append(errs, &InvalidPluginEntryError{Index: i, FieldErrors: fieldErrs})
		}
	}
	if ok, fieldErrs := c.UI.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid config: %v", errors.Join(e.FieldErrors...))
}

// Unwrap returns the sentinel and the field errors, so errors.Is matches
// both ErrInvalidConfig and nested sentinels.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// CommandsPathFor returns the entry's commands path, falling back to the
// configured default.
func (c Config) CommandsPathFor(e PluginEntry) types.FilesystemPath {
	if e.CommandsPath != "" {
		return e.CommandsPath
	}
	if c.DefaultCommandsPath != "" {
		return c.DefaultCommandsPath
	}
	return DefaultCommandsPath
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light, ascii)", e.Value)
}

// Unwrap returns the sentinel error for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error {
	return ErrInvalidColorScheme
}

// String returns the string representation of the ColorScheme.
func (cs ColorScheme) String() string { return string(cs) }

// IsValid returns whether the ColorScheme is one of the defined color schemes,
// and a list of validation errors if it is not.
func (cs ColorScheme) IsValid() (bool, []error) {
	switch cs {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight, ColorSchemeASCII:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: cs}}
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		PluginDirs:          []types.FilesystemPath{},
		DefaultCommandsPath: DefaultCommandsPath,
		Plugins:             []PluginEntry{},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
			Banner:      true,
		},
	}
}
