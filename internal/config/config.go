// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/plugmux/plugmux/internal/issue"
	"github.com/plugmux/plugmux/pkg/cueutil"
	"github.com/plugmux/plugmux/pkg/platform"
)

const (
	// AppName is the application name.
	AppName = "plugmux"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
	// PluginsDirName is the plugin directory looked up next to the working
	// directory and inside the config directory.
	PluginsDirName = "plugins"
	// ConfigDirEnv replaces the platform config directory when set.
	ConfigDirEnv = "PLUGMUX_CONFIG_DIR"

	envPrefix = "PLUGMUX"
)

//go:embed config_schema.cue
var configSchema string

// ConfigDir returns $PLUGMUX_CONFIG_DIR when set, otherwise the plugmux
// directory inside the platform's user settings directory (see
// platform.UserConfigBase).
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}

	base, err := platform.UserConfigBase()
	if err != nil {
		return "", fmt.Errorf("failed to locate the user config directory: %w", err)
	}
	return filepath.Join(base, AppName), nil
}

// SearchDirs returns the directories plugins declared by name are looked up
// in: the configured plugin_dirs, then ./plugins, then <configDir>/plugins.
// An empty configDir skips the last entry.
func SearchDirs(cfg *Config, configDir string) []string {
	// Without a home directory "~" stays literal.
	home, _ := os.UserHomeDir()
	dirs := make([]string, 0, len(cfg.PluginDirs)+2)
	for _, d := range cfg.PluginDirs {
		dirs = append(dirs, d.ExpandHome(home).String())
	}
	dirs = append(dirs, PluginsDirName)
	if configDir != "" {
		dirs = append(dirs, filepath.Join(configDir, PluginsDirName))
	}
	return dirs
}

// loadWithOptions performs option-driven config loading without mutating
// package-level state.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}

	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("plugin_dirs", defaults.PluginDirs)
	v.SetDefault("default_commands_path", defaults.DefaultCommandsPath)
	v.SetDefault("plugins", defaults.Plugins)
	v.SetDefault("ui.color_scheme", defaults.UI.ColorScheme)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.banner", defaults.UI.Banner)

	// PLUGMUX_UI_VERBOSE=true and friends override file values.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	resolvedPath := ""

	if opts.ConfigFilePath != "" {
		path := opts.ConfigFilePath.String()
		if !fileExists(path) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithIssue(issue.ConfigLoadFailedId).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'plugmux config show' to see the default configuration").
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, path); err != nil {
			return nil, loadError(path, err)
		}
		resolvedPath = path
	} else {
		cfgDir, err := configDirWithOverride(opts.ConfigDirPath.String())
		if err != nil {
			return nil, err
		}

		for _, candidate := range []string{
			filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt),
			ConfigFileName + "." + ConfigFileExt,
		} {
			if !fileExists(candidate) {
				continue
			}
			if err := loadCUEIntoViper(v, candidate); err != nil {
				return nil, loadError(candidate, err)
			}
			resolvedPath = candidate
			break
		}
		// No config file found: defaults apply.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Source = resolvedPath

	// Exactly-one-of path/plugin is easier to report from Go than from CUE.
	if ok, errs := cfg.IsValid(); !ok {
		return nil, issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(resolvedPath).
			WithIssue(issue.PluginSourceConflictId).
			WithSuggestion("Give every plugins entry exactly one of 'path' or 'plugin'").
			Wrap(errors.Join(errs...)).
			BuildError()
	}

	return &cfg, nil
}

func loadError(path string, err error) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithIssue(issue.ConfigLoadFailedId).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		Wrap(err).
		BuildError()
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before platform defaults.
func configDirWithOverride(configDirPath string) (string, error) {
	if configDirPath != "" {
		return configDirPath, nil
	}

	return ConfigDir()
}

// loadCUEIntoViper validates a CUE file against the #Config schema and
// merges its contents into viper. Every field is optional, so values need
// not be concrete.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	schema := cueutil.Schema{Source: []byte(configSchema), Definition: "#Config"}
	res, err := cueutil.DecodeFile[map[string]any](schema, path, cueutil.Partial())
	if err != nil {
		return err
	}
	if err := v.MergeConfigMap(*res.Value); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

// CreateDefaultConfig writes a default config file into dir (the platform
// config directory when dir is empty). An existing file is left untouched
// and reported through the second result.
func CreateDefaultConfig(dir string) (path string, created bool, err error) {
	cfgDir, err := configDirWithOverride(dir)
	if err != nil {
		return "", false, err
	}

	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		return "", false, fmt.Errorf("failed to create config directory: %w", err)
	}

	cfgPath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
	if _, err := os.Stat(cfgPath); err == nil {
		return cfgPath, false, nil
	}

	if err := os.WriteFile(cfgPath, []byte(GenerateCUE(DefaultConfig())), 0o644); err != nil {
		return "", false, fmt.Errorf("failed to write config file: %w", err)
	}

	return cfgPath, true, nil
}

// GenerateCUE generates a CUE representation of the configuration
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// plugmux configuration file\n\n")

	sb.WriteString("plugin_dirs: [")
	for i, d := range cfg.PluginDirs {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%q", d)
	}
	sb.WriteString("]\n")

	if cfg.DefaultCommandsPath != "" {
		fmt.Fprintf(&sb, "default_commands_path: %q\n", cfg.DefaultCommandsPath)
	}

	if len(cfg.Plugins) > 0 {
		sb.WriteString("\nplugins: [\n")
		for _, entry := range cfg.Plugins {
			sb.WriteString("\t{")
			sb.WriteString(strings.Join(pluginEntryFields(entry), ", "))
			sb.WriteString("},\n")
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\nui: {\n")
	fmt.Fprintf(&sb, "\tcolor_scheme: %q\n", cfg.UI.ColorScheme)
	fmt.Fprintf(&sb, "\tverbose: %v\n", cfg.UI.Verbose)
	fmt.Fprintf(&sb, "\tbanner: %v\n", cfg.UI.Banner)
	sb.WriteString("}\n")

	return sb.String()
}

func pluginEntryFields(e PluginEntry) []string {
	var fields []string
	if e.Path != "" {
		fields = append(fields, fmt.Sprintf("path: %q", e.Path))
	}
	if e.Plugin != "" {
		fields = append(fields, fmt.Sprintf("plugin: %q", e.Plugin))
	}
	if len(e.Aliases) > 0 {
		fields = append(fields, "aliases: "+quoteList(e.Aliases))
	}
	if e.Trigger != "" {
		fields = append(fields, fmt.Sprintf("trigger: %q", e.Trigger))
	}
	if e.Through {
		fields = append(fields, "through: true")
	}
	if len(e.Ommit) > 0 {
		globs := make([]string, len(e.Ommit))
		for i, g := range e.Ommit {
			globs[i] = g.String()
		}
		fields = append(fields, "ommit: "+quoteList(globs))
	}
	if e.CommandsPath != "" {
		fields = append(fields, fmt.Sprintf("commands_path: %q", e.CommandsPath))
	}
	return fields
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
