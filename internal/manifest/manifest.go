// SPDX-License-Identifier: MPL-2.0

package manifest

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/plugmux/plugmux/pkg/cueutil"
	"github.com/plugmux/plugmux/pkg/types"
)

const (
	// CUEFileName is the preferred manifest file name.
	CUEFileName = "plugin.cue"
	// TOMLFileName is the fallback manifest file name.
	TOMLFileName = "plugin.toml"

	schemaDefinition = "#Manifest"
)

//go:embed manifest_schema.cue
var schemaBytes []byte

// ErrInvalidManifest is the sentinel error wrapped by InvalidManifestError.
var ErrInvalidManifest = errors.New("invalid manifest")

type (
	// Manifest declares a plugin's identity.
	Manifest struct {
		Name        types.PluginName      `json:"name,omitempty" toml:"name"`
		Version     string                `json:"version,omitempty" toml:"version"`
		Description types.DescriptionText `json:"description,omitempty" toml:"description"`
	}

	// InvalidManifestError is returned when a manifest file cannot be parsed
	// or carries invalid fields.
	InvalidManifestError struct {
		Path  string
		Cause error
	}
)

// Error implements the error interface for InvalidManifestError.
func (e *InvalidManifestError) Error() string {
	return fmt.Sprintf("invalid manifest %s: %v", e.Path, e.Cause)
}

// Unwrap returns both the sentinel and the cause.
func (e *InvalidManifestError) Unwrap() []error {
	return []error{ErrInvalidManifest, e.Cause}
}

// Load reads the manifest under root. It returns (nil, "", nil) when
// neither plugin.cue nor plugin.toml exists. The second result is the path
// of the file that was read.
func Load(root string) (*Manifest, string, error) {
	cuePath := filepath.Join(root, CUEFileName)
	if data, err := os.ReadFile(cuePath); err == nil {
		m, err := ParseCUE(data, cuePath)
		return m, cuePath, err
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, cuePath, fmt.Errorf("failed to read manifest: %w", err)
	}

	tomlPath := filepath.Join(root, TOMLFileName)
	data, err := os.ReadFile(tomlPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, "", nil
	}
	if err != nil {
		return nil, tomlPath, fmt.Errorf("failed to read manifest: %w", err)
	}
	m, err := ParseTOML(data, tomlPath)
	return m, tomlPath, err
}

// ParseCUE decodes a plugin.cue manifest against the embedded schema.
func ParseCUE(data []byte, filename string) (*Manifest, error) {
	schema := cueutil.Schema{Source: schemaBytes, Definition: schemaDefinition}
	result, err := cueutil.Decode[Manifest](schema, data, cueutil.WithFilename(filename))
	if err != nil {
		return nil, &InvalidManifestError{Path: filename, Cause: err}
	}
	if err := result.Value.Validate(); err != nil {
		return nil, &InvalidManifestError{Path: filename, Cause: err}
	}
	return result.Value, nil
}

// ParseTOML decodes a plugin.toml manifest. Unknown keys are rejected.
func ParseTOML(data []byte, filename string) (*Manifest, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, filename); err != nil {
		return nil, &InvalidManifestError{Path: filename, Cause: err}
	}

	var m Manifest
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return nil, &InvalidManifestError{Path: filename, Cause: err}
	}
	if err := m.Validate(); err != nil {
		return nil, &InvalidManifestError{Path: filename, Cause: err}
	}
	return &m, nil
}

// Validate checks the typed fields. CUE manifests are checked by the
// schema as well; TOML manifests only by this method.
func (m *Manifest) Validate() error {
	var errs []error
	if err := m.Name.Validate(); err != nil {
		errs = append(errs, err)
	}
	if ok, fieldErrs := m.Description.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	return errors.Join(errs...)
}
