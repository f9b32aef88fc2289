// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"errors"
	"strings"
	"testing"
)

const entrySchema = `
#Config: {
	plugins?: [...#Entry]
	ui?: color_scheme?: "auto" | "dark" | "light" | "ascii"
}
#Entry: {
	path?:    string & !=""
	through?: bool
}
`

func decodeConfig(t *testing.T, src string) error {
	t.Helper()
	_, err := Decode[map[string]any](Schema{Source: []byte(entrySchema), Definition: "#Config"},
		[]byte(src), WithFilename("config.cue"), Partial())
	return err
}

func TestFormatErrorLocatesField(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      string
		wantPath string
		wantMsg  string
	}{
		{
			name:     "wrong type in a plugin entry",
			src:      `plugins: [{path: "./deploy"}, {path: "./lint", through: "yes"}]`,
			wantPath: "plugins[1].through",
			wantMsg:  "bool",
		},
		{
			name:     "color scheme outside the enum",
			src:      `ui: color_scheme: "neon"`,
			wantPath: "ui.color_scheme",
		},
		{
			name:    "syntax error has no field",
			src:     `plugins: [{path: "./deploy"`,
			wantMsg: "expected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := decodeConfig(t, tt.src)
			var fe *FileError
			if !errors.As(err, &fe) {
				t.Fatalf("error = %v (%T), want *FileError", err, err)
			}
			if fe.File != "config.cue" || len(fe.Problems) == 0 {
				t.Fatalf("FileError = %+v", fe)
			}
			first := fe.Problems[0]
			if tt.wantPath != "" && first.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", first.Path, tt.wantPath)
			}
			if !strings.Contains(first.Message, tt.wantMsg) {
				t.Errorf("Message = %q, want it to mention %q", first.Message, tt.wantMsg)
			}
			if !strings.HasPrefix(err.Error(), "config.cue: ") {
				t.Errorf("Error() = %q, want the file name first", err.Error())
			}
			if errors.Unwrap(fe) == nil {
				t.Error("the CUE error should stay reachable")
			}
		})
	}
}

func TestFileErrorMessage(t *testing.T) {
	t.Parallel()

	one := &FileError{File: "plugin.cue", Problems: []Problem{{Path: "version", Message: "conflicting values 3 and string"}}}
	if got, want := one.Error(), "plugin.cue: version: conflicting values 3 and string"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	many := &FileError{File: "config.cue", Problems: []Problem{
		{Path: "plugins[0].path", Message: "invalid value \"\""},
		{Message: "unexpected EOF"},
	}}
	want := "config.cue: validation failed:\n  plugins[0].path: invalid value \"\"\n  unexpected EOF"
	if got := many.Error(); got != want {
		t.Errorf("Error() =\n%s\nwant\n%s", got, want)
	}
}

func TestFormatErrorPassThrough(t *testing.T) {
	t.Parallel()

	if FormatError(nil, "config.cue") != nil {
		t.Error("FormatError(nil) should be nil")
	}

	cause := errors.New("permission denied")
	err := FormatError(cause, "config.cue")
	if !errors.Is(err, cause) || err.Error() != "config.cue: permission denied" {
		t.Errorf("FormatError() = %v", err)
	}
}

func TestFieldPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		sel  []string
		want string
	}{
		{nil, ""},
		{[]string{"ui"}, "ui"},
		{[]string{"plugins", "0", "aliases", "2"}, "plugins[0].aliases[2]"},
		{[]string{"plugin_dirs", "10"}, "plugin_dirs[10]"},
		{[]string{"0"}, "0"},
	}

	for _, tt := range tests {
		if got := fieldPath(tt.sel); got != tt.want {
			t.Errorf("fieldPath(%v) = %q, want %q", tt.sel, got, tt.want)
		}
	}
}

func TestCheckFileSize(t *testing.T) {
	t.Parallel()

	if err := CheckFileSize([]byte("name: \"x\""), 9, "plugin.cue"); err != nil {
		t.Errorf("CheckFileSize() at the limit = %v", err)
	}
	err := CheckFileSize([]byte("name: \"xy\""), 9, "plugin.cue")
	if err == nil || !strings.Contains(err.Error(), "plugin.cue: file size 10 bytes exceeds maximum 9 bytes") {
		t.Errorf("CheckFileSize() = %v", err)
	}
}
