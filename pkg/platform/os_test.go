// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"testing"
)

func TestUserConfigBase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		goos    string
		env     map[string]string
		want    string
		wantErr bool
	}{
		{name: "xdg wins on linux", goos: "linux", env: map[string]string{"XDG_CONFIG_HOME": "/xdg", "HOME": "/home/u"}, want: "/xdg"},
		{name: "linux falls back to home", goos: "linux", env: map[string]string{"HOME": "/home/u"}, want: filepath.Join("/home/u", ".config")},
		{name: "linux without home", goos: "linux", wantErr: true},
		{name: "macOS ignores xdg", goos: Darwin, env: map[string]string{"XDG_CONFIG_HOME": "/xdg", "HOME": "/Users/u"}, want: filepath.Join("/Users/u", "Library", "Application Support")},
		{name: "windows appdata", goos: Windows, env: map[string]string{"APPDATA": `C:\Roaming`}, want: `C:\Roaming`},
		{name: "windows profile fallback", goos: Windows, env: map[string]string{"USERPROFILE": "/profile"}, want: filepath.Join("/profile", "AppData", "Roaming")},
		{name: "windows without profile", goos: Windows, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := userConfigBase(tt.goos, func(k string) string { return tt.env[k] })
			if (err != nil) != tt.wantErr {
				t.Fatalf("userConfigBase() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("userConfigBase() = %q, want %q", got, tt.want)
			}
		})
	}
}
