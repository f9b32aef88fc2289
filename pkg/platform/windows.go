// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"strings"

	"golang.org/x/exp/slices"
)

var (
	deviceNames = []string{"AUX", "CON", "NUL", "PRN"}
	// portNames are reserved with a single digit 1-9 appended.
	portNames = []string{"COM", "LPT"}
)

// IsReservedName reports whether name cannot be used as a file or
// directory name on Windows. Windows ignores everything after the first
// dot and trailing spaces, so "nul.tar.gz" and "aux " are reserved too.
func IsReservedName(name string) bool {
	base, _, _ := strings.Cut(name, ".")
	base = strings.ToUpper(strings.TrimRight(base, " "))

	if slices.Contains(deviceNames, base) {
		return true
	}
	return len(base) == 4 && base[3] >= '1' && base[3] <= '9' && slices.Contains(portNames, base[:3])
}
