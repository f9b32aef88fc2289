// SPDX-License-Identifier: MPL-2.0

package helpdoc

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/plugmux/plugmux/internal/render"
)

const logo = `        __                              
.-----.|  |.--.--.-----.--------.--.--.--.--.
|  _  ||  ||  |  |  _  |        |  |  |_   _|
|   __||__||_____|___  |__|__|__|_____|__.__|
|__|             |_____|`

// DisplayState is the process-scoped presentation state shared by every
// help listing printed during one run. Create one per process and pass it
// to every Display call; the banner is printed at most once per state.
type DisplayState struct {
	// ProgramName prefixes every entry when ProgramVersion is set.
	ProgramName string
	// ProgramVersion enables the banner and the program prefix.
	ProgramVersion string

	bannerShown bool
}

// BannerShown reports whether the banner was already printed.
func (s *DisplayState) BannerShown() bool {
	return s != nil && s.bannerShown
}

// Display prints entries to w. With a program version in state, the banner
// is printed first (once per state) and each entry is prefixed with the
// program name.
func Display(w io.Writer, entries []Entry, state *DisplayState) {
	hosted := state != nil && state.ProgramVersion != ""

	if hosted && !state.bannerShown {
		fmt.Fprintln(w, render.TitleStyle.Render(logo))
		fmt.Fprintf(w, "%s %s, %s, OS: %s/%s\n",
			state.ProgramName, render.BoldStyle.Render(state.ProgramVersion),
			runtime.Version(), runtime.GOOS, runtime.GOARCH)
		state.bannerShown = true
	}

	for _, e := range entries {
		if hosted {
			fmt.Fprintln(w, render.MutedStyle.Render(state.ProgramName), render.BoldStyle.Render(e.Command), e.Description)
			continue
		}
		fmt.Fprintln(w, render.BoldStyle.Render(strings.TrimSpace(e.Command)), e.Description)
	}
}
