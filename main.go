// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/plugmux/plugmux/cmd/plugmux"

func main() {
	cmd.Execute()
}
