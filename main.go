// SPDX-License-Identifier: MPL-2.0

// Command grepr searches files for lines matching a regular expression.
package main

import cmd "github.com/grepr/grepr/cmd/grepr"

func main() {
	cmd.Execute()
}
