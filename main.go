// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/fmtgen/fmtgen/cmd/fmtgen"

func main() {
	cmd.Execute()
}
