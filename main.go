// Package main is the entry point for the pipx-outdated CLI.
//
// pipx-outdated lists the top-level packages installed with pipx and reports
// the ones whose isolated environment has a newer version available.
package main

import "github.com/ajxudir/pipx-outdated/cmd"

func main() {
	cmd.Execute()
}
