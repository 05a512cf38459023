// themegroup groups exported HTML pages by the colours they use.
//
// It walks a directory tree, extracts hex colour codes from every code.html
// file, and writes the directory names grouped by colour signature to
// theme_groups.json.
//
// Copyright (c) 2025 John Mylchreest
// Licensed under the MIT License
package main

import (
	"os"

	"github.com/jmylchreest/themegroup/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
