// digipot command line tool
//
// Copyright (C) 2026 digipot-go authors
//
// This file may be distributed under the terms of the GNU GPLv3 license.

package main

import (
	"digipot-go/cmd/digipot/cmd"
)

func main() {
	cmd.Execute()
}
