/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Command rexaudit audits SPL rex and regex patterns for regex engine
// portability.
package main

import (
	"os"

	"bennypowers.dev/rexaudit/cmd"
	"bennypowers.dev/rexaudit/internal/exitcode"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(exitcode.Code(err))
	}
}
