// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

package main

import (
	"fmt"
	"os"

	"github.com/chaptervault/chaptervault/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
