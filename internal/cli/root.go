// Copyright (c) 2026 ChapterVault Authors
//
// This file is part of chaptervault.
//
// chaptervault is licensed under the GNU Affero General Public License v3.0
// (AGPL-3.0). See LICENSE file or visit https://www.gnu.org/licenses/agpl-3.0.html

// Package cli implements the chaptervault command line interface.
package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chaptervault",
	Short: "chaptervault - chapter content and permission server",
	Long: `chaptervault serves chapter content, roles, and role bindings over a
REST API, backed by one of several storage variants:

  - memory:     process-local map, for testing and ephemeral use
  - local-json: one JSON file per record under a local directory
  - s3-json:    one JSON object per record in an S3 bucket`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initViper)

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}

// initViper wires environment variables into flag resolution. Any flag
// can be set as CHAPTERVAULT_<FLAG> with dashes replaced by underscores,
// e.g. CHAPTERVAULT_STORAGE_BACKEND=local-json.
func initViper() {
	viper.SetEnvPrefix("chaptervault")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}
