package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default " + defaultConfigFile + " config file",
	Long:  `Create a ` + defaultConfigFile + ` configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(defaultConfigFile); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", defaultConfigFile)
		}

		// #nosec G306 - project config file
		if err := os.WriteFile(defaultConfigFile, []byte(defaultConfig), 0o644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Created "+defaultConfigFile)
		return nil
	},
}

const defaultConfig = `# atomic-variants configuration
# Every key can also be set as ATOMIC_<SECTION>_<KEY>, e.g. ATOMIC_EXTRACT_OUTPUT_DIR

# Shared settings
verbose: false
log-level: warn
output-format: text # text | json

# Component catalogs used by resolve
specs:
  - atomic.yaml

resolve:
  finalize: none # none | dedupe | fields

# Safelist generation from Go sources
generate:
  paths:
    - "**/*.go"
  output: atomic_safelist.gen.go
  tag: __atomic_generated

# Spec contract checks
check:
  paths:
    - "**/*.go"
  strict: false

# Marker extraction from build output
extract:
  paths:
    - "dist/**/*.js"
  output-dir: .atomic-variants
  output-file: .atomic
  tag: __atomic_generated
  gitignore: true
  debounce: 150ms
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
