package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, defaultConfigFile)
	configContent := `
verbose: true
specs:
  - ui/atomic.yaml

extract:
  paths:
    - "build/**/*.js"
  output-dir: custom/out
  gitignore: false
  debounce: 2s

generate:
  output: ui/safelist.gen.go
  package: ui
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, []string{"ui/atomic.yaml"}, k.Strings("specs"))
	assert.Equal(t, 2*time.Second, getDuration("extract.debounce", time.Second))

	ec := buildExtractConfig()
	assert.Equal(t, []string{"build/**/*.js"}, ec.Paths)
	assert.Equal(t, "custom/out", ec.OutputDir)
	assert.Equal(t, ".atomic", ec.OutputFile)
	assert.False(t, ec.RespectGitignore)

	gc := buildGenerateConfig()
	assert.Equal(t, "ui/safelist.gen.go", gc.Output)
	assert.Equal(t, "ui", gc.Package)
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	require.NoError(t, loadConfigFromPath("/nonexistent/"+defaultConfigFile))

	ec := buildExtractConfig()
	assert.Equal(t, []string{"dist/**/*.js"}, ec.Paths)
	assert.Equal(t, ".atomic-variants", ec.OutputDir)
	assert.Equal(t, ".atomic", ec.OutputFile)
	assert.Equal(t, "__atomic_generated", ec.Tag)
	assert.True(t, ec.RespectGitignore)
	assert.False(t, ec.DryRun)

	gc := buildGenerateConfig()
	assert.Equal(t, "atomic_safelist.gen.go", gc.Output)
	assert.Empty(t, gc.Package)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, defaultConfigFile)
	configContent := `
extract:
  output-dir: from-file
  gitignore: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	t.Setenv("ATOMIC_EXTRACT_OUTPUT_DIR", "from-env")
	t.Setenv("ATOMIC_EXTRACT_GITIGNORE", "false")
	t.Setenv("ATOMIC_EXTRACT_PATHS", "a/*.js, b/*.js")
	t.Setenv("ATOMIC_LOG_LEVEL", "debug")

	require.NoError(t, loadConfigFromPath(configPath))

	ec := buildExtractConfig()
	assert.Equal(t, "from-env", ec.OutputDir)
	assert.False(t, ec.RespectGitignore)
	assert.Equal(t, []string{"a/*.js", "b/*.js"}, ec.Paths)
	assert.Equal(t, "debug", k.String("log-level"))
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "ATOMIC_VERBOSE", want: "verbose"},
		{in: "ATOMIC_LOG_LEVEL", want: "log-level"},
		{in: "ATOMIC_OUTPUT_FORMAT", want: "output-format"},
		{in: "ATOMIC_EXTRACT_OUTPUT_DIR", want: "extract.output-dir"},
		{in: "ATOMIC_GENERATE_PACKAGE", want: "generate.package"},
		{in: "ATOMIC_RESOLVE_FINALIZE", want: "resolve.finalize"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, envKey(tt.in))
		})
	}
}

// newFlagTestCmd builds a throwaway root/extract pair that only loads config
func newFlagTestCmd() *cobra.Command {
	root := &cobra.Command{Use: "atomic", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("config", "", "")
	root.PersistentFlags().Bool("verbose", false, "")

	cmd := &cobra.Command{
		Use: "extract",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return loadConfig(cmd)
		},
	}
	cmd.Flags().String("output-dir", "", "")
	cmd.Flags().Bool("no-gitignore", false, "")
	cmd.Flags().Duration("debounce", time.Second, "")
	root.AddCommand(cmd)
	return root
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, defaultConfigFile)
	configContent := `
verbose: false
extract:
  output-dir: from-file
  debounce: 3s
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0o644))

	root := newFlagTestCmd()
	root.SetArgs([]string{"extract", "--config", configPath, "--output-dir", "from-flag", "--no-gitignore", "--verbose"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "from-flag", k.String("extract.output-dir"))
	assert.False(t, k.Bool("extract.gitignore"))
	assert.True(t, k.Bool("verbose"))
	// Unset flags keep the file's value
	assert.Equal(t, 3*time.Second, getDuration("extract.debounce", 0))
}

func TestUnsetFlagsFillDefaults(t *testing.T) {
	resetKoanf()

	root := newFlagTestCmd()
	root.SetArgs([]string{"extract", "--config", "/nonexistent/" + defaultConfigFile})
	require.NoError(t, root.Execute())

	assert.True(t, k.Bool("extract.gitignore"))
	assert.Equal(t, time.Second, getDuration("extract.debounce", 0))
	assert.False(t, k.Bool("verbose"))
}

func TestDefaultConfigParses(t *testing.T) {
	resetKoanf()

	path := filepath.Join(t.TempDir(), defaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(defaultConfig), 0o644))
	require.NoError(t, loadConfigFromPath(path))

	assert.Equal(t, []string{"atomic.yaml"}, k.Strings("specs"))
	assert.Equal(t, "none", k.String("resolve.finalize"))
	assert.Equal(t, []string{"**/*.go"}, k.Strings("generate.paths"))
	assert.Equal(t, 150*time.Millisecond, getDuration("extract.debounce", 0))
	assert.True(t, buildExtractConfig().RespectGitignore)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(defaultConfigFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "extract:")
	assert.Contains(t, string(data), "generate:")

	cmd.SetArgs([]string{"init"})
	require.Error(t, cmd.Execute())
}
