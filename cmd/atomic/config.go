package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/yacobolo/atomic-variants/internal/annotate"
	"github.com/yacobolo/atomic-variants/internal/extract"
	"github.com/yacobolo/atomic-variants/internal/marker"
)

const (
	defaultConfigFile = ".atomic-variants.yaml"
	envPrefix         = "ATOMIC_"
)

// sections are the per-command config blocks
var sections = []string{"resolve", "generate", "check", "extract"}

var k = koanf.New(".")

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigFile
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// Flags that were never set only fill keys no other provider set
	if err := k.Load(posflag.ProviderWithFlag(cmd.Flags(), ".", k, flagKey(cmd)), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(envPrefix, ".", envValue), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// envKey maps variable names onto config keys:
// ATOMIC_EXTRACT_OUTPUT_DIR -> extract.output-dir, ATOMIC_LOG_LEVEL -> log-level
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	if section, rest, ok := strings.Cut(s, "_"); ok {
		for _, name := range sections {
			if section == name {
				return section + "." + strings.ReplaceAll(rest, "_", "-")
			}
		}
	}
	return strings.ReplaceAll(s, "_", "-")
}

// envValue splits comma-separated glob lists
func envValue(name, value string) (string, interface{}) {
	key := envKey(name)
	if strings.HasSuffix(key, "paths") || strings.HasSuffix(key, "specs") {
		return key, splitList(value)
	}
	return key, value
}

// flagKey places a command's own flags under its config section so
// `extract --output-dir` and `extract: {output-dir: ...}` share a key.
// Inherited flags keep their bare name.
func flagKey(cmd *cobra.Command) func(f *pflag.Flag) (string, interface{}) {
	local := cmd.LocalNonPersistentFlags()
	section := cmd.Name()
	return func(f *pflag.Flag) (string, interface{}) {
		val := posflag.FlagVal(cmd.Flags(), f)
		if local.Lookup(f.Name) == nil {
			return f.Name, val
		}
		if f.Name == "no-gitignore" {
			off, _ := val.(bool)
			return section + ".gitignore", !off
		}
		return section + "." + f.Name, val
	}
}

// splitList splits comma-separated values into a trimmed slice
func splitList(s string) []string {
	if s == "" {
		return []string{}
	}

	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		trimmed := strings.TrimSpace(p)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// buildExtractConfig constructs the extraction Config from koanf state.
func buildExtractConfig() extract.Config {
	return extract.Config{
		Paths:            getStrings("extract.paths", []string{"dist/**/*.js"}),
		OutputDir:        getString("extract.output-dir", marker.OutputDir),
		OutputFile:       getString("extract.output-file", marker.OutputFile),
		Tag:              getString("extract.tag", marker.Tag),
		RespectGitignore: getBool("extract.gitignore", true),
		DryRun:           getBool("extract.dry-run", false),
		Logger:           logger,
	}
}

// buildGenerateConfig constructs the generation config from koanf state.
func buildGenerateConfig() annotate.GenerateConfig {
	return annotate.GenerateConfig{
		Output:  getString("generate.output", annotate.DefaultOutput),
		Package: getString("generate.package", ""),
		Tag:     getString("generate.tag", marker.Tag),
	}
}

// getString returns the value at key, or defaultVal when unset or empty.
func getString(key, defaultVal string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return defaultVal
}

// getStrings returns the list at key, or defaultVal when unset or empty.
func getStrings(key string, defaultVal []string) []string {
	if v := k.Strings(key); len(v) > 0 {
		return v
	}
	return defaultVal
}

// getBool returns the value at key, or defaultVal when unset.
func getBool(key string, defaultVal bool) bool {
	if k.Exists(key) {
		return k.Bool(key)
	}
	return defaultVal
}

// getDuration returns the value at key, or defaultVal when unset or zero.
func getDuration(key string, defaultVal time.Duration) time.Duration {
	if v := k.Duration(key); v > 0 {
		return v
	}
	return defaultVal
}
