package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/atomic-variants/internal/logging"
	"github.com/yacobolo/atomic-variants/internal/report"
	"go.uber.org/zap"
)

// logger is replaced in setup once flags and config are loaded
var logger = logging.Nop()

var rootCmd = &cobra.Command{
	Use:   "atomic",
	Short: "Variant-driven class composition for atomic CSS",
	Long: `Compose class strings from variant specs and keep responsive classes
visible to CSS purge tools.

  resolve   print the classes a component resolves to
  generate  write a Go safelist file with marker comments
  check     report spec contract mistakes
  extract   collect marker comments from build output`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigFile, "Config file path")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().String("output-format", "", "Output format: text|json")

	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads configuration and builds the logger. It runs as PreRunE of
// every command that reads config.
func setup(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}

	cfg := logging.DefaultConfig()
	if getBool("verbose", false) {
		cfg = logging.VerboseConfig()
	}
	if level := getString("log-level", ""); level != "" {
		cfg.Level = level
	}

	l, err := logging.New(cfg)
	if err != nil {
		return err
	}
	logger = l
	logger.Debug("config loaded", zap.Strings("keys", k.Keys()))
	return nil
}

// output describes where and how a command prints its report
type output struct {
	w      io.Writer
	format report.Format
	quiet  bool
	colors bool
}

func newOutput(cmd *cobra.Command) (output, error) {
	format, err := report.ParseFormat(getString("output-format", ""))
	if err != nil {
		return output{}, err
	}

	w := cmd.OutOrStdout()
	quiet := getBool("quiet", false)
	if quiet {
		w = io.Discard
	}

	// Environment and TTY detection only apply to the real stdout
	colors := getBool("color", false)
	if !colors && cmd.OutOrStdout() == os.Stdout {
		colors = report.ShouldUseColors(false)
	}

	return output{w: w, format: format, quiet: quiet, colors: colors}, nil
}

func (o output) reporter() *report.Reporter {
	return report.NewReporter(o.w, o.colors)
}
