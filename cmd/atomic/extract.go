package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/yacobolo/atomic-variants/internal/extract"
	"github.com/yacobolo/atomic-variants/internal/report"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Collect marker comments from build output",
	Long: `Scan build output for /* __atomic_generated:... */ markers and write the
deduplicated class list to .atomic-variants/.atomic for CSS purge tools.

Nothing is written when no marker is found. With --watch the scan reruns
whenever files under the scanned directories change.`,
	PreRunE: setup,
	RunE:    runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.StringSlice("paths", nil, "Glob patterns of files to scan (default dist/**/*.js)")
	f.String("output-dir", "", "Artifact directory (default .atomic-variants)")
	f.String("output-file", "", "Artifact file name (default .atomic)")
	f.String("tag", "", "Marker tag (default __atomic_generated)")
	f.Bool("no-gitignore", false, "Scan files matched by .gitignore")
	f.Bool("dry-run", false, "Report classes without writing the artifact")
	f.Bool("watch", false, "Rerun on file changes until interrupted")
	f.Duration("debounce", extract.DefaultDebounce, "Quiet period before a watch rerun")
}

func runExtract(cmd *cobra.Command, _ []string) error {
	out, err := newOutput(cmd)
	if err != nil {
		return err
	}
	config := buildExtractConfig()

	if !getBool("extract.watch", false) {
		result, err := extract.Run(config)
		if err != nil {
			return err
		}
		return printExtract(out, result)
	}

	ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("watching", zap.Strings("paths", config.Paths))
	return extract.Watch(ctx, config, getDuration("extract.debounce", extract.DefaultDebounce), func(result *extract.Result, err error) {
		if err != nil {
			logger.Error("extract failed", zap.Error(err))
			out.reporter().Error(err)
			return
		}
		if err := printExtract(out, result); err != nil {
			logger.Warn("report failed", zap.Error(err))
		}
	})
}

func printExtract(out output, result *extract.Result) error {
	if out.format == report.FormatJSON {
		if err := report.WriteJSON(out.w, report.NewJSONExtract(result, version)); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		return nil
	}
	out.reporter().Extract(result)
	return nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
