// Package extract collects marker comments from build output and writes the
// class allow-list artifact that CSS purge tools read.
package extract

import (
	"fmt"
	"os"
	"regexp"

	"github.com/yacobolo/atomic-variants/internal/logging"
	"github.com/yacobolo/atomic-variants/internal/marker"
	"go.uber.org/zap"
)

// Config holds extraction settings
type Config struct {
	Paths            []string // Glob patterns of files to scan ("dist/**/*.js")
	OutputDir        string   // Artifact directory (default .atomic-variants)
	OutputFile       string   // Artifact file name (default .atomic)
	Tag              string   // Marker tag (default __atomic_generated)
	RespectGitignore bool     // Skip files matched by .gitignore
	GitignorePath    string   // Default ".gitignore"
	DryRun           bool     // Collect without writing
	Logger           *zap.Logger
}

func (c Config) outputPath() string {
	return marker.Path(c.OutputDir, c.OutputFile)
}

func (c Config) pattern() *regexp.Regexp {
	if c.Tag == "" || c.Tag == marker.Tag {
		return marker.Pattern
	}
	return marker.Compile(c.Tag)
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return logging.Nop()
	}
	return c.Logger
}

// Result contains extraction stats
type Result struct {
	ScanStats
	Markers    int      // Marker comments found, duplicates included
	Classes    []string // Distinct captures in discovery order
	Written    bool     // Whether the artifact was written
	OutputPath string
	Warnings   []string
}

// Run scans every file matching cfg.Paths for markers and writes the
// deduplicated captures. Nothing is written when no marker is found.
func Run(cfg Config) (*Result, error) {
	log := cfg.logger()
	re := cfg.pattern()

	files, stats, err := expandGlobPatterns(cfg.Paths, newFilter(cfg, log))
	if err != nil {
		return nil, fmt.Errorf("scan failed: %w", err)
	}

	result := &Result{ScanStats: stats, OutputPath: cfg.outputPath()}
	log.Debug("files discovered",
		zap.Int("scanned", stats.FilesScanned),
		zap.Int("skipped", stats.FilesSkipped))

	set := marker.NewSet()
	for _, file := range files {
		// #nosec G304 - paths come from configured globs
		content, err := os.ReadFile(file)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Failed to read %s: %v", file, err))
			continue
		}

		found := marker.Find(re, string(content))
		if len(found) == 0 {
			continue
		}
		result.Markers += len(found)
		added := set.Add(found...)
		log.Debug("markers found", zap.String("file", file), zap.Int("count", len(found)), zap.Int("new", added))
	}
	result.Classes = set.Values()

	if cfg.DryRun {
		return result, nil
	}

	written, err := marker.Write(set, cfg.OutputDir, cfg.OutputFile)
	if err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	result.Written = written

	if written {
		log.Info("allow-list written", zap.String("path", result.OutputPath), zap.Int("entries", set.Len()))
	} else {
		log.Info("no markers found, nothing written")
	}

	return result, nil
}
