package extract

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// ScanStats tracks file discovery
type ScanStats struct {
	FilesDiscovered int // Files matched by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped by filtering
}

// alwaysSkipped directories never hold compiled output worth scanning
var alwaysSkipped = []string{".git", "node_modules"}

// filter decides which discovered files are scanned
type filter struct {
	gitignore *ignore.GitIgnore
	output    string // artifact path, never re-read
}

func newFilter(cfg Config, log *zap.Logger) *filter {
	f := &filter{output: filepath.Clean(cfg.outputPath())}

	if !cfg.RespectGitignore {
		return f
	}

	path := cfg.GitignorePath
	if path == "" {
		path = ".gitignore"
	}

	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		// No .gitignore is fine
		log.Debug("gitignore not loaded", zap.String("path", path), zap.Error(err))
		return f
	}
	f.gitignore = gi
	return f
}

// skip reports whether path should be excluded from scanning.
// gitignore rules only apply to relative paths; absolute paths are outside
// the project the .gitignore describes.
func (f *filter) skip(path string) bool {
	clean := filepath.Clean(path)
	if clean == f.output {
		return true
	}

	for _, part := range strings.Split(filepath.ToSlash(clean), "/") {
		for _, dir := range alwaysSkipped {
			if part == dir {
				return true
			}
		}
	}

	if f.gitignore != nil && !filepath.IsAbs(path) {
		return f.gitignore.MatchesPath(path)
	}

	return false
}

// expandGlobPatterns expands globs into a deduplicated file list
func expandGlobPatterns(patterns []string, f *filter) ([]string, ScanStats, error) {
	var files []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if f.skip(match) {
				stats.FilesSkipped++
				continue
			}
			files = append(files, match)
			stats.FilesScanned++
		}
	}

	return files, stats, nil
}

// watchRoots returns the static directory prefix of each pattern
func watchRoots(patterns []string) []string {
	var roots []string
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
		base = filepath.FromSlash(base)
		if base == "" {
			base = "."
		}
		if !seen[base] {
			seen[base] = true
			roots = append(roots, base)
		}
	}
	return roots
}
