// Package report renders command results as colored text or JSON.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yacobolo/atomic-variants/internal/annotate"
	"github.com/yacobolo/atomic-variants/internal/extract"
)

// Format selects how results are printed
type Format string

// Output formats
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates an --output-format value. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return "", fmt.Errorf("invalid output format %q (want text or json)", s)
}

// ShouldUseColors decides whether text output is colored
func ShouldUseColors(force bool) bool {
	if force {
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}

	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}

	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}

	// Auto-detect TTY
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}

	return false
}

// Reporter writes human-readable summaries
type Reporter struct {
	w         io.Writer
	useColors bool
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer, useColors bool) *Reporter {
	return &Reporter{w: w, useColors: useColors}
}

// Extract prints the outcome of an extraction run
func (r *Reporter) Extract(res *extract.Result) {
	r.Warnings(res.Warnings)

	stats := RenderStyle(StyleDim,
		fmt.Sprintf("(%d files scanned, %d skipped, %d markers)", res.FilesScanned, res.FilesSkipped, res.Markers),
		r.useColors)

	switch {
	case res.Written:
		fmt.Fprintf(r.w, "%s Wrote %d classes to %s %s\n",
			RenderStyle(StyleOK, "✓", r.useColors),
			len(res.Classes),
			RenderStyle(StyleHeader, res.OutputPath, r.useColors),
			stats)
	case len(res.Classes) > 0:
		fmt.Fprintf(r.w, "Found %d classes (dry run, nothing written) %s\n", len(res.Classes), stats)
		for _, c := range res.Classes {
			fmt.Fprintf(r.w, "  %s\n", c)
		}
	default:
		fmt.Fprintf(r.w, "No markers found %s\n", stats)
	}
}

// Generate prints the outcome of safelist generation
func (r *Reporter) Generate(res *annotate.GenerateResult) {
	r.Warnings(res.Warnings)
	fmt.Fprintf(r.w, "%s Generated %s %s\n",
		RenderStyle(StyleOK, "✓", r.useColors),
		RenderStyle(StyleHeader, res.OutputPath, r.useColors),
		RenderStyle(StyleDim,
			fmt.Sprintf("(%d definitions, %d markers, %d classes)", res.Definitions, res.Markers, res.Classes),
			r.useColors))
}

// Check prints static issues followed by a summary line
func (r *Reporter) Check(definitions int, issues []string) {
	for _, issue := range issues {
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleWarn, "issue:", r.useColors), issue)
	}

	summary := fmt.Sprintf("%d definitions checked, %d issues", definitions, len(issues))
	if len(issues) == 0 {
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleOK, "✓", r.useColors), summary)
		return
	}
	fmt.Fprintln(r.w, RenderStyle(StyleDim, summary, r.useColors))
}

// Warnings prints one line per warning
func (r *Reporter) Warnings(warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(r.w, "%s %s\n", RenderStyle(StyleWarn, "warning:", r.useColors), w)
	}
}

// Error prints a failure line
func (r *Reporter) Error(err error) {
	fmt.Fprintf(r.w, "%s %v\n", RenderStyle(StyleError, "error:", r.useColors), err)
}
