package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	atomic "github.com/yacobolo/atomic-variants"
	"github.com/yacobolo/atomic-variants/internal/annotate"
	"github.com/yacobolo/atomic-variants/internal/report"
	"go.uber.org/zap"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve COMPONENT",
	Short: "Print the class string a component resolves to",
	Long: `Load component specs from YAML catalogs and resolve one component.

Each --set selects a variant value. A value of the form xs:a,md:b selects
per-breakpoint values; an empty value unsets the group.

  atomic resolve button --specs ui/atomic.yaml --set size=lg --set size=xs:sm,md:lg`,
	Args:    cobra.ExactArgs(1),
	PreRunE: setup,
	RunE:    runResolve,
}

func init() {
	f := resolveCmd.Flags()
	f.StringSlice("specs", nil, "Spec catalog files or globs (default atomic.yaml)")
	f.StringArray("set", nil, "Variant selection group=value or group=xs:a,md:b (repeatable)")
	f.String("class", "", "Extra classes appended last")
	f.String("finalize", "", "Post-processing: none|dedupe|fields")
}

func runResolve(cmd *cobra.Command, args []string) error {
	out, err := newOutput(cmd)
	if err != nil {
		return err
	}

	finalize, err := finalizer(getString("resolve.finalize", "none"))
	if err != nil {
		return err
	}

	patterns := getStrings("resolve.specs", getStrings("specs", []string{"atomic.yaml"}))
	defs, err := annotate.LoadYAMLFiles(patterns)
	if err != nil {
		return fmt.Errorf("load specs: %w", err)
	}

	catalog := annotate.Catalog(defs)
	spec, ok := catalog.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown component %q (have %s)", args[0], strings.Join(catalog.Names(), ", "))
	}

	selection, err := parseSelection(k.Strings("resolve.set"))
	if err != nil {
		return err
	}

	resolver := atomic.NewComposer(atomic.WithFinalize(finalize)).Compose(spec)
	classes := resolver.Resolve(atomic.Props{
		Variants:  selection,
		ClassName: getString("resolve.class", ""),
	})
	logger.Debug("resolved", zap.String("component", args[0]), zap.Int("choices", len(selection)))

	if out.format == report.FormatJSON {
		return report.WriteJSON(out.w, report.JSONResolve{Component: args[0], Classes: classes})
	}
	fmt.Fprintln(out.w, classes)
	return nil
}

// parseSelection turns group=value arguments into an ordered selection
func parseSelection(args []string) (atomic.Selection, error) {
	sel := make(atomic.Selection, 0, len(args))
	for _, arg := range args {
		group, value, ok := strings.Cut(arg, "=")
		if !ok || group == "" {
			return nil, fmt.Errorf("invalid --set %q (want group=value)", arg)
		}
		sel = append(sel, atomic.Pick(group, parseValue(value)))
	}
	return sel, nil
}

// parseValue reads "lg", "" (unset) or "xs:sm,md:lg". A value is only
// responsive when every comma-separated part names a known breakpoint.
func parseValue(s string) atomic.Value {
	if s == "" {
		return atomic.Unset()
	}
	if !strings.Contains(s, ":") {
		return atomic.Is(s)
	}

	parts := strings.Split(s, ",")
	points := make([]atomic.Point, 0, len(parts))
	for _, part := range parts {
		bp, value, ok := strings.Cut(part, ":")
		if !ok || !isBreakpoint(bp) {
			return atomic.Is(s)
		}
		points = append(points, atomic.Point{Breakpoint: atomic.Breakpoint(bp), Value: value})
	}
	return atomic.At(points...)
}

func isBreakpoint(s string) bool {
	for _, b := range atomic.Breakpoints {
		if string(b) == s {
			return true
		}
	}
	return false
}

// finalizer returns the post-processing hook for name
func finalizer(name string) (atomic.Finalizer, error) {
	switch name {
	case "", "none":
		return nil, nil
	case "fields":
		return func(s string) string { return strings.Join(strings.Fields(s), " ") }, nil
	case "dedupe":
		return dedupe, nil
	}
	return nil, fmt.Errorf("invalid finalize %q (want none, dedupe or fields)", name)
}

// dedupe keeps the first occurrence of each class
func dedupe(s string) string {
	fields := strings.Fields(s)
	seen := make(map[string]bool, len(fields))
	out := fields[:0]
	for _, f := range fields {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return strings.Join(out, " ")
}
