package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yacobolo/atomic-variants/internal/annotate"
	"github.com/yacobolo/atomic-variants/internal/report"
	"go.uber.org/zap"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate a Go safelist file from component specs",
	Long: `Find atomic.Spec literals in Go sources (and optional YAML catalogs),
check them, and write a Go file holding one marker comment per component
plus a Safelist variable with every responsive class.

Point your CSS purge tool at the generated file, or run extract over it.`,
	PreRunE: setup,
	RunE:    runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.StringSlice("paths", nil, "Glob patterns of Go files to scan (default **/*.go)")
	f.StringSlice("specs", nil, "Glob patterns of YAML spec catalogs to include")
	f.String("output", "", "Output file (default "+annotate.DefaultOutput+")")
	f.String("package", "", "Package name of the generated file (default: output directory name)")
	f.String("tag", "", "Marker tag")
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	out, err := newOutput(cmd)
	if err != nil {
		return err
	}
	config := buildGenerateConfig()

	defs, warnings, err := loadDefinitions("generate")
	if err != nil {
		return err
	}
	for _, def := range defs {
		warnings = append(warnings, annotate.Check(def)...)
	}

	result, err := annotate.Generate(defs, config)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}
	result.Warnings = append(warnings, result.Warnings...)
	logger.Info("safelist written", zap.String("path", result.OutputPath), zap.Int("classes", result.Classes))

	if out.format == report.FormatJSON {
		return report.WriteJSON(out.w, report.NewJSONGenerate(result, version))
	}
	out.reporter().Generate(result)
	return nil
}
