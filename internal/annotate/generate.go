package annotate

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	atomic "github.com/yacobolo/atomic-variants"
	"github.com/yacobolo/atomic-variants/internal/marker"
)

// DefaultOutput is the generated file name
const DefaultOutput = "atomic_safelist.gen.go"

// GenerateConfig holds generation settings
type GenerateConfig struct {
	Output  string // Output file (default atomic_safelist.gen.go)
	Package string // Package clause (default: output directory name)
	Tag     string // Marker tag (default __atomic_generated)
}

func (c GenerateConfig) output() string {
	if c.Output == "" {
		return DefaultOutput
	}
	return c.Output
}

func (c GenerateConfig) tag() string {
	if c.Tag == "" {
		return marker.Tag
	}
	return c.Tag
}

// packageName falls back to the output directory's name, then "safelist"
func (c GenerateConfig) packageName() string {
	if c.Package != "" {
		return c.Package
	}
	if abs, err := filepath.Abs(c.output()); err == nil {
		dir := filepath.Base(filepath.Dir(abs))
		if token.IsIdentifier(dir) && !token.IsKeyword(dir) {
			return dir
		}
	}
	return "safelist"
}

// GenerateResult contains generation stats
type GenerateResult struct {
	Definitions int      `json:"definitions"`
	Markers     int      `json:"markers"`
	Classes     int      `json:"classes"`
	OutputPath  string   `json:"output_path"`
	Warnings    []string `json:"warnings,omitempty"`
}

type entry struct {
	Label  string
	Marker string
}

var fileTemplate = template.Must(template.New("safelist").Parse(`// Code generated by atomic generate. DO NOT EDIT.

package {{.Package}}
{{range .Entries}}
// {{.Label}}
{{.Marker}}
{{end}}
// Safelist holds every responsive class the definitions can emit
var Safelist = []string{
{{- range .Classes}}
	{{printf "%q" .}},
{{- end}}
}
`))

// Render builds the generated source without writing it
func Render(defs []Definition, cfg GenerateConfig) ([]byte, *GenerateResult, error) {
	result := &GenerateResult{Definitions: len(defs), OutputPath: cfg.output()}

	var entries []entry
	var classes []string
	seen := make(map[string]bool)

	for _, def := range defs {
		var carried []string
		for _, class := range atomic.Safelist(def.Spec) {
			if strings.Contains(class, "*") {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("%s: class %q left out of marker", label(def), class))
			} else {
				carried = append(carried, class)
			}
			if !seen[class] {
				seen[class] = true
				classes = append(classes, class)
			}
		}
		if len(carried) == 0 {
			continue
		}
		entries = append(entries, entry{
			Label:  label(def),
			Marker: marker.Format(cfg.tag(), strings.Join(carried, " ")),
		})
	}
	result.Markers = len(entries)
	result.Classes = len(classes)

	var buf bytes.Buffer
	err := fileTemplate.Execute(&buf, struct {
		Package string
		Entries []entry
		Classes []string
	}{cfg.packageName(), entries, classes})
	if err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, nil, fmt.Errorf("format: %w", err)
	}
	return src, result, nil
}

// Generate renders defs and writes the result to cfg.Output
func Generate(defs []Definition, cfg GenerateConfig) (*GenerateResult, error) {
	src, result, err := Render(defs, cfg)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(result.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create output dir: %w", err)
		}
	}

	// #nosec G306 - generated source file
	if err := os.WriteFile(result.OutputPath, src, 0o644); err != nil {
		return nil, fmt.Errorf("write failed: %w", err)
	}
	return result, nil
}
