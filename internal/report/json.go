package report

import (
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/yacobolo/atomic-variants/internal/annotate"
	"github.com/yacobolo/atomic-variants/internal/extract"
)

// JSONExtract is the JSON schema of an extraction run
type JSONExtract struct {
	Version      string   `json:"version"`
	Timestamp    string   `json:"timestamp"`
	FilesScanned int      `json:"files_scanned"`
	FilesSkipped int      `json:"files_skipped"`
	Markers      int      `json:"markers"`
	Classes      []string `json:"classes"`
	Written      bool     `json:"written"`
	OutputPath   string   `json:"output_path"`
	Warnings     []string `json:"warnings,omitempty"`
}

// JSONGenerate is the JSON schema of a generate run
type JSONGenerate struct {
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
	*annotate.GenerateResult
}

// JSONCheck is the JSON schema of a check run
type JSONCheck struct {
	Version     string   `json:"version"`
	Timestamp   string   `json:"timestamp"`
	Definitions int      `json:"definitions"`
	Issues      []string `json:"issues"`
	Warnings    []string `json:"warnings,omitempty"`
}

// JSONResolve is the JSON schema of a resolve run
type JSONResolve struct {
	Component string `json:"component"`
	Classes   string `json:"classes"`
}

// NewJSONExtract converts an extraction result
func NewJSONExtract(res *extract.Result, version string) JSONExtract {
	classes := res.Classes
	if classes == nil {
		classes = []string{}
	}
	return JSONExtract{
		Version:      version,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		FilesScanned: res.FilesScanned,
		FilesSkipped: res.FilesSkipped,
		Markers:      res.Markers,
		Classes:      classes,
		Written:      res.Written,
		OutputPath:   res.OutputPath,
		Warnings:     res.Warnings,
	}
}

// NewJSONGenerate converts a generate result
func NewJSONGenerate(res *annotate.GenerateResult, version string) JSONGenerate {
	return JSONGenerate{
		Version:        version,
		Timestamp:      time.Now().UTC().Format(time.RFC3339),
		GenerateResult: res,
	}
}

// NewJSONCheck builds a check report
func NewJSONCheck(definitions int, issues, warnings []string, version string) JSONCheck {
	if issues == nil {
		issues = []string{}
	}
	return JSONCheck{
		Version:     version,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Definitions: definitions,
		Issues:      issues,
		Warnings:    warnings,
	}
}

// WriteJSON writes v as indented JSON followed by a newline
func WriteJSON(w io.Writer, v any) error {
	data, err := sonic.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}
