// Package marker defines the comment convention that carries generated class
// strings from compiled output to build tooling.
//
// Injectors write a comment of the form
//
//	/* __atomic_generated:sm:p-1 md:p-1 */
//
// and extractors collect every capture into a deduplicated set that is
// written, newline-joined, to .atomic-variants/.atomic.
package marker

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Tag is the default marker tag
const Tag = "__atomic_generated"

// Default artifact location, relative to the working directory
const (
	OutputDir  = ".atomic-variants"
	OutputFile = ".atomic"
)

// Pattern matches default-tag markers. Group 1 is the class text.
var Pattern = Compile(Tag)

// Compile builds the marker pattern for tag
func Compile(tag string) *regexp.Regexp {
	return regexp.MustCompile(`/\*\s*` + regexp.QuoteMeta(tag) + `:([^*]+)\s*\*/`)
}

// Format renders the marker comment for classes
func Format(tag, classes string) string {
	return fmt.Sprintf("/* %s:%s */", tag, classes)
}

// Find returns the trimmed capture of every marker in src
func Find(re *regexp.Regexp, src string) []string {
	matches := re.FindAllStringSubmatch(src, -1)
	if len(matches) == 0 {
		return nil
	}

	found := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) < 2 {
			continue
		}
		found = append(found, strings.TrimSpace(m[1]))
	}
	return found
}

// Set is an insertion-ordered set of captures
type Set struct {
	seen   map[string]bool
	values []string
}

// NewSet creates an empty set
func NewSet() *Set {
	return &Set{seen: make(map[string]bool)}
}

// Add inserts values not already present and reports how many were new
func (s *Set) Add(values ...string) int {
	added := 0
	for _, v := range values {
		if s.seen[v] {
			continue
		}
		s.seen[v] = true
		s.values = append(s.values, v)
		added++
	}
	return added
}

// Len returns the number of distinct values
func (s *Set) Len() int { return len(s.values) }

// Values returns the values in insertion order
func (s *Set) Values() []string {
	out := make([]string, len(s.values))
	copy(out, s.values)
	return out
}

// String returns the newline-joined values
func (s *Set) String() string {
	return strings.Join(s.values, "\n")
}

// Path joins the artifact directory and file name
func Path(dir, file string) string {
	if dir == "" {
		dir = OutputDir
	}
	if file == "" {
		file = OutputFile
	}
	return filepath.Join(dir, file)
}

// Write stores the set at dir/file, creating dir as needed. An empty set
// writes nothing and leaves any existing artifact untouched.
func Write(s *Set, dir, file string) (bool, error) {
	if s == nil || s.Len() == 0 {
		return false, nil
	}

	path := Path(dir, file)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create output dir: %w", err)
	}

	// #nosec G306 - build artifact read by other tools
	if err := os.WriteFile(path, []byte(s.String()), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	return true, nil
}
