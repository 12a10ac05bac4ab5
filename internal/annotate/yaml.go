package annotate

import (
	"fmt"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	atomic "github.com/yacobolo/atomic-variants"
)

// LoadYAML reads a spec catalog and returns one definition per component
func LoadYAML(path string) ([]Definition, error) {
	// #nosec G304 - path is a user-provided catalog
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	catalog, err := atomic.LoadSpecs(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	defs := make([]Definition, 0, len(catalog))
	for _, c := range catalog {
		defs = append(defs, Definition{Name: c.Name, File: path, Spec: c.Spec})
	}
	return defs, nil
}

// LoadYAMLFiles loads every catalog matching patterns, in pattern order.
// A pattern without glob characters must name an existing file.
func LoadYAMLFiles(patterns []string) ([]Definition, error) {
	var defs []Definition
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 && !hasMeta(pattern) {
			return nil, fmt.Errorf("spec file %s: %w", pattern, os.ErrNotExist)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			found, err := LoadYAML(match)
			if err != nil {
				return nil, err
			}
			defs = append(defs, found...)
		}
	}

	return defs, nil
}

// Catalog converts definitions back into a lookup catalog. Later
// definitions shadow earlier ones with the same name.
func Catalog(defs []Definition) atomic.Catalog {
	catalog := make(atomic.Catalog, 0, len(defs))
	index := make(map[string]int)
	for _, d := range defs {
		if i, ok := index[d.Name]; ok {
			catalog[i].Spec = d.Spec
			continue
		}
		index[d.Name] = len(catalog)
		catalog = append(catalog, atomic.Component{Name: d.Name, Spec: d.Spec})
	}
	return catalog
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
