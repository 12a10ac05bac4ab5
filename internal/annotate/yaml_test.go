package annotate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	atomic "github.com/yacobolo/atomic-variants"
)

const catalogA = `
button:
  base: inline-flex
  variants:
    size:
      sm: h-8
  responsiveVariants: true
card:
  base: rounded
`

const catalogB = `
card:
  base: rounded-lg
badge:
  base: text-xs
`

func writeCatalog(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), "specs.yaml", catalogA)

	defs, err := LoadYAML(path)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "button", defs[0].Name)
	assert.Equal(t, path, defs[0].Pos())
	assert.True(t, defs[0].Spec.Responsive.All())
	assert.Equal(t, "card", defs[1].Name)

	_, err = LoadYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestLoadYAMLInvalid(t *testing.T) {
	path := writeCatalog(t, t.TempDir(), "bad.yaml", "button:\n  variants: [1, 2]\n")
	_, err := LoadYAML(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLoadYAMLFiles(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "a.yaml", catalogA)
	writeCatalog(t, dir, "b.yaml", catalogB)

	defs, err := LoadYAMLFiles([]string{filepath.Join(dir, "*.yaml")})
	require.NoError(t, err)
	require.Len(t, defs, 4)

	catalog := Catalog(defs)
	assert.Equal(t, []string{"button", "card", "badge"}, catalog.Names())

	card, ok := catalog.Lookup("card")
	require.True(t, ok)
	assert.Equal(t, "rounded-lg", card.Base)
	assert.Equal(t, "rounded-lg", atomic.New(card).Resolve(atomic.Props{}))
}

func TestLoadYAMLFilesMissing(t *testing.T) {
	dir := t.TempDir()

	defs, err := LoadYAMLFiles([]string{filepath.Join(dir, "*.yaml")})
	require.NoError(t, err)
	assert.Empty(t, defs)

	_, err = LoadYAMLFiles([]string{filepath.Join(dir, "atomic.yaml")})
	require.ErrorIs(t, err, os.ErrNotExist)
}
