package atomic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const catalogYAML = `
button:
  base: text-center
  override: font-bold
  variants:
    size:
      small: text-sm
      large: text-lg
    color:
      red: text-red-500
      blue: text-blue-500
    disabled:
      true: opacity-50
      false:
  defaultVariants:
    size: small
  responsiveVariants: [size]
  responsiveSizes: [sm, md]
  required: [color]

box:
  base: w-20 h-20
  variants:
    padding: { small: p-1, large: p-2 }
  responsiveVariants: true

plain:
  base: "  block  "
`

func TestLoadSpecs(t *testing.T) {
	catalog, err := LoadSpecs(strings.NewReader(catalogYAML))
	require.NoError(t, err)
	require.Equal(t, []string{"button", "box", "plain"}, catalog.Names())

	button, ok := catalog.Lookup("button")
	require.True(t, ok)
	assert.Equal(t, "text-center", button.Base)
	assert.Equal(t, "font-bold", button.Override)
	assert.Equal(t, []string{"size", "color", "disabled"}, button.Variants.Names())
	assert.Equal(t, []string{"size"}, button.Responsive.Groups())
	assert.Equal(t, []Breakpoint{SM, MD}, button.ResponsiveSizes)
	assert.Equal(t, []string{"color"}, button.Required)

	class, ok := button.Variants.Lookup("disabled", "true")
	require.True(t, ok)
	assert.Equal(t, "opacity-50", class)
	class, ok = button.Variants.Lookup("disabled", "false")
	require.True(t, ok)
	assert.Empty(t, class)

	size, ok := button.DefaultVariants.Get("size")
	require.True(t, ok)
	v, _ := size.Scalar()
	assert.Equal(t, "small", v)

	box, ok := catalog.Lookup("box")
	require.True(t, ok)
	assert.True(t, box.Responsive.All())

	plain, ok := catalog.Lookup("plain")
	require.True(t, ok)
	assert.Nil(t, plain.Variants)

	_, ok = catalog.Lookup("missing")
	assert.False(t, ok)
}

func TestLoadSpecsResolves(t *testing.T) {
	catalog, err := LoadSpecs(strings.NewReader(catalogYAML))
	require.NoError(t, err)

	button, _ := catalog.Lookup("button")
	assert.Equal(t, "text-center text-sm text-blue-500 opacity-50 font-bold",
		New(button).Classes(Pick("color", Is("blue")), Pick("disabled", Bool(true))))

	box, _ := catalog.Lookup("box")
	assert.Equal(t, "w-20 h-20 p-1 md:p-2",
		New(box).Classes(Pick("padding", At(Point{XS, "small"}, Point{MD, "large"}))))

	plain, _ := catalog.Lookup("plain")
	assert.Equal(t, "block", New(plain).Resolve(Props{ClassName: "ignored"}))
}

func TestLoadSpecsBooleanKeys(t *testing.T) {
	catalog, err := LoadSpecs(strings.NewReader(`
toggle:
  base: flex
  variants:
    on:
      True: A
      FALSE: B
  defaultVariants:
    on: False
`))
	require.NoError(t, err)

	toggle, _ := catalog.Lookup("toggle")
	r := New(toggle)
	assert.Equal(t, "flex A", r.Classes(Pick("on", Bool(true))))
	assert.Equal(t, "flex B", r.Classes())
}

func TestLoadSpecsNullDefaultKeepsOrder(t *testing.T) {
	catalog, err := LoadSpecs(strings.NewReader(`
box:
  base: base
  variants:
    a: {y: A}
    b: {x: B}
  defaultVariants:
    a: ~
    b: x
`))
	require.NoError(t, err)

	box, _ := catalog.Lookup("box")
	assert.Equal(t, "base A B", New(box).Classes(Pick("a", Is("y"))))
	assert.Equal(t, "base B", New(box).Classes())
}

func TestLoadSpecsEmpty(t *testing.T) {
	catalog, err := LoadSpecs(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, catalog)
}

func TestLoadSpecsErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "top level list", doc: "- a\n- b\n"},
		{name: "variants as list", doc: "c:\n  variants: [a, b]\n"},
		{name: "class as mapping", doc: "c:\n  variants:\n    size:\n      small: { a: b }\n"},
		{name: "responsive as mapping", doc: "c:\n  responsiveVariants: { a: b }\n"},
		{name: "responsive as word", doc: "c:\n  responsiveVariants: maybe\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSpecs(strings.NewReader(tt.doc))
			require.Error(t, err)
		})
	}
}

func TestPropsUnmarshal(t *testing.T) {
	doc := `
padding: { xs: small, md: large }
color: red
isActive: true
size: ~
className: mt-4
iconClassName: h-4
`
	var props Props
	require.NoError(t, yaml.Unmarshal([]byte(doc), &props))

	assert.Equal(t, "mt-4", props.ClassName)
	assert.Equal(t, map[string]string{"icon": "h-4"}, props.ClassNames)
	require.Len(t, props.Variants, 4)

	padding := props.Variants[0]
	assert.Equal(t, "padding", padding.Group)
	assert.True(t, padding.Value.IsResponsive())
	assert.Equal(t, []Point{{XS, "small"}, {MD, "large"}}, padding.Value.Points())

	active, _ := props.Variants[2].Value.Scalar()
	assert.Equal(t, "true", active)

	assert.True(t, props.Variants[3].Value.IsUnset())
}

func TestResponsiveUnmarshal(t *testing.T) {
	tests := []struct {
		doc     string
		enabled bool
		all     bool
		groups  []string
	}{
		{doc: "true", enabled: true, all: true},
		{doc: "false"},
		{doc: "[padding, color]", enabled: true, groups: []string{"padding", "color"}},
		{doc: "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			var r Responsive
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &r))
			assert.Equal(t, tt.enabled, r.Enabled())
			assert.Equal(t, tt.all, r.All())
			assert.Equal(t, tt.groups, r.Groups())
		})
	}
}
