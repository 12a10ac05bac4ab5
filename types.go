package atomic

import "slices"

// Breakpoint is a responsive size token
type Breakpoint string

// Breakpoint tokens. XS is the implicit default and is never prefixed.
const (
	XS  Breakpoint = "xs"
	SM  Breakpoint = "sm"
	MD  Breakpoint = "md"
	LG  Breakpoint = "lg"
	XL  Breakpoint = "xl"
	XXL Breakpoint = "2xl"
)

// Breakpoints lists every token from smallest to largest
var Breakpoints = []Breakpoint{XS, SM, MD, LG, XL, XXL}

// Prefix returns the class prefix for the breakpoint ("" for xs, "md:" for md)
func (b Breakpoint) Prefix() string {
	if b == XS {
		return ""
	}
	return string(b) + ":"
}

// Variant maps one variant value to its class fragment
type Variant struct {
	Value string // "small", "true"
	Class string // "text-sm"
}

// Group is a named variant group with its values in declaration order
type Group struct {
	Name   string
	Values []Variant
}

// Lookup returns the class fragment for value
func (g Group) Lookup(value string) (string, bool) {
	for _, v := range g.Values {
		if v.Value == value {
			return v.Class, true
		}
	}
	return "", false
}

// Variants is the variant table in declaration order.
// A nil table means the spec declares no variants at all.
type Variants []Group

// Group returns the group named name
func (vs Variants) Group(name string) (Group, bool) {
	for _, g := range vs {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Lookup returns the class fragment for group/value
func (vs Variants) Lookup(group, value string) (string, bool) {
	g, ok := vs.Group(group)
	if !ok {
		return "", false
	}
	return g.Lookup(value)
}

// Names returns the group names in declaration order
func (vs Variants) Names() []string {
	names := make([]string, 0, len(vs))
	for _, g := range vs {
		names = append(names, g.Name)
	}
	return names
}

// Responsive selects which groups accept per-breakpoint values.
// The zero value disables responsive mode.
type Responsive struct {
	all    bool
	groups []string
}

// ResponsiveAll makes every group responsive
func ResponsiveAll() Responsive {
	return Responsive{all: true}
}

// ResponsiveOnly makes only the named groups responsive
func ResponsiveOnly(groups ...string) Responsive {
	if len(groups) == 0 {
		return Responsive{}
	}
	return Responsive{groups: slices.Clone(groups)}
}

// All reports whether every group is responsive
func (r Responsive) All() bool { return r.all }

// Groups returns the explicit group list (nil for ResponsiveAll or disabled)
func (r Responsive) Groups() []string { return slices.Clone(r.groups) }

// Enabled reports whether any group can be responsive
func (r Responsive) Enabled() bool {
	return r.all || len(r.groups) > 0
}

// Eligible reports whether group accepts a per-breakpoint value
func (r Responsive) Eligible(group string) bool {
	if r.all {
		return true
	}
	return slices.Contains(r.groups, group)
}

// Point is one breakpoint entry of a responsive value
type Point struct {
	Breakpoint Breakpoint
	Value      string
}

type valueKind uint8

const (
	kindUnset valueKind = iota
	kindScalar
	kindResponsive
)

// Value is a call-time variant selection: a scalar, a per-breakpoint
// mapping, or unset. The zero Value is unset and is dropped before merging.
type Value struct {
	kind   valueKind
	scalar string
	points []Point
}

// Is selects a single variant value
func Is(value string) Value {
	return Value{kind: kindScalar, scalar: value}
}

// Bool selects a boolean variant. Boolean groups are keyed "true" and "false".
func Bool(b bool) Value {
	if b {
		return Is("true")
	}
	return Is("false")
}

// At selects per-breakpoint values, emitted in the order given
func At(points ...Point) Value {
	return Value{kind: kindResponsive, points: slices.Clone(points)}
}

// Unset returns the undefined value
func Unset() Value { return Value{} }

// IsUnset reports whether the value is undefined
func (v Value) IsUnset() bool { return v.kind == kindUnset }

// IsResponsive reports whether the value is a per-breakpoint mapping
func (v Value) IsResponsive() bool { return v.kind == kindResponsive }

// Scalar returns the scalar value
func (v Value) Scalar() (string, bool) {
	return v.scalar, v.kind == kindScalar
}

// Points returns the per-breakpoint entries
func (v Value) Points() []Point { return slices.Clone(v.points) }

// Choice pairs a group name with a selected value
type Choice struct {
	Group string
	Value Value
}

// Pick builds a Choice
func Pick(group string, value Value) Choice {
	return Choice{Group: group, Value: value}
}

// Selection is an ordered list of choices
type Selection []Choice

// Get returns the last value chosen for group
func (s Selection) Get(group string) (Value, bool) {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].Group == group {
			return s[i].Value, true
		}
	}
	return Value{}, false
}

// Props is the call-time argument of a Resolver
type Props struct {
	Variants  Selection
	ClassName string // appended last

	// ClassNames holds per-group "{group}ClassName" entries. They are carried
	// for callers that forward them to child elements and never resolved.
	ClassNames map[string]string
}

// Finalizer post-processes a resolved class string
type Finalizer func(string) string

// Spec is the static description of a component's classes
type Spec struct {
	Base            string
	Override        string
	Variants        Variants
	DefaultVariants Selection
	Responsive      Responsive

	// ResponsiveSizes limits the breakpoints Safelist expands to.
	// Empty means Breakpoints. Resolution ignores it.
	ResponsiveSizes []Breakpoint

	// Required lists groups callers must set. It is a static contract for
	// tooling (see internal/annotate) and is never checked at resolve time.
	Required []string
}
