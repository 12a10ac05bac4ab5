package atomic

import (
	"slices"
	"strings"
)

// Composer builds resolvers that share one finalize hook
type Composer struct {
	finalize Finalizer
}

// Option configures a Composer
type Option func(*Composer)

// WithFinalize sets the hook applied to every resolved string.
// A nil hook leaves the identity in place.
func WithFinalize(f Finalizer) Option {
	return func(c *Composer) {
		if f != nil {
			c.finalize = f
		}
	}
}

// NewComposer creates a Composer. Without options it finalizes with the identity.
func NewComposer(opts ...Option) *Composer {
	c := &Composer{finalize: identity}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func identity(s string) string { return s }

var defaultComposer = NewComposer()

// New composes spec with the identity finalize hook
func New(spec Spec) *Resolver {
	return defaultComposer.Compose(spec)
}

// Compose returns a resolver for spec. The spec is copied; later changes to
// the caller's slices do not affect the resolver.
func (c *Composer) Compose(spec Spec) *Resolver {
	return &Resolver{
		spec:     cloneSpec(spec),
		finalize: c.finalize,
	}
}

// Resolver maps call-time props to a class string. It holds no mutable
// state and is safe for concurrent use.
type Resolver struct {
	spec     Spec
	finalize Finalizer
}

// Spec returns a copy of the spec the resolver was composed from
func (r *Resolver) Spec() Spec {
	return cloneSpec(r.spec)
}

// Classes resolves a selection with no className
func (r *Resolver) Classes(choices ...Choice) string {
	return r.Resolve(Props{Variants: choices})
}

// Resolve builds the class string for props.
//
// Order: base, variant fragments in merged order, override, className.
// Unknown groups, unknown values and per-breakpoint values on groups that
// are not responsive produce nothing. A spec without a variant table
// returns the trimmed base and skips the finalize hook.
func (r *Resolver) Resolve(props Props) string {
	spec := r.spec
	classes := []string{spec.Base}

	if spec.Variants == nil {
		return strings.TrimSpace(strings.Join(classes, " "))
	}

	for _, choice := range mergeSelections(spec.DefaultVariants, props.Variants) {
		if choice.Value.IsUnset() {
			continue
		}
		group, ok := spec.Variants.Group(choice.Group)
		if !ok {
			continue
		}

		if choice.Value.IsResponsive() {
			if !spec.Responsive.Eligible(choice.Group) {
				continue
			}
			for _, p := range choice.Value.points {
				// A miss is omitted like on the scalar path
				if class, ok := group.Lookup(p.Value); ok && class != "" {
					classes = append(classes, p.Breakpoint.Prefix()+class)
				}
			}
			continue
		}

		if class, ok := group.Lookup(choice.Value.scalar); ok && class != "" {
			classes = append(classes, class)
		}
	}

	if spec.Override != "" {
		classes = append(classes, spec.Override)
	}

	if props.ClassName != "" {
		classes = append(classes, props.ClassName)
	}

	return r.finalize(strings.TrimSpace(strings.Join(classes, " ")))
}

// mergeSelections overlays selected on defaults. Groups keep the position of
// their first appearance and take the value of their last one. An unset
// default still holds its group's position; unset selected values are
// dropped so they never shadow a default.
func mergeSelections(defaults, selected Selection) []Choice {
	merged := make([]Choice, 0, len(defaults)+len(selected))
	index := make(map[string]int, len(defaults)+len(selected))

	put := func(c Choice) {
		if i, ok := index[c.Group]; ok {
			merged[i].Value = c.Value
			return
		}
		index[c.Group] = len(merged)
		merged = append(merged, c)
	}

	for _, c := range defaults {
		put(c)
	}
	for _, c := range selected {
		if !c.Value.IsUnset() {
			put(c)
		}
	}

	return merged
}

func cloneSpec(s Spec) Spec {
	out := s
	if s.Variants != nil {
		out.Variants = make(Variants, len(s.Variants))
		for i, g := range s.Variants {
			out.Variants[i] = Group{Name: g.Name, Values: slices.Clone(g.Values)}
		}
	}
	out.DefaultVariants = slices.Clone(s.DefaultVariants)
	out.ResponsiveSizes = slices.Clone(s.ResponsiveSizes)
	out.Required = slices.Clone(s.Required)
	return out
}
