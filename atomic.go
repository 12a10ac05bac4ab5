// Package atomic composes CSS class strings from declarative variant specs.
//
// A Spec describes a component's base classes, named variant groups and their
// class fragments, default selections, and which groups may be set per
// responsive breakpoint. Composing a Spec yields a Resolver that turns a
// call-time selection into a single, order-stable class string.
//
// # Composition
//
//	button := atomic.New(atomic.Spec{
//		Base:     "text-center",
//		Override: "font-bold",
//		Variants: atomic.Variants{
//			{Name: "size", Values: []atomic.Variant{{Value: "small", Class: "text-sm"}}},
//			{Name: "color", Values: []atomic.Variant{{Value: "red", Class: "text-red-500"}}},
//		},
//	})
//	button.Classes(atomic.Pick("size", atomic.Is("small")), atomic.Pick("color", atomic.Is("red")))
//	// "text-center text-sm text-red-500 font-bold"
//
// # Ordering
//
// Output order is the only precedence mechanism: base, then variant fragments
// in merged selection order (defaults first), then override, then className.
// Nothing is deduplicated or reordered.
//
// # Responsive variants
//
// Groups made eligible with ResponsiveAll or ResponsiveOnly accept a
// per-breakpoint value built with At. The xs breakpoint is emitted unprefixed;
// every other breakpoint prefixes its fragment with "{bp}:".
//
// # Finalize
//
// A Composer carries one optional post-processing hook applied to every
// resolved string. It is injected with WithFinalize; New uses the identity.
//
// # Build tooling
//
// Safelist expands a Spec into every responsive class it can emit so build
// tooling can embed it behind a marker comment. See cmd/atomic for the
// generate and extract commands.
package atomic
