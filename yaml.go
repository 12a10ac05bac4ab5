package atomic

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Spec files keep declaration order, which decides output order, so every
// mapping here is walked as a yaml.Node instead of decoded into a Go map.
//
//	button:
//	  base: text-center
//	  variants:
//	    size: { small: text-sm, large: text-lg }
//	    disabled: { true: opacity-50, false: "" }
//	  defaultVariants: { size: small }
//	  responsiveVariants: [size]

// Component is a named spec from a spec file
type Component struct {
	Name string
	Spec Spec
}

// Catalog holds a spec file's components in document order
type Catalog []Component

// Lookup returns the spec for the named component
func (c Catalog) Lookup(name string) (Spec, bool) {
	for _, comp := range c {
		if comp.Name == name {
			return comp.Spec, true
		}
	}
	return Spec{}, false
}

// Names returns component names in document order
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, comp := range c {
		names = append(names, comp.Name)
	}
	return names
}

// LoadSpecs decodes a spec file. An empty document yields an empty catalog.
func LoadSpecs(r io.Reader) (Catalog, error) {
	var catalog Catalog
	if err := yaml.NewDecoder(r).Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, nil
		}
		return nil, fmt.Errorf("decode specs: %w", err)
	}
	return catalog, nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (c *Catalog) UnmarshalYAML(node *yaml.Node) error {
	out := Catalog{}
	err := eachPair(node, "components", func(key string, value *yaml.Node) error {
		var spec Spec
		if err := value.Decode(&spec); err != nil {
			return fmt.Errorf("component %q: %w", key, err)
		}
		out = append(out, Component{Name: key, Spec: spec})
		return nil
	})
	if err != nil {
		return err
	}
	*c = out
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *Spec) UnmarshalYAML(node *yaml.Node) error {
	var spec Spec
	err := eachPair(node, "spec", func(key string, value *yaml.Node) error {
		switch key {
		case "base":
			return value.Decode(&spec.Base)
		case "override":
			return value.Decode(&spec.Override)
		case "variants":
			if isNull(value) {
				return nil
			}
			return value.Decode(&spec.Variants)
		case "defaultVariants":
			return value.Decode(&spec.DefaultVariants)
		case "responsiveVariants":
			return value.Decode(&spec.Responsive)
		case "responsiveSizes":
			var sizes []string
			if err := value.Decode(&sizes); err != nil {
				return err
			}
			for _, size := range sizes {
				spec.ResponsiveSizes = append(spec.ResponsiveSizes, Breakpoint(size))
			}
			return nil
		case "required":
			return value.Decode(&spec.Required)
		}
		// Unknown keys are tolerated
		return nil
	})
	if err != nil {
		return err
	}
	*s = spec
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler
func (vs *Variants) UnmarshalYAML(node *yaml.Node) error {
	out := Variants{}
	err := eachPair(node, "variants", func(name string, values *yaml.Node) error {
		group := Group{Name: name}
		if isNull(values) {
			out = append(out, group)
			return nil
		}
		err := eachPair(values, "variant group "+name, func(value string, class *yaml.Node) error {
			if isNull(class) {
				group.Values = append(group.Values, Variant{Value: value})
				return nil
			}
			if class.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: class for %s.%s must be a string", class.Line, name, value)
			}
			group.Values = append(group.Values, Variant{Value: value, Class: class.Value})
			return nil
		})
		if err != nil {
			return err
		}
		out = append(out, group)
		return nil
	})
	if err != nil {
		return err
	}
	*vs = out
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Accepts a bool or a list of group names.
func (r *Responsive) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if isNull(node) {
			*r = Responsive{}
			return nil
		}
		var all bool
		if err := node.Decode(&all); err != nil {
			return fmt.Errorf("line %d: responsiveVariants must be a bool or a list", node.Line)
		}
		if all {
			*r = ResponsiveAll()
		} else {
			*r = Responsive{}
		}
		return nil
	case yaml.SequenceNode:
		var groups []string
		if err := node.Decode(&groups); err != nil {
			return err
		}
		*r = ResponsiveOnly(groups...)
		return nil
	}
	return fmt.Errorf("line %d: responsiveVariants must be a bool or a list", node.Line)
}

// UnmarshalYAML implements yaml.Unmarshaler. Null stays unset, a mapping is
// a per-breakpoint value, any other scalar is taken literally.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		if isNull(node) {
			*v = Unset()
			return nil
		}
		*v = Is(scalarText(node))
		return nil
	case yaml.MappingNode:
		var points []Point
		err := eachPair(node, "responsive value", func(bp string, value *yaml.Node) error {
			if isNull(value) {
				return nil
			}
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("line %d: breakpoint %s must map to a variant value", value.Line, bp)
			}
			points = append(points, Point{Breakpoint: Breakpoint(bp), Value: scalarText(value)})
			return nil
		})
		if err != nil {
			return err
		}
		*v = At(points...)
		return nil
	}
	return fmt.Errorf("line %d: variant value must be a scalar or a breakpoint mapping", node.Line)
}

// UnmarshalYAML implements yaml.Unmarshaler
func (s *Selection) UnmarshalYAML(node *yaml.Node) error {
	out := Selection{}
	err := eachPair(node, "selection", func(group string, value *yaml.Node) error {
		var v Value
		if err := value.Decode(&v); err != nil {
			return err
		}
		out = append(out, Choice{Group: group, Value: v})
		return nil
	})
	if err != nil {
		return err
	}
	*s = out
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler. "className" and "{group}ClassName"
// keys are split out of the variant selection.
func (p *Props) UnmarshalYAML(node *yaml.Node) error {
	var props Props
	err := eachPair(node, "props", func(key string, value *yaml.Node) error {
		switch {
		case key == "className":
			return value.Decode(&props.ClassName)
		case strings.HasSuffix(key, "ClassName"):
			var class string
			if err := value.Decode(&class); err != nil {
				return err
			}
			if props.ClassNames == nil {
				props.ClassNames = make(map[string]string)
			}
			props.ClassNames[strings.TrimSuffix(key, "ClassName")] = class
			return nil
		}
		var v Value
		if err := value.Decode(&v); err != nil {
			return err
		}
		props.Variants = append(props.Variants, Choice{Group: key, Value: v})
		return nil
	})
	if err != nil {
		return err
	}
	*p = props
	return nil
}

// eachPair walks a mapping node in document order
func eachPair(node *yaml.Node, what string, fn func(key string, value *yaml.Node) error) error {
	node = resolveAlias(node)
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = resolveAlias(node.Content[0])
	}
	if isNull(node) {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: %s must be a mapping", node.Line, what)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolveAlias(node.Content[i])
		if err := fn(scalarText(key), resolveAlias(node.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

// scalarText returns the scalar's text, spelling booleans the way boolean
// variant groups are keyed ("true", "false")
func scalarText(node *yaml.Node) string {
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!bool" {
		var b bool
		if err := node.Decode(&b); err == nil {
			return strconv.FormatBool(b)
		}
	}
	return node.Value
}

func isNull(node *yaml.Node) bool {
	return node == nil || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}
