package annotate

import (
	"fmt"
	"strings"

	atomic "github.com/yacobolo/atomic-variants"
)

// Check returns static warnings for a definition. The resolver never
// enforces any of them.
func Check(def Definition) []string {
	var warnings []string
	warn := func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf("%s: %s", label(def), fmt.Sprintf(format, args...)))
	}

	spec := def.Spec
	for _, group := range spec.Required {
		if _, ok := spec.Variants.Group(group); !ok {
			warn("required group %q is not declared", group)
		}
	}

	for _, choice := range spec.DefaultVariants {
		group, ok := spec.Variants.Group(choice.Group)
		if !ok {
			warn("default for unknown group %q", choice.Group)
			continue
		}
		if value, ok := choice.Value.Scalar(); ok {
			if _, found := group.Lookup(value); !found {
				warn("default %q is not a value of group %q", value, choice.Group)
			}
		}
	}

	for _, group := range spec.Responsive.Groups() {
		if _, ok := spec.Variants.Group(group); !ok {
			warn("responsive group %q is not declared", group)
		}
	}

	if spec.Responsive.Enabled() && len(spec.Variants) == 0 {
		warn("responsive variants enabled without a variant table")
	}

	for _, size := range spec.ResponsiveSizes {
		if !knownBreakpoint(size) {
			warn("unknown breakpoint %q", size)
		}
	}

	for _, group := range spec.Variants {
		for _, v := range group.Values {
			if strings.Contains(v.Class, "*") {
				warn("class %q in group %q contains '*' and cannot be carried by a marker", v.Class, group.Name)
			}
		}
	}

	return warnings
}

func knownBreakpoint(b atomic.Breakpoint) bool {
	for _, known := range atomic.Breakpoints {
		if b == known {
			return true
		}
	}
	return false
}

func label(def Definition) string {
	name := def.Name
	if name == "" {
		name = "anonymous spec"
	}
	if pos := def.Pos(); pos != "" {
		return name + " (" + pos + ")"
	}
	return name
}
