package atomic

// Safelist lists every class the spec's responsive groups can emit, for build
// tools that must keep generated classes alive (purge allow-lists).
//
// Eligible groups are taken in declaration order for ResponsiveAll and in
// list order for ResponsiveOnly; listed names without a group are skipped.
// The result is size-major over ResponsiveSizes (Breakpoints when empty),
// using the same prefixes Resolve emits, so xs classes carry no "xs:" prefix.
// It is nil when no group is eligible.
func Safelist(spec Spec) []string {
	var classes []string
	for _, g := range responsiveGroups(spec) {
		for _, v := range g.Values {
			if v.Class != "" {
				classes = append(classes, v.Class)
			}
		}
	}
	if len(classes) == 0 {
		return nil
	}

	sizes := spec.ResponsiveSizes
	if len(sizes) == 0 {
		sizes = Breakpoints
	}

	out := make([]string, 0, len(sizes)*len(classes))
	for _, size := range sizes {
		for _, class := range classes {
			out = append(out, size.Prefix()+class)
		}
	}
	return out
}

func responsiveGroups(spec Spec) []Group {
	if spec.Responsive.all {
		return spec.Variants
	}

	var groups []Group
	for _, name := range spec.Responsive.groups {
		if g, ok := spec.Variants.Group(name); ok {
			groups = append(groups, g)
		}
	}
	return groups
}
