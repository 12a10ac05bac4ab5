// Package annotate finds Spec literals in Go source, checks their static
// contract and generates a Go file that carries each definition's safelist
// as a marker comment.
package annotate

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"strconv"

	"github.com/bmatcuk/doublestar/v4"
	atomic "github.com/yacobolo/atomic-variants"
)

// ImportPath is the import path of the engine package
const ImportPath = "github.com/yacobolo/atomic-variants"

// Definition is one component spec found in source or a catalog
type Definition struct {
	Name string // enclosing var, assignment or func name; "" when anonymous
	File string
	Line int
	Spec atomic.Spec
}

// Pos returns "file:line"
func (d Definition) Pos() string {
	if d.Line == 0 {
		return d.File
	}
	return fmt.Sprintf("%s:%d", d.File, d.Line)
}

// ParseFiles parses every Go file matching patterns. Files that fail to
// read or parse become warnings.
func ParseFiles(patterns []string) ([]Definition, []string, error) {
	var defs []Definition
	var warnings []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true

			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}

			// #nosec G304 - paths come from configured globs
			src, err := os.ReadFile(match)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("Failed to read %s: %v", match, err))
				continue
			}

			found, err := ParseSource(match, src)
			if err != nil {
				warnings = append(warnings, fmt.Sprintf("Failed to parse %s: %v", match, err))
				continue
			}
			defs = append(defs, found...)
		}
	}

	return defs, warnings, nil
}

// ParseSource returns the Spec composite literals in src. Only literal
// parts are read; anything computed at run time is left at its zero value.
func ParseSource(filename string, src []byte) ([]Definition, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.SkipObjectResolution)
	if err != nil {
		return nil, err
	}

	alias, ok := engineAlias(file)
	if !ok {
		return nil, nil
	}
	r := reader{alias: alias}
	names := r.enclosingNames(file)

	var defs []Definition
	ast.Inspect(file, func(n ast.Node) bool {
		lit, ok := n.(*ast.CompositeLit)
		if !ok || !r.isSpec(lit) {
			return true
		}
		pos := fset.Position(lit.Pos())
		defs = append(defs, Definition{
			Name: names[lit],
			File: pos.Filename,
			Line: pos.Line,
			Spec: r.spec(lit),
		})
		return false
	})

	return defs, nil
}

// engineAlias returns the name the file refers to the engine by. An empty
// alias means identifiers are unqualified (dot import or the package itself).
func engineAlias(file *ast.File) (string, bool) {
	for _, imp := range file.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil || path != ImportPath {
			continue
		}
		if imp.Name == nil {
			return "atomic", true
		}
		switch imp.Name.Name {
		case "_":
			return "", false
		case ".":
			return "", true
		}
		return imp.Name.Name, true
	}

	if file.Name.Name == "atomic" {
		return "", true
	}
	return "", false
}

// Positional field orders for unkeyed literals
var (
	specFields    = []string{"Base", "Override", "Variants", "DefaultVariants", "Responsive", "ResponsiveSizes", "Required"}
	groupFields   = []string{"Name", "Values"}
	variantFields = []string{"Value", "Class"}
	choiceFields  = []string{"Group", "Value"}
	pointFields   = []string{"Breakpoint", "Value"}
)

var breakpointIdents = map[string]atomic.Breakpoint{
	"XS":  atomic.XS,
	"SM":  atomic.SM,
	"MD":  atomic.MD,
	"LG":  atomic.LG,
	"XL":  atomic.XL,
	"XXL": atomic.XXL,
}

type reader struct {
	alias string
}

// ref reports whether expr names the engine identifier name
func (r reader) ref(expr ast.Expr, name string) bool {
	switch e := expr.(type) {
	case *ast.Ident:
		return r.alias == "" && e.Name == name
	case *ast.SelectorExpr:
		x, ok := e.X.(*ast.Ident)
		return ok && r.alias != "" && x.Name == r.alias && e.Sel.Name == name
	}
	return false
}

// engineName returns the engine identifier expr refers to
func (r reader) engineName(expr ast.Expr) (string, bool) {
	switch e := expr.(type) {
	case *ast.Ident:
		return e.Name, r.alias == ""
	case *ast.SelectorExpr:
		x, ok := e.X.(*ast.Ident)
		if ok && r.alias != "" && x.Name == r.alias {
			return e.Sel.Name, true
		}
	}
	return "", false
}

func (r reader) isSpec(lit *ast.CompositeLit) bool {
	return lit.Type != nil && r.ref(lit.Type, "Spec")
}

// enclosingNames maps each Spec literal to the declaration holding it.
// Variable and assignment names take precedence over function names.
func (r reader) enclosingNames(file *ast.File) map[*ast.CompositeLit]string {
	names := make(map[*ast.CompositeLit]string)
	bind := func(name string, node ast.Node) {
		if name == "_" || node == nil {
			return
		}
		ast.Inspect(node, func(n ast.Node) bool {
			lit, ok := n.(*ast.CompositeLit)
			if !ok || !r.isSpec(lit) {
				return true
			}
			if _, seen := names[lit]; !seen {
				names[lit] = name
			}
			return false
		})
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.ValueSpec:
			for i, id := range n.Names {
				if i < len(n.Values) {
					bind(id.Name, n.Values[i])
				}
			}
		case *ast.AssignStmt:
			if len(n.Lhs) != len(n.Rhs) {
				break
			}
			for i, lhs := range n.Lhs {
				if id, ok := lhs.(*ast.Ident); ok {
					bind(id.Name, n.Rhs[i])
				}
			}
		}
		return true
	})

	for _, decl := range file.Decls {
		if fn, ok := decl.(*ast.FuncDecl); ok && fn.Body != nil {
			bind(fn.Name.Name, fn.Body)
		}
	}

	return names
}

func (r reader) spec(lit *ast.CompositeLit) atomic.Spec {
	var s atomic.Spec
	for i, elt := range lit.Elts {
		key, value := field(elt, i, specFields)
		switch key {
		case "Base":
			s.Base, _ = stringOf(value)
		case "Override":
			s.Override, _ = stringOf(value)
		case "Variants":
			s.Variants = r.variants(value)
		case "DefaultVariants":
			s.DefaultVariants = r.selection(value)
		case "Responsive":
			s.Responsive = r.responsive(value)
		case "ResponsiveSizes":
			s.ResponsiveSizes = r.breakpoints(value)
		case "Required":
			s.Required = stringList(value)
		}
	}
	return s
}

func (r reader) variants(expr ast.Expr) atomic.Variants {
	lit, ok := unparen(expr).(*ast.CompositeLit)
	if !ok {
		return nil
	}

	vs := atomic.Variants{}
	for _, elt := range lit.Elts {
		g, ok := unparen(elt).(*ast.CompositeLit)
		if !ok {
			continue
		}
		var group atomic.Group
		for i, e := range g.Elts {
			key, value := field(e, i, groupFields)
			switch key {
			case "Name":
				group.Name, _ = stringOf(value)
			case "Values":
				group.Values = variantValues(value)
			}
		}
		vs = append(vs, group)
	}
	return vs
}

func variantValues(expr ast.Expr) []atomic.Variant {
	lit, ok := unparen(expr).(*ast.CompositeLit)
	if !ok {
		return nil
	}

	values := make([]atomic.Variant, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		v, ok := unparen(elt).(*ast.CompositeLit)
		if !ok {
			continue
		}
		var variant atomic.Variant
		for i, e := range v.Elts {
			key, value := field(e, i, variantFields)
			switch key {
			case "Value":
				variant.Value, _ = stringOf(value)
			case "Class":
				variant.Class, _ = stringOf(value)
			}
		}
		values = append(values, variant)
	}
	return values
}

func (r reader) selection(expr ast.Expr) atomic.Selection {
	lit, ok := unparen(expr).(*ast.CompositeLit)
	if !ok {
		return nil
	}

	var sel atomic.Selection
	for _, elt := range lit.Elts {
		switch e := unparen(elt).(type) {
		case *ast.CallExpr:
			if !r.ref(e.Fun, "Pick") || len(e.Args) != 2 {
				continue
			}
			group, ok := stringOf(e.Args[0])
			if !ok {
				continue
			}
			sel = append(sel, atomic.Pick(group, r.value(e.Args[1])))

		case *ast.CompositeLit:
			var choice atomic.Choice
			for i, kv := range e.Elts {
				key, value := field(kv, i, choiceFields)
				switch key {
				case "Group":
					choice.Group, _ = stringOf(value)
				case "Value":
					choice.Value = r.value(value)
				}
			}
			sel = append(sel, choice)
		}
	}
	return sel
}

// value reads Is, Bool, At and Unset calls. Anything else is unset.
func (r reader) value(expr ast.Expr) atomic.Value {
	call, ok := unparen(expr).(*ast.CallExpr)
	if !ok {
		return atomic.Unset()
	}
	name, ok := r.engineName(call.Fun)
	if !ok {
		return atomic.Unset()
	}

	switch name {
	case "Is":
		if len(call.Args) == 1 {
			if s, ok := stringOf(call.Args[0]); ok {
				return atomic.Is(s)
			}
		}
	case "Bool":
		if len(call.Args) == 1 {
			if id, ok := call.Args[0].(*ast.Ident); ok && (id.Name == "true" || id.Name == "false") {
				return atomic.Bool(id.Name == "true")
			}
		}
	case "At":
		var points []atomic.Point
		for _, arg := range call.Args {
			if p, ok := r.point(arg); ok {
				points = append(points, p)
			}
		}
		return atomic.At(points...)
	}
	return atomic.Unset()
}

func (r reader) point(expr ast.Expr) (atomic.Point, bool) {
	lit, ok := unparen(expr).(*ast.CompositeLit)
	if !ok {
		return atomic.Point{}, false
	}

	var p atomic.Point
	for i, elt := range lit.Elts {
		key, value := field(elt, i, pointFields)
		switch key {
		case "Breakpoint":
			p.Breakpoint, _ = r.breakpoint(value)
		case "Value":
			p.Value, _ = stringOf(value)
		}
	}
	return p, p.Breakpoint != ""
}

func (r reader) responsive(expr ast.Expr) atomic.Responsive {
	call, ok := unparen(expr).(*ast.CallExpr)
	if !ok {
		return atomic.Responsive{}
	}

	switch {
	case r.ref(call.Fun, "ResponsiveAll"):
		return atomic.ResponsiveAll()
	case r.ref(call.Fun, "ResponsiveOnly"):
		groups := make([]string, 0, len(call.Args))
		for _, arg := range call.Args {
			if s, ok := stringOf(arg); ok {
				groups = append(groups, s)
			}
		}
		return atomic.ResponsiveOnly(groups...)
	}
	return atomic.Responsive{}
}

func (r reader) breakpoints(expr ast.Expr) []atomic.Breakpoint {
	lit, ok := unparen(expr).(*ast.CompositeLit)
	if !ok {
		return nil
	}

	var sizes []atomic.Breakpoint
	for _, elt := range lit.Elts {
		if b, ok := r.breakpoint(elt); ok {
			sizes = append(sizes, b)
		}
	}
	return sizes
}

// breakpoint reads atomic.MD, "md" or atomic.Breakpoint("md")
func (r reader) breakpoint(expr ast.Expr) (atomic.Breakpoint, bool) {
	expr = unparen(expr)
	if s, ok := stringOf(expr); ok {
		return atomic.Breakpoint(s), true
	}
	if call, ok := expr.(*ast.CallExpr); ok && r.ref(call.Fun, "Breakpoint") && len(call.Args) == 1 {
		if s, ok := stringOf(call.Args[0]); ok {
			return atomic.Breakpoint(s), true
		}
	}
	if name, ok := r.engineName(expr); ok {
		b, ok := breakpointIdents[name]
		return b, ok
	}
	return "", false
}

// field returns the field name and value of a keyed or positional element
func field(elt ast.Expr, i int, order []string) (string, ast.Expr) {
	if kv, ok := elt.(*ast.KeyValueExpr); ok {
		if id, ok := kv.Key.(*ast.Ident); ok {
			return id.Name, kv.Value
		}
		return "", nil
	}
	if i < len(order) {
		return order[i], elt
	}
	return "", nil
}

// stringOf evaluates string literals and their concatenation
func stringOf(expr ast.Expr) (string, bool) {
	switch e := unparen(expr).(type) {
	case *ast.BasicLit:
		if e.Kind != token.STRING {
			return "", false
		}
		s, err := strconv.Unquote(e.Value)
		return s, err == nil
	case *ast.BinaryExpr:
		if e.Op != token.ADD {
			return "", false
		}
		x, ok := stringOf(e.X)
		if !ok {
			return "", false
		}
		y, ok := stringOf(e.Y)
		return x + y, ok
	}
	return "", false
}

func stringList(expr ast.Expr) []string {
	lit, ok := unparen(expr).(*ast.CompositeLit)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(lit.Elts))
	for _, elt := range lit.Elts {
		if s, ok := stringOf(elt); ok {
			out = append(out, s)
		}
	}
	return out
}

func unparen(expr ast.Expr) ast.Expr {
	for {
		p, ok := expr.(*ast.ParenExpr)
		if !ok {
			return expr
		}
		expr = p.X
	}
}
