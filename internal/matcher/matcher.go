// Package matcher implements first-order pattern matching with logic
// variable bindings (C4, spec §4.4).
package matcher

import "github.com/frexsdev/noq/internal/expr"

// Match attempts to match pattern against value, returning the resulting
// bindings on success. Binding side effects performed during a partial
// match are not rolled back on a later mismatch (spec §4.4); callers
// discard the returned bindings when ok is false.
func Match(pattern, value expr.Expr) (expr.Bindings, bool) {
	bindings := expr.Bindings{}
	ok := match(pattern, value, bindings)
	return bindings, ok
}

func match(pattern, value expr.Expr, bindings expr.Bindings) bool {
	switch p := pattern.(type) {
	case *expr.Sym:
		v, ok := value.(*expr.Sym)
		return ok && v.Name == p.Name

	case *expr.Var:
		if p.IsWildcard() {
			return true
		}
		if bound, ok := bindings[p.Name]; ok {
			return bound.Equal(value)
		}
		bindings[p.Name] = value
		return true

	case *expr.Op:
		v, ok := value.(*expr.Op)
		return ok && v.Kind == p.Kind &&
			match(p.Lhs, v.Lhs, bindings) && match(p.Rhs, v.Rhs, bindings)

	case *expr.Fun:
		v, ok := value.(*expr.Fun)
		if !ok || len(v.Args) != len(p.Args) || !match(p.Head, v.Head, bindings) {
			return false
		}
		for i, arg := range p.Args {
			if !match(arg, v.Args[i], bindings) {
				return false
			}
		}
		return true

	default:
		return false
	}
}
