// Package subst implements capture-free substitution (C5, spec §4.5).
package subst

import "github.com/frexsdev/noq/internal/expr"

// Substitute rebuilds e, replacing each Var present in bindings with its
// bound Expr and leaving unbound variables unchanged. No variable capture
// can occur: the language has no binders.
func Substitute(bindings expr.Bindings, e expr.Expr) expr.Expr {
	switch n := e.(type) {
	case *expr.Sym:
		return n

	case *expr.Var:
		if value, ok := bindings[n.Name]; ok {
			return value
		}
		return n

	case *expr.Op:
		return &expr.Op{
			Kind: n.Kind,
			Lhs:  Substitute(bindings, n.Lhs),
			Rhs:  Substitute(bindings, n.Rhs),
		}

	case *expr.Fun:
		newArgs := make([]expr.Expr, len(n.Args))
		for i, arg := range n.Args {
			newArgs[i] = Substitute(bindings, arg)
		}
		return &expr.Fun{
			Head: Substitute(bindings, n.Head),
			Args: newArgs,
		}

	default:
		return e
	}
}
