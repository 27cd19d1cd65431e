// Package rewrite drives a rule against an expression under a traversal
// strategy (C7, spec §4.7), including the built-in replace meta-rule.
package rewrite

import (
	"github.com/frexsdev/noq/internal/diagnostics"
	"github.com/frexsdev/noq/internal/expr"
	"github.com/frexsdev/noq/internal/matcher"
	"github.com/frexsdev/noq/internal/rule"
	"github.com/frexsdev/noq/internal/strategy"
	"github.com/frexsdev/noq/internal/subst"
	"github.com/frexsdev/noq/internal/token"
)

// replacePattern is the fixed shape the Replace meta-rule matches against:
// apply_rule(Strategy, Head, Body, Expr).
var replacePattern = &expr.Fun{
	Head: &expr.Sym{Name: "apply_rule"},
	Args: []expr.Expr{
		&expr.Var{Name: "Strategy"},
		&expr.Var{Name: "Head"},
		&expr.Var{Name: "Body"},
		&expr.Var{Name: "Expr"},
	},
}

// Apply drives r against e under strat, returning the rewritten
// expression. strat must be a freshly constructed instance: its state is
// mutated across the traversal of a single Apply call.
func Apply(r rule.Rule, e expr.Expr, strat strategy.Strategy, loc token.Loc) (expr.Expr, error) {
	result, _, err := applyImpl(r, e, strat, loc)
	return result, err
}

// applyImpl returns the rewritten expression and whether traversal should
// halt immediately (spec §4.7).
func applyImpl(r rule.Rule, e expr.Expr, strat strategy.Strategy, loc token.Loc) (expr.Expr, bool, error) {
	if _, isReplace := r.(rule.Replace); isReplace {
		return applyReplaceSite(e, strat, loc)
	}

	user := r.(*rule.User)
	bindings, ok := matcher.Match(user.Head, e)
	if !ok {
		return applyToSubexprs(r, e, strat, loc)
	}

	resolution := strat.Matched()
	var newExpr expr.Expr
	if resolution.Action == strategy.Apply {
		newExpr = subst.Substitute(bindings, user.Body)
	} else {
		newExpr = e
	}

	switch resolution.State {
	case strategy.Bail:
		return newExpr, false, nil
	case strategy.Cont:
		return applyToSubexprs(r, newExpr, strat, loc)
	default: // Halt
		return newExpr, true, nil
	}
}

// applyReplaceSite handles a single match site while rule == Replace. A
// match against the fixed apply_rule(...) pattern is never routed through
// the outer strategy (spec §4.7: "the outer strategy sees this as a
// non-matching node") — it is unconditionally executed and never halts
// the outer traversal.
func applyReplaceSite(e expr.Expr, strat strategy.Strategy, loc token.Loc) (expr.Expr, bool, error) {
	bindings, ok := matcher.Match(replacePattern, e)
	if !ok {
		return applyToSubexprs(rule.Replace{}, e, strat, loc)
	}

	strategySym, ok := bindings["Strategy"].(*expr.Sym)
	if !ok {
		return nil, false, diagnostics.New(diagnostics.ErrStrategyIsNotSym, loc, bindings["Strategy"])
	}
	freshStrategy, err := strategy.Resolve(strategySym.Name, loc)
	if err != nil {
		return nil, false, err
	}

	synthetic := &rule.User{Head: bindings["Head"], Body: bindings["Body"]}
	newExpr, err := Apply(synthetic, bindings["Expr"], freshStrategy, loc)
	if err != nil {
		return nil, false, err
	}
	return newExpr, false, nil
}

// applyToSubexprs implements traversal rule 2 of spec §4.7, including the
// deliberate halt asymmetry between Op and Fun: a halt inside one of Fun's
// arguments stops scanning the remaining arguments (which are cloned
// unchanged) but is NOT propagated to the caller, whereas a halt on Op's
// lhs IS propagated and short-circuits the rhs.
func applyToSubexprs(r rule.Rule, e expr.Expr, strat strategy.Strategy, loc token.Loc) (expr.Expr, bool, error) {
	switch n := e.(type) {
	case *expr.Sym, *expr.Var:
		return e, false, nil

	case *expr.Op:
		newLhs, halt, err := applyImpl(r, n.Lhs, strat, loc)
		if err != nil {
			return nil, false, err
		}
		if halt {
			return &expr.Op{Kind: n.Kind, Lhs: newLhs, Rhs: n.Rhs}, true, nil
		}
		newRhs, halt, err := applyImpl(r, n.Rhs, strat, loc)
		if err != nil {
			return nil, false, err
		}
		return &expr.Op{Kind: n.Kind, Lhs: newLhs, Rhs: newRhs}, halt, nil

	case *expr.Fun:
		newHead, halt, err := applyImpl(r, n.Head, strat, loc)
		if err != nil {
			return nil, false, err
		}
		if halt {
			return &expr.Fun{Head: newHead, Args: cloneArgs(n.Args)}, true, nil
		}

		newArgs := make([]expr.Expr, len(n.Args))
		haltedArgs := false
		for i, arg := range n.Args {
			if haltedArgs {
				newArgs[i] = arg
				continue
			}
			newArg, h, err := applyImpl(r, arg, strat, loc)
			if err != nil {
				return nil, false, err
			}
			newArgs[i] = newArg
			haltedArgs = h
		}
		return &expr.Fun{Head: newHead, Args: newArgs}, false, nil

	default:
		return e, false, nil
	}
}

func cloneArgs(args []expr.Expr) []expr.Expr {
	out := make([]expr.Expr, len(args))
	copy(out, args)
	return out
}
