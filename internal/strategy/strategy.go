// Package strategy implements the traversal policy consulted at every
// match site during a rewrite (C6, spec §4.6).
package strategy

import (
	"strconv"

	"github.com/frexsdev/noq/internal/diagnostics"
	"github.com/frexsdev/noq/internal/token"
)

// Action says whether a matched site should be rewritten.
type Action int

const (
	Skip Action = iota
	Apply
)

// State says how traversal continues after a matched site is resolved.
type State int

const (
	// Bail: do not descend into the (possibly rewritten) subtree; return up.
	Bail State = iota
	// Cont: continue searching inside the (possibly rewritten) subtree and siblings.
	Cont
	// Halt: terminate the entire rewrite immediately.
	Halt
)

// Resolution is the per-site decision a Strategy returns from Matched.
type Resolution struct {
	Action Action
	State  State
}

// Strategy is a stateful oracle visited once per match site during a
// single Apply call. A fresh instance is used per apply (spec §4.6, §9).
type Strategy interface {
	Matched() Resolution
}

// All rewrites every outermost match, never descending into a just
// produced result.
type All struct{}

func (All) Matched() Resolution { return Resolution{Action: Apply, State: Bail} }

// Deep rewrites every match, including inside results, until a fixpoint
// of this pass (or divergence, if the rule never stops matching).
type Deep struct{}

func (Deep) Matched() Resolution { return Resolution{Action: Apply, State: Cont} }

// Nth rewrites only the N-th match site (0-indexed), skipping and
// continuing through earlier ones and halting immediately after.
type Nth struct {
	current int
	target  int
}

// NewNth builds an Nth strategy targeting the given 0-indexed match.
func NewNth(target int) *Nth {
	return &Nth{target: target}
}

func (n *Nth) Matched() Resolution {
	switch {
	case n.current == n.target:
		n.current++
		return Resolution{Action: Apply, State: Halt}
	case n.current > n.target:
		return Resolution{Action: Skip, State: Halt}
	default:
		n.current++
		return Resolution{Action: Skip, State: Cont}
	}
}

// Resolve looks up a strategy by its source-language name (spec §4.6):
// "all", "deep", "first" (alias for 0), or a non-negative integer.
func Resolve(name string, loc token.Loc) (Strategy, error) {
	switch name {
	case "all":
		return All{}, nil
	case "deep":
		return Deep{}, nil
	case "first":
		return NewNth(0), nil
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 {
		return nil, diagnostics.New(diagnostics.ErrUnknownStrategy, loc, name)
	}
	return NewNth(n), nil
}
