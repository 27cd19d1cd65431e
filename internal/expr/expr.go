// Package expr is the expression model (C2, spec §3): the algebraic term
// representation and its pretty-printer.
package expr

import (
	"fmt"
	"strings"

	"github.com/frexsdev/noq/internal/config"
)

// Expr is the tagged variant of spec §3: Sym, Var, Fun, or Op. It is
// modeled as an interface with an unexported marker method, the same
// idiom the teacher uses for ast.Expression, rather than a closed sum
// type (Go has none).
type Expr interface {
	fmt.Stringer
	// Equal reports deep structural equality.
	Equal(other Expr) bool
	exprNode()
}

// Sym is a constant atom.
type Sym struct {
	Name string
}

func (s *Sym) exprNode()      {}
func (s *Sym) String() string { return s.Name }
func (s *Sym) Equal(other Expr) bool {
	o, ok := other.(*Sym)
	return ok && o.Name == s.Name
}

// Var is a logic variable on the pattern side, or a free name on the
// value side. The wildcard variable is named "_".
type Var struct {
	Name string
}

func (v *Var) exprNode()      {}
func (v *Var) String() string { return v.Name }
func (v *Var) Equal(other Expr) bool {
	o, ok := other.(*Var)
	return ok && o.Name == v.Name
}

// IsWildcard reports whether v is the "_" wildcard, which matches
// anything without recording a binding.
func (v *Var) IsWildcard() bool { return v.Name == "_" }

// Fun is an application of a head term to zero or more arguments. Head is
// itself any Expr so meta-patterns like F(X) (F a variable) are
// expressible.
type Fun struct {
	Head Expr
	Args []Expr
}

func (f *Fun) exprNode() {}
func (f *Fun) String() string {
	var b strings.Builder
	if _, ok := f.Head.(*Op); ok {
		b.WriteString("(")
		b.WriteString(f.Head.String())
		b.WriteString(")")
	} else {
		b.WriteString(f.Head.String())
	}
	b.WriteString("(")
	for i, arg := range f.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(arg.String())
	}
	b.WriteString(")")
	return b.String()
}

func (f *Fun) Equal(other Expr) bool {
	o, ok := other.(*Fun)
	if !ok || len(o.Args) != len(f.Args) || !f.Head.Equal(o.Head) {
		return false
	}
	for i, arg := range f.Args {
		if !arg.Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Op is a binary operator node. Operators are purely structural; no
// arithmetic is ever performed (spec §1 Non-goals).
type Op struct {
	Kind string // one of "+" "-" "*" "/" "^", see config.Operators
	Lhs  Expr
	Rhs  Expr
}

func (o *Op) exprNode() {}

func (o *Op) precedence() int {
	for _, info := range config.Operators {
		if info.Symbol == o.Kind {
			return info.Precedence
		}
	}
	return 0
}

func (o *Op) String() string {
	var b strings.Builder
	writeSide(&b, o.Lhs, o.precedence())
	if o.precedence() == config.PrecAdditive {
		fmt.Fprintf(&b, " %s ", o.Kind)
	} else {
		b.WriteString(o.Kind)
	}
	writeSide(&b, o.Rhs, o.precedence())
	return b.String()
}

// writeSide prints one side of an Op, conservatively parenthesizing it
// when it is itself an Op whose precedence is <= the enclosing one (spec
// §4.2: intentionally conservative, so parse-print-parse is idempotent
// but does not recover the original parenthesization).
func writeSide(b *strings.Builder, side Expr, outerPrec int) {
	if sub, ok := side.(*Op); ok && sub.precedence() <= outerPrec {
		b.WriteString("(")
		b.WriteString(side.String())
		b.WriteString(")")
		return
	}
	b.WriteString(side.String())
}

func (o *Op) Equal(other Expr) bool {
	p, ok := other.(*Op)
	return ok && p.Kind == o.Kind && o.Lhs.Equal(p.Lhs) && o.Rhs.Equal(p.Rhs)
}

// NewIdent builds a Sym or Var based on the first-character classification
// rule of spec §3: uppercase or underscore is a variable, otherwise a
// symbol.
func NewIdent(name string) Expr {
	if name == "" {
		panic("expr: empty identifier")
	}
	c := name[0]
	if c == '_' || (c >= 'A' && c <= 'Z') {
		return &Var{Name: name}
	}
	return &Sym{Name: name}
}

// Bindings is a mapping from variable name to Expr, as produced by
// matching (C4) and consumed by substitution (C5).
type Bindings map[string]Expr
