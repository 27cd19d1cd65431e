package matcher

import (
	"testing"

	"github.com/frexsdev/noq/internal/expr"
)

func sym(name string) expr.Expr { return &expr.Sym{Name: name} }
func v(name string) expr.Expr   { return &expr.Var{Name: name} }

func TestMatch(t *testing.T) {
	tests := []struct {
		name    string
		pattern expr.Expr
		value   expr.Expr
		wantOK  bool
		wantVal string // expected Bindings["X"].String(), if bound
	}{
		{
			name:    "sym equal",
			pattern: sym("a"),
			value:   sym("a"),
			wantOK:  true,
		},
		{
			name:    "sym mismatch",
			pattern: sym("a"),
			value:   sym("b"),
			wantOK:  false,
		},
		{
			name:    "wildcard matches anything without binding",
			pattern: v("_"),
			value:   &expr.Fun{Head: sym("f"), Args: []expr.Expr{sym("a")}},
			wantOK:  true,
		},
		{
			name:    "var binds first occurrence",
			pattern: &expr.Fun{Head: sym("pair"), Args: []expr.Expr{v("X"), v("X")}},
			value:   &expr.Fun{Head: sym("pair"), Args: []expr.Expr{sym("a"), sym("a")}},
			wantOK:  true,
			wantVal: "a",
		},
		{
			name:    "linearity: bound var must match repeat occurrence",
			pattern: &expr.Fun{Head: sym("pair"), Args: []expr.Expr{v("X"), v("X")}},
			value:   &expr.Fun{Head: sym("pair"), Args: []expr.Expr{sym("a"), sym("b")}},
			wantOK:  false,
		},
		{
			name:    "op structural match",
			pattern: &expr.Op{Kind: "+", Lhs: v("X"), Rhs: v("Y")},
			value:   &expr.Op{Kind: "+", Lhs: sym("a"), Rhs: sym("b")},
			wantOK:  true,
		},
		{
			name:    "op kind mismatch",
			pattern: &expr.Op{Kind: "+", Lhs: v("X"), Rhs: v("Y")},
			value:   &expr.Op{Kind: "*", Lhs: sym("a"), Rhs: sym("b")},
			wantOK:  false,
		},
		{
			name:    "fun arity mismatch",
			pattern: &expr.Fun{Head: sym("f"), Args: []expr.Expr{v("X")}},
			value:   &expr.Fun{Head: sym("f"), Args: []expr.Expr{sym("a"), sym("b")}},
			wantOK:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bindings, ok := Match(tt.pattern, tt.value)
			if ok != tt.wantOK {
				t.Fatalf("Match() ok = %v, want %v", ok, tt.wantOK)
			}
			if tt.wantVal != "" {
				bound, present := bindings["X"]
				if !present || bound.String() != tt.wantVal {
					t.Errorf("bindings[X] = %v, want %s", bound, tt.wantVal)
				}
			}
		})
	}
}
