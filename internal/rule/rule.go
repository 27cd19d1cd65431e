// Package rule defines the Rule variant of spec §3: a User-defined
// head/body pair, or the singleton built-in meta-rule Replace.
package rule

import (
	"fmt"

	"github.com/frexsdev/noq/internal/expr"
	"github.com/frexsdev/noq/internal/token"
)

// Rule is the tagged {User | Replace} variant (spec §3, §9).
type Rule interface {
	isRule()
}

// User is a rule defined by the user: head = body.
type User struct {
	Loc  token.Loc
	Head expr.Expr
	Body expr.Expr
}

func (*User) isRule() {}

func (u *User) String() string {
	return fmt.Sprintf("%s = %s", u.Head, u.Body)
}

// Reversed returns a new User rule with head and body swapped.
func (u *User) Reversed() *User {
	return &User{Loc: u.Loc, Head: u.Body, Body: u.Head}
}

// Replace is the singleton built-in meta-rule (spec §4.7): it has no
// head/body of its own, looked up by the fixed name "replace".
type Replace struct{}

func (Replace) isRule() {}

// Name is the fixed table key the builtin meta-rule is registered under.
const Name = "replace"
