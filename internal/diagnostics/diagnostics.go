// Package diagnostics implements the error taxonomy of spec §7: every
// error the engine raises carries a Kind (the exhaustive disjoint list) and
// the source location of the offending command or sub-token.
package diagnostics

import (
	"fmt"

	"github.com/frexsdev/noq/internal/token"
)

// Kind is one of the error kinds enumerated in spec §7. Disjoint and
// exhaustive — every error the engine returns carries exactly one.
type Kind string

const (
	// Syntax errors (C3).
	ErrExpectedToken       Kind = "ExpectedToken"
	ErrExpectedPrimary     Kind = "ExpectedPrimary"
	ErrExpectedAppliedRule Kind = "ExpectedAppliedRule"
	ErrExpectedCommand     Kind = "ExpectedCommand"

	// Runtime errors (C8/C7).
	ErrRuleAlreadyExists Kind = "RuleAlreadyExists"
	ErrRuleDoesNotExist  Kind = "RuleDoesNotExist"
	ErrAlreadyShaping    Kind = "AlreadyShaping"
	ErrNoShapingInPlace  Kind = "NoShapingInPlace"
	ErrNoHistory         Kind = "NoHistory"
	ErrUnknownStrategy   Kind = "UnknownStrategy"
	ErrIrreversibleRule  Kind = "IrreversibleRule"
	ErrStrategyIsNotSym  Kind = "StrategyIsNotSym"
)

var templates = map[Kind]string{
	ErrExpectedToken:       "expected %s but got %s '%s'",
	ErrExpectedPrimary:     "expected a primary expression but got %s '%s'",
	ErrExpectedAppliedRule: "expected an applied rule but got %s '%s'",
	ErrExpectedCommand:     "expected a command but got %s '%s'",

	ErrRuleAlreadyExists: "redefinition of existing rule %s",
	ErrRuleDoesNotExist:  "rule %s does not exist",
	ErrAlreadyShaping:    "already shaping an expression, finish it with 'done' first",
	ErrNoShapingInPlace:  "no shaping in place",
	ErrNoHistory:         "no history",
	ErrUnknownStrategy:   "unknown rule application strategy '%s'",
	ErrIrreversibleRule:  "rule '%s' cannot be reversed",
	ErrStrategyIsNotSym:  "strategy must be a symbol, got %s",
}

// Error is the single error type every engine component returns. Args
// fill the Kind's message template in order; OldLoc is populated only for
// ErrRuleAlreadyExists against a user rule (spec §4.8: "old_loc is
// available only for user rules, not for Replace").
type Error struct {
	Kind   Kind
	Loc    token.Loc
	Args   []interface{}
	OldLoc *token.Loc
}

func (e *Error) Error() string {
	template, ok := templates[e.Kind]
	if !ok {
		return fmt.Sprintf("unknown error kind: %s", e.Kind)
	}
	message := fmt.Sprintf(template, e.Args...)
	result := fmt.Sprintf("%s: ERROR: %s", e.Loc, message)
	if e.OldLoc != nil {
		result += fmt.Sprintf("\n%s: previous definition is located here", *e.OldLoc)
	}
	return result
}

func New(kind Kind, loc token.Loc, args ...interface{}) *Error {
	return &Error{Kind: kind, Loc: loc, Args: args}
}

// NewRuleAlreadyExists builds ErrRuleAlreadyExists, attaching the previous
// definition's location when it is known (i.e. not the builtin Replace).
func NewRuleAlreadyExists(name string, loc token.Loc, oldLoc *token.Loc) *Error {
	return &Error{Kind: ErrRuleAlreadyExists, Loc: loc, Args: []interface{}{name}, OldLoc: oldLoc}
}
