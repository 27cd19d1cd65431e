// Package config is the single source of truth for operator metadata,
// following the same pattern the teacher toolchain uses to keep lexer,
// parser and pretty-printer precedence tables from drifting apart.
package config

import "github.com/frexsdev/noq/internal/token"

// Precedence levels named in spec 3 ("Precedence"). Higher binds tighter.
const (
	PrecAdditive   = 0 // + -
	PrecMultiplica = 1 // * /
	PrecPower      = 2 // ^
)

// MaxPrecedence is the highest defined operator level.
const MaxPrecedence = PrecPower

// OperatorInfo describes one binary operator's token and binding power.
type OperatorInfo struct {
	Kind       token.Kind
	Symbol     string
	Precedence int
}

// Operators is the ordered table the parser and pretty-printer consult
// instead of hard-coding precedence numbers.
var Operators = []OperatorInfo{
	{Kind: token.Plus, Symbol: "+", Precedence: PrecAdditive},
	{Kind: token.Dash, Symbol: "-", Precedence: PrecAdditive},
	{Kind: token.Asterisk, Symbol: "*", Precedence: PrecMultiplica},
	{Kind: token.Slash, Symbol: "/", Precedence: PrecMultiplica},
	{Kind: token.Caret, Symbol: "^", Precedence: PrecPower},
}

// PrecedenceOf returns the binding power of an operator token kind.
func PrecedenceOf(kind token.Kind) (int, bool) {
	for _, op := range Operators {
		if op.Kind == kind {
			return op.Precedence, true
		}
	}
	return 0, false
}

// SymbolOf returns the textual symbol for an operator token kind.
func SymbolOf(kind token.Kind) string {
	for _, op := range Operators {
		if op.Kind == kind {
			return op.Symbol
		}
	}
	return string(kind)
}
