package parser

import (
	"github.com/frexsdev/noq/internal/expr"
	"github.com/frexsdev/noq/internal/rule"
	"github.com/frexsdev/noq/internal/token"
)

// Command is the parsed form of one of spec §4.3's seven command kinds.
type Command interface {
	isCommand()
	Loc() token.Loc
}

// DefineRuleCommand is 'rule' Ident head '=' body.
type DefineRuleCommand struct {
	At   token.Loc
	Name string
	Rule *rule.User
}

func (c *DefineRuleCommand) isCommand()     {}
func (c *DefineRuleCommand) Loc() token.Loc { return c.At }

// ShapeCommand is 'shape' expr.
type ShapeCommand struct {
	At   token.Loc
	Expr expr.Expr
}

func (c *ShapeCommand) isCommand()     {}
func (c *ShapeCommand) Loc() token.Loc { return c.At }

// ApplyCommand is 'apply' Ident applied_rule.
type ApplyCommand struct {
	At       token.Loc
	Strategy string
	Applied  AppliedRule
}

func (c *ApplyCommand) isCommand()     {}
func (c *ApplyCommand) Loc() token.Loc { return c.At }

// DoneCommand is 'done'.
type DoneCommand struct{ At token.Loc }

func (c *DoneCommand) isCommand()     {}
func (c *DoneCommand) Loc() token.Loc { return c.At }

// UndoCommand is 'undo'.
type UndoCommand struct{ At token.Loc }

func (c *UndoCommand) isCommand()     {}
func (c *UndoCommand) Loc() token.Loc { return c.At }

// QuitCommand is 'quit'.
type QuitCommand struct{ At token.Loc }

func (c *QuitCommand) isCommand()     {}
func (c *QuitCommand) Loc() token.Loc { return c.At }

// DeleteCommand is 'delete' Ident.
type DeleteCommand struct {
	At   token.Loc
	Name string
}

func (c *DeleteCommand) isCommand()     {}
func (c *DeleteCommand) Loc() token.Loc { return c.At }

// AppliedRule is the parsed form of spec §4.3's applied_rule:
// reverse applied_rule | rule head = body (anonymous) | Ident (by name).
type AppliedRule interface {
	isAppliedRule()
}

// AnonymousRule is an applied_rule given inline as 'rule head = body'.
type AnonymousRule struct {
	Rule *rule.User
}

func (*AnonymousRule) isAppliedRule() {}

// ByNameRule is an applied_rule referencing a rule in the session's table,
// optionally flagged for reversal. Materialization (looking the name up
// and, if reversed, flipping a User rule or rejecting Replace) happens in
// the session, per spec §4.3/§4.8.
type ByNameRule struct {
	Name     string
	Loc      token.Loc
	Reversed bool
}

func (*ByNameRule) isAppliedRule() {}
