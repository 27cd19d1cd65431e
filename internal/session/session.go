// Package session implements the shaping session state machine (C8, spec
// §4.8): the rule table, the current shaping expression, the undo
// history, and command dispatch.
package session

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/frexsdev/noq/internal/diagnostics"
	"github.com/frexsdev/noq/internal/expr"
	"github.com/frexsdev/noq/internal/parser"
	"github.com/frexsdev/noq/internal/rewrite"
	"github.com/frexsdev/noq/internal/rule"
	"github.com/frexsdev/noq/internal/strategy"
	"github.com/frexsdev/noq/internal/token"
)

// Session owns the rule table and the in-progress shaping expression
// (spec §3 "Session state"). Rules grows monotonically across a
// Session's life except for explicit deletion.
type Session struct {
	// ID correlates every log line this session emits; it has no effect
	// on rewriting semantics, it is ambient observability (see
	// SPEC_FULL.md §3).
	ID uuid.UUID

	Rules   map[string]rule.Rule
	Current *expr.Expr
	History []expr.Expr
	Quit    bool

	// Logger receives one line per successful command other than quit. Defaults
	// to log.Default() when nil.
	Logger *log.Logger
}

// New creates a Session with the builtin "replace" meta-rule pre-populated
// (spec §3).
func New() *Session {
	return &Session{
		ID:    uuid.New(),
		Rules: map[string]rule.Rule{rule.Name: rule.Replace{}},
	}
}

func (s *Session) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

func (s *Session) logf(cmd string, result string) {
	s.logger().Printf("session=%s cmd=%s => %s", s.ID, cmd, result)
}

// notify formats the standard " => <expr>" line spec §6.2 requires on
// StartShaping, ApplyRule, and UndoRule.
func notify(e expr.Expr) string {
	return fmt.Sprintf(" => %s", e)
}

// Process dispatches a single parsed command (spec §4.8). It returns the
// text to print on success (empty for commands that emit nothing, per
// §6.2) and an error from the §7 taxonomy on failure. A command's
// mutations only take effect once every fallible step (lookup, match,
// resolve) has already succeeded, so partial application cannot occur.
func (s *Session) Process(cmd parser.Command) (string, error) {
	switch c := cmd.(type) {
	case *parser.DefineRuleCommand:
		return s.defineRule(c)
	case *parser.ShapeCommand:
		return s.startShaping(c)
	case *parser.ApplyCommand:
		return s.applyRule(c)
	case *parser.DoneCommand:
		return s.finishShaping(c)
	case *parser.UndoCommand:
		return s.undo(c)
	case *parser.QuitCommand:
		s.Quit = true
		return "", nil
	case *parser.DeleteCommand:
		return s.deleteRule(c)
	default:
		panic(fmt.Sprintf("session: unhandled command %T", cmd))
	}
}

func (s *Session) defineRule(c *parser.DefineRuleCommand) (string, error) {
	if existing, ok := s.Rules[c.Name]; ok {
		var oldLoc *token.Loc
		if u, ok := existing.(*rule.User); ok {
			loc := u.Loc
			oldLoc = &loc
		}
		return "", diagnostics.NewRuleAlreadyExists(c.Name, c.At, oldLoc)
	}
	s.Rules[c.Name] = c.Rule
	s.logf("rule", c.Rule.String())
	return "", nil
}

func (s *Session) startShaping(c *parser.ShapeCommand) (string, error) {
	if s.Current != nil {
		return "", diagnostics.New(diagnostics.ErrAlreadyShaping, c.At)
	}
	e := c.Expr
	s.Current = &e
	s.History = nil
	out := notify(e)
	s.logf("shape", e.String())
	return out, nil
}

func (s *Session) applyRule(c *parser.ApplyCommand) (string, error) {
	if s.Current == nil {
		return "", diagnostics.New(diagnostics.ErrNoShapingInPlace, c.At)
	}

	r, err := s.materialize(c.Applied)
	if err != nil {
		return "", err
	}

	strat, err := strategy.Resolve(c.Strategy, c.At)
	if err != nil {
		return "", err
	}

	newExpr, err := rewrite.Apply(r, *s.Current, strat, c.At)
	if err != nil {
		return "", err
	}

	s.History = append(s.History, *s.Current)
	s.Current = &newExpr
	out := notify(newExpr)
	s.logf("apply", newExpr.String())
	return out, nil
}

// materialize resolves an AppliedRule into a concrete rule.Rule (spec
// §4.8): anonymous rules pass through as-is, by-name references are
// looked up and, if flagged reversed, flipped (User rules swap head/body;
// Replace cannot be reversed).
func (s *Session) materialize(a parser.AppliedRule) (rule.Rule, error) {
	switch v := a.(type) {
	case *parser.AnonymousRule:
		return v.Rule, nil

	case *parser.ByNameRule:
		r, ok := s.Rules[v.Name]
		if !ok {
			return nil, diagnostics.New(diagnostics.ErrRuleDoesNotExist, v.Loc, v.Name)
		}
		if !v.Reversed {
			return r, nil
		}
		switch rr := r.(type) {
		case *rule.User:
			return rr.Reversed(), nil
		default:
			return nil, diagnostics.New(diagnostics.ErrIrreversibleRule, v.Loc, v.Name)
		}

	default:
		panic(fmt.Sprintf("session: unhandled applied rule %T", a))
	}
}

func (s *Session) finishShaping(c *parser.DoneCommand) (string, error) {
	if s.Current == nil {
		return "", diagnostics.New(diagnostics.ErrNoShapingInPlace, c.At)
	}
	s.Current = nil
	s.History = nil
	s.logf("done", "")
	return "", nil
}

func (s *Session) undo(c *parser.UndoCommand) (string, error) {
	if s.Current == nil {
		return "", diagnostics.New(diagnostics.ErrNoShapingInPlace, c.At)
	}
	if len(s.History) == 0 {
		return "", diagnostics.New(diagnostics.ErrNoHistory, c.At)
	}
	last := len(s.History) - 1
	previous := s.History[last]
	s.History = s.History[:last]
	s.Current = &previous
	out := notify(previous)
	s.logf("undo", previous.String())
	return out, nil
}

func (s *Session) deleteRule(c *parser.DeleteCommand) (string, error) {
	if _, ok := s.Rules[c.Name]; !ok {
		return "", diagnostics.New(diagnostics.ErrRuleDoesNotExist, c.At, c.Name)
	}
	delete(s.Rules, c.Name)
	s.logf("delete", c.Name)
	return "", nil
}
