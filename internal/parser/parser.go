// Package parser turns a token stream into expressions and commands (C3,
// spec §4.3), grounded on the teacher toolchain's curToken/peekToken
// recursive-descent shape.
package parser

import (
	"github.com/frexsdev/noq/internal/config"
	"github.com/frexsdev/noq/internal/diagnostics"
	"github.com/frexsdev/noq/internal/expr"
	"github.com/frexsdev/noq/internal/pipeline"
	"github.com/frexsdev/noq/internal/rule"
	"github.com/frexsdev/noq/internal/token"
)

// Parser holds recursive-descent parsing state over a token stream.
type Parser struct {
	stream    pipeline.TokenStream
	curToken  token.Token
	peekToken token.Token
}

// New creates a Parser positioned at the first token of stream.
func New(stream pipeline.TokenStream) *Parser {
	p := &Parser{stream: stream}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	peeked := p.stream.Peek(1)
	if len(peeked) > 0 {
		p.peekToken = peeked[0]
	} else {
		p.peekToken = token.Token{Kind: token.End}
	}
	p.stream.Next()
}

// AtEnd reports whether the next command keyword would be End.
func (p *Parser) AtEnd() bool {
	return p.curToken.Kind == token.End
}

// ExpectEnd requires the stream to be fully consumed, used by the
// interactive shell to reject trailing garbage after a single command.
func (p *Parser) ExpectEnd() error {
	_, err := p.expect(token.End)
	return err
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	tok := p.curToken
	if tok.Kind != kind {
		return tok, diagnostics.New(diagnostics.ErrExpectedToken, tok.Loc, kind, tok.Kind, tok.Lexeme)
	}
	p.nextToken()
	return tok, nil
}

// ---- expressions (spec §4.3 grammar) ----

// ParseExpr parses a full expression: expr := binop(0).
func (p *Parser) ParseExpr() (expr.Expr, error) {
	return p.parseBinop(0)
}

func (p *Parser) parseBinop(level int) (expr.Expr, error) {
	if level > config.MaxPrecedence {
		return p.parsePrimary()
	}

	lhs, err := p.parseBinop(level + 1)
	if err != nil {
		return nil, err
	}

	for {
		prec, isOp := config.PrecedenceOf(p.curToken.Kind)
		if !isOp || prec != level {
			return lhs, nil
		}
		opTok := p.curToken
		p.nextToken()
		rhs, err := p.parseBinop(level)
		if err != nil {
			return nil, err
		}
		lhs = &expr.Op{Kind: config.SymbolOf(opTok.Kind), Lhs: lhs, Rhs: rhs}
	}
}

// primary := '(' expr ')' | Ident fun_tail*
func (p *Parser) parsePrimary() (expr.Expr, error) {
	var head expr.Expr

	switch p.curToken.Kind {
	case token.LParen:
		p.nextToken()
		inner, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		head = inner

	case token.Ident:
		head = expr.NewIdent(p.curToken.Lexeme)
		p.nextToken()

	default:
		return nil, diagnostics.New(diagnostics.ErrExpectedPrimary, p.curToken.Loc, p.curToken.Kind, p.curToken.Lexeme)
	}

	for p.curToken.Kind == token.LParen {
		args, err := p.parseFunArgs()
		if err != nil {
			return nil, err
		}
		head = &expr.Fun{Head: head, Args: args}
	}

	return head, nil
}

// fun_tail := '(' [ expr { ',' expr } ] ')'
func (p *Parser) parseFunArgs() ([]expr.Expr, error) {
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}

	var args []expr.Expr
	if p.curToken.Kind == token.RParen {
		p.nextToken()
		return args, nil
	}

	first, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	args = append(args, first)

	for p.curToken.Kind == token.Comma {
		p.nextToken()
		next, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, next)
	}

	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return args, nil
}

// ---- rules ----

// parseRuleBody parses 'head = body' (shared by rule definitions and
// anonymous applied rules).
func (p *Parser) parseRuleBody(loc token.Loc) (*rule.User, error) {
	head, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Equals); err != nil {
		return nil, err
	}
	body, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	return &rule.User{Loc: loc, Head: head, Body: body}, nil
}

// applied_rule := 'reverse' applied_rule | 'rule' head '=' body | Ident
func (p *Parser) parseAppliedRule() (AppliedRule, error) {
	switch p.curToken.Kind {
	case token.Reverse:
		p.nextToken()
		inner, err := p.parseAppliedRule()
		if err != nil {
			return nil, err
		}
		return reverseApplied(inner), nil

	case token.Rule:
		loc := p.curToken.Loc
		p.nextToken()
		r, err := p.parseRuleBody(loc)
		if err != nil {
			return nil, err
		}
		return &AnonymousRule{Rule: r}, nil

	case token.Ident:
		tok := p.curToken
		p.nextToken()
		return &ByNameRule{Name: tok.Lexeme, Loc: tok.Loc}, nil

	default:
		return nil, diagnostics.New(diagnostics.ErrExpectedAppliedRule, p.curToken.Loc, p.curToken.Kind, p.curToken.Lexeme)
	}
}

func reverseApplied(a AppliedRule) AppliedRule {
	switch v := a.(type) {
	case *AnonymousRule:
		return &AnonymousRule{Rule: v.Rule.Reversed()}
	case *ByNameRule:
		return &ByNameRule{Name: v.Name, Loc: v.Loc, Reversed: !v.Reversed}
	default:
		return a
	}
}

// ---- commands ----

// ParseCommand parses a single top-level command (spec §4.3 `command`).
func (p *Parser) ParseCommand() (Command, error) {
	keyword := p.curToken
	switch keyword.Kind {
	case token.Rule:
		p.nextToken()
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		r, err := p.parseRuleBody(keyword.Loc)
		if err != nil {
			return nil, err
		}
		return &DefineRuleCommand{At: keyword.Loc, Name: name.Lexeme, Rule: r}, nil

	case token.Shape:
		p.nextToken()
		e, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		return &ShapeCommand{At: keyword.Loc, Expr: e}, nil

	case token.Apply:
		p.nextToken()
		strategyName, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		applied, err := p.parseAppliedRule()
		if err != nil {
			return nil, err
		}
		return &ApplyCommand{At: keyword.Loc, Strategy: strategyName.Lexeme, Applied: applied}, nil

	case token.Done:
		p.nextToken()
		return &DoneCommand{At: keyword.Loc}, nil

	case token.Undo:
		p.nextToken()
		return &UndoCommand{At: keyword.Loc}, nil

	case token.Quit:
		p.nextToken()
		return &QuitCommand{At: keyword.Loc}, nil

	case token.Delete:
		p.nextToken()
		name, err := p.expect(token.Ident)
		if err != nil {
			return nil, err
		}
		return &DeleteCommand{At: keyword.Loc, Name: name.Lexeme}, nil

	default:
		return nil, diagnostics.New(diagnostics.ErrExpectedCommand, keyword.Loc, keyword.Kind, keyword.Lexeme)
	}
}
