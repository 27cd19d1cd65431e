// Package pipeline defines the narrow contract (C1, spec §4.1) the parser
// consumes from an external lexer: a buffered, peekable token stream.
// Named pipeline (not token) because the shell/driver threads the same
// stream through lexer -> parser -> session, mirroring the teacher
// toolchain's lex -> parse -> analyze -> evaluate pipeline shape, reduced
// to noq's single lex -> parse -> process stage.
package pipeline

import (
	"github.com/frexsdev/noq/internal/token"
)

// TokenStream is the adapter surface between the external lexer and the
// parser: one-token lookahead via Peek, consumption via Next.
type TokenStream interface {
	// Next consumes and returns the next token from the stream.
	Next() token.Token

	// Peek returns the next n tokens without consuming them. If the stream
	// has fewer than n tokens remaining, it returns all remaining tokens.
	Peek(n int) []token.Token
}
