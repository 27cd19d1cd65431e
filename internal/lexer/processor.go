package lexer

import (
	"github.com/frexsdev/noq/internal/pipeline"
	"github.com/frexsdev/noq/internal/token"
)

const lookaheadBufferSize = 10

// bufferedLexer adapts a Lexer (single NextToken call) into a
// pipeline.TokenStream with arbitrary lookahead, grounded on the teacher
// toolchain's own buffered-lexer processor.
type bufferedLexer struct {
	l      *Lexer
	buffer []token.Token
	pos    int
}

// NewTokenStream wraps l as a pipeline.TokenStream.
func NewTokenStream(l *Lexer) pipeline.TokenStream {
	return &bufferedLexer{l: l}
}

func (bl *bufferedLexer) Next() token.Token {
	if bl.pos < len(bl.buffer) {
		tok := bl.buffer[bl.pos]
		bl.pos++
		return tok
	}
	return bl.l.NextToken()
}

func (bl *bufferedLexer) Peek(n int) []token.Token {
	for len(bl.buffer)-bl.pos < n {
		nextTok := bl.l.NextToken()
		bl.buffer = append(bl.buffer, nextTok)
		if nextTok.Kind == token.End {
			break
		}
	}

	if bl.pos > lookaheadBufferSize {
		bl.buffer = bl.buffer[bl.pos:]
		bl.pos = 0
	}

	end := bl.pos + n
	if end > len(bl.buffer) {
		end = len(bl.buffer)
	}
	return bl.buffer[bl.pos:end]
}

var _ pipeline.TokenStream = (*bufferedLexer)(nil)
