package parser

import (
	"fmt"
	"unicode"
)

type tokenKind string

const (
	tokenKindChar       tokenKind = "char"
	tokenKindRepeat     tokenKind = "*"
	tokenKindAlt        tokenKind = "|"
	tokenKindGroupOpen  tokenKind = "("
	tokenKindGroupClose tokenKind = ")"
	tokenKindEOF        tokenKind = "eof"
)

// epsilon is the display form of epsilon edges, so no pattern may match it literally.
const epsilon = 'ε'

type token struct {
	kind tokenKind
	char rune
	pos  int
}

func newToken(kind tokenKind, char rune, pos int) *token {
	return &token{
		kind: kind,
		char: char,
		pos:  pos,
	}
}

// lexer splits a pattern into tokens. Blanks between tokens are ignored, and a backslash
// makes the next character a literal, blanks and operators included.
type lexer struct {
	src []rune
	pos int
}

func newLexer(src string) *lexer {
	return &lexer{
		src: []rune(src),
	}
}

func (l *lexer) next() (*token, error) {
	for l.pos < len(l.src) && unicode.IsSpace(l.src[l.pos]) {
		l.pos++
	}
	if l.pos >= len(l.src) {
		return newToken(tokenKindEOF, 0, l.pos), nil
	}

	pos := l.pos
	c := l.src[l.pos]
	l.pos++
	switch c {
	case '*':
		return newToken(tokenKindRepeat, c, pos), nil
	case '|':
		return newToken(tokenKindAlt, c, pos), nil
	case '(':
		return newToken(tokenKindGroupOpen, c, pos), nil
	case ')':
		return newToken(tokenKindGroupClose, c, pos), nil
	case '+', '?':
		return nil, &SyntaxError{
			Offset: pos,
			Cause:  synErrUnsupportedOp,
			Detail: fmt.Sprintf("%c must be escaped to match itself", c),
		}
	case '\\':
		if l.pos >= len(l.src) {
			return nil, &SyntaxError{
				Offset: pos,
				Cause:  synErrIncompletedEscSeq,
			}
		}
		esc := l.src[l.pos]
		l.pos++
		if esc == epsilon {
			return nil, &SyntaxError{
				Offset: pos,
				Cause:  synErrEpsilonLiteral,
			}
		}
		return newToken(tokenKindChar, esc, pos), nil
	case epsilon:
		return nil, &SyntaxError{
			Offset: pos,
			Cause:  synErrEpsilonLiteral,
		}
	}
	return newToken(tokenKindChar, c, pos), nil
}
