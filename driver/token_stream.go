package driver

import (
	"fmt"
	"io"
	"strings"

	verr "github.com/bianca-ap01/ParserLR1/error"
	spec "github.com/bianca-ap01/ParserLR1/spec/grammar"
	mldriver "github.com/nihei9/maleeni/driver"
)

type VToken interface {
	// TerminalID returns a terminal ID. An invalid token has the ID 0.
	TerminalID() int

	// Lexeme returns a lexeme.
	Lexeme() []byte

	// EOF returns true when a token represents EOF.
	EOF() bool

	// Invalid returns true when a token is invalid.
	Invalid() bool

	// Position returns (row, column) pair.
	Position() (int, int)
}

type TokenStream interface {
	Next() (VToken, error)
}

type vToken struct {
	terminalID int
	tok        *mldriver.Token
}

func (t *vToken) TerminalID() int {
	return t.terminalID
}

func (t *vToken) Lexeme() []byte {
	return t.tok.Lexeme
}

func (t *vToken) EOF() bool {
	return t.tok.EOF
}

func (t *vToken) Invalid() bool {
	return t.tok.Invalid
}

func (t *vToken) Position() (int, int) {
	return t.tok.Row + 1, t.tok.Col + 1
}

type tokenStream struct {
	lex            *mldriver.Lexer
	kindToTerminal []int
	skip           []int
}

// NewTokenStream tokenizes source text with the lexicon of a grammar. Tokens of skip rules
// never reach the parser.
func NewTokenStream(g *spec.CompiledGrammar, src io.Reader) (TokenStream, error) {
	if g.Lexical == nil {
		return nil, &ParseError{
			Cause: ErrNoLexicon,
		}
	}

	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(g.Lexical.Maleeni), src)
	if err != nil {
		return nil, err
	}

	return &tokenStream{
		lex:            lex,
		kindToTerminal: g.Lexical.KindToTerminal,
		skip:           g.Lexical.Skip,
	}, nil
}

func (l *tokenStream) Next() (VToken, error) {
	for {
		// An invalid token has the kind ID 0 that maps to no terminal, so the parser finds no
		// ACTION entry for it.
		tok, err := l.lex.Next()
		if err != nil {
			return nil, err
		}
		if !tok.EOF && !tok.Invalid && l.skip[tok.KindID] > 0 {
			continue
		}
		return &vToken{
			terminalID: l.kindToTerminal[tok.KindID],
			tok:        tok,
		}, nil
	}
}

// ErrNoLexicon is returned when source text is given for a grammar without lexicon rules.
var ErrNoLexicon = fmt.Errorf("the grammar has no lexicon rules; give the input as terminal names")

type nameToken struct {
	terminalID int
	name       string
	index      int
	eof        bool
}

func (t *nameToken) TerminalID() int {
	return t.terminalID
}

func (t *nameToken) Lexeme() []byte {
	return []byte(t.name)
}

func (t *nameToken) EOF() bool {
	return t.eof
}

func (t *nameToken) Invalid() bool {
	return false
}

func (t *nameToken) Position() (int, int) {
	return 1, t.index + 1
}

type nameTokenStream struct {
	toks []*nameToken
	next int
}

// NewNameTokenStream turns terminal names into tokens. Every name must be a declared
// terminal.
func NewNameTokenStream(gram Grammar, names []string) (TokenStream, error) {
	toks := make([]*nameToken, 0, len(names)+1)
	for i, name := range names {
		num, ok := gram.TerminalNum(name)
		if !ok {
			return nil, &UndeclaredTerminalError{
				Name:  name,
				Index: i,
			}
		}
		toks = append(toks, &nameToken{
			terminalID: num,
			name:       name,
			index:      i,
		})
	}
	toks = append(toks, &nameToken{
		terminalID: gram.EOF(),
		index:      len(names),
		eof:        true,
	})
	return &nameTokenStream{
		toks: toks,
	}, nil
}

// SplitNames splits blank-separated terminal names.
func SplitNames(text string) []string {
	return strings.Fields(text)
}

func (s *nameTokenStream) Next() (VToken, error) {
	if s.next >= len(s.toks) {
		return s.toks[len(s.toks)-1], nil
	}
	tok := s.toks[s.next]
	s.next++
	return tok, nil
}

// UndeclaredTerminalError reports a name in token input that is not a terminal of the
// grammar.
type UndeclaredTerminalError struct {
	Name  string
	Index int
}

func (e *UndeclaredTerminalError) Error() string {
	return fmt.Sprintf("token %v: undeclared terminal: %v", e.Index+1, e.Name)
}

func (e *UndeclaredTerminalError) Kind() verr.Kind {
	return verr.KindUndeclaredSymbol
}
