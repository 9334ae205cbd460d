package spec

import (
	"fmt"
	"strings"
	"sync"

	verr "github.com/bianca-ap01/ParserLR1/error"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

func tracer() tracing.Trace {
	return tracing.Select("lr1.spec")
}

type tokenKind int

const (
	tokenKindInvalid tokenKind = iota
	tokenKindEOF
	tokenKindNewline
	tokenKindKWStart
	tokenKindKWNonTerminals
	tokenKindKWTerminals
	tokenKindKWProductions
	tokenKindKWLexer
	tokenKindArrow
	tokenKindOr
	tokenKindPattern
	tokenKindSymbol
)

var tokenKindNames = map[tokenKind]string{
	tokenKindInvalid:        "invalid",
	tokenKindEOF:            "eof",
	tokenKindNewline:        "newline",
	tokenKindKWStart:        "START:",
	tokenKindKWNonTerminals: "NONTERMINALS:",
	tokenKindKWTerminals:    "TERMINALS:",
	tokenKindKWProductions:  "PRODUCTIONS:",
	tokenKindKWLexer:        "LEXER:",
	tokenKindArrow:          "->",
	tokenKindOr:             "|",
	tokenKindPattern:        "pattern",
	tokenKindSymbol:         "symbol",
}

func (k tokenKind) String() string {
	return tokenKindNames[k]
}

func (k tokenKind) isHeader() bool {
	switch k {
	case tokenKindKWStart, tokenKindKWNonTerminals, tokenKindKWTerminals, tokenKindKWProductions, tokenKindKWLexer:
		return true
	}
	return false
}

type Position struct {
	Row int
	Col int
}

func newPosition(row, col int) Position {
	return Position{
		Row: row,
		Col: col,
	}
}

type token struct {
	kind tokenKind
	text string
	pos  Position
}

func newSymbolToken(kind tokenKind, text string, pos Position) *token {
	return &token{
		kind: kind,
		text: text,
		pos:  pos,
	}
}

func newEOFToken(pos Position) *token {
	return &token{
		kind: tokenKindEOF,
		pos:  pos,
	}
}

// The order of the rules matters: lexmachine picks the rule added first when two rules
// match the same length, so keywords and the arrow precede the generic symbol rule.
var lexRules = []struct {
	pattern string
	kind    tokenKind
	skip    bool
}{
	{pattern: `#[^\n]*`, skip: true},
	{pattern: `[ \t\r]+`, skip: true},
	{pattern: `\n`, kind: tokenKindNewline},
	{pattern: `START:`, kind: tokenKindKWStart},
	{pattern: `NONTERMINALS:`, kind: tokenKindKWNonTerminals},
	{pattern: `TERMINALS:`, kind: tokenKindKWTerminals},
	{pattern: `PRODUCTIONS:`, kind: tokenKindKWProductions},
	{pattern: `LEXER:`, kind: tokenKindKWLexer},
	{pattern: `->`, kind: tokenKindArrow},
	{pattern: `→`, kind: tokenKindArrow},
	{pattern: `\|`, kind: tokenKindOr},
	{pattern: `/([^/\n\\]|\\[^\n])*/`, kind: tokenKindPattern},
	{pattern: `[^ \t\r\n\|\#][^ \t\r\n\|]*`, kind: tokenKindSymbol},
}

var (
	dslLexer    *lexmachine.Lexer
	dslLexerErr error
	dslLexOnce  sync.Once
)

// compiledLexer returns the shared DSL lexer. The compiled lexer is read-only, so
// concurrent scanners may share it.
func compiledLexer() (*lexmachine.Lexer, error) {
	dslLexOnce.Do(func() {
		l := lexmachine.NewLexer()
		for _, r := range lexRules {
			if r.skip {
				l.Add([]byte(r.pattern), skip)
				continue
			}
			l.Add([]byte(r.pattern), makeToken(r.kind))
		}
		if err := l.Compile(); err != nil {
			tracer().Errorf("failed to compile the grammar lexer: %v", err)
			dslLexerErr = err
			return
		}
		dslLexer = l
	})
	return dslLexer, dslLexerErr
}

func skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

func makeToken(kind tokenKind) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(int(kind), string(m.Bytes), m), nil
	}
}

type lexer struct {
	s       *lexmachine.Scanner
	lastPos Position
}

func newLexer(src string) (*lexer, error) {
	l, err := compiledLexer()
	if err != nil {
		return nil, err
	}
	s, err := l.Scanner([]byte(src))
	if err != nil {
		return nil, err
	}
	return &lexer{
		s:       s,
		lastPos: newPosition(1, 1),
	}, nil
}

func (l *lexer) next() (*token, error) {
	tok, err, eof := l.s.Next()
	if err != nil {
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			return nil, &verr.SpecError{
				Cause:  synErrInvalidToken,
				Detail: fmt.Sprintf("%q", unconsumedText(ui)),
				Row:    ui.StartLine,
				Col:    ui.StartColumn,
			}
		}
		return nil, err
	}
	if eof {
		return newEOFToken(l.lastPos), nil
	}
	t := tok.(*lexmachine.Token)
	pos := newPosition(t.StartLine, t.StartColumn)
	l.lastPos = pos
	return newSymbolToken(tokenKind(t.Type), string(t.Lexeme), pos), nil
}

// unescapePattern removes the slash delimiters and unescapes `\/`. Other escape
// sequences belong to the pattern and are kept as written.
func unescapePattern(lexeme string) string {
	body := lexeme[1 : len(lexeme)-1]
	return strings.ReplaceAll(body, `\/`, `/`)
}

func unconsumedText(ui *machines.UnconsumedInput) string {
	end := ui.FailTC + 1
	if end > len(ui.Text) {
		end = len(ui.Text)
	}
	if ui.StartTC >= end {
		return ""
	}
	s := string(ui.Text[ui.StartTC:end])
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
