package spec

import (
	"io"
	"strings"

	verr "github.com/bianca-ap01/ParserLR1/error"
)

type RootNode struct {
	Start        *SymbolNode
	NonTerminals []*SymbolNode
	Terminals    []*SymbolNode
	Productions  []*ProductionNode
	LexRules     []*LexRuleNode

	// Headerless is true when the declarations were inferred from bare productions.
	Headerless bool
}

type SymbolNode struct {
	Name string
	Pos  Position
}

type ProductionNode struct {
	LHS string
	RHS []*AlternativeNode
	Pos Position
}

type AlternativeNode struct {
	Elements []*ElementNode
	Pos      Position
}

type ElementNode struct {
	ID  string
	Pos Position
}

type LexRuleNode struct {
	Name       string
	Pattern    string
	Skip       bool
	Pos        Position
	PatternPos Position
}

func raiseSyntaxError(pos Position, synErr *SyntaxError, detail string) {
	panic(&verr.SpecError{
		Cause:  synErr,
		Detail: detail,
		Row:    pos.Row,
		Col:    pos.Col,
	})
}

func Parse(src io.Reader) (*RootNode, error) {
	b, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	p, err := newParser(string(b))
	if err != nil {
		return nil, err
	}
	root, err := p.parse()
	if err != nil {
		return nil, err
	}
	return root, nil
}

type parser struct {
	lex       *lexer
	pending   []*token
	peekedTok *token
	lastTok   *token

	root      *RootNode
	section   tokenKind
	sections  map[tokenKind]Position
	lastProd  *ProductionNode
	headerTok *token
}

func newParser(src string) (*parser, error) {
	lex, err := newLexer(src)
	if err != nil {
		return nil, err
	}
	return &parser{
		lex:      lex,
		section:  tokenKindInvalid,
		sections: map[tokenKind]Position{},
	}, nil
}

func (p *parser) parse() (root *RootNode, retErr error) {
	defer func() {
		err := recover()
		if err != nil {
			e, ok := err.(error)
			if !ok {
				panic(err)
			}
			retErr = e
			return
		}
	}()
	return p.parseRoot(), nil
}

func (p *parser) parseRoot() *RootNode {
	p.root = &RootNode{}
	for {
		p.skipNewlines()
		if p.consume(tokenKindEOF) {
			break
		}
		tok := p.peek()
		if tok.kind.isHeader() {
			p.parseHeader()
			continue
		}
		if p.section == tokenKindInvalid {
			p.section = tokenKindKWProductions
			p.root.Headerless = true
		}
		p.parseSectionLine()
	}

	if pos, ok := p.sections[tokenKindKWStart]; ok && p.root.Start == nil {
		raiseSyntaxError(pos, synErrNoStartSymbol, "")
	}
	if len(p.root.Productions) == 0 {
		raiseSyntaxError(p.lex.lastPos, synErrNoProduction, "")
	}
	if p.root.Headerless {
		inferDeclarations(p.root)
	}
	return p.root
}

func (p *parser) parseHeader() {
	p.consumeAny()
	header := p.lastTok
	if p.root.Headerless {
		raiseSyntaxError(header.pos, synErrHeaderAfterProds, header.text)
	}
	if _, ok := p.sections[header.kind]; ok {
		raiseSyntaxError(header.pos, synErrDuplicateSection, header.text)
	}
	p.sections[header.kind] = header.pos
	p.section = header.kind
	p.headerTok = header
	if p.atLineEnd() {
		return
	}
	p.parseSectionLine()
}

func (p *parser) parseSectionLine() {
	switch p.section {
	case tokenKindKWStart:
		p.parseStart()
	case tokenKindKWNonTerminals:
		p.root.NonTerminals = append(p.root.NonTerminals, p.parseSymbolList()...)
	case tokenKindKWTerminals:
		p.root.Terminals = append(p.root.Terminals, p.parseSymbolList()...)
	case tokenKindKWProductions:
		p.parseProduction()
	case tokenKindKWLexer:
		p.parseLexRule()
	}
	p.expectLineEnd()
}

func (p *parser) parseStart() {
	if !p.consume(tokenKindSymbol) {
		raiseSyntaxError(p.peek().pos, synErrNoStartSymbol, p.peek().text)
	}
	if p.root.Start != nil {
		raiseSyntaxError(p.lastTok.pos, synErrMultipleStart, p.lastTok.text)
	}
	p.root.Start = &SymbolNode{
		Name: p.lastTok.text,
		Pos:  p.lastTok.pos,
	}
	if !p.atLineEnd() {
		raiseSyntaxError(p.peek().pos, synErrMultipleStart, p.peek().text)
	}
}

func (p *parser) parseSymbolList() []*SymbolNode {
	var syms []*SymbolNode
	for p.consume(tokenKindSymbol) {
		syms = append(syms, &SymbolNode{
			Name: p.lastTok.text,
			Pos:  p.lastTok.pos,
		})
	}
	return syms
}

func (p *parser) parseProduction() {
	if p.consume(tokenKindOr) {
		if p.lastProd == nil {
			raiseSyntaxError(p.lastTok.pos, synErrNoContinuedProd, "")
		}
		p.lastProd.RHS = append(p.lastProd.RHS, p.parseAlternatives()...)
		return
	}

	if !p.consume(tokenKindSymbol) {
		tok := p.peek()
		raiseSyntaxError(tok.pos, synErrNoLHS, tok.text)
	}
	lhs := p.lastTok
	if !p.consume(tokenKindArrow) {
		tok := p.peek()
		raiseSyntaxError(tok.pos, synErrNoArrow, tok.text)
	}
	prod := &ProductionNode{
		LHS: lhs.text,
		Pos: lhs.pos,
	}
	prod.RHS = p.parseAlternatives()
	p.root.Productions = append(p.root.Productions, prod)
	p.lastProd = prod
}

func (p *parser) parseAlternatives() []*AlternativeNode {
	alts := []*AlternativeNode{p.parseAlternative()}
	for p.consume(tokenKindOr) {
		alts = append(alts, p.parseAlternative())
	}
	return alts
}

func (p *parser) parseAlternative() *AlternativeNode {
	alt := &AlternativeNode{
		Elements: []*ElementNode{},
		Pos:      p.peek().pos,
	}
	for p.consume(tokenKindSymbol) {
		if isEpsilonMarker(p.lastTok.text) {
			continue
		}
		alt.Elements = append(alt.Elements, &ElementNode{
			ID:  p.lastTok.text,
			Pos: p.lastTok.pos,
		})
	}
	return alt
}

func isEpsilonMarker(text string) bool {
	switch text {
	case "ε", "eps", "epsilon":
		return true
	}
	return false
}

func (p *parser) parseLexRule() {
	if !p.consume(tokenKindSymbol) {
		raiseSyntaxError(p.peek().pos, synErrLexNoName, p.peek().text)
	}
	nameTok := p.lastTok
	name := nameTok.text
	rule := &LexRuleNode{
		Pos: nameTok.pos,
	}

	inlinePattern := ""
	if i := strings.Index(name, ":/"); i > 0 {
		inlinePattern = name[i+1:]
		name = name[:i+1]
	}
	switch {
	case strings.HasSuffix(name, ":"):
		name = strings.TrimSuffix(name, ":")
	case p.consume(tokenKindSymbol) && p.lastTok.text == ":":
	default:
		raiseSyntaxError(nameTok.pos, synErrLexNoColon, nameTok.text)
	}
	name = unquote(name)
	if name == "" {
		raiseSyntaxError(nameTok.pos, synErrLexNoName, nameTok.text)
	}
	rule.Name = name

	switch {
	case inlinePattern != "":
		if len(inlinePattern) < 2 || !strings.HasSuffix(inlinePattern, "/") {
			raiseSyntaxError(nameTok.pos, synErrUnclosedPattern, inlinePattern)
		}
		rule.Pattern = unescapePattern(inlinePattern)
		rule.PatternPos = newPosition(nameTok.pos.Row, nameTok.pos.Col+len(nameTok.text)-len(inlinePattern))
	case p.consume(tokenKindPattern):
		rule.Pattern = unescapePattern(p.lastTok.text)
		rule.PatternPos = p.lastTok.pos
	default:
		tok := p.peek()
		if tok.kind == tokenKindSymbol && strings.HasPrefix(tok.text, "/") {
			raiseSyntaxError(tok.pos, synErrUnclosedPattern, tok.text)
		}
		raiseSyntaxError(tok.pos, synErrLexNoPattern, tok.text)
	}
	if rule.Pattern == "" {
		raiseSyntaxError(rule.PatternPos, synErrEmptyPattern, "")
	}

	if p.consume(tokenKindSymbol) {
		if p.lastTok.text != "skip" {
			raiseSyntaxError(p.lastTok.pos, synErrLexTrailingElement, p.lastTok.text)
		}
		rule.Skip = true
	}
	p.root.LexRules = append(p.root.LexRules, rule)
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// inferDeclarations fills in the declarations of a headerless grammar: the first
// left-hand side is the start symbol, every left-hand side is a non-terminal and every
// other symbol is a terminal. Symbols keep the order of their first appearance.
func inferDeclarations(root *RootNode) {
	root.Start = &SymbolNode{
		Name: root.Productions[0].LHS,
		Pos:  root.Productions[0].Pos,
	}
	isNonTerm := map[string]bool{}
	for _, prod := range root.Productions {
		if isNonTerm[prod.LHS] {
			continue
		}
		isNonTerm[prod.LHS] = true
		root.NonTerminals = append(root.NonTerminals, &SymbolNode{
			Name: prod.LHS,
			Pos:  prod.Pos,
		})
	}
	seen := map[string]bool{}
	for _, prod := range root.Productions {
		for _, alt := range prod.RHS {
			for _, elem := range alt.Elements {
				if isNonTerm[elem.ID] || seen[elem.ID] {
					continue
				}
				seen[elem.ID] = true
				root.Terminals = append(root.Terminals, &SymbolNode{
					Name: elem.ID,
					Pos:  elem.Pos,
				})
			}
		}
	}
}

func (p *parser) skipNewlines() {
	for p.consume(tokenKindNewline) {
	}
}

func (p *parser) atLineEnd() bool {
	tok := p.peek()
	return tok.kind == tokenKindNewline || tok.kind == tokenKindEOF
}

func (p *parser) expectLineEnd() {
	if p.atLineEnd() {
		p.consume(tokenKindNewline)
		return
	}
	tok := p.peek()
	raiseSyntaxError(tok.pos, synErrInvalidToken, tok.text)
}

// fetch reads the next token. Outside the LEXER section a slash-delimited token is not a
// pattern, so it is split back into the blank-separated symbols it spans.
func (p *parser) fetch() *token {
	if len(p.pending) > 0 {
		tok := p.pending[0]
		p.pending = p.pending[1:]
		return tok
	}
	tok, err := p.lex.next()
	if err != nil {
		panic(err)
	}
	if tok.kind == tokenKindPattern && p.section != tokenKindKWLexer {
		p.pending = splitPatternToken(tok)
		return p.fetch()
	}
	return tok
}

func splitPatternToken(tok *token) []*token {
	var toks []*token
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		text := tok.text[start:end]
		kind := tokenKindSymbol
		if text == "|" {
			kind = tokenKindOr
		}
		toks = append(toks, newSymbolToken(kind, text, newPosition(tok.pos.Row, tok.pos.Col+start)))
		start = -1
	}
	for i := 0; i < len(tok.text); i++ {
		switch tok.text[i] {
		case ' ', '\t', '\r':
			flush(i)
		case '|':
			flush(i)
			start = i
			flush(i + 1)
		default:
			if start < 0 {
				start = i
			}
		}
	}
	flush(len(tok.text))
	return toks
}

func (p *parser) peek() *token {
	if p.peekedTok == nil {
		p.peekedTok = p.fetch()
	}
	return p.peekedTok
}

func (p *parser) consumeAny() {
	p.lastTok = p.peek()
	p.peekedTok = nil
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	if tok.kind != expected {
		return false
	}
	p.lastTok = tok
	p.peekedTok = nil
	return true
}
