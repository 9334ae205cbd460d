package parser

import "fmt"

type parser struct {
	lex       *lexer
	peekedTok *token
	lastTok   *token
}

// Parse parses a pattern into an AST. The grammar is:
//
//	union  := concat ('|' concat)*
//	concat := star+
//	star   := atom '*'?
//	atom   := literal | '(' union ')'
func Parse(pattern string) (root Node, retErr error) {
	p := &parser{
		lex: newLexer(pattern),
	}

	defer func() {
		err := recover()
		if err != nil {
			var ok bool
			retErr, ok = err.(error)
			if !ok {
				panic(err)
			}
			root = nil
			return
		}
	}()

	return p.parseRegexp(), nil
}

func (p *parser) parseRegexp() Node {
	alt := p.parseAlt()
	if alt == nil {
		if p.consume(tokenKindGroupClose) {
			p.raiseParseError(p.lastTok.pos, synErrGroupNoInitiator, "")
		}
		p.raiseParseError(p.peek().pos, synErrNullPattern, "")
	}
	if p.consume(tokenKindGroupClose) {
		p.raiseParseError(p.lastTok.pos, synErrGroupNoInitiator, "")
	}
	p.expect(tokenKindEOF)
	return alt
}

func (p *parser) parseAlt() Node {
	left := p.parseConcat()
	if left == nil {
		if p.consume(tokenKindAlt) {
			p.raiseParseError(p.lastTok.pos, synErrAltLackOfOperand, "")
		}
		return nil
	}
	for {
		if !p.consume(tokenKindAlt) {
			break
		}
		altPos := p.lastTok.pos
		right := p.parseConcat()
		if right == nil {
			p.raiseParseError(altPos, synErrAltLackOfOperand, "")
		}
		left = newUnionNode(left, right)
	}
	return left
}

func (p *parser) parseConcat() Node {
	left := p.parseRepeat()
	for {
		right := p.parseRepeat()
		if right == nil {
			break
		}
		left = genConcatNode(left, right)
	}
	return left
}

func (p *parser) parseRepeat() Node {
	group := p.parseGroup()
	if group == nil {
		if p.consume(tokenKindRepeat) {
			p.raiseParseError(p.lastTok.pos, synErrRepNoTarget, "* needs an operand")
		}
		return nil
	}
	if p.consume(tokenKindRepeat) {
		if p.consume(tokenKindRepeat) {
			p.raiseParseError(p.lastTok.pos, synErrRepDuplicated, "")
		}
		return newStarNode(group)
	}
	return group
}

func (p *parser) parseGroup() Node {
	if p.consume(tokenKindGroupOpen) {
		openPos := p.lastTok.pos
		alt := p.parseAlt()
		if alt == nil {
			if p.consume(tokenKindEOF) {
				p.raiseParseError(openPos, synErrGroupUnclosed, "")
			}
			p.raiseParseError(p.peek().pos, synErrGroupNoElem, "")
		}
		if !p.consume(tokenKindGroupClose) {
			p.raiseParseError(openPos, synErrGroupUnclosed, "")
		}
		return newGroupNode(alt)
	}
	if p.consume(tokenKindChar) {
		return newLiteralNode(p.lastTok.char, p.lastTok.pos)
	}
	return nil
}

func (p *parser) expect(expected tokenKind) {
	if !p.consume(expected) {
		tok := p.peek()
		p.raiseParseError(tok.pos, synErrUnexpectedToken, fmt.Sprintf("expected: %v, actual: %v", expected, tok.kind))
	}
}

func (p *parser) peek() *token {
	if p.peekedTok == nil {
		p.peekedTok = p.fetch()
	}
	return p.peekedTok
}

func (p *parser) fetch() *token {
	tok, err := p.lex.next()
	if err != nil {
		panic(err)
	}
	return tok
}

func (p *parser) consume(expected tokenKind) bool {
	tok := p.peek()
	if tok.kind == expected {
		p.peekedTok = nil
		p.lastTok = tok
		return true
	}
	return false
}

func (p *parser) raiseParseError(pos int, cause error, detail string) {
	panic(&SyntaxError{
		Offset: pos,
		Cause:  cause,
		Detail: detail,
	})
}
