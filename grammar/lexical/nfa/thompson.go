package nfa

import (
	"fmt"

	"github.com/bianca-ap01/ParserLR1/grammar/lexical/parser"
)

type fragment struct {
	start  int
	accept int
}

type thompsonBuilder struct {
	stateCount  int
	transitions []Transition
}

// Compile builds the Thompson automaton of a pattern.
func Compile(pattern string) (*NFA, error) {
	root, err := parser.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return FromAST(root), nil
}

// FromAST builds the Thompson automaton of a tree. A fragment's states are numbered once
// its operands are complete, so the accept state of the whole automaton is always the
// last one.
func FromAST(root parser.Node) *NFA {
	b := &thompsonBuilder{}
	frag := b.build(root)
	return newNFA(b.stateCount, frag.start, []int{frag.accept}, parser.Alphabet(root), b.transitions)
}

func (b *thompsonBuilder) build(node parser.Node) fragment {
	switch n := node.(type) {
	case *parser.LiteralNode:
		s := b.newState()
		f := b.newState()
		b.connect(s, n.Char, f)
		return fragment{start: s, accept: f}
	case *parser.ConcatNode:
		l := b.build(n.Left)
		r := b.build(n.Right)
		b.connect(l.accept, Epsilon, r.start)
		return fragment{start: l.start, accept: r.accept}
	case *parser.UnionNode:
		l := b.build(n.Left)
		r := b.build(n.Right)
		s := b.newState()
		f := b.newState()
		b.connect(s, Epsilon, l.start)
		b.connect(s, Epsilon, r.start)
		b.connect(l.accept, Epsilon, f)
		b.connect(r.accept, Epsilon, f)
		return fragment{start: s, accept: f}
	case *parser.StarNode:
		o := b.build(n.Operand)
		s := b.newState()
		f := b.newState()
		b.connect(s, Epsilon, o.start)
		b.connect(s, Epsilon, f)
		b.connect(o.accept, Epsilon, o.start)
		b.connect(o.accept, Epsilon, f)
		return fragment{start: s, accept: f}
	case *parser.GroupNode:
		return b.build(n.Operand)
	}
	panic(fmt.Errorf("unexpected node: %T", node))
}

func (b *thompsonBuilder) newState() int {
	s := b.stateCount
	b.stateCount++
	return s
}

func (b *thompsonBuilder) connect(src int, c rune, dst int) {
	b.transitions = append(b.transitions, Transition{
		Src:    src,
		Symbol: c,
		Dst:    dst,
	})
}
