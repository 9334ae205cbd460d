package driver

import (
	"fmt"
	"io"
	"strings"
)

type SemanticActionSet interface {
	// Shift runs when the driver shifts a symbol onto the state stack. `tok` is a token corresponding to
	// the symbol.
	Shift(tok VToken)

	// Reduce runs when the driver reduces an RHS of a production to its LHS. `prodNum` is a number of
	// the production.
	Reduce(prodNum int)

	// Accept runs when the driver accepts an input.
	Accept()

	// MissError runs when the driver finds no action for a token. `cause` is the token.
	MissError(cause VToken)
}

var _ SemanticActionSet = &SyntaxTreeActionSet{}

// Node is a node of a concrete syntax tree. Text is set for leaves only.
type Node struct {
	KindName string  `json:"kind_name"`
	Text     string  `json:"text,omitempty"`
	Row      int     `json:"row"`
	Col      int     `json:"col"`
	Children []*Node `json:"children,omitempty"`
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	if node.Text != "" {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.KindName, node.Text)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}

// PrettyPrint writes a tree as indented text, two spaces per level. An empty production
// shows up as a non-terminal followed by `ε`.
func PrettyPrint(w io.Writer, node *Node) {
	prettyPrint(w, node, 0)
}

func prettyPrint(w io.Writer, node *Node, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	switch {
	case node.Text != "":
		fmt.Fprintf(w, "%v%v %q\n", indent, node.KindName, node.Text)
	case len(node.Children) == 0:
		fmt.Fprintf(w, "%v%v ε\n", indent, node.KindName)
	default:
		fmt.Fprintf(w, "%v%v\n", indent, node.KindName)
	}
	for _, c := range node.Children {
		prettyPrint(w, c, depth+1)
	}
}

// SyntaxTreeActionSet builds a concrete syntax tree.
type SyntaxTreeActionSet struct {
	gram     Grammar
	cst      *Node
	semStack *semanticStack
}

func NewSyntaxTreeActionSet(gram Grammar) *SyntaxTreeActionSet {
	return &SyntaxTreeActionSet{
		gram:     gram,
		semStack: newSemanticStack(),
	}
}

func (a *SyntaxTreeActionSet) Shift(tok VToken) {
	row, col := tok.Position()
	a.semStack.push(&Node{
		KindName: a.gram.Terminal(tok.TerminalID()),
		Text:     string(tok.Lexeme()),
		Row:      row,
		Col:      col,
	})
}

func (a *SyntaxTreeActionSet) Reduce(prodNum int) {
	lhs := a.gram.LHS(prodNum)

	// When an alternative is empty, `n` will be 0, and `handle` will be empty slice.
	n := a.gram.AlternativeSymbolCount(prodNum)
	handle := a.semStack.pop(n)

	children := make([]*Node, len(handle))
	copy(children, handle)

	node := &Node{
		KindName: a.gram.NonTerminal(lhs),
		Children: children,
	}
	if len(children) > 0 {
		node.Row = children[0].Row
		node.Col = children[0].Col
	}
	a.semStack.push(node)
}

func (a *SyntaxTreeActionSet) Accept() {
	top := a.semStack.pop(1)
	a.cst = top[0]
}

func (a *SyntaxTreeActionSet) MissError(cause VToken) {
}

func (a *SyntaxTreeActionSet) CST() *Node {
	return a.cst
}

type semanticStack struct {
	frames []*Node
}

func newSemanticStack() *semanticStack {
	return &semanticStack{}
}

func (s *semanticStack) push(f *Node) {
	s.frames = append(s.frames, f)
}

func (s *semanticStack) pop(n int) []*Node {
	fs := s.frames[len(s.frames)-n:]
	s.frames = s.frames[:len(s.frames)-n]

	return fs
}
