package parser

import (
	"fmt"
	"sort"
	"strings"
)

// Node is a node of a regular expression AST.
type Node interface {
	fmt.Stringer
	children() []Node
}

type LiteralNode struct {
	Char rune
	Pos  int
}

func newLiteralNode(c rune, pos int) *LiteralNode {
	return &LiteralNode{
		Char: c,
		Pos:  pos,
	}
}

func (n *LiteralNode) String() string {
	if strings.ContainsRune(`|*()\+?`, n.Char) || n.Char == ' ' {
		return fmt.Sprintf(`\%c`, n.Char)
	}
	return string(n.Char)
}

func (n *LiteralNode) children() []Node {
	return nil
}

type ConcatNode struct {
	Left  Node
	Right Node
}

func newConcatNode(left, right Node) *ConcatNode {
	return &ConcatNode{
		Left:  left,
		Right: right,
	}
}

func (n *ConcatNode) String() string {
	return n.Left.String() + n.Right.String()
}

func (n *ConcatNode) children() []Node {
	return []Node{n.Left, n.Right}
}

type UnionNode struct {
	Left  Node
	Right Node
}

func newUnionNode(left, right Node) *UnionNode {
	return &UnionNode{
		Left:  left,
		Right: right,
	}
}

func (n *UnionNode) String() string {
	return n.Left.String() + "|" + n.Right.String()
}

func (n *UnionNode) children() []Node {
	return []Node{n.Left, n.Right}
}

type StarNode struct {
	Operand Node
}

func newStarNode(operand Node) *StarNode {
	return &StarNode{
		Operand: operand,
	}
}

func (n *StarNode) String() string {
	return n.Operand.String() + "*"
}

func (n *StarNode) children() []Node {
	return []Node{n.Operand}
}

// GroupNode keeps the parentheses of the source so that printing an AST gives back an
// equivalent pattern.
type GroupNode struct {
	Operand Node
}

func newGroupNode(operand Node) *GroupNode {
	return &GroupNode{
		Operand: operand,
	}
}

func (n *GroupNode) String() string {
	return "(" + n.Operand.String() + ")"
}

func (n *GroupNode) children() []Node {
	return []Node{n.Operand}
}

// Alphabet returns the literal characters of a tree in ascending order without duplicates.
func Alphabet(root Node) []rune {
	seen := map[rune]struct{}{}
	var walk func(n Node)
	walk = func(n Node) {
		if lit, ok := n.(*LiteralNode); ok {
			seen[lit.Char] = struct{}{}
			return
		}
		for _, c := range n.children() {
			walk(c)
		}
	}
	walk(root)

	alphabet := make([]rune, 0, len(seen))
	for c := range seen {
		alphabet = append(alphabet, c)
	}
	sort.Slice(alphabet, func(i, j int) bool {
		return alphabet[i] < alphabet[j]
	})
	return alphabet
}

func genConcatNode(cs ...Node) Node {
	nonNilNodes := []Node{}
	for _, c := range cs {
		if c == nil {
			continue
		}
		nonNilNodes = append(nonNilNodes, c)
	}
	if len(nonNilNodes) <= 0 {
		return nil
	}
	if len(nonNilNodes) == 1 {
		return nonNilNodes[0]
	}
	var concat Node = newConcatNode(nonNilNodes[0], nonNilNodes[1])
	for _, c := range nonNilNodes[2:] {
		concat = newConcatNode(concat, c)
	}
	return concat
}

func genUnionNode(cs ...Node) Node {
	nonNilNodes := []Node{}
	for _, c := range cs {
		if c == nil {
			continue
		}
		nonNilNodes = append(nonNilNodes, c)
	}
	if len(nonNilNodes) <= 0 {
		return nil
	}
	if len(nonNilNodes) == 1 {
		return nonNilNodes[0]
	}
	var alt Node = newUnionNode(nonNilNodes[0], nonNilNodes[1])
	for _, c := range nonNilNodes[2:] {
		alt = newUnionNode(alt, c)
	}
	return alt
}
