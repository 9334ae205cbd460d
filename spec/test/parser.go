package test

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"

	"github.com/bianca-ap01/ParserLR1/driver"
	"github.com/bianca-ap01/ParserLR1/engine"
	specgrammar "github.com/bianca-ap01/ParserLR1/spec/grammar"
)

type TreeDiff struct {
	ExpectedPath string
	ActualPath   string
	Message      string
}

func newTreeDiff(expected, actual *Tree, message string) *TreeDiff {
	return &TreeDiff{
		ExpectedPath: expected.path(),
		ActualPath:   actual.path(),
		Message:      message,
	}
}

type Tree struct {
	Parent   *Tree
	Offset   int
	Kind     string
	Children []*Tree
	Lexeme   string
}

func NewNonTerminalTree(kind string, children ...*Tree) *Tree {
	return &Tree{
		Kind:     kind,
		Children: children,
	}
}

func NewTerminalNode(kind string, lexeme string) *Tree {
	return &Tree{
		Kind:   kind,
		Lexeme: lexeme,
	}
}

func (t *Tree) Fill() *Tree {
	for i, c := range t.Children {
		c.Parent = t
		c.Offset = i
		c.Fill()
	}
	return t
}

func (t *Tree) path() string {
	if t.Parent == nil {
		return t.Kind
	}
	return fmt.Sprintf("%v.[%v]%v", t.Parent.path(), t.Offset, t.Kind)
}

func (t *Tree) Format() []byte {
	var b bytes.Buffer
	t.format(&b, 0)
	return b.Bytes()
}

func (t *Tree) format(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString("    ")
	}
	buf.WriteString("(")
	buf.WriteString(formatKind(t.Kind))
	if t.Lexeme != "" {
		fmt.Fprintf(buf, " %q", t.Lexeme)
	}
	if len(t.Children) > 0 {
		buf.WriteString("\n")
		for i, c := range t.Children {
			c.format(buf, depth+1)
			if i < len(t.Children)-1 {
				buf.WriteString("\n")
			}
		}
	}
	buf.WriteString(")")
}

var reIdentifier = regexp.MustCompile(`^[0-9A-Za-z_]+$`)

func formatKind(kind string) string {
	if reIdentifier.MatchString(kind) {
		return kind
	}
	return fmt.Sprintf("%q", kind)
}

// DiffTree compares an expected tree with an actual one. An expected kind `_` matches any
// kind, and an expected leaf without a lexeme matches any lexeme.
func DiffTree(expected, actual *Tree) []*TreeDiff {
	if expected == nil && actual == nil {
		return nil
	}
	// _ matches any symbols.
	if expected.Kind != "_" && actual.Kind != expected.Kind {
		msg := fmt.Sprintf("unexpected kind: expected '%v' but got '%v'", expected.Kind, actual.Kind)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if expected.Lexeme != "" && expected.Lexeme != actual.Lexeme {
		msg := fmt.Sprintf("unexpected lexeme: expected '%v' but got '%v'", expected.Lexeme, actual.Lexeme)
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	if len(actual.Children) != len(expected.Children) {
		msg := fmt.Sprintf("unexpected node count: expected %v but got %v", len(expected.Children), len(actual.Children))
		return []*TreeDiff{
			newTreeDiff(expected, actual, msg),
		}
	}
	var diffs []*TreeDiff
	for i, exp := range expected.Children {
		if ds := DiffTree(exp, actual.Children[i]); len(ds) > 0 {
			diffs = append(diffs, ds...)
		}
	}
	return diffs
}

type Outcome string

const (
	OutcomeAccept = Outcome("accept")
	OutcomeReject = Outcome("reject")
	OutcomeTree   = Outcome("tree")
)

// TestCase is a test case file: a description, the input, and the expected outcome, in
// three parts separated by `---` lines. The outcome is `accept`, `reject`, or a tree
// written as `(kind children...)` where a leaf may carry its lexeme as a quoted string.
type TestCase struct {
	Description string
	Source      []byte
	Outcome     Outcome
	Output      *Tree
}

func ParseTestCase(r io.Reader) (*TestCase, error) {
	parts, err := splitIntoParts(r)
	if err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("too many or too few part delimiters: a test case consists of just tree parts: %v parts found", len(parts))
	}

	tc := &TestCase{
		Description: string(parts[0].buf),
		Source:      parts[1].buf,
	}
	switch expected := strings.TrimSpace(string(parts[2].buf)); expected {
	case string(OutcomeAccept):
		tc.Outcome = OutcomeAccept
	case string(OutcomeReject):
		tc.Outcome = OutcomeReject
	default:
		tp := &treeParser{
			lineOffset: parts[0].lineCount + parts[1].lineCount + 2,
		}
		tree, err := tp.parseTree(bytes.NewReader(parts[2].buf))
		if err != nil {
			return nil, err
		}
		tc.Outcome = OutcomeTree
		tc.Output = tree
	}
	return tc, nil
}

type testCasePart struct {
	buf       []byte
	lineCount int
}

func splitIntoParts(r io.Reader) ([]*testCasePart, error) {
	var bufs []*testCasePart
	s := bufio.NewScanner(r)
	for {
		buf, lineCount, err := readPart(s)
		if err != nil {
			return nil, err
		}
		if buf == nil {
			break
		}
		bufs = append(bufs, &testCasePart{
			buf:       buf,
			lineCount: lineCount,
		})
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return bufs, nil
}

var reDelim = regexp.MustCompile(`^\s*---+\s*$`)

func readPart(s *bufio.Scanner) ([]byte, int, error) {
	if !s.Scan() {
		return nil, 0, s.Err()
	}
	buf := &bytes.Buffer{}
	line := s.Bytes()
	if reDelim.Match(line) {
		// Return an empty slice because (*bytes.Buffer).Bytes() returns nil if we have never written data.
		return []byte{}, 0, nil
	}
	_, err := buf.Write(line)
	if err != nil {
		return nil, 0, err
	}
	lineCount := 1
	for s.Scan() {
		line := s.Bytes()
		if reDelim.Match(line) {
			return buf.Bytes(), lineCount, nil
		}
		_, err := buf.Write([]byte("\n"))
		if err != nil {
			return nil, 0, err
		}
		_, err = buf.Write(line)
		if err != nil {
			return nil, 0, err
		}
		lineCount++
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), lineCount, nil
}

// treeGrammarSrc describes the tree notation of expected outcomes. It is built with this
// toolkit itself.
const treeGrammarSrc = `
START: tree
NONTERMINALS: tree tree_list kind
TERMINALS: l_paren r_paren identifier string
PRODUCTIONS:
tree -> l_paren kind tree_list r_paren | l_paren kind string r_paren
tree_list -> tree_list tree | ε
kind -> identifier | string
LEXER:
ws: /[\u{0009}\u{000A}\u{000D}\u{0020}]+/ skip
l_paren: /\(/
r_paren: /\)/
identifier: /[0-9A-Za-z_]+/
string: /"[^"]*"/
`

var (
	treeGrammar     *specgrammar.CompiledGrammar
	treeGrammarErr  error
	treeGrammarOnce sync.Once
)

func compiledTreeGrammar() (*specgrammar.CompiledGrammar, error) {
	treeGrammarOnce.Do(func() {
		var res *engine.BuildResult
		res, treeGrammarErr = engine.BuildLR1(treeGrammarSrc)
		if treeGrammarErr != nil {
			return
		}
		treeGrammar = res.Compiled()
	})
	return treeGrammar, treeGrammarErr
}

type treeParser struct {
	lineOffset int
}

func (tp *treeParser) parseTree(src io.Reader) (*Tree, error) {
	g, err := compiledTreeGrammar()
	if err != nil {
		return nil, err
	}
	text, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	res, err := engine.Trace(g, engine.Input{
		Source: string(text),
	})
	if err != nil {
		var parseErr *driver.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("%v:%v: invalid tree: %v", tp.lineOffset+parseErr.Row, parseErr.Col, err)
		}
		return nil, err
	}
	return tp.genTree(res.Tree).Fill(), nil
}

// genTree converts a CST of the tree notation. The children of a `tree` node are
// l_paren, kind, and then either tree_list or string, and r_paren.
func (tp *treeParser) genTree(node *driver.Node) *Tree {
	kind := kindText(node.Children[1])
	body := node.Children[2]
	if body.KindName == "string" {
		return NewTerminalNode(kind, unquote(body.Text))
	}

	var children []*Tree
	for _, c := range flattenTreeList(body) {
		children = append(children, tp.genTree(c))
	}
	return NewNonTerminalTree(kind, children...)
}

func kindText(kind *driver.Node) string {
	leaf := kind.Children[0]
	if leaf.KindName == "string" {
		return unquote(leaf.Text)
	}
	return leaf.Text
}

// flattenTreeList turns the left-recursive tree_list into a slice.
func flattenTreeList(list *driver.Node) []*driver.Node {
	if len(list.Children) == 0 {
		return nil
	}
	return append(flattenTreeList(list.Children[0]), list.Children[1])
}

func unquote(s string) string {
	return strings.TrimSuffix(strings.TrimPrefix(s, `"`), `"`)
}
