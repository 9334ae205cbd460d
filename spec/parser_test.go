package spec

import (
	"strings"
	"testing"

	verr "github.com/bianca-ap01/ParserLR1/error"
)

func TestParse(t *testing.T) {
	production := func(lhs string, alts ...*AlternativeNode) *ProductionNode {
		return &ProductionNode{
			LHS: lhs,
			RHS: alts,
		}
	}
	alternative := func(ids ...string) *AlternativeNode {
		elems := []*ElementNode{}
		for _, id := range ids {
			elems = append(elems, &ElementNode{
				ID: id,
			})
		}
		return &AlternativeNode{
			Elements: elems,
		}
	}
	symbols := func(names ...string) []*SymbolNode {
		var syms []*SymbolNode
		for _, name := range names {
			syms = append(syms, &SymbolNode{
				Name: name,
			})
		}
		return syms
	}
	lexRule := func(name, pattern string, skip bool) *LexRuleNode {
		return &LexRuleNode{
			Name:    name,
			Pattern: pattern,
			Skip:    skip,
		}
	}

	tests := []struct {
		caption string
		src     string
		ast     *RootNode
		synErr  *SyntaxError
	}{
		{
			caption: "a sectioned grammar is a valid grammar",
			src: `
START: E
NONTERMINALS: E T F
TERMINALS: + * ( ) id
PRODUCTIONS:
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
LEXER:
id: /[a-z][a-z0-9]*/
'+': /\+/
"*" : /\*/
ws: /[ \t\n]+/ skip
`,
			ast: &RootNode{
				Start:        &SymbolNode{Name: "E"},
				NonTerminals: symbols("E", "T", "F"),
				Terminals:    symbols("+", "*", "(", ")", "id"),
				Productions: []*ProductionNode{
					production("E", alternative("E", "+", "T"), alternative("T")),
					production("T", alternative("T", "*", "F"), alternative("F")),
					production("F", alternative("(", "E", ")"), alternative("id")),
				},
				LexRules: []*LexRuleNode{
					lexRule("id", `[a-z][a-z0-9]*`, false),
					lexRule("+", `\+`, false),
					lexRule("*", `\*`, false),
					lexRule("ws", `[ \t\n]+`, true),
				},
			},
		},
		{
			caption: "declarations can continue on following lines and a production can continue with `|`",
			src: `
START:
S
NONTERMINALS:
S A
TERMINALS: a
b
PRODUCTIONS:
S -> A b
  | b
A -> a # trailing comment
`,
			ast: &RootNode{
				Start:        &SymbolNode{Name: "S"},
				NonTerminals: symbols("S", "A"),
				Terminals:    symbols("a", "b"),
				Productions: []*ProductionNode{
					production("S", alternative("A", "b"), alternative("b")),
					production("A", alternative("a")),
				},
			},
		},
		{
			caption: "productions can contain the empty alternative",
			src: `
START: S
NONTERMINALS: S A B
TERMINALS: a
PRODUCTIONS:
S -> A B
A -> a |
B -> ε | eps a | epsilon
`,
			ast: &RootNode{
				Start:        &SymbolNode{Name: "S"},
				NonTerminals: symbols("S", "A", "B"),
				Terminals:    symbols("a"),
				Productions: []*ProductionNode{
					production("S", alternative("A", "B")),
					production("A", alternative("a"), alternative()),
					production("B", alternative(), alternative("a"), alternative()),
				},
			},
		},
		{
			caption: "a headerless grammar infers its declarations",
			src: `
E -> E + T | T
T -> id
`,
			ast: &RootNode{
				Start:        &SymbolNode{Name: "E"},
				NonTerminals: symbols("E", "T"),
				Terminals:    symbols("+", "id"),
				Productions: []*ProductionNode{
					production("E", alternative("E", "+", "T"), alternative("T")),
					production("T", alternative("id")),
				},
				Headerless: true,
			},
		},
		{
			caption: "slashes in productions are symbols",
			src: `
E -> E / T / F | F
`,
			ast: &RootNode{
				Start:        &SymbolNode{Name: "E"},
				NonTerminals: symbols("E"),
				Terminals:    symbols("/", "T", "F"),
				Productions: []*ProductionNode{
					production("E", alternative("E", "/", "T", "/", "F"), alternative("F")),
				},
				Headerless: true,
			},
		},
		{
			caption: "a lexical rule accepts a pattern attached to its colon",
			src: `
START: S
NONTERMINALS: S
TERMINALS: num
PRODUCTIONS:
S -> num
LEXER:
num:/[0-9]+/
`,
			ast: &RootNode{
				Start:        &SymbolNode{Name: "S"},
				NonTerminals: symbols("S"),
				Terminals:    symbols("num"),
				Productions: []*ProductionNode{
					production("S", alternative("num")),
				},
				LexRules: []*LexRuleNode{
					lexRule("num", `[0-9]+`, false),
				},
			},
		},
		{
			caption: "a grammar must have at least one production",
			src:     ``,
			synErr:  synErrNoProduction,
		},
		{
			caption: "a grammar with only declarations has no production",
			src: `
START: S
NONTERMINALS: S
`,
			synErr: synErrNoProduction,
		},
		{
			caption: "a production needs an arrow",
			src:     `E E + T`,
			synErr:  synErrNoArrow,
		},
		{
			caption: "a production needs a left-hand side",
			src: `
PRODUCTIONS:
-> a
`,
			synErr: synErrNoLHS,
		},
		{
			caption: "a continuation line needs a production",
			src: `
PRODUCTIONS:
| a
`,
			synErr: synErrNoContinuedProd,
		},
		{
			caption: "the START section needs a symbol",
			src: `
START:
PRODUCTIONS:
S -> a
`,
			synErr: synErrNoStartSymbol,
		},
		{
			caption: "the START section accepts one symbol",
			src: `
START: S T
PRODUCTIONS:
S -> a
`,
			synErr: synErrMultipleStart,
		},
		{
			caption: "a section cannot appear twice",
			src: `
PRODUCTIONS:
S -> a
PRODUCTIONS:
S -> b
`,
			synErr: synErrDuplicateSection,
		},
		{
			caption: "headers cannot follow headerless productions",
			src: `
S -> a
LEXER:
a: /a/
`,
			synErr: synErrHeaderAfterProds,
		},
		{
			caption: "a lexical rule needs a colon",
			src: `
PRODUCTIONS:
S -> a
LEXER:
a /a/
`,
			synErr: synErrLexNoColon,
		},
		{
			caption: "a lexical rule needs a pattern",
			src: `
PRODUCTIONS:
S -> a
LEXER:
a:
`,
			synErr: synErrLexNoPattern,
		},
		{
			caption: "a pattern must be closed",
			src: `
PRODUCTIONS:
S -> a
LEXER:
a: /abc
`,
			synErr: synErrUnclosedPattern,
		},
		{
			caption: "a pattern must not be empty",
			src: `
PRODUCTIONS:
S -> a
LEXER:
a: //
`,
			synErr: synErrEmptyPattern,
		},
		{
			caption: "only skip can follow a pattern",
			src: `
PRODUCTIONS:
S -> a
LEXER:
a: /a/ ignore
`,
			synErr: synErrLexTrailingElement,
		},
		{
			caption: "an arrow cannot appear in a declaration",
			src: `
START: S
PRODUCTIONS:
S -> a
NONTERMINALS: S ->
`,
			synErr: synErrInvalidToken,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			ast, err := Parse(strings.NewReader(tt.src))
			if tt.synErr != nil {
				specErr, ok := err.(*verr.SpecError)
				if !ok {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.synErr, err)
				}
				if specErr.Cause != tt.synErr {
					t.Fatalf("unexpected error; want: %v, got: %v", tt.synErr, specErr.Cause)
				}
				if kind, _ := verr.KindOf(err); kind != verr.KindGrammarSyntax {
					t.Fatalf("unexpected error kind; want: %v, got: %v", verr.KindGrammarSyntax, kind)
				}
				if ast != nil {
					t.Fatalf("AST must be nil")
				}
			} else {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if ast == nil {
					t.Fatalf("AST must be non-nil")
				}
				testRootNode(t, ast, tt.ast)
			}
		})
	}
}

func TestParse_ErrorDetail(t *testing.T) {
	src := `START: S
PRODUCTIONS:
S -> a
LEXER:
a: /a/ skipped
`
	_, err := Parse(strings.NewReader(src))
	specErr, ok := err.(*verr.SpecError)
	if !ok {
		t.Fatalf("a SpecError was expected; got: %v", err)
	}
	if specErr.Cause != synErrLexTrailingElement {
		t.Fatalf("unexpected cause; want: %v, got: %v", synErrLexTrailingElement, specErr.Cause)
	}
	if specErr.Detail != "skipped" {
		t.Fatalf("unexpected detail; want: %v, got: %v", "skipped", specErr.Detail)
	}
}

func testRootNode(t *testing.T, root, expected *RootNode) {
	t.Helper()
	if root.Headerless != expected.Headerless {
		t.Fatalf("unexpected headerless flag; want: %v, got: %v", expected.Headerless, root.Headerless)
	}
	if expected.Start == nil {
		if root.Start != nil {
			t.Fatalf("unexpected start symbol; want: nil, got: %v", root.Start.Name)
		}
	} else {
		if root.Start == nil || root.Start.Name != expected.Start.Name {
			t.Fatalf("unexpected start symbol; want: %v, got: %+v", expected.Start.Name, root.Start)
		}
	}
	testSymbolNodes(t, root.NonTerminals, expected.NonTerminals)
	testSymbolNodes(t, root.Terminals, expected.Terminals)
	if len(root.Productions) != len(expected.Productions) {
		t.Fatalf("unexpected length of productions; want: %v, got: %v", len(expected.Productions), len(root.Productions))
	}
	for i, prod := range root.Productions {
		testProductionNode(t, prod, expected.Productions[i])
	}
	if len(root.LexRules) != len(expected.LexRules) {
		t.Fatalf("unexpected length of lexical rules; want: %v, got: %v", len(expected.LexRules), len(root.LexRules))
	}
	for i, rule := range root.LexRules {
		e := expected.LexRules[i]
		if rule.Name != e.Name || rule.Pattern != e.Pattern || rule.Skip != e.Skip {
			t.Fatalf("unexpected lexical rule; want: %+v, got: %+v", e, rule)
		}
	}
}

func testSymbolNodes(t *testing.T, syms, expected []*SymbolNode) {
	t.Helper()
	if len(syms) != len(expected) {
		t.Fatalf("unexpected length of symbols; want: %v, got: %v", len(expected), len(syms))
	}
	for i, sym := range syms {
		if sym.Name != expected[i].Name {
			t.Fatalf("unexpected symbol; want: %v, got: %v", expected[i].Name, sym.Name)
		}
	}
}

func testProductionNode(t *testing.T, prod, expected *ProductionNode) {
	t.Helper()
	if prod.LHS != expected.LHS {
		t.Fatalf("unexpected LHS; want: %v, got: %v", expected.LHS, prod.LHS)
	}
	if len(prod.RHS) != len(expected.RHS) {
		t.Fatalf("unexpected length of an RHS; want: %v, got: %v", len(expected.RHS), len(prod.RHS))
	}
	for i, alt := range prod.RHS {
		testAlternativeNode(t, alt, expected.RHS[i])
	}
}

func testAlternativeNode(t *testing.T, alt, expected *AlternativeNode) {
	t.Helper()
	if len(alt.Elements) != len(expected.Elements) {
		t.Fatalf("unexpected length of elements; want: %v, got: %v", len(expected.Elements), len(alt.Elements))
	}
	for i, elem := range alt.Elements {
		if elem.ID != expected.Elements[i].ID {
			t.Fatalf("unexpected element; want: %v, got: %v", expected.Elements[i].ID, elem.ID)
		}
	}
}
