package test

import (
	"fmt"
	"reflect"
	"strings"
	"testing"
)

func TestDiffTree(t *testing.T) {
	nt := NewNonTerminalTree
	leaf := NewTerminalNode
	sum := func() *Tree {
		return nt("E",
			nt("E", nt("T", nt("F", leaf("id", "a")))),
			leaf("+", "+"),
			nt("T", nt("F", leaf("id", "b"))),
		)
	}
	tests := []struct {
		caption  string
		expected *Tree
		actual   *Tree
		diffs    int
	}{
		{
			caption:  "a single node",
			expected: nt("S"),
			actual:   nt("S"),
		},
		{
			caption:  "a whole derivation",
			expected: sum(),
			actual:   sum(),
		},
		{
			caption:  "kinds differ at the root",
			expected: nt("S"),
			actual:   nt("E"),
			diffs:    1,
		},
		{
			caption:  "lexemes differ",
			expected: nt("F", leaf("id", "a")),
			actual:   nt("F", leaf("id", "b")),
			diffs:    1,
		},
		{
			caption:  "the actual tree lacks a child",
			expected: nt("E", nt("T"), leaf("+", "+")),
			actual:   nt("E", nt("T")),
			diffs:    1,
		},
		{
			caption:  "the actual tree has an extra child",
			expected: nt("E", nt("T")),
			actual:   nt("E", nt("T"), leaf("+", "+")),
			diffs:    1,
		},
		{
			caption:  "every mismatched sibling is reported",
			expected: nt("E", nt("T", nt("F")), nt("T", nt("F"))),
			actual:   nt("E", nt("T", nt("id")), nt("T", nt("num"))),
			diffs:    2,
		},
		{
			caption:  "a deep mismatch",
			expected: sum(),
			actual: nt("E",
				nt("E", nt("T", nt("F", leaf("id", "a")))),
				leaf("+", "+"),
				nt("T", nt("F", leaf("num", "1"))),
			),
			diffs: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			diffs := DiffTree(tt.expected.Fill(), tt.actual.Fill())
			if len(diffs) != tt.diffs {
				t.Fatalf("unexpected diff count; want: %v, got: %v", tt.diffs, len(diffs))
			}
		})
	}
}

func TestParseTestCase(t *testing.T) {
	tests := []struct {
		src      string
		tc       *TestCase
		parseErr bool
	}{
		{
			src: `test
---
foo
---
(foo)
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte("foo"),
				Outcome:     OutcomeTree,
				Output:      NewNonTerminalTree("foo").Fill(),
			},
		},
		{
			src: `
test

---

foo

---

(foo)

`,
			tc: &TestCase{
				Description: "\ntest\n",
				Source:      []byte("\nfoo\n"),
				Outcome:     OutcomeTree,
				Output:      NewNonTerminalTree("foo").Fill(),
			},
		},
		// The length of a part delimiter may be greater than 3.
		{
			src: `
test
----
foo
----
(foo)
`,
			tc: &TestCase{
				Description: "\ntest",
				Source:      []byte("foo"),
				Outcome:     OutcomeTree,
				Output:      NewNonTerminalTree("foo").Fill(),
			},
		},
		// The description part may be empty.
		{
			src: `----
foo
----
(foo)
`,
			tc: &TestCase{
				Description: "",
				Source:      []byte("foo"),
				Outcome:     OutcomeTree,
				Output:      NewNonTerminalTree("foo").Fill(),
			},
		},
		// The source part may be empty.
		{
			src: `test
---
---
(foo)
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte{},
				Outcome:     OutcomeTree,
				Output:      NewNonTerminalTree("foo").Fill(),
			},
		},
		// NOTE: If there is a delimiter at the end of a test case, we really want to make it a syntax error,
		// but we allow it to simplify the implementation of the parser.
		{
			src: `test
----
foo
----
(foo)
---
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte("foo"),
				Outcome:     OutcomeTree,
				Output:      NewNonTerminalTree("foo").Fill(),
			},
		},
		{
			src: `test
---
a b
---
accept
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte("a b"),
				Outcome:     OutcomeAccept,
			},
		},
		{
			src: `test
---
a b
---
  reject
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte("a b"),
				Outcome:     OutcomeReject,
			},
		},
		// A leaf may carry a lexeme, and a kind that is not an identifier is quoted.
		{
			src: `test
---
x + y
---
(E
    (E (id "x"))
    ("+" "+")
    (T (id)))
`,
			tc: &TestCase{
				Description: "test",
				Source:      []byte("x + y"),
				Outcome:     OutcomeTree,
				Output: NewNonTerminalTree("E",
					NewNonTerminalTree("E",
						NewTerminalNode("id", "x"),
					),
					NewTerminalNode("+", "+"),
					NewNonTerminalTree("T",
						NewNonTerminalTree("id"),
					),
				).Fill(),
			},
		},
		{
			src:      ``,
			parseErr: true,
		},
		{
			src: `test
---
`,
			parseErr: true,
		},
		{
			src: `test
---
foo
`,
			parseErr: true,
		},
		{
			src: `test
---
foo
---
`,
			parseErr: true,
		},
		{
			src: `test
--
foo
--
(foo)
`,
			parseErr: true,
		},
		{
			src: `test
---
foo
---
?
`,
			parseErr: true,
		},
		{
			src: `test
---
foo
---
(foo
`,
			parseErr: true,
		},
	}
	for i, tt := range tests {
		t.Run(fmt.Sprintf("#%v", i), func(t *testing.T) {
			tc, err := ParseTestCase(strings.NewReader(tt.src))
			if tt.parseErr {
				if err == nil {
					t.Fatalf("an expected error didn't occur")
				}
			} else {
				if err != nil {
					t.Fatal(err)
				}
				testTestCase(t, tt.tc, tc)
			}
		})
	}
}

func testTestCase(t *testing.T, expected, actual *TestCase) {
	t.Helper()

	if expected.Description != actual.Description ||
		!reflect.DeepEqual(expected.Source, actual.Source) ||
		expected.Outcome != actual.Outcome {
		t.Fatalf("unexpected test case: want: %#v, got: %#v", expected, actual)
	}
	if expected.Output == nil || actual.Output == nil {
		if expected.Output != actual.Output {
			t.Fatalf("unexpected output: want: %#v, got: %#v", expected.Output, actual.Output)
		}
		return
	}
	if len(DiffTree(expected.Output, actual.Output)) > 0 || expected.Output.Lexeme != actual.Output.Lexeme {
		t.Fatalf("unexpected test case: want: %#v, got: %#v", expected, actual)
	}
}

func TestTree_Format(t *testing.T) {
	tree := NewNonTerminalTree("E",
		NewTerminalNode("+", "+"),
		NewNonTerminalTree("T"),
	)
	expected := `(E
    ("+" "+")
    (T))`
	if string(tree.Format()) != expected {
		t.Fatalf("unexpected output:\n%v", string(tree.Format()))
	}
}

func TestDiffTree_Wildcards(t *testing.T) {
	expected := NewNonTerminalTree("_",
		NewNonTerminalTree("id"),
	).Fill()
	actual := NewNonTerminalTree("E",
		NewTerminalNode("id", "x"),
	).Fill()
	if diffs := DiffTree(expected, actual); len(diffs) > 0 {
		t.Fatalf("unexpected diffs: %v", diffs[0].Message)
	}

	expected = NewNonTerminalTree("E",
		NewTerminalNode("id", "y"),
	).Fill()
	diffs := DiffTree(expected, actual)
	if len(diffs) != 1 {
		t.Fatalf("unexpected diff count: %v", len(diffs))
	}
	if diffs[0].ExpectedPath != "E.[0]id" {
		t.Fatalf("unexpected path: %v", diffs[0].ExpectedPath)
	}
}
