package tester

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bianca-ap01/ParserLR1/engine"
	tspec "github.com/bianca-ap01/ParserLR1/spec/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprSrc = `
START: E
NONTERMINALS: E T F
TERMINALS: + * ( ) id
PRODUCTIONS:
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
LEXER:
id: /[a-z]+/
'+': /\+/
'*': /\*/
'(': /\(/
')': /\)/
ws: /[\u{0009}\u{0020}]+/ skip
`

const listSrc = `
START: s
NONTERMINALS: s foos
TERMINALS: foo
PRODUCTIONS:
s -> foos
foos -> foos foo | foo
LEXER:
ws: /[\u{0009}\u{0020}]+/ skip
foo: /foo/
`

func TestTester_Run(t *testing.T) {
	tests := []struct {
		caption    string
		grammarSrc string
		testSrc    string
		passes     bool
	}{
		{
			caption:    "a matching tree",
			grammarSrc: exprSrc,
			testSrc: `
product
---
a * b
---
(E (T (T (F (id "a"))) ("*" "*") (F (id "b"))))
`,
			passes: true,
		},
		{
			caption:    "a tree with wildcards",
			grammarSrc: exprSrc,
			testSrc: `
parenthesized
---
(a)
---
(_ (_ (F ("(") (E (T (F (id)))) (")"))))
`,
			passes: true,
		},
		{
			caption:    "an accepted input",
			grammarSrc: exprSrc,
			testSrc: `
sum
---
a + b + c
---
accept
`,
			passes: true,
		},
		{
			caption:    "a rejected input",
			grammarSrc: exprSrc,
			testSrc: `
dangling operator
---
a +
---
reject
`,
			passes: true,
		},
		{
			caption:    "an input the lexicon cannot tokenize is rejected",
			grammarSrc: exprSrc,
			testSrc: `
unknown character
---
a ? b
---
reject
`,
			passes: true,
		},
		{
			caption:    "an accepted input expected to be rejected",
			grammarSrc: exprSrc,
			testSrc: `
sum
---
a + b
---
reject
`,
		},
		{
			caption:    "a rejected input expected to be accepted",
			grammarSrc: exprSrc,
			testSrc: `
unbalanced
---
(a
---
accept
`,
		},
		{
			caption:    "a tree with a wrong shape",
			grammarSrc: exprSrc,
			testSrc: `
precedence
---
a + b * c
---
(E (E (T (F (id "a")))) ("+" "+") (T (F (id "b"))))
`,
		},
		{
			caption:    "left recursion yields a left-leaning tree",
			grammarSrc: listSrc,
			testSrc: `
list
---
foo foo foo
---
(s
    (foos
        (foos
            (foos (foo "foo"))
            (foo "foo"))
        (foo "foo")))
`,
			passes: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			b, err := engine.BuildLR1(tt.grammarSrc)
			require.NoError(t, err)
			c, err := tspec.ParseTestCase(strings.NewReader(tt.testSrc))
			require.NoError(t, err)

			tester := &Tester{
				Grammar: b.Compiled(),
				Cases: []*TestCaseWithMetadata{
					{
						TestCase: c,
					},
				},
			}
			rs := tester.Run()
			require.Len(t, rs, 1)
			if tt.passes {
				assert.NoError(t, rs[0].Error)
			} else {
				assert.Error(t, rs[0].Error)
			}
		})
	}
}

func TestTester_RunDirectory(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"ok.txt":     "ok\n---\nfoo foo\n---\naccept\n",
		"reject.txt": "reject\n---\nbar\n---\nreject\n",
		"wrong.txt":  "wrong\n---\nfoo\n---\n(s (foos (foo \"bar\")))\n",
		"broken.txt": "broken\n---\nfoo\n",
	}
	for name, src := range cases {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0644))
	}

	b, err := engine.BuildLR1(listSrc)
	require.NoError(t, err)

	tester := &Tester{
		Grammar: b.Compiled(),
		Cases:   ListTestCases(dir),
		Workers: 3,
	}
	rs := tester.Run()
	require.Len(t, rs, 4)

	// os.ReadDir sorts entries by name.
	byName := map[string]*TestResult{}
	for _, r := range rs {
		byName[filepath.Base(r.TestCasePath)] = r
	}
	assert.Error(t, byName["broken.txt"].Error)
	assert.NoError(t, byName["ok.txt"].Error)
	assert.NoError(t, byName["reject.txt"].Error)
	require.Error(t, byName["wrong.txt"].Error)
	assert.Len(t, byName["wrong.txt"].Diffs, 1)
	assert.Contains(t, byName["wrong.txt"].String(), "expected path: s.[0]foos.[0]foo")
	assert.Equal(t, filepath.Join(dir, "broken.txt"), rs[0].TestCasePath)
}
