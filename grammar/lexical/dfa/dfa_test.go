package dfa

import (
	"testing"

	"github.com/bianca-ap01/ParserLR1/grammar/lexical/nfa"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(t *testing.T, pattern string) *DFA {
	t.Helper()
	n, err := nfa.Compile(pattern)
	require.NoError(t, err)
	return Build(n)
}

func TestBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "lr1.lexical")
	defer teardown()

	d := build(t, "(a|b)*abb")

	states := d.States()
	require.Len(t, states, 5)
	assert.Equal(t, []int{0, 2, 4, 6, 7, 8}, states[0].NFAStates)
	assert.Equal(t, "{0,2,4,6,7,8}", states[0].Key())
	assert.Equal(t, []int{4}, d.Finals())
	assert.Equal(t, []rune{'a', 'b'}, d.Alphabet())

	expected := map[int]map[rune]int{
		0: {'a': 1, 'b': 2},
		1: {'a': 1, 'b': 3},
		2: {'a': 1, 'b': 2},
		3: {'a': 1, 'b': 4},
		4: {'a': 1, 'b': 2},
	}
	for src, row := range expected {
		for c, dst := range row {
			next, ok := d.Next(src, c)
			require.True(t, ok, "%v -%c->", src, c)
			assert.Equal(t, dst, next, "%v -%c->", src, c)
		}
	}
}

func TestAccepts(t *testing.T) {
	tests := []struct {
		pattern  string
		accepted []string
		rejected []string
	}{
		{
			pattern:  "a(b|c)*",
			accepted: []string{"a", "ab", "ac", "abcbc"},
			rejected: []string{"", "b", "ba", "aa", "abd"},
		},
		{
			pattern:  "a*",
			accepted: []string{"", "a", "aaaa"},
			rejected: []string{"b", "ab"},
		},
		{
			pattern:  "(a|b)*abb",
			accepted: []string{"abb", "aabb", "babb", "abababb"},
			rejected: []string{"", "ab", "abba", "bbb"},
		},
		{
			pattern:  `\*\|`,
			accepted: []string{"*|"},
			rejected: []string{"*", "|"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			d := build(t, tt.pattern)
			for _, s := range tt.accepted {
				assert.True(t, d.Accepts(s), "%q must be accepted", s)
			}
			for _, s := range tt.rejected {
				assert.False(t, d.Accepts(s), "%q must be rejected", s)
			}
		})
	}
}

func TestBuild_StartAcceptsEmptyString(t *testing.T) {
	d := build(t, "a*")
	assert.True(t, d.States()[d.Start()].Accepting)
	assert.Contains(t, d.Finals(), d.Start())
}

func TestBuild_NoEmptySubset(t *testing.T) {
	d := build(t, "ab|c")
	for _, s := range d.States() {
		assert.NotEmpty(t, s.NFAStates)
	}
	_, ok := d.Next(d.Start(), 'b')
	assert.False(t, ok)
}

func TestBuild_HandWrittenNFA(t *testing.T) {
	n, err := nfa.New([]int{0, 1, 2, 3}, 0, []int{3}, []nfa.Transition{
		{Src: 0, Symbol: 'x', Dst: 1},
		{Src: 0, Symbol: 'x', Dst: 2},
		{Src: 1, Symbol: 'y', Dst: 3},
		{Src: 2, Symbol: nfa.Epsilon, Dst: 3},
	})
	require.NoError(t, err)
	d := Build(n)
	require.Len(t, d.States(), 3)
	assert.Equal(t, []int{1, 2, 3}, d.States()[1].NFAStates)
	assert.True(t, d.Accepts("x"))
	assert.True(t, d.Accepts("xy"))
	assert.False(t, d.Accepts("y"))
}

func TestBuild_Deterministic(t *testing.T) {
	first := build(t, "(a|b)*a(a|b)")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, build(t, "(a|b)*a(a|b)"))
	}
}
