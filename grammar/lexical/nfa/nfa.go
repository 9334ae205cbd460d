package nfa

import (
	"fmt"
	"sort"

	"github.com/emirpasic/gods/sets/treeset"
)

// Epsilon labels a transition that consumes no input.
const Epsilon rune = -1

// EpsilonText is the display form of Epsilon. Its character is never a valid symbol.
const EpsilonText = "ε"

const epsilonLiteral = 'ε'

type Transition struct {
	Src    int
	Symbol rune
	Dst    int
}

func (t Transition) SymbolText() string {
	return SymbolText(t.Symbol)
}

func SymbolText(c rune) string {
	if c == Epsilon {
		return EpsilonText
	}
	return string(c)
}

// ParseSymbol reads the display form of a symbol: EpsilonText or a single character.
func ParseSymbol(text string) (rune, error) {
	if text == EpsilonText {
		return Epsilon, nil
	}
	cs := []rune(text)
	if len(cs) != 1 {
		return 0, newMalformedError(errInvalidSymbol, fmt.Sprintf("%q", text))
	}
	return cs[0], nil
}

// NFA is an immutable nondeterministic automaton over runes. States are numbered from 0 to
// StateCount()-1.
type NFA struct {
	stateCount  int
	start       int
	finals      []int
	alphabet    []rune
	transitions []Transition
	moves       []map[rune][]int
	closures    [][]int
}

// New validates a hand-written automaton. States must be distinct non-negative numbers,
// every reference must name a listed state and a symbol must be either Epsilon or a
// character. Unlisted numbers below the largest state are states without edges.
func New(states []int, start int, finals []int, transitions []Transition) (*NFA, error) {
	if len(states) == 0 {
		return nil, newMalformedError(errNoState, "")
	}
	listed := map[int]struct{}{}
	stateCount := 0
	for _, s := range states {
		if s < 0 {
			return nil, newMalformedError(errInvalidState, fmt.Sprintf("%v", s))
		}
		if _, ok := listed[s]; ok {
			return nil, newMalformedError(errDuplicateState, fmt.Sprintf("%v", s))
		}
		listed[s] = struct{}{}
		if s+1 > stateCount {
			stateCount = s + 1
		}
	}
	isListed := func(s int) bool {
		_, ok := listed[s]
		return ok
	}
	if !isListed(start) {
		return nil, newMalformedError(errStateOutOfRange, fmt.Sprintf("start: %v", start))
	}
	for _, f := range finals {
		if !isListed(f) {
			return nil, newMalformedError(errStateOutOfRange, fmt.Sprintf("final: %v", f))
		}
	}
	for _, t := range transitions {
		if !isListed(t.Src) || !isListed(t.Dst) {
			return nil, newMalformedError(errStateOutOfRange, fmt.Sprintf("transition: %v -%v-> %v", t.Src, t.SymbolText(), t.Dst))
		}
		if t.Symbol == epsilonLiteral || (t.Symbol < 0 && t.Symbol != Epsilon) {
			return nil, newMalformedError(errInvalidSymbol, fmt.Sprintf("transition: %v -> %v", t.Src, t.Dst))
		}
	}

	alphabet := treeset.NewWith(runeComparator)
	for _, t := range transitions {
		if t.Symbol != Epsilon {
			alphabet.Add(t.Symbol)
		}
	}
	syms := make([]rune, 0, alphabet.Size())
	for _, v := range alphabet.Values() {
		syms = append(syms, v.(rune))
	}

	return newNFA(stateCount, start, finals, syms, transitions), nil
}

func newNFA(stateCount int, start int, finals []int, alphabet []rune, transitions []Transition) *NFA {
	fs := treeset.NewWithIntComparator()
	for _, f := range finals {
		fs.Add(f)
	}

	moves := make([]map[rune][]int, stateCount)
	for i := range moves {
		moves[i] = map[rune][]int{}
	}
	ts := make([]Transition, len(transitions))
	copy(ts, transitions)
	sort.SliceStable(ts, func(i, j int) bool {
		return ts[i].Src < ts[j].Src
	})
	for _, t := range ts {
		moves[t.Src][t.Symbol] = append(moves[t.Src][t.Symbol], t.Dst)
	}

	n := &NFA{
		stateCount:  stateCount,
		start:       start,
		finals:      toInts(fs),
		alphabet:    alphabet,
		transitions: ts,
		moves:       moves,
	}
	n.closures = make([][]int, stateCount)
	for s := 0; s < stateCount; s++ {
		n.closures[s] = n.genEpsilonClosure(s)
	}
	return n
}

func (n *NFA) StateCount() int {
	return n.stateCount
}

func (n *NFA) Start() int {
	return n.start
}

func (n *NFA) Finals() []int {
	return append([]int{}, n.finals...)
}

func (n *NFA) IsFinal(state int) bool {
	i := sort.SearchInts(n.finals, state)
	return i < len(n.finals) && n.finals[i] == state
}

// Alphabet returns the non-epsilon symbols in ascending order.
func (n *NFA) Alphabet() []rune {
	return append([]rune{}, n.alphabet...)
}

// Transitions returns the edges ordered by source state, keeping creation order among the
// edges leaving the same state.
func (n *NFA) Transitions() []Transition {
	return append([]Transition{}, n.transitions...)
}

// Move returns the states reachable from state by exactly one c-edge.
func (n *NFA) Move(state int, c rune) []int {
	return append([]int{}, n.moves[state][c]...)
}

// EpsilonClosure returns the sorted set of states reachable from state via epsilon edges,
// state itself included.
func (n *NFA) EpsilonClosure(state int) []int {
	return append([]int{}, n.closures[state]...)
}

func (n *NFA) genEpsilonClosure(state int) []int {
	closure := treeset.NewWithIntComparator()
	closure.Add(state)
	stack := []int{state}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, d := range n.moves[s][Epsilon] {
			if closure.Contains(d) {
				continue
			}
			closure.Add(d)
			stack = append(stack, d)
		}
	}
	return toInts(closure)
}

func toInts(set *treeset.Set) []int {
	ints := make([]int, 0, set.Size())
	for _, v := range set.Values() {
		ints = append(ints, v.(int))
	}
	return ints
}

func runeComparator(a, b interface{}) int {
	x := a.(rune)
	y := b.(rune)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}
