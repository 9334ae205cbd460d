package dfa

import (
	"fmt"
	"strings"

	"github.com/bianca-ap01/ParserLR1/grammar/lexical/nfa"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("lr1.lexical")
}

// State is a DFA state standing for a set of NFA states.
type State struct {
	ID        int
	NFAStates []int
	Accepting bool
}

// Key renders the underlying NFA states as `{0,1,2}`.
func (s *State) Key() string {
	return subsetKey(s.NFAStates)
}

// DFA is the result of the subset construction. State 0 is the initial state and a state
// has no entry for a symbol it cannot move on.
type DFA struct {
	states   []*State
	alphabet []rune
	trans    []map[rune]int
}

// Build determinizes an NFA. States are numbered in the order they are discovered, taking
// the symbols of every state in ascending order. A subset becomes accepting when it holds
// a final state of the NFA.
func Build(n *nfa.NFA) *DFA {
	closures := map[string][]int{}
	closure := func(states []int) []int {
		key := subsetKey(states)
		if c, ok := closures[key]; ok {
			return c
		}
		set := treeset.NewWithIntComparator()
		for _, s := range states {
			for _, c := range n.EpsilonClosure(s) {
				set.Add(c)
			}
		}
		c := toInts(set)
		closures[key] = c
		return c
	}

	d := &DFA{
		alphabet: n.Alphabet(),
	}
	known := map[string]int{}
	add := func(subset []int) int {
		key := subsetKey(subset)
		if id, ok := known[key]; ok {
			return id
		}
		id := len(d.states)
		accepting := false
		for _, s := range subset {
			if n.IsFinal(s) {
				accepting = true
				break
			}
		}
		d.states = append(d.states, &State{
			ID:        id,
			NFAStates: subset,
			Accepting: accepting,
		})
		d.trans = append(d.trans, map[rune]int{})
		known[key] = id
		return id
	}

	add(closure([]int{n.Start()}))
	for next := 0; next < len(d.states); next++ {
		state := d.states[next]
		for _, c := range d.alphabet {
			moved := treeset.NewWithIntComparator()
			for _, s := range state.NFAStates {
				for _, dst := range n.Move(s, c) {
					moved.Add(dst)
				}
			}
			if moved.Empty() {
				continue
			}
			d.trans[state.ID][c] = add(closure(toInts(moved)))
		}
	}

	tracer().Debugf("DFA: %v states from %v NFA states", len(d.states), n.StateCount())

	return d
}

func (d *DFA) States() []State {
	states := make([]State, len(d.states))
	for i, s := range d.states {
		states[i] = State{
			ID:        s.ID,
			NFAStates: append([]int{}, s.NFAStates...),
			Accepting: s.Accepting,
		}
	}
	return states
}

func (d *DFA) Start() int {
	return 0
}

func (d *DFA) Finals() []int {
	finals := []int{}
	for _, s := range d.states {
		if s.Accepting {
			finals = append(finals, s.ID)
		}
	}
	return finals
}

func (d *DFA) Alphabet() []rune {
	return append([]rune{}, d.alphabet...)
}

// Next returns the successor of state on c.
func (d *DFA) Next(state int, c rune) (int, bool) {
	if state < 0 || state >= len(d.trans) {
		return 0, false
	}
	next, ok := d.trans[state][c]
	return next, ok
}

// Accepts reports whether the DFA accepts the whole input.
func (d *DFA) Accepts(input string) bool {
	state := d.Start()
	for _, c := range input {
		next, ok := d.Next(state, c)
		if !ok {
			return false
		}
		state = next
	}
	return d.states[state].Accepting
}

func subsetKey(states []int) string {
	var b strings.Builder
	b.WriteString("{")
	for i, s := range states {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, "%v", s)
	}
	b.WriteString("}")
	return b.String()
}

func toInts(set *treeset.Set) []int {
	ints := make([]int, 0, set.Size())
	for _, v := range set.Values() {
		ints = append(ints, v.(int))
	}
	return ints
}
