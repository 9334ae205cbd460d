package engine

import (
	"github.com/bianca-ap01/ParserLR1/grammar/lexical/dfa"
	"github.com/bianca-ap01/ParserLR1/grammar/lexical/nfa"
)

type NFATransition struct {
	Src    int    `json:"src"`
	Symbol string `json:"symbol"`
	Dst    int    `json:"dst"`
}

// NFAResult is the Regex2NFA payload and the NFA2DFA request. Symbols are single
// characters, with `ε` labelling epsilon transitions.
type NFAResult struct {
	States         []int            `json:"states"`
	Start          int              `json:"start"`
	Finals         []int            `json:"finals"`
	Alphabet       []string         `json:"alphabet"`
	Transitions    []*NFATransition `json:"transitions"`
	EpsilonClosure map[int][]int    `json:"epsilonClosure,omitempty"`
}

type DFAState struct {
	ID        int    `json:"id"`
	NFAStates string `json:"nfaStates"`
	Accepting bool   `json:"accepting"`
}

// DFAResult is the NFA2DFA payload. A transition row holds the source under the key
// `state` and the target of every symbol the state can move on under the symbol itself.
type DFAResult struct {
	States      []*DFAState      `json:"states"`
	Start       int              `json:"start"`
	Finals      []int            `json:"finals"`
	Alphabet    []string         `json:"alphabet"`
	Transitions []map[string]int `json:"transitions"`

	automaton *dfa.DFA
}

// Accepts runs the DFA on an input.
func (r *DFAResult) Accepts(input string) bool {
	return r.automaton.Accepts(input)
}

// Regex2NFA compiles a pattern into a Thompson NFA.
func Regex2NFA(pattern string) (*NFAResult, error) {
	n, err := nfa.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return newNFAResult(n), nil
}

func newNFAResult(n *nfa.NFA) *NFAResult {
	res := &NFAResult{
		States:         make([]int, n.StateCount()),
		Start:          n.Start(),
		Finals:         n.Finals(),
		Alphabet:       symbolTexts(n.Alphabet()),
		Transitions:    []*NFATransition{},
		EpsilonClosure: map[int][]int{},
	}
	for s := 0; s < n.StateCount(); s++ {
		res.States[s] = s
		res.EpsilonClosure[s] = n.EpsilonClosure(s)
	}
	for _, t := range n.Transitions() {
		res.Transitions = append(res.Transitions, &NFATransition{
			Src:    t.Src,
			Symbol: t.SymbolText(),
			Dst:    t.Dst,
		})
	}
	return res
}

// NFA2DFA determinizes an NFA given either as a Regex2NFA payload or written by hand in
// the same shape. EpsilonClosure and Alphabet of the request are recomputed, not read.
func NFA2DFA(in *NFAResult) (*DFAResult, error) {
	ts := make([]nfa.Transition, 0, len(in.Transitions))
	for _, t := range in.Transitions {
		c, err := nfa.ParseSymbol(t.Symbol)
		if err != nil {
			return nil, err
		}
		ts = append(ts, nfa.Transition{
			Src:    t.Src,
			Symbol: c,
			Dst:    t.Dst,
		})
	}
	n, err := nfa.New(in.States, in.Start, in.Finals, ts)
	if err != nil {
		return nil, err
	}

	d := dfa.Build(n)
	res := &DFAResult{
		States:      []*DFAState{},
		Start:       d.Start(),
		Finals:      d.Finals(),
		Alphabet:    symbolTexts(d.Alphabet()),
		Transitions: []map[string]int{},
		automaton:   d,
	}
	for _, s := range d.States() {
		res.States = append(res.States, &DFAState{
			ID:        s.ID,
			NFAStates: s.Key(),
			Accepting: s.Accepting,
		})
		row := map[string]int{
			"state": s.ID,
		}
		for _, c := range d.Alphabet() {
			if next, ok := d.Next(s.ID, c); ok {
				row[string(c)] = next
			}
		}
		res.Transitions = append(res.Transitions, row)
	}
	return res, nil
}

func symbolTexts(cs []rune) []string {
	texts := make([]string, len(cs))
	for i, c := range cs {
		texts[i] = nfa.SymbolText(c)
	}
	return texts
}
