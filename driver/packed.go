package driver

import (
	"github.com/bianca-ap01/ParserLR1/compressor"
	spec "github.com/bianca-ap01/ParserLR1/spec/grammar"
)

var _ Grammar = &PackedGrammar{}

// PackedGrammar answers ACTION and GOTO lookups from packed tables instead of the dense
// arrays of a compiled grammar. Every other lookup goes to the compiled grammar.
type PackedGrammar struct {
	*grammarImpl
	action *compressor.ActionTable
	goTo   *compressor.DisplacementTable
}

func NewPackedGrammar(g *spec.CompiledGrammar) (*PackedGrammar, error) {
	s := g.Syntactic

	actionTab, err := compressor.NewTable(s.Action, s.TerminalCount)
	if err != nil {
		return nil, err
	}
	action := compressor.NewActionTable(0)
	err = action.Pack(actionTab)
	if err != nil {
		return nil, err
	}

	goToTab, err := compressor.NewTable(s.GoTo, s.NonTerminalCount)
	if err != nil {
		return nil, err
	}
	goTo := compressor.NewDisplacementTable(0)
	err = goTo.Pack(goToTab)
	if err != nil {
		return nil, err
	}

	tracer().Debugf("packed tables: ACTION %v -> %v entries, GOTO %v -> %v entries", len(s.Action), action.EntryCount(), len(s.GoTo), goTo.EntryCount())

	return &PackedGrammar{
		grammarImpl: NewGrammar(g),
		action:      action,
		goTo:        goTo,
	}, nil
}

func (g *PackedGrammar) Action(state int, terminal int) spec.Action {
	v, err := g.action.Lookup(state, terminal)
	if err != nil {
		return spec.Action{
			Type: spec.ActionTypeError,
		}
	}
	return g.g.Syntactic.DecodeAction(v)
}

func (g *PackedGrammar) GoTo(state int, lhs int) (int, bool) {
	v, err := g.goTo.Lookup(state, lhs)
	if err != nil || v == 0 {
		return 0, false
	}
	return v, true
}

func (g *PackedGrammar) ExpectedTerminals(state int) []int {
	var terms []int
	for term := 0; term < g.g.Syntactic.TerminalCount; term++ {
		v, err := g.action.Lookup(state, term)
		if err == nil && v != 0 {
			terms = append(terms, term)
		}
	}
	return terms
}

// EntryCounts returns the number of entries of the dense tables and of the packed ones.
func (g *PackedGrammar) EntryCounts() (int, int) {
	s := g.g.Syntactic
	return len(s.Action) + len(s.GoTo), g.action.EntryCount() + g.goTo.EntryCount()
}
