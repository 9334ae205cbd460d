package grammar

import (
	"fmt"

	"github.com/bianca-ap01/ParserLR1/grammar/symbol"
)

// terminalSet is a set of terminal symbols shared by FIRST and FOLLOW entries.
type terminalSet struct {
	symbols map[symbol.Symbol]struct{}
}

func newTerminalSet() terminalSet {
	return terminalSet{
		symbols: map[symbol.Symbol]struct{}{},
	}
}

func (s *terminalSet) add(sym symbol.Symbol) bool {
	if _, ok := s.symbols[sym]; ok {
		return false
	}
	s.symbols[sym] = struct{}{}
	return true
}

// union adds every member of src and reports whether s grew.
func (s *terminalSet) union(src terminalSet) bool {
	grown := false
	for sym := range src.symbols {
		if s.add(sym) {
			grown = true
		}
	}
	return grown
}

func (s *terminalSet) sorted() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(s.symbols))
	for sym := range s.symbols {
		syms = append(syms, sym)
	}
	symbol.Sort(syms)
	return syms
}

// firstEntry is FIRST of a symbol or a sequence. empty marks a nullable one.
type firstEntry struct {
	terminalSet
	empty bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		terminalSet: newTerminalSet(),
	}
}

func (e *firstEntry) addEmpty() bool {
	if e.empty {
		return false
	}
	e.empty = true
	return true
}

type firstSet struct {
	set map[symbol.Symbol]*firstEntry
}

// find returns FIRST of the RHS of a production from position head on.
func (fst *firstSet) find(prod *production, head int) (*firstEntry, error) {
	if head >= prod.rhsLen {
		return fst.findBySequence(nil)
	}
	return fst.findBySequence(prod.rhs[head:])
}

// findBySequence returns FIRST of a symbol sequence. The entry is empty when every symbol of
// the sequence is nullable, which holds for the empty sequence too.
func (fst *firstSet) findBySequence(seq []symbol.Symbol) (*firstEntry, error) {
	acc := newFirstEntry()
	_, nullable, err := fst.accumulate(&acc.terminalSet, seq)
	if err != nil {
		return nil, err
	}
	if nullable {
		acc.addEmpty()
	}
	return acc, nil
}

func (fst *firstSet) findBySymbol(sym symbol.Symbol) *firstEntry {
	return fst.set[sym]
}

// accumulate adds FIRST of seq to acc, stopping at the first non-nullable symbol. It reports
// whether acc grew and whether the whole sequence is nullable.
func (fst *firstSet) accumulate(acc *terminalSet, seq []symbol.Symbol) (grown bool, nullable bool, err error) {
	for _, sym := range seq {
		if sym.IsTerminal() {
			return acc.add(sym) || grown, false, nil
		}
		e, ok := fst.set[sym]
		if !ok {
			return false, false, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		if acc.union(e.terminalSet) {
			grown = true
		}
		if !e.empty {
			return grown, false, nil
		}
	}
	return grown, true, nil
}

// genFirstSet computes FIRST and nullability of every non-terminal as a least fixpoint over
// the productions.
func genFirstSet(prods *productionSet) (*firstSet, error) {
	fst := &firstSet{
		set: map[symbol.Symbol]*firstEntry{},
	}
	all := prods.getAllProductions()
	for _, prod := range all {
		if _, ok := fst.set[prod.lhs]; !ok {
			fst.set[prod.lhs] = newFirstEntry()
		}
	}

	for changed := true; changed; {
		changed = false
		for _, prod := range all {
			acc := fst.set[prod.lhs]
			grown, nullable, err := fst.accumulate(&acc.terminalSet, prod.rhs)
			if err != nil {
				return nil, err
			}
			if nullable && acc.addEmpty() {
				grown = true
			}
			if grown {
				changed = true
			}
		}
	}
	return fst, nil
}
