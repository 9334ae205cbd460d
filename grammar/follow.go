package grammar

import (
	"fmt"

	"github.com/bianca-ap01/ParserLR1/grammar/symbol"
)

// followEntry is FOLLOW of a non-terminal. eof marks that the end of input may follow it.
type followEntry struct {
	terminalSet
	eof bool
}

func newFollowEntry() *followEntry {
	return &followEntry{
		terminalSet: newTerminalSet(),
	}
}

func (e *followEntry) addEOF() bool {
	if e.eof {
		return false
	}
	e.eof = true
	return true
}

// sorted returns the terminals of the entry in symbol order, EOF last.
func (e *followEntry) sorted() []symbol.Symbol {
	syms := e.terminalSet.sorted()
	if e.eof {
		syms = append(syms, symbol.SymbolEOF)
	}
	return syms
}

type followSet struct {
	set map[symbol.Symbol]*followEntry
}

func (flw *followSet) find(sym symbol.Symbol) (*followEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %s", sym)
	}
	return e, nil
}

// genFollowSet computes FOLLOW of every non-terminal as a least fixpoint. The augmented
// start symbol is followed by EOF.
func genFollowSet(prods *productionSet, first *firstSet) (*followSet, error) {
	flw := &followSet{
		set: map[symbol.Symbol]*followEntry{},
	}
	all := prods.getAllProductions()
	for _, prod := range all {
		if _, ok := flw.set[prod.lhs]; ok {
			continue
		}
		e := newFollowEntry()
		if prod.lhs.IsStart() {
			e.addEOF()
		}
		flw.set[prod.lhs] = e
	}

	// FIRST of the rest of an occurrence is fixed. Only FOLLOW of the LHS propagates.
	type edge struct {
		lhs  symbol.Symbol
		sym  symbol.Symbol
		rest *firstEntry
	}
	var edges []edge
	for _, prod := range all {
		for i, sym := range prod.rhs {
			if sym.IsTerminal() {
				continue
			}
			if _, ok := flw.set[sym]; !ok {
				return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %s", sym)
			}
			rest, err := first.find(prod, i+1)
			if err != nil {
				return nil, err
			}
			edges = append(edges, edge{
				lhs:  prod.lhs,
				sym:  sym,
				rest: rest,
			})
		}
	}

	for _, ed := range edges {
		flw.set[ed.sym].union(ed.rest.terminalSet)
	}
	for changed := true; changed; {
		changed = false
		for _, ed := range edges {
			if !ed.rest.empty {
				continue
			}
			dst := flw.set[ed.sym]
			src := flw.set[ed.lhs]
			if dst.union(src.terminalSet) {
				changed = true
			}
			if src.eof && dst.addEOF() {
				changed = true
			}
		}
	}
	return flw, nil
}
