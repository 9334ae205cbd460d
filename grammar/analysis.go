package grammar

import (
	"fmt"

	"github.com/bianca-ap01/ParserLR1/grammar/symbol"
)

// Analysis answers nullable, FIRST and FOLLOW queries over a grammar by symbol name. It is
// read-only once created.
type Analysis struct {
	symTab *symbol.SymbolTableReader
	first  *firstSet
	follow *followSet
}

func Analyze(gram *Grammar) (*Analysis, error) {
	first, err := genFirstSet(gram.productionSet)
	if err != nil {
		return nil, err
	}
	follow, err := genFollowSet(gram.productionSet, first)
	if err != nil {
		return nil, err
	}
	return &Analysis{
		symTab: gram.symbolTable,
		first:  first,
		follow: follow,
	}, nil
}

func (a *Analysis) lookup(name string) (symbol.Symbol, error) {
	sym, ok := a.symTab.ToSymbol(name)
	if !ok {
		return symbol.SymbolNil, fmt.Errorf("%w: %v", semErrUndeclaredSym, name)
	}
	return sym, nil
}

// Nullable reports whether a symbol derives the empty string. Terminals never do.
func (a *Analysis) Nullable(name string) (bool, error) {
	sym, err := a.lookup(name)
	if err != nil {
		return false, err
	}
	if sym.IsEpsilon() {
		return true, nil
	}
	if !sym.IsNonTerminal() {
		return false, nil
	}
	e := a.first.findBySymbol(sym)
	if e == nil {
		return false, fmt.Errorf("an entry of FIRST was not found; symbol: %v", name)
	}
	return e.empty, nil
}

// First returns FIRST of a symbol sequence in symbol order, and whether the whole sequence
// is nullable. The empty sequence is nullable and has an empty FIRST.
func (a *Analysis) First(names ...string) ([]string, bool, error) {
	seq := make([]symbol.Symbol, 0, len(names))
	for _, name := range names {
		sym, err := a.lookup(name)
		if err != nil {
			return nil, false, err
		}
		if sym.IsEpsilon() {
			continue
		}
		seq = append(seq, sym)
	}
	e, err := a.first.findBySequence(seq)
	if err != nil {
		return nil, false, err
	}
	texts, err := a.texts(e.sorted())
	if err != nil {
		return nil, false, err
	}
	return texts, e.empty, nil
}

// Follow returns FOLLOW of a non-terminal in symbol order. EOF comes last as `$`.
func (a *Analysis) Follow(name string) ([]string, error) {
	sym, err := a.lookup(name)
	if err != nil {
		return nil, err
	}
	if !sym.IsNonTerminal() {
		return nil, fmt.Errorf("FOLLOW is defined for non-terminals only: %v", name)
	}
	e, err := a.follow.find(sym)
	if err != nil {
		return nil, err
	}
	return a.texts(e.sorted())
}

func (a *Analysis) texts(syms []symbol.Symbol) ([]string, error) {
	texts := make([]string, len(syms))
	for i, sym := range syms {
		text, ok := a.symTab.ToText(sym)
		if !ok {
			return nil, fmt.Errorf("symbol not found: %v", sym)
		}
		texts[i] = text
	}
	return texts, nil
}
