package grammar

import (
	"fmt"

	"github.com/bianca-ap01/ParserLR1/grammar/symbol"
)

// lr1Automaton is the canonical collection of LR(1) item sets. States live in an arena
// indexed by their number and refer to each other by number only.
type lr1Automaton struct {
	initialState stateNum
	states       []*lrState
}

func (a *lr1Automaton) state(num stateNum) *lrState {
	return a.states[num.Int()]
}

// genLR1Automaton builds the canonical collection breadth-first from
// CLOSURE({[S' → ・S, $]}). A state is numbered when it is discovered, so numbering follows
// the discovery order. Successors are explored in symbol order, which makes the numbering
// deterministic.
//
// Two states are the same when their kernels hold the same triples. The closure is a
// function of the kernel and every non-kernel item has its dot at 0, so kernel equality
// and item set equality coincide.
func genLR1Automaton(prods *productionSet, first *firstSet, startSym symbol.Symbol) (*lr1Automaton, error) {
	if !startSym.IsStart() {
		return nil, fmt.Errorf("passed symbol is not a start symbol")
	}

	automaton := &lr1Automaton{
		initialState: stateNumInitial,
	}

	knownKernels := map[kernelID]stateNum{}
	uncheckedStates := []*lrState{}

	// Generate an initial kernel.
	{
		prods, _ := prods.findByLHS(startSym)
		initialItem, err := newLR1Item(prods[0], 0, symbol.SymbolEOF)
		if err != nil {
			return nil, err
		}

		k, err := newKernel([]*lrItem{initialItem})
		if err != nil {
			return nil, err
		}

		state := &lrState{
			kernel: k,
			num:    stateNumInitial,
		}
		knownKernels[k.id] = state.num
		automaton.states = append(automaton.states, state)
		uncheckedStates = append(uncheckedStates, state)
	}

	for len(uncheckedStates) > 0 {
		state := uncheckedStates[0]
		uncheckedStates = uncheckedStates[1:]

		items, err := genLR1Closure(state.kernel.items, prods, first)
		if err != nil {
			return nil, err
		}
		state.items = items

		neighbours, err := genNeighbourKernels(items)
		if err != nil {
			return nil, err
		}

		state.next = map[symbol.Symbol]stateNum{}
		for _, n := range neighbours {
			num, known := knownKernels[n.kernel.id]
			if !known {
				num = stateNum(len(automaton.states))
				knownKernels[n.kernel.id] = num
				s := &lrState{
					kernel: n.kernel,
					num:    num,
				}
				automaton.states = append(automaton.states, s)
				uncheckedStates = append(uncheckedStates, s)
			}
			state.next[n.symbol] = num
		}
	}

	tracer().Debugf("LR(1) automaton: %v states", len(automaton.states))

	return automaton, nil
}

// genLR1Closure returns CLOSURE(items). For every item [A → α・Bβ, a] and every production
// B → γ, it adds [B → ・γ, b] for each b in FIRST(βa), until no item is added. Productions
// are visited in declaration order and look-aheads in symbol order.
func genLR1Closure(items []*lrItem, prods *productionSet, first *firstSet) ([]*lrItem, error) {
	closure := []*lrItem{}
	knownItems := map[lrItemID]struct{}{}
	uncheckedItems := []*lrItem{}
	for _, item := range items {
		if _, exist := knownItems[item.id]; exist {
			continue
		}
		knownItems[item.id] = struct{}{}
		closure = append(closure, item)
		uncheckedItems = append(uncheckedItems, item)
	}
	for len(uncheckedItems) > 0 {
		nextUncheckedItems := []*lrItem{}
		for _, item := range uncheckedItems {
			if !item.dottedSymbol.IsNonTerminal() {
				continue
			}

			lookAheads, err := genClosureLookAheads(item, first)
			if err != nil {
				return nil, err
			}

			ps, _ := prods.findByLHS(item.dottedSymbol)
			for _, prod := range ps {
				for _, a := range lookAheads {
					newItem, err := newLR1Item(prod, 0, a)
					if err != nil {
						return nil, err
					}
					if _, exist := knownItems[newItem.id]; exist {
						continue
					}
					knownItems[newItem.id] = struct{}{}
					closure = append(closure, newItem)
					nextUncheckedItems = append(nextUncheckedItems, newItem)
				}
			}
		}
		uncheckedItems = nextUncheckedItems
	}

	return closure, nil
}

// genClosureLookAheads returns FIRST(βa) for an item [A → α・Bβ, a] in symbol order.
func genClosureLookAheads(item *lrItem, first *firstSet) ([]symbol.Symbol, error) {
	fst, err := first.find(item.prod, item.dot+1)
	if err != nil {
		return nil, err
	}
	if fst.empty {
		fst.add(item.lookAhead)
	}
	return fst.sorted(), nil
}

type neighbourKernel struct {
	symbol symbol.Symbol
	kernel *kernel
}

// genNeighbourKernels returns, for every symbol X after a dot, the kernel of GOTO(items, X).
// The result is ordered by symbol.
func genNeighbourKernels(items []*lrItem) ([]*neighbourKernel, error) {
	kItemMap := map[symbol.Symbol][]*lrItem{}
	nextSyms := []symbol.Symbol{}
	for _, item := range items {
		if item.dottedSymbol.IsNil() {
			continue
		}
		kItem, err := newLR1Item(item.prod, item.dot+1, item.lookAhead)
		if err != nil {
			return nil, err
		}
		if _, ok := kItemMap[item.dottedSymbol]; !ok {
			nextSyms = append(nextSyms, item.dottedSymbol)
		}
		kItemMap[item.dottedSymbol] = append(kItemMap[item.dottedSymbol], kItem)
	}
	symbol.Sort(nextSyms)

	kernels := []*neighbourKernel{}
	for _, sym := range nextSyms {
		k, err := newKernel(kItemMap[sym])
		if err != nil {
			return nil, err
		}
		kernels = append(kernels, &neighbourKernel{
			symbol: sym,
			kernel: k,
		})
	}

	return kernels, nil
}

// genLR1Goto returns GOTO(items, sym): the closure of the items whose dot moved past sym.
// It returns nil when no item has sym after its dot.
func genLR1Goto(items []*lrItem, sym symbol.Symbol, prods *productionSet, first *firstSet) ([]*lrItem, error) {
	var advanced []*lrItem
	for _, item := range items {
		if item.dottedSymbol != sym || sym.IsNil() {
			continue
		}
		kItem, err := newLR1Item(item.prod, item.dot+1, item.lookAhead)
		if err != nil {
			return nil, err
		}
		advanced = append(advanced, kItem)
	}
	if len(advanced) == 0 {
		return nil, nil
	}
	k, err := newKernel(advanced)
	if err != nil {
		return nil, err
	}
	return genLR1Closure(k.items, prods, first)
}
