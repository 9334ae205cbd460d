package grammar

import (
	"fmt"

	"github.com/bianca-ap01/ParserLR1/grammar/symbol"
	spec "github.com/bianca-ap01/ParserLR1/spec/grammar"
)

func (b *lrTableBuilder) genReport(tab *ParsingTable, gram *Grammar, first *firstSet) (*spec.Report, error) {
	follow, err := genFollowSet(gram.productionSet, first)
	if err != nil {
		return nil, err
	}

	augStart := gram.symbolText(gram.augmentedStartSymbol)

	var prods []*spec.Production
	for _, p := range gram.productionSet.getAllProductions() {
		rhs := make([]string, len(p.rhs))
		for i, sym := range p.rhs {
			rhs[i] = gram.symbolText(sym)
		}
		prods = append(prods, &spec.Production{
			Index: p.num.Index(),
			LHS:   gram.symbolText(p.lhs),
			RHS:   rhs,
			Text:  gram.productionText(p),
		})
	}

	var nonTermSyms []symbol.Symbol
	nonTerms := []string{}
	for _, sym := range gram.symbolTable.NonTerminalSymbols() {
		if sym.IsStart() {
			continue
		}
		nonTermSyms = append(nonTermSyms, sym)
		nonTerms = append(nonTerms, gram.symbolText(sym))
	}
	termSyms := gram.symbolTable.TerminalSymbols()
	terms := []string{}
	for _, sym := range termSyms {
		terms = append(terms, gram.symbolText(sym))
	}

	nullable := []string{}
	firstMap := map[string][]string{}
	followMap := map[string][]string{}
	for _, sym := range termSyms {
		text := gram.symbolText(sym)
		firstMap[text] = []string{text}
	}
	for _, sym := range nonTermSyms {
		text := gram.symbolText(sym)

		fst := first.findBySymbol(sym)
		if fst == nil {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %v", text)
		}
		fs := gram.symbolTexts(fst.sorted())
		if fst.empty {
			nullable = append(nullable, text)
			fs = append(fs, symbol.NameEpsilon)
		}
		firstMap[text] = fs

		flw, err := follow.find(sym)
		if err != nil {
			return nil, err
		}
		followMap[text] = gram.symbolTexts(flw.sorted())
	}

	actionSyms := make([]symbol.Symbol, 0, len(termSyms)+1)
	actionSyms = append(actionSyms, termSyms...)
	actionSyms = append(actionSyms, symbol.SymbolEOF)

	states := make([]*spec.State, len(b.automaton.states))
	transitions := []*spec.Transition{}
	action := map[int]map[string]string{}
	goTo := map[int]map[string]int{}
	for _, s := range b.automaton.states {
		kernel := make([]*spec.Item, len(s.kernel.items))
		for i, item := range s.kernel.items {
			kernel[i] = gram.describeItem(item)
		}
		items := make([]*spec.Item, len(s.items))
		for i, item := range s.items {
			items[i] = gram.describeItem(item)
		}
		states[s.num.Int()] = &spec.State{
			Number: s.num.Int(),
			Kernel: kernel,
			Items:  items,
		}

		nextSyms := make([]symbol.Symbol, 0, len(s.next))
		for sym := range s.next {
			nextSyms = append(nextSyms, sym)
		}
		symbol.Sort(nextSyms)
		for _, sym := range nextSyms {
			transitions = append(transitions, &spec.Transition{
				From:   s.num.Int(),
				Symbol: gram.symbolText(sym),
				To:     s.next[sym].Int(),
			})
		}

		acts := map[string]string{}
		for _, sym := range actionSyms {
			ty, _, _ := tab.getAction(s.num, sym.Num())
			if ty == spec.ActionTypeError {
				continue
			}
			acts[gram.symbolText(sym)] = gram.formatActionEntry(tab.readAction(s.num.Int(), sym.Num().Int()))
		}
		action[s.num.Int()] = acts

		gotos := map[string]int{}
		for _, sym := range nonTermSyms {
			ok, next := tab.getGoTo(s.num, sym.Num())
			if !ok {
				continue
			}
			gotos[gram.symbolText(sym)] = next.Int()
		}
		goTo[s.num.Int()] = gotos
	}

	conflicts := []*spec.Conflict{}
	for _, con := range b.conflicts {
		switch c := con.(type) {
		case *shiftReduceConflict:
			conflicts = append(conflicts, &spec.Conflict{
				Type:      spec.ConflictTypeShiftReduce,
				State:     c.state.Int(),
				Symbol:    gram.symbolText(c.sym),
				Adopted:   gram.formatActionEntry(newShiftActionEntry(c.nextState)),
				Discarded: gram.formatActionEntry(newReduceActionEntry(c.prodNum)),
			})
		case *reduceReduceConflict:
			adopted, discarded := c.prodNum1, c.prodNum2
			if discarded < adopted {
				adopted, discarded = discarded, adopted
			}
			conflicts = append(conflicts, &spec.Conflict{
				Type:      spec.ConflictTypeReduceReduce,
				State:     c.state.Int(),
				Symbol:    gram.symbolText(c.sym),
				Adopted:   gram.formatActionEntry(newReduceActionEntry(adopted)),
				Discarded: gram.formatActionEntry(newReduceActionEntry(discarded)),
			})
		}
	}

	return &spec.Report{
		AugmentedStart: augStart,
		Productions:    prods,
		NonTerminals:   nonTerms,
		Terminals:      terms,
		Nullable:       nullable,
		First:          firstMap,
		Follow:         followMap,
		States:         states,
		Transitions:    transitions,
		Action:         action,
		GoTo:           goTo,
		Conflicts:      conflicts,
	}, nil
}

func (g *Grammar) symbolTexts(syms []symbol.Symbol) []string {
	texts := make([]string, len(syms))
	for i, sym := range syms {
		texts[i] = g.symbolText(sym)
	}
	return texts
}

func (g *Grammar) describeItem(item *lrItem) *spec.Item {
	return &spec.Item{
		Production: item.prod.num.Index(),
		LHS:        g.symbolText(item.prod.lhs),
		RHS:        g.symbolTexts(item.prod.rhs),
		Dot:        item.dot,
		LookAhead:  g.symbolText(item.lookAhead),
	}
}

func (g *Grammar) formatActionEntry(e actionEntry) string {
	ty, s, p := e.describe()
	switch ty {
	case spec.ActionTypeShift:
		return fmt.Sprintf("shift(%v)", s)
	case spec.ActionTypeReduce:
		prod, ok := g.productionSet.findByNum(p)
		if !ok {
			return fmt.Sprintf("reduce(%v)", p.Index())
		}
		return fmt.Sprintf("reduce(%v)", g.productionText(prod))
	case spec.ActionTypeAccept:
		return "accept"
	}
	return ""
}
