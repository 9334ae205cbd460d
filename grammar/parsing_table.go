package grammar

import (
	"fmt"

	"github.com/bianca-ap01/ParserLR1/grammar/symbol"
	spec "github.com/bianca-ap01/ParserLR1/spec/grammar"
)

type actionEntry int

const actionEntryEmpty = actionEntry(0)

func newShiftActionEntry(state stateNum) actionEntry {
	return actionEntry(state * -1)
}

func newReduceActionEntry(prod productionNum) actionEntry {
	return actionEntry(prod)
}

func (e actionEntry) isEmpty() bool {
	return e == actionEntryEmpty
}

func (e actionEntry) describe() (spec.ActionType, stateNum, productionNum) {
	if e == actionEntryEmpty {
		return spec.ActionTypeError, stateNumInitial, productionNumNil
	}
	if e < 0 {
		return spec.ActionTypeShift, stateNum(e * -1), productionNumNil
	}
	if productionNum(e) == productionNumStart {
		return spec.ActionTypeAccept, stateNumInitial, productionNumStart
	}
	return spec.ActionTypeReduce, stateNumInitial, productionNum(e)
}

func (e actionEntry) action() spec.Action {
	ty, s, p := e.describe()
	return spec.Action{
		Type:       ty,
		State:      s.Int(),
		Production: p.Int(),
	}
}

type goToEntry uint

const goToEntryEmpty = goToEntry(0)

func newGoToEntry(state stateNum) goToEntry {
	return goToEntry(state)
}

func (e goToEntry) describe() (bool, stateNum) {
	if e == goToEntryEmpty {
		return false, stateNumInitial
	}
	return true, stateNum(e)
}

type conflict interface {
	conflict()
}

type shiftReduceConflict struct {
	state     stateNum
	sym       symbol.Symbol
	nextState stateNum
	prodNum   productionNum
}

func (c *shiftReduceConflict) conflict() {
}

type reduceReduceConflict struct {
	state    stateNum
	sym      symbol.Symbol
	prodNum1 productionNum
	prodNum2 productionNum
}

func (c *reduceReduceConflict) conflict() {
}

var (
	_ conflict = &shiftReduceConflict{}
	_ conflict = &reduceReduceConflict{}
)

type ParsingTable struct {
	actionTable      []actionEntry
	goToTable        []goToEntry
	stateCount       int
	terminalCount    int
	nonTerminalCount int

	InitialState stateNum
}

func (t *ParsingTable) getAction(state stateNum, sym symbol.SymbolNum) (spec.ActionType, stateNum, productionNum) {
	pos := state.Int()*t.terminalCount + sym.Int()
	return t.actionTable[pos].describe()
}

func (t *ParsingTable) getGoTo(state stateNum, sym symbol.SymbolNum) (bool, stateNum) {
	pos := state.Int()*t.nonTerminalCount + sym.Int()
	return t.goToTable[pos].describe()
}

func (t *ParsingTable) readAction(row int, col int) actionEntry {
	return t.actionTable[row*t.terminalCount+col]
}

func (t *ParsingTable) writeAction(row int, col int, act actionEntry) {
	t.actionTable[row*t.terminalCount+col] = act
}

func (t *ParsingTable) writeGoTo(state stateNum, sym symbol.Symbol, nextState stateNum) {
	pos := state.Int()*t.nonTerminalCount + sym.Num().Int()
	t.goToTable[pos] = newGoToEntry(nextState)
}

type lrTableBuilder struct {
	automaton    *lr1Automaton
	prods        *productionSet
	termCount    int
	nonTermCount int

	conflicts []conflict
}

// build fills ACTION and GOTO state by state. Shift actions of a state are written before its
// reduce actions, and reduce actions follow the closure order of their items, so conflicts
// are recorded in a deterministic order.
func (b *lrTableBuilder) build() (*ParsingTable, error) {
	var ptab *ParsingTable
	{
		initialState := b.automaton.state(b.automaton.initialState)
		ptab = &ParsingTable{
			actionTable:      make([]actionEntry, len(b.automaton.states)*b.termCount),
			goToTable:        make([]goToEntry, len(b.automaton.states)*b.nonTermCount),
			stateCount:       len(b.automaton.states),
			terminalCount:    b.termCount,
			nonTerminalCount: b.nonTermCount,
			InitialState:     initialState.num,
		}
	}

	for _, state := range b.automaton.states {
		nextSyms := make([]symbol.Symbol, 0, len(state.next))
		for sym := range state.next {
			nextSyms = append(nextSyms, sym)
		}
		symbol.Sort(nextSyms)

		for _, sym := range nextSyms {
			nextState := state.next[sym]
			if sym.IsTerminal() {
				b.writeShiftAction(ptab, state.num, sym, nextState)
			} else {
				ptab.writeGoTo(state.num, sym, nextState)
			}
		}

		for _, item := range state.items {
			if !item.reducible {
				continue
			}
			reducibleProd, ok := b.prods.findByNum(item.prod.num)
			if !ok {
				return nil, fmt.Errorf("reducible production not found: %v", item.prod.num)
			}

			// [S' → S・, $] is written as the reduction of the start production, which
			// the table reads as accept.
			b.writeReduceAction(ptab, state.num, item.lookAhead, reducibleProd.num)
		}
	}

	if len(b.conflicts) > 0 {
		tracer().Infof("%v conflicts", len(b.conflicts))
	}

	return ptab, nil
}

// writeShiftAction writes a shift action to the parsing table. When a shift/reduce conflict occurred,
// we prioritize the shift action.
func (b *lrTableBuilder) writeShiftAction(tab *ParsingTable, state stateNum, sym symbol.Symbol, nextState stateNum) {
	act := tab.readAction(state.Int(), sym.Num().Int())
	if !act.isEmpty() {
		ty, _, p := act.describe()
		if ty == spec.ActionTypeReduce || ty == spec.ActionTypeAccept {
			b.conflicts = append(b.conflicts, &shiftReduceConflict{
				state:     state,
				sym:       sym,
				nextState: nextState,
				prodNum:   p,
			})
		}
	}
	tab.writeAction(state.Int(), sym.Num().Int(), newShiftActionEntry(nextState))
}

// writeReduceAction writes a reduce action to the parsing table. When a shift/reduce conflict occurred,
// we prioritize the shift action, and when a reduce/reduce conflict we prioritize the action that reduces
// the production with higher priority. Productions defined earlier in the grammar file have a higher priority.
func (b *lrTableBuilder) writeReduceAction(tab *ParsingTable, state stateNum, sym symbol.Symbol, prod productionNum) {
	act := tab.readAction(state.Int(), sym.Num().Int())
	if !act.isEmpty() {
		ty, s, p := act.describe()
		switch ty {
		case spec.ActionTypeReduce, spec.ActionTypeAccept:
			if p == prod {
				return
			}

			b.conflicts = append(b.conflicts, &reduceReduceConflict{
				state:    state,
				sym:      sym,
				prodNum1: p,
				prodNum2: prod,
			})
			if p < prod {
				tab.writeAction(state.Int(), sym.Num().Int(), newReduceActionEntry(p))
			} else {
				tab.writeAction(state.Int(), sym.Num().Int(), newReduceActionEntry(prod))
			}
		case spec.ActionTypeShift:
			b.conflicts = append(b.conflicts, &shiftReduceConflict{
				state:     state,
				sym:       sym,
				nextState: s,
				prodNum:   prod,
			})
		}
		return
	}
	tab.writeAction(state.Int(), sym.Num().Int(), newReduceActionEntry(prod))
}
