package driver

import spec "github.com/bianca-ap01/ParserLR1/spec/grammar"

// Grammar is the view of a compiled grammar the driver runs on.
type Grammar interface {
	// InitialState returns the initial state of a parser.
	InitialState() int

	// Action returns the decoded ACTION entry of a state and a terminal.
	Action(state int, terminal int) spec.Action

	// GoTo returns the GOTO entry of a state and a non-terminal.
	GoTo(state int, lhs int) (int, bool)

	// AlternativeSymbolCount returns a symbol count of p production.
	AlternativeSymbolCount(prod int) int

	// ExpectedTerminals returns the terminals having an ACTION entry in a state.
	ExpectedTerminals(state int) []int

	// LHS returns a LHS symbol of a production.
	LHS(prod int) int

	// EOF returns the end-of-input terminal.
	EOF() int

	// Terminal returns a terminal name.
	Terminal(terminal int) string

	// TerminalNum looks up a terminal by name. `$` and `ε` cannot be named in input.
	TerminalNum(name string) (int, bool)

	// NonTerminal returns a non-terminal name.
	NonTerminal(nonTerminal int) string

	// FormatAction renders an action for display.
	FormatAction(act spec.Action) string
}

var _ Grammar = &grammarImpl{}

type grammarImpl struct {
	g     *spec.CompiledGrammar
	terms map[string]int
}

func NewGrammar(g *spec.CompiledGrammar) *grammarImpl {
	terms := map[string]int{}
	for num, name := range g.Syntactic.Terminals {
		if name == "" || num == g.Syntactic.EOFSymbol || name == "ε" {
			continue
		}
		terms[name] = num
	}
	return &grammarImpl{
		g:     g,
		terms: terms,
	}
}

func (g *grammarImpl) InitialState() int {
	return g.g.Syntactic.InitialState
}

func (g *grammarImpl) Action(state int, terminal int) spec.Action {
	return g.g.Syntactic.LookupAction(state, terminal)
}

func (g *grammarImpl) GoTo(state int, lhs int) (int, bool) {
	return g.g.Syntactic.LookupGoTo(state, lhs)
}

func (g *grammarImpl) AlternativeSymbolCount(prod int) int {
	return g.g.Syntactic.AlternativeSymbolCounts[prod]
}

func (g *grammarImpl) ExpectedTerminals(state int) []int {
	return g.g.Syntactic.ExpectedTerminals(state)
}

func (g *grammarImpl) LHS(prod int) int {
	return g.g.Syntactic.LHSSymbols[prod]
}

func (g *grammarImpl) EOF() int {
	return g.g.Syntactic.EOFSymbol
}

func (g *grammarImpl) Terminal(terminal int) string {
	return g.g.Syntactic.Terminals[terminal]
}

func (g *grammarImpl) TerminalNum(name string) (int, bool) {
	num, ok := g.terms[name]
	return num, ok
}

func (g *grammarImpl) NonTerminal(nonTerminal int) string {
	return g.g.Syntactic.NonTerminals[nonTerminal]
}

func (g *grammarImpl) FormatAction(act spec.Action) string {
	if act.Type == spec.ActionTypeError {
		return "error"
	}
	return g.g.Syntactic.FormatAction(act)
}
