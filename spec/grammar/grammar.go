package grammar

import (
	"fmt"
	"strings"

	mlspec "github.com/nihei9/maleeni/spec"
)

// CompiledGrammar is the self-contained result of a grammar build. It holds no references
// to builder state, so a driver can run it concurrently with other drivers.
type CompiledGrammar struct {
	Name      string         `json:"name"`
	Lexical   *LexicalSpec   `json:"lexical,omitempty"`
	Syntactic *SyntacticSpec `json:"syntactic"`
}

type LexicalSpec struct {
	Maleeni *mlspec.CompiledLexSpec `json:"maleeni"`

	// KindToTerminal maps a maleeni kind ID to a terminal number. Skip kinds map to 0.
	KindToTerminal []int `json:"kind_to_terminal"`

	// Skip is indexed by a maleeni kind ID and holds 1 for kinds the tokenizer drops.
	Skip []int `json:"skip"`
}

type SyntacticSpec struct {
	Action                  []int    `json:"action"`
	GoTo                    []int    `json:"goto"`
	StateCount              int      `json:"state_count"`
	InitialState            int      `json:"initial_state"`
	StartProduction         int      `json:"start_production"`
	LHSSymbols              []int    `json:"lhs_symbols"`
	AlternativeSymbolCounts []int    `json:"alternative_symbol_counts"`
	Productions             []string `json:"productions"`
	Terminals               []string `json:"terminals"`
	TerminalCount           int      `json:"terminal_count"`
	NonTerminals            []string `json:"non_terminals"`
	NonTerminalCount        int      `json:"non_terminal_count"`
	EOFSymbol               int      `json:"eof_symbol"`
}

type ActionType string

const (
	ActionTypeError  = ActionType("error")
	ActionTypeShift  = ActionType("shift")
	ActionTypeReduce = ActionType("reduce")
	ActionTypeAccept = ActionType("accept")
)

// Action is a decoded ACTION entry. State is set for shift actions and Production (a
// production number) for reduce and accept actions.
type Action struct {
	Type       ActionType
	State      int
	Production int
}

// EncodeAction packs an action into a table entry: 0 means no action, a negative value
// shifts to the state -v, and a positive value reduces by the production v. Accept is the
// reduction of the start production.
func EncodeAction(a Action) int {
	switch a.Type {
	case ActionTypeShift:
		return -a.State
	case ActionTypeReduce, ActionTypeAccept:
		return a.Production
	}
	return 0
}

// LookupAction decodes the ACTION entry of a state and a terminal.
func (s *SyntacticSpec) LookupAction(state, terminal int) Action {
	return s.DecodeAction(s.Action[state*s.TerminalCount+terminal])
}

// DecodeAction is the inverse of EncodeAction.
func (s *SyntacticSpec) DecodeAction(v int) Action {
	switch {
	case v < 0:
		return Action{
			Type:  ActionTypeShift,
			State: -v,
		}
	case v > 0:
		if v == s.StartProduction {
			return Action{
				Type:       ActionTypeAccept,
				Production: v,
			}
		}
		return Action{
			Type:       ActionTypeReduce,
			Production: v,
		}
	}
	return Action{
		Type: ActionTypeError,
	}
}

// LookupGoTo returns the GOTO entry of a state and a non-terminal. The second result is
// false when the entry is empty.
func (s *SyntacticSpec) LookupGoTo(state, nonTerminal int) (int, bool) {
	v := s.GoTo[state*s.NonTerminalCount+nonTerminal]
	if v == 0 {
		return 0, false
	}
	return v, true
}

// ExpectedTerminals returns the numbers of the terminals having an ACTION entry in a state.
func (s *SyntacticSpec) ExpectedTerminals(state int) []int {
	var terms []int
	base := state * s.TerminalCount
	for term := 0; term < s.TerminalCount; term++ {
		if s.Action[base+term] != 0 {
			terms = append(terms, term)
		}
	}
	return terms
}

// FormatAction renders an action in its boundary form: `shift(N)`, `reduce(A -> rhs)`,
// `accept`, or the empty string for no action.
func (s *SyntacticSpec) FormatAction(a Action) string {
	switch a.Type {
	case ActionTypeShift:
		return fmt.Sprintf("shift(%v)", a.State)
	case ActionTypeReduce:
		return fmt.Sprintf("reduce(%v)", s.Productions[a.Production])
	case ActionTypeAccept:
		return "accept"
	}
	return ""
}

// FormatProduction renders a production as `A -> x y`, or `A -> ε` for an empty body.
func FormatProduction(lhs string, rhs []string) string {
	if len(rhs) == 0 {
		return fmt.Sprintf("%v -> ε", lhs)
	}
	return fmt.Sprintf("%v -> %v", lhs, strings.Join(rhs, " "))
}
