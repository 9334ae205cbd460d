package driver

import (
	"fmt"
	"strings"

	verr "github.com/bianca-ap01/ParserLR1/error"
	spec "github.com/bianca-ap01/ParserLR1/spec/grammar"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("lr1.driver")
}

// DefaultMaxSteps bounds a trace so that a grammar deriving a non-terminal from itself
// without consuming input cannot loop forever.
const DefaultMaxSteps = 10000

// StackBottom is the symbol of the bottom stack entry.
const StackBottom = "⟂"

type StackEntry struct {
	State  int    `json:"state"`
	Symbol string `json:"symbol"`
}

func (e StackEntry) String() string {
	return fmt.Sprintf("(%v, %v)", e.State, e.Symbol)
}

// Step records one action. Stack is the stack before the action, and Remaining holds the
// tokens following the lookahead without `$`.
type Step struct {
	Stack      []StackEntry `json:"stack"`
	Lookahead  string       `json:"lookahead"`
	Remaining  []string     `json:"remaining"`
	Action     spec.Action  `json:"-"`
	ActionText string       `json:"action"`
}

var (
	errUnexpectedToken     = fmt.Errorf("unexpected token")
	errInvalidToken        = fmt.Errorf("invalid token")
	errStepBudgetExhausted = fmt.Errorf("step budget exhausted")
	errGoToEmpty           = fmt.Errorf("GOTO entry is empty")
)

// ParseError reports the token on which a parser stopped. ExpectedTerminals lists the
// terminals having an ACTION entry in State.
type ParseError struct {
	Cause             error
	Row               int
	Col               int
	State             int
	Lookahead         string
	ExpectedTerminals []string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	if e.Row != 0 {
		fmt.Fprintf(&b, "%v:%v: ", e.Row, e.Col)
	}
	fmt.Fprintf(&b, "%v", e.Cause)
	if e.Lookahead != "" {
		fmt.Fprintf(&b, ": %v", e.Lookahead)
	}
	if len(e.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(e.ExpectedTerminals, ", "))
	}
	return b.String()
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func (e *ParseError) Kind() verr.Kind {
	return verr.KindParse
}

type ParserOption func(p *Parser) error

// SemanticAction registers a semantic action set.
func SemanticAction(semAct SemanticActionSet) ParserOption {
	return func(p *Parser) error {
		p.semAct = semAct
		return nil
	}
}

// MaxSteps replaces DefaultMaxSteps.
func MaxSteps(n int) ParserOption {
	return func(p *Parser) error {
		if n <= 0 {
			return fmt.Errorf("a step budget must be positive: %v", n)
		}
		p.maxSteps = n
		return nil
	}
}

type Parser struct {
	toks       TokenStream
	gram       Grammar
	stateStack []int
	symStack   []string
	semAct     SemanticActionSet
	maxSteps   int
	steps      []*Step
}

func NewParser(toks TokenStream, gram Grammar, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		toks:     toks,
		gram:     gram,
		maxSteps: DefaultMaxSteps,
	}

	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}

	return p, nil
}

// Parse runs the parser to the end of input and records every step. On a ParseError the
// last recorded step is the failing one.
func (p *Parser) Parse() error {
	toks, err := p.readTokens()
	if err != nil {
		return err
	}

	p.push(p.gram.InitialState(), StackBottom)
	next := 0
	for {
		tok := toks[next]
		if len(p.steps) >= p.maxSteps {
			row, col := tok.Position()
			return &ParseError{
				Cause:     errStepBudgetExhausted,
				Row:       row,
				Col:       col,
				State:     p.top(),
				Lookahead: p.tokenText(tok),
			}
		}

		act := p.lookupAction(tok)
		step := &Step{
			Stack:      p.snapshot(),
			Lookahead:  p.tokenText(tok),
			Remaining:  p.remaining(toks[next+1:]),
			Action:     act,
			ActionText: p.gram.FormatAction(act),
		}
		p.steps = append(p.steps, step)

		switch act.Type {
		case spec.ActionTypeShift:
			p.push(act.State, p.tokenText(tok))
			if p.semAct != nil {
				p.semAct.Shift(tok)
			}
			next++
		case spec.ActionTypeReduce:
			lhs := p.gram.LHS(act.Production)
			p.pop(p.gram.AlternativeSymbolCount(act.Production))
			state, ok := p.gram.GoTo(p.top(), lhs)
			if !ok {
				row, col := tok.Position()
				return &ParseError{
					Cause:     fmt.Errorf("%w; state: %v, non-terminal: %v", errGoToEmpty, p.top(), p.gram.NonTerminal(lhs)),
					Row:       row,
					Col:       col,
					State:     p.top(),
					Lookahead: p.tokenText(tok),
				}
			}
			p.push(state, p.gram.NonTerminal(lhs))
			if p.semAct != nil {
				p.semAct.Reduce(act.Production)
			}
		case spec.ActionTypeAccept:
			if p.semAct != nil {
				p.semAct.Accept()
			}
			tracer().Debugf("accepted in %v steps", len(p.steps))
			return nil
		default:
			if p.semAct != nil {
				p.semAct.MissError(tok)
			}
			row, col := tok.Position()
			cause := errUnexpectedToken
			if tok.Invalid() {
				cause = errInvalidToken
			}
			return &ParseError{
				Cause:             cause,
				Row:               row,
				Col:               col,
				State:             p.top(),
				Lookahead:         p.tokenText(tok),
				ExpectedTerminals: p.searchLookahead(p.top()),
			}
		}
	}
}

// readTokens reads the whole input so that every step can show the remaining tokens. The
// last token is always EOF.
func (p *Parser) readTokens() ([]VToken, error) {
	var toks []VToken
	for {
		tok, err := p.toks.Next()
		if err != nil {
			return nil, &ParseError{
				Cause: err,
			}
		}
		toks = append(toks, tok)
		if tok.EOF() {
			return toks, nil
		}
	}
}

func (p *Parser) lookupAction(tok VToken) spec.Action {
	term := p.tokenToTerminal(tok)
	if term == 0 {
		return spec.Action{
			Type: spec.ActionTypeError,
		}
	}
	return p.gram.Action(p.top(), term)
}

func (p *Parser) tokenToTerminal(tok VToken) int {
	if tok.EOF() {
		return p.gram.EOF()
	}
	if tok.Invalid() {
		return 0
	}
	return tok.TerminalID()
}

func (p *Parser) tokenText(tok VToken) string {
	if tok.EOF() {
		return p.gram.Terminal(p.gram.EOF())
	}
	if tok.Invalid() {
		return string(tok.Lexeme())
	}
	return p.gram.Terminal(tok.TerminalID())
}

func (p *Parser) remaining(toks []VToken) []string {
	rest := []string{}
	for _, tok := range toks {
		if tok.EOF() {
			break
		}
		rest = append(rest, p.tokenText(tok))
	}
	return rest
}

func (p *Parser) snapshot() []StackEntry {
	entries := make([]StackEntry, len(p.stateStack))
	for i, state := range p.stateStack {
		entries[i] = StackEntry{
			State:  state,
			Symbol: p.symStack[i],
		}
	}
	return entries
}

func (p *Parser) top() int {
	return p.stateStack[len(p.stateStack)-1]
}

func (p *Parser) push(state int, sym string) {
	p.stateStack = append(p.stateStack, state)
	p.symStack = append(p.symStack, sym)
}

func (p *Parser) pop(n int) {
	p.stateStack = p.stateStack[:len(p.stateStack)-n]
	p.symStack = p.symStack[:len(p.symStack)-n]
}

// Steps returns the recorded steps.
func (p *Parser) Steps() []*Step {
	return p.steps
}

func (p *Parser) searchLookahead(state int) []string {
	terms := []string{}
	for _, term := range p.gram.ExpectedTerminals(state) {
		terms = append(terms, p.gram.Terminal(term))
	}
	return terms
}
