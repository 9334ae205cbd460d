// Package engine exposes the toolkit as request/response operations. Every operation is a
// pure function of its arguments and is safe for concurrent use.
package engine

import (
	"strings"

	"github.com/bianca-ap01/ParserLR1/driver"
	"github.com/bianca-ap01/ParserLR1/grammar"
	"github.com/bianca-ap01/ParserLR1/spec"
	specgrammar "github.com/bianca-ap01/ParserLR1/spec/grammar"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("lr1.engine")
}

// BuildResult is the BuildLR1 payload. The report fields are inlined.
type BuildResult struct {
	*specgrammar.Report
	compiled *specgrammar.CompiledGrammar
}

// Compiled returns the tables the result was reported from.
func (r *BuildResult) Compiled() *specgrammar.CompiledGrammar {
	return r.compiled
}

// Warnings returns the conflicts of the table as errors of the ConflictWarning kind.
func (r *BuildResult) Warnings() []*ConflictWarning {
	var ws []*ConflictWarning
	for _, c := range r.Conflicts {
		ws = append(ws, &ConflictWarning{
			Conflict: c,
		})
	}
	return ws
}

// BuildLR1 builds the canonical LR(1) automaton and tables of a grammar text.
func BuildLR1(text string) (*BuildResult, error) {
	ast, err := spec.Parse(strings.NewReader(text))
	if err != nil {
		return nil, err
	}

	b := grammar.GrammarBuilder{
		AST: ast,
	}
	gram, err := b.Build()
	if err != nil {
		return nil, err
	}

	cg, report, err := grammar.Compile(gram, grammar.EnableReporting())
	if err != nil {
		return nil, err
	}

	tracer().Debugf("built %v states, %v conflicts", len(report.States), len(report.Conflicts))

	return &BuildResult{
		Report:   report,
		compiled: cg,
	}, nil
}

// Input is the token input of TraceParse. Tokens, when not nil, lists terminal names.
// Otherwise Source is tokenized with the lexicon of the grammar, or split at blanks into
// terminal names when the grammar has no lexicon. Packed runs the simulator on packed
// tables; the steps are the same.
type Input struct {
	Tokens   []string
	Source   string
	MaxSteps int
	Packed   bool
}

type TraceResult struct {
	Steps    []*driver.Step `json:"steps"`
	Accepted bool           `json:"accepted"`
	Tree     *driver.Node   `json:"tree,omitempty"`
}

// TraceParse builds a grammar and runs the shift-reduce simulator on the input. When the
// simulator stops with a ParseError, both the steps up to the failing one and the error
// are returned.
func TraceParse(text string, in Input) (*TraceResult, error) {
	b, err := BuildLR1(text)
	if err != nil {
		return nil, err
	}
	return Trace(b.Compiled(), in)
}

// Trace runs the simulator on an already built grammar.
func Trace(cg *specgrammar.CompiledGrammar, in Input) (*TraceResult, error) {
	var gram driver.Grammar = driver.NewGrammar(cg)
	if in.Packed {
		packed, err := driver.NewPackedGrammar(cg)
		if err != nil {
			return nil, err
		}
		gram = packed
	}

	var toks driver.TokenStream
	var err error
	switch {
	case in.Tokens != nil:
		toks, err = driver.NewNameTokenStream(gram, in.Tokens)
	case cg.Lexical != nil:
		toks, err = driver.NewTokenStream(cg, strings.NewReader(in.Source))
	default:
		toks, err = driver.NewNameTokenStream(gram, driver.SplitNames(in.Source))
	}
	if err != nil {
		return nil, err
	}

	treeAct := driver.NewSyntaxTreeActionSet(gram)
	opts := []driver.ParserOption{
		driver.SemanticAction(treeAct),
	}
	if in.MaxSteps > 0 {
		opts = append(opts, driver.MaxSteps(in.MaxSteps))
	}
	p, err := driver.NewParser(toks, gram, opts...)
	if err != nil {
		return nil, err
	}

	err = p.Parse()
	res := &TraceResult{
		Steps: p.Steps(),
	}
	if err != nil {
		return res, err
	}
	res.Accepted = true
	res.Tree = treeAct.CST()
	return res, nil
}
