package grammar

import (
	"fmt"
	"io"
	"strings"

	verr "github.com/bianca-ap01/ParserLR1/error"
	"github.com/bianca-ap01/ParserLR1/grammar/symbol"
	parser "github.com/bianca-ap01/ParserLR1/spec"
	spec "github.com/bianca-ap01/ParserLR1/spec/grammar"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("lr1.grammar")
}

// Grammar is an augmented grammar. The augmented production S' → S is always the first
// production.
type Grammar struct {
	name                 string
	lexSpec              *mlspec.LexSpec
	skipLexKinds         []mlspec.LexKindName
	kindToTerminal       map[mlspec.LexKindName]symbol.Symbol
	kindPositions        map[mlspec.LexKindName]parser.Position
	productionSet        *productionSet
	augmentedStartSymbol symbol.Symbol
	symbolTable          *symbol.SymbolTableReader
}

type GrammarBuilder struct {
	AST *parser.RootNode

	errs verr.SpecErrors
}

// Build validates the AST and builds the augmented grammar. It reports every semantic error
// it finds in one pass, sorted by position.
func (b *GrammarBuilder) Build() (*Grammar, error) {
	if b.AST.Start == nil {
		return nil, verr.SpecErrors{
			&verr.SpecError{
				Cause: semErrNoStartSymbol,
			},
		}
	}

	symTab, augStartSym := b.genSymbolTable(b.AST)
	if len(b.errs) > 0 {
		b.errs.Sort()
		return nil, b.errs
	}

	prods := b.genProductions(b.AST, symTab.Reader(), augStartSym)

	lexSpec := b.genLexSpec(b.AST, symTab.Reader())

	if len(b.errs) > 0 {
		b.errs.Sort()
		return nil, b.errs
	}

	lexSpec.spec.Name = lexSpecName

	return &Grammar{
		name:                 b.AST.Start.Name,
		lexSpec:              lexSpec.spec,
		skipLexKinds:         lexSpec.skip,
		kindToTerminal:       lexSpec.kindToTerm,
		kindPositions:        lexSpec.kindPos,
		productionSet:        prods,
		augmentedStartSymbol: augStartSym,
		symbolTable:          symTab.Reader(),
	}, nil
}

func (b *GrammarBuilder) genSymbolTable(root *parser.RootNode) (*symbol.SymbolTable, symbol.Symbol) {
	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()

	declared := map[string]bool{}
	for _, sym := range root.NonTerminals {
		declared[sym.Name] = true
	}
	for _, sym := range root.Terminals {
		declared[sym.Name] = true
	}

	// The augmented start symbol gets the user's start symbol name followed by as many
	// primes as it takes to be fresh.
	augStartName := root.Start.Name + "'"
	for declared[augStartName] {
		augStartName += "'"
	}
	augStartSym, err := w.RegisterStartSymbol(augStartName)
	if err != nil {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  semErrDuplicateName,
			Detail: augStartName,
			Row:    root.Start.Pos.Row,
			Col:    root.Start.Pos.Col,
		})
		return symTab, symbol.SymbolNil
	}

	nonTerms := map[string]bool{}
	for _, sym := range root.NonTerminals {
		if symbol.IsReservedName(sym.Name) {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedName,
				Detail: sym.Name,
				Row:    sym.Pos.Row,
				Col:    sym.Pos.Col,
			})
			continue
		}
		if nonTerms[sym.Name] {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateNonTerminal,
				Detail: sym.Name,
				Row:    sym.Pos.Row,
				Col:    sym.Pos.Col,
			})
			continue
		}
		nonTerms[sym.Name] = true
		if _, err := w.RegisterNonTerminalSymbol(sym.Name); err != nil {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateName,
				Detail: sym.Name,
				Row:    sym.Pos.Row,
				Col:    sym.Pos.Col,
			})
		}
	}

	terms := map[string]bool{}
	for _, sym := range root.Terminals {
		if symbol.IsReservedName(sym.Name) {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrReservedName,
				Detail: sym.Name,
				Row:    sym.Pos.Row,
				Col:    sym.Pos.Col,
			})
			continue
		}
		if terms[sym.Name] {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateTerminal,
				Detail: sym.Name,
				Row:    sym.Pos.Row,
				Col:    sym.Pos.Col,
			})
			continue
		}
		terms[sym.Name] = true
		if _, err := w.RegisterTerminalSymbol(sym.Name); err != nil {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateName,
				Detail: sym.Name,
				Row:    sym.Pos.Row,
				Col:    sym.Pos.Col,
			})
		}
	}

	if !nonTerms[root.Start.Name] {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  semErrUndeclaredStart,
			Detail: root.Start.Name,
			Row:    root.Start.Pos.Row,
			Col:    root.Start.Pos.Col,
		})
	}

	return symTab, augStartSym
}

func (b *GrammarBuilder) genProductions(root *parser.RootNode, symTab *symbol.SymbolTableReader, augStartSym symbol.Symbol) *productionSet {
	prods := newProductionSet()

	if len(root.Productions) == 0 {
		b.errs = append(b.errs, &verr.SpecError{
			Cause: semErrNoProduction,
		})
		return prods
	}

	startSym, _ := symTab.ToSymbol(root.Start.Name)
	augProd, err := newProduction(augStartSym, []symbol.Symbol{startSym})
	if err != nil {
		b.errs = append(b.errs, &verr.SpecError{
			Cause:  semErrUndeclaredStart,
			Detail: err.Error(),
			Row:    root.Start.Pos.Row,
			Col:    root.Start.Pos.Col,
		})
		return prods
	}
	prods.append(augProd)

	for _, prod := range root.Productions {
		lhsSym, ok := symTab.ToSymbol(prod.LHS)
		if !ok {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrUndeclaredSym,
				Detail: prod.LHS,
				Row:    prod.Pos.Row,
				Col:    prod.Pos.Col,
			})
			continue
		}
		if !lhsSym.IsNonTerminal() || lhsSym.IsStart() {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrLHSNotNonTerminal,
				Detail: prod.LHS,
				Row:    prod.Pos.Row,
				Col:    prod.Pos.Col,
			})
			continue
		}

	ALTERNATIVE_LOOP:
		for _, alt := range prod.RHS {
			altSyms := make([]symbol.Symbol, len(alt.Elements))
			for i, elem := range alt.Elements {
				sym, ok := symTab.ToSymbol(elem.ID)
				if !ok || sym.IsStart() || sym.IsEOF() || sym.IsEpsilon() {
					b.errs = append(b.errs, &verr.SpecError{
						Cause:  semErrUndeclaredSym,
						Detail: elem.ID,
						Row:    elem.Pos.Row,
						Col:    elem.Pos.Col,
					})
					continue ALTERNATIVE_LOOP
				}
				altSyms[i] = sym
			}

			p, err := newProduction(lhsSym, altSyms)
			if err != nil {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrUndeclaredSym,
					Detail: err.Error(),
					Row:    alt.Pos.Row,
					Col:    alt.Pos.Col,
				})
				continue
			}
			if !prods.append(p) {
				rhs := make([]string, len(alt.Elements))
				for i, elem := range alt.Elements {
					rhs[i] = elem.ID
				}
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrDuplicateProduction,
					Detail: spec.FormatProduction(prod.LHS, rhs),
					Row:    alt.Pos.Row,
					Col:    alt.Pos.Col,
				})
			}
		}
	}

	hasProd := map[string]bool{}
	for _, prod := range root.Productions {
		hasProd[prod.LHS] = true
	}
	for _, sym := range root.NonTerminals {
		if !hasProd[sym.Name] {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrNonTermNoProduction,
				Detail: sym.Name,
				Row:    sym.Pos.Row,
				Col:    sym.Pos.Col,
			})
		}
	}

	return prods
}

// lexSpecName names every generated maleeni specification. maleeni only accepts snake case
// names, which grammar symbols need not be.
const lexSpecName = "lexicon"

type lexSpecAndKinds struct {
	spec       *mlspec.LexSpec
	skip       []mlspec.LexKindName
	kindToTerm map[mlspec.LexKindName]symbol.Symbol
	kindPos    map[mlspec.LexKindName]parser.Position
}

// genLexSpec converts the lexical rules into a maleeni specification. Rules keep their order
// because maleeni breaks ties between equally long matches by rule order. Kind names are
// generated so that any terminal name, operators included, can own a rule.
func (b *GrammarBuilder) genLexSpec(root *parser.RootNode, symTab *symbol.SymbolTableReader) *lexSpecAndKinds {
	usedTerms := map[string]bool{}
	for _, prod := range root.Productions {
		for _, alt := range prod.RHS {
			for _, elem := range alt.Elements {
				usedTerms[elem.ID] = true
			}
		}
	}

	ls := &lexSpecAndKinds{
		spec:       &mlspec.LexSpec{},
		kindToTerm: map[mlspec.LexKindName]symbol.Symbol{},
		kindPos:    map[mlspec.LexKindName]parser.Position{},
	}
	ruleNames := map[string]bool{}
	for i, rule := range root.LexRules {
		if ruleNames[rule.Name] {
			b.errs = append(b.errs, &verr.SpecError{
				Cause:  semErrDuplicateLexRule,
				Detail: rule.Name,
				Row:    rule.Pos.Row,
				Col:    rule.Pos.Col,
			})
			continue
		}
		ruleNames[rule.Name] = true

		sym, declared := symTab.ToSymbol(rule.Name)
		if declared && !sym.IsTerminal() {
			declared = false
		}
		if sym.IsEOF() {
			declared = false
		}
		kind := mlspec.LexKindName(fmt.Sprintf("t_%v", i+1))
		if rule.Skip {
			if declared && usedTerms[rule.Name] {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrSkipUsedTerminal,
					Detail: rule.Name,
					Row:    rule.Pos.Row,
					Col:    rule.Pos.Col,
				})
				continue
			}
			ls.skip = append(ls.skip, kind)
		} else {
			if !declared {
				b.errs = append(b.errs, &verr.SpecError{
					Cause:  semErrUndeclaredLexTerminal,
					Detail: rule.Name,
					Row:    rule.Pos.Row,
					Col:    rule.Pos.Col,
				})
				continue
			}
			ls.kindToTerm[kind] = sym
		}
		ls.kindPos[kind] = rule.PatternPos
		ls.spec.Entries = append(ls.spec.Entries, &mlspec.LexEntry{
			Kind:    kind,
			Pattern: mlspec.LexPattern(translateEscapes(rule.Pattern)),
		})
	}

	return ls
}

var controlEscapes = map[rune]string{
	't': `\u{0009}`,
	'n': `\u{000A}`,
	'v': `\u{000B}`,
	'f': `\u{000C}`,
	'r': `\u{000D}`,
}

// translateEscapes rewrites the control character escapes \t, \n, \v, \f and \r into the
// code point form maleeni accepts both inside and outside bracket expressions. Other
// escape sequences are kept as written.
func translateEscapes(pattern string) string {
	var b strings.Builder
	cs := []rune(pattern)
	for i := 0; i < len(cs); i++ {
		if cs[i] != '\\' || i+1 >= len(cs) {
			b.WriteRune(cs[i])
			continue
		}
		i++
		if cp, ok := controlEscapes[cs[i]]; ok {
			b.WriteString(cp)
			continue
		}
		b.WriteRune('\\')
		b.WriteRune(cs[i])
	}
	return b.String()
}

func (g *Grammar) symbolText(sym symbol.Symbol) string {
	text, ok := g.symbolTable.ToText(sym)
	if !ok {
		return sym.String()
	}
	return text
}

func (g *Grammar) productionText(prod *production) string {
	rhs := make([]string, len(prod.rhs))
	for i, sym := range prod.rhs {
		rhs[i] = g.symbolText(sym)
	}
	return spec.FormatProduction(g.symbolText(prod.lhs), rhs)
}

type compileConfig struct {
	isReportingEnabled bool
}

type CompileOption func(config *compileConfig)

// EnableReporting makes Compile describe the automaton, the analysis and the conflicts.
func EnableReporting() CompileOption {
	return func(config *compileConfig) {
		config.isReportingEnabled = true
	}
}

// Compile builds the canonical LR(1) automaton and the parsing tables of a grammar, and
// compiles its lexical rules when it has any. Conflicts do not fail a compilation; they are
// listed in the report.
func Compile(gram *Grammar, opts ...CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	config := &compileConfig{}
	for _, opt := range opts {
		opt(config)
	}

	lexical, err := compileLexSpec(gram)
	if err != nil {
		return nil, nil, err
	}

	terms, err := gram.symbolTable.TerminalTexts()
	if err != nil {
		return nil, nil, err
	}

	nonTerms, err := gram.symbolTable.NonTerminalTexts()
	if err != nil {
		return nil, nil, err
	}

	firstSet, err := genFirstSet(gram.productionSet)
	if err != nil {
		return nil, nil, err
	}

	lr1, err := genLR1Automaton(gram.productionSet, firstSet, gram.augmentedStartSymbol)
	if err != nil {
		return nil, nil, err
	}

	var tab *ParsingTable
	var report *spec.Report
	{
		b := &lrTableBuilder{
			automaton:    lr1,
			prods:        gram.productionSet,
			termCount:    len(terms),
			nonTermCount: len(nonTerms),
		}
		tab, err = b.build()
		if err != nil {
			return nil, nil, err
		}

		if config.isReportingEnabled {
			report, err = b.genReport(tab, gram, firstSet)
			if err != nil {
				return nil, nil, err
			}
		}
	}

	action := make([]int, len(tab.actionTable))
	for i, e := range tab.actionTable {
		action[i] = int(e)
	}
	goTo := make([]int, len(tab.goToTable))
	for i, e := range tab.goToTable {
		goTo[i] = int(e)
	}

	allProds := gram.productionSet.getAllProductions()
	lhsSyms := make([]int, len(allProds)+1)
	altSymCounts := make([]int, len(allProds)+1)
	prodTexts := make([]string, len(allProds)+1)
	for _, p := range allProds {
		lhsSyms[p.num] = p.lhs.Num().Int()
		altSymCounts[p.num] = p.rhsLen
		prodTexts[p.num] = gram.productionText(p)
	}

	return &spec.CompiledGrammar{
		Name:    gram.name,
		Lexical: lexical,
		Syntactic: &spec.SyntacticSpec{
			Action:                  action,
			GoTo:                    goTo,
			StateCount:              tab.stateCount,
			InitialState:            tab.InitialState.Int(),
			StartProduction:         productionNumStart.Int(),
			LHSSymbols:              lhsSyms,
			AlternativeSymbolCounts: altSymCounts,
			Productions:             prodTexts,
			Terminals:               terms,
			TerminalCount:           tab.terminalCount,
			NonTerminals:            nonTerms,
			NonTerminalCount:        tab.nonTerminalCount,
			EOFSymbol:               symbol.SymbolEOF.Num().Int(),
		},
	}, report, nil
}

// compileLexSpec compiles the lexical rules with maleeni. A grammar without rules has no
// lexical specification and accepts terminal names as input only.
func compileLexSpec(gram *Grammar) (*spec.LexicalSpec, error) {
	if gram.lexSpec == nil || len(gram.lexSpec.Entries) == 0 {
		return nil, nil
	}

	lexSpec, err, cErrs := mlcompiler.Compile(gram.lexSpec, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var specErrs verr.SpecErrors
			for _, cerr := range cErrs {
				var b strings.Builder
				writeCompileError(&b, cerr)
				pos := gram.kindPositions[cerr.Kind]
				specErrs = append(specErrs, &verr.SpecError{
					Cause:  semErrInvalidLexPattern,
					Detail: b.String(),
					Row:    pos.Row,
					Col:    pos.Col,
				})
			}
			specErrs.Sort()
			return nil, specErrs
		}
		return nil, &verr.SpecError{
			Cause:  semErrInvalidLexPattern,
			Detail: err.Error(),
		}
	}

	kind2Term := make([]int, len(lexSpec.KindNames))
	skip := make([]int, len(lexSpec.KindNames))
	for i, k := range lexSpec.KindNames {
		if k == mlspec.LexKindNameNil {
			kind2Term[mlspec.LexKindIDNil] = symbol.SymbolNil.Num().Int()
			continue
		}

		for _, sk := range gram.skipLexKinds {
			if k != sk {
				continue
			}
			skip[i] = 1
			break
		}
		if skip[i] == 1 {
			continue
		}

		sym, ok := gram.kindToTerminal[k]
		if !ok {
			return nil, fmt.Errorf("terminal symbol of a lexical kind '%v' was not found", k)
		}
		kind2Term[i] = sym.Num().Int()
	}

	return &spec.LexicalSpec{
		Maleeni:        lexSpec,
		KindToTerminal: kind2Term,
		Skip:           skip,
	}, nil
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}
