package grammar

import (
	"strings"
	"testing"

	"github.com/bianca-ap01/ParserLR1/grammar/symbol"
	parser "github.com/bianca-ap01/ParserLR1/spec"
)

func buildTestGrammar(t *testing.T, src string) *Grammar {
	t.Helper()

	ast, err := parser.Parse(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	b := GrammarBuilder{
		AST: ast,
	}
	gram, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return gram
}

type testSymbolGenerator func(text string) symbol.Symbol

func newTestSymbolGenerator(t *testing.T, symTab *symbol.SymbolTableReader) testSymbolGenerator {
	return func(text string) symbol.Symbol {
		t.Helper()

		sym, ok := symTab.ToSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

type testProductionGenerator func(lhs string, rhs ...string) *production

// newTestProductionGenerator returns a generator that looks productions up in a production
// set, so the generated productions carry their numbers.
func newTestProductionGenerator(t *testing.T, genSym testSymbolGenerator, prods *productionSet) testProductionGenerator {
	return func(lhs string, rhs ...string) *production {
		t.Helper()

		rhsSym := []symbol.Symbol{}
		for _, text := range rhs {
			rhsSym = append(rhsSym, genSym(text))
		}
		prod, err := newProduction(genSym(lhs), rhsSym)
		if err != nil {
			t.Fatalf("failed to create a production: %v", err)
		}
		p, ok := prods.findByID(prod.id)
		if !ok {
			t.Fatalf("production was not found: %v -> %v", lhs, rhs)
		}

		return p
	}
}

type testLR1ItemGenerator func(lhs string, dot int, lookAhead string, rhs ...string) *lrItem

func newTestLR1ItemGenerator(t *testing.T, genSym testSymbolGenerator, genProd testProductionGenerator) testLR1ItemGenerator {
	return func(lhs string, dot int, lookAhead string, rhs ...string) *lrItem {
		t.Helper()

		prod := genProd(lhs, rhs...)
		item, err := newLR1Item(prod, dot, genSym(lookAhead))
		if err != nil {
			t.Fatalf("failed to create a LR1 item: %v", err)
		}

		return item
	}
}
