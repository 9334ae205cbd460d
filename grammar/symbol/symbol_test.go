package symbol

import "testing"

func TestSymbol(t *testing.T) {
	tab := NewSymbolTable()
	w := tab.Writer()
	_, _ = w.RegisterStartSymbol("E'")
	_, _ = w.RegisterNonTerminalSymbol("E")
	_, _ = w.RegisterNonTerminalSymbol("T")
	_, _ = w.RegisterNonTerminalSymbol("F")
	_, _ = w.RegisterTerminalSymbol("+")
	_, _ = w.RegisterTerminalSymbol("*")
	_, _ = w.RegisterTerminalSymbol("(")
	_, _ = w.RegisterTerminalSymbol(")")
	_, _ = w.RegisterTerminalSymbol("id")

	nonTermTexts := []string{
		"", // Nil
		"E'",
		"E",
		"T",
		"F",
	}

	termTexts := []string{
		"",          // Nil
		NameEOF,     // EOF
		NameEpsilon, // ε
		"+",
		"*",
		"(",
		")",
		"id",
	}

	tests := []struct {
		text          string
		isStart       bool
		isNonTerminal bool
		isTerminal    bool
	}{
		{
			text:          "E'",
			isStart:       true,
			isNonTerminal: true,
		},
		{
			text:          "E",
			isNonTerminal: true,
		},
		{
			text:          "F",
			isNonTerminal: true,
		},
		{
			text:       "+",
			isTerminal: true,
		},
		{
			text:       "id",
			isTerminal: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			r := tab.Reader()
			sym, ok := r.ToSymbol(tt.text)
			if !ok {
				t.Fatalf("symbol was not found")
			}
			testSymbolProperty(t, sym, false, tt.isStart, false, false, tt.isNonTerminal, tt.isTerminal)
			text, ok := r.ToText(sym)
			if !ok {
				t.Fatalf("text was not found")
			}
			if text != tt.text {
				t.Fatalf("unexpected text representation; want: %v, got: %v", tt.text, text)
			}
		})
	}

	t.Run("EOF", func(t *testing.T) {
		testSymbolProperty(t, SymbolEOF, false, false, true, false, false, true)
	})

	t.Run("ε", func(t *testing.T) {
		testSymbolProperty(t, SymbolEpsilon, false, false, false, true, false, false)
	})

	t.Run("Nil", func(t *testing.T) {
		testSymbolProperty(t, SymbolNil, true, false, false, false, false, false)
	})

	t.Run("a terminal cannot be re-registered as a non-terminal", func(t *testing.T) {
		if _, err := w.RegisterNonTerminalSymbol("id"); err == nil {
			t.Fatal("an error was expected")
		}
	})

	t.Run("terminal symbols keep registration order", func(t *testing.T) {
		syms := tab.Reader().TerminalSymbols()
		want := []string{"+", "*", "(", ")", "id"}
		if len(syms) != len(want) {
			t.Fatalf("unexpected terminal count; want: %v, got: %v", len(want), len(syms))
		}
		for i, sym := range syms {
			text, _ := tab.Reader().ToText(sym)
			if text != want[i] {
				t.Fatalf("unexpected terminal; want: %v, got: %v", want[i], text)
			}
		}
	})

	t.Run("texts of non-terminals", func(t *testing.T) {
		r := tab.Reader()
		ts, err := r.NonTerminalTexts()
		if err != nil {
			t.Fatal(err)
		}
		if len(ts) != len(nonTermTexts) {
			t.Fatalf("unexpected non-terminal count; want: %v (%#v), got: %v (%#v)", len(nonTermTexts), nonTermTexts, len(ts), ts)
		}
		for i, text := range ts {
			if text != nonTermTexts[i] {
				t.Fatalf("unexpected non-terminal; want: %v, got: %v", nonTermTexts[i], text)
			}
		}
	})

	t.Run("texts of terminals", func(t *testing.T) {
		r := tab.Reader()
		ts, err := r.TerminalTexts()
		if err != nil {
			t.Fatal(err)
		}
		if len(ts) != len(termTexts) {
			t.Fatalf("unexpected terminal count; want: %v (%#v), got: %v (%#v)", len(termTexts), termTexts, len(ts), ts)
		}
		for i, text := range ts {
			if text != termTexts[i] {
				t.Fatalf("unexpected terminal; want: %v, got: %v", termTexts[i], text)
			}
		}
	})
}

func testSymbolProperty(t *testing.T, sym Symbol, isNil, isStart, isEOF, isEpsilon, isNonTerminal, isTerminal bool) {
	t.Helper()

	if v := sym.IsNil(); v != isNil {
		t.Fatalf("isNil property is mismatched; want: %v, got: %v", isNil, v)
	}
	if v := sym.IsStart(); v != isStart {
		t.Fatalf("isStart property is mismatched; want: %v, got: %v", isStart, v)
	}
	if v := sym.IsEOF(); v != isEOF {
		t.Fatalf("isEOF property is mismatched; want: %v, got: %v", isEOF, v)
	}
	if v := sym.IsEpsilon(); v != isEpsilon {
		t.Fatalf("isEpsilon property is mismatched; want: %v, got: %v", isEpsilon, v)
	}
	if v := sym.IsNonTerminal(); v != isNonTerminal {
		t.Fatalf("isNonTerminal property is mismatched; want: %v, got: %v", isNonTerminal, v)
	}
	if v := sym.IsTerminal(); v != isTerminal {
		t.Fatalf("isTerminal property is mismatched; want: %v, got: %v", isTerminal, v)
	}
}
