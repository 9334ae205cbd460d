package symbol

import (
	"fmt"
	"sort"
)

type symbolKind string

const (
	symbolKindNonTerminal = symbolKind("non-terminal")
	symbolKindTerminal    = symbolKind("terminal")
)

func (t symbolKind) String() string {
	return string(t)
}

type SymbolNum uint16

func (n SymbolNum) Int() int {
	return int(n)
}

// Symbol is an interned grammar symbol. The upper two bits hold its kind and the rest
// holds its number. Display names live in a SymbolTable.
type Symbol uint16

func (s Symbol) String() string {
	kind, reserved, num := s.describe()
	var prefix string
	switch {
	case reserved && kind == symbolKindNonTerminal:
		prefix = "s"
	case s == SymbolEOF:
		prefix = "e"
	case s == SymbolEpsilon:
		prefix = "E"
	case kind == symbolKindNonTerminal:
		prefix = "n"
	case kind == symbolKindTerminal:
		prefix = "t"
	default:
		prefix = "?"
	}
	return fmt.Sprintf("%v%v", prefix, num)
}

const (
	maskKindPart    = uint16(0x8000) // 1000 0000 0000 0000
	maskNonTerminal = uint16(0x0000) // 0000 0000 0000 0000
	maskTerminal    = uint16(0x8000) // 1000 0000 0000 0000

	maskSubKindPart = uint16(0x4000) // 0100 0000 0000 0000
	maskOrdinary    = uint16(0x0000) // 0000 0000 0000 0000
	maskReserved    = uint16(0x4000) // 0100 0000 0000 0000

	maskNumberPart = uint16(0x3fff) // 0011 1111 1111 1111

	symbolNumStart   = uint16(0x0001)
	symbolNumEOF     = uint16(0x0001)
	symbolNumEpsilon = uint16(0x0002)

	SymbolNil     = Symbol(0)                                               // 0000 0000 0000 0000
	symbolStart   = Symbol(maskNonTerminal | maskReserved | symbolNumStart) // 0100 0000 0000 0001
	SymbolEOF     = Symbol(maskTerminal | maskReserved | symbolNumEOF)      // 1100 0000 0000 0001
	SymbolEpsilon = Symbol(maskTerminal | maskReserved | symbolNumEpsilon)  // 1100 0000 0000 0010

	NameEOF     = "$"
	NameEpsilon = "ε"

	nonTerminalNumMin = SymbolNum(2) // The number 1 is used by the augmented start symbol.
	terminalNumMin    = SymbolNum(3) // The numbers 1 and 2 are used by EOF and ε.
	symbolNumMax      = SymbolNum(0xffff) >> 2
)

func newSymbol(kind symbolKind, num SymbolNum) (Symbol, error) {
	if num > symbolNumMax {
		return SymbolNil, fmt.Errorf("a symbol number exceeds the limit; limit: %v, passed: %v", symbolNumMax, num)
	}
	kindMask := maskNonTerminal
	if kind == symbolKindTerminal {
		kindMask = maskTerminal
	}
	return Symbol(kindMask | maskOrdinary | uint16(num)), nil
}

func (s Symbol) Num() SymbolNum {
	_, _, num := s.describe()
	return num
}

func (s Symbol) Byte() []byte {
	if s.IsNil() {
		return []byte{0, 0}
	}
	return []byte{byte(uint16(s) >> 8), byte(uint16(s) & 0x00ff)}
}

func (s Symbol) IsNil() bool {
	return s.Num() == 0
}

// IsStart reports whether s is the augmented start symbol.
func (s Symbol) IsStart() bool {
	return !s.IsNil() && s == symbolStart
}

func (s Symbol) IsEOF() bool {
	return s == SymbolEOF
}

func (s Symbol) IsEpsilon() bool {
	return s == SymbolEpsilon
}

func (s Symbol) IsNonTerminal() bool {
	if s.IsNil() {
		return false
	}
	kind, _, _ := s.describe()
	return kind == symbolKindNonTerminal
}

// IsTerminal reports whether s is a terminal. EOF counts as a terminal and ε does not.
func (s Symbol) IsTerminal() bool {
	if s.IsNil() || s.IsEpsilon() {
		return false
	}
	return !s.IsNonTerminal()
}

func (s Symbol) describe() (symbolKind, bool, SymbolNum) {
	kind := symbolKindNonTerminal
	if uint16(s)&maskKindPart > 0 {
		kind = symbolKindTerminal
	}
	reserved := uint16(s)&maskSubKindPart > 0
	num := SymbolNum(uint16(s) & maskNumberPart)
	return kind, reserved, num
}

// Sort orders symbols by their packed value: non-terminals in registration order, the
// augmented start, then terminals in registration order, then the reserved terminals.
func Sort(syms []Symbol) {
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
}

type SymbolTable struct {
	text2Sym     map[string]Symbol
	sym2Text     map[Symbol]string
	nonTermTexts []string
	termTexts    []string
	nonTermNum   SymbolNum
	termNum      SymbolNum
}

type SymbolTableWriter struct {
	*SymbolTable
}

type SymbolTableReader struct {
	*SymbolTable
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		text2Sym: map[string]Symbol{
			NameEOF:     SymbolEOF,
			NameEpsilon: SymbolEpsilon,
		},
		sym2Text: map[Symbol]string{
			SymbolEOF:     NameEOF,
			SymbolEpsilon: NameEpsilon,
		},
		termTexts: []string{
			"",          // Nil
			NameEOF,     // EOF
			NameEpsilon, // ε
		},
		nonTermTexts: []string{
			"", // Nil
			"", // Augmented start symbol
		},
		nonTermNum: nonTerminalNumMin,
		termNum:    terminalNumMin,
	}
}

func (t *SymbolTable) Writer() *SymbolTableWriter {
	return &SymbolTableWriter{
		SymbolTable: t,
	}
}

func (t *SymbolTable) Reader() *SymbolTableReader {
	return &SymbolTableReader{
		SymbolTable: t,
	}
}

// IsReservedName reports whether text is the display name of a reserved symbol.
func IsReservedName(text string) bool {
	return text == NameEOF || text == NameEpsilon
}

func (w *SymbolTableWriter) RegisterStartSymbol(text string) (Symbol, error) {
	if _, ok := w.text2Sym[text]; ok {
		return SymbolNil, fmt.Errorf("the start symbol name is already in use: %v", text)
	}
	w.text2Sym[text] = symbolStart
	w.sym2Text[symbolStart] = text
	w.nonTermTexts[symbolStart.Num().Int()] = text
	return symbolStart, nil
}

func (w *SymbolTableWriter) RegisterNonTerminalSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if !sym.IsNonTerminal() {
			return SymbolNil, fmt.Errorf("%v is already registered as a terminal symbol", text)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindNonTerminal, w.nonTermNum)
	if err != nil {
		return SymbolNil, err
	}
	w.nonTermNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	w.nonTermTexts = append(w.nonTermTexts, text)
	return sym, nil
}

func (w *SymbolTableWriter) RegisterTerminalSymbol(text string) (Symbol, error) {
	if sym, ok := w.text2Sym[text]; ok {
		if sym.IsNonTerminal() {
			return SymbolNil, fmt.Errorf("%v is already registered as a non-terminal symbol", text)
		}
		return sym, nil
	}
	sym, err := newSymbol(symbolKindTerminal, w.termNum)
	if err != nil {
		return SymbolNil, err
	}
	w.termNum++
	w.text2Sym[text] = sym
	w.sym2Text[sym] = text
	w.termTexts = append(w.termTexts, text)
	return sym, nil
}

func (r *SymbolTableReader) ToSymbol(text string) (Symbol, bool) {
	if sym, ok := r.text2Sym[text]; ok {
		return sym, true
	}
	return SymbolNil, false
}

func (r *SymbolTableReader) ToText(sym Symbol) (string, bool) {
	text, ok := r.sym2Text[sym]
	return text, ok
}

// TerminalSymbols returns the user-defined terminals in registration order.
func (r *SymbolTableReader) TerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.termNum.Int()-terminalNumMin.Int())
	for sym := range r.sym2Text {
		if !sym.IsTerminal() || sym.IsEOF() {
			continue
		}
		syms = append(syms, sym)
	}
	Sort(syms)
	return syms
}

// TerminalTexts returns terminal names indexed by symbol number. A grammar deriving only
// the empty string has no user-defined terminals, so the table may hold reserved entries only.
func (r *SymbolTableReader) TerminalTexts() ([]string, error) {
	return r.termTexts, nil
}

// NonTerminalSymbols returns the non-terminals, the augmented start symbol included, in
// registration order.
func (r *SymbolTableReader) NonTerminalSymbols() []Symbol {
	syms := make([]Symbol, 0, r.nonTermNum.Int()-nonTerminalNumMin.Int()+1)
	for sym := range r.sym2Text {
		if !sym.IsNonTerminal() {
			continue
		}
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i].Num() < syms[j].Num()
	})
	return syms
}

// NonTerminalTexts returns non-terminal names indexed by symbol number.
func (r *SymbolTableReader) NonTerminalTexts() ([]string, error) {
	if r.nonTermNum == nonTerminalNumMin || r.nonTermTexts[symbolStart.Num().Int()] == "" {
		return nil, fmt.Errorf("symbol table has no non-terminals or no start symbol")
	}
	return r.nonTermTexts, nil
}

// TerminalCount returns the length of the terminal name table, reserved entries included.
func (r *SymbolTableReader) TerminalCount() int {
	return len(r.termTexts)
}

// NonTerminalCount returns the length of the non-terminal name table, reserved entries
// included.
func (r *SymbolTableReader) NonTerminalCount() int {
	return len(r.nonTermTexts)
}
