package error

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Kind classifies every failure the toolkit reports.
type Kind string

const (
	KindGrammarSyntax    Kind = "GrammarSyntaxError"
	KindUndeclaredSymbol Kind = "UndeclaredSymbolError"
	KindRegexSyntax      Kind = "RegexSyntaxError"
	KindParse            Kind = "ParseError"
	KindConflict         Kind = "ConflictWarning"
)

type kinded interface {
	Kind() Kind
}

// KindOf reports the kind of err. The second result is false when no error in the chain
// carries a kind.
func KindOf(err error) (Kind, bool) {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind(), true
	}
	return "", false
}

type SpecErrors []*SpecError

func (e SpecErrors) Error() string {
	if len(e) == 0 {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%v", e[0])
	for _, err := range e[1:] {
		fmt.Fprintf(&b, "\n%v", err)
	}

	return b.String()
}

// Kind returns the kind of the first error.
func (e SpecErrors) Kind() Kind {
	if len(e) == 0 {
		return ""
	}
	return e[0].Kind()
}

// Sort orders the errors by position.
func (e SpecErrors) Sort() {
	sort.SliceStable(e, func(i, j int) bool {
		if e[i].Row != e[j].Row {
			return e[i].Row < e[j].Row
		}
		return e[i].Col < e[j].Col
	})
}

type SpecError struct {
	Cause      error
	Detail     string
	FilePath   string
	SourceName string
	Row        int
	Col        int
}

func (e *SpecError) Error() string {
	var b strings.Builder
	if e.SourceName != "" {
		fmt.Fprintf(&b, "%v: ", e.SourceName)
	}
	if e.Row != 0 && e.Col != 0 {
		fmt.Fprintf(&b, "%v:%v: ", e.Row, e.Col)
	} else if e.Row != 0 {
		fmt.Fprintf(&b, "%v: ", e.Row)
	}
	fmt.Fprintf(&b, "error: %v", e.Cause)
	if e.Detail != "" {
		fmt.Fprintf(&b, ": %v", e.Detail)
	}

	line := readLine(e.FilePath, e.Row)
	if line != "" {
		fmt.Fprintf(&b, "\n    %v", line)
	}

	return b.String()
}

func (e *SpecError) Unwrap() error {
	return e.Cause
}

// Kind returns the kind of the cause. A cause without a kind is a grammar syntax error
// because only the grammar front end produces bare causes.
func (e *SpecError) Kind() Kind {
	var k kinded
	if errors.As(e.Cause, &k) {
		return k.Kind()
	}
	return KindGrammarSyntax
}

func readLine(filePath string, row int) string {
	if filePath == "" || row <= 0 {
		return ""
	}

	f, err := os.Open(filePath)
	if err != nil {
		return ""
	}
	defer f.Close()

	i := 1
	s := bufio.NewScanner(f)
	for s.Scan() {
		if i == row {
			return s.Text()
		}
		i++
	}

	return ""
}
