package spec

import (
	"fmt"

	verr "github.com/bianca-ap01/ParserLR1/error"
)

type SyntaxError struct {
	message string
}

func newSyntaxError(message string) *SyntaxError {
	return &SyntaxError{
		message: message,
	}
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error: %s", e.message)
}

func (e *SyntaxError) Kind() verr.Kind {
	return verr.KindGrammarSyntax
}

var (
	// lexical errors
	synErrInvalidToken     = newSyntaxError("invalid token")
	synErrUnclosedPattern  = newSyntaxError("unclosed pattern; a pattern must be enclosed in slashes on one line")
	synErrEmptyPattern     = newSyntaxError("a pattern must include at least one character")
	synErrHeaderAfterProds = newSyntaxError("section headers cannot follow headerless productions")
	synErrDuplicateSection = newSyntaxError("duplicate section")

	// syntax errors
	synErrNoProduction       = newSyntaxError("a grammar must have at least one production")
	synErrNoStartSymbol      = newSyntaxError("the START section needs a symbol")
	synErrMultipleStart      = newSyntaxError("the START section accepts exactly one symbol")
	synErrNoLHS              = newSyntaxError("a production needs a left-hand side symbol")
	synErrNoArrow            = newSyntaxError("the arrow must precede alternatives")
	synErrNoContinuedProd    = newSyntaxError("a continuation line needs a preceding production")
	synErrLexNoName          = newSyntaxError("a lexical rule needs a terminal name")
	synErrLexNoColon         = newSyntaxError("the colon must follow the terminal name of a lexical rule")
	synErrLexNoPattern       = newSyntaxError("a lexical rule needs a pattern")
	synErrLexTrailingElement = newSyntaxError("only `skip` can follow the pattern of a lexical rule")
)
