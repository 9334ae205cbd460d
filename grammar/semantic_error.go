package grammar

import verr "github.com/bianca-ap01/ParserLR1/error"

type SemanticError struct {
	message string
	kind    verr.Kind
}

func newSemanticError(message string) *SemanticError {
	return &SemanticError{
		message: message,
		kind:    verr.KindGrammarSyntax,
	}
}

func newUndeclaredSymbolError(message string) *SemanticError {
	return &SemanticError{
		message: message,
		kind:    verr.KindUndeclaredSymbol,
	}
}

func (e *SemanticError) Error() string {
	return e.message
}

func (e *SemanticError) Kind() verr.Kind {
	return e.kind
}

var (
	semErrNoProduction          = newSemanticError("a grammar needs at least one production")
	semErrNoStartSymbol         = newSemanticError("a grammar needs a start symbol")
	semErrDuplicateProduction   = newSemanticError("duplicate production")
	semErrDuplicateTerminal     = newSemanticError("duplicate terminal")
	semErrDuplicateNonTerminal  = newSemanticError("duplicate non-terminal")
	semErrDuplicateName         = newSemanticError("duplicate names are not allowed between terminals and non-terminals")
	semErrReservedName          = newSemanticError("reserved symbol names cannot be declared")
	semErrLHSNotNonTerminal     = newSemanticError("the LHS of a production must be a non-terminal")
	semErrNonTermNoProduction   = newSemanticError("a non-terminal needs at least one production")
	semErrDuplicateLexRule      = newSemanticError("duplicate lexical rule")
	semErrSkipUsedTerminal      = newSemanticError("a terminal used in productions cannot be skipped")
	semErrInvalidLexPattern     = newSemanticError("invalid lexical pattern")
	semErrUndeclaredStart       = newUndeclaredSymbolError("the start symbol is not a declared non-terminal")
	semErrUndeclaredSym         = newUndeclaredSymbolError("undeclared symbol")
	semErrUndeclaredLexTerminal = newUndeclaredSymbolError("a lexical rule must name a declared terminal")
)
