package nfa

import (
	"fmt"

	verr "github.com/bianca-ap01/ParserLR1/error"
)

// MalformedError reports a hand-written automaton that cannot be read.
type MalformedError struct {
	Cause  error
	Detail string
}

func newMalformedError(cause error, detail string) *MalformedError {
	return &MalformedError{
		Cause:  cause,
		Detail: detail,
	}
}

func (e *MalformedError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("malformed automaton: %v", e.Cause)
	}
	return fmt.Sprintf("malformed automaton: %v: %v", e.Cause, e.Detail)
}

func (e *MalformedError) Unwrap() error {
	return e.Cause
}

func (e *MalformedError) Kind() verr.Kind {
	return verr.KindRegexSyntax
}

var (
	errNoState         = fmt.Errorf("an automaton needs at least one state")
	errInvalidState    = fmt.Errorf("a state must be a non-negative number")
	errDuplicateState  = fmt.Errorf("duplicate state")
	errStateOutOfRange = fmt.Errorf("reference to an undeclared state")
	errInvalidSymbol   = fmt.Errorf("invalid symbol")
)
