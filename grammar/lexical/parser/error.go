package parser

import (
	"fmt"

	verr "github.com/bianca-ap01/ParserLR1/error"
)

// SyntaxError reports a malformed pattern. Offset is the 0-based rune offset of the
// offending character; it equals the pattern length when the pattern ends too early.
type SyntaxError struct {
	Offset int
	Cause  error
	Detail string
}

func (e *SyntaxError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("offset %v: %v", e.Offset, e.Cause)
	}
	return fmt.Sprintf("offset %v: %v: %v", e.Offset, e.Cause, e.Detail)
}

func (e *SyntaxError) Unwrap() error {
	return e.Cause
}

func (e *SyntaxError) Kind() verr.Kind {
	return verr.KindRegexSyntax
}

var (
	// lexical errors
	synErrIncompletedEscSeq = fmt.Errorf("incompleted escape sequence; unexpected EOF following \\")
	synErrUnsupportedOp     = fmt.Errorf("unsupported operator")
	synErrEpsilonLiteral    = fmt.Errorf("ε is reserved for epsilon edges and cannot be matched")

	// syntax errors
	synErrUnexpectedToken  = fmt.Errorf("unexpected token")
	synErrNullPattern      = fmt.Errorf("a pattern must be a non-empty character sequence")
	synErrAltLackOfOperand = fmt.Errorf("an alternation expression must have operands")
	synErrRepNoTarget      = fmt.Errorf("a repeat expression must have an operand")
	synErrRepDuplicated    = fmt.Errorf("a repeat expression cannot be repeated")
	synErrGroupNoElem      = fmt.Errorf("a grouping expression must include at least one character")
	synErrGroupUnclosed    = fmt.Errorf("unclosed grouping expression")
	synErrGroupNoInitiator = fmt.Errorf(") needs preceding (")
)
