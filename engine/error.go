package engine

import (
	"errors"
	"fmt"

	"github.com/bianca-ap01/ParserLR1/driver"
	verr "github.com/bianca-ap01/ParserLR1/error"
	"github.com/bianca-ap01/ParserLR1/grammar/lexical/parser"
	specgrammar "github.com/bianca-ap01/ParserLR1/spec/grammar"
)

// ConflictWarning reports a conflict resolved while building a table. It never fails a
// build.
type ConflictWarning struct {
	Conflict *specgrammar.Conflict
}

func (w *ConflictWarning) Error() string {
	c := w.Conflict
	return fmt.Sprintf("state %v, symbol %v: %v conflict; adopted: %v, discarded: %v", c.State, c.Symbol, c.Type, c.Adopted, c.Discarded)
}

func (w *ConflictWarning) Kind() verr.Kind {
	return verr.KindConflict
}

// ErrorResponse is the boundary form of an error. Offset is set for pattern errors, and
// Errors holds every diagnostic when a grammar has several.
type ErrorResponse struct {
	Kind     verr.Kind        `json:"kind"`
	Message  string           `json:"message"`
	Row      int              `json:"row,omitempty"`
	Col      int              `json:"col,omitempty"`
	Offset   *int             `json:"offset,omitempty"`
	Expected []string         `json:"expected,omitempty"`
	Errors   []*ErrorResponse `json:"errors,omitempty"`
}

// Describe converts an error returned by an operation into its boundary form. An error
// without a kind is reported as a grammar syntax error.
func Describe(err error) *ErrorResponse {
	if err == nil {
		return nil
	}

	kind, ok := verr.KindOf(err)
	if !ok {
		kind = verr.KindGrammarSyntax
	}
	res := &ErrorResponse{
		Kind:    kind,
		Message: err.Error(),
	}

	var specErrs verr.SpecErrors
	var specErr *verr.SpecError
	var parseErr *driver.ParseError
	var synErr *parser.SyntaxError
	switch {
	case errors.As(err, &specErrs):
		if len(specErrs) > 0 {
			res.Row = specErrs[0].Row
			res.Col = specErrs[0].Col
		}
		if len(specErrs) > 1 {
			for _, e := range specErrs {
				res.Errors = append(res.Errors, Describe(e))
			}
		}
	case errors.As(err, &specErr):
		res.Row = specErr.Row
		res.Col = specErr.Col
	case errors.As(err, &parseErr):
		res.Row = parseErr.Row
		res.Col = parseErr.Col
		res.Expected = parseErr.ExpectedTerminals
	case errors.As(err, &synErr):
		offset := synErr.Offset
		res.Offset = &offset
	}
	return res
}
