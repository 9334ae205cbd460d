package parser

import (
	"errors"
	"testing"

	verr "github.com/bianca-ap01/ParserLR1/error"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		pattern string
		ast     Node
	}{
		{
			pattern: "a",
			ast:     newLiteralNode('a', 0),
		},
		{
			pattern: "abc",
			ast: genConcatNode(
				newLiteralNode('a', 0),
				newLiteralNode('b', 1),
				newLiteralNode('c', 2),
			),
		},
		{
			pattern: "a|b|c",
			ast: genUnionNode(
				newLiteralNode('a', 0),
				newLiteralNode('b', 2),
				newLiteralNode('c', 4),
			),
		},
		{
			pattern: "ab|c",
			ast: newUnionNode(
				genConcatNode(
					newLiteralNode('a', 0),
					newLiteralNode('b', 1),
				),
				newLiteralNode('c', 3),
			),
		},
		{
			pattern: "a(b|c)*",
			ast: genConcatNode(
				newLiteralNode('a', 0),
				newStarNode(
					newGroupNode(
						newUnionNode(
							newLiteralNode('b', 2),
							newLiteralNode('c', 4),
						),
					),
				),
			),
		},
		{
			pattern: "ab*",
			ast: genConcatNode(
				newLiteralNode('a', 0),
				newStarNode(newLiteralNode('b', 1)),
			),
		},
		{
			pattern: "a b",
			ast: genConcatNode(
				newLiteralNode('a', 0),
				newLiteralNode('b', 2),
			),
		},
		{
			pattern: `\+\*\ `,
			ast: genConcatNode(
				newLiteralNode('+', 0),
				newLiteralNode('*', 2),
				newLiteralNode(' ', 4),
			),
		},
		{
			pattern: "((a))",
			ast: newGroupNode(
				newGroupNode(
					newLiteralNode('a', 2),
				),
			),
		},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			ast, err := Parse(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.ast, ast)
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	tests := []struct {
		pattern string
		cause   error
		offset  int
	}{
		{pattern: "", cause: synErrNullPattern, offset: 0},
		{pattern: "   ", cause: synErrNullPattern, offset: 3},
		{pattern: "(a", cause: synErrGroupUnclosed, offset: 0},
		{pattern: "a)", cause: synErrGroupNoInitiator, offset: 1},
		{pattern: ")", cause: synErrGroupNoInitiator, offset: 0},
		{pattern: "()", cause: synErrGroupNoElem, offset: 1},
		{pattern: "*", cause: synErrRepNoTarget, offset: 0},
		{pattern: "a|*", cause: synErrRepNoTarget, offset: 2},
		{pattern: "a**", cause: synErrRepDuplicated, offset: 2},
		{pattern: "|a", cause: synErrAltLackOfOperand, offset: 0},
		{pattern: "a|", cause: synErrAltLackOfOperand, offset: 1},
		{pattern: "a+", cause: synErrUnsupportedOp, offset: 1},
		{pattern: "a?", cause: synErrUnsupportedOp, offset: 1},
		{pattern: `a\`, cause: synErrIncompletedEscSeq, offset: 1},
		{pattern: "ε", cause: synErrEpsilonLiteral, offset: 0},
		{pattern: `a|\ε`, cause: synErrEpsilonLiteral, offset: 2},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			ast, err := Parse(tt.pattern)
			require.Error(t, err)
			assert.Nil(t, ast)

			var synErr *SyntaxError
			require.True(t, errors.As(err, &synErr), "unexpected error type: %T", err)
			assert.ErrorIs(t, err, tt.cause)
			assert.Equal(t, tt.offset, synErr.Offset)

			kind, ok := verr.KindOf(err)
			require.True(t, ok)
			assert.Equal(t, verr.KindRegexSyntax, kind)
		})
	}
}

func TestAlphabet(t *testing.T) {
	ast, err := Parse("c(b|a)*ca")
	require.NoError(t, err)
	assert.Equal(t, []rune{'a', 'b', 'c'}, Alphabet(ast))
	assert.Equal(t, "c(b|a)*ca", ast.String())
}
