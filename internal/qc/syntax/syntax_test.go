package syntax

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-marini/qucomp-go/internal/grammar"
	"github.com/m-marini/qucomp-go/internal/lexer"
)

type recorder struct {
	joined []string
}

func (r *recorder) Join(token lexer.Token, rule grammar.Rule) error {
	r.joined = append(r.joined, token.Ctx.Token)
	return nil
}

func parse(t *testing.T, rm grammar.RuleMap, src string) (bool, *recorder, error) {
	t.Helper()
	l, err := lexer.New(strings.NewReader(src), nil)
	require.NoError(t, err)
	rc := &recorder{}
	ok, err := rm["<code-unit>"].Parse(l, rc)
	return ok, rc, err
}

// TestBuildSucceeds tests that every rule reference in the grammar
// resolves, including the long chain of mutually-recursive expression
// rules.
func TestBuildSucceeds(t *testing.T) {
	_, err := Build()
	require.NoError(t, err)
}

// TestParsesAssignment tests a full assignment statement through the
// additive expression ladder.
func TestParsesAssignment(t *testing.T) {
	rm, err := Build()
	require.NoError(t, err)

	ok, _, err := parse(t, rm, "let x = 1 + 2 ;")
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestParsesClear tests the `clear()` statement.
func TestParsesClear(t *testing.T) {
	rm, err := Build()
	require.NoError(t, err)

	ok, _, err := parse(t, rm, "clear ( ) ;")
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestParsesKetExpressionStatement tests a bare expression statement
// built from a ket literal and the cross operator.
func TestParsesKetExpressionStatement(t *testing.T) {
	rm, err := Build()
	require.NoError(t, err)

	ok, _, err := parse(t, rm, "| 0 > x | 1 > ;")
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestParsesFunctionCall tests a function call with multiple
// arguments and the `^` conjugate-transpose suffix.
func TestParsesFunctionCall(t *testing.T) {
	rm, err := Build()
	require.NoError(t, err)

	ok, _, err := parse(t, rm, "CNOT ( 0 , 1 ) ^ ;")
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestAssignRejectsReservedWord tests that assigning to a reserved
// identifier like `pi` raises a positioned "Missing" parse error
// rather than silently matching the keyword as a variable name.
func TestAssignRejectsReservedWord(t *testing.T) {
	rm, err := Build()
	require.NoError(t, err)

	_, _, err = parse(t, rm, "let pi = 1 ;")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Missing <assign-var-identifier>")
}

// TestMissingExpressionAfterEqualsErrors tests that a dangling `=`
// with no following expression raises a positioned parse error.
func TestMissingExpressionAfterEqualsErrors(t *testing.T) {
	rm, err := Build()
	require.NoError(t, err)

	_, _, err = parse(t, rm, "let x = ;")
	require.Error(t, err)
}
