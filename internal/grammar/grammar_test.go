package grammar

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-marini/qucomp-go/internal/lexer"
)

// recorder is a ParseContext that records every joined token's text,
// in order, so tests can assert on what matched without building a
// real AST.
type recorder struct {
	joined []string
}

func (r *recorder) Join(token lexer.Token, rule Rule) error {
	r.joined = append(r.joined, token.Ctx.Token)
	return nil
}

func newLexer(t *testing.T, src string) *lexer.Lexer {
	t.Helper()
	l, err := lexer.New(strings.NewReader(src), nil)
	require.NoError(t, err)
	return l
}

// TestIntRuleMatchesAndConsumes tests that Int matches an integer
// token and advances the stream past it.
func TestIntRuleMatchesAndConsumes(t *testing.T) {
	l := newLexer(t, "42 +")
	rule := Int("number")
	rc := &recorder{}

	ok, err := rule.Parse(l, rc)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"42"}, rc.joined)
	assert.Equal(t, "+", l.Current().Ctx.Token)
}

// TestIntRuleRejectsNonInt tests that Int fails without consuming on
// a non-matching token.
func TestIntRuleRejectsNonInt(t *testing.T) {
	l := newLexer(t, "abc")
	rule := Int("number")
	rc := &recorder{}

	ok, err := rule.Parse(l, rc)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, rc.joined)
	assert.Equal(t, "abc", l.Current().Ctx.Token)
}

// TestOperRuleMatchesOwnText tests that an Oper rule only matches an
// operator token whose text equals its own id.
func TestOperRuleMatchesOwnText(t *testing.T) {
	l := newLexer(t, "+")
	plus := Oper("+")
	minus := Oper("-")
	rc := &recorder{}

	ok, err := minus.Parse(l, rc)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = plus.Parse(l, rc)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestIdInAndIdNotIn tests the keyword-set membership rules.
func TestIdInAndIdNotIn(t *testing.T) {
	keywords := map[string]bool{"let": true, "clear": true}

	l := newLexer(t, "let")
	rc := &recorder{}
	ok, err := IdIn("keyword", keywords).Parse(l, rc)
	require.NoError(t, err)
	assert.True(t, ok)

	l = newLexer(t, "let")
	ok, err = IdNotIn("identifier", keywords).Parse(l, rc)
	require.NoError(t, err)
	assert.False(t, ok)

	l = newLexer(t, "x")
	ok, err = IdNotIn("identifier", keywords).Parse(l, rc)
	require.NoError(t, err)
	assert.True(t, ok)
}

// TestEofRuleDoesNotConsume tests that Eof matches at end of input
// without joining a token.
func TestEofRuleDoesNotConsume(t *testing.T) {
	l := newLexer(t, "")
	rc := &recorder{}
	ok, err := Eof("end").Parse(l, rc)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, rc.joined)
}

// TestRequireFailsWithMissingMessage tests that a Require rule built
// from mandatory dependencies raises a positioned "Missing <id>" error
// when one of them does not match, rather than merely returning false.
func TestRequireFailsWithMissingMessage(t *testing.T) {
	rm, err := NewBuilder().
		Oper("+").
		Int("number").
		Require("sum", []string{"number", "+", "number"}).
		Build()
	require.NoError(t, err)

	l := newLexer(t, "5 oops")
	rc := &recorder{}
	_, perr := rm["sum"].Parse(l, rc)
	require.Error(t, perr)
	assert.Contains(t, perr.Error(), "Missing +")
}

// TestBuilderResolvesForwardReferences tests that a rule can declare
// a dependency on an id added later in the same builder chain, and
// that Build still resolves it (order of declaration doesn't matter).
func TestBuilderResolvesForwardReferences(t *testing.T) {
	rm, err := NewBuilder().
		Options("atom", []string{"num", "paren"}).
		Require("paren", []string{"(", "atom", ")"}).
		Int("num").
		Oper("(").
		Oper(")").
		Build()
	require.NoError(t, err)

	l := newLexer(t, "( ( 7 ) )")
	rc := &recorder{}
	ok, perr := rm["atom"].Parse(l, rc)
	require.NoError(t, perr)
	assert.True(t, ok)
	assert.Equal(t, lexer.EOF, mustEOF(t, l))
}

func mustEOF(t *testing.T, l *lexer.Lexer) lexer.Kind {
	t.Helper()
	return l.Current().Kind
}

// TestRepeatMatchesZeroOrMore tests that Repeat consumes every
// matching run and still succeeds when the run is empty.
func TestRepeatMatchesZeroOrMore(t *testing.T) {
	rm, err := NewBuilder().
		Int("digit").
		Repeat("digits", "digit").
		Build()
	require.NoError(t, err)

	l := newLexer(t, "1 2 3 end")
	rc := &recorder{}
	ok, perr := rm["digits"].Parse(l, rc)
	require.NoError(t, perr)
	assert.True(t, ok)
	assert.Equal(t, []string{"1", "2", "3"}, rc.joined)
	assert.Equal(t, "end", l.Current().Ctx.Token)

	l = newLexer(t, "end")
	rc = &recorder{}
	ok, perr = rm["digits"].Parse(l, rc)
	require.NoError(t, perr)
	assert.True(t, ok)
	assert.Empty(t, rc.joined)
}

// TestOptionsFirstMatchWins tests that Options tries alternatives in
// order and stops at the first success. The matching terminal joins its
// token, then Options itself joins its own start token.
func TestOptionsFirstMatchWins(t *testing.T) {
	rm, err := NewBuilder().
		Oper("+").
		Oper("-").
		Options("addOp", []string{"+", "-"}).
		Build()
	require.NoError(t, err)

	l := newLexer(t, "-")
	rc := &recorder{}
	ok, perr := rm["addOp"].Parse(l, rc)
	require.NoError(t, perr)
	assert.True(t, ok)
	assert.Equal(t, []string{"-", "-"}, rc.joined)
}

// TestOptMatchesConditionThenRequiresRest tests that Opt is a no-op
// when its condition fails, and requires the remaining dependencies
// once the condition matches, joining its own start token last.
func TestOptMatchesConditionThenRequiresRest(t *testing.T) {
	rm, err := NewBuilder().
		Oper("=").
		Int("value").
		Opt("assign", []string{"=", "value"}).
		Build()
	require.NoError(t, err)

	l := newLexer(t, "x")
	rc := &recorder{}
	ok, perr := rm["assign"].Parse(l, rc)
	require.NoError(t, perr)
	assert.False(t, ok)
	assert.Empty(t, rc.joined)

	l = newLexer(t, "= 5")
	rc = &recorder{}
	ok, perr = rm["assign"].Parse(l, rc)
	require.NoError(t, perr)
	assert.True(t, ok)
	assert.Equal(t, []string{"=", "5", "="}, rc.joined)
}

// TestBuildRejectsDuplicateID tests that declaring the same rule id
// twice fails at Build rather than silently overwriting.
func TestBuildRejectsDuplicateID(t *testing.T) {
	_, err := NewBuilder().Int("n").Int("n").Build()
	assert.Error(t, err)
}

// TestBuildRejectsUnknownDependency tests that referencing an
// undeclared rule id fails at Build.
func TestBuildRejectsUnknownDependency(t *testing.T) {
	_, err := NewBuilder().Require("seq", []string{"ghost"}).Build()
	assert.Error(t, err)
}
