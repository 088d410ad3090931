package eval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-marini/qucomp-go/internal/qc/source"
	"github.com/m-marini/qucomp-go/internal/qc/value"
)

var assignCtx = source.New("x", "let x = 1 ;", 1, 4)
var readCtx = source.New("x", "x + 1 ;", 2, 0)

// TestAssignRebindsToAssignmentContext tests that a bound value's
// context becomes the assignment's own position, not the expression
// that produced it.
func TestAssignRebindsToAssignmentContext(t *testing.T) {
	p := New()
	exprCtx := source.New("1", "let x = 1 ;", 1, 8)

	got, err := p.Assign(assignCtx, "x", value.IntValue{Ctx: exprCtx, Val: 1})
	require.NoError(t, err)
	assert.Equal(t, assignCtx, got.Source())
	assert.Equal(t, assignCtx, p.variables["x"].Source())
}

// TestRetrieveVarRebindsToReferenceContext tests that reading a
// variable rebinds the stored value to the reference's own position.
func TestRetrieveVarRebindsToReferenceContext(t *testing.T) {
	p := New()
	_, err := p.Assign(assignCtx, "x", value.IntValue{Ctx: assignCtx, Val: 5})
	require.NoError(t, err)

	got, err := p.RetrieveVar(readCtx, "x")
	require.NoError(t, err)
	assert.Equal(t, value.IntValue{Ctx: readCtx, Val: 5}, got)
}

// TestRetrieveVarUndefinedReportsName tests the exact "Undefined
// variable" message for a never-bound name.
func TestRetrieveVarUndefinedReportsName(t *testing.T) {
	p := New()
	_, err := p.RetrieveVar(readCtx, "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined variable missing")
}

// TestClearDropsAllBindings tests that clear() empties the variable
// table and returns IntValue(0).
func TestClearDropsAllBindings(t *testing.T) {
	p := New()
	_, err := p.Assign(assignCtx, "x", value.IntValue{Ctx: assignCtx, Val: 1})
	require.NoError(t, err)

	got, err := p.Clear(readCtx)
	require.NoError(t, err)
	assert.Equal(t, value.IntValue{Ctx: readCtx, Val: 0}, got)

	_, err = p.RetrieveVar(readCtx, "x")
	assert.Error(t, err)
}

// TestCallFunctionDispatchesToBuiltinRegistry tests that a known
// builtin name is invoked with the given arguments.
func TestCallFunctionDispatchesToBuiltinRegistry(t *testing.T) {
	p := New()
	got, err := p.CallFunction(readCtx, "sqrt", []value.Value{value.IntValue{Ctx: readCtx, Val: 4}})
	require.NoError(t, err)
	assert.Equal(t, complex(2, 0), got.(value.ComplexValue).Val)
}

// TestCallFunctionUnknownNameErrors tests that an unregistered
// function name reports a positioned error rather than panicking.
func TestCallFunctionUnknownNameErrors(t *testing.T) {
	p := New()
	_, err := p.CallFunction(readCtx, "nope", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Undefined function nope")
}

// TestOperatorMethodsDelegateToOperatorPackage tests a representative
// sample of the operator-delegating methods (the full matrix of
// operand sorts is covered by internal/qc/operator's own tests).
func TestOperatorMethodsDelegateToOperatorPackage(t *testing.T) {
	p := New()
	left := value.IntValue{Ctx: readCtx, Val: 3}
	right := value.IntValue{Ctx: readCtx, Val: 4}

	got, err := p.Add(readCtx, left, right)
	require.NoError(t, err)
	assert.Equal(t, value.IntValue{Ctx: readCtx, Val: 7}, got)

	got, err = p.Neg(readCtx, left)
	require.NoError(t, err)
	assert.Equal(t, value.IntValue{Ctx: readCtx, Val: -3}, got)

	got, err = p.Int2Ket(readCtx, left)
	require.NoError(t, err)
	mv := got.(value.MatrixValue)
	assert.Equal(t, 4, mv.Val.Rows)
}
