package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-marini/qucomp-go/internal/mx"
	"github.com/m-marini/qucomp-go/internal/qc/source"
	"github.com/m-marini/qucomp-go/internal/qc/value"
)

var ctx = source.New("", "", 1, 0)

// TestRegistryHasExpectedArities tests that every built-in is
// registered with the argument count the grammar's arity check
// expects.
func TestRegistryHasExpectedArities(t *testing.T) {
	want := map[string]int{
		"sqrt": 1, "normalise": 1, "ary": 2, "sim": 2, "eps": 2,
		"I": 1, "H": 1, "S": 1, "T": 1, "X": 1, "Y": 1, "Z": 1,
		"CNOT": 2, "SWAP": 2, "CCNOT": 3, "qubit0": 2, "qubit1": 2,
	}
	for name, arity := range want {
		f, ok := Functions[name]
		require.True(t, ok, "missing builtin %s", name)
		assert.Equal(t, arity, f.Arity, "arity mismatch for %s", name)
	}
	assert.Len(t, Functions, len(want))
}

// TestNormaliseIntAlwaysReturnsOne tests the documented quirk: an int
// argument to normalise always yields IntValue(1), regardless of its
// value.
func TestNormaliseIntAlwaysReturnsOne(t *testing.T) {
	got, err := Functions["normalise"].Invoke(ctx, []value.Value{value.IntValue{Ctx: ctx, Val: 7}})
	require.NoError(t, err)
	assert.Equal(t, value.IntValue{Ctx: ctx, Val: 1}, got)
}

// TestNormaliseMatrixReturnsUnchanged tests the documented quirk: a
// matrix argument to normalise passes through unchanged rather than
// being divided by its norm.
func TestNormaliseMatrixReturnsUnchanged(t *testing.T) {
	m, err := newTestMatrix()
	require.NoError(t, err)
	got, err := Functions["normalise"].Invoke(ctx, []value.Value{value.MatrixValue{Ctx: ctx, Val: m}})
	require.NoError(t, err)
	mv := got.(value.MatrixValue)
	assert.Equal(t, m, mv.Val)
}

// TestSqrtDispatchesByArgSort tests that sqrt accepts both int and
// complex arguments and rejects anything else.
func TestSqrtDispatchesByArgSort(t *testing.T) {
	got, err := Functions["sqrt"].Invoke(ctx, []value.Value{value.IntValue{Ctx: ctx, Val: 4}})
	require.NoError(t, err)
	assert.Equal(t, complex(2, 0), got.(value.ComplexValue).Val)

	_, err = Functions["sqrt"].Invoke(ctx, []value.Value{value.ListValue{Ctx: ctx}})
	assert.Error(t, err)
}

// TestGateBuiltinRejectsNonInt tests that a gate constructor reports
// the positioned "Unexpected argument" error on a non-int bit index.
func TestGateBuiltinRejectsNonInt(t *testing.T) {
	_, err := Functions["X"].Invoke(ctx, []value.Value{value.ComplexValue{Ctx: ctx, Val: 1}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected argument")
}

// TestCNOTRejectsDuplicateBits tests that CNOT on the same data and
// control bit surfaces the underlying gate-construction error.
func TestCNOTRejectsDuplicateBits(t *testing.T) {
	_, err := Functions["CNOT"].Invoke(ctx, []value.Value{
		value.IntValue{Ctx: ctx, Val: 0},
		value.IntValue{Ctx: ctx, Val: 0},
	})
	assert.Error(t, err)
}

// TestCCNOTRequiresAllIntArgs tests that CCNOT reports the three-arg
// "Unexpected arguments" form when any operand is not an int.
func TestCCNOTRequiresAllIntArgs(t *testing.T) {
	_, err := Functions["CCNOT"].Invoke(ctx, []value.Value{
		value.IntValue{Ctx: ctx, Val: 0},
		value.IntValue{Ctx: ctx, Val: 1},
		value.ComplexValue{Ctx: ctx, Val: 1},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected arguments")
}

// TestNamesMatchesFunctions tests that Names mirrors the registry
// keys, since the grammar's function-id rule is built from it.
func TestNamesMatchesFunctions(t *testing.T) {
	names := Names()
	assert.Len(t, names, len(Functions))
	for name := range Functions {
		assert.True(t, names[name])
	}
}

func newTestMatrix() (mx.Matrix, error) {
	return mx.New(2, 1, []complex128{1, 0})
}
