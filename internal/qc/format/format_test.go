package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m-marini/qucomp-go/internal/mx"
	"github.com/m-marini/qucomp-go/internal/qc/value"
	"github.com/m-marini/qucomp-go/internal/vecutil"
)

// TestComplexRendersPureReal tests that a zero-imaginary value drops
// the imaginary term entirely.
func TestComplexRendersPureReal(t *testing.T) {
	assert.Equal(t, "2", Complex(complex(2, 0)))
	assert.Equal(t, "-1.5", Complex(complex(-1.5, 0)))
}

// TestComplexRendersImaginaryUnit tests the special-cased +-i rendering.
func TestComplexRendersImaginaryUnit(t *testing.T) {
	assert.Equal(t, "i", Complex(complex(0, 1)))
	assert.Equal(t, "-i", Complex(complex(0, -1)))
}

// TestComplexRendersOtherPureImaginary tests a non-unit pure imaginary.
func TestComplexRendersOtherPureImaginary(t *testing.T) {
	assert.Equal(t, "2 i", Complex(complex(0, 2)))
	assert.Equal(t, "-3 i", Complex(complex(0, -3)))
}

// TestComplexRendersMixedValue tests the sign placement for mixed
// real/imaginary values: the imaginary term carries its own sign.
func TestComplexRendersMixedValue(t *testing.T) {
	assert.Equal(t, "1 +2 i", Complex(complex(1, 2)))
	assert.Equal(t, "1 -2 i", Complex(complex(1, -2)))
	assert.Equal(t, "1 +i", Complex(complex(1, 1)))
	assert.Equal(t, "1 -i", Complex(complex(1, -1)))
}

// TestMatrixScalarDelegatesToComplex tests that a 1x1 matrix renders
// exactly like its lone cell.
func TestMatrixScalarDelegatesToComplex(t *testing.T) {
	m, err := mx.New(1, 1, vecutil.Complex{complex(3, 0)})
	require.NoError(t, err)
	assert.Equal(t, "3", Matrix(m))
}

// TestMatrixKetElidesUnitCoefficient tests that a basis ket with a
// real-1 coefficient omits its "(1)" wrapper.
func TestMatrixKetElidesUnitCoefficient(t *testing.T) {
	m, err := mx.New(2, 1, vecutil.Complex{0, 1})
	require.NoError(t, err)
	assert.Equal(t, "|1>", Matrix(m))
}

// TestMatrixKetRendersSuperposition tests a two-term ket with a
// non-unit coefficient.
func TestMatrixKetRendersSuperposition(t *testing.T) {
	m, err := mx.New(2, 1, vecutil.Complex{complex(0, 1), complex(2, 0)})
	require.NoError(t, err)
	assert.Equal(t, "(i) |0> + (2) |1>", Matrix(m))
}

// TestMatrixKetAllZeroFallsBackToLastIndex tests the degenerate
// all-zero-vector rendering.
func TestMatrixKetAllZeroFallsBackToLastIndex(t *testing.T) {
	m, err := mx.New(3, 1, vecutil.Complex{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, "(0.0) |2>", Matrix(m))
}

// TestMatrixBraRendersWithAngleBracketPrefix tests that a row vector
// renders using bra delimiters.
func TestMatrixBraRendersWithAngleBracketPrefix(t *testing.T) {
	m, err := mx.New(1, 2, vecutil.Complex{1, 0})
	require.NoError(t, err)
	assert.Equal(t, "<0|", Matrix(m))
}

// TestMatrixGridPadsColumnsToWidth tests that a multi-row, multi-column
// matrix pads each cell on the left to its column's widest cell, so
// cells are right-aligned.
func TestMatrixGridPadsColumnsToWidth(t *testing.T) {
	m, err := mx.New(2, 2, vecutil.Complex{1, 0, 0, complex(0, 2)})
	require.NoError(t, err)
	assert.Equal(t, "[ 1,   0\n  0, 2 i ]", Matrix(m))
}

// TestValueDispatchesBySort tests Value's top-level dispatch across
// the three value sorts plus a list.
func TestValueDispatchesBySort(t *testing.T) {
	assert.Equal(t, "5", Value(value.IntValue{Val: 5}))
	assert.Equal(t, "i", Value(value.ComplexValue{Val: complex(0, 1)}))

	m, err := mx.New(1, 1, vecutil.Complex{2})
	require.NoError(t, err)
	assert.Equal(t, "2", Value(value.MatrixValue{Val: m}))

	lv := value.ListValue{Values: []value.Value{value.IntValue{Val: 1}, value.IntValue{Val: 2}}}
	assert.Equal(t, "1, 2", Value(lv))
}
