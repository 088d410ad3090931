// Package vecutil implements element-wise complex-vector primitives
// shared by the matrix kernel: the building blocks of the quantum
// computation engine's dense matrix type.
package vecutil

import (
	"fmt"
	"math/bits"
)

// Complex is a row-major flat vector of complex128 values.
type Complex []complex128

// Add returns the element-wise sum. Both vectors must be the same length.
func Add(a, b Complex) (Complex, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("vector size mismatch %d, %d", len(a), len(b))
	}
	out := make(Complex, len(a))
	for i := range a {
		out[i] = a[i] + b[i]
	}
	return out, nil
}

// Sub returns the element-wise difference.
func Sub(a, b Complex) (Complex, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("vector size mismatch %d, %d", len(a), len(b))
	}
	out := make(Complex, len(a))
	for i := range a {
		out[i] = a[i] - b[i]
	}
	return out, nil
}

// Neg returns the element-wise negation.
func Neg(a Complex) Complex {
	out := make(Complex, len(a))
	for i, v := range a {
		out[i] = -v
	}
	return out
}

// Conj returns the element-wise complex conjugate.
func Conj(a Complex) Complex {
	out := make(Complex, len(a))
	for i, v := range a {
		out[i] = complex(real(v), -imag(v))
	}
	return out
}

// Scale returns lambda * v.
func Scale(lambda complex128, v Complex) Complex {
	out := make(Complex, len(v))
	for i, c := range v {
		out[i] = lambda * c
	}
	return out
}

// Divide returns v / lambda.
func Divide(v Complex, lambda complex128) Complex {
	out := make(Complex, len(v))
	for i, c := range v {
		out[i] = c / lambda
	}
	return out
}

// Outer returns the flattened (row-major) outer product |v1|*|v2|
// elements; retained for the legacy vector-to-vector product path.
func Outer(v1, v2 Complex) Complex {
	out := make(Complex, 0, len(v1)*len(v2))
	for _, a := range v1 {
		for _, b := range v2 {
			out = append(out, a*b)
		}
	}
	return out
}

// PartMul performs a windowed matrix multiply: it multiplies the
// rows×k window of a (starting at aOff, row stride aStride, with k equal
// to aStride, so each window row is a whole row of a) by the
// k×cols window of b (starting at bOff, row stride bStride), writing
// rows×cols results into dest starting at dOff with row stride cols.
// This is the shared kernel behind both full matrix multiply and any
// ket/bra transform expressed as a matrix product.
func PartMul(dest Complex, dOff, rows, cols int, a Complex, aOff, aStride int, b Complex, bOff, bStride int) {
	k := aStride
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			var sum complex128
			for l := 0; l < k; l++ {
				sum += a[aOff+i*aStride+l] * b[bOff+l*bStride+j]
			}
			dest[dOff+i*cols+j] = sum
		}
	}
}

// NumBitsByState returns the number of bits required to represent the
// state index s, at least 1.
func NumBitsByState(s int) int {
	if s <= 0 {
		return 1
	}
	return bits.Len(uint(s))
}
