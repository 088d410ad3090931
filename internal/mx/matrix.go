// Package mx implements the dense complex matrix the evaluator operates
// on: shape-checked construction, the zero-pad and cross-extend
// arithmetic behind the language's `+`/`-`/`.`/`*` operators, Kronecker
// products, the basis-matrix constructors (ary/sim/eps/ketBase), and the
// standard gate library built from bit/state permutation.
package mx

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/m-marini/qucomp-go/internal/vecutil"
)

const half = math.Sqrt2 / 2

// Matrix is a dense row-major complex matrix. It is a plain value type,
// copied by assignment like source.Context; there is no shared mutable
// state to protect.
type Matrix struct {
	Rows, Cols int
	Cells      vecutil.Complex
}

// New builds a matrix from row-major cells, validating the shape.
func New(rows, cols int, cells vecutil.Complex) (Matrix, error) {
	if len(cells) != rows*cols {
		return Matrix{}, fmt.Errorf("expected %dx%d=%d matrix cells, got (%d)", rows, cols, rows*cols, len(cells))
	}
	return Matrix{Rows: rows, Cols: cols, Cells: cells}, nil
}

// must builds the fixed, literal gate matrices below; their shapes are
// correct by construction so an error here is a programmer error.
func must(m Matrix, err error) Matrix {
	if err != nil {
		panic(err)
	}
	return m
}

// At returns the cell at (i, j), validating bounds.
func (m Matrix) At(i, j int) (complex128, error) {
	if i < 0 || i >= m.Rows || j < 0 || j >= m.Cols {
		return 0, fmt.Errorf("cell access with index out of range 0...%d, 0...%d, got (%d, %d)", m.Rows-1, m.Cols-1, i, j)
	}
	return m.unsafeAt(i, j), nil
}

func (m Matrix) unsafeAt(i, j int) complex128 {
	return m.Cells[i*m.Cols+j]
}

// Transpose returns the true transpose: a cell reorder, not a row/col
// relabelling of the same backing cells.
func (m Matrix) Transpose() Matrix {
	out := make(vecutil.Complex, len(m.Cells))
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out[j*m.Rows+i] = m.unsafeAt(i, j)
		}
	}
	return Matrix{Rows: m.Cols, Cols: m.Rows, Cells: out}
}

// Conj returns the element-wise complex conjugate.
func (m Matrix) Conj() Matrix {
	return Matrix{Rows: m.Rows, Cols: m.Cols, Cells: vecutil.Conj(m.Cells)}
}

// Dagger returns the conjugate transpose.
func (m Matrix) Dagger() Matrix {
	return m.Transpose().Conj()
}

// Neg returns the element-wise negation.
func (m Matrix) Neg() Matrix {
	return Matrix{Rows: m.Rows, Cols: m.Cols, Cells: vecutil.Neg(m.Cells)}
}

// Scale returns lambda * m.
func (m Matrix) Scale(lambda complex128) Matrix {
	return Matrix{Rows: m.Rows, Cols: m.Cols, Cells: vecutil.Scale(lambda, m.Cells)}
}

// Divide returns m / lambda.
func (m Matrix) Divide(lambda complex128) Matrix {
	return Matrix{Rows: m.Rows, Cols: m.Cols, Cells: vecutil.Divide(m.Cells, lambda)}
}

// extendRows zero-pads rows at the bottom until the matrix has at least
// the given row count; a no-op if it already does.
func (m Matrix) extendRows(rows int) Matrix {
	if m.Rows >= rows {
		return m
	}
	out := make(vecutil.Complex, rows*m.Cols)
	copy(out, m.Cells)
	return Matrix{Rows: rows, Cols: m.Cols, Cells: out}
}

// extendCols zero-pads columns on the right until the matrix has at
// least the given column count; a no-op if it already does.
func (m Matrix) extendCols(cols int) Matrix {
	if m.Cols >= cols {
		return m
	}
	out := make(vecutil.Complex, m.Rows*cols)
	for i := 0; i < m.Rows; i++ {
		copy(out[i*cols:i*cols+m.Cols], m.Cells[i*m.Cols:(i+1)*m.Cols])
	}
	return Matrix{Rows: m.Rows, Cols: cols, Cells: out}
}

func extend0(m Matrix, rows, cols int) Matrix {
	return m.extendRows(rows).extendCols(cols)
}

// Add returns the element-wise sum, zero-padding both operands to their
// bounding shape first. Never fails: shape mismatch is a feature, not an
// error.
func (m Matrix) Add(right Matrix) Matrix {
	n := max(m.Rows, right.Rows)
	k := max(m.Cols, right.Cols)
	l := extend0(m, n, k)
	r := extend0(right, n, k)
	out := make(vecutil.Complex, n*k)
	for i := range out {
		out[i] = l.Cells[i] + r.Cells[i]
	}
	return Matrix{Rows: n, Cols: k, Cells: out}
}

// Sub returns the element-wise difference, zero-padding both operands to
// their bounding shape first.
func (m Matrix) Sub(right Matrix) Matrix {
	n := max(m.Rows, right.Rows)
	k := max(m.Cols, right.Cols)
	l := extend0(m, n, k)
	r := extend0(right, n, k)
	out := make(vecutil.Complex, n*k)
	for i := range out {
		out[i] = l.Cells[i] - r.Cells[i]
	}
	return Matrix{Rows: n, Cols: k, Cells: out}
}

// baseMultiply is the plain matrix product; both extension strategies
// reduce to this once the shapes line up.
func baseMultiply(left, right Matrix) (Matrix, error) {
	if left.Cols != right.Rows {
		return Matrix{}, fmt.Errorf("invalid matrix multiplication %dx%d by %dx%d", left.Rows, left.Cols, right.Rows, right.Cols)
	}
	cells := make(vecutil.Complex, left.Rows*right.Cols)
	vecutil.PartMul(cells, 0, left.Rows, right.Cols, left.Cells, 0, left.Cols, right.Cells, 0, right.Cols)
	return Matrix{Rows: left.Rows, Cols: right.Cols, Cells: cells}, nil
}

// extendCross extends a ket by zero rows, a bra by zero cols, or a
// square matrix by Kronecker product with an identity of the quotient
// size — the extension strategy behind the `*` operator.
func (m Matrix) extendCross(size int) (Matrix, error) {
	switch {
	case m.Cols == 1:
		return m.extendRows(size), nil
	case m.Rows == 1:
		return m.extendCols(size), nil
	case m.Cols != m.Rows:
		return Matrix{}, fmt.Errorf("expected square matrix (%dx%d)", m.Rows, m.Cols)
	}
	if m.Rows == size {
		return m, nil
	}
	if size%m.Rows != 0 {
		return Matrix{}, fmt.Errorf("expected size multiple of %dx%d (%dx%d)", m.Rows, m.Cols, size, size)
	}
	q := size / m.Rows
	return Identity(q).Cross(m), nil
}

// Multiply is the `.` operator: a zero-pad extend (widen the narrower
// operand with zero rows/cols) followed by the plain product.
func (m Matrix) Multiply(right Matrix) (Matrix, error) {
	switch {
	case m.Cols < right.Rows:
		return baseMultiply(m.extendCols(right.Rows), right)
	case m.Cols > right.Rows:
		return baseMultiply(m, right.extendRows(m.Cols))
	default:
		return baseMultiply(m, right)
	}
}

// MultiplyStar is the `*` operator: a cross-extend (Kronecker product
// with an identity of the quotient size when the smaller side is square)
// followed by the plain product.
func (m Matrix) MultiplyStar(right Matrix) (Matrix, error) {
	switch {
	case m.Cols < right.Rows:
		ext, err := m.extendCross(right.Rows)
		if err != nil {
			return Matrix{}, err
		}
		return baseMultiply(ext, right)
	case m.Cols > right.Rows:
		ext, err := right.extendCross(m.Cols)
		if err != nil {
			return Matrix{}, err
		}
		return baseMultiply(m, ext)
	default:
		return baseMultiply(m, right)
	}
}

// Cross returns the Kronecker product m (x) right.
func (m Matrix) Cross(right Matrix) Matrix {
	rows := m.Rows * right.Rows
	cols := m.Cols * right.Cols
	cells := make(vecutil.Complex, 0, rows*cols)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < right.Rows; j++ {
			for k := 0; k < m.Cols; k++ {
				for l := 0; l < right.Cols; l++ {
					cells = append(cells, m.unsafeAt(i, k)*right.unsafeAt(j, l))
				}
			}
		}
	}
	return Matrix{Rows: rows, Cols: cols, Cells: cells}
}

// Identity returns the size x size identity matrix.
func Identity(size int) Matrix {
	cells := make(vecutil.Complex, size*size)
	for i := 0; i < size; i++ {
		cells[i*size+i] = 1
	}
	return Matrix{Rows: size, Cols: size, Cells: cells}
}

// KetBase returns the computational basis ket |value>, sized to the
// smallest power-of-two register that holds it.
func KetBase(value int) Matrix {
	n := 1 << vecutil.NumBitsByState(value)
	cells := make(vecutil.Complex, n)
	cells[value] = 1
	return Matrix{Rows: n, Cols: 1, Cells: cells}
}

// Ary returns the ii x jj elementary matrix: a single 1 at (ii, jj),
// shaped to the smallest registers holding each index.
func Ary(ii, jj int) Matrix {
	n := 1 << vecutil.NumBitsByState(ii)
	m := 1 << vecutil.NumBitsByState(jj)
	cells := make(vecutil.Complex, n*m)
	cells[ii*m+jj] = 1
	return Matrix{Rows: n, Cols: m, Cells: cells}
}

// Sim returns the symmetric basis matrix with 1s at (ii, jj) and (jj, ii).
func Sim(ii, jj int) Matrix {
	n := 1 << vecutil.NumBitsByState(max(ii, jj))
	cells := make(vecutil.Complex, n*n)
	cells[ii*n+jj] = 1
	cells[jj*n+ii] = 1
	return Matrix{Rows: n, Cols: n, Cells: cells}
}

// Eps returns the antisymmetric basis matrix: +1/-1 at (ii, jj)/(jj, ii),
// sign fixed by the parity of the lower/upper index sum, zero elsewhere
// (including the diagonal, where ii == jj).
func Eps(ii, jj int) Matrix {
	n := 1 << vecutil.NumBitsByState(max(ii, jj))
	lo, hi := ii, jj
	if lo > hi {
		lo, hi = hi, lo
	}
	cells := make(vecutil.Complex, n*n)
	if lo != hi {
		forward := complex(-1, 0)
		if (lo+hi)%2 == 0 {
			forward = 1
		}
		cells[lo*n+hi] = forward
		cells[hi*n+lo] = -forward
	}
	return Matrix{Rows: n, Cols: n, Cells: cells}
}

func validateBitMap(bitMap []int) error {
	for i := 0; i < len(bitMap); i++ {
		for j := i + 1; j < len(bitMap); j++ {
			if bitMap[i] == bitMap[j] {
				return fmt.Errorf("Expected all different indices %s", formatIntSlice(bitMap))
			}
		}
	}
	return nil
}

// formatIntSlice renders a slice as "[0, 0]", not Go's space-separated
// %v, to match the error message's expected shape.
func formatIntSlice(s []int) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range s {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Itoa(v))
	}
	b.WriteByte(']')
	return b.String()
}

// ComputeBitsPermutation returns the bit permutation from input register
// bit to internal gate bit for the given gate input map: bitMap[i] is
// the register bit the gate's i-th input reads, so result[bitMap[i]] is
// i. Untouched register bits at or above len(bitMap) keep their
// position; the remaining untouched register bits, lowest first, take
// the internal positions still unassigned.
func ComputeBitsPermutation(bitMap []int) ([]int, error) {
	if err := validateBitMap(bitMap); err != nil {
		return nil, err
	}
	maxBit := 0
	for _, i := range bitMap {
		if i > maxBit {
			maxBit = i
		}
	}
	m := len(bitMap)
	numBits := max(m, maxBit+1)

	result := make([]int, numBits)
	gateMapped := make([]bool, numBits)
	inMapped := make([]bool, numBits)

	for i := 0; i < m; i++ {
		result[bitMap[i]] = i
		gateMapped[bitMap[i]] = true
		inMapped[i] = true
	}
	for i := m; i < numBits; i++ {
		if !gateMapped[i] {
			gateMapped[i] = true
			inMapped[i] = true
			result[i] = i
		}
	}
	free := 0
	for i := m; i < numBits; i++ {
		if !inMapped[i] {
			for gateMapped[free] {
				free++
			}
			result[free] = i
			gateMapped[free] = true
			inMapped[i] = true
		}
	}
	return result, nil
}

// ComputeStatePermutation lifts a bit permutation to the corresponding
// permutation of basis-state indices: state s maps to the state with
// each set bit of s shifted according to bitPermutation.
func ComputeStatePermutation(bitPermutation []int) []int {
	k := len(bitPermutation)
	n := 1 << k
	result := make([]int, n)
	for s := 0; s < n; s++ {
		s1 := 0
		mask := 1
		for i := 0; i < k; i++ {
			if b := s & mask; b != 0 {
				if sh := bitPermutation[i] - i; sh < 0 {
					b >>= -sh
				} else if sh > 0 {
					b <<= sh
				}
				s1 |= b
			}
			mask <<= 1
		}
		result[s] = s1
	}
	return result
}

// InversePermutation returns the permutation undoing s.
func InversePermutation(s []int) []int {
	reverse := make([]int, len(s))
	for i, v := range s {
		reverse[v] = i
	}
	return reverse
}

// Permute returns the permutation matrix for the given state permutation:
// cell (i, j) is 1 iff i == permutation[j].
func Permute(permutation []int) Matrix {
	n := len(permutation)
	cells := make(vecutil.Complex, n*n)
	for j, p := range permutation {
		cells[p*n+j] = 1
	}
	return Matrix{Rows: n, Cols: n, Cells: cells}
}

// CreateGate lifts a base gate (acting on its own contiguous low bits)
// to act on the given register bits, via permute(out) * base * permute(in).
func CreateGate(baseGate Matrix, bitMap []int) (Matrix, error) {
	bitsPerm, err := ComputeBitsPermutation(bitMap)
	if err != nil {
		return Matrix{}, err
	}
	statePermuteIn := ComputeStatePermutation(bitsPerm)
	statePermuteOut := InversePermutation(statePermuteIn)
	mid, err := Permute(statePermuteOut).MultiplyStar(baseGate)
	if err != nil {
		return Matrix{}, err
	}
	return mid.MultiplyStar(Permute(statePermuteIn))
}

var (
	xGate    = must(New(2, 2, vecutil.Complex{0, 1, 1, 0}))
	yGate    = must(New(2, 2, vecutil.Complex{0, complex(0, -1), complex(0, 1), 0}))
	zGate    = must(New(2, 2, vecutil.Complex{1, 0, 0, -1}))
	hGate    = must(New(2, 2, vecutil.Complex{half, half, half, -half}))
	sGate    = must(New(2, 2, vecutil.Complex{1, 0, 0, complex(0, 1)}))
	tGate    = must(New(2, 2, vecutil.Complex{1, 0, 0, complex(half, half)}))
	cnotGate = must(New(4, 4, vecutil.Complex{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
		0, 0, 1, 0,
	}))
	swapGate = must(New(4, 4, vecutil.Complex{
		1, 0, 0, 0,
		0, 0, 1, 0,
		0, 1, 0, 0,
		0, 0, 0, 1,
	}))
	// ccnotGate is its own base gate (a dedicated 8-state permutation),
	// not CNOT reused with a wider bit map.
	ccnotGate = Permute([]int{0, 1, 2, 3, 4, 5, 7, 6})
)

// PlusKet, MinusKet, IKet and MinusIKet are the standard single-qubit
// superposition kets the `+`, `-`, `i` and `-i` built-ins return.
var (
	PlusKet   = must(New(2, 1, vecutil.Complex{half, half}))
	MinusKet  = must(New(2, 1, vecutil.Complex{half, -half}))
	IKet      = must(New(2, 1, vecutil.Complex{half, complex(0, half)}))
	MinusIKet = must(New(2, 1, vecutil.Complex{half, complex(0, -half)}))
)

// I returns the identity over a register wide enough to include bit.
func I(bit int) Matrix {
	return Identity(2 << bit)
}

// X, Y, Z, H, S and T lift their single-qubit gate to the given register bit.
func X(bit int) (Matrix, error) { return CreateGate(xGate, []int{bit}) }
func Y(bit int) (Matrix, error) { return CreateGate(yGate, []int{bit}) }
func Z(bit int) (Matrix, error) { return CreateGate(zGate, []int{bit}) }
func H(bit int) (Matrix, error) { return CreateGate(hGate, []int{bit}) }
func S(bit int) (Matrix, error) { return CreateGate(sGate, []int{bit}) }
func T(bit int) (Matrix, error) { return CreateGate(tGate, []int{bit}) }

// CNOT lifts the controlled-not gate to the given data/control bits.
func CNOT(data, control int) (Matrix, error) {
	return CreateGate(cnotGate, []int{data, control})
}

// SWAP lifts the swap gate to the given pair of data bits.
func SWAP(data0, data1 int) (Matrix, error) {
	return CreateGate(swapGate, []int{data0, data1})
}

// CCNOT lifts the Toffoli gate to the given data/control bits.
func CCNOT(data, control0, control1 int) (Matrix, error) {
	return CreateGate(ccnotGate, []int{data, control0, control1})
}

// Qubit0 returns the projector onto the subspace where register bit
// index is 0, over a register wide enough for numQubits qubits.
func Qubit0(index, numQubits int) Matrix {
	nBits := max(index+1, numQubits)
	nStates := 1 << nBits
	mask := 1 << index
	cells := make(vecutil.Complex, nStates*nStates)
	for i := 0; i < nStates; i++ {
		if i&mask == 0 {
			cells[i*(nStates+1)] = 1
		}
	}
	return Matrix{Rows: nStates, Cols: nStates, Cells: cells}
}

// Qubit1 returns the projector onto the subspace where register bit
// index is 1, over a register wide enough for numQubits qubits.
func Qubit1(index, numQubits int) Matrix {
	nBits := max(index+1, numQubits)
	nStates := 1 << nBits
	mask := 1 << index
	cells := make(vecutil.Complex, nStates*nStates)
	for i := 0; i < nStates; i++ {
		if i&mask != 0 {
			cells[i*(nStates+1)] = 1
		}
	}
	return Matrix{Rows: nStates, Cols: nStates, Cells: cells}
}
