// Package format renders evaluated values for display: integers as
// plain decimal, complex scalars through real/imaginary-unit special
// cases, and matrices by shape (scalar, ket, bra, or a padded grid).
package format

import (
	"strconv"
	"strings"

	"github.com/m-marini/qucomp-go/internal/mx"
	"github.com/m-marini/qucomp-go/internal/qc/value"
)

// Value renders any evaluated value to its display string.
func Value(v value.Value) string {
	switch a := v.(type) {
	case value.IntValue:
		return strconv.Itoa(a.Val)
	case value.ComplexValue:
		return Complex(a.Val)
	case value.MatrixValue:
		return Matrix(a.Val)
	case value.ListValue:
		parts := make([]string, len(a.Values))
		for i, e := range a.Values {
			parts[i] = Value(e)
		}
		return strings.Join(parts, ", ")
	default:
		return v.String()
	}
}

func float(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Complex renders a complex scalar: a pure real drops the imaginary
// part entirely; a pure imaginary unit renders as `i`/`-i`; any other
// pure imaginary renders as `<im> i`; a mixed value renders as
// `<real> +<im> i` (positive imaginary) or `<real> <im> i` (negative
// imaginary — the sign is carried by the imaginary term itself), with
// an imaginary part of exactly ±1 written as `<real> +i` / `<real> -i`.
func Complex(c complex128) string {
	re, im := real(c), imag(c)
	if im == 0 {
		return float(re)
	}
	if re == 0 {
		switch im {
		case 1:
			return "i"
		case -1:
			return "-i"
		default:
			return float(im) + " i"
		}
	}
	switch im {
	case 1:
		return float(re) + " +i"
	case -1:
		return float(re) + " -i"
	default:
		if im > 0 {
			return float(re) + " +" + float(im) + " i"
		}
		return float(re) + " " + float(im) + " i"
	}
}

// Matrix renders a matrix by shape: 1x1 is a bare scalar, Nx1 is a ket
// superposition, 1xN is a bra superposition, and anything else is a
// padded grid.
func Matrix(m mx.Matrix) string {
	switch {
	case m.Cols == 1 && m.Rows == 1:
		return Complex(m.Cells[0])
	case m.Cols == 1:
		return writeKet(m)
	case m.Rows == 1:
		return writeBra(m)
	default:
		return writeGrid(m)
	}
}

func writeKet(m mx.Matrix) string {
	return writeBasisSum(m.Cells, "|", ">")
}

func writeBra(m mx.Matrix) string {
	return writeBasisSum(m.Cells, "<", "|")
}

// writeBasisSum renders the non-zero-coefficient basis terms of a ket
// or bra, joined by " + "; a coefficient of exactly 1 elides its own
// "(<fmt>)" prefix, and an all-zero vector (never actually constructed
// by any gate or literal, but not excluded by the type) still renders a
// placeholder zero term on its last basis index.
func writeBasisSum(cells []complex128, open, close string) string {
	var b strings.Builder
	any := false
	for i, c := range cells {
		if c == 0 {
			continue
		}
		if any {
			b.WriteString(" + ")
		}
		any = true
		if imag(c) == 0 && real(c) == 1 {
			b.WriteString(open)
		} else {
			b.WriteByte('(')
			b.WriteString(Complex(c))
			b.WriteString(") ")
			b.WriteString(open)
		}
		b.WriteString(strconv.Itoa(i))
		b.WriteString(close)
	}
	if !any {
		b.WriteString("(0.0) ")
		b.WriteString(open)
		b.WriteString(strconv.Itoa(len(cells) - 1))
		b.WriteString(close)
	}
	return b.String()
}

func writeGrid(m mx.Matrix) string {
	cols := make([]string, len(m.Cells))
	for i, c := range m.Cells {
		cols[i] = Complex(c)
	}

	colWidth := make([]int, m.Cols)
	for j := 0; j < m.Cols; j++ {
		for i := 0; i < m.Rows; i++ {
			if l := len(cols[m.Cols*i+j]); l > colWidth[j] {
				colWidth[j] = l
			}
		}
	}

	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < m.Rows; i++ {
		if i != 0 {
			b.WriteString("\n ")
		}
		for j := 0; j < m.Cols; j++ {
			if j == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteString(", ")
			}
			cell := cols[m.Cols*i+j]
			if pad := colWidth[j] - len(cell); pad > 0 {
				b.WriteString(strings.Repeat(" ", pad))
			}
			b.WriteString(cell)
		}
	}
	b.WriteString(" ]")
	return b.String()
}
