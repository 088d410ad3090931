// Package operator implements unary and binary dispatch over the value
// domain: given an operator's own source.Context and its operand(s), it
// returns the result value or a positioned qcerr.Error.
//
// The original engine dispatches through a chain-of-responsibility of
// per-type-pair operator objects; a direct switch on the operand sorts
// is the idiomatic Go substitute (see DESIGN.md) — same behavior, no
// object graph to build at startup.
package operator

import (
	"github.com/m-marini/qucomp-go/internal/mx"
	"github.com/m-marini/qucomp-go/internal/qc/qcerr"
	"github.com/m-marini/qucomp-go/internal/qc/source"
	"github.com/m-marini/qucomp-go/internal/qc/value"
)

func unexpectedArg(ctx source.Context, v value.Value) error {
	return qcerr.Execf(ctx, "Unexpected argument %s", v.Sort())
}

func unexpectedArgs(ctx source.Context, left, right value.Value) error {
	return qcerr.Execf(ctx, "Unexpected arguments %s, %s", left.Sort(), right.Sort())
}

// Dagger is the `^` postfix operator: identity on int, conjugate on
// complex, conjugate-transpose on matrix.
func Dagger(ctx source.Context, v value.Value) (value.Value, error) {
	switch a := v.(type) {
	case value.IntValue:
		return value.IntValue{Ctx: ctx, Val: a.Val}, nil
	case value.ComplexValue:
		return value.ComplexValue{Ctx: ctx, Val: complexConj(a.Val)}, nil
	case value.MatrixValue:
		return value.MatrixValue{Ctx: ctx, Val: a.Val.Dagger()}, nil
	default:
		return nil, unexpectedArg(ctx, v)
	}
}

// Neg is unary `-`.
func Neg(ctx source.Context, v value.Value) (value.Value, error) {
	switch a := v.(type) {
	case value.IntValue:
		return value.IntValue{Ctx: ctx, Val: -a.Val}, nil
	case value.ComplexValue:
		return value.ComplexValue{Ctx: ctx, Val: -a.Val}, nil
	case value.MatrixValue:
		return value.MatrixValue{Ctx: ctx, Val: a.Val.Neg()}, nil
	default:
		return nil, unexpectedArg(ctx, v)
	}
}

// Int2Ket converts an integer basis-state index into its computational
// basis ket. Only defined on int.
func Int2Ket(ctx source.Context, v value.Value) (value.Value, error) {
	a, ok := v.(value.IntValue)
	if !ok {
		return nil, unexpectedArg(ctx, v)
	}
	return value.MatrixValue{Ctx: ctx, Val: mx.KetBase(a.Val)}, nil
}

// Cross is the Kronecker-product operator. Only defined on matrix, matrix.
func Cross(ctx source.Context, left, right value.Value) (value.Value, error) {
	l, lok := left.(value.MatrixValue)
	r, rok := right.(value.MatrixValue)
	if !lok || !rok {
		return nil, unexpectedArgs(ctx, left, right)
	}
	return value.MatrixValue{Ctx: ctx, Val: l.Val.Cross(r.Val)}, nil
}

// Mul is the `.` operator: scalar multiply for int/complex combinations
// and matrix-by-scalar, zero-pad-extend product for matrix by matrix.
func Mul(ctx source.Context, left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.IntValue:
		switch r := right.(type) {
		case value.IntValue:
			return value.IntValue{Ctx: ctx, Val: l.Val * r.Val}, nil
		case value.ComplexValue:
			return value.ComplexValue{Ctx: ctx, Val: complex(float64(l.Val), 0) * r.Val}, nil
		}
	case value.ComplexValue:
		switch r := right.(type) {
		case value.IntValue:
			return value.ComplexValue{Ctx: ctx, Val: l.Val * complex(float64(r.Val), 0)}, nil
		case value.ComplexValue:
			return value.ComplexValue{Ctx: ctx, Val: l.Val * r.Val}, nil
		}
	case value.MatrixValue:
		switch r := right.(type) {
		case value.IntValue:
			return value.MatrixValue{Ctx: ctx, Val: l.Val.Scale(complex(float64(r.Val), 0))}, nil
		case value.ComplexValue:
			return value.MatrixValue{Ctx: ctx, Val: l.Val.Scale(r.Val)}, nil
		case value.MatrixValue:
			m, err := l.Val.Multiply(r.Val)
			if err != nil {
				return nil, qcerr.Execf(ctx, "%s", err)
			}
			return value.MatrixValue{Ctx: ctx, Val: m}, nil
		}
	}
	return nil, unexpectedArgs(ctx, left, right)
}

// MulStar is the `*` operator: identical to Mul on every combination
// except matrix by matrix, which cross-extends instead of zero-padding.
func MulStar(ctx source.Context, left, right value.Value) (value.Value, error) {
	l, lok := left.(value.MatrixValue)
	r, rok := right.(value.MatrixValue)
	if lok && rok {
		m, err := l.Val.MultiplyStar(r.Val)
		if err != nil {
			return nil, qcerr.Execf(ctx, "%s", err)
		}
		return value.MatrixValue{Ctx: ctx, Val: m}, nil
	}
	return Mul(ctx, left, right)
}

// Div is the `/` operator: integer division stays integer when exact,
// otherwise promotes to complex; matrix division is scalar-only (matrix
// by int or complex).
func Div(ctx source.Context, left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.IntValue:
		switch r := right.(type) {
		case value.IntValue:
			if r.Val != 0 && l.Val%r.Val == 0 {
				return value.IntValue{Ctx: ctx, Val: l.Val / r.Val}, nil
			}
			return value.ComplexValue{Ctx: ctx, Val: complex(float64(l.Val), 0) / complex(float64(r.Val), 0)}, nil
		case value.ComplexValue:
			return value.ComplexValue{Ctx: ctx, Val: complex(float64(l.Val), 0) / r.Val}, nil
		}
	case value.ComplexValue:
		switch r := right.(type) {
		case value.IntValue:
			return value.ComplexValue{Ctx: ctx, Val: l.Val / complex(float64(r.Val), 0)}, nil
		case value.ComplexValue:
			return value.ComplexValue{Ctx: ctx, Val: l.Val / r.Val}, nil
		}
	case value.MatrixValue:
		switch r := right.(type) {
		case value.IntValue:
			return value.MatrixValue{Ctx: ctx, Val: l.Val.Divide(complex(float64(r.Val), 0))}, nil
		case value.ComplexValue:
			return value.MatrixValue{Ctx: ctx, Val: l.Val.Divide(r.Val)}, nil
		}
	}
	return nil, unexpectedArgs(ctx, left, right)
}

// Add is the `+` operator: int/complex promote the usual way, and
// matrix-plus-matrix zero-pads to the bounding shape instead of erroring
// on shape mismatch. Matrix-plus-scalar is not defined.
func Add(ctx source.Context, left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.IntValue:
		switch r := right.(type) {
		case value.IntValue:
			return value.IntValue{Ctx: ctx, Val: l.Val + r.Val}, nil
		case value.ComplexValue:
			return value.ComplexValue{Ctx: ctx, Val: complex(float64(l.Val), 0) + r.Val}, nil
		}
	case value.ComplexValue:
		switch r := right.(type) {
		case value.IntValue:
			return value.ComplexValue{Ctx: ctx, Val: l.Val + complex(float64(r.Val), 0)}, nil
		case value.ComplexValue:
			return value.ComplexValue{Ctx: ctx, Val: l.Val + r.Val}, nil
		}
	case value.MatrixValue:
		if r, ok := right.(value.MatrixValue); ok {
			return value.MatrixValue{Ctx: ctx, Val: l.Val.Add(r.Val)}, nil
		}
	}
	return nil, unexpectedArgs(ctx, left, right)
}

// Sub is the `-` operator, symmetric to Add.
func Sub(ctx source.Context, left, right value.Value) (value.Value, error) {
	switch l := left.(type) {
	case value.IntValue:
		switch r := right.(type) {
		case value.IntValue:
			return value.IntValue{Ctx: ctx, Val: l.Val - r.Val}, nil
		case value.ComplexValue:
			return value.ComplexValue{Ctx: ctx, Val: complex(float64(l.Val), 0) - r.Val}, nil
		}
	case value.ComplexValue:
		switch r := right.(type) {
		case value.IntValue:
			return value.ComplexValue{Ctx: ctx, Val: l.Val - complex(float64(r.Val), 0)}, nil
		case value.ComplexValue:
			return value.ComplexValue{Ctx: ctx, Val: l.Val - r.Val}, nil
		}
	case value.MatrixValue:
		if r, ok := right.(value.MatrixValue); ok {
			return value.MatrixValue{Ctx: ctx, Val: l.Val.Sub(r.Val)}, nil
		}
	}
	return nil, unexpectedArgs(ctx, left, right)
}

func complexConj(c complex128) complex128 {
	return complex(real(c), -imag(c))
}
