// Package value defines the three-sorted runtime value domain the
// evaluator produces and consumes: integers, complex scalars, complex
// matrices, and the transient list sort used only to carry statement
// results through to the printer.
package value

import (
	"fmt"
	"strconv"

	"github.com/m-marini/qucomp-go/internal/mx"
	"github.com/m-marini/qucomp-go/internal/qc/source"
)

// Sort tags which of the four value kinds a Value carries.
type Sort int

const (
	Int Sort = iota
	ComplexSort
	MatrixSort
	ListSort
)

func (s Sort) String() string {
	switch s {
	case Int:
		return "integer"
	case ComplexSort:
		return "complex"
	case MatrixSort:
		return "matrix"
	case ListSort:
		return "list"
	default:
		return "unknown value type"
	}
}

// Value is the common interface every runtime value implements. Every
// value carries the source.Context of the expression that produced it,
// so a result can be reported against the source position it came from.
type Value interface {
	Sort() Sort
	Source() source.Context
	// WithSource returns a copy of this value rebound to ctx. It never
	// mutates the receiver — the evaluator uses it to rebind a stored
	// variable's value to the context of the expression that retrieved
	// or reassigned it, rather than handing out the stored value as-is.
	WithSource(ctx source.Context) Value
	String() string
}

// IntValue is an integer literal or integer-typed expression result.
type IntValue struct {
	Ctx source.Context
	Val int
}

func (v IntValue) Sort() Sort                       { return Int }
func (v IntValue) Source() source.Context           { return v.Ctx }
func (v IntValue) WithSource(ctx source.Context) Value { return IntValue{Ctx: ctx, Val: v.Val} }
func (v IntValue) String() string                   { return strconv.Itoa(v.Val) }

// ComplexValue is a complex scalar.
type ComplexValue struct {
	Ctx source.Context
	Val complex128
}

func (v ComplexValue) Sort() Sort             { return ComplexSort }
func (v ComplexValue) Source() source.Context { return v.Ctx }
func (v ComplexValue) WithSource(ctx source.Context) Value {
	return ComplexValue{Ctx: ctx, Val: v.Val}
}
func (v ComplexValue) String() string { return fmt.Sprintf("%v", v.Val) }

// MatrixValue is a complex matrix, including the 1x1 scalar and Nx1/1xN
// ket/bra shapes.
type MatrixValue struct {
	Ctx source.Context
	Val mx.Matrix
}

func (v MatrixValue) Sort() Sort             { return MatrixSort }
func (v MatrixValue) Source() source.Context { return v.Ctx }
func (v MatrixValue) WithSource(ctx source.Context) Value {
	return MatrixValue{Ctx: ctx, Val: v.Val}
}
func (v MatrixValue) String() string {
	return fmt.Sprintf("<%dx%d matrix>", v.Val.Rows, v.Val.Cols)
}

// ListValue carries the (possibly empty) sequence of values produced by
// a statement list. It exists only to thread results through to the
// printer; it is never assignable to a variable (WithSource still works,
// but nothing ever calls Assign with a list since the grammar cannot
// produce one as an assignment's right-hand side).
type ListValue struct {
	Ctx    source.Context
	Values []Value
}

func (v ListValue) Sort() Sort             { return ListSort }
func (v ListValue) Source() source.Context { return v.Ctx }
func (v ListValue) WithSource(ctx source.Context) Value {
	return ListValue{Ctx: ctx, Values: v.Values}
}
func (v ListValue) String() string {
	return fmt.Sprintf("<list of %d>", len(v.Values))
}
