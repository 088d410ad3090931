// Package builtin is the named function table the language's
// <function> production calls into: sqrt/normalise/ary/sim/eps plus
// the single- and multi-qubit gate constructors. The compiler checks
// each call's argument count against Arity before Invoke ever runs, so
// Invoke only has to type-check each argument's sort.
package builtin

import (
	"math/cmplx"

	"github.com/m-marini/qucomp-go/internal/mx"
	"github.com/m-marini/qucomp-go/internal/qc/qcerr"
	"github.com/m-marini/qucomp-go/internal/qc/source"
	"github.com/m-marini/qucomp-go/internal/qc/value"
)

// Func is one callable entry: its name (as written in source), its
// required argument count, and its implementation.
type Func struct {
	Name   string
	Arity  int
	Invoke func(ctx source.Context, args []value.Value) (value.Value, error)
}

// Functions is the full registry, keyed by name. It is built once at
// package init and never mutated afterwards, so concurrent lookups
// need no locking.
var Functions = map[string]Func{}

func register(f Func) {
	Functions[f.Name] = f
}

func unexpectedArg(ctx source.Context, v value.Value) error {
	return qcerr.Execf(ctx, "Unexpected argument %s", v.Sort())
}

func unexpectedArgs(ctx source.Context, vs ...value.Value) error {
	sorts := make([]any, len(vs))
	format := ""
	for i, v := range vs {
		sorts[i] = v.Sort()
		if i > 0 {
			format += ", "
		}
		format += "%s"
	}
	return qcerr.Execf(ctx, "Unexpected arguments "+format, sorts...)
}

func asInt(v value.Value) (int, bool) {
	iv, ok := v.(value.IntValue)
	return iv.Val, ok
}

func init() {
	register(Func{"sqrt", 1, sqrtInvoke})
	register(Func{"normalise", 1, normaliseInvoke})
	register(Func{"ary", 2, intIntMatrix(mx.Ary)})
	register(Func{"sim", 2, intIntMatrix(mx.Sim)})
	register(Func{"eps", 2, intIntMatrix(mx.Eps)})
	register(Func{"I", 1, unaryGate(func(bit int) (mx.Matrix, error) { return mx.I(bit), nil })})
	register(Func{"H", 1, unaryGate(mx.H)})
	register(Func{"S", 1, unaryGate(mx.S)})
	register(Func{"T", 1, unaryGate(mx.T)})
	register(Func{"X", 1, unaryGate(mx.X)})
	register(Func{"Y", 1, unaryGate(mx.Y)})
	register(Func{"Z", 1, unaryGate(mx.Z)})
	register(Func{"CNOT", 2, binaryGate(mx.CNOT)})
	register(Func{"SWAP", 2, binaryGate(mx.SWAP)})
	register(Func{"CCNOT", 3, ccnotInvoke})
	register(Func{"qubit0", 2, intIntMatrix(func(i, j int) mx.Matrix { return mx.Qubit0(i, j) })})
	register(Func{"qubit1", 2, intIntMatrix(func(i, j int) mx.Matrix { return mx.Qubit1(i, j) })})
}

func sqrtInvoke(ctx source.Context, args []value.Value) (value.Value, error) {
	switch a := args[0].(type) {
	case value.IntValue:
		return value.ComplexValue{Ctx: ctx, Val: cmplx.Sqrt(complex(float64(a.Val), 0))}, nil
	case value.ComplexValue:
		return value.ComplexValue{Ctx: ctx, Val: cmplx.Sqrt(a.Val)}, nil
	default:
		return nil, unexpectedArg(ctx, args[0])
	}
}

// normaliseInvoke: an int basis index is already normalised by
// definition and always yields 1, complex scales to unit modulus, and
// matrix is returned unchanged (normalise never divides a matrix by
// its norm).
func normaliseInvoke(ctx source.Context, args []value.Value) (value.Value, error) {
	switch a := args[0].(type) {
	case value.IntValue:
		return value.IntValue{Ctx: ctx, Val: 1}, nil
	case value.ComplexValue:
		return value.ComplexValue{Ctx: ctx, Val: a.Val / complex(cmplx.Abs(a.Val), 0)}, nil
	case value.MatrixValue:
		return value.MatrixValue{Ctx: ctx, Val: a.Val}, nil
	default:
		return nil, unexpectedArg(ctx, args[0])
	}
}

func intIntMatrix(f func(i, j int) mx.Matrix) func(source.Context, []value.Value) (value.Value, error) {
	return func(ctx source.Context, args []value.Value) (value.Value, error) {
		i, iok := asInt(args[0])
		j, jok := asInt(args[1])
		if !iok || !jok {
			return nil, unexpectedArgs(ctx, args[0], args[1])
		}
		return value.MatrixValue{Ctx: ctx, Val: f(i, j)}, nil
	}
}

func unaryGate(f func(bit int) (mx.Matrix, error)) func(source.Context, []value.Value) (value.Value, error) {
	return func(ctx source.Context, args []value.Value) (value.Value, error) {
		bit, ok := asInt(args[0])
		if !ok {
			return nil, unexpectedArg(ctx, args[0])
		}
		m, err := f(bit)
		if err != nil {
			return nil, qcerr.Execf(ctx, "%s", err)
		}
		return value.MatrixValue{Ctx: ctx, Val: m}, nil
	}
}

func binaryGate(f func(a, b int) (mx.Matrix, error)) func(source.Context, []value.Value) (value.Value, error) {
	return func(ctx source.Context, args []value.Value) (value.Value, error) {
		a, aok := asInt(args[0])
		b, bok := asInt(args[1])
		if !aok || !bok {
			return nil, unexpectedArgs(ctx, args[0], args[1])
		}
		m, err := f(a, b)
		if err != nil {
			return nil, qcerr.Execf(ctx, "%s", err)
		}
		return value.MatrixValue{Ctx: ctx, Val: m}, nil
	}
}

func ccnotInvoke(ctx source.Context, args []value.Value) (value.Value, error) {
	data, dok := asInt(args[0])
	ctrl0, c0ok := asInt(args[1])
	ctrl1, c1ok := asInt(args[2])
	if !dok || !c0ok || !c1ok {
		return nil, unexpectedArgs(ctx, args[0], args[1], args[2])
	}
	m, err := mx.CCNOT(data, ctrl0, ctrl1)
	if err != nil {
		return nil, qcerr.Execf(ctx, "%s", err)
	}
	return value.MatrixValue{Ctx: ctx, Val: m}, nil
}

// Names returns the set of registered function names, for the
// grammar's function-id keyword rule.
func Names() map[string]bool {
	names := make(map[string]bool, len(Functions))
	for name := range Functions {
		names[name] = true
	}
	return names
}
