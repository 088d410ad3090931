// Package command defines the evaluator's AST: one Node type per parsed
// construct, each knowing how to turn itself (and, for composites, its
// children) into a value.Value by calling back into a Processor. The
// Processor interface lives here rather than in internal/qc/eval so
// that eval can depend on command without a cycle.
package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/m-marini/qucomp-go/internal/mx"
	"github.com/m-marini/qucomp-go/internal/qc/source"
	"github.com/m-marini/qucomp-go/internal/qc/value"
)

// Node is one parsed command. Leaf nodes (literals, variable reads,
// clear) evaluate to a value directly; composite nodes evaluate their
// children first and call into the Processor for the operation itself.
type Node interface {
	Source() source.Context
	String() string
	Eval(p Processor) (value.Value, error)
}

// Processor is everything a Node needs from the evaluation environment:
// variable storage and the operator/builtin dispatch that depends on
// it. internal/qc/eval provides the implementation.
type Processor interface {
	Clear(ctx source.Context) (value.Value, error)
	Assign(ctx source.Context, id string, v value.Value) (value.Value, error)
	RetrieveVar(ctx source.Context, id string) (value.Value, error)
	CallFunction(ctx source.Context, id string, args []value.Value) (value.Value, error)

	Int2Ket(ctx source.Context, v value.Value) (value.Value, error)
	Dagger(ctx source.Context, v value.Value) (value.Value, error)
	Neg(ctx source.Context, v value.Value) (value.Value, error)

	Cross(ctx source.Context, left, right value.Value) (value.Value, error)
	Mul(ctx source.Context, left, right value.Value) (value.Value, error)
	MulStar(ctx source.Context, left, right value.Value) (value.Value, error)
	Div(ctx source.Context, left, right value.Value) (value.Value, error)
	Add(ctx source.Context, left, right value.Value) (value.Value, error)
	Sub(ctx source.Context, left, right value.Value) (value.Value, error)
}

func argsString(nodes []Node) string {
	var b strings.Builder
	b.WriteByte('(')
	for i, n := range nodes {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(n.String())
	}
	b.WriteByte(')')
	return b.String()
}

// ClearCommand is the `clear()` statement: resets all variable bindings.
type ClearCommand struct {
	Ctx source.Context
}

func (c ClearCommand) Source() source.Context { return c.Ctx }
func (c ClearCommand) String() string         { return "clear" }
func (c ClearCommand) Eval(p Processor) (value.Value, error) {
	return p.Clear(c.Ctx)
}

// IntCommand is an integer literal.
type IntCommand struct {
	Ctx source.Context
	Val int
}

func (c IntCommand) Source() source.Context { return c.Ctx }
func (c IntCommand) String() string         { return strconv.Itoa(c.Val) }
func (c IntCommand) Eval(p Processor) (value.Value, error) {
	return value.IntValue{Ctx: c.Ctx, Val: c.Val}, nil
}

// ComplexCommand is a complex constant: a real literal, the imaginary
// unit `i`, or `pi`/`e`, folded to a value by the compiler.
type ComplexCommand struct {
	Ctx source.Context
	Val complex128
}

func (c ComplexCommand) Source() source.Context { return c.Ctx }
func (c ComplexCommand) String() string         { return fmt.Sprintf("%v", c.Val) }
func (c ComplexCommand) Eval(p Processor) (value.Value, error) {
	return value.ComplexValue{Ctx: c.Ctx, Val: c.Val}, nil
}

// MatrixCommand is a matrix literal folded to a constant by the
// compiler (the special-state kets |+>, |->, |i> and |-i> reduce to one
// of these).
type MatrixCommand struct {
	Ctx source.Context
	Val mx.Matrix
}

func (c MatrixCommand) Source() source.Context { return c.Ctx }
func (c MatrixCommand) String() string {
	return fmt.Sprintf("<%dx%d matrix>", c.Val.Rows, c.Val.Cols)
}
func (c MatrixCommand) Eval(p Processor) (value.Value, error) {
	return value.MatrixValue{Ctx: c.Ctx, Val: c.Val}, nil
}

// RetrieveVarCommand reads a bound variable by name.
type RetrieveVarCommand struct {
	Ctx source.Context
	Id  string
}

func (c RetrieveVarCommand) Source() source.Context { return c.Ctx }
func (c RetrieveVarCommand) String() string         { return c.Id }
func (c RetrieveVarCommand) Eval(p Processor) (value.Value, error) {
	return p.RetrieveVar(c.Ctx, c.Id)
}

// ListCommand is a statement list; it evaluates every statement in
// order, stopping at the first error, and collects the non-nil results
// (an empty statement contributes nothing) into a ListValue.
type ListCommand struct {
	Ctx      source.Context
	Commands []Node
}

func (c ListCommand) Source() source.Context { return c.Ctx }
func (c ListCommand) String() string         { return "list" + argsString(c.Commands) }
func (c ListCommand) Eval(p Processor) (value.Value, error) {
	vals := make([]value.Value, 0, len(c.Commands))
	for _, cmd := range c.Commands {
		v, err := cmd.Eval(p)
		if err != nil {
			return nil, err
		}
		if v != nil {
			vals = append(vals, v)
		}
	}
	return value.ListValue{Ctx: c.Ctx, Values: vals}, nil
}

// CallFunctionCommand is a named builtin call; its children are the
// (already-arity-checked) argument expressions.
type CallFunctionCommand struct {
	Ctx  source.Context
	Id   string
	Args []Node
}

func (c CallFunctionCommand) Source() source.Context { return c.Ctx }
func (c CallFunctionCommand) String() string         { return c.Id + argsString(c.Args) }
func (c CallFunctionCommand) Eval(p Processor) (value.Value, error) {
	args := make([]value.Value, len(c.Args))
	for i, a := range c.Args {
		v, err := a.Eval(p)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return p.CallFunction(c.Ctx, c.Id, args)
}

// Int2StateCommand converts an integer basis index into its ket.
type Int2StateCommand struct {
	Ctx source.Context
	Arg Node
}

func (c Int2StateCommand) Source() source.Context { return c.Ctx }
func (c Int2StateCommand) String() string         { return "i2s" + argsString([]Node{c.Arg}) }
func (c Int2StateCommand) Eval(p Processor) (value.Value, error) {
	v, err := c.Arg.Eval(p)
	if err != nil {
		return nil, err
	}
	return p.Int2Ket(c.Ctx, v)
}

// DaggerCommand is the postfix `^` conjugate-transpose operator.
type DaggerCommand struct {
	Ctx source.Context
	Arg Node
}

func (c DaggerCommand) Source() source.Context { return c.Ctx }
func (c DaggerCommand) String() string         { return "^" + argsString([]Node{c.Arg}) }
func (c DaggerCommand) Eval(p Processor) (value.Value, error) {
	v, err := c.Arg.Eval(p)
	if err != nil {
		return nil, err
	}
	return p.Dagger(c.Ctx, v)
}

// NegateCommand is unary `-`.
type NegateCommand struct {
	Ctx source.Context
	Arg Node
}

func (c NegateCommand) Source() source.Context { return c.Ctx }
func (c NegateCommand) String() string         { return "neg" + argsString([]Node{c.Arg}) }
func (c NegateCommand) Eval(p Processor) (value.Value, error) {
	v, err := c.Arg.Eval(p)
	if err != nil {
		return nil, err
	}
	return p.Neg(c.Ctx, v)
}

// AssignCommand is `let id = arg`.
type AssignCommand struct {
	Ctx source.Context
	Id  string
	Arg Node
}

func (c AssignCommand) Source() source.Context { return c.Ctx }
func (c AssignCommand) String() string {
	return "let(" + c.Id + "," + c.Arg.String() + ")"
}
func (c AssignCommand) Eval(p Processor) (value.Value, error) {
	v, err := c.Arg.Eval(p)
	if err != nil {
		return nil, err
	}
	return p.Assign(c.Ctx, c.Id, v)
}

func evalBinary(p Processor, left, right Node) (value.Value, value.Value, error) {
	l, err := left.Eval(p)
	if err != nil {
		return nil, nil, err
	}
	r, err := right.Eval(p)
	if err != nil {
		return nil, nil, err
	}
	return l, r, nil
}

// CrossCommand is the Kronecker-product `x` operator.
type CrossCommand struct {
	Ctx         source.Context
	Left, Right Node
}

func (c CrossCommand) Source() source.Context { return c.Ctx }
func (c CrossCommand) String() string         { return "x" + argsString([]Node{c.Left, c.Right}) }
func (c CrossCommand) Eval(p Processor) (value.Value, error) {
	l, r, err := evalBinary(p, c.Left, c.Right)
	if err != nil {
		return nil, err
	}
	return p.Cross(c.Ctx, l, r)
}

// MultiplyCommand is the `.` operator.
type MultiplyCommand struct {
	Ctx         source.Context
	Left, Right Node
}

func (c MultiplyCommand) Source() source.Context { return c.Ctx }
func (c MultiplyCommand) String() string         { return "mul" + argsString([]Node{c.Left, c.Right}) }
func (c MultiplyCommand) Eval(p Processor) (value.Value, error) {
	l, r, err := evalBinary(p, c.Left, c.Right)
	if err != nil {
		return nil, err
	}
	return p.Mul(c.Ctx, l, r)
}

// MultiplyStarCommand is the `*` operator.
type MultiplyStarCommand struct {
	Ctx         source.Context
	Left, Right Node
}

func (c MultiplyStarCommand) Source() source.Context { return c.Ctx }
func (c MultiplyStarCommand) String() string {
	return "mulStar" + argsString([]Node{c.Left, c.Right})
}
func (c MultiplyStarCommand) Eval(p Processor) (value.Value, error) {
	l, r, err := evalBinary(p, c.Left, c.Right)
	if err != nil {
		return nil, err
	}
	return p.MulStar(c.Ctx, l, r)
}

// DivideCommand is the `/` operator.
type DivideCommand struct {
	Ctx         source.Context
	Left, Right Node
}

func (c DivideCommand) Source() source.Context { return c.Ctx }
func (c DivideCommand) String() string         { return "div" + argsString([]Node{c.Left, c.Right}) }
func (c DivideCommand) Eval(p Processor) (value.Value, error) {
	l, r, err := evalBinary(p, c.Left, c.Right)
	if err != nil {
		return nil, err
	}
	return p.Div(c.Ctx, l, r)
}

// AddCommand is the `+` operator.
type AddCommand struct {
	Ctx         source.Context
	Left, Right Node
}

func (c AddCommand) Source() source.Context { return c.Ctx }
func (c AddCommand) String() string         { return "add" + argsString([]Node{c.Left, c.Right}) }
func (c AddCommand) Eval(p Processor) (value.Value, error) {
	l, r, err := evalBinary(p, c.Left, c.Right)
	if err != nil {
		return nil, err
	}
	return p.Add(c.Ctx, l, r)
}

// SubCommand is the `-` operator.
type SubCommand struct {
	Ctx         source.Context
	Left, Right Node
}

func (c SubCommand) Source() source.Context { return c.Ctx }
func (c SubCommand) String() string         { return "sub" + argsString([]Node{c.Left, c.Right}) }
func (c SubCommand) Eval(p Processor) (value.Value, error) {
	l, r, err := evalBinary(p, c.Left, c.Right)
	if err != nil {
		return nil, err
	}
	return p.Sub(c.Ctx, l, r)
}
