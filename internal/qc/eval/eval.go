// Package eval implements internal/qc/command.Processor: the variable
// bindings a running program accumulates, plus the glue between a
// command's operator/builtin requests and internal/qc/operator and
// internal/qc/builtin.
package eval

import (
	"github.com/m-marini/qucomp-go/internal/qc/builtin"
	"github.com/m-marini/qucomp-go/internal/qc/operator"
	"github.com/m-marini/qucomp-go/internal/qc/qcerr"
	"github.com/m-marini/qucomp-go/internal/qc/source"
	"github.com/m-marini/qucomp-go/internal/qc/value"
)

// Processor holds the variable bindings for one program run. The zero
// value is not usable; construct with New.
type Processor struct {
	variables map[string]value.Value
}

// New returns a Processor with no bound variables.
func New() *Processor {
	return &Processor{variables: map[string]value.Value{}}
}

// Clear drops every variable binding and returns IntValue(0).
func (p *Processor) Clear(ctx source.Context) (value.Value, error) {
	p.variables = map[string]value.Value{}
	return value.IntValue{Ctx: ctx, Val: 0}, nil
}

// Assign binds id to v, rebinding v's context to ctx (the assignment
// expression's own position) before storing it, and returns the
// rebound value.
func (p *Processor) Assign(ctx source.Context, id string, v value.Value) (value.Value, error) {
	bound := v.WithSource(ctx)
	p.variables[id] = bound
	return bound, nil
}

// RetrieveVar looks up id, rebinding the stored value to ctx (the
// reference's own position) so errors from its later use point at the
// reference, not the original assignment.
func (p *Processor) RetrieveVar(ctx source.Context, id string) (value.Value, error) {
	v, ok := p.variables[id]
	if !ok {
		return nil, qcerr.Execf(ctx, "Undefined variable %s", id)
	}
	return v.WithSource(ctx), nil
}

// CallFunction looks up id in the builtin registry and invokes it. The
// compiler has already checked args against the builtin's arity.
func (p *Processor) CallFunction(ctx source.Context, id string, args []value.Value) (value.Value, error) {
	f, ok := builtin.Functions[id]
	if !ok {
		return nil, qcerr.Execf(ctx, "Undefined function %s", id)
	}
	return f.Invoke(ctx, args)
}

func (p *Processor) Int2Ket(ctx source.Context, v value.Value) (value.Value, error) {
	return operator.Int2Ket(ctx, v)
}

func (p *Processor) Dagger(ctx source.Context, v value.Value) (value.Value, error) {
	return operator.Dagger(ctx, v)
}

func (p *Processor) Neg(ctx source.Context, v value.Value) (value.Value, error) {
	return operator.Neg(ctx, v)
}

func (p *Processor) Cross(ctx source.Context, left, right value.Value) (value.Value, error) {
	return operator.Cross(ctx, left, right)
}

func (p *Processor) Mul(ctx source.Context, left, right value.Value) (value.Value, error) {
	return operator.Mul(ctx, left, right)
}

func (p *Processor) MulStar(ctx source.Context, left, right value.Value) (value.Value, error) {
	return operator.MulStar(ctx, left, right)
}

func (p *Processor) Div(ctx source.Context, left, right value.Value) (value.Value, error) {
	return operator.Div(ctx, left, right)
}

func (p *Processor) Add(ctx source.Context, left, right value.Value) (value.Value, error) {
	return operator.Add(ctx, left, right)
}

func (p *Processor) Sub(ctx source.Context, left, right value.Value) (value.Value, error) {
	return operator.Sub(ctx, left, right)
}
