// Package compiler turns a token stream into a command.Node tree by
// driving internal/grammar's rule engine and reacting to its Join
// callbacks: each rule id that matters to code generation has a
// registered action that pushes, pops, or rewrites entries on a
// command stack. By the time the top-level rule finishes, the stack
// holds exactly one node — the program's ListCommand.
package compiler

import (
	"math"
	"strconv"

	"github.com/m-marini/qucomp-go/internal/grammar"
	"github.com/m-marini/qucomp-go/internal/lexer"
	"github.com/m-marini/qucomp-go/internal/mx"
	"github.com/m-marini/qucomp-go/internal/qc/builtin"
	"github.com/m-marini/qucomp-go/internal/qc/command"
	"github.com/m-marini/qucomp-go/internal/qc/qcerr"
)

// action reacts to one successfully matched rule by mutating the
// compiler's command stack.
type action func(c *Compiler, token lexer.Token) error

// Compiler implements grammar.ParseContext: it collects command.Node
// values on a stack as the grammar matches, keyed off each rule's id.
type Compiler struct {
	stack   []command.Node
	actions map[string]action
}

// New returns a Compiler ready to drive a single parse.
func New() *Compiler {
	return &Compiler{actions: actions}
}

func (c *Compiler) push(n command.Node) {
	c.stack = append(c.stack, n)
}

func (c *Compiler) pop() command.Node {
	n := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return n
}

// Join implements grammar.ParseContext. A rule id with no registered
// action (most terminals, and every purely-structural non-terminal
// like `<exp>` or `<priority-exp>`) is a no-op: the grammar matched
// something that needs no command-stack change of its own, because its
// child already pushed the real node.
func (c *Compiler) Join(token lexer.Token, rule grammar.Rule) error {
	act, ok := c.actions[rule.ID()]
	if !ok {
		return nil
	}
	return act(c, token)
}

// Compile parses l's token stream against rm's grammar and returns the
// resulting program as a single ListCommand node.
func Compile(rm grammar.RuleMap, l *lexer.Lexer) (command.Node, error) {
	c := New()
	ok, err := rm["<code-unit>"].Parse(l, c)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, qcerr.ParseErr(l.Current().Ctx, "Invalid syntax")
	}
	if len(c.stack) != 1 {
		return nil, qcerr.ParseErr(l.Current().Ctx, "Malformed program")
	}
	return c.stack[0], nil
}

var actions map[string]action

func init() {
	actions = map[string]action{
		"<code-unit-head>": codeUnitHeadAction,
		"<stm>":             stmAction,
		"<clear-stm>":       clearAction,

		"<assign-var-identifier>": assignIDAction,
		"<assign-stm>":            assignValueAction,
		"<var-identifier>":        retrieveVarAction,

		"<function-id>": functionIDAction,
		"<arg>":         argAction,
		"<arg-tail>":    argAction,
		"<function>":    funcCheckAction,

		"<multiply-tail>":      mulAction,
		"<multiply-tail-star>": mulStarAction,
		"<divide-tail>":        divAction,
		"<plus-tail>":          addAction,
		"<minus-tail>":         subAction,
		"<cross-tail-opt>":     crossAction,
		"<negate-exp>":         negAction,
		"^":                    daggerAction,
		"<bra>":                daggerAction,

		"<plus-state>":     plusStateAction,
		"<minus-state>":    minusStateAction,
		"<im-state>":       imStateAction,
		"<minus-im-state>": minusImStateAction,
		"<int-state>":      int2StateAction,

		"<im-unit>":      imUnitAction,
		"pi":             piAction,
		"e":              eAction,
		"<real-literal>": realAction,
		"<int-literal>":  intAction,
	}
}

func codeUnitHeadAction(c *Compiler, token lexer.Token) error {
	c.push(command.ListCommand{Ctx: token.Ctx})
	return nil
}

func stmAction(c *Compiler, token lexer.Token) error {
	stm := c.pop()
	list := c.pop().(command.ListCommand)
	list.Commands = append(list.Commands, stm)
	c.push(list)
	return nil
}

func clearAction(c *Compiler, token lexer.Token) error {
	c.push(command.ClearCommand{Ctx: token.Ctx})
	return nil
}

func assignIDAction(c *Compiler, token lexer.Token) error {
	c.push(command.AssignCommand{Ctx: token.Ctx, Id: token.Ctx.Token})
	return nil
}

func assignValueAction(c *Compiler, token lexer.Token) error {
	v := c.pop()
	assign := c.pop().(command.AssignCommand)
	assign.Arg = v
	c.push(assign)
	return nil
}

func retrieveVarAction(c *Compiler, token lexer.Token) error {
	c.push(command.RetrieveVarCommand{Ctx: token.Ctx, Id: token.Ctx.Token})
	return nil
}

func functionIDAction(c *Compiler, token lexer.Token) error {
	c.push(command.CallFunctionCommand{Ctx: token.Ctx, Id: token.Ctx.Token})
	return nil
}

func argAction(c *Compiler, token lexer.Token) error {
	arg := c.pop()
	fn := c.pop().(command.CallFunctionCommand)
	fn.Args = append(fn.Args, arg)
	c.push(fn)
	return nil
}

// funcCheckAction validates the call's argument count against the
// builtin's arity once every argument has been parsed, raising
// "<id> requires N arguments: actual (M)" on a mismatch.
func funcCheckAction(c *Compiler, token lexer.Token) error {
	fn := c.pop().(command.CallFunctionCommand)
	def, ok := builtin.Functions[fn.Id]
	if !ok {
		return qcerr.Parsef(token.Ctx, "Undefined function %s", fn.Id)
	}
	actual := len(fn.Args)
	if actual != def.Arity {
		return qcerr.Parsef(token.Ctx, "%s requires %d arguments: actual (%d)", fn.Id, def.Arity, actual)
	}
	c.push(fn)
	return nil
}

func mulAction(c *Compiler, token lexer.Token) error {
	right, left := c.pop(), c.pop()
	c.push(command.MultiplyCommand{Ctx: token.Ctx, Left: left, Right: right})
	return nil
}

func mulStarAction(c *Compiler, token lexer.Token) error {
	right, left := c.pop(), c.pop()
	c.push(command.MultiplyStarCommand{Ctx: token.Ctx, Left: left, Right: right})
	return nil
}

func divAction(c *Compiler, token lexer.Token) error {
	right, left := c.pop(), c.pop()
	c.push(command.DivideCommand{Ctx: token.Ctx, Left: left, Right: right})
	return nil
}

func addAction(c *Compiler, token lexer.Token) error {
	right, left := c.pop(), c.pop()
	c.push(command.AddCommand{Ctx: token.Ctx, Left: left, Right: right})
	return nil
}

func subAction(c *Compiler, token lexer.Token) error {
	right, left := c.pop(), c.pop()
	c.push(command.SubCommand{Ctx: token.Ctx, Left: left, Right: right})
	return nil
}

func crossAction(c *Compiler, token lexer.Token) error {
	right, left := c.pop(), c.pop()
	c.push(command.CrossCommand{Ctx: token.Ctx, Left: left, Right: right})
	return nil
}

func negAction(c *Compiler, token lexer.Token) error {
	c.push(command.NegateCommand{Ctx: token.Ctx, Arg: c.pop()})
	return nil
}

func daggerAction(c *Compiler, token lexer.Token) error {
	c.push(command.DaggerCommand{Ctx: token.Ctx, Arg: c.pop()})
	return nil
}

func plusStateAction(c *Compiler, token lexer.Token) error {
	c.push(command.MatrixCommand{Ctx: token.Ctx, Val: mx.PlusKet})
	return nil
}

func minusStateAction(c *Compiler, token lexer.Token) error {
	c.push(command.MatrixCommand{Ctx: token.Ctx, Val: mx.MinusKet})
	return nil
}

func imStateAction(c *Compiler, token lexer.Token) error {
	c.push(command.MatrixCommand{Ctx: token.Ctx, Val: mx.IKet})
	return nil
}

func minusImStateAction(c *Compiler, token lexer.Token) error {
	c.push(command.MatrixCommand{Ctx: token.Ctx, Val: mx.MinusIKet})
	return nil
}

func int2StateAction(c *Compiler, token lexer.Token) error {
	c.push(command.Int2StateCommand{Ctx: token.Ctx, Arg: c.pop()})
	return nil
}

func imUnitAction(c *Compiler, token lexer.Token) error {
	c.push(command.ComplexCommand{Ctx: token.Ctx, Val: complex(0, 1)})
	return nil
}

func piAction(c *Compiler, token lexer.Token) error {
	c.push(command.ComplexCommand{Ctx: token.Ctx, Val: complex(math.Pi, 0)})
	return nil
}

func eAction(c *Compiler, token lexer.Token) error {
	c.push(command.ComplexCommand{Ctx: token.Ctx, Val: complex(math.E, 0)})
	return nil
}

func realAction(c *Compiler, token lexer.Token) error {
	f, err := strconv.ParseFloat(token.Ctx.Token, 64)
	if err != nil {
		return qcerr.Parsef(token.Ctx, "Invalid real literal %s", token.Ctx.Token)
	}
	c.push(command.ComplexCommand{Ctx: token.Ctx, Val: complex(f, 0)})
	return nil
}

func intAction(c *Compiler, token lexer.Token) error {
	n, err := strconv.Atoi(token.Ctx.Token)
	if err != nil {
		return qcerr.Parsef(token.Ctx, "Invalid integer literal %s", token.Ctx.Token)
	}
	c.push(command.IntCommand{Ctx: token.Ctx, Val: n})
	return nil
}
