// Package syntax declares the language's grammar as a internal/grammar
// RuleMap: one code unit is a statement list followed by end of input;
// a statement is a `clear()`, a `let name = expr`, or a bare expression,
// terminated by `;`; expressions follow the usual additive/multiplicative/cross
// precedence ladder down to kets, bras, literals, and function calls.
package syntax

import (
	"github.com/m-marini/qucomp-go/internal/grammar"
	"github.com/m-marini/qucomp-go/internal/qc/builtin"
)

// StatementKeywords are the reserved words that start a statement.
var StatementKeywords = map[string]bool{
	"clear": true,
	"let":   true,
}

// ReservedKeywords are the reserved words usable only as the named
// constant/operator they spell, never as a variable name.
var ReservedKeywords = map[string]bool{
	"i":  true, // imaginary unit
	"e":  true, // Euler's number
	"pi": true,
	"x":  true, // cross-operator keyword form

	"exp": true, "pow": true,
	"sin": true, "cos": true, "tan": true,
	"acos": true, "asin": true, "atan": true, "arg": true,
	"sinh": true, "cosh": true, "tanh": true,
}

func union(sets ...map[string]bool) map[string]bool {
	out := map[string]bool{}
	for _, s := range sets {
		for k := range s {
			out[k] = true
		}
	}
	return out
}

// Build constructs the full grammar rule map.
func Build() (grammar.RuleMap, error) {
	functionID := builtin.Names()
	keywords := union(functionID, StatementKeywords, ReservedKeywords)

	b := grammar.NewBuilder()

	b.Require("<code-unit>", []string{"<code-unit-head>", "<statement-list>", "<eof>"}).
		Repeat("<statement-list>", "<stm>").
		Opt("<stm>", []string{"<stm-opt>", ";"}).
		Options("<stm-opt>", []string{"<clear-stm>", "<assign-stm>", "<exp-opt>"}).
		Require("<eof>", []string{"<end>"}).
		Eof("<end>").
		Empty("<code-unit-head>").

		Opt("<clear-stm>", []string{"clear", "(", ")"}).
		Opt("<assign-stm>", []string{"let", "<assign-var-identifier>", "=", "<exp>"}).

		Require("<exp>", []string{"<exp-opt>"}).
		Opt("<exp-opt>", []string{"<add-exp>"}).

		Opt("<add-exp>", []string{"<multiply-exp>", "<add-tail>"}).
		Repeat("<add-tail>", "<add-tail-opt>").
		Options("<add-tail-opt>", []string{"<plus-tail>", "<minus-tail>"}).
		Opt("<plus-tail>", []string{"+", "<multiply-exp>"}).
		Opt("<minus-tail>", []string{"-", "<multiply-exp>"}).

		Opt("<multiply-exp>", []string{"<cross-exp>", "<mul-tail>"}).
		Repeat("<mul-tail>", "<mul-tail-opt>").
		Options("<mul-tail-opt>", []string{"<multiply-tail>", "<multiply-tail-star>", "<divide-tail>"}).
		Opt("<multiply-tail>", []string{".", "<cross-exp>"}).
		Opt("<multiply-tail-star>", []string{"*", "<cross-exp>"}).
		Opt("<divide-tail>", []string{"/", "<cross-exp>"}).

		Opt("<cross-exp>", []string{"<unary-exp>", "<cross-tail>"}).
		Repeat("<cross-tail>", "<cross-tail-opt>").
		Opt("<cross-tail-opt>", []string{"x", "<unary-exp>"}).

		Options("<unary-exp>", []string{"<plus-exp>", "<negate-exp>", "<conj>"}).
		Opt("<plus-exp>", []string{"+", "<unary-exp>"}).
		Opt("<negate-exp>", []string{"-", "<unary-exp>"}).

		Opt("<conj>", []string{"<primary-exp>", "<conj-tail>"}).
		Repeat("<conj-tail>", "^").

		Options("<primary-exp>", []string{
			"<priority-exp>",
			"<bra>",
			"<ket>",
			"<im-unit>",
			"pi",
			"e",
			"<function>",
			"<var-identifier>",
			"<int-literal>",
			"<real-literal>",
		}).

		Opt("<priority-exp>", []string{"(", "<exp>", ")"}).
		Opt("<bra>", []string{"<", "<state-exp>", "|"}).
		Opt("<ket>", []string{"|", "<state-exp>", ">"}).

		Require("<state-exp>", []string{"<state-exp-opt>"}).
		Options("<state-exp-opt>", []string{"<im-state>", "<plus-state>", "<minus-state-exp>", "<int-state>"}).
		Opt("<minus-state-exp>", []string{"-", "<minus-state-exp-opt>"}).
		Options("<minus-state-exp-opt>", []string{"<minus-im-state>", "<minus-state>"}).
		Empty("<minus-state>").

		Require("<int-state>", []string{"<exp-opt>"}).

		Opt("<im-unit>", []string{"i"}).
		Opt("<im-state>", []string{"i"}).
		Opt("<minus-im-state>", []string{"i"}).
		Opt("<plus-state>", []string{"+"}).

		Opt("<function>", []string{"<function-id>", "<args-exp>"}).
		Require("<args-exp>", []string{"(", "<arg-list>", ")"}).
		Options("<arg-list>", []string{"<arg-list-opt>", "<empty-arg>"}).
		Opt("<arg-list-opt>", []string{"<arg>", "<arg-list-tail>"}).
		Repeat("<arg-list-tail>", "<arg-tail>").
		Opt("<arg-tail>", []string{",", "<exp>"}).
		Empty("<empty-arg>").
		Opt("<arg>", []string{"<exp-opt>"}).

		IdNotIn("<var-identifier>", keywords).
		IdNotIn("<assign-var-identifier>", keywords).

		IdIn("<function-id>", functionID).

		Id("let").
		Id("clear").

		Id("e").
		Id("pi").
		Id("i").
		Int("<int-literal>").
		Real("<real-literal>").

		Id("x").
		Oper("+").
		Oper("-").
		Oper("<").
		Oper("|").
		Oper(">").
		Oper("(").
		Oper(")").
		Oper(",").
		Oper("^").
		Oper("*").
		Oper("/").
		Oper("=").
		Oper(";").
		Oper(".")

	return b.Build()
}
