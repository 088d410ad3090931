// Package grammar is a small recursive-descent rule algebra: terminal
// rules match a single token, non-terminal rules compose other rules
// (sequence, optional, alternation, repetition). A Builder lets rule
// definitions reference each other by id before any of them exist, so
// mutually- and self-recursive grammars (an expression referring to
// itself through a parenthesised sub-expression, for instance) can be
// declared in any order.
package grammar

import (
	"github.com/m-marini/qucomp-go/internal/lexer"
	"github.com/m-marini/qucomp-go/internal/qc/qcerr"
)

// TokenProducer is the token stream a Rule parses against.
type TokenProducer interface {
	Current() lexer.Token
	Advance() (lexer.Token, error)
}

// ParseContext receives a Join call every time a rule other than Eof or
// Repeat successfully matches, in token order. A compiler implements this to build an AST
// (or any other shape) by reacting to the stream of (token, rule)
// pairs rather than to a parse tree handed back by Parse. An error from
// Join (e.g. a function call's argument count not matching its arity)
// aborts the parse immediately instead of letting it run to a later,
// harder-to-diagnose failure.
type ParseContext interface {
	Join(token lexer.Token, rule Rule) error
}

// Rule parses a TokenProducer against a ParseContext, reporting
// whether it matched. A non-terminal rule's dependencies are supplied
// after construction via Bind, not in the constructor, so a Builder
// can wire up cycles.
type Rule interface {
	ID() string
	Parse(tp TokenProducer, pc ParseContext) (bool, error)
	Bind(deps []Rule)
}

func missingRuleErr(tok lexer.Token, rule Rule) error {
	return qcerr.ParseErr(tok.Ctx, "Missing "+rule.ID())
}

// terminal matches a single token via a predicate and consumes it on
// success. Int/Real/Oper/Id/IdIn/IdNotIn are all instances of this
// shape, differing only in their match predicate.
type terminal struct {
	id    string
	match func(lexer.Token) bool
}

func newTerminal(id string, match func(lexer.Token) bool) *terminal {
	return &terminal{id: id, match: match}
}

func (r *terminal) ID() string        { return r.id }
func (r *terminal) Bind(deps []Rule) {}

func (r *terminal) Parse(tp TokenProducer, pc ParseContext) (bool, error) {
	tok := tp.Current()
	if !r.match(tok) {
		return false, nil
	}
	if _, err := tp.Advance(); err != nil {
		return false, err
	}
	if err := pc.Join(tok, r); err != nil {
		return false, err
	}
	return true, nil
}

// Int matches any integer-literal token.
func Int(id string) Rule {
	return newTerminal(id, func(t lexer.Token) bool { return t.Kind == lexer.Integer })
}

// Real matches any real-literal token.
func Real(id string) Rule {
	return newTerminal(id, func(t lexer.Token) bool { return t.Kind == lexer.Real })
}

// Oper matches an operator token whose text equals id.
func Oper(id string) Rule {
	return newTerminal(id, func(t lexer.Token) bool {
		return t.Kind == lexer.Operator && t.Ctx.Token == id
	})
}

// Id matches an identifier token whose text equals id (a keyword).
func Id(id string) Rule {
	return newTerminal(id, func(t lexer.Token) bool {
		return t.Kind == lexer.Identifier && t.Ctx.Token == id
	})
}

// IdIn matches any identifier token whose text is one of idents.
func IdIn(id string, idents map[string]bool) Rule {
	return newTerminal(id, func(t lexer.Token) bool {
		return t.Kind == lexer.Identifier && idents[t.Ctx.Token]
	})
}

// IdNotIn matches any identifier token whose text is none of idents.
func IdNotIn(id string, idents map[string]bool) Rule {
	return newTerminal(id, func(t lexer.Token) bool {
		return t.Kind == lexer.Identifier && !idents[t.Ctx.Token]
	})
}

// eofRule matches end of input without consuming anything.
type eofRule struct{ id string }

// Eof matches end of input.
func Eof(id string) Rule { return &eofRule{id: id} }

func (r *eofRule) ID() string       { return r.id }
func (r *eofRule) Bind(deps []Rule) {}
func (r *eofRule) Parse(tp TokenProducer, pc ParseContext) (bool, error) {
	return tp.Current().Kind == lexer.EOF, nil
}

// emptyRule always matches without consuming a token; it exists so an
// Options list can fall through to a no-op alternative.
type emptyRule struct{ id string }

// Empty always matches, consuming nothing.
func Empty(id string) Rule { return &emptyRule{id: id} }

func (r *emptyRule) ID() string       { return r.id }
func (r *emptyRule) Bind(deps []Rule) {}
func (r *emptyRule) Parse(tp TokenProducer, pc ParseContext) (bool, error) {
	if err := pc.Join(tp.Current(), r); err != nil {
		return false, err
	}
	return true, nil
}

// nonTerminal holds the dependency rules a Builder binds in after
// construction.
type nonTerminal struct {
	id   string
	deps []Rule
}

func (r *nonTerminal) ID() string        { return r.id }
func (r *nonTerminal) Bind(deps []Rule) { r.deps = deps }

// requireRule matches a fixed sequence of rules, all of which must
// match in order; a missing one is a parse error, not a plain failure.
type requireRule struct{ nonTerminal }

func (r *requireRule) Parse(tp TokenProducer, pc ParseContext) (bool, error) {
	start := tp.Current()
	for _, dep := range r.deps {
		tok := tp.Current()
		ok, err := dep.Parse(tp, pc)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, missingRuleErr(tok, dep)
		}
	}
	if err := pc.Join(start, r); err != nil {
		return false, err
	}
	return true, nil
}

// optRule matches deps[0] (the condition) optionally; once the
// condition matches, the remaining deps are required.
type optRule struct{ nonTerminal }

func (r *optRule) Parse(tp TokenProducer, pc ParseContext) (bool, error) {
	start := tp.Current()
	cond := r.deps[0]
	ok, err := cond.Parse(tp, pc)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	for _, dep := range r.deps[1:] {
		tok := tp.Current()
		ok, err := dep.Parse(tp, pc)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, missingRuleErr(tok, dep)
		}
	}
	if err := pc.Join(start, r); err != nil {
		return false, err
	}
	return true, nil
}

// optionsRule tries each dependency in order and matches the first
// one that succeeds.
type optionsRule struct{ nonTerminal }

func (r *optionsRule) Parse(tp TokenProducer, pc ParseContext) (bool, error) {
	start := tp.Current()
	for _, dep := range r.deps {
		ok, err := dep.Parse(tp, pc)
		if err != nil {
			return false, err
		}
		if ok {
			if err := pc.Join(start, r); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}

// repeatRule matches deps[0] zero or more times, stopping at the
// first failed match. It never fails itself.
type repeatRule struct{ nonTerminal }

func (r *repeatRule) Parse(tp TokenProducer, pc ParseContext) (bool, error) {
	cond := r.deps[0]
	for {
		ok, err := cond.Parse(tp, pc)
		if err != nil {
			return false, err
		}
		if !ok {
			return true, nil
		}
	}
}
