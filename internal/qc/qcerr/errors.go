// Package qcerr defines the two positioned error kinds the interpreter
// raises: parse-time failures from the tokenizer/grammar engine, and
// exec-time failures from the evaluator.
package qcerr

import (
	"fmt"

	"github.com/m-marini/qucomp-go/internal/qc/source"
)

// Kind distinguishes where in the pipeline an Error originated.
type Kind int

const (
	// Parse errors come from the tokenizer or the grammar/compiler layer.
	Parse Kind = iota
	// Exec errors come from the evaluator.
	Exec
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse error"
	case Exec:
		return "exec error"
	default:
		return "error"
	}
}

// Error is a positioned failure. It implements the error interface and
// renders its source snippet via Context.Render.
type Error struct {
	Kind    Kind
	Message string
	Context source.Context
}

func (e *Error) Error() string {
	return e.Context.Render(e.Message)
}

// ParseErr creates a parse-time error at ctx.
func ParseErr(ctx source.Context, message string) *Error {
	return &Error{Kind: Parse, Message: message, Context: ctx}
}

// Parsef creates a parse-time error with a formatted message.
func Parsef(ctx source.Context, format string, args ...any) *Error {
	return ParseErr(ctx, fmt.Sprintf(format, args...))
}

// ExecErr creates an exec-time error at ctx.
func ExecErr(ctx source.Context, message string) *Error {
	return &Error{Kind: Exec, Message: message, Context: ctx}
}

// Execf creates an exec-time error with a formatted message.
func Execf(ctx source.Context, format string, args ...any) *Error {
	return ExecErr(ctx, fmt.Sprintf(format, args...))
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
