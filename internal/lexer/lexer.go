// Package lexer scans source text into the token stream the grammar
// engine drives: integers, reals (with optional exponent), identifiers,
// and single-character operators. Whitespace, `//` line comments and
// `/* */` block comments are skipped transparently; `/` on its own is
// the division operator.
package lexer

import (
	"bufio"
	"io"
	"log/slog"
	"strings"

	"github.com/m-marini/qucomp-go/internal/applog"
	"github.com/m-marini/qucomp-go/internal/qc/qcerr"
	"github.com/m-marini/qucomp-go/internal/qc/source"
)

// Kind classifies a Token.
type Kind int

const (
	EOF Kind = iota
	Integer
	Real
	Identifier
	Operator
)

func (k Kind) String() string {
	switch k {
	case EOF:
		return "eof"
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Identifier:
		return "identifier"
	case Operator:
		return "operator"
	default:
		return "unknown token kind"
	}
}

// Token is a single scan result: its kind and the source.Context
// carrying the matched text and its position.
type Token struct {
	Kind Kind
	Ctx  source.Context
}

func (t Token) String() string { return t.Ctx.Token }

// Lexer pulls Tokens from source text, one line at a time. Every line
// is read with its trailing newline preserved (synthesizing one for
// the final line if the source lacks it), matching how positions are
// reported against the original line text.
type Lexer struct {
	lines  []string
	logger *slog.Logger

	lineIdx int
	pos     int

	tokenLineIdx int
	tokenPos     int

	current Token
}

// New builds a Lexer over r and scans its first token. A nil logger
// defaults to applog.Default().
func New(r io.Reader, logger *slog.Logger) (*Lexer, error) {
	if logger == nil {
		logger = applog.Default()
	}
	lines, err := splitLines(r)
	if err != nil {
		return nil, err
	}
	l := &Lexer{lines: lines, logger: logger}
	logger.Debug("lexer opened", "lines", len(lines))
	if err := l.scan(); err != nil {
		return nil, err
	}
	return l, nil
}

func splitLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text()+"\n")
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

// Current returns the most recently scanned token without advancing.
func (l *Lexer) Current() Token { return l.current }

// Advance scans the next token, stores it as Current, and returns it.
// Calling Advance past EOF keeps returning EOF.
func (l *Lexer) Advance() (Token, error) {
	if err := l.scan(); err != nil {
		return Token{}, err
	}
	l.logger.Debug("token scanned", "kind", l.current.Kind, "token", l.current.Ctx.Token)
	return l.current, nil
}

func (l *Lexer) eof() bool {
	return l.lineIdx >= len(l.lines)
}

func (l *Lexer) currentChar() byte {
	return l.lines[l.lineIdx][l.pos]
}

func (l *Lexer) popChar() {
	l.pos++
	if l.pos >= len(l.lines[l.lineIdx]) {
		l.lineIdx++
		l.pos = 0
	}
}

func (l *Lexer) scan() error {
	for {
		if l.eof() {
			l.current = Token{Kind: EOF, Ctx: l.tokenContext("")}
			return nil
		}
		l.tokenLineIdx, l.tokenPos = l.lineIdx, l.pos

		ch := l.currentChar()
		switch {
		case isSpace(ch):
			l.skipBlanks()
		case isDigit(ch):
			return l.scanNumber()
		case isAlpha(ch):
			l.scanIdentifier()
			return nil
		case ch == '/':
			produced, err := l.scanSlash()
			if err != nil {
				return err
			}
			if produced {
				return nil
			}
		default:
			l.current = Token{Kind: Operator, Ctx: l.tokenContext(string(ch))}
			l.popChar()
			return nil
		}
	}
}

func (l *Lexer) skipBlanks() {
	for !l.eof() && isSpace(l.currentChar()) {
		l.popChar()
	}
}

// scanSlash handles the three meanings of a leading '/': a line comment,
// a block comment, or the division operator. It returns true when it
// produced a token (the operator or end-of-input), false when it only
// consumed a comment and scanning should resume.
func (l *Lexer) scanSlash() (bool, error) {
	l.popChar()
	if l.eof() {
		l.current = Token{Kind: Operator, Ctx: l.tokenContext("/")}
		return true, nil
	}
	switch l.currentChar() {
	case '/':
		l.lineIdx++
		l.pos = 0
		return false, nil
	case '*':
		l.skipBlockComment()
		return false, nil
	default:
		l.current = Token{Kind: Operator, Ctx: l.tokenContext("/")}
		return true, nil
	}
}

func (l *Lexer) skipBlockComment() {
	l.popChar()
	for !l.eof() {
		ch := l.currentChar()
		l.popChar()
		if ch == '*' && !l.eof() && l.currentChar() == '/' {
			l.popChar()
			return
		}
	}
}

func (l *Lexer) scanNumber() error {
	var b strings.Builder
	for {
		b.WriteByte(l.currentChar())
		l.popChar()
		if l.eof() || !isDigit(l.currentChar()) {
			break
		}
	}
	if l.eof() {
		l.current = Token{Kind: Integer, Ctx: l.tokenContext(b.String())}
		return nil
	}
	switch l.currentChar() {
	case '.':
		return l.scanFraction(b.String())
	case 'e', 'E':
		return l.scanExponent(b.String())
	default:
		l.current = Token{Kind: Integer, Ctx: l.tokenContext(b.String())}
		return nil
	}
}

func (l *Lexer) scanFraction(prefix string) error {
	b := strings.Builder{}
	b.WriteString(prefix)
	for {
		b.WriteByte(l.currentChar())
		l.popChar()
		if l.eof() || !isDigit(l.currentChar()) {
			break
		}
	}
	if l.eof() {
		l.current = Token{Kind: Real, Ctx: l.tokenContext(b.String())}
		return nil
	}
	switch l.currentChar() {
	case 'e', 'E':
		return l.scanExponent(b.String())
	default:
		l.current = Token{Kind: Real, Ctx: l.tokenContext(b.String())}
		return nil
	}
}

func (l *Lexer) scanExponent(prefix string) error {
	b := strings.Builder{}
	b.WriteString(prefix)
	b.WriteByte(l.currentChar())
	l.popChar()

	if l.eof() {
		return l.missingExponentErr()
	}
	if ch := l.currentChar(); ch == '+' || ch == '-' {
		b.WriteByte(ch)
		l.popChar()
	}
	if l.eof() || !isDigit(l.currentChar()) {
		return l.missingExponentErr()
	}
	for {
		b.WriteByte(l.currentChar())
		l.popChar()
		if l.eof() || !isDigit(l.currentChar()) {
			break
		}
	}
	l.current = Token{Kind: Real, Ctx: l.tokenContext(b.String())}
	return nil
}

func (l *Lexer) missingExponentErr() error {
	ctx := l.charContext()
	return qcerr.Parsef(ctx, "Missing exponent")
}

func (l *Lexer) scanIdentifier() {
	var b strings.Builder
	for {
		b.WriteByte(l.currentChar())
		l.popChar()
		if l.eof() || !isAlnum(l.currentChar()) {
			break
		}
	}
	l.current = Token{Kind: Identifier, Ctx: l.tokenContext(b.String())}
}

// charContext positions an error at the current scan cursor rather
// than at the token's start, for mid-token failures like a bare 'e'.
func (l *Lexer) charContext() source.Context {
	if l.eof() {
		return l.tokenContext("<eof>")
	}
	text := displayChar(l.currentChar())
	lineText := strings.TrimSuffix(l.lines[l.lineIdx], "\n")
	return source.New(text, lineText, uint(l.lineIdx+1), uint(l.pos))
}

func displayChar(ch byte) string {
	switch ch {
	case '\n':
		return "<newline>"
	case '\t':
		return "<tab>"
	case '\r':
		return "<cr>"
	default:
		if ch < 0x20 {
			return "<ctrl>"
		}
		return string(ch)
	}
}

func (l *Lexer) tokenContext(text string) source.Context {
	var lineText string
	if l.tokenLineIdx < len(l.lines) {
		lineText = strings.TrimSuffix(l.lines[l.tokenLineIdx], "\n")
	}
	return source.New(text, lineText, uint(l.tokenLineIdx+1), uint(l.tokenPos))
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r' || ch == '\v' || ch == '\f'
}

func isDigit(ch byte) bool { return ch >= '0' && ch <= '9' }

func isAlpha(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlnum(ch byte) bool { return isAlpha(ch) || isDigit(ch) }
