package pegstack

import "strings"

// Input is what the interpreter matches against.  Cursors are opaque
// to the interpreter: bytes for text, token indexes for token
// streams.  Offset and Span translate them back into byte offsets of
// the source text.
type Input interface {
	// Len returns the cursor past the last item of the input
	Len() int

	// MatchLiteral matches `lit` at `cursor`, returning the value
	// to output and the new cursor
	MatchLiteral(cursor int, lit string) (Value, int, bool)

	// MatchPattern does the same for a pattern
	MatchPattern(cursor int, p *PatternExpr) (Value, int, bool)

	// Offset returns the byte offset in the source of `cursor`
	Offset(cursor int) int

	// Span returns the source bytes covered by cursors `from` to
	// `to`
	Span(from, to int) Range

	// Source returns the text that byte offsets point into
	Source() string
}

// MatchPrefix returns the length of the longest match of the pattern
// at the start of `s`, or -1 if it doesn't match.
func (e *PatternExpr) MatchPrefix(s string) int {
	if e.prefix == nil {
		return -1
	}
	loc := e.prefix.FindStringIndex(s)
	if loc == nil {
		return -1
	}
	return loc[1]
}

// MatchWhole returns true if the pattern matches all of `s`
func (e *PatternExpr) MatchWhole(s string) bool {
	return e.whole != nil && e.whole.MatchString(s)
}

type textInput struct {
	source string
}

// NewTextInput creates an input that matches literals and patterns
// against the characters of `source`.
func NewTextInput(source string) Input {
	return &textInput{source: source}
}

func (in *textInput) Len() int                { return len(in.source) }
func (in *textInput) Offset(cursor int) int   { return cursor }
func (in *textInput) Span(from, to int) Range { return NewRange(from, to) }
func (in *textInput) Source() string          { return in.source }

func (in *textInput) MatchLiteral(cursor int, lit string) (Value, int, bool) {
	if !strings.HasPrefix(in.source[cursor:], lit) {
		return nil, cursor, false
	}
	end := cursor + len(lit)
	return NewString(lit, NewRange(cursor, end)), end, true
}

func (in *textInput) MatchPattern(cursor int, p *PatternExpr) (Value, int, bool) {
	n := p.MatchPrefix(in.source[cursor:])
	if n < 0 {
		return nil, cursor, false
	}
	end := cursor + n
	return NewString(in.source[cursor:end], NewRange(cursor, end)), end, true
}

// Token is the unit produced by a lexer
type Token struct {
	Kind  string
	Value string
	Span  Range
}

type tokenInput struct {
	source string
	tokens []Token
}

// NewTokenInput creates an input in which literals match the next
// token whose kind is equal to the literal and patterns match the
// next token whose kind is fully matched by the pattern.  `source` is
// the text the token spans point into and may be empty.
func NewTokenInput(source string, tokens []Token) Input {
	return &tokenInput{source: source, tokens: tokens}
}

func (in *tokenInput) Len() int       { return len(in.tokens) }
func (in *tokenInput) Source() string { return in.source }

func (in *tokenInput) Offset(cursor int) int {
	switch {
	case cursor < len(in.tokens):
		return in.tokens[cursor].Span.Start
	case len(in.tokens) > 0:
		return in.tokens[len(in.tokens)-1].Span.End
	default:
		return 0
	}
}

func (in *tokenInput) Span(from, to int) Range {
	if from >= to {
		offset := in.Offset(from)
		return NewRange(offset, offset)
	}
	return NewRange(in.tokens[from].Span.Start, in.tokens[to-1].Span.End)
}

func (in *tokenInput) MatchLiteral(cursor int, kind string) (Value, int, bool) {
	if cursor >= len(in.tokens) || in.tokens[cursor].Kind != kind {
		return nil, cursor, false
	}
	return in.value(cursor), cursor + 1, true
}

func (in *tokenInput) MatchPattern(cursor int, p *PatternExpr) (Value, int, bool) {
	if cursor >= len(in.tokens) || !p.MatchWhole(in.tokens[cursor].Kind) {
		return nil, cursor, false
	}
	return in.value(cursor), cursor + 1, true
}

func (in *tokenInput) value(cursor int) Value {
	t := in.tokens[cursor]
	return NewString(t.Value, t.Span)
}
