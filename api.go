// Package pegstack interprets Parsing Expression Grammars built from
// combinator values.  The interpreter keeps its own stack of frames
// so deeply nested input never grows the Go call stack, and it can
// match either text or a stream of tokens produced by a lexer.
package pegstack

// Evaluate matches `input` against `g` and returns the values
// produced by the main rule.  A nil `cfg` means `NewConfig()`.
func Evaluate(input string, g *Grammar, cfg *Config) ([]Value, error) {
	values, _, err := NewVirtualMachine(g, cfg).Match(NewTextInput(input))
	return values, err
}

// EvaluateTokens matches a token stream against `g`.  Literals in the
// grammar match token kinds.  `source` is the text the tokens were
// produced from and is used to compute failure positions and spans.
func EvaluateTokens(source string, tokens []Token, g *Grammar, cfg *Config) ([]Value, error) {
	values, _, err := NewVirtualMachine(g, cfg).Match(NewTokenInput(source, tokens))
	return values, err
}
