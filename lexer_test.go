package pegstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexer(t *testing.T) {
	lexer := NewLexer(
		LiteralToken("let", "let"),
		PatternToken("id", `[a-z_][a-z0-9_]*`),
		PatternToken("num", `[0-9]+`),
		LiteralToken("=", "="),
		LiteralToken(";", ";"),
		PatternToken("space", `\s+`).Skip(),
	)

	t.Run("tokens carry their kind, text and span", func(t *testing.T) {
		tokens, err := lexer.Tokenize("let x = 10;")

		require.NoError(t, err)
		assert.Equal(t, []Token{
			{Kind: "let", Value: "let", Span: NewRange(0, 3)},
			{Kind: "id", Value: "x", Span: NewRange(4, 5)},
			{Kind: "=", Value: "=", Span: NewRange(6, 7)},
			{Kind: "num", Value: "10", Span: NewRange(8, 10)},
			{Kind: ";", Value: ";", Span: NewRange(10, 11)},
		}, tokens)
	})

	t.Run("the first definition that matches wins", func(t *testing.T) {
		tokens, err := lexer.Tokenize("letter")

		require.NoError(t, err)
		assert.Equal(t, []string{"let", "id"}, tokenKinds(tokens))
	})

	t.Run("empty input has no tokens", func(t *testing.T) {
		tokens, err := lexer.Tokenize("")

		require.NoError(t, err)
		assert.Empty(t, tokens)
	})

	t.Run("text no definition matches is a failure", func(t *testing.T) {
		_, err := lexer.Tokenize("let x\n  = $;")

		f := requireFailure(t, err)
		assert.Equal(t, 10, f.Offset)
		assert.Equal(t, 2, f.Line)
		assert.Equal(t, 5, f.Column)
	})

	t.Run("tokens can be matched by sub grammars", func(t *testing.T) {
		comment := NewGrammar()
		comment.Define("comment", Sequence(Literal("(*"), ZeroOrMore(Choice(Rule("comment"), Sequence(Not(Literal("*)")), Pattern(`(?s).`)))), Literal("*)")))

		lexer := NewLexer(
			GrammarToken("comment", comment, "comment"),
			PatternToken("id", `[a-z]+`),
			PatternToken("space", `\s+`).Skip(),
		)

		tokens, err := lexer.Tokenize("a (* b (* c *) *) d")

		require.NoError(t, err)
		assert.Equal(t, []Token{
			{Kind: "id", Value: "a", Span: NewRange(0, 1)},
			{Kind: "comment", Value: "(* b (* c *) *)", Span: NewRange(2, 17)},
			{Kind: "id", Value: "d", Span: NewRange(18, 19)},
		}, tokens)
	})

	t.Run("tokens feed the token mode", func(t *testing.T) {
		src := "let answer = 42;"
		tokens, err := lexer.Tokenize(src)
		require.NoError(t, err)

		g := mainGrammar(Wrap("let", Hide(Literal("let")), Literal("id"), Hide(Literal("=")), Literal("num"), Hide(Literal(";"))))
		values, err := EvaluateTokens(src, tokens, g, nil)

		require.NoError(t, err)
		assert.Equal(t, []Value{
			NewNode("let", NewRange(0, 16),
				NewString("answer", NewRange(4, 10)),
				NewString("42", NewRange(13, 15)),
			),
		}, values)
	})

	t.Run("the compiled grammar is available", func(t *testing.T) {
		assert.Equal(t, []string{"main"}, lexer.Grammar().Names())
		assert.NoError(t, lexer.Grammar().Check())
	})
}

func tokenKinds(tokens []Token) []string {
	kinds := make([]string, len(tokens))
	for i, t := range tokens {
		kinds[i] = t.Kind
	}
	return kinds
}
