package pegstack

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("a nil config uses the defaults", func(t *testing.T) {
		g := mainGrammar(Literal("a"))

		_, err := Evaluate("ab", g, nil)
		requireFailure(t, err)

		values, err := Evaluate("ab", g, partialConfig())
		require.NoError(t, err)
		assert.Equal(t, "a", Text(values))
	})

	t.Run("grammars can be shared between runs", func(t *testing.T) {
		g, err := GrammarFromBytes([]byte("main <- word (~' ' word)*\nword <- w:( [a-z]+ )"))
		require.NoError(t, err)

		done := make(chan []Value)
		for _, input := range []string{"a b", "c d e"} {
			go func(input string) {
				values, _ := Evaluate(input, g, nil)
				done <- values
			}(input)
		}
		sizes := map[int]bool{}
		for i := 0; i < 2; i++ {
			sizes[len(<-done)] = true
		}
		assert.Equal(t, map[int]bool{2: true, 3: true}, sizes)
	})

	t.Run("token streams without source text", func(t *testing.T) {
		tokens := []Token{{Kind: "a", Value: "x"}, {Kind: "b", Value: "y"}}

		values, err := EvaluateTokens("", tokens, mainGrammar(Sequence(Literal("a"), Literal("b"))), nil)
		require.NoError(t, err)
		assert.Equal(t, "xy", Text(values))

		_, err = EvaluateTokens("", tokens, mainGrammar(Literal("b")), nil)
		f := requireFailure(t, err)
		assert.Equal(t, 0, f.Offset)
		assert.Equal(t, 1, f.Line)
	})
}

func ExampleEvaluate() {
	g := NewGrammar()
	g.Define("main", Sequence(Rule("word"), ZeroOrMore(Hide(Literal(" ")), Rule("word"))))
	g.Define("word", Wrap("word", Pattern(`[a-z]+`)))

	values, err := Evaluate("hello world", g, nil)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(Pretty(values))
	// Output:
	// word (0..5)
	// └── "hello" (0..5)
	// word (6..11)
	// └── "world" (6..11)
}

func ExampleGrammarFromBytes() {
	g, err := GrammarFromBytes([]byte(`
		main  <- sum
		sum   <- num (op num)*
		op    <- ~' '* ('+' / '-') ~' '*
		num   <- [0-9]+
	`))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(g)

	_, err = Evaluate("1 + ", g, nil)
	fmt.Println(err)
	// Output:
	// main <- sum
	// sum <- num (op num)*
	// op <- ~(' '*) ('+' / '-') ~(' '*)
	// num <- `[0-9]`+
	// Fail @ 1:2
}
