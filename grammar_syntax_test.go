package pegstack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammarFromBytes(t *testing.T) {
	t.Run("expressions read back as their notation", func(t *testing.T) {
		tests := []struct {
			name     string
			input    string
			expected string
		}{
			{"literal", `A <- 'a'`, `A <- 'a'`},
			{"double quoted literal with escapes", `A <- "a\n\x41"`, `A <- 'a\nA'`},
			{"sequence", `A <- 'a' B`, `A <- 'a' B`},
			{"choice", `A <- 'a' / B / 'c'`, `A <- 'a' / B / 'c'`},
			{"grouped choice", `A <- ('a' / 'b') C`, `A <- ('a' / 'b') C`},
			{"suffixes", `A <- a? b* c+`, `A <- a? b* c+`},
			{"prefixes", `A <- !a ~b`, `A <- !a ~b`},
			{"bounds", `A <- a{2} b{1,3} c{2,} d{,4} e{,}`, `A <- a{2} b{1,3} c{2,} d{,4} e{,}`},
			{"class", `A <- [a-z_]`, "A <- `[a-z_]`"},
			{"regex", "A <- `\\d+`", "A <- `\\d+`"},
			{"any", `A <- .`, "A <- `(?s).`"},
			{"label", `A <- pair:( K ~':' V )`, `A <- pair:(K ~':' V)`},
			{"empty alternative", `A <- 'a' / `, `A <- 'a' / ()`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				g, err := GrammarFromBytes([]byte(tt.input))
				require.NoError(t, err)
				assert.Equal(t, tt.expected, g.String())
			})
		}
	})

	t.Run("definitions and comments span many lines", func(t *testing.T) {
		g, err := GrammarFromBytes([]byte(`
			# the entry point
			main   <- Item (~',' Item)*   # trailing comment
			Item   <- Number / Word
			Number <- [0-9]+
			Word   <- [a-z]+
		`))

		require.NoError(t, err)
		assert.Equal(t, []string{"main", "Item", "Number", "Word"}, g.Names())

		values, err := Evaluate("1,ab,22", g, nil)
		require.NoError(t, err)
		assert.Equal(t, "1ab22", Text(values))
	})

	t.Run("labels produce nodes", func(t *testing.T) {
		g, err := GrammarFromBytes([]byte("main <- pair:( key:( `[a-z]+` ) ~'=' value:( [0-9]+ ) )"))
		require.NoError(t, err)

		values, err := Evaluate("a=1", g, nil)

		require.NoError(t, err)
		assert.Equal(t, []Value{
			NewNode("pair", NewRange(0, 3),
				NewNode("key", NewRange(0, 1), NewString("a", NewRange(0, 1))),
				NewNode("value", NewRange(2, 3), NewString("1", NewRange(2, 3))),
			),
		}, values)
	})

	t.Run("syntax errors are failures with a position", func(t *testing.T) {
		tests := []struct {
			name    string
			input   string
			message string
		}{
			{"missing parenthesis", "A <- ('a'\nB <- 'b'", "missing closing parenthesis"},
			{"unterminated literal", "A <- 'a", "unterminated string literal"},
			{"unterminated class", "A <- [a-z", "unterminated character class"},
			{"unterminated regex", "A <- `a", "unterminated regular expression"},
			{"missing brace", "A <- a{1,2", "missing closing brace"},
			{"garbage after definitions", "A <- 'a' )", "expected a rule definition"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := GrammarFromBytes([]byte(tt.input))
				f := requireFailure(t, err)
				assert.Equal(t, FailurePayload, f.Kind)
				assert.Equal(t, tt.message, f.Payload)
			})
		}
	})

	t.Run("empty text is not a grammar", func(t *testing.T) {
		_, err := GrammarFromBytes([]byte("  # nothing\n"))

		f := requireFailure(t, err)
		assert.Equal(t, FailureMismatch, f.Kind)
	})

	t.Run("shape errors are reported after reading", func(t *testing.T) {
		_, err := GrammarFromBytes([]byte("A <- a{3,1}\nA <- 'b'"))

		var gerr *GrammarError
		require.ErrorAs(t, err, &gerr)
		assert.Equal(t, "A", gerr.Rule)
	})

	t.Run("undefined rules are reported by check", func(t *testing.T) {
		g, err := GrammarFromBytes([]byte("main <- Valu\nValue <- 'v'"))
		require.NoError(t, err)

		var rerr *ResolutionError
		require.ErrorAs(t, g.Check(), &rerr)
		assert.Equal(t, "Value", rerr.Suggestion)
	})
}
