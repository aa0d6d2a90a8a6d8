package pegstack

// TokenDef describes one kind of token a `Lexer` can produce
type TokenDef struct {
	Kind string
	expr Expr
	skip bool
}

// LiteralToken matches the exact text `text`
func LiteralToken(kind, text string) TokenDef {
	return TokenDef{Kind: kind, expr: Literal(text)}
}

// PatternToken matches the longest text accepted by the regular
// expression `re` anchored at the cursor
func PatternToken(kind, re string) TokenDef {
	return TokenDef{Kind: kind, expr: Pattern(re)}
}

// GrammarToken matches the text accepted by the rule `main` of `g`.
// That's handy for tokens with nested structure, like string
// interpolation or nested comments.
func GrammarToken(kind string, g *Grammar, main string) TokenDef {
	return TokenDef{Kind: kind, expr: Embed(g, main)}
}

// Skip returns a copy of the definition whose matches are consumed
// without producing tokens
func (d TokenDef) Skip() TokenDef {
	d.skip = true
	return d
}

// Lexer splits text into tokens.  Definitions are tried in the order
// they were given and the first one that matches wins, so keywords
// must come before the identifiers that would also match them.
type Lexer struct {
	defs    []TokenDef
	grammar *Grammar
}

// NewLexer compiles `defs` into a grammar that's evaluated by the same
// interpreter used for parsing
func NewLexer(defs ...TokenDef) *Lexer {
	alternatives := make([]Expr, 0, len(defs))
	for _, d := range defs {
		if d.skip {
			alternatives = append(alternatives, Hide(d.expr))
			continue
		}
		alternatives = append(alternatives, Wrap(d.Kind, d.expr))
	}
	g := NewGrammar()
	g.Define("main", ZeroOrMore(Choice(alternatives...)))
	return &Lexer{defs: defs, grammar: g}
}

// Grammar returns the grammar the definitions were compiled into
func (l *Lexer) Grammar() *Grammar { return l.grammar }

// Tokenize returns the tokens of `src`.  When some text can't be
// matched by any definition, the returned `*Failure` points at it.
func (l *Lexer) Tokenize(src string) ([]Token, error) {
	values, err := Evaluate(src, l.grammar, nil)
	if err != nil {
		return nil, err
	}
	tokens := make([]Token, 0, len(values))
	for _, v := range values {
		node, ok := v.(*Node)
		if !ok {
			continue
		}
		span := node.Span()
		tokens = append(tokens, Token{
			Kind:  node.Name,
			Value: span.Str(src),
			Span:  span,
		})
	}
	return tokens, nil
}
