package pegstack

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// GrammarFromBytes reads a grammar written in PEG notation:
//
//	# comments run until the end of the line
//	Value    <- Number / String / List
//	List     <- ~'[' Items? ~']'
//	Items    <- Value (~',' Value)*
//	Number   <- [0-9]+
//	String   <- str:( '"' `[^"]*` '"' )
//
// Besides the usual operators, `~e` hides the output of `e`,
// `label:( e )` wraps it into a node named `label`, `e{m,n}` matches
// `e` between m and n times and text between backticks is a regular
// expression.  The text is parsed by the interpreter itself.
func GrammarFromBytes(data []byte) (*Grammar, error) {
	values, err := Evaluate(string(data), syntaxGrammar(), nil)
	if err != nil {
		return nil, err
	}
	g := NewGrammar()
	for _, v := range values {
		def, ok := v.(*Node)
		if !ok || def.Name != "Definition" || len(def.Items) != 2 {
			return nil, fmt.Errorf("unexpected value in grammar: %s", v)
		}
		name := def.Items[0].Text()
		expr, err := buildExpr(def.Items[1])
		if err != nil {
			return nil, &GrammarError{Rule: name, Message: err.Error()}
		}
		g.Define(name, expr)
	}
	return g, g.Err()
}

var (
	syntaxOnce sync.Once
	syntax     *Grammar
)

// syntaxGrammar returns the grammar of the PEG notation.  It's built
// only once and shared, grammars are read only during evaluation.
func syntaxGrammar() *Grammar {
	syntaxOnce.Do(func() { syntax = newSyntaxGrammar() })
	return syntax
}

func newSyntaxGrammar() *Grammar {
	punct := func(s string) Expr { return Hide(Literal(s), Rule("Spacing")) }
	token := func(name string, e Expr) Expr { return Sequence(Wrap(name, e), Rule("Spacing")) }

	g := NewGrammar()
	g.Define("main", Sequence(
		Rule("Spacing"),
		OneOrMore(Rule("Definition")),
		Choice(Not(Pattern(`(?s).`)), Throw("expected a rule definition")),
	))
	g.Define("Definition", Wrap("Definition", Rule("Identifier"), Rule("LEFTARROW"), Rule("Expression")))
	g.Define("Expression", Wrap("Choice", Rule("Sequence"), ZeroOrMore(Rule("SLASH"), Rule("Sequence"))))
	g.Define("Sequence", Wrap("Sequence", ZeroOrMore(Rule("Prefix"))))
	g.Define("Prefix", Choice(
		Wrap("Not", punct("!"), Rule("Suffix")),
		Wrap("Hide", punct("~"), Rule("Suffix")),
		Rule("Suffix"),
	))
	g.Define("Suffix", Wrap("Suffix",
		Rule("Primary"),
		Optional(Choice(token("Op", Pattern(`[?*+]`)), Rule("Bounds"))),
	))
	g.Define("Bounds", Wrap("Bounds",
		punct("{"),
		Optional(token("Min", Pattern(`[0-9]+`))),
		Optional(token("Comma", Literal(","))),
		Optional(token("Max", Pattern(`[0-9]+`))),
		Choice(punct("}"), Throw("missing closing brace")),
	))
	g.Define("Primary", Choice(
		Rule("Label"),
		Sequence(Rule("Identifier"), Not(Rule("LEFTARROW"))),
		Sequence(Rule("OPEN"), Rule("Expression"), Rule("CLOSE")),
		Rule("Literal"),
		Rule("Class"),
		Rule("Regex"),
		token("Any", Literal(".")),
	))
	g.Define("Label", Wrap("Label",
		Rule("Identifier"), punct(":"), Rule("OPEN"), Rule("Expression"), Rule("CLOSE"),
	))
	g.Define("Identifier", token("Identifier", Pattern(`[A-Za-z_][A-Za-z0-9_]*`)))
	g.Define("Literal", Choice(
		token("Literal", Pattern(`'(?:[^'\\]|\\.)*'|"(?:[^"\\]|\\.)*"`)),
		Sequence(Pattern(`['"]`), Throw("unterminated string literal")),
	))
	g.Define("Class", Choice(
		token("Class", Pattern(`\[(?:[^\]\\]|\\.)*\]`)),
		Sequence(Literal("["), Throw("unterminated character class")),
	))
	g.Define("Regex", Choice(
		token("Regex", Pattern("`[^`]*`")),
		Sequence(Literal("`"), Throw("unterminated regular expression")),
	))
	g.Define("LEFTARROW", punct("<-"))
	g.Define("SLASH", punct("/"))
	g.Define("OPEN", punct("("))
	g.Define("CLOSE", Choice(punct(")"), Throw("missing closing parenthesis")))
	g.Define("Spacing", Hide(ZeroOrMore(Choice(Pattern(`\s+`), Pattern(`#[^\n]*`)))))
	return g
}

// buildExpr turns the output of the syntax grammar into expressions
func buildExpr(v Value) (Expr, error) {
	node, ok := v.(*Node)
	if !ok {
		return nil, fmt.Errorf("unexpected value %s", v)
	}
	switch node.Name {
	case "Choice", "Sequence":
		items, err := buildExprs(node.Items)
		if err != nil {
			return nil, err
		}
		if len(items) == 1 {
			return items[0], nil
		}
		if node.Name == "Choice" {
			return Choice(items...), nil
		}
		return Sequence(items...), nil

	case "Not", "Hide":
		item, err := buildExpr(node.Items[0])
		if err != nil {
			return nil, err
		}
		if node.Name == "Not" {
			return Not(item), nil
		}
		return Hide(item), nil

	case "Suffix":
		item, err := buildExpr(node.Items[0])
		if err != nil || len(node.Items) == 1 {
			return item, err
		}
		return buildSuffix(item, node.Items[1].(*Node))

	case "Label":
		item, err := buildExpr(node.Items[1])
		if err != nil {
			return nil, err
		}
		return Wrap(node.Items[0].Text(), item), nil

	case "Identifier":
		return Rule(node.Text()), nil

	case "Literal":
		text, err := unquoteLiteral(node.Text())
		if err != nil {
			return nil, fmt.Errorf("invalid literal %s: %w", node.Text(), err)
		}
		return Literal(text), nil

	case "Class":
		return Pattern(node.Text()), nil

	case "Regex":
		text := node.Text()
		return Pattern(text[1 : len(text)-1]), nil

	case "Any":
		return Pattern(`(?s).`), nil
	}
	return nil, fmt.Errorf("unexpected node %s", node.Name)
}

func buildExprs(values []Value) ([]Expr, error) {
	items := make([]Expr, 0, len(values))
	for _, v := range values {
		item, err := buildExpr(v)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func buildSuffix(item Expr, op *Node) (Expr, error) {
	if op.Name == "Op" {
		switch op.Text() {
		case "?":
			return Optional(item), nil
		case "*":
			return ZeroOrMore(item), nil
		default:
			return OneOrMore(item), nil
		}
	}

	bounds := map[string]int{}
	for _, v := range op.Items {
		n := v.(*Node)
		if n.Name == "Comma" {
			bounds[n.Name] = 0
			continue
		}
		i, err := strconv.Atoi(n.Text())
		if err != nil {
			return nil, fmt.Errorf("invalid bound %s: %w", n.Text(), err)
		}
		bounds[n.Name] = i
	}

	min, hasMin := bounds["Min"]
	max, hasMax := bounds["Max"]
	_, hasComma := bounds["Comma"]
	if !hasMin {
		min = Unbounded
	}
	if !hasMax {
		max = Unbounded
	}
	// `{n}` is an exact count
	if !hasComma {
		if !hasMin {
			return nil, fmt.Errorf("empty bounds")
		}
		max = min
	}
	return Bounded(min, max, item), nil
}

func unquoteLiteral(s string) (string, error) {
	quote, body := s[0], s[1:len(s)-1]
	var b strings.Builder
	for len(body) > 0 {
		r, multibyte, tail, err := strconv.UnquoteChar(body, quote)
		if err != nil {
			return "", err
		}
		if r < 0x100 && !multibyte {
			b.WriteByte(byte(r))
		} else {
			b.WriteRune(r)
		}
		body = tail
	}
	return b.String(), nil
}
