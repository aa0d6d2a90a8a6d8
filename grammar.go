package pegstack

import (
	"fmt"
	"regexp"
	"strings"
)

// Expr is implemented by every grammar expression.  The set is closed:
// the interpreter dispatches on the concrete types declared in this
// file and ignores anything else.
type Expr interface {
	String() string
	children() []Expr
}

// Node Type: Literal

type LiteralExpr struct {
	Value string
}

// Literal matches `s` exactly.  In token mode it matches the next
// token whose kind is `s`.
func Literal(s string) *LiteralExpr { return &LiteralExpr{Value: s} }

func (e *LiteralExpr) String() string   { return fmt.Sprintf("'%s'", escapeLiteral(e.Value)) }
func (e *LiteralExpr) children() []Expr { return nil }

// Node Type: Pattern

type PatternExpr struct {
	Source string

	// prefix is anchored at the cursor and prefers the longest
	// match; whole is anchored on both ends and is used to match
	// token kinds
	prefix *regexp.Regexp
	whole  *regexp.Regexp
	err    error
}

// Pattern matches the longest match of the regular expression `src`
// found at the cursor.  An invalid `src` is reported when the
// expression is added to a grammar.
func Pattern(src string) *PatternExpr {
	e := &PatternExpr{Source: src}
	if e.prefix, e.err = regexp.Compile(`^(?:` + src + `)`); e.err != nil {
		return e
	}
	e.prefix.Longest()
	e.whole, e.err = regexp.Compile(`^(?:` + src + `)$`)
	return e
}

// PatternRegexp is like Pattern but takes an already compiled
// expression.  Only its source is used, `re` itself is never touched.
func PatternRegexp(re *regexp.Regexp) *PatternExpr {
	return Pattern(re.String())
}

func (e *PatternExpr) String() string   { return "`" + e.Source + "`" }
func (e *PatternExpr) children() []Expr { return nil }

// Node Type: Rule

type RuleExpr struct {
	Name string
}

// Rule references the rule `name`.  It's only resolved when the
// interpreter reaches it, so rules can be defined in any order.
func Rule(name string) *RuleExpr { return &RuleExpr{Name: name} }

func (e *RuleExpr) String() string   { return e.Name }
func (e *RuleExpr) children() []Expr { return nil }

// Node Type: Sequence

type SequenceExpr struct {
	Items []Expr
}

func Sequence(items ...Expr) *SequenceExpr { return &SequenceExpr{Items: items} }

func (e *SequenceExpr) children() []Expr { return e.Items }
func (e *SequenceExpr) String() string {
	if len(e.Items) == 0 {
		return "()"
	}
	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		if c, ok := item.(*ChoiceExpr); ok && len(c.Items) > 1 {
			parts[i] = "(" + item.String() + ")"
			continue
		}
		parts[i] = exprString(item)
	}
	return strings.Join(parts, " ")
}

// Node Type: Choice

type ChoiceExpr struct {
	Items []Expr
}

// Choice tries each item in order and commits to the first one that
// matches.
func Choice(items ...Expr) *ChoiceExpr { return &ChoiceExpr{Items: items} }

func (e *ChoiceExpr) children() []Expr { return e.Items }
func (e *ChoiceExpr) String() string {
	parts := make([]string, len(e.Items))
	for i, item := range e.Items {
		parts[i] = exprString(item)
	}
	return strings.Join(parts, " / ")
}

// Node Type: Repeat

type RepeatKind int

const (
	RepeatZeroOrMore RepeatKind = iota
	RepeatOneOrMore
	RepeatBounded
	RepeatOptional
	RepeatNot
)

func (k RepeatKind) String() string {
	switch k {
	case RepeatZeroOrMore:
		return "ZeroOrMore"
	case RepeatOneOrMore:
		return "OneOrMore"
	case RepeatBounded:
		return "Bounded"
	case RepeatOptional:
		return "Optional"
	case RepeatNot:
		return "Not"
	default:
		return "Unknown"
	}
}

// Unbounded disables either side of a `Bounded` repetition
const Unbounded = -1

type RepeatExpr struct {
	Kind RepeatKind

	// Min and Max are only used by `RepeatBounded`
	Min, Max int

	Item Expr
}

func ZeroOrMore(items ...Expr) *RepeatExpr {
	return &RepeatExpr{Kind: RepeatZeroOrMore, Item: group(items)}
}

func OneOrMore(items ...Expr) *RepeatExpr {
	return &RepeatExpr{Kind: RepeatOneOrMore, Item: group(items)}
}

// Bounded matches its items greedily and succeeds if the amount of
// matches is within `min` and `max`.  Either bound can be `Unbounded`.
func Bounded(min, max int, items ...Expr) *RepeatExpr {
	return &RepeatExpr{Kind: RepeatBounded, Min: min, Max: max, Item: group(items)}
}

func Optional(items ...Expr) *RepeatExpr {
	return &RepeatExpr{Kind: RepeatOptional, Item: group(items)}
}

// Not succeeds without consuming input only if its items don't match.
func Not(items ...Expr) *RepeatExpr {
	return &RepeatExpr{Kind: RepeatNot, Item: group(items)}
}

func (e *RepeatExpr) children() []Expr { return []Expr{e.Item} }
func (e *RepeatExpr) String() string {
	item := primaryString(e.Item)
	switch e.Kind {
	case RepeatZeroOrMore:
		return item + "*"
	case RepeatOneOrMore:
		return item + "+"
	case RepeatOptional:
		return item + "?"
	case RepeatNot:
		return "!" + item
	}
	return item + boundsString(e.Min, e.Max)
}

func boundsString(min, max int) string {
	switch {
	case min == Unbounded && max == Unbounded:
		return "{,}"
	case min == max:
		return fmt.Sprintf("{%d}", min)
	case max == Unbounded:
		return fmt.Sprintf("{%d,}", min)
	case min == Unbounded:
		return fmt.Sprintf("{,%d}", max)
	default:
		return fmt.Sprintf("{%d,%d}", min, max)
	}
}

// Node Type: Wrap

type WrapExpr struct {
	Name  string
	Items []Expr
}

// Wrap matches its items as a sequence and collapses their output
// into a single node named `name`.
func Wrap(name string, items ...Expr) *WrapExpr { return &WrapExpr{Name: name, Items: items} }

func (e *WrapExpr) children() []Expr { return e.Items }
func (e *WrapExpr) String() string {
	return fmt.Sprintf("%s:(%s)", e.Name, Sequence(e.Items...))
}

// Node Type: Hide

type HideExpr struct {
	Items []Expr
}

// Hide matches its items as a sequence and drops their output.
func Hide(items ...Expr) *HideExpr { return &HideExpr{Items: items} }

func (e *HideExpr) children() []Expr { return e.Items }
func (e *HideExpr) String() string {
	if len(e.Items) == 1 {
		return "~" + primaryString(e.Items[0])
	}
	return fmt.Sprintf("~(%s)", Sequence(e.Items...))
}

// Node Type: Embed

type EmbedExpr struct {
	Grammar *Grammar
	Main    string
}

// Embed runs rule `main` of another grammar as a synchronous sub
// call.  The enclosing frame advances by whatever the nested run
// consumed and receives its output.
func Embed(g *Grammar, main string) *EmbedExpr { return &EmbedExpr{Grammar: g, Main: main} }

func (e *EmbedExpr) String() string   { return fmt.Sprintf("@embed(%s)", e.Main) }
func (e *EmbedExpr) children() []Expr { return nil }

// group turns variadic constructor arguments into a single expression
func group(items []Expr) Expr {
	if len(items) == 1 {
		return items[0]
	}
	return Sequence(items...)
}

// primaryString renders `e` so it can be followed by a suffix or
// preceded by a prefix operator without changing its meaning
func primaryString(e Expr) string {
	switch n := e.(type) {
	case *SequenceExpr:
		if len(n.Items) == 1 {
			return primaryString(n.Items[0])
		}
		return "(" + n.String() + ")"
	case *ChoiceExpr, *RepeatExpr, *HideExpr:
		return "(" + n.String() + ")"
	default:
		return exprString(e)
	}
}

func exprString(e Expr) string {
	if e == nil {
		return "<nil>"
	}
	return e.String()
}

// Inspect traverses an expression in depth-first order.  It calls the
// function f for each expression in the tree.  If f returns true,
// Inspect continues to traverse the children of the expression;
// otherwise they're skipped.  Rule references are not followed.
func Inspect(e Expr, f func(Expr) bool) {
	if e == nil || !f(e) {
		return
	}
	for _, child := range e.children() {
		Inspect(child, f)
	}
}

// Grammar maps rule names to expressions.  It must not be modified
// once it's being used for evaluation, and in exchange it can be
// shared by any number of concurrent runs.
type Grammar struct {
	names  []string
	rules  map[string]Expr
	errors []error
}

func NewGrammar() *Grammar {
	return &Grammar{rules: make(map[string]Expr)}
}

// Define adds the rule `name`.  Shape errors found in `expr` are
// recorded in the grammar and reported by `Err` and `Check`.
func (g *Grammar) Define(name string, expr Expr) {
	if name == "" {
		g.error("", "rule name can't be empty")
		return
	}
	if _, ok := g.rules[name]; ok {
		g.error(name, fmt.Sprintf("can't redefine rule `%s`", name))
		return
	}
	if expr == nil {
		g.error(name, "rule has no expression")
		return
	}
	for _, msg := range validate(expr) {
		g.error(name, msg)
	}
	g.names = append(g.names, name)
	g.rules[name] = expr
}

func (g *Grammar) error(rule, message string) {
	g.errors = append(g.errors, &GrammarError{Rule: rule, Message: message})
}

// Err returns the first error found while defining rules
func (g *Grammar) Err() error {
	if len(g.errors) == 0 {
		return nil
	}
	return g.errors[0]
}

// Errors returns every error found while defining rules
func (g *Grammar) Errors() []error {
	if g.errors == nil {
		return []error{}
	}
	return g.errors
}

// Rule returns the expression of the rule `name`
func (g *Grammar) Rule(name string) (Expr, bool) {
	e, ok := g.rules[name]
	return e, ok
}

// Names returns the rule names in the order they were defined
func (g *Grammar) Names() []string {
	return append([]string(nil), g.names...)
}

func (g *Grammar) Len() int { return len(g.names) }

func (g *Grammar) String() string {
	var s strings.Builder
	for i, name := range g.names {
		if i > 0 {
			s.WriteString("\n")
		}
		fmt.Fprintf(&s, "%s <- %s", name, g.rules[name])
	}
	return s.String()
}

// validate returns the shape errors of `expr` and its children
func validate(expr Expr) []string {
	var msgs []string
	Inspect(expr, func(e Expr) bool {
		switch n := e.(type) {
		case *PatternExpr:
			if n.err != nil {
				msgs = append(msgs, fmt.Sprintf("invalid pattern `%s`: %s", n.Source, n.err))
			}
		case *RepeatExpr:
			if n.Item == nil {
				msgs = append(msgs, fmt.Sprintf("%s has no expression", n.Kind))
				return false
			}
			if n.Kind == RepeatBounded {
				msgs = append(msgs, validateBounds(n.Min, n.Max)...)
			}
		case *WrapExpr:
			if n.Name == "" {
				msgs = append(msgs, "wrap name can't be empty")
			}
		case *EmbedExpr:
			if n.Grammar == nil || n.Main == "" {
				msgs = append(msgs, "embed needs a grammar and a rule name")
			}
		case *ActionExpr:
			if msg := n.validate(); msg != "" {
				msgs = append(msgs, msg)
			}
		}
		for _, child := range e.children() {
			if child == nil {
				msgs = append(msgs, fmt.Sprintf("%T contains a nil expression", e))
				return false
			}
		}
		return true
	})
	return msgs
}

func validateBounds(min, max int) []string {
	switch {
	case min < Unbounded || max < Unbounded:
		return []string{fmt.Sprintf("invalid range bounds {%d,%d}", min, max)}
	case min == Unbounded && max == Unbounded:
		return nil
	case max != Unbounded && min > max:
		return []string{fmt.Sprintf("range min %d is greater than max %d", min, max)}
	}
	return nil
}
