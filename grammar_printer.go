package pegstack

import (
	"fmt"
	"strings"

	"github.com/clarete/pegstack/ascii"
)

type ExprFormatToken int

const (
	ExprFormatToken_None ExprFormatToken = iota
	ExprFormatToken_Literal
	ExprFormatToken_Operator
	ExprFormatToken_Operand
)

var exprPrinterTheme = map[ExprFormatToken]string{
	ExprFormatToken_Literal:  ascii.DefaultTheme.Literal,
	ExprFormatToken_Operator: ascii.DefaultTheme.Operator,
	ExprFormatToken_Operand:  ascii.DefaultTheme.Operand,
}

// PrettyString renders `expr` as a tree with one node per line
func PrettyString(expr Expr) string {
	return formatExpr(expr, func(input string, _ ExprFormatToken) string {
		return input
	})
}

// HighlightString renders `expr` like `PrettyString` with ANSI colors
func HighlightString(expr Expr) string {
	return formatExpr(expr, func(input string, token ExprFormatToken) string {
		color, ok := exprPrinterTheme[token]
		if !ok {
			return input
		}
		return ascii.Color(color, "%s", input)
	})
}

// Pretty renders every rule of the grammar as a tree
func (g *Grammar) Pretty() string {
	parts := make([]string, len(g.names))
	for i, name := range g.names {
		ep := &exprPrinter{newTreePrinter(func(input string, _ ExprFormatToken) string {
			return input
		})}
		ep.writeOperatorWithOneRand("Definition", name)
		ep.children([]Expr{g.rules[name]})
		parts[i] = ep.String()
	}
	return strings.Join(parts, "\n")
}

func formatExpr(expr Expr, format FormatFunc[ExprFormatToken]) string {
	ep := &exprPrinter{newTreePrinter(format)}
	ep.print(expr)
	return ep.String()
}

type exprPrinter struct {
	*treePrinter[ExprFormatToken]
}

func (ep *exprPrinter) print(expr Expr) {
	switch e := expr.(type) {
	case nil:
		ep.writeOperator("<nil>")
	case *LiteralExpr:
		ep.writeOperator("Literal")
		ep.writef("['"+escapeLiteral(e.Value)+"']", ExprFormatToken_Literal)
	case *PatternExpr:
		ep.writeOperator("Pattern")
		ep.writef("[`"+e.Source+"`]", ExprFormatToken_Literal)
	case *RuleExpr:
		ep.writeOperatorWithOneRand("Rule", e.Name)
	case *SequenceExpr:
		ep.writeOperator("Sequence")
		ep.children(e.Items)
	case *ChoiceExpr:
		ep.writeOperator("Choice")
		ep.children(e.Items)
	case *RepeatExpr:
		switch e.Kind {
		case RepeatBounded:
			ep.writeOperatorWithOneRand("Bounded", boundsString(e.Min, e.Max))
		default:
			ep.writeOperator(repeatPrinterNames[e.Kind])
		}
		ep.children([]Expr{e.Item})
	case *WrapExpr:
		ep.writeOperatorWithOneRand("Wrap", e.Name)
		ep.children(e.Items)
	case *HideExpr:
		ep.writeOperator("Hide")
		ep.children(e.Items)
	case *EmbedExpr:
		ep.writeOperatorWithOneRand("Embed", e.Main)
	case *ActionExpr:
		ep.writeOperatorWithOneRand("Action", e.String())
	default:
		ep.writeOperator(fmt.Sprintf("%T", e))
	}
}

var repeatPrinterNames = map[RepeatKind]string{
	RepeatZeroOrMore: "ZeroOrMore",
	RepeatOneOrMore:  "OneOrMore",
	RepeatOptional:   "Optional",
	RepeatNot:        "Not",
}

func (ep *exprPrinter) children(items []Expr) {
	for i, item := range items {
		ep.branch(i == len(items)-1, func() { ep.print(item) })
	}
}

func (ep *exprPrinter) writeOperator(op string) {
	ep.writef(op, ExprFormatToken_Operator)
}

func (ep *exprPrinter) writeOperatorWithOneRand(rator, rand string) {
	ep.writef(rator, ExprFormatToken_Operator)
	ep.writef("[", ExprFormatToken_Operator)
	ep.writef(rand, ExprFormatToken_Operand)
	ep.writef("]", ExprFormatToken_Operator)
}
