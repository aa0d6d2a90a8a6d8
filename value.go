package pegstack

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/clarete/pegstack/ascii"
)

type FormatToken int

const (
	FormatToken_None FormatToken = iota
	FormatToken_Span
	FormatToken_Literal
	FormatToken_Name
	FormatToken_Meta
)

// Value is the interface implemented by every node produced by the
// interpreter.  There are only two: raw matched text (`*String`) and
// named composites (`*Node`).
type Value interface {
	Span() Range
	String() string
	Text() string
	Type() string
	Clone() Value
	Meta(key string) (any, bool)
	SetMeta(key string, value any)
	Accept(ValueVisitor) error
	Format(FormatFn) string
}

type ValueVisitor interface {
	VisitString(n *String) error
	VisitNode(n *Node) error
}

// metadata holds the annotations attached by `Meta` actions
type metadata struct {
	meta map[string]any
}

func (m *metadata) Meta(key string) (any, bool) {
	v, ok := m.meta[key]
	return v, ok
}

func (m *metadata) SetMeta(key string, value any) {
	if m.meta == nil {
		m.meta = make(map[string]any)
	}
	m.meta[key] = value
}

func (m *metadata) clone() metadata {
	if m.meta == nil {
		return metadata{}
	}
	c := make(map[string]any, len(m.meta))
	for k, v := range m.meta {
		c[k] = v
	}
	return metadata{meta: c}
}

func (m *metadata) keys() []string {
	keys := make([]string, 0, len(m.meta))
	for k := range m.meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String Value

type String struct {
	metadata
	span  Range
	Value string
}

func NewString(value string, span Range) *String {
	return &String{span: span, Value: value}
}

func (n *String) Type() string                { return "string" }
func (n *String) Span() Range                 { return n.span }
func (n *String) String() string              { return fmt.Sprintf(`"%s" @ %s`, n.Value, n.span) }
func (n *String) Text() string                { return n.Value }
func (n *String) Accept(v ValueVisitor) error { return v.VisitString(n) }
func (n *String) Format(fn FormatFn) string   { return formatValue(n, fn) }

func (n *String) Clone() Value {
	return &String{metadata: n.clone(), span: n.span, Value: n.Value}
}

// Node Value

type Node struct {
	metadata
	span  Range
	Name  string
	Items []Value
}

func NewNode(name string, span Range, items ...Value) *Node {
	return &Node{Name: name, Items: items, span: span}
}

func (n *Node) Type() string                { return "node" }
func (n *Node) Span() Range                 { return n.span }
func (n *Node) Accept(v ValueVisitor) error { return v.VisitNode(n) }
func (n *Node) Format(fn FormatFn) string   { return formatValue(n, fn) }

func (n *Node) Text() string {
	var s strings.Builder
	for _, item := range n.Items {
		s.WriteString(item.Text())
	}
	return s.String()
}

func (n *Node) String() string {
	var s strings.Builder
	s.WriteString(n.Name)
	s.WriteString("(")
	for i, item := range n.Items {
		s.WriteString(item.String())
		if i < len(n.Items)-1 {
			s.WriteString(", ")
		}
	}
	fmt.Fprintf(&s, ") @ %s", n.span)
	return s.String()
}

func (n *Node) Clone() Value {
	var items []Value
	if n.Items != nil {
		items = make([]Value, len(n.Items))
		for i, item := range n.Items {
			items[i] = item.Clone()
		}
	}
	return &Node{metadata: n.clone(), span: n.span, Name: n.Name, Items: items}
}

// Text concatenates the text of every value in `values`, depth first.
// For a successful run it reconstructs the matched input, minus what
// was hidden.
func Text(values []Value) string {
	var s strings.Builder
	for _, v := range values {
		s.WriteString(v.Text())
	}
	return s.String()
}

// Pretty renders `values` as a tree, one root per value
func Pretty(values []Value) string {
	return FormatValues(values, func(input string, _ FormatToken) string {
		return input
	})
}

// Highlight renders `values` like `Pretty` but with ANSI colors
func Highlight(values []Value) string {
	return FormatValues(values, highlightValue)
}

func FormatValues(values []Value, fn FormatFn) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = v.Format(fn)
	}
	return strings.Join(parts, "\n")
}

var valuePrinterTheme = map[FormatToken]string{
	FormatToken_Span:    ascii.DefaultTheme.Span,
	FormatToken_Literal: ascii.DefaultTheme.Literal,
	FormatToken_Name:    ascii.DefaultTheme.Operator,
	FormatToken_Meta:    ascii.DefaultTheme.Comment,
}

func highlightValue(input string, token FormatToken) string {
	color, ok := valuePrinterTheme[token]
	if !ok {
		return input
	}
	return ascii.Color(color, "%s", input)
}

type ValuePrinter struct {
	*treePrinter[FormatToken]
}

func NewValuePrinter(format FormatFn) *ValuePrinter {
	return &ValuePrinter{newTreePrinter(format)}
}

func formatValue(node Value, fmtFn FormatFn) string {
	p := NewValuePrinter(fmtFn)
	node.Accept(p)
	return p.String()
}

func (v *ValuePrinter) VisitString(n *String) error {
	v.writef(strconv.Quote(n.Value), FormatToken_Literal)
	v.writef(fmt.Sprintf(" (%s)", n.span), FormatToken_Span)
	v.writeMeta(&n.metadata)
	return nil
}

func (v *ValuePrinter) VisitNode(n *Node) error {
	v.writef(n.Name, FormatToken_Name)
	v.writef(fmt.Sprintf(" (%s)", n.span), FormatToken_Span)
	v.writeMeta(&n.metadata)
	for i, item := range n.Items {
		v.branch(i == len(n.Items)-1, func() { item.Accept(v) })
	}
	return nil
}

func (v *ValuePrinter) writeMeta(m *metadata) {
	for _, k := range m.keys() {
		v.writef(fmt.Sprintf(" %s=%v", k, m.meta[k]), FormatToken_Meta)
	}
}
