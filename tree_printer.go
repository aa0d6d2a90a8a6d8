package pegstack

import (
	"strings"
)

// FormatFunc decorates a piece of printed text according to the kind
// of token it represents.  Themes use it to add colors.
type FormatFunc[T any] func(input string, token T) string

// FormatFn is the formatting function used by value printers
type FormatFn = FormatFunc[FormatToken]

const (
	glyphBranch   = "├── "
	glyphLast     = "└── "
	glyphContinue = "│   "
	glyphBlank    = "    "
)

// treePrinter is shared by the value and expression printers.  Each
// level of nesting adds a prefix so children line up under the glyphs
// of their parents.
type treePrinter[T any] struct {
	prefixes []string
	output   strings.Builder
	format   FormatFunc[T]
}

func newTreePrinter[T any](format FormatFunc[T]) *treePrinter[T] {
	return &treePrinter[T]{format: format}
}

// branch starts a new line for a child and runs `print` one level
// deeper.  `last` selects the glyph that closes the parent's list.
func (tp *treePrinter[T]) branch(last bool, print func()) {
	tp.output.WriteByte('\n')
	for _, prefix := range tp.prefixes {
		tp.output.WriteString(prefix)
	}
	glyph, prefix := glyphBranch, glyphContinue
	if last {
		glyph, prefix = glyphLast, glyphBlank
	}
	tp.output.WriteString(glyph)

	tp.prefixes = append(tp.prefixes, prefix)
	print()
	tp.prefixes = tp.prefixes[:len(tp.prefixes)-1]
}

func (tp *treePrinter[T]) writef(s string, token T) {
	tp.output.WriteString(tp.format(s, token))
}

func (tp *treePrinter[T]) String() string {
	return tp.output.String()
}

var literalSanitizer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// escapeLiteral renders `s` the way it's written between single
// quotes in the grammar notation
func escapeLiteral(s string) string {
	return literalSanitizer.Replace(s)
}
