// Package ascii names the ANSI color codes used to highlight values,
// grammars and interpreter traces on a terminal.
package ascii

import "fmt"

const (
	Reset  = "\033[0m"
	Red    = "\033[1;31m"
	Yellow = "\033[1;33m"
	Green  = "\033[1;32m"
	Cyan   = "\033[1;36m"
	Gray   = "\033[90m" // Bright black, actually

	// 256-color palette
	Orange  = "\033[38;5;208m"
	Gray245 = "\033[1;38;5;245m"
	Purple  = "\033[1;38;5;99m"
	Pink    = "\033[1;38;5;127m"
)

// Theme groups colors by what they highlight
type Theme struct {
	// Interpreter trace
	Push  string
	Pop   string
	Match string
	Fail  string
	Muted string

	// Values and expressions
	Operator string
	Operand  string
	Literal  string
	Span     string
	Comment  string
}

var DefaultTheme = Theme{
	Push:  Cyan,
	Pop:   Yellow,
	Match: Green,
	Fail:  Red,
	Muted: Gray,

	Operator: Purple,
	Operand:  Pink,
	Literal:  Green,
	Span:     Orange,
	Comment:  Gray245,
}

// Color wraps the formatted string with `color` and a reset code
func Color(color, format string, args ...any) string {
	return fmt.Sprintf(color+format+Reset, args...)
}
