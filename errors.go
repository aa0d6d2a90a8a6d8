package pegstack

import (
	"errors"
	"fmt"
)

// ErrEmptyStack is returned when a host callback leaves the
// interpreter without any frame to finish the run with.
var ErrEmptyStack = errors.New("interpreter stack is empty")

type FailureKind int

const (
	// FailureMismatch means that ordinary backtracking exhausted
	// every alternative at the root of the run
	FailureMismatch FailureKind = iota

	// FailurePayload is raised by `Throw` or by a semantic action
	// that returned an error.  It is never retried by an enclosing
	// `Choice`.
	FailurePayload
)

func (k FailureKind) String() string {
	switch k {
	case FailureMismatch:
		return "mismatch"
	case FailurePayload:
		return "payload"
	default:
		return "unknown"
	}
}

// Failure is the error returned when the input can't be matched by
// the grammar.
type Failure struct {
	Kind FailureKind

	// Offset is the byte offset of the root frame's cursor when the
	// run failed
	Offset int
	Line   int
	Column int

	// Payload is nil unless a `Throw` or a failing action supplied
	// one
	Payload any

	// Furthest is the furthest byte offset at which a literal or a
	// pattern was attempted during the run
	Furthest int
}

func (e *Failure) Error() string {
	message := "Fail"
	switch p := e.Payload.(type) {
	case nil:
	case error:
		message = p.Error()
	case string:
		message = p
	default:
		message = fmt.Sprint(p)
	}
	return fmt.Sprintf("%s @ %d:%d", message, e.Line, e.Column)
}

// Unwrap exposes payloads that are errors themselves, so hosts can
// `errors.Is` the error their own action returned.
func (e *Failure) Unwrap() error {
	if err, ok := e.Payload.(error); ok {
		return err
	}
	return nil
}

// ResolutionError is returned when an expression references a rule
// that the grammar doesn't define.  It's never backtracked.
type ResolutionError struct {
	// Name of the rule that could not be found
	Name string

	// Referrer is the rule in which the reference appears, empty
	// when the reference was found outside of any rule
	Referrer string

	// Suggestion is the defined rule name closest to `Name`
	Suggestion string
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("undefined rule `%s`", e.Name)
	if e.Referrer != "" {
		msg += fmt.Sprintf(" referenced from `%s`", e.Referrer)
	}
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean `%s`?)", e.Suggestion)
	}
	return msg
}

// LimitError is returned when a run takes more steps than allowed by
// the `vm.limit` setting.
type LimitError struct {
	Limit int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("step limit of %d reached", e.Limit)
}

// GrammarError is a shape error found while a rule was being defined.
type GrammarError struct {
	Rule    string
	Message string
}

func (e *GrammarError) Error() string {
	if e.Rule == "" {
		return e.Message
	}
	return fmt.Sprintf("%s (inside `%s`)", e.Message, e.Rule)
}
