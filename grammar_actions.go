package pegstack

import (
	"fmt"
	"strings"
)

type ActionKind int

const (
	ActionInsert ActionKind = iota
	ActionConvert
	ActionModify
	ActionMeta
	ActionClear
	ActionCustom
	ActionThrow
	ActionLog
)

func (k ActionKind) String() string {
	switch k {
	case ActionInsert:
		return "insert"
	case ActionConvert:
		return "convert"
	case ActionModify:
		return "modify"
	case ActionMeta:
		return "meta"
	case ActionClear:
		return "clear"
	case ActionCustom:
		return "custom"
	case ActionThrow:
		return "throw"
	case ActionLog:
		return "log"
	default:
		return "unknown"
	}
}

// ConvertFn replaces the most recent output value.  Returning a nil
// Value drops it, returning an error fails the run with the error as
// its payload.
type ConvertFn func(Value) (Value, error)

// ModifyFn changes the most recent output value in place
type ModifyFn func(Value) error

// CustomFn receives the live interpreter state.  It's free to inspect
// and rearrange the stack.
type CustomFn func(*State) error

// ActionExpr is a leaf effect: it runs against the current frame
// without pushing a frame of its own and never consumes input.
type ActionExpr struct {
	Kind ActionKind

	values  []Value
	text    string
	convert ConvertFn
	modify  ModifyFn
	custom  CustomFn
	key     string
	payload any
	args    []any
}

// Insert appends a copy of `values` to the output
func Insert(values ...Value) *ActionExpr {
	return &ActionExpr{Kind: ActionInsert, values: append([]Value{}, values...)}
}

// InsertString appends a `String` value with `text` positioned at the
// cursor
func InsertString(text string) *ActionExpr {
	return &ActionExpr{Kind: ActionInsert, text: text}
}

func Convert(fn ConvertFn) *ActionExpr {
	return &ActionExpr{Kind: ActionConvert, convert: fn}
}

func Modify(fn ModifyFn) *ActionExpr {
	return &ActionExpr{Kind: ActionModify, modify: fn}
}

// Meta annotates the most recent output value with `key` set to
// `value`
func Meta(key string, value any) *ActionExpr {
	return &ActionExpr{Kind: ActionMeta, key: key, payload: value}
}

// Clear drops the output accumulated so far by the enclosing frame
func Clear() *ActionExpr {
	return &ActionExpr{Kind: ActionClear}
}

func Custom(fn CustomFn) *ActionExpr {
	return &ActionExpr{Kind: ActionCustom, custom: fn}
}

// Throw fails the whole run right away with `payload`.  Unlike a
// mismatch, it's never retried by an enclosing choice.
func Throw(payload any) *ActionExpr {
	return &ActionExpr{Kind: ActionThrow, payload: payload}
}

// Log writes a diagnostic line when reached.  It has no effect on
// matching.
func Log(args ...any) *ActionExpr {
	return &ActionExpr{Kind: ActionLog, args: args}
}

func (e *ActionExpr) children() []Expr { return nil }

func (e *ActionExpr) String() string {
	switch e.Kind {
	case ActionInsert:
		if e.values == nil {
			return fmt.Sprintf("@insert(%q)", e.text)
		}
		parts := make([]string, len(e.values))
		for i, v := range e.values {
			parts[i] = v.String()
		}
		return fmt.Sprintf("@insert(%s)", strings.Join(parts, ", "))
	case ActionMeta:
		return fmt.Sprintf("@meta(%s=%v)", e.key, e.payload)
	case ActionThrow:
		return fmt.Sprintf("@throw(%v)", e.payload)
	case ActionLog:
		return fmt.Sprintf("@log(%s)", fmt.Sprint(e.args...))
	default:
		return "@" + e.Kind.String()
	}
}

func (e *ActionExpr) validate() string {
	switch {
	case e.Kind == ActionConvert && e.convert == nil,
		e.Kind == ActionModify && e.modify == nil,
		e.Kind == ActionCustom && e.custom == nil:
		return fmt.Sprintf("%s action needs a function", e.Kind)
	case e.Kind == ActionMeta && e.key == "":
		return "meta action needs a key"
	}
	return ""
}
