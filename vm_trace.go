package pegstack

import (
	"fmt"
	"log"
	"strings"

	"github.com/clarete/pegstack/ascii"
)

// tracer writes one line per interpreter event when `vm.debug` is on.
// All its methods are no-ops on a nil receiver.
type tracer struct {
	logger *log.Logger
	colors bool
}

func newTracer(logger *log.Logger, colors bool) *tracer {
	return &tracer{logger: logger, colors: colors}
}

func (t *tracer) push(vm *VirtualMachine, f *Frame) {
	if t == nil {
		return
	}
	t.line(vm, "push", ascii.DefaultTheme.Push, f.Kind.String())
}

func (t *tracer) pop(vm *VirtualMachine, child, parent *Frame) {
	if t == nil {
		return
	}
	status, color := "ok", ascii.DefaultTheme.Match
	if parent.Failed {
		status, color = "fail", ascii.DefaultTheme.Fail
	}
	t.line(vm, "pop", color, fmt.Sprintf("%s %s c=%d", child.Kind, status, parent.Cursor))
}

func (t *tracer) rule(vm *VirtualMachine, f *Frame, ref *RuleExpr) {
	if t == nil {
		return
	}
	t.line(vm, "rule", ascii.DefaultTheme.Operand, ref.Name)
}

func (t *tracer) leaf(vm *VirtualMachine, f *Frame, e Expr, ok bool) {
	if t == nil {
		return
	}
	if ok {
		t.line(vm, "match", ascii.DefaultTheme.Match, e.String())
		return
	}
	t.line(vm, "fail", ascii.DefaultTheme.Fail, e.String())
}

func (t *tracer) action(vm *VirtualMachine, f *Frame, e *ActionExpr) {
	if t == nil {
		return
	}
	t.line(vm, "action", ascii.DefaultTheme.Operator, e.String())
}

func (t *tracer) embed(vm *VirtualMachine, f *Frame, e *EmbedExpr) {
	if t == nil {
		return
	}
	t.line(vm, "embed", ascii.DefaultTheme.Operator, e.Main)
}

func (t *tracer) finish(vm *VirtualMachine, root *Frame) {
	if t == nil {
		return
	}
	status, color := "ok", ascii.DefaultTheme.Match
	if root.Failed {
		status, color = "fail", ascii.DefaultTheme.Fail
	}
	t.line(vm, "end", color, fmt.Sprintf("%s c=%d", status, root.Cursor))
}

// line formats an event as `[step, c=cursor] <depth> event: detail`
func (t *tracer) line(vm *VirtualMachine, event, color, detail string) {
	depth := max(vm.stack.Len()-1, 0)
	prefix := fmt.Sprintf("[%04d, c=%02d] %s", vm.steps, vm.stack.Top().Cursor, strings.Repeat("  ", depth))
	if t.colors {
		prefix = ascii.Color(ascii.DefaultTheme.Muted, "%s", prefix)
		event = ascii.Color(color, "%s", event)
	}
	t.logger.Printf("%s%s: %s", prefix, event, detail)
}
