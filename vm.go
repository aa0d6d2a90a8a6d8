package pegstack

import (
	"fmt"
	"log"
	"os"
)

// VirtualMachine evaluates a grammar against an input using an
// explicit stack of frames instead of recursion, so nesting depth is
// only bounded by memory.  A VirtualMachine can be reused but it must
// not be shared between goroutines.
type VirtualMachine struct {
	grammar *Grammar
	cfg     *Config
	main    string
	exact   bool
	limit   int
	logger  *log.Logger
	tracer  *tracer

	// run-scoped state, reset at the beginning of every match
	input    Input
	stack    *Stack
	steps    int
	furthest int
}

// NewVirtualMachine creates an interpreter for `g` configured by
// `cfg`.  A nil `cfg` means `NewConfig()`.
func NewVirtualMachine(g *Grammar, cfg *Config) *VirtualMachine {
	if cfg == nil {
		cfg = NewConfig()
	}
	vm := &VirtualMachine{
		grammar: g,
		cfg:     cfg,
		main:    cfg.GetString("vm.main"),
		exact:   cfg.GetBool("vm.exact"),
		limit:   cfg.GetInt("vm.limit"),
		stack:   &Stack{},
	}
	vm.SetLogger(log.New(os.Stderr, "pegstack: ", 0))
	return vm
}

// SetLogger replaces the logger used by `Log` actions and by the
// debug trace
func (vm *VirtualMachine) SetLogger(logger *log.Logger) {
	vm.logger = logger
	vm.tracer = nil
	if vm.cfg.GetBool("vm.debug") {
		vm.tracer = newTracer(logger, vm.cfg.GetBool("vm.debug.colors"))
	}
}

// Match evaluates the grammar against `input` starting from the rule
// set in `vm.main`.  It returns the output values and the cursor
// reached by the root frame.  Every rule reference in the grammar is
// checked before any matching happens.
func (vm *VirtualMachine) Match(input Input) ([]Value, int, error) {
	if err := vm.grammar.Check(); err != nil {
		return nil, 0, err
	}
	if _, ok := vm.grammar.Rule(vm.main); !ok {
		return nil, 0, vm.grammar.resolutionError(vm.main, "")
	}
	vm.steps = 0
	return vm.run(input, 0)
}

func (vm *VirtualMachine) run(input Input, cursor int) ([]Value, int, error) {
	vm.input = input
	vm.furthest = cursor
	vm.stack.reset()
	vm.stack.Push(NewRootFrame(cursor, Rule(vm.main)))

	for {
		if vm.limit > 0 && vm.steps >= vm.limit {
			return nil, vm.rootCursor(), &LimitError{Limit: vm.limit}
		}
		vm.steps++

		if vm.stack.Len() == 0 {
			return nil, vm.rootCursor(), ErrEmptyStack
		}

		top := vm.stack.Top()
		if top.complete(input.Len()) {
			if vm.stack.Len() == 1 {
				return vm.finish(top)
			}
			child := vm.stack.Pop()
			parent := vm.stack.Top()
			vm.fold(&child, parent)
			vm.tracer.pop(vm, &child, parent)
			continue
		}

		if top.isRepetition() && len(top.Pending) == 0 {
			top.enqueue()
		}

		if err := vm.eval(top); err != nil {
			return nil, vm.rootCursor(), err
		}
	}
}

// eval takes the front pending item of `top` and evaluates it.  Rule
// references are rewritten in place, other containers push a frame,
// leaves and actions run right away.
func (vm *VirtualMachine) eval(top *Frame) error {
	if ref, ok := top.Pending[0].(*RuleExpr); ok {
		expr, ok := vm.grammar.Rule(ref.Name)
		if !ok {
			return vm.grammar.resolutionError(ref.Name, "")
		}
		vm.tracer.rule(vm, top, ref)
		top.Pending[0] = expr
		return nil
	}

	cursor := top.Cursor
	switch e := top.shift().(type) {
	case *LiteralExpr:
		value, next, ok := vm.input.MatchLiteral(cursor, e.Value)
		vm.leaf(top, e, value, next, ok)

	case *PatternExpr:
		value, next, ok := vm.input.MatchPattern(cursor, e)
		vm.leaf(top, e, value, next, ok)

	case *SequenceExpr:
		vm.push(Frame{Kind: FrameSequence, Pending: copyItems(e.Items)}, cursor)

	case *ChoiceExpr:
		vm.push(Frame{Kind: FrameChoice, Pending: copyItems(e.Items)}, cursor)

	case *WrapExpr:
		vm.push(Frame{Kind: FrameWrap, Pending: copyItems(e.Items), name: e.Name}, cursor)

	case *HideExpr:
		vm.push(Frame{Kind: FrameHide, Pending: copyItems(e.Items)}, cursor)

	case *RepeatExpr:
		vm.push(Frame{
			Kind:    repeatFrameKinds[e.Kind],
			Pending: []Expr{e.Item},
			item:    e.Item,
			min:     e.Min,
			max:     e.Max,
			iter:    cursor,
		}, cursor)

	case *ActionExpr:
		return vm.action(top, e)

	case *EmbedExpr:
		return vm.embed(top, e)

	default:
		return fmt.Errorf("unknown expression type %T", e)
	}
	return nil
}

var repeatFrameKinds = map[RepeatKind]FrameKind{
	RepeatZeroOrMore: FrameZeroOrMore,
	RepeatOneOrMore:  FrameOneOrMore,
	RepeatBounded:    FrameBounded,
	RepeatOptional:   FrameOptional,
	RepeatNot:        FrameNot,
}

func (vm *VirtualMachine) push(f Frame, cursor int) {
	f.Cursor = cursor
	f.start = cursor
	vm.stack.Push(f)
	vm.tracer.push(vm, vm.stack.Top())
}

// leaf records the outcome of matching a literal or a pattern
func (vm *VirtualMachine) leaf(top *Frame, e Expr, value Value, next int, ok bool) {
	vm.furthest = max(vm.furthest, top.Cursor)
	vm.tracer.leaf(vm, top, e, ok)
	if !ok {
		top.Failed = true
		return
	}
	vm.furthest = max(vm.furthest, next)
	top.Cursor = next
	top.capture(value)
	top.Matches++
}

// fold merges the outcome of `child`, that was just popped, into its
// parent
func (vm *VirtualMachine) fold(child, parent *Frame) {
	switch child.Kind {
	case FrameSequence, FrameRoot:
		if child.Failed {
			parent.Failed = true
			return
		}
		succeed(child, parent, child.Output)

	case FrameChoice, FrameOneOrMore:
		if child.Matches == 0 {
			parent.Failed = true
			return
		}
		succeed(child, parent, child.Output)

	case FrameZeroOrMore:
		succeed(child, parent, child.Output)

	case FrameBounded:
		if (child.min != Unbounded && child.Matches < child.min) ||
			(child.max != Unbounded && child.Matches > child.max) {
			parent.Failed = true
			return
		}
		succeed(child, parent, child.Output)

	case FrameOptional:
		if child.Failed {
			child.Cursor = child.start
			succeed(child, parent, nil)
			return
		}
		succeed(child, parent, child.Output)

	case FrameNot:
		if child.Failed || child.Matches == 0 {
			parent.Matches++
			return
		}
		parent.Failed = true

	case FrameWrap:
		if child.Failed {
			parent.Failed = true
			return
		}
		span := vm.input.Span(child.start, child.Cursor)
		succeed(child, parent, []Value{NewNode(child.name, span, child.Output...)})

	case FrameHide:
		if child.Failed {
			parent.Failed = true
			return
		}
		succeed(child, parent, nil)
	}
}

func succeed(child, parent *Frame, output []Value) {
	parent.Matches++
	parent.Cursor = child.Cursor
	parent.capture(output...)
}

// finish ends the run once the bottom frame is complete
func (vm *VirtualMachine) finish(root *Frame) ([]Value, int, error) {
	vm.tracer.finish(vm, root)
	if root.Failed {
		return nil, root.Cursor, vm.failure(FailureMismatch, nil)
	}
	if vm.exact && root.Cursor < vm.input.Len() {
		return nil, root.Cursor, vm.failure(FailureMismatch, nil)
	}
	return root.Output, root.Cursor, nil
}

// failure builds the error returned when the run fails.  The position
// is always the one of the root frame, failed frames that were
// already discarded don't keep theirs.
func (vm *VirtualMachine) failure(kind FailureKind, payload any) *Failure {
	offset := vm.input.Offset(vm.rootCursor())
	loc := newPosIndex(vm.input.Source()).LocationAt(offset)
	return &Failure{
		Kind:     kind,
		Offset:   offset,
		Line:     loc.Line,
		Column:   loc.Column,
		Payload:  payload,
		Furthest: vm.input.Offset(vm.furthest),
	}
}

// rootCursor is where the run stands.  Once a host callback has
// emptied the stack it's the cursor the root frame was popped with.
func (vm *VirtualMachine) rootCursor() int {
	if vm.stack.Len() == 0 {
		return vm.stack.root
	}
	return vm.stack.frames[0].Cursor
}

// copyItems gives a frame its own pending queue so that rewriting
// rule references never touches the grammar
func copyItems(items []Expr) []Expr {
	return append([]Expr(nil), items...)
}
