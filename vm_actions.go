package pegstack

import (
	"errors"
	"fmt"
)

// State is what `Custom` actions get to work with.  Stack is the live
// stack of the run: the frame on top is the one the action is being
// evaluated in.
type State struct {
	Stack   *Stack
	Steps   int
	Input   Input
	Grammar *Grammar
	Config  *Config
}

func (vm *VirtualMachine) action(top *Frame, e *ActionExpr) error {
	vm.tracer.action(vm, top, e)

	switch e.Kind {
	case ActionInsert:
		if e.values == nil {
			span := vm.input.Span(top.Cursor, top.Cursor)
			top.capture(NewString(e.text, span))
			return nil
		}
		for _, v := range e.values {
			top.capture(v.Clone())
		}

	case ActionConvert:
		var last Value
		if n := len(top.Output); n > 0 {
			last = top.Output[n-1]
			top.Output[n-1] = nil
			top.Output = top.Output[:n-1]
		}
		v, err := e.convert(last)
		if err != nil {
			return vm.failure(FailurePayload, err)
		}
		if v != nil {
			top.capture(v)
		}

	case ActionModify:
		if last := lastValue(top); last != nil {
			if err := e.modify(last); err != nil {
				return vm.failure(FailurePayload, err)
			}
		}

	case ActionMeta:
		if last := lastValue(top); last != nil {
			last.SetMeta(e.key, e.payload)
		}

	case ActionClear:
		top.Output = nil

	case ActionCustom:
		state := &State{
			Stack:   vm.stack,
			Steps:   vm.steps,
			Input:   vm.input,
			Grammar: vm.grammar,
			Config:  vm.cfg,
		}
		if err := e.custom(state); err != nil {
			return vm.failure(FailurePayload, err)
		}

	case ActionThrow:
		return vm.failure(FailurePayload, e.payload)

	case ActionLog:
		vm.logger.Print(e.args...)

	default:
		return fmt.Errorf("unknown action %s", e.Kind)
	}
	return nil
}

func lastValue(f *Frame) Value {
	if n := len(f.Output); n > 0 {
		return f.Output[n-1]
	}
	return nil
}

// embed runs the main rule of another grammar at the cursor of `top`
// as if it was a single item of the current frame.  The nested run
// shares the step budget and never requires the input to be consumed
// entirely.
func (vm *VirtualMachine) embed(top *Frame, e *EmbedExpr) error {
	if _, ok := e.Grammar.Rule(e.Main); !ok {
		return e.Grammar.resolutionError(e.Main, "")
	}

	cfg := vm.cfg.Clone()
	cfg.SetString("vm.main", e.Main)
	cfg.SetBool("vm.exact", false)
	nested := NewVirtualMachine(e.Grammar, cfg)
	nested.SetLogger(vm.logger)
	nested.steps = vm.steps

	vm.tracer.embed(vm, top, e)
	values, cursor, err := nested.run(vm.input, top.Cursor)
	vm.steps = nested.steps
	vm.furthest = max(vm.furthest, nested.furthest)

	var f *Failure
	switch {
	case err == nil:
		top.Cursor = cursor
		top.capture(values...)
		top.Matches++
	case errors.As(err, &f) && f.Kind == FailureMismatch:
		top.Failed = true
	case errors.As(err, &f):
		return vm.failure(FailurePayload, f.Payload)
	default:
		return err
	}
	return nil
}
