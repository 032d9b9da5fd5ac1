// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package floria

import (
	"errors"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tosca/vm"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
)

// frame is the host-side bookkeeping of a single call or create, exposed
// read-only to the action tracer.
type frame struct {
	kind         actions.FrameType
	state        actions.FrameState
	originator   tosca.Address
	sender       tosca.Address
	recipient    tosca.Address
	contract     tosca.Address
	input        tosca.Data
	output       tosca.Data
	value        tosca.Value
	gas          tosca.Gas
	depth        int
	op           vm.OpCode
	callTarget   tosca.Address
	haltReason   actions.HaltReason
	revertReason tosca.Data
	stack        *frameStack
}

// frameStack lists the frames of a transaction still running.
type frameStack struct {
	frames []*frame
}

func (s *frameStack) push(f *frame) {
	s.frames = append(s.frames, f)
}

func (s *frameStack) pop() {
	if len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

var _ actions.Frame = (*frame)(nil)

func newRootFrame(kind actions.FrameType, sender, target tosca.Address, input tosca.Data, value tosca.Value, gas tosca.Gas) *frame {
	root := &frame{
		kind:       kind,
		state:      actions.CodeExecuting,
		originator: sender,
		sender:     sender,
		recipient:  target,
		contract:   target,
		input:      input,
		value:      value,
		gas:        gas,
		op:         vm.STOP,
		stack:      &frameStack{},
	}
	root.stack.push(root)
	return root
}

func (f *frame) Type() actions.FrameType          { return f.kind }
func (f *frame) State() actions.FrameState        { return f.state }
func (f *frame) OriginatorAddress() tosca.Address { return f.originator }
func (f *frame) SenderAddress() tosca.Address     { return f.sender }
func (f *frame) RecipientAddress() tosca.Address  { return f.recipient }
func (f *frame) ContractAddress() tosca.Address   { return f.contract }
func (f *frame) Input() tosca.Data                { return f.input }
func (f *frame) Output() tosca.Data               { return f.output }
func (f *frame) Value() tosca.Value               { return f.value }
func (f *frame) RemainingGas() tosca.Gas          { return f.gas }
func (f *frame) Depth() int                       { return f.depth }
func (f *frame) CurrentOpCode() vm.OpCode         { return f.op }
func (f *frame) CallTarget() tosca.Address        { return f.callTarget }

func (f *frame) HaltReason() (actions.HaltReason, bool) {
	return f.haltReason, f.haltReason != ""
}

func (f *frame) RevertReason() (tosca.Data, bool) {
	return f.revertReason, f.revertReason != nil
}

func (f *frame) MessageFrameStack() []actions.Frame {
	res := make([]actions.Frame, 0, len(f.stack.frames))
	for _, cur := range f.stack.frames {
		res = append(res, cur)
	}
	return res
}

// enter suspends f for the execution of a child frame started by the given
// instruction and places the child on top of the frame stack.
func (f *frame) enter(op vm.OpCode, target tosca.Address, child *frame) {
	f.op = op
	f.callTarget = target
	f.state = actions.CodeSuspended
	child.state = actions.CodeExecuting
	child.originator = f.originator
	child.depth = f.depth + 1
	child.stack = f.stack
	f.stack.push(child)
}

// resume removes the child of f from the frame stack.
func (f *frame) resume() {
	f.stack.pop()
	f.state = actions.CodeExecuting
}

// reject records a call of f that failed before a child frame was created.
func (f *frame) reject(op vm.OpCode, target tosca.Address, gas tosca.Gas) {
	f.op = op
	f.callTarget = target
	f.gas = gas
}

func (f *frame) succeed(output tosca.Data, gasLeft tosca.Gas) {
	f.state = actions.CodeSuccess
	f.output = output
	f.gas = gasLeft
}

func (f *frame) revert(output tosca.Data, gasLeft tosca.Gas) {
	f.state = actions.Revert
	f.output = output
	f.revertReason = output
	if f.revertReason == nil {
		f.revertReason = tosca.Data{}
	}
	f.gas = gasLeft
}

// halt aborts the frame. An empty reason marks a halt without known cause.
func (f *frame) halt(reason actions.HaltReason) {
	f.state = actions.ExceptionalHalt
	f.haltReason = reason
	f.output = nil
}

// complete applies the outcome of an interpreter run. Halt reasons reported
// as errors halt the frame; any other error is returned and leaves the frame
// unfinished.
func (f *frame) complete(result tosca.Result, err error) error {
	if err != nil {
		var reason actions.HaltReason
		if !errors.As(err, &reason) {
			return err
		}
		f.halt(reason)
		return nil
	}
	switch {
	case result.Success:
		f.succeed(result.Output, result.GasLeft)
	case isRevert(result):
		f.revert(result.Output, result.GasLeft)
	default:
		f.gas = result.GasLeft
		f.halt("")
	}
	return nil
}

// callResult summarizes the outcome of a finished frame for its caller.
// Halted frames consume all of their gas.
func (f *frame) callResult() tosca.CallResult {
	switch {
	case f.state.IsSuccess():
		return tosca.CallResult{Output: f.output, GasLeft: f.gas, Success: true}
	case f.state == actions.Revert:
		return tosca.CallResult{Output: f.output, GasLeft: f.gas}
	default:
		return tosca.CallResult{}
	}
}

func isRevert(result tosca.Result) bool {
	return !result.Success && (result.GasLeft > 0 || len(result.Output) > 0)
}
