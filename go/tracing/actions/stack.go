// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package actions

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/ethereum/go-ethereum/log"
)

// Validation selects whether finalized actions are checked for structural
// completeness.
type Validation bool

const (
	ValidationOff Validation = false
	ValidationOn  Validation = true
)

// slot is a stable handle of an action in the log of an ActionStack.
type slot int

// ActionStack reconstructs the call tree of a single transaction from the
// frames opened and closed by the interpreter.
//
// All actions are kept in an append-only log in the order they were pushed.
// Actions of frames still running are additionally referenced by the pending
// stack, and actions found to be invalid by the invalid list. Both refer to
// log entries by handle, so updates of an action are visible in all of them.
//
// An ActionStack is not safe for concurrent use. None of its operations fail;
// irregular call sequences are reported by SanitizeAndLogAnomalies.
type ActionStack struct {
	resolver AddressResolver
	log      []Action
	pending  []slot
	invalid  []slot
}

func NewActionStack(resolver AddressResolver) *ActionStack {
	return &ActionStack{resolver: resolver}
}

// PushTopLevel records the action of the frame started by a transaction.
func (s *ActionStack) PushTopLevel(frame Frame) {
	originator := accountIdentity(s.resolver, frame.OriginatorAddress())
	action := Action{
		CallingAccount: &originator,
		Gas:            frame.RemainingGas(),
		Value:          frame.Value(),
		Input:          copyData(frame.Input()),
		CallDepth:      frame.Depth(),
	}
	if frame.Type() == ContractCreation {
		created := contractIdentity(s.resolver, frame.ContractAddress())
		action.CallType = Create
		action.CallOperationType = OpCreate
		action.RecipientContract = &created
	} else {
		action.CallType = Call
		action.CallOperationType = OpCall
		s.resolveRecipient(&action, frame.ContractAddress())
	}
	s.push(action)
}

// PushIntermediate records the action of a nested frame. The parent is the
// frame executing the call or create instruction; the child it spawned must
// be on top of its message frame stack.
func (s *ActionStack) PushIntermediate(parent Frame) {
	frames := parent.MessageFrameStack()
	if len(frames) == 0 {
		return
	}
	child := frames[len(frames)-1]

	caller := contractIdentity(s.resolver, parent.ContractAddress())
	operation := OperationOf(parent.CurrentOpCode())
	action := Action{
		CallType:          Call,
		CallOperationType: operation,
		CallingContract:   &caller,
		Gas:               child.RemainingGas(),
		Value:             child.Value(),
		Input:             copyData(child.Input()),
		CallDepth:         child.Depth(),
	}
	if operation.IsCreate() {
		action.CallType = Create
	}
	s.resolveRecipient(&action, child.ContractAddress())
	s.push(action)
}

// Finalize completes the action of the most recently pushed frame according
// to the terminal state of the given frame.
func (s *ActionStack) Finalize(frame Frame, validation Validation) {
	handle, found := s.finalizeTop(frame)
	if !found {
		return
	}
	if validation == ValidationOn && !IsValid(&s.log[handle]) {
		s.invalid = append(s.invalid, handle)
	}
}

// FinalizeAsPrecompile completes the action of the most recently pushed
// frame like Finalize and reclassifies it as a call of a precompiled or
// system contract. Without validation such actions are always marked invalid.
func (s *ActionStack) FinalizeAsPrecompile(frame Frame, callType CallType, validation Validation) {
	handle, found := s.finalizeTop(frame)
	if !found {
		return
	}
	action := &s.log[handle]
	contract := contractIdentity(s.resolver, frame.ContractAddress())
	action.RecipientAccount = nil
	action.TargetedAddress = nil
	action.RecipientContract = &contract
	action.CallType = callType
	if validation == ValidationOff || !IsValid(action) {
		s.invalid = append(s.invalid, handle)
	}
}

// Actions returns all recorded actions in the order they were pushed.
func (s *ActionStack) Actions() []Action {
	return append([]Action(nil), s.log...)
}

// NumPending returns the number of actions of frames not yet finalized.
func (s *ActionStack) NumPending() int {
	return len(s.pending)
}

// NumInvalid returns the number of actions marked invalid.
func (s *ActionStack) NumInvalid() int {
	return len(s.invalid)
}

// SanitizeAndLogAnomalies reports at most one anomaly of the transaction
// through the given logger and resets the stack for the next transaction.
// Invalid actions take precedence over unfinished ones.
func (s *ActionStack) SanitizeAndLogAnomalies(frame Frame, logger log.Logger, level slog.Level) {
	defer s.reset()

	var anomaly string
	switch {
	case len(s.invalid) > 0:
		printed := make([]string, 0, len(s.invalid))
		for _, handle := range s.invalid {
			printed = append(printed, PrettyPrint(&s.log[handle]))
		}
		anomaly = fmt.Sprintf("of %d actions given, %d were invalid; invalid: %s",
			len(s.log), len(s.invalid), strings.Join(printed, ", "))
	case len(s.pending) > 0:
		anomaly = fmt.Sprintf("currentActionsStack not empty, has %d elements left", len(s.pending))
	default:
		return
	}
	logger.Log(level, anomaly, "context", describeFrame(frame))
}

func (s *ActionStack) push(action Action) {
	s.log = append(s.log, action)
	s.pending = append(s.pending, slot(len(s.log)-1))
}

func (s *ActionStack) reset() {
	s.log = nil
	s.pending = nil
	s.invalid = nil
}

// resolveRecipient sets the callee of an action to a tracked contract, a
// tracked account or, if neither is known, the raw address.
func (s *ActionStack) resolveRecipient(action *Action, target tosca.Address) {
	if id, found := s.resolver.ResolveContract(target); found {
		action.RecipientContract = &id
		return
	}
	if id, found := s.resolver.ResolveAccount(target); found {
		action.RecipientAccount = &id
		return
	}
	action.TargetedAddress = &target
}

// finalizeTop pops the pending stack and applies the effects of the frame's
// terminal state to the popped action.
func (s *ActionStack) finalizeTop(frame Frame) (slot, bool) {
	if len(s.pending) == 0 {
		return 0, false
	}
	handle := s.pending[len(s.pending)-1]
	s.pending = s.pending[:len(s.pending)-1]

	action := &s.log[handle]
	state := frame.State()
	switch {
	case state.IsSuccess():
		action.GasUsed = action.Gas - frame.RemainingGas()
		if action.CallType == Create {
			action.Output = tosca.Data{}
			break
		}
		action.Output = copyData(frame.Output())
		if action.TargetedAddress != nil {
			if id, found := s.resolver.ResolveAccount(*action.TargetedAddress); found {
				action.RecipientAccount = &id
				action.TargetedAddress = nil
			}
		}

	case state == Revert:
		action.GasUsed = action.Gas - frame.RemainingGas()
		reason, _ := frame.RevertReason()
		action.RevertReason = copyData(reason)
		if action.CallType == Create {
			action.RecipientContract = nil
		}

	case state.IsHalted():
		action.GasUsed = action.Gas
		reason, found := frame.HaltReason()
		if !found {
			action.Error = tosca.Data{}
			if action.CallType == Call {
				action.RecipientContract = nil
			}
			break
		}
		action.Error = tosca.Data(reason)
		if reason == InvalidSolidityAddress && action.CallType == Call {
			s.log = append(s.log, NewSyntheticActionForMissingAddress(frame, s.resolver))
		}
	}
	return handle, true
}

// describeFrame summarizes the outer frame of a transaction for the audit.
func describeFrame(frame Frame) string {
	if frame == nil {
		return "no frame"
	}
	return fmt.Sprintf("originator %v sender %v recipient %v contract %v type %v state %v",
		frame.OriginatorAddress(), frame.SenderAddress(), frame.RecipientAddress(),
		frame.ContractAddress(), frame.Type(), frame.State())
}
