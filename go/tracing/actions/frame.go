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

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tosca/vm"
)

//go:generate mockgen -source frame.go -destination frame_mock.go -package actions

// Frame is a read-only view on a single activation of the interpreter, as
// provided by the host to the tracer.
type Frame interface {
	Type() FrameType
	State() FrameState

	// OriginatorAddress is the external account that signed the transaction.
	OriginatorAddress() tosca.Address
	SenderAddress() tosca.Address
	// RecipientAddress is the account whose state is modified by the frame.
	RecipientAddress() tosca.Address
	// ContractAddress is the account whose code is executed by the frame.
	ContractAddress() tosca.Address

	Input() tosca.Data
	Output() tosca.Data
	Value() tosca.Value
	RemainingGas() tosca.Gas
	Depth() int

	// CurrentOpCode is the instruction the frame executes or, if suspended,
	// the instruction that spawned its child frame.
	CurrentOpCode() vm.OpCode
	// CallTarget is the address operand of the current call instruction.
	CallTarget() tosca.Address

	HaltReason() (HaltReason, bool)
	RevertReason() (tosca.Data, bool)

	// MessageFrameStack lists the frames of the transaction still running,
	// the most recently entered one last.
	MessageFrameStack() []Frame
}

// FrameType distinguishes message calls from contract creations.
type FrameType int

const (
	MessageCall FrameType = iota
	ContractCreation
)

func (t FrameType) String() string {
	switch t {
	case MessageCall:
		return "MESSAGE_CALL"
	case ContractCreation:
		return "CONTRACT_CREATION"
	default:
		return fmt.Sprintf("FrameType(%d)", int(t))
	}
}

// FrameState is the life-cycle state of a frame.
type FrameState int

const (
	NotStarted FrameState = iota
	CodeExecuting
	CodeSuspended
	CodeSuccess
	CompletedSuccess
	Revert
	CompletedFailed
	ExceptionalHalt
)

var frameStateNames = []string{
	"NOT_STARTED", "CODE_EXECUTING", "CODE_SUSPENDED", "CODE_SUCCESS",
	"COMPLETED_SUCCESS", "REVERT", "COMPLETED_FAILED", "EXCEPTIONAL_HALT",
}

func (s FrameState) String() string {
	if s < 0 || int(s) >= len(frameStateNames) {
		return fmt.Sprintf("FrameState(%d)", int(s))
	}
	return frameStateNames[s]
}

// IsSuccess reports whether the frame completed without failure.
func (s FrameState) IsSuccess() bool {
	return s == CodeSuccess || s == CompletedSuccess
}

// IsHalted reports whether the frame was aborted by an exceptional halt.
func (s FrameState) IsHalted() bool {
	return s == ExceptionalHalt || s == CompletedFailed
}

// IsTerminal reports whether the frame has stopped executing code.
func (s FrameState) IsTerminal() bool {
	return s.IsSuccess() || s.IsHalted() || s == Revert
}
