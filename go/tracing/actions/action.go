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
	"encoding/json"
	"fmt"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tosca/vm"
)

// CallType classifies the invocation recorded by an Action.
type CallType int

const (
	NoAction CallType = iota
	Call
	Create
	Precompile
	System
)

var callTypeNames = []string{"NO_ACTION", "CALL", "CREATE", "PRECOMPILE", "SYSTEM"}

func (t CallType) String() string {
	if t < 0 || int(t) >= len(callTypeNames) {
		return fmt.Sprintf("CallType(%d)", int(t))
	}
	return callTypeNames[t]
}

func (t CallType) MarshalJSON() ([]byte, error) {
	if t < 0 || int(t) >= len(callTypeNames) {
		return nil, fmt.Errorf("invalid call type: %d", int(t))
	}
	return json.Marshal(t.String())
}

func (t *CallType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, cur := range callTypeNames {
		if cur == name {
			*t = CallType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown call type: %s", name)
}

// CallOperationType is the instruction, or transaction kind for top-level
// actions, that started an invocation.
type CallOperationType int

const (
	OpUnknown CallOperationType = iota
	OpCall
	OpCallCode
	OpDelegateCall
	OpStaticCall
	OpCreate
	OpCreate2
)

var callOperationTypeNames = []string{
	"OP_UNKNOWN", "OP_CALL", "OP_CALLCODE", "OP_DELEGATECALL",
	"OP_STATICCALL", "OP_CREATE", "OP_CREATE2",
}

// OperationOf maps the instruction a parent frame is executing to the
// operation type of the child it spawns. Instructions outside of the call
// family map to OpUnknown.
func OperationOf(op vm.OpCode) CallOperationType {
	switch op {
	case vm.CREATE:
		return OpCreate
	case vm.CALL:
		return OpCall
	case vm.CALLCODE:
		return OpCallCode
	case vm.DELEGATECALL:
		return OpDelegateCall
	case vm.CREATE2:
		return OpCreate2
	case vm.STATICCALL:
		return OpStaticCall
	default:
		return OpUnknown
	}
}

// IsCreate reports whether the operation deploys a new contract.
func (o CallOperationType) IsCreate() bool {
	return o == OpCreate || o == OpCreate2
}

func (o CallOperationType) String() string {
	if o < 0 || int(o) >= len(callOperationTypeNames) {
		return fmt.Sprintf("CallOperationType(%d)", int(o))
	}
	return callOperationTypeNames[o]
}

func (o CallOperationType) MarshalJSON() ([]byte, error) {
	if o < 0 || int(o) >= len(callOperationTypeNames) {
		return nil, fmt.Errorf("invalid call operation type: %d", int(o))
	}
	return json.Marshal(o.String())
}

func (o *CallOperationType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, cur := range callOperationTypeNames {
		if cur == name {
			*o = CallOperationType(i)
			return nil
		}
	}
	return fmt.Errorf("unknown call operation type: %s", name)
}

// Action is a single entry of the call tree of a transaction. Optional
// identities are nil if unset. Byte fields are nil while unset and non-nil,
// possibly empty, once assigned.
type Action struct {
	CallType          CallType
	CallOperationType CallOperationType

	CallingAccount  *EntityID // set for top-level actions
	CallingContract *EntityID // set for nested actions

	// At most one of the following identifies the callee.
	RecipientAccount  *EntityID
	RecipientContract *EntityID
	TargetedAddress   *tosca.Address // callee not (yet) resolvable

	Gas     tosca.Gas
	GasUsed tosca.Gas
	Value   tosca.Value
	Input   tosca.Data

	Output       tosca.Data
	RevertReason tosca.Data
	Error        tosca.Data

	CallDepth int
}

type actionJSON struct {
	CallType          CallType          `json:"callType"`
	CallOperationType CallOperationType `json:"callOperationType"`
	CallingAccount    *EntityID         `json:"callingAccount,omitempty"`
	CallingContract   *EntityID         `json:"callingContract,omitempty"`
	RecipientAccount  *EntityID         `json:"recipientAccount,omitempty"`
	RecipientContract *EntityID         `json:"recipientContract,omitempty"`
	TargetedAddress   *tosca.Address    `json:"targetedAddress,omitempty"`
	Gas               tosca.Gas         `json:"gas"`
	GasUsed           tosca.Gas         `json:"gasUsed"`
	Value             string            `json:"value"`
	Input             *tosca.Data       `json:"input,omitempty"`
	Output            *tosca.Data       `json:"output,omitempty"`
	RevertReason      *tosca.Data       `json:"revertReason,omitempty"`
	Error             *tosca.Data       `json:"error,omitempty"`
	CallDepth         int               `json:"callDepth"`
}

// MarshalJSON renders the action with unset fields omitted. Byte fields that
// were assigned an empty value are kept to distinguish them from unset ones.
func (a Action) MarshalJSON() ([]byte, error) {
	return json.Marshal(actionJSON{
		CallType:          a.CallType,
		CallOperationType: a.CallOperationType,
		CallingAccount:    a.CallingAccount,
		CallingContract:   a.CallingContract,
		RecipientAccount:  a.RecipientAccount,
		RecipientContract: a.RecipientContract,
		TargetedAddress:   a.TargetedAddress,
		Gas:               a.Gas,
		GasUsed:           a.GasUsed,
		Value:             a.Value.String(),
		Input:             optionalData(a.Input),
		Output:            optionalData(a.Output),
		RevertReason:      optionalData(a.RevertReason),
		Error:             optionalData(a.Error),
		CallDepth:         a.CallDepth,
	})
}

func optionalData(data tosca.Data) *tosca.Data {
	if data == nil {
		return nil
	}
	return &data
}

// copyData returns a non-nil copy of the given bytes.
func copyData(data tosca.Data) tosca.Data {
	return append(tosca.Data{}, data...)
}
