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
	"strings"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
)

// IsValid reports whether the action is structurally complete. Recipients
// are not required since a call may target nothing resolvable.
func IsValid(action *Action) bool {
	return action.CallType != NoAction &&
		action.CallOperationType != OpUnknown &&
		action.Input != nil &&
		(action.CallingAccount != nil || action.CallingContract != nil)
}

// PrettyPrint renders all fields of the action for diagnostics.
func PrettyPrint(action *Action) string {
	var b strings.Builder
	b.WriteString("Action(")
	fmt.Fprintf(&b, "callType: %v, ", action.CallType)
	fmt.Fprintf(&b, "callOperationType: %v, ", action.CallOperationType)
	fmt.Fprintf(&b, "value: %v, ", action.Value)
	fmt.Fprintf(&b, "gas: %d, ", action.Gas)
	fmt.Fprintf(&b, "gasUsed: %d, ", action.GasUsed)
	fmt.Fprintf(&b, "callDepth: %d, ", action.CallDepth)
	fmt.Fprintf(&b, "callingAccount: %s, ", printEntity(action.CallingAccount))
	fmt.Fprintf(&b, "callingContract: %s, ", printEntity(action.CallingContract))
	fmt.Fprintf(&b, "recipientAccount: %s, ", printEntity(action.RecipientAccount))
	fmt.Fprintf(&b, "recipientContract: %s, ", printEntity(action.RecipientContract))
	if action.TargetedAddress == nil {
		b.WriteString("targetedAddress: null, ")
	} else {
		fmt.Fprintf(&b, "targetedAddress: %v, ", *action.TargetedAddress)
	}
	fmt.Fprintf(&b, "input: %s, ", printData(action.Input))
	fmt.Fprintf(&b, "output: %s, ", printData(action.Output))
	fmt.Fprintf(&b, "revertReason: %s, ", printData(action.RevertReason))
	fmt.Fprintf(&b, "error: %s", printData(action.Error))
	b.WriteString(")")
	return b.String()
}

func printEntity(id *EntityID) string {
	if id == nil {
		return "null"
	}
	return id.String()
}

func printData(data tosca.Data) string {
	if data == nil {
		return "null"
	}
	return data.String()
}

// NewSyntheticActionForMissingAddress creates the action recording a failed
// call of the given frame to an address that does not exist. The frame is
// the caller whose current call instruction was rejected.
func NewSyntheticActionForMissingAddress(frame Frame, resolver AddressResolver) Action {
	caller := contractIdentity(resolver, frame.ContractAddress())
	target := frame.CallTarget()
	return Action{
		CallType:          Call,
		CallOperationType: OpCall,
		CallingContract:   &caller,
		TargetedAddress:   &target,
		Gas:               frame.RemainingGas(),
		Input:             tosca.Data{},
		Error:             tosca.Data(InvalidSolidityAddress),
		CallDepth:         frame.Depth() + 1,
	}
}
