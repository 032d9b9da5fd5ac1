// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vm

import (
	"fmt"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
)

// OpCode is an EVM instruction. Only the instructions relevant for tracing
// frame transitions are named; all others are still representable.
type OpCode byte

const (
	STOP         OpCode = 0x00
	GAS          OpCode = 0x5A
	CREATE       OpCode = 0xF0
	CALL         OpCode = 0xF1
	CALLCODE     OpCode = 0xF2
	RETURN       OpCode = 0xF3
	DELEGATECALL OpCode = 0xF4
	CREATE2      OpCode = 0xF5
	STATICCALL   OpCode = 0xFA
	REVERT       OpCode = 0xFD
	INVALID      OpCode = 0xFE
	SELFDESTRUCT OpCode = 0xFF
)

var opCodeNames = map[OpCode]string{
	STOP:         "STOP",
	GAS:          "GAS",
	CREATE:       "CREATE",
	CALL:         "CALL",
	CALLCODE:     "CALLCODE",
	RETURN:       "RETURN",
	DELEGATECALL: "DELEGATECALL",
	CREATE2:      "CREATE2",
	STATICCALL:   "STATICCALL",
	REVERT:       "REVERT",
	INVALID:      "INVALID",
	SELFDESTRUCT: "SELFDESTRUCT",
}

func (op OpCode) String() string {
	if name, found := opCodeNames[op]; found {
		return name
	}
	return fmt.Sprintf("OpCode(%d)", byte(op))
}

// IsCall reports whether the instruction starts a message call into an
// existing account.
func (op OpCode) IsCall() bool {
	return op == CALL || op == CALLCODE || op == DELEGATECALL || op == STATICCALL
}

// IsCreate reports whether the instruction deploys a new contract.
func (op OpCode) IsCreate() bool {
	return op == CREATE || op == CREATE2
}

// IsTerminal reports whether the instruction ends the execution of a frame.
func (op OpCode) IsTerminal() bool {
	return op == STOP || op == RETURN || op == REVERT || op == INVALID || op == SELFDESTRUCT
}

// ForCallKind returns the instruction issuing a nested call of the given kind.
func ForCallKind(kind tosca.CallKind) (OpCode, error) {
	switch kind {
	case tosca.Call:
		return CALL, nil
	case tosca.CallCode:
		return CALLCODE, nil
	case tosca.DelegateCall:
		return DELEGATECALL, nil
	case tosca.StaticCall:
		return STATICCALL, nil
	case tosca.Create:
		return CREATE, nil
	case tosca.Create2:
		return CREATE2, nil
	}
	return INVALID, fmt.Errorf("no instruction for call kind %v", kind)
}

// CallKind returns the kind of nested call issued by the instruction.
func (op OpCode) CallKind() (tosca.CallKind, bool) {
	switch op {
	case CALL:
		return tosca.Call, true
	case CALLCODE:
		return tosca.CallCode, true
	case DELEGATECALL:
		return tosca.DelegateCall, true
	case STATICCALL:
		return tosca.StaticCall, true
	case CREATE:
		return tosca.Create, true
	case CREATE2:
		return tosca.Create2, true
	}
	return 0, false
}
