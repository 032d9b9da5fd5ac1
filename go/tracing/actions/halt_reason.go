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

// HaltReason describes why a frame was halted exceptionally. Besides the
// reasons listed below any other text may be used to carry the raw
// description reported by the interpreter.
//
// HaltReason implements the error interface such that hosts can signal the
// halt of a calling frame through the error result of a nested call.
type HaltReason string

const (
	InvalidSolidityAddress HaltReason = "INVALID_SOLIDITY_ADDRESS"
	InsufficientGas        HaltReason = "INSUFFICIENT_GAS"
	InvalidOperation       HaltReason = "INVALID_OPERATION"
	CodeTooLarge           HaltReason = "CODE_TOO_LARGE"
	IllegalStateChange     HaltReason = "ILLEGAL_STATE_CHANGE"
	TooManyStackItems      HaltReason = "TOO_MANY_STACK_ITEMS"
	InsufficientStackItems HaltReason = "INSUFFICIENT_STACK_ITEMS"
	InvalidJumpDestination HaltReason = "INVALID_JUMP_DESTINATION"
	OutOfBounds            HaltReason = "OUT_OF_BOUNDS"
	PrecompileError        HaltReason = "PRECOMPILE_ERROR"
	InvalidCode            HaltReason = "INVALID_CODE"
	TooDeep                HaltReason = "TOO_DEEP"
)

var knownHaltReasons = []HaltReason{
	InvalidSolidityAddress,
	InsufficientGas,
	InvalidOperation,
	CodeTooLarge,
	IllegalStateChange,
	TooManyStackItems,
	InsufficientStackItems,
	InvalidJumpDestination,
	OutOfBounds,
	PrecompileError,
	InvalidCode,
	TooDeep,
}

// KnownHaltReasons lists the halt reasons the tracer recognizes.
func KnownHaltReasons() []HaltReason {
	return append([]HaltReason(nil), knownHaltReasons...)
}

// IsKnown reports whether the reason is one of the recognized reasons
// rather than a raw description.
func (r HaltReason) IsKnown() bool {
	for _, cur := range knownHaltReasons {
		if cur == r {
			return true
		}
	}
	return false
}

func (r HaltReason) Error() string {
	return string(r)
}
