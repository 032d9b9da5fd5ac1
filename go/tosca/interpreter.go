// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tosca

//go:generate mockgen -source interpreter.go -destination interpreter_mock.go -package tosca

// Interpreter is a component capable of executing EVM byte-code. Interpreters
// are hosted by a Processor, which handles recursive contract calls through
// the RunContext handed to every run.
type Interpreter interface {
	// Run executes the code provided by the parameters in the specified context
	// and returns the processing result. The resulting error is nil whenever the
	// code was correctly executed (even if the execution was aborted due do to
	// a code-internal issue). Errors returned by RunContext.Call must be
	// forwarded unchanged, since hosts use them to signal exceptional halts of
	// the calling frame.
	Run(Parameters) (Result, error)
}

// Parameters summarizes the list of input parameters required for executing code.
type Parameters struct {
	BlockParameters
	TransactionParameters
	Context   RunContext
	Kind      CallKind
	Static    bool
	Depth     int
	Gas       Gas
	Recipient Address
	Sender    Address
	Input     Data
	Value     Value
	CodeHash  *Hash
	Code      Code
}

// BlockParameters contains information about the current block.
type BlockParameters struct {
	BlockNumber int64
	Timestamp   int64
	Coinbase    Address
	GasLimit    Gas
	BaseFee     Value
	Revision    Revision
}

// TransactionParameters contains information about current transaction.
type TransactionParameters struct {
	Origin   Address
	GasPrice Value
}

// RunContext provides an interface to access and manipulate state and transaction
// properties as needed by individual EVM instructions.
type RunContext interface {
	TransactionContext

	Call(kind CallKind, parameter CallParameters) (CallResult, error)
}

// TransactionContext is an interface to access and manipulate the state of the
// the world state in a transaction. All modifications on the world state are
// buffered in a transaction context, which can be snapshot and restored.
type TransactionContext interface {
	WorldState

	CreateSnapshot() Snapshot
	RestoreSnapshot(Snapshot)
}

// Result summarizes the result of a EVM code computation.
type Result struct {
	Success   bool // false if the execution ended in a revert, true otherwise
	Output    Data
	GasLeft   Gas
	GasRefund Gas
}

// Snapshot is a type used to represent a snapshot of the world state in a
// transaction context.
type Snapshot int

type CallParameters struct {
	Sender      Address
	Recipient   Address // < not relevant for CREATE and CREATE2
	Value       Value   // < ignored by static calls, considered to be 0
	Input       Data
	Gas         Gas
	Salt        Hash // < only relevant for CREATE2 calls
	CodeAddress Address
}

type CallResult struct {
	Output         Data
	GasLeft        Gas
	GasRefund      Gas
	CreatedAddress Address // < only meaningful for CREATE and CREATE2
	Success        bool    // false if the execution ended in a revert, true otherwise
}
