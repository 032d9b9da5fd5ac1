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
	"context"
	"log/slog"
	"testing"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tosca/vm"
)

// testFrame is a configurable frame for tests operating on whole call trees.
type testFrame struct {
	kind         FrameType
	state        FrameState
	originator   tosca.Address
	sender       tosca.Address
	recipient    tosca.Address
	contract     tosca.Address
	target       tosca.Address
	input        tosca.Data
	output       tosca.Data
	value        tosca.Value
	gas          tosca.Gas
	depth        int
	op           vm.OpCode
	haltReason   *HaltReason
	revertReason tosca.Data
	frames       *[]Frame
}

func (f *testFrame) Type() FrameType                  { return f.kind }
func (f *testFrame) State() FrameState                { return f.state }
func (f *testFrame) OriginatorAddress() tosca.Address { return f.originator }
func (f *testFrame) SenderAddress() tosca.Address     { return f.sender }
func (f *testFrame) RecipientAddress() tosca.Address  { return f.recipient }
func (f *testFrame) ContractAddress() tosca.Address   { return f.contract }
func (f *testFrame) Input() tosca.Data                { return f.input }
func (f *testFrame) Output() tosca.Data               { return f.output }
func (f *testFrame) Value() tosca.Value               { return f.value }
func (f *testFrame) RemainingGas() tosca.Gas          { return f.gas }
func (f *testFrame) Depth() int                       { return f.depth }
func (f *testFrame) CurrentOpCode() vm.OpCode         { return f.op }
func (f *testFrame) CallTarget() tosca.Address        { return f.target }

func (f *testFrame) HaltReason() (HaltReason, bool) {
	if f.haltReason == nil {
		return "", false
	}
	return *f.haltReason, true
}

func (f *testFrame) RevertReason() (tosca.Data, bool) {
	return f.revertReason, f.revertReason != nil
}

func (f *testFrame) MessageFrameStack() []Frame {
	if f.frames == nil {
		return nil
	}
	return *f.frames
}

// spawn creates a child frame of f executing the given instruction and
// places it on top of the shared frame stack.
func (f *testFrame) spawn(op vm.OpCode, contract tosca.Address, gas tosca.Gas) *testFrame {
	if f.frames == nil {
		f.frames = &[]Frame{f}
	}
	kind := MessageCall
	if op.IsCreate() {
		kind = ContractCreation
	}
	child := &testFrame{
		kind:       kind,
		state:      NotStarted,
		originator: f.originator,
		sender:     f.contract,
		recipient:  contract,
		contract:   contract,
		input:      tosca.Data{},
		gas:        gas,
		depth:      f.depth + 1,
		frames:     f.frames,
	}
	f.op = op
	f.state = CodeSuspended
	*f.frames = append(*f.frames, child)
	return child
}

// leave removes the child from the top of the shared frame stack.
func (f *testFrame) leave() {
	*f.frames = (*f.frames)[:len(*f.frames)-1]
}

func haltedBy(reason HaltReason) *HaltReason {
	return &reason
}

// testResolver resolves the addresses registered in its maps.
type testResolver struct {
	contracts map[tosca.Address]EntityID
	accounts  map[tosca.Address]EntityID
}

func newTestResolver() *testResolver {
	return &testResolver{
		contracts: map[tosca.Address]EntityID{},
		accounts:  map[tosca.Address]EntityID{},
	}
}

func (r *testResolver) ResolveContract(address tosca.Address) (EntityID, bool) {
	id, found := r.contracts[address]
	return id, found
}

func (r *testResolver) ResolveAccount(address tosca.Address) (EntityID, bool) {
	id, found := r.accounts[address]
	return id, found
}

// recordingHandler collects all log records it receives.
type recordingHandler struct {
	records []slog.Record
}

func (h *recordingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordingHandler) WithAttrs([]slog.Attr) slog.Handler       { return h }
func (h *recordingHandler) WithGroup(string) slog.Handler            { return h }

func (h *recordingHandler) Handle(_ context.Context, r slog.Record) error {
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *recordingHandler) attr(t *testing.T, index int, key string) string {
	t.Helper()
	var res string
	found := false
	h.records[index].Attrs(func(a slog.Attr) bool {
		if a.Key == key {
			res = a.Value.String()
			found = true
			return false
		}
		return true
	})
	if !found {
		t.Fatalf("record %d has no attribute %q", index, key)
	}
	return res
}

func TestFrameState_Classification(t *testing.T) {
	tests := map[FrameState]struct {
		success, halted, terminal bool
	}{
		NotStarted:       {},
		CodeExecuting:    {},
		CodeSuspended:    {},
		CodeSuccess:      {success: true, terminal: true},
		CompletedSuccess: {success: true, terminal: true},
		Revert:           {terminal: true},
		CompletedFailed:  {halted: true, terminal: true},
		ExceptionalHalt:  {halted: true, terminal: true},
	}
	for state, want := range tests {
		if got := state.IsSuccess(); got != want.success {
			t.Errorf("unexpected success classification of %v, wanted %t, got %t", state, want.success, got)
		}
		if got := state.IsHalted(); got != want.halted {
			t.Errorf("unexpected halt classification of %v, wanted %t, got %t", state, want.halted, got)
		}
		if got := state.IsTerminal(); got != want.terminal {
			t.Errorf("unexpected terminal classification of %v, wanted %t, got %t", state, want.terminal, got)
		}
	}
}

func TestFrameState_String(t *testing.T) {
	if want, got := "EXCEPTIONAL_HALT", ExceptionalHalt.String(); want != got {
		t.Errorf("unexpected print, wanted %v, got %v", want, got)
	}
	if want, got := "FrameState(42)", FrameState(42).String(); want != got {
		t.Errorf("unexpected print, wanted %v, got %v", want, got)
	}
	if want, got := "CONTRACT_CREATION", ContractCreation.String(); want != got {
		t.Errorf("unexpected print, wanted %v, got %v", want, got)
	}
}

func TestHaltReason_KnownReasons(t *testing.T) {
	reasons := KnownHaltReasons()
	if len(reasons) != 12 {
		t.Errorf("unexpected number of known reasons: %d", len(reasons))
	}
	for _, reason := range reasons {
		if !reason.IsKnown() {
			t.Errorf("%v should be known", reason)
		}
		if reason.Error() != string(reason) {
			t.Errorf("unexpected error text of %v", reason)
		}
	}
	if HaltReason("stack limit reached 1024 (1023)").IsKnown() {
		t.Errorf("raw descriptions should not be known")
	}
}
