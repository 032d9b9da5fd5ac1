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
	"regexp"
	"testing"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
)

func TestOpCode_CanBePrinted(t *testing.T) {
	validName := regexp.MustCompile(`^(OpCode\([0-9]*\)|[A-Z0-9]+)$`)
	for i := 0; i < 256; i++ {
		op := OpCode(i)
		if !validName.MatchString(op.String()) {
			t.Errorf("Invalid print for op %v (%d)", op, i)
		}
	}
}

func TestOpCode_NamedInstructionsHaveMnemonics(t *testing.T) {
	tests := map[OpCode]string{
		CALL:         "CALL",
		CALLCODE:     "CALLCODE",
		DELEGATECALL: "DELEGATECALL",
		STATICCALL:   "STATICCALL",
		CREATE:       "CREATE",
		CREATE2:      "CREATE2",
		OpCode(0x01): "OpCode(1)",
	}
	for op, want := range tests {
		if got := op.String(); got != want {
			t.Errorf("unexpected print, wanted %v, got %v", want, got)
		}
	}
}

func TestOpCode_Classification(t *testing.T) {
	for i := 0; i < 256; i++ {
		op := OpCode(i)
		_, isKind := op.CallKind()
		if want, got := op.IsCall() || op.IsCreate(), isKind; want != got {
			t.Errorf("inconsistent classification of %v", op)
		}
		if op.IsCall() && op.IsCreate() {
			t.Errorf("%v is classified as call and create", op)
		}
		if op.IsTerminal() && isKind {
			t.Errorf("%v is classified as terminal and call", op)
		}
	}
}

func TestOpCode_CallKindRoundTrip(t *testing.T) {
	kinds := []tosca.CallKind{
		tosca.Call, tosca.CallCode, tosca.DelegateCall,
		tosca.StaticCall, tosca.Create, tosca.Create2,
	}
	for _, kind := range kinds {
		op, err := ForCallKind(kind)
		if err != nil {
			t.Fatalf("no instruction for %v: %v", kind, err)
		}
		restored, found := op.CallKind()
		if !found || restored != kind {
			t.Errorf("unexpected kind for %v, wanted %v, got %v", op, kind, restored)
		}
		if kind.IsCreate() != op.IsCreate() {
			t.Errorf("create classification of %v and %v differs", kind, op)
		}
	}
	if _, err := ForCallKind(tosca.CallKind(42)); err == nil {
		t.Errorf("expected unknown kind to be rejected")
	}
}
