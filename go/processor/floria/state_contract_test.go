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
	"testing"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"go.uber.org/mock/gomock"
)

var (
	setBalanceSelector = []byte{0xe3, 0x04, 0x43, 0xbc}
	copyCodeSelector   = []byte{0xd6, 0xa0, 0xc7, 0xaf}
	swapCodeSelector   = []byte{0x07, 0x69, 0x0b, 0x2a}
	setStorageSelector = []byte{0x39, 0xe5, 0x03, 0xab}
	incNonceSelector   = []byte{0x79, 0xbe, 0xad, 0x38}
)

// stateCall builds the input of a state contract call with the given
// address arguments followed by the given trailing words.
func stateCall(selector []byte, addresses []tosca.Address, words ...byte) tosca.Data {
	res := append(tosca.Data{}, selector...)
	for _, address := range addresses {
		res = append(res, make([]byte, 12)...)
		res = append(res, address[:]...)
	}
	for _, word := range words {
		res = append(res, make([]byte, 31)...)
		res = append(res, word)
	}
	return res
}

func TestStateContract_MethodIdsMatchSelectors(t *testing.T) {
	tests := map[string]struct {
		id       []byte
		selector []byte
	}{
		"setBalance": {setBalanceMethodID, setBalanceSelector},
		"copyCode":   {copyCodeMethodID, copyCodeSelector},
		"swapCode":   {swapCodeMethodID, swapCodeSelector},
		"setStorage": {setStorageMethodID, setStorageSelector},
		"incNonce":   {incNonceMethodID, incNonceSelector},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if want, got := tosca.Data(test.selector), tosca.Data(test.id); want.String() != got.String() {
				t.Errorf("unexpected method id, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestStateContract_ExecutesMethods(t *testing.T) {
	target := tosca.Address{0x01}
	source := tosca.Address{0x02}
	code := tosca.Code{1, 2, 3}
	codeCost := tosca.Gas(len(code)) * (createDataGas + memoryGas)

	tests := map[string]struct {
		input   tosca.Data
		gasUsed tosca.Gas
		setup   func(*tosca.MockWorldState)
	}{
		"setBalance": {
			input:   stateCall(setBalanceSelector, []tosca.Address{target}, 7),
			gasUsed: callValueTransferGas,
			setup: func(state *tosca.MockWorldState) {
				state.EXPECT().SetBalance(target, tosca.NewValue(7))
			},
		},
		"copyCode": {
			input:   stateCall(copyCodeSelector, []tosca.Address{target, source}),
			gasUsed: createGas + codeCost,
			setup: func(state *tosca.MockWorldState) {
				state.EXPECT().GetCode(source).Return(code)
				state.EXPECT().SetCode(target, code)
			},
		},
		"copyCode to itself": {
			input:   stateCall(copyCodeSelector, []tosca.Address{target, target}),
			gasUsed: createGas + codeCost,
			setup: func(state *tosca.MockWorldState) {
				state.EXPECT().GetCode(target).Return(code)
			},
		},
		"swapCode": {
			input:   stateCall(swapCodeSelector, []tosca.Address{target, source}),
			gasUsed: 2*createGas + codeCost/2,
			setup: func(state *tosca.MockWorldState) {
				state.EXPECT().GetCode(target).Return(nil)
				state.EXPECT().GetCode(source).Return(code)
				state.EXPECT().SetCode(target, code)
				state.EXPECT().SetCode(source, tosca.Code(nil))
			},
		},
		"setStorage": {
			input:   stateCall(setStorageSelector, []tosca.Address{target}, 1, 2),
			gasUsed: sStoreSetGasEIP2200,
			setup: func(state *tosca.MockWorldState) {
				state.EXPECT().SetStorage(target, tosca.Key{31: 1}, tosca.Word{31: 2})
			},
		},
		"incNonce": {
			input:   stateCall(incNonceSelector, []tosca.Address{target}, 5),
			gasUsed: callValueTransferGas,
			setup: func(state *tosca.MockWorldState) {
				state.EXPECT().GetNonce(target).Return(uint64(3))
				state.EXPECT().SetNonce(target, uint64(8))
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			state := tosca.NewMockWorldState(ctrl)
			test.setup(state)

			gas := tosca.Gas(1_000_000)
			gasLeft, err := runStateContract(state, DriverAddress(), test.input, gas)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want, got := gas-test.gasUsed, gasLeft; want != got {
				t.Errorf("unexpected gas left, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestStateContract_FailuresAreReported(t *testing.T) {
	driver := DriverAddress()
	tests := map[string]struct {
		sender tosca.Address
		input  tosca.Data
		gas    tosca.Gas
		want   error
	}{
		"not the driver": {
			sender: tosca.Address{0x01},
			input:  stateCall(setBalanceSelector, []tosca.Address{{0x01}}, 1),
			gas:    1_000_000,
			want:   ErrUnauthorized,
		},
		"input too short": {
			sender: driver,
			input:  tosca.Data{0xe3, 0x04},
			gas:    1_000_000,
			want:   ErrInvalidMethod,
		},
		"unknown method": {
			sender: driver,
			input:  stateCall([]byte{1, 2, 3, 4}, []tosca.Address{{0x01}}, 1),
			gas:    1_000_000,
			want:   ErrInvalidMethod,
		},
		"setBalance out of gas": {
			sender: driver,
			input:  stateCall(setBalanceSelector, []tosca.Address{{0x01}}, 1),
			gas:    callValueTransferGas - 1,
			want:   ErrOutOfGas,
		},
		"setBalance of driver": {
			sender: driver,
			input:  stateCall(setBalanceSelector, []tosca.Address{driver}, 1),
			gas:    1_000_000,
			want:   ErrExecutionReverted,
		},
		"setBalance with short input": {
			sender: driver,
			input:  stateCall(setBalanceSelector, []tosca.Address{{0x01}}),
			gas:    1_000_000,
			want:   ErrExecutionReverted,
		},
		"copyCode out of gas": {
			sender: driver,
			input:  stateCall(copyCodeSelector, []tosca.Address{{0x01}, {0x02}}),
			gas:    createGas - 1,
			want:   ErrOutOfGas,
		},
		"swapCode out of gas": {
			sender: driver,
			input:  stateCall(swapCodeSelector, []tosca.Address{{0x01}, {0x02}}),
			gas:    2*createGas - 1,
			want:   ErrOutOfGas,
		},
		"setStorage with short input": {
			sender: driver,
			input:  stateCall(setStorageSelector, []tosca.Address{{0x01}}, 1),
			gas:    1_000_000,
			want:   ErrExecutionReverted,
		},
		"incNonce by zero": {
			sender: driver,
			input:  stateCall(incNonceSelector, []tosca.Address{{0x01}}, 0),
			gas:    1_000_000,
			want:   ErrExecutionReverted,
		},
		"incNonce of driver": {
			sender: driver,
			input:  stateCall(incNonceSelector, []tosca.Address{driver}, 1),
			gas:    1_000_000,
			want:   ErrExecutionReverted,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			state := tosca.NewMockWorldState(ctrl)

			gasLeft, err := runStateContract(state, test.sender, test.input, test.gas)
			if !errors.Is(err, test.want) {
				t.Errorf("unexpected error, wanted %v, got %v", test.want, err)
			}
			if gasLeft != 0 {
				t.Errorf("failed calls should consume all gas, got %v left", gasLeft)
			}
		})
	}
}

func TestStateContract_CopyCodeWithInsufficientGasForCodeFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	state := tosca.NewMockWorldState(ctrl)
	state.EXPECT().GetCode(tosca.Address{0x02}).Return(make(tosca.Code, 42))

	input := stateCall(copyCodeSelector, []tosca.Address{{0x01}, {0x02}})
	if _, err := runStateContract(state, DriverAddress(), input, createGas+10); !errors.Is(err, ErrOutOfGas) {
		t.Errorf("unexpected error, wanted %v, got %v", ErrOutOfGas, err)
	}
}
