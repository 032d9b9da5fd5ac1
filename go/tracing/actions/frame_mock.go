// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package actions is a generated GoMock package.
package actions

import (
	reflect "reflect"

	tosca "github.com/Fantom-foundation/actiontrace/go/tosca"
	vm "github.com/Fantom-foundation/actiontrace/go/tosca/vm"
	gomock "go.uber.org/mock/gomock"
)

// MockFrame is a mock of Frame interface.
type MockFrame struct {
	ctrl     *gomock.Controller
	recorder *MockFrameMockRecorder
}

// MockFrameMockRecorder is the mock recorder for MockFrame.
type MockFrameMockRecorder struct {
	mock *MockFrame
}

// NewMockFrame creates a new mock instance.
func NewMockFrame(ctrl *gomock.Controller) *MockFrame {
	mock := &MockFrame{ctrl: ctrl}
	mock.recorder = &MockFrameMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockFrame) EXPECT() *MockFrameMockRecorder {
	return m.recorder
}

// CallTarget mocks base method.
func (m *MockFrame) CallTarget() tosca.Address {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CallTarget")
	ret0, _ := ret[0].(tosca.Address)
	return ret0
}

// CallTarget indicates an expected call of CallTarget.
func (mr *MockFrameMockRecorder) CallTarget() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CallTarget", reflect.TypeOf((*MockFrame)(nil).CallTarget))
}

// ContractAddress mocks base method.
func (m *MockFrame) ContractAddress() tosca.Address {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ContractAddress")
	ret0, _ := ret[0].(tosca.Address)
	return ret0
}

// ContractAddress indicates an expected call of ContractAddress.
func (mr *MockFrameMockRecorder) ContractAddress() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ContractAddress", reflect.TypeOf((*MockFrame)(nil).ContractAddress))
}

// CurrentOpCode mocks base method.
func (m *MockFrame) CurrentOpCode() vm.OpCode {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CurrentOpCode")
	ret0, _ := ret[0].(vm.OpCode)
	return ret0
}

// CurrentOpCode indicates an expected call of CurrentOpCode.
func (mr *MockFrameMockRecorder) CurrentOpCode() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CurrentOpCode", reflect.TypeOf((*MockFrame)(nil).CurrentOpCode))
}

// Depth mocks base method.
func (m *MockFrame) Depth() int {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Depth")
	ret0, _ := ret[0].(int)
	return ret0
}

// Depth indicates an expected call of Depth.
func (mr *MockFrameMockRecorder) Depth() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Depth", reflect.TypeOf((*MockFrame)(nil).Depth))
}

// HaltReason mocks base method.
func (m *MockFrame) HaltReason() (HaltReason, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HaltReason")
	ret0, _ := ret[0].(HaltReason)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// HaltReason indicates an expected call of HaltReason.
func (mr *MockFrameMockRecorder) HaltReason() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HaltReason", reflect.TypeOf((*MockFrame)(nil).HaltReason))
}

// Input mocks base method.
func (m *MockFrame) Input() tosca.Data {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Input")
	ret0, _ := ret[0].(tosca.Data)
	return ret0
}

// Input indicates an expected call of Input.
func (mr *MockFrameMockRecorder) Input() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Input", reflect.TypeOf((*MockFrame)(nil).Input))
}

// MessageFrameStack mocks base method.
func (m *MockFrame) MessageFrameStack() []Frame {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "MessageFrameStack")
	ret0, _ := ret[0].([]Frame)
	return ret0
}

// MessageFrameStack indicates an expected call of MessageFrameStack.
func (mr *MockFrameMockRecorder) MessageFrameStack() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "MessageFrameStack", reflect.TypeOf((*MockFrame)(nil).MessageFrameStack))
}

// OriginatorAddress mocks base method.
func (m *MockFrame) OriginatorAddress() tosca.Address {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "OriginatorAddress")
	ret0, _ := ret[0].(tosca.Address)
	return ret0
}

// OriginatorAddress indicates an expected call of OriginatorAddress.
func (mr *MockFrameMockRecorder) OriginatorAddress() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "OriginatorAddress", reflect.TypeOf((*MockFrame)(nil).OriginatorAddress))
}

// Output mocks base method.
func (m *MockFrame) Output() tosca.Data {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Output")
	ret0, _ := ret[0].(tosca.Data)
	return ret0
}

// Output indicates an expected call of Output.
func (mr *MockFrameMockRecorder) Output() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Output", reflect.TypeOf((*MockFrame)(nil).Output))
}

// RecipientAddress mocks base method.
func (m *MockFrame) RecipientAddress() tosca.Address {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RecipientAddress")
	ret0, _ := ret[0].(tosca.Address)
	return ret0
}

// RecipientAddress indicates an expected call of RecipientAddress.
func (mr *MockFrameMockRecorder) RecipientAddress() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RecipientAddress", reflect.TypeOf((*MockFrame)(nil).RecipientAddress))
}

// RemainingGas mocks base method.
func (m *MockFrame) RemainingGas() tosca.Gas {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RemainingGas")
	ret0, _ := ret[0].(tosca.Gas)
	return ret0
}

// RemainingGas indicates an expected call of RemainingGas.
func (mr *MockFrameMockRecorder) RemainingGas() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RemainingGas", reflect.TypeOf((*MockFrame)(nil).RemainingGas))
}

// RevertReason mocks base method.
func (m *MockFrame) RevertReason() (tosca.Data, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "RevertReason")
	ret0, _ := ret[0].(tosca.Data)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// RevertReason indicates an expected call of RevertReason.
func (mr *MockFrameMockRecorder) RevertReason() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "RevertReason", reflect.TypeOf((*MockFrame)(nil).RevertReason))
}

// SenderAddress mocks base method.
func (m *MockFrame) SenderAddress() tosca.Address {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SenderAddress")
	ret0, _ := ret[0].(tosca.Address)
	return ret0
}

// SenderAddress indicates an expected call of SenderAddress.
func (mr *MockFrameMockRecorder) SenderAddress() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SenderAddress", reflect.TypeOf((*MockFrame)(nil).SenderAddress))
}

// State mocks base method.
func (m *MockFrame) State() FrameState {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "State")
	ret0, _ := ret[0].(FrameState)
	return ret0
}

// State indicates an expected call of State.
func (mr *MockFrameMockRecorder) State() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "State", reflect.TypeOf((*MockFrame)(nil).State))
}

// Type mocks base method.
func (m *MockFrame) Type() FrameType {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Type")
	ret0, _ := ret[0].(FrameType)
	return ret0
}

// Type indicates an expected call of Type.
func (mr *MockFrameMockRecorder) Type() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Type", reflect.TypeOf((*MockFrame)(nil).Type))
}

// Value mocks base method.
func (m *MockFrame) Value() tosca.Value {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Value")
	ret0, _ := ret[0].(tosca.Value)
	return ret0
}

// Value indicates an expected call of Value.
func (mr *MockFrameMockRecorder) Value() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Value", reflect.TypeOf((*MockFrame)(nil).Value))
}
