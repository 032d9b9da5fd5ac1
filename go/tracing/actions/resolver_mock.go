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
	gomock "go.uber.org/mock/gomock"
)

// MockAddressResolver is a mock of AddressResolver interface.
type MockAddressResolver struct {
	ctrl     *gomock.Controller
	recorder *MockAddressResolverMockRecorder
}

// MockAddressResolverMockRecorder is the mock recorder for MockAddressResolver.
type MockAddressResolverMockRecorder struct {
	mock *MockAddressResolver
}

// NewMockAddressResolver creates a new mock instance.
func NewMockAddressResolver(ctrl *gomock.Controller) *MockAddressResolver {
	mock := &MockAddressResolver{ctrl: ctrl}
	mock.recorder = &MockAddressResolverMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockAddressResolver) EXPECT() *MockAddressResolverMockRecorder {
	return m.recorder
}

// ResolveAccount mocks base method.
func (m *MockAddressResolver) ResolveAccount(arg0 tosca.Address) (EntityID, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResolveAccount", arg0)
	ret0, _ := ret[0].(EntityID)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// ResolveAccount indicates an expected call of ResolveAccount.
func (mr *MockAddressResolverMockRecorder) ResolveAccount(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResolveAccount", reflect.TypeOf((*MockAddressResolver)(nil).ResolveAccount), arg0)
}

// ResolveContract mocks base method.
func (m *MockAddressResolver) ResolveContract(arg0 tosca.Address) (EntityID, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ResolveContract", arg0)
	ret0, _ := ret[0].(EntityID)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// ResolveContract indicates an expected call of ResolveContract.
func (mr *MockAddressResolverMockRecorder) ResolveContract(arg0 any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResolveContract", reflect.TypeOf((*MockAddressResolver)(nil).ResolveContract), arg0)
}
