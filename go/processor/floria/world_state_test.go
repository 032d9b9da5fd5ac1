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
	"maps"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
)

type testAccount struct {
	balance tosca.Value
	nonce   uint64
	code    tosca.Code
	storage map[tosca.Key]tosca.Word
}

// testState is an in-memory transaction context for processor tests.
type testState struct {
	accounts  map[tosca.Address]testAccount
	snapshots []map[tosca.Address]testAccount
}

var _ tosca.TransactionContext = (*testState)(nil)

func newTestState() *testState {
	return &testState{accounts: map[tosca.Address]testAccount{}}
}

func (s *testState) update(address tosca.Address, change func(*testAccount)) {
	account := s.accounts[address]
	change(&account)
	s.accounts[address] = account
}

func (s *testState) AccountExists(address tosca.Address) bool {
	_, found := s.accounts[address]
	return found
}

func (s *testState) GetBalance(address tosca.Address) tosca.Value {
	return s.accounts[address].balance
}

func (s *testState) SetBalance(address tosca.Address, value tosca.Value) {
	s.update(address, func(a *testAccount) { a.balance = value })
}

func (s *testState) GetNonce(address tosca.Address) uint64 {
	return s.accounts[address].nonce
}

func (s *testState) SetNonce(address tosca.Address, nonce uint64) {
	s.update(address, func(a *testAccount) { a.nonce = nonce })
}

func (s *testState) GetCode(address tosca.Address) tosca.Code {
	return s.accounts[address].code
}

func (s *testState) GetCodeHash(address tosca.Address) tosca.Hash {
	if !s.AccountExists(address) {
		return tosca.Hash{}
	}
	return hashCode(s.accounts[address].code)
}

func (s *testState) GetCodeSize(address tosca.Address) int {
	return len(s.accounts[address].code)
}

func (s *testState) SetCode(address tosca.Address, code tosca.Code) {
	s.update(address, func(a *testAccount) { a.code = code })
}

func (s *testState) GetStorage(address tosca.Address, key tosca.Key) tosca.Word {
	return s.accounts[address].storage[key]
}

func (s *testState) SetStorage(address tosca.Address, key tosca.Key, value tosca.Word) {
	s.update(address, func(a *testAccount) {
		a.storage = maps.Clone(a.storage)
		if a.storage == nil {
			a.storage = map[tosca.Key]tosca.Word{}
		}
		a.storage[key] = value
	})
}

func (s *testState) CreateSnapshot() tosca.Snapshot {
	s.snapshots = append(s.snapshots, maps.Clone(s.accounts))
	return tosca.Snapshot(len(s.snapshots) - 1)
}

func (s *testState) RestoreSnapshot(snapshot tosca.Snapshot) {
	s.accounts = maps.Clone(s.snapshots[snapshot])
	s.snapshots = s.snapshots[:snapshot+1]
}
