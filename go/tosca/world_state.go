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

//go:generate mockgen -source world_state.go -destination world_state_mock.go -package tosca

// WorldState is an interface to access and manipulate the state of the block chain.
// The state of the chain is a collection of accounts, each with a balance, a nonce,
// optional code and storage.
type WorldState interface {
	AccountExists(Address) bool

	GetBalance(Address) Value
	SetBalance(Address, Value)

	GetNonce(Address) uint64
	SetNonce(Address, uint64)

	GetCode(Address) Code
	GetCodeHash(Address) Hash
	GetCodeSize(Address) int
	SetCode(Address, Code)

	GetStorage(Address, Key) Word
	SetStorage(Address, Key, Word)
}
