// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package replay

import (
	"bytes"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/ethereum/go-ethereum/crypto"
)

// Context is a transaction context operating on an in-memory world state.
// Snapshots are implemented through an undo log.
type Context struct {
	current WorldState
	undo    []func()
}

var _ tosca.TransactionContext = (*Context)(nil)

// NewContext creates a context operating on a copy of the given state.
func NewContext(initial WorldState) *Context {
	current := initial.Clone()
	if current == nil {
		current = WorldState{}
	}
	return &Context{current: current}
}

// State returns a copy of the current world state.
func (c *Context) State() WorldState {
	return c.current.Clone()
}

func (c *Context) update(address tosca.Address, change func(*Account)) {
	original, found := c.current[address]
	modified := original
	change(&modified)
	c.current[address] = modified
	c.undo = append(c.undo, func() {
		if found {
			c.current[address] = original
		} else {
			delete(c.current, address)
		}
	})
}

func (c *Context) AccountExists(address tosca.Address) bool {
	account, found := c.current[address]
	return found && !account.IsEmpty()
}

func (c *Context) GetBalance(address tosca.Address) tosca.Value {
	return c.current[address].Balance
}

func (c *Context) SetBalance(address tosca.Address, value tosca.Value) {
	c.update(address, func(a *Account) { a.Balance = value })
}

func (c *Context) GetNonce(address tosca.Address) uint64 {
	return c.current[address].Nonce
}

func (c *Context) SetNonce(address tosca.Address, nonce uint64) {
	c.update(address, func(a *Account) { a.Nonce = nonce })
}

func (c *Context) GetCode(address tosca.Address) tosca.Code {
	return bytes.Clone(c.current[address].Code)
}

func (c *Context) GetCodeHash(address tosca.Address) tosca.Hash {
	if !c.AccountExists(address) {
		return tosca.Hash{}
	}
	return tosca.Hash(crypto.Keccak256(c.current[address].Code))
}

func (c *Context) GetCodeSize(address tosca.Address) int {
	return len(c.current[address].Code)
}

func (c *Context) SetCode(address tosca.Address, code tosca.Code) {
	c.update(address, func(a *Account) { a.Code = bytes.Clone(code) })
}

func (c *Context) GetStorage(address tosca.Address, key tosca.Key) tosca.Word {
	return c.current[address].Storage[key]
}

func (c *Context) SetStorage(address tosca.Address, key tosca.Key, value tosca.Word) {
	c.update(address, func(a *Account) {
		a.Storage = a.Storage.Clone()
		if a.Storage == nil {
			a.Storage = Storage{}
		}
		a.Storage[key] = value
	})
}

func (c *Context) CreateSnapshot() tosca.Snapshot {
	return tosca.Snapshot(len(c.undo))
}

func (c *Context) RestoreSnapshot(snapshot tosca.Snapshot) {
	for len(c.undo) > int(snapshot) {
		c.undo[len(c.undo)-1]()
		c.undo = c.undo[:len(c.undo)-1]
	}
}
