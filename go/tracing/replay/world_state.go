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
	"fmt"
	"maps"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
)

// WorldState is the in-memory state of all accounts touched by a replayed
// transaction. Empty accounts are considered absent.
type WorldState map[tosca.Address]Account

func (s WorldState) Equal(other WorldState) bool {
	return equalMapsIgnoringZero(s, other, func(a, b Account) bool {
		return a.Equal(&b)
	})
}

func (s WorldState) Clone() WorldState {
	if s == nil {
		return nil
	}
	res := make(WorldState, len(s))
	for k, v := range s {
		res[k] = v.Clone()
	}
	return res
}

// Diff lists the differences between two states, one line per field.
func (s WorldState) Diff(other WorldState) []string {
	return diffMaps("", s, other, func(address tosca.Address, a, b Account) []string {
		if a.Equal(&b) {
			return nil
		}
		return a.Diff(fmt.Sprintf("%v/", address), &b)
	})
}

// Account is a single account of the world state.
type Account struct {
	Balance tosca.Value
	Nonce   uint64
	Code    tosca.Code
	Storage Storage
}

func (a *Account) IsEmpty() bool {
	return a.Balance == (tosca.Value{}) && a.Nonce == 0 && len(a.Code) == 0
}

func (a *Account) Equal(other *Account) bool {
	return a.Balance == other.Balance &&
		a.Nonce == other.Nonce &&
		bytes.Equal(a.Code, other.Code) &&
		a.Storage.Equal(other.Storage)
}

func (a *Account) Clone() Account {
	return Account{
		Balance: a.Balance,
		Nonce:   a.Nonce,
		Code:    bytes.Clone(a.Code),
		Storage: a.Storage.Clone(),
	}
}

func (a *Account) Diff(prefix string, other *Account) []string {
	var res []string
	if a.Balance != other.Balance {
		res = append(res, fmt.Sprintf("different balance: %v != %v", a.Balance, other.Balance))
	}
	if a.Nonce != other.Nonce {
		res = append(res, fmt.Sprintf("different nonce: %v != %v", a.Nonce, other.Nonce))
	}
	if !bytes.Equal(a.Code, other.Code) {
		res = append(res, fmt.Sprintf("different code: 0x%x != 0x%x", a.Code, other.Code))
	}
	res = append(res, a.Storage.Diff("storage/", other.Storage)...)
	for i, diff := range res {
		res[i] = prefix + diff
	}
	return res
}

// Storage is the storage of an account. Zero-valued entries are ignored.
type Storage map[tosca.Key]tosca.Word

func (s Storage) Equal(other Storage) bool {
	return equalMapsIgnoringZero(s, other, func(a, b tosca.Word) bool {
		return a == b
	})
}

func (s Storage) Clone() Storage {
	return maps.Clone(s)
}

func (s Storage) Diff(prefix string, other Storage) []string {
	return diffMaps(prefix, s, other, func(k tosca.Key, a, b tosca.Word) []string {
		if a == b {
			return nil
		}
		return []string{fmt.Sprintf("different value for key %v: %v != %v", k, a, b)}
	})
}

func equalMapsIgnoringZero[K comparable, V any](a, b map[K]V, equal func(V, V) bool) bool {
	for k, v := range a {
		if !equal(v, b[k]) {
			return false
		}
	}
	for k, v := range b {
		if !equal(v, a[k]) {
			return false
		}
	}
	return true
}

func diffMaps[K comparable, V any](prefix string, a, b map[K]V, diff func(K, V, V) []string) []string {
	var diffs []string
	for k, v := range a {
		diffs = append(diffs, diff(k, v, b[k])...)
	}
	for k, v := range b {
		if _, overlap := a[k]; !overlap {
			diffs = append(diffs, diff(k, a[k], v)...)
		}
	}
	for i, diff := range diffs {
		diffs[i] = prefix + diff
	}
	return diffs
}
