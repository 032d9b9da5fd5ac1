// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package resolver

import (
	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
	"golang.org/x/exp/maps"
)

// AliasTable is an immutable set of aliases.
type AliasTable struct {
	aliases map[tosca.Address]tosca.Address
}

// NewAliasTable creates a table mapping each alias to the given entity.
func NewAliasTable(aliases map[tosca.Address]actions.EntityID) *AliasTable {
	table := make(map[tosca.Address]tosca.Address, len(aliases))
	for alias, id := range aliases {
		table[alias] = id.Address()
	}
	return &AliasTable{aliases: table}
}

func (t *AliasTable) ResolveForEVM(address tosca.Address) tosca.Address {
	if target, found := t.aliases[address]; found {
		return target
	}
	return address
}

// Aliases returns the aliased addresses of the table in arbitrary order.
func (t *AliasTable) Aliases() []tosca.Address {
	return maps.Keys(t.aliases)
}
