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
	"testing"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
	"go.uber.org/mock/gomock"
)

func TestWorldStateResolver_ClassifiesAccounts(t *testing.T) {
	tests := map[string]struct {
		exists   bool
		codeSize int
		contract bool
		account  bool
	}{
		"missing":          {exists: false},
		"plain account":    {exists: true, codeSize: 0, account: true},
		"contract account": {exists: true, codeSize: 12, contract: true},
	}

	address := tosca.Address{19: 0x55}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			state := tosca.NewMockWorldState(ctrl)
			state.EXPECT().AccountExists(address).Return(test.exists).AnyTimes()
			state.EXPECT().GetCodeSize(address).Return(test.codeSize).AnyTimes()

			registry, err := NewRegistry(nil, Config{})
			if err != nil {
				t.Fatalf("failed to create registry: %v", err)
			}
			resolver := registry.Resolver(state)

			id, found := resolver.ResolveContract(address)
			if found != test.contract {
				t.Errorf("unexpected contract resolution, wanted %t, got %t", test.contract, found)
			}
			if found && id != (actions.EntityID{Num: 0x55}) {
				t.Errorf("unexpected contract id %v", id)
			}
			id, found = resolver.ResolveAccount(address)
			if found != test.account {
				t.Errorf("unexpected account resolution, wanted %t, got %t", test.account, found)
			}
			if found && id != (actions.EntityID{Num: 0x55}) {
				t.Errorf("unexpected account id %v", id)
			}
		})
	}
}

func TestRegistry_IdentifyResolvesAliases(t *testing.T) {
	alias := tosca.Address{0: 0xaa, 19: 0x01}
	table := NewAliasTable(map[tosca.Address]actions.EntityID{
		alias: {Shard: 0, Realm: 0, Num: 1001},
	})

	for _, size := range []int{-1, 0, 1} {
		registry, err := NewRegistry(table, Config{CacheSize: size})
		if err != nil {
			t.Fatalf("failed to create registry: %v", err)
		}
		for i := 0; i < 2; i++ {
			if want, got := "0.0.1001", registry.Identify(alias).String(); want != got {
				t.Errorf("unexpected identity of alias, wanted %v, got %v", want, got)
			}
			if want, got := "0.0.18", registry.Identify(tosca.Address{19: 18}).String(); want != got {
				t.Errorf("unexpected identity of long-zero address, wanted %v, got %v", want, got)
			}
		}
	}
}

// countingAliases counts lookups to observe the effect of the cache.
type countingAliases struct {
	lookups int
}

func (a *countingAliases) ResolveForEVM(address tosca.Address) tosca.Address {
	a.lookups++
	return address
}

func TestRegistry_CacheAvoidsRepeatedLookups(t *testing.T) {
	tests := map[string]struct {
		cacheSize int
		lookups   int
	}{
		"without cache": {cacheSize: -1, lookups: 6},
		"small cache":   {cacheSize: 1, lookups: 4},
		"large cache":   {cacheSize: 16, lookups: 2},
	}

	first := tosca.Address{19: 1}
	second := tosca.Address{19: 2}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			aliases := &countingAliases{}
			registry, err := NewRegistry(aliases, Config{CacheSize: test.cacheSize})
			if err != nil {
				t.Fatalf("failed to create registry: %v", err)
			}
			registry.Identify(first)
			registry.Identify(first)
			registry.Identify(second)
			registry.Identify(second)
			registry.Identify(first)
			registry.Identify(second)
			if aliases.lookups != test.lookups {
				t.Errorf("unexpected number of lookups, wanted %d, got %d", test.lookups, aliases.lookups)
			}
		})
	}
}

func TestAliasTable_UnknownAddressesAreUnchanged(t *testing.T) {
	alias := tosca.Address{0: 0xaa}
	table := NewAliasTable(map[tosca.Address]actions.EntityID{alias: {Num: 7}})
	other := tosca.Address{0: 0xbb}
	if got := table.ResolveForEVM(other); got != other {
		t.Errorf("unexpected resolution of unknown address: %v", got)
	}
	if got, want := table.ResolveForEVM(alias), (actions.EntityID{Num: 7}).Address(); got != want {
		t.Errorf("unexpected resolution of alias, wanted %v, got %v", want, got)
	}
	if aliases := table.Aliases(); len(aliases) != 1 || aliases[0] != alias {
		t.Errorf("unexpected aliases %v", aliases)
	}
}
