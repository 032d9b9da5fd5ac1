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
	lru "github.com/hashicorp/golang-lru/v2"
)

// Config contains the configuration options of a Registry.
type Config struct {
	// CacheSize is the maximum number of identities retained in the cache.
	// If set to 0, a default size is used. If negative, no cache is used.
	CacheSize int
}

const defaultCacheSize = 1 << 12

// Aliases maps alias addresses to the long-zero address of the entity they
// refer to. Addresses without alias are returned unchanged.
type Aliases interface {
	ResolveForEVM(tosca.Address) tosca.Address
}

// Registry derives entity identities from addresses. A registry may be
// shared by the resolvers of consecutive transactions and is safe for
// concurrent use as long as its aliases are.
type Registry struct {
	aliases Aliases
	cache   *lru.Cache[tosca.Address, actions.EntityID]
}

// NewRegistry creates a registry resolving addresses through the given
// aliases. If aliases is nil, only long-zero addresses are supported.
func NewRegistry(aliases Aliases, config Config) (*Registry, error) {
	if aliases == nil {
		aliases = NewAliasTable(nil)
	}
	if config.CacheSize == 0 {
		config.CacheSize = defaultCacheSize
	}

	var cache *lru.Cache[tosca.Address, actions.EntityID]
	if config.CacheSize > 0 {
		var err error
		cache, err = lru.New[tosca.Address, actions.EntityID](config.CacheSize)
		if err != nil {
			return nil, err
		}
	}
	return &Registry{
		aliases: aliases,
		cache:   cache,
	}, nil
}

// Identify returns the identity of the entity at the given address.
func (r *Registry) Identify(address tosca.Address) actions.EntityID {
	if r.cache == nil {
		return actions.EntityIDFromAddress(r.aliases.ResolveForEVM(address))
	}
	if id, found := r.cache.Get(address); found {
		return id
	}
	id := actions.EntityIDFromAddress(r.aliases.ResolveForEVM(address))
	r.cache.Add(address, id)
	return id
}

// Resolver creates an address resolver classifying addresses by the
// accounts present in the given state.
func (r *Registry) Resolver(state tosca.WorldState) *WorldStateResolver {
	return &WorldStateResolver{
		registry: r,
		state:    state,
	}
}

// WorldStateResolver resolves addresses of accounts in a world state. An
// existing account with code is a contract, one without code a plain
// account.
type WorldStateResolver struct {
	registry *Registry
	state    tosca.WorldState
}

var _ actions.AddressResolver = (*WorldStateResolver)(nil)

func (r *WorldStateResolver) ResolveContract(address tosca.Address) (actions.EntityID, bool) {
	if !r.state.AccountExists(address) || r.state.GetCodeSize(address) == 0 {
		return actions.EntityID{}, false
	}
	return r.registry.Identify(address), true
}

func (r *WorldStateResolver) ResolveAccount(address tosca.Address) (actions.EntityID, bool) {
	if !r.state.AccountExists(address) || r.state.GetCodeSize(address) != 0 {
		return actions.EntityID{}, false
	}
	return r.registry.Identify(address), true
}
