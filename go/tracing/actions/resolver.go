// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package actions

import "github.com/Fantom-foundation/actiontrace/go/tosca"

//go:generate mockgen -source resolver.go -destination resolver_mock.go -package actions

// AddressResolver maps EVM addresses to the identities of tracked entities.
type AddressResolver interface {
	// ResolveContract returns the identity of the contract at the given
	// address, if there is one.
	ResolveContract(tosca.Address) (EntityID, bool)
	// ResolveAccount returns the identity of the code-less account at the
	// given address, if there is one.
	ResolveAccount(tosca.Address) (EntityID, bool)
}

// contractIdentity resolves the identity of an executing or newly created
// contract. Untracked addresses fall back to their long-zero decoding.
func contractIdentity(resolver AddressResolver, address tosca.Address) EntityID {
	if id, found := resolver.ResolveContract(address); found {
		return id
	}
	return EntityIDFromAddress(address)
}

// accountIdentity resolves the identity of an externally owned account.
// Untracked addresses fall back to their long-zero decoding.
func accountIdentity(resolver AddressResolver, address tosca.Address) EntityID {
	if id, found := resolver.ResolveAccount(address); found {
		return id
	}
	return EntityIDFromAddress(address)
}
