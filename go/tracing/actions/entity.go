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

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
)

// EntityID identifies an account or contract tracked by the ledger.
type EntityID struct {
	Shard uint32
	Realm uint64
	Num   uint64
}

// EntityIDFromAddress decodes the long-zero layout of an address: 4 bytes
// shard, 8 bytes realm and 8 bytes entity number, all big-endian.
func EntityIDFromAddress(address tosca.Address) EntityID {
	return EntityID{
		Shard: binary.BigEndian.Uint32(address[0:4]),
		Realm: binary.BigEndian.Uint64(address[4:12]),
		Num:   binary.BigEndian.Uint64(address[12:20]),
	}
}

// IsLongZero reports whether the address is the long-zero encoding of an
// entity in shard 0 and realm 0.
func IsLongZero(address tosca.Address) bool {
	for _, b := range address[:12] {
		if b != 0 {
			return false
		}
	}
	return true
}

// Address returns the long-zero address of the entity.
func (id EntityID) Address() tosca.Address {
	var res tosca.Address
	binary.BigEndian.PutUint32(res[0:4], id.Shard)
	binary.BigEndian.PutUint64(res[4:12], id.Realm)
	binary.BigEndian.PutUint64(res[12:20], id.Num)
	return res
}

func (id EntityID) String() string {
	return fmt.Sprintf("%d.%d.%d", id.Shard, id.Realm, id.Num)
}

func (id EntityID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *EntityID) UnmarshalText(data []byte) error {
	parsed, err := ParseEntityID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// ParseEntityID parses the shard.realm.num notation of an entity.
func ParseEntityID(text string) (EntityID, error) {
	parts := strings.Split(text, ".")
	if len(parts) != 3 {
		return EntityID{}, fmt.Errorf("invalid entity id %q, expected shard.realm.num", text)
	}
	shard, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return EntityID{}, fmt.Errorf("invalid shard in %q: %w", text, err)
	}
	realm, err := strconv.ParseUint(parts[1], 10, 64)
	if err != nil {
		return EntityID{}, fmt.Errorf("invalid realm in %q: %w", text, err)
	}
	num, err := strconv.ParseUint(parts[2], 10, 64)
	if err != nil {
		return EntityID{}, fmt.Errorf("invalid number in %q: %w", text, err)
	}
	return EntityID{Shard: uint32(shard), Realm: realm, Num: num}, nil
}
