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

// IsPrecompiledContract reports whether the address is within the range of
// addresses reserved for the Ethereum precompiled contracts (0x01-0x0a).
func IsPrecompiledContract(recipient Address) bool {
	for i := 0; i < 19; i++ {
		if recipient[i] != 0 {
			return false
		}
	}
	return 1 <= recipient[19] && recipient[19] <= 10
}
