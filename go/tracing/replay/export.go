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
	"encoding/json"
	"io"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
	"golang.org/x/crypto/sha3"
)

// Export is the externally visible summary of a replayed transaction.
type Export struct {
	Name            string           `json:"name,omitempty"`
	Success         bool             `json:"success"`
	GasUsed         tosca.Gas        `json:"gasUsed"`
	Output          tosca.Data       `json:"output"`
	ContractAddress *tosca.Address   `json:"contractAddress,omitempty"`
	Actions         []actions.Action `json:"actions"`
	Digest          string           `json:"digest"`
}

// NewExport summarizes the given result. The digest covers the JSON
// encoding of the actions and identifies the call tree of a transaction.
func NewExport(name string, result Result) (Export, error) {
	recorded := result.Actions
	if recorded == nil {
		recorded = []actions.Action{}
	}
	digest, err := Digest(recorded)
	if err != nil {
		return Export{}, err
	}
	output := result.Receipt.Output
	if output == nil {
		output = tosca.Data{}
	}
	return Export{
		Name:            name,
		Success:         result.Receipt.Success,
		GasUsed:         result.Receipt.GasUsed,
		Output:          output,
		ContractAddress: result.Receipt.ContractAddress,
		Actions:         recorded,
		Digest:          digest.String(),
	}, nil
}

// Digest computes the Keccak-256 hash of the JSON encoding of the actions.
func Digest(recorded []actions.Action) (tosca.Hash, error) {
	encoded, err := json.Marshal(recorded)
	if err != nil {
		return tosca.Hash{}, err
	}
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(encoded)
	var res tosca.Hash
	copy(res[:], hasher.Sum(nil))
	return res, nil
}

// Write encodes the export as indented JSON.
func (e Export) Write(out io.Writer) error {
	encoder := json.NewEncoder(out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(e)
}
