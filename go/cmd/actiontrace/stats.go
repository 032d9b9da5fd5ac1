// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// outcomeStatistics counts the actions of traced transactions by the way
// their frames ended.
type outcomeStatistics struct {
	data map[string]int
}

func newOutcomeStatistics(outcomes map[string]int) *outcomeStatistics {
	return &outcomeStatistics{maps.Clone(outcomes)}
}

func (s *outcomeStatistics) getNumActionsFor(outcome string) int {
	return s.data[outcome]
}

func (s *outcomeStatistics) String() string {
	builder := strings.Builder{}

	outcomes := maps.Keys(s.data)
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i] < outcomes[j] })

	builder.WriteString("outcome,num_actions\n")
	for _, outcome := range outcomes {
		builder.WriteString(fmt.Sprintf("%s,%d\n", outcome, s.data[outcome]))
	}
	return builder.String()
}
