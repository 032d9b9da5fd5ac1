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
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/Fantom-foundation/actiontrace/go/processor/floria"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
	"github.com/ethereum/go-ethereum/log"
	"pgregory.net/rand"
)

// FuzzConfig controls a fuzzing campaign.
type FuzzConfig struct {
	Runs      int
	Seed      uint64
	Generator GeneratorConfig
	// Logger receives a message for every scenario violating a property.
	Logger log.Logger
	// Progress, if set, is called after every ProgressInterval runs.
	Progress func(runs int, elapsed time.Duration)
}

const ProgressInterval = 1000

// FuzzReport summarizes a fuzzing campaign.
type FuzzReport struct {
	Runs      int
	Actions   int
	Invalid   int // < actions failing validation
	Anomalies int // < anomalies reported by the tracer
	Outcomes  map[string]int
	Failures  []string
	Duration  time.Duration
}

// Fuzz runs random scenarios and checks the properties every recorded call
// tree must satisfy: actions are in pre-order, replays are deterministic and
// no anomalies are reported. Violations are collected in the report.
func Fuzz(ctx context.Context, config FuzzConfig) (FuzzReport, error) {
	logger := config.Logger
	if logger == nil {
		logger = log.Root()
	}
	counter := &anomalyCounter{}
	processorConfig := floria.DefaultConfig()
	processorConfig.Tracing.Logger = log.NewLogger(counter)

	rnd := rand.New(config.Seed)
	report := FuzzReport{Outcomes: map[string]int{}}
	start := time.Now()
	for i := 0; i < config.Runs; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		scenario := GenerateScenario(rnd, config.Generator)

		before := counter.count.Load()
		first, err := scenario.Run(processorConfig)
		if err != nil {
			return report, fmt.Errorf("failed to run %s: %w", scenario.Name, err)
		}
		anomalies := int(counter.count.Load() - before)

		report.Runs++
		report.Actions += len(first.Actions)
		report.Anomalies += anomalies
		for i := range first.Actions {
			action := &first.Actions[i]
			if !actions.IsValid(action) {
				report.Invalid++
			}
			report.Outcomes[outcomeOf(action)]++
		}

		var failures []string
		if err := CheckPreOrder(first.Actions); err != nil {
			failures = append(failures, err.Error())
		}
		if anomalies > 0 {
			failures = append(failures, fmt.Sprintf("%d anomalies reported", anomalies))
		}
		second, err := scenario.Run(processorConfig)
		if err != nil {
			return report, fmt.Errorf("failed to rerun %s: %w", scenario.Name, err)
		}
		if equal, err := sameDigest(first, second); err != nil {
			return report, err
		} else if !equal {
			failures = append(failures, "replay is not deterministic")
		}

		for _, failure := range failures {
			logger.Warn("Property violated", "scenario", scenario.Name, "failure", failure)
			report.Failures = append(report.Failures, fmt.Sprintf("%s: %s", scenario.Name, failure))
		}
		if config.Progress != nil && report.Runs%ProgressInterval == 0 {
			config.Progress(report.Runs, time.Since(start))
		}
	}
	report.Duration = time.Since(start)
	return report, nil
}

// CheckPreOrder checks that the call depths of the given actions describe a
// tree listed in pre-order.
func CheckPreOrder(recorded []actions.Action) error {
	for i, action := range recorded {
		if i == 0 {
			if action.CallDepth != 0 {
				return fmt.Errorf("first action has depth %d", action.CallDepth)
			}
			continue
		}
		if action.CallDepth < 1 {
			return fmt.Errorf("action %d has depth %d after the top-level action", i, action.CallDepth)
		}
		if prev := recorded[i-1].CallDepth; action.CallDepth > prev+1 {
			return fmt.Errorf("action %d has depth %d, following an action of depth %d", i, action.CallDepth, prev)
		}
	}
	return nil
}

// outcomeOf classifies an action by the way its frame ended.
func outcomeOf(action *actions.Action) string {
	switch {
	case action.Error != nil:
		if len(action.Error) == 0 {
			return "halt"
		}
		return string(action.Error)
	case action.RevertReason != nil:
		return "revert"
	default:
		return "success"
	}
}

func sameDigest(a, b Result) (bool, error) {
	first, err := Digest(a.Actions)
	if err != nil {
		return false, err
	}
	second, err := Digest(b.Actions)
	if err != nil {
		return false, err
	}
	return first == second, nil
}

// anomalyCounter is a log handler counting the records it receives.
type anomalyCounter struct {
	count atomic.Int64
}

func (c *anomalyCounter) Enabled(context.Context, slog.Level) bool {
	return true
}

func (c *anomalyCounter) Handle(context.Context, slog.Record) error {
	c.count.Add(1)
	return nil
}

func (c *anomalyCounter) WithAttrs([]slog.Attr) slog.Handler {
	return c
}

func (c *anomalyCounter) WithGroup(string) slog.Handler {
	return c
}
