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
	"log/slog"

	"github.com/ethereum/go-ethereum/log"
)

// Config summarizes the settings of a Tracer.
type Config struct {
	// EmitActions enables the tracking of actions. If disabled, all tracer
	// operations are no-ops.
	EmitActions bool
	// ValidateActions enables the validation of finalized actions.
	ValidateActions bool
	// Logger receives the anomalies of transactions. Defaults to the root logger.
	Logger log.Logger
	// LogLevel is the severity anomalies are reported with.
	LogLevel slog.Level
}

// DefaultConfig tracks and validates actions and reports anomalies as warnings.
func DefaultConfig() Config {
	return Config{
		EmitActions:     true,
		ValidateActions: true,
		Logger:          log.Root(),
		LogLevel:        log.LevelWarn,
	}
}

// Tracer is the entry point for hosts to report frame transitions of a
// transaction. A Tracer may be reused for consecutive transactions, but is
// not safe for concurrent use.
type Tracer struct {
	config Config
	stack  *ActionStack
}

func NewTracer(config Config, resolver AddressResolver) *Tracer {
	if config.Logger == nil {
		config.Logger = log.Root()
	}
	return &Tracer{
		config: config,
		stack:  NewActionStack(resolver),
	}
}

// Init records the top-level frame of a transaction.
func (t *Tracer) Init(frame Frame) {
	if !t.config.EmitActions {
		return
	}
	t.stack.PushTopLevel(frame)
}

// EnterFrame records the child frame just spawned by the given parent.
func (t *Tracer) EnterFrame(parent Frame) {
	if !t.config.EmitActions {
		return
	}
	t.stack.PushIntermediate(parent)
}

// ExitFrame completes the action of a frame ending its execution.
func (t *Tracer) ExitFrame(frame Frame) {
	if !t.config.EmitActions {
		return
	}
	t.stack.Finalize(frame, t.validation())
}

// ExitPrecompile completes the action of a frame served by a precompiled or
// system contract.
func (t *Tracer) ExitPrecompile(frame Frame, callType CallType) {
	if !t.config.EmitActions {
		return
	}
	t.stack.FinalizeAsPrecompile(frame, callType, t.validation())
}

// Actions returns the actions recorded for the current transaction.
func (t *Tracer) Actions() []Action {
	if !t.config.EmitActions {
		return nil
	}
	return t.stack.Actions()
}

// Finish audits the current transaction and resets the tracer.
func (t *Tracer) Finish(frame Frame) {
	if !t.config.EmitActions {
		return
	}
	t.stack.SanitizeAndLogAnomalies(frame, t.config.Logger, t.config.LogLevel)
}

func (t *Tracer) validation() Validation {
	return Validation(t.config.ValidateActions)
}
