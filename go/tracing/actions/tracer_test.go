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
	"testing"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tosca/vm"
	"github.com/ethereum/go-ethereum/log"
	"go.uber.org/mock/gomock"
)

func TestTracer_DisabledTracerIgnoresAllFrames(t *testing.T) {
	ctrl := gomock.NewController(t)
	// Any interaction with the frame or resolver fails the test.
	frame := NewMockFrame(ctrl)
	resolver := NewMockAddressResolver(ctrl)

	tracer := NewTracer(Config{EmitActions: false}, resolver)
	tracer.Init(frame)
	tracer.EnterFrame(frame)
	tracer.ExitPrecompile(frame, System)
	tracer.ExitFrame(frame)
	tracer.Finish(frame)

	if actions := tracer.Actions(); actions != nil {
		t.Errorf("disabled tracer should not produce actions, got %v", actions)
	}
}

func TestTracer_RecordsTopLevelCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	frame := NewMockFrame(ctrl)
	resolver := NewMockAddressResolver(ctrl)

	sender := tosca.Address{19: 1}
	receiver := tosca.Address{19: 2}
	frame.EXPECT().OriginatorAddress().Return(sender)
	frame.EXPECT().Type().Return(MessageCall)
	frame.EXPECT().ContractAddress().Return(receiver)
	frame.EXPECT().RemainingGas().Return(tosca.Gas(900))
	frame.EXPECT().Value().Return(tosca.NewValue(1))
	frame.EXPECT().Input().Return(tosca.Data{1})
	frame.EXPECT().Depth().Return(0)
	resolver.EXPECT().ResolveAccount(sender).Return(EntityID{Num: 1}, true)
	resolver.EXPECT().ResolveContract(receiver).Return(EntityID{Num: 2}, true)

	tracer := NewTracer(DefaultConfig(), resolver)
	tracer.Init(frame)

	frame.EXPECT().State().Return(CodeSuccess)
	frame.EXPECT().RemainingGas().Return(tosca.Gas(600))
	frame.EXPECT().Output().Return(tosca.Data{2})
	tracer.ExitFrame(frame)

	actions := tracer.Actions()
	if len(actions) != 1 {
		t.Fatalf("unexpected number of actions: %d", len(actions))
	}
	if actions[0].GasUsed != 300 || *actions[0].RecipientContract != (EntityID{Num: 2}) {
		t.Errorf("unexpected action %v", PrettyPrint(&actions[0]))
	}

	// a balanced transaction is audited without touching the frame
	tracer.Finish(frame)
	if len(tracer.Actions()) != 0 {
		t.Errorf("finish should reset the tracer")
	}
}

func TestTracer_ValidationFlagIsForwarded(t *testing.T) {
	tests := map[string]struct {
		validate bool
		logged   int
	}{
		"validation enabled":  {validate: true, logged: 1},
		"validation disabled": {validate: false, logged: 0},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			handler := &recordingHandler{}
			tracer := NewTracer(Config{
				EmitActions:     true,
				ValidateActions: test.validate,
				Logger:          log.NewLogger(handler),
				LogLevel:        log.LevelWarn,
			}, newResolverWithEntities())

			parent := newTopLevelFrame(MessageCall, contract, 1000)
			tracer.Init(parent)
			child := parent.spawn(vm.SELFDESTRUCT, account, 10)
			tracer.EnterFrame(parent)
			child.state = CodeSuccess
			tracer.ExitFrame(child)
			parent.leave()
			parent.state = CodeSuccess
			tracer.ExitFrame(parent)
			tracer.Finish(parent)

			if got := len(handler.records); test.logged != got {
				t.Errorf("unexpected number of log records, wanted %d, got %d", test.logged, got)
			}
		})
	}
}

func TestTracer_PrecompileWithoutValidationIsReported(t *testing.T) {
	handler := &recordingHandler{}
	tracer := NewTracer(Config{
		EmitActions: true,
		Logger:      log.NewLogger(handler),
		LogLevel:    log.LevelDebug,
	}, newResolverWithEntities())

	parent := newTopLevelFrame(MessageCall, contract, 1000)
	tracer.Init(parent)
	child := parent.spawn(vm.STATICCALL, tosca.Address{19: 2}, 10)
	tracer.EnterFrame(parent)
	child.state = CodeSuccess
	tracer.ExitPrecompile(child, Precompile)
	parent.leave()
	parent.state = CodeSuccess
	tracer.ExitFrame(parent)

	actions := tracer.Actions()
	if len(actions) != 2 || actions[1].CallType != Precompile {
		t.Fatalf("unexpected actions %v", actions)
	}
	tracer.Finish(parent)
	if len(handler.records) != 1 || handler.records[0].Level != log.LevelDebug {
		t.Errorf("expected a single debug record, got %d", len(handler.records))
	}
}

func TestTracer_NilLoggerDefaultsToRoot(t *testing.T) {
	tracer := NewTracer(Config{EmitActions: true}, newTestResolver())
	if tracer.config.Logger == nil {
		t.Errorf("tracer should default to the root logger")
	}
}
