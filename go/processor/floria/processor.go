// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package floria

import (
	"fmt"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
	"github.com/Fantom-foundation/actiontrace/go/tracing/resolver"

	"github.com/ethereum/go-ethereum/log"
)

const (
	TxGas                   = 21_000
	TxGasContractCreation   = 53_000
	TxDataNonZeroGasEIP2028 = 16
	TxDataZeroGasEIP2028    = 4
)

// Config summarizes the settings of a Processor.
type Config struct {
	// Tracing configures the action tracer attached to every transaction.
	Tracing actions.Config
	// StrictAddressChecks halts frames calling accounts that do not exist
	// with an INVALID_SOLIDITY_ADDRESS halt reason.
	StrictAddressChecks bool
	// Aliases maps EVM addresses to the accounts they are aliasing. Optional.
	Aliases resolver.Aliases
	// Resolver configures the resolution of entity identities.
	Resolver resolver.Config
}

func DefaultConfig() Config {
	return Config{
		Tracing:             actions.DefaultConfig(),
		StrictAddressChecks: true,
	}
}

// Processor executes transactions and records the call actions performed by
// each of them.
type Processor struct {
	interpreter tosca.Interpreter
	config      Config
	registry    *resolver.Registry
	logger      log.Logger
}

var _ tosca.Processor = (*Processor)(nil)

func NewProcessor(interpreter tosca.Interpreter, config Config) (*Processor, error) {
	registry, err := resolver.NewRegistry(config.Aliases, config.Resolver)
	if err != nil {
		return nil, fmt.Errorf("failed to create address registry: %w", err)
	}
	logger := config.Tracing.Logger
	if logger == nil {
		logger = log.Root()
	}
	return &Processor{
		interpreter: interpreter,
		config:      config,
		registry:    registry,
		logger:      logger,
	}, nil
}

func (p *Processor) Run(
	blockParams tosca.BlockParameters,
	transaction tosca.Transaction,
	context tosca.TransactionContext,
) (tosca.Receipt, error) {
	receipt, _, err := p.RunWithActions(blockParams, transaction, context)
	return receipt, err
}

// RunWithActions executes the given transaction and returns its receipt
// together with the actions it performed. Transactions rejected before
// their execution started have no actions.
func (p *Processor) RunWithActions(
	blockParams tosca.BlockParameters,
	transaction tosca.Transaction,
	context tosca.TransactionContext,
) (tosca.Receipt, []actions.Action, error) {
	errorReceipt := tosca.Receipt{
		Success: false,
		GasUsed: transaction.GasLimit,
	}
	gas := transaction.GasLimit

	if err := buyGas(transaction, context); err != nil {
		p.reject(transaction, err)
		return errorReceipt, nil, nil
	}

	intrinsicGas := setupGasBilling(transaction)
	if gas < intrinsicGas {
		p.reject(transaction, fmt.Errorf("intrinsic gas too low: %v < %v", gas, intrinsicGas))
		return errorReceipt, nil, nil
	}
	gas -= intrinsicGas

	if err := handleNonce(transaction, context); err != nil {
		p.reject(transaction, err)
		return errorReceipt, nil, nil
	}

	isCreate := transaction.Recipient == nil
	target := tosca.Address{}
	if isCreate {
		target = createAddress(tosca.Create, transaction.Sender, transaction.Nonce, tosca.Hash{}, tosca.Hash{})
		if hasCollision(context, target) {
			p.reject(transaction, fmt.Errorf("contract address collision at %v", target))
			return errorReceipt, nil, nil
		}
	} else {
		target = *transaction.Recipient
	}
	if !canTransferValue(context, transaction.Value, transaction.Sender, &target) {
		p.reject(transaction, fmt.Errorf("insufficient balance for transfer of %v", transaction.Value))
		return errorReceipt, nil, nil
	}

	tracer := actions.NewTracer(p.config.Tracing, p.registry.Resolver(context))
	runContext := runContext{
		TransactionContext: context,
		interpreter:        p.interpreter,
		tracer:             tracer,
		blockParameters:    blockParams,
		transactionParameters: tosca.TransactionParameters{
			Origin:   transaction.Sender,
			GasPrice: transaction.GasPrice,
		},
		strictAddressChecks: p.config.StrictAddressChecks,
	}

	var root *frame
	var result tosca.CallResult
	var err error
	snapshot := context.CreateSnapshot()
	if isCreate {
		root = newRootFrame(actions.ContractCreation, transaction.Sender, target, nil, transaction.Value, gas)
		runContext.frame = root
		tracer.Init(root)
		context.SetNonce(target, 1)
		transferValue(context, transaction.Value, transaction.Sender, target)
		result, err = runContext.runCreate(tosca.Create, tosca.Code(transaction.Input), snapshot)
	} else {
		root = newRootFrame(actions.MessageCall, transaction.Sender, target, transaction.Input, transaction.Value, gas)
		runContext.frame = root
		tracer.Init(root)
		transferValue(context, transaction.Value, transaction.Sender, target)
		result, err = runContext.runCall(tosca.Call, snapshot)
	}
	if err != nil {
		tracer.Finish(root)
		return errorReceipt, nil, err
	}

	gasUsed := gasUsed(transaction, result.GasLeft)
	refundGas(transaction, context, gasUsed)

	receipt := tosca.Receipt{
		Success: result.Success,
		Output:  result.Output,
		GasUsed: gasUsed,
	}
	if isCreate && result.Success {
		receipt.ContractAddress = &target
	}

	recorded := tracer.Actions()
	tracer.Finish(root)
	return receipt, recorded, nil
}

func (p *Processor) reject(transaction tosca.Transaction, err error) {
	p.logger.Debug("Transaction rejected", "sender", transaction.Sender, "nonce", transaction.Nonce, "err", err)
}

func gasUsed(transaction tosca.Transaction, gasLeft tosca.Gas) tosca.Gas {
	// 10% of remaining gas is charged for non-internal transactions
	if transaction.Sender != (tosca.Address{}) {
		gasLeft -= gasLeft / 10
	}

	return transaction.GasLimit - gasLeft
}

func setupGasBilling(transaction tosca.Transaction) tosca.Gas {
	var gas tosca.Gas
	if transaction.Recipient == nil {
		gas = TxGasContractCreation
	} else {
		gas = TxGas
	}

	if len(transaction.Input) > 0 {
		nonZeroBytes := tosca.Gas(0)
		for _, inputByte := range transaction.Input {
			if inputByte != 0 {
				nonZeroBytes++
			}
		}
		zeroBytes := tosca.Gas(len(transaction.Input)) - nonZeroBytes
		gas += zeroBytes * TxDataZeroGasEIP2028
		gas += nonZeroBytes * TxDataNonZeroGasEIP2028
	}

	// No overflow check for the gas computation is required although it is performed in the
	// opera version. The overflow check would be triggered in a worst case with an input
	// greater than 2^64 / 16 - 53000 = ~10^18, which is not possible with real world hardware
	return gas
}

func handleNonce(transaction tosca.Transaction, context tosca.TransactionContext) error {
	stateNonce := context.GetNonce(transaction.Sender)
	messageNonce := transaction.Nonce
	if messageNonce != stateNonce {
		return fmt.Errorf("nonce mismatch: %v != %v", messageNonce, stateNonce)
	}
	context.SetNonce(transaction.Sender, stateNonce+1)
	return nil
}

func buyGas(transaction tosca.Transaction, context tosca.TransactionContext) error {
	gas := transaction.GasPrice.Scale(uint64(transaction.GasLimit))

	// Buy gas
	senderBalance := context.GetBalance(transaction.Sender)
	if senderBalance.Cmp(gas) < 0 {
		return fmt.Errorf("insufficient balance: %v < %v", senderBalance, gas)
	}

	senderBalance = tosca.Sub(senderBalance, gas)
	context.SetBalance(transaction.Sender, senderBalance)

	return nil
}

// refundGas returns the price of the gas not used to the sender.
func refundGas(transaction tosca.Transaction, context tosca.TransactionContext, gasUsed tosca.Gas) {
	refund := transaction.GasPrice.Scale(uint64(transaction.GasLimit - gasUsed))
	context.SetBalance(transaction.Sender, tosca.Add(context.GetBalance(transaction.Sender), refund))
}
