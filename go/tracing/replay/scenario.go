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
	"fmt"
	"os"
	"strings"

	"github.com/Fantom-foundation/actiontrace/go/processor/floria"
	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
	"github.com/Fantom-foundation/actiontrace/go/tracing/resolver"
	"github.com/holiman/uint256"
)

// Amount is a currency value encoded as a decimal string in JSON.
type Amount tosca.Value

func NewAmount(value uint64) Amount {
	return Amount(tosca.NewValue(value))
}

func (a Amount) String() string {
	return tosca.Value(a).String()
}

func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Amount) UnmarshalText(data []byte) error {
	value, err := uint256.FromDecimal(string(data))
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", data, err)
	}
	*a = Amount(tosca.ValueFromUint256(value))
	return nil
}

// AccountSpec describes an account of a scenario. Accounts with an entity
// id are aliases of that entity.
type AccountSpec struct {
	Address tosca.Address     `json:"address"`
	Entity  *actions.EntityID `json:"entity,omitempty"`
	Balance Amount            `json:"balance"`
	Nonce   uint64            `json:"nonce,omitempty"`
	Code    tosca.Data        `json:"code,omitempty"`
}

// TransactionSpec describes the transaction replayed by a scenario.
// Transactions without recipient create a contract.
type TransactionSpec struct {
	Sender    tosca.Address  `json:"sender"`
	Recipient *tosca.Address `json:"recipient,omitempty"`
	Nonce     uint64         `json:"nonce"`
	Input     tosca.Data     `json:"input,omitempty"`
	Value     Amount         `json:"value"`
	GasLimit  tosca.Gas      `json:"gasLimit"`
	GasPrice  Amount         `json:"gasPrice"`
}

// Scenario is a self-contained description of a transaction, the state it
// runs on and the programs of the contracts involved.
type Scenario struct {
	Name        string             `json:"name,omitempty"`
	Revision    tosca.Revision     `json:"revision"`
	Strict      *bool              `json:"strict,omitempty"` // < defaults to true
	Accounts    []AccountSpec      `json:"accounts"`
	Programs    map[string]Program `json:"programs,omitempty"`
	Transaction TransactionSpec    `json:"transaction"`
	// After lists the expected state of selected accounts after the run.
	After []AccountSpec `json:"after,omitempty"`
}

// Result summarizes the outcome of running a scenario.
type Result struct {
	Receipt tosca.Receipt
	Actions []actions.Action
	State   WorldState
}

// LoadScenario reads a scenario from a JSON file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return scenario, nil
}

// ParseScenario decodes a scenario from its JSON form.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.validate(); err != nil {
		return nil, err
	}
	return &scenario, nil
}

func (s *Scenario) validate() error {
	seen := map[tosca.Address]bool{}
	for _, account := range s.Accounts {
		if seen[account.Address] {
			return fmt.Errorf("duplicate account %v", account.Address)
		}
		seen[account.Address] = true
	}
	if s.Transaction.GasLimit < 0 {
		return fmt.Errorf("negative gas limit: %d", s.Transaction.GasLimit)
	}
	return nil
}

// IsStrict reports whether calls to missing addresses are rejected.
func (s *Scenario) IsStrict() bool {
	return s.Strict == nil || *s.Strict
}

// State returns the initial world state of the scenario.
func (s *Scenario) State() WorldState {
	return accountsToState(s.Accounts)
}

// Aliases returns the alias table defined by the accounts of the scenario.
func (s *Scenario) Aliases() *resolver.AliasTable {
	aliases := map[tosca.Address]actions.EntityID{}
	for _, account := range s.Accounts {
		if account.Entity != nil {
			aliases[account.Address] = *account.Entity
		}
	}
	return resolver.NewAliasTable(aliases)
}

// Interpreter creates the interpreter running the programs of the scenario.
func (s *Scenario) Interpreter() (tosca.Interpreter, error) {
	programs := make(map[string]Program, len(s.Programs))
	for code, program := range s.Programs {
		programs[strings.ToLower(code)] = program
	}
	return tosca.NewInterpreter(InterpreterName, programs)
}

// Run replays the transaction of the scenario. The tracing, resolver and
// logging settings are taken from the given configuration.
func (s *Scenario) Run(config floria.Config) (Result, error) {
	interpreter, err := s.Interpreter()
	if err != nil {
		return Result{}, err
	}
	config.StrictAddressChecks = s.IsStrict()
	config.Aliases = s.Aliases()
	processor, err := floria.NewProcessor(interpreter, config)
	if err != nil {
		return Result{}, err
	}

	context := NewContext(s.State())
	receipt, recorded, err := processor.RunWithActions(s.blockParameters(), s.transaction(), context)
	if err != nil {
		return Result{}, fmt.Errorf("failed to run transaction: %w", err)
	}
	return Result{
		Receipt: receipt,
		Actions: recorded,
		State:   context.State(),
	}, nil
}

// Check compares the accounts listed as expected outcome with the given
// result and describes every difference.
func (s *Scenario) Check(result Result) []string {
	want := accountsToState(s.After)
	got := WorldState{}
	for address := range want {
		if account, found := result.State[address]; found {
			got[address] = account
		}
	}
	return want.Diff(got)
}

func (s *Scenario) blockParameters() tosca.BlockParameters {
	return tosca.BlockParameters{
		BlockNumber: 1,
		GasLimit:    s.Transaction.GasLimit,
		Revision:    s.Revision,
	}
}

func (s *Scenario) transaction() tosca.Transaction {
	tx := s.Transaction
	return tosca.Transaction{
		Sender:    tx.Sender,
		Recipient: tx.Recipient,
		Nonce:     tx.Nonce,
		Input:     tx.Input,
		Value:     tosca.Value(tx.Value),
		GasLimit:  tx.GasLimit,
		GasPrice:  tosca.Value(tx.GasPrice),
	}
}

func accountsToState(accounts []AccountSpec) WorldState {
	state := make(WorldState, len(accounts))
	for _, account := range accounts {
		state[account.Address] = Account{
			Balance: tosca.Value(account.Balance),
			Nonce:   account.Nonce,
			Code:    tosca.Code(account.Code),
		}
	}
	return state
}
