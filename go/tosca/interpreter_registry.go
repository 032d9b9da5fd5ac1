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

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// This file provides a registry for Interpreter factories. Packages providing
// an Interpreter register a factory in their init code; tools like the replay
// CLI then pick an implementation by name.

// NewInterpreter performs a lookup for the given name (case-insensitive) in
// the registry and creates a new Interpreter using the given optional
// configuration. If no configuration is provided, the implementation uses
// its default configuration. An error is returned if no factory was
// registered under the given name.
func NewInterpreter(name string, config ...any) (Interpreter, error) {
	if len(config) > 1 {
		return nil, fmt.Errorf("invalid configuration: too many arguments")
	}
	factory := GetInterpreterFactory(name)
	if factory == nil {
		return nil, fmt.Errorf("interpreter not found: %s", name)
	}
	c := any(nil)
	if len(config) > 0 {
		c = config[0]
	}
	return factory(c)
}

// GetInterpreterFactory performs a lookup for the given name (case-insensitive)
// in the registry. The result is nil if no factory was registered under the
// given name.
func GetInterpreterFactory(name string) InterpreterFactory {
	interpreterRegistryLock.Lock()
	defer interpreterRegistryLock.Unlock()
	return interpreterRegistry[strings.ToLower(name)]
}

// GetRegisteredInterpreterNames lists the names of all registered factories
// in lexicographical order.
func GetRegisteredInterpreterNames() []string {
	interpreterRegistryLock.Lock()
	defer interpreterRegistryLock.Unlock()
	names := maps.Keys(interpreterRegistry)
	slices.Sort(names)
	return names
}

// RegisterInterpreterFactory registers a new Interpreter implementation
// to be exported for general use in the binary. The name is not case-sensitive.
// An error is returned if a factory was bound to the same name before, or the
// factory is nil.
func RegisterInterpreterFactory(name string, factory InterpreterFactory) error {
	key := strings.ToLower(name)
	if factory == nil {
		return fmt.Errorf("invalid initialization: cannot register nil-factory using `%s`", key)
	}
	interpreterRegistryLock.Lock()
	defer interpreterRegistryLock.Unlock()
	if _, found := interpreterRegistry[key]; found {
		return fmt.Errorf("invalid initialization: multiple factories registered for `%s`", key)
	}
	interpreterRegistry[key] = factory
	return nil
}

// InterpreterFactory is the type of a function that creates a new Interpreter
// using a interpreter specific configuration.
type InterpreterFactory func(config any) (Interpreter, error)

// interpreterRegistry is a global registry for Interpreter factories of
// different implementations and configurations.
var interpreterRegistry = map[string]InterpreterFactory{}

// interpreterRegistryLock to protect access to the registry.
var interpreterRegistryLock sync.Mutex
