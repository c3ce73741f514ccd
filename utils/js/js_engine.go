/*
 * Copyright 2025 The AutoPatch Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package js executes user-supplied JavaScript predicates on pooled goja
// virtual machines with an interrupt-based execution limit.
package js

import (
	"fmt"
	"sync"
	"time"

	"github.com/dop251/goja"

	"github.com/autopatch/autopatch/api/types"
)

// GojaJsEngine compiles a script once and runs its functions on VMs drawn
// from a pool, so repeated per-item evaluations do not pay compilation or
// VM construction costs.
type GojaJsEngine struct {
	vmPool           sync.Pool
	jsScript         *goja.Program
	maxExecutionTime time.Duration
}

// NewGojaJsEngine creates a new instance of the JavaScript engine.
func NewGojaJsEngine(config types.Config, jsScript string) (*GojaJsEngine, error) {
	program, err := goja.Compile("", jsScript, true)
	if err != nil {
		return nil, err
	}
	jsEngine := &GojaJsEngine{
		jsScript:         program,
		maxExecutionTime: config.ScriptMaxExecutionTime,
	}
	jsEngine.vmPool = sync.Pool{
		New: func() interface{} {
			vm := goja.New()
			if _, err := vm.RunProgram(jsEngine.jsScript); err != nil {
				return err
			}
			return vm
		},
	}
	return jsEngine, nil
}

// Execute calls the named function defined by the script and returns its
// exported result. A run exceeding the configured execution limit is
// interrupted and surfaced as an error.
func (g *GojaJsEngine) Execute(functionName string, args ...interface{}) (interface{}, error) {
	pooled := g.vmPool.Get()
	if err, ok := pooled.(error); ok {
		return nil, err
	}
	vm := pooled.(*goja.Runtime)
	defer g.vmPool.Put(vm)

	timer := time.AfterFunc(g.maxExecutionTime, func() {
		vm.Interrupt("execution timeout")
	})
	defer timer.Stop()

	fn, ok := goja.AssertFunction(vm.Get(functionName))
	if !ok {
		return nil, fmt.Errorf("js function %q not found", functionName)
	}
	values := make([]goja.Value, len(args))
	for i, arg := range args {
		values[i] = vm.ToValue(arg)
	}
	result, err := fn(goja.Undefined(), values...)
	if err != nil {
		return nil, err
	}
	return result.Export(), nil
}

// Stop releases the engine. Pooled VMs are reclaimed by the garbage
// collector.
func (g *GojaJsEngine) Stop() {
}
