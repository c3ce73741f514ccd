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

package types

import "time"

// Config carries the run-level collaborators handed to every component at
// Init time. It replaces any global state: logging, debug events and
// registry lookups all go through the Config a run was built with.
type Config struct {
	// OnDebug is a one-way notification hook for component debug events,
	// for example the command line a script filter executed and whether the
	// subprocess produced stdout/stderr output. It is never a control
	// interface. Optional.
	// - componentType: the symbolic type of the emitting component.
	// - eventType: one of the Event* constants.
	// - data: event payload.
	// - err: error information, if any.
	OnDebug func(componentType string, eventType string, data string, err error)
	// Logger is the logging interface, defaulting to DefaultLogger().
	Logger Logger
	// ScriptMaxExecutionTime is the maximum execution time for in-process
	// scripts (the js filter), defaulting to 2000 milliseconds.
	// External script filters carry their own timeout in their declarative
	// configuration instead.
	ScriptMaxExecutionTime time.Duration
	// FilterRegistry resolves nested filter records, for example the
	// children of an aggregate filter. Defaults to the built-in registry.
	FilterRegistry FilterRegistry
	// InputRegistry resolves input records. Defaults to the built-in registry.
	InputRegistry InputRegistry
	// BatcherRegistry resolves batcher records. Defaults to the built-in registry.
	BatcherRegistry BatcherRegistry
}

// NewConfig creates a new Config with default values and applies the
// provided options.
func NewConfig(opts ...Option) Config {
	c := &Config{
		ScriptMaxExecutionTime: time.Millisecond * 2000,
		Logger:                 DefaultLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return *c
}
