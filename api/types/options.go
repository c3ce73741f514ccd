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

// Option is a function type that modifies the Config.
type Option func(*Config)

// WithLogger sets the logger of the Config.
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithOnDebug sets the debug event hook of the Config.
func WithOnDebug(onDebug func(componentType string, eventType string, data string, err error)) Option {
	return func(c *Config) {
		c.OnDebug = onDebug
	}
}

// WithScriptMaxExecutionTime sets the in-process script execution limit.
func WithScriptMaxExecutionTime(d time.Duration) Option {
	return func(c *Config) {
		c.ScriptMaxExecutionTime = d
	}
}

// WithFilterRegistry sets the registry used to resolve nested filter records.
func WithFilterRegistry(registry FilterRegistry) Option {
	return func(c *Config) {
		c.FilterRegistry = registry
	}
}

// WithInputRegistry sets the registry used to resolve input records.
func WithInputRegistry(registry InputRegistry) Option {
	return func(c *Config) {
		c.InputRegistry = registry
	}
}

// WithBatcherRegistry sets the registry used to resolve batcher records.
func WithBatcherRegistry(registry BatcherRegistry) Option {
	return func(c *Config) {
		c.BatcherRegistry = registry
	}
}
