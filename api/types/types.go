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

// Package types defines the public contracts of the AutoPatch core: the
// component model, the item and filter interfaces, the engine configuration
// and the shared error taxonomy.
package types

import "context"

// Debug event types emitted through Config.OnDebug.
const (
	EventExec   = "EXEC"
	EventStdout = "STDOUT"
	EventStderr = "STDERR"
)

// Configuration is the declarative configuration of a component: the
// type-specific fields of a `{"name": ..., ...}` record with the `name`
// field already consumed by the registry.
type Configuration map[string]interface{}

// Component is the base contract implemented by every configurable component
// family member (filters, inputs, batchers).
// A registered component acts as a prototype: the registry calls New to get
// a fresh instance and Init to configure it from declarative data.
type Component interface {
	// New creates a new instance of the component.
	// Every schema run gets its own instances; no state is shared between them.
	New() Component
	// Type is the symbolic component name used in declarative records and
	// registry lookups. It is a constant of the concrete type.
	Type() string
	// Init configures the instance from the remaining fields of its
	// declarative record. It is called exactly once, right after New.
	Init(config Config, configuration Configuration) error
	// Destroy releases any resources held by the instance.
	Destroy()
}

// Input produces the initial candidate item list for a schema run.
type Input interface {
	Component
	// Items returns the full candidate set for this run.
	Items(ctx context.Context) ([]Item, error)
}

// Batch is a group of items handed to the transformation stage together,
// with presentation metadata for the eventual submission.
type Batch struct {
	Title    string
	Metadata map[string]string
	Items    []Item
}

// Batcher groups the surviving items of a run into batches.
type Batcher interface {
	Component
	Batch(items []Item) ([]Batch, error)
}

// PluginRegistry is the contract a Go plugin must export under the `Plugins`
// symbol to contribute custom components to a registry.
type PluginRegistry interface {
	Init() error
	Components() []Component
}

// FilterRegistry resolves declarative records into live filters.
type FilterRegistry interface {
	NewFromConfig(config Config, configuration Configuration) (Filter, error)
}

// InputRegistry resolves declarative records into live inputs.
type InputRegistry interface {
	NewFromConfig(config Config, configuration Configuration) (Input, error)
}

// BatcherRegistry resolves declarative records into live batchers.
type BatcherRegistry interface {
	NewFromConfig(config Config, configuration Configuration) (Batcher, error)
}
