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

// Package schema turns a declarative schema document into live components
// and drives a run: input, filtering, batching.
package schema

import (
	"context"

	"github.com/gofrs/uuid/v5"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/components/batcher"
	"github.com/autopatch/autopatch/components/filter"
	"github.com/autopatch/autopatch/components/input"
	"github.com/autopatch/autopatch/utils/json"
)

// Definition is the declarative schema document.
type Definition struct {
	Input   types.Configuration   `json:"input"`
	Filters []types.Configuration `json:"filters"`
	Batcher types.Configuration   `json:"batcher"`
}

// Schema is a resolved schema: live component instances plus the definition
// they were built from. Every run built from the same definition behaves
// identically; instances are never shared between schemas.
type Schema struct {
	config     types.Config
	definition Definition
	input      types.Input
	filters    []types.Filter
	batcher    types.Batcher
}

// FromJSON resolves a schema document through the component registries
// carried on the config, falling back to the built-in registries.
func FromJSON(config types.Config, def []byte) (*Schema, error) {
	var definition Definition
	if err := json.Unmarshal(def, &definition); err != nil {
		return nil, err
	}
	return FromDefinition(config, definition)
}

// FromDefinition resolves an already-parsed schema document.
func FromDefinition(config types.Config, definition Definition) (*Schema, error) {
	inputRegistry := config.InputRegistry
	if inputRegistry == nil {
		inputRegistry = input.Registry
	}
	filterRegistry := config.FilterRegistry
	if filterRegistry == nil {
		filterRegistry = filter.Registry
	}
	batcherRegistry := config.BatcherRegistry
	if batcherRegistry == nil {
		batcherRegistry = batcher.Registry
	}

	s := &Schema{config: config, definition: definition}
	var err error
	if s.input, err = inputRegistry.NewFromConfig(config, definition.Input); err != nil {
		return nil, err
	}
	for _, record := range definition.Filters {
		f, err := filterRegistry.NewFromConfig(config, record)
		if err != nil {
			return nil, err
		}
		s.filters = append(s.filters, f)
	}
	if s.batcher, err = batcherRegistry.NewFromConfig(config, definition.Batcher); err != nil {
		return nil, err
	}
	return s, nil
}

// ToJSON re-emits the declarative document the schema was built from.
func (s *Schema) ToJSON() ([]byte, error) {
	return json.Marshal(s.definition)
}

// Definition returns the declarative document the schema was built from.
func (s *Schema) Definition() Definition {
	return s.definition
}

// Input returns the resolved input.
func (s *Schema) Input() types.Input {
	return s.input
}

// Filters returns the resolved filters in evaluation order. Callers use
// this to inject runtime-only state, e.g. the valid shard of shard filters.
func (s *Schema) Filters() []types.Filter {
	return s.filters
}

// Batcher returns the resolved batcher.
func (s *Schema) Batcher() types.Batcher {
	return s.batcher
}

// Run executes the schema once, synchronously: fetch the candidate items,
// give every filter its PreProcess pass over the set it will see, keep the
// items every filter accepts, and hand the survivors to the batcher. Any
// component error aborts the run; there is no partially filtered result.
func (s *Schema) Run(ctx context.Context) ([]types.Batch, error) {
	runID := uuid.Must(uuid.NewV4())
	logger := types.NewLogger(s.config.Logger)

	candidates, err := s.input.Items(ctx)
	if err != nil {
		return nil, err
	}
	logger.Printf("schema run %s: input %s produced %d items", runID, s.input.Type(), len(candidates))

	for _, f := range s.filters {
		if err = f.PreProcess(ctx, candidates); err != nil {
			return nil, err
		}
		var survivors []types.Item
		for _, item := range candidates {
			valid, err := types.IsValid(f, item)
			if err != nil {
				return nil, err
			}
			if valid {
				survivors = append(survivors, item)
			}
		}
		logger.Printf("schema run %s: filter %s kept %d of %d items", runID, f.Type(), len(survivors), len(candidates))
		candidates = survivors
	}

	batches, err := s.batcher.Batch(candidates)
	if err != nil {
		return nil, err
	}
	logger.Printf("schema run %s: batcher %s produced %d batches", runID, s.batcher.Type(), len(batches))
	return batches, nil
}

// Destroy releases every component of the schema.
func (s *Schema) Destroy() {
	s.input.Destroy()
	for _, f := range s.filters {
		f.Destroy()
	}
	s.batcher.Destroy()
}
