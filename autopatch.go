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

// Package autopatch declares large-scale automated code-modification jobs as
// JSON schema documents of interchangeable components and evaluates which
// candidate items survive into a transformation batch.
//
// Typical use:
//
//	config := types.NewConfig()
//	s, err := schema.FromJSON(config, def)
//	if err != nil {
//		// the record named an unknown component or carried bad data
//	}
//	batches, err := s.Run(context.Background())
package autopatch

import (
	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/components/batcher"
	"github.com/autopatch/autopatch/components/filter"
	"github.com/autopatch/autopatch/components/input"
	"github.com/autopatch/autopatch/registry"
	"github.com/autopatch/autopatch/schema"
)

// Default component registries, one per family. Built-in components
// register themselves here from their package init; deployments extend a
// family with Register or with lazy plugin bindings via MergeBindings.
var (
	Filters  = filter.Registry
	Inputs   = input.Registry
	Batchers = batcher.Registry
)

// Compile-time checks that the family registries satisfy the registry
// interfaces a Config carries.
var (
	_ types.FilterRegistry  = (*registry.Registry[types.Filter])(nil)
	_ types.InputRegistry   = (*registry.Registry[types.Input])(nil)
	_ types.BatcherRegistry = (*registry.Registry[types.Batcher])(nil)
)

// NewConfig creates a Config with default values and applies the options.
func NewConfig(opts ...types.Option) types.Config {
	return types.NewConfig(opts...)
}

// Load resolves a schema document against the default registries (or the
// ones carried on config).
func Load(config types.Config, def []byte) (*schema.Schema, error) {
	return schema.FromJSON(config, def)
}
