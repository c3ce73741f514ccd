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

// Package batcher provides the built-in batchers grouping the surviving
// items of a run for transformation.
package batcher

// Schema record example:
// {
//   "name": "single",
//   "title": "Upgrade deprecated API calls",
//   "metadata": {"reviewer": "@platform-team"}
// }
import (
	"fmt"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/registry"
	"github.com/autopatch/autopatch/utils/maps"
)

// Registry holds the built-in batcher components.
var Registry = registry.New[types.Batcher]("batcher.json")

func init() {
	Registry.Add(&SingleBatcher{})
}

// SingleBatcherConfiguration is the batcher configuration.
type SingleBatcherConfiguration struct {
	// Title names the batch in the eventual submission.
	Title string
	// Metadata is attached to the batch as-is.
	Metadata map[string]string
}

// SingleBatcher puts every surviving item into one batch. An empty run
// produces no batch at all.
type SingleBatcher struct {
	Config SingleBatcherConfiguration
}

// Type returns the component type.
func (x *SingleBatcher) Type() string {
	return "single"
}

func (x *SingleBatcher) New() types.Component {
	return &SingleBatcher{}
}

// Init configures the batcher.
func (x *SingleBatcher) Init(config types.Config, configuration types.Configuration) error {
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	if x.Config.Title == "" {
		return fmt.Errorf("%w: title is required", types.ErrComponentData)
	}
	return nil
}

// Batch groups the items.
func (x *SingleBatcher) Batch(batchItems []types.Item) ([]types.Batch, error) {
	if len(batchItems) == 0 {
		return nil, nil
	}
	return []types.Batch{{
		Title:    x.Config.Title,
		Metadata: x.Config.Metadata,
		Items:    batchItems,
	}}, nil
}

// Destroy releases the batcher.
func (x *SingleBatcher) Destroy() {
}
