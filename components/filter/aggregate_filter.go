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

package filter

// Schema record example:
// {
//   "name": "aggregate",
//   "aggregator": "all",
//   "filters": [
//     {"name": "keyRegex", "pattern": "\\.go$"},
//     {"name": "fileExists", "inverted": true}
//   ]
// }
import (
	"context"
	"fmt"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/utils/maps"
)

// Aggregator values.
const (
	AggregatorAll = "all"
	AggregatorAny = "any"
)

func init() {
	Registry.Add(&AggregateFilter{})
}

// AggregateFilterConfiguration is the filter configuration.
type AggregateFilterConfiguration struct {
	// Aggregator is "all" (logical AND) or "any" (logical OR).
	Aggregator string
	// Filters are the child filter records, resolved recursively through
	// the filter registry. A child may itself be an aggregate filter.
	Filters []types.Configuration
}

// AggregateFilter combines child filters with a boolean aggregator,
// short-circuiting on the first decisive child. Each child's own inversion
// flag applies before aggregation; the aggregate's flag applies once more
// on the combined result.
type AggregateFilter struct {
	BaseFilter
	Config   AggregateFilterConfiguration
	children []types.Filter
}

// Type returns the component type.
func (x *AggregateFilter) Type() string {
	return "aggregate"
}

func (x *AggregateFilter) New() types.Component {
	return &AggregateFilter{}
}

// Init configures the aggregator and builds the child filters through the
// registry carried on the config.
func (x *AggregateFilter) Init(config types.Config, configuration types.Configuration) error {
	if err := x.BaseFilter.Init(configuration); err != nil {
		return err
	}
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	if x.Config.Aggregator != AggregatorAll && x.Config.Aggregator != AggregatorAny {
		return fmt.Errorf("%w: %q", types.ErrUnknownAggregator, x.Config.Aggregator)
	}
	filterRegistry := config.FilterRegistry
	if filterRegistry == nil {
		filterRegistry = Registry
	}
	x.children = make([]types.Filter, 0, len(x.Config.Filters))
	for _, record := range x.Config.Filters {
		child, err := filterRegistry.NewFromConfig(config, record)
		if err != nil {
			return err
		}
		x.children = append(x.children, child)
	}
	return nil
}

// PreProcess fans the candidate set out to every child.
func (x *AggregateFilter) PreProcess(ctx context.Context, items []types.Item) error {
	for _, child := range x.children {
		if err := child.PreProcess(ctx, items); err != nil {
			return err
		}
	}
	return nil
}

// Check combines the children's verdicts. An aggregate without children is
// vacuously true for "all" and false for "any".
func (x *AggregateFilter) Check(item types.Item) (bool, error) {
	for _, child := range x.children {
		valid, err := types.IsValid(child, item)
		if err != nil {
			return false, err
		}
		switch x.Config.Aggregator {
		case AggregatorAll:
			if !valid {
				return false, nil
			}
		case AggregatorAny:
			if valid {
				return true, nil
			}
		default:
			// Init rejects other values; getting here means the instance
			// was built without Init.
			return false, fmt.Errorf("%w: %q", types.ErrUnknownAggregator, x.Config.Aggregator)
		}
	}
	return x.Config.Aggregator == AggregatorAll, nil
}

// Destroy releases the child filters.
func (x *AggregateFilter) Destroy() {
	for _, child := range x.children {
		child.Destroy()
	}
}
