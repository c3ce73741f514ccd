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

import (
	"context"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/utils/maps"
)

// baseFilterConfiguration is the part of every filter record handled by the
// shared base.
type baseFilterConfiguration struct {
	// Inverted flips the final predicate result.
	Inverted bool
}

// BaseFilter carries the behavior shared by every filter: the inversion
// flag and the default no-op PreProcess. Concrete filters embed it and call
// its Init from their own.
type BaseFilter struct {
	inverted bool
}

// Init decodes the shared filter fields. The inversion flag is fixed from
// here on.
func (x *BaseFilter) Init(configuration types.Configuration) error {
	var config baseFilterConfiguration
	if err := maps.Map2Struct(configuration, &config); err != nil {
		return err
	}
	x.inverted = config.Inverted
	return nil
}

// IsInverted reports whether the filter negates its core predicate.
func (x *BaseFilter) IsInverted() bool {
	return x.inverted
}

// PreProcess is a no-op by default.
func (x *BaseFilter) PreProcess(ctx context.Context, items []types.Item) error {
	return nil
}

// Destroy is a no-op by default.
func (x *BaseFilter) Destroy() {
}

// BulkFilter is the base of filters that compute validity for a whole
// candidate set at once and answer per-item checks from that cache.
// The cache is scoped to one filter instance and one run: it is computed
// exactly once from the first candidate list it sees and is deliberately
// never recomputed, even if PreProcess runs again with different items.
type BulkFilter struct {
	BaseFilter
	validKeys map[string]struct{}
}

// cacheValidKeys fills the valid-key cache on first use via fetch and keeps
// it for the rest of the run.
func (x *BulkFilter) cacheValidKeys(ctx context.Context, items []types.Item, fetch func(ctx context.Context, items []types.Item) (map[string]struct{}, error)) error {
	if x.validKeys != nil {
		return nil
	}
	keys, err := fetch(ctx, items)
	if err != nil {
		return err
	}
	if keys == nil {
		keys = map[string]struct{}{}
	}
	x.validKeys = keys
	return nil
}

// Check reports whether the item key is in the precomputed valid set.
// Without a PreProcess call the effective set is empty: no items are valid,
// but checking is not an error.
func (x *BulkFilter) Check(item types.Item) (bool, error) {
	if x.validKeys == nil {
		return false, nil
	}
	_, ok := x.validKeys[item.Key()]
	return ok, nil
}

// pathItem is the capability file-oriented filters need from an item.
// Items without it simply do not pass those filters.
type pathItem interface {
	Path() (string, error)
}

// contentItem is the capability content-oriented filters need from an item.
type contentItem interface {
	Content() (string, error)
}
