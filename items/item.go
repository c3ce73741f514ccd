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

// Package items provides the candidate work-item implementations produced by
// inputs and consumed by filters and batchers.
package items

import "github.com/autopatch/autopatch/api/types"

// Wire field names of an item bundle.
const (
	KeyField       = "key"
	ExtraDataField = "extra_data"
)

// Item is the base item implementation: a key plus an open extra-data
// side-channel. Items are immutable during filtering by convention.
type Item struct {
	key       string
	extraData map[string]interface{}
}

// New creates an item. extraData may be nil.
func New(key string, extraData map[string]interface{}) *Item {
	return &Item{key: key, extraData: extraData}
}

// Key returns the item key, unique within the item's concrete type.
func (x *Item) Key() string {
	return x.key
}

// ExtraData returns the open side-channel of the item. Callers must treat
// absent keys as "not present".
func (x *Item) ExtraData() map[string]interface{} {
	if x.extraData == nil {
		return map[string]interface{}{}
	}
	return x.extraData
}

// Bundle returns the exportable wire form of the item.
func (x *Item) Bundle() map[string]interface{} {
	return map[string]interface{}{
		KeyField:       x.key,
		ExtraDataField: x.ExtraData(),
	}
}

var _ types.Item = (*Item)(nil)
