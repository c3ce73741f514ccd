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

// Item is a single candidate unit of work, for example one file.
// Items are created by an Input for one run and are never mutated by any
// filter. The key is unique within the item's concrete type, not globally.
type Item interface {
	// Key uniquely identifies the item within its type.
	Key() string
	// ExtraData is an open side-channel of additional per-item data.
	// Absent keys mean "not present", never an error.
	ExtraData() map[string]interface{}
	// Bundle is the exportable wire form of the item. It exposes at least
	// the `key` and `extra_data` fields and is what external scripts see.
	Bundle() map[string]interface{}
}
