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

// Package filter provides the built-in item filters of the AutoPatch core.
//
// A filter decides whether a candidate item survives into a transformation
// batch:
//
//   - KeyRegexFilter: matches a regular expression against the item key
//   - ContentRegexFilter: matches against the content of a file-backed item
//   - FileExistsFilter: passes items whose resolved path exists on disk
//   - CodeownersFilter: passes file items owned by a configured owner
//   - AggregateFilter: all/any combination of child filters
//   - KeyHashShardFilter: deterministic hash partitioning of items
//   - ScriptFilter: delegates bulk validity decisions to an external process
//   - ExprFilter: expression-language predicate over key and extra data
//   - JsFilter: JavaScript predicate over key and extra data
//
// Each filter registers itself with the package Registry and is referenced
// from a schema document by its type. For example:
//
//	{
//	  "name": "keyRegex",
//	  "pattern": "\\.go$",
//	  "inverted": false
//	}
//
// Every filter honors the shared `inverted` flag; evaluation always goes
// through types.IsValid so the flag is applied uniformly.
package filter

import (
	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/registry"
)

// Registry holds the built-in filter components. Deployment-specific
// filters are merged in through bindings from the conventional filter.json
// file.
var Registry = registry.New[types.Filter]("filter.json")
