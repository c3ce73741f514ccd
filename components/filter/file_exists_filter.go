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
//   "name": "fileExists",
//   "inverted": true
// }
import (
	"os"

	"github.com/autopatch/autopatch/api/types"
)

func init() {
	Registry.Add(&FileExistsFilter{})
}

// FileExistsFilter passes items whose resolved target path exists on disk.
// The path is the item's own path or its target_path extra-data override,
// resolved to an absolute path. Items without a resolvable path never pass.
// Inverted, the filter selects items whose target still has to be created.
type FileExistsFilter struct {
	BaseFilter
}

// Type returns the component type.
func (x *FileExistsFilter) Type() string {
	return "fileExists"
}

func (x *FileExistsFilter) New() types.Component {
	return &FileExistsFilter{}
}

// Init configures the filter.
func (x *FileExistsFilter) Init(config types.Config, configuration types.Configuration) error {
	return x.BaseFilter.Init(configuration)
}

// Check reports whether the item's resolved path exists.
func (x *FileExistsFilter) Check(item types.Item) (bool, error) {
	pi, ok := item.(pathItem)
	if !ok {
		return false, nil
	}
	path, err := pi.Path()
	if err != nil {
		return false, nil
	}
	_, err = os.Stat(path)
	return err == nil, nil
}
