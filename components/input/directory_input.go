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

// Package input provides the built-in inputs producing the initial
// candidate item list of a schema run.
package input

// Schema record example:
// {
//   "name": "directory",
//   "path": "src",
//   "pattern": "*.go",
//   "excluded": ["vendor", "*_test.go"]
// }
import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/items"
	"github.com/autopatch/autopatch/registry"
	"github.com/autopatch/autopatch/utils/fs"
	"github.com/autopatch/autopatch/utils/maps"
)

// Registry holds the built-in input components.
var Registry = registry.New[types.Input]("input.json")

func init() {
	Registry.Add(&DirectoryInput{})
}

// DirectoryInputConfiguration is the input configuration.
type DirectoryInputConfiguration struct {
	// Path is the directory to walk.
	Path string
	// Pattern filters file names, defaulting to every file.
	Pattern string
	// Excluded skips files and directories matching any of these patterns.
	Excluded []string
}

// DirectoryInput walks a directory tree and yields one file item per
// matching file, keyed by path.
type DirectoryInput struct {
	Config DirectoryInputConfiguration
}

// Type returns the component type.
func (x *DirectoryInput) Type() string {
	return "directory"
}

func (x *DirectoryInput) New() types.Component {
	return &DirectoryInput{}
}

// Init configures the input.
func (x *DirectoryInput) Init(config types.Config, configuration types.Configuration) error {
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	if x.Config.Path == "" {
		return fmt.Errorf("%w: path is required", types.ErrComponentData)
	}
	if x.Config.Pattern == "" {
		x.Config.Pattern = "*"
	}
	return nil
}

// Items returns the candidate set for this run.
func (x *DirectoryInput) Items(ctx context.Context) ([]types.Item, error) {
	paths, err := fs.GetFilePaths(filepath.Join(x.Config.Path, x.Config.Pattern), x.Config.Excluded...)
	if err != nil {
		return nil, err
	}
	candidates := make([]types.Item, 0, len(paths))
	for _, path := range paths {
		candidates = append(candidates, items.NewFileItem(path, nil))
	}
	return candidates, nil
}

// Destroy releases the input.
func (x *DirectoryInput) Destroy() {
}
