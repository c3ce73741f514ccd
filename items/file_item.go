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

package items

import (
	"os"
	"path/filepath"
)

// TargetPathField is the extra-data key overriding where a file item's
// change should land, when it differs from the file the item was built from.
const TargetPathField = "target_path"

// FileItem is a file-backed item. The key is the path the item was created
// with; content is read lazily on first use and cached for the run.
type FileItem struct {
	Item
	content *string
}

// NewFileItem creates a file item keyed by path. extraData may be nil.
func NewFileItem(path string, extraData map[string]interface{}) *FileItem {
	return &FileItem{Item: Item{key: path, extraData: extraData}}
}

// Path resolves the item's target path to an absolute path, honoring the
// target_path extra-data override when present.
func (x *FileItem) Path() (string, error) {
	path := x.key
	if override, ok := x.ExtraData()[TargetPathField].(string); ok && override != "" {
		path = override
	}
	return filepath.Abs(path)
}

// Content returns the textual content of the file behind the key, reading
// it at most once per item instance.
func (x *FileItem) Content() (string, error) {
	if x.content != nil {
		return *x.content, nil
	}
	data, err := os.ReadFile(x.key)
	if err != nil {
		return "", err
	}
	content := string(data)
	x.content = &content
	return content, nil
}
