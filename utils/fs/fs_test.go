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

package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
	assert.Equal(t, []byte("content"), LoadFile(path))
	assert.Nil(t, LoadFile(path+".missing"))
}

func TestGetFilePaths(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "skip"), 0o755))
	for _, name := range []string{"a.go", "b.txt", "sub/c.go", "skip/d.go"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	baseNames := func(paths []string) []string {
		names := make([]string, len(paths))
		for i, p := range paths {
			names[i] = filepath.Base(p)
		}
		return names
	}

	paths, err := GetFilePaths(filepath.Join(dir, "*.go"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.go", "c.go", "d.go"}, baseNames(paths))

	// Excluded patterns prune whole directories and individual files.
	paths, err = GetFilePaths(filepath.Join(dir, "*.go"), "skip", "a.go")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"c.go"}, baseNames(paths))

	_, err = GetFilePaths(filepath.Join(dir, "does-not-exist", "*.go"))
	assert.Error(t, err)
}
