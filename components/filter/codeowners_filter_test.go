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
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/items"
)

const testOwnershipFile = `# ownership
*.go       @platform
docs/      @docs-team
vendor/generated.go
`

func writeOwnershipFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "CODEOWNERS")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCodeownersFilter(t *testing.T) {
	owners := writeOwnershipFile(t, testOwnershipFile)
	f := buildFilter(t, types.NewConfig(), types.Configuration{
		"name":      "codeowners",
		"file_path": owners,
		"owner":     "@platform",
	})

	valid, err := f.Check(items.NewFileItem("/repo/pkg/a.go", nil))
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = f.Check(items.NewFileItem("/repo/pkg/a.py", nil))
	require.NoError(t, err)
	assert.False(t, valid)

	// The last matching rule wins: generated.go matches *.go first but the
	// later ownerless rule strips its owners.
	valid, err = f.Check(items.NewFileItem("/repo/vendor/generated.go", nil))
	require.NoError(t, err)
	assert.False(t, valid)

	// A directory rule owns everything under it.
	docs := buildFilter(t, types.NewConfig(), types.Configuration{
		"name":      "codeowners",
		"file_path": owners,
		"owner":     "@docs-team",
	})
	valid, err = docs.Check(items.NewFileItem("/repo/docs/guide.md", nil))
	require.NoError(t, err)
	assert.True(t, valid)

	// Items without a path never pass.
	valid, err = f.Check(items.New("pkg/a.go", nil))
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestCodeownersFilterUnowned(t *testing.T) {
	owners := writeOwnershipFile(t, testOwnershipFile)
	// No owner configured selects unowned files.
	f := buildFilter(t, types.NewConfig(), types.Configuration{
		"name":      "codeowners",
		"file_path": owners,
	})

	valid, err := f.Check(items.NewFileItem("/repo/pkg/a.py", nil))
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = f.Check(items.NewFileItem("/repo/vendor/generated.go", nil))
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = f.Check(items.NewFileItem("/repo/pkg/a.go", nil))
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestCodeownersFilterBadConfig(t *testing.T) {
	_, err := Registry.NewFromConfig(types.NewConfig(), types.Configuration{"name": "codeowners"})
	assert.ErrorIs(t, err, types.ErrComponentData)

	_, err = Registry.NewFromConfig(types.NewConfig(), types.Configuration{
		"name":      "codeowners",
		"file_path": filepath.Join(t.TempDir(), "missing"),
	})
	assert.ErrorIs(t, err, types.ErrComponentData)
}

func TestMatchOwnershipPattern(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.go", "/repo/pkg/a.go", true},
		{"*.go", "/repo/pkg/a.py", false},
		{"docs/", "/repo/docs/guide.md", true},
		{"docs/", "/repo/src/guide.md", false},
		{"pkg/a.go", "/repo/pkg/a.go", true},
		{"pkg/*.go", "/repo/pkg/a.go", true},
		{"pkg/*.go", "/repo/other/a.go", false},
		{"/a/b/c/d.go", "/c/d.go", false},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, matchOwnershipPattern(c.pattern, c.path), "pattern %q path %q", c.pattern, c.path)
	}
}
