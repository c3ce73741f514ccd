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

package schema

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/components/filter"
	"github.com/autopatch/autopatch/utils/json"
)

// populate writes a small tree with two deprecated .go files, a clean .go
// file and a .txt file.
func populate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"alpha.go": "calls deprecated_api()",
		"beta.go":  "calls deprecated_api()",
		"clean.go": "nothing here",
		"note.txt": "calls deprecated_api()",
	}
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func definitionJSON(dir string) []byte {
	return []byte(fmt.Sprintf(`{
		"input": {"name": "directory", "path": %q, "pattern": "*.go"},
		"filters": [
			{"name": "contentRegex", "pattern": "deprecated_api"}
		],
		"batcher": {"name": "single", "title": "Upgrade deprecated API calls"}
	}`, dir))
}

func TestSchemaRun(t *testing.T) {
	dir := populate(t)
	s, err := FromJSON(types.NewConfig(), definitionJSON(dir))
	require.NoError(t, err)
	defer s.Destroy()

	batches, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, batches, 1)
	assert.Equal(t, "Upgrade deprecated API calls", batches[0].Title)

	keys := make([]string, len(batches[0].Items))
	for i, item := range batches[0].Items {
		keys[i] = filepath.Base(item.Key())
	}
	assert.ElementsMatch(t, []string{"alpha.go", "beta.go"}, keys)
}

func TestSchemaRunNothingSurvives(t *testing.T) {
	dir := populate(t)
	def := Definition{
		Input:   types.Configuration{"name": "directory", "path": dir, "pattern": "*.go"},
		Filters: []types.Configuration{{"name": "keyRegex", "pattern": "no-such-key"}},
		Batcher: types.Configuration{"name": "single", "title": "t"},
	}
	s, err := FromDefinition(types.NewConfig(), def)
	require.NoError(t, err)
	defer s.Destroy()

	batches, err := s.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestSchemaShardInjection(t *testing.T) {
	dir := populate(t)
	def := Definition{
		Input:   types.Configuration{"name": "directory", "path": dir, "pattern": "*.go"},
		Filters: []types.Configuration{{"name": "keyHashShard", "num_shards": 2}},
		Batcher: types.Configuration{"name": "single", "title": "t"},
	}

	// Without the injected shard the run fails.
	s, err := FromDefinition(types.NewConfig(), def)
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	assert.ErrorIs(t, err, types.ErrUninitializedShard)
	s.Destroy()

	// The two shards together cover every candidate exactly once.
	var keys []string
	for shard := 0; shard < 2; shard++ {
		s, err := FromDefinition(types.NewConfig(), def)
		require.NoError(t, err)
		s.Filters()[0].(*filter.KeyHashShardFilter).SetValidShard(shard)
		batches, err := s.Run(context.Background())
		require.NoError(t, err)
		for _, batch := range batches {
			for _, item := range batch.Items {
				keys = append(keys, filepath.Base(item.Key()))
			}
		}
		s.Destroy()
	}
	assert.ElementsMatch(t, []string{"alpha.go", "beta.go", "clean.go"}, keys)
}

func TestSchemaDefinitionRoundTrip(t *testing.T) {
	dir := populate(t)
	s, err := FromJSON(types.NewConfig(), definitionJSON(dir))
	require.NoError(t, err)
	defer s.Destroy()

	out, err := s.ToJSON()
	require.NoError(t, err)

	var again Definition
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, s.Definition(), again)

	// The re-emitted document resolves to an equivalent schema.
	second, err := FromJSON(types.NewConfig(), out)
	require.NoError(t, err)
	defer second.Destroy()
	assert.Equal(t, s.Definition(), second.Definition())
}

func TestSchemaUnknownComponents(t *testing.T) {
	base := Definition{
		Input:   types.Configuration{"name": "directory", "path": "."},
		Batcher: types.Configuration{"name": "single", "title": "t"},
	}

	def := base
	def.Input = types.Configuration{"name": "no_such_input"}
	_, err := FromDefinition(types.NewConfig(), def)
	assert.ErrorIs(t, err, types.ErrUnknownComponent)

	def = base
	def.Filters = []types.Configuration{{"name": "no_such_filter"}}
	_, err = FromDefinition(types.NewConfig(), def)
	assert.ErrorIs(t, err, types.ErrUnknownComponent)

	def = base
	def.Batcher = types.Configuration{"name": "no_such_batcher"}
	_, err = FromDefinition(types.NewConfig(), def)
	assert.ErrorIs(t, err, types.ErrUnknownComponent)
}

func TestSchemaMalformedJSON(t *testing.T) {
	_, err := FromJSON(types.NewConfig(), []byte("{not json"))
	assert.Error(t, err)
}
