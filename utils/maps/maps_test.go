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

package maps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMap2Struct(t *testing.T) {
	type config struct {
		Pattern   string
		ChunkSize int `mapstructure:"chunk_size"`
		Inverted  bool
	}

	var c config
	require.NoError(t, Map2Struct(map[string]interface{}{
		"pattern":    "^foo",
		"chunk_size": 5,
		"inverted":   true,
		"ignored":    "unknown keys are fine",
	}, &c))
	assert.Equal(t, config{Pattern: "^foo", ChunkSize: 5, Inverted: true}, c)

	// A type mismatch is an error naming the field.
	err := Map2Struct(map[string]interface{}{"chunk_size": "five"}, &c)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ChunkSize")
}
