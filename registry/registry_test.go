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

package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/utils/maps"
)

// stubFilter is a minimal filter for registry tests.
type stubFilter struct {
	Config struct {
		Threshold int
	}
}

func (x *stubFilter) New() types.Component { return &stubFilter{} }
func (x *stubFilter) Type() string         { return "stub" }
func (x *stubFilter) Init(config types.Config, configuration types.Configuration) error {
	return maps.Map2Struct(configuration, &x.Config)
}
func (x *stubFilter) Destroy()                                                 {}
func (x *stubFilter) PreProcess(ctx context.Context, items []types.Item) error { return nil }
func (x *stubFilter) Check(item types.Item) (bool, error)                      { return true, nil }
func (x *stubFilter) IsInverted() bool                                         { return false }

// otherFilter registers a different concrete type under the same name.
type otherFilter struct {
	stubFilter
}

func (x *otherFilter) New() types.Component { return &otherFilter{} }

// escapingFilter is a filter whose New() does not return a filter.
type escapingFilter struct {
	stubFilter
}

func (x *escapingFilter) New() types.Component { return &notAFilter{} }
func (x *escapingFilter) Type() string         { return "escaping" }

type notAFilter struct{}

func (x *notAFilter) New() types.Component { return &notAFilter{} }
func (x *notAFilter) Type() string         { return "escaping" }
func (x *notAFilter) Init(config types.Config, configuration types.Configuration) error {
	return nil
}
func (x *notAFilter) Destroy() {}

func TestRegisterDuplicate(t *testing.T) {
	r := New[types.Filter]("filter.json")
	require.NoError(t, r.Register(&stubFilter{}))

	// Re-registering the identical type is a no-op.
	assert.NoError(t, r.Register(&stubFilter{}))
	assert.Equal(t, 1, len(r.Components()))

	// A different type under the same name is a conflict.
	err := r.Register(&otherFilter{})
	assert.ErrorIs(t, err, types.ErrDuplicateName)
}

func TestNewUnknownComponent(t *testing.T) {
	r := New[types.Filter]("filter.json")
	_, err := r.New("unregistered_x")
	assert.ErrorIs(t, err, types.ErrUnknownComponent)

	_, err = r.NewFromConfig(types.NewConfig(), types.Configuration{"name": "unregistered_x"})
	assert.ErrorIs(t, err, types.ErrUnknownComponent)
}

func TestNewFromConfig(t *testing.T) {
	r := New[types.Filter]("filter.json")
	require.NoError(t, r.Register(&stubFilter{}))

	instance, err := r.NewFromConfig(types.NewConfig(), types.Configuration{
		"name":      "stub",
		"threshold": 7,
	})
	require.NoError(t, err)
	assert.Equal(t, 7, instance.(*stubFilter).Config.Threshold)

	// Construction from the same record is deterministic and instances are
	// independent.
	second, err := r.NewFromConfig(types.NewConfig(), types.Configuration{
		"name":      "stub",
		"threshold": 7,
	})
	require.NoError(t, err)
	assert.Equal(t, instance.(*stubFilter).Config, second.(*stubFilter).Config)
	assert.NotSame(t, instance, second)
}

func TestNewFromConfigMissingName(t *testing.T) {
	r := New[types.Filter]("filter.json")
	require.NoError(t, r.Register(&stubFilter{}))

	_, err := r.NewFromConfig(types.NewConfig(), types.Configuration{"threshold": 7})
	assert.ErrorIs(t, err, types.ErrComponentData)
}

func TestNewFromConfigBadField(t *testing.T) {
	r := New[types.Filter]("filter.json")
	require.NoError(t, r.Register(&stubFilter{}))

	_, err := r.NewFromConfig(types.NewConfig(), types.Configuration{
		"name":      "stub",
		"threshold": "not a number",
	})
	require.ErrorIs(t, err, types.ErrComponentData)
	// The decode error names the offending field.
	assert.Contains(t, err.Error(), "Threshold")
}

func TestFamilyTyping(t *testing.T) {
	r := New[types.Filter]("filter.json")
	require.NoError(t, r.Register(&escapingFilter{}))

	_, err := r.New("escaping")
	assert.ErrorIs(t, err, types.ErrComponentData)
}

func TestMergeBindings(t *testing.T) {
	r := New[types.Filter]("filter.json")
	require.NoError(t, r.Register(&stubFilter{}))

	// A binding shadowing a registered component is a conflict.
	err := r.MergeBindings(map[string]string{"stub": "custom.so"})
	assert.ErrorIs(t, err, types.ErrDuplicateName)

	// Bindings are lazy: merging does not load the plugin...
	require.NoError(t, r.MergeBindings(map[string]string{"custom": "does-not-exist.so"}))
	// ...the first use of the name does, and failures surface there.
	_, err = r.New("custom")
	assert.ErrorIs(t, err, types.ErrUnknownComponent)

	// The same binding can be merged again; a different file cannot.
	assert.NoError(t, r.MergeBindings(map[string]string{"custom": "does-not-exist.so"}))
	assert.ErrorIs(t, r.MergeBindings(map[string]string{"custom": "other.so"}), types.ErrDuplicateName)
}

func TestBindingsFile(t *testing.T) {
	r := New[types.Filter]("filter.json")
	assert.Equal(t, "filter.json", r.BindingsFile())
}
