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
//   "name": "jsFilter",
//   "jsScript": "return key.endsWith('.go') && extraData.generation !== 'generated';"
// }
import (
	"fmt"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/utils/js"
	"github.com/autopatch/autopatch/utils/maps"
)

func init() {
	Registry.Add(&JsFilter{})
}

// JsFilterConfiguration is the filter configuration.
type JsFilterConfiguration struct {
	// JsScript is the body of the predicate. The complete function is
	// function Filter(key, extraData) { ${JsScript} } and must return a
	// boolean.
	JsScript string
}

// JsFilter evaluates a JavaScript predicate per item on a pooled VM, bounded
// by the config's script execution limit.
type JsFilter struct {
	BaseFilter
	Config   JsFilterConfiguration
	jsEngine *js.GojaJsEngine
}

// Type returns the component type.
func (x *JsFilter) Type() string {
	return "jsFilter"
}

func (x *JsFilter) New() types.Component {
	return &JsFilter{}
}

// Init configures the filter and compiles the script.
func (x *JsFilter) Init(config types.Config, configuration types.Configuration) error {
	if err := x.BaseFilter.Init(configuration); err != nil {
		return err
	}
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	if x.Config.JsScript == "" {
		return fmt.Errorf("%w: jsScript is required", types.ErrComponentData)
	}
	jsScript := fmt.Sprintf("function Filter(key, extraData) { %s }", x.Config.JsScript)
	jsEngine, err := js.NewGojaJsEngine(config, jsScript)
	if err != nil {
		return fmt.Errorf("%w: jsScript: %v", types.ErrComponentData, err)
	}
	x.jsEngine = jsEngine
	return nil
}

// Check runs the predicate against the item. A non-boolean result is an
// error: the script is malformed, not the item invalid.
func (x *JsFilter) Check(item types.Item) (bool, error) {
	out, err := x.jsEngine.Execute("Filter", item.Key(), item.ExtraData())
	if err != nil {
		return false, err
	}
	result, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("js filter returned %T, want bool", out)
	}
	return result, nil
}

// Destroy releases the script engine.
func (x *JsFilter) Destroy() {
	if x.jsEngine != nil {
		x.jsEngine.Stop()
	}
}
