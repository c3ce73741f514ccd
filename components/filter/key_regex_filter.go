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
//   "name": "keyRegex",
//   "pattern": "^src/.*\\.go$"
// }
import (
	"fmt"
	"regexp"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/utils/maps"
)

func init() {
	Registry.Add(&KeyRegexFilter{})
}

// KeyRegexFilterConfiguration is the filter configuration.
type KeyRegexFilterConfiguration struct {
	// Pattern is the regular expression matched against the item key.
	// Search semantics: matching any substring of the key is enough.
	Pattern string
}

// KeyRegexFilter passes items whose key matches the configured pattern.
type KeyRegexFilter struct {
	BaseFilter
	Config  KeyRegexFilterConfiguration
	pattern *regexp.Regexp
}

// Type returns the component type.
func (x *KeyRegexFilter) Type() string {
	return "keyRegex"
}

func (x *KeyRegexFilter) New() types.Component {
	return &KeyRegexFilter{}
}

// Init configures the filter and compiles the pattern.
func (x *KeyRegexFilter) Init(config types.Config, configuration types.Configuration) error {
	if err := x.BaseFilter.Init(configuration); err != nil {
		return err
	}
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	if x.Config.Pattern == "" {
		return fmt.Errorf("%w: pattern is required", types.ErrComponentData)
	}
	pattern, err := regexp.Compile(x.Config.Pattern)
	if err != nil {
		return fmt.Errorf("%w: pattern: %v", types.ErrComponentData, err)
	}
	x.pattern = pattern
	return nil
}

// Check reports whether the item key matches the pattern.
func (x *KeyRegexFilter) Check(item types.Item) (bool, error) {
	return x.pattern.MatchString(item.Key()), nil
}
