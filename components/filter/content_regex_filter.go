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
//   "name": "contentRegex",
//   "pattern": "deprecated_api\\("
// }
import (
	"fmt"
	"regexp"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/utils/maps"
)

func init() {
	Registry.Add(&ContentRegexFilter{})
}

// ContentRegexFilterConfiguration is the filter configuration.
type ContentRegexFilterConfiguration struct {
	// Pattern is the regular expression matched against the file content,
	// with the same search semantics as the key regex filter.
	Pattern string
}

// ContentRegexFilter passes file-backed items whose content matches the
// configured pattern. Items without readable content never pass.
type ContentRegexFilter struct {
	BaseFilter
	Config  ContentRegexFilterConfiguration
	pattern *regexp.Regexp
}

// Type returns the component type.
func (x *ContentRegexFilter) Type() string {
	return "contentRegex"
}

func (x *ContentRegexFilter) New() types.Component {
	return &ContentRegexFilter{}
}

// Init configures the filter and compiles the pattern.
func (x *ContentRegexFilter) Init(config types.Config, configuration types.Configuration) error {
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

// Check reports whether the item content matches the pattern. Items that
// are not file-backed, or whose content cannot be read, do not pass; the
// mismatch is not an error.
func (x *ContentRegexFilter) Check(item types.Item) (bool, error) {
	ci, ok := item.(contentItem)
	if !ok {
		return false, nil
	}
	content, err := ci.Content()
	if err != nil {
		return false, nil
	}
	return x.pattern.MatchString(content), nil
}
