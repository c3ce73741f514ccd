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
//   "name": "codeowners",
//   "file_path": ".github/CODEOWNERS",
//   "owner": "@platform-team"
// }
//
// With no owner configured the filter selects unowned files instead.
import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/utils/fs"
	"github.com/autopatch/autopatch/utils/maps"
)

func init() {
	Registry.Add(&CodeownersFilter{})
}

// CodeownersFilterConfiguration is the filter configuration.
type CodeownersFilterConfiguration struct {
	// FilePath locates the CODEOWNERS-style ownership file.
	FilePath string `mapstructure:"file_path"`
	// Owner selects files owned by this owner. Empty selects unowned files.
	Owner string
}

// ownershipRule is one parsed CODEOWNERS line: a path pattern and its owners.
type ownershipRule struct {
	pattern string
	owners  []string
}

// CodeownersFilter passes file-backed items whose resolved path is owned by
// the configured owner, or is unowned when no owner is configured. The
// ownership file is parsed once at Init and cached for the instance.
type CodeownersFilter struct {
	BaseFilter
	Config CodeownersFilterConfiguration
	// rules in file order; per CODEOWNERS semantics the last matching rule
	// decides ownership.
	rules []ownershipRule
}

// Type returns the component type.
func (x *CodeownersFilter) Type() string {
	return "codeowners"
}

func (x *CodeownersFilter) New() types.Component {
	return &CodeownersFilter{}
}

// Init configures the filter and parses the ownership file.
func (x *CodeownersFilter) Init(config types.Config, configuration types.Configuration) error {
	if err := x.BaseFilter.Init(configuration); err != nil {
		return err
	}
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	if x.Config.FilePath == "" {
		return fmt.Errorf("%w: file_path is required", types.ErrComponentData)
	}
	data := fs.LoadFile(x.Config.FilePath)
	if data == nil {
		return fmt.Errorf("%w: cannot read ownership file %q", types.ErrComponentData, x.Config.FilePath)
	}
	x.rules = parseOwnershipRules(string(data))
	return nil
}

// Check reports whether the configured owner owns the item's resolved path.
func (x *CodeownersFilter) Check(item types.Item) (bool, error) {
	pi, ok := item.(pathItem)
	if !ok {
		return false, nil
	}
	path, err := pi.Path()
	if err != nil {
		return false, nil
	}
	owners := x.ownersFor(path)
	if x.Config.Owner == "" {
		return len(owners) == 0, nil
	}
	for _, owner := range owners {
		if owner == x.Config.Owner {
			return true, nil
		}
	}
	return false, nil
}

// ownersFor returns the owners of the last rule matching path, or nil when
// the path is unowned.
func (x *CodeownersFilter) ownersFor(path string) []string {
	var owners []string
	for _, rule := range x.rules {
		if matchOwnershipPattern(rule.pattern, path) {
			owners = rule.owners
		}
	}
	return owners
}

// parseOwnershipRules reads CODEOWNERS-style lines: `pattern owner...`,
// with `#` comments and blank lines ignored. A pattern with no owners marks
// its files unowned.
func parseOwnershipRules(content string) []ownershipRule {
	var rules []ownershipRule
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		rules = append(rules, ownershipRule{pattern: fields[0], owners: fields[1:]})
	}
	return rules
}

// matchOwnershipPattern matches a CODEOWNERS pattern against an absolute
// path. Bare names match the basename; patterns with a trailing slash match
// any path under that directory; other patterns match any suffix of the
// path's segments.
func matchOwnershipPattern(pattern, path string) bool {
	path = filepath.ToSlash(path)
	pattern = strings.TrimPrefix(pattern, "/")
	if strings.HasSuffix(pattern, "/") {
		return strings.Contains(path, "/"+strings.TrimSuffix(pattern, "/")+"/")
	}
	if !strings.Contains(pattern, "/") {
		matched, _ := filepath.Match(pattern, filepath.Base(path))
		return matched
	}
	segments := strings.Split(path, "/")
	patternSegments := strings.Split(pattern, "/")
	if len(patternSegments) > len(segments) {
		return false
	}
	tail := segments[len(segments)-len(patternSegments):]
	for i, ps := range patternSegments {
		matched, _ := filepath.Match(ps, tail[i])
		if !matched {
			return false
		}
	}
	return true
}
