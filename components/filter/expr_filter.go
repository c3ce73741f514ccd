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
//   "name": "expr",
//   "expr": "extraData.language == 'go' && len(key) < 120"
// }
import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/utils/maps"
)

func init() {
	Registry.Add(&ExprFilter{})
}

// ExprFilterConfiguration is the filter configuration.
type ExprFilterConfiguration struct {
	// Expr is a boolean expression over the item. The item key is available
	// as `key` and its extra data as `extraData`.
	Expr string
}

// ExprFilter evaluates a compiled expression-language predicate per item.
type ExprFilter struct {
	BaseFilter
	Config  ExprFilterConfiguration
	program *vm.Program
}

// Type returns the component type.
func (x *ExprFilter) Type() string {
	return "expr"
}

func (x *ExprFilter) New() types.Component {
	return &ExprFilter{}
}

// Init configures the filter and compiles the expression.
func (x *ExprFilter) Init(config types.Config, configuration types.Configuration) error {
	if err := x.BaseFilter.Init(configuration); err != nil {
		return err
	}
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	if x.Config.Expr == "" {
		return fmt.Errorf("%w: expr is required", types.ErrComponentData)
	}
	program, err := expr.Compile(x.Config.Expr, expr.AllowUndefinedVariables(), expr.AsBool())
	if err != nil {
		return fmt.Errorf("%w: expr: %v", types.ErrComponentData, err)
	}
	x.program = program
	return nil
}

// Check evaluates the expression against the item.
func (x *ExprFilter) Check(item types.Item) (bool, error) {
	env := map[string]interface{}{
		"key":       item.Key(),
		"extraData": item.ExtraData(),
	}
	out, err := vm.Run(x.program, env)
	if err != nil {
		return false, err
	}
	result, ok := out.(bool)
	return ok && result, nil
}
