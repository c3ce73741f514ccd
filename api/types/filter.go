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

package types

import "context"

// Filter is a predicate over an Item deciding whether it remains a
// candidate for the run. Evaluation goes through IsValid, never through
// Check directly, so that the inversion flag is applied uniformly.
type Filter interface {
	Component
	// PreProcess is called once per run with the full candidate set, before
	// any Check call. Filters that compute batch-level state override it;
	// the default is a no-op.
	PreProcess(ctx context.Context, items []Item) error
	// Check is the core predicate, without inversion applied.
	// Filters that only understand a specific item subtype report false for
	// other items; a type mismatch is never an error.
	Check(item Item) (bool, error)
	// IsInverted reports whether the result of Check is negated.
	// The flag is set at construction and never mutated.
	IsInverted() bool
}

// IsValid is the public evaluation entry point for every filter:
// IsValid(f, item) == f.IsInverted() XOR f.Check(item).
func IsValid(f Filter, item Item) (bool, error) {
	ok, err := f.Check(item)
	if err != nil {
		return false, err
	}
	return f.IsInverted() != ok, nil
}
