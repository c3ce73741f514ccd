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

import "errors"

// Error taxonomy of the core. Every error here is fatal for the run:
// filtering correctness is a precondition for all downstream steps, so the
// core never substitutes a default result for an error condition. Wrapped
// errors are matchable with errors.Is.
var (
	// ErrUnknownComponent indicates a declarative record names a component
	// with no registered prototype or binding.
	ErrUnknownComponent = errors.New("unknown component")

	// ErrDuplicateName indicates two different component types were
	// registered under one symbolic name. Re-registering the identical type
	// is not an error.
	ErrDuplicateName = errors.New("duplicate component name")

	// ErrComponentData indicates a declarative record is missing or
	// mismatching the fields the target component requires.
	ErrComponentData = errors.New("invalid component data")

	// ErrUninitializedShard indicates a shard filter was evaluated before
	// the caller injected a non-negative valid shard.
	ErrUninitializedShard = errors.New("shard filter not initialized")

	// ErrUnknownAggregator indicates an aggregate filter was configured with
	// an aggregator outside {all, any}.
	ErrUnknownAggregator = errors.New("unknown aggregator")

	// ErrExternalProcess indicates a script filter subprocess exited
	// non-zero, timed out, or produced an unparsable result.
	ErrExternalProcess = errors.New("external process error")
)
