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
//   "name": "keyHashShard",
//   "num_shards": 4
// }
//
// The valid shard is not part of the record; the scheduler injects it with
// SetValidShard before the run evaluates.
import (
	"crypto/md5"
	"fmt"
	"math/big"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/utils/maps"
)

func init() {
	Registry.Add(&KeyHashShardFilter{})
}

// ShardFilter is the base of filters that partition the candidate set into
// a fixed number of shards and pass only the items of one shard. It holds
// the declarative shard count and the runtime-injected valid shard.
type ShardFilter struct {
	BaseFilter
	numShards  int
	validShard int
}

// initShards fixes the shard count and resets the valid shard to the
// uninitialized state.
func (x *ShardFilter) initShards(numShards int) error {
	if numShards <= 0 {
		return fmt.Errorf("%w: num_shards must be positive, got %d", types.ErrComponentData, numShards)
	}
	x.numShards = numShards
	x.validShard = -1
	return nil
}

// NumShards returns the shard count.
func (x *ShardFilter) NumShards() int {
	return x.numShards
}

// SetValidShard injects the shard this run is responsible for. It must be
// called before evaluation.
func (x *ShardFilter) SetValidShard(shard int) {
	x.validShard = shard
}

// checkShard reports whether shard is the valid shard. Evaluating before
// SetValidShard is a configuration error, never a silent false.
func (x *ShardFilter) checkShard(shard int) (bool, error) {
	if x.validShard < 0 {
		return false, fmt.Errorf("%w: valid shard not set", types.ErrUninitializedShard)
	}
	return shard == x.validShard, nil
}

// KeyHashShardFilterConfiguration is the filter configuration.
type KeyHashShardFilterConfiguration struct {
	// NumShards is the fixed number of partition buckets.
	NumShards int `mapstructure:"num_shards"`
}

// KeyHashShardFilter assigns every item to a shard by hashing its key:
// MD5 of the UTF-8 key bytes, interpreted as a big unsigned integer, modulo
// the shard count. MD5 is used for uniform bucket distribution, not for
// security. The assignment is stable across processes, machines and
// independent instances, which is what lets distributed runs agree on a
// partition without coordinating.
type KeyHashShardFilter struct {
	ShardFilter
	Config KeyHashShardFilterConfiguration
}

// Type returns the component type.
func (x *KeyHashShardFilter) Type() string {
	return "keyHashShard"
}

func (x *KeyHashShardFilter) New() types.Component {
	return &KeyHashShardFilter{}
}

// Init configures the shard count. The valid shard starts uninitialized.
func (x *KeyHashShardFilter) Init(config types.Config, configuration types.Configuration) error {
	if err := x.BaseFilter.Init(configuration); err != nil {
		return err
	}
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	return x.initShards(x.Config.NumShards)
}

// Check reports whether the item's shard is the valid shard.
func (x *KeyHashShardFilter) Check(item types.Item) (bool, error) {
	return x.checkShard(x.shard(item))
}

// shard computes the item's bucket in [0, numShards).
func (x *KeyHashShardFilter) shard(item types.Item) int {
	digest := md5.Sum([]byte(item.Key()))
	n := new(big.Int).SetBytes(digest[:])
	return int(n.Mod(n, big.NewInt(int64(x.numShards))).Int64())
}
