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
//   "name": "script",
//   "script": "scripts/validate.py",
//   "args": ["--items", "<<ITEM_FILE>>", "--out", "<<RESULT_FILE>>"],
//   "timeout": 30,
//   "chunk_size": 500
// }
import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/autopatch/autopatch/api/types"
	"github.com/autopatch/autopatch/utils/json"
	"github.com/autopatch/autopatch/utils/maps"
)

// Placeholder tokens substituted in the configured argument list.
const (
	ItemFilePlaceholder   = "<<ITEM_FILE>>"
	ResultFilePlaceholder = "<<RESULT_FILE>>"
)

func init() {
	Registry.Add(&ScriptFilter{})
}

// ScriptFilterConfiguration is the filter configuration.
type ScriptFilterConfiguration struct {
	// Script is the program to invoke.
	Script string
	// Args is the literal argument list. It may reference the chunk's item
	// file with <<ITEM_FILE>> and the result file with <<RESULT_FILE>>.
	Args []string
	// Timeout is the per-invocation limit in seconds.
	Timeout float64
	// ChunkSize caps how many items one invocation sees. Zero means all
	// items in a single chunk.
	ChunkSize int `mapstructure:"chunk_size"`
}

// ScriptFilter delegates bulk validity decisions to an external program.
//
// Candidate items are split into chunks. For each chunk the filter writes
// the item bundles as a JSON array to a fresh temporary item file, allocates
// a fresh temporary result file, substitutes the placeholder tokens in the
// argument list and runs the script synchronously under the configured
// timeout. If the configured (unsubstituted) argument list references
// <<RESULT_FILE>>, the script is expected to write a JSON array of valid
// item keys there; otherwise its stdout is parsed as that array. Chunk
// results are unioned into the run's valid-key set.
//
// A non-zero exit, a timeout or an unparsable result aborts the run,
// including all remaining chunks: the schema cannot continue filtering with
// unknown validity, so there is no partial-result recovery.
type ScriptFilter struct {
	BulkFilter
	Config         ScriptFilterConfiguration
	ruleConfig     types.Config
	usesResultFile bool
}

// Type returns the component type.
func (x *ScriptFilter) Type() string {
	return "script"
}

func (x *ScriptFilter) New() types.Component {
	return &ScriptFilter{}
}

// Init configures the filter.
func (x *ScriptFilter) Init(config types.Config, configuration types.Configuration) error {
	if err := x.BaseFilter.Init(configuration); err != nil {
		return err
	}
	if err := maps.Map2Struct(configuration, &x.Config); err != nil {
		return err
	}
	if x.Config.Script == "" {
		return fmt.Errorf("%w: script is required", types.ErrComponentData)
	}
	if x.Config.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be a positive number of seconds", types.ErrComponentData)
	}
	if x.Config.ChunkSize < 0 {
		return fmt.Errorf("%w: chunk_size must not be negative", types.ErrComponentData)
	}
	x.ruleConfig = config
	for _, arg := range x.Config.Args {
		if strings.Contains(arg, ResultFilePlaceholder) {
			x.usesResultFile = true
			break
		}
	}
	return nil
}

// PreProcess runs the script over the candidate set and caches the unioned
// valid-key set for the per-item checks.
func (x *ScriptFilter) PreProcess(ctx context.Context, items []types.Item) error {
	return x.cacheValidKeys(ctx, items, x.fetchValidKeys)
}

// fetchValidKeys processes the chunks in order, sequentially. The first
// failing chunk aborts the whole fetch.
func (x *ScriptFilter) fetchValidKeys(ctx context.Context, items []types.Item) (map[string]struct{}, error) {
	validKeys := make(map[string]struct{})
	if len(items) == 0 {
		return validKeys, nil
	}
	chunkSize := x.Config.ChunkSize
	if chunkSize == 0 || chunkSize > len(items) {
		chunkSize = len(items)
	}
	for start := 0; start < len(items); start += chunkSize {
		end := start + chunkSize
		if end > len(items) {
			end = len(items)
		}
		keys, err := x.runChunk(ctx, items[start:end])
		if err != nil {
			return nil, err
		}
		for _, key := range keys {
			validKeys[key] = struct{}{}
		}
	}
	return validKeys, nil
}

// runChunk performs one script invocation. Both temporary files belong to
// this invocation alone and are removed on every exit path.
func (x *ScriptFilter) runChunk(ctx context.Context, chunk []types.Item) ([]string, error) {
	itemFile, err := x.writeItemFile(chunk)
	if err != nil {
		return nil, err
	}
	defer os.Remove(itemFile)

	resultFile, err := os.CreateTemp("", "autopatch-result-*.json")
	if err != nil {
		return nil, err
	}
	if err = resultFile.Close(); err != nil {
		os.Remove(resultFile.Name())
		return nil, err
	}
	defer os.Remove(resultFile.Name())

	args := make([]string, len(x.Config.Args))
	for i, arg := range x.Config.Args {
		arg = strings.ReplaceAll(arg, ItemFilePlaceholder, itemFile)
		arg = strings.ReplaceAll(arg, ResultFilePlaceholder, resultFile.Name())
		args[i] = arg
	}

	timeout := time.Duration(x.Config.Timeout * float64(time.Second))
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, x.Config.Script, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	x.onDebug(types.EventExec, x.Config.Script+" "+strings.Join(args, " "), nil)
	runErr := cmd.Run()
	if stdout.Len() > 0 {
		x.onDebug(types.EventStdout, stdout.String(), nil)
	}
	if stderr.Len() > 0 {
		x.onDebug(types.EventStderr, stderr.String(), runErr)
	}

	if cctx.Err() == context.DeadlineExceeded {
		return nil, fmt.Errorf("%w: script %q timed out after %v", types.ErrExternalProcess, x.Config.Script, timeout)
	}
	if runErr != nil {
		return nil, fmt.Errorf("%w: script %q: %v: %s", types.ErrExternalProcess, x.Config.Script, runErr, strings.TrimSpace(stderr.String()))
	}

	raw, err := x.readResult(resultFile.Name(), stdout.Bytes())
	if err != nil {
		return nil, err
	}
	var keys []string
	if err = json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("%w: script %q produced malformed result JSON: %v", types.ErrExternalProcess, x.Config.Script, err)
	}
	return keys, nil
}

// writeItemFile serializes the chunk's item bundles to a fresh temp file.
func (x *ScriptFilter) writeItemFile(chunk []types.Item) (string, error) {
	bundles := make([]map[string]interface{}, len(chunk))
	for i, item := range chunk {
		bundles[i] = item.Bundle()
	}
	data, err := json.Marshal(bundles)
	if err != nil {
		return "", err
	}
	itemFile, err := os.CreateTemp("", "autopatch-items-*.json")
	if err != nil {
		return "", err
	}
	if _, err = itemFile.Write(data); err != nil {
		itemFile.Close()
		os.Remove(itemFile.Name())
		return "", err
	}
	if err = itemFile.Close(); err != nil {
		os.Remove(itemFile.Name())
		return "", err
	}
	return itemFile.Name(), nil
}

// readResult picks the chunk's result source: the result file when the
// configured args reference it, stdout otherwise. With the stdout
// convention an empty output is a protocol violation, not an empty result;
// a script with nothing valid must still print "[]".
func (x *ScriptFilter) readResult(resultFile string, stdout []byte) ([]byte, error) {
	if x.usesResultFile {
		raw, err := os.ReadFile(resultFile)
		if err != nil {
			return nil, fmt.Errorf("%w: script %q result file: %v", types.ErrExternalProcess, x.Config.Script, err)
		}
		return raw, nil
	}
	raw := bytes.TrimSpace(stdout)
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: script %q wrote no result to stdout", types.ErrExternalProcess, x.Config.Script)
	}
	return raw, nil
}

// onDebug forwards a one-way debug event to the configured hook, if any.
func (x *ScriptFilter) onDebug(eventType string, data string, err error) {
	if x.ruleConfig.OnDebug != nil {
		x.ruleConfig.OnDebug(x.Type(), eventType, data, err)
	}
}
