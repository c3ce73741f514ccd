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

// Package registry implements the generic component registry that turns a
// declarative `{"name": ..., ...}` record into a live component instance.
// One Registry exists per component family (filters, inputs, batchers); the
// type parameter guarantees a family registry only ever hands out members of
// its own family.
package registry

import (
	"fmt"
	"plugin"
	"reflect"
	"sync"

	"github.com/autopatch/autopatch/api/types"
)

// PluginsSymbol is the exported symbol a Go plugin must provide to
// contribute components, implementing types.PluginRegistry.
const PluginsSymbol = "Plugins"

// nameField is the record field naming the component type.
const nameField = "name"

// Registry maps symbolic component names to prototypes of one component
// family. Built-in components register eagerly from their package init;
// deployment-specific components arrive as lazy plugin bindings that are
// resolved on first use and cached for the process lifetime.
type Registry[T types.Component] struct {
	sync.RWMutex
	// components maps component type to its registered prototype.
	components map[string]T
	// bindings maps component type to a plugin file not yet loaded.
	bindings map[string]string
	// bindingsFile is the conventional deployment file declaring extra
	// bindings for this family, e.g. "filter.json". Loading and parsing the
	// file is a configuration concern outside this package; parsed bindings
	// come in through MergeBindings.
	bindingsFile string
}

// New creates an empty registry for one component family.
func New[T types.Component](bindingsFile string) *Registry[T] {
	return &Registry[T]{
		components:   make(map[string]T),
		bindings:     make(map[string]string),
		bindingsFile: bindingsFile,
	}
}

// BindingsFile returns the conventional custom-bindings file name of this
// family.
func (r *Registry[T]) BindingsFile() string {
	return r.bindingsFile
}

// Register adds a component prototype to the registry. Registering the same
// concrete type under its name again is a no-op (first registration wins);
// registering a different type under an existing name fails with
// types.ErrDuplicateName.
func (r *Registry[T]) Register(component T) error {
	r.Lock()
	defer r.Unlock()
	return r.register(component)
}

// register requires r's write lock.
func (r *Registry[T]) register(component T) error {
	componentType := component.Type()
	if existing, ok := r.components[componentType]; ok {
		if reflect.TypeOf(existing) == reflect.TypeOf(component) {
			return nil
		}
		return fmt.Errorf("%w: componentType=%s", types.ErrDuplicateName, componentType)
	}
	if _, ok := r.bindings[componentType]; ok {
		return fmt.Errorf("%w: componentType=%s already bound to a plugin", types.ErrDuplicateName, componentType)
	}
	r.components[componentType] = component
	return nil
}

// Add registers a component prototype, ignoring duplicate registrations of
// the identical type. Intended for package init blocks.
func (r *Registry[T]) Add(component T) {
	_ = r.Register(component)
}

// MergeBindings records deployment-specific name to plugin-file bindings,
// already parsed from the family's bindings file. Plugins are not loaded
// here: the cost and failure surface of loading is paid on the first use of
// each name. A binding conflicting with a registered component or an
// existing different binding fails with types.ErrDuplicateName.
func (r *Registry[T]) MergeBindings(bindings map[string]string) error {
	r.Lock()
	defer r.Unlock()
	for componentType, file := range bindings {
		if _, ok := r.components[componentType]; ok {
			return fmt.Errorf("%w: componentType=%s", types.ErrDuplicateName, componentType)
		}
		if existing, ok := r.bindings[componentType]; ok && existing != file {
			return fmt.Errorf("%w: componentType=%s", types.ErrDuplicateName, componentType)
		}
	}
	for componentType, file := range bindings {
		r.bindings[componentType] = file
	}
	return nil
}

// Components returns the prototypes registered so far. Unloaded plugin
// bindings are not included.
func (r *Registry[T]) Components() []T {
	r.RLock()
	defer r.RUnlock()
	components := make([]T, 0, len(r.components))
	for _, component := range r.components {
		components = append(components, component)
	}
	return components
}

// New creates a new instance of the component registered under
// componentType. Unknown names fail with types.ErrUnknownComponent.
// Lookups of resolved names only take the read lock.
func (r *Registry[T]) New(componentType string) (T, error) {
	var zero T
	r.RLock()
	prototype, ok := r.components[componentType]
	_, pending := r.bindings[componentType]
	r.RUnlock()

	if !ok && pending {
		var err error
		if prototype, ok, err = r.resolveBinding(componentType); err != nil {
			return zero, err
		}
	}
	if !ok {
		return zero, fmt.Errorf("%w: componentType=%s", types.ErrUnknownComponent, componentType)
	}
	instance, ok := prototype.New().(T)
	if !ok {
		return zero, fmt.Errorf("%w: componentType=%s New() escapes its component family", types.ErrComponentData, componentType)
	}
	return instance, nil
}

// NewFromConfig resolves a full declarative record: it reads the `name`
// field, creates a fresh instance and initializes it with the remaining
// fields. Construction from the same record is deterministic.
func (r *Registry[T]) NewFromConfig(config types.Config, configuration types.Configuration) (T, error) {
	var zero T
	name, ok := configuration[nameField].(string)
	if !ok || name == "" {
		return zero, fmt.Errorf("%w: record is missing the %q field", types.ErrComponentData, nameField)
	}
	instance, err := r.New(name)
	if err != nil {
		return zero, err
	}
	fields := make(types.Configuration, len(configuration))
	for k, v := range configuration {
		if k != nameField {
			fields[k] = v
		}
	}
	if err = instance.Init(config, fields); err != nil {
		return zero, fmt.Errorf("%w: componentType=%s: %v", types.ErrComponentData, name, err)
	}
	return instance, nil
}

// resolveBinding loads the plugin bound to componentType and registers every
// component it provides. Resolution happens at most once per binding; later
// lookups hit the components map directly.
func (r *Registry[T]) resolveBinding(componentType string) (T, bool, error) {
	var zero T
	r.Lock()
	defer r.Unlock()
	// Another caller may have resolved the binding while we waited.
	if prototype, ok := r.components[componentType]; ok {
		return prototype, true, nil
	}
	file, ok := r.bindings[componentType]
	if !ok {
		return zero, false, nil
	}
	pluginRegistry, err := loadPlugin(file)
	if err != nil {
		return zero, false, fmt.Errorf("%w: componentType=%s plugin %q: %v", types.ErrUnknownComponent, componentType, file, err)
	}
	for _, component := range pluginRegistry.Components() {
		member, ok := component.(T)
		if !ok {
			return zero, false, fmt.Errorf("%w: plugin %q component %s does not belong to this family", types.ErrComponentData, file, component.Type())
		}
		if err = r.register(member); err != nil {
			return zero, false, err
		}
		delete(r.bindings, member.Type())
	}
	delete(r.bindings, componentType)
	prototype, ok := r.components[componentType]
	if !ok {
		return zero, false, fmt.Errorf("%w: plugin %q does not provide componentType=%s", types.ErrUnknownComponent, file, componentType)
	}
	return prototype, true, nil
}

// loadPlugin opens a plugin file and looks up its exported component registry.
func loadPlugin(file string) (types.PluginRegistry, error) {
	p, err := plugin.Open(file)
	if err != nil {
		return nil, err
	}
	sym, err := p.Lookup(PluginsSymbol)
	if err != nil {
		return nil, err
	}
	pluginRegistry, ok := sym.(types.PluginRegistry)
	if !ok {
		return nil, fmt.Errorf("invalid plugin: symbol %s does not implement types.PluginRegistry", PluginsSymbol)
	}
	if err = pluginRegistry.Init(); err != nil {
		return nil, err
	}
	return pluginRegistry, nil
}
