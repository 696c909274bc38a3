// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package evaluation

import (
	"fmt"
	"sync"
)

// Registry manages available validators for the supported task kinds.
type Registry struct {
	mu        sync.RWMutex
	factories map[TaskKind]ValidatorFactory
}

// NewRegistry creates a new validator registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[TaskKind]ValidatorFactory),
	}
}

// Register registers a validator factory for a task kind.
func (r *Registry) Register(kind TaskKind, factory ValidatorFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("validator already registered for task kind %s", kind)
	}

	r.factories[kind] = factory
	return nil
}

// Get retrieves the validator factory for a task kind.
func (r *Registry) Get(kind TaskKind) (ValidatorFactory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.factories[kind]
	if !exists {
		return nil, fmt.Errorf("no validator registered for task kind %s", kind)
	}

	return factory, nil
}

// CreateValidator creates a validator instance for a task kind.
func (r *Registry) CreateValidator(kind TaskKind, config ValidatorConfig) (Validator, error) {
	factory, err := r.Get(kind)
	if err != nil {
		return nil, err
	}

	return factory(config)
}

// ListKinds returns all registered task kinds.
func (r *Registry) ListKinds() []TaskKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]TaskKind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}

	return kinds
}

// IsRegistered checks whether a validator is registered for a task kind.
func (r *Registry) IsRegistered(kind TaskKind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.factories[kind]
	return exists
}

// DefaultRegistry is the global registry instance.
var DefaultRegistry = NewRegistry()

// Register registers a validator factory in the default registry.
func Register(kind TaskKind, factory ValidatorFactory) error {
	return DefaultRegistry.Register(kind, factory)
}

// CreateValidator creates a validator using the default registry.
func CreateValidator(kind TaskKind, config ValidatorConfig) (Validator, error) {
	return DefaultRegistry.CreateValidator(kind, config)
}
