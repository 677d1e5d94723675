package npc

import (
	"sort"
	"sync"
)

// Registry maps leaf names to the functions behind them, decoupling tree
// configuration from concrete implementations.
type Registry[C any] struct {
	mu    sync.RWMutex
	acts  map[string]func(C)
	conds map[string]func(C) bool
}

// NewRegistry returns an empty registry.
func NewRegistry[C any]() *Registry[C] {
	return &Registry[C]{
		acts:  make(map[string]func(C)),
		conds: make(map[string]func(C) bool),
	}
}

func (r *Registry[C]) RegisterAction(name string, fn func(C)) {
	r.mu.Lock()
	r.acts[name] = fn
	r.mu.Unlock()
}

func (r *Registry[C]) RegisterCondition(name string, fn func(C) bool) {
	r.mu.Lock()
	r.conds[name] = fn
	r.mu.Unlock()
}

func (r *Registry[C]) Action(name string) (func(C), bool) {
	r.mu.RLock()
	fn, ok := r.acts[name]
	r.mu.RUnlock()
	return fn, ok
}

func (r *Registry[C]) Condition(name string) (func(C) bool, bool) {
	r.mu.RLock()
	fn, ok := r.conds[name]
	r.mu.RUnlock()
	return fn, ok
}

// Actions returns the registered action names, sorted.
func (r *Registry[C]) Actions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.acts)
}

// Conditions returns the registered condition names, sorted.
func (r *Registry[C]) Conditions() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.conds)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
