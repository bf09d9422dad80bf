// Package host provides in-memory implementations of the host server
// capabilities. The standalone service and the package tests run on them.
package host

import (
	"fmt"
	"strings"
	"sync"
)

// Engine tracks which worlds are materialised. Loads complete immediately.
type Engine struct {
	mu      sync.RWMutex
	loaded  map[string]bool
	deleted map[string]bool
	blocks  map[string]string
}

func NewEngine() *Engine {
	return &Engine{
		loaded:  map[string]bool{},
		deleted: map[string]bool{},
		blocks:  map[string]string{},
	}
}

func (e *Engine) EnsureLoaded(name string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := strings.ToLower(name)
	delete(e.deleted, k)
	e.loaded[k] = true
	return true
}

func (e *Engine) Unload(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	delete(e.loaded, strings.ToLower(name))
	return nil
}

func (e *Engine) Delete(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	k := strings.ToLower(name)
	if e.loaded[k] {
		return fmt.Errorf("world %q is still loaded", name)
	}
	e.deleted[k] = true
	return nil
}

func (e *Engine) Loaded(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.loaded[strings.ToLower(name)]
}

// Deleted reports whether Delete was called for name.
func (e *Engine) Deleted(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.deleted[strings.ToLower(name)]
}

func (e *Engine) SetBlock(world string, x, y, z int, material string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.blocks[blockKey(world, x, y, z)] = material
	return nil
}

// Block returns the material last placed at the position.
func (e *Engine) Block(world string, x, y, z int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.blocks[blockKey(world, x, y, z)]
}

func blockKey(world string, x, y, z int) string {
	return fmt.Sprintf("%s:%d:%d:%d", strings.ToLower(world), x, y, z)
}
