package backend

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates a canvas of the given size. Factories are registered with
// Register and called by NewCanvas.
type Factory func(width, height int) (Canvas, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
)

// Register makes a canvas implementation available by name. It is meant to
// be called from init in the implementing package, the way database/sql
// drivers register:
//
//	func init() {
//		backend.Register("raster", func(w, h int) (backend.Canvas, error) {
//			return NewCanvas(w, h)
//		})
//	}
//
// Register panics if factory is nil or name is already registered.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if factory == nil {
		panic("backend: Register factory is nil")
	}
	if _, dup := factories[name]; dup {
		panic("backend: Register called twice for " + name)
	}
	factories[name] = factory
}

// Unregister removes a canvas implementation. It is a no-op for unknown names.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// NewCanvas creates a canvas with a registered implementation.
// The error wraps ErrUnknownCanvas when name was never registered.
func NewCanvas(name string, width, height int) (Canvas, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownCanvas, name)
	}
	c, err := factory(width, height)
	if err != nil {
		return nil, fmt.Errorf("backend: create %s canvas: %w", name, err)
	}
	return c, nil
}

// MustCanvas is NewCanvas that panics on error.
func MustCanvas(name string, width, height int) Canvas {
	c, err := NewCanvas(name, width, height)
	if err != nil {
		panic(err)
	}
	return c
}

// Canvases returns the registered names in sorted order.
func Canvases() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Count returns the number of registered implementations.
func Count() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(factories)
}
