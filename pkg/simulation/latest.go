package simulation

import (
	"sync"

	"github.com/lao-tseu-is-alive/go-text-swarm/pkg/behavior"
)

// Latest holds the most recent value written by one goroutine (the UI) for
// another (the swarm actor) to read once per tick.
type Latest[T any] struct {
	mu sync.RWMutex
	v  T
}

// NewLatest creates a holder with an initial value.
func NewLatest[T any](v T) *Latest[T] {
	return &Latest[T]{v: v}
}

// Load returns the current value.
func (l *Latest[T]) Load() T {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.v
}

// Store replaces the current value.
func (l *Latest[T]) Store(v T) {
	l.mu.Lock()
	l.v = v
	l.mu.Unlock()
}

// PointerSource supplies the pointer once per tick.
type PointerSource interface {
	Load() behavior.Pointer
}

// SettingsSource supplies the flock settings once per tick.
type SettingsSource interface {
	Load() behavior.Settings
}
