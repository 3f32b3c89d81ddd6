// Package handlers is the registry of built-in Go task handlers. A component
// whose script reads "handler:<name> [args...]" is run by the handler
// registered under that name instead of an external command.
package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sync"
)

// Func is the signature of a registered handler. Handlers must return
// promptly once ctx is done; one that does not is abandoned when its attempt
// times out and keeps running in the background.
type Func func(ctx context.Context, call Call) error

// Call carries the arguments of one handler invocation.
type Call struct {
	// ID is the component being installed.
	ID     string
	Args   []string
	Stdout io.Writer
}

// Module is implemented by packages that contribute handlers.
type Module interface {
	Register(h *Handlers)
}

// RegisteredHandler is a handler plus a short description for listings.
type RegisteredHandler struct {
	Description string
	Fn          Func
}

// Handlers holds all the registered handlers.
type Handlers struct {
	mu  sync.RWMutex
	all map[string]*RegisteredHandler
}

// New creates an empty registry.
func New(modules ...Module) *Handlers {
	h := &Handlers{
		all: make(map[string]*RegisteredHandler),
	}
	for _, m := range modules {
		m.Register(h)
	}
	return h
}

// RegisterHandler registers a handler under name. Registering the same name
// twice is a programming error and panics.
func (h *Handlers) RegisterHandler(name string, handler *RegisteredHandler) {
	if handler == nil || handler.Fn == nil {
		panic(fmt.Sprintf("handler '%s' has no function", name))
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.all[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	slog.Debug("Registering task handler.", "name", name)
	h.all[name] = handler
}

// Lookup returns the handler registered under name.
func (h *Handlers) Lookup(name string) (*RegisteredHandler, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	handler, ok := h.all[name]
	return handler, ok
}

// Names returns the registered handler names, sorted.
func (h *Handlers) Names() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	names := make([]string, 0, len(h.all))
	for name := range h.all {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
