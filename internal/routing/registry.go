package routing

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
)

// ErrHandlerNotFound is returned when a route names an unregistered handler.
var ErrHandlerNotFound = errors.New("handler not found")

// HandlerRegistry maps the handler names used in the route table to page
// handlers.
type HandlerRegistry struct {
	mu       sync.RWMutex
	handlers map[string]gin.HandlerFunc
}

func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		handlers: make(map[string]gin.HandlerFunc),
	}
}

// Register adds a handler. Names are unique.
func (r *HandlerRegistry) Register(name string, handler gin.HandlerFunc) error {
	if handler == nil {
		return fmt.Errorf("handler %s is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("handler %s already registered", name)
	}
	r.handlers[name] = handler
	return nil
}

// RegisterBatch registers every handler in handlers, stopping at the first
// conflict.
func (r *HandlerRegistry) RegisterBatch(handlers map[string]gin.HandlerFunc) error {
	for name, handler := range handlers {
		if err := r.Register(name, handler); err != nil {
			return err
		}
	}
	return nil
}

// Get looks a handler up by name.
func (r *HandlerRegistry) Get(name string) (gin.HandlerFunc, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, exists := r.handlers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrHandlerNotFound, name)
	}
	return handler, nil
}

func (r *HandlerRegistry) HandlerExists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.handlers[name]
	return exists
}
