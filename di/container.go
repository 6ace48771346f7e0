// Package di provides a type-keyed dependency injection container.
// Services are singletons: one instance per concrete type, registered at
// startup and resolved by generic functions, so lookups are compile-time
// typed with no string keys.
package di

import (
	"fmt"
	"reflect"
	"sync"
)

// Container stores one service instance per type. The zero value is not
// usable; call New.
type Container struct {
	mu       sync.RWMutex
	services map[reflect.Type]any
}

// New creates an empty container.
func New() *Container {
	return &Container{
		services: make(map[reflect.Type]any),
	}
}

// Register stores svc under its type T. Registering a type twice replaces
// the earlier instance.
func Register[T any](c *Container, svc T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.services[reflect.TypeFor[T]()] = svc
}

// Provide constructs a service with factory and registers it.
func Provide[T any](c *Container, factory func() T) {
	Register(c, factory())
}

// Resolve returns the service registered under T, or false when absent.
func Resolve[T any](c *Container) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	svc, ok := c.services[reflect.TypeFor[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return svc.(T), true
}

// MustResolve returns the service registered under T, panicking with the
// type name when it was never registered. Intended for application wiring,
// where a missing service is a programming error.
func MustResolve[T any](c *Container) T {
	svc, ok := Resolve[T](c)
	if !ok {
		panic(fmt.Sprintf("di: service %s not registered", reflect.TypeFor[T]()))
	}
	return svc
}

// Contains reports whether a service of type T is registered.
func Contains[T any](c *Container) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.services[reflect.TypeFor[T]()]
	return ok
}

// Len returns the number of registered services.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.services)
}

// IsEmpty reports whether no services are registered.
func (c *Container) IsEmpty() bool {
	return c.Len() == 0
}

// Clear removes all services.
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.services)
}
