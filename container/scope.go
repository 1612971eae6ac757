// Copyright (c) 2026 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package container

import (
	"io"
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Scope bounds the lifetime of Scoped values. Values resolved through a
// Scope that implement io.Closer, other than Singletons and supplied
// instances, are closed with it.
type Scope struct {
	c *Container

	mu         sync.Mutex
	components map[reflect.Type][]*component
	instances  map[Key]reflect.Value
	closers    []io.Closer
	closed     bool
}

func newScope(c *Container) *Scope {
	return &Scope{
		c:          c,
		components: make(map[reflect.Type][]*component),
		instances:  make(map[Key]reflect.Value),
	}
}

// Supply makes instance resolvable as service within this scope only. It
// takes precedence over the container's registrations for Resolve and is
// listed after them by ResolveAll.
func (s *Scope) Supply(service reflect.Type, instance interface{}) error {
	comp, err := newInstanceComponent(service, instance)
	if err != nil {
		return err
	}
	if comp.Service == nil {
		comp.Service = comp.Implementation
	}
	if !comp.Implementation.AssignableTo(comp.Service) {
		return errors.Wrapf(ErrInvalid, "%v is not assignable to %v", comp.Implementation, comp.Service)
	}
	comp.Lifetime = Scoped
	comp.Default = true

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	comp.Key = s.c.newKey()
	s.components[comp.Service] = append(s.components[comp.Service], comp)
	return nil
}

// Has reports whether service is registered on the scope or its container.
func (s *Scope) Has(service reflect.Type) bool {
	if service == nil {
		return false
	}
	if s.c.Has(service) {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.components[service]) > 0
}

// Resolve returns the value of the default registration for service.
func (s *Scope) Resolve(service reflect.Type) (reflect.Value, error) {
	if err := s.checkOpen(); err != nil {
		return reflect.Value{}, err
	}
	return (&resolution{c: s.c, scope: s}).Resolve(service)
}

// ResolveAll returns the values of every registration for service.
func (s *Scope) ResolveAll(service reflect.Type) ([]reflect.Value, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	return (&resolution{c: s.c, scope: s}).ResolveAll(service)
}

// Close releases the scope's values, closing those that implement
// io.Closer in reverse order of construction. Closing twice is a no-op.
func (s *Scope) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	closers := s.closers
	s.closers = nil
	s.instances = nil
	s.components = nil
	s.mu.Unlock()

	return closeAll(closers)
}

func (s *Scope) checkOpen() error {
	if err := s.c.checkOpen(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func (s *Scope) candidates(service reflect.Type) []*component {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*component(nil), s.components[service]...)
}

func (s *Scope) instance(k Key) (reflect.Value, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.instances[k]
	return v, ok
}

// storeInstance keeps the first value stored for k and closes a value that
// lost the race.
func (s *Scope) storeInstance(k Key, v reflect.Value) (reflect.Value, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return reflect.Value{}, multierr.Append(ErrClosed, closeValue(v))
	}
	if existing, ok := s.instances[k]; ok {
		s.mu.Unlock()
		return existing, closeValue(v)
	}
	s.instances[k] = v
	if closer, ok := asCloser(v); ok {
		s.closers = append(s.closers, closer)
	}
	s.mu.Unlock()
	return v, nil
}

func (s *Scope) track(v reflect.Value) error {
	closer, ok := asCloser(v)
	if !ok {
		return nil
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return multierr.Append(ErrClosed, closer.Close())
	}
	s.closers = append(s.closers, closer)
	s.mu.Unlock()
	return nil
}
