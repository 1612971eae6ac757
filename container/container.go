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
	"bytes"
	"fmt"
	"io"
	"reflect"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.uber.org/resthost/internal/resolvereflect"
)

// Container holds registrations and the Singleton values built from them.
// It is safe for concurrent use.
type Container struct {
	mu         sync.RWMutex
	components map[reflect.Type][]*component
	keys       map[Key]*component
	singletons map[Key]reflect.Value
	closers    []io.Closer
	facilities []Facility
	newKey     func() Key
	closed     bool
}

// New builds an empty Container.
func New(opts ...Option) *Container {
	c := &Container{
		components: make(map[reflect.Type][]*component),
		keys:       make(map[Key]*component),
		singletons: make(map[Key]reflect.Value),
		newKey:     newUUIDKey,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Provide registers constructor as an implementation of service.
//
// The constructor must be a function returning the implementation and,
// optionally, an error. Its parameters are resolved from the container each
// time it is called. A nil service registers the implementation as itself.
func (c *Container) Provide(service reflect.Type, constructor interface{}, opts ...ProvideOption) (Key, error) {
	if constructor == nil {
		return "", errors.Wrap(ErrInvalid, "constructor is nil")
	}
	cv := reflect.ValueOf(constructor)
	ct := cv.Type()
	if err := checkConstructor(ct); err != nil {
		return "", err
	}

	deps := make([]reflect.Type, ct.NumIn())
	for i := range deps {
		deps[i] = ct.In(i)
	}

	return c.register(&component{
		Registration: Registration{
			Service:        service,
			Implementation: ct.Out(0),
		},
		deps: deps,
		activate: func(args []reflect.Value) (reflect.Value, error) {
			out := cv.Call(args)
			if len(out) == 2 && !out[1].IsNil() {
				return reflect.Value{}, out[1].Interface().(error)
			}
			return out[0], nil
		},
	}, opts)
}

// Supply registers a fixed instance of service. A nil service registers the
// instance under its own type. The container does not close supplied
// instances.
func (c *Container) Supply(service reflect.Type, instance interface{}, opts ...ProvideOption) (Key, error) {
	comp, err := newInstanceComponent(service, instance)
	if err != nil {
		return "", err
	}
	return c.register(comp, opts)
}

// Factory is a deferred construction whose arguments are resolved from the
// container before Func is called.
type Factory struct {
	Service        reflect.Type
	Implementation reflect.Type
	Args           []reflect.Type
	Func           func(args []reflect.Value) (reflect.Value, error)
}

// ProvideFactory registers f. When f.Implementation is nil the service type
// is used.
func (c *Container) ProvideFactory(f Factory, opts ...ProvideOption) (Key, error) {
	if f.Service == nil {
		return "", errors.Wrap(ErrInvalid, "factory has no service type")
	}
	if f.Func == nil {
		return "", errors.Wrapf(ErrInvalid, "factory for %v is nil", f.Service)
	}
	impl := f.Implementation
	if impl == nil {
		impl = f.Service
	}
	for i, arg := range f.Args {
		if arg == nil {
			return "", errors.Wrapf(ErrInvalid, "factory for %v has no type for argument %d", f.Service, i)
		}
	}
	fn := f.Func
	return c.register(&component{
		Registration: Registration{
			Service:        f.Service,
			Implementation: impl,
		},
		deps: append([]reflect.Type(nil), f.Args...),
		activate: func(args []reflect.Value) (reflect.Value, error) {
			v, err := fn(args)
			if err != nil {
				return reflect.Value{}, err
			}
			if !v.IsValid() {
				return reflect.Value{}, errors.Errorf("factory for %v returned no value", f.Service)
			}
			if !v.Type().AssignableTo(impl) {
				return reflect.Value{}, errors.Wrapf(ErrInvalid, "factory for %v returned %v", f.Service, v.Type())
			}
			return v, nil
		},
	}, opts)
}

func (c *Container) register(comp *component, opts []ProvideOption) (Key, error) {
	var o provideOptions
	for _, opt := range opts {
		opt(&o)
	}
	switch o.Lifetime {
	case Transient, Scoped, Singleton:
	default:
		return "", errors.Wrapf(ErrInvalid, "unknown %v", o.Lifetime)
	}

	if comp.Service == nil {
		comp.Service = comp.Implementation
	}
	if !comp.Implementation.AssignableTo(comp.Service) {
		return "", errors.Wrapf(ErrInvalid, "%v is not assignable to %v", comp.Implementation, comp.Service)
	}
	comp.Lifetime = o.Lifetime
	comp.Default = o.Default

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return "", ErrClosed
	}
	if o.OnlyNewServices && len(c.components[comp.Service]) > 0 {
		return "", nil
	}

	key := o.Key
	if key == "" {
		key = c.newKey()
	}
	if _, ok := c.keys[key]; ok {
		return "", errors.Wrapf(ErrDuplicateKey, "%q", key)
	}
	comp.Key = key

	c.keys[key] = comp
	c.components[comp.Service] = append(c.components[comp.Service], comp)
	return key, nil
}

// Has reports whether service has at least one registration.
func (c *Container) Has(service reflect.Type) bool {
	if service == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.components[service]) > 0
}

// Registrations lists the registrations of service in registration order.
func (c *Container) Registrations(service reflect.Type) []Registration {
	c.mu.RLock()
	defer c.mu.RUnlock()

	comps := c.components[service]
	regs := make([]Registration, len(comps))
	for i, comp := range comps {
		regs[i] = comp.Registration
	}
	return regs
}

// Resolve returns the value of the default registration for service.
// Scoped registrations cannot be resolved from the Container; use a Scope.
func (c *Container) Resolve(service reflect.Type) (reflect.Value, error) {
	if err := c.checkOpen(); err != nil {
		return reflect.Value{}, err
	}
	return (&resolution{c: c}).Resolve(service)
}

// ResolveAll returns the values of every registration for service.
func (c *Container) ResolveAll(service reflect.Type) ([]reflect.Value, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return (&resolution{c: c}).ResolveAll(service)
}

// BeginScope starts a Scope. Each call returns an independent Scope that
// must be closed by the caller.
func (c *Container) BeginScope() (*Scope, error) {
	if err := c.checkOpen(); err != nil {
		return nil, err
	}
	return newScope(c), nil
}

// AddFacility adds f unless a facility with the same name is present.
func (c *Container) AddFacility(f Facility) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.addFacility(f)
}

func (c *Container) addFacility(f Facility) {
	for _, existing := range c.facilities {
		if existing.Name() == f.Name() {
			return
		}
	}
	c.facilities = append(c.facilities, f)
}

// HasFacility reports whether a facility with the given name was added.
func (c *Container) HasFacility(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, f := range c.facilities {
		if f.Name() == name {
			return true
		}
	}
	return false
}

// Close closes every Singleton value that implements io.Closer, most
// recently constructed first. Supplied instances are left alone. Closing
// twice is a no-op.
func (c *Container) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	closers := c.closers
	c.closers = nil
	c.singletons = make(map[Key]reflect.Value)
	c.mu.Unlock()

	return closeAll(closers)
}

func (c *Container) String() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var comps []*component
	for _, cs := range c.components {
		comps = append(comps, cs...)
	}
	sort.Slice(comps, func(i, j int) bool {
		return comps[i].Service.String() < comps[j].Service.String()
	})

	b := &bytes.Buffer{}
	fmt.Fprintln(b, "{registrations:")
	for _, comp := range comps {
		fmt.Fprintln(b, "\t", comp)
	}
	fmt.Fprintln(b, "}")
	return b.String()
}

func (c *Container) checkOpen() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClosed
	}
	return nil
}

func (c *Container) candidates(service reflect.Type) []*component {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*component(nil), c.components[service]...)
}

func (c *Container) facilityList() []Facility {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Facility(nil), c.facilities...)
}

func (c *Container) singleton(k Key) (reflect.Value, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.singletons[k]
	return v, ok
}

// storeSingleton keeps the first value stored for k. A value that lost a
// construction race is closed if it can be.
func (c *Container) storeSingleton(k Key, v reflect.Value) (reflect.Value, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return reflect.Value{}, multierr.Append(ErrClosed, closeValue(v))
	}
	if existing, ok := c.singletons[k]; ok {
		c.mu.Unlock()
		return existing, closeValue(v)
	}
	c.singletons[k] = v
	if closer, ok := asCloser(v); ok {
		c.closers = append(c.closers, closer)
	}
	c.mu.Unlock()
	return v, nil
}

func newInstanceComponent(service reflect.Type, instance interface{}) (*component, error) {
	if instance == nil {
		return nil, errors.Wrapf(ErrInvalid, "nil instance supplied for %v", service)
	}
	iv := reflect.ValueOf(instance)
	return &component{
		Registration: Registration{
			Service:        service,
			Implementation: iv.Type(),
			Instance:       true,
		},
		instance: iv,
	}, nil
}

func checkConstructor(ct reflect.Type) error {
	if ct.Kind() != reflect.Func {
		return errors.Wrapf(ErrInvalid, "constructor must be a function, got %v", ct)
	}
	if ct.IsVariadic() {
		return errors.Wrapf(ErrInvalid, "constructor %v must not be variadic", ct)
	}
	switch {
	case ct.NumOut() == 1 && !resolvereflect.IsError(ct.Out(0)):
	case ct.NumOut() == 2 && !resolvereflect.IsError(ct.Out(0)) && resolvereflect.IsError(ct.Out(1)):
	default:
		return errors.Wrapf(ErrInvalid, "constructor %v must return a value and an optional error", ct)
	}
	return nil
}

func asCloser(v reflect.Value) (io.Closer, bool) {
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if v.IsNil() {
			return nil, false
		}
	}
	closer, ok := v.Interface().(io.Closer)
	return closer, ok
}

func closeValue(v reflect.Value) error {
	if closer, ok := asCloser(v); ok {
		return closer.Close()
	}
	return nil
}

// closeAll closes closers in reverse order and combines their errors.
func closeAll(closers []io.Closer) error {
	var err error
	for i := len(closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, closers[i].Close())
	}
	return err
}
