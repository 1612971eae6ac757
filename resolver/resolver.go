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

package resolver

import (
	"io"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/uber-go/tally/v4"

	"go.uber.org/resthost/container"
	"go.uber.org/resthost/di"
	"go.uber.org/resthost/resolveevent"
)

// Resolver adapts a container.Container to the di contracts.
type Resolver struct {
	container        *container.Container
	disposeContainer bool
	log              resolveevent.Logger
	metrics          tally.Scope

	// mu serializes changes to the container.
	mu       sync.Mutex
	disposed atomic.Bool
}

var (
	_ di.Resolver              = (*Resolver)(nil)
	_ di.FactoryRegistrar      = (*Resolver)(nil)
	_ di.RequestScopedResolver = (*Resolver)(nil)
	_ io.Closer                = (*Resolver)(nil)
)

// selfTypes are the contracts a Resolver registers itself as.
var selfTypes = []reflect.Type{
	di.TypeOf[di.Resolver](),
	di.TypeOf[di.FactoryRegistrar](),
	di.TypeOf[di.RequestScopedResolver](),
}

// New builds a Resolver on top of c. The container is left open when the
// Resolver is closed unless DisposeContainer(true) is given.
func New(c *container.Container, opts ...Option) (*Resolver, error) {
	if c == nil {
		return nil, di.InvalidArgumentf("container is nil")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	r := &Resolver{
		container: c,
		log:       o.Logger,
		metrics:   o.Metrics,
	}
	if o.DisposeContainer != nil {
		r.disposeContainer = *o.DisposeContainer
	}
	if r.log == nil {
		r.log = resolveevent.NopLogger
	}
	if r.metrics == nil {
		r.metrics = tally.NoopScope
	}

	c.AddFacility(container.Collections)
	c.AddFacility(container.LazyFuncs)

	for _, t := range selfTypes {
		key, err := c.Supply(t, r,
			container.WithLifetime(container.Singleton),
			container.OnlyNewServices(),
		)
		r.log.LogEvent(&resolveevent.Registered{
			Service:        t,
			Implementation: reflect.TypeOf(r),
			Kind:           resolveevent.KindInstance,
			Lifetime:       di.Singleton.String(),
			Skipped:        err == nil && key == "",
			Err:            err,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "could not register resolver as %v", t)
		}
	}
	return r, nil
}

// NewDefault builds a Resolver that owns a new container and closes it when
// the Resolver is closed.
func NewDefault(opts ...Option) (*Resolver, error) {
	opts = append([]Option{DisposeContainer(true)}, opts...)
	return New(container.New(), opts...)
}

// Container returns the wrapped container.
func (r *Resolver) Container() *container.Container { return r.container }

// HasDependency reports whether service has a registration. It is false for
// a nil type and after Close.
func (r *Resolver) HasDependency(service reflect.Type) bool {
	if service == nil || r.disposed.Load() {
		return false
	}
	return r.container.Has(service)
}

// HasDependencyImplementation reports whether a registration of service
// produces exactly concrete.
func (r *Resolver) HasDependencyImplementation(service, concrete reflect.Type) bool {
	if service == nil || concrete == nil || r.disposed.Load() {
		return false
	}
	for _, reg := range r.container.Registrations(service) {
		if reg.Implementation == concrete {
			return true
		}
	}
	return false
}

// Resolve returns the default instance registered for service. Scoped
// services can only be resolved from a scope.
func (r *Resolver) Resolve(service reflect.Type) (interface{}, error) {
	if err := r.checkActive(); err != nil {
		return nil, err
	}
	if service == nil {
		return nil, di.InvalidArgumentf("cannot resolve a nil type")
	}
	v, err := r.container.Resolve(service)
	return r.resolved(service, v, err)
}

// ResolveAll returns every instance registered for service, in registration
// order.
func (r *Resolver) ResolveAll(service reflect.Type) ([]interface{}, error) {
	if err := r.checkActive(); err != nil {
		return nil, err
	}
	if service == nil {
		return nil, di.InvalidArgumentf("cannot resolve a nil type")
	}
	vs, err := r.container.ResolveAll(service)
	return r.resolvedAll(service, vs, err)
}

// AddDependency registers constructor as an implementation of service.
func (r *Resolver) AddDependency(service reflect.Type, constructor interface{}, lifetime di.Lifetime) error {
	if service == nil {
		return r.registered(&resolveevent.Registered{
			Kind: resolveevent.KindType,
			Err:  di.InvalidArgumentf("service type is nil"),
		})
	}
	return r.addType(service, constructor, lifetime)
}

// AddConcreteDependency registers constructor as the implementation of its
// own result type.
func (r *Resolver) AddConcreteDependency(constructor interface{}, lifetime di.Lifetime) error {
	return r.addType(nil, constructor, lifetime)
}

func (r *Resolver) addType(service reflect.Type, constructor interface{}, lifetime di.Lifetime) error {
	ev := &resolveevent.Registered{
		Service:     service,
		Kind:        resolveevent.KindType,
		Lifetime:    lifetime.String(),
		Constructor: constructor,
	}
	if ct := reflect.TypeOf(constructor); ct != nil && ct.Kind() == reflect.Func && ct.NumOut() > 0 {
		ev.Implementation = ct.Out(0)
		if service == nil {
			ev.Service = ev.Implementation
		}
	}

	l, err := toContainerLifetime(lifetime)
	if err != nil {
		ev.Err = err
		return r.registered(ev)
	}
	if constructor == nil {
		ev.Err = di.InvalidArgumentf("constructor for %v is nil", service)
		return r.registered(ev)
	}

	ev.Err = r.mutate(func(c *container.Container) error {
		_, err := c.Provide(service, constructor, container.WithLifetime(l))
		return err
	})
	return r.registered(ev)
}

// AddDependencyInstance registers instance as the default implementation
// of service.
func (r *Resolver) AddDependencyInstance(service reflect.Type, instance interface{}, lifetime di.Lifetime) error {
	ev := &resolveevent.Registered{
		Service:        service,
		Implementation: reflect.TypeOf(instance),
		Kind:           resolveevent.KindInstance,
		Lifetime:       lifetime.String(),
	}

	l, err := toContainerLifetime(lifetime)
	switch {
	case err != nil:
		ev.Err = err
	case service == nil:
		ev.Err = di.InvalidArgumentf("service type is nil")
	case instance == nil:
		ev.Err = di.InvalidArgumentf("instance of %v is nil", service)
	default:
		ev.Err = r.mutate(func(c *container.Container) error {
			_, err := c.Supply(service, instance, container.WithLifetime(l), container.AsDefault())
			return err
		})
	}
	return r.registered(ev)
}

// AddDependencyFactory registers a factory whose arguments are resolved
// from the container each time the factory runs.
func (r *Resolver) AddDependencyFactory(m di.FactoryModel) error {
	ev := &resolveevent.Registered{
		Service:        m.Service,
		Implementation: m.Concrete,
		Kind:           resolveevent.KindFactory,
		Lifetime:       m.Lifetime.String(),
	}
	if err := m.Validate(); err != nil {
		ev.Err = err
		return r.registered(ev)
	}
	l, err := toContainerLifetime(m.Lifetime)
	if err != nil {
		ev.Err = err
		return r.registered(ev)
	}

	factory := m.Factory
	f := container.Factory{
		Service:        m.Service,
		Implementation: m.Concrete,
		Args:           m.Args,
		Func: func(args []reflect.Value) (reflect.Value, error) {
			in := make([]interface{}, len(args))
			for i, arg := range args {
				in[i] = arg.Interface()
			}
			out, err := factory(in)
			if err != nil || out == nil {
				return reflect.Value{}, err
			}
			return reflect.ValueOf(out), nil
		},
	}
	ev.Err = r.mutate(func(c *container.Container) error {
		_, err := c.ProvideFactory(f, container.WithLifetime(l))
		return err
	})
	return r.registered(ev)
}

// CreateRequestScope begins a scope. Scoped services resolved through it are
// shared until it is closed.
func (r *Resolver) CreateRequestScope() (di.Scope, error) {
	if err := r.checkActive(); err != nil {
		return nil, err
	}
	s, err := r.container.BeginScope()
	if err != nil {
		return nil, translate(err)
	}
	r.log.LogEvent(&resolveevent.ScopeOpened{})
	r.metrics.Counter("scopes_opened").Inc(1)
	return &requestScope{r: r, scope: s}, nil
}

// HandleIncomingRequestProcessed always fails: request scopes replaced the
// end-of-request hook.
func (r *Resolver) HandleIncomingRequestProcessed() error {
	return errors.Wrap(di.ErrNotSupportedInVersion,
		"HandleIncomingRequestProcessed is replaced by CreateRequestScope")
}

// Close disposes the Resolver, closing its container if it owns it. Later
// calls return nil.
func (r *Resolver) Close() error {
	if !r.disposed.CompareAndSwap(false, true) {
		return nil
	}
	var err error
	if r.disposeContainer {
		err = r.container.Close()
	}
	r.log.LogEvent(&resolveevent.Disposed{
		ClosedContainer: r.disposeContainer,
		Err:             err,
	})
	return err
}

func (r *Resolver) checkActive() error {
	if r.disposed.Load() {
		return di.ErrDisposed
	}
	return nil
}

func (r *Resolver) mutate(f func(*container.Container) error) error {
	if err := r.checkActive(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return translate(f(r.container))
}

func (r *Resolver) registered(ev *resolveevent.Registered) error {
	r.log.LogEvent(ev)
	if ev.Err == nil {
		r.metrics.Tagged(map[string]string{"kind": ev.Kind}).Counter("registrations").Inc(1)
	}
	return ev.Err
}

func (r *Resolver) resolved(service reflect.Type, v reflect.Value, err error) (interface{}, error) {
	if err != nil {
		return nil, r.resolveFailed(service, false, err)
	}
	r.metrics.Counter("resolutions").Inc(1)
	return v.Interface(), nil
}

func (r *Resolver) resolvedAll(service reflect.Type, vs []reflect.Value, err error) ([]interface{}, error) {
	if err != nil {
		return nil, r.resolveFailed(service, true, err)
	}
	r.metrics.Counter("resolutions").Inc(1)
	out := make([]interface{}, len(vs))
	for i, v := range vs {
		out[i] = v.Interface()
	}
	return out, nil
}

func (r *Resolver) resolveFailed(service reflect.Type, all bool, err error) error {
	if unresolvable(err) {
		err = &di.UnresolvedDependencyError{Type: service, Err: err}
	} else {
		err = translate(err)
	}
	r.log.LogEvent(&resolveevent.ResolveFailed{Service: service, All: all, Err: err})
	r.metrics.Counter("resolve_errors").Inc(1)
	return err
}

// unresolvable reports whether err means the graph rooted at the requested
// service cannot be built in the current scope.
func unresolvable(err error) bool {
	return errors.Is(err, container.ErrNotRegistered) ||
		errors.Is(err, container.ErrScopeRequired) ||
		errors.Is(err, container.ErrCycle)
}

// translate maps container errors onto the di taxonomy.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, container.ErrClosed):
		return errors.Wrap(di.ErrDisposed, err.Error())
	case errors.Is(err, container.ErrInvalid):
		return di.InvalidArgumentf("%v", err)
	default:
		return err
	}
}

func toContainerLifetime(l di.Lifetime) (container.Lifetime, error) {
	switch l {
	case di.Transient:
		return container.Transient, nil
	case di.Scoped:
		return container.Scoped, nil
	case di.Singleton:
		return container.Singleton, nil
	default:
		return 0, di.InvalidArgumentf("unknown %v", l)
	}
}
