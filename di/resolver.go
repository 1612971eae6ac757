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

package di

import (
	"context"
	"reflect"

	"go.uber.org/resthost/internal/resolvereflect"
)

// Resolution is the read side shared by a Resolver and a Scope.
type Resolution interface {
	// HasDependency reports whether at least one registration exists for
	// service. A nil type is never registered.
	HasDependency(service reflect.Type) bool

	// Resolve returns the single instance registered for service.
	Resolve(service reflect.Type) (interface{}, error)

	// ResolveAll returns every instance registered for service, in
	// registration order. It is empty, not an error, when nothing is
	// registered.
	ResolveAll(service reflect.Type) ([]interface{}, error)
}

// Resolver is the dependency resolver a host is built on.
type Resolver interface {
	Resolution

	// HasDependencyImplementation reports whether some registration for
	// service is implemented by exactly concrete.
	HasDependencyImplementation(service, concrete reflect.Type) bool

	// AddDependency registers constructor as an implementation of service.
	// The constructor's parameters are resolved when it is called; it may
	// return an error as its second result.
	AddDependency(service reflect.Type, constructor interface{}, lifetime Lifetime) error

	// AddConcreteDependency registers constructor as the implementation of
	// its own result type.
	AddConcreteDependency(constructor interface{}, lifetime Lifetime) error

	// AddDependencyInstance registers a fixed instance of service. The
	// instance becomes the default choice when service is resolved.
	AddDependencyInstance(service reflect.Type, instance interface{}, lifetime Lifetime) error

	// HandleIncomingRequestProcessed is a legacy end-of-request hook.
	// Resolvers built on request scopes return ErrNotSupportedInVersion.
	HandleIncomingRequestProcessed() error
}

// FactoryRegistrar is implemented by resolvers that accept model driven
// factory registrations.
type FactoryRegistrar interface {
	AddDependencyFactory(FactoryModel) error
}

// RequestScopedResolver is implemented by resolvers that can bound Scoped
// services to a unit of work.
type RequestScopedResolver interface {
	CreateRequestScope() (Scope, error)
}

// Scope is a resolution boundary. Scoped services resolved through the same
// Scope are shared; Close releases them. The caller that created a Scope
// must close it.
type Scope interface {
	Resolution

	// AddInstance makes instance resolvable as service inside this scope
	// only, in preference to registrations made on the Resolver.
	AddInstance(service reflect.Type, instance interface{}) error

	Close() error
}

// Resolve resolves T from r.
func Resolve[T any](r Resolution) (T, error) {
	var zero T
	v, err := r.Resolve(TypeOf[T]())
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, InvalidArgumentf("resolved %T is not a %v", v, TypeOf[T]())
	}
	return t, nil
}

// ResolveAll resolves every registered T from r.
func ResolveAll[T any](r Resolution) ([]T, error) {
	vs, err := r.ResolveAll(TypeOf[T]())
	if err != nil {
		return nil, err
	}
	ts := make([]T, 0, len(vs))
	for _, v := range vs {
		t, ok := v.(T)
		if !ok {
			return nil, InvalidArgumentf("resolved %T is not a %v", v, TypeOf[T]())
		}
		ts = append(ts, t)
	}
	return ts, nil
}

// TypeOf returns the reflect.Type of T, including interface types.
func TypeOf[T any]() reflect.Type {
	return resolvereflect.TypeOf[T]()
}

type scopeKey struct{}

// ContextWithScope returns a copy of ctx carrying s.
func ContextWithScope(ctx context.Context, s Scope) context.Context {
	return context.WithValue(ctx, scopeKey{}, s)
}

// ScopeFromContext returns the Scope stored by ContextWithScope.
func ScopeFromContext(ctx context.Context) (Scope, bool) {
	s, ok := ctx.Value(scopeKey{}).(Scope)
	return s, ok
}
