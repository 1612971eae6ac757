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

// Package resolvertest provides utilities for testing code that registers
// with, or resolves from, a resolver.Resolver.
package resolvertest

import (
	"reflect"

	"go.uber.org/resthost/di"
	"go.uber.org/resthost/resolver"
)

// TB is a subset of the standard library's testing.TB interface. It's
// satisfied by both *testing.T and *testing.B.
type TB interface {
	Errorf(string, ...interface{})
	FailNow()
	Cleanup(func())
}

// Resolver is a resolver.Resolver bound to a test. It owns its container
// and is closed when the test finishes.
type Resolver struct {
	*resolver.Resolver

	t TB
}

// New builds a Resolver for t. Failing to build it fails the test.
func New(t TB, opts ...resolver.Option) *Resolver {
	r, err := resolver.NewDefault(opts...)
	if err != nil {
		t.Errorf("couldn't build resolver: %v", err)
		t.FailNow()
		return nil
	}
	t.Cleanup(func() {
		if err := r.Close(); err != nil {
			t.Errorf("resolver didn't close cleanly: %v", err)
		}
	})
	return &Resolver{Resolver: r, t: t}
}

// MustAdd registers constructor as an implementation of service, failing
// the test on error.
func (r *Resolver) MustAdd(service reflect.Type, constructor interface{}, lifetime di.Lifetime) {
	if err := r.AddDependency(service, constructor, lifetime); err != nil {
		r.t.Errorf("couldn't register %v: %v", service, err)
		r.t.FailNow()
	}
}

// MustSupply registers instance for service, failing the test on error.
func (r *Resolver) MustSupply(service reflect.Type, instance interface{}) {
	if err := r.AddDependencyInstance(service, instance, di.Singleton); err != nil {
		r.t.Errorf("couldn't supply %v: %v", service, err)
		r.t.FailNow()
	}
}

// MustScope begins a request scope that is closed when the test finishes.
func (r *Resolver) MustScope() di.Scope {
	s, err := r.CreateRequestScope()
	if err != nil {
		r.t.Errorf("couldn't create request scope: %v", err)
		r.t.FailNow()
		return nil
	}
	r.t.Cleanup(func() {
		if err := s.Close(); err != nil {
			r.t.Errorf("request scope didn't close cleanly: %v", err)
		}
	})
	return s
}

// MustResolve resolves T from r, failing the test on error.
func MustResolve[T any](t TB, r di.Resolution) T {
	v, err := di.Resolve[T](r)
	if err != nil {
		t.Errorf("couldn't resolve %v: %v", di.TypeOf[T](), err)
		t.FailNow()
	}
	return v
}
