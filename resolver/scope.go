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
	"reflect"
	"sync/atomic"

	"go.uber.org/resthost/container"
	"go.uber.org/resthost/di"
	"go.uber.org/resthost/resolveevent"
)

type requestScope struct {
	r      *Resolver
	scope  *container.Scope
	closed atomic.Bool
}

var _ di.Scope = (*requestScope)(nil)

func (s *requestScope) HasDependency(service reflect.Type) bool {
	if service == nil || s.closed.Load() {
		return false
	}
	return s.scope.Has(service)
}

func (s *requestScope) Resolve(service reflect.Type) (interface{}, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if service == nil {
		return nil, di.InvalidArgumentf("cannot resolve a nil type")
	}
	v, err := s.scope.Resolve(service)
	return s.r.resolved(service, v, err)
}

func (s *requestScope) ResolveAll(service reflect.Type) ([]interface{}, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	if service == nil {
		return nil, di.InvalidArgumentf("cannot resolve a nil type")
	}
	vs, err := s.scope.ResolveAll(service)
	return s.r.resolvedAll(service, vs, err)
}

func (s *requestScope) AddInstance(service reflect.Type, instance interface{}) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	if service == nil {
		return di.InvalidArgumentf("service type is nil")
	}
	if instance == nil {
		return di.InvalidArgumentf("instance of %v is nil", service)
	}
	return translate(s.scope.Supply(service, instance))
}

func (s *requestScope) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	err := s.scope.Close()
	s.r.log.LogEvent(&resolveevent.ScopeClosed{Err: err})
	s.r.metrics.Counter("scopes_closed").Inc(1)
	return err
}

func (s *requestScope) checkOpen() error {
	if s.closed.Load() {
		return di.ErrDisposed
	}
	return s.r.checkActive()
}
