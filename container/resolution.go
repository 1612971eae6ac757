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
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// Resolution is a single resolution in progress. Facilities use it to
// resolve the types they are asked to satisfy.
type Resolution interface {
	Resolve(service reflect.Type) (reflect.Value, error)
	ResolveAll(service reflect.Type) ([]reflect.Value, error)

	// Detach returns a Resolution bound to the same Container and Scope that
	// may be used after the current resolution has returned.
	Detach() Resolution
}

type resolution struct {
	c     *Container
	scope *Scope // nil when resolving from the root

	// path holds the registrations being constructed, outermost first.
	path []*component
}

var _ Resolution = (*resolution)(nil)

func (r *resolution) Detach() Resolution {
	return &resolution{c: r.c, scope: r.scope}
}

func (r *resolution) Resolve(service reflect.Type) (reflect.Value, error) {
	if service == nil {
		return reflect.Value{}, errors.Wrap(ErrInvalid, "cannot resolve a nil type")
	}
	cands := r.candidates(service)
	if len(cands) == 0 {
		for _, f := range r.c.facilityList() {
			v, ok, err := f.Satisfy(r, service)
			if ok {
				return v, err
			}
		}
		return reflect.Value{}, errors.Wrapf(ErrNotRegistered, "%v", service)
	}
	return r.value(pickDefault(cands))
}

func (r *resolution) ResolveAll(service reflect.Type) ([]reflect.Value, error) {
	if service == nil {
		return nil, errors.Wrap(ErrInvalid, "cannot resolve a nil type")
	}
	cands := r.candidates(service)
	vs := make([]reflect.Value, 0, len(cands))
	for _, comp := range cands {
		v, err := r.value(comp)
		if err != nil {
			return nil, err
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// candidates lists the container's registrations followed by those added
// to the scope.
func (r *resolution) candidates(service reflect.Type) []*component {
	cands := r.c.candidates(service)
	if r.scope != nil {
		cands = append(cands, r.scope.candidates(service)...)
	}
	return cands
}

func (r *resolution) value(comp *component) (reflect.Value, error) {
	if comp.Instance {
		return comp.instance, nil
	}

	switch comp.Lifetime {
	case Singleton:
		if v, ok := r.c.singleton(comp.Key); ok {
			return v, nil
		}
		// Singletons are built from the root so that they never hold on to
		// values owned by a scope.
		root := &resolution{c: r.c, path: r.path}
		v, err := root.construct(comp)
		if err != nil {
			return reflect.Value{}, err
		}
		return r.c.storeSingleton(comp.Key, v)

	case Scoped:
		if r.scope == nil {
			return reflect.Value{}, errors.Wrapf(ErrScopeRequired, "%v", comp.Service)
		}
		if v, ok := r.scope.instance(comp.Key); ok {
			return v, nil
		}
		v, err := r.construct(comp)
		if err != nil {
			return reflect.Value{}, err
		}
		return r.scope.storeInstance(comp.Key, v)

	default:
		v, err := r.construct(comp)
		if err != nil {
			return reflect.Value{}, err
		}
		if r.scope != nil {
			if err := r.scope.track(v); err != nil {
				return reflect.Value{}, err
			}
		}
		return v, nil
	}
}

func (r *resolution) construct(comp *component) (reflect.Value, error) {
	for i, p := range r.path {
		if p == comp {
			return reflect.Value{}, errors.Wrap(ErrCycle, cyclePath(r.path[i:], comp))
		}
	}
	r.path = append(r.path, comp)
	defer func() { r.path = r.path[:len(r.path)-1] }()

	args := make([]reflect.Value, len(comp.deps))
	for i, dep := range comp.deps {
		v, err := r.Resolve(dep)
		if err != nil {
			return reflect.Value{}, errors.Wrapf(err, "could not build %v", comp.Implementation)
		}
		args[i] = v
	}

	v, err := comp.activate(args)
	if err != nil {
		return reflect.Value{}, errors.Wrapf(err, "constructor of %v failed", comp.Implementation)
	}
	return v, nil
}

func cyclePath(path []*component, last *component) string {
	names := make([]string, 0, len(path)+1)
	for _, p := range path {
		names = append(names, p.Implementation.String())
	}
	names = append(names, last.Implementation.String())
	return strings.Join(names, " -> ")
}
