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

package host

import (
	"reflect"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.uber.org/resthost/di"
	"go.uber.org/resthost/internal/resolvereflect"
)

// ConfigurationSource declares the resources a Host serves.
type ConfigurationSource interface {
	Configure(*ResourceSpace) error
}

// ConfigurationSourceFunc adapts a function to a ConfigurationSource.
type ConfigurationSourceFunc func(*ResourceSpace) error

// Configure implements ConfigurationSource.
func (f ConfigurationSourceFunc) Configure(rs *ResourceSpace) error { return f(rs) }

var _handlerType = resolvereflect.TypeOf[Handler]()

// ResourceSpace collects resource declarations. Mistakes are gathered and
// reported together by Err.
type ResourceSpace struct {
	resolver  di.Resolver
	resources []*resource
	names     map[string]string
	paths     map[string]struct{}
	err       error
}

type resource struct {
	typ      reflect.Type
	uris     []uri
	handlers []reflect.Type
	codec    Codec
}

type uri struct {
	path string
	name string
}

func newResourceSpace(r di.Resolver) *ResourceSpace {
	return &ResourceSpace{
		resolver: r,
		names:    make(map[string]string),
		paths:    make(map[string]struct{}),
	}
}

// Has starts the declaration of a resource whose operations return values
// of resourceType.
func (rs *ResourceSpace) Has(resourceType reflect.Type) *ResourceBuilder {
	b := &ResourceBuilder{rs: rs}
	if resourceType == nil {
		rs.fail(errors.New("resource type is nil"))
		return b
	}
	b.res = &resource{typ: resourceType}
	rs.resources = append(rs.resources, b.res)
	return b
}

// Err returns every mistake made while declaring resources.
func (rs *ResourceSpace) Err() error {
	if rs.err != nil {
		return rs.err
	}
	for _, res := range rs.resources {
		if len(res.uris) == 0 {
			rs.fail(errors.Errorf("resource %v has no URI", res.typ))
		}
		if len(res.handlers) == 0 {
			rs.fail(errors.Errorf("resource %v has no handler", res.typ))
		}
	}
	return rs.err
}

func (rs *ResourceSpace) fail(err error) {
	rs.err = multierr.Append(rs.err, err)
}

// ResourceBuilder declares the URIs, handlers and codec of one resource.
type ResourceBuilder struct {
	rs  *ResourceSpace
	res *resource
}

// AtURI serves the resource at path, relative to the host's base path.
func (b *ResourceBuilder) AtURI(path string) *ResourceBuilder {
	if b.res == nil {
		return b
	}
	if path == "" || path[0] != '/' {
		b.rs.fail(errors.Errorf("URI %q of %v must start with /", path, b.res.typ))
		return b
	}
	if _, ok := b.rs.paths[path]; ok {
		b.rs.fail(errors.Errorf("URI %q is already declared", path))
		return b
	}
	b.rs.paths[path] = struct{}{}
	b.res.uris = append(b.res.uris, uri{path: path})
	return b
}

// Named names the URI declared last. Operations select their URI by name.
func (b *ResourceBuilder) Named(name string) *ResourceBuilder {
	if b.res == nil {
		return b
	}
	if len(b.res.uris) == 0 {
		b.rs.fail(errors.Errorf("name %q given before any URI of %v", name, b.res.typ))
		return b
	}
	if other, ok := b.rs.names[name]; ok {
		b.rs.fail(errors.Errorf("URI name %q is already used by %q", name, other))
		return b
	}
	last := &b.res.uris[len(b.res.uris)-1]
	last.name = name
	b.rs.names[name] = last.path
	return b
}

// HandledBy adds a handler built by constructor. The constructor's result
// must implement Handler; it is registered as a transient dependency unless
// the resolver already knows how to build it.
func (b *ResourceBuilder) HandledBy(constructor interface{}) *ResourceBuilder {
	if b.res == nil {
		return b
	}
	ct := reflect.TypeOf(constructor)
	if ct == nil || ct.Kind() != reflect.Func || ct.NumOut() == 0 {
		b.rs.fail(errors.Errorf("handler constructor %v of %v is not a function", ct, b.res.typ))
		return b
	}
	concrete := ct.Out(0)
	if !concrete.Implements(_handlerType) {
		b.rs.fail(errors.Errorf("%v does not implement %v", concrete, _handlerType))
		return b
	}
	if !b.rs.resolver.HasDependencyImplementation(concrete, concrete) {
		if err := b.rs.resolver.AddConcreteDependency(constructor, di.Transient); err != nil {
			b.rs.fail(errors.Wrapf(err, "unable to register handler %v", concrete))
			return b
		}
	}
	b.res.handlers = append(b.res.handlers, concrete)
	return b
}

// TranscodedBy sets the codec of the resource. TextPlainCodec is used when
// none is given.
func (b *ResourceBuilder) TranscodedBy(codec Codec) *ResourceBuilder {
	if b.res == nil {
		return b
	}
	if codec == nil {
		b.rs.fail(errors.Errorf("codec of %v is nil", b.res.typ))
		return b
	}
	b.res.codec = codec
	return b
}

// operation finds the first operation of the resource's handlers for the
// request. allowed lists the methods served for the URI when none matches.
func (res *resource) operation(s di.Scope, method, uriName string) (op Operation, allowed []string, err error) {
	seen := make(map[string]struct{})
	for _, t := range res.handlers {
		v, err := s.Resolve(t)
		if err != nil {
			return Operation{}, nil, errors.Wrapf(err, "unable to build handler %v", t)
		}
		for _, o := range v.(Handler).Operations() {
			if o.matches(method, uriName) && o.Invoke != nil {
				return o, nil, nil
			}
			if o.matches(o.Method, uriName) {
				if _, ok := seen[o.Method]; !ok {
					seen[o.Method] = struct{}{}
					allowed = append(allowed, o.Method)
				}
			}
		}
	}
	return Operation{}, allowed, nil
}

func (res *resource) codecOrDefault() Codec {
	if res.codec == nil {
		return TextPlainCodec{}
	}
	return res.codec
}
