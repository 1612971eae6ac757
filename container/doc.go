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

// Package container is a small inversion of control container.
//
// Services are registered against a reflect.Type by constructor, by
// instance, or by factory. A type may have several registrations: Resolve
// picks the default one and ResolveAll returns all of them in registration
// order. Each registration is identified by an opaque Key.
//
// Constructed values live for the registration's Lifetime: Singleton values
// are cached by the Container, Scoped values by the Scope that resolved
// them, and Transient values are never cached.
//
//	c := container.New(container.WithFacilities(container.Collections))
//	c.Provide(nil, NewStore, container.WithLifetime(container.Singleton))
//	c.Provide(nil, NewHandler, container.WithLifetime(container.Scoped))
//
//	scope, err := c.BeginScope()
//	if err != nil {
//		return err
//	}
//	defer scope.Close()
//	h, err := scope.Resolve(reflect.TypeOf(&Handler{}))
//
// Facilities extend how parameters without a registration of their own are
// satisfied. Collections resolves []T to every registered T and LazyFuncs
// resolves func() (T, error) to a function that resolves T when called.
package container
