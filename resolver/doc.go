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

// Package resolver implements the di contracts on top of a
// container.Container.
//
// A Resolver translates the host's type-oriented calls into container
// registrations, each identified by a generated key that never leaves this
// package:
//
//	r, err := resolver.New(c)
//	if err != nil {
//		return err
//	}
//	defer r.Close()
//
//	r.AddDependencyInstance(di.TypeOf[Config](), cfg, di.Singleton)
//	r.AddConcreteDependency(NewHandler, di.Transient)
//
// On construction the Resolver makes sure the container resolves []T
// dependencies to every registered T and func() (T, error) dependencies
// lazily, and registers itself as the container's di.Resolver unless one is
// already registered.
//
// Registrations are serialized by a single lock held only while the
// container is being changed. Resolutions are left to the container, which
// is safe for concurrent use; registrations are expected to settle while
// the host is being configured.
package resolver
