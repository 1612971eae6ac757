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

// Package di defines the contract between the resource host and whatever
// dependency injection container backs it.
//
// A host asks a Resolver whether a service is registered, registers
// services by constructor, instance or factory, and resolves them either
// directly or inside a Scope that bounds the lifetime of Scoped services.
//
//	r.AddDependency(di.TypeOf[Store](), NewStore, di.Singleton)
//	scope, err := r.(di.RequestScopedResolver).CreateRequestScope()
//	if err != nil {
//		return err
//	}
//	defer scope.Close()
//	store, err := di.Resolve[Store](scope)
//
// The resolver package provides the implementation used by the host.
package di
