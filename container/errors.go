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
	"github.com/pkg/errors"
)

var (
	// ErrNotRegistered is returned when a type has no registration and no
	// facility can satisfy it.
	ErrNotRegistered = errors.New("type is not registered")

	// ErrCycle is returned when a value depends on itself.
	ErrCycle = errors.New("dependency cycle detected")

	// ErrScopeRequired is returned when a Scoped registration is resolved
	// outside of a Scope, including from a Singleton's constructor.
	ErrScopeRequired = errors.New("scoped registration resolved outside of a scope")

	// ErrClosed is returned by a Container or Scope that was closed.
	ErrClosed = errors.New("container closed")

	// ErrInvalid is returned for registrations the container cannot use.
	ErrInvalid = errors.New("invalid registration")

	// ErrDuplicateKey is returned when Named reuses a Key.
	ErrDuplicateKey = errors.New("duplicate registration key")
)
