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

package resolveevent

import (
	"reflect"
)

// Event defines an event emitted by a resolver.
type Event interface {
	event() // Only this package can implement this interface.
}

// Passing events by type to make Event hashable in the future.
func (*Registered) event()    {}
func (*ResolveFailed) event() {}
func (*ScopeOpened) event()   {}
func (*ScopeClosed) event()   {}
func (*Disposed) event()      {}

// Registration kinds reported by Registered.
const (
	KindType     = "type"
	KindInstance = "instance"
	KindFactory  = "factory"
)

// Registered is emitted when a service registration was attempted.
type Registered struct {
	Service        reflect.Type
	Implementation reflect.Type

	// Kind is one of KindType, KindInstance or KindFactory.
	Kind     string
	Lifetime string

	// Constructor is the registered function, nil for instances.
	Constructor interface{}

	// Skipped is set when the registration was not needed because the
	// service was already registered.
	Skipped bool
	Err     error
}

// ResolveFailed is emitted when a resolution returned an error.
type ResolveFailed struct {
	Service reflect.Type
	All     bool
	Err     error
}

// ScopeOpened is emitted when a request scope begins.
type ScopeOpened struct{}

// ScopeClosed is emitted when a request scope ends.
type ScopeClosed struct{ Err error }

// Disposed is emitted when the resolver is closed.
type Disposed struct {
	// ClosedContainer is set when the resolver owned, and closed, its
	// container.
	ClosedContainer bool
	Err             error
}
