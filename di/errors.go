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
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

var (
	// ErrUnresolvedDependency is matched by errors.Is when a resolution found
	// no registration for a service or for one of its dependencies.
	ErrUnresolvedDependency = errors.New("unresolved dependency")

	// ErrUnsupportedArity is returned when a factory takes more than
	// MaxFactoryArgs resolved arguments.
	ErrUnsupportedArity = errors.New("unsupported factory arity")

	// ErrNotSupportedInVersion is returned by lifecycle hooks the host no
	// longer expects a resolver to implement.
	ErrNotSupportedInVersion = errors.New("not supported by this resolver version")

	// ErrInvalidArgument is returned for nil or otherwise unusable inputs.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrDisposed is returned by a Resolver, or a Scope, that was closed.
	ErrDisposed = errors.New("resolver disposed")
)

// UnresolvedDependencyError reports the service a resolution was started
// for. Err holds the underlying container error, which names the missing
// type when it is a transitive dependency.
type UnresolvedDependencyError struct {
	Type reflect.Type
	Err  error
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("unable to resolve %v: %v", e.Type, e.Err)
}

// Unwrap returns the container error.
func (e *UnresolvedDependencyError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUnresolvedDependency) hold.
func (e *UnresolvedDependencyError) Is(target error) bool {
	return target == ErrUnresolvedDependency
}

// InvalidArgumentf returns an error matching ErrInvalidArgument.
func InvalidArgumentf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrInvalidArgument, format, args...)
}
