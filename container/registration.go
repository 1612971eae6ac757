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
	"fmt"
	"reflect"
)

// Lifetime controls how long a constructed value is reused.
type Lifetime int

const (
	// Transient values are constructed on every resolution.
	Transient Lifetime = iota
	// Scoped values are constructed once per Scope.
	Scoped
	// Singleton values are constructed once per Container.
	Singleton
)

func (l Lifetime) String() string {
	switch l {
	case Transient:
		return "transient"
	case Scoped:
		return "scoped"
	case Singleton:
		return "singleton"
	default:
		return fmt.Sprintf("Lifetime(%d)", int(l))
	}
}

// Key identifies a single registration.
type Key string

// Registration describes a registered service.
type Registration struct {
	Key Key

	// Service is the type the registration is resolved as.
	Service reflect.Type

	// Implementation is the type of the value the registration produces.
	Implementation reflect.Type

	Lifetime Lifetime

	// Default registrations win when Resolve has several candidates.
	Default bool

	// Instance is set for registrations of a fixed value.
	Instance bool
}

func (r Registration) String() string {
	s := fmt.Sprintf("%v <= %v (%v, key %v)", r.Service, r.Implementation, r.Lifetime, r.Key)
	if r.Default {
		s += " default"
	}
	return s
}

// component is a Registration plus what is needed to produce its value.
type component struct {
	Registration

	deps     []reflect.Type
	activate func(args []reflect.Value) (reflect.Value, error)
	instance reflect.Value
}

func (c *component) String() string {
	return c.Registration.String()
}

// pickDefault returns the last default candidate, or the first candidate
// when none is marked default.
func pickDefault(cands []*component) *component {
	for i := len(cands) - 1; i >= 0; i-- {
		if cands[i].Default {
			return cands[i]
		}
	}
	return cands[0]
}
