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

	"go.uber.org/resthost/internal/resolvereflect"
)

// Facility satisfies types that have no registration of their own.
type Facility interface {
	Name() string

	// Satisfy reports ok=false when it does not handle t, letting the next
	// facility try.
	Satisfy(r Resolution, t reflect.Type) (v reflect.Value, ok bool, err error)
}

var (
	// Collections resolves a slice type []T to the values of every
	// registration of T. The slice is empty when T has no registration.
	Collections Facility = collections{}

	// LazyFuncs resolves func() T and func() (T, error) to a function that
	// resolves T each time it is called, in the Scope the function was
	// resolved from. A func() T panics if T cannot be resolved.
	LazyFuncs Facility = lazyFuncs{}
)

type collections struct{}

func (collections) Name() string { return "collections" }

func (collections) Satisfy(r Resolution, t reflect.Type) (reflect.Value, bool, error) {
	if t.Kind() != reflect.Slice {
		return reflect.Value{}, false, nil
	}
	vs, err := r.ResolveAll(t.Elem())
	if err != nil {
		return reflect.Value{}, true, err
	}
	slice := reflect.MakeSlice(t, len(vs), len(vs))
	for i, v := range vs {
		slice.Index(i).Set(v)
	}
	return slice, true, nil
}

var _errorType = reflect.TypeOf((*error)(nil)).Elem()

type lazyFuncs struct{}

func (lazyFuncs) Name() string { return "lazy-funcs" }

func (lazyFuncs) Satisfy(r Resolution, t reflect.Type) (reflect.Value, bool, error) {
	if t.Kind() != reflect.Func || t.NumIn() != 0 || t.IsVariadic() {
		return reflect.Value{}, false, nil
	}
	switch {
	case t.NumOut() == 1 && !resolvereflect.IsError(t.Out(0)):
	case t.NumOut() == 2 && !resolvereflect.IsError(t.Out(0)) && t.Out(1) == _errorType:
	default:
		return reflect.Value{}, false, nil
	}

	detached := r.Detach()
	target := t.Out(0)
	withErr := t.NumOut() == 2
	fn := reflect.MakeFunc(t, func([]reflect.Value) []reflect.Value {
		v, err := detached.Resolve(target)
		if err == nil {
			v = convert(v, target)
		}
		if !withErr {
			if err != nil {
				panic(fmt.Sprintf("lazily resolving %v: %v", target, err))
			}
			return []reflect.Value{v}
		}
		errV := reflect.New(t.Out(1)).Elem()
		if err != nil {
			errV.Set(reflect.ValueOf(err))
			return []reflect.Value{reflect.Zero(target), errV}
		}
		return []reflect.Value{v, errV}
	})
	return fn, true, nil
}

// convert returns v as a value of type t, which v must be assignable to.
func convert(v reflect.Value, t reflect.Type) reflect.Value {
	if v.Type() == t {
		return v
	}
	out := reflect.New(t).Elem()
	out.Set(v)
	return out
}
