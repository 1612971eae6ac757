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
	"reflect"

	"github.com/pkg/errors"

	"go.uber.org/resthost/internal/resolvereflect"
)

// MaxFactoryArgs is the largest number of resolved arguments a factory may
// take. A factory needing more should depend on a parameter struct that is
// registered on its own.
const MaxFactoryArgs = 4

// FactoryModel describes a deferred construction. Each entry of Args is
// resolved from the container when the service is resolved, and passed to
// Factory in the same order.
type FactoryModel struct {
	Service  reflect.Type
	Concrete reflect.Type
	Args     []reflect.Type
	Factory  func(args []interface{}) (interface{}, error)
	Lifetime Lifetime
}

// Validate checks that m can be registered.
func (m FactoryModel) Validate() error {
	if m.Service == nil {
		return InvalidArgumentf("factory has no service type")
	}
	if m.Factory == nil {
		return InvalidArgumentf("factory for %v is nil", m.Service)
	}
	if len(m.Args) > MaxFactoryArgs {
		return errors.Wrapf(ErrUnsupportedArity,
			"factory for %v takes %d arguments, at most %d are supported",
			m.Service, len(m.Args), MaxFactoryArgs)
	}
	for i, arg := range m.Args {
		if arg == nil {
			return InvalidArgumentf("factory for %v has a nil type for argument %d", m.Service, i)
		}
	}
	if m.Concrete != nil && !m.Concrete.AssignableTo(m.Service) {
		return InvalidArgumentf("%v is not assignable to %v", m.Concrete, m.Service)
	}
	if !m.Lifetime.Valid() {
		return InvalidArgumentf("factory for %v has invalid %v", m.Service, m.Lifetime)
	}
	return nil
}

// NewFactory builds a FactoryModel from a function such as
//
//	func(db *sql.DB, log *zap.Logger) (*Store, error)
//
// The function's parameters become the model's Args, its first result the
// Concrete type. An optional second result must be an error. When service
// is nil the Concrete type is used.
func NewFactory(service reflect.Type, fn interface{}, lifetime Lifetime) (FactoryModel, error) {
	if fn == nil {
		return FactoryModel{}, InvalidArgumentf("factory function is nil")
	}
	fv := reflect.ValueOf(fn)
	ft := fv.Type()
	if ft.Kind() != reflect.Func {
		return FactoryModel{}, InvalidArgumentf("factory must be a function, got %v", ft)
	}
	if ft.IsVariadic() {
		return FactoryModel{}, InvalidArgumentf("factory %v must not be variadic", ft)
	}
	switch {
	case ft.NumOut() == 1 && !resolvereflect.IsError(ft.Out(0)):
	case ft.NumOut() == 2 && !resolvereflect.IsError(ft.Out(0)) && resolvereflect.IsError(ft.Out(1)):
	default:
		return FactoryModel{}, InvalidArgumentf("factory %v must return a value and an optional error", ft)
	}

	args := make([]reflect.Type, ft.NumIn())
	for i := range args {
		args[i] = ft.In(i)
	}
	concrete := ft.Out(0)
	if service == nil {
		service = concrete
	}

	m := FactoryModel{
		Service:  service,
		Concrete: concrete,
		Args:     args,
		Lifetime: lifetime,
		Factory: func(resolved []interface{}) (interface{}, error) {
			in := make([]reflect.Value, len(resolved))
			for i, v := range resolved {
				if v == nil {
					in[i] = reflect.Zero(args[i])
				} else {
					in[i] = reflect.ValueOf(v)
				}
			}
			out := fv.Call(in)
			if len(out) == 2 && !out[1].IsNil() {
				return nil, out[1].Interface().(error)
			}
			return out[0].Interface(), nil
		},
	}
	return m, m.Validate()
}
