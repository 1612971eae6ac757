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
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mapResolution resolves from a fixed map of types to values.
type mapResolution map[reflect.Type][]interface{}

func (m mapResolution) HasDependency(t reflect.Type) bool { return len(m[t]) > 0 }

func (m mapResolution) Resolve(t reflect.Type) (interface{}, error) {
	if vs := m[t]; len(vs) > 0 {
		return vs[0], nil
	}
	return nil, &UnresolvedDependencyError{Type: t, Err: errors.New("not found")}
}

func (m mapResolution) ResolveAll(t reflect.Type) ([]interface{}, error) {
	return m[t], nil
}

type fakeScope struct{ mapResolution }

func (fakeScope) AddInstance(reflect.Type, interface{}) error { return nil }
func (fakeScope) Close() error                                { return nil }

func TestResolveGeneric(t *testing.T) {
	r := mapResolution{
		TypeOf[string](): {"hello", "world"},
		TypeOf[int]():    {"not an int"},
	}

	s, err := Resolve[string](r)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	all, err := ResolveAll[string](r)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "world"}, all)

	none, err := ResolveAll[bool](r)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = Resolve[bool](r)
	assert.True(t, errors.Is(err, ErrUnresolvedDependency))
	assert.EqualError(t, err, "unable to resolve bool: not found")

	_, err = Resolve[int](r)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = ResolveAll[int](r)
	assert.True(t, errors.Is(err, ErrInvalidArgument))
}

func TestUnresolvedDependencyError(t *testing.T) {
	cause := errors.New("no registration")
	err := error(&UnresolvedDependencyError{Type: TypeOf[string](), Err: cause})

	assert.True(t, errors.Is(err, ErrUnresolvedDependency))
	assert.True(t, errors.Is(err, cause))
	assert.False(t, errors.Is(err, ErrDisposed))

	var ude *UnresolvedDependencyError
	require.True(t, errors.As(err, &ude))
	assert.Equal(t, TypeOf[string](), ude.Type)
}

func TestScopeContext(t *testing.T) {
	_, ok := ScopeFromContext(context.Background())
	assert.False(t, ok)

	s := fakeScope{}
	ctx := ContextWithScope(context.Background(), s)
	got, ok := ScopeFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, Scope(s), got)
}
