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
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chorus struct{ voices []Greeter }

type lazyCache struct {
	store func() (*Store, error)
}

func TestAddFacility(t *testing.T) {
	c := New(WithFacilities(Collections))
	assert.True(t, c.HasFacility("collections"))
	assert.False(t, c.HasFacility("lazy-funcs"))

	c.AddFacility(Collections)
	c.AddFacility(LazyFuncs)
	assert.True(t, c.HasFacility("lazy-funcs"))
	assert.Len(t, c.facilityList(), 2, "facilities are added once")
}

func TestCollections(t *testing.T) {
	newChorus := func(voices []Greeter) *chorus { return &chorus{voices: voices} }

	t.Run("without facility", func(t *testing.T) {
		c := New()
		_, err := c.Provide(nil, newChorus)
		require.NoError(t, err)

		_, err = c.Resolve(reflect.TypeOf(&chorus{}))
		assert.True(t, errors.Is(err, ErrNotRegistered))
	})

	t.Run("with facility", func(t *testing.T) {
		c := New(WithFacilities(Collections))
		_, err := c.Provide(nil, newChorus)
		require.NoError(t, err)

		v, err := c.Resolve(reflect.TypeOf(&chorus{}))
		require.NoError(t, err)
		assert.Empty(t, v.Interface().(*chorus).voices)

		_, err = c.Supply(_greeterType, English{})
		require.NoError(t, err)
		_, err = c.Supply(_greeterType, French{})
		require.NoError(t, err)

		v, err = c.Resolve(reflect.TypeOf(&chorus{}))
		require.NoError(t, err)
		voices := v.Interface().(*chorus).voices
		require.Len(t, voices, 2)
		assert.Equal(t, "hello", voices[0].Greet())
		assert.Equal(t, "bonjour", voices[1].Greet())
	})

	t.Run("explicit slice registration wins", func(t *testing.T) {
		c := New(WithFacilities(Collections))
		_, err := c.Supply(_greeterType, English{})
		require.NoError(t, err)
		_, err = c.Supply(nil, []Greeter{French{}})
		require.NoError(t, err)

		v, err := c.Resolve(reflect.TypeOf([]Greeter{}))
		require.NoError(t, err)
		assert.Equal(t, []Greeter{French{}}, v.Interface())
	})
}

func TestLazyFuncs(t *testing.T) {
	var cnt counter
	c := New(WithFacilities(LazyFuncs))
	_, err := c.Provide(nil, cnt.newStore, WithLifetime(Scoped))
	require.NoError(t, err)
	_, err = c.Provide(nil, func(store func() (*Store, error)) *lazyCache {
		return &lazyCache{store: store}
	}, WithLifetime(Scoped))
	require.NoError(t, err)

	scope, err := c.BeginScope()
	require.NoError(t, err)
	defer scope.Close()

	v, err := scope.Resolve(reflect.TypeOf(&lazyCache{}))
	require.NoError(t, err)
	assert.Equal(t, 0, cnt.n, "store must not be built until asked for")

	lc := v.Interface().(*lazyCache)
	first, err := lc.store()
	require.NoError(t, err)
	second, err := lc.store()
	require.NoError(t, err)
	assert.Same(t, first, second, "lazy resolution happens in the original scope")
	assert.Equal(t, 1, cnt.n)
}

func TestLazyFuncErrors(t *testing.T) {
	c := New(WithFacilities(LazyFuncs))

	v, err := c.Resolve(reflect.TypeOf((func() (*Store, error))(nil)))
	require.NoError(t, err)
	store, err := v.Interface().(func() (*Store, error))()
	assert.Nil(t, store)
	assert.True(t, errors.Is(err, ErrNotRegistered))

	v, err = c.Resolve(reflect.TypeOf((func() *Store)(nil)))
	require.NoError(t, err)
	assert.Panics(t, func() { v.Interface().(func() *Store)() })

	_, err = c.Resolve(reflect.TypeOf((func(int) *Store)(nil)))
	assert.True(t, errors.Is(err, ErrNotRegistered), "functions with parameters are not lazy funcs")
}

func TestLazyFuncInterface(t *testing.T) {
	c := New(WithFacilities(LazyFuncs))
	_, err := c.Supply(_greeterType, French{})
	require.NoError(t, err)

	v, err := c.Resolve(reflect.TypeOf((func() Greeter)(nil)))
	require.NoError(t, err)
	assert.Equal(t, "bonjour", v.Interface().(func() Greeter)().Greet())
}
