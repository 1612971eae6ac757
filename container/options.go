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

import "github.com/google/uuid"

// Option configures a Container.
type Option func(*Container)

// WithFacilities adds facilities to a new Container.
func WithFacilities(fs ...Facility) Option {
	return func(c *Container) {
		for _, f := range fs {
			c.addFacility(f)
		}
	}
}

// WithKeyGenerator replaces the generator of registration keys. Keys must
// be unique within a Container.
func WithKeyGenerator(gen func() Key) Option {
	return func(c *Container) {
		c.newKey = gen
	}
}

func newUUIDKey() Key {
	return Key(uuid.NewString())
}

// ProvideOption configures a single registration.
type ProvideOption func(*provideOptions)

type provideOptions struct {
	Lifetime        Lifetime
	Default         bool
	Key             Key
	OnlyNewServices bool
}

// WithLifetime sets the lifetime of a registration. Registrations are
// Transient unless told otherwise.
func WithLifetime(l Lifetime) ProvideOption {
	return func(o *provideOptions) {
		o.Lifetime = l
	}
}

// AsDefault marks a registration as the one Resolve picks over earlier
// registrations of the same service.
func AsDefault() ProvideOption {
	return func(o *provideOptions) {
		o.Default = true
	}
}

// Named uses k as the registration's key instead of a generated one.
func Named(k Key) ProvideOption {
	return func(o *provideOptions) {
		o.Key = k
	}
}

// OnlyNewServices skips the registration when the service already has one.
// A skipped registration reports an empty Key and no error.
func OnlyNewServices() ProvideOption {
	return func(o *provideOptions) {
		o.OnlyNewServices = true
	}
}
