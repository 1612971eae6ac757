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

package resolver

import (
	"github.com/uber-go/tally/v4"

	"go.uber.org/resthost/resolveevent"
)

// Option configures a Resolver.
type Option func(*options)

type options struct {
	DisposeContainer *bool
	Logger           resolveevent.Logger
	Metrics          tally.Scope
}

// DisposeContainer controls whether closing the Resolver also closes its
// container. New defaults to false, NewDefault to true.
func DisposeContainer(dispose bool) Option {
	return func(o *options) {
		o.DisposeContainer = &dispose
	}
}

// WithLogger sends the Resolver's events to l. Events are dropped by
// default.
func WithLogger(l resolveevent.Logger) Option {
	return func(o *options) {
		o.Logger = l
	}
}

// WithMetrics reports registration, resolution and scope counters to s.
func WithMetrics(s tally.Scope) Option {
	return func(o *options) {
		o.Metrics = s
	}
}
