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

package main

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"sync/atomic"

	"go.uber.org/resthost/di"
	"go.uber.org/resthost/host"
)

// demoSource serves the daemon's resources.
type demoSource struct{}

func (demoSource) Configure(rs *host.ResourceSpace) error {
	rs.Has(reflect.TypeOf("")).
		AtURI("/").Named("Root").
		AtURI("/with-header").Named("WithHeader").
		AtURI("/visits").Named("Visits").
		HandledBy(newRootHandler).
		HandledBy(newHeaderHandler).
		TranscodedBy(host.TextPlainCodec{})
	return nil
}

// visits counts requests to the root resource for the life of the daemon.
type visits struct{ n atomic.Int64 }

func registerDemo(r di.Resolver) error {
	return r.AddConcreteDependency(func() *visits { return &visits{} }, di.Singleton)
}

type rootHandler struct{ visits *visits }

func newRootHandler(v *visits) *rootHandler { return &rootHandler{visits: v} }

func (h *rootHandler) Operations() []host.Operation {
	return []host.Operation{
		host.Get("Root", func(context.Context) (interface{}, error) {
			h.visits.n.Add(1)
			return "Hello from resthost", nil
		}),
		host.Get("Visits", func(context.Context) (interface{}, error) {
			return fmt.Sprintf("%d", h.visits.n.Load()), nil
		}),
	}
}

type headerHandler struct {
	response *host.Response
	request  *http.Request
}

func newHeaderHandler(res *host.Response, req *http.Request) *headerHandler {
	return &headerHandler{response: res, request: req}
}

func (h *headerHandler) Operations() []host.Operation {
	return []host.Operation{
		host.Get("WithHeader", func(context.Context) (interface{}, error) {
			h.response.Header.Set("FOO", "BAR")
			h.response.Header.Set("X-Request-Path", h.request.URL.Path)
			return "Hello with a header", nil
		}),
	}
}
