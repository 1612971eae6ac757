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

// Package host serves resources over HTTP, building their handlers from a
// di.Resolver inside one request scope per request.
//
// Resources are declared on a ResourceSpace by a ConfigurationSource:
//
//	func (testSource) Configure(rs *host.ResourceSpace) error {
//		rs.Has(reflect.TypeOf("")).
//			AtURI("/").Named("Root").
//			AtURI("/with-header").Named("WithHeader").
//			HandledBy(newRootHandler).
//			HandledBy(newHeaderHandler).
//			TranscodedBy(host.TextPlainCodec{})
//		return nil
//	}
//
// Handler constructors are registered as transient dependencies. They can
// depend on anything the resolver knows about, and on the *Response and
// *http.Request of the request being served.
package host
