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

package host

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

const (
	// ContentType is the header key that contains the body type
	ContentType = "Content-Type"
	// ContentTypeText is the plain content type
	ContentTypeText = "text/plain; charset=utf-8"
)

// Handler is built per request and lists the operations it serves.
type Handler interface {
	Operations() []Operation
}

// Operation is one HTTP method served by a Handler. An empty URIName
// matches every URI of the resource.
type Operation struct {
	Method  string
	URIName string
	Invoke  func(ctx context.Context) (interface{}, error)
}

// Get is shorthand for a GET Operation on the URI named uriName.
func Get(uriName string, invoke func(ctx context.Context) (interface{}, error)) Operation {
	return Operation{Method: http.MethodGet, URIName: uriName, Invoke: invoke}
}

func (o Operation) matches(method, uriName string) bool {
	return o.Method == method && (o.URIName == "" || o.URIName == uriName)
}

// Response is the part of the HTTP response a handler may change. Handlers
// receive it by depending on *Response.
type Response struct {
	Header http.Header

	// StatusCode defaults to 200.
	StatusCode int
}

// Codec writes operation results to the response body.
type Codec interface {
	// MediaType is written as the response's Content-Type.
	MediaType() string
	Encode(w io.Writer, v interface{}) error
}

// TextPlainCodec encodes strings, byte slices, fmt.Stringer and error
// values as text/plain.
type TextPlainCodec struct{}

var _ Codec = TextPlainCodec{}

// MediaType implements Codec.
func (TextPlainCodec) MediaType() string { return ContentTypeText }

// Encode implements Codec.
func (TextPlainCodec) Encode(w io.Writer, v interface{}) error {
	var err error
	switch v := v.(type) {
	case string:
		_, err = io.WriteString(w, v)
	case []byte:
		_, err = w.Write(v)
	case fmt.Stringer:
		_, err = io.WriteString(w, v.String())
	case error:
		_, err = io.WriteString(w, v.Error())
	default:
		err = errors.Errorf("cannot encode %T as text/plain", v)
	}
	return err
}
