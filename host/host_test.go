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
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uber-go/tally/v4"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"go.uber.org/resthost/container"
	"go.uber.org/resthost/di"
	"go.uber.org/resthost/resolver"
	"go.uber.org/resthost/resolvertest"
)

var _stringType = reflect.TypeOf("")

type testConfigurationSource struct{}

func (testConfigurationSource) Configure(rs *ResourceSpace) error {
	rs.Has(_stringType).
		AtURI("/").Named("Root").
		AtURI("/with-header").Named("WithHeader").
		HandledBy(newTestHandler).
		HandledBy(newHeaderSettingHandler).
		TranscodedBy(TextPlainCodec{})
	return nil
}

type testHandler struct{}

func newTestHandler() *testHandler { return &testHandler{} }

func (*testHandler) Operations() []Operation {
	return []Operation{
		Get("Root", func(context.Context) (interface{}, error) {
			return "Test Root Response", nil
		}),
	}
}

type headerSettingHandler struct{ response *Response }

func newHeaderSettingHandler(response *Response) *headerSettingHandler {
	return &headerSettingHandler{response: response}
}

func (h *headerSettingHandler) Operations() []Operation {
	return []Operation{
		Get("WithHeader", func(context.Context) (interface{}, error) {
			h.response.Header.Set("FOO", "BAR")
			return "Test Header Response", nil
		}),
	}
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	res, err := client.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res, string(body)
}

func TestListeningHostWithContainerResolver(t *testing.T) {
	r, err := resolver.New(container.New(), resolver.DisposeContainer(true))
	require.NoError(t, err)
	defer func() { assert.NoError(t, r.Close()) }()

	require.NoError(t, r.AddDependency(
		di.TypeOf[ConfigurationSource](),
		func() testConfigurationSource { return testConfigurationSource{} },
		di.Singleton,
	))

	h, err := New(Config{Addr: "127.0.0.1:0"}, testConfigurationSource{}, r)
	require.NoError(t, err)
	require.NoError(t, h.Start(context.Background()))
	defer func() { assert.NoError(t, h.Stop(context.Background())) }()
	prefix := "http://" + h.Addr()

	t.Run("the resolver is the container resolver", func(t *testing.T) {
		require.NotNil(t, h.Resolver())
		assert.IsType(t, &resolver.Resolver{}, h.Resolver())
	})

	t.Run("the root URI serves the test string", func(t *testing.T) {
		res, body := get(t, prefix+"/")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "Test Root Response", body)
		assert.Equal(t, ContentTypeText, res.Header.Get(ContentType))
	})

	t.Run("the with-header URI serves the response header", func(t *testing.T) {
		res, body := get(t, prefix+"/with-header")
		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "Test Header Response", body)
		assert.Equal(t, "BAR", res.Header.Get("FOO"))
	})
}

func TestStartStop(t *testing.T) {
	r := resolvertest.New(t)
	h, err := New(Config{Addr: "127.0.0.1:0"}, testConfigurationSource{}, r)
	require.NoError(t, err)

	assert.Empty(t, h.Addr())
	assert.NoError(t, h.Stop(context.Background()), "stopping a stopped host is a no-op")

	require.NoError(t, h.Start(context.Background()))
	assert.NotEmpty(t, h.Addr())
	assert.Error(t, h.Start(context.Background()), "starting twice must fail")

	require.NoError(t, h.Stop(context.Background()))
	assert.Empty(t, h.Addr())

	t.Run("restart", func(t *testing.T) {
		require.NoError(t, h.Start(context.Background()))
		_, body := get(t, "http://"+h.Addr()+"/")
		assert.Equal(t, "Test Root Response", body)
		require.NoError(t, h.Stop(context.Background()))
	})

	t.Run("bad address", func(t *testing.T) {
		h, err := New(Config{Addr: "127.0.0.1:-1"}, testConfigurationSource{}, r)
		require.NoError(t, err)
		err = h.Start(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unable to open TCP listener")
	})
}

func TestNew(t *testing.T) {
	t.Run("nil resolver", func(t *testing.T) {
		_, err := New(Config{}, testConfigurationSource{}, nil)
		assert.True(t, errors.Is(err, di.ErrInvalidArgument))
	})

	t.Run("source from resolver", func(t *testing.T) {
		r := resolvertest.New(t)
		r.MustSupply(di.TypeOf[ConfigurationSource](), testConfigurationSource{})

		h, err := New(Config{}, nil, r)
		require.NoError(t, err)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, "Test Root Response", rec.Body.String())
	})

	t.Run("no source", func(t *testing.T) {
		_, err := New(Config{}, nil, resolvertest.New(t))
		require.Error(t, err)
		assert.True(t, errors.Is(err, di.ErrUnresolvedDependency))
	})

	t.Run("source fails", func(t *testing.T) {
		_, err := New(Config{}, ConfigurationSourceFunc(func(*ResourceSpace) error {
			return errors.New("great sadness")
		}), resolvertest.New(t))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "great sadness")
	})

	t.Run("handlers are registered once", func(t *testing.T) {
		r := resolvertest.New(t)
		r.MustAdd(reflect.TypeOf(&testHandler{}), newTestHandler, di.Singleton)

		_, err := New(Config{}, testConfigurationSource{}, r)
		require.NoError(t, err)
		assert.Len(t, r.Container().Registrations(reflect.TypeOf(&testHandler{})), 1)
		assert.Len(t, r.Container().Registrations(reflect.TypeOf(&headerSettingHandler{})), 1)
	})
}

func TestServeHTTP(t *testing.T) {
	source := ConfigurationSourceFunc(func(rs *ResourceSpace) error {
		rs.Has(_stringType).
			AtURI("/echo").Named("Echo").
			AtURI("/fail").Named("Fail").
			AtURI("/wrong").Named("Wrong").
			AtURI("/created").Named("Created").
			AtURI("/empty").Named("Empty").
			HandledBy(func(req *http.Request, res *Response) handlerFunc {
				return func() []Operation {
					return []Operation{
						Get("Echo", func(ctx context.Context) (interface{}, error) {
							if _, ok := di.ScopeFromContext(ctx); !ok {
								return nil, errors.New("no scope in context")
							}
							return req.URL.Query().Get("say"), nil
						}),
						Get("Fail", func(context.Context) (interface{}, error) {
							return nil, errors.New("great sadness")
						}),
						Get("Wrong", func(context.Context) (interface{}, error) {
							return 42, nil
						}),
						{
							Method:  http.MethodPost,
							URIName: "Created",
							Invoke: func(context.Context) (interface{}, error) {
								res.StatusCode = http.StatusCreated
								return "made", nil
							},
						},
					}
				}
			})
		return nil
	})

	scope := tally.NewTestScope("", nil)
	core, logs := observer.New(zap.InfoLevel)
	h, err := New(Config{BasePath: "/api"}, source, resolvertest.New(t),
		WithLogger(zap.New(core)), WithMetrics(scope))
	require.NoError(t, err)

	tests := []struct {
		desc       string
		method     string
		target     string
		wantStatus int
		wantBody   string
		wantAllow  string
	}{
		{"request in scope", http.MethodGet, "/api/echo?say=hi", http.StatusOK, "hi", ""},
		{"handler error", http.MethodGet, "/api/fail", http.StatusInternalServerError, "Internal Server Error\n", ""},
		{"wrong resource type", http.MethodGet, "/api/wrong", http.StatusInternalServerError, "Internal Server Error\n", ""},
		{"status set by handler", http.MethodPost, "/api/created", http.StatusCreated, "made", ""},
		{"method not allowed", http.MethodDelete, "/api/created", http.StatusMethodNotAllowed, "Method Not Allowed\n", "POST"},
		{"no operations for uri", http.MethodGet, "/api/empty", http.StatusNotFound, "Not Found\n", ""},
		{"not found", http.MethodGet, "/api/missing", http.StatusNotFound, "404 page not found\n", ""},
		{"outside base path", http.MethodGet, "/echo", http.StatusNotFound, "404 page not found\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			assert.Equal(t, tt.wantAllow, rec.Header().Get("Allow"))
		})
	}

	counters := scope.Snapshot().Counters()
	assert.Equal(t, int64(1), counters["requests+resource=Echo"].Value())
	assert.Equal(t, int64(2), counters["requests+resource=Created"].Value())
	assert.Equal(t, int64(1), counters["requests+resource=Empty"].Value())
	assert.Equal(t, int64(6), counters["errors+"].Value())

	failed := logs.FilterMessage("request failed").AllUntimed()
	require.Len(t, failed, 2)
	assert.Equal(t, "/api/fail", failed[0].ContextMap()["path"])
	assert.Equal(t, "host", failed[0].ContextMap()["module"])
	rejected := logs.FilterMessage("request rejected").AllUntimed()
	require.Len(t, rejected, 2)
	assert.Equal(t, int64(http.StatusNotFound), rejected[1].ContextMap()["status"])
	assert.Len(t, logs.FilterMessage("no resource").AllUntimed(), 2)
}

type handlerFunc func() []Operation

func (f handlerFunc) Operations() []Operation { return f() }
