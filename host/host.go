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
	"bytes"
	"context"
	"net"
	"net/http"
	"path"
	"reflect"
	"strings"
	"sync"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/uber-go/tally/v4"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"go.uber.org/resthost/di"
	"go.uber.org/resthost/internal/resolvereflect"
)

const _modName = "host"

var (
	_responseType = resolvereflect.TypeOf[*Response]()
	_requestType  = resolvereflect.TypeOf[*http.Request]()
)

// A Host serves the resources of a ConfigurationSource over HTTP.
type Host struct {
	cfg      Config
	resolver di.Resolver
	scopes   di.RequestScopedResolver
	log      *zap.Logger
	metrics  tally.Scope
	router   *mux.Router

	lock     sync.Mutex
	srv      *http.Server
	listener net.Listener
	done     chan struct{}
}

var _ http.Handler = (*Host)(nil)

// New configures a Host. The resolver must be able to create request
// scopes. When source is nil it is resolved from the resolver.
func New(cfg Config, source ConfigurationSource, r di.Resolver, opts ...Option) (*Host, error) {
	if r == nil {
		return nil, di.InvalidArgumentf("resolver is nil")
	}
	scopes, ok := r.(di.RequestScopedResolver)
	if !ok {
		return nil, di.InvalidArgumentf("resolver %T cannot create request scopes", r)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.metrics == nil {
		o.metrics = tally.NoopScope
	}

	if source == nil {
		var err error
		if source, err = di.Resolve[ConfigurationSource](r); err != nil {
			return nil, errors.Wrap(err, "no configuration source given or registered")
		}
	}

	rs := newResourceSpace(r)
	if err := multierr.Append(source.Configure(rs), rs.Err()); err != nil {
		return nil, errors.Wrap(err, "invalid resource space")
	}

	h := &Host{
		cfg:      cfg.withDefaults(),
		resolver: r,
		scopes:   scopes,
		log:      o.logger.With(zap.String("module", _modName)),
		metrics:  o.metrics,
		router:   mux.NewRouter(),
	}
	h.router.NotFoundHandler = http.HandlerFunc(h.notFound)
	for _, res := range rs.resources {
		for _, u := range res.uris {
			res, u := res, u
			h.router.Handle(joinPath(h.cfg.BasePath, u.path), http.HandlerFunc(
				func(w http.ResponseWriter, req *http.Request) {
					h.serve(w, req, res, u)
				}))
		}
	}
	return h, nil
}

// Resolver returns the resolver handlers are built from.
func (h *Host) Resolver() di.Resolver { return h.resolver }

// ServeHTTP serves a single request without a listener.
func (h *Host) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	h.router.ServeHTTP(w, req)
}

// Start begins serving requests on the configured address.
func (h *Host) Start(ctx context.Context) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.srv != nil {
		return errors.New("host is already listening")
	}

	var lc net.ListenConfig
	listener, err := lc.Listen(ctx, "tcp", h.cfg.Addr)
	if err != nil {
		return errors.Wrap(err, "unable to open TCP listener for host")
	}
	h.log.Info("Server listening", zap.String("addr", listener.Addr().String()))

	srv := &http.Server{Handler: h.router, ReadTimeout: h.cfg.ReadTimeout}
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			h.log.Error("HTTP Serve error", zap.Error(err))
		}
	}()

	h.srv, h.listener, h.done = srv, listener, done
	return nil
}

// Addr returns the address the host listens on, or "" when it is stopped.
func (h *Host) Addr() string {
	h.lock.Lock()
	defer h.lock.Unlock()
	if h.listener == nil {
		return ""
	}
	return h.listener.Addr().String()
}

// Stop shuts the listener down, waiting for in-flight requests until ctx
// or the configured shutdown timeout expires.
func (h *Host) Stop(ctx context.Context) error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.srv == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, h.cfg.ShutdownTimeout)
	defer cancel()

	err := h.srv.Shutdown(ctx)
	if err != nil {
		err = multierr.Append(err, h.srv.Close())
	}
	<-h.done
	h.srv, h.listener, h.done = nil, nil, nil
	return errors.Wrap(err, "unable to stop host")
}

func (h *Host) notFound(w http.ResponseWriter, req *http.Request) {
	h.metrics.Counter("errors").Inc(1)
	h.log.Info("no resource", zap.String("method", req.Method), zap.String("path", req.URL.Path))
	http.NotFound(w, req)
}

func (h *Host) serve(w http.ResponseWriter, req *http.Request, res *resource, u uri) {
	name := u.name
	if name == "" {
		name = u.path
	}
	h.metrics.Tagged(map[string]string{"resource": name}).Counter("requests").Inc(1)

	status, err := h.dispatch(w, req, res, u)
	if err == nil {
		return
	}
	h.metrics.Counter("errors").Inc(1)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", status),
		zap.Error(err),
	}
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", fields...)
	} else {
		h.log.Info("request rejected", fields...)
	}
	http.Error(w, http.StatusText(status), status)
}

// dispatch serves req inside a new request scope. The response is only
// written when err is nil.
func (h *Host) dispatch(w http.ResponseWriter, req *http.Request, res *resource, u uri) (int, error) {
	scope, err := h.scopes.CreateRequestScope()
	if err != nil {
		return http.StatusInternalServerError, errors.Wrap(err, "unable to create request scope")
	}
	defer func() {
		if err := scope.Close(); err != nil {
			h.log.Warn("request scope close failed", zap.Error(err))
		}
	}()

	resp := &Response{Header: w.Header(), StatusCode: http.StatusOK}
	if err := multierr.Combine(
		scope.AddInstance(_responseType, resp),
		scope.AddInstance(_requestType, req),
	); err != nil {
		return http.StatusInternalServerError, err
	}

	op, allowed, err := res.operation(scope, req.Method, u.name)
	if err != nil {
		return http.StatusInternalServerError, err
	}
	if op.Invoke == nil && len(allowed) == 0 {
		return http.StatusNotFound, errors.Errorf("no operation for %s", u.path)
	}
	if op.Invoke == nil {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
		return http.StatusMethodNotAllowed, errors.Errorf("no operation for %s %s", req.Method, u.path)
	}

	result, err := op.Invoke(di.ContextWithScope(req.Context(), scope))
	if err != nil {
		return http.StatusInternalServerError, errors.Wrapf(err, "%s %s failed", req.Method, u.path)
	}
	if result != nil && !reflect.TypeOf(result).AssignableTo(res.typ) {
		return http.StatusInternalServerError, errors.Errorf("%s %s returned %T, not %v", req.Method, u.path, result, res.typ)
	}

	codec := res.codecOrDefault()
	var body bytes.Buffer
	if result != nil {
		if err := codec.Encode(&body, result); err != nil {
			return http.StatusInternalServerError, errors.Wrap(err, "unable to encode response")
		}
	}

	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set(ContentType, codec.MediaType())
	w.WriteHeader(status)
	if _, err := body.WriteTo(w); err != nil {
		h.log.Warn("unable to write response", zap.Error(err))
	}
	return status, nil
}

func joinPath(base, p string) string {
	return path.Join("/", base, p)
}
