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
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/uber-go/tally/v4"
	"go.uber.org/dig"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"go.uber.org/resthost/di"
	"go.uber.org/resthost/host"
	"go.uber.org/resthost/internal/clock"
	"go.uber.org/resthost/internal/lifecycle"
	"go.uber.org/resthost/resolveevent"
	"go.uber.org/resthost/resolver"
)

// _addrEnv overrides the listen address of the configuration.
const _addrEnv = "RESTHOST_ADDR"

type flags struct {
	ConfigPath string
	EnvPath    string
	Console    bool
}

// app is the daemon's object graph.
type app struct {
	lifecycle *lifecycle.Lifecycle
	log       *zap.Logger
	host      *host.Host
}

// newApp builds the daemon. Decorators are applied to the graph before it
// is built; tests use them to swap the logger out.
func newApp(f flags, decorators ...interface{}) (*app, error) {
	c := dig.New()
	constructors := []interface{}{
		func() flags { return f },
		loadConfig,
		newLogger,
		func() clock.Clock { return clock.System },
		lifecycle.New,
		newMetrics,
		newEventLogger,
		newResolver,
		newHost,
	}
	for _, ctor := range constructors {
		if err := c.Provide(ctor); err != nil {
			return nil, errors.Wrap(err, "unable to build daemon")
		}
	}
	for _, d := range decorators {
		if err := c.Decorate(d); err != nil {
			return nil, errors.Wrap(err, "unable to build daemon")
		}
	}

	var a app
	err := c.Invoke(func(lc *lifecycle.Lifecycle, log *zap.Logger, h *host.Host) {
		a = app{lifecycle: lc, log: log, host: h}
	})
	if err != nil {
		return nil, errors.Wrap(err, "unable to build daemon")
	}
	return &a, nil
}

// Start runs the start hooks, rolling back on error.
func (a *app) Start(ctx context.Context) error {
	err := a.lifecycle.Start(ctx)
	if err == nil {
		a.log.Info("RUNNING", zap.String("addr", a.host.Addr()))
		a.log.Debug("start hooks", zap.Stringer("records", a.lifecycle.StartRecords()))
		return nil
	}
	a.log.Error("start failed, rolling back", zap.Error(err))
	if stopErr := a.lifecycle.Stop(ctx); stopErr != nil {
		a.log.Error("couldn't roll back cleanly", zap.Error(stopErr))
		return multierr.Combine(err, stopErr)
	}
	return err
}

// Stop runs the stop hooks of everything that started.
func (a *app) Stop(ctx context.Context) error {
	err := a.lifecycle.Stop(ctx)
	_ = a.log.Sync()
	return err
}

func loadConfig(f flags) (host.Config, error) {
	if f.EnvPath != "" {
		if err := godotenv.Load(f.EnvPath); err != nil {
			return host.Config{}, errors.Wrapf(err, "unable to load %s", f.EnvPath)
		}
	}

	var (
		cfg host.Config
		err error
	)
	if f.ConfigPath != "" {
		cfg, err = host.LoadConfig(f.ConfigPath)
	} else {
		cfg, err = host.ParseConfig(nil)
	}
	if err != nil {
		return host.Config{}, err
	}

	if addr := os.Getenv(_addrEnv); addr != "" {
		cfg.Addr = addr
	}
	return cfg, nil
}

func newLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func newMetrics(lc *lifecycle.Lifecycle) tally.Scope {
	scope, closer := tally.NewRootScope(tally.ScopeOptions{
		Prefix:   "resthost",
		Reporter: tally.NullStatsReporter,
	}, time.Second)
	lc.Append(lifecycle.Hook{OnStop: closeHook(closer)})
	return scope
}

func newEventLogger(f flags, log *zap.Logger) resolveevent.Logger {
	if f.Console {
		return &resolveevent.ConsoleLogger{W: os.Stderr}
	}
	return &resolveevent.ZapLogger{Logger: log.Named("resolver")}
}

func newResolver(lc *lifecycle.Lifecycle, events resolveevent.Logger, scope tally.Scope) (*resolver.Resolver, error) {
	r, err := resolver.NewDefault(
		resolver.WithLogger(events),
		resolver.WithMetrics(scope.SubScope("resolver")),
	)
	if err != nil {
		return nil, err
	}
	lc.Append(lifecycle.Hook{OnStop: closeHook(r)})
	return r, nil
}

func newHost(
	lc *lifecycle.Lifecycle,
	cfg host.Config,
	r *resolver.Resolver,
	log *zap.Logger,
	scope tally.Scope,
) (*host.Host, error) {
	if err := registerDemo(r); err != nil {
		return nil, err
	}
	if err := r.AddDependencyInstance(di.TypeOf[host.ConfigurationSource](), demoSource{}, di.Singleton); err != nil {
		return nil, err
	}

	h, err := host.New(cfg, nil, r,
		host.WithLogger(log),
		host.WithMetrics(scope.SubScope("host")),
	)
	if err != nil {
		return nil, err
	}
	lc.Append(lifecycle.Hook{OnStart: h.Start, OnStop: h.Stop})
	return h, nil
}

func closeHook(c io.Closer) func(context.Context) error {
	return func(context.Context) error { return c.Close() }
}
