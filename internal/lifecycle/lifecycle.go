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

package lifecycle

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"go.uber.org/resthost/internal/clock"
	"go.uber.org/resthost/internal/resolvereflect"
)

// A Hook is a pair of start and stop callbacks, either of which can be nil,
// plus a string identifying the supplier of the hook.
type Hook struct {
	OnStart func(context.Context) error
	OnStop  func(context.Context) error
	caller  string
}

// Lifecycle coordinates the daemon's start and stop hooks.
type Lifecycle struct {
	logger *zap.Logger
	clock  clock.Clock

	mu         sync.Mutex
	hooks      []Hook
	numStarted int
	records    HookRecords
}

// New constructs a new Lifecycle. A nil logger discards output and a nil
// clock uses the system time.
func New(logger *zap.Logger, c clock.Clock) *Lifecycle {
	if logger == nil {
		logger = zap.NewNop()
	}
	if c == nil {
		c = clock.System
	}
	return &Lifecycle{logger: logger, clock: c}
}

// Append adds a Hook to the lifecycle.
func (l *Lifecycle) Append(hook Hook) {
	hook.caller = resolvereflect.Caller()
	l.mu.Lock()
	l.hooks = append(l.hooks, hook)
	l.mu.Unlock()
}

// Start runs all OnStart hooks, returning immediately if it encounters an
// error.
func (l *Lifecycle) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for l.numStarted < len(l.hooks) {
		hook := l.hooks[l.numStarted]
		if hook.OnStart != nil {
			l.logger.Info("starting", zap.String("caller", hook.caller))
			begin := l.clock.Now()
			if err := hook.OnStart(ctx); err != nil {
				return err
			}
			l.records = append(l.records, HookRecord{
				Runtime: l.clock.Since(begin),
				Caller:  hook.caller,
				Func:    hook.OnStart,
			})
		}
		l.numStarted++
	}
	return nil
}

// Stop runs any OnStop hooks whose OnStart counterpart succeeded. OnStop
// hooks run in reverse order.
func (l *Lifecycle) Stop(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	var errs []error
	// Run backward from last successful OnStart.
	for ; l.numStarted > 0; l.numStarted-- {
		hook := l.hooks[l.numStarted-1]
		if hook.OnStop == nil {
			continue
		}
		l.logger.Info("stopping", zap.String("caller", hook.caller))
		if err := hook.OnStop(ctx); err != nil {
			// For best-effort cleanup, keep going after errors.
			errs = append(errs, err)
		}
	}
	return multierr.Combine(errs...)
}

// StartRecords returns how long each OnStart hook that completed took.
func (l *Lifecycle) StartRecords() HookRecords {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append(HookRecords(nil), l.records...)
}

// HookRecord keeps track of each Hook's execution time, the caller that
// appended the Hook, and the function that ran as the Hook.
type HookRecord struct {
	Runtime time.Duration               // How long the hook ran
	Caller  string                      // caller that appended this hook
	Func    func(context.Context) error // function that ran as sanitized name
}

// HookRecords is a Stringer wrapper of HookRecord slice.
type HookRecords []HookRecord

// Used for logging slow startups.
func (r HookRecords) String() string {
	var b strings.Builder
	sorted := append(HookRecords(nil), r...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Runtime > sorted[j].Runtime })
	for _, r := range sorted {
		fmt.Fprintf(&b, "Hook: %s took %d ms to run. (Caller: %s)\n",
			resolvereflect.FuncName(r.Func), r.Runtime.Milliseconds(), r.Caller)
	}
	return b.String()
}
