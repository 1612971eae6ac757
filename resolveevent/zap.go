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

package resolveevent

import (
	"go.uber.org/zap"

	"go.uber.org/resthost/internal/resolvereflect"
)

// ZapLogger is a resolver event logger that logs events to Zap.
type ZapLogger struct {
	Logger *zap.Logger
}

var _ Logger = (*ZapLogger)(nil)

// LogEvent logs the given event to the provided Zap logger.
func (l *ZapLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Registered:
		fields := []zap.Field{
			zap.String("service", resolvereflect.TypeName(e.Service)),
			zap.String("implementation", resolvereflect.TypeName(e.Implementation)),
			zap.String("kind", e.Kind),
			zap.String("lifetime", e.Lifetime),
		}
		if e.Constructor != nil {
			fields = append(fields, zap.String("constructor", resolvereflect.FuncName(e.Constructor)))
		}
		switch {
		case e.Err != nil:
			l.Logger.Error("registration failed", append(fields, zap.Error(e.Err))...)
		case e.Skipped:
			l.Logger.Debug("registration skipped", fields...)
		default:
			l.Logger.Info("registered", fields...)
		}
	case *ResolveFailed:
		l.Logger.Error("resolve failed",
			zap.String("service", resolvereflect.TypeName(e.Service)),
			zap.Bool("all", e.All),
			zap.Error(e.Err))
	case *ScopeOpened:
		l.Logger.Debug("scope opened")
	case *ScopeClosed:
		if e.Err != nil {
			l.Logger.Error("scope close failed", zap.Error(e.Err))
		} else {
			l.Logger.Debug("scope closed")
		}
	case *Disposed:
		if e.Err != nil {
			l.Logger.Error("dispose failed", zap.Error(e.Err))
		} else {
			l.Logger.Info("disposed", zap.Bool("closedContainer", e.ClosedContainer))
		}
	}
}
