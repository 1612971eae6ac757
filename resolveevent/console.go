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
	"fmt"
	"io"

	"go.uber.org/resthost/internal/resolvereflect"
)

// ConsoleLogger is a resolver event logger that attempts to write
// human-readable messages to the console.
//
// Use this during development.
type ConsoleLogger struct {
	W io.Writer
}

var _ Logger = (*ConsoleLogger)(nil)

func (l *ConsoleLogger) logf(msg string, args ...interface{}) {
	fmt.Fprintf(l.W, "[resolver] "+msg+"\n", args...)
}

// LogEvent logs the given event to the provided writer.
func (l *ConsoleLogger) LogEvent(event Event) {
	switch e := event.(type) {
	case *Registered:
		service := resolvereflect.TypeName(e.Service)
		impl := resolvereflect.TypeName(e.Implementation)
		switch {
		case e.Err != nil:
			l.logf("ERROR\t\tFailed to register %v %v: %v", e.Kind, service, e.Err)
		case e.Skipped:
			l.logf("SKIP\t\t%v already registered", service)
		default:
			l.logf("REGISTER\t%v <= %v (%v, %v)", service, impl, e.Kind, e.Lifetime)
		}
	case *ResolveFailed:
		verb := "resolve"
		if e.All {
			verb = "resolve all"
		}
		l.logf("ERROR\t\tFailed to %v %v: %v", verb, resolvereflect.TypeName(e.Service), e.Err)
	case *ScopeOpened:
		l.logf("SCOPE\t\topened")
	case *ScopeClosed:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to close scope: %v", e.Err)
		} else {
			l.logf("SCOPE\t\tclosed")
		}
	case *Disposed:
		if e.Err != nil {
			l.logf("ERROR\t\tFailed to dispose: %v", e.Err)
		} else if e.ClosedContainer {
			l.logf("DISPOSED\tcontainer closed")
		} else {
			l.logf("DISPOSED\tcontainer left open")
		}
	}
}
