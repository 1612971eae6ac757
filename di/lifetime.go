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

package di

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Lifetime controls how long a resolved instance is reused.
type Lifetime int

const (
	// Transient services are constructed on every resolution.
	Transient Lifetime = iota
	// Scoped services are constructed once per Scope.
	Scoped
	// Singleton services are constructed once per Resolver.
	Singleton
)

var _lifetimeNames = map[Lifetime]string{
	Transient: "transient",
	Scoped:    "scoped",
	Singleton: "singleton",
}

func (l Lifetime) String() string {
	if s, ok := _lifetimeNames[l]; ok {
		return s
	}
	return fmt.Sprintf("Lifetime(%d)", int(l))
}

// Valid reports whether l is one of the declared lifetimes.
func (l Lifetime) Valid() bool {
	_, ok := _lifetimeNames[l]
	return ok
}

// ParseLifetime parses the lower case name of a lifetime.
func ParseLifetime(s string) (Lifetime, error) {
	for l, name := range _lifetimeNames {
		if strings.EqualFold(s, name) {
			return l, nil
		}
	}
	return 0, errors.Errorf("unknown lifetime %q", s)
}

// UnmarshalText implements encoding.TextUnmarshaler so lifetimes can be read
// from configuration files.
func (l *Lifetime) UnmarshalText(text []byte) error {
	parsed, err := ParseLifetime(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (l Lifetime) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}
