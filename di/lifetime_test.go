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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLifetimeString(t *testing.T) {
	tests := []struct {
		give Lifetime
		want string
	}{
		{Transient, "transient"},
		{Scoped, "scoped"},
		{Singleton, "singleton"},
		{Lifetime(42), "Lifetime(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.give.String())
		})
	}
}

func TestParseLifetime(t *testing.T) {
	l, err := ParseLifetime("Scoped")
	require.NoError(t, err)
	assert.Equal(t, Scoped, l)

	_, err = ParseLifetime("forever")
	assert.EqualError(t, err, `unknown lifetime "forever"`)
}

func TestLifetimeYAML(t *testing.T) {
	var cfg struct {
		Lifetime Lifetime `yaml:"lifetime"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("lifetime: singleton"), &cfg))
	assert.Equal(t, Singleton, cfg.Lifetime)

	out, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Equal(t, "lifetime: singleton\n", string(out))

	assert.Error(t, yaml.Unmarshal([]byte("lifetime: sometimes"), &cfg))
}
