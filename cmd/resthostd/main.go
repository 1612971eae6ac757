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

// Command resthostd serves a demo resource space over HTTP, building its
// handlers from a container backed resolver.
//
//	resthostd -config host.yaml -env .env
//
// RESTHOST_ADDR, from the environment or the env file, overrides the
// configured listen address.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

var (
	// DefaultStartTimeout bounds how long the daemon may take to start.
	DefaultStartTimeout = 15 * time.Second

	// DefaultStopTimeout bounds how long the daemon may take to stop.
	DefaultStopTimeout = 5 * time.Second
)

func main() {
	var f flags
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	fs.StringVar(&f.ConfigPath, "config", "", "path to a YAML host configuration")
	fs.StringVar(&f.EnvPath, "env", "", "path to a dotenv file loaded before the configuration")
	fs.BoolVar(&f.Console, "console", false, "write resolver events to stderr instead of the JSON log")
	_ = fs.Parse(os.Args[1:])

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "resthostd: %v\n", err)
		os.Exit(1)
	}
}

// run starts the daemon, blocks for SIGINT or SIGTERM, then gracefully
// stops.
func run(f flags) error {
	a, err := newApp(f)
	if err != nil {
		return err
	}

	startCtx, cancelStart := context.WithTimeout(context.Background(), DefaultStartTimeout)
	defer cancelStart()
	if err := a.Start(startCtx); err != nil {
		return err
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	a.log.Info("received signal", zap.String("signal", sig.String()))

	stopCtx, cancelStop := context.WithTimeout(context.Background(), DefaultStopTimeout)
	defer cancelStop()
	return a.Stop(stopCtx)
}
