// Copyright 2026 The Sirius-Go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command kernel bootstraps the process, loads configuration, wires a
// logging-backed failure sink, and runs a small Deferred Value pipeline
// end to end, tagging each unit of work with a correlation id the way a
// real service tags a request.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/tnmaygupta/sirius-kernel/async"
	"github.com/tnmaygupta/sirius-kernel/bootstrap"
	"github.com/tnmaygupta/sirius-kernel/config"
	"github.com/tnmaygupta/sirius-kernel/health"
)

func main() {
	app := &cli.App{
		Name:  "kernel",
		Usage: "demonstrate the kernel's bootstrap, config, health and async pipeline",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "path to the application config layer",
				Value: "application.conf",
			},
			&cli.BoolFlag{
				Name:  "fail",
				Usage: "simulate a failing unit of work",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	log := bootstrap.Run(bootstrap.Options{AppName: "kernel"})
	sink := health.NewSink(log.Named("health"))
	async.SetDefaultSink(sink)

	layers := []config.Layer{{Name: "application", Path: c.String("config"), Optional: true}}
	cfg, err := config.Load(layers)
	if err != nil {
		return health.Handle(sink, fmt.Errorf("loading config: %w", err))
	}
	if cfg.Problems != nil {
		log.Warn("non-fatal problems while loading config", "problems", cfg.Problems)
	}

	correlationID := uuid.New().String()
	log.Info("starting demo pipeline", "correlationId", correlationID)

	units := simulateUnits(c.Bool("fail"))
	barrier := async.Barrier(toCompleters(units)...)
	barrier.Await(5 * time.Second)

	seq := async.Sequence(units...)
	seq.Await(5 * time.Second)

	if cause := seq.Failure(); cause != nil {
		log.Error("demo pipeline failed", "correlationId", correlationID, "cause", cause)
		return cli.Exit(health.Summary(cause), 1)
	}

	results, _ := seq.Peek()
	log.Info("demo pipeline succeeded", "correlationId", correlationID, "results", results)
	fmt.Println(health.Summary(nil))
	return nil
}

// simulateUnits stands in for a handful of concurrent units of work, one of
// which fails when failOne is set.
func simulateUnits(failOne bool) []*async.Deferred[int] {
	units := make([]*async.Deferred[int], 3)
	for i := range units {
		d := async.New[int]()
		units[i] = d
		go func(i int, d *async.Deferred[int]) {
			time.Sleep(time.Duration(i+1) * 10 * time.Millisecond)
			if failOne && i == 1 {
				d.Fail(fmt.Errorf("unit %d: simulated failure", i))
				return
			}
			d.Succeed(i)
		}(i, d)
	}
	return units
}

func toCompleters(units []*async.Deferred[int]) []async.Completer {
	out := make([]async.Completer, len(units))
	for i, u := range units {
		out[i] = u
	}
	return out
}
