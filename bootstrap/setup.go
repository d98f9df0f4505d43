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

// Package bootstrap performs the process-wide tuning the original
// framework's Setup.init() does before anything else runs: pin the resolver
// to Go's own implementation, configure the global logger, redirect the
// standard library's log package through it, and report basic runtime info.
package bootstrap

import (
	"log"
	"net"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

// DefaultDNSCacheTTL mirrors the original's "10 seconds instead of
// unbounded" resolver cache window. Run fills it into Options.DNSCacheTTL;
// capDNSCache does not apply it to any resolver.
const DefaultDNSCacheTTL = 10 * time.Second

// Options configures Run. The zero value is a reasonable default.
type Options struct {
	// AppName is logged at startup and used as the root logger's name.
	AppName string
	// Level sets the global logger's minimum level. Defaults to Info.
	Level hclog.Level
	// DNSCacheTTL is the resolver cache window handed to capDNSCache; zero
	// uses DefaultDNSCacheTTL. The value is accepted but not applied.
	DNSCacheTTL time.Duration
}

var (
	once       sync.Once
	bootLogger hclog.Logger
)

// Run performs process tuning and returns the configured root logger. It is
// idempotent: a second call returns the logger built by the first call
// without tuning the process again or double-registering the redirected
// standard-library logger.
func Run(opts Options) hclog.Logger {
	once.Do(func() {
		if opts.AppName == "" {
			opts.AppName = "sirius-kernel"
		}
		if opts.Level == hclog.NoLevel {
			opts.Level = hclog.Info
		}
		if opts.DNSCacheTTL == 0 {
			opts.DNSCacheTTL = DefaultDNSCacheTTL
		}

		bootLogger = hclog.New(&hclog.LoggerOptions{
			Name:  opts.AppName,
			Level: opts.Level,
		})
		hclog.SetDefault(bootLogger)

		log.SetOutput(bootLogger.StandardWriter(&hclog.StandardLoggerOptions{
			InferLevels: true,
		}))
		log.SetFlags(0)

		capDNSCache(opts.DNSCacheTTL)

		bootLogger.Info("runtime info",
			"go", runtime.Version(),
			"numCPU", runtime.NumCPU(),
			"goMaxProcs", runtime.GOMAXPROCS(0),
			"os", runtime.GOOS,
			"arch", runtime.GOARCH,
			"pid", os.Getpid(),
		)
	})
	return bootLogger
}

// Logger returns the logger installed by Run, or nil if Run has not been
// called yet.
func Logger() hclog.Logger {
	return bootLogger
}

// capDNSCache pins name resolution to Go's own resolver, by appending
// netdns=go to GODEBUG and setting net.DefaultResolver.PreferGo, rather than
// the platform resolver with its own caching. Go's resolver has no
// unbounded in-process cache the way the JVM does, and no knob for one;
// ttl is therefore ignored and no cache window is set.
func capDNSCache(ttl time.Duration) {
	os.Setenv("GODEBUG", appendGodebug(os.Getenv("GODEBUG"), "netdns=go"))
	net.DefaultResolver.PreferGo = true
	_ = ttl
}

func appendGodebug(existing, setting string) string {
	if existing == "" {
		return setting
	}
	return existing + "," + setting
}
